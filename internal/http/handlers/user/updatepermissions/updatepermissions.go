// Package updatepermissions реализует HTTP-обработчик замены набора прав пользователя.
package updatepermissions

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/avshapoval/shop-backend/internal/apperr"
	"github.com/avshapoval/shop-backend/internal/http/middlewarectx"
	"github.com/avshapoval/shop-backend/internal/http/response"
	"github.com/avshapoval/shop-backend/internal/lib/sl"
	"github.com/avshapoval/shop-backend/internal/models"
)

// Request — новый набор прав целевого пользователя
type Request struct {
	Permissions []string `json:"permissions" validate:"required,min=1,dive,oneof=ADMIN USER ITEMCREATE ITEMUPDATE ITEMDELETE PERMISSIONUPDATE"`
}

// Service описывает интерфейс бизнес-логики управления правами.
type Service interface {
	UpdatePermissions(ctx context.Context, sess models.Session, targetUID string, permissions []string) (*models.User, error)
}

// Handler обрабатывает запросы на замену прав.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP заменяет набор прав пользователя {uid} ровно на переданный.
// Требует у действующего пользователя право ADMIN или PERMISSIONUPDATE.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.updatepermissions"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	targetUID := chi.URLParam(r, "uid")
	if targetUID == "" {
		log.Error("missing user uid in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing user uid in url"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	sess := middlewarectx.SessionFromContext(r.Context())
	user, err := h.service.UpdatePermissions(r.Context(), sess, targetUID, req.Permissions)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnauthenticated):
			log.Error("request without authenticated session")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
		case errors.Is(err, apperr.ErrForbidden):
			log.Error("insufficient permissions")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("insufficient permissions"))
		case errors.Is(err, apperr.ErrUserNotFound):
			log.Error("target user not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to update permissions", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update permissions"))
		}
		return
	}

	log.Info("permissions updated", slog.String("uid", user.UID),
		slog.Any("permissions", user.Permissions))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":         user.UID,
		"permissions": user.Permissions,
	}))
}
