// Package me реализует HTTP-обработчик получения текущего пользователя.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avshapoval/shop-backend/internal/apperr"
	"github.com/avshapoval/shop-backend/internal/http/middlewarectx"
	"github.com/avshapoval/shop-backend/internal/http/response"
	"github.com/avshapoval/shop-backend/internal/lib/sl"
	"github.com/avshapoval/shop-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения текущего пользователя.
type Service interface {
	Me(ctx context.Context, sess models.Session) (*models.User, error)
}

// Handler обрабатывает запросы текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP возвращает пользователя текущей сессии.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	user, err := h.service.Me(r.Context(), sess)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			log.Error("request without authenticated session")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}
		log.Error("failed to read current user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read current user"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":         user.UID,
		"email":       user.Email,
		"name":        user.Username,
		"permissions": user.Permissions,
	}))
}
