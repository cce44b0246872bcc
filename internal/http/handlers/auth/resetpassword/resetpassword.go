// Package resetpassword реализует HTTP-обработчик смены пароля по токену сброса.
package resetpassword

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/avshapoval/shop-backend/internal/apperr"
	"github.com/avshapoval/shop-backend/internal/http/response"
	"github.com/avshapoval/shop-backend/internal/http/sessioncookie"
	"github.com/avshapoval/shop-backend/internal/lib/sl"
	"github.com/avshapoval/shop-backend/internal/models"
)

// Request — входные данные смены пароля
type Request struct {
	ResetToken      string `json:"resetToken" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// Service описывает интерфейс бизнес-логики смены пароля по токену.
type Service interface {
	ResetPassword(ctx context.Context, resetToken, newPassword, confirmPassword string) (*models.User, string, error)
}

// Handler обрабатывает запросы смены пароля.
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

// ServeHTTP godoc
// @Summary Сменить пароль по токену сброса
// @Description Гасит одноразовый токен сброса, меняет пароль и открывает новую сессию.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Токен сброса и новый пароль"
// @Success 200 {object} map[string]any "Пользователь с новой сессией"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Пароли не совпадают, токен неверен или просрочен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /resetpassword [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetpassword"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	user, token, err := h.service.ResetPassword(r.Context(),
		req.ResetToken, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrPasswordMismatch):
			log.Error("passwords do not match")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("passwords do not match"))
		case errors.Is(err, apperr.ErrInvalidOrExpiredToken):
			// Поддельный, просроченный и уже погашенный токены неразличимы.
			log.Error("invalid or expired reset token")
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("this token is either invalid or expired"))
		case errors.Is(err, apperr.ErrValidation):
			log.Error("invalid new password", sl.Err(err))
			w.WriteHeader(http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("invalid new password"))
		default:
			log.Error("failed to reset password", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to reset password"))
		}
		return
	}

	sessioncookie.Set(w, token)
	log.Info("password reset completed", slog.String("uid", user.UID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":         user.UID,
		"email":       user.Email,
		"name":        user.Username,
		"permissions": user.Permissions,
	}))
}
