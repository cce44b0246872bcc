// Package list реализует HTTP-обработчик получения корзины пользователя.
package list

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

// Service описывает интерфейс бизнес-логики чтения корзины.
type Service interface {
	List(ctx context.Context, sess models.Session) ([]*models.CartItem, error)
}

// Handler обрабатывает запросы на чтение корзины.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP возвращает строки корзины текущего пользователя.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	lines, err := h.service.List(r.Context(), sess)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			log.Error("request without authenticated session")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
			return
		}
		log.Error("failed to list cart", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list cart"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"cart": lines,
	}))
}
