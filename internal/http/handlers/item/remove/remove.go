// Package remove реализует HTTP-обработчик удаления товара.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avshapoval/shop-backend/internal/apperr"
	"github.com/avshapoval/shop-backend/internal/http/middlewarectx"
	"github.com/avshapoval/shop-backend/internal/http/response"
	"github.com/avshapoval/shop-backend/internal/lib/sl"
	"github.com/avshapoval/shop-backend/internal/models"
	"github.com/avshapoval/shop-backend/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики удаления товара.
type Service interface {
	Delete(ctx context.Context, sess models.Session, id int) (int, error)
}

// Handler обрабатывает запросы на удаление товара.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP удаляет товар по ID. Разрешено владельцу либо пользователю
// с правом ADMIN или ITEMDELETE.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.item.remove"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	sess := middlewarectx.SessionFromContext(r.Context())
	affected, err := h.service.Delete(r.Context(), sess, id)
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
		case errors.Is(err, repository.ErrItemNotFound):
			log.Error("item not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("item not found"))
		default:
			log.Error("failed to remove item", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove item"))
		}
		return
	}

	log.Info("item removed", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted": affected,
	}))
}
