// Package add реализует HTTP-обработчик добавления товара в корзину.
package add

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
	"github.com/avshapoval/shop-backend/internal/http/middlewarectx"
	"github.com/avshapoval/shop-backend/internal/http/response"
	"github.com/avshapoval/shop-backend/internal/lib/sl"
	"github.com/avshapoval/shop-backend/internal/models"
	"github.com/avshapoval/shop-backend/internal/storage/repository"
)

// Request — товар для добавления в корзину
type Request struct {
	ItemID int `json:"item_id" validate:"required,min=1"`
}

// Service описывает интерфейс бизнес-логики корзины.
type Service interface {
	AddToCart(ctx context.Context, sess models.Session, itemID int) (*models.CartItem, error)
}

// Handler обрабатывает запросы на добавление в корзину.
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

// ServeHTTP добавляет товар в корзину текущего пользователя. Повторное
// добавление того же товара увеличивает количество существующей строки.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.cart.add"
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

	sess := middlewarectx.SessionFromContext(r.Context())
	line, err := h.service.AddToCart(r.Context(), sess, req.ItemID)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrUnauthenticated):
			log.Error("request without authenticated session")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
		case errors.Is(err, repository.ErrItemNotFound):
			log.Error("item not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("item not found"))
		default:
			log.Error("failed to add item to cart", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add item to cart"))
		}
		return
	}

	log.Info("item added to cart",
		slog.Int("item_id", line.ItemID), slog.Int("quantity", line.Quantity))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"cart_item": line,
	}))
}
