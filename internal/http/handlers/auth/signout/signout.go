// Package signout реализует HTTP-обработчик выхода из сессии.
package signout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avshapoval/shop-backend/internal/http/response"
	"github.com/avshapoval/shop-backend/internal/http/sessioncookie"
)

// Handler обрабатывает запросы на выход.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP сбрасывает cookie сессии. Токены на сервере не хранятся,
// поэтому выход сводится к удалению cookie. Повторный выход безвреден.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.signout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sessioncookie.Clear(w)
	log.Info("session cookie cleared")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "goodbye",
	}))
}
