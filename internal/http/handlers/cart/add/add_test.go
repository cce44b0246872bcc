package add_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avshapoval/shop-backend/internal/apperr"
	"github.com/avshapoval/shop-backend/internal/http/handlers/cart/add"
	"github.com/avshapoval/shop-backend/internal/http/middlewarectx"
	"github.com/avshapoval/shop-backend/internal/http/response"
	"github.com/avshapoval/shop-backend/internal/models"
	"github.com/avshapoval/shop-backend/internal/storage/repository"
)

type mockService struct {
	AddToCartFunc func(ctx context.Context, sess models.Session, itemID int) (*models.CartItem, error)
}

func (m *mockService) AddToCart(ctx context.Context, sess models.Session, itemID int) (*models.CartItem, error) {
	return m.AddToCartFunc(ctx, sess, itemID)
}

// discard logger
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func requestWithSession(body []byte, sess models.Session) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/cart", bytes.NewReader(body))
	ctx := context.WithValue(req.Context(), middlewarectx.SessionKey, sess)
	return req.WithContext(ctx)
}

func TestAddHandler(t *testing.T) {
	t.Run("success returns upserted line", func(t *testing.T) {
		body, _ := json.Marshal(add.Request{ItemID: 42})

		service := &mockService{
			AddToCartFunc: func(_ context.Context, sess models.Session, itemID int) (*models.CartItem, error) {
				require.Equal(t, "some-uuid-string", sess.UserUID)
				require.Equal(t, 42, itemID)
				return &models.CartItem{ID: 1, UserUID: sess.UserUID, ItemID: 42, Quantity: 2}, nil
			},
		}

		req := requestWithSession(body, models.Session{UserUID: "some-uuid-string"})
		w := httptest.NewRecorder()

		add.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp response.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, response.StatusOK, resp.Status)
		line := resp.Data.(map[string]any)["cart_item"].(map[string]any)
		assert.Equal(t, float64(2), line["Quantity"])
	})

	t.Run("anonymous session gets 401", func(t *testing.T) {
		body, _ := json.Marshal(add.Request{ItemID: 42})

		service := &mockService{
			AddToCartFunc: func(_ context.Context, _ models.Session, _ int) (*models.CartItem, error) {
				return nil, apperr.ErrUnauthenticated
			},
		}

		req := requestWithSession(body, models.Session{})
		w := httptest.NewRecorder()

		add.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown item gets 404", func(t *testing.T) {
		body, _ := json.Marshal(add.Request{ItemID: 999})

		service := &mockService{
			AddToCartFunc: func(_ context.Context, _ models.Session, _ int) (*models.CartItem, error) {
				return nil, repository.ErrItemNotFound
			},
		}

		req := requestWithSession(body, models.Session{UserUID: "some-uuid-string"})
		w := httptest.NewRecorder()

		add.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("zero item id fails validation", func(t *testing.T) {
		body, _ := json.Marshal(add.Request{ItemID: 0})

		service := &mockService{
			AddToCartFunc: func(_ context.Context, _ models.Session, _ int) (*models.CartItem, error) {
				t.Fatal("AddToCart should not be called")
				return nil, nil
			},
		}

		req := requestWithSession(body, models.Session{UserUID: "some-uuid-string"})
		w := httptest.NewRecorder()

		add.New(makeLogger(), service).ServeHTTP(w, req)

		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
