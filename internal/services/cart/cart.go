// Package cart содержит бизнес-логику корзины покупателя.
package cart

import (
	"context"
	"log/slog"

	"github.com/avshapoval/shop-backend/internal/models"
	authservice "github.com/avshapoval/shop-backend/internal/services/auth"
)

// CartRepository определяет методы работы с корзиной в хранилище.
type CartRepository interface {
	// UpsertCartItem создаёт строку с количеством 1 или увеличивает
	// количество существующей строки на 1, одной командой.
	UpsertCartItem(ctx context.Context, userUID string, itemID int) (*models.CartItem, error)
	// ListCartItems возвращает строки корзины пользователя.
	ListCartItems(ctx context.Context, userUID string) ([]*models.CartItem, error)
}

// Service реализует операции с корзиной.
type Service struct {
	repo CartRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo CartRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// AddToCart добавляет товар в корзину аутентифицированного пользователя.
// Повторное добавление той же пары (пользователь, товар) увеличивает
// количество существующей строки, вторая строка не создаётся.
func (s *Service) AddToCart(ctx context.Context, sess models.Session, itemID int) (*models.CartItem, error) {
	if err := authservice.RequireLoggedIn(sess); err != nil {
		return nil, err
	}
	line, err := s.repo.UpsertCartItem(ctx, sess.UserUID, itemID)
	if err != nil {
		return nil, err
	}
	s.log.Info("cart line upserted",
		slog.Int("item_id", itemID), slog.Int("quantity", line.Quantity))
	return line, nil
}

// List возвращает корзину аутентифицированного пользователя.
func (s *Service) List(ctx context.Context, sess models.Session) ([]*models.CartItem, error) {
	if err := authservice.RequireLoggedIn(sess); err != nil {
		return nil, err
	}
	return s.repo.ListCartItems(ctx, sess.UserUID)
}
