package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/avshapoval/shop-backend/internal/models"
)

const foreignKeyViolation = "23503"

// UpsertCartItem добавляет товар в корзину пользователя одной командой:
// новой паре (пользователь, товар) создаётся строка с количеством 1,
// существующей — количество увеличивается на 1. Уникальный индекс по паре
// и ON CONFLICT закрывают гонку конкурентных добавлений: вторая строка
// для пары появиться не может.
func (s *Storage) UpsertCartItem(ctx context.Context, userUID string, itemID int) (*models.CartItem, error) {
	const op = "storage.UpsertCartItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO cart_items (user_uid, item_id, quantity)
			  VALUES ($1, $2, 1)
			  ON CONFLICT (user_uid, item_id)
			  DO UPDATE SET quantity = cart_items.quantity + 1
			  RETURNING id, user_uid, item_id, quantity;`
	item := &models.CartItem{}
	if err := s.DB.QueryRowContext(ctx, query, userUID, itemID).Scan(
		&item.ID, &item.UserUID, &item.ItemID, &item.Quantity); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// ListCartItems возвращает строки корзины пользователя.
func (s *Storage) ListCartItems(ctx context.Context, userUID string) ([]*models.CartItem, error) {
	const op = "storage.ListCartItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, item_id, quantity
			  FROM cart_items
			  WHERE user_uid = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err = rows.Scan(&item.ID, &item.UserUID, &item.ItemID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
