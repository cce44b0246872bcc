package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avshapoval/shop-backend/internal/models"
)

// ErrItemNotFound — товар с таким id отсутствует.
var ErrItemNotFound = errors.New("item not found")

// CreateItem добавляет новый товар и возвращает его ID.
func (s *Storage) CreateItem(ctx context.Context, item models.Item) (int, error) {
	const op = "storage.CreateItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	query := `INSERT INTO items (title, description, price, owner_uid)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		item.Title, item.Description, item.Price, item.OwnerUID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadItem возвращает товар по ID.
func (s *Storage) ReadItem(ctx context.Context, id int) (*models.Item, error) {
	const op = "storage.ReadItem"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, price, owner_uid, created_at
			  FROM items
			  WHERE id = $1`
	item := &models.Item{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&item.ID, &item.Title,
		&item.Description, &item.Price, &item.OwnerUID, &item.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return item, nil
}

// ListItems возвращает страницу каталога.
func (s *Storage) ListItems(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	const op = "storage.ListItems"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, price, owner_uid, created_at
			  FROM items
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Item
	for rows.Next() {
		var item models.Item
		if err = rows.Scan(&item.ID, &item.Title, &item.Description,
			&item.Price, &item.OwnerUID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateItem обновляет данные товара по ID и возвращает число
// обновлённых записей.
func (s *Storage) UpdateItem(ctx context.Context, item models.Item, id int) (int, error) {
	const op = "storage.UpdateItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE items
			  SET title = $1, description = $2, price = $3
			  WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, query, item.Title, item.Description, item.Price, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// RemoveItem удаляет товар по ID и возвращает число удалённых записей.
func (s *Storage) RemoveItem(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveItem"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM items WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(affected), nil
}

// GetItemOwner возвращает UID владельца товара.
func (s *Storage) GetItemOwner(ctx context.Context, id int) (string, error) {
	const op = "storage.GetItemOwner"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT owner_uid FROM items WHERE id = $1`
	var ownerUID string
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&ownerUID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return ownerUID, nil
}
