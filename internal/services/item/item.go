// Package item содержит бизнес-логику каталога товаров.
package item

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avshapoval/shop-backend/internal/lib/sl"
	"github.com/avshapoval/shop-backend/internal/models"
	authservice "github.com/avshapoval/shop-backend/internal/services/auth"
)

// cacheTTL — срок жизни карточки товара в кэше.
const cacheTTL = time.Hour

// ItemRepository определяет методы работы с каталогом в хранилище.
type ItemRepository interface {
	CreateItem(ctx context.Context, item models.Item) (int, error)
	ReadItem(ctx context.Context, id int) (*models.Item, error)
	ListItems(ctx context.Context, limit, offset int) ([]*models.Item, error)
	UpdateItem(ctx context.Context, item models.Item, id int) (int, error)
	RemoveItem(ctx context.Context, id int) (int, error)
	GetItemOwner(ctx context.Context, id int) (string, error)
}

// Cache определяет методы кэширования карточек товара.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Guard проверяет права действующего пользователя на операцию.
type Guard interface {
	RequireOwnerOrPermission(ctx context.Context, sess models.Session, ownerUID string, allowed ...string) error
}

// Service реализует операции каталога.
type Service struct {
	repo  ItemRepository
	cache Cache
	guard Guard
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ItemRepository, cache Cache, guard Guard, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, guard: guard, log: log}
}

func cacheKey(id int) string {
	return fmt.Sprintf("item:%d", id)
}

// Create добавляет товар от имени аутентифицированного пользователя,
// который становится его владельцем.
func (s *Service) Create(ctx context.Context, sess models.Session, item models.Item) (int, error) {
	if err := authservice.RequireLoggedIn(sess); err != nil {
		return 0, err
	}
	item.OwnerUID = sess.UserUID
	return s.repo.CreateItem(ctx, item)
}

// Read возвращает товар по ID, сначала пробуя кэш. Ошибки кэша
// логируются и не мешают чтению из хранилища.
func (s *Service) Read(ctx context.Context, id int) (*models.Item, error) {
	key := cacheKey(id)
	var cached models.Item
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Error("failed to read item from cache", sl.Err(err))
	}
	if found {
		return &cached, nil
	}
	item, err := s.repo.ReadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, item, cacheTTL); err != nil {
		s.log.Error("failed to cache item", sl.Err(err))
	}
	return item, nil
}

// List возвращает страницу каталога. Каталог доступен без входа.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	return s.repo.ListItems(ctx, limit, offset)
}

// Update обновляет товар. Разрешено владельцу либо пользователю
// с правом ADMIN. Запись в кэше сбрасывается.
func (s *Service) Update(ctx context.Context, sess models.Session, item models.Item, id int) (int, error) {
	ownerUID, err := s.repo.GetItemOwner(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.guard.RequireOwnerOrPermission(ctx, sess, ownerUID,
		models.PermissionAdmin); err != nil {
		return 0, err
	}
	affected, err := s.repo.UpdateItem(ctx, item, id)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Error("failed to invalidate item cache", sl.Err(err))
	}
	return affected, nil
}

// Delete удаляет товар. Разрешено владельцу либо пользователю с правом
// ADMIN или ITEMDELETE; проверка выполняется до удаления.
func (s *Service) Delete(ctx context.Context, sess models.Session, id int) (int, error) {
	ownerUID, err := s.repo.GetItemOwner(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.guard.RequireOwnerOrPermission(ctx, sess, ownerUID,
		models.PermissionAdmin, models.PermissionItemDelete); err != nil {
		return 0, err
	}
	affected, err := s.repo.RemoveItem(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(ctx, cacheKey(id)); err != nil {
		s.log.Error("failed to invalidate item cache", sl.Err(err))
	}
	return affected, nil
}
