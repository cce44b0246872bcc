package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avshapoval/shop-backend/internal/models"
)

func TestStorage_ItemCRUD(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	ownerUID := factory.CreateUser(t, "test@example.com", "testuser", "hashedpassword",
		[]string{models.PermissionUser})

	id, err := storage.CreateItem(ctx, models.Item{
		Title:       "Shoes",
		Description: "Running shoes",
		Price:       1000,
		OwnerUID:    ownerUID,
	})
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	got, err := storage.ReadItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Shoes", got.Title)
	assert.Equal(t, 1000, got.Price)
	assert.Equal(t, ownerUID, got.OwnerUID)

	owner, err := storage.GetItemOwner(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ownerUID, owner)

	affected, err := storage.UpdateItem(ctx, models.Item{
		Title:       "Boots",
		Description: "Winter boots",
		Price:       2000,
	}, id)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	got, err = storage.ReadItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Boots", got.Title)
	assert.Equal(t, 2000, got.Price)

	affected, err = storage.RemoveItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, affected)

	_, err = storage.ReadItem(ctx, id)
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = storage.GetItemOwner(ctx, id)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestStorage_ListItems(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)

	ownerUID := factory.CreateUser(t, "test@example.com", "testuser", "hashedpassword",
		[]string{models.PermissionUser})

	for _, title := range []string{"Shoes", "Hat", "Bag"} {
		factory.CreateItem(t, title, 1000, ownerUID)
	}

	page, err := storage.ListItems(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	rest, err := storage.ListItems(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, rest, 1)

	empty, err := storage.ListItems(ctx, 10, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
