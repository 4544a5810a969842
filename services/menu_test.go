package services

import (
	"errors"
	"fmt"
	"testing"

	"dine-on-time-api/images"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestAddItem_CreatesMenuLazily(t *testing.T) {
	f := newFixture(t)
	r, _ := f.restaurant(t, owner, "r@dine.test")

	items, err := f.svc.Menus.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	menu, err := f.svc.Menus.AddItem(f.ctx, owner, r.ID, AddMenuItemInput{
		Name:  "Soup",
		Price: 6.5,
		Image: &ImageFile{Body: []byte("img"), ContentType: "image/png"},
	})
	require.NoError(t, err)
	assert.Equal(t, r.ID, menu.RestaurantID)
	require.Len(t, menu.Items, 1)
	assert.Equal(t, "https://img.test/"+images.FolderMenu+"/1", menu.Items[0].ImageURL)

	menu, err = f.svc.Menus.AddItem(f.ctx, owner, r.ID, AddMenuItemInput{Name: "Bread", Price: 2})
	require.NoError(t, err)
	require.Len(t, menu.Items, 2)
	assert.Equal(t, "Soup", menu.Items[0].Name)
	assert.Equal(t, "Bread", menu.Items[1].Name)

	items, err = f.svc.Menus.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAddItem_Rejections(t *testing.T) {
	f := newFixture(t)
	r, _ := f.restaurant(t, owner, "r@dine.test")

	_, err := f.svc.Menus.AddItem(f.ctx, owner, r.ID, AddMenuItemInput{Name: " ", Price: 3})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.svc.Menus.AddItem(f.ctx, owner, r.ID, AddMenuItemInput{Name: "Tea", Price: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.Menus.AddItem(f.ctx, stranger, r.ID, AddMenuItemInput{Name: "Tea", Price: 3})
	assert.ErrorIs(t, err, ErrUnauthorized)
	_, err = f.svc.Menus.AddItem(f.ctx, owner, 9999, AddMenuItemInput{Name: "Tea", Price: 3})
	assert.ErrorIs(t, err, ErrUnauthorized)

	items, err := f.svc.Menus.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddItem_ImageFailures(t *testing.T) {
	f := newFixture(t)
	r, _ := f.restaurant(t, owner, "r@dine.test")
	img := &ImageFile{Body: []byte("gif"), ContentType: "image/gif"}

	f.images.err = fmt.Errorf("sniffed gif: %w", images.ErrInvalidImage)
	_, err := f.svc.Menus.AddItem(f.ctx, owner, r.ID, AddMenuItemInput{Name: "Tea", Price: 3, Image: img})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.images.err = errors.New("bucket unavailable")
	_, err = f.svc.Menus.AddItem(f.ctx, owner, r.ID, AddMenuItemInput{Name: "Tea", Price: 3, Image: img})
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, "Image upload failed", Message(err, ""))

	items, err := f.svc.Menus.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateItem_ReplacesProvidedFields(t *testing.T) {
	f := newFixture(t)
	r, items := f.restaurant(t, owner, "r@dine.test", 10, 12)

	menu, err := f.svc.Menus.UpdateItem(f.ctx, owner, r.ID, items[1].ID, UpdateMenuItemInput{
		Description: ptr("Crispy"),
		Price:       ptr(0.0),
		Name:        ptr(""),
	})
	require.NoError(t, err)
	require.Len(t, menu.Items, 2)
	updated := menu.Items[1]
	assert.Equal(t, "B", updated.Name)
	assert.Equal(t, "Crispy", updated.Description)
	assert.Equal(t, 12.0, updated.Price)

	menu, err = f.svc.Menus.UpdateItem(f.ctx, owner, r.ID, items[1].ID, UpdateMenuItemInput{Name: ptr("Fries"), Price: ptr(4.25)})
	require.NoError(t, err)
	assert.Equal(t, "Fries", menu.Items[1].Name)
	assert.Equal(t, 4.25, menu.Items[1].Price)
	assert.Equal(t, "Crispy", menu.Items[1].Description)

	stored, err := f.svc.Menus.Get(f.ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fries", stored[1].Name)
	assert.Equal(t, "A", stored[0].Name)
}

func TestUpdateItem_Errors(t *testing.T) {
	f := newFixture(t)
	r, items := f.restaurant(t, owner, "r@dine.test", 10)
	bare, _ := f.restaurant(t, owner, "bare@dine.test")
	_, foreign := f.restaurant(t, stranger, "other@dine.test", 5)

	_, err := f.svc.Menus.UpdateItem(f.ctx, stranger, r.ID, items[0].ID, UpdateMenuItemInput{Name: ptr("X")})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = f.svc.Menus.UpdateItem(f.ctx, owner, bare.ID, items[0].ID, UpdateMenuItemInput{Name: ptr("X")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Menu not found", Message(err, ""))

	_, err = f.svc.Menus.UpdateItem(f.ctx, owner, r.ID, foreign[0].ID, UpdateMenuItemInput{Name: ptr("X")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Menu item not found", Message(err, ""))

	assert.NoError(t, f.svc.Menus.Authorize(f.ctx, owner, r.ID))
	assert.ErrorIs(t, f.svc.Menus.Authorize(f.ctx, stranger, r.ID), ErrUnauthorized)
	assert.ErrorIs(t, f.svc.Menus.Authorize(f.ctx, owner, 9999), ErrUnauthorized)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	f := newFixture(t)
	r, items := f.restaurant(t, owner, "r@dine.test", 10, 12)
	other, foreign := f.restaurant(t, stranger, "other@dine.test", 5)

	require.NoError(t, f.svc.Menus.RemoveItem(f.ctx, owner, r.ID, items[0].ID))
	require.NoError(t, f.svc.Menus.RemoveItem(f.ctx, owner, r.ID, items[0].ID))
	require.NoError(t, f.svc.Menus.RemoveItem(f.ctx, owner, r.ID, foreign[0].ID))

	left, err := f.svc.Menus.Get(f.ctx, r.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, items[1].ID, left[0].ID)

	untouched, err := f.svc.Menus.Get(f.ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, untouched, 1)

	err = f.svc.Menus.RemoveItem(f.ctx, stranger, r.ID, items[1].ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
