package store_test

import (
	"context"
	"errors"
	"testing"

	"dine-on-time-api/config"
	"dine-on-time-api/models"
	"dine-on-time-api/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := config.OpenDB(config.DriverSQLite, ":memory:")
	require.NoError(t, err)
	return store.New(db)
}

func seedRestaurant(t *testing.T, s *store.Store, ownerID uint, email string, prices ...float64) (*models.Restaurant, *models.Menu) {
	t.Helper()
	ctx := context.Background()
	r := &models.Restaurant{OwnerID: ownerID, Name: "R-" + email, Address: "1 Main St", PhoneNumber: "555", Email: email}
	require.NoError(t, s.Restaurants.Create(ctx, r))
	if len(prices) == 0 {
		return r, nil
	}
	m := &models.Menu{RestaurantID: r.ID}
	require.NoError(t, s.Menus.Create(ctx, m))
	for i, p := range prices {
		item := &models.MenuItem{MenuID: m.ID, Name: string(rune('A' + i)), Price: p}
		require.NoError(t, s.Menus.AddItem(ctx, item))
		m.Items = append(m.Items, *item)
	}
	return r, m
}

func TestRestaurantStore_NotFound(t *testing.T) {
	s := newStore(t)
	_, err := s.Restaurants.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRestaurantStore_FindByIDWithMenu(t *testing.T) {
	s := newStore(t)
	r, m := seedRestaurant(t, s, 1, "a@r.test", 10, 12)

	got, err := s.Restaurants.FindByIDWithMenu(context.Background(), r.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Menu)
	assert.Equal(t, m.ItemIDs(), got.Menu.ItemIDs())
}

func TestRestaurantStore_ListByOwner(t *testing.T) {
	s := newStore(t)
	seedRestaurant(t, s, 1, "a@r.test", 10)
	seedRestaurant(t, s, 2, "b@r.test")
	seedRestaurant(t, s, 1, "c@r.test")

	rows, err := s.Restaurants.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a@r.test", rows[0].Email)
	require.NotNil(t, rows[0].Menu)
	assert.Len(t, rows[0].Menu.Items, 1)
	assert.Nil(t, rows[1].Menu)
}

func TestMenuStore_MatchItems(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	r1, m1 := seedRestaurant(t, s, 1, "a@r.test", 10, 12)
	_, m2 := seedRestaurant(t, s, 2, "b@r.test", 7)

	a, b := m1.Items[0].ID, m1.Items[1].ID
	foreign := m2.Items[0].ID

	items, err := s.Menus.MatchItems(ctx, r1.ID, []uint{b, foreign, 9999})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, b, items[0].ID)

	items, err = s.Menus.MatchItems(ctx, r1.ID, []uint{b, a})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = s.Menus.MatchItems(ctx, r1.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMenuStore_RemoveItemTwice(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	r, m := seedRestaurant(t, s, 1, "a@r.test", 10, 12)

	require.NoError(t, s.Menus.RemoveItem(ctx, m.ID, m.Items[0].ID))
	require.NoError(t, s.Menus.RemoveItem(ctx, m.ID, m.Items[0].ID))

	got, err := s.Menus.FindByRestaurant(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{m.Items[1].ID}, got.ItemIDs())
}

func TestReservationStore_RoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	r, m := seedRestaurant(t, s, 1, "a@r.test", 10, 12)

	res := &models.Reservation{
		UserID:         2,
		RestaurantID:   r.ID,
		MenuItemIDs:    []uint{m.Items[1].ID, m.Items[0].ID},
		Date:           "2026-11-01",
		Time:           "19:30",
		NumberOfGuests: 4,
		Status:         models.StatusPending,
	}
	require.NoError(t, s.Reservations.Create(ctx, res))

	got, err := s.Reservations.FindByIDWithRestaurant(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.MenuItemIDs, got.MenuItemIDs)
	require.NotNil(t, got.Restaurant)
	assert.Equal(t, uint(1), got.Restaurant.OwnerID)

	require.NoError(t, s.Reservations.UpdateStatus(ctx, got, "Seated"))
	got, err = s.Reservations.FindByIDWithRestaurant(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatus("Seated"), got.Status)

	byUser, err := s.Reservations.ListByUser(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, byUser, 1)

	byRestaurant, err := s.Reservations.ListByRestaurant(ctx, r.ID+1)
	require.NoError(t, err)
	assert.Empty(t, byRestaurant)
}

func TestStore_TransactionRollsBack(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Transaction(ctx, func(tx *store.Store) error {
		r := &models.Restaurant{OwnerID: 1, Name: "R", Address: "A", PhoneNumber: "1", Email: "tx@r.test"}
		require.NoError(t, tx.Restaurants.Create(ctx, r))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	rows, err := s.Restaurants.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
