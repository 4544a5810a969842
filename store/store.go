// Package store holds the gorm-backed repositories for users, restaurants,
// menus and reservations.
package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store groups the repositories that share one database handle.
type Store struct {
	db           *gorm.DB
	Users        *UserStore
	Restaurants  *RestaurantStore
	Menus        *MenuStore
	Reservations *ReservationStore
}

func New(db *gorm.DB) *Store {
	return &Store{
		db:           db,
		Users:        &UserStore{db: db},
		Restaurants:  &RestaurantStore{db: db},
		Menus:        &MenuStore{db: db},
		Reservations: &ReservationStore{db: db},
	}
}

// Transaction runs fn against a Store bound to a single database
// transaction. fn must only use the Store it is given.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
