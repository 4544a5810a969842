package store

import (
	"context"

	"dine-on-time-api/models"

	"gorm.io/gorm"
)

type ReservationStore struct {
	db *gorm.DB
}

func (s *ReservationStore) Create(ctx context.Context, r *models.Reservation) error {
	return translate(s.db.WithContext(ctx).Omit("Restaurant").Create(r).Error)
}

// FindByIDWithRestaurant loads the reservation and the restaurant it is for.
// Restaurant is nil when the restaurant has since been deleted.
func (s *ReservationStore) FindByIDWithRestaurant(ctx context.Context, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.db.WithContext(ctx).Preload("Restaurant").First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *ReservationStore) ListByUser(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var rows []models.Reservation
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *ReservationStore) ListByRestaurant(ctx context.Context, restaurantID uint) ([]models.Reservation, error) {
	var rows []models.Reservation
	if err := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID).Order("id asc").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *ReservationStore) UpdateStatus(ctx context.Context, r *models.Reservation, status models.ReservationStatus) error {
	return translate(s.db.WithContext(ctx).Model(r).Update("status", status).Error)
}
