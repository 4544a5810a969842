package store

import (
	"context"

	"dine-on-time-api/models"

	"gorm.io/gorm"
)

type RestaurantStore struct {
	db *gorm.DB
}

func preloadMenuItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Menu").Preload("Menu.Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("menu_items.id asc")
	})
}

func (s *RestaurantStore) Create(ctx context.Context, r *models.Restaurant) error {
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

// FindByID returns the restaurant without its menu
func (s *RestaurantStore) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// FindByIDWithMenu returns the restaurant with its menu and items
func (s *RestaurantStore) FindByIDWithMenu(ctx context.Context, id uint) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := preloadMenuItems(s.db.WithContext(ctx)).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// FindByEmail is used to keep restaurant emails unique
func (s *RestaurantStore) FindByEmail(ctx context.Context, email string) (*models.Restaurant, error) {
	var r models.Restaurant
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&r).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

// FindByIDs returns the restaurants that exist among ids, keyed by id
func (s *RestaurantStore) FindByIDs(ctx context.Context, ids []uint) (map[uint]models.Restaurant, error) {
	out := make(map[uint]models.Restaurant, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Restaurant
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	for _, r := range rows {
		out[r.ID] = r
	}
	return out, nil
}

func (s *RestaurantStore) List(ctx context.Context) ([]models.Restaurant, error) {
	var rows []models.Restaurant
	if err := s.db.WithContext(ctx).Order("id asc").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *RestaurantStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	var rows []models.Restaurant
	err := preloadMenuItems(s.db.WithContext(ctx)).
		Where("owner_id = ?", ownerID).
		Order("id asc").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

func (s *RestaurantStore) Save(ctx context.Context, r *models.Restaurant) error {
	return translate(s.db.WithContext(ctx).Omit("Menu").Save(r).Error)
}

func (s *RestaurantStore) Delete(ctx context.Context, id uint) error {
	return translate(s.db.WithContext(ctx).Delete(&models.Restaurant{}, id).Error)
}
