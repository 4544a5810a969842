package store

import (
	"context"

	"dine-on-time-api/models"

	"gorm.io/gorm"
)

type MenuStore struct {
	db *gorm.DB
}

// FindByRestaurant returns the restaurant's menu with items in menu order
func (s *MenuStore) FindByRestaurant(ctx context.Context, restaurantID uint) (*models.Menu, error) {
	var m models.Menu
	err := s.db.WithContext(ctx).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("menu_items.id asc") }).
		Where("restaurant_id = ?", restaurantID).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// Create inserts an empty menu for a restaurant
func (s *MenuStore) Create(ctx context.Context, m *models.Menu) error {
	return translate(s.db.WithContext(ctx).Omit("Items").Create(m).Error)
}

// MatchItems selects only the items of the restaurant's menu whose id is in
// ids. Unknown ids and items of other restaurants' menus never match.
func (s *MenuStore) MatchItems(ctx context.Context, restaurantID uint, ids []uint) ([]models.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var items []models.MenuItem
	err := s.db.WithContext(ctx).
		Joins("JOIN menus ON menus.id = menu_items.menu_id").
		Where("menus.restaurant_id = ? AND menu_items.id IN ?", restaurantID, ids).
		Order("menu_items.id asc").
		Find(&items).Error
	if err != nil {
		return nil, translate(err)
	}
	return items, nil
}

// ItemsByIDs returns the items among ids that still exist, keyed by id
func (s *MenuStore) ItemsByIDs(ctx context.Context, ids []uint) (map[uint]models.MenuItem, error) {
	out := make(map[uint]models.MenuItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.MenuItem
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (s *MenuStore) AddItem(ctx context.Context, item *models.MenuItem) error {
	return translate(s.db.WithContext(ctx).Create(item).Error)
}

func (s *MenuStore) SaveItem(ctx context.Context, item *models.MenuItem) error {
	return translate(s.db.WithContext(ctx).Save(item).Error)
}

// RemoveItem deletes the item from the menu. Removing an id that is not on
// the menu is not an error.
func (s *MenuStore) RemoveItem(ctx context.Context, menuID, itemID uint) error {
	return translate(s.db.WithContext(ctx).
		Where("menu_id = ? AND id = ?", menuID, itemID).
		Delete(&models.MenuItem{}).Error)
}
