package models

import "time"

// Menu holds the items of exactly one restaurant. Items are ordered by id.
type Menu struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	RestaurantID uint       `json:"restaurant_id" gorm:"not null;uniqueIndex"`
	Items        []MenuItem `json:"items" gorm:"foreignKey:MenuID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	MenuID      uint      `json:"menu_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemIDs returns the ids of the menu's items in menu order
func (m *Menu) ItemIDs() []uint {
	if m == nil {
		return nil
	}
	ids := make([]uint, 0, len(m.Items))
	for _, it := range m.Items {
		ids = append(ids, it.ID)
	}
	return ids
}
