package models

import "time"

// ReservationStatus names the lifecycle states of a reservation. The column
// itself is free text: owners may write any value, see statemachine.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "Pending"
	StatusConfirmed ReservationStatus = "Confirmed"
	StatusCancelled ReservationStatus = "Cancelled"
)

// Known reports whether s is one of the three documented statuses
func (s ReservationStatus) Known() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID              uint              `json:"id" gorm:"primaryKey"`
	UserID          uint              `json:"user_id" gorm:"not null;index"`
	RestaurantID    uint              `json:"restaurant_id" gorm:"not null;index"`
	Restaurant      *Restaurant       `json:"-" gorm:"foreignKey:RestaurantID"`
	MenuItemIDs     []uint            `json:"menu_item_ids" gorm:"serializer:json;not null"`
	Date            string            `json:"date" gorm:"not null"`
	Time            string            `json:"time" gorm:"not null"`
	NumberOfGuests  int               `json:"number_of_guests" gorm:"not null"`
	SpecialRequests string            `json:"special_requests"`
	Status          ReservationStatus `json:"status" gorm:"not null;default:'Pending'"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}
