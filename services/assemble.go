package services

import (
	"context"
	"time"

	"dine-on-time-api/models"
	"dine-on-time-api/store"
)

// ReservationView is a reservation with its restaurant summary and menu
// items embedded in place of bare ids.
type ReservationView struct {
	ID              uint                      `json:"id"`
	UserID          uint                      `json:"user_id"`
	RestaurantID    uint                      `json:"restaurant_id"`
	Restaurant      *models.RestaurantSummary `json:"restaurant"`
	MenuItemIDs     []uint                    `json:"menu_item_ids"`
	Menu            []models.MenuItem         `json:"menu"`
	Date            string                    `json:"date"`
	Time            string                    `json:"time"`
	NumberOfGuests  int                       `json:"number_of_guests"`
	SpecialRequests string                    `json:"special_requests"`
	Status          models.ReservationStatus  `json:"status"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

// assemble builds the view for one reservation. Items are emitted in the
// order of res.MenuItemIDs; ids missing from items (deleted since booking)
// are skipped. restaurant may be nil when it no longer exists.
func assemble(res models.Reservation, restaurant *models.Restaurant, items map[uint]models.MenuItem) ReservationView {
	view := ReservationView{
		ID:              res.ID,
		UserID:          res.UserID,
		RestaurantID:    res.RestaurantID,
		MenuItemIDs:     res.MenuItemIDs,
		Menu:            make([]models.MenuItem, 0, len(res.MenuItemIDs)),
		Date:            res.Date,
		Time:            res.Time,
		NumberOfGuests:  res.NumberOfGuests,
		SpecialRequests: res.SpecialRequests,
		Status:          res.Status,
		CreatedAt:       res.CreatedAt,
		UpdatedAt:       res.UpdatedAt,
	}
	if restaurant != nil {
		summary := restaurant.Summary()
		view.Restaurant = &summary
	}
	for _, id := range res.MenuItemIDs {
		if it, ok := items[id]; ok {
			view.Menu = append(view.Menu, it)
		}
	}
	return view
}

func itemsByID(items []models.MenuItem) map[uint]models.MenuItem {
	out := make(map[uint]models.MenuItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out
}

// assembleAll expands a list of reservations with one restaurant query and
// one menu item query.
func assembleAll(ctx context.Context, st *store.Store, reservations []models.Reservation) ([]ReservationView, error) {
	views := make([]ReservationView, 0, len(reservations))
	if len(reservations) == 0 {
		return views, nil
	}

	var restaurantIDs, itemIDs []uint
	seenRestaurant := map[uint]bool{}
	seenItem := map[uint]bool{}
	for _, r := range reservations {
		if !seenRestaurant[r.RestaurantID] {
			seenRestaurant[r.RestaurantID] = true
			restaurantIDs = append(restaurantIDs, r.RestaurantID)
		}
		for _, id := range r.MenuItemIDs {
			if !seenItem[id] {
				seenItem[id] = true
				itemIDs = append(itemIDs, id)
			}
		}
	}

	restaurants, err := st.Restaurants.FindByIDs(ctx, restaurantIDs)
	if err != nil {
		return nil, err
	}
	items, err := st.Menus.ItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, err
	}

	for _, r := range reservations {
		var restaurant *models.Restaurant
		if found, ok := restaurants[r.RestaurantID]; ok {
			restaurant = &found
		}
		views = append(views, assemble(r, restaurant, items))
	}
	return views, nil
}
