package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"dine-on-time-api/events"
	"dine-on-time-api/metrics"
	"dine-on-time-api/models"
	"dine-on-time-api/statemachine"
	"dine-on-time-api/store"

	log "github.com/sirupsen/logrus"
)

type ReservationService struct {
	store   *store.Store
	events  events.Publisher
	metrics *metrics.Metrics
	logger  *log.Entry
}

// CreateReservationInput is a booking request. MenuIDs are raw ids as sent
// by the client; ones that are not on the restaurant's menu are dropped.
type CreateReservationInput struct {
	RestaurantID    uint
	MenuIDs         []string
	Date            string
	Time            string
	NumberOfGuests  int
	SpecialRequests string
}

// Create books a reservation for callerID. The restaurant must exist and at
// least one requested id must be on its menu. The lookups and the insert
// share one transaction.
func (s *ReservationService) Create(ctx context.Context, callerID uint, in CreateReservationInput) (*ReservationView, error) {
	requested, invalid := parseIDs(in.MenuIDs)

	var (
		restaurant *models.Restaurant
		matched    []models.MenuItem
		res        models.Reservation
		reason     string
	)
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		var err error
		restaurant, err = tx.Restaurants.FindByID(ctx, in.RestaurantID)
		if errors.Is(err, store.ErrNotFound) {
			reason = metrics.ReasonRestaurantNotFound
			return notFound("Restaurant not found")
		}
		if err != nil {
			return err
		}

		matched, err = tx.Menus.MatchItems(ctx, restaurant.ID, requested)
		if err != nil {
			return err
		}
		if len(matched) == 0 {
			reason = metrics.ReasonNoMenuItems
			return invalidInput("No valid menu items found")
		}

		validIDs := filterValid(requested, matched)
		if len(validIDs) == 0 {
			reason = metrics.ReasonNoValidIDs
			return invalidInput("None of the provided menu items are valid")
		}

		res = models.Reservation{
			UserID:          callerID,
			RestaurantID:    restaurant.ID,
			MenuItemIDs:     validIDs,
			Date:            in.Date,
			Time:            in.Time,
			NumberOfGuests:  in.NumberOfGuests,
			SpecialRequests: in.SpecialRequests,
			Status:          models.StatusPending,
		}
		return tx.Reservations.Create(ctx, &res)
	})
	if err != nil {
		var svcErr *Error
		if !errors.As(err, &svcErr) {
			reason = metrics.ReasonStoreError
			err = storeFailure(err)
		}
		s.metrics.ReservationRejected(reason)
		s.logger.WithError(err).WithFields(log.Fields{
			"user_id":       callerID,
			"restaurant_id": in.RestaurantID,
			"reason":        reason,
		}).Info("reservation rejected")
		return nil, err
	}

	// Unparsable entries plus distinct ids that are not on the menu.
	dropped := invalid + len(requested) - len(res.MenuItemIDs)
	s.metrics.ReservationCreated(dropped)
	entry := s.logger.WithFields(log.Fields{
		"reservation_id": res.ID,
		"user_id":        callerID,
		"restaurant_id":  res.RestaurantID,
		"menu_items":     len(res.MenuItemIDs),
	})
	if dropped > 0 {
		entry = entry.WithField("dropped_menu_ids", dropped)
	}
	entry.Info("reservation created")

	view := assemble(res, restaurant, itemsByID(matched))
	s.publish(ctx, events.ActionCreated, res, nil)
	return &view, nil
}

// owned loads the reservation and checks that callerID owns its restaurant.
func (s *ReservationService) owned(ctx context.Context, callerID, reservationID uint) (*models.Reservation, error) {
	res, err := s.store.Reservations.FindByIDWithRestaurant(ctx, reservationID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Reservation not found")
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	if res.Restaurant == nil {
		return nil, notFound("Restaurant not found")
	}
	if res.Restaurant.OwnerID != callerID {
		return nil, unauthorized("Not authorized to update this reservation")
	}
	return res, nil
}

// Authorize checks that callerID may change the status of reservationID.
func (s *ReservationService) Authorize(ctx context.Context, callerID, reservationID uint) error {
	_, err := s.owned(ctx, callerID, reservationID)
	return err
}

// UpdateStatus lets the restaurant's owner overwrite a reservation's status.
// Any value is stored; values outside the documented lifecycle are logged.
func (s *ReservationService) UpdateStatus(ctx context.Context, callerID, reservationID uint, status models.ReservationStatus) (*models.Reservation, error) {
	res, err := s.owned(ctx, callerID, reservationID)
	if err != nil {
		return nil, err
	}

	previous := res.Status
	entry := s.logger.WithFields(log.Fields{
		"reservation_id": res.ID,
		"from":           previous,
		"to":             status,
	})
	if !status.Known() {
		entry.Warn("reservation status outside the documented set")
	} else if err := statemachine.Check(previous, status); err != nil {
		entry.WithError(err).Info("reservation status change off the expected lifecycle")
	}

	if err := s.store.Reservations.UpdateStatus(ctx, res, status); err != nil {
		return nil, storeFailure(err)
	}
	res.Status = status
	s.metrics.StatusUpdated(status.Known())
	entry.Info("reservation status updated")

	s.publish(ctx, events.ActionStatusChanged, *res, map[string]string{"previousStatus": string(previous)})
	return res, nil
}

// ListMine returns the caller's reservations with restaurant and menu items
// expanded.
func (s *ReservationService) ListMine(ctx context.Context, callerID uint) ([]ReservationView, error) {
	rows, err := s.store.Reservations.ListByUser(ctx, callerID)
	if err != nil {
		return nil, storeFailure(err)
	}
	views, err := assembleAll(ctx, s.store, rows)
	if err != nil {
		return nil, storeFailure(err)
	}
	return views, nil
}

// ListForRestaurant returns all reservations of a restaurant to its owner.
func (s *ReservationService) ListForRestaurant(ctx context.Context, callerID, restaurantID uint) ([]ReservationView, error) {
	restaurant, err := s.store.Restaurants.FindByID(ctx, restaurantID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Restaurant not found")
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	if restaurant.OwnerID != callerID {
		return nil, unauthorized("Not authorized to view these reservations")
	}

	rows, err := s.store.Reservations.ListByRestaurant(ctx, restaurant.ID)
	if err != nil {
		return nil, storeFailure(err)
	}
	views, err := assembleAll(ctx, s.store, rows)
	if err != nil {
		return nil, storeFailure(err)
	}
	return views, nil
}

func (s *ReservationService) publish(ctx context.Context, action string, res models.Reservation, extra map[string]string) {
	ev := events.New(events.EntityReservation, action, res.ID, res)
	ev.Metadata["restaurantId"] = strconv.FormatUint(uint64(res.RestaurantID), 10)
	ev.Metadata["userId"] = strconv.FormatUint(uint64(res.UserID), 10)
	ev.Metadata["status"] = string(res.Status)
	for k, v := range extra {
		ev.Metadata[k] = v
	}
	if err := s.events.Publish(ctx, ev); err != nil {
		s.logger.WithError(err).WithField("reservation_id", res.ID).Warn("publish reservation event failed")
	}
}

// parseIDs keeps the ids that can name a menu item, in request order,
// without duplicates. invalid counts the entries that are not positive
// integers; repeats of a kept id are collapsed and not counted.
func parseIDs(raw []string) (ids []uint, invalid int) {
	ids = make([]uint, 0, len(raw))
	seen := make(map[uint]bool, len(raw))
	for _, r := range raw {
		id, err := strconv.ParseUint(strings.TrimSpace(r), 10, 0)
		if err != nil || id == 0 {
			invalid++
			continue
		}
		if seen[uint(id)] {
			continue
		}
		seen[uint(id)] = true
		ids = append(ids, uint(id))
	}
	return ids, invalid
}

// filterValid keeps the requested ids that are present in matched.
func filterValid(requested []uint, matched []models.MenuItem) []uint {
	onMenu := itemsByID(matched)
	valid := make([]uint, 0, len(requested))
	for _, id := range requested {
		if _, ok := onMenu[id]; ok {
			valid = append(valid, id)
		}
	}
	return valid
}
