package services

import (
	"context"
	"errors"
	"strings"

	"dine-on-time-api/images"
	"dine-on-time-api/models"
	"dine-on-time-api/store"

	log "github.com/sirupsen/logrus"
)

type RestaurantService struct {
	store  *store.Store
	images *imageUploader
	logger *log.Entry
}

// RestaurantInput carries profile fields. On create Name, Address,
// PhoneNumber and Email are required; on update empty fields keep their
// current value.
type RestaurantInput struct {
	Name        string
	Address     string
	PhoneNumber string
	Email       string
	Description string
	Image       *ImageFile
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *RestaurantService) Create(ctx context.Context, ownerID uint, in RestaurantInput) (*models.Restaurant, error) {
	if strings.TrimSpace(in.Name) == "" || in.Address == "" || in.PhoneNumber == "" || in.Email == "" {
		return nil, invalidInput("All fields (name, address, phoneNumber, email) are required.")
	}
	email := normalizeEmail(in.Email)
	if err := s.ensureEmailFree(ctx, email, 0); err != nil {
		return nil, err
	}

	imageURL, err := s.images.upload(ctx, in.Image, images.FolderRestaurant)
	if err != nil {
		return nil, err
	}

	restaurant := models.Restaurant{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Address:     in.Address,
		PhoneNumber: in.PhoneNumber,
		Email:       email,
		Description: in.Description,
		ImageURL:    imageURL,
	}
	if err := s.store.Restaurants.Create(ctx, &restaurant); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflict("A restaurant with this email already exists")
		}
		return nil, storeFailure(err)
	}
	s.logger.WithFields(log.Fields{"restaurant_id": restaurant.ID, "owner_id": ownerID}).Info("restaurant created")
	return &restaurant, nil
}

func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := s.store.Restaurants.List(ctx)
	if err != nil {
		return nil, storeFailure(err)
	}
	return rows, nil
}

// Get returns the restaurant with its menu items
func (s *RestaurantService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	r, err := s.store.Restaurants.FindByIDWithMenu(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Restaurant not found")
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	return r, nil
}

// Mine returns the restaurants owned by ownerID, with menus
func (s *RestaurantService) Mine(ctx context.Context, ownerID uint) ([]models.Restaurant, error) {
	rows, err := s.store.Restaurants.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return rows, nil
}

func (s *RestaurantService) owned(ctx context.Context, callerID, id uint, denied string) (*models.Restaurant, error) {
	r, err := s.store.Restaurants.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Restaurant not found")
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	if r.OwnerID != callerID {
		return nil, unauthorized(denied)
	}
	return r, nil
}

// Authorize checks that callerID may change restaurant id. Handlers call it
// before reading the request body.
func (s *RestaurantService) Authorize(ctx context.Context, callerID, id uint) error {
	_, err := s.owned(ctx, callerID, id, "Not authorized to update this restaurant")
	return err
}

func (s *RestaurantService) Update(ctx context.Context, callerID, id uint, in RestaurantInput) (*models.Restaurant, error) {
	r, err := s.owned(ctx, callerID, id, "Not authorized to update this restaurant")
	if err != nil {
		return nil, err
	}

	if in.Email != "" {
		email := normalizeEmail(in.Email)
		if email != r.Email {
			if err := s.ensureEmailFree(ctx, email, r.ID); err != nil {
				return nil, err
			}
		}
		r.Email = email
	}
	imageURL, err := s.images.upload(ctx, in.Image, images.FolderRestaurant)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		r.Name = strings.TrimSpace(in.Name)
	}
	if in.Address != "" {
		r.Address = in.Address
	}
	if in.PhoneNumber != "" {
		r.PhoneNumber = in.PhoneNumber
	}
	if in.Description != "" {
		r.Description = in.Description
	}
	if imageURL != "" {
		r.ImageURL = imageURL
	}

	if err := s.store.Restaurants.Save(ctx, r); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, conflict("A restaurant with this email already exists")
		}
		return nil, storeFailure(err)
	}
	s.logger.WithField("restaurant_id", r.ID).Info("restaurant updated")
	return r, nil
}

// Delete removes the restaurant row only; its menu and reservations stay.
func (s *RestaurantService) Delete(ctx context.Context, callerID, id uint) error {
	r, err := s.owned(ctx, callerID, id, "Not authorized to delete this restaurant")
	if err != nil {
		return err
	}
	if err := s.store.Restaurants.Delete(ctx, r.ID); err != nil {
		return storeFailure(err)
	}
	s.logger.WithField("restaurant_id", r.ID).Info("restaurant deleted")
	return nil
}

func (s *RestaurantService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.store.Restaurants.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return storeFailure(err)
	}
	if existing.ID != selfID {
		return conflict("A restaurant with this email already exists")
	}
	return nil
}
