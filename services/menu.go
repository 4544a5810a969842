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

type MenuService struct {
	store  *store.Store
	images *imageUploader
	logger *log.Entry
}

type AddMenuItemInput struct {
	Name        string
	Description string
	Price       float64
	Image       *ImageFile
}

// UpdateMenuItemInput replaces only the fields that are set. Empty strings
// and a zero price count as not set.
type UpdateMenuItemInput struct {
	Name        *string
	Description *string
	Price       *float64
	Image       *ImageFile
}

// ownedRestaurant loads the restaurant and checks that callerID owns it. A
// missing restaurant is reported the same way as a foreign one.
func (s *MenuService) ownedRestaurant(ctx context.Context, callerID, restaurantID uint, denied string) (*models.Restaurant, error) {
	restaurant, err := s.store.Restaurants.FindByID(ctx, restaurantID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, unauthorized(denied)
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	if restaurant.OwnerID != callerID {
		return nil, unauthorized(denied)
	}
	return restaurant, nil
}

// Authorize checks that callerID may edit the menu of restaurantID.
func (s *MenuService) Authorize(ctx context.Context, callerID, restaurantID uint) error {
	_, err := s.ownedRestaurant(ctx, callerID, restaurantID, "Not authorized to update menu items for this restaurant")
	return err
}

// Get returns the restaurant's menu items; an empty list when it has no menu.
func (s *MenuService) Get(ctx context.Context, restaurantID uint) ([]models.MenuItem, error) {
	menu, err := s.store.Menus.FindByRestaurant(ctx, restaurantID)
	if errors.Is(err, store.ErrNotFound) {
		return []models.MenuItem{}, nil
	}
	if err != nil {
		return nil, storeFailure(err)
	}
	if menu.Items == nil {
		menu.Items = []models.MenuItem{}
	}
	return menu.Items, nil
}

// AddItem appends an item to the restaurant's menu, creating the menu on
// first use, and returns the whole menu.
func (s *MenuService) AddItem(ctx context.Context, callerID, restaurantID uint, in AddMenuItemInput) (*models.Menu, error) {
	if strings.TrimSpace(in.Name) == "" || in.Price <= 0 {
		return nil, invalidInput("Menu item name and price are required")
	}
	restaurant, err := s.ownedRestaurant(ctx, callerID, restaurantID, "Not authorized to add menu items to this restaurant")
	if err != nil {
		return nil, err
	}

	imageURL, err := s.images.upload(ctx, in.Image, images.FolderMenu)
	if err != nil {
		return nil, err
	}

	menu, err := s.store.Menus.FindByRestaurant(ctx, restaurant.ID)
	if errors.Is(err, store.ErrNotFound) {
		menu = &models.Menu{RestaurantID: restaurant.ID}
		err = s.store.Menus.Create(ctx, menu)
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	item := models.MenuItem{
		MenuID:      menu.ID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    imageURL,
	}
	if err := s.store.Menus.AddItem(ctx, &item); err != nil {
		return nil, storeFailure(err)
	}
	menu.Items = append(menu.Items, item)

	s.logger.WithFields(log.Fields{"restaurant_id": restaurant.ID, "item_id": item.ID}).Info("menu item added")
	return menu, nil
}

// UpdateItem merges the provided fields into an existing item and returns
// the whole menu.
func (s *MenuService) UpdateItem(ctx context.Context, callerID, restaurantID, itemID uint, in UpdateMenuItemInput) (*models.Menu, error) {
	restaurant, err := s.ownedRestaurant(ctx, callerID, restaurantID, "Not authorized to update menu items for this restaurant")
	if err != nil {
		return nil, err
	}

	menu, err := s.store.Menus.FindByRestaurant(ctx, restaurant.ID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Menu not found")
	}
	if err != nil {
		return nil, storeFailure(err)
	}

	idx := -1
	for i := range menu.Items {
		if menu.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, notFound("Menu item not found")
	}

	imageURL, err := s.images.upload(ctx, in.Image, images.FolderMenu)
	if err != nil {
		return nil, err
	}

	item := &menu.Items[idx]
	if in.Name != nil && *in.Name != "" {
		item.Name = *in.Name
	}
	if in.Description != nil && *in.Description != "" {
		item.Description = *in.Description
	}
	if in.Price != nil && *in.Price != 0 {
		item.Price = *in.Price
	}
	if imageURL != "" {
		item.ImageURL = imageURL
	}
	if err := s.store.Menus.SaveItem(ctx, item); err != nil {
		return nil, storeFailure(err)
	}

	s.logger.WithFields(log.Fields{"restaurant_id": restaurant.ID, "item_id": item.ID}).Info("menu item updated")
	return menu, nil
}

// RemoveItem drops the item from the menu. Removing an id that is not on the
// menu succeeds without changing anything.
func (s *MenuService) RemoveItem(ctx context.Context, callerID, restaurantID, itemID uint) error {
	restaurant, err := s.ownedRestaurant(ctx, callerID, restaurantID, "Not authorized to delete menu items from this restaurant")
	if err != nil {
		return err
	}

	menu, err := s.store.Menus.FindByRestaurant(ctx, restaurant.ID)
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Menu not found")
	}
	if err != nil {
		return storeFailure(err)
	}

	if err := s.store.Menus.RemoveItem(ctx, menu.ID, itemID); err != nil {
		return storeFailure(err)
	}
	s.logger.WithFields(log.Fields{"restaurant_id": restaurant.ID, "item_id": itemID}).Info("menu item removed")
	return nil
}
