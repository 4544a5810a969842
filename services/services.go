// Package services implements the restaurant, menu, reservation and
// identity workflows on top of the store package.
package services

import (
	"context"
	"errors"

	"dine-on-time-api/events"
	"dine-on-time-api/images"
	"dine-on-time-api/metrics"
	"dine-on-time-api/models"
	"dine-on-time-api/store"

	log "github.com/sirupsen/logrus"
)

// ImageUploader stores an image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, body []byte, contentType, folderHint string) (string, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, error)
}

// ImageFile is an uploaded file attached to a create or update request.
type ImageFile struct {
	Body        []byte
	ContentType string
}

// Deps are the collaborators shared by all services. Events, Metrics and
// Logger may be left nil.
type Deps struct {
	Store   *store.Store
	Images  ImageUploader
	Tokens  TokenIssuer
	Events  events.Publisher
	Metrics *metrics.Metrics
	Logger  *log.Logger
}

// Services bundles every workflow built from the same Deps.
type Services struct {
	Auth         *AuthService
	Restaurants  *RestaurantService
	Menus        *MenuService
	Reservations *ReservationService
}

func New(deps Deps) *Services {
	if deps.Events == nil {
		deps.Events = events.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = log.StandardLogger()
	}
	uploader := &imageUploader{images: deps.Images, metrics: deps.Metrics, logger: deps.Logger.WithField("component", "images")}
	return &Services{
		Auth: &AuthService{
			store:  deps.Store,
			tokens: deps.Tokens,
			logger: deps.Logger.WithField("component", "auth"),
		},
		Restaurants: &RestaurantService{
			store:  deps.Store,
			images: uploader,
			logger: deps.Logger.WithField("component", "restaurants"),
		},
		Menus: &MenuService{
			store:  deps.Store,
			images: uploader,
			logger: deps.Logger.WithField("component", "menus"),
		},
		Reservations: &ReservationService{
			store:   deps.Store,
			events:  deps.Events,
			metrics: deps.Metrics,
			logger:  deps.Logger.WithField("component", "reservations"),
		},
	}
}

type imageUploader struct {
	images  ImageUploader
	metrics *metrics.Metrics
	logger  *log.Entry
}

// upload returns "" when file is nil. Rejected files are invalid input;
// backend failures are upstream failures and are not retried.
func (u *imageUploader) upload(ctx context.Context, file *ImageFile, folder string) (string, error) {
	if file == nil {
		return "", nil
	}
	if u.images == nil {
		return "", upstream("Image upload failed", errors.New("no image storage configured"))
	}
	url, err := u.images.Upload(ctx, file.Body, file.ContentType, folder)
	u.metrics.ImageUploaded(folder, err)
	if err != nil {
		if errors.Is(err, images.ErrInvalidImage) {
			return "", &Error{Kind: ErrInvalidInput, Message: "Only JPEG, JPG, and PNG files up to 5 MB are allowed", Err: err}
		}
		u.logger.WithError(err).WithField("folder", folder).Error("image upload failed")
		return "", upstream("Image upload failed", err)
	}
	u.logger.WithField("url", url).Debug("image uploaded")
	return url, nil
}

func storeFailure(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound("Not found")
	}
	return upstream("Database error", err)
}
