// Package handlers adapts HTTP requests to the services package.
package handlers

import (
	"context"

	"dine-on-time-api/services"

	log "github.com/sirupsen/logrus"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc    *services.Services
	db     Pinger
	logger *log.Entry
}

func New(svc *services.Services, db Pinger, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.NewEntry(log.StandardLogger())
	}
	return &Handler{svc: svc, db: db, logger: logger}
}
