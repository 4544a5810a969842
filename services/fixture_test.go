package services

import (
	"context"
	"fmt"
	"io"
	"testing"

	"dine-on-time-api/config"
	"dine-on-time-api/events"
	"dine-on-time-api/metrics"
	"dine-on-time-api/models"
	"dine-on-time-api/store"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakeImages struct {
	err   error
	calls int
}

func (f *fakeImages) Upload(_ context.Context, _ []byte, _ string, folder string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("https://img.test/%s/%d", folder, f.calls), nil
}

type fakeTokens struct{}

func (fakeTokens) GenerateToken(u *models.User) (string, error) {
	return fmt.Sprintf("token-%d-%s", u.ID, u.Role), nil
}

type recordingPublisher struct {
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.Event) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fixture struct {
	ctx       context.Context
	store     *store.Store
	svc       *Services
	images    *fakeImages
	publisher *recordingPublisher
	registry  *prometheus.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := config.OpenDB(config.DriverSQLite, ":memory:")
	require.NoError(t, err)

	logger := log.New()
	logger.SetOutput(io.Discard)

	f := &fixture{
		ctx:       context.Background(),
		store:     store.New(db),
		images:    &fakeImages{},
		publisher: &recordingPublisher{},
		registry:  prometheus.NewRegistry(),
	}
	f.svc = New(Deps{
		Store:   f.store,
		Images:  f.images,
		Tokens:  fakeTokens{},
		Events:  f.publisher,
		Metrics: metrics.New(f.registry),
		Logger:  logger,
	})
	return f
}

// restaurant creates a restaurant owned by ownerID with one menu item per
// price, named A, B, ...
func (f *fixture) restaurant(t *testing.T, ownerID uint, email string, prices ...float64) (*models.Restaurant, []models.MenuItem) {
	t.Helper()
	r, err := f.svc.Restaurants.Create(f.ctx, ownerID, RestaurantInput{
		Name:        "Restaurant " + email,
		Address:     "1 Main St",
		PhoneNumber: "555-0100",
		Email:       email,
		Description: "Cosy",
	})
	require.NoError(t, err)

	var items []models.MenuItem
	for i, p := range prices {
		menu, err := f.svc.Menus.AddItem(f.ctx, ownerID, r.ID, AddMenuItemInput{Name: string(rune('A' + i)), Price: p})
		require.NoError(t, err)
		items = menu.Items
	}
	return r, items
}

func idStr(id uint) string { return fmt.Sprint(id) }

// counter sums every series of the named counter in the fixture registry.
func (f *fixture) counter(t *testing.T, name string) float64 {
	t.Helper()
	families, err := f.registry.Gather()
	require.NoError(t, err)
	var total float64
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			total += m.GetCounter().GetValue()
		}
	}
	return total
}
