// Package metrics exposes Prometheus counters for the reservation workflow.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Reasons a reservation request is rejected
const (
	ReasonRestaurantNotFound = "restaurant_not_found"
	ReasonNoMenuItems        = "no_menu_items"
	ReasonNoValidIDs         = "no_valid_ids"
	ReasonStoreError         = "store_error"
)

type Metrics struct {
	reservationsCreated  prometheus.Counter
	reservationsRejected *prometheus.CounterVec
	droppedMenuItemIDs   prometheus.Counter
	statusUpdates        *prometheus.CounterVec
	imageUploads         *prometheus.CounterVec
	requestDuration      *prometheus.HistogramVec
}

// New registers the collectors with registerer (the default registerer when nil).
func New(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	return &Metrics{
		reservationsCreated: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dineontime_reservations_created_total",
			Help: "Total number of reservations created",
		})),
		reservationsRejected: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dineontime_reservations_rejected_total",
			Help: "Total number of reservation requests rejected, by reason",
		}, []string{"reason"})),
		droppedMenuItemIDs: register(registerer, prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dineontime_reservation_menu_ids_dropped_total",
			Help: "Requested menu item ids dropped as unparsable or not on the menu; repeats are not counted",
		})),
		statusUpdates: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dineontime_reservation_status_updates_total",
			Help: "Reservation status updates, split by whether the new status is a documented one",
		}, []string{"known"})),
		imageUploads: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dineontime_image_uploads_total",
			Help: "Image uploads by folder and outcome",
		}, []string{"folder", "outcome"})),
		requestDuration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dineontime_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status code",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "code"})),
	}
}

func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if err := registerer.Register(collector); err != nil {
		if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := already.ExistingCollector.(T)
			if !ok {
				panic(fmt.Sprintf("collector already registered with unexpected type %T", already.ExistingCollector))
			}
			return existing
		}
		panic(fmt.Sprintf("register collector: %v", err))
	}
	return collector
}

func (m *Metrics) ReservationCreated(droppedIDs int) {
	if m == nil {
		return
	}
	m.reservationsCreated.Inc()
	if droppedIDs > 0 {
		m.droppedMenuItemIDs.Add(float64(droppedIDs))
	}
}

func (m *Metrics) ReservationRejected(reason string) {
	if m == nil {
		return
	}
	m.reservationsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) StatusUpdated(known bool) {
	if m == nil {
		return
	}
	m.statusUpdates.WithLabelValues(strconv.FormatBool(known)).Inc()
}

func (m *Metrics) ImageUploaded(folder string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.imageUploads.WithLabelValues(folder, outcome).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(d.Seconds())
}
