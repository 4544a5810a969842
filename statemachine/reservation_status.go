// Package statemachine documents the reservation lifecycle. Owners may set
// any status; the graph here is advisory and only drives logging.
package statemachine

import (
	"fmt"
	"strings"

	"dine-on-time-api/models"
)

// Transition describes an expected status change
type Transition struct {
	From models.ReservationStatus `json:"from"`
	To   models.ReservationStatus `json:"to"`
}

// expectedTransitions is the lifecycle owners are expected to follow
var expectedTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusConfirmed, To: models.StatusCancelled},
}

var transitionSet = func() map[Transition]bool {
	m := make(map[Transition]bool, len(expectedTransitions))
	for _, t := range expectedTransitions {
		m[t] = true
	}
	return m
}()

// Statuses lists the documented statuses, initial status first
func Statuses() []models.ReservationStatus {
	return []models.ReservationStatus{models.StatusPending, models.StatusConfirmed, models.StatusCancelled}
}

// ExpectedFrom returns the statuses a reservation is expected to move to
func ExpectedFrom(status models.ReservationStatus) []models.ReservationStatus {
	var nexts []models.ReservationStatus
	for _, t := range expectedTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// Check reports why from → to falls outside the documented lifecycle. A nil
// result means the change is expected. Re-setting the same status is expected.
func Check(from, to models.ReservationStatus) error {
	if !to.Known() {
		return fmt.Errorf("unknown status %q, documented statuses are %s", to, join(Statuses()))
	}
	if from == to || transitionSet[Transition{From: from, To: to}] {
		return nil
	}
	nexts := ExpectedFrom(from)
	if len(nexts) == 0 {
		return fmt.Errorf("unexpected transition %s → %s: %s is terminal", from, to, from)
	}
	return fmt.Errorf("unexpected transition %s → %s, expected one of %s", from, to, join(nexts))
}

// AllTransitions returns the documented lifecycle
func AllTransitions() []Transition {
	out := make([]Transition, len(expectedTransitions))
	copy(out, expectedTransitions)
	return out
}

func join(statuses []models.ReservationStatus) string {
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
