package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *captureWriter) Close() error {
	w.closed = true
	return nil
}

func TestNew(t *testing.T) {
	ev := New(EntityReservation, ActionCreated, 17, map[string]int{"guests": 2})
	assert.Equal(t, "17", ev.ResourceID)
	assert.Equal(t, "reservation.created", ev.Topic)
	assert.False(t, ev.OccurredAt.IsZero())
}

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &captureWriter{}
	p := &KafkaPublisher{writer: w}

	ev := New(EntityReservation, ActionStatusChanged, 3, nil)
	ev.Metadata["restaurantId"] = "9"
	require.NoError(t, p.Publish(context.Background(), ev))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, []byte("3"), w.msgs[0].Key)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &decoded))
	assert.Equal(t, "reservation", decoded["entity"])
	assert.Equal(t, "status_changed", decoded["action"])
	assert.Equal(t, "3", decoded["resourceId"])
	assert.Equal(t, map[string]any{"restaurantId": "9"}, decoded["metadata"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisher_WriteError(t *testing.T) {
	p := &KafkaPublisher{writer: &captureWriter{err: errors.New("no brokers")}}
	err := p.Publish(context.Background(), New(EntityReservation, ActionCreated, 1, nil))
	assert.ErrorContains(t, err, "publish reservation.created")
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), Event{}))
	assert.NoError(t, p.Close())
}
