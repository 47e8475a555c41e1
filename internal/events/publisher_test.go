package events_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Observer7203/Online-Store-Test/internal/events"
)

func TestNewPublisher_NoBrokers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	p := events.NewPublisher(nil, logger)
	assert.Nil(t, p, "no brokers should disable publishing")

	p = events.NewPublisher([]string{}, logger)
	assert.Nil(t, p)
}

func TestPublisher_NilIsSafe(t *testing.T) {
	var p *events.Publisher

	// Must not panic.
	p.PublishOrderCreated(context.Background(), events.OrderCreated{OrderID: 1})
	assert.NoError(t, p.Close())
}

func TestOrderCreated_Payload(t *testing.T) {
	userID := int64(42)
	ev := events.OrderCreated{
		OrderID:    7,
		UserID:     &userID,
		Email:      "a@b.c",
		Status:     "placed",
		TotalMinor: 3000,
		Items: []events.OrderCreatedItem{
			{ProductID: 5, Name: "Widget", PriceSnapshot: 1500, Qty: 2},
		},
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	payload, err := json.Marshal(ev)
	assert.NoError(t, err)

	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, float64(7), decoded["order_id"])
	assert.Equal(t, float64(42), decoded["user_id"])
	assert.Equal(t, "placed", decoded["status"])
	assert.Equal(t, float64(3000), decoded["total_minor"])
	assert.Len(t, decoded["items"], 1)

	// A guest order omits user_id entirely.
	payload, err = json.Marshal(events.OrderCreated{OrderID: 8})
	assert.NoError(t, err)
	assert.NotContains(t, string(payload), "user_id")
}
