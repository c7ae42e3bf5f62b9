package telemetry

import (
	"context"
	"fmt"

	"github.com/Garsondee/bomb-arena/internal/game"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/Garsondee/bomb-arena/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// EventCounter counts round events on the global OTel meter provider.
// Binaries install a Provider first; without one the counts are dropped.
type EventCounter struct {
	events metric.Int64Counter
	rounds metric.Int64Counter
}

// NewEventCounter creates the instruments.
func NewEventCounter() (*EventCounter, error) {
	return newEventCounter(meter())
}

func newEventCounter(m metric.Meter) (*EventCounter, error) {
	c := &EventCounter{}
	var err error

	c.events, err = m.Int64Counter(
		"arena.events",
		metric.WithDescription("Round events emitted, by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating events counter: %w", err)
	}

	c.rounds, err = m.Int64Counter(
		"arena.rounds",
		metric.WithDescription("Finished rounds, by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating rounds counter: %w", err)
	}
	return c, nil
}

// Attach counts every event emitted on bus.
func (c *EventCounter) Attach(bus *game.EventBus) {
	bus.SubscribeAll(func(e game.Event) {
		c.events.Add(context.Background(), 1,
			metric.WithAttributes(attribute.String("event", string(e.Kind))))
	})
}

// RoundFinished counts a decided round.
func (c *EventCounter) RoundFinished(ctx context.Context, o game.Outcome) {
	c.rounds.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", o.String())))
}
