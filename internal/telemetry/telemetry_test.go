package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/Garsondee/bomb-arena/internal/game"
)

func countOf(t *testing.T, counts []Count, metricName, attr string) int64 {
	t.Helper()
	for _, c := range counts {
		if c.Metric == metricName && c.Attr == attr {
			return c.Value
		}
	}
	return 0
}

func TestEventCounter_CountsByKind(t *testing.T) {
	p := NewProvider()
	defer p.Shutdown(context.Background())

	c, err := newEventCounter(p.Meter())
	if err != nil {
		t.Fatalf("newEventCounter: %v", err)
	}
	bus := game.NewEventBus()
	c.Attach(bus)

	bus.Emit(game.Event{Kind: game.EventDevicePlaced})
	bus.Emit(game.Event{Kind: game.EventDevicePlaced})
	bus.Emit(game.Event{Kind: game.EventAgentDied})
	c.RoundFinished(context.Background(), game.OutcomeWon)

	counts, err := p.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if got := countOf(t, counts, "arena.events", "event=device_placed"); got != 2 {
		t.Fatalf("expected 2 placements, got %d in %+v", got, counts)
	}
	if got := countOf(t, counts, "arena.events", "event=agent_died"); got != 1 {
		t.Fatalf("expected 1 death, got %d", got)
	}
	if got := countOf(t, counts, "arena.rounds", "outcome=won"); got != 1 {
		t.Fatalf("expected 1 won round, got %d", got)
	}
	if counts[0].Metric != "arena.events" || counts[len(counts)-1].Metric != "arena.rounds" {
		t.Fatalf("counts should be sorted by metric: %+v", counts)
	}

	out := FormatCounts(counts)
	if !strings.Contains(out, "event=device_placed") || !strings.Contains(out, "outcome=won") {
		t.Fatalf("unexpected format:\n%s", out)
	}
}

func TestProvider_InstallFeedsGlobalCounter(t *testing.T) {
	p := NewProvider()
	defer p.Shutdown(context.Background())
	p.Install()

	c, err := NewEventCounter()
	if err != nil {
		t.Fatalf("NewEventCounter: %v", err)
	}
	bus := game.NewEventBus()
	c.Attach(bus)
	bus.Emit(game.Event{Kind: game.EventBlockDestroyed})

	counts, err := p.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if got := countOf(t, counts, "arena.events", "event=block_destroyed"); got != 1 {
		t.Fatalf("installed provider should see the event, got %+v", counts)
	}
}

func TestProvider_EmptyBeforeAnyEvent(t *testing.T) {
	p := NewProvider()
	defer p.Shutdown(context.Background())
	counts, err := p.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected no counts, got %+v", counts)
	}
}
