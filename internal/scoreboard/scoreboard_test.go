package scoreboard

import (
	"path/filepath"
	"testing"

	"github.com/Garsondee/bomb-arena/internal/game"
	"github.com/rs/zerolog"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "scores.db"), zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestTracker_CountsEvents(t *testing.T) {
	bus := game.NewEventBus()
	tr := NewTracker(bus)
	for _, e := range []game.Event{
		{Kind: game.EventDevicePlaced},
		{Kind: game.EventDevicePlaced},
		{Kind: game.EventDeviceDetonated},
		{Kind: game.EventBlockDestroyed, PowerUp: game.PowerUpSpeed},
		{Kind: game.EventBlockDestroyed},
		{Kind: game.EventPowerUpCollected, PowerUp: game.PowerUpSpeed},
		{Kind: game.EventAgentDamaged, Lives: 0},
		{Kind: game.EventAgentDied},
	} {
		bus.Emit(e)
	}
	got := tr.rec
	if got.DevicesPlaced != 2 || got.DevicesDetonated != 1 || got.BlocksDestroyed != 2 ||
		got.PowerUpsDropped != 1 || got.PowerUpsCollected != 1 || got.Hits != 1 || got.Deaths != 1 {
		t.Fatalf("unexpected tallies %+v", got)
	}
}

func TestTracker_RecordFromRound(t *testing.T) {
	cfg := game.DefaultConfig()
	bus := game.NewEventBus()
	tr := NewTracker(bus)
	r := game.NewRound(&cfg, game.WithSeed(11), game.WithEventBus(bus), game.WithAutopilot())
	r.RunTicks(200, 0.1)

	rec := tr.Record(r)
	if rec.Seed != 11 || rec.Ticks != r.CurrentTick() || rec.Outcome != r.Outcome().String() {
		t.Fatalf("round fields not copied: %+v", rec)
	}
	if rec.DevicesPlaced == 0 {
		t.Fatal("autopilot agents should have placed devices in 200 ticks")
	}
	if rec.DevicesDetonated > rec.DevicesPlaced {
		t.Fatalf("more detonations (%d) than placements (%d)", rec.DevicesDetonated, rec.DevicesPlaced)
	}
}

func TestStore_SaveAndRecent(t *testing.T) {
	s := openTestStore(t)
	for i, outcome := range []game.Outcome{game.OutcomeWon, game.OutcomeLost, game.OutcomeWon} {
		rec := &RoundRecord{Seed: int64(i + 1), Ticks: 100 * (i + 1), Outcome: outcome.String()}
		if err := s.Save(rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if rec.ID == 0 {
			t.Fatal("Save should assign an ID")
		}
	}

	recent, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Seed != 3 || recent[1].Seed != 2 {
		t.Fatalf("expected seeds 3,2 newest first, got %+v", recent)
	}

	tally, err := s.Totals()
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if tally.Rounds != 3 || tally.Won != 2 || tally.Lost != 1 {
		t.Fatalf("unexpected tally %+v", tally)
	}
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	s, err := Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Save(&RoundRecord{Seed: 9, Outcome: "lost"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	recent, err := s.Recent(10)
	if err != nil || len(recent) != 1 || recent[0].Seed != 9 {
		t.Fatalf("record did not survive reopen: %+v %v", recent, err)
	}
}
