package main

import (
	"context"

	"github.com/Garsondee/bomb-arena/internal/game"
	"github.com/Garsondee/bomb-arena/internal/logging"
	"github.com/Garsondee/bomb-arena/internal/scoreboard"
	"github.com/Garsondee/bomb-arena/internal/telemetry"
	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// windowScale is the integer upscale applied to the logical screen.
const windowScale = 2

// hudHeight is the strip below the arena reserved for status text.
const hudHeight = 40

// arena is the ebiten.Game driving one round at a time.
type arena struct {
	cfg     game.Config
	log     zerolog.Logger
	store   *scoreboard.Store
	counter *telemetry.EventCounter

	round   *game.Round
	tracker *scoreboard.Tracker
	feed    *eventFeed
	saved   bool
	rounds  int

	prevKeys map[ebiten.Key]bool
	status   string // transient HUD message
	statusT  int    // ticks left for status
	tally    scoreboard.Tally
}

func newArena(cfg game.Config, log zerolog.Logger, store *scoreboard.Store, counter *telemetry.EventCounter) *arena {
	a := &arena{
		cfg:      cfg,
		log:      log,
		store:    store,
		counter:  counter,
		feed:     newEventFeed(),
		prevKeys: make(map[ebiten.Key]bool),
	}
	a.refreshTally()
	a.reset()
	return a
}

// reset starts a fresh round on a new event bus. Only the first round uses
// the configured seed; later ones are time seeded.
func (a *arena) reset() {
	cfg := a.cfg
	if a.rounds > 0 {
		cfg.Seed = 0
	}
	a.rounds++

	bus := game.NewEventBus()
	logging.AttachEvents(bus, a.log)
	a.counter.Attach(bus)
	a.tracker = scoreboard.NewTracker(bus)
	a.round = game.NewRound(&cfg, game.WithEventBus(bus), game.WithLogger(a.log))
	a.feed.clear()
	a.feed.attach(a.round)
	a.saved = false
}

func (a *arena) Update() error {
	in := a.handleInput()

	if a.statusT > 0 {
		a.statusT--
	}
	if a.round.Outcome() != game.OutcomePlaying {
		a.finish()
		return nil
	}
	a.round.SetIntent(in)
	a.round.Tick(1 / float64(ebiten.TPS()))
	return nil
}

// justPressed is edge-triggered: true only on the frame k goes down.
func (a *arena) justPressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !a.prevKeys[k]
}

// handleInput turns the keyboard into an intent and handles the meta keys.
func (a *arena) handleInput() game.Intent {
	cur := map[ebiten.Key]bool{}
	in := intentFromKeys(ebiten.IsKeyPressed)
	in.Place = a.justPressed(cur, ebiten.KeySpace)

	if a.justPressed(cur, ebiten.KeyR) {
		a.finish()
		a.reset()
		a.flash("new round")
	}
	if a.justPressed(cur, ebiten.KeyC) {
		if err := clipboard.WriteAll(a.round.Snapshot().Report()); err != nil {
			a.log.Warn().Err(err).Msg("clipboard write failed")
			a.flash("clipboard unavailable")
		} else {
			a.flash("report copied")
		}
	}
	a.prevKeys = cur
	return in
}

// intentFromKeys maps held movement keys to a single cardinal step.
// Vertical keys win over horizontal ones when both are held.
func intentFromKeys(pressed func(ebiten.Key) bool) game.Intent {
	var in game.Intent
	switch {
	case pressed(ebiten.KeyW) || pressed(ebiten.KeyArrowUp):
		in.DRow = -1
	case pressed(ebiten.KeyS) || pressed(ebiten.KeyArrowDown):
		in.DRow = 1
	case pressed(ebiten.KeyA) || pressed(ebiten.KeyArrowLeft):
		in.DCol = -1
	case pressed(ebiten.KeyD) || pressed(ebiten.KeyArrowRight):
		in.DCol = 1
	}
	return in
}

func (a *arena) flash(msg string) {
	a.status = msg
	a.statusT = 2 * ebiten.TPS()
}

// finish records a decided round once.
func (a *arena) finish() {
	if a.saved || a.round.Outcome() == game.OutcomePlaying {
		return
	}
	a.saved = true
	a.counter.RoundFinished(context.Background(), a.round.Outcome())
	if a.store == nil {
		return
	}
	rec := a.tracker.Record(a.round)
	if err := a.store.Save(&rec); err != nil {
		a.log.Error().Err(err).Msg("Failed to save round")
		return
	}
	a.refreshTally()
}

func (a *arena) refreshTally() {
	if a.store == nil {
		return
	}
	t, err := a.store.Totals()
	if err != nil {
		a.log.Warn().Err(err).Msg("Failed to read scoreboard totals")
		return
	}
	a.tally = t
}

// Layout is the arena, the HUD strip below it and the event feed to its right.
func (a *arena) Layout(_, _ int) (int, int) {
	return int(float64(a.cfg.GridCols)*a.cfg.TileSize) + feedPanelWidth, int(float64(a.cfg.GridRows)*a.cfg.TileSize) + hudHeight
}
