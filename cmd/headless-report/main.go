package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/bomb-arena/internal/config"
	"github.com/Garsondee/bomb-arena/internal/game"
	"github.com/Garsondee/bomb-arena/internal/logging"
	"github.com/Garsondee/bomb-arena/internal/scoreboard"
	"github.com/Garsondee/bomb-arena/internal/telemetry"
	"github.com/rs/zerolog"
)

const tickDT = 1.0 / 60

type runStats struct {
	runIndex int
	seed     int64
	ticks    int
	outcome  game.Outcome
	reason   string

	firstPlaceTick  int
	firstDetTick    int
	firstBlockTick  int
	firstHitTick    int
	firstDeathTick  int
	firstPickupTick int

	stateChanges    int
	evades          int
	lastStateChange string
	deathWindow     string // SimLog lines leading up to the first death

	record   scoreboard.RoundRecord
	survived map[string]bool
	grades   []game.AgentGrade
	report   string
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var configPath string
	var dbPath string
	var logLevel string
	var showMap bool
	var showGrades bool
	var deathWindow int

	flag.IntVar(&runs, "runs", 5, "number of headless rounds")
	flag.IntVar(&ticks, "ticks", 7200, "tick limit per round (60 ticks = 1s)")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&configPath, "config", "", "config file (json, toml or yaml)")
	flag.StringVar(&dbPath, "db", "", "sqlite scoreboard to append results to")
	flag.StringVar(&logLevel, "log-level", "warn", "trace, debug, info, warn or error")
	flag.BoolVar(&showMap, "map", false, "print the final arena of each run")
	flag.BoolVar(&showGrades, "grades", true, "print per-agent performance grades")
	flag.IntVar(&deathWindow, "death-window", 0, "print the sim log for this many ticks before the first death (0 = off)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}

	log := logging.New(os.Stderr, logLevel)
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	var store *scoreboard.Store
	if dbPath != "" {
		store, err = scoreboard.Open(dbPath, log)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			return
		}
		defer store.Close()
	}

	metrics := telemetry.NewProvider()
	metrics.Install()
	defer metrics.Shutdown(context.Background())
	counter, err := telemetry.NewEventCounter()
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}

	fmt.Printf("=== Headless Arena Report ===\n")
	fmt.Printf("grid=%dx%d opponents=%d runs=%d ticks=%d seed_base=%d seed_step=%d\n\n",
		cfg.GridCols, cfg.GridRows, cfg.OpponentCount, runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runAutopilot(cfg, log, counter, i+1, seed, ticks, deathWindow)
		all = append(all, stats)
		printRun(stats, showMap, showGrades)
		if store != nil {
			if err := store.Save(&stats.record); err != nil {
				log.Error().Err(err).Int64("seed", seed).Msg("Failed to save round")
			}
		}
	}

	printAggregate(all)

	counts, err := metrics.Counts(context.Background())
	if err != nil {
		log.Warn().Err(err).Msg("Failed to collect metrics")
	} else {
		fmt.Println("\n=== Telemetry ===")
		fmt.Print(telemetry.FormatCounts(counts))
	}

	if store != nil {
		printRecent(store, runs)
	}
}

// runAutopilot plays one round with every agent brain-driven. A positive
// deathWindow captures that many ticks of SimLog before the first death.
func runAutopilot(cfg game.Config, log zerolog.Logger, counter *telemetry.EventCounter, runIndex int, seed int64, ticks int, deathWindow int) runStats {
	bus := game.NewEventBus()
	logging.AttachEvents(bus, log)
	counter.Attach(bus)
	tracker := scoreboard.NewTracker(bus)
	r := game.NewRound(&cfg,
		game.WithSeed(seed),
		game.WithEventBus(bus),
		game.WithLogger(log),
		game.WithAutopilot(),
	)
	perf := game.NewPerformance(r)
	for i := 0; i < ticks && r.Outcome() == game.OutcomePlaying; i++ {
		r.Tick(tickDT)
		perf.Sample()
	}

	entries := r.SimLog.Entries()
	evades := 0
	for _, e := range entries {
		if e.Category == "brain" && strings.HasSuffix(e.Value, game.BrainEvade.String()) {
			evades++
		}
	}
	counter.RoundFinished(context.Background(), r.Outcome())

	lastChange := "none"
	if e, ok := r.SimLog.LastOf("brain", "state"); ok {
		lastChange = fmt.Sprintf("%s %s @%d", e.Agent, e.Value, e.Tick)
	}
	firstDeath := firstTick(entries, string(game.EventAgentDied), "")
	window := ""
	if deathWindow > 0 && firstDeath >= 0 {
		window = r.SimLog.FormatRange(max(0, firstDeath-deathWindow), firstDeath)
	}

	survived := map[string]bool{}
	for _, a := range r.Agents {
		survived[a.Label()] = !a.Dead
	}

	return runStats{
		runIndex:        runIndex,
		seed:            seed,
		ticks:           r.CurrentTick(),
		outcome:         r.Outcome(),
		reason:          game.DetermineOutcome(r.Agents).Description,
		firstPlaceTick:  firstTick(entries, string(game.EventDevicePlaced), ""),
		firstDetTick:    firstTick(entries, string(game.EventDeviceDetonated), ""),
		firstBlockTick:  firstTick(entries, string(game.EventBlockDestroyed), ""),
		firstHitTick:    firstTick(entries, string(game.EventAgentDamaged), ""),
		firstDeathTick:  firstDeath,
		firstPickupTick: firstTick(entries, string(game.EventPowerUpCollected), ""),
		stateChanges:    r.SimLog.Count("brain", "state"),
		evades:          evades,
		lastStateChange: lastChange,
		deathWindow:     window,
		record:          tracker.Record(r),
		survived:        survived,
		grades:          perf.Grades(),
		report:          r.Snapshot().Report(),
	}
}

func firstTick(entries []game.SimLogEntry, category, contains string) int {
	for _, e := range entries {
		if e.Category != category {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

// detectStalemate reports whether a run hit the tick limit without anyone
// trading damage in a meaningful way.
func detectStalemate(rs runStats) (bool, string) {
	if rs.outcome != game.OutcomePlaying {
		return false, "decided:" + rs.reason
	}
	var reasons []string
	if rs.record.Hits == 0 {
		reasons = append(reasons, "no_hits")
	}
	if rs.record.Deaths == 0 {
		reasons = append(reasons, "no_deaths")
	}
	if rs.record.DevicesPlaced > 0 && rs.record.BlocksDestroyed == 0 {
		reasons = append(reasons, "no_progress_through_crates")
	}
	if len(reasons) == 0 {
		return false, "attrition_in_progress"
	}
	return true, strings.Join(reasons, ",")
}

func printRun(rs runStats, showMap, showGrades bool) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("outcome=%s reason=%s ticks=%d (%.1fs)\n", rs.outcome, rs.reason, rs.ticks, float64(rs.ticks)*tickDT)
	fmt.Printf("phase_markers: first_place=%d first_detonation=%d first_block=%d first_hit=%d first_death=%d first_pickup=%d\n",
		rs.firstPlaceTick, rs.firstDetTick, rs.firstBlockTick, rs.firstHitTick, rs.firstDeathTick, rs.firstPickupTick)
	fmt.Printf("event_totals: placed=%d detonated=%d blocks=%d drops=%d pickups=%d hits=%d deaths=%d\n",
		rs.record.DevicesPlaced, rs.record.DevicesDetonated, rs.record.BlocksDestroyed,
		rs.record.PowerUpsDropped, rs.record.PowerUpsCollected, rs.record.Hits, rs.record.Deaths)
	fmt.Printf("brain: state_changes=%d evades=%d last_change=%s\n", rs.stateChanges, rs.evades, rs.lastStateChange)
	if stale, why := detectStalemate(rs); stale {
		fmt.Printf("stalemate: %s\n", why)
	}
	fmt.Printf("survivors: %s\n", joinLabels(rs.survived, true))
	if rs.deathWindow != "" {
		fmt.Printf("before first death:\n%s", rs.deathWindow)
	}
	if showGrades {
		fmt.Print(game.FormatGrades(rs.grades))
	}
	if showMap {
		fmt.Print(rs.report)
	}
	fmt.Println()
}

func printAggregate(all []runStats) {
	won, lost, open := 0, 0, 0
	totalTicks := 0
	totalPlaced := 0
	totalBlocks := 0
	totalHits := 0
	totalDeaths := 0
	totalPickups := 0
	stalemates := 0

	hitTicks := make([]int, 0, len(all))
	deathTicks := make([]int, 0, len(all))
	pickupTicks := make([]int, 0, len(all))

	type agentAgg struct {
		rounds   int
		survived int
	}
	agents := map[string]*agentAgg{}
	var grades []game.AgentGrade

	for _, rs := range all {
		switch rs.outcome {
		case game.OutcomeWon:
			won++
		case game.OutcomeLost:
			lost++
		default:
			open++
		}
		totalTicks += rs.ticks
		totalPlaced += rs.record.DevicesPlaced
		totalBlocks += rs.record.BlocksDestroyed
		totalHits += rs.record.Hits
		totalDeaths += rs.record.Deaths
		totalPickups += rs.record.PowerUpsCollected
		if stale, _ := detectStalemate(rs); stale {
			stalemates++
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
		if rs.firstDeathTick >= 0 {
			deathTicks = append(deathTicks, rs.firstDeathTick)
		}
		if rs.firstPickupTick >= 0 {
			pickupTicks = append(pickupTicks, rs.firstPickupTick)
		}
		grades = append(grades, rs.grades...)
		for label, alive := range rs.survived {
			ag, ok := agents[label]
			if !ok {
				ag = &agentAgg{}
				agents[label] = ag
			}
			ag.rounds++
			if alive {
				ag.survived++
			}
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d won=%d lost=%d undecided=%d stalemates=%d\n", len(all), won, lost, open, stalemates)
	fmt.Printf("avg_ticks=%.1f\n", avg(totalTicks, len(all)))
	fmt.Printf("avg_events_per_run: placed=%.1f blocks=%.1f hits=%.1f deaths=%.1f pickups=%.1f\n",
		avg(totalPlaced, len(all)), avg(totalBlocks, len(all)), avg(totalHits, len(all)), avg(totalDeaths, len(all)), avg(totalPickups, len(all)))
	fmt.Printf("phase_marker_avg_ticks: first_hit=%s first_death=%s first_pickup=%s\n",
		avgTickString(hitTicks), avgTickString(deathTicks), avgTickString(pickupTicks))

	fmt.Println("\n=== Agent Survival ===")
	labels := make([]string, 0, len(agents))
	for l := range agents {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		ag := agents[l]
		fmt.Printf("  %-4s survival=%.0f%% (%d/%d)\n", l, avg(ag.survived, ag.rounds)*100, ag.survived, ag.rounds)
	}

	fmt.Println("\n=== Grades By Side ===")
	fmt.Print(game.FormatGradesSummary(grades))
}

// printRecent lists the newest stored rounds, at most n.
func printRecent(store *scoreboard.Store, n int) {
	recs, err := store.Recent(min(n, 10))
	if err != nil {
		fmt.Printf("error: %v\n", err)
		return
	}
	fmt.Println("\n=== Recent Scoreboard Rounds ===")
	fmt.Print(formatRecent(recs))
}

func formatRecent(recs []scoreboard.RoundRecord) string {
	var sb strings.Builder
	for _, rec := range recs {
		fmt.Fprintf(&sb, "  #%-4d seed=%-6d outcome=%-7s ticks=%-5d hits=%d deaths=%d blocks=%d\n",
			rec.ID, rec.Seed, rec.Outcome, rec.Ticks, rec.Hits, rec.Deaths, rec.BlocksDestroyed)
	}
	return sb.String()
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

// joinLabels lists the labels whose value equals want, sorted.
func joinLabels(m map[string]bool, want bool) string {
	labels := make([]string, 0, len(m))
	for k, v := range m {
		if v == want {
			labels = append(labels, k)
		}
	}
	if len(labels) == 0 {
		return "none"
	}
	sort.Strings(labels)
	return strings.Join(labels, ",")
}
