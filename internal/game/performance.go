package game

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ---------------------------------------------------------------------------
// Per-agent performance tracking
// ---------------------------------------------------------------------------

// Minimum samples before a ratio-based trait is judged.
const (
	perfMinTicks       = 120
	perfMinDangerTicks = 10
)

// PerfTracker accumulates one agent's behaviour over a round.
type PerfTracker struct {
	ID    int
	Label string
	Side  Side

	TicksAlive    int
	TicksMoving   int
	TicksInDanger int
	TicksEscaping int // in danger and moving

	Placed          int
	BlocksDestroyed int // by devices this agent owned
	PowerUps        int
	HitsTaken       int
	Survived        bool
}

// Performance samples every agent of a round once per tick and counts the
// events attributed to each.
type Performance struct {
	round    *Round
	trackers map[int]*PerfTracker
}

// NewPerformance creates trackers for every agent of r and subscribes to its
// event bus. Call Sample after each Tick.
func NewPerformance(r *Round) *Performance {
	p := &Performance{round: r, trackers: make(map[int]*PerfTracker, len(r.Agents))}
	for _, a := range r.Agents {
		p.trackers[a.ID] = &PerfTracker{ID: a.ID, Label: a.Label(), Side: a.Side, Survived: true}
	}
	bus := r.Events()
	bus.Subscribe(EventDevicePlaced, p.count(func(pt *PerfTracker) { pt.Placed++ }))
	bus.Subscribe(EventBlockDestroyed, p.count(func(pt *PerfTracker) { pt.BlocksDestroyed++ }))
	bus.Subscribe(EventPowerUpCollected, p.count(func(pt *PerfTracker) { pt.PowerUps++ }))
	bus.Subscribe(EventAgentDamaged, p.count(func(pt *PerfTracker) { pt.HitsTaken++ }))
	bus.Subscribe(EventAgentDied, p.count(func(pt *PerfTracker) { pt.Survived = false }))
	return p
}

func (p *Performance) count(fn func(*PerfTracker)) EventHandler {
	return func(e Event) {
		if pt, ok := p.trackers[e.AgentID]; ok {
			fn(pt)
		}
	}
}

// Sample records the current tick for every live agent.
func (p *Performance) Sample() {
	threats := p.round.Threats()
	for _, a := range p.round.Agents {
		if a.Dead {
			continue
		}
		pt, ok := p.trackers[a.ID]
		if !ok {
			continue
		}
		pt.TicksAlive++
		if a.Moving {
			pt.TicksMoving++
		}
		if threats.IsDangerous(a.Tile) {
			pt.TicksInDanger++
			if a.Moving {
				pt.TicksEscaping++
			}
		}
	}
}

// Tracker returns the tracker of agent id, or nil.
func (p *Performance) Tracker(id int) *PerfTracker { return p.trackers[id] }

// Grades grades every tracked agent.
func (p *Performance) Grades() []AgentGrade {
	return GradePerformance(p.trackers)
}

// ---------------------------------------------------------------------------
// Grading
// ---------------------------------------------------------------------------

// AgentGrade is the graded summary of one agent's round.
type AgentGrade struct {
	Label    string
	Side     Side
	ID       int
	Grade    string  // A+, A, B+, B, C+, C, D, F
	Score    float64 // 0-100
	Survived bool

	GoodTraits []string
	BadTraits  []string

	MovingPct float64
	EscapePct float64 // -1 when the agent was rarely in danger
	HitsTaken int
}

// GradePerformance computes grades from accumulated tracker data, ordered by
// side then score.
func GradePerformance(trackers map[int]*PerfTracker) []AgentGrade {
	grades := make([]AgentGrade, 0, len(trackers))
	for _, pt := range trackers {
		grades = append(grades, computeGrade(pt))
	}
	sort.Slice(grades, func(i, j int) bool {
		if grades[i].Side != grades[j].Side {
			return grades[i].Side < grades[j].Side
		}
		if grades[i].Score != grades[j].Score {
			return grades[i].Score > grades[j].Score
		}
		return grades[i].ID < grades[j].ID
	})
	return grades
}

func computeGrade(pt *PerfTracker) AgentGrade {
	g := AgentGrade{
		Label:     pt.Label,
		Side:      pt.Side,
		ID:        pt.ID,
		Survived:  pt.Survived,
		HitsTaken: pt.HitsTaken,
		MovingPct: perfFrac(pt.TicksMoving, pt.TicksAlive) * 100,
		EscapePct: -1,
	}

	score := 50.0
	if pt.Survived {
		score += 20
	}
	score -= 8 * float64(pt.HitsTaken)

	if pt.TicksInDanger >= perfMinDangerTicks {
		esc := perfFrac(pt.TicksEscaping, pt.TicksInDanger)
		g.EscapePct = esc * 100
		score += (esc - 0.5) * 30
	}

	score += math.Min(float64(pt.Placed), 10) * 1.5
	score += math.Min(float64(pt.BlocksDestroyed), 10)
	score += math.Min(float64(pt.PowerUps)*2, 10)

	if pt.TicksAlive >= perfMinTicks && perfFrac(pt.TicksMoving, pt.TicksAlive) < 0.2 {
		score -= 10
	}

	g.Score = perfClamp(score)
	g.Grade = PerfLetterGrade(g.Score)
	g.GoodTraits, g.BadTraits = perfDetectTraits(pt)
	return g
}

func perfDetectTraits(pt *PerfTracker) (good, bad []string) {
	if pt.Survived && pt.HitsTaken == 0 && pt.TicksAlive > 0 {
		good = append(good, "untouched")
	}
	if pt.BlocksDestroyed >= 5 {
		good = append(good, "crate_breaker")
	}
	if pt.PowerUps >= 3 {
		good = append(good, "collector")
	}
	if pt.TicksInDanger >= perfMinDangerTicks {
		esc := perfFrac(pt.TicksEscaping, pt.TicksInDanger)
		if esc > 0.7 {
			good = append(good, "quick_escape")
		} else if esc < 0.3 {
			bad = append(bad, "loiters_in_danger")
		}
	}

	if pt.HitsTaken >= 2 {
		bad = append(bad, "reckless")
	}
	if pt.TicksAlive >= perfMinTicks {
		if perfFrac(pt.TicksMoving, pt.TicksAlive) < 0.2 {
			bad = append(bad, "idle")
		}
		if pt.Placed == 0 {
			bad = append(bad, "passive")
		}
	}
	return
}

// ---------------------------------------------------------------------------
// Formatting
// ---------------------------------------------------------------------------

func sideName(s Side) string {
	if s == SidePlayer {
		return "PLAYER"
	}
	return "OPPONENT"
}

// FormatGrades returns a human-readable performance report.
func FormatGrades(grades []AgentGrade) string {
	var sb strings.Builder
	sb.WriteString("=== Agent Performance Grades ===\n")

	current := Side(-1)
	for _, g := range grades {
		if g.Side != current {
			current = g.Side
			fmt.Fprintf(&sb, "--- %s ---\n", sideName(g.Side))
		}

		status := "survived"
		if !g.Survived {
			status = "dead"
		}
		escape := "n/a"
		if g.EscapePct >= 0 {
			escape = fmt.Sprintf("%.0f%%", g.EscapePct)
		}
		fmt.Fprintf(&sb, "  %-3s %-4s [%s] score=%.0f hits=%d moving=%.0f%% escape=%s\n",
			g.Grade, g.Label, status, g.Score, g.HitsTaken, g.MovingPct, escape)

		if len(g.GoodTraits) > 0 {
			fmt.Fprintf(&sb, "       Good: %s\n", strings.Join(g.GoodTraits, ", "))
		}
		if len(g.BadTraits) > 0 {
			fmt.Fprintf(&sb, "       Bad:  %s\n", strings.Join(g.BadTraits, ", "))
		}
	}
	return sb.String()
}

// FormatGradesSummary returns a compact per-side summary across any number
// of rounds' grades.
func FormatGradesSummary(grades []AgentGrade) string {
	type sideStats struct {
		count     int
		scoreSum  float64
		survived  int
		goodCount map[string]int
		badCount  map[string]int
	}
	sides := map[Side]*sideStats{}
	for _, g := range grades {
		ss, ok := sides[g.Side]
		if !ok {
			ss = &sideStats{goodCount: map[string]int{}, badCount: map[string]int{}}
			sides[g.Side] = ss
		}
		ss.count++
		ss.scoreSum += g.Score
		if g.Survived {
			ss.survived++
		}
		for _, t := range g.GoodTraits {
			ss.goodCount[t]++
		}
		for _, t := range g.BadTraits {
			ss.badCount[t]++
		}
	}

	var sb strings.Builder
	for _, side := range []Side{SidePlayer, SideOpponent} {
		ss, ok := sides[side]
		if !ok {
			continue
		}
		avg := ss.scoreSum / float64(ss.count)
		fmt.Fprintf(&sb, "  %s: avg_score=%.1f (%s) survived=%d/%d\n",
			sideName(side), avg, PerfLetterGrade(avg), ss.survived, ss.count)
		if len(ss.goodCount) > 0 {
			fmt.Fprintf(&sb, "    Top good: %s\n", perfTopTraits(ss.goodCount, 4))
		}
		if len(ss.badCount) > 0 {
			fmt.Fprintf(&sb, "    Top bad:  %s\n", perfTopTraits(ss.badCount, 4))
		}
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func perfFrac(num, denom int) float64 {
	if denom <= 0 {
		return 0
	}
	return float64(num) / float64(denom)
}

func perfClamp(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

// PerfLetterGrade maps a 0-100 score to a letter grade.
func PerfLetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

func perfTopTraits(counts map[string]int, n int) string {
	type kv struct {
		trait string
		count int
	}
	items := make([]kv, 0, len(counts))
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].count != items[j].count {
			return items[i].count > items[j].count
		}
		return items[i].trait < items[j].trait
	})
	if len(items) > n {
		items = items[:n]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = fmt.Sprintf("%s(%d)", it.trait, it.count)
	}
	return strings.Join(parts, ", ")
}
