package game

import (
	"strings"
	"testing"
)

func TestSimLog_LastOfAndFormatRange(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(SimLogEntry{Tick: 3, Agent: "C1", Category: "brain", Key: "state", Value: "explore → chase"})
	sl.Add(SimLogEntry{Tick: 7, Agent: "C1", Category: "brain", Key: "state", Value: "chase → evade"})
	sl.Add(SimLogEntry{Tick: 9, Agent: "H0", Category: "agent_died", Key: "lives", Value: "0"})
	sl.AddVerbose(SimLogEntry{Tick: 8, Agent: "H0", Category: "move", Key: "position"})

	last, ok := sl.LastOf("brain", "state")
	if !ok || last.Tick != 7 || last.Value != "chase → evade" {
		t.Fatalf("unexpected last state change %+v", last)
	}
	if _, ok := sl.LastOf("move", ""); ok {
		t.Fatal("verbose entries should not be recorded when verbose is off")
	}

	out := sl.FormatRange(5, 9)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "[T=007] C1") || !strings.Contains(lines[1], "agent_died") {
		t.Fatalf("unexpected range:\n%s", out)
	}
	if sl.FormatRange(10, 20) != "" {
		t.Fatal("empty range should format to nothing")
	}
}
