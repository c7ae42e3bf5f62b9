package game

import "testing"

func TestEventBus_DeliversInOrder(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe(EventAgentDied, func(Event) { got = append(got, "first") })
	bus.SubscribeAll(func(e Event) { got = append(got, "all:"+string(e.Kind)) })
	bus.Subscribe(EventAgentDied, func(Event) { got = append(got, "last") })

	bus.Emit(Event{Kind: EventAgentDied})
	bus.Emit(Event{Kind: EventDevicePlaced})

	want := []string{"first", "all:agent_died", "last", "all:device_placed"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestEventBus_NoSubscribers(t *testing.T) {
	NewEventBus().Emit(Event{Kind: EventBlockDestroyed})
}

func TestRound_EmitsOnSharedBus(t *testing.T) {
	bus := NewEventBus()
	counts := map[EventKind]int{}
	bus.SubscribeAll(func(e Event) { counts[e.Kind]++ })

	g := openGrid(15, 15, 0)
	r := newTestRound(t, g, WithHumanAt(TilePos{1, 1}), WithEventBus(bus))
	if r.Events() != bus {
		t.Fatal("round should emit on the supplied bus")
	}
	r.Detonate(r.Place(r.Human()))
	r.resolveDamage()

	for _, k := range []EventKind{EventDevicePlaced, EventDeviceDetonated, EventAgentDamaged} {
		if counts[k] != 1 {
			t.Fatalf("expected one %s event, got %d", k, counts[k])
		}
	}
}
