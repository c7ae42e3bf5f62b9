package game

// EventKind names a notable moment in the round for audio, feedback and
// score-tracking collaborators.
type EventKind string

const (
	EventDevicePlaced     EventKind = "device_placed"
	EventDeviceDetonated  EventKind = "device_detonated"
	EventAgentDamaged     EventKind = "agent_damaged"
	EventAgentDied        EventKind = "agent_died"
	EventBlockDestroyed   EventKind = "block_destroyed"
	EventPowerUpCollected EventKind = "powerup_collected"
)

// AllEventKinds lists every kind the round emits.
var AllEventKinds = []EventKind{
	EventDevicePlaced,
	EventDeviceDetonated,
	EventAgentDamaged,
	EventAgentDied,
	EventBlockDestroyed,
	EventPowerUpCollected,
}

// Event is one emitted notification. AgentID is -1 when no agent is involved.
type Event struct {
	Kind     EventKind
	Tick     int
	AgentID  int
	DeviceID int
	Tile     TilePos
	PowerUp  PowerUpKind
	Lives    int // lives left after agent_damaged / agent_died
}

// EventHandler receives events synchronously inside the tick that produced them.
type EventHandler func(Event)

// EventBus fans events out to subscribers in subscription order.
type EventBus struct {
	handlers map[EventKind][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[EventKind][]EventHandler)}
}

// Subscribe registers fn for one kind.
func (eb *EventBus) Subscribe(k EventKind, fn EventHandler) {
	eb.handlers[k] = append(eb.handlers[k], fn)
}

// SubscribeAll registers fn for every kind.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for _, k := range AllEventKinds {
		eb.Subscribe(k, fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Kind] {
		fn(e)
	}
}
