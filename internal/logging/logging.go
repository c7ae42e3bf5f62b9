package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/Garsondee/bomb-arena/internal/game"
	"github.com/rs/zerolog"
)

// ParseLevel maps a case-insensitive level name to a zerolog level,
// falling back to info.
func ParseLevel(name string) zerolog.Level {
	switch strings.ToUpper(name) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New returns a timestamped logger writing to w at level. Writing to a
// terminal uses the human-readable console format.
func New(w io.Writer, level string) zerolog.Logger {
	out := w
	if f, ok := w.(*os.File); ok && (f == os.Stdout || f == os.Stderr) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// AttachEvents logs every round event at debug level, deaths at info.
func AttachEvents(bus *game.EventBus, log zerolog.Logger) {
	bus.SubscribeAll(func(e game.Event) {
		ev := log.Debug()
		if e.Kind == game.EventAgentDied {
			ev = log.Info()
		}
		ev = ev.Str("event", string(e.Kind)).
			Int("tick", e.Tick).
			Int("agent", e.AgentID).
			Int("col", e.Tile.Col).
			Int("row", e.Tile.Row)
		switch e.Kind {
		case game.EventDevicePlaced, game.EventDeviceDetonated:
			ev = ev.Int("device", e.DeviceID)
		case game.EventBlockDestroyed, game.EventPowerUpCollected:
			ev = ev.Str("powerup", e.PowerUp.String())
		case game.EventAgentDamaged, game.EventAgentDied:
			ev = ev.Int("lives", e.Lives)
		}
		ev.Msg("round event")
	})
}
