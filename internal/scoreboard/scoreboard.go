package scoreboard

import (
	"fmt"

	"github.com/Garsondee/bomb-arena/internal/game"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// RoundRecord is the persisted summary of one finished round.
type RoundRecord struct {
	gorm.Model
	Seed           int64  `json:"seed" gorm:"index"`
	Ticks          int    `json:"ticks"`
	Outcome        string `json:"outcome" gorm:"size:16;index"`
	Reason         string `json:"reason" gorm:"size:32"`
	HumansAlive    int    `json:"humansAlive"`
	ComputersAlive int    `json:"computersAlive"`

	DevicesPlaced     int `json:"devicesPlaced"`
	DevicesDetonated  int `json:"devicesDetonated"`
	BlocksDestroyed   int `json:"blocksDestroyed"`
	PowerUpsDropped   int `json:"powerUpsDropped"`
	PowerUpsCollected int `json:"powerUpsCollected"`
	Hits              int `json:"hits"`
	Deaths            int `json:"deaths"`
}

func (*RoundRecord) TableName() string {
	return "rounds"
}

// Tracker tallies the events of one round.
type Tracker struct {
	rec RoundRecord
}

// NewTracker subscribes a fresh tracker to bus.
func NewTracker(bus *game.EventBus) *Tracker {
	t := &Tracker{}
	bus.SubscribeAll(t.handle)
	return t
}

func (t *Tracker) handle(e game.Event) {
	switch e.Kind {
	case game.EventDevicePlaced:
		t.rec.DevicesPlaced++
	case game.EventDeviceDetonated:
		t.rec.DevicesDetonated++
	case game.EventBlockDestroyed:
		t.rec.BlocksDestroyed++
		if e.PowerUp != game.PowerUpNone {
			t.rec.PowerUpsDropped++
		}
	case game.EventPowerUpCollected:
		t.rec.PowerUpsCollected++
	case game.EventAgentDamaged:
		t.rec.Hits++
	case game.EventAgentDied:
		t.rec.Deaths++
	}
}

// Record returns the tallies so far together with r's seed, tick count and
// outcome.
func (t *Tracker) Record(r *game.Round) RoundRecord {
	rec := t.rec
	res := game.DetermineOutcome(r.Agents)
	rec.Seed = r.Seed()
	rec.Ticks = r.CurrentTick()
	rec.Outcome = r.Outcome().String()
	rec.Reason = res.Description
	rec.HumansAlive = res.HumansAlive
	rec.ComputersAlive = res.ComputersAlive
	return rec
}

// Store persists round records in a SQLite file.
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// Open opens (creating if needed) the SQLite database at path and migrates
// the schema.
func Open(path string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open scoreboard %s: %w", path, err)
	}
	if err := db.AutoMigrate(&RoundRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate scoreboard: %w", err)
	}
	log.Info().Str("path", path).Msg("Using local SQLite scoreboard")
	return &Store{db: db, log: log}, nil
}

// Save inserts rec and fills in its ID.
func (s *Store) Save(rec *RoundRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}
	s.log.Debug().Uint("id", rec.ID).Int64("seed", rec.Seed).Str("outcome", rec.Outcome).Msg("round saved")
	return nil
}

// Recent returns up to n records, newest first.
func (s *Store) Recent(n int) ([]RoundRecord, error) {
	var out []RoundRecord
	if err := s.db.Order("id desc").Limit(n).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to query rounds: %w", err)
	}
	return out, nil
}

// Tally is the win/loss count over every stored round.
type Tally struct {
	Rounds int64
	Won    int64
	Lost   int64
}

// Totals counts stored rounds by outcome.
func (s *Store) Totals() (Tally, error) {
	var t Tally
	q := s.db.Model(&RoundRecord{})
	if err := q.Count(&t.Rounds).Error; err != nil {
		return Tally{}, fmt.Errorf("failed to count rounds: %w", err)
	}
	if err := s.db.Model(&RoundRecord{}).Where("outcome = ?", game.OutcomeWon.String()).Count(&t.Won).Error; err != nil {
		return Tally{}, fmt.Errorf("failed to count wins: %w", err)
	}
	if err := s.db.Model(&RoundRecord{}).Where("outcome = ?", game.OutcomeLost.String()).Count(&t.Lost).Error; err != nil {
		return Tally{}, fmt.Errorf("failed to count losses: %w", err)
	}
	return t, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql interface: %w", err)
	}
	return sqlDB.Close()
}
