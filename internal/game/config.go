package game

import "fmt"

// Config is the round-wide configuration. It is built once before a round
// starts and shared by pointer; nothing in the simulation writes to it.
type Config struct {
	GridCols         int     `mapstructure:"gridCols"`
	GridRows         int     `mapstructure:"gridRows"`
	TileSize         float64 `mapstructure:"tileSize"` // pixels per tile edge
	BreakableDensity float64 `mapstructure:"breakableDensity"`

	FuseDuration       float64 `mapstructure:"fuseDuration"`  // seconds
	BlastLifetime      float64 `mapstructure:"blastLifetime"` // seconds
	DefaultBlastRadius int     `mapstructure:"defaultBlastRadius"`

	AgentSpeed              float64 `mapstructure:"agentSpeed"` // pixels per second
	MaxSpeed                float64 `mapstructure:"maxSpeed"`
	AgentSize               float64 `mapstructure:"agentSize"` // collision box edge, pixels
	AgentLives              int     `mapstructure:"agentLives"`
	AgentBombCapacity       int     `mapstructure:"agentBombCapacity"`
	InvulnerabilityDuration float64 `mapstructure:"invulnerabilityDuration"`

	PowerUpDropChance float64 `mapstructure:"powerUpDropChance"`
	CapacityBonus     int     `mapstructure:"capacityBonus"`
	RadiusBonus       int     `mapstructure:"radiusBonus"`
	SpeedBonus        float64 `mapstructure:"speedBonus"`

	OpponentCount      int     `mapstructure:"opponentCount"`
	DangerFuseFraction float64 `mapstructure:"dangerFuseFraction"` // final share of the fuse treated as imminent
	AttackWindow       int     `mapstructure:"attackWindow"`       // tiles
	PlacementCooldown  float64 `mapstructure:"placementCooldown"`  // seconds

	Seed int64 `mapstructure:"seed"` // 0 = time based
}

// DefaultConfig returns the classic 15×15 arena with three opponents.
func DefaultConfig() Config {
	return Config{
		GridCols:         15,
		GridRows:         15,
		TileSize:         32,
		BreakableDensity: 0.6,

		FuseDuration:       3.0,
		BlastLifetime:      0.5,
		DefaultBlastRadius: 2,

		AgentSpeed:              96,
		MaxSpeed:                192,
		AgentSize:               24,
		AgentLives:              3,
		AgentBombCapacity:       1,
		InvulnerabilityDuration: 1.5,

		PowerUpDropChance: 0.3,
		CapacityBonus:     1,
		RadiusBonus:       1,
		SpeedBonus:        16,

		OpponentCount:      3,
		DangerFuseFraction: 0.5,
		AttackWindow:       4,
		PlacementCooldown:  2.0,
	}
}

// Validate reports the first nonsensical value found.
func (c *Config) Validate() error {
	switch {
	case c.GridCols < 5 || c.GridRows < 5:
		return fmt.Errorf("grid must be at least 5x5, got %dx%d", c.GridCols, c.GridRows)
	case c.TileSize <= 0:
		return fmt.Errorf("tileSize must be positive, got %g", c.TileSize)
	case c.BreakableDensity < 0 || c.BreakableDensity > 1:
		return fmt.Errorf("breakableDensity must be in [0,1], got %g", c.BreakableDensity)
	case c.PowerUpDropChance < 0 || c.PowerUpDropChance > 1:
		return fmt.Errorf("powerUpDropChance must be in [0,1], got %g", c.PowerUpDropChance)
	case c.DangerFuseFraction < 0 || c.DangerFuseFraction > 1:
		return fmt.Errorf("dangerFuseFraction must be in [0,1], got %g", c.DangerFuseFraction)
	case c.FuseDuration <= 0 || c.BlastLifetime <= 0:
		return fmt.Errorf("fuseDuration and blastLifetime must be positive")
	case c.DefaultBlastRadius < 1:
		return fmt.Errorf("defaultBlastRadius must be >= 1, got %d", c.DefaultBlastRadius)
	case c.AgentSpeed <= 0 || c.MaxSpeed < c.AgentSpeed:
		return fmt.Errorf("agentSpeed must be positive and not exceed maxSpeed")
	case c.AgentSize <= 0 || c.AgentSize > c.TileSize:
		return fmt.Errorf("agentSize must be in (0, tileSize], got %g", c.AgentSize)
	case c.AgentLives < 1 || c.AgentBombCapacity < 1:
		return fmt.Errorf("agentLives and agentBombCapacity must be >= 1")
	case c.InvulnerabilityDuration < 0 || c.PlacementCooldown < 0:
		return fmt.Errorf("durations must not be negative")
	case c.OpponentCount < 0:
		return fmt.Errorf("opponentCount must not be negative, got %d", c.OpponentCount)
	case c.AttackWindow < 1:
		return fmt.Errorf("attackWindow must be >= 1, got %d", c.AttackWindow)
	}
	return nil
}
