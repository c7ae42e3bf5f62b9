package config

import (
	"fmt"
	"strings"

	"github.com/Garsondee/bomb-arena/internal/game"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. ARENA_SEED.
const EnvPrefix = "ARENA"

// Load builds a game.Config from the defaults, the optional file at path
// (JSON, TOML or YAML, chosen by extension) and ARENA_* environment
// variables, in increasing priority. The result is validated.
func Load(path string) (game.Config, error) {
	v := viper.New()
	setDefaults(v, game.DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return game.Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg game.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return game.Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return game.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setDefaults registers every key so env overrides are picked up by Unmarshal.
func setDefaults(v *viper.Viper, d game.Config) {
	v.SetDefault("gridCols", d.GridCols)
	v.SetDefault("gridRows", d.GridRows)
	v.SetDefault("tileSize", d.TileSize)
	v.SetDefault("breakableDensity", d.BreakableDensity)

	v.SetDefault("fuseDuration", d.FuseDuration)
	v.SetDefault("blastLifetime", d.BlastLifetime)
	v.SetDefault("defaultBlastRadius", d.DefaultBlastRadius)

	v.SetDefault("agentSpeed", d.AgentSpeed)
	v.SetDefault("maxSpeed", d.MaxSpeed)
	v.SetDefault("agentSize", d.AgentSize)
	v.SetDefault("agentLives", d.AgentLives)
	v.SetDefault("agentBombCapacity", d.AgentBombCapacity)
	v.SetDefault("invulnerabilityDuration", d.InvulnerabilityDuration)

	v.SetDefault("powerUpDropChance", d.PowerUpDropChance)
	v.SetDefault("capacityBonus", d.CapacityBonus)
	v.SetDefault("radiusBonus", d.RadiusBonus)
	v.SetDefault("speedBonus", d.SpeedBonus)

	v.SetDefault("opponentCount", d.OpponentCount)
	v.SetDefault("dangerFuseFraction", d.DangerFuseFraction)
	v.SetDefault("attackWindow", d.AttackWindow)
	v.SetDefault("placementCooldown", d.PlacementCooldown)

	v.SetDefault("seed", d.Seed)
}
