package game

import "testing"

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidate_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny grid", func(c *Config) { c.GridCols = 3 }},
		{"density", func(c *Config) { c.BreakableDensity = 1.5 }},
		{"drop chance", func(c *Config) { c.PowerUpDropChance = -0.1 }},
		{"danger fraction", func(c *Config) { c.DangerFuseFraction = 2 }},
		{"fuse", func(c *Config) { c.FuseDuration = 0 }},
		{"radius", func(c *Config) { c.DefaultBlastRadius = 0 }},
		{"speed above cap", func(c *Config) { c.AgentSpeed = c.MaxSpeed + 1 }},
		{"agent too big", func(c *Config) { c.AgentSize = c.TileSize * 2 }},
		{"no lives", func(c *Config) { c.AgentLives = 0 }},
		{"negative cooldown", func(c *Config) { c.PlacementCooldown = -1 }},
		{"negative opponents", func(c *Config) { c.OpponentCount = -1 }},
		{"attack window", func(c *Config) { c.AttackWindow = 0 }},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		c.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", c.name)
		}
	}
}
