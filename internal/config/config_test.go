package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/bomb-arena/internal/game"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != game.DefaultConfig() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := writeFile(t, "arena.json", `{"gridCols": 11, "gridRows": 9, "opponentCount": 1, "fuseDuration": 2.5}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GridCols != 11 || cfg.GridRows != 9 || cfg.OpponentCount != 1 || cfg.FuseDuration != 2.5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.AgentLives != game.DefaultConfig().AgentLives {
		t.Fatal("keys absent from the file should keep their defaults")
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeFile(t, "arena.yaml", "breakableDensity: 0.25\nattackWindow: 6\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BreakableDensity != 0.25 || cfg.AttackWindow != 6 {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "arena.json", `{"seed": 5, "agentLives": 2}`)
	t.Setenv("ARENA_SEED", "77")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 77 {
		t.Fatalf("env should win over the file, seed=%d", cfg.Seed)
	}
	if cfg.AgentLives != 2 {
		t.Fatalf("file value lost, lives=%d", cfg.AgentLives)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file should fail")
	}
	bad := writeFile(t, "bad.json", `{"gridCols": 2}`)
	if _, err := Load(bad); err == nil {
		t.Fatal("invalid values should fail validation")
	}
	broken := writeFile(t, "broken.json", `{"gridCols": `)
	if _, err := Load(broken); err == nil {
		t.Fatal("malformed file should fail")
	}
}
