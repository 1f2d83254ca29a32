package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultBubblePopConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultBubblePopConfig())
	}
}

func TestLoadBubblePopCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("rules:\n  launch_cooldown: 7\nitems:\n  rainbow: 0\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBubblePop(path)
	if err != nil {
		t.Fatalf("LoadBubblePop failed: %v", err)
	}
	if cfg.Rules.LaunchCooldown != 7 {
		t.Errorf("LaunchCooldown = %d, expected 7", cfg.Rules.LaunchCooldown)
	}
	if cfg.Items.Rainbow != 0 || cfg.Items.Swap != 3 {
		t.Errorf("Items = %+v, expected rainbow 0 and swap kept at 3", cfg.Items)
	}
	if cfg.Grid.Rows != 6 {
		t.Errorf("Grid.Rows = %d, expected default 6", cfg.Grid.Rows)
	}
}

func TestLoadBubblePopErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadBubblePop(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadBubblePop on missing file = nil error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("bubble:\n  radius: 80\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadBubblePop(bad)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadBubblePop on oversized radius error = %v, expected ErrInvalidConfig", err)
	}
	if cfg != DefaultBubblePopConfig() {
		t.Error("failed load should return the defaults")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		modify func(*BubblePopConfig)
		valid  bool
	}{
		{"default", func(*BubblePopConfig) {}, true},
		{"no rows", func(c *BubblePopConfig) { c.Grid.Rows = 0 }, false},
		{"radius fills cell", func(c *BubblePopConfig) { c.Bubble.Radius = 100 }, false},
		{"stopped bubble", func(c *BubblePopConfig) { c.Bubble.Speed = 0 }, false},
		{"tunnelling bubble", func(c *BubblePopConfig) { c.Bubble.Speed = 200 }, false},
		{"min above max", func(c *BubblePopConfig) { c.Cannon.MinAngle = 120; c.Cannon.MaxAngle = 60 }, false},
		{"threshold one", func(c *BubblePopConfig) { c.Rules.MatchThreshold = 1 }, false},
		{"negative items", func(c *BubblePopConfig) { c.Items.Raise = -1 }, false},
		{"bad progression", func(c *BubblePopConfig) { c.Difficulty.Progression.Type = "lunar" }, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBubblePopConfig()
			tc.modify(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestEngineConversion(t *testing.T) {
	ec := DefaultBubblePopConfig().Engine()

	if ec.Geometry.Rows != 6 || ec.Geometry.Cols != 8 || ec.Geometry.CellSize != 100 {
		t.Errorf("geometry = %+v", ec.Geometry)
	}
	if ec.BubbleRadius != 47 || ec.LaunchCooldown != 4 || ec.Items.Swap != 3 {
		t.Errorf("engine config = %+v", ec)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("default engine config invalid: %v", err)
	}
}

func TestApplyBubblePopPreset(t *testing.T) {
	testCases := []struct {
		preset   DifficultyPreset
		cooldown int
		swap     int
		enabled  bool
	}{
		{DifficultyEasy, 6, 5, false},
		{DifficultyNormal, 4, 3, true},
		{DifficultyHard, 3, 1, true},
		{DifficultyFixed, 4, 3, false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBubblePopConfig()
			ApplyBubblePopPreset(&cfg, tc.preset)
			if cfg.Rules.LaunchCooldown != tc.cooldown {
				t.Errorf("LaunchCooldown = %d, expected %d", cfg.Rules.LaunchCooldown, tc.cooldown)
			}
			if cfg.Items.Swap != tc.swap {
				t.Errorf("Items.Swap = %d, expected %d", cfg.Items.Swap, tc.swap)
			}
			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("Difficulty.Enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(\"hard\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("ParsePreset(\"nightmare\") = nil error")
	}
}

func TestDifficultyCooldown(t *testing.T) {
	cfg := DefaultBubblePopConfig().Difficulty

	disabled := NewDifficultyManager(cfg)
	if got := disabled.Cooldown(4, 5000, 0); got != 4 {
		t.Errorf("disabled Cooldown = %d, expected 4", got)
	}

	cfg.Enabled = true
	d := NewDifficultyManager(cfg)

	testCases := []struct {
		score    int
		expected int
	}{
		{0, 4},
		{700, 4},
		{750, 3},
		{1500, 2},
		{99999, 2},
	}
	for _, tc := range testCases {
		if got := d.Cooldown(4, tc.score, 0); got != tc.expected {
			t.Errorf("Cooldown(4, %d) = %d, expected %d", tc.score, got, tc.expected)
		}
	}

	if got := d.Cooldown(1, 1500, 0); got != 1 {
		t.Errorf("Cooldown(1, 1500) = %d, expected 1 (never above base)", got)
	}
}

func TestDifficultyLevel(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	}
	d := NewDifficultyManager(cfg)

	if got := d.Level(0, 0); got != 0.5 {
		t.Errorf("Level at start = %.2f, expected 0.50", got)
	}
	if got := d.Level(0, 50); got != 0.75 {
		t.Errorf("Level halfway = %.2f, expected 0.75", got)
	}
	if got := d.Level(0, 1000); got != 1.0 {
		t.Errorf("Level past max = %.2f, expected 1.00", got)
	}
}
