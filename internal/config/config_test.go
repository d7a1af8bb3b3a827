package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestTierFromAttribute(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		age      int
		expected Tier
	}{
		{5, TierLow},
		{8, TierLow},
		{9, TierMid},
		{12, TierMid},
		{13, TierHigh},
		{40, TierHigh},
	}

	for _, tc := range tests {
		if got := TierFromAttribute(tc.age, th); got != tc.expected {
			t.Errorf("TierFromAttribute(%d) = %d, expected %d", tc.age, got, tc.expected)
		}
	}
}

func TestTierForPreset(t *testing.T) {
	tests := []struct {
		name     string
		expected Tier
	}{
		{"easy", TierLow},
		{"Normal", TierMid},
		{"hard", TierHigh},
		{"3", TierHigh},
		{"", TierMid},
	}

	for _, tc := range tests {
		got, err := TierForPreset(tc.name)
		if err != nil {
			t.Fatalf("TierForPreset(%q) error: %v", tc.name, err)
		}
		if got != tc.expected {
			t.Errorf("TierForPreset(%q) = %d, expected %d", tc.name, got, tc.expected)
		}
	}

	if _, err := TierForPreset("fixed"); !errors.Is(err, ErrInvalidTier) {
		t.Errorf("unknown preset should wrap ErrInvalidTier, got %v", err)
	}
}

func TestBuildAssemblyTiers(t *testing.T) {
	b := NewBuilder(DefaultTables())

	expected := map[Tier][2]int{
		TierLow:  {4, 45},
		TierMid:  {6, 60},
		TierHigh: {8, 75},
	}

	for tier, want := range expected {
		cfg, err := b.Build(GameAssembly, tier)
		if err != nil {
			t.Fatalf("Build(assembly, %d): %v", tier, err)
		}
		if cfg.Assembly.Parts != want[0] || cfg.Assembly.TimerSeconds != want[1] {
			t.Errorf("tier %d: parts=%d timer=%d, expected %d/%d",
				tier, cfg.Assembly.Parts, cfg.Assembly.TimerSeconds, want[0], want[1])
		}
	}
}

func TestBuildPhysicsBackends(t *testing.T) {
	b := NewBuilder(DefaultTables())

	bridge, err := b.Build(GameBridge, TierHigh)
	if err != nil {
		t.Fatal(err)
	}
	if bridge.Physics != PhysicsForce {
		t.Errorf("bridge physics = %s, expected force", bridge.Physics)
	}
	if bridge.Bridge.Gap != 400 || bridge.Bridge.VehicleMass != 1.8 || bridge.Bridge.Force != 0.54 {
		t.Errorf("bridge tier 3 row = %+v", bridge.Bridge)
	}
	if bridge.Bridge.DeckY != 400 || bridge.Gravity.Y <= 0 {
		t.Error("bridge layout and gravity should come from the shared table")
	}

	marble, err := b.Build(GameMarble, TierMid)
	if err != nil {
		t.Fatal(err)
	}
	if marble.Physics != PhysicsArcade || marble.Marble.Obstacles != 1 || marble.Marble.GoalDistance != 480 {
		t.Errorf("marble tier 2 = %+v", marble.Marble)
	}

	quiz, err := b.Build(GameQuiz, TierLow)
	if err != nil {
		t.Fatal(err)
	}
	if quiz.Physics != PhysicsNone {
		t.Errorf("quiz physics = %s, expected none", quiz.Physics)
	}
	if quiz.CanvasW != 800 || quiz.CanvasH != 600 || quiz.TargetFPS != 60 || quiz.FloorFPS != 30 {
		t.Errorf("canvas = %vx%v @%d/%d", quiz.CanvasW, quiz.CanvasH, quiz.TargetFPS, quiz.FloorFPS)
	}
}

func TestBuildRejectsUnknownInput(t *testing.T) {
	b := NewBuilder(DefaultTables())

	if _, err := b.Build("tetris", TierLow); !errors.Is(err, ErrUnknownGame) {
		t.Errorf("unknown game: expected ErrUnknownGame, got %v", err)
	}
	for _, tier := range []Tier{0, 4, -1} {
		if _, err := b.Build(GameBinary, tier); !errors.Is(err, ErrInvalidTier) {
			t.Errorf("tier %d: expected ErrInvalidTier, got %v", tier, err)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder(DefaultTables())

	for _, id := range GameIDs() {
		for tier := TierLow; tier <= TierHigh; tier++ {
			first, err := b.Build(id, tier)
			if err != nil {
				t.Fatalf("Build(%s, %d): %v", id, tier, err)
			}
			second, _ := b.Build(id, tier)
			if !reflect.DeepEqual(first, second) {
				t.Errorf("Build(%s, %d) not deterministic", id, tier)
			}
		}
	}
}

func TestBuildCopiesSymbolPool(t *testing.T) {
	b := NewBuilder(DefaultTables())

	cfg, _ := b.Build(GameReaction, TierLow)
	cfg.Reaction.Symbols[0] = "z"

	again, _ := b.Build(GameReaction, TierLow)
	if again.Reaction.Symbols[0] == "z" {
		t.Error("scene configs must not share the symbol pool with the tables")
	}
}

func TestEmbeddedDefaultsMatchCode(t *testing.T) {
	cfg, err := parse(defaultTiersYAML)
	if err != nil {
		t.Fatalf("embedded tiers.yaml does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg.Tables, DefaultTables()) {
		t.Errorf("embedded tables differ from DefaultTables():\n%+v\n%+v", cfg.Tables, DefaultTables())
	}
	if cfg.Session != DefaultSessionSettings() {
		t.Errorf("embedded session = %+v, expected %+v", cfg.Session, DefaultSessionSettings())
	}
}

func TestLoadCustomPathKeepsMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiers.yaml")
	data := []byte(`
assembly:
  tiers:
    - { parts: 3, timer_seconds: 30 }
    - { parts: 5, timer_seconds: 40 }
    - { parts: 7, timer_seconds: 50 }
session:
  resource_cap: 20
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assembly.Tiers[0].Parts != 3 {
		t.Errorf("assembly override not applied: %+v", cfg.Assembly.Tiers)
	}
	if cfg.Matching.Tiers[1].Pairs != 6 {
		t.Error("tables missing from the file should keep defaults")
	}
	if cfg.Session.ResourceCap != 20 || cfg.Session.RestoreDelayTicks != 30 {
		t.Errorf("session = %+v", cfg.Session)
	}
}

func TestLoadRejectsIncompleteTiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	data := []byte("binary:\n  tiers:\n    - { bits: 4, targets: 5 }\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected an error for a table with one tier row")
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing explicit config")
	}
}

func TestSessionSettingsEnv(t *testing.T) {
	t.Setenv("MINILAB_CONTEXT_LOSS_TOLERANCE", "2")
	t.Setenv("MINILAB_TEARDOWN_DELAY", "5ms")
	t.Setenv("MINILAB_FORCE_FALLBACK", "true")

	s := DefaultSessionSettings()
	if err := s.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}

	if s.ContextLossTolerance != 2 {
		t.Errorf("tolerance = %d, expected 2", s.ContextLossTolerance)
	}
	if s.TeardownDelay != 5*time.Millisecond {
		t.Errorf("teardown = %v, expected 5ms", s.TeardownDelay)
	}
	if !s.ForceFallback {
		t.Error("force fallback should be set")
	}
	if s.ResourceCap != 50 {
		t.Errorf("unset variables must keep their value, resource cap = %d", s.ResourceCap)
	}
}

func TestSessionSettingsEnvInvalid(t *testing.T) {
	t.Setenv("MINILAB_RESOURCE_CAP", "many")

	s := DefaultSessionSettings()
	if err := s.ApplyEnv(); err == nil {
		t.Error("expected a parse error")
	}
}
