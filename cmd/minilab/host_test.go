package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-minilab/internal/config"
)

func TestResolveTier(t *testing.T) {
	defer func(tier string, age int) { flagTier, flagAge = tier, age }(flagTier, flagAge)
	th := config.DefaultThresholds()

	tests := []struct {
		name     string
		tier     string
		age      int
		expected config.Tier
	}{
		{"preset", "hard", 0, config.TierHigh},
		{"numeric", "1", 0, config.TierLow},
		{"age wins over preset", "hard", 7, config.TierLow},
		{"older learner", "easy", 14, config.TierHigh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			flagTier, flagAge = tc.tier, tc.age
			got, err := resolveTier(th)
			if err != nil {
				t.Fatalf("resolveTier: %v", err)
			}
			if got != tc.expected {
				t.Errorf("resolveTier = %v, expected %v", got, tc.expected)
			}
		})
	}

	flagTier, flagAge = "impossible", 0
	if _, err := resolveTier(th); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/.minilab/x.db"); got != filepath.Join(home, ".minilab", "x.db") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("absolute paths must be kept, got %q", got)
	}
}
