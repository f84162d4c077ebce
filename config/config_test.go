package config

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefaultEngineWeights(t *testing.T) {
	weights := DefaultEngineWeights()

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"UrgentApproval", weights.UrgentApproval, 1000},
		{"HighApproval", weights.HighApproval, 800},
		{"ReadyUpload", weights.ReadyUpload, 600},
		{"NewScene", weights.NewScene, 400},
		{"OldScene", weights.OldScene, 200},
		{"HourlyWaitingBonus", weights.HourlyWaitingBonus, 5},
		{"MaxWaitingBonus", weights.MaxWaitingBonus, 200},
		{"VIPBonus", weights.VIPBonus, 100},
		{"VIPThreshold", weights.VIPThreshold, 500},
		{"AmountBonus", weights.AmountBonus, 10},
		{"AmountBonusStep", weights.AmountBonusStep, 50},
		{"MaxAmountBonus", weights.MaxAmountBonus, 100},
		{"UrgentEscalationHours", weights.UrgentEscalationHours, 24},
		{"OldSceneThresholdDays", weights.OldSceneThresholdDays, 3},
		{"UrgentThreshold", weights.UrgentThreshold, 900},
		{"HighThreshold", weights.HighThreshold, 700},
		{"MediumThreshold", weights.MediumThreshold, 400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("DefaultEngineWeights().%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestGetEngineWeights(t *testing.T) {
	t.Run("returns defaults when no overrides", func(t *testing.T) {
		cfg := &Config{}
		weights := cfg.GetEngineWeights()

		if weights.UrgentApproval != 1000 {
			t.Errorf("UrgentApproval = %v, want 1000", weights.UrgentApproval)
		}
		if weights.UrgentThreshold != 900 {
			t.Errorf("UrgentThreshold = %v, want 900", weights.UrgentThreshold)
		}
	})

	t.Run("merges partial base score overrides", func(t *testing.T) {
		override := 1200.0
		cfg := &Config{
			BaseScores: &BaseScoreOverrides{
				UrgentApproval: &override,
			},
		}
		weights := cfg.GetEngineWeights()

		if weights.UrgentApproval != 1200 {
			t.Errorf("UrgentApproval = %v, want overridden 1200", weights.UrgentApproval)
		}
		// Untouched fields keep their defaults.
		if weights.HighApproval != 800 {
			t.Errorf("HighApproval = %v, want default 800", weights.HighApproval)
		}
	})

	t.Run("merges bonus and threshold overrides", func(t *testing.T) {
		vipThreshold := 1000.0
		medium := 300.0
		cfg := &Config{
			Bonuses:    &BonusOverrides{VIPThreshold: &vipThreshold},
			Thresholds: &ThresholdOverrides{Medium: &medium},
		}
		weights := cfg.GetEngineWeights()

		if weights.VIPThreshold != 1000 {
			t.Errorf("VIPThreshold = %v, want 1000", weights.VIPThreshold)
		}
		if weights.MediumThreshold != 300 {
			t.Errorf("MediumThreshold = %v, want 300", weights.MediumThreshold)
		}
		if weights.VIPBonus != 100 {
			t.Errorf("VIPBonus = %v, want default 100", weights.VIPBonus)
		}
	})
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	raw := `
default_format: json
team: alpha
group_scenes: true
exclude_requesters:
  - Test Account
thresholds:
  urgent: 950
bonuses:
  vip_threshold: 750
`
	var cfg Config
	if err := yaml.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if cfg.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q", cfg.DefaultFormat)
	}
	if cfg.Team != "alpha" {
		t.Errorf("Team = %q", cfg.Team)
	}
	if !cfg.GroupScenes {
		t.Error("GroupScenes should be true")
	}

	weights := cfg.GetEngineWeights()
	if weights.UrgentThreshold != 950 {
		t.Errorf("UrgentThreshold = %v, want 950", weights.UrgentThreshold)
	}
	if weights.VIPThreshold != 750 {
		t.Errorf("VIPThreshold = %v, want 750", weights.VIPThreshold)
	}
	// Untouched sections keep defaults.
	if weights.HighThreshold != 700 {
		t.Errorf("HighThreshold = %v, want default 700", weights.HighThreshold)
	}
}

func TestMergeConfig(t *testing.T) {
	urgent := 950.0
	vip := 250.0
	global := &Config{
		DefaultFormat: "table",
		Team:          "alpha",
		Thresholds:    &ThresholdOverrides{Urgent: &urgent},
	}
	local := &Config{
		DefaultFormat: "json",
		Bonuses:       &BonusOverrides{VIPBonus: &vip},
	}

	merged := mergeConfig(global, local)

	if merged.DefaultFormat != "json" {
		t.Errorf("DefaultFormat = %q, want local override", merged.DefaultFormat)
	}
	if merged.Team != "alpha" {
		t.Errorf("Team = %q, want global value preserved", merged.Team)
	}
	if merged.Thresholds == nil || merged.Thresholds.Urgent == nil || *merged.Thresholds.Urgent != 950 {
		t.Error("global threshold override lost in merge")
	}
	if merged.Bonuses == nil || merged.Bonuses.VIPBonus == nil || *merged.Bonuses.VIPBonus != 250 {
		t.Error("local bonus override lost in merge")
	}
}

func TestIsRequesterExcluded(t *testing.T) {
	cfg := &Config{ExcludeRequesters: []string{"qa-bot", "Test Account"}}

	if !cfg.IsRequesterExcluded("qa-bot") {
		t.Error("qa-bot should be excluded")
	}
	if cfg.IsRequesterExcluded("Dana") {
		t.Error("Dana should not be excluded")
	}
}

func TestMinimalConfigParses(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(MinimalConfig()), &cfg); err != nil {
		t.Fatalf("MinimalConfig() does not parse: %v", err)
	}
	if cfg.DefaultFormat != "table" {
		t.Errorf("DefaultFormat = %q, want table", cfg.DefaultFormat)
	}
}
