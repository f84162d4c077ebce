package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	DefaultFormat     string   `yaml:"default_format,omitempty"`
	APIBaseURL        string   `yaml:"api_base_url,omitempty"`
	DashboardURL      string   `yaml:"dashboard_url,omitempty"`
	Team              string   `yaml:"team,omitempty"`
	GroupScenes       bool     `yaml:"group_scenes,omitempty"`
	ExcludeRequesters []string `yaml:"exclude_requesters,omitempty"`

	// Scoring config sections
	BaseScores *BaseScoreOverrides `yaml:"base_scores,omitempty"`
	Bonuses    *BonusOverrides     `yaml:"bonuses,omitempty"`
	Thresholds *ThresholdOverrides `yaml:"thresholds,omitempty"`
}

// BaseScoreOverrides allows customizing base scores per work-item category.
// Categories with higher innate urgency must keep a higher base score for
// the feed ordering to stay meaningful.
type BaseScoreOverrides struct {
	UrgentApproval *float64 `yaml:"urgent_approval,omitempty"`
	HighApproval   *float64 `yaml:"high_approval,omitempty"`
	ReadyUpload    *float64 `yaml:"ready_upload,omitempty"`
	NewScene       *float64 `yaml:"new_scene,omitempty"`
	OldScene       *float64 `yaml:"old_scene,omitempty"`
}

// BonusOverrides - wait-time, VIP, and amount bonus parameters
type BonusOverrides struct {
	HourlyWaitingBonus    *float64 `yaml:"hourly_waiting_bonus,omitempty"`
	MaxWaitingBonus       *float64 `yaml:"max_waiting_bonus,omitempty"`
	VIPBonus              *float64 `yaml:"vip_bonus,omitempty"`
	VIPThreshold          *float64 `yaml:"vip_threshold,omitempty"`
	AmountBonus           *float64 `yaml:"amount_bonus,omitempty"`
	AmountBonusStep       *float64 `yaml:"amount_bonus_step,omitempty"`
	MaxAmountBonus        *float64 `yaml:"max_amount_bonus,omitempty"`
	UrgentEscalationHours *float64 `yaml:"urgent_escalation_hours,omitempty"`
	OldSceneThresholdDays *float64 `yaml:"old_scene_threshold_days,omitempty"`
}

// ThresholdOverrides - urgency classification cutoffs.
// Urgent must stay above high, and high above medium, for the
// classification to be monotonic.
type ThresholdOverrides struct {
	Urgent *float64 `yaml:"urgent,omitempty"`
	High   *float64 `yaml:"high,omitempty"`
	Medium *float64 `yaml:"medium,omitempty"`
}

// EngineWeights defines the complete set of scoring parameters
type EngineWeights struct {
	// Base scores per work-item category
	UrgentApproval float64
	HighApproval   float64
	ReadyUpload    float64
	NewScene       float64
	OldScene       float64

	// Bonus parameters
	HourlyWaitingBonus    float64
	MaxWaitingBonus       float64
	VIPBonus              float64
	VIPThreshold          float64
	AmountBonus           float64
	AmountBonusStep       float64
	MaxAmountBonus        float64
	UrgentEscalationHours float64
	OldSceneThresholdDays float64

	// Urgency thresholds (urgent > high > medium; below medium is low)
	UrgentThreshold float64
	HighThreshold   float64
	MediumThreshold float64
}

// DefaultEngineWeights returns the default scoring parameters
func DefaultEngineWeights() EngineWeights {
	return EngineWeights{
		UrgentApproval: 1000,
		HighApproval:   800,
		ReadyUpload:    600,
		NewScene:       400,
		OldScene:       200,

		HourlyWaitingBonus:    5,
		MaxWaitingBonus:       200,
		VIPBonus:              100,
		VIPThreshold:          500,
		AmountBonus:           10,
		AmountBonusStep:       50,
		MaxAmountBonus:        100,
		UrgentEscalationHours: 24,
		OldSceneThresholdDays: 3,

		UrgentThreshold: 900,
		HighThreshold:   700,
		MediumThreshold: 400,
	}
}

// GetEngineWeights returns engine weights with user overrides merged over
// defaults. The merge is per-field: setting one value in a section never
// drops the sibling defaults in that section.
func (c *Config) GetEngineWeights() EngineWeights {
	weights := DefaultEngineWeights()

	if c.BaseScores != nil {
		bs := c.BaseScores
		if bs.UrgentApproval != nil {
			weights.UrgentApproval = *bs.UrgentApproval
		}
		if bs.HighApproval != nil {
			weights.HighApproval = *bs.HighApproval
		}
		if bs.ReadyUpload != nil {
			weights.ReadyUpload = *bs.ReadyUpload
		}
		if bs.NewScene != nil {
			weights.NewScene = *bs.NewScene
		}
		if bs.OldScene != nil {
			weights.OldScene = *bs.OldScene
		}
	}

	if c.Bonuses != nil {
		b := c.Bonuses
		if b.HourlyWaitingBonus != nil {
			weights.HourlyWaitingBonus = *b.HourlyWaitingBonus
		}
		if b.MaxWaitingBonus != nil {
			weights.MaxWaitingBonus = *b.MaxWaitingBonus
		}
		if b.VIPBonus != nil {
			weights.VIPBonus = *b.VIPBonus
		}
		if b.VIPThreshold != nil {
			weights.VIPThreshold = *b.VIPThreshold
		}
		if b.AmountBonus != nil {
			weights.AmountBonus = *b.AmountBonus
		}
		if b.AmountBonusStep != nil {
			weights.AmountBonusStep = *b.AmountBonusStep
		}
		if b.MaxAmountBonus != nil {
			weights.MaxAmountBonus = *b.MaxAmountBonus
		}
		if b.UrgentEscalationHours != nil {
			weights.UrgentEscalationHours = *b.UrgentEscalationHours
		}
		if b.OldSceneThresholdDays != nil {
			weights.OldSceneThresholdDays = *b.OldSceneThresholdDays
		}
	}

	if c.Thresholds != nil {
		t := c.Thresholds
		if t.Urgent != nil {
			weights.UrgentThreshold = *t.Urgent
		}
		if t.High != nil {
			weights.HighThreshold = *t.High
		}
		if t.Medium != nil {
			weights.MediumThreshold = *t.Medium
		}
	}

	return weights
}

// DefaultConfigDir returns the default config directory
func DefaultConfigDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".opsfeed"
	}
	return filepath.Join(configDir, "opsfeed")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// LocalConfigPath returns the path to the local config file in the current directory
func LocalConfigPath() string {
	return ".opsfeed.yaml"
}

// Load loads the configuration from disk.
// It first loads the global config from the XDG config directory, then
// merges any local .opsfeed.yaml config on top (local values take
// precedence).
func Load() (*Config, error) {
	cfg := &Config{
		DefaultFormat: "table",
	}

	globalPath := ConfigPath()
	if _, err := os.Stat(globalPath); err == nil {
		data, err := os.ReadFile(globalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read global config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse global config file: %w", err)
		}
	}

	localPath := LocalConfigPath()
	if _, err := os.Stat(localPath); err == nil {
		data, err := os.ReadFile(localPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read local config file: %w", err)
		}

		var localCfg Config
		if err := yaml.Unmarshal(data, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to parse local config file: %w", err)
		}

		cfg = mergeConfig(cfg, &localCfg)
	}

	if cfg.DefaultFormat == "" {
		cfg.DefaultFormat = "table"
	}

	return cfg, nil
}

// mergeConfig merges local config on top of global config.
// Local values take precedence; unset local values preserve global values.
func mergeConfig(global, local *Config) *Config {
	result := &Config{}

	if local.DefaultFormat != "" {
		result.DefaultFormat = local.DefaultFormat
	} else {
		result.DefaultFormat = global.DefaultFormat
	}

	if local.APIBaseURL != "" {
		result.APIBaseURL = local.APIBaseURL
	} else {
		result.APIBaseURL = global.APIBaseURL
	}

	if local.DashboardURL != "" {
		result.DashboardURL = local.DashboardURL
	} else {
		result.DashboardURL = global.DashboardURL
	}

	if local.Team != "" {
		result.Team = local.Team
	} else {
		result.Team = global.Team
	}

	result.GroupScenes = global.GroupScenes || local.GroupScenes

	if len(local.ExcludeRequesters) > 0 {
		result.ExcludeRequesters = local.ExcludeRequesters
	} else {
		result.ExcludeRequesters = global.ExcludeRequesters
	}

	result.BaseScores = mergeBaseScores(global.BaseScores, local.BaseScores)
	result.Bonuses = mergeBonuses(global.Bonuses, local.Bonuses)
	result.Thresholds = mergeThresholds(global.Thresholds, local.Thresholds)

	return result
}

func mergeBaseScores(global, local *BaseScoreOverrides) *BaseScoreOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &BaseScoreOverrides{}

	if global != nil {
		*result = *global
	}

	if local != nil {
		if local.UrgentApproval != nil {
			result.UrgentApproval = local.UrgentApproval
		}
		if local.HighApproval != nil {
			result.HighApproval = local.HighApproval
		}
		if local.ReadyUpload != nil {
			result.ReadyUpload = local.ReadyUpload
		}
		if local.NewScene != nil {
			result.NewScene = local.NewScene
		}
		if local.OldScene != nil {
			result.OldScene = local.OldScene
		}
	}

	return result
}

func mergeBonuses(global, local *BonusOverrides) *BonusOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &BonusOverrides{}

	if global != nil {
		*result = *global
	}

	if local != nil {
		if local.HourlyWaitingBonus != nil {
			result.HourlyWaitingBonus = local.HourlyWaitingBonus
		}
		if local.MaxWaitingBonus != nil {
			result.MaxWaitingBonus = local.MaxWaitingBonus
		}
		if local.VIPBonus != nil {
			result.VIPBonus = local.VIPBonus
		}
		if local.VIPThreshold != nil {
			result.VIPThreshold = local.VIPThreshold
		}
		if local.AmountBonus != nil {
			result.AmountBonus = local.AmountBonus
		}
		if local.AmountBonusStep != nil {
			result.AmountBonusStep = local.AmountBonusStep
		}
		if local.MaxAmountBonus != nil {
			result.MaxAmountBonus = local.MaxAmountBonus
		}
		if local.UrgentEscalationHours != nil {
			result.UrgentEscalationHours = local.UrgentEscalationHours
		}
		if local.OldSceneThresholdDays != nil {
			result.OldSceneThresholdDays = local.OldSceneThresholdDays
		}
	}

	return result
}

func mergeThresholds(global, local *ThresholdOverrides) *ThresholdOverrides {
	if global == nil && local == nil {
		return nil
	}
	result := &ThresholdOverrides{}

	if global != nil {
		*result = *global
	}

	if local != nil {
		if local.Urgent != nil {
			result.Urgent = local.Urgent
		}
		if local.High != nil {
			result.High = local.High
		}
		if local.Medium != nil {
			result.Medium = local.Medium
		}
	}

	return result
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	configDir := DefaultConfigDir()

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetAPIToken returns the dashboard API token from the OPSFEED_TOKEN
// environment variable. Following 12-factor app practice, tokens are only
// read from the environment.
func (c *Config) GetAPIToken() string {
	return os.Getenv("OPSFEED_TOKEN")
}

// IsRequesterExcluded checks if a requester is in the exclude list
func (c *Config) IsRequesterExcluded(name string) bool {
	for _, excluded := range c.ExcludeRequesters {
		if excluded == name {
			return true
		}
	}
	return false
}

// DefaultConfig returns a fully populated config with all default values.
// This is useful for generating a complete config file template.
func DefaultConfig() *Config {
	weights := DefaultEngineWeights()

	return &Config{
		DefaultFormat:     "table",
		ExcludeRequesters: []string{},
		BaseScores: &BaseScoreOverrides{
			UrgentApproval: &weights.UrgentApproval,
			HighApproval:   &weights.HighApproval,
			ReadyUpload:    &weights.ReadyUpload,
			NewScene:       &weights.NewScene,
			OldScene:       &weights.OldScene,
		},
		Bonuses: &BonusOverrides{
			HourlyWaitingBonus:    &weights.HourlyWaitingBonus,
			MaxWaitingBonus:       &weights.MaxWaitingBonus,
			VIPBonus:              &weights.VIPBonus,
			VIPThreshold:          &weights.VIPThreshold,
			AmountBonus:           &weights.AmountBonus,
			AmountBonusStep:       &weights.AmountBonusStep,
			MaxAmountBonus:        &weights.MaxAmountBonus,
			UrgentEscalationHours: &weights.UrgentEscalationHours,
			OldSceneThresholdDays: &weights.OldSceneThresholdDays,
		},
		Thresholds: &ThresholdOverrides{
			Urgent: &weights.UrgentThreshold,
			High:   &weights.HighThreshold,
			Medium: &weights.MediumThreshold,
		},
	}
}

// ToYAML returns the config as a YAML string
func (c *Config) ToYAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

// ConfigPathInfo contains information about config file paths
type ConfigPathInfo struct {
	GlobalPath   string
	GlobalExists bool
	LocalPath    string
	LocalExists  bool
}

// GetConfigPaths returns path info for both global and local configs
func GetConfigPaths() ConfigPathInfo {
	globalPath := ConfigPath()
	localPath := LocalConfigPath()

	absLocalPath, err := filepath.Abs(localPath)
	if err != nil {
		absLocalPath = localPath
	}

	_, globalErr := os.Stat(globalPath)
	_, localErr := os.Stat(localPath)

	return ConfigPathInfo{
		GlobalPath:   globalPath,
		GlobalExists: globalErr == nil,
		LocalPath:    absLocalPath,
		LocalExists:  localErr == nil,
	}
}

// MinimalConfig returns a minimal config template with comments
func MinimalConfig() string {
	return `# opsfeed configuration file
# See: opsfeed config defaults  (for all available options)

# Output format: table, json, or markdown
default_format: table

# Dashboard API endpoint and team slug
# api_base_url: https://api.example-agency.com
# dashboard_url: https://app.example-agency.com
# team: my-agency

# Collapse three or more pending scenes into a single feed entry
# group_scenes: true

# Hide requests from specific requesters (optional)
# exclude_requesters:
#   - Test Account

# Override scoring parameters (optional)
# thresholds:
#   urgent: 900
#   high: 700
`
}

// SaveTo writes content to a specific path, creating directories as needed
func SaveTo(path string, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}
