// Package config handles configuration loading and validation for beacon.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/beacon/internal/core/notify"
	"github.com/colonyops/beacon/internal/core/push"
)

// Theme names.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Config holds the application configuration.
type Config struct {
	Theme   string        `yaml:"theme"`
	HeadsUp HeadsUpConfig `yaml:"headsup"`
	Push    PushConfig    `yaml:"push"`
	Profile ProfileConfig `yaml:"profile"`
	Presets []Preset      `yaml:"presets"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// HeadsUpConfig controls the heads-up banner.
type HeadsUpConfig struct {
	AutoHide      *bool   `yaml:"auto_hide"`      // nil = enabled
	AutoHideMS    int     `yaml:"auto_hide_ms"`   // timeout for non-call notifications
	ViewportWidth float64 `yaml:"viewport_width"` // logical units mapped onto the terminal width
}

// AutoHideEnabled returns whether non-call banners expire on their own.
func (h HeadsUpConfig) AutoHideEnabled() bool {
	return h.AutoHide == nil || *h.AutoHide
}

// AutoHideDuration returns the configured timeout.
func (h HeadsUpConfig) AutoHideDuration() time.Duration {
	return time.Duration(h.AutoHideMS) * time.Millisecond
}

// PushConfig configures the push service and relay.
type PushConfig struct {
	RelayURL       string `yaml:"relay_url"`
	AccessToken    string `yaml:"access_token"`
	Token          string `yaml:"token"`            // fixed device token; generated when empty
	Permission     string `yaml:"permission"`       // initial simulated permission
	GrantOnRequest *bool  `yaml:"grant_on_request"` // nil = grant
}

// GrantsOnRequest reports whether an undetermined permission is granted when asked.
func (p PushConfig) GrantsOnRequest() bool {
	return p.GrantOnRequest == nil || *p.GrantOnRequest
}

// ProfileConfig holds the profile toggles shown in the TUI.
type ProfileConfig struct {
	Sound     *bool `yaml:"sound"`
	Vibration *bool `yaml:"vibration"`
}

// SoundEnabled returns the sound toggle, default on.
func (p ProfileConfig) SoundEnabled() bool {
	return p.Sound == nil || *p.Sound
}

// VibrationEnabled returns the vibration toggle, default on.
func (p ProfileConfig) VibrationEnabled() bool {
	return p.Vibration == nil || *p.Vibration
}

// Preset is a test notification offered on the home tab.
type Preset struct {
	Title    string         `yaml:"title"`
	Body     string         `yaml:"body"`
	Category string         `yaml:"category"`
	Data     map[string]any `yaml:"data"`
}

// Message converts the preset to a push message.
func (p Preset) Message() push.Message {
	return push.Message{
		Title:    p.Title,
		Body:     p.Body,
		Category: notify.ParseCategory(p.Category),
		Data:     p.Data,
	}
}

// defaultPresets are the test notifications offered on the home tab.
var defaultPresets = []Preset{
	{
		Title:    "Incoming Call",
		Body:     "John Doe is calling you...",
		Category: string(notify.CategoryCall),
		Data:     map[string]any{"caller": "John Doe", "number": "+1 (555) 123-4567", "callType": "voice"},
	},
	{
		Title:    "New Message",
		Body:     "Hey! How are you doing today?",
		Category: string(notify.CategoryMessage),
		Data:     map[string]any{"screen": "feed"},
	},
	{
		Title:    "Meeting Reminder",
		Body:     "Team standup in **10 minutes**",
		Category: string(notify.CategoryReminder),
	},
	{
		Title:    "System Update",
		Body:     "A new version of the app is available.",
		Category: string(notify.CategoryGeneral),
	},
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	presets := make([]Preset, len(defaultPresets))
	copy(presets, defaultPresets)

	return Config{
		Theme: ThemeDark,
		HeadsUp: HeadsUpConfig{
			AutoHideMS:    5000,
			ViewportWidth: 390,
		},
		Push: PushConfig{
			RelayURL:   push.DefaultRelayURL,
			Permission: string(push.PermissionUndetermined),
		},
		Presets: presets,
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
	if c.HeadsUp.AutoHideMS == 0 {
		c.HeadsUp.AutoHideMS = defaults.HeadsUp.AutoHideMS
	}
	if c.HeadsUp.ViewportWidth == 0 {
		c.HeadsUp.ViewportWidth = defaults.HeadsUp.ViewportWidth
	}
	if c.Push.RelayURL == "" {
		c.Push.RelayURL = defaults.Push.RelayURL
	}
	if c.Push.Permission == "" {
		c.Push.Permission = defaults.Push.Permission
	}
	if len(c.Presets) == 0 {
		c.Presets = defaults.Presets
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory cannot be empty")
	}

	if c.Theme != ThemeDark && c.Theme != ThemeLight {
		return fmt.Errorf("theme must be %q or %q, got %q", ThemeDark, ThemeLight, c.Theme)
	}

	if c.HeadsUp.AutoHideMS < 0 {
		return fmt.Errorf("headsup.auto_hide_ms must be positive")
	}

	if c.HeadsUp.ViewportWidth < 0 {
		return fmt.Errorf("headsup.viewport_width must be positive")
	}

	if _, err := push.ParsePermission(c.Push.Permission); err != nil {
		return fmt.Errorf("push.permission: %w", err)
	}

	return nil
}
