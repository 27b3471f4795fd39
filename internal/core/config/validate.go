package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/beacon/internal/core/notify"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// the relay URL, presets and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		criterio.Run("push.relay_url", c.Push.RelayURL, isHTTPURL),
		c.validatePresets(),
	)
}

// Warnings returns non-fatal configuration issues.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	if c.HeadsUp.AutoHideEnabled() && c.HeadsUp.AutoHideMS > 0 && c.HeadsUp.AutoHideMS < 1000 {
		warnings = append(warnings, ValidationWarning{
			Category: "HeadsUp",
			Item:     "auto_hide_ms",
			Message:  fmt.Sprintf("%dms is shorter than the entry animation plus reading time", c.HeadsUp.AutoHideMS),
		})
	}

	if c.Push.AccessToken == "" && !strings.Contains(c.Push.RelayURL, "exp.host") {
		warnings = append(warnings, ValidationWarning{
			Category: "Push",
			Item:     "access_token",
			Message:  "custom relay configured without an access token",
		})
	}

	for i, p := range c.Presets {
		if p.Body == "" {
			warnings = append(warnings, ValidationWarning{
				Category: "Presets",
				Item:     fmt.Sprintf("presets[%d]", i),
				Message:  "preset has no body",
			})
		}
	}

	return warnings
}

// validateFileAccess checks config file and data directory.
func (c *Config) validateFileAccess(configPath string) error {
	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// validatePresets checks every preset has a title and a known category.
func (c *Config) validatePresets() error {
	var errs criterio.FieldErrorsBuilder
	for i, p := range c.Presets {
		field := fmt.Sprintf("presets[%d]", i)
		if strings.TrimSpace(p.Title) == "" {
			errs = errs.Append(field+".title", fmt.Errorf("title is required"))
		}
		if p.Category != "" && notify.ParseCategory(p.Category) != notify.Category(p.Category) {
			errs = errs.Append(field+".category", fmt.Errorf("unknown category %q", p.Category))
		}
	}
	return errs.ToError()
}

func isHTTPURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("url has no host")
	}
	return nil
}

func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}
