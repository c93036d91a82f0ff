// Package config holds the tunables of the portfolio page and of the local
// preview server. The defaults live in site.yaml, which is compiled into the
// binary; a site can override any part of it with its own portfolio.yaml.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"gopkg.in/yaml.v3"

	"github.com/cdelgado/portfolio/pkg/contact"
	"github.com/cdelgado/portfolio/pkg/prefs"
)

//go:embed site.yaml
var siteYAML []byte

// FileName is the name Load looks for in a site directory.
const FileName = "portfolio.yaml"

// Config is the full configuration.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Nav       NavConfig       `yaml:"nav"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Reveal    RevealConfig    `yaml:"reveal"`
	Form      FormConfig      `yaml:"form"`
	EasterEgg EasterEggConfig `yaml:"easter_egg"`
	LazyLoad  LazyLoadConfig  `yaml:"lazy_load"`
	// Messages overrides the built-in form messages: message name, then
	// language code, then text. Anything not listed keeps its built-in text.
	Messages map[string]map[string]string `yaml:"messages"`
	Log      LogConfig                    `yaml:"log"`
	Dev      DevConfig                    `yaml:"dev"`
}

// StorageConfig names the localStorage keys for saved preferences.
type StorageConfig struct {
	ThemeKey    string `yaml:"theme_key"`
	LanguageKey string `yaml:"language_key"`
}

// NavConfig tunes the navigation bar.
type NavConfig struct {
	// ScrolledThreshold is the scroll offset past which the bar is "scrolled".
	ScrolledThreshold float64 `yaml:"scrolled_threshold"`
	// ActiveOffset is added to the scroll offset when picking the active section.
	ActiveOffset float64 `yaml:"active_offset"`
}

// IndicatorConfig tunes the scroll indicator.
type IndicatorConfig struct {
	HideAfter float64 `yaml:"hide_after"`
}

// RevealConfig tunes the on-scroll reveal animations.
type RevealConfig struct {
	Threshold      float64        `yaml:"threshold"`
	RootMargin     string         `yaml:"root_margin"`
	WideBreakpoint float64        `yaml:"wide_breakpoint"`
	Timeline       TimelineReveal `yaml:"timeline"`
	Groups         []RevealGroup  `yaml:"groups"`
}

// RevealGroup is a set of elements sharing one entrance animation.
type RevealGroup struct {
	Selector string `yaml:"selector"`
	// Transform is the hidden starting position.
	Transform string   `yaml:"transform"`
	Duration  Duration `yaml:"duration"`
	// Stagger delays the n-th element of the group by n*Stagger.
	Stagger Duration `yaml:"stagger"`
	// Lag is added to the transition itself rather than the delay.
	Lag Duration `yaml:"lag"`
	// First limits the group to the first matching element.
	First bool `yaml:"first"`
}

// TimelineReveal slides timeline entries in from alternating sides on wide
// screens and straight up on narrow ones.
type TimelineReveal struct {
	Selector string   `yaml:"selector"`
	Duration Duration `yaml:"duration"`
	Stagger  Duration `yaml:"stagger"`
	SwingX   float64  `yaml:"swing_x"`
	RiseY    float64  `yaml:"rise_y"`
}

// FormConfig tunes the contact form.
type FormConfig struct {
	MinName    int      `yaml:"min_name"`
	MinMessage int      `yaml:"min_message"`
	Delay      Duration `yaml:"delay"`
	StatusTTL  Duration `yaml:"status_ttl"`
	// Endpoint, when set, receives submissions as JSON instead of the
	// simulated delivery.
	Endpoint string `yaml:"endpoint"`
}

// EasterEggConfig describes the hidden key sequence.
type EasterEggConfig struct {
	Sequence  []string `yaml:"sequence"`
	Animation string   `yaml:"animation"`
	Duration  Duration `yaml:"duration"`
}

// LazyLoadConfig names the script loaded when the browser cannot lazy load
// images natively.
type LazyLoadConfig struct {
	FallbackScript string `yaml:"fallback_script"`
}

// LogConfig sets the log level name (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level"`
}

// DevConfig configures the preview server.
type DevConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	Root        string   `yaml:"root"`
	Debounce    Duration `yaml:"debounce"`
	ContactPath string   `yaml:"contact_path"`
}

// DefaultConfig returns the compiled-in configuration.
func DefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal(siteYAML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded site.yaml: %v", err))
	}
	return &cfg
}

// Parse reads YAML over the defaults. Keys absent from data keep their
// default values; a list (reveal groups, the key sequence) replaces the
// default list as a whole.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	applyDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from PORTFOLIO_* variables. getenv is usually
// os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("PORTFOLIO_HOST"); v != "" {
		c.Dev.Host = v
	}
	if v := getenv("PORTFOLIO_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORTFOLIO_PORT: %w", err)
		}
		c.Dev.Port = port
	}
	if v := getenv("PORTFOLIO_ROOT"); v != "" {
		c.Dev.Root = v
	}
	if v := getenv("PORTFOLIO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("PORTFOLIO_CONTACT_ENDPOINT"); v != "" {
		c.Form.Endpoint = v
	}
	return c.Validate()
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	var errs []error
	if c.Reveal.Threshold < 0 || c.Reveal.Threshold > 1 {
		errs = append(errs, fmt.Errorf("reveal.threshold %v is outside [0, 1]", c.Reveal.Threshold))
	}
	if err := checkSelector(c.Reveal.Timeline.Selector); err != nil {
		errs = append(errs, fmt.Errorf("reveal.timeline.selector: %w", err))
	}
	for i, g := range c.Reveal.Groups {
		if strings.TrimSpace(g.Selector) == "" {
			errs = append(errs, fmt.Errorf("reveal.groups[%d] has no selector", i))
			continue
		}
		if err := checkSelector(g.Selector); err != nil {
			errs = append(errs, fmt.Errorf("reveal.groups[%d].selector: %w", i, err))
		}
	}
	if len(c.EasterEgg.Sequence) == 0 {
		errs = append(errs, errors.New("easter_egg.sequence is empty"))
	}
	if c.Dev.Port < 0 || c.Dev.Port > 65535 {
		errs = append(errs, fmt.Errorf("dev.port %d is out of range", c.Dev.Port))
	}
	if !strings.HasPrefix(c.Dev.ContactPath, "/") {
		errs = append(errs, fmt.Errorf("dev.contact_path %q must start with /", c.Dev.ContactPath))
	}
	return errors.Join(errs...)
}

// checkSelector rejects selectors the browser's querySelectorAll would
// throw on.
func checkSelector(sel string) error {
	if strings.TrimSpace(sel) == "" {
		return nil
	}
	if _, err := cascadia.Compile(sel); err != nil {
		return fmt.Errorf("invalid selector %q: %w", sel, err)
	}
	return nil
}

// PrefKeys returns the storage keys for the preference store.
func (c *Config) PrefKeys() prefs.Keys {
	return prefs.Keys{Theme: c.Storage.ThemeKey, Language: c.Storage.LanguageKey}
}

// Rules returns the contact form's validation rules.
func (c *Config) Rules() contact.Rules {
	return contact.Rules{MinName: c.Form.MinName, MinMessage: c.Form.MinMessage}
}

// Addr is the preview server's listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Dev.Host, c.Dev.Port)
}

// applyDefaults fills zero values left by a partial override.
func applyDefaults(c *Config) {
	defaults := DefaultConfig()

	if c.Storage.ThemeKey == "" {
		c.Storage.ThemeKey = defaults.Storage.ThemeKey
	}
	if c.Storage.LanguageKey == "" {
		c.Storage.LanguageKey = defaults.Storage.LanguageKey
	}
	if c.Reveal.RootMargin == "" {
		c.Reveal.RootMargin = defaults.Reveal.RootMargin
	}
	if c.Reveal.Timeline.Selector == "" {
		c.Reveal.Timeline.Selector = defaults.Reveal.Timeline.Selector
	}
	if c.Form.Delay == 0 {
		c.Form.Delay = defaults.Form.Delay
	}
	if c.Form.StatusTTL == 0 {
		c.Form.StatusTTL = defaults.Form.StatusTTL
	}
	if c.EasterEgg.Animation == "" {
		c.EasterEgg.Animation = defaults.EasterEgg.Animation
	}
	if c.EasterEgg.Duration == 0 {
		c.EasterEgg.Duration = defaults.EasterEgg.Duration
	}
	if c.LazyLoad.FallbackScript == "" {
		c.LazyLoad.FallbackScript = defaults.LazyLoad.FallbackScript
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Dev.Host == "" {
		c.Dev.Host = defaults.Dev.Host
	}
	if c.Dev.Port == 0 {
		c.Dev.Port = defaults.Dev.Port
	}
	if c.Dev.Root == "" {
		c.Dev.Root = defaults.Dev.Root
	}
	if c.Dev.Debounce == 0 {
		c.Dev.Debounce = defaults.Dev.Debounce
	}
	if c.Dev.ContactPath == "" {
		c.Dev.ContactPath = defaults.Dev.ContactPath
	}
}
