package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "theme", cfg.Storage.ThemeKey)
	assert.Equal(t, "language", cfg.Storage.LanguageKey)
	assert.Equal(t, 50.0, cfg.Nav.ScrolledThreshold)
	assert.Equal(t, 100.0, cfg.Nav.ActiveOffset)
	assert.Equal(t, 200.0, cfg.Indicator.HideAfter)

	assert.Equal(t, 0.15, cfg.Reveal.Threshold)
	assert.Equal(t, "0px 0px -80px 0px", cfg.Reveal.RootMargin)
	assert.Equal(t, 968.0, cfg.Reveal.WideBreakpoint)
	assert.Equal(t, ".timeline-item", cfg.Reveal.Timeline.Selector)
	assert.Equal(t, 700*time.Millisecond, cfg.Reveal.Timeline.Duration.Std())
	require.Len(t, cfg.Reveal.Groups, 4)
	assert.Equal(t, ".skill-category", cfg.Reveal.Groups[1].Selector)
	assert.Equal(t, 80*time.Millisecond, cfg.Reveal.Groups[1].Stagger.Std())
	assert.Equal(t, 200*time.Millisecond, cfg.Reveal.Groups[3].Lag.Std())
	assert.True(t, cfg.Reveal.Groups[3].First)

	assert.Equal(t, 2, cfg.Form.MinName)
	assert.Equal(t, 10, cfg.Form.MinMessage)
	assert.Equal(t, 1500*time.Millisecond, cfg.Form.Delay.Std())
	assert.Equal(t, 5*time.Second, cfg.Form.StatusTTL.Std())
	assert.Empty(t, cfg.Form.Endpoint)

	assert.Equal(t, []string{"ArrowUp", "ArrowUp", "ArrowDown", "ArrowDown", "ArrowLeft", "ArrowRight", "ArrowLeft", "ArrowRight", "b", "a"}, cfg.EasterEgg.Sequence)
	assert.Equal(t, "rainbow 2s linear infinite", cfg.EasterEgg.Animation)

	assert.Empty(t, cfg.Messages, "built-in messages live in the i18n catalog")
	assert.Equal(t, "localhost:8080", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestParse_PartialOverride(t *testing.T) {
	cfg, err := Parse([]byte(`
nav:
  scrolled_threshold: 80
form:
  endpoint: https://example.com/contact
messages:
  sending:
    en: Hold on...
`))
	require.NoError(t, err)

	assert.Equal(t, 80.0, cfg.Nav.ScrolledThreshold)
	assert.Equal(t, 100.0, cfg.Nav.ActiveOffset, "untouched siblings keep defaults")
	assert.Equal(t, "https://example.com/contact", cfg.Form.Endpoint)
	assert.Equal(t, map[string]map[string]string{"sending": {"en": "Hold on..."}}, cfg.Messages)
}

func TestParse_ListsReplace(t *testing.T) {
	cfg, err := Parse([]byte(`
reveal:
  groups:
    - selector: .card
      transform: scale(0.9)
      duration: 300ms
`))
	require.NoError(t, err)
	require.Len(t, cfg.Reveal.Groups, 1)
	assert.Equal(t, ".card", cfg.Reveal.Groups[0].Selector)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"syntax", "nav: [unclosed"},
		{"bad duration", "form:\n  delay: soon\n"},
		{"threshold", "reveal:\n  threshold: 1.5\n"},
		{"empty sequence", "easter_egg:\n  sequence: []\n"},
		{"group without selector", "reveal:\n  groups:\n    - duration: 1s\n"},
		{"port", "dev:\n  port: 70000\n"},
		{"contact path", "dev:\n  contact_path: api/contact\n"},
		{"malformed group selector", "reveal:\n  groups:\n    - selector: \"[data-x\"\n"},
		{"malformed timeline selector", "reveal:\n  timeline:\n    selector: \".timeline-item[\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestParse_SelectorErrorNamesField(t *testing.T) {
	_, err := Parse([]byte("reveal:\n  groups:\n    - selector: .card\n    - selector: \"[data-x\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reveal.groups[1].selector")
	assert.Contains(t, err.Error(), `"[data-x"`)

	cfg, err := Parse([]byte("reveal:\n  groups:\n    - selector: \".card, [data-reveal], .grid > .item:not(.skip)\"\n"))
	require.NoError(t, err)
	assert.Len(t, cfg.Reveal.Groups, 1)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, FileName))
	require.NoError(t, err, "a missing file is not an error")
	assert.Equal(t, 8080, cfg.Dev.Port)

	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("dev:\n  port: 9090\n"), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Dev.Port)

	require.NoError(t, os.WriteFile(path, []byte("dev: [\n"), 0o644))
	_, err = Load(path)
	assert.ErrorContains(t, err, path)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORTFOLIO_PORT":             "3000",
		"PORTFOLIO_ROOT":             "/srv/site",
		"PORTFOLIO_LOG_LEVEL":        "debug",
		"PORTFOLIO_CONTACT_ENDPOINT": "/api/contact",
	}
	cfg := DefaultConfig()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))

	assert.Equal(t, 3000, cfg.Dev.Port)
	assert.Equal(t, "/srv/site", cfg.Dev.Root)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/api/contact", cfg.Form.Endpoint)
	assert.Equal(t, "localhost", cfg.Dev.Host)

	err := DefaultConfig().ApplyEnv(func(k string) string {
		if k == "PORTFOLIO_PORT" {
			return "eighty"
		}
		return ""
	})
	assert.Error(t, err)
}

func TestDerived(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "theme", cfg.PrefKeys().Theme)
	assert.Equal(t, 10, cfg.Rules().MinMessage)
}

func TestDuration(t *testing.T) {
	var v struct {
		D Duration `yaml:"d"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("d: 700ms"), &v))
	assert.Equal(t, "0.7s", v.D.CSS())
	assert.Equal(t, int64(700), v.D.Millis())

	out, err := yaml.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "d: 700ms\n", string(out))

	assert.Equal(t, "0.8s", Duration(800*time.Millisecond).CSS())
	assert.Equal(t, "2s", Duration(2*time.Second).CSS())
	assert.Equal(t, "0s", Duration(0).CSS())
}
