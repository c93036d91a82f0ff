package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdelgado/portfolio/pkg/prefs"
)

func TestThemeToggle_AppliesStoredTheme(t *testing.T) {
	h := newHarness(t, page, withStored("theme", "dark"))
	c := NewThemeToggle(h.env)
	require.True(t, c.Init())

	theme, _ := h.doc.DocumentElement().Attr("data-theme")
	assert.Equal(t, "dark", theme)
	assert.Equal(t, prefs.ThemeDark, h.env.State.Theme.Get())
}

func TestThemeToggle_DefaultsToLight(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewThemeToggle(h.env).Init())

	theme, _ := h.doc.DocumentElement().Attr("data-theme")
	assert.Equal(t, "light", theme)
	stored, _ := h.win.Storage().GetItem("theme")
	assert.Equal(t, "light", stored)
}

func TestThemeToggle_ClickToggles(t *testing.T) {
	h := newHarness(t, page)
	require.True(t, NewThemeToggle(h.env).Init())
	button := h.doc.Find(".theme-toggle")

	button.Click()
	theme, _ := h.doc.DocumentElement().Attr("data-theme")
	assert.Equal(t, "dark", theme)
	stored, _ := h.win.Storage().GetItem("theme")
	assert.Equal(t, "dark", stored)

	button.Click()
	theme, _ = h.doc.DocumentElement().Attr("data-theme")
	assert.Equal(t, "light", theme)
	assert.Equal(t, prefs.ThemeLight, h.env.State.Theme.Get())
}

func TestThemeToggle_MissingButton(t *testing.T) {
	h := newHarness(t, `<html><body><p>no toggle</p></body></html>`)
	assert.False(t, NewThemeToggle(h.env).Init())

	_, ok := h.doc.DocumentElement().Attr("data-theme")
	assert.False(t, ok, "nothing is applied without the toggle")
}

func TestThemeToggle_StorageFailureStillApplies(t *testing.T) {
	h := newHarness(t, page)
	h.win.Storage().FailWrites()
	c := NewThemeToggle(h.env)
	require.True(t, c.Init())

	c.ToggleTheme()
	theme, _ := h.doc.DocumentElement().Attr("data-theme")
	assert.Equal(t, "dark", theme)
	assert.Contains(t, h.logs.String(), "preference not saved")
}
