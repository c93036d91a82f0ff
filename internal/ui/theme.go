package ui

import (
	"github.com/cdelgado/portfolio/pkg/dom"
	"github.com/cdelgado/portfolio/pkg/prefs"
)

// ThemeToggle switches between the light and dark colour schemes.
type ThemeToggle struct {
	env    *Env
	button dom.Element
}

func NewThemeToggle(env *Env) *ThemeToggle {
	return &ThemeToggle{env: env}
}

func (c *ThemeToggle) Name() string { return "theme" }

// Init applies the saved theme and listens on .theme-toggle. Without the
// button the page keeps whatever theme its markup declares.
func (c *ThemeToggle) Init() bool {
	button, ok := c.env.Doc.QuerySelector(".theme-toggle")
	if !ok {
		c.env.Logger.Debug("theme toggle not found")
		return false
	}
	c.button = button

	c.SetTheme(c.env.State.Theme.Get())
	button.AddEventListener("click", func(dom.Event) { c.ToggleTheme() })
	return true
}

// SetTheme records t, applies it to the root element and saves it.
func (c *ThemeToggle) SetTheme(t prefs.Theme) {
	c.env.State.Theme.Set(t)
	c.env.Doc.DocumentElement().SetAttr("data-theme", t.String())
	c.env.Prefs.SetTheme(t)
}

// ToggleTheme flips the current theme.
func (c *ThemeToggle) ToggleTheme() {
	c.SetTheme(c.env.State.Theme.Get().Toggle())
}
