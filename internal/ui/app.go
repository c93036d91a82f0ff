package ui

import (
	"github.com/cdelgado/portfolio/pkg/dom"
	"github.com/cdelgado/portfolio/pkg/prefs"
)

// Controller is one feature of the page.
type Controller interface {
	Name() string
	// Init wires the feature and reports whether it is active. Missing
	// markup disables a feature; it is never an error.
	Init() bool
}

// App owns every controller of the page.
type App struct {
	env *Env

	Theme      *ThemeToggle
	Language   *LanguageToggle
	Navigation *Navigation
	Scroll     *SmoothScroll
	Reveal     *Reveal
	Contact    *ContactForm
	Indicator  *ScrollIndicator
	Images     *LazyImages
	Access     *Accessibility
	Analytics  *Analytics
	EasterEgg  *EasterEgg
	Lifecycle  *Lifecycle

	enabled map[string]bool
}

// NewApp builds the controllers without touching the page.
func NewApp(env *Env) *App {
	return &App{
		env:        env,
		Theme:      NewThemeToggle(env),
		Language:   NewLanguageToggle(env),
		Navigation: NewNavigation(env),
		Scroll:     NewSmoothScroll(env),
		Reveal:     NewReveal(env),
		Contact:    NewContactForm(env),
		Indicator:  NewScrollIndicator(env),
		Images:     NewLazyImages(env),
		Access:     NewAccessibility(env),
		Analytics:  NewAnalytics(env),
		EasterEgg:  NewEasterEgg(env),
		Lifecycle:  NewLifecycle(env),
		enabled:    make(map[string]bool),
	}
}

// Controllers lists the controllers in initialization order.
func (a *App) Controllers() []Controller {
	return []Controller{
		a.Theme,
		a.Language,
		a.Navigation,
		a.Scroll,
		a.Reveal,
		a.Contact,
		a.Indicator,
		a.Images,
		a.Access,
		a.Analytics,
		a.EasterEgg,
		a.Lifecycle,
	}
}

// Init initializes every controller once, in order, and logs a summary.
func (a *App) Init() {
	logger := a.env.Logger
	state := a.env.State

	state.Theme.Watch(func(old, theme prefs.Theme) {
		if old != theme {
			logger.Debug("theme changed", "from", old, "to", theme)
		}
	})
	state.Language.Watch(func(old, lang prefs.Language) {
		if old != lang {
			logger.Debug("language changed", "from", old, "to", lang)
		}
	})

	var off []string
	for _, c := range a.Controllers() {
		ok := c.Init()
		a.enabled[c.Name()] = ok
		if !ok {
			off = append(off, c.Name())
		}
	}

	logger.Info("portfolio initialized",
		"theme", state.Theme.Get(),
		"language", state.Language.Get(),
		"disabled", off)
}

// Enabled reports whether the named controller found its markup.
func (a *App) Enabled(name string) bool { return a.enabled[name] }

// OnReady runs fn once the document has been parsed: right away unless the
// document is still loading, otherwise on DOMContentLoaded.
func OnReady(doc dom.Document, fn func()) {
	if doc.ReadyState() != "loading" {
		fn()
		return
	}
	done := false
	doc.AddEventListener("DOMContentLoaded", func(dom.Event) {
		if done {
			return
		}
		done = true
		fn()
	})
}
