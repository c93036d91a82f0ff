// Package ui wires the page's behaviour: one controller per feature, all
// sharing an Env. Controllers only touch the page through the dom
// interfaces and only defer work through the scheduler, so every one of
// them runs unchanged against the in-memory document in tests.
package ui

import (
	"log/slog"

	"github.com/cdelgado/portfolio/internal/config"
	"github.com/cdelgado/portfolio/internal/i18n"
	"github.com/cdelgado/portfolio/pkg/contact"
	"github.com/cdelgado/portfolio/pkg/dom"
	"github.com/cdelgado/portfolio/pkg/prefs"
	"github.com/cdelgado/portfolio/pkg/reactive"
	"github.com/cdelgado/portfolio/pkg/scheduler"
)

// State is the record every controller shares. It is created once per page
// and handed around by pointer.
type State struct {
	Theme    *reactive.State[prefs.Theme]
	Language *reactive.State[prefs.Language]
	MenuOpen bool
}

// NewState seeds the state from saved preferences.
func NewState(store *prefs.Store) *State {
	return &State{
		Theme:    reactive.NewState(store.Theme()),
		Language: reactive.NewState(store.Language()),
	}
}

// Env carries the collaborators of every controller.
type Env struct {
	Doc       dom.Document
	Win       dom.Window
	Sched     scheduler.Scheduler
	Config    *config.Config
	Prefs     *prefs.Store
	State     *State
	Messages  i18n.Catalog
	Submitter contact.Submitter
	Logger    *slog.Logger
}

// NewEnv builds an Env for a page. Preferences fall back to memory when the
// window has no usable localStorage, and submissions go to the configured
// endpoint or are simulated.
func NewEnv(doc dom.Document, win dom.Window, sched scheduler.Scheduler, cfg *config.Config, logger *slog.Logger) *Env {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	var storage prefs.Storage
	if s, ok := win.LocalStorage(); ok {
		storage = s
	} else {
		logger.Warn("localStorage unavailable, preferences will not persist")
	}
	store := prefs.NewStore(storage, cfg.PrefKeys(), logger)

	var submitter contact.Submitter
	if cfg.Form.Endpoint != "" {
		submitter = contact.NewHTTPSubmitter(cfg.Form.Endpoint)
	} else {
		submitter = contact.Simulated{Delay: cfg.Form.Delay.Std(), Logger: logger}
	}

	return &Env{
		Doc:       doc,
		Win:       win,
		Sched:     sched,
		Config:    cfg,
		Prefs:     store,
		State:     NewState(store),
		Messages:  i18n.FromMap(cfg.Messages),
		Submitter: submitter,
		Logger:    logger,
	}
}

// T returns a message in the current language.
func (e *Env) T(key i18n.Key) string {
	return e.Messages.T(e.State.Language.Get(), key)
}
