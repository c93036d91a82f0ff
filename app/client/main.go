//go:build js && wasm
// +build js,wasm

package main

import (
	"log/slog"

	"github.com/cdelgado/portfolio/internal/config"
	"github.com/cdelgado/portfolio/internal/logging"
	"github.com/cdelgado/portfolio/internal/ui"
	"github.com/cdelgado/portfolio/pkg/dom"
	"github.com/cdelgado/portfolio/pkg/scheduler"
)

// configElement may hold YAML overriding the built-in settings:
//
//	<script type="application/yaml" id="portfolio-config">...</script>
const configElement = "portfolio-config"

func main() {
	browser, err := dom.NewBrowser()
	if err != nil {
		panic(err)
	}

	// The config element is only guaranteed to exist once parsing is done.
	ui.OnReady(browser.Document(), func() { start(browser) })

	// Keep the WASM runtime alive
	select {}
}

func start(browser *dom.Browser) {
	doc := browser.Document()

	cfg, cfgErr := loadConfig(doc)
	logger := logging.NewConsole(cfg.Log.Level)
	slog.SetDefault(logger)
	logging.EnableDebugHooks(logger)
	if cfgErr != nil {
		logger.Warn("ignoring page configuration", "error", cfgErr)
	}

	env := ui.NewEnv(doc, browser.Window(), scheduler.NewBrowser(), cfg, logger)
	ui.NewApp(env).Init()
}

func loadConfig(doc dom.Document) (*config.Config, error) {
	el, ok := doc.GetElementByID(configElement)
	if !ok {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.Parse([]byte(el.Text()))
	if err != nil {
		return config.DefaultConfig(), err
	}
	return cfg, nil
}
