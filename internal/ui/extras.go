package ui

import (
	"github.com/cdelgado/portfolio/pkg/dom"
)

// ScrollIndicator fades the "scroll down" hint once the visitor scrolls.
type ScrollIndicator struct {
	env       *Env
	indicator dom.Element
}

func NewScrollIndicator(env *Env) *ScrollIndicator {
	return &ScrollIndicator{env: env}
}

func (c *ScrollIndicator) Name() string { return "scroll-indicator" }

func (c *ScrollIndicator) Init() bool {
	indicator, ok := c.env.Doc.QuerySelector(".scroll-indicator")
	if !ok {
		return false
	}
	c.indicator = indicator
	c.env.Win.AddEventListener("scroll", func(dom.Event) { c.Update() })
	return true
}

// Update shows the hint near the top of the page and hides it elsewhere.
func (c *ScrollIndicator) Update() {
	if c.env.Win.ScrollY() > c.env.Config.Indicator.HideAfter {
		c.indicator.SetStyle("opacity", "0")
		c.indicator.SetStyle("pointer-events", "none")
	} else {
		c.indicator.SetStyle("opacity", "1")
		c.indicator.SetStyle("pointer-events", "auto")
	}
}

// LazyImages loads deferred images, or a polyfill for browsers that cannot.
type LazyImages struct {
	env *Env
}

func NewLazyImages(env *Env) *LazyImages {
	return &LazyImages{env: env}
}

func (c *LazyImages) Name() string { return "lazy-images" }

func (c *LazyImages) Init() bool {
	if !c.env.Win.NativeLazyLoading() {
		script := c.env.Doc.CreateElement("script")
		script.SetAttr("src", c.env.Config.LazyLoad.FallbackScript)
		c.env.Doc.Body().AppendChild(script)
		c.env.Logger.Debug("native lazy loading unsupported, loading fallback")
		return true
	}
	for _, img := range c.env.Doc.QuerySelectorAll(`img[loading="lazy"]`) {
		if src, ok := img.Attr("data-src"); ok && src != "" {
			img.SetAttr("src", src)
		}
	}
	return true
}

// Accessibility adds keyboard activation to ARIA buttons and tracks whether
// the visitor is using a mouse, so focus rings show for keyboard users only.
type Accessibility struct {
	env *Env
}

func NewAccessibility(env *Env) *Accessibility {
	return &Accessibility{env: env}
}

func (c *Accessibility) Name() string { return "accessibility" }

func (c *Accessibility) Init() bool {
	for _, button := range c.env.Doc.QuerySelectorAll(`[role="button"]:not(button)`) {
		button.AddEventListener("keydown", func(e dom.Event) {
			if k := e.Key(); k == "Enter" || k == " " {
				e.PreventDefault()
				button.Click()
			}
		})
	}

	body := c.env.Doc.Body()
	c.env.Doc.AddEventListener("mousedown", func(dom.Event) {
		body.AddClass("using-mouse")
	})
	c.env.Doc.AddEventListener("keydown", func(e dom.Event) {
		if e.Key() == "Tab" {
			body.RemoveClass("using-mouse")
		}
	})
	return true
}

// Analytics logs clicks on external links and downloads.
type Analytics struct {
	env *Env
}

func NewAnalytics(env *Env) *Analytics {
	return &Analytics{env: env}
}

func (c *Analytics) Name() string { return "analytics" }

func (c *Analytics) Init() bool {
	for _, link := range c.env.Doc.QuerySelectorAll(`a[target="_blank"]`) {
		link.AddEventListener("click", func(dom.Event) {
			c.env.Logger.Info("external link clicked", "href", link.Href())
		})
	}
	for _, link := range c.env.Doc.QuerySelectorAll("a[download]") {
		link.AddEventListener("click", func(dom.Event) {
			c.env.Logger.Info("download initiated", "href", link.Href())
		})
	}
	return true
}

// Lifecycle logs visibility and connectivity changes.
type Lifecycle struct {
	env *Env
}

func NewLifecycle(env *Env) *Lifecycle {
	return &Lifecycle{env: env}
}

func (c *Lifecycle) Name() string { return "lifecycle" }

func (c *Lifecycle) Init() bool {
	c.env.Doc.AddEventListener("visibilitychange", func(dom.Event) {
		if c.env.Doc.Hidden() {
			c.env.Logger.Info("page hidden")
		} else {
			c.env.Logger.Info("page visible")
		}
	})
	c.env.Win.AddEventListener("online", func(dom.Event) {
		c.env.Logger.Info("connection restored")
	})
	c.env.Win.AddEventListener("offline", func(dom.Event) {
		c.env.Logger.Warn("connection lost")
	})
	return true
}
