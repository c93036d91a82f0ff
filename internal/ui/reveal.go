package ui

import (
	"fmt"
	"strconv"

	"github.com/cdelgado/portfolio/internal/config"
	"github.com/cdelgado/portfolio/pkg/dom"
)

// delayAttr keeps an element's stagger delay, in milliseconds, until it
// scrolls into view.
const delayAttr = "data-animation-delay"

// revealed is the resting transform every animated element ends at.
const revealed = "translateX(0) translateY(0)"

// Reveal fades and slides sections in the first time they scroll into view.
type Reveal struct {
	env      *Env
	observer dom.IntersectionObserver
}

func NewReveal(env *Env) *Reveal {
	return &Reveal{env: env}
}

func (c *Reveal) Name() string { return "reveal" }

// Init hides every animated element and starts watching it. Browsers
// without IntersectionObserver show everything as is.
func (c *Reveal) Init() bool {
	cfg := c.env.Config.Reveal
	observer, ok := c.env.Win.NewIntersectionObserver(dom.ObserverOptions{
		Threshold:  cfg.Threshold,
		RootMargin: cfg.RootMargin,
	}, c.onIntersect)
	if !ok {
		c.env.Logger.Debug("IntersectionObserver unsupported, reveal animations off")
		return false
	}
	c.observer = observer

	tl := cfg.Timeline
	wide := c.env.Win.InnerWidth() > cfg.WideBreakpoint
	for i, el := range c.env.Doc.QuerySelectorAll(tl.Selector) {
		x := "0"
		if wide {
			swing := tl.SwingX
			if i%2 == 0 {
				swing = -swing
			}
			x = px(swing)
		}
		transform := fmt.Sprintf("translateX(%s) translateY(%s)", x, px(tl.RiseY))
		c.hide(el, transform, transition(tl.Duration, 0), int64(i)*tl.Stagger.Millis())
	}

	for _, g := range cfg.Groups {
		var els []dom.Element
		if g.First {
			if el, ok := c.env.Doc.QuerySelector(g.Selector); ok {
				els = append(els, el)
			}
		} else {
			els = c.env.Doc.QuerySelectorAll(g.Selector)
		}
		for i, el := range els {
			c.hide(el, g.Transform, transition(g.Duration, g.Lag), int64(i)*g.Stagger.Millis())
		}
	}
	return true
}

func (c *Reveal) hide(el dom.Element, transform, trans string, delayMillis int64) {
	el.SetStyle("opacity", "0")
	el.SetStyle("transform", transform)
	el.SetStyle("transition", trans)
	el.SetAttr(delayAttr, strconv.FormatInt(delayMillis, 10))
	c.observer.Observe(el)
}

// onIntersect shows each element once and stops watching it.
func (c *Reveal) onIntersect(entries []dom.IntersectionEntry) {
	for _, entry := range entries {
		if !entry.Intersecting {
			continue
		}
		el := entry.Target
		el.SetStyle("opacity", "1")
		el.SetStyle("transform", revealed)

		delay, _ := el.Attr(delayAttr)
		if delay == "" {
			delay = "0"
		}
		el.SetStyle("transition-delay", delay+"ms")
		c.observer.Unobserve(el)
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}

// transition animates opacity and transform together. lag postpones the
// start within the transition itself.
func transition(d, lag config.Duration) string {
	timing := d.CSS() + " ease-out"
	if lag > 0 {
		timing += " " + lag.CSS()
	}
	return "opacity " + timing + ", transform " + timing
}
