package ui

import (
	"strings"

	"github.com/cdelgado/portfolio/pkg/dom"
)

// SmoothScroll animates jumps to in-page anchors.
type SmoothScroll struct {
	env *Env
}

func NewSmoothScroll(env *Env) *SmoothScroll {
	return &SmoothScroll{env: env}
}

func (c *SmoothScroll) Name() string { return "smooth-scroll" }

// Init hooks every link whose href starts with "#".
func (c *SmoothScroll) Init() bool {
	links := c.env.Doc.QuerySelectorAll(`a[href^="#"]`)
	for _, link := range links {
		link.AddEventListener("click", func(e dom.Event) {
			href, _ := link.Attr("href")
			c.Follow(href, e)
		})
	}
	return len(links) > 0
}

// Follow scrolls to the element named by href. A bare "#" or an unknown id
// leaves the browser's default navigation in place.
func (c *SmoothScroll) Follow(href string, e dom.Event) bool {
	id := strings.TrimPrefix(href, "#")
	if id == "" || id == href {
		return false
	}
	target, ok := c.env.Doc.GetElementByID(id)
	if !ok {
		return false
	}
	e.PreventDefault()
	target.ScrollIntoView(true)
	return true
}
