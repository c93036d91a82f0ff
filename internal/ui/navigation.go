package ui

import (
	"strconv"

	"github.com/cdelgado/portfolio/pkg/dom"
)

// hamburger holds the open-state style of each bar of the menu icon.
var hamburger = [3]struct{ property, open string }{
	{"transform", "rotate(45deg) translateY(10px)"},
	{"opacity", "0"},
	{"transform", "rotate(-45deg) translateY(-10px)"},
}

// Navigation drives the top bar: its scrolled look, the mobile menu and the
// highlighted link of the section in view.
type Navigation struct {
	env    *Env
	navbar dom.Element
	toggle dom.Element
	menu   dom.Element
	links  []dom.Element
}

func NewNavigation(env *Env) *Navigation {
	return &Navigation{env: env}
}

func (c *Navigation) Name() string { return "navigation" }

// Init requires #navbar. The mobile toggle and menu are optional.
func (c *Navigation) Init() bool {
	navbar, ok := c.env.Doc.GetElementByID("navbar")
	if !ok {
		c.env.Logger.Debug("navbar not found")
		return false
	}
	c.navbar = navbar
	if toggle, ok := c.env.Doc.QuerySelector(".mobile-menu-toggle"); ok {
		c.toggle = toggle
	}
	if menu, ok := c.env.Doc.QuerySelector(".nav-menu"); ok {
		c.menu = menu
	}
	c.links = c.env.Doc.QuerySelectorAll(".nav-link")

	c.env.Win.AddEventListener("scroll", func(dom.Event) { c.HandleScroll() })

	if c.toggle != nil {
		c.toggle.AddEventListener("click", func(dom.Event) { c.ToggleMobileMenu() })
	}
	for _, link := range c.links {
		link.AddEventListener("click", func(dom.Event) {
			if c.env.State.MenuOpen {
				c.ToggleMobileMenu()
			}
		})
	}

	c.UpdateActiveLink()
	c.env.Win.AddEventListener("scroll", func(dom.Event) { c.UpdateActiveLink() })
	return true
}

// HandleScroll marks the bar as scrolled past the threshold.
func (c *Navigation) HandleScroll() {
	if c.env.Win.ScrollY() > c.env.Config.Nav.ScrolledThreshold {
		c.navbar.AddClass("scrolled")
	} else {
		c.navbar.RemoveClass("scrolled")
	}
}

// ToggleMobileMenu opens or closes the mobile menu and morphs the
// hamburger icon to match.
func (c *Navigation) ToggleMobileMenu() {
	open := !c.env.State.MenuOpen
	c.env.State.MenuOpen = open

	if c.menu != nil {
		if open {
			c.menu.AddClass("active")
		} else {
			c.menu.RemoveClass("active")
		}
	}
	if c.toggle == nil {
		return
	}
	c.toggle.SetAttr("aria-expanded", strconv.FormatBool(open))

	spans := c.toggle.QuerySelectorAll("span")
	for i, bar := range hamburger {
		if i >= len(spans) {
			break
		}
		value := ""
		if open {
			value = bar.open
		}
		spans[i].SetStyle(bar.property, value)
	}
}

// UpdateActiveLink highlights the link of the section under the scroll
// position. When sections overlap the last one in document order wins.
func (c *Navigation) UpdateActiveLink() {
	pos := c.env.Win.ScrollY() + c.env.Config.Nav.ActiveOffset

	for _, section := range c.env.Doc.QuerySelectorAll("section[id]") {
		top := section.OffsetTop()
		if pos < top || pos >= top+section.OffsetHeight() {
			continue
		}
		target := "#" + section.ID()
		for _, link := range c.links {
			link.RemoveClass("active")
			if href, _ := link.Attr("href"); href == target {
				link.AddClass("active")
			}
		}
	}
}
