package ui

import (
	"github.com/cdelgado/portfolio/pkg/dom"
	"github.com/cdelgado/portfolio/pkg/scheduler"
)

const rainbowKeyframes = `
@keyframes rainbow {
    0% { filter: hue-rotate(0deg); }
    100% { filter: hue-rotate(360deg); }
}
`

// EasterEgg cycles the page colours for a while after the Konami code.
type EasterEgg struct {
	env      *Env
	sequence []string
	progress int
	styled   bool
	reset    scheduler.Timer
}

func NewEasterEgg(env *Env) *EasterEgg {
	return &EasterEgg{env: env}
}

func (c *EasterEgg) Name() string { return "easter-egg" }

func (c *EasterEgg) Init() bool {
	c.sequence = c.env.Config.EasterEgg.Sequence
	if len(c.sequence) == 0 {
		return false
	}
	c.env.Doc.AddEventListener("keydown", func(e dom.Event) { c.HandleKey(e.Key()) })
	return true
}

// HandleKey advances through the sequence. Any wrong key starts over from
// the beginning, even one that would begin a new attempt.
func (c *EasterEgg) HandleKey(key string) {
	if key != c.sequence[c.progress] {
		c.progress = 0
		return
	}
	c.progress++
	if c.progress == len(c.sequence) {
		c.progress = 0
		c.Activate()
	}
}

// Progress is the number of keys matched so far.
func (c *EasterEgg) Progress() int { return c.progress }

// Activate starts the animation. Activating again while it runs extends it.
func (c *EasterEgg) Activate() {
	c.env.Logger.Info("easter egg activated")
	body := c.env.Doc.Body()
	body.SetStyle("animation", c.env.Config.EasterEgg.Animation)

	if !c.styled {
		style := c.env.Doc.CreateElement("style")
		style.SetText(rainbowKeyframes)
		c.env.Doc.Head().AppendChild(style)
		c.styled = true
	}

	if c.reset != nil {
		c.reset.Stop()
	}
	c.reset = c.env.Sched.After(c.env.Config.EasterEgg.Duration.Std(), func() {
		body.SetStyle("animation", "")
	})
}
