package ui

import (
	"context"
	"sync"

	"github.com/cdelgado/portfolio/internal/i18n"
	"github.com/cdelgado/portfolio/pkg/contact"
	"github.com/cdelgado/portfolio/pkg/dom"
	"github.com/cdelgado/portfolio/pkg/scheduler"
)

// Status kinds, appended to the form-status class.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

const statusClass = "form-status"

// ContactForm validates and sends the contact form.
type ContactForm struct {
	env    *Env
	form   dom.Element
	status dom.Element

	inFlight bool
	clear    scheduler.Timer
	wg       sync.WaitGroup
}

func NewContactForm(env *Env) *ContactForm {
	return &ContactForm{env: env}
}

func (c *ContactForm) Name() string { return "contact" }

// Init requires #contactForm. #formStatus is optional; without it results
// are not shown.
func (c *ContactForm) Init() bool {
	form, ok := c.env.Doc.GetElementByID("contactForm")
	if !ok {
		c.env.Logger.Debug("contact form not found")
		return false
	}
	c.form = form
	if status, ok := c.env.Doc.GetElementByID("formStatus"); ok {
		c.status = status
	}
	form.AddEventListener("submit", c.handleSubmit)
	return true
}

func (c *ContactForm) handleSubmit(e dom.Event) {
	e.PreventDefault()
	if c.inFlight {
		c.env.Logger.Debug("submission already in flight")
		return
	}

	msg := contact.Message{
		Name:     c.field("name"),
		Email:    c.field("email"),
		Message:  c.field("message"),
		Language: c.env.State.Language.Get().String(),
	}
	if err := c.env.Config.Rules().Validate(msg); err != nil {
		c.env.Logger.Debug("contact form rejected", "error", err)
		c.ShowStatus(StatusError, c.env.T(i18n.FormInvalid))
		return
	}

	button, hasButton := c.form.QuerySelector(`button[type="submit"]`)
	var label string
	if hasButton {
		label = button.Text()
		button.SetDisabled(true)
		button.SetText(c.env.T(i18n.FormSending))
	}

	c.inFlight = true
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		err := c.env.Submitter.Submit(context.Background(), msg)
		c.env.Sched.Post(func() {
			c.finish(err)
			if hasButton {
				button.SetDisabled(false)
				button.SetText(label)
			}
		})
	}()
}

func (c *ContactForm) finish(err error) {
	c.inFlight = false
	if err != nil {
		c.env.Logger.Warn("contact submission failed", "error", err)
		c.ShowStatus(StatusError, c.env.T(i18n.FormFailure))
		return
	}
	c.ShowStatus(StatusSuccess, c.env.T(i18n.FormSuccess))
	c.form.Reset()
}

func (c *ContactForm) field(name string) string {
	if el, ok := c.form.QuerySelector(`[name="` + name + `"]`); ok {
		return el.Value()
	}
	return ""
}

// ShowStatus shows text in the status element until the status TTL runs
// out. A newer status replaces the old one and restarts the countdown.
func (c *ContactForm) ShowStatus(kind, text string) {
	if c.status == nil {
		return
	}
	c.status.SetText(text)
	c.status.SetClassName(statusClass + " " + kind)

	if c.clear != nil {
		c.clear.Stop()
	}
	status := c.status
	c.clear = c.env.Sched.After(c.env.Config.Form.StatusTTL.Std(), func() {
		status.SetClassName(statusClass)
	})
}

// Submitting reports whether a submission is waiting for its result.
func (c *ContactForm) Submitting() bool { return c.inFlight }

// Wait blocks until background submissions have posted their results. The
// results still have to be run by the scheduler.
func (c *ContactForm) Wait() { c.wg.Wait() }
