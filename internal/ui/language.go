package ui

import (
	"strings"

	"github.com/cdelgado/portfolio/pkg/dom"
	"github.com/cdelgado/portfolio/pkg/prefs"
)

// translatable matches elements carrying both translations.
const translatable = "[data-en][data-es]"

// LanguageToggle switches the page copy between English and Spanish.
type LanguageToggle struct {
	env    *Env
	button dom.Element
}

func NewLanguageToggle(env *Env) *LanguageToggle {
	return &LanguageToggle{env: env}
}

func (c *LanguageToggle) Name() string { return "language" }

// Init applies the saved language and listens on .lang-toggle.
func (c *LanguageToggle) Init() bool {
	button, ok := c.env.Doc.QuerySelector(".lang-toggle")
	if !ok {
		c.env.Logger.Debug("language toggle not found")
		return false
	}
	c.button = button

	c.SetLanguage(c.env.State.Language.Get())
	button.AddEventListener("click", func(dom.Event) { c.ToggleLanguage() })
	return true
}

// SetLanguage records and saves l, relabels the toggle and rewrites every
// translatable element.
func (c *LanguageToggle) SetLanguage(l prefs.Language) {
	c.env.State.Language.Set(l)
	c.env.Prefs.SetLanguage(l)

	if c.button != nil {
		if label, ok := c.button.QuerySelector(".lang-text"); ok {
			label.SetText(strings.ToUpper(l.String()))
		}
	}

	c.UpdateTextContent(l)
	c.env.Doc.DocumentElement().SetAttr("lang", l.String())
}

// ToggleLanguage flips the current language.
func (c *LanguageToggle) ToggleLanguage() {
	c.SetLanguage(c.env.State.Language.Get().Toggle())
}

// UpdateTextContent copies data-<l> into each translatable element: the
// placeholder of inputs and text areas, the text of everything else. An
// empty translation leaves the element alone.
func (c *LanguageToggle) UpdateTextContent(l prefs.Language) {
	attr := "data-" + l.String()
	for _, el := range c.env.Doc.QuerySelectorAll(translatable) {
		text, ok := el.Attr(attr)
		if !ok || text == "" {
			continue
		}
		switch el.TagName() {
		case "INPUT", "TEXTAREA":
			el.SetPlaceholder(text)
		default:
			el.SetText(text)
		}
	}
}
