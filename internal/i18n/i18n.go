// Package i18n holds the messages the scripts produce themselves. Page copy
// is translated in the markup through data-en/data-es attributes; only text
// that does not exist in the markup (form status lines, button labels)
// lives here.
package i18n

import "github.com/cdelgado/portfolio/pkg/prefs"

// Key names a message.
type Key string

const (
	FormInvalid Key = "invalid"
	FormSending Key = "sending"
	FormSuccess Key = "success"
	FormFailure Key = "failure"
)

// Keys lists every message, in display order.
var Keys = []Key{FormInvalid, FormSending, FormSuccess, FormFailure}

// Catalog maps a message to its text per language.
type Catalog map[Key]map[prefs.Language]string

// Default is the built-in catalog.
func Default() Catalog {
	return Catalog{
		FormInvalid: {
			prefs.English: "Please fill in all fields correctly.",
			prefs.Spanish: "Por favor complete todos los campos correctamente.",
		},
		FormSending: {
			prefs.English: "Sending...",
			prefs.Spanish: "Enviando...",
		},
		FormSuccess: {
			prefs.English: "Thank you! Your message has been sent successfully.",
			prefs.Spanish: "¡Gracias! Tu mensaje ha sido enviado exitosamente.",
		},
		FormFailure: {
			prefs.English: "Oops! Something went wrong. Please try again.",
			prefs.Spanish: "¡Ups! Algo salió mal. Por favor intenta de nuevo.",
		},
	}
}

// FromMap builds a catalog from configuration, filling gaps from Default.
// Unknown message names and language codes are kept so a site can add its
// own.
func FromMap(m map[string]map[string]string) Catalog {
	c := Default()
	for name, texts := range m {
		key := Key(name)
		if c[key] == nil {
			c[key] = make(map[prefs.Language]string)
		}
		for lang, text := range texts {
			if text != "" {
				c[key][prefs.Language(lang)] = text
			}
		}
	}
	return c
}

// T returns the text of key in lang, falling back to English and then to
// the key itself.
func (c Catalog) T(lang prefs.Language, key Key) string {
	texts := c[key]
	if s := texts[lang]; s != "" {
		return s
	}
	if s := texts[prefs.English]; s != "" {
		return s
	}
	return string(key)
}
