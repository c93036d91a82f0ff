// Package contact holds the contact form's message model, its validation
// rules and the ways a message can be delivered.
package contact

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidName    = errors.New("contact: name is too short")
	ErrInvalidEmail   = errors.New("contact: email address is malformed")
	ErrInvalidMessage = errors.New("contact: message is too short")
)

// emailPattern accepts local@domain.tld with no whitespace or extra @.
// RE2's \s is ASCII only, so vertical tab, Unicode separators and the BOM
// are excluded explicitly to match what browsers treat as whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\x0B\p{Z}\x{FEFF}@]+@[^\s\x0B\p{Z}\x{FEFF}@]+\.[^\s\x0B\p{Z}\x{FEFF}@]+$`)

// Message is one contact form submission.
type Message struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

// Rules are the minimum lengths, in characters after trimming. Characters
// are runes: a name or message made of emoji or other characters outside
// the Basic Multilingual Plane counts each one once, where a browser's
// string length would count two.
type Rules struct {
	MinName    int `yaml:"min_name"`
	MinMessage int `yaml:"min_message"`
}

// DefaultRules are 2 characters for the name and 10 for the message.
func DefaultRules() Rules {
	return Rules{MinName: 2, MinMessage: 10}
}

// Validate checks the rules in order (name, email, message) and returns the
// first failure.
func (r Rules) Validate(m Message) error {
	if utf8.RuneCountInString(strings.TrimSpace(m.Name)) < r.MinName {
		return ErrInvalidName
	}
	if !ValidEmail(m.Email) {
		return ErrInvalidEmail
	}
	if utf8.RuneCountInString(strings.TrimSpace(m.Message)) < r.MinMessage {
		return ErrInvalidMessage
	}
	return nil
}

// Validate checks m against DefaultRules.
func Validate(m Message) error {
	return DefaultRules().Validate(m)
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
