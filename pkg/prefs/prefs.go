// Package prefs persists the visitor's theme and language choices.
package prefs

import (
	"log/slog"
	"sync"
)

// Default storage keys.
const (
	KeyTheme    = "theme"
	KeyLanguage = "language"
)

// Storage is durable key/value storage. dom.Storage satisfies it.
type Storage interface {
	GetItem(key string) (string, bool)
	SetItem(key, value string) error
}

// Theme is the colour scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme maps a stored value to a Theme. Unknown values yield the light
// theme and false.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return ThemeLight, false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

func (t Theme) String() string { return string(t) }

// Language is the UI language.
type Language string

const (
	English Language = "en"
	Spanish Language = "es"
)

// ParseLanguage maps a stored value to a Language. Unknown values yield
// English and false.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case English, Spanish:
		return Language(s), true
	}
	return English, false
}

// Toggle returns the other language.
func (l Language) Toggle() Language {
	if l == English {
		return Spanish
	}
	return English
}

func (l Language) String() string { return string(l) }

// Keys names the storage entries the store uses.
type Keys struct {
	Theme    string
	Language string
}

// DefaultKeys are the keys the site has always used.
func DefaultKeys() Keys {
	return Keys{Theme: KeyTheme, Language: KeyLanguage}
}

// Store reads and writes preferences with defaults for missing entries.
type Store struct {
	storage Storage
	keys    Keys
	logger  *slog.Logger
}

// NewStore wraps storage. A nil storage is replaced by a MemoryStorage so
// choices still hold for the lifetime of the page.
func NewStore(storage Storage, keys Keys, logger *slog.Logger) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	if keys.Theme == "" {
		keys.Theme = KeyTheme
	}
	if keys.Language == "" {
		keys.Language = KeyLanguage
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{storage: storage, keys: keys, logger: logger}
}

// Get returns the stored value for key, or def when nothing is stored.
func (s *Store) Get(key, def string) string {
	if v, ok := s.storage.GetItem(key); ok && v != "" {
		return v
	}
	return def
}

// Set writes key. Failures (quota, disabled storage) are logged only; a
// preference that cannot be saved is still applied to the page.
func (s *Store) Set(key, value string) {
	if err := s.storage.SetItem(key, value); err != nil {
		s.logger.Warn("preference not saved", "key", key, "error", err)
	}
}

// Theme returns the stored theme, light by default.
func (s *Store) Theme() Theme {
	t, ok := ParseTheme(s.Get(s.keys.Theme, string(ThemeLight)))
	if !ok {
		s.logger.Debug("ignoring unknown stored theme")
	}
	return t
}

// SetTheme persists t.
func (s *Store) SetTheme(t Theme) { s.Set(s.keys.Theme, string(t)) }

// Language returns the stored language, English by default.
func (s *Store) Language() Language {
	l, ok := ParseLanguage(s.Get(s.keys.Language, string(English)))
	if !ok {
		s.logger.Debug("ignoring unknown stored language")
	}
	return l
}

// SetLanguage persists l.
func (s *Store) SetLanguage(l Language) { s.Set(s.keys.Language, string(l)) }

// MemoryStorage is a Storage that lives as long as the process.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryStorage returns empty storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *MemoryStorage) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}
