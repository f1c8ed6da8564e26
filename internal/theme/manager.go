package theme

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/snipframe-cloud/snipframe/pkg/apperr"
	"github.com/snipframe-cloud/snipframe/pkg/log"
	"gopkg.in/yaml.v3"
)

// Manager holds the catalog of built-in and user-registered themes.
type Manager struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

// NewManager returns a catalog seeded with the built-in presets.
func NewManager() *Manager {
	m := &Manager{themes: map[string]Theme{}}
	for _, t := range Presets() {
		m.themes[t.ID] = t
	}
	return m
}

// Get returns the theme with the given id.
func (m *Manager) Get(id string) (Theme, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.themes[id]
	if !ok {
		return Theme{}, apperr.NotFound("theme not found: %s", id)
	}
	return t, nil
}

// Default returns the theme used when a request names none.
func (m *Manager) Default() Theme {
	t, _ := m.Get("default-dark")
	return t
}

// List returns every theme sorted by id.
func (m *Manager) List() []Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Theme, 0, len(m.themes))
	for _, t := range m.themes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ListByType returns the themes of the given type sorted by id.
func (m *Manager) ListByType(typ Type) []Theme {
	all := m.List()
	out := all[:0]
	for _, t := range all {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}

// Register validates t and adds it to the catalog, replacing any theme
// with the same id.
func (m *Manager) Register(t Theme) error {
	if strings.TrimSpace(t.ID) == "" {
		return apperr.Theme("theme id cannot be empty")
	}
	if strings.TrimSpace(t.Name) == "" {
		return apperr.Theme("theme name cannot be empty")
	}
	if err := t.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[t.ID] = t
	return nil
}

// Remove deletes a registered theme. Built-in presets cannot be
// removed.
func (m *Manager) Remove(id string) error {
	for _, p := range Presets() {
		if p.ID == id {
			return apperr.Theme("built-in theme cannot be removed: %s", id)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.themes[id]; !ok {
		return apperr.NotFound("theme not found: %s", id)
	}
	delete(m.themes, id)
	return nil
}

// Overrides carries the fields a customization request may replace on
// a base theme. Nil fields leave the base value untouched.
type Overrides struct {
	Background *Background `json:"background,omitempty" yaml:"background,omitempty"`
	Syntax     *Syntax     `json:"syntax,omitempty" yaml:"syntax,omitempty"`
	Window     *Window     `json:"window,omitempty" yaml:"window,omitempty"`
	Typography *Typography `json:"typography,omitempty" yaml:"typography,omitempty"`
}

// Customize derives a new theme from a base by applying overrides. The
// result is validated but not registered.
func (m *Manager) Customize(baseID string, o Overrides) (Theme, error) {
	base, err := m.Get(baseID)
	if err != nil {
		return Theme{}, err
	}

	t := base
	t.ID = base.ID + "-custom"
	t.Name = base.Name + " (custom)"
	if o.Background != nil {
		t.Background = *o.Background
	}
	if o.Syntax != nil {
		t.Syntax = *o.Syntax
	}
	if o.Window != nil {
		t.Window = *o.Window
	}
	if o.Typography != nil {
		t.Typography = *o.Typography
	}

	if err := t.Validate(); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadDir registers every .yml/.yaml theme file found directly in dir.
// Invalid files are skipped with a warning so one bad file does not
// block startup.
func (m *Manager) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, errors.Wrap(err, "reading theme directory")
	}

	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("skipping unreadable theme file", "path", path, "error", err)
			continue
		}

		var t Theme
		if err := yaml.Unmarshal(data, &t); err != nil {
			log.Warn("skipping malformed theme file", "path", path, "error", err)
			continue
		}
		if t.ID == "" {
			t.ID = strings.TrimSuffix(entry.Name(), ext)
		}

		if err := m.Register(t); err != nil {
			log.Warn("skipping invalid theme file", "path", path, "error", err)
			continue
		}

		log.Debug("registered theme from file", "id", t.ID, "path", path)
		loaded++
	}

	return loaded, nil
}
