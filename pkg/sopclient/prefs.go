package sopclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const prefsFileName = "genxsop-ui.json"

// Theme is the UI color preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type prefsState struct {
	Theme            Theme `json:"theme"`
	SidebarCollapsed bool  `json:"sidebar_collapsed"`
}

// Prefs is the UI preference store: theme and sidebar-collapsed flag,
// persisted with no network dependency. In the CLI the theme drives colored
// output instead of a document class.
type Prefs struct {
	mu    sync.Mutex
	path  string
	state prefsState
}

// NewPrefs loads persisted preferences from stateDir (same resolution rules
// as NewSession). Missing or corrupt state yields the defaults.
func NewPrefs(stateDir string) (*Prefs, error) {
	dir, err := resolveStateDir(stateDir)
	if err != nil {
		return nil, err
	}
	p := &Prefs{
		path:  filepath.Join(dir, prefsFileName),
		state: prefsState{Theme: ThemeLight},
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return p, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	var st prefsState
	if err := json.Unmarshal(raw, &st); err == nil {
		if st.Theme != ThemeDark {
			st.Theme = ThemeLight
		}
		p.state = st
	}
	return p, nil
}

// Theme returns the current theme.
func (p *Prefs) Theme() Theme {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Theme
}

// SetTheme persists a theme change.
func (p *Prefs) SetTheme(t Theme) error {
	if t != ThemeDark {
		t = ThemeLight
	}
	p.mu.Lock()
	p.state.Theme = t
	p.mu.Unlock()
	return p.persist()
}

// SidebarCollapsed returns the sidebar flag.
func (p *Prefs) SidebarCollapsed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.SidebarCollapsed
}

// SetSidebarCollapsed persists the sidebar flag.
func (p *Prefs) SetSidebarCollapsed(collapsed bool) error {
	p.mu.Lock()
	p.state.SidebarCollapsed = collapsed
	p.mu.Unlock()
	return p.persist()
}

func (p *Prefs) persist() error {
	p.mu.Lock()
	st := p.state
	path := p.path
	p.mu.Unlock()

	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
