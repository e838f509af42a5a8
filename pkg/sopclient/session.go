package sopclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SessionState is the auth store's lifecycle state.
type SessionState string

const (
	StateAnonymous      SessionState = "anonymous"
	StateAuthenticating SessionState = "authenticating"
	StateAuthenticated  SessionState = "authenticated"
)

const authFileName = "genxsop-auth.json"

// User is the client-side profile shape.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Active     bool   `json:"is_active"`
}

// authState is what gets persisted between runs.
type authState struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Session is the auth store: token + user, persisted as JSON in the state
// directory and rehydrated on construction. It is an explicit injectable
// object, constructed once at startup. A 401 anywhere invalidates it exactly
// once per sign-in.
type Session struct {
	mu          sync.Mutex
	path        string
	state       SessionState
	token       string
	user        *User
	invalidated bool
	onInvalid   func()
}

// NewSession loads any persisted session from stateDir. An empty stateDir
// resolves to the user config directory under "genxsop". A corrupt or missing
// state file yields an anonymous session, not an error.
func NewSession(stateDir string) (*Session, error) {
	dir, err := resolveStateDir(stateDir)
	if err != nil {
		return nil, err
	}
	s := &Session{
		path:  filepath.Join(dir, authFileName),
		state: StateAnonymous,
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session state: %w", err)
	}
	var st authState
	if err := json.Unmarshal(raw, &st); err != nil || st.Token == "" {
		return s, nil
	}
	s.token = st.Token
	s.user = st.User
	s.state = StateAuthenticated
	return s, nil
}

func resolveStateDir(stateDir string) (string, error) {
	dir := stateDir
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolve state dir: %w", err)
		}
		dir = filepath.Join(base, "genxsop")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create state dir: %w", err)
	}
	return dir, nil
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the persisted bearer token, or empty when anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the stored profile, or nil when anonymous.
func (s *Session) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// OnInvalidated registers the hook fired when a 401 tears the session down.
// It fires at most once per sign-in.
func (s *Session) OnInvalidated(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalid = fn
}

// establish stores a fresh token + user and persists them.
func (s *Session) establish(token string, user *User) error {
	s.mu.Lock()
	s.token = token
	s.user = user
	s.state = StateAuthenticated
	s.invalidated = false
	s.mu.Unlock()
	return s.persist()
}

// setUser refreshes the stored profile without touching the token.
func (s *Session) setUser(user *User) error {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return s.persist()
}

// clear drops token and user unconditionally and removes the state file.
func (s *Session) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()
	_ = os.Remove(s.path)
}

// invalidate is the 401 path: clear the session and fire the hook, once.
// Repeated 401s from concurrent in-flight requests are collapsed.
func (s *Session) invalidate() {
	s.mu.Lock()
	if s.invalidated {
		s.mu.Unlock()
		return
	}
	s.invalidated = true
	hook := s.onInvalid
	s.token = ""
	s.user = nil
	s.state = StateAnonymous
	s.mu.Unlock()

	_ = os.Remove(s.path)
	if hook != nil {
		hook()
	}
}

func (s *Session) persist() error {
	s.mu.Lock()
	st := authState{Token: s.token, User: s.user}
	path := s.path
	s.mu.Unlock()

	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
