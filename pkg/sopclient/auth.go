package sopclient

import (
	"context"
	"net/http"
)

// AuthService drives the session state machine against the auth endpoints.
type AuthService struct {
	c *Client
}

// NewAuthService builds the service. It mutates the client's session.
func NewAuthService(c *Client) *AuthService {
	return &AuthService{c: c}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user"`
}

// RegisterRequest creates a new account. Role defaults to viewer server-side.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	FullName   string `json:"full_name"`
	Role       string `json:"role,omitempty"`
	Department string `json:"department,omitempty"`
}

// UpdateMeRequest edits the caller's own profile; nil fields are unchanged.
type UpdateMeRequest struct {
	FullName   *string `json:"full_name,omitempty"`
	Department *string `json:"department,omitempty"`
}

// Login authenticates and establishes the session on success. Any failure
// leaves the session anonymous and returns the generic ErrLoginFailed; the
// cause is deliberately not distinguished for the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*User, error) {
	sess := s.c.session
	sess.mu.Lock()
	sess.state = StateAuthenticating
	sess.mu.Unlock()

	raw, err := s.c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password})
	if err != nil {
		sess.mu.Lock()
		sess.state = StateAnonymous
		sess.mu.Unlock()
		return nil, ErrLoginFailed
	}
	var out loginResponse
	if err := decodeInto(raw, "/auth/login", &out); err != nil || out.AccessToken == "" {
		sess.mu.Lock()
		sess.state = StateAnonymous
		sess.mu.Unlock()
		return nil, ErrLoginFailed
	}
	if err := sess.establish(out.AccessToken, out.User); err != nil {
		return nil, err
	}
	return out.User, nil
}

// Logout clears the persisted token and user unconditionally.
func (s *AuthService) Logout() {
	s.c.session.clear()
}

// FetchMe resolves the current user on startup. With no persisted token it is
// a no-op: the session stays anonymous and no request is issued. Any failure
// forces a full logout, never a stale or partial session.
func (s *AuthService) FetchMe(ctx context.Context) (*User, error) {
	if s.c.session.Token() == "" {
		return nil, nil
	}
	var user User
	if err := s.c.getJSON(ctx, "/auth/me", nil, &user); err != nil {
		s.c.session.clear()
		return nil, err
	}
	if err := s.c.session.setUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account. It does not sign the new user in.
func (s *AuthService) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	var user User
	if err := s.c.postJSON(ctx, "/auth/register", nil, in, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe edits the caller's profile and refreshes the stored user.
func (s *AuthService) UpdateMe(ctx context.Context, in UpdateMeRequest) (*User, error) {
	var user User
	if err := s.c.putJSON(ctx, "/auth/me", in, &user); err != nil {
		return nil, err
	}
	if err := s.c.session.setUser(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword rotates the caller's password.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"current_password": current,
		"new_password":     next,
	}
	return s.c.putJSON(ctx, "/auth/password", body, nil)
}

// Users lists all accounts (admin only).
func (s *AuthService) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.c.getJSON(ctx, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}
