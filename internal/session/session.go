// Package session keeps the mock sign-in state of the local user.
//
// Credentials are never checked against anything: any non-blank username with
// a password of at least MinPasswordLength characters is accepted. The session
// survives process restarts through the storage package.
package session

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/nibzard/weatherdo/internal/logging"
	"github.com/nibzard/weatherdo/internal/storage"
)

const (
	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 4
	// DefaultLoginDelay simulates a round trip to an auth backend.
	DefaultLoginDelay = 800 * time.Millisecond
	// UserID is the identifier given to every signed-in user.
	UserID = "1"
)

// User is the signed-in identity.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Session is the current sign-in state.
type Session struct {
	User          *User
	Authenticated bool
}

// Username returns the signed-in username, or "" when there is none.
func (s Session) Username() string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

// ErrInvalidCredentials is wrapped by every AuthError.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthError reports rejected credentials.
type AuthError struct {
	Field  string // "username" or "password"
	Reason string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidCredentials, e.Reason)
}

// Unwrap returns ErrInvalidCredentials.
func (e *AuthError) Unwrap() error {
	return ErrInvalidCredentials
}

// CheckCredentials applies the mock acceptance rules.
func CheckCredentials(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return &AuthError{Field: "username", Reason: "username is required"}
	}
	if password == "" {
		return &AuthError{Field: "password", Reason: "password is required"}
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return &AuthError{Field: "password", Reason: fmt.Sprintf("password must be at least %d characters", MinPasswordLength)}
	}
	return nil
}

// Options configures a Manager.
type Options struct {
	// Secret signs session tokens. A random per-process secret is used when empty.
	Secret []byte
	// Delay is the simulated login latency. Zero disables it.
	Delay time.Duration
	// Now returns the current time. Defaults to time.Now.
	Now    func() time.Time
	Logger *log.Logger
}

// Manager owns the session state.
type Manager struct {
	mu      sync.Mutex
	state   *storage.State
	current Session
	secret  []byte
	delay   time.Duration
	now     func() time.Time
	logger  *log.Logger
}

// Open loads the persisted session from state.
func Open(state *storage.State, opts Options) (*Manager, error) {
	m := &Manager{
		state:  state,
		secret: opts.Secret,
		delay:  opts.Delay,
		now:    opts.Now,
		logger: logging.OrDiscard(opts.Logger),
	}
	if m.now == nil {
		m.now = time.Now
	}
	if len(m.secret) == 0 {
		m.secret = make([]byte, 32)
		if _, err := rand.Read(m.secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}

	var user User
	found, err := state.LoadJSON(storage.KeyUser, &user)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if found {
		m.current.User = &user
	}
	if m.current.Authenticated, err = state.LoadFlag(storage.KeyAuthenticated); err != nil {
		return nil, fmt.Errorf("load auth state: %w", err)
	}
	return m, nil
}

// Current returns the session.
func (m *Manager) Current() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copySession(m.current)
}

// Login accepts any credentials passing CheckCredentials after the simulated
// delay. On failure the existing session is left untouched.
func (m *Manager) Login(ctx context.Context, username, password string) (Session, error) {
	if err := CheckCredentials(username, password); err != nil {
		m.logger.Debug("login rejected", "username", username, "err", err)
		return Session{}, err
	}

	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Session{}, fmt.Errorf("login: %w", ctx.Err())
		case <-timer.C:
		}
	}

	token, err := m.issueToken(username)
	if err != nil {
		return Session{}, err
	}
	user := &User{ID: UserID, Username: username, Token: token}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.state.SaveJSON(storage.KeyUser, user); err != nil {
		return Session{}, fmt.Errorf("save user: %w", err)
	}
	if err := m.state.SaveFlag(storage.KeyAuthenticated, true); err != nil {
		err = fmt.Errorf("save auth state: %w", err)
		if rerr := m.restoreUser(); rerr != nil {
			err = errors.Join(err, rerr)
		}
		return Session{}, err
	}
	m.current = Session{User: user, Authenticated: true}
	m.logger.Info("logged in", "username", username)
	return copySession(m.current), nil
}

// restoreUser puts the persisted user back to match the in-memory session.
// Callers must hold m.mu.
func (m *Manager) restoreUser() error {
	if m.current.User == nil {
		if err := m.state.Remove(storage.KeyUser); err != nil {
			return fmt.Errorf("remove user: %w", err)
		}
		return nil
	}
	if err := m.state.SaveJSON(storage.KeyUser, m.current.User); err != nil {
		return fmt.Errorf("restore user: %w", err)
	}
	return nil
}

// Logout clears the session. The in-memory session is cleared even when
// persisting fails.
func (m *Manager) Logout() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	username := m.current.Username()
	m.current = Session{}

	var errs []error
	if err := m.state.Remove(storage.KeyUser); err != nil {
		errs = append(errs, fmt.Errorf("remove user: %w", err))
	}
	if err := m.state.SaveFlag(storage.KeyAuthenticated, false); err != nil {
		errs = append(errs, fmt.Errorf("save auth state: %w", err))
	}
	if len(errs) == 0 && username != "" {
		m.logger.Info("logged out", "username", username)
	}
	return errors.Join(errs...)
}

func copySession(s Session) Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
