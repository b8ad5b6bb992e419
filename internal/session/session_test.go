package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/nibzard/weatherdo/internal/storage"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }

func newManager(t *testing.T, st *storage.State) *Manager {
	t.Helper()
	m, err := Open(st, Options{Secret: []byte("test-secret"), Now: fixedNow})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return m
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		wantField string
	}{
		{"short password", "bob", "ab", "password"},
		{"short multibyte password", "bob", "éé", "password"},
		{"empty password", "bob", "", "password"},
		{"blank username", "   ", "abcd", "username"},
		{"empty username", "", "abcd", "username"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(t, storage.NewState(storage.NewMemory()))
			_, err := m.Login(context.Background(), tt.username, tt.password)
			var ae *AuthError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *AuthError, got %v", err)
			}
			if ae.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", ae.Field, tt.wantField)
			}
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Error("AuthError should wrap ErrInvalidCredentials")
			}
			if m.Current().Authenticated {
				t.Error("session should not be authenticated")
			}
		})
	}
}

func TestLoginSucceeds(t *testing.T) {
	st := storage.NewState(storage.NewMemory())
	m := newManager(t, st)

	sess, err := m.Login(context.Background(), "bob", "abcd")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if !sess.Authenticated || sess.User == nil {
		t.Fatalf("session = %+v, want authenticated with user", sess)
	}
	if sess.User.ID != UserID || sess.User.Username != "bob" || sess.User.Token == "" {
		t.Errorf("user = %+v", sess.User)
	}
	if raw, _, _ := st.Raw(storage.KeyAuthenticated); raw != "true" {
		t.Errorf("persisted flag = %q, want true", raw)
	}
	if !m.Current().Authenticated {
		t.Error("Current() should be authenticated")
	}
}

func TestLoginFailureKeepsExistingSession(t *testing.T) {
	m := newManager(t, storage.NewState(storage.NewMemory()))
	if _, err := m.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Login(context.Background(), "bob", "ab"); err == nil {
		t.Fatal("expected error")
	}
	cur := m.Current()
	if !cur.Authenticated || cur.Username() != "alice" {
		t.Errorf("session changed after failed login: %+v", cur)
	}
}

// failingKV rejects writes to one key.
type failingKV struct {
	*storage.MemoryKV
	key string
}

var errWriteFailed = errors.New("write failed")

func (kv *failingKV) Set(key, value string) error {
	if key == kv.key {
		return errWriteFailed
	}
	return kv.MemoryKV.Set(key, value)
}

func TestLoginAuthFlagFailureRestoresUser(t *testing.T) {
	t.Run("no previous user", func(t *testing.T) {
		st := storage.NewState(&failingKV{MemoryKV: storage.NewMemory(), key: storage.KeyAuthenticated})
		m := newManager(t, st)

		if _, err := m.Login(context.Background(), "bob", "secret"); !errors.Is(err, errWriteFailed) {
			t.Fatalf("Login() error = %v, want write failure", err)
		}
		if _, found, _ := st.Raw(storage.KeyUser); found {
			t.Error("user key left behind after failed login")
		}
		if m.Current().Authenticated {
			t.Error("session authenticated after failed login")
		}
	})

	t.Run("previous user kept", func(t *testing.T) {
		kv := &failingKV{MemoryKV: storage.NewMemory()}
		st := storage.NewState(kv)
		m := newManager(t, st)
		if _, err := m.Login(context.Background(), "alice", "secret"); err != nil {
			t.Fatal(err)
		}

		kv.key = storage.KeyAuthenticated
		if _, err := m.Login(context.Background(), "bob", "secret"); !errors.Is(err, errWriteFailed) {
			t.Fatalf("Login() error = %v, want write failure", err)
		}
		var stored User
		if _, err := st.LoadJSON(storage.KeyUser, &stored); err != nil {
			t.Fatal(err)
		}
		if stored.Username != "alice" || m.Current().Username() != "alice" {
			t.Errorf("stored = %q, current = %q, want alice", stored.Username, m.Current().Username())
		}
	})
}

func TestSessionPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st, err := storage.OpenState(storage.BackendFile, path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newManager(t, st).Login(context.Background(), "bob", "abcd"); err != nil {
		t.Fatal(err)
	}
	st.Close()

	reopened, err := storage.OpenState(storage.BackendFile, path)
	if err != nil {
		t.Fatal(err)
	}
	cur := newManager(t, reopened).Current()
	if !cur.Authenticated || cur.Username() != "bob" {
		t.Errorf("session after reopen = %+v", cur)
	}
}

func TestLogout(t *testing.T) {
	st := storage.NewState(storage.NewMemory())
	m := newManager(t, st)
	if _, err := m.Login(context.Background(), "bob", "abcd"); err != nil {
		t.Fatal(err)
	}
	if err := m.Logout(); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	cur := m.Current()
	if cur.Authenticated || cur.User != nil {
		t.Errorf("session after logout = %+v", cur)
	}
	if _, ok, _ := st.Raw(storage.KeyUser); ok {
		t.Error("user key should be removed")
	}
	if raw, _, _ := st.Raw(storage.KeyAuthenticated); raw != "false" {
		t.Errorf("persisted flag = %q, want false", raw)
	}
	if err := m.Logout(); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}

func TestLoginDelayHonoursContext(t *testing.T) {
	m, err := Open(storage.NewState(storage.NewMemory()), Options{Delay: time.Hour})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Login(ctx, "bob", "abcd"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Login() error = %v, want context.Canceled", err)
	}
	if m.Current().Authenticated {
		t.Error("cancelled login should not authenticate")
	}
}

func TestTokenVerification(t *testing.T) {
	m := newManager(t, storage.NewState(storage.NewMemory()))
	sess, err := m.Login(context.Background(), "bob", "abcd")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := m.VerifyToken(sess.User.Token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if claims.Subject != "bob" {
		t.Errorf("Subject = %q, want bob", claims.Subject)
	}
	if !claims.IssuedAt.Time.Equal(fixedNow()) {
		t.Errorf("IssuedAt = %v", claims.IssuedAt)
	}

	other, err := Open(storage.NewState(storage.NewMemory()), Options{Secret: []byte("other")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.VerifyToken(sess.User.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("foreign secret: error = %v, want ErrTokenInvalid", err)
	}
	if _, err := m.VerifyToken("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("garbage token: error = %v, want ErrTokenInvalid", err)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	m := newManager(t, storage.NewState(storage.NewMemory()))
	m.Login(context.Background(), "bob", "abcd")
	cur := m.Current()
	cur.User.Username = "mallory"
	if m.Current().Username() != "bob" {
		t.Error("Current() exposed internal state")
	}
}
