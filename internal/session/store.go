// Package session holds the client's belief about who is currently
// authenticated and with what credential. The Store is the single writer
// of that state; every other component reads it through snapshots.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/careerrise/careerctl/internal/credstore"
	"github.com/careerrise/careerctl/internal/logging"
	"github.com/careerrise/careerctl/internal/models"
)

// State describes where the session is in its lifecycle.
type State int

const (
	// StateLoggedOut means no credential is held.
	StateLoggedOut State = iota
	// StateValidating means a token is held but its "who am I" check has
	// not completed. Guards treat this exactly like StateLoggedOut.
	StateValidating
	// StateValid means the held token was confirmed and the profile it
	// belongs to is loaded.
	StateValid
)

func (s State) String() string {
	switch s {
	case StateValidating:
		return "validating"
	case StateValid:
		return "valid"
	default:
		return "logged out"
	}
}

// Snapshot is a read-only view of the session at one point in time.
type Snapshot struct {
	State State
	Token string
	User  *models.Profile
}

// Fetcher is the slice of the API client the store needs for
// revalidation.
type Fetcher interface {
	Me(ctx context.Context) (*models.Profile, error)
}

// Store is the authoritative holder of session state.
//
// Invariant: User is set only while the token it was fetched with is the
// currently held token. Replacing the token clears the profile until the
// new token is validated. Every in-flight validation is tagged with the
// generation it started from; results from a superseded generation are
// discarded, never applied.
type Store struct {
	api   Fetcher
	creds credstore.Repository
	log   logging.Logger

	// now is a seam for expiry tests.
	now func() time.Time

	mu    sync.Mutex
	state State
	token string
	user  *models.Profile
	gen   uint64
	subs  []func()
}

func NewStore(api Fetcher, creds credstore.Repository, log logging.Logger) *Store {
	return &Store{
		api:   api,
		creds: creds,
		log:   log,
		now:   time.Now,
		state: StateLoggedOut,
	}
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Snapshot returns the current session view. Callers must not mutate the
// returned profile.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{State: s.state, Token: s.token, User: s.user}
}

// IsLoggedIn reports whether a validated session is held.
func (s *Store) IsLoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateValid && s.token != "" && s.user != nil
}

// Subscribe registers a change-notification callback. Callbacks run
// synchronously after each state change and must not call back into the
// store's mutating operations.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Login unconditionally replaces the session with the given profile and
// token and persists the token. The profile must have been fetched with
// this token.
func (s *Store) Login(ctx context.Context, user *models.Profile, token string) {
	s.mu.Lock()
	s.gen++
	s.token = token
	s.user = user
	s.state = StateValid
	s.mu.Unlock()

	if err := s.creds.SaveToken(ctx, token); err != nil {
		s.log.Warn(ctx, "failed to persist token", "error", err)
	}
	s.log.Info(ctx, "logged in", "email", user.Email, "role", user.Role)
	s.notify()
}

// Logout clears the session and the persisted token. Calling it with no
// active session is a no-op.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	hadSession := s.token != "" || s.user != nil
	s.gen++
	s.token = ""
	s.user = nil
	s.state = StateLoggedOut
	s.mu.Unlock()

	if err := s.creds.DeleteToken(ctx); err != nil {
		s.log.Warn(ctx, "failed to remove persisted token", "error", err)
	}
	if hadSession {
		s.log.Info(ctx, "logged out")
	}
	s.notify()
}

// Restore loads a persisted token at process start and validates it.
// A rejected stored token silently returns the user to the logged-out
// state; only storage errors are propagated.
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.creds.LoadToken(ctx)
	if err != nil {
		return err
	}
	if token == "" {
		return nil
	}

	s.installToken(token)

	if err := s.Bootstrap(ctx); err != nil {
		s.log.Info(ctx, "stored token rejected", "error", err)
	}
	return nil
}

// Adopt installs a freshly issued token (sign-in flow), persists it, and
// validates it. Unlike Restore, a validation failure is returned to the
// caller so the sign-in can be reported as failed.
func (s *Store) Adopt(ctx context.Context, token string) error {
	s.installToken(token)

	if err := s.creds.SaveToken(ctx, token); err != nil {
		s.log.Warn(ctx, "failed to persist token", "error", err)
	}
	return s.Bootstrap(ctx)
}

// installToken replaces the held token and invalidates the previous
// profile until revalidation completes.
func (s *Store) installToken(token string) {
	s.mu.Lock()
	s.gen++
	s.token = token
	s.user = nil
	s.state = StateValidating
	s.mu.Unlock()
	s.notify()
}

// Bootstrap runs the "who am I" check for the currently held token.
// Success loads the profile and marks the session valid. Rejection or
// network failure tears the session down, including persisted storage:
// a session is never left holding an unverifiable token.
//
// The result is applied only if the session still holds the token the
// check was started for. A login that lands while the check is in flight
// wins; the late result is dropped.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	token := s.token
	if token == "" {
		s.state = StateLoggedOut
		s.mu.Unlock()
		return nil
	}
	gen := s.gen
	s.state = StateValidating
	s.user = nil
	s.mu.Unlock()
	s.notify()

	// Tokens are JWTs with an exp claim; an already-expired one does not
	// need a round trip to be rejected.
	if tokenExpired(token, s.now()) {
		s.teardownIfCurrent(ctx, gen, token)
		return jwt.ErrTokenExpired
	}

	user, err := s.api.Me(ctx)

	s.mu.Lock()
	if s.gen != gen || s.token != token {
		s.mu.Unlock()
		s.log.Debug(ctx, "discarding stale validation result")
		return nil
	}
	s.mu.Unlock()

	if err != nil {
		s.teardownIfCurrent(ctx, gen, token)
		return err
	}

	s.mu.Lock()
	if s.gen != gen || s.token != token {
		s.mu.Unlock()
		return nil
	}
	s.user = user
	s.state = StateValid
	s.mu.Unlock()

	s.log.Info(ctx, "session validated", "email", user.Email, "role", user.Role)
	s.notify()
	return nil
}

// teardownIfCurrent clears the session and persisted token, but only if
// the store still holds the token the failed validation was for.
func (s *Store) teardownIfCurrent(ctx context.Context, gen uint64, token string) {
	s.mu.Lock()
	if s.gen != gen || s.token != token {
		s.mu.Unlock()
		return
	}
	s.token = ""
	s.user = nil
	s.state = StateLoggedOut
	s.mu.Unlock()

	if err := s.creds.DeleteToken(ctx); err != nil {
		s.log.Warn(ctx, "failed to remove persisted token", "error", err)
	}
	s.notify()
}

// tokenExpired decodes the token's exp claim without verifying the
// signature (that is the server's job). Tokens that do not parse as JWTs
// are left for the server to judge.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
