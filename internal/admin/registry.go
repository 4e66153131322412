// Package admin keeps the moderation user list in lockstep with
// server-confirmed state. Every mutation is confirm-then-apply: no local
// record changes before the server acknowledges the action, so the list
// can never diverge from server truth because of a failed request.
package admin

import (
	"context"
	"errors"
	"sync"

	"github.com/careerrise/careerctl/internal/api"
	"github.com/careerrise/careerctl/internal/logging"
	"github.com/careerrise/careerctl/internal/models"
)

// ErrActionPending is returned when a moderation action targets a user
// that already has one outstanding. Serializing per-email mutations
// prevents a lost update on that record.
var ErrActionPending = errors.New("another action for this user is still in progress")

// ErrDeclined is returned when the operator refuses the confirmation
// step of a destructive action. Nothing was sent to the server.
var ErrDeclined = errors.New("action declined")

// ConfirmFunc asks the operator to confirm a destructive action before
// any request is sent.
type ConfirmFunc func(prompt string) bool

// Registry is the client-side view of the moderated user list.
// All operations assume an admin session; the surrounding guard
// enforces that.
type Registry struct {
	api     api.Client
	log     logging.Logger
	confirm ConfirmFunc

	mu      sync.Mutex
	users   []models.UserRecord
	loaded  bool
	lastErr string
	pending map[string]struct{}
}

func NewRegistry(client api.Client, log logging.Logger, confirm ConfirmFunc) *Registry {
	return &Registry{
		api:     client,
		log:     log,
		confirm: confirm,
		pending: make(map[string]struct{}),
	}
}

// Users returns a copy of the current list in server order.
func (r *Registry) Users() []models.UserRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.UserRecord, len(r.users))
	copy(out, r.users)
	return out
}

// Loaded reports whether at least one fetch has succeeded. It stays true
// after a failed refresh, so the UI can tell "never loaded" apart from
// "loaded, refresh failed".
func (r *Registry) Loaded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loaded
}

// Err returns the last surfaced failure message, or "" if the most
// recent action succeeded.
func (r *Registry) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Refresh fetches the full user list. Success replaces the local set
// wholesale; failure keeps whatever was loaded before.
func (r *Registry) Refresh(ctx context.Context) error {
	users, err := r.api.ListUsers(ctx)
	if err != nil {
		r.setErr(api.Reason(err, "Failed to fetch users"))
		return err
	}

	r.mu.Lock()
	r.users = users
	r.loaded = true
	r.lastErr = ""
	r.mu.Unlock()

	r.log.Debug(ctx, "user list refreshed", "count", len(users))
	return nil
}

// Block asks the server to block the user and flips the local record
// only on confirmed success.
func (r *Registry) Block(ctx context.Context, email string) error {
	return r.mutate(ctx, email, "Failed to block user", func() (string, error) {
		return r.api.BlockUser(ctx, email)
	}, func(u *models.UserRecord) bool {
		u.IsBlocked = true
		return true
	})
}

// Unblock is symmetric to Block.
func (r *Registry) Unblock(ctx context.Context, email string) error {
	return r.mutate(ctx, email, "Failed to unblock user", func() (string, error) {
		return r.api.UnblockUser(ctx, email)
	}, func(u *models.UserRecord) bool {
		u.IsBlocked = false
		return true
	})
}

// Remove deletes the user. The confirmation step runs before anything
// is sent; declining issues no request at all.
func (r *Registry) Remove(ctx context.Context, email string) error {
	if r.confirm != nil && !r.confirm("Are you sure you want to remove "+email+"?") {
		return ErrDeclined
	}
	return r.mutate(ctx, email, "Failed to remove user", func() (string, error) {
		return r.api.RemoveUser(ctx, email)
	}, func(u *models.UserRecord) bool {
		// Returning false drops the record from the list.
		return false
	})
}

// mutate runs one server-confirmed action against a single record.
// Actions on different emails may run concurrently; a second action on
// the same email is rejected while the first is outstanding. The apply
// function mutates the record in place and reports whether to keep it.
func (r *Registry) mutate(ctx context.Context, email, fallback string, call func() (string, error), apply func(*models.UserRecord) bool) error {
	r.mu.Lock()
	if _, busy := r.pending[email]; busy {
		r.mu.Unlock()
		return ErrActionPending
	}
	r.pending[email] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.pending, email)
		r.mu.Unlock()
	}()

	msg, err := call()
	if err != nil {
		r.setErr(api.Reason(err, fallback))
		return err
	}

	r.mu.Lock()
	kept := r.users[:0:0]
	for i := range r.users {
		u := r.users[i]
		if u.Email == email && !apply(&u) {
			continue
		}
		kept = append(kept, u)
	}
	r.users = kept
	r.lastErr = ""
	r.mu.Unlock()

	r.log.Info(ctx, "moderation action confirmed", "email", email, "message", msg)
	return nil
}

func (r *Registry) setErr(msg string) {
	r.mu.Lock()
	r.lastErr = msg
	r.mu.Unlock()
}
