// Package credstore persists the bearer token between runs. Absence of a
// stored token means logged out; presence triggers session revalidation
// at startup.
package credstore

import "context"

type Repository interface {
	// LoadToken returns the persisted token, or "" when none is stored.
	LoadToken(ctx context.Context) (string, error)

	// SaveToken stores the token, replacing any previous one.
	SaveToken(ctx context.Context, token string) error

	// DeleteToken removes the persisted token. Deleting an absent token
	// is not an error.
	DeleteToken(ctx context.Context) error
}
