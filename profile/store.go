// Package profile fetches candidate profile text through a cache-then-store
// gateway. The interview core only ever reads profiles; consistency of the
// backing store is the collaborator's concern.
package profile

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no profile exists for a candidate.
// Callers starting a session treat it as an empty profile.
var ErrNotFound = errors.New("candidate profile not found")

// ErrInvalidID is returned when an empty candidate ID is provided.
var ErrInvalidID = errors.New("invalid candidate ID")

// Source is the backing profile store (document store, HTTP service, ...).
type Source interface {
	// FetchProfile returns the profile text for a candidate.
	// Returns ErrNotFound if the candidate has no stored profile.
	FetchProfile(ctx context.Context, candidateID string) (string, error)
}

// Cache is a read-through cache in front of a Source.
type Cache interface {
	// Get returns the cached profile text, or ErrNotFound on a miss.
	Get(ctx context.Context, candidateID string) (string, error)

	// Put stores profile text for a candidate.
	Put(ctx context.Context, candidateID, text string) error
}
