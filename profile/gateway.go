package profile

import (
	"context"
	"errors"

	"golang.org/x/sync/singleflight"

	"github.com/CandorLabs/InterviewKit/logger"
)

// Gateway reads profiles through a cache before falling back to the source.
// Concurrent fetches of the same candidate are coalesced, so a burst of
// session starts produces at most one source round-trip per candidate.
// A Gateway is safe for shared use across sessions.
type Gateway struct {
	cache  Cache
	source Source
	group  singleflight.Group
}

// NewGateway creates a gateway over the given cache and source.
// A nil cache disables caching and reads go straight to the source.
func NewGateway(cache Cache, source Source) *Gateway {
	return &Gateway{cache: cache, source: source}
}

// Fetch returns the candidate's profile text.
// Returns ErrNotFound when neither the cache nor the source knows the
// candidate; callers starting a session treat that as an empty profile.
func (g *Gateway) Fetch(ctx context.Context, candidateID string) (string, error) {
	if candidateID == "" {
		return "", ErrInvalidID
	}

	v, err, _ := g.group.Do(candidateID, func() (interface{}, error) {
		return g.fetch(ctx, candidateID)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (g *Gateway) fetch(ctx context.Context, candidateID string) (string, error) {
	if g.cache != nil {
		text, err := g.cache.Get(ctx, candidateID)
		if err == nil {
			return text, nil
		}
		if !errors.Is(err, ErrNotFound) {
			// Degraded cache is not fatal; fall through to the source.
			logger.Warn("profile cache read failed", "candidate", candidateID, "error", err)
		}
	}

	text, err := g.source.FetchProfile(ctx, candidateID)
	if err != nil {
		return "", err
	}

	if g.cache != nil {
		if err := g.cache.Put(ctx, candidateID, text); err != nil {
			logger.Warn("profile cache fill failed", "candidate", candidateID, "error", err)
		}
	}
	return text, nil
}
