// Package providers implements the utterance-generation channel behind the
// asker role, with a unified interface over chat-based LLM backends.
//
// The core never talks to a backend directly: the session hands a provider an
// instruction string plus the bound transcript and awaits the generated
// utterance. Provider selection is configuration-driven through the factory
// registry, so swapping backends never duplicates control logic.
package providers

import (
	"context"
	"time"

	"github.com/CandorLabs/InterviewKit/types"
)

// ChatRequest represents a request to a chat provider.
type ChatRequest struct {
	System      string          `json:"system"`
	Messages    []types.Message `json:"messages"`
	Temperature float32         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

// ChatResponse represents a response from a chat provider.
type ChatResponse struct {
	Content string        `json:"content"`
	Latency time.Duration `json:"latency"`
}

// Defaults holds default request parameters for a provider.
type Defaults struct {
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Provider is the contract for chat providers.
type Provider interface {
	ID() string
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	Close() error // Close cleans up provider resources (e.g., HTTP connections)
}
