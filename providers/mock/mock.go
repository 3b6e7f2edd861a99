// Package mock provides a Provider implementation for testing and development.
// It returns scripted responses without making any API calls.
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/CandorLabs/InterviewKit/providers"
)

// MockProvider returns scripted responses in order, then a default response.
// It records every request it receives so tests can assert on the traffic.
type MockProvider struct {
	id       string
	mu       sync.Mutex
	scripted []string
	err      error
	delay    time.Duration
	requests []providers.ChatRequest
}

// NewMockProvider creates a mock provider with no scripted responses;
// every Chat call answers with a deterministic default.
func NewMockProvider(id string) *MockProvider {
	return &MockProvider{id: id}
}

func init() {
	providers.RegisterFactory("mock", func(spec providers.Spec) (providers.Provider, error) {
		return NewMockProvider(spec.ID), nil
	})
}

// Script queues responses to return in order.
func (m *MockProvider) Script(responses ...string) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripted = append(m.scripted, responses...)
	return m
}

// FailWith makes every subsequent Chat call return err.
func (m *MockProvider) FailWith(err error) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
	return m
}

// Delay makes Chat wait before responding, honoring context cancellation.
func (m *MockProvider) Delay(d time.Duration) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
	return m
}

// Requests returns a copy of the requests received so far.
func (m *MockProvider) Requests() []providers.ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]providers.ChatRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// ID returns the provider ID.
func (m *MockProvider) ID() string {
	return m.id
}

// Chat returns the next scripted response.
func (m *MockProvider) Chat(ctx context.Context, req providers.ChatRequest) (providers.ChatResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	err := m.err
	delay := m.delay
	var content string
	if len(m.scripted) > 0 {
		content = m.scripted[0]
		m.scripted = m.scripted[1:]
	} else {
		content = fmt.Sprintf("mock response %d from %s", len(m.requests), m.id)
	}
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return providers.ChatResponse{}, ctx.Err()
		}
	}
	if err != nil {
		return providers.ChatResponse{}, err
	}
	return providers.ChatResponse{Content: content}, nil
}

// Close implements Provider.
func (m *MockProvider) Close() error {
	return nil
}
