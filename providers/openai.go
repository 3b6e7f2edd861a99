package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/CandorLabs/InterviewKit/types"
)

// OpenAIProvider implements the Provider interface for OpenAI-compatible
// chat completion APIs.
type OpenAIProvider struct {
	id       string
	model    string
	baseURL  string
	apiKey   string
	defaults Defaults
	client   *http.Client
}

// NewOpenAIProvider creates a new OpenAI provider.
// The API key is read from OPENAI_API_KEY (falling back to OPENAI_TOKEN).
func NewOpenAIProvider(id, model, baseURL string, defaults Defaults) *OpenAIProvider {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_TOKEN")
	}

	return &OpenAIProvider{
		id:       id,
		model:    model,
		baseURL:  baseURL,
		apiKey:   apiKey,
		defaults: defaults,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func init() {
	RegisterFactory("openai", func(spec Spec) (Provider, error) {
		return NewOpenAIProvider(spec.ID, spec.Model, spec.BaseURL, spec.Defaults), nil
	})
}

// ID returns the provider ID.
func (p *OpenAIProvider) ID() string {
	return p.id
}

// Close closes the HTTP client and cleans up idle connections.
func (p *OpenAIProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// OpenAI API request/response structures
type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float32         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIResponse struct {
	Choices []openAIChoice `json:"choices"`
	Error   *openAIError   `json:"error,omitempty"`
}

type openAIChoice struct {
	Index        int           `json:"index"`
	Message      openAIMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Chat sends a chat request to OpenAI.
func (p *OpenAIProvider) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	start := time.Now()

	messages := make([]openAIMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, openAIMessage{Role: types.RoleSystem, Content: req.System})
	}
	for _, msg := range req.Messages {
		messages = append(messages, openAIMessage{Role: msg.Role, Content: msg.Content})
	}

	// Apply provider defaults for zero values
	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.defaults.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.defaults.MaxTokens
	}

	body, err := json.Marshal(openAIRequest{
		Model:       p.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return ChatResponse{}, fmt.Errorf("openai HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed openAIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return ChatResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return ChatResponse{}, fmt.Errorf("openai API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return ChatResponse{}, fmt.Errorf("openai returned no choices")
	}

	return ChatResponse{
		Content: parsed.Choices[0].Message.Content,
		Latency: time.Since(start),
	}, nil
}
