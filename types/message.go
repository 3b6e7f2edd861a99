// Package types defines the canonical conversation and question data model
// shared by the interview core.
package types

import "time"

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single entry in an interview transcript.
// This is the canonical message type used throughout the system.
type Message struct {
	Role      string    `json:"role"`                // "system", "user", "assistant"
	Content   string    `json:"content"`             // Message content
	Timestamp time.Time `json:"timestamp,omitempty"` // When the message was created
}

// NewMessage creates a message stamped with the current time.
func NewMessage(role, content string) Message {
	return Message{Role: role, Content: content, Timestamp: time.Now()}
}
