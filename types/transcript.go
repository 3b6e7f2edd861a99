package types

// Transcript is the ordered conversational context of one interview session.
// The first entry is always the system instruction message; it is set once at
// construction and never removed. A transcript is not safe for concurrent use;
// the session's turn lock guarantees a single writer at a time.
type Transcript struct {
	messages []Message
}

// NewTranscript creates a transcript seeded with the system instructions entry.
func NewTranscript(systemInstructions string) *Transcript {
	return &Transcript{
		messages: []Message{NewMessage(RoleSystem, systemInstructions)},
	}
}

// Append adds a message to the end of the transcript.
func (t *Transcript) Append(role, content string) {
	t.messages = append(t.messages, NewMessage(role, content))
}

// AppendMessage adds an already-built message to the end of the transcript.
func (t *Transcript) AppendMessage(msg Message) {
	t.messages = append(t.messages, msg)
}

// Len returns the number of messages in the transcript.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the transcript contents.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the most recent message and true, or a zero message and false
// when the transcript is empty.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}

// LastByRole returns the most recent message with the given role.
func (t *Transcript) LastByRole(role string) (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == role {
			return t.messages[i], true
		}
	}
	return Message{}, false
}

// Clone returns an independent copy of the transcript.
func (t *Transcript) Clone() *Transcript {
	return &Transcript{messages: t.Messages()}
}

// MergeFrom appends to t every message that other holds beyond their shared
// prefix. Entries already present at the same position are never duplicated,
// and the leading system entry is always preserved. Merging is a no-op when
// other diverged before t's current length.
func (t *Transcript) MergeFrom(other *Transcript) {
	if other == nil || other.Len() <= t.Len() {
		return
	}
	t.messages = append(t.messages, other.messages[len(t.messages):]...)
}
