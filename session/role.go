package session

import (
	"github.com/CandorLabs/InterviewKit/interview"
	"github.com/CandorLabs/InterviewKit/types"
)

// Role is a conversational participant: a role kind plus its instruction
// preamble and the transcript it is currently bound to. Both the normalizer
// and the asker are plain Role values; behavior differences live entirely in
// their instructions and in who the coordinator activates.
type Role struct {
	kind         interview.Role
	instructions string
	transcript   *types.Transcript
}

// NewRole creates a role with its instruction preamble and no bound transcript.
func NewRole(kind interview.Role, instructions string) *Role {
	return &Role{kind: kind, instructions: instructions}
}

// Kind returns which participant this role is.
func (r *Role) Kind() interview.Role { return r.kind }

// Instructions returns the role's instruction preamble.
func (r *Role) Instructions() string { return r.instructions }

// Activate binds the role to a transcript. The bound transcript is the one
// the role appends to while it owns the channel.
func (r *Role) Activate(t *types.Transcript) {
	r.transcript = t
}

// BoundTranscript returns the transcript the role is currently bound to.
func (r *Role) BoundTranscript() *types.Transcript { return r.transcript }

// conversation returns the bound transcript's non-system messages, the part
// a provider receives alongside the role's instruction preamble.
func (r *Role) conversation() []types.Message {
	if r.transcript == nil {
		return nil
	}
	all := r.transcript.Messages()
	out := make([]types.Message, 0, len(all))
	for _, m := range all {
		if m.Role == types.RoleSystem {
			continue
		}
		out = append(out, m)
	}
	return out
}
