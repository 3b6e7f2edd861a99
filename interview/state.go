// Package interview holds the per-session interview state and the turn
// sequencer that decides what happens next.
//
// A session's State is exclusively owned by its session and mutated only under
// the session's turn lock. The sequencer is the single authority for advancing
// interview progress.
package interview

import (
	"github.com/CandorLabs/InterviewKit/types"
)

// Phase is the coarse lifecycle of one interview session.
type Phase string

// Session phases.
const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingAnswer Phase = "awaiting_answer"
	PhaseEnded          Phase = "ended"
)

// Role identifies which conversational participant owns the channel.
type Role string

// Conversational roles.
const (
	// RoleNormalizer cleans raw spoken input; it owns the channel between turns.
	RoleNormalizer Role = "normalizer"
	// RoleAsker poses interview questions and summaries; it owns the channel
	// only while a turn is running.
	RoleAsker Role = "asker"
)

// ProfilePolicy selects how profile-derived questions are scheduled.
// The source product shipped with several inconsistent schedules; the policy
// is an explicit configuration knob rather than a hard-coded rule.
type ProfilePolicy string

// Profile question scheduling policies.
const (
	// PolicyAlternating inserts one profile question between consecutive
	// predefined questions. No trailing profile question after the last one.
	PolicyAlternating ProfilePolicy = "alternating"
	// PolicyFrontload asks three profile questions before any predefined one.
	PolicyFrontload ProfilePolicy = "frontload"
	// PolicyNone asks predefined questions and follow-ups only.
	PolicyNone ProfilePolicy = "none"
)

// Valid reports whether p is a known policy.
func (p ProfilePolicy) Valid() bool {
	switch p {
	case PolicyAlternating, PolicyFrontload, PolicyNone:
		return true
	}
	return false
}

// frontloadProfileQuestions is the number of profile questions PolicyFrontload
// schedules ahead of the predefined set.
const frontloadProfileQuestions = 3

// DefaultMaxFollowUps is the follow-up budget per question when the
// configuration leaves it unset.
const DefaultMaxFollowUps = 1

// Config tunes sequencing for one session.
type Config struct {
	// MaxFollowUps is the follow-up budget per asked question.
	// Zero means DefaultMaxFollowUps; use a negative value to disable follow-ups.
	MaxFollowUps int

	// Policy schedules profile-derived questions. Empty means PolicyAlternating.
	Policy ProfilePolicy
}

func (c Config) maxFollowUps() int {
	switch {
	case c.MaxFollowUps < 0:
		return 0
	case c.MaxFollowUps == 0:
		return DefaultMaxFollowUps
	default:
		return c.MaxFollowUps
	}
}

func (c Config) policy() ProfilePolicy {
	if c.Policy == "" {
		return PolicyAlternating
	}
	return c.Policy
}

// State is the mutable record of one session's interview progress.
type State struct {
	selected     []types.Question
	policy       ProfilePolicy
	maxFollowUps int

	questionIndex    int // predefined questions asked so far; never decreases
	followUpCount    int // follow-ups asked for the current question
	profileRemaining int // profile questions due before the next predefined one

	phase       Phase
	activeRole  Role
	qnaHistory  []types.QA
	transcript  *types.Transcript
	profileText string
}

// NewState creates the state for a fresh session.
//
// followUpCount starts at the full budget: the first turn must produce a
// question, not a follow-up to nothing.
func NewState(selected []types.Question, profileText, systemInstructions string, cfg Config) *State {
	s := &State{
		selected:      selected,
		policy:        cfg.policy(),
		maxFollowUps:  cfg.maxFollowUps(),
		followUpCount: cfg.maxFollowUps(),
		phase:         PhaseIdle,
		activeRole:    RoleNormalizer,
		transcript:    types.NewTranscript(systemInstructions),
		profileText:   profileText,
	}
	if s.policy == PolicyFrontload {
		s.profileRemaining = frontloadProfileQuestions
	}
	return s
}

// QuestionIndex returns how many predefined questions have been asked.
func (s *State) QuestionIndex() int { return s.questionIndex }

// FollowUpCount returns the follow-ups asked for the current question.
func (s *State) FollowUpCount() int { return s.followUpCount }

// MaxFollowUps returns the per-question follow-up budget.
func (s *State) MaxFollowUps() int { return s.maxFollowUps }

// Phase returns the session phase.
func (s *State) Phase() Phase { return s.phase }

// SetPhase moves the session between Idle and AwaitingAnswer.
// PhaseEnded is absorbing and owned by the sequencer; SetPhase never leaves it.
func (s *State) SetPhase(p Phase) {
	if s.phase == PhaseEnded {
		return
	}
	s.phase = p
}

// ActiveRole returns the role that currently owns the channel.
func (s *State) ActiveRole() Role { return s.activeRole }

// SetActiveRole hands the channel to the given role.
func (s *State) SetActiveRole(r Role) { s.activeRole = r }

// Transcript returns the session transcript, shared by reference.
func (s *State) Transcript() *types.Transcript { return s.transcript }

// ProfileText returns the candidate profile fetched at session start.
func (s *State) ProfileText() string { return s.profileText }

// SelectedCount returns the size of the per-session question set.
func (s *State) SelectedCount() int { return len(s.selected) }

// QnAHistory returns a copy of the asked-question record.
func (s *State) QnAHistory() []types.QA {
	out := make([]types.QA, len(s.qnaHistory))
	copy(out, s.qnaHistory)
	return out
}

// RecordQuestionAsked appends a pending entry for a just-asked question.
// Follow-ups are not recorded here; they belong to the question they probe.
func (s *State) RecordQuestionAsked(question string) {
	s.qnaHistory = append(s.qnaHistory, types.QA{Question: question})
}

// RecordAnswer fills in the answer of the last asked question, exactly once.
// Answers arriving after the last entry is already filled (answers to
// follow-ups) live in the transcript only.
func (s *State) RecordAnswer(answer string) {
	if n := len(s.qnaHistory); n > 0 && s.qnaHistory[n-1].Answer == "" {
		s.qnaHistory[n-1].Answer = answer
	}
}
