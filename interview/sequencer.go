package interview

import "github.com/CandorLabs/InterviewKit/types"

// ActionKind enumerates what the asker role is instructed to do next.
type ActionKind string

// Next-turn actions.
const (
	ActionAskPredefined ActionKind = "ask_predefined"
	ActionAskFollowUp   ActionKind = "ask_follow_up"
	ActionAskProfile    ActionKind = "ask_profile"
	ActionEnd           ActionKind = "end_interview"
)

// Action is the sequencer's decision for one turn.
// Question is populated only for ActionAskPredefined.
type Action struct {
	Kind     ActionKind
	Question types.Question
}

// NextAction decides what happens next and advances the interview bookkeeping.
//
// It is the single authority over questionIndex and followUpCount and must be
// called exactly once per completed turn, under the session's turn lock. It
// never fails: edge cases degrade to ActionEnd, and PhaseEnded is absorbing —
// every later call re-confirms the end without touching the counters.
//
// The per-question cycle (PolicyAlternating, budget m) is: predefined question,
// m follow-ups, then — between predefined questions only — a profile question
// with its own m follow-ups.
func (s *State) NextAction() Action {
	if s.phase == PhaseEnded {
		return Action{Kind: ActionEnd}
	}

	// Follow-up budget for the question currently on the table.
	if s.followUpCount < s.maxFollowUps {
		s.followUpCount++
		return Action{Kind: ActionAskFollowUp}
	}

	// A profile question is due before the next predefined one.
	if s.profileRemaining > 0 {
		s.profileRemaining--
		s.followUpCount = 0
		return Action{Kind: ActionAskProfile}
	}

	// Predefined set exhausted: end, absorbing.
	if s.questionIndex >= len(s.selected) {
		s.phase = PhaseEnded
		return Action{Kind: ActionEnd}
	}

	q := s.selected[s.questionIndex]
	s.questionIndex++
	s.followUpCount = 0
	if s.policy == PolicyAlternating && s.questionIndex < len(s.selected) {
		s.profileRemaining = 1
	}
	return Action{Kind: ActionAskPredefined, Question: q}
}
