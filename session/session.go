// Package session drives one interview: it serializes externally triggered
// turns, hands the channel between the normalizer and asker roles, and awaits
// utterance generation on an explicit completion signal.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/CandorLabs/InterviewKit/archive"
	"github.com/CandorLabs/InterviewKit/interview"
	"github.com/CandorLabs/InterviewKit/logger"
	"github.com/CandorLabs/InterviewKit/metrics/prometheus"
	"github.com/CandorLabs/InterviewKit/profile"
	"github.com/CandorLabs/InterviewKit/providers"
	"github.com/CandorLabs/InterviewKit/questionbank"
	"github.com/CandorLabs/InterviewKit/types"
)

// Trigger names, used in logs, metrics, and the trigger transport.
const (
	TriggerConfirm = "confirm"
	TriggerSkip    = "skip"
	TriggerRetry   = "retry"
)

// FirstRequest is the sentinel payload a client sends to start the interview:
// it carries no answer, only the request for the first question.
const FirstRequest = "first_request"

// Acknowledgments returned for triggers that produce no utterance.
const (
	ackRetry = "Please provide your answer again"
	ackEnded = "The interview is already complete"
)

// defaultGenerationTimeout bounds how long a turn waits for the asker's
// utterance before the turn fails and the channel is freed.
const defaultGenerationTimeout = 30 * time.Second

// Config assembles one interview session.
type Config struct {
	// SessionID defaults to a fresh UUID.
	SessionID string

	// CandidateID selects the profile to fetch. Optional.
	CandidateID string

	// Provider generates the asker's utterances. Required.
	Provider providers.Provider

	// Profiles resolves CandidateID to profile text. Optional; a missing
	// gateway or an unknown candidate both mean an empty profile.
	Profiles *profile.Gateway

	// Bank is the predefined question bank. An empty bank degrades to an
	// interview that ends on the first trigger.
	Bank questionbank.Bank

	// Counts sizes the per-session question set. Zero value means
	// questionbank.DefaultCounts.
	Counts questionbank.Counts

	// Interview tunes sequencing (follow-up budget, profile policy).
	Interview interview.Config

	// Sink receives (qnaHistory, transcript) snapshots at milestones. Optional.
	Sink archive.Sink

	// GenerationTimeout bounds one utterance generation. Zero means 30s.
	GenerationTimeout time.Duration
}

// Session is one live interview. All trigger handlers are safe for concurrent
// use: turns are serialized by the session's turn lock.
type Session struct {
	id          string
	candidateID string
	provider    providers.Provider
	sink        archive.Sink
	genTimeout  time.Duration

	turnMu     sync.Mutex
	state      *interview.State
	normalizer *Role
	asker      *Role // lazily built on first turn, profile merged exactly once

	// endOnce guards the active-sessions accounting: a session is released
	// exactly once, whether the interview ran to its end or the channel was
	// torn down mid-interview.
	endOnce sync.Once
}

// New fetches the candidate profile, draws the question set, and opens a
// session with the channel owned by the normalizer role.
func New(ctx context.Context, cfg Config) (*Session, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.New().String()
	}
	if cfg.GenerationTimeout == 0 {
		cfg.GenerationTimeout = defaultGenerationTimeout
	}
	counts := cfg.Counts
	if counts == (questionbank.Counts{}) {
		counts = questionbank.DefaultCounts
	}

	selected, err := questionbank.Select(cfg.Bank, counts)
	if err != nil {
		if !errors.Is(err, questionbank.ErrEmptyBank) {
			return nil, err
		}
		// Empty bank is graceful degradation: the interview ends immediately.
		logger.Warn("question bank empty, interview will end on first trigger", "session", cfg.SessionID)
	}

	profileText := ""
	if cfg.Profiles != nil && cfg.CandidateID != "" {
		profileText, err = cfg.Profiles.Fetch(ctx, cfg.CandidateID)
		if err != nil {
			if !errors.Is(err, profile.ErrNotFound) {
				logger.Warn("profile fetch failed, continuing without profile",
					"session", cfg.SessionID, "candidate", cfg.CandidateID, "error", err)
			}
			profileText = ""
		}
	}

	s := &Session{
		id:          cfg.SessionID,
		candidateID: cfg.CandidateID,
		provider:    cfg.Provider,
		sink:        cfg.Sink,
		genTimeout:  cfg.GenerationTimeout,
		state:       interview.NewState(selected, profileText, interviewerInstructions, cfg.Interview),
		normalizer:  NewRole(interview.RoleNormalizer, normalizerInstructions),
	}
	s.normalizer.Activate(s.state.Transcript())

	prometheus.SessionStarted()
	logger.Info("interview session opened",
		"session", s.id, "candidate", s.candidateID, "questions", s.state.SelectedCount())
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State exposes the interview state for inspection. Mutation stays with the
// sequencer and the coordinator.
func (s *Session) State() *interview.State { return s.state }

// Close releases the session's liveness accounting. Idempotent, and a no-op
// for a session whose interview already ran to its end.
func (s *Session) Close() {
	s.endOnce.Do(func() {
		prometheus.SessionEnded()
		logger.Info("interview session closed", "session", s.id)
	})
}

// Confirm records the candidate's answer and runs one turn. The FirstRequest
// sentinel carries no answer and only starts the interview. The returned
// acknowledgment is the asker's utterance for this turn.
func (s *Session) Confirm(ctx context.Context, answer string) (string, error) {
	return s.handleTurn(ctx, TriggerConfirm, answer)
}

// Skip marks the current question as skipped and runs one turn.
func (s *Session) Skip(ctx context.Context) (string, error) {
	return s.handleTurn(ctx, TriggerSkip, types.AnswerSkipped)
}

// Retry asks the normalizer role to request the candidate's input again.
// It mutates nothing and never switches roles; it queues behind any turn in
// flight and runs immediately after it drains.
func (s *Session) Retry(ctx context.Context) (string, error) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()

	if s.state.Phase() == interview.PhaseEnded {
		return ackEnded, nil
	}
	logger.Turn(s.id, TriggerRetry, "none")
	return ackRetry, nil
}

// handleTurn is the confirm/skip driver: answer recording happens-before the
// sequencer decision, which happens-before the role switch.
func (s *Session) handleTurn(ctx context.Context, trigger, answer string) (string, error) {
	s.turnMu.Lock()
	defer s.turnMu.Unlock()
	start := time.Now()

	// Ended is absorbing: re-confirm without touching the counters.
	if s.state.Phase() == interview.PhaseEnded {
		return ackEnded, nil
	}
	if s.state.ActiveRole() != interview.RoleNormalizer {
		return "", fmt.Errorf("%w: %s trigger while %s active", ErrRoleConflict, trigger, s.state.ActiveRole())
	}

	s.state.SetPhase(interview.PhaseIdle)
	if answer != FirstRequest {
		s.state.RecordAnswer(answer)
		s.state.Transcript().Append(types.RoleUser, answer)
	}

	action := s.state.NextAction()
	logger.Turn(s.id, trigger, string(action.Kind), "question_index", s.state.QuestionIndex())

	// A predefined question's text is known up front: record it before the
	// utterance is generated so a crash mid-turn leaves "question asked,
	// answer pending" rather than a missing record.
	if action.Kind == interview.ActionAskPredefined {
		s.state.RecordQuestionAsked(action.Question.Text)
	}

	utterance, genErr := s.runRoleSwitch(ctx, action)

	if genErr == nil && action.Kind == interview.ActionAskProfile {
		// A profile question's text only exists once generated.
		s.state.RecordQuestionAsked(utterance)
	}
	if action.Kind != interview.ActionEnd {
		s.state.SetPhase(interview.PhaseAwaitingAnswer)
	}

	status := "success"
	if genErr != nil {
		status = "error"
	}
	prometheus.ObserveTurn(trigger, string(action.Kind), status, time.Since(start))

	s.emitSnapshot(ctx, action)

	if genErr != nil {
		return "", genErr
	}
	return utterance, nil
}

// runRoleSwitch is the role-switch coordinator. It activates the asker on a
// working copy of the transcript, dispatches generation, and awaits its
// completion signal. On every exit path the working transcript is merged back
// and the normalizer role restored, so the channel never sticks with the asker.
func (s *Session) runRoleSwitch(ctx context.Context, action interview.Action) (utterance string, err error) {
	if s.asker == nil {
		s.asker = NewRole(interview.RoleAsker, askerInstructions(s.state.ProfileText()))
	}

	working := s.state.Transcript().Clone()
	s.asker.Activate(working)
	s.state.SetActiveRole(interview.RoleAsker)

	defer func() {
		s.state.Transcript().MergeFrom(s.asker.BoundTranscript())
		s.state.SetActiveRole(interview.RoleNormalizer)
	}()

	genCtx, cancel := context.WithTimeout(ctx, s.genTimeout)
	defer cancel()

	// The request is snapshotted before the goroutine starts: a generation
	// abandoned on timeout must hold no reference to the shared Role, whose
	// bound transcript is rebound on the next turn.
	req := providers.ChatRequest{
		System:   s.asker.Instructions() + "\n\n" + directiveFor(action),
		Messages: s.asker.conversation(),
	}

	// The completion channel is the sole suspension point: generation runs in
	// its own goroutine and signals the coordinator when done. The buffered
	// channel lets an abandoned generation finish without leaking.
	type genResult struct {
		resp providers.ChatResponse
		err  error
	}
	done := make(chan genResult, 1)
	start := time.Now()
	go func() {
		resp, chatErr := s.provider.Chat(genCtx, req)
		done <- genResult{resp: resp, err: chatErr}
	}()

	var result genResult
	select {
	case result = <-done:
	case <-genCtx.Done():
		result = genResult{err: genCtx.Err()}
	}

	if result.err != nil {
		prometheus.ObserveGeneration(s.provider.ID(), "error", time.Since(start))
		logger.GenerationError(s.id, s.provider.ID(), result.err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, result.err)
	}

	prometheus.ObserveGeneration(s.provider.ID(), "success", time.Since(start))
	logger.Generation(s.id, s.provider.ID(), time.Since(start).Milliseconds(), len(result.resp.Content))

	working.Append(types.RoleAssistant, result.resp.Content)
	return result.resp.Content, nil
}

// emitSnapshot hands the current record to the archive sink. Failures are
// logged, never fatal: archiving is a collaborator concern.
func (s *Session) emitSnapshot(ctx context.Context, action interview.Action) {
	ended := action.Kind == interview.ActionEnd
	if ended {
		s.endOnce.Do(func() { prometheus.SessionEnded() })
		logger.Info("interview session ended", "session", s.id, "questions_asked", len(s.state.QnAHistory()))
	}
	if s.sink == nil {
		return
	}

	milestone := archive.MilestoneTurn
	if ended {
		milestone = archive.MilestoneEnd
	}
	snap := archive.Snapshot{
		SessionID:   s.id,
		CandidateID: s.candidateID,
		Milestone:   milestone,
		QnAHistory:  s.state.QnAHistory(),
		Transcript:  s.state.Transcript().Messages(),
		CreatedAt:   time.Now(),
	}
	if err := s.sink.Write(ctx, snap); err != nil {
		logger.Warn("snapshot write failed", "session", s.id, "milestone", milestone, "error", err)
	}
}
