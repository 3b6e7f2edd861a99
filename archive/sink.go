// Package archive delivers interview snapshots to external sinks.
//
// The core has no persistence of its own: at session milestones it hands the
// current (qnaHistory, transcript) pair to a Sink and moves on. Sink failures
// are surfaced but never block the interview.
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/CandorLabs/InterviewKit/types"
)

// Milestones at which the session emits snapshots.
const (
	MilestoneTurn = "turn"
	MilestoneEnd  = "end"
)

// Snapshot is one point-in-time capture of a session's record.
type Snapshot struct {
	SessionID   string          `json:"session_id"`
	CandidateID string          `json:"candidate_id,omitempty"`
	Milestone   string          `json:"milestone"`
	QnAHistory  []types.QA      `json:"qna_history"`
	Transcript  []types.Message `json:"transcript"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Sink receives snapshots at session milestones.
type Sink interface {
	Write(ctx context.Context, snap Snapshot) error
}

// Multi fans a snapshot out to every sink, collecting errors.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) Write(ctx context.Context, snap Snapshot) error {
	var errs []error
	for _, s := range m {
		if err := s.Write(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
