package session

import "errors"

var (
	// ErrRoleConflict is returned when a trigger arrives while the channel is
	// not owned by the normalizer role. The trigger is aborted and the active
	// role left unchanged.
	ErrRoleConflict = errors.New("channel not owned by normalizer role")

	// ErrGeneration is returned when utterance generation fails or times out.
	// The turn still restores the normalizer role and merges any partial
	// transcript, so the channel stays usable.
	ErrGeneration = errors.New("utterance generation failed")
)
