package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTranscript_SeedsSystemEntry(t *testing.T) {
	tr := NewTranscript("be helpful")

	require.Equal(t, 1, tr.Len())
	first := tr.Messages()[0]
	assert.Equal(t, RoleSystem, first.Role)
	assert.Equal(t, "be helpful", first.Content)
}

func TestTranscript_AppendAndLast(t *testing.T) {
	tr := NewTranscript("sys")
	tr.Append(RoleUser, "hello")
	tr.Append(RoleAssistant, "hi there")

	last, ok := tr.Last()
	require.True(t, ok)
	assert.Equal(t, RoleAssistant, last.Role)
	assert.Equal(t, "hi there", last.Content)

	user, ok := tr.LastByRole(RoleUser)
	require.True(t, ok)
	assert.Equal(t, "hello", user.Content)
}

func TestTranscript_LastByRole_Missing(t *testing.T) {
	tr := NewTranscript("sys")

	_, ok := tr.LastByRole(RoleAssistant)
	assert.False(t, ok)
}

func TestTranscript_CloneIsIndependent(t *testing.T) {
	tr := NewTranscript("sys")
	tr.Append(RoleUser, "a")

	clone := tr.Clone()
	clone.Append(RoleUser, "b")

	assert.Equal(t, 2, tr.Len())
	assert.Equal(t, 3, clone.Len())
}

func TestTranscript_MergeFrom_AppendsSuffixOnly(t *testing.T) {
	base := NewTranscript("sys")
	base.Append(RoleUser, "question one")

	working := base.Clone()
	working.Append(RoleAssistant, "answer one")
	working.Append(RoleUser, "question two")

	base.MergeFrom(working)

	require.Equal(t, 4, base.Len())
	msgs := base.Messages()
	assert.Equal(t, RoleSystem, msgs[0].Role)
	assert.Equal(t, "answer one", msgs[2].Content)
	assert.Equal(t, "question two", msgs[3].Content)
}

func TestTranscript_MergeFrom_NoDuplicateTrailingEntries(t *testing.T) {
	base := NewTranscript("sys")
	base.Append(RoleUser, "hello")

	// Nothing new in the working copy: merge must be a no-op.
	base.MergeFrom(base.Clone())
	assert.Equal(t, 2, base.Len())

	base.MergeFrom(nil)
	assert.Equal(t, 2, base.Len())
}

func TestDifficulty_Valid(t *testing.T) {
	assert.True(t, DifficultyBasic.Valid())
	assert.True(t, DifficultyIntermediate.Valid())
	assert.True(t, DifficultyAdvanced.Valid())
	assert.False(t, Difficulty("expert").Valid())
}
