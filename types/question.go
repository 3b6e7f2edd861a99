package types

// Difficulty tags a bank question with its tier.
type Difficulty string

// Difficulty tiers, in ascending order.
const (
	DifficultyBasic        Difficulty = "basic"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether d is one of the known tiers.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBasic, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Question is a single predefined interview question.
type Question struct {
	Text       string     `json:"text"`
	Difficulty Difficulty `json:"difficulty"`
}

// QA records one asked question together with the candidate's answer.
// Answer stays empty until the candidate responds; "[skipped]" marks a
// question the candidate declined.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AnswerSkipped is recorded for questions the candidate skipped.
const AnswerSkipped = "[skipped]"
