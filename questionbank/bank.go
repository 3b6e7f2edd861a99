// Package questionbank loads the predefined question bank and draws the fixed
// per-session question set from it.
package questionbank

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/CandorLabs/InterviewKit/types"
)

// ErrEmptyBank is returned by Select when the bank has no questions in any tier.
var ErrEmptyBank = errors.New("question bank is empty for every tier")

// Bank is the full set of predefined questions, immutable after load.
type Bank []types.Question

// bankEntry tolerates both key spellings found in existing bank files.
type bankEntry struct {
	Text       string           `json:"text"`
	Question   string           `json:"question"`
	Difficulty types.Difficulty `json:"difficulty"`
}

// Load reads a JSON question bank from r.
// The expected format is an array of {"text"|"question", "difficulty"} objects.
func Load(r io.Reader) (Bank, error) {
	var entries []bankEntry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to parse question bank: %w", err)
	}

	bank := make(Bank, 0, len(entries))
	for i, e := range entries {
		text := e.Text
		if text == "" {
			text = e.Question
		}
		if text == "" {
			return nil, fmt.Errorf("question bank entry %d has no text", i)
		}
		if !e.Difficulty.Valid() {
			return nil, fmt.Errorf("question bank entry %d has unknown difficulty %q", i, e.Difficulty)
		}
		bank = append(bank, types.Question{Text: text, Difficulty: e.Difficulty})
	}

	return bank, nil
}

// LoadFile reads a JSON question bank from disk.
func LoadFile(path string) (Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open question bank: %w", err)
	}
	defer f.Close()

	return Load(f)
}
