package questionbank

import (
	"math/rand"

	"github.com/CandorLabs/InterviewKit/types"
)

// Counts configures how many questions Select draws from each tier.
type Counts struct {
	Easy   int
	Medium int
	Hard   int
}

// DefaultCounts matches the standard interview shape: two easy, two medium,
// one hard question.
var DefaultCounts = Counts{Easy: 2, Medium: 2, Hard: 1}

// Select draws the per-session question set from bank without replacement.
//
// Each tier is sampled uniformly at random, capped at the tier's size, and the
// tiers are concatenated in fixed easy, medium, hard order. A tier smaller than
// requested under-fills silently; ErrEmptyBank is returned only when every tier
// is empty.
func Select(bank Bank, counts Counts) ([]types.Question, error) {
	return SelectWithRand(bank, counts, nil)
}

// SelectWithRand is Select with an injectable randomness source for
// deterministic tests. A nil rng falls back to the shared math/rand source.
func SelectWithRand(bank Bank, counts Counts, rng *rand.Rand) ([]types.Question, error) {
	if len(bank) == 0 {
		return nil, ErrEmptyBank
	}

	tiers := map[types.Difficulty][]types.Question{}
	for _, q := range bank {
		tiers[q.Difficulty] = append(tiers[q.Difficulty], q)
	}

	selected := make([]types.Question, 0, counts.Easy+counts.Medium+counts.Hard)
	selected = append(selected, sample(tiers[types.DifficultyBasic], counts.Easy, rng)...)
	selected = append(selected, sample(tiers[types.DifficultyIntermediate], counts.Medium, rng)...)
	selected = append(selected, sample(tiers[types.DifficultyAdvanced], counts.Hard, rng)...)

	return selected, nil
}

// sample picks min(n, len(tier)) questions uniformly at random without replacement.
func sample(tier []types.Question, n int, rng *rand.Rand) []types.Question {
	if n > len(tier) {
		n = len(tier)
	}
	if n <= 0 {
		return nil
	}

	idx := make([]int, len(tier))
	for i := range idx {
		idx[i] = i
	}
	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	out := make([]types.Question, 0, n)
	for _, i := range idx[:n] {
		out = append(out, tier[i])
	}
	return out
}
