package pairing

import (
	"math"
	"math/rand"
	"time"
)

const (
	// DefaultSeed reproduces the reference train/test partition
	DefaultSeed int64 = 20

	// DefaultTrainFraction is the share of shuffled pairs that go to train
	DefaultTrainFraction = 0.8
)

// NewSeededRand returns a generator for a reproducible split
func NewSeededRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NewUnseededRand returns a generator seeded from the clock, for any
// randomness that must not repeat between runs.
func NewUnseededRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Split drops Unlabeled pairs, shuffles the rest with rng and cuts at
// floor(0.8*n). The input slice is not modified.
func Split(pairs []Pair, rng *rand.Rand) (train, test []Pair) {
	return SplitFraction(pairs, rng, DefaultTrainFraction)
}

// SplitFraction is Split with a configurable train share, clamped to [0, 1]
func SplitFraction(pairs []Pair, rng *rand.Rand, trainFraction float64) (train, test []Pair) {
	shuffled := Labeled(pairs)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	trainFraction = math.Max(0, math.Min(1, trainFraction))
	cut := int(math.Floor(trainFraction * float64(len(shuffled))))

	return shuffled[:cut:cut], shuffled[cut:]
}
