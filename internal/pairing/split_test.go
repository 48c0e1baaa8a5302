package pairing

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func numberedPairs(n int) []Pair {
	pairs := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		p := Pair{Before: fmt.Sprintf("f%03d", i), After: fmt.Sprintf("f%03d", i+1), Label: NoCalving}
		if i%5 == 0 {
			p.Label = Calving
			p.Area = area(float64(2500 + i))
		}
		pairs = append(pairs, p)
	}
	return pairs
}

func TestSplitBoundary(t *testing.T) {
	tests := []struct {
		n         int
		wantTrain int
		wantTest  int
	}{
		{n: 0, wantTrain: 0, wantTest: 0},
		{n: 1, wantTrain: 0, wantTest: 1},
		{n: 4, wantTrain: 3, wantTest: 1},
		{n: 10, wantTrain: 8, wantTest: 2},
		{n: 11, wantTrain: 8, wantTest: 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d pairs", tt.n), func(t *testing.T) {
			train, test := Split(numberedPairs(tt.n), NewSeededRand(DefaultSeed))
			if len(train) != tt.wantTrain || len(test) != tt.wantTest {
				t.Errorf("Expected %d/%d, got %d/%d", tt.wantTrain, tt.wantTest, len(train), len(test))
			}
		})
	}
}

func TestSplitDropsUnlabeled(t *testing.T) {
	pairs := numberedPairs(8)
	pairs = append(pairs, Pair{Before: "u1", After: "u2", Label: Unlabeled}, Pair{Before: "u2", After: "u3", Label: Unlabeled})

	train, test := Split(pairs, NewSeededRand(DefaultSeed))

	if len(train)+len(test) != 8 {
		t.Fatalf("Expected 8 labeled pairs across train and test, got %d", len(train)+len(test))
	}
	for _, p := range append(append([]Pair{}, train...), test...) {
		if p.Label == Unlabeled {
			t.Errorf("Unlabeled pair %v leaked into the split", p)
		}
	}
}

func TestSplitIsPermutation(t *testing.T) {
	pairs := numberedPairs(25)
	original := append([]Pair(nil), pairs...)

	train, test := Split(pairs, NewSeededRand(DefaultSeed))

	if diff := cmp.Diff(original, pairs); diff != "" {
		t.Errorf("Split modified its input (-want +got):\n%s", diff)
	}

	seen := make(map[string]int)
	for _, p := range append(append([]Pair{}, train...), test...) {
		seen[p.Before]++
	}
	for _, p := range original {
		if seen[p.Before] != 1 {
			t.Errorf("Expected %s exactly once, got %d", p.Before, seen[p.Before])
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	pairs := numberedPairs(50)

	train1, test1 := Split(pairs, NewSeededRand(DefaultSeed))
	train2, test2 := Split(pairs, NewSeededRand(DefaultSeed))

	if diff := cmp.Diff(train1, train2); diff != "" {
		t.Errorf("train differs between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(test1, test2); diff != "" {
		t.Errorf("test differs between runs (-first +second):\n%s", diff)
	}

	train3, _ := Split(pairs, NewUnseededRand())
	if cmp.Equal(train1, train3) {
		t.Error("Expected an unseeded shuffle to differ from the seeded one")
	}
}

// Pins the exact partition math/rand produces for seed 20.
func TestSplitSeed20Golden(t *testing.T) {
	train, test := Split(numberedPairs(20), NewSeededRand(20))

	expectedTest := []Pair{
		{Before: "f009", After: "f010", Label: NoCalving},
		{Before: "f000", After: "f001", Label: Calving, Area: area(2500)},
		{Before: "f007", After: "f008", Label: NoCalving},
		{Before: "f003", After: "f004", Label: NoCalving},
	}
	if diff := cmp.Diff(expectedTest, test); diff != "" {
		t.Errorf("test split mismatch (-want +got):\n%s", diff)
	}

	var trainIDs []string
	for _, p := range train {
		trainIDs = append(trainIDs, p.Before)
	}
	expectedTrain := []string{
		"f014", "f004", "f018", "f010", "f001", "f017", "f011", "f013",
		"f005", "f012", "f015", "f008", "f006", "f002", "f019", "f016",
	}
	if diff := cmp.Diff(expectedTrain, trainIDs); diff != "" {
		t.Errorf("train order mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitFractionClamps(t *testing.T) {
	pairs := numberedPairs(10)

	train, test := SplitFraction(pairs, NewSeededRand(DefaultSeed), 1.5)
	if len(train) != 10 || len(test) != 0 {
		t.Errorf("Expected 10/0, got %d/%d", len(train), len(test))
	}

	train, test = SplitFraction(pairs, NewSeededRand(DefaultSeed), -1)
	if len(train) != 0 || len(test) != 10 {
		t.Errorf("Expected 0/10, got %d/%d", len(train), len(test))
	}
}

func TestSummarize(t *testing.T) {
	pairs := []Pair{
		{Before: "a", After: "b", Label: Calving, Area: area(3000)},
		{Before: "b", After: "c", Label: Calving, Area: area(5000)},
		{Before: "c", After: "d", Label: Calving, Area: area(4000)},
		{Before: "d", After: "e", Label: Calving},
		{Before: "e", After: "f", Label: NoCalving},
		{Before: "f", After: "g", Label: Unlabeled},
	}

	got := Summarize(pairs)
	expected := Summary{
		Total:     6,
		Calving:   4,
		NoCalving: 1,
		Unlabeled: 1,
		Area: AreaStats{
			Count:  3,
			Mean:   4000,
			Median: 4000,
			Min:    3000,
			Max:    5000,
		},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("Summarize mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]float64{3000, 5000, 4000}, Areas(pairs)); diff != "" {
		t.Errorf("Areas mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.Total != 0 || got.Area.Count != 0 || got.Area.Mean != 0 {
		t.Errorf("Expected zero summary, got %+v", got)
	}
}
