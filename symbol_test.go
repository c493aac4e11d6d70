package iconwall

import "testing"

func TestSelectSymbolEmptyAlphabet(t *testing.T) {
	if got := SelectSymbol(&scriptedRand{}, "a", "b", nil, 0.5); got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestSelectSymbolAvoidsNeighbor(t *testing.T) {
	alphabet := []string{"a", "b", "c"}
	// First draw repeats the left neighbor and is rejected (0.1 < 0.8),
	// the second draw is accepted.
	rng := &scriptedRand{ints: []int{0, 2}, floats: []float64{0.1}}
	if got := SelectSymbol(rng, "a", "", alphabet, 0.8); got != "c" {
		t.Errorf("Expected c, got %q", got)
	}
}

func TestSelectSymbolAcceptsRepeatPastPenalty(t *testing.T) {
	alphabet := []string{"a", "b"}
	// Repeat of the top neighbor survives because 0.9 >= 0.8.
	rng := &scriptedRand{ints: []int{1}, floats: []float64{0.9}}
	if got := SelectSymbol(rng, "", "b", alphabet, 0.8); got != "b" {
		t.Errorf("Expected b, got %q", got)
	}
	if rng.intCalls != 1 {
		t.Errorf("Expected one draw, got %d", rng.intCalls)
	}
}

func TestSelectSymbolTerminatesWithFullPenalty(t *testing.T) {
	rng := &scriptedRand{floats: []float64{0.99}}
	got := SelectSymbol(rng, "x", "x", []string{"x"}, 1)
	if got != "x" {
		t.Errorf("Expected x, got %q", got)
	}
	if rng.intCalls != maxSymbolAttempts+1 {
		t.Errorf("Expected %d draws, got %d", maxSymbolAttempts+1, rng.intCalls)
	}
}

func TestSelectSymbolZeroPenaltyTakesFirstDraw(t *testing.T) {
	rng := &scriptedRand{ints: []int{0}, floats: []float64{0}}
	if got := SelectSymbol(rng, "a", "a", []string{"a", "b"}, 0); got != "a" {
		t.Errorf("Expected a, got %q", got)
	}
	if rng.intCalls != 1 {
		t.Errorf("Expected one draw, got %d", rng.intCalls)
	}
}

func TestSelectSymbolReducesRepeats(t *testing.T) {
	alphabet := []string{"a", "b", "c", "d"}
	rng := NewSeededRand(11)
	repeats := 0
	const trials = 4000
	for i := 0; i < trials; i++ {
		if SelectSymbol(rng, "a", "", alphabet, 0.9) == "a" {
			repeats++
		}
	}
	// Without the penalty a quarter of draws would repeat.
	if float64(repeats)/trials > 0.1 {
		t.Errorf("Expected few repeats with penalty 0.9, got %d/%d", repeats, trials)
	}
}
