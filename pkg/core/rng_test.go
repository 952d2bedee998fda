package core

import (
	"slices"
	"testing"
)

func TestSampleDistinct(t *testing.T) {
	rng := NewRNG(7)
	got := rng.Sample(40, 100)
	if len(got) != 40 {
		t.Fatalf("expected 40 samples, got %d", len(got))
	}
	seen := make(map[int]bool, len(got))
	for _, v := range got {
		if v < 0 || v >= 100 {
			t.Fatalf("sample %d outside [0,100)", v)
		}
		if seen[v] {
			t.Fatalf("sample %d drawn twice", v)
		}
		seen[v] = true
	}
}

func TestSampleClamps(t *testing.T) {
	rng := NewRNG(1)
	if got := rng.Sample(0, 10); got != nil {
		t.Fatalf("expected nil for k=0, got %v", got)
	}
	if got := rng.Sample(3, 0); got != nil {
		t.Fatalf("expected nil for n=0, got %v", got)
	}
	all := rng.Sample(20, 5)
	slices.Sort(all)
	if !slices.Equal(all, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("expected full permutation, got %v", all)
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := NewRNG(42).Sample(10, 1000)
	b := NewRNG(42).Sample(10, 1000)
	if !slices.Equal(a, b) {
		t.Fatalf("same seed produced %v and %v", a, b)
	}
}
