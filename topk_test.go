package blaze

import (
	"math"
	"reflect"
	"testing"
)

func TestTopKSelector_TopK(t *testing.T) {
	s := NewTopKSelector(2)

	s.Push(2, 0.4)
	s.Push(3, 0.3)
	s.Push(1, 0.5)
	s.Push(4, 0.2)

	got := s.SortedIDPriorityPairs()
	want := []ScoredID{{1, 0.5}, {2, 0.4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedIDPriorityPairs() = %v, want %v", got, want)
	}
}

func TestTopKSelector_FewerThanCapacity(t *testing.T) {
	s := NewTopKSelector(3)

	s.Push(1, 0.5)
	s.Push(2, 0.4)

	got := s.SortedIDPriorityPairs()
	want := []ScoredID{{1, 0.5}, {2, 0.4}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortedIDPriorityPairs() = %v, want %v", got, want)
	}
}

func TestTopKSelector_NaNDoesNotPanic(t *testing.T) {
	s := NewTopKSelector(2)

	s.Push(1, math.NaN())
	s.Push(2, 0.1)
	s.Push(3, 0.2)

	got := s.SortedIDPriorityPairs()
	if len(got) != 2 {
		t.Fatalf("SortedIDPriorityPairs() returned %d entries, want 2", len(got))
	}
}
