package sliceutils_test

import (
	"testing"

	"github.com/cymond/educhat/internal/sliceutils"
)

func TestCut(t *testing.T) {
	t.Run("Given empty slice, when cutting, then return empty", func(t *testing.T) {
		result := sliceutils.Cut([]int{}, 0, 3)
		if len(result) != 0 {
			t.Errorf("expected 0 elements, got %d", len(result))
		}
	})

	t.Run("Given slice, when cutting inside bounds, then return window", func(t *testing.T) {
		result := sliceutils.Cut([]int{1, 2, 3, 4, 5}, 1, 3)
		if len(result) != 2 || result[0] != 2 || result[1] != 3 {
			t.Errorf("unexpected window: %v", result)
		}
	})

	t.Run("Given slice, when end exceeds length, then clamp to length", func(t *testing.T) {
		result := sliceutils.Cut([]int{1, 2, 3}, 1, 10)
		if len(result) != 2 {
			t.Errorf("expected 2 elements, got %d", len(result))
		}
	})
}

func TestLast(t *testing.T) {
	t.Run("Given short slice, when taking more than length, then return all", func(t *testing.T) {
		result := sliceutils.Last([]int{1, 2}, 5)
		if len(result) != 2 {
			t.Errorf("expected 2 elements, got %d", len(result))
		}
	})

	t.Run("Given long slice, when taking n, then return trailing n", func(t *testing.T) {
		result := sliceutils.Last([]int{1, 2, 3, 4}, 2)
		if len(result) != 2 || result[0] != 3 {
			t.Errorf("unexpected tail: %v", result)
		}
	})
}
