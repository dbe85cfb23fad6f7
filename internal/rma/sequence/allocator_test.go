package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		existing []int
		want     int
	}{
		{name: "empty register starts at one", existing: nil, want: 1},
		{name: "single value", existing: []int{1}, want: 2},
		{name: "dense values", existing: []int{1, 2, 3}, want: 4},
		{name: "gap at three is never reused", existing: []int{1, 2, 4}, want: 5},
		{name: "unordered values", existing: []int{7, 2, 5}, want: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Next(tt.existing))
		})
	}
}

func TestNextIsMaxPlusOneForAnyNonEmptyInput(t *testing.T) {
	inputs := [][]int{
		{1},
		{3, 1, 2},
		{10, 20, 15},
		{100, 99, 98, 101},
	}
	for _, existing := range inputs {
		max := existing[0]
		for _, v := range existing {
			if v > max {
				max = v
			}
		}
		assert.Equal(t, max+1, Next(existing))
	}
}
