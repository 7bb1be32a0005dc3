package domain_test

import (
	"math"
	"testing"

	"github.com/shadowlynx/monitor/internal/domain"
)

func TestSharesSumToHundred(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
	}{
		{"two networks", map[string]int{"BSC": 7, "Polygon": 3}},
		{"uneven thirds", map[string]int{"a": 1, "b": 1, "c": 1}},
		{"single value", map[string]int{"BSC": 42}},
		{"large and tiny", map[string]int{"big": 99999, "small": 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := domain.Shares(tt.counts)
			sum := 0.0
			for _, s := range shares {
				sum += s
			}
			if math.Abs(sum-100) > 0.1 {
				t.Errorf("shares sum = %v, want 100 ± 0.1", sum)
			}
		})
	}
}

func TestSharesEmptyInput(t *testing.T) {
	if got := domain.Shares(nil); len(got) != 0 {
		t.Errorf("Shares(nil) = %v, want empty map", got)
	}
	if got := domain.Shares(map[string]int{}); len(got) != 0 {
		t.Errorf("Shares(empty) = %v, want empty map", got)
	}
}

func TestSharesProportions(t *testing.T) {
	shares := domain.Shares(map[string]int{"BSC": 3, "Polygon": 1})
	if shares["BSC"] != 75 || shares["Polygon"] != 25 {
		t.Errorf("shares = %v, want BSC=75 Polygon=25", shares)
	}
}
