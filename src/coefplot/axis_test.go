package coefplot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPaddedRange(t *testing.T) {
	lo, hi := paddedRange(1, 3, 0.05)
	require.InDelta(t, 0.9, lo, 1e-12)
	require.InDelta(t, 3.1, hi, 1e-12)

	// zero span falls back to a fraction of the value
	lo, hi = paddedRange(-2, -2, 0.05)
	require.InDelta(t, -2.1, lo, 1e-12)
	require.InDelta(t, -1.9, hi, 1e-12)

	lo, hi = paddedRange(0, 0, 0.05)
	require.InDelta(t, -0.05, lo, 1e-12)
	require.InDelta(t, 0.05, hi, 1e-12)
}

func TestNiceTicksStayInsideRange(t *testing.T) {
	ranges := [][2]float64{
		{0.041, 0.438},
		{0.01532, 0.02123},
		{-5.30, -0.07},
		{-0.05, 0.05},
		{0, 1000},
		{0.98e-9, 1.22e-9},
		{0.9e12, 3.1e12},
	}
	for _, r := range ranges {
		ticks := niceTicks(r[0], r[1], 6)
		if len(ticks) < 2 {
			t.Fatalf("range %v: want at least 2 ticks, got %d", r, len(ticks))
		}
		seen := map[string]bool{}
		for i, tk := range ticks {
			if tk.Value < r[0]-1e-12 || tk.Value > r[1]+1e-12 {
				t.Fatalf("range %v: tick %v outside range", r, tk.Value)
			}
			if i > 0 && tk.Value <= ticks[i-1].Value {
				t.Fatalf("range %v: ticks not increasing at %d", r, i)
			}
			if seen[tk.Label] {
				t.Fatalf("range %v: duplicate label %q", r, tk.Label)
			}
			seen[tk.Label] = true
		}
	}
}

func TestNiceTicksLabels(t *testing.T) {
	ticks := niceTicks(-0.05, 0.05, 6)
	labels := make([]string, 0, len(ticks))
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	require.Contains(t, labels, "0.00")
	require.NotContains(t, labels, "-0.00")
}

func TestTickDecimals(t *testing.T) {
	require.Equal(t, 0, tickDecimals(1))
	require.Equal(t, 0, tickDecimals(50))
	require.Equal(t, 1, tickDecimals(0.5))
	require.Equal(t, 1, tickDecimals(2.5))
	require.Equal(t, 2, tickDecimals(0.05))
	require.Equal(t, 4, tickDecimals(0.0025))
	require.Equal(t, 11, tickDecimals(5e-11))
	require.Equal(t, 13, tickDecimals(2.5e-12))
	require.Equal(t, 0, tickDecimals(5e11))
}

func TestNiceTicksTinyStepLabels(t *testing.T) {
	ticks := niceTicks(0.98e-9, 1.22e-9, 6)
	require.GreaterOrEqual(t, len(ticks), 2)
	labels := make([]string, 0, len(ticks))
	for _, tk := range ticks {
		labels = append(labels, tk.Label)
	}
	require.Contains(t, labels, "0.00000000100")
	require.Contains(t, labels, "0.00000000105")
}

func TestNiceTicksRejectsBadInput(t *testing.T) {
	require.Nil(t, niceTicks(1, 1, 6))
	require.Nil(t, niceTicks(0, 1, 1))
	require.Nil(t, niceTicks(math.NaN(), 1, 6))
}
