package coefplot

import (
	"fmt"
	"math"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lrud/credit-market-volatility-research/src/estimate"
)

// paddedRange widens [min, max] by frac of the span on each side. A zero span
// is widened by frac of |min|, or by frac itself when min is zero, so the axis
// never collapses.
func paddedRange(min, max, frac float64) (float64, float64) {
	span := max - min
	pad := span * frac
	if span <= 0 {
		pad = math.Abs(min) * frac
		if pad == 0 {
			pad = frac
		}
	}
	return min - pad, max + pad
}

// niceTicks generates about n tick marks inside [min, max] using 1, 2, 2.5
// and 5 steps scaled by a power of ten.
func niceTicks(min, max float64, n int) []chart.Tick {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) || max <= min {
		return nil
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Floor(max/step) - math.Ceil(min/step) + 1
		score := math.Abs(count - float64(n))
		if count < 2 {
			score += float64(n)
		}
		if score < bestScore {
			bestScore = score
			bestStep = step
		}
	}
	decimals := tickDecimals(bestStep)
	first := math.Ceil(min/bestStep - 1e-9)
	last := math.Floor(max/bestStep + 1e-9)
	ticks := []chart.Tick{}
	for k := first; k <= last; k++ {
		v := k * bestStep
		if math.Abs(v) < bestStep*1e-9 {
			v = 0
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: formatTick(v, decimals)})
		if len(ticks) > 2*n {
			break
		}
	}
	return ticks
}

// tickDecimals is the number of fraction digits needed to tell ticks step
// apart: the digits down to the step's leading digit, plus one for steps
// such as 2.5.
func tickDecimals(step float64) int {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	d := int(math.Max(0, -math.Floor(math.Log10(step)+1e-9)))
	scaled := step * math.Pow(10, float64(d))
	if math.Abs(scaled-math.Round(scaled)) > 1e-6*scaled {
		d++
	}
	return d
}

func formatTick(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	if strings.Trim(s, "-0.") == "" {
		return strings.TrimPrefix(s, "-")
	}
	return s
}

// positionTicks are the categorical x ticks, one per plot slot.
func positionTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, len(estimate.Positions))
	for _, p := range estimate.Positions {
		ticks = append(ticks, chart.Tick{Value: float64(p), Label: p.Label()})
	}
	return ticks
}
