// Package estimate holds regression coefficient estimates and the confidence
// intervals derived from them.
package estimate

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// CriticalValue is the two-sided 95% standard normal critical value.
const CriticalValue = 1.959963984540054

// ErrData marks malformed estimate input.
var ErrData = errors.New("data error")

// ModelType identifies the estimator that produced a coefficient.
type ModelType int

const (
	QuantileRegression ModelType = iota + 1
	OLS
)

func (m ModelType) String() string {
	switch m {
	case QuantileRegression:
		return "QReg"
	case OLS:
		return "OLS"
	}
	return fmt.Sprintf("ModelType(%d)", int(m))
}

// Position is the categorical x slot a coefficient is plotted at.
type Position int

const (
	Q25 Position = iota + 1
	Q50
	Q75
)

// Positions lists every plot slot in axis order.
var Positions = []Position{Q25, Q50, Q75}

// Valid reports whether p is one of the three plot slots.
func (p Position) Valid() bool { return p >= Q25 && p <= Q75 }

// Label is the x-axis tick text for p. The middle slot is shared with OLS.
func (p Position) Label() string {
	switch p {
	case Q25:
		return "Q25"
	case Q50:
		return "Q50/OLS"
	case Q75:
		return "Q75"
	}
	return fmt.Sprintf("P%d", int(p))
}

// Estimate is one coefficient row. Variable and Quantile are informational.
type Estimate struct {
	Variable string
	Model    ModelType
	Position Position
	Quantile float64
	Coef     float64
	SE       float64
}

// CI returns the 95% confidence interval coef ∓ z·se.
func (e Estimate) CI() (low, high float64) {
	d := CriticalValue * e.SE
	return e.Coef - d, e.Coef + d
}

// Interval returns the plotted view of e.
func (e Estimate) Interval() Interval {
	low, high := e.CI()
	return Interval{Position: e.Position, Coef: e.Coef, Low: low, High: high}
}

// Interval is a coefficient with its confidence bounds at a plot position.
type Interval struct {
	Position Position
	Coef     float64
	Low      float64
	High     float64
}

// Partition is a validated dataset split by model.
type Partition struct {
	// QR holds exactly one interval per position, in axis order.
	QR []Interval
	// OLS is nil when the dataset has no OLS comparison.
	OLS *Interval
}

// HasOLS reports whether an OLS comparison is present.
func (p Partition) HasOLS() bool { return p.OLS != nil }

// Bounds returns the smallest Low and largest High over all intervals.
func (p Partition) Bounds() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	all := p.QR
	if p.OLS != nil {
		all = append(append([]Interval(nil), p.QR...), *p.OLS)
	}
	for _, iv := range all {
		min = math.Min(min, iv.Low)
		max = math.Max(max, iv.High)
	}
	return min, max
}

// Split validates records and partitions them into the QR curve and the
// optional OLS comparison. Every failure wraps ErrData.
func Split(records []Estimate) (Partition, error) {
	var p Partition
	seen := make(map[Position]bool, len(Positions))
	for i, r := range records {
		if err := check(r); err != nil {
			return Partition{}, fmt.Errorf("%w: record %d (%s %s): %v", ErrData, i, r.Model, r.Variable, err)
		}
		iv := r.Interval()
		switch r.Model {
		case QuantileRegression:
			if seen[r.Position] {
				return Partition{}, fmt.Errorf("%w: duplicate quantile regression row at %s", ErrData, r.Position.Label())
			}
			seen[r.Position] = true
			p.QR = append(p.QR, iv)
		case OLS:
			if p.OLS != nil {
				return Partition{}, fmt.Errorf("%w: more than one OLS row", ErrData)
			}
			if r.Position != Q50 {
				return Partition{}, fmt.Errorf("%w: OLS row at %s, want %s", ErrData, r.Position.Label(), Q50.Label())
			}
			p.OLS = &iv
		}
	}
	if len(p.QR) != len(Positions) {
		return Partition{}, fmt.Errorf("%w: need %d quantile regression rows, got %d", ErrData, len(Positions), len(p.QR))
	}
	sort.Slice(p.QR, func(i, j int) bool { return p.QR[i].Position < p.QR[j].Position })
	return p, nil
}

func check(r Estimate) error {
	switch {
	case r.Model != QuantileRegression && r.Model != OLS:
		return fmt.Errorf("unknown model type %d", int(r.Model))
	case !r.Position.Valid():
		return fmt.Errorf("position %d outside 1..3", int(r.Position))
	case math.IsNaN(r.Coef) || math.IsInf(r.Coef, 0):
		return fmt.Errorf("coefficient %v is not finite", r.Coef)
	case math.IsNaN(r.SE) || math.IsInf(r.SE, 0) || r.SE < 0:
		return fmt.Errorf("standard error %v must be finite and non-negative", r.SE)
	}
	return nil
}
