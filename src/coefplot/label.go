package coefplot

import (
	"fmt"
	"strings"
)

// LabelStyle selects how the OLS coefficient is annotated.
type LabelStyle int

const (
	// LabelDefault prints 3 decimals to the right of the marker.
	LabelDefault LabelStyle = iota
	// LabelHighPrecision prints 4 decimals to the right of the marker.
	LabelHighPrecision
	// LabelStandard prints 2 decimals to the left of the marker.
	LabelStandard
)

// Anchor is the horizontal alignment of an annotation relative to its point.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorRight
)

func (a Anchor) String() string {
	if a == AnchorRight {
		return "right"
	}
	return "left"
}

const labelOffset = 0.15

func (l LabelStyle) String() string {
	switch l {
	case LabelHighPrecision:
		return "high-precision"
	case LabelStandard:
		return "standard"
	}
	return "default"
}

// Decimals is the number of fraction digits printed.
func (l LabelStyle) Decimals() int {
	switch l {
	case LabelHighPrecision:
		return 4
	case LabelStandard:
		return 2
	}
	return 3
}

// Offset is the horizontal distance from the marker, in plot units.
func (l LabelStyle) Offset() float64 {
	if l == LabelStandard {
		return -labelOffset
	}
	return labelOffset
}

// Anchor is left when the label sits right of the marker and right otherwise.
func (l LabelStyle) Anchor() Anchor {
	if l.Offset() < 0 {
		return AnchorRight
	}
	return AnchorLeft
}

// Format renders v with the style's precision.
func (l LabelStyle) Format(v float64) string {
	return fmt.Sprintf("%.*f", l.Decimals(), v)
}

// LabelStyleForBasename keeps the historical filename convention: names
// containing "implied_vol" get high precision, names containing "neg_log_ret"
// get the standard style, anything else the default.
func LabelStyleForBasename(name string) LabelStyle {
	switch {
	case strings.Contains(name, "implied_vol"):
		return LabelHighPrecision
	case strings.Contains(name, "neg_log_ret"):
		return LabelStandard
	}
	return LabelDefault
}
