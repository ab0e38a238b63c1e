package coefplot

import (
	"fmt"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lrud/credit-market-volatility-research/src/estimate"
)

// Request describes one chart.
type Request struct {
	Records []estimate.Estimate
	// VariableLabel names the predictor. It is informational and appears in
	// log lines only.
	VariableLabel string
	YAxisLabel    string
	Title         string
	Subtitle      string
	// Basename is the file name of both outputs without extension.
	Basename  string
	OutputDir string
	Label     LabelStyle
}

// Legend entry labels.
const (
	LegendQRCoef = "QR Coef."
	LegendQRCI   = "QR 95% CI"
	LegendOLS    = "OLS Coef."
)

// legendOrderWithOLS is the fixed entry order used when OLS is drawn.
var legendOrderWithOLS = []string{LegendQRCoef, LegendQRCI, LegendOLS}

// LegendPlacement selects where the legend goes.
type LegendPlacement int

const (
	// LegendAnchored puts the legend in the upper right corner, its top
	// slightly below the top of the plot area.
	LegendAnchored LegendPlacement = iota
	// LegendBest puts the legend in the corner overlapping the fewest
	// data points.
	LegendBest
)

// Annotation is text placed at a data coordinate and vertically centred on it.
type Annotation struct {
	Text   string
	X, Y   float64
	Anchor Anchor
}

// Layout is everything about a chart that does not depend on fonts or pixels.
type Layout struct {
	Data       estimate.Partition
	XMin, XMax float64
	YMin, YMax float64
	XTicks     []chart.Tick
	YTicks     []chart.Tick
	Legend     []string
	Placement  LegendPlacement
	// OLSLabel is nil without an OLS comparison.
	OLSLabel *Annotation
}

// Plan validates req and computes the chart layout with the default style.
func Plan(req Request) (Layout, error) {
	return plan(req, DefaultStyle())
}

func plan(req Request, st Style) (Layout, error) {
	data, err := estimate.Split(req.Records)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", planName(req), err)
	}
	lo, hi := data.Bounds()
	ymin, ymax := paddedRange(lo, hi, st.YPad)

	l := Layout{
		Data:   data,
		XMin:   st.XMin,
		XMax:   st.XMax,
		YMin:   ymin,
		YMax:   ymax,
		XTicks: positionTicks(),
		YTicks: niceTicks(ymin, ymax, st.YTickCount),
	}
	if data.HasOLS() {
		// every entry in the fixed order is drawn when OLS is present
		l.Legend = append([]string(nil), legendOrderWithOLS...)
		l.Placement = LegendAnchored
		ols := data.OLS
		l.OLSLabel = &Annotation{
			Text:   req.Label.Format(ols.Coef),
			X:      float64(ols.Position) + req.Label.Offset(),
			Y:      ols.Coef,
			Anchor: req.Label.Anchor(),
		}
	} else {
		// drawing order: band first, then the coefficient line
		l.Legend = []string{LegendQRCI, LegendQRCoef}
		l.Placement = LegendBest
	}
	return l, nil
}

func planName(req Request) string {
	if name := strings.TrimSpace(req.Basename); name != "" {
		return name
	}
	if req.VariableLabel != "" {
		return req.VariableLabel
	}
	return "chart"
}
