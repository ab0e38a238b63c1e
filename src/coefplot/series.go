package coefplot

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lrud/credit-market-volatility-research/src/estimate"
)

// frame maps data coordinates to canvas pixels the same way go-chart does for
// its own series.
type frame struct {
	box    chart.Box
	xr, yr chart.Range
}

func newFrame(box chart.Box, l Layout) frame {
	return frame{
		box: box,
		xr:  &chart.ContinuousRange{Min: l.XMin, Max: l.XMax, Domain: box.Width()},
		yr:  &chart.ContinuousRange{Min: l.YMin, Max: l.YMax, Domain: box.Height()},
	}
}

func (f frame) x(v float64) int { return f.box.Left + f.xr.Translate(v) }
func (f frame) y(v float64) int { return f.box.Bottom - f.yr.Translate(v) }

// plotSeries adapts a drawing function to go-chart's Series interface so it
// is drawn inside the plot area in series order.
type plotSeries struct {
	name string
	draw func(r chart.Renderer, f frame, defaults chart.Style)
}

var _ chart.Series = plotSeries{}

func (s plotSeries) GetName() string           { return s.name }
func (s plotSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (s plotSeries) GetStyle() chart.Style     { return chart.Style{} }
func (s plotSeries) Validate() error           { return nil }
func (s plotSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	s.draw(r, frame{box: canvasBox, xr: xrange, yr: yrange}, defaults)
}

// gridSeries draws dotted horizontal lines at every y tick.
func gridSeries(st Style, l Layout) chart.Series {
	return plotSeries{name: "grid", draw: func(r chart.Renderer, f frame, _ chart.Style) {
		line := chart.Style{
			StrokeColor:     withAlpha(st.GridColor, st.GridAlpha),
			StrokeWidth:     st.px(st.GridWidth),
			StrokeDashArray: st.dash(st.GridDash),
		}
		for _, t := range l.YTicks {
			y := f.y(t.Value)
			strokeLine(r, f.box.Left, y, f.box.Right, y, line)
		}
	}}
}

// bandSeries shades the quantile regression confidence band, interpolating
// linearly between positions.
func bandSeries(st Style, qr []estimate.Interval) chart.Series {
	return plotSeries{name: LegendQRCI, draw: func(r chart.Renderer, f frame, _ chart.Style) {
		pts := make([]point, 0, 2*len(qr))
		for _, iv := range qr {
			pts = append(pts, point{f.x(float64(iv.Position)), f.y(iv.High)})
		}
		for i := len(qr) - 1; i >= 0; i-- {
			pts = append(pts, point{f.x(float64(qr[i].Position)), f.y(qr[i].Low)})
		}
		fillPolygon(r, pts, withAlpha(st.QRColor, st.BandAlpha))
	}}
}

// qrLineSeries draws the quantile regression coefficients as a line with
// diamond markers.
func qrLineSeries(st Style, qr []estimate.Interval) chart.Series {
	return plotSeries{name: LegendQRCoef, draw: func(r chart.Renderer, f frame, _ chart.Style) {
		line := chart.Style{StrokeColor: st.QRColor, StrokeWidth: st.px(st.QRLineWidth)}
		line.GetStrokeOptions().WriteDrawingOptionsToRenderer(r)
		for i, iv := range qr {
			x, y := f.x(float64(iv.Position)), f.y(iv.Coef)
			if i == 0 {
				r.MoveTo(x, y)
				continue
			}
			r.LineTo(x, y)
		}
		r.Stroke()
		r.ResetStyle()

		for _, iv := range qr {
			diamond(r, f.x(float64(iv.Position)), f.y(iv.Coef), st.diamondRadius(), st.QRColor)
		}
	}}
}

// olsSeries draws the OLS comparison: a solid tick at the coefficient, dashed
// ticks at the interval bounds, a square marker and the value label.
func olsSeries(st Style, iv estimate.Interval, label *Annotation) chart.Series {
	return plotSeries{name: LegendOLS, draw: func(r chart.Renderer, f frame, defaults chart.Style) {
		pos := float64(iv.Position)
		x0, x1 := f.x(pos-st.OLSHalfWidth), f.x(pos+st.OLSHalfWidth)

		ci := chart.Style{
			StrokeColor:     withAlpha(st.OLSColor, st.OLSCIAlpha),
			StrokeWidth:     st.px(st.OLSCILineWidth),
			StrokeDashArray: st.dash(st.OLSCIDash),
		}
		strokeLine(r, x0, f.y(iv.Low), x1, f.y(iv.Low), ci)
		strokeLine(r, x0, f.y(iv.High), x1, f.y(iv.High), ci)

		y := f.y(iv.Coef)
		strokeLine(r, x0, y, x1, y, chart.Style{StrokeColor: st.OLSColor, StrokeWidth: st.px(st.OLSLineWidth)})
		square(r, f.x(pos), y, st.squareRadius(), st.OLSColor)

		if label != nil {
			ts := textStyle(defaults, st.fontSize(st.LabelFontSize), st.LabelColor)
			anchoredText(r, label.Text, f.x(label.X), f.y(label.Y), label.Anchor, ts)
		}
	}}
}

type point struct{ x, y int }

func strokeLine(r chart.Renderer, x0, y0, x1, y1 int, s chart.Style) {
	s.GetStrokeOptions().WriteDrawingOptionsToRenderer(r)
	defer r.ResetStyle()
	r.MoveTo(x0, y0)
	r.LineTo(x1, y1)
	r.Stroke()
}

func fillPolygon(r chart.Renderer, pts []point, c drawing.Color) {
	if len(pts) < 3 {
		return
	}
	r.SetFillColor(c)
	defer r.ResetStyle()
	r.MoveTo(pts[0].x, pts[0].y)
	for _, p := range pts[1:] {
		r.LineTo(p.x, p.y)
	}
	r.Close()
	r.Fill()
}

func diamond(r chart.Renderer, x, y, radius int, c drawing.Color) {
	fillPolygon(r, []point{{x, y - radius}, {x + radius, y}, {x, y + radius}, {x - radius, y}}, c)
}

func square(r chart.Renderer, x, y, half int, c drawing.Color) {
	fillPolygon(r, []point{{x - half, y - half}, {x + half, y - half}, {x + half, y + half}, {x - half, y + half}}, c)
}

// diamondRadius is the centre-to-vertex distance of a diamond marker: a
// square of side QRMarkerSize turned by 45 degrees.
func (s Style) diamondRadius() int {
	return s.pxInt(s.QRMarkerSize * math.Sqrt2 / 2)
}

func (s Style) squareRadius() int {
	return s.pxInt(s.OLSMarkerSize / 2)
}
