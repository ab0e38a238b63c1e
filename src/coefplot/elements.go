package coefplot

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lrud/credit-market-volatility-research/src/estimate"
)

func textStyle(defaults chart.Style, size float64, c drawing.Color) chart.Style {
	return chart.Style{Font: defaults.Font, FontSize: size, FontColor: c}
}

// anchoredText draws body vertically centred on y, starting at x for a left
// anchor and ending at x for a right anchor.
func anchoredText(r chart.Renderer, body string, x, y int, a Anchor, s chart.Style) {
	tb := chart.Draw.MeasureText(r, body, s)
	if a == AnchorRight {
		x -= tb.Width()
	}
	chart.Draw.Text(r, body, x, y+tb.Height()/2, s)
}

// centredText draws body horizontally centred on cx with its baseline at y.
func centredText(r chart.Renderer, body string, cx, y int, s chart.Style) {
	tb := chart.Draw.MeasureText(r, body, s)
	chart.Draw.Text(r, body, cx-tb.Width()/2, y, s)
}

// axesElement draws the left and bottom spines, the y ticks with their labels,
// the x tick labels and the rotated y-axis label.
func axesElement(st Style, l Layout, yLabel string) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		f := newFrame(box, l)
		spine := chart.Style{StrokeColor: st.SpineColor, StrokeWidth: st.px(st.SpineWidth)}
		strokeLine(r, box.Left, box.Top, box.Left, box.Bottom, spine)
		strokeLine(r, box.Left, box.Bottom, box.Right, box.Bottom, spine)

		ticks := textStyle(defaults, st.fontSize(st.TickFontSize), st.TextColor)
		tickMark := chart.Style{StrokeColor: st.SpineColor, StrokeWidth: st.px(st.TickWidth)}
		tickLen, tickPad := st.pxInt(st.TickLength), st.pxInt(st.TickPad)

		widest := 0
		for _, t := range l.YTicks {
			y := f.y(t.Value)
			strokeLine(r, box.Left-tickLen, y, box.Left, y, tickMark)
			tb := chart.Draw.MeasureText(r, t.Label, ticks)
			if tb.Width() > widest {
				widest = tb.Width()
			}
			anchoredText(r, t.Label, box.Left-tickLen-tickPad, y, AnchorRight, ticks)
		}

		for _, t := range l.XTicks {
			tb := chart.Draw.MeasureText(r, t.Label, ticks)
			centredText(r, t.Label, f.x(t.Value), box.Bottom+tickPad+tb.Height(), ticks)
		}

		if yLabel == "" {
			return
		}
		ls := textStyle(defaults, st.fontSize(st.AxisLabelFontSize), st.TextColor)
		tb := chart.Draw.MeasureText(r, yLabel, ls)
		ls.TextRotationDegrees = 270
		x := box.Left - tickLen - tickPad - widest - st.pxInt(st.AxisLabelPad)
		y := box.Top + box.Height()/2 + tb.Width()/2
		chart.Draw.Text(r, yLabel, x, y, ls)
	}
}

// yGutter returns the width in pixels taken left of the plot by the y tick
// marks, their labels and the rotated axis label. It measures with the raster
// backend, which clips anything drawn past the canvas edge.
func yGutter(st Style, l Layout, yLabel string) (int, error) {
	font, err := chart.GetDefaultFont()
	if err != nil {
		return 0, err
	}
	w, h := st.canvas()
	r, err := chart.PNG(w, h)
	if err != nil {
		return 0, err
	}
	r.SetDPI(st.DPI)
	defaults := chart.Style{Font: font}

	ticks := textStyle(defaults, st.fontSize(st.TickFontSize), st.TextColor)
	widest := 0
	for _, t := range l.YTicks {
		widest = chart.MaxInt(widest, chart.Draw.MeasureText(r, t.Label, ticks).Width())
	}
	g := st.pxInt(st.TickLength) + st.pxInt(st.TickPad) + widest
	if yLabel != "" {
		ls := textStyle(defaults, st.fontSize(st.AxisLabelFontSize), st.TextColor)
		g += st.pxInt(st.AxisLabelPad) + chart.Draw.MeasureText(r, yLabel, ls).Height()
	}
	return g, nil
}

// titleElement centres the title and the subtitle below it over the plot area.
func titleElement(st Style, title, subtitle string) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		cx := box.Left + box.Width()/2
		baseline := box.Top - st.pxInt(st.SubtitleGap)
		if subtitle != "" {
			ss := textStyle(defaults, st.fontSize(st.SubtitleFontSize), st.SubtitleColor)
			centredText(r, subtitle, cx, baseline, ss)
			baseline -= chart.Draw.MeasureText(r, subtitle, ss).Height()
		}
		if title != "" {
			ts := textStyle(defaults, st.fontSize(st.TitleFontSize), st.TextColor)
			centredText(r, title, cx, baseline-st.pxInt(st.TitlePad), ts)
		}
	}
}

// legendElement draws the frameless legend.
func legendElement(st Style, l Layout) chart.Renderable {
	return func(r chart.Renderer, box chart.Box, defaults chart.Style) {
		if len(l.Legend) == 0 {
			return
		}
		ts := textStyle(defaults, st.fontSize(st.LegendFontSize), st.TextColor)
		handle, gap := st.pxInt(st.LegendHandle), st.pxInt(st.LegendHandleGap)
		rowGap, pad := st.pxInt(st.LegendRowGap), st.pxInt(st.LegendPad)

		rowHeight, textWidth := 0, 0
		for _, label := range l.Legend {
			tb := chart.Draw.MeasureText(r, label, ts)
			rowHeight = chart.MaxInt(rowHeight, tb.Height(), 2*st.squareRadius(), 2*st.diamondRadius())
			textWidth = chart.MaxInt(textWidth, tb.Width())
		}
		size := legendSize{
			w: 2*pad + handle + gap + textWidth,
			h: 2*pad + len(l.Legend)*rowHeight + (len(l.Legend)-1)*rowGap,
		}

		f := newFrame(box, l)
		var lb chart.Box
		if l.Placement == LegendAnchored {
			top := box.Bottom - int(st.LegendAnchorY*float64(box.Height())+0.5)
			lb = chart.Box{Top: top, Right: box.Right, Left: box.Right - size.w, Bottom: top + size.h}
		} else {
			lb = bestLegendBox(box, size, pad, occupiedPoints(f, l.Data))
		}

		for i, label := range l.Legend {
			cy := lb.Top + pad + i*(rowHeight+rowGap) + rowHeight/2
			hx := lb.Left + pad
			drawLegendHandle(r, st, label, hx, hx+handle, cy)
			anchoredText(r, label, hx+handle+gap, cy, AnchorLeft, ts)
		}
	}
}

func drawLegendHandle(r chart.Renderer, st Style, label string, x0, x1, cy int) {
	mid := (x0 + x1) / 2
	switch label {
	case LegendQRCoef:
		strokeLine(r, x0, cy, x1, cy, chart.Style{StrokeColor: st.QRColor, StrokeWidth: st.px(st.QRLineWidth)})
		diamond(r, mid, cy, st.diamondRadius(), st.QRColor)
	case LegendQRCI:
		half := st.pxInt(st.LegendFontSize * 0.35)
		fillPolygon(r, []point{{x0, cy - half}, {x1, cy - half}, {x1, cy + half}, {x0, cy + half}}, withAlpha(st.QRColor, st.BandAlpha))
	case LegendOLS:
		square(r, mid, cy, st.squareRadius(), st.OLSColor)
	}
}

type legendSize struct{ w, h int }

// legendCorners lists candidate legend positions in preference order.
var legendCorners = []struct{ right, top bool }{
	{right: true, top: true},
	{right: false, top: true},
	{right: false, top: false},
	{right: true, top: false},
}

// bestLegendBox returns the corner box covering the fewest occupied points.
// Ties go to the earlier corner in legendCorners.
func bestLegendBox(plot chart.Box, size legendSize, inset int, occupied []point) chart.Box {
	var best chart.Box
	bestCount := -1
	for _, c := range legendCorners {
		b := chart.Box{Left: plot.Left + inset, Top: plot.Top + inset}
		if c.right {
			b.Left = plot.Right - inset - size.w
		}
		if !c.top {
			b.Top = plot.Bottom - inset - size.h
		}
		b.Right, b.Bottom = b.Left+size.w, b.Top+size.h
		n := 0
		for _, p := range occupied {
			if p.x >= b.Left && p.x <= b.Right && p.y >= b.Top && p.y <= b.Bottom {
				n++
			}
		}
		if bestCount < 0 || n < bestCount {
			best, bestCount = b, n
		}
	}
	return best
}

// occupiedSamples is the number of samples taken per segment between
// positions when estimating which parts of the plot hold data.
const occupiedSamples = 20

// occupiedPoints samples the coefficient line, the band edges and the band
// interior in pixel space.
func occupiedPoints(f frame, data estimate.Partition) []point {
	var pts []point
	qr := data.QR
	for i := 0; i+1 < len(qr); i++ {
		a, b := qr[i], qr[i+1]
		for k := 0; k <= occupiedSamples; k++ {
			t := float64(k) / occupiedSamples
			x := float64(a.Position) + t*float64(b.Position-a.Position)
			lerp := func(u, v float64) float64 { return u + t*(v-u) }
			lo, coef, hi := lerp(a.Low, b.Low), lerp(a.Coef, b.Coef), lerp(a.High, b.High)
			for _, y := range []float64{lo, (lo + coef) / 2, coef, (coef + hi) / 2, hi} {
				pts = append(pts, point{f.x(x), f.y(y)})
			}
		}
	}
	if data.OLS != nil {
		o := data.OLS
		for _, y := range []float64{o.Low, o.Coef, o.High} {
			pts = append(pts, point{f.x(float64(o.Position)), f.y(y)})
		}
	}
	return pts
}
