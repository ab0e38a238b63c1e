package coefplot

import (
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Style holds every cosmetic setting of a coefficient chart. Lengths are in
// points and font sizes in typographic points unless noted otherwise.
type Style struct {
	// Page geometry before cropping, in inches.
	Width, Height float64
	DPI           float64
	// CropMargin is kept around the inked content of both outputs, in inches.
	CropMargin float64
	// PlotInset is the distance from the page edges to the plot area.
	// Title, subtitle, tick labels and axis label live in this border.
	PlotInset Inset

	Background drawing.Color
	TextColor  drawing.Color

	XMin, XMax float64
	// YPad is the fraction of the data span added above and below the data.
	YPad float64
	// YTickCount is the preferred number of y ticks.
	YTickCount int

	QRColor      drawing.Color
	BandAlpha    float64
	QRLineWidth  float64
	QRMarkerSize float64

	OLSColor       drawing.Color
	OLSHalfWidth   float64 // in plot units
	OLSLineWidth   float64
	OLSCILineWidth float64
	OLSCIAlpha     float64
	OLSCIDash      []float64
	OLSMarkerSize  float64

	LabelFontSize float64
	LabelColor    drawing.Color

	TitleFontSize    float64
	TitlePad         float64
	SubtitleFontSize float64
	SubtitleColor    drawing.Color
	SubtitleGap      float64

	AxisLabelFontSize float64
	AxisLabelPad      float64
	TickFontSize      float64
	TickLength        float64
	TickWidth         float64
	TickPad           float64

	GridColor drawing.Color
	GridAlpha float64
	GridWidth float64
	GridDash  []float64

	SpineColor drawing.Color
	SpineWidth float64

	LegendFontSize float64
	// LegendAnchorY places the top of an anchored legend as a fraction of
	// the plot height, measured from the bottom.
	LegendAnchorY   float64
	LegendPad       float64
	LegendRowGap    float64
	LegendHandle    float64
	LegendHandleGap float64
}

// Inset is a margin in inches.
type Inset struct {
	Top, Left, Right, Bottom float64
}

var (
	colorMaroon    = drawing.Color{R: 128, G: 0, B: 0, A: 255}
	colorDarkBlue  = drawing.Color{R: 0, G: 0, B: 139, A: 255}
	colorDimGray   = drawing.Color{R: 105, G: 105, B: 105, A: 255}
	colorLightGray = drawing.Color{R: 211, G: 211, B: 211, A: 255}
)

// DefaultStyle returns the house style: 7 x 4.2 in at 200 dpi, maroon
// quantile regression curve and dark blue OLS comparison.
func DefaultStyle() Style {
	return Style{
		Width:      7,
		Height:     4.2,
		DPI:        200,
		CropMargin: 0.1,
		PlotInset:  Inset{Top: 0.95, Left: 1.05, Right: 0.2, Bottom: 0.55},

		Background: drawing.ColorWhite,
		TextColor:  drawing.ColorBlack,

		XMin:       0.7,
		XMax:       3.3,
		YPad:       0.05,
		YTickCount: 6,

		QRColor:      colorMaroon,
		BandAlpha:    0.15,
		QRLineWidth:  1.5,
		QRMarkerSize: 7,

		OLSColor:       colorDarkBlue,
		OLSHalfWidth:   0.1,
		OLSLineWidth:   1.5,
		OLSCILineWidth: 1,
		OLSCIAlpha:     0.7,
		OLSCIDash:      []float64{3.7, 1.6},
		OLSMarkerSize:  7,

		LabelFontSize: 8,
		LabelColor:    drawing.ColorBlack,

		TitleFontSize:    11,
		TitlePad:         15,
		SubtitleFontSize: 9,
		SubtitleColor:    colorDimGray,
		SubtitleGap:      8,

		AxisLabelFontSize: 9,
		AxisLabelPad:      4,
		TickFontSize:      9,
		TickLength:        3.5,
		TickWidth:         0.8,
		TickPad:           3.5,

		GridColor: colorLightGray,
		GridAlpha: 0.7,
		GridWidth: 0.8,
		GridDash:  []float64{0.8, 1.32},

		SpineColor: drawing.ColorBlack,
		SpineWidth: 0.5,

		LegendFontSize:  8,
		LegendAnchorY:   0.95,
		LegendPad:       4,
		LegendRowGap:    4,
		LegendHandle:    16,
		LegendHandleGap: 6,
	}
}

// orDefault returns DefaultStyle for an unset Style.
func (s Style) orDefault() Style {
	if s.DPI == 0 || s.Width == 0 || s.Height == 0 {
		return DefaultStyle()
	}
	return s
}

// canvas returns the page size in pixels.
func (s Style) canvas() (w, h int) {
	return int(s.Width*s.DPI + 0.5), int(s.Height*s.DPI + 0.5)
}

// px converts points to canvas pixels.
func (s Style) px(pt float64) float64 {
	return drawing.PointsToPixels(s.DPI, pt)
}

// pxInt converts points to whole canvas pixels, never rounding a visible
// length down to zero.
func (s Style) pxInt(pt float64) int {
	v := int(s.px(pt) + 0.5)
	if v == 0 && pt > 0 {
		return 1
	}
	return v
}

// fontSize converts typographic points to the size go-chart expects. go-chart
// sizes an em at size*dpi/64 pixels instead of size*dpi/72.
func (s Style) fontSize(pt float64) float64 {
	return pt * 64 / 72
}

// dash converts a dash pattern in points to pixels.
func (s Style) dash(pts []float64) []float64 {
	out := make([]float64, len(pts))
	for i, v := range pts {
		out[i] = s.px(v)
	}
	return out
}

// inset returns the plot area inset in pixels, as chart background padding.
func (s Style) inset() chart.Box {
	conv := func(in float64) int { return int(in*s.DPI + 0.5) }
	return chart.NewBox(conv(s.PlotInset.Top), conv(s.PlotInset.Left), conv(s.PlotInset.Right), conv(s.PlotInset.Bottom))
}

func withAlpha(c drawing.Color, a float64) drawing.Color {
	return c.WithAlpha(uint8(float64(c.A)*a + 0.5))
}
