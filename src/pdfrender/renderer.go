// Package pdfrender implements go-chart's Renderer on top of fpdf so that any
// chart.Chart can be written as a single-page vector PDF.
//
// go-chart lays a chart out in pixels at the chart DPI. The renderer records
// every drawing call in those pixel coordinates and replays them on Save,
// mapping pixels to points (72/DPI). Deferring the output this way lets the
// page be cropped to the inked area before any PDF content is produced.
package pdfrender

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/wcharczuk/go-chart/v2/roboto"
)

const (
	// fontFamily is the name the embedded Roboto face is registered under.
	fontFamily = "roboto"

	// go-chart's raster backend scales an em to size*dpi/64 pixels instead of
	// size*dpi/72; text is enlarged by the same factor to keep both outputs alike.
	rasterEmScale = 72.0 / 64.0

	// textHeightEm approximates the glyph-bounds height of a line of text.
	textHeightEm = 0.75
	// textDescentEm is the part of that height below the baseline.
	textDescentEm = 0.2

	// arcStepRadians is the angular resolution used to flatten arcs.
	arcStepRadians = math.Pi / 36
)

// Options configures the PDF backend.
type Options struct {
	// DPI is the resolution the chart is laid out at. Default: 200.
	DPI float64
	// Crop trims the page to the inked bounding box plus Margin.
	Crop bool
	// Margin is kept around cropped content, in inches. Default: 0.1.
	Margin float64
	// Background is the paper colour. Paint in this colour is drawn but does
	// not count as ink when cropping.
	Background drawing.Color
	// Title is written to the document information dictionary.
	Title string
	// Timestamp is used for the creation and modification dates. A zero value
	// falls back to the Unix epoch so identical input renders identical bytes.
	Timestamp time.Time
}

// DefaultOptions returns options for a cropped 200 dpi page on white paper.
func DefaultOptions() Options {
	return Options{
		DPI:        200,
		Crop:       true,
		Margin:     0.1,
		Background: drawing.ColorWhite,
	}
}

// PDF returns a chart.RendererProvider producing PDF output.
func PDF(opts Options) chart.RendererProvider {
	return func(width, height int) (chart.Renderer, error) {
		return New(width, height, opts)
	}
}

// Renderer records go-chart drawing calls and writes them as a PDF on Save.
type Renderer struct {
	width, height int
	opts          Options
	dpi           float64

	measure *fpdf.Fpdf

	s             chart.Style
	rotateRadians *float64

	path []segment
	ops  []op
	ink  bounds
}

var _ chart.Renderer = (*Renderer)(nil)

// New returns a renderer for a width x height pixel canvas.
func New(width, height int, opts Options) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pdf renderer: invalid canvas %dx%d", width, height)
	}
	if opts.DPI <= 0 {
		opts.DPI = DefaultOptions().DPI
	}
	if opts.Margin < 0 {
		opts.Margin = 0
	}
	measure := fpdf.New("P", "pt", "A4", "")
	measure.AddUTF8FontFromBytes(fontFamily, "", roboto.Roboto)
	measure.SetFont(fontFamily, "", chart.DefaultFontSize)
	if err := measure.Error(); err != nil {
		return nil, fmt.Errorf("pdf renderer: load font: %w", err)
	}
	return &Renderer{
		width:   width,
		height:  height,
		opts:    opts,
		dpi:     opts.DPI,
		measure: measure,
		ink:     emptyBounds(),
	}, nil
}

// ResetStyle implements chart.Renderer.
func (r *Renderer) ResetStyle() {
	r.s = chart.Style{Font: r.s.Font}
	r.ClearTextRotation()
}

// GetDPI implements chart.Renderer.
func (r *Renderer) GetDPI() float64 { return r.dpi }

// SetDPI implements chart.Renderer.
func (r *Renderer) SetDPI(dpi float64) {
	if dpi > 0 {
		r.dpi = dpi
	}
}

// SetClassName implements chart.Renderer. PDFs have no classes.
func (r *Renderer) SetClassName(_ string) {}

// SetStrokeColor implements chart.Renderer.
func (r *Renderer) SetStrokeColor(c drawing.Color) { r.s.StrokeColor = c }

// SetFillColor implements chart.Renderer.
func (r *Renderer) SetFillColor(c drawing.Color) { r.s.FillColor = c }

// SetStrokeWidth implements chart.Renderer.
func (r *Renderer) SetStrokeWidth(width float64) { r.s.StrokeWidth = width }

// SetStrokeDashArray implements chart.Renderer.
func (r *Renderer) SetStrokeDashArray(dashArray []float64) { r.s.StrokeDashArray = dashArray }

// MoveTo implements chart.Renderer.
func (r *Renderer) MoveTo(x, y int) {
	r.path = append(r.path, segment{kind: segMove, x: float64(x), y: float64(y)})
}

// LineTo implements chart.Renderer.
func (r *Renderer) LineTo(x, y int) {
	r.path = append(r.path, segment{kind: segLine, x: float64(x), y: float64(y)})
}

// QuadCurveTo implements chart.Renderer.
func (r *Renderer) QuadCurveTo(cx, cy, x, y int) {
	r.path = append(r.path, segment{kind: segQuad, cx: float64(cx), cy: float64(cy), x: float64(x), y: float64(y)})
}

// ArcTo implements chart.Renderer. The arc is flattened into line segments;
// a line connects the current point to the start of the arc.
func (r *Renderer) ArcTo(cx, cy int, rx, ry, startAngle, delta float64) {
	steps := int(math.Ceil(math.Abs(delta) / arcStepRadians))
	if steps < 1 {
		steps = 1
	}
	kind := segLine
	if len(r.path) == 0 {
		kind = segMove
	}
	for i := 0; i <= steps; i++ {
		a := startAngle + delta*float64(i)/float64(steps)
		x := float64(cx) + rx*math.Cos(a)
		y := float64(cy) + ry*math.Sin(a)
		r.path = append(r.path, segment{kind: kind, x: x, y: y})
		kind = segLine
	}
}

// Close implements chart.Renderer.
func (r *Renderer) Close() {
	r.path = append(r.path, segment{kind: segClose})
}

// Stroke implements chart.Renderer.
func (r *Renderer) Stroke() {
	r.paint(false, true)
}

// Fill implements chart.Renderer.
func (r *Renderer) Fill() {
	r.paint(true, false)
}

// FillStroke implements chart.Renderer.
func (r *Renderer) FillStroke() {
	r.paint(true, true)
}

// Circle adds a circle to the current path without painting it, matching the
// raster backend's four-curve approximation.
func (r *Renderer) Circle(radius float64, x, y int) {
	xf, yf := float64(x), float64(y)
	r.path = append(r.path,
		segment{kind: segMove, x: xf - radius, y: yf},
		segment{kind: segQuad, cx: xf - radius, cy: yf - radius, x: xf, y: yf - radius},
		segment{kind: segQuad, cx: xf + radius, cy: yf - radius, x: xf + radius, y: yf},
		segment{kind: segQuad, cx: xf + radius, cy: yf + radius, x: xf, y: yf + radius},
		segment{kind: segQuad, cx: xf - radius, cy: yf + radius, x: xf - radius, y: yf},
	)
}

// SetFont implements chart.Renderer. Text is always set in the embedded
// Roboto face, which is go-chart's default font.
func (r *Renderer) SetFont(f *truetype.Font) { r.s.Font = f }

// SetFontColor implements chart.Renderer.
func (r *Renderer) SetFontColor(c drawing.Color) { r.s.FontColor = c }

// SetFontSize implements chart.Renderer.
func (r *Renderer) SetFontSize(size float64) { r.s.FontSize = size }

// Text implements chart.Renderer. (x, y) is the start of the baseline.
func (r *Renderer) Text(body string, x, y int) {
	if body == "" || r.s.FontColor.IsTransparent() {
		return
	}
	size := r.fontPoints()
	col := r.s.FontColor
	xf, yf := float64(x), float64(y)
	var rot float64
	if r.rotateRadians != nil {
		rot = *r.rotateRadians
	}

	w := r.textWidth(body, size)
	em := drawing.PointsToPixels(r.dpi, size)
	for _, p := range rotateAround([]point{
		{xf, yf - em*(textHeightEm-textDescentEm)},
		{xf + w, yf - em*(textHeightEm-textDescentEm)},
		{xf + w, yf + em*textDescentEm},
		{xf, yf + em*textDescentEm},
	}, xf, yf, rot) {
		r.ink.add(p.x, p.y)
	}

	r.ops = append(r.ops, func(pdf *fpdf.Fpdf, t transform) {
		pdf.SetFont(fontFamily, "", size)
		pdf.SetTextColor(int(col.R), int(col.G), int(col.B))
		pdf.SetAlpha(alpha(col), "Normal")
		px, py := t.point(xf, yf)
		if rot != 0 {
			pdf.TransformBegin()
			pdf.TransformRotate(-chart.RadiansToDegrees(rot), px, py)
			pdf.Text(px, py, body)
			pdf.TransformEnd()
			return
		}
		pdf.Text(px, py, body)
	})
}

// MeasureText implements chart.Renderer.
func (r *Renderer) MeasureText(body string) chart.Box {
	size := r.fontPoints()
	w := r.textWidth(body, size)
	h := drawing.PointsToPixels(r.dpi, size) * textHeightEm
	box := chart.Box{
		Right:  int(math.Ceil(w)),
		Bottom: int(math.Ceil(h)),
	}
	if r.rotateRadians == nil {
		return box
	}
	return box.Corners().Rotate(chart.RadiansToDegrees(*r.rotateRadians)).Box()
}

// SetTextRotation implements chart.Renderer.
func (r *Renderer) SetTextRotation(radians float64) {
	r.rotateRadians = &radians
}

// ClearTextRotation implements chart.Renderer.
func (r *Renderer) ClearTextRotation() {
	r.rotateRadians = nil
}

// Save writes the recorded drawing as a PDF document.
func (r *Renderer) Save(w io.Writer) error {
	page := chart.Box{Right: r.width, Bottom: r.height}
	if r.opts.Crop && !r.ink.empty() {
		margin := r.opts.Margin * r.dpi
		page = chart.Box{
			Left:   int(math.Floor(r.ink.minX - margin)),
			Top:    int(math.Floor(r.ink.minY - margin)),
			Right:  int(math.Ceil(r.ink.maxX + margin)),
			Bottom: int(math.Ceil(r.ink.maxY + margin)),
		}
	}
	t := transform{
		scale:   72 / r.dpi,
		originX: float64(page.Left),
		originY: float64(page.Top),
	}
	size := fpdf.SizeType{Wd: float64(page.Width()) * t.scale, Ht: float64(page.Height()) * t.scale}

	pdf := fpdf.NewCustom(&fpdf.InitType{OrientationStr: "P", UnitStr: "pt", Size: size})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	ts := r.opts.Timestamp
	if ts.IsZero() {
		ts = time.Unix(0, 0).UTC()
	}
	pdf.SetCreationDate(ts)
	pdf.SetModificationDate(ts)
	if r.opts.Title != "" {
		pdf.SetTitle(r.opts.Title, true)
	}
	pdf.AddUTF8FontFromBytes(fontFamily, "", roboto.Roboto)
	pdf.AddPageFormat("P", size)
	for _, o := range r.ops {
		o(pdf, t)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf renderer: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf renderer: write: %w", err)
	}
	return nil
}

// Ink returns the bounding box of everything drawn so far, in canvas pixels.
// ok is false when nothing visible has been drawn.
func (r *Renderer) Ink() (box chart.Box, ok bool) {
	if r.ink.empty() {
		return chart.Box{}, false
	}
	return chart.Box{
		Left:   int(math.Floor(r.ink.minX)),
		Top:    int(math.Floor(r.ink.minY)),
		Right:  int(math.Ceil(r.ink.maxX)),
		Bottom: int(math.Ceil(r.ink.maxY)),
	}, true
}

func (r *Renderer) fontPoints() float64 {
	return r.s.GetFontSize(chart.DefaultFontSize) * rasterEmScale
}

// textWidth returns the advance width of body in canvas pixels.
func (r *Renderer) textWidth(body string, sizePoints float64) float64 {
	r.measure.SetFontSize(sizePoints)
	return drawing.PointsToPixels(r.dpi, r.measure.GetStringWidth(body))
}

// paint turns the pending path into a recorded operation and clears it.
func (r *Renderer) paint(fill, stroke bool) {
	path := r.path
	r.path = nil
	if len(path) == 0 {
		return
	}
	fillColor := r.s.FillColor
	strokeColor := r.s.StrokeColor
	strokeWidth := r.s.StrokeWidth
	dash := append([]float64(nil), r.s.StrokeDashArray...)

	fill = fill && !fillColor.IsTransparent()
	stroke = stroke && !strokeColor.IsTransparent() && strokeWidth > 0
	if !fill && !stroke {
		return
	}

	inked := (fill && !fillColor.Equals(r.opts.Background)) ||
		(stroke && !strokeColor.Equals(r.opts.Background))
	if inked {
		pad := 0.0
		if stroke {
			pad = strokeWidth / 2
		}
		for _, s := range path {
			if s.kind == segClose {
				continue
			}
			r.ink.add(s.x-pad, s.y-pad)
			r.ink.add(s.x+pad, s.y+pad)
			if s.kind == segQuad {
				r.ink.add(s.cx, s.cy)
			}
		}
	}

	r.ops = append(r.ops, func(pdf *fpdf.Fpdf, t transform) {
		if fill {
			pdf.SetFillColor(int(fillColor.R), int(fillColor.G), int(fillColor.B))
			pdf.SetAlpha(alpha(fillColor), "Normal")
			t.trace(pdf, path)
			pdf.DrawPath("F")
		}
		if stroke {
			pdf.SetDrawColor(int(strokeColor.R), int(strokeColor.G), int(strokeColor.B))
			pdf.SetLineWidth(strokeWidth * t.scale)
			scaled := make([]float64, len(dash))
			for i, d := range dash {
				scaled[i] = d * t.scale
			}
			pdf.SetDashPattern(scaled, 0)
			pdf.SetAlpha(alpha(strokeColor), "Normal")
			t.trace(pdf, path)
			pdf.DrawPath("D")
		}
	})
}

func alpha(c drawing.Color) float64 {
	return float64(c.A) / 255
}

type segmentKind int

const (
	segMove segmentKind = iota
	segLine
	segQuad
	segClose
)

type segment struct {
	kind   segmentKind
	x, y   float64
	cx, cy float64
}

type op func(pdf *fpdf.Fpdf, t transform)

// transform maps canvas pixels to page points.
type transform struct {
	scale            float64
	originX, originY float64
}

func (t transform) point(x, y float64) (float64, float64) {
	return (x - t.originX) * t.scale, (y - t.originY) * t.scale
}

func (t transform) trace(pdf *fpdf.Fpdf, path []segment) {
	for _, s := range path {
		switch s.kind {
		case segMove:
			pdf.MoveTo(t.point(s.x, s.y))
		case segLine:
			pdf.LineTo(t.point(s.x, s.y))
		case segQuad:
			cx, cy := t.point(s.cx, s.cy)
			x, y := t.point(s.x, s.y)
			pdf.CurveTo(cx, cy, x, y)
		case segClose:
			pdf.ClosePath()
		}
	}
}

type point struct{ x, y float64 }

// rotateAround rotates pts by theta radians around (cx, cy) in canvas
// coordinates, where positive angles turn clockwise on screen.
func rotateAround(pts []point, cx, cy, theta float64) []point {
	if theta == 0 {
		return pts
	}
	sin, cos := math.Sincos(theta)
	out := make([]point, len(pts))
	for i, p := range pts {
		dx, dy := p.x-cx, p.y-cy
		out[i] = point{cx + dx*cos - dy*sin, cy + dx*sin + dy*cos}
	}
	return out
}

type bounds struct {
	minX, minY, maxX, maxY float64
}

func emptyBounds() bounds {
	return bounds{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
}

func (b *bounds) add(x, y float64) {
	b.minX = math.Min(b.minX, x)
	b.minY = math.Min(b.minY, y)
	b.maxX = math.Max(b.maxX, x)
	b.maxY = math.Max(b.maxY, y)
}

func (b bounds) empty() bool {
	return b.minX > b.maxX || b.minY > b.maxY
}
