// Package coefplot draws quantile regression versus OLS coefficient charts and
// exports each one as a PDF and PNG pair.
package coefplot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lrud/credit-market-volatility-research/src/logging"
	"github.com/lrud/credit-market-volatility-research/src/pdfrender"
)

var (
	// ErrConfig marks unusable output settings.
	ErrConfig = errors.New("configuration error")
	// ErrIO marks a failure to render, encode or write an output file.
	ErrIO = errors.New("io error")
)

// Options configures a Renderer. Zero values fall back to DefaultStyle and
// os.Stdout.
type Options struct {
	Style  Style
	Stdout io.Writer
}

// Renderer turns Requests into chart files.
type Renderer struct {
	style  Style
	stdout io.Writer
}

// Result holds the paths of the files written for one chart.
type Result struct {
	PDFPath string
	PNGPath string
}

// NewRenderer returns a Renderer for opts.
func NewRenderer(opts Options) *Renderer {
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	return &Renderer{style: opts.Style.orDefault(), stdout: out}
}

// Render draws req and writes {OutputDir}/{Basename}.pdf and .png, creating
// the directory when needed. Existing files are replaced.
func (r *Renderer) Render(req Request) (Result, error) {
	defer logging.TimeTrack(time.Now(), "render "+req.Basename)

	name := strings.TrimSpace(req.Basename)
	if name == "" {
		return Result{}, fmt.Errorf("%w: empty basename", ErrConfig)
	}
	if strings.ContainsAny(name, `/\`) {
		return Result{}, fmt.Errorf("%w: basename %q contains a path separator", ErrConfig, name)
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return Result{}, fmt.Errorf("%w: empty output directory", ErrConfig)
	}

	layout, err := plan(req, r.style)
	if err != nil {
		return Result{}, err
	}
	logging.Debugf("%s: %s y range [%g, %g], %d y ticks, legend %v", name, req.VariableLabel, layout.YMin, layout.YMax, len(layout.YTicks), layout.Legend)

	gutter, err := yGutter(r.style, layout, req.YAxisLabel)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s measure: %w", ErrIO, name, err)
	}

	if err := os.MkdirAll(req.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("%w: create out dir: %w", ErrConfig, err)
	}

	ch := r.chart(req, layout, gutter)

	pngBytes, err := r.renderPNG(ch)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s png: %w", ErrIO, name, err)
	}
	var pdfBuf bytes.Buffer
	if err := ch.Render(pdfrender.PDF(r.pdfOptions(req)), &pdfBuf); err != nil {
		return Result{}, fmt.Errorf("%w: %s pdf: %w", ErrIO, name, err)
	}

	res := Result{
		PDFPath: filepath.Join(req.OutputDir, name+".pdf"),
		PNGPath: filepath.Join(req.OutputDir, name+".png"),
	}
	if err := writeFileAtomic(res.PDFPath, pdfBuf.Bytes()); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if err := writeFileAtomic(res.PNGPath, pngBytes); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrIO, err)
	}
	logging.Infof("wrote %s (%d bytes) and %s (%d bytes)", res.PDFPath, pdfBuf.Len(), res.PNGPath, len(pngBytes))
	fmt.Fprintf(r.stdout, "Exported %s (PDF and PNG)\n", name)
	return res, nil
}

// chart composes the go-chart value for a planned layout. go-chart's own
// axes are hidden: the fixed x range and the custom spines, ticks and labels
// are drawn by this package. When gutter does not fit in the left inset the
// canvas grows to the left so the plot keeps its width.
func (r *Renderer) chart(req Request, l Layout, gutter int) chart.Chart {
	st := r.style
	w, h := st.canvas()
	hidden := chart.Style{Hidden: true}

	pad := st.inset()
	if need := gutter + st.pxInt(st.AxisLabelPad); need > pad.Left {
		w += need - pad.Left
		pad.Left = need
	}

	series := []chart.Series{
		gridSeries(st, l),
		bandSeries(st, l.Data.QR),
		qrLineSeries(st, l.Data.QR),
	}
	if l.Data.HasOLS() {
		series = append(series, olsSeries(st, *l.Data.OLS, l.OLSLabel))
	}

	return chart.Chart{
		Width:  w,
		Height: h,
		DPI:    st.DPI,
		Background: chart.Style{
			FillColor: st.Background,
			Padding:   pad,
		},
		Canvas:         chart.Style{FillColor: st.Background},
		XAxis:          chart.XAxis{Style: hidden, Range: &chart.ContinuousRange{Min: l.XMin, Max: l.XMax}},
		YAxis:          chart.YAxis{Style: hidden, Range: &chart.ContinuousRange{Min: l.YMin, Max: l.YMax}},
		YAxisSecondary: chart.YAxis{Style: hidden},
		Series:         series,
		Elements: []chart.Renderable{
			axesElement(st, l, req.YAxisLabel),
			titleElement(st, req.Title, req.Subtitle),
			legendElement(st, l),
		},
		Log: logging.ChartLogger(),
	}
}

func (r *Renderer) renderPNG(ch chart.Chart) ([]byte, error) {
	iw := &chart.ImageWriter{}
	if err := ch.Render(chart.PNG, iw); err != nil {
		return nil, err
	}
	img, err := iw.Image()
	if err != nil {
		return nil, err
	}
	margin := int(r.style.CropMargin*r.style.DPI + 0.5)
	return encodePNG(cropToInk(img, r.style.Background, margin), r.style.DPI)
}

func (r *Renderer) pdfOptions(req Request) pdfrender.Options {
	opts := pdfrender.DefaultOptions()
	opts.DPI = r.style.DPI
	opts.Margin = r.style.CropMargin
	opts.Background = r.style.Background
	opts.Title = req.Title
	return opts
}
