// Package datasets holds the published coefficient tables charted by the
// coefplots command.
package datasets

import (
	"github.com/lrud/credit-market-volatility-research/src/coefplot"
	"github.com/lrud/credit-market-volatility-research/src/estimate"
)

const (
	Subtitle   = "QR (Shaded 95% CI) vs. OLS"
	YAxisLabel = "Coefficient Estimate"
)

// Dataset is one predictor's estimates with its chart labels.
type Dataset struct {
	Variable string
	Title    string
	Basename string
	Label    coefplot.LabelStyle
	Coef     [4]float64
	SE       [4]float64
}

// Records expands the table into estimate rows: quantile regression at the
// 0.25, 0.50 and 0.75 quantiles followed by OLS.
func (d Dataset) Records() []estimate.Estimate {
	out := make([]estimate.Estimate, 0, 4)
	for i, p := range estimate.Positions {
		out = append(out, estimate.Estimate{
			Variable: d.Variable,
			Model:    estimate.QuantileRegression,
			Position: p,
			Quantile: 0.25 * float64(i+1),
			Coef:     d.Coef[i],
			SE:       d.SE[i],
		})
	}
	return append(out, estimate.Estimate{
		Variable: d.Variable,
		Model:    estimate.OLS,
		Position: estimate.Q50,
		Quantile: 0.5,
		Coef:     d.Coef[3],
		SE:       d.SE[3],
	})
}

// Request builds the render request writing into outDir.
func (d Dataset) Request(outDir string) coefplot.Request {
	return coefplot.Request{
		Records:       d.Records(),
		VariableLabel: d.Variable,
		YAxisLabel:    YAxisLabel,
		Title:         d.Title,
		Subtitle:      Subtitle,
		Basename:      d.Basename,
		OutputDir:     outDir,
		Label:         d.Label,
	}
}

// All returns the three charted predictors in output order.
func All() []Dataset {
	return []Dataset{
		{
			Variable: "L_baa_aaa_spread",
			Title:    "Impact of Lagged Baa-Aaa Spread",
			Basename: "py_plot_L_baa_aaa_spread",
			Label:    coefplot.LabelDefault,
			Coef:     [4]float64{.2176301, .1949009, .2950031, .2677381},
			SE:       [4]float64{.0707064, .0765379, .0631350, .0500451},
		},
		{
			Variable: "L_implied_vol",
			Title:    "Impact of Lagged Implied Volatility",
			Basename: "py_plot_L_implied_vol",
			Label:    coefplot.LabelHighPrecision,
			Coef:     [4]float64{.0195332, .0172033, .0187183, .0190995},
			SE:       [4]float64{.0006594, .0009281, .0004731, .0004262},
		},
		{
			Variable: "L_neg_log_ret",
			Title:    "Impact of Lagged Negative Log Returns (Leverage)",
			Basename: "py_plot_L_neg_log_ret",
			Label:    coefplot.LabelStandard,
			Coef:     [4]float64{-3.685050, -2.922411, -1.460127, -2.568606},
			SE:       [4]float64{.7479351, .6534365, .6397796, .5771519},
		},
	}
}

// Select returns the datasets whose basenames are listed, in output order.
// An empty list selects everything. The second result holds unknown names.
func Select(basenames []string) ([]Dataset, []string) {
	all := All()
	if len(basenames) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(basenames))
	for _, b := range basenames {
		want[b] = true
	}
	var out []Dataset
	for _, d := range all {
		if want[d.Basename] {
			out = append(out, d)
			delete(want, d.Basename)
		}
	}
	var unknown []string
	for _, b := range basenames {
		if want[b] {
			unknown = append(unknown, b)
			delete(want, b)
		}
	}
	return out, unknown
}
