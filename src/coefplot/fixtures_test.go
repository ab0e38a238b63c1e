package coefplot

import "github.com/lrud/credit-market-volatility-research/src/estimate"

func rows(variable string, coef, se [4]float64) []estimate.Estimate {
	out := make([]estimate.Estimate, 0, 4)
	for i, p := range estimate.Positions {
		out = append(out, estimate.Estimate{
			Variable: variable,
			Model:    estimate.QuantileRegression,
			Position: p,
			Quantile: 0.25 * float64(i+1),
			Coef:     coef[i],
			SE:       se[i],
		})
	}
	return append(out, estimate.Estimate{
		Variable: variable,
		Model:    estimate.OLS,
		Position: estimate.Q50,
		Coef:     coef[3],
		SE:       se[3],
	})
}

var (
	spreadRows = rows("L_baa_aaa_spread",
		[4]float64{.2176301, .1949009, .2950031, .2677381},
		[4]float64{.0707064, .0765379, .0631350, .0500451})
	volRows = rows("L_implied_vol",
		[4]float64{.0195332, .0172033, .0187183, .0190995},
		[4]float64{.0006594, .0009281, .0004731, .0004262})
	// quantile regression only, with tick labels too wide for the default inset
	hugeRows = rows("huge",
		[4]float64{1e12, 2e12, 3e12, 2e12},
		[4]float64{1e10, 1e10, 1e10, 1e10})[:3]
	tinyRows = rows("tiny",
		[4]float64{1e-9, 1.1e-9, 1.2e-9, 1.1e-9},
		[4]float64{1e-11, 1e-11, 1e-11, 1e-11})[:3]
	negRetRows = rows("L_neg_log_ret",
		[4]float64{-3.685050, -2.922411, -1.460127, -2.568606},
		[4]float64{.7479351, .6534365, .6397796, .5771519})
)

func spreadRequest(dir string) Request {
	return Request{
		Records:       spreadRows,
		VariableLabel: "L_baa_aaa_spread",
		YAxisLabel:    "Coefficient Estimate",
		Title:         "Impact of Lagged Baa-Aaa Spread",
		Subtitle:      "QR (Shaded 95% CI) vs. OLS",
		Basename:      "py_plot_L_baa_aaa_spread",
		OutputDir:     dir,
		Label:         LabelDefault,
	}
}
