package datasets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/lrud/credit-market-volatility-research/src/coefplot"
	"github.com/lrud/credit-market-volatility-research/src/estimate"
)

func TestAllDatasetsPartition(t *testing.T) {
	for _, d := range All() {
		t.Run(d.Variable, func(t *testing.T) {
			p, err := estimate.Split(d.Records())
			require.NoError(t, err)
			require.Len(t, p.QR, 3)
			require.True(t, p.HasOLS())
			for _, iv := range append(append([]estimate.Interval(nil), p.QR...), *p.OLS) {
				require.LessOrEqual(t, iv.Low, iv.Coef)
				require.LessOrEqual(t, iv.Coef, iv.High)
			}
		})
	}
}

func TestLabelStyleMatchesBasenameConvention(t *testing.T) {
	want := map[string]string{
		"py_plot_L_baa_aaa_spread": "0.268",
		"py_plot_L_implied_vol":    "0.0191",
		"py_plot_L_neg_log_ret":    "-2.57",
	}
	for _, d := range All() {
		require.Equal(t, coefplot.LabelStyleForBasename(d.Basename), d.Label, d.Basename)
		l, err := coefplot.Plan(d.Request(t.TempDir()))
		require.NoError(t, err)
		require.Equal(t, want[d.Basename], l.OLSLabel.Text)
	}
}

func TestRequestCarriesLabels(t *testing.T) {
	req := All()[0].Request("figures")
	require.Equal(t, "figures", req.OutputDir)
	require.Equal(t, "Impact of Lagged Baa-Aaa Spread", req.Title)
	require.Equal(t, "QR (Shaded 95% CI) vs. OLS", req.Subtitle)
	require.Equal(t, "Coefficient Estimate", req.YAxisLabel)
	require.Equal(t, "py_plot_L_baa_aaa_spread", req.Basename)
}

func TestSelect(t *testing.T) {
	got, unknown := Select([]string{"py_plot_L_neg_log_ret", "nope", "py_plot_L_baa_aaa_spread"})
	names := make([]string, 0, len(got))
	for _, d := range got {
		names = append(names, d.Basename)
	}
	if diff := cmp.Diff([]string{"py_plot_L_baa_aaa_spread", "py_plot_L_neg_log_ret"}, names); diff != "" {
		t.Fatalf("selection mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"nope"}, unknown)

	all, unknown := Select(nil)
	require.Len(t, all, 3)
	require.Empty(t, unknown)
}
