package coefplot

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelFormatting(t *testing.T) {
	cases := []struct {
		name     string
		basename string
		style    LabelStyle
		coef     float64
		want     string
		anchor   Anchor
		offset   float64
	}{
		{"default", "py_plot_L_baa_aaa_spread", LabelDefault, .2677381, "0.268", AnchorLeft, 0.15},
		{"high precision", "py_plot_L_implied_vol", LabelHighPrecision, .0190995, "0.0191", AnchorLeft, 0.15},
		{"standard", "py_plot_L_neg_log_ret", LabelStandard, -2.568606, "-2.57", AnchorRight, -0.15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.style.Format(tc.coef))
			require.Equal(t, tc.anchor, tc.style.Anchor())
			require.InDelta(t, tc.offset, tc.style.Offset(), 1e-12)

			byName := LabelStyleForBasename(tc.basename)
			require.Equal(t, tc.style, byName)
			require.Equal(t, tc.want, byName.Format(tc.coef))
		})
	}
}

func TestLabelStyleForUnknownBasename(t *testing.T) {
	require.Equal(t, LabelDefault, LabelStyleForBasename("anything_else"))
	require.Equal(t, LabelDefault, LabelStyleForBasename(""))
}
