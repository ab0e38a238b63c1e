package estimate

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func spreadRows() []Estimate {
	return []Estimate{
		{Variable: "L_baa_aaa_spread", Model: QuantileRegression, Position: Q25, Quantile: 0.25, Coef: 0.2176301, SE: 0.0707064},
		{Variable: "L_baa_aaa_spread", Model: QuantileRegression, Position: Q50, Quantile: 0.50, Coef: 0.1949009, SE: 0.0765379},
		{Variable: "L_baa_aaa_spread", Model: QuantileRegression, Position: Q75, Quantile: 0.75, Coef: 0.2950031, SE: 0.0631350},
		{Variable: "L_baa_aaa_spread", Model: OLS, Position: Q50, Coef: 0.2677381, SE: 0.0500451},
	}
}

func TestCIContainsCoef(t *testing.T) {
	for _, e := range []Estimate{
		{Coef: 0.2176301, SE: 0.0707064},
		{Coef: -3.685050, SE: 0.7479351},
		{Coef: 0.0195332, SE: 0.0006594},
		{Coef: 1, SE: 0},
	} {
		low, high := e.CI()
		require.LessOrEqual(t, low, e.Coef)
		require.LessOrEqual(t, e.Coef, high)
		require.InDelta(t, e.Coef-low, high-e.Coef, 1e-12)
	}
}

func TestOLSIntervalForSpread(t *testing.T) {
	p, err := Split(spreadRows())
	require.NoError(t, err)
	require.True(t, p.HasOLS())
	require.InDelta(t, 0.16965, p.OLS.Low, 1e-4)
	require.InDelta(t, 0.36583, p.OLS.High, 1e-4)
}

func TestSplitOrdersQRByPosition(t *testing.T) {
	rows := spreadRows()
	rows[0], rows[2] = rows[2], rows[0]
	p, err := Split(rows)
	require.NoError(t, err)

	var got []Position
	for _, iv := range p.QR {
		got = append(got, iv.Position)
	}
	if diff := cmp.Diff(Positions, got); diff != "" {
		t.Fatalf("QR positions mismatch (-want +got):\n%s", diff)
	}
}

func TestSplitWithoutOLS(t *testing.T) {
	p, err := Split(spreadRows()[:3])
	require.NoError(t, err)
	require.False(t, p.HasOLS())
	min, max := p.Bounds()
	require.InDelta(t, 0.1949009-CriticalValue*0.0765379, min, 1e-12)
	require.InDelta(t, 0.2950031+CriticalValue*0.0631350, max, 1e-12)
}

func TestBoundsIncludeOLS(t *testing.T) {
	rows := []Estimate{
		{Model: QuantileRegression, Position: Q25, Coef: 0},
		{Model: QuantileRegression, Position: Q50, Coef: 0},
		{Model: QuantileRegression, Position: Q75, Coef: 0},
		{Model: OLS, Position: Q50, Coef: 5, SE: 1},
	}
	p, err := Split(rows)
	require.NoError(t, err)
	min, max := p.Bounds()
	require.Equal(t, 0.0, min)
	require.InDelta(t, 5+CriticalValue, max, 1e-12)
}

func TestSplitErrors(t *testing.T) {
	base := spreadRows()
	with := func(mutate func([]Estimate) []Estimate) []Estimate {
		rows := append([]Estimate(nil), base...)
		return mutate(rows)
	}
	cases := map[string][]Estimate{
		"empty":          nil,
		"only OLS":       base[3:],
		"two QR rows":    with(func(r []Estimate) []Estimate { return append(r[:1], r[2:]...) }),
		"duplicate Q50":  with(func(r []Estimate) []Estimate { r[0].Position = Q50; return r }),
		"two OLS rows":   with(func(r []Estimate) []Estimate { return append(r, r[3]) }),
		"OLS off center": with(func(r []Estimate) []Estimate { r[3].Position = Q75; return r }),
		"position zero":  with(func(r []Estimate) []Estimate { r[1].Position = 0; return r }),
		"unknown model":  with(func(r []Estimate) []Estimate { r[1].Model = 7; return r }),
		"NaN coef":       with(func(r []Estimate) []Estimate { r[2].Coef = math.NaN(); return r }),
		"negative se":    with(func(r []Estimate) []Estimate { r[2].SE = -0.1; return r }),
		"infinite se":    with(func(r []Estimate) []Estimate { r[3].SE = math.Inf(1); return r }),
	}
	for name, rows := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Split(rows)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrData), "error %v does not wrap ErrData", err)
		})
	}
}

func TestLabels(t *testing.T) {
	require.Equal(t, "Q25", Q25.Label())
	require.Equal(t, "Q50/OLS", Q50.Label())
	require.Equal(t, "Q75", Q75.Label())
	require.Equal(t, "QReg", QuantileRegression.String())
	require.Equal(t, "OLS", OLS.String())
}
