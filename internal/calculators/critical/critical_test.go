package critical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medcalc/internal/calculators/calctest"
)

func TestQSOFA(t *testing.T) {
	res := calctest.Result(t, QSOFA(), map[string]any{"respiratory_rate": 22, "sbp": 100, "altered_mentation": false})
	assert.Equal(t, 2.0, calctest.Float(t, res, "score"))
	assert.Equal(t, "high_risk", res["band"])

	res = calctest.Result(t, QSOFA(), map[string]any{"respiratory_rate": 16, "sbp": 120, "altered_mentation": true})
	assert.Equal(t, "low_risk", res["band"])
}

func TestSIRS(t *testing.T) {
	t.Run("fever and tachycardia", func(t *testing.T) {
		res := calctest.Result(t, SIRS(), map[string]any{
			"temp_c": 38.5, "heart_rate": 110, "respiratory_rate": 16, "wbc_10e9_l": 8,
		})
		assert.Equal(t, 2.0, calctest.Float(t, res, "criteria_met"))
		assert.Equal(t, true, res["sirs_positive"])
	})

	t.Run("optional criteria count when supplied", func(t *testing.T) {
		res := calctest.Result(t, SIRS(), map[string]any{
			"temp_c": 37, "heart_rate": 80, "respiratory_rate": 16, "wbc_10e9_l": 8,
			"paco2_mmhg": 30, "bands_pct": 12,
		})
		assert.Equal(t, 2.0, calctest.Float(t, res, "criteria_met"))
	})
}

func TestCURB65(t *testing.T) {
	res := calctest.Result(t, CURB65(), map[string]any{
		"confusion": true, "bun_mg_dl": 25, "respiratory_rate": 18, "sbp": 120, "dbp": 80, "age": 70,
	})
	assert.Equal(t, 3.0, calctest.Float(t, res, "score"))
	assert.Equal(t, "high", res["band"])
	assert.Equal(t, 14.0, calctest.Float(t, res, "mortality_30d_pct"))
}

func TestGlasgowComaScale(t *testing.T) {
	res := calctest.Result(t, GlasgowComaScale(), map[string]any{"eye": 4, "verbal": 5, "motor": 6})
	assert.Equal(t, 15.0, calctest.Float(t, res, "score"))
	assert.Equal(t, "mild", res["band"])

	res = calctest.Result(t, GlasgowComaScale(), map[string]any{"eye": 2, "verbal": 3, "motor": 4})
	assert.Equal(t, "moderate", res["band"])

	env := calctest.Run(t, GlasgowComaScale(), map[string]any{"eye": 5, "verbal": 2.5, "motor": 6})
	assert.Equal(t, []string{"eye", "verbal"}, env.Missing)
}

func TestPFRatio(t *testing.T) {
	cases := map[float64]string{90: "normal", 60: "mild", 40: "moderate", 20: "severe"}
	for pao2, want := range cases {
		res := calctest.Result(t, PFRatio(), map[string]any{"pao2_mmhg": pao2, "fio2": 0.25})
		assert.Equal(t, want, res["band"], "pao2=%v", pao2)
	}

	env := calctest.Run(t, PFRatio(), map[string]any{"pao2_mmhg": 80, "fio2": 21})
	assert.Equal(t, []string{"fio2"}, env.Missing)
}

func TestAAGradient(t *testing.T) {
	res := calctest.Result(t, AAGradient(), map[string]any{"fio2": 0.21, "paco2_mmhg": 40, "pao2_mmhg": 90})
	assert.InDelta(t, 9.73, calctest.Float(t, res, "aa_gradient"), 1e-6)
	assert.Nil(t, res["expected_gradient"])

	res = calctest.Result(t, AAGradient(), map[string]any{"fio2": 0.21, "paco2_mmhg": 40, "pao2_mmhg": 60, "age": 40})
	assert.InDelta(t, 14, calctest.Float(t, res, "expected_gradient"), 1e-9)
	assert.Equal(t, true, res["elevated"])
}

func TestFluids(t *testing.T) {
	res := calctest.Result(t, ParklandFormula(), map[string]any{"weight_kg": 80, "tbsa_pct": 25})
	assert.InDelta(t, 8000, calctest.Float(t, res, "total_ml_24h"), 1e-9)
	assert.InDelta(t, 500, calctest.Float(t, res, "first_8h_rate_ml_h"), 1e-9)
	assert.InDelta(t, 250, calctest.Float(t, res, "next_16h_rate_ml_h"), 1e-9)

	for w, want := range map[float64]float64{8: 32, 15: 50, 70: 110} {
		res := calctest.Result(t, MaintenanceFluids(), map[string]any{"weight_kg": w})
		assert.InDelta(t, want, calctest.Float(t, res, "rate_ml_h"), 1e-9, "weight=%v", w)
	}
}

func TestBandTablesCoverScoreDomain(t *testing.T) {
	require.NoError(t, qsofaBands.Covers(0, 3, 1))
	require.NoError(t, curb65Bands.Covers(0, 5, 1))
	require.NoError(t, gcsBands.Covers(3, 15, 1))
	require.NoError(t, berlinBands.Covers(0, 700, 1))
}
