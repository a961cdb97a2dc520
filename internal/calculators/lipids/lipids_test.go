package lipids

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medcalc/internal/calculators/calctest"
)

func TestLDLFriedewald(t *testing.T) {
	t.Run("triglycerides above gate invalidate the estimate", func(t *testing.T) {
		res := calctest.Result(t, LDLFriedewald(), map[string]any{
			"total_chol_mg_dl": 200, "hdl_mg_dl": 50, "trig_mg_dl": 450,
		})
		assert.Equal(t, false, res["valid"])
		assert.Contains(t, res, "ldl_mg_dl")
		assert.Nil(t, res["ldl_mg_dl"])
		assert.Nil(t, res["ldl_mmol_l"])
	})

	t.Run("gate is inclusive of 400", func(t *testing.T) {
		res := calctest.Result(t, LDLFriedewald(), map[string]any{
			"total_chol_mg_dl": 250, "hdl_mg_dl": 40, "trig_mg_dl": 400,
		})
		assert.Equal(t, true, res["valid"])
		assert.InDelta(t, 130, calctest.Float(t, res, "ldl_mg_dl"), 1e-9)
		assert.Equal(t, "borderline_high", res["band"])
	})

	t.Run("converts to mmol/L", func(t *testing.T) {
		res := calctest.Result(t, LDLFriedewald(), map[string]any{
			"total_chol_mg_dl": 200, "hdl_mg_dl": 50, "trig_mg_dl": 150,
		})
		ldl := calctest.Float(t, res, "ldl_mg_dl")
		assert.InDelta(t, 120, ldl, 1e-9)
		assert.InDelta(t, 3.1032, calctest.Float(t, res, "ldl_mmol_l"), 1e-9)
		assert.Equal(t, "near_optimal", res["band"])
	})
}

func TestNonHDLCholesterol(t *testing.T) {
	res := calctest.Result(t, NonHDLCholesterol(), map[string]any{"total_chol_mg_dl": 240, "hdl_mg_dl": 40})
	assert.InDelta(t, 200, calctest.Float(t, res, "non_hdl_mg_dl"), 1e-9)
	assert.Equal(t, "high", res["band"])
}

func TestBandTablesCoverScoreDomain(t *testing.T) {
	require.NoError(t, ldlBands.Covers(0, 400, 1))
	require.NoError(t, nonHDLBands.Covers(0, 400, 1))
}
