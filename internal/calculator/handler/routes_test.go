package handler

import (
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medcalc/internal/calculator"
	"medcalc/internal/calculator/service"
	"medcalc/internal/calculators"
	"medcalc/pkg/testutil"
)

func newCatalogRouter(t *testing.T) chi.Router {
	t.Helper()
	engine, err := calculators.NewEngine()
	require.NoError(t, err)
	svc, err := service.New(engine)
	require.NoError(t, err)

	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	h.RegisterDispatch(r)
	return r
}

func TestCatalogOverHTTP(t *testing.T) {
	router := newCatalogRouter(t)

	testutil.Given(t, "a Friedewald request with triglycerides above the gate", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/calculators/ldl_friedewald/run", map[string]any{
			"inputs": map[string]any{"total_chol_mg_dl": 250, "hdl_mg_dl": 40, "trig_mg_dl": 450},
		})

		testutil.Then(t, "the call succeeds with a null LDL", func(t *testing.T) {
			rr := testutil.DoRequest(router, req)
			testutil.AssertStatusOK(t, rr)
			testutil.AssertJSONContains(t, rr, "valid", false)
			testutil.AssertJSONHasKey(t, rr, "ldl_mg_dl")
			testutil.AssertJSONContains(t, rr, "ldl_mg_dl", nil)
		})
	})

	testutil.Given(t, "a request missing a required input", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/run", map[string]any{
			"name":   "bmi",
			"inputs": map[string]any{"weight_kg": 70},
		})

		testutil.Then(t, "the response names the missing key", func(t *testing.T) {
			testutil.AssertInvalidInput(t, testutil.DoRequest(router, req), "height_cm")
		})
	})

	testutil.Given(t, "the catalog listing", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/calculators"))
		testutil.AssertStatusOK(t, rr)
		resp := testutil.UnmarshalResponse[CatalogResponse](t, rr)

		testutil.Then(t, "every registered calculator is listed", func(t *testing.T) {
			assert.Equal(t, len(resp.Calculators), resp.Count)
			assert.NotZero(t, resp.Count)
		})

		testutil.And(t, "identifiers are sorted", func(t *testing.T) {
			assert.True(t, slices.IsSortedFunc(resp.Calculators, func(a, b calculator.Summary) int {
				return strings.Compare(a.ID, b.ID)
			}))
		})
	})
}
