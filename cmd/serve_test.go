package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellswap/valuation-engine/internal/config"
	"github.com/wellswap/valuation-engine/internal/marketdata"
	"github.com/wellswap/valuation-engine/internal/model"
	"github.com/wellswap/valuation-engine/internal/ratings"
	"github.com/wellswap/valuation-engine/internal/store"
	"github.com/wellswap/valuation-engine/internal/valuation"
)

type staticResolver struct{}

func (staticResolver) Resolve(context.Context, string, string, string) marketdata.Resolution {
	return marketdata.Resolution{
		Snapshot: marketdata.FallbackSnapshot(),
		Source:   marketdata.SourceLive,
	}
}

func newTestEnv(t *testing.T, withStore bool) *appEnv {
	t.Helper()

	engine := valuation.NewEngine(config.ValuationConfig{
		DiscountRate:       0.05,
		RequestTimeoutSecs: 30,
		CallTimeoutSecs:    10,
		DefaultLocation:    "Hong Kong",
	}, staticResolver{}, ratings.NewTableProvider())

	env := &appEnv{engine: engine}
	if withStore {
		st, err := store.Open(context.Background(), config.StoreConfig{
			Driver:      "sqlite",
			DatabaseURL: filepath.Join(t.TempDir(), "serve.db"),
		})
		require.NoError(t, err)
		require.NoError(t, st.Migrate(context.Background()))
		t.Cleanup(func() { st.Close() })
		env.store = st
	}
	return env
}

func validRequestBody(t *testing.T) *bytes.Buffer {
	t.Helper()
	body, err := json.Marshal(model.ValuationRequest{Policy: model.PolicyFacts{
		Company:             "AIA",
		ProductType:         "Savings Plan",
		ContractPeriodYears: 10,
		PaidYears:           5,
		AnnualPremium:       3000,
		TotalPremium:        15000,
		SurrenderValue:      12000,
		Currency:            "USD",
	}})
	require.NoError(t, err)
	return bytes.NewBuffer(body)
}

func TestServe_Health(t *testing.T) {
	router := buildRouter(newTestEnv(t, false))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestServe_PostValuation(t *testing.T) {
	router := buildRouter(newTestEnv(t, false))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/valuations", validRequestBody(t)))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID     string                 `json:"id"`
		Result *model.ValuationResult `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Empty(t, resp.ID)
	assert.GreaterOrEqual(t, resp.Result.FinalValue, 6000.0)
	assert.True(t, resp.Result.RiskGrade.Valid())
}

func TestServe_PostValuation_InvalidBody(t *testing.T) {
	router := buildRouter(newTestEnv(t, false))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/valuations",
		bytes.NewBufferString("{not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServe_PostValuation_InvalidInput(t *testing.T) {
	router := buildRouter(newTestEnv(t, false))

	body, err := json.Marshal(model.ValuationRequest{Policy: model.PolicyFacts{
		ContractPeriodYears: -1,
	}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/valuations", bytes.NewBuffer(body)))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "contract_period_years")
}

func TestServe_PersistAndFetch(t *testing.T) {
	router := buildRouter(newTestEnv(t, true))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/valuations", validRequestBody(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations/"+resp.ID, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var record model.ValuationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, "AIA", record.Company)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations/nonexistent", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_ListValuations(t *testing.T) {
	router := buildRouter(newTestEnv(t, true))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/valuations", validRequestBody(t)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations?company=AIA", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var records []model.ValuationRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations?company=Prudential", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}

func TestServe_StoreEndpointsWithoutStore(t *testing.T) {
	router := buildRouter(newTestEnv(t, false))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations/some-id", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/valuations", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
