package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/bioscore-cli/internal/model"
	"github.com/sells-group/bioscore-cli/internal/profile"
)

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	r := newRouter(profile.NewMemory())

	rec := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestRouter_Evaluate(t *testing.T) {
	r := newRouter(profile.NewMemory())

	body := map[string]any{
		"scores": map[string]any{
			"asset_quality":       map[string]any{"raw_score": 4.0, "confidence": 0.9},
			"market_outlook":      map[string]any{"raw_score": 3.5, "confidence": 0.8},
			"capital_intensity":   map[string]any{"raw_score": 2.5, "confidence": 0.85},
			"strategic_fit":       map[string]any{"raw_score": 4.5, "confidence": 0.7},
			"financial_readiness": map[string]any{"raw_score": 3.0, "confidence": 0.95},
			"regulatory_risk":     map[string]any{"raw_score": 3.8, "confidence": 0.6},
		},
		"weights": map[string]float64{
			"assetQuality":       0.3,
			"marketOutlook":      0.2,
			"capitalIntensity":   0.1,
			"strategicFit":       0.2,
			"financialReadiness": 0.1,
			"regulatoryRisk":     0.1,
		},
	}

	rec := doJSON(t, r, http.MethodPost, "/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Weighted   model.WeightedScores   `json:"weighted"`
		Validation model.ValidationResult `json:"validation"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 3.73, resp.Weighted.Total, 1e-3)
	assert.True(t, resp.Validation.IsValid)
}

func TestRouter_EvaluateDefaultWeights(t *testing.T) {
	r := newRouter(profile.NewMemory())

	body := map[string]any{
		"scores": map[string]any{
			"asset_quality": map[string]any{"raw_score": 5.0, "confidence": 1.0},
		},
	}

	rec := doJSON(t, r, http.MethodPost, "/v1/evaluate", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Weighted model.WeightedScores `json:"weighted"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// Default weights: assetQuality carries 0.25 of a 5.0 raw score.
	assert.InDelta(t, 1.25, resp.Weighted.AssetQuality, 1e-3)
}

func TestRouter_EvaluateBadBody(t *testing.T) {
	r := newRouter(profile.NewMemory())

	req := httptest.NewRequest(http.MethodPost, "/v1/evaluate", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Impact(t *testing.T) {
	r := newRouter(profile.NewMemory())

	body := map[string]any{
		"scores": map[string]any{
			"asset_quality": map[string]any{"raw_score": 5.0, "confidence": 1.0},
		},
		"original": model.DefaultWeightConfig(),
		"new":      model.DefaultWeightConfig().WithWeight(model.PillarAssetQuality, 0.5),
	}

	rec := doJSON(t, r, http.MethodPost, "/v1/impact", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var impact model.WeightImpact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &impact))
	assert.Greater(t, impact.TotalScoreDifference, 0.0)
}

func TestRouter_ProfilesLifecycle(t *testing.T) {
	r := newRouter(profile.NewMemory())

	// Built-ins are listed out of the box.
	rec := doJSON(t, r, http.MethodGet, "/v1/profiles", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), profile.ProfileBalanced)

	// Save a custom profile.
	rec = doJSON(t, r, http.MethodPut, "/v1/profiles/oncology", model.DefaultWeightConfig())
	require.Equal(t, http.StatusOK, rec.Code)

	// Read it back.
	rec = doJSON(t, r, http.MethodGet, "/v1/profiles/oncology", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var w model.WeightConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &w))
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)

	// Delete it.
	rec = doJSON(t, r, http.MethodDelete, "/v1/profiles/oncology", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/v1/profiles/oncology", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_SaveInvalidProfile(t *testing.T) {
	r := newRouter(profile.NewMemory())

	invalid := model.DefaultWeightConfig().WithWeight(model.PillarMarketOutlook, -0.4)
	rec := doJSON(t, r, http.MethodPut, "/v1/profiles/bad", invalid)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestRouter_DeleteAbsentProfile(t *testing.T) {
	r := newRouter(profile.NewMemory())

	rec := doJSON(t, r, http.MethodDelete, "/v1/profiles/never-saved", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
