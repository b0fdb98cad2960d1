package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/forecast"
	"StockCast/internal/modelstore"
	"StockCast/internal/usecase"
	xlogger "StockCast/pkg/logger"
	"StockCast/pkg/util"

	"github.com/labstack/echo/v4"
)

type stubSource struct {
	series *models.PriceSeries
	err    error
}

func (s *stubSource) FetchDaily(context.Context, string, time.Time, time.Time) (*models.PriceSeries, error) {
	return s.series, s.err
}

type nopMetrics struct{}

func (nopMetrics) RecordTrainingDuration(string, float64) {}
func (nopMetrics) RecordModelCache(bool)                  {}
func (nopMetrics) RecordRMSE(string, float64)             {}
func (nopMetrics) RecordForecast(string)                  {}
func (nopMetrics) RecordError(string)                     {}

func testSeries(n int) *models.PriceSeries {
	points := make([]models.PricePoint, 0, n)
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		for !util.IsBusinessDay(d) {
			d = d.AddDate(0, 0, 1)
		}
		points = append(points, models.PricePoint{Date: d, Close: 100 + float64(i)})
		d = d.AddDate(0, 0, 1)
	}
	return &models.PriceSeries{Symbol: "AAPL", Points: points}
}

func testHandler(t *testing.T, source *stubSource) (*ForecastEchoHandler, *modelstore.FileStore, *echo.Echo) {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	store, err := modelstore.New(t.TempDir(), log)
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	pipeline := usecase.NewPipeline(source, store, nopMetrics{}, nil, nil,
		usecase.PipelineConfig{HiddenUnits: 8}, log)
	h := NewForecastEchoHandler(log, pipeline, store)
	e := echo.New()
	h.RegisterRoutes(e)
	return h, store, e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPredictEndpoint(t *testing.T) {
	_, _, e := testHandler(t, &stubSource{series: testSeries(60)})

	body := `{"symbol":"AAPL","start":"2024-01-01","end":"2024-06-30","lookback":10,"epochs":2,"batch_size":16,"horizon":3}`
	rec := doJSON(e, http.MethodPost, "/api/predict", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Status int                   `json:"status"`
		Data   models.PipelineResult `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.Symbol != "AAPL" {
		t.Fatalf("unexpected symbol %s", envelope.Data.Symbol)
	}
	if len(envelope.Data.Predicted) == 0 {
		t.Fatalf("no predictions returned")
	}
	if envelope.Data.Forecast == nil || len(envelope.Data.Forecast.Prices) != 3 {
		t.Fatalf("expected 3-step forecast, got %+v", envelope.Data.Forecast)
	}
}

func TestPredictValidation(t *testing.T) {
	_, _, e := testHandler(t, &stubSource{series: testSeries(60)})

	cases := []struct {
		name string
		body string
	}{
		{"missing symbol", `{"start":"2024-01-01","end":"2024-06-30"}`},
		{"bad start", `{"symbol":"AAPL","start":"01/01/2024","end":"2024-06-30"}`},
		{"end before start", `{"symbol":"AAPL","start":"2024-06-30","end":"2024-01-01"}`},
		{"lookback too small", `{"symbol":"AAPL","start":"2024-01-01","end":"2024-06-30","lookback":1}`},
	}
	for _, tc := range cases {
		rec := doJSON(e, http.MethodPost, "/api/predict", tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d, want 400: %s", tc.name, rec.Code, rec.Body.String())
		}
	}
}

func TestPredictDefaultsApplied(t *testing.T) {
	_, _, e := testHandler(t, &stubSource{series: testSeries(80)})

	// no lookback/epochs/batch_size: defaults 60/10/32 kick in, and 80
	// points satisfy lookback 60 + 10
	body := `{"symbol":"AAPL","start":"2024-01-01","end":"2024-06-30","epochs":1}`
	rec := doJSON(e, http.MethodPost, "/api/predict", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPredictNoData(t *testing.T) {
	_, _, e := testHandler(t, &stubSource{err: forecast.ErrDataUnavailable})

	body := `{"symbol":"NOPE","start":"2024-01-01","end":"2024-06-30","lookback":10,"epochs":1}`
	rec := doJSON(e, http.MethodPost, "/api/predict", body)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404: %s", rec.Code, rec.Body.String())
	}
}

func TestPredictInsufficientData(t *testing.T) {
	_, _, e := testHandler(t, &stubSource{series: testSeries(15)})

	body := `{"symbol":"AAPL","start":"2024-01-01","end":"2024-06-30","lookback":10,"epochs":1}`
	rec := doJSON(e, http.MethodPost, "/api/predict", body)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status %d, want 422: %s", rec.Code, rec.Body.String())
	}
}

func TestModelAdminEndpoints(t *testing.T) {
	_, store, e := testHandler(t, &stubSource{series: testSeries(60)})

	rec := doJSON(e, http.MethodGet, "/api/models", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status %d", rec.Code)
	}

	rec = doJSON(e, http.MethodDelete, "/api/models/AAPL", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("delete absent: status %d, want 404", rec.Code)
	}

	art := &forecast.Artifact{
		Symbol:   "AAPL",
		Lookback: 10,
		Net:      forecast.NewNetwork(8, rand.New(rand.NewSource(1))),
	}
	if _, err := store.Save(art); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec = doJSON(e, http.MethodDelete, "/api/models/AAPL", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete existing: status %d, want 204", rec.Code)
	}
	if store.Exists("AAPL") {
		t.Fatalf("model still present after delete")
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, _, e := testHandler(t, &stubSource{})
	rec := doJSON(e, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
