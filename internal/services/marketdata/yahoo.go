package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/internal/forecast"
	xhttp "StockCast/pkg/http"
	"StockCast/pkg/logger"
)

// chartResponse mirrors the Yahoo Finance v8 chart payload, close prices only.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error interface{} `json:"error"`
	} `json:"chart"`
}

// YahooClient fetches daily closes from the Yahoo Finance chart API.
type YahooClient struct {
	baseURL string
	client  *xhttp.Client
	log     *logger.Logger
}

// NewYahooClient creates a Yahoo market data client.
func NewYahooClient(baseURL string, timeout time.Duration, log *logger.Logger) *YahooClient {
	return &YahooClient{
		baseURL: baseURL,
		client: xhttp.NewClient(
			xhttp.WithTimeout(timeout),
			// the chart endpoint rejects requests without a browser-like agent
			xhttp.WithDefaultHeader("User-Agent", "Mozilla/5.0 (compatible; stockcast/1.0)"),
		),
		log: log.With(logger.String("component", "marketdata")),
	}
}

// FetchDaily returns daily closes for symbol over [start, end], oldest first.
// Rows with a null close (halted or partial days) are skipped.
func (y *YahooClient) FetchDaily(ctx context.Context, symbol string, start, end time.Time) (*models.PriceSeries, error) {
	// period2 is exclusive upstream, push it one day out to include end itself
	period1 := start.Unix()
	period2 := end.AddDate(0, 0, 1).Unix()

	var resp chartResponse
	err := y.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", y.baseURL, symbol),
		QueryParams: map[string][]string{
			"period1":  {strconv.FormatInt(period1, 10)},
			"period2":  {strconv.FormatInt(period2, 10)},
			"interval": {"1d"},
			"events":   {"history"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("marketdata: fetch %s: %w: %v", symbol, forecast.ErrDataUnavailable, err)
	}

	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("marketdata: %s: upstream error %v: %w", symbol, resp.Chart.Error, forecast.ErrDataUnavailable)
	}
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("marketdata: %s: empty chart result: %w", symbol, forecast.ErrDataUnavailable)
	}

	result := resp.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close
	if len(result.Timestamp) != len(closes) {
		return nil, fmt.Errorf("marketdata: %s: timestamp/close length mismatch: %w", symbol, forecast.ErrDataUnavailable)
	}

	points := make([]models.PricePoint, 0, len(closes))
	for i, ts := range result.Timestamp {
		if closes[i] == nil {
			continue
		}
		points = append(points, models.PricePoint{
			Date:  time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Close: *closes[i],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("marketdata: %s: no closes in range: %w", symbol, forecast.ErrDataUnavailable)
	}

	y.log.Debug("fetched daily closes",
		logger.String("symbol", symbol),
		logger.Int("points", len(points)),
	)

	return &models.PriceSeries{Symbol: symbol, Points: points}, nil
}
