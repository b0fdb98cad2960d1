package models

// Requests for the forecasting HTTP endpoints. Defined in domain for consistency and reuse.

type PredictRequest struct {
	Symbol       string `json:"symbol" validate:"required,max=16"`
	Start        string `json:"start" validate:"required,datetime=2006-01-02"`
	End          string `json:"end" validate:"required,datetime=2006-01-02"`
	Lookback     int    `json:"lookback" default:"60" validate:"gte=2,lte=365"`
	Epochs       int    `json:"epochs" default:"10" validate:"gte=1,lte=200"`
	BatchSize    int    `json:"batch_size" default:"32" validate:"gte=1,lte=1024"`
	Horizon      int    `json:"horizon" default:"0" validate:"gte=0,lte=90"`
	ForceRetrain bool   `json:"force_retrain"`
}
