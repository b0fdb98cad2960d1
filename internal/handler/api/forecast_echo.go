package api

import (
	"errors"
	"time"

	models "StockCast/internal/domain/models"
	"StockCast/internal/domain/repository"
	"StockCast/internal/forecast"
	"StockCast/internal/usecase"
	xhttp "StockCast/pkg/http"
	xlogger "StockCast/pkg/logger"
	"StockCast/pkg/util"

	"github.com/labstack/echo/v4"
)

// ForecastEchoHandler exposes the pipeline and model admin over HTTP.
type ForecastEchoHandler struct {
	logger   *xlogger.Logger
	pipeline *usecase.Pipeline
	store    repository.ModelStore
}

func NewForecastEchoHandler(logger *xlogger.Logger, pipeline *usecase.Pipeline, store repository.ModelStore) *ForecastEchoHandler {
	return &ForecastEchoHandler{logger: logger, pipeline: pipeline, store: store}
}

func (h *ForecastEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.POST("/predict", h.Predict)
	g.GET("/models", h.ListModels)
	g.DELETE("/models/:symbol", h.DeleteModel)
	g.GET("/health", h.Health)
}

func (h *ForecastEchoHandler) Predict(c echo.Context) error {
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	start, ok := util.ParseDate(req.Start)
	if !ok {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code: "ERR_DATETIME", Field: "start", Message: "start must be a YYYY-MM-DD date",
		}})
	}
	end, ok := util.ParseDate(req.End)
	if !ok {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code: "ERR_DATETIME", Field: "end", Message: "end must be a YYYY-MM-DD date",
		}})
	}
	if !end.After(start) {
		return xhttp.BadRequestResponse(c, []xhttp.ValidationError{{
			Code: "ERR_RANGE", Field: "end", Message: "end must be after start",
		}})
	}

	res, err := h.pipeline.Run(c.Request().Context(), usecase.RunParams{
		Symbol:       req.Symbol,
		Start:        start,
		End:          end,
		Lookback:     req.Lookback,
		Epochs:       req.Epochs,
		BatchSize:    req.BatchSize,
		Horizon:      req.Horizon,
		ForceRetrain: req.ForceRetrain,
	})
	if err != nil {
		h.logger.Error("predict pipeline error",
			xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, classify(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ForecastEchoHandler) ListModels(c echo.Context) error {
	infos, err := h.store.List()
	if err != nil {
		h.logger.Error("list models error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not list models").WithError(err))
	}
	return xhttp.ListResponse(c, infos, int64(len(infos)))
}

func (h *ForecastEchoHandler) DeleteModel(c echo.Context) error {
	symbol := c.Param("symbol")
	removed, err := h.store.Delete(symbol)
	if err != nil {
		h.logger.Error("delete model error", xlogger.String("symbol", symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("could not delete model").WithError(err))
	}
	if !removed {
		return xhttp.NotFoundResponse(c, []*xhttp.AppError{
			xhttp.NotFoundErrorf("no model for %s", symbol),
		})
	}
	return xhttp.NoContentResponse(c)
}

func (h *ForecastEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// classify maps pipeline sentinel errors onto HTTP statuses.
func classify(err error) error {
	switch {
	case errors.Is(err, forecast.ErrDataUnavailable):
		return xhttp.NotFoundErrorf("no price data available").WithError(err)
	case errors.Is(err, forecast.ErrInsufficientData):
		return xhttp.UnprocessableErrorf("not enough data for the requested lookback").WithError(err)
	case errors.Is(err, forecast.ErrDegenerateSeries):
		return xhttp.UnprocessableErrorf("series has no price variation").WithError(err)
	case errors.Is(err, forecast.ErrTraining):
		return xhttp.InternalError("model training failed").WithError(err)
	case errors.Is(err, forecast.ErrCacheIO):
		return xhttp.InternalError("model store failure").WithError(err)
	default:
		return xhttp.InternalError("pipeline failure").WithError(err)
	}
}
