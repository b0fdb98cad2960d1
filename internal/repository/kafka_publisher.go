package repository

import (
	"context"
	"fmt"
	"time"

	"StockCast/internal/domain/models"
	"StockCast/pkg/kafka"
	"StockCast/pkg/logger"
)

// forecastEvent is the wire shape of a completed-run event. The full eval
// arrays stay out of the event; consumers wanting them call the API.
type forecastEvent struct {
	Symbol     string                 `json:"symbol"`
	EmittedAt  time.Time              `json:"emitted_at"`
	RMSE       float64                `json:"rmse"`
	CacheHit   bool                   `json:"cache_hit"`
	Forecast   *models.ForecastResult `json:"forecast,omitempty"`
	WarningCnt int                    `json:"warning_count"`
}

// KafkaPublisher emits run-completed events keyed by symbol.
type KafkaPublisher struct {
	producer *kafka.Producer
	topic    string
	log      *logger.Logger
}

// NewKafkaPublisher creates a publisher for the given topic.
func NewKafkaPublisher(producer *kafka.Producer, topic string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log.With(logger.String("component", "events")),
	}
}

// PublishResult emits one event for a completed run.
func (p *KafkaPublisher) PublishResult(ctx context.Context, res *models.PipelineResult) error {
	event := forecastEvent{
		Symbol:     res.Symbol,
		EmittedAt:  time.Now().UTC(),
		RMSE:       res.RMSE,
		CacheHit:   res.CacheHit,
		Forecast:   res.Forecast,
		WarningCnt: len(res.Warnings),
	}

	if err := p.producer.Publish(ctx, p.topic, []byte(res.Symbol), event); err != nil {
		return fmt.Errorf("publish result %s: %w", res.Symbol, err)
	}

	p.log.Debug("result published", logger.String("symbol", res.Symbol))
	return nil
}

// Close closes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
