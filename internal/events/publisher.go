package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/GuiTheDevv/shipping-management/internal/config"
	"github.com/GuiTheDevv/shipping-management/internal/ingestion/domain"
	"github.com/GuiTheDevv/shipping-management/pkg/telemetry/correlation"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	publishTimeout    = 5 * time.Second
	eventTypeHeader   = "event-type"
	reloadedEventType = "shipments.reloaded"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes shipment store events to Kafka as JSON.
type Publisher struct {
	writer Writer
	log    *zap.Logger
}

// NewPublisher returns nil when no brokers are configured.
func NewPublisher(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) *Publisher {
	if !cfg.Kafka.Enabled() {
		return nil
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: publishTimeout,
	}
	p := NewPublisherWithWriter(writer, log)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return p.Close()
			},
		})
	}
	return p
}

func NewPublisherWithWriter(w Writer, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{writer: w, log: log.Named("events.publisher")}
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// PublishReloaded announces a completed store reload keyed by run id.
func (p *Publisher) PublishReloaded(ctx context.Context, event domain.ReloadedEvent) error {
	if !p.Enabled() {
		return nil
	}
	if event.RunID == "" {
		return errors.New("reload event requires a run id")
	}
	return p.publish(ctx, reloadedEventType, event.RunID, event)
}

func (p *Publisher) publish(ctx context.Context, eventType, key string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}

	headers := []kafka.Header{{Key: eventTypeHeader, Value: []byte(eventType)}}
	for k, v := range correlation.Metadata(ctx) {
		headers = append(headers, kafka.Header{Key: k, Value: []byte(v)})
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := kafka.Message{
		Key:     []byte(key),
		Value:   body,
		Headers: headers,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	p.log.Debug("event published", zap.String("type", eventType), zap.String("key", key))
	return nil
}

func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
