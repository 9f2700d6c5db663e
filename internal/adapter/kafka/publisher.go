// Package kafka publishes hotspot alerts to a Kafka topic for downstream
// notification services (SMS gateways, dashboards).
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/sentinel-lews/risk-engine/internal/config"
	"github.com/sentinel-lews/risk-engine/internal/domain"
)

// Publisher produces hotspot alert messages to the alert topic.
// It implements pipeline.AlertSink.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured alert topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAlertTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishAlerts serializes and publishes a cycle's hotspot alerts in a single
// WriteMessages call.
func (p *Publisher) PublishAlerts(ctx context.Context, alerts []domain.HotspotAlert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(alerts))
	for i := range alerts {
		msg, err := serializeAlert(alerts[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeAlert marshals a HotspotAlert into a Kafka message keyed by cell
// index so repeated alerts for one cell land on one partition.
func serializeAlert(alert domain.HotspotAlert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize hotspot alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(alert.CellIndex)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk", Value: []byte(strconv.FormatFloat(alert.Risk, 'f', 4, 64))},
			{Key: "fos", Value: []byte(strconv.FormatFloat(alert.FoS, 'f', 4, 64))},
		},
	}, nil
}
