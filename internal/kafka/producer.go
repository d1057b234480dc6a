package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/segmentio/kafka-go"
)

type Config struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration // default 2s
}

// Producer is a thin wrapper around segmentio/kafka-go Writer. It publishes
// dispatch events synchronously inside the request; callers treat failures
// as best-effort.
type Producer struct {
	w *kafka.Writer
}

func NewProducerFromConfig(c Config) *Producer {
	wt := c.WriteTimeout
	if wt <= 0 {
		wt = 2 * time.Second
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(c.Brokers...),
		Topic:        c.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: wt,
		RequiredAcks: kafka.RequireOne,
	}

	return &Producer{w: w}
}

// Publish keys events by phone so one recipient's history stays in order.
func (p *Producer) Publish(ctx context.Context, ev model.DispatchEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.Phone),
		Value: b,
	})
}

func (p *Producer) Close() error { return p.w.Close() }
