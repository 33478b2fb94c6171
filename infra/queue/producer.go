package queue

import (
	"context"
	"crypto/tls"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

type Producer struct {
	writer *kafka.Writer
	log    zerolog.Logger
}

// NewProducer builds a synchronous writer. SASL/TLS is enabled only
// when a username is configured, so a local broker works out of the
// box.
func NewProducer(broker, topic, username, password string, log zerolog.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: 10 * time.Second,
	}

	if username != "" {
		writer.Transport = &kafka.Transport{
			SASL: plain.Mechanism{
				Username: username,
				Password: password,
			},
			TLS: &tls.Config{},
		}
	}

	return &Producer{writer: writer, log: log}
}

func (p *Producer) PublishMessage(key, value []byte) error {
	// a missing broker must never fail the write that emitted the event
	if p == nil || p.writer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
		Time:  time.Now(),
	})
	if err != nil {
		p.log.Warn().Err(err).Str("key", string(key)).Msg("kafka publish failed")
	}
	return err
}
