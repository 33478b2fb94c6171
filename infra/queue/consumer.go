package queue

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/ehealth-ke/facility-registry/internal/interfaces"
)

type KafkaConsumer struct {
	Reader  *kafka.Reader
	Handler interfaces.ConsumerHandler
	log     zerolog.Logger
}

func NewKafkaConsumer(broker, topic, groupID string, handler interfaces.ConsumerHandler, log zerolog.Logger) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 10e3, //10KB
		MaxBytes: 10e6, //10MB
	})

	return &KafkaConsumer{
		Reader:  reader,
		Handler: handler,
		log:     log,
	}
}

// Listen reads until the context is cancelled, handing each message to
// the handler.
func (kc *KafkaConsumer) Listen(ctx context.Context) {
	for {
		msg, err := kc.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			kc.log.Error().Err(err).Msg("error reading message")
			continue
		}

		if err := kc.Handler.HandleMessage(string(msg.Value)); err != nil {
			kc.log.Error().Err(err).Str("key", string(msg.Key)).Msg("error handling message")
		}
	}
}
