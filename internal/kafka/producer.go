package kafka

import (
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

type SaramaProducer struct {
	producer sarama.SyncProducer
	log      zerolog.Logger
}

func NewSaramaProducer(brokers []string, log zerolog.Logger) (*SaramaProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Timeout = 5 * time.Second
	prod, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}
	return newProducer(prod, log), nil
}

func newProducer(producer sarama.SyncProducer, log zerolog.Logger) *SaramaProducer {
	return &SaramaProducer{producer: producer, log: log}
}

func (p *SaramaProducer) Publish(topic string, key, message []byte) error {
	msg := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(message),
	}
	if len(key) > 0 {
		msg.Key = sarama.ByteEncoder(key)
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).Str("topic", topic).Msg("failed to send message")
		return err
	}
	p.log.Debug().
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("message stored")
	return nil
}

func (p *SaramaProducer) Close() error {
	return p.producer.Close()
}
