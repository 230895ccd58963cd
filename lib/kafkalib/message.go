package kafkalib

import (
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/artie-labs/partitioner/lib"
)

func buildKafkaMessage(topicPrefix string, record lib.Record) (kafka.Message, error) {
	valueBytes, err := json.Marshal(record.Payload())
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	keyBytes, err := json.Marshal(record.Key())
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal key: %w", err)
	}

	return kafka.Message{
		Topic: fmt.Sprintf("%s.%s", topicPrefix, record.Source()),
		Key:   keyBytes,
		Value: valueBytes,
	}, nil
}

func buildKafkaMessages(topicPrefix string, records []lib.Record) ([]kafka.Message, error) {
	result := make([]kafka.Message, len(records))
	for i, record := range records {
		msg, err := buildKafkaMessage(topicPrefix, record)
		if err != nil {
			return nil, err
		}
		result[i] = msg
	}
	return result, nil
}
