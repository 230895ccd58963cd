package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/artie-labs/partitioner/constants"
)

type KafkaCompression string

const (
	KafkaCompressionNone   KafkaCompression = "none"
	KafkaCompressionGzip   KafkaCompression = "gzip"
	KafkaCompressionSnappy KafkaCompression = "snappy"
	KafkaCompressionLz4    KafkaCompression = "lz4"
	KafkaCompressionZstd   KafkaCompression = "zstd"
)

type Kafka struct {
	BootstrapServers string `yaml:"bootstrapServers"`
	TopicPrefix      string `yaml:"topicPrefix"`
	AwsEnabled       bool   `yaml:"awsEnabled"`
	// PublishSize - how many messages are sent per WriteMessages call, defaults to [constants.DefaultPublishSize].
	PublishSize    int    `yaml:"publishSize,omitempty"`
	MaxRequestSize uint64 `yaml:"maxRequestSize,omitempty"`
	// Compression - defaults to gzip.
	Compression         KafkaCompression `yaml:"compression,omitempty"`
	WriteTimeoutSeconds int              `yaml:"writeTimeoutSeconds,omitempty"`
}

func (k *Kafka) BootstrapAddresses() []string {
	return strings.Split(k.BootstrapServers, ",")
}

func (k *Kafka) GetPublishSize() int {
	if k.PublishSize == 0 {
		return constants.DefaultPublishSize
	}
	return k.PublishSize
}

func (k *Kafka) GetCompression() KafkaCompression {
	if k.Compression == "" {
		return KafkaCompressionGzip
	}
	return k.Compression
}

func (k *Kafka) GetWriteTimeout() time.Duration {
	if k.WriteTimeoutSeconds == 0 {
		return constants.DefaultKafkaWriteTimeout
	}
	return time.Duration(k.WriteTimeoutSeconds) * time.Second
}

func (k *Kafka) Validate() error {
	if k == nil {
		return fmt.Errorf("kafka config is nil")
	}

	if k.BootstrapServers == "" {
		return fmt.Errorf("bootstrap servers not passed in")
	}

	if k.TopicPrefix == "" {
		return fmt.Errorf("topic prefix not passed in")
	}

	if k.PublishSize < 0 {
		return fmt.Errorf("publish size must be greater than 0, got: %d", k.PublishSize)
	}

	if k.WriteTimeoutSeconds < 0 {
		return fmt.Errorf("write timeout must be greater than 0, got: %d", k.WriteTimeoutSeconds)
	}

	switch k.GetCompression() {
	case KafkaCompressionNone, KafkaCompressionGzip, KafkaCompressionSnappy, KafkaCompressionLz4, KafkaCompressionZstd:
	default:
		return fmt.Errorf("invalid compression: '%s'", k.Compression)
	}

	return nil
}
