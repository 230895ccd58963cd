package kafkalib

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"time"

	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/aws_msk_iam_v2"

	"github.com/artie-labs/partitioner/config"
)

const dialTimeout = 10 * time.Second

func compressionCodec(compression config.KafkaCompression) (kafka.Compression, error) {
	switch compression {
	case config.KafkaCompressionNone:
		return 0, nil
	case config.KafkaCompressionGzip:
		return kafka.Gzip, nil
	case config.KafkaCompressionSnappy:
		return kafka.Snappy, nil
	case config.KafkaCompressionLz4:
		return kafka.Lz4, nil
	case config.KafkaCompressionZstd:
		return kafka.Zstd, nil
	default:
		return 0, fmt.Errorf("unsupported compression: %q", compression)
	}
}

// newTransport returns an MSK IAM transport when AWS is enabled, nil otherwise.
func newTransport(ctx context.Context, cfg config.Kafka) (*kafka.Transport, error) {
	if !cfg.AwsEnabled {
		return nil, nil
	}

	saslCfg, err := awsCfg.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &kafka.Transport{
		DialTimeout: dialTimeout,
		SASL:        aws_msk_iam_v2.NewMechanism(saslCfg),
		TLS:         &tls.Config{},
	}, nil
}

func buildWriter(cfg config.Kafka, transport *kafka.Transport) (*kafka.Writer, error) {
	compression, err := compressionCodec(cfg.GetCompression())
	if err != nil {
		return nil, err
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.BootstrapAddresses()...),
		Compression:            compression,
		Balancer:               &kafka.LeastBytes{},
		WriteTimeout:           cfg.GetWriteTimeout(),
		AllowAutoTopicCreation: true,
	}

	// Messages above BatchBytes are rejected client side with a [kafka.MessageTooLargeError].
	if cfg.MaxRequestSize > 0 {
		writer.BatchBytes = int64(cfg.MaxRequestSize)
	}

	if transport != nil {
		writer.Transport = transport
	}

	return writer, nil
}

func NewWriter(ctx context.Context, cfg config.Kafka) (*kafka.Writer, error) {
	slog.Info("Setting kafka bootstrap URLs", slog.Any("urls", cfg.BootstrapAddresses()))
	transport, err := newTransport(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return buildWriter(cfg, transport)
}
