package kafkalib

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/lib/iterator"
	"github.com/artie-labs/partitioner/lib/mtr"
)

const (
	baseJitterMs = 300
	maxJitterMs  = 5000
	maxAttempts  = 10
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type BatchWriter struct {
	writer    messageWriter
	newWriter func(ctx context.Context, cfg config.Kafka) (messageWriter, error)
	cfg       config.Kafka
	statsD    mtr.Client
}

func NewBatchWriter(ctx context.Context, cfg config.Kafka, statsD mtr.Client) (*BatchWriter, error) {
	newWriter := func(ctx context.Context, cfg config.Kafka) (messageWriter, error) {
		return NewWriter(ctx, cfg)
	}

	writer, err := newWriter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &BatchWriter{
		writer:    writer,
		newWriter: newWriter,
		cfg:       cfg,
		statsD:    statsD,
	}, nil
}

func (w *BatchWriter) reload(ctx context.Context) error {
	if err := w.writer.Close(); err != nil {
		return err
	}

	writer, err := w.newWriter(ctx, w.cfg)
	if err != nil {
		return err
	}

	w.writer = writer
	return nil
}

// WriteChunk publishes records to Kafka, split into chunks of at most the configured publish size.
func (w *BatchWriter) WriteChunk(ctx context.Context, records []lib.Record) error {
	if len(records) == 0 {
		return nil
	}

	msgs, err := buildKafkaMessages(w.cfg.TopicPrefix, records)
	if err != nil {
		return fmt.Errorf("failed to build kafka messages: %w", err)
	}

	iter, err := iterator.Partitioned(msgs, min(w.cfg.GetPublishSize(), len(msgs)))
	if err != nil {
		return err
	}

	for iter.HasNext() {
		chunk, err := iter.Next()
		if err != nil {
			return err
		}

		if err = w.publish(ctx, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (w *BatchWriter) OnComplete(_ context.Context) error {
	slog.Info("Finished publishing to kafka", slog.String("topicPrefix", w.cfg.TopicPrefix))
	return nil
}

func (w *BatchWriter) publish(ctx context.Context, chunk []kafka.Message) error {
	tags := map[string]string{"what": "error"}
	defer func() {
		if w.statsD != nil {
			w.statsD.Count("kafka.publish", int64(len(chunk)), tags)
		}
	}()

	var kafkaErr error
	for attempts := 0; attempts < maxAttempts; attempts++ {
		kafkaErr = w.writer.WriteMessages(ctx, chunk...)
		if kafkaErr == nil {
			tags["what"] = "success"
			return nil
		}

		if IsExceedMaxMessageBytesErr(kafkaErr) {
			slog.Info("Skipping this chunk since the batch exceeded the server")
			tags["what"] = "skipped"
			return nil
		}

		if IsRetryableErr(kafkaErr) {
			if reloadErr := w.reload(ctx); reloadErr != nil {
				slog.Warn("Failed to reload kafka writer", slog.Any("err", reloadErr))
			}
		} else {
			sleepDuration := lib.Jitter(baseJitterMs, maxJitterMs, attempts)
			slog.Info("Failed to publish to kafka",
				slog.Any("err", kafkaErr),
				slog.Int("attempts", attempts),
				slog.Duration("sleep", sleepDuration),
			)
			if err := lib.Sleep(ctx, sleepDuration); err != nil {
				return fmt.Errorf("stopped publishing after %d attempts: %w, last error: %w", attempts+1, err, kafkaErr)
			}
		}
	}

	return fmt.Errorf("failed to write message: %w", kafkaErr)
}

func (w *BatchWriter) Close() error {
	return w.writer.Close()
}
