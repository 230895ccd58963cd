package kafkalib

import (
	"context"
	"fmt"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
)

type fakeWriter struct {
	calls   [][]kafka.Message
	errs    []error
	closed  int
	reloads int
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.calls = append(f.calls, msgs)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return err
	}
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed++
	return nil
}

func newTestBatchWriter(fake *fakeWriter, publishSize int) *BatchWriter {
	return &BatchWriter{
		writer: fake,
		newWriter: func(_ context.Context, _ config.Kafka) (messageWriter, error) {
			fake.reloads++
			return fake, nil
		},
		cfg: config.Kafka{TopicPrefix: "prefix", PublishSize: publishSize},
	}
}

func buildRecords(n int) []lib.Record {
	records := make([]lib.Record, n)
	for i := range records {
		records[i] = lib.NewRecord("table", map[string]any{"id": i}, map[string]any{"id": i})
	}
	return records
}

func TestBatchWriter_WriteChunk(t *testing.T) {
	{
		// No records
		fake := &fakeWriter{}
		assert.NoError(t, newTestBatchWriter(fake, 2).WriteChunk(context.Background(), nil))
		assert.Empty(t, fake.calls)
	}
	{
		// Fewer records than the publish size
		fake := &fakeWriter{}
		assert.NoError(t, newTestBatchWriter(fake, 10).WriteChunk(context.Background(), buildRecords(3)))
		assert.Len(t, fake.calls, 1)
		assert.Len(t, fake.calls[0], 3)
	}
	{
		// Split into publish size chunks
		fake := &fakeWriter{}
		assert.NoError(t, newTestBatchWriter(fake, 2).WriteChunk(context.Background(), buildRecords(5)))
		assert.Len(t, fake.calls, 3)
		assert.Len(t, fake.calls[0], 2)
		assert.Len(t, fake.calls[1], 2)
		assert.Len(t, fake.calls[2], 1)
		assert.Equal(t, `{"id":4}`, string(fake.calls[2][0].Value))
		assert.Equal(t, "prefix.table", fake.calls[2][0].Topic)
	}
	{
		// Message too large is skipped
		fake := &fakeWriter{errs: []error{kafka.MessageSizeTooLarge}}
		assert.NoError(t, newTestBatchWriter(fake, 2).WriteChunk(context.Background(), buildRecords(4)))
		assert.Len(t, fake.calls, 2)
	}
	{
		// Message rejected client side for exceeding BatchBytes is skipped
		tooLarge := kafka.MessageTooLargeError{Message: kafka.Message{Value: []byte(`{"id":0}`)}}
		fake := &fakeWriter{errs: []error{tooLarge}}
		assert.NoError(t, newTestBatchWriter(fake, 2).WriteChunk(context.Background(), buildRecords(2)))
		assert.Len(t, fake.calls, 1)
		assert.Equal(t, 0, fake.reloads)
	}
	{
		// Cancelled context stops retrying
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fake := &fakeWriter{errs: []error{fmt.Errorf("connection refused")}}
		err := newTestBatchWriter(fake, 2).WriteChunk(ctx, buildRecords(2))
		assert.ErrorIs(t, err, context.Canceled)
		assert.ErrorContains(t, err, "stopped publishing after 1 attempts")
		assert.ErrorContains(t, err, "connection refused")
		assert.Len(t, fake.calls, 1)
	}
	{
		// Authorization failure reloads the writer and retries
		fake := &fakeWriter{errs: []error{kafka.TopicAuthorizationFailed}}
		assert.NoError(t, newTestBatchWriter(fake, 2).WriteChunk(context.Background(), buildRecords(2)))
		assert.Len(t, fake.calls, 2)
		assert.Equal(t, 1, fake.closed)
		assert.Equal(t, 1, fake.reloads)
	}
	{
		// Persistent failure
		errs := make([]error, maxAttempts)
		for i := range errs {
			errs[i] = kafka.TopicAuthorizationFailed
		}
		fake := &fakeWriter{errs: errs}
		err := newTestBatchWriter(fake, 2).WriteChunk(context.Background(), buildRecords(2))
		assert.ErrorContains(t, err, "failed to write message")
		assert.ErrorIs(t, err, kafka.TopicAuthorizationFailed)
		assert.Len(t, fake.calls, maxAttempts)
	}
	{
		// Payload cannot be marshalled
		fake := &fakeWriter{}
		records := []lib.Record{lib.NewRecord("table", nil, map[string]any{"fn": func() {}})}
		assert.ErrorContains(t, newTestBatchWriter(fake, 2).WriteChunk(context.Background(), records), "failed to build kafka messages")
		assert.Empty(t, fake.calls)
	}
}

func TestBatchWriter_Close(t *testing.T) {
	fake := &fakeWriter{}
	assert.NoError(t, newTestBatchWriter(fake, 2).Close())
	assert.Equal(t, 1, fake.closed)
}
