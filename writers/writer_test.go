package writers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
)

type mockDestination struct {
	chunks     [][]lib.Record
	completed  int
	emitError  bool
	failOnDone bool
}

func (m *mockDestination) WriteChunk(_ context.Context, chunk []lib.Record) error {
	if m.emitError {
		return fmt.Errorf("test write-chunk error")
	}
	m.chunks = append(m.chunks, chunk)
	return nil
}

func (m *mockDestination) OnComplete(_ context.Context) error {
	if m.failOnDone {
		return fmt.Errorf("test on-complete error")
	}
	m.completed++
	return nil
}

type mockStats struct {
	counts map[string]int64
}

func (m *mockStats) Timing(string, time.Duration, map[string]string) {}

func (m *mockStats) Incr(string, map[string]string) {}

func (m *mockStats) Gauge(string, float64, map[string]string) {}

func (m *mockStats) Flush() {}

func (m *mockStats) Count(name string, value int64, _ map[string]string) {
	if m.counts == nil {
		m.counts = make(map[string]int64)
	}
	m.counts[name] += value
}

func buildRecords(n int) []lib.Record {
	records := make([]lib.Record, n)
	for i := range records {
		records[i] = lib.NewRecord("table", map[string]any{"id": i}, map[string]any{"id": i})
	}
	return records
}

func ids(chunk []lib.Record) []any {
	var result []any
	for _, record := range chunk {
		result = append(result, record.Payload()["id"])
	}
	return result
}

func TestNew(t *testing.T) {
	{
		// Defaults
		writer, err := New(&mockDestination{}, nil, nil, false)
		assert.NoError(t, err)
		assert.Equal(t, 5_000, writer.size)
	}
	{
		// Unsupported container
		_, err := New(&mockDestination{}, &config.Partition{Container: "deque"}, nil, false)
		assert.ErrorContains(t, err, `unsupported container: "deque"`)
	}
}

func TestWriter_Write(t *testing.T) {
	for _, container := range []config.Container{config.ContainerSlice, config.ContainerList} {
		{
			// No records
			destination := &mockDestination{}
			writer, err := New(destination, &config.Partition{Size: 2, Container: container}, nil, false)
			assert.NoError(t, err)
			count, err := writer.Write(context.Background(), nil)
			assert.NoError(t, err)
			assert.Equal(t, 0, count)
			assert.Empty(t, destination.chunks)
			assert.NoError(t, writer.OnComplete(context.Background()))
			assert.Equal(t, 0, destination.completed)
		}
		{
			// Fewer records than the partition size
			destination := &mockDestination{}
			writer, err := New(destination, &config.Partition{Size: 10, Container: container}, nil, false)
			assert.NoError(t, err)
			count, err := writer.Write(context.Background(), buildRecords(3))
			assert.NoError(t, err)
			assert.Equal(t, 3, count)
			assert.Len(t, destination.chunks, 1)
			assert.Equal(t, []any{0, 1, 2}, ids(destination.chunks[0]))
		}
		{
			// Several chunks
			destination := &mockDestination{}
			writer, err := New(destination, &config.Partition{Size: 3, Container: container}, nil, true)
			assert.NoError(t, err)
			count, err := writer.Write(context.Background(), buildRecords(8))
			assert.NoError(t, err)
			assert.Equal(t, 8, count)
			assert.Len(t, destination.chunks, 3)
			assert.Equal(t, []any{0, 1, 2}, ids(destination.chunks[0]))
			assert.Equal(t, []any{3, 4, 5}, ids(destination.chunks[1]))
			assert.Equal(t, []any{6, 7}, ids(destination.chunks[2]))

			assert.NoError(t, writer.OnComplete(context.Background()))
			assert.Equal(t, 1, destination.completed)
		}
	}
}

func TestWriter_Write_Errors(t *testing.T) {
	{
		// Destination error
		destination := &mockDestination{emitError: true}
		stats := &mockStats{}
		writer, err := New(destination, &config.Partition{Size: 2}, stats, false)
		assert.NoError(t, err)
		_, err = writer.Write(context.Background(), buildRecords(4))
		assert.ErrorContains(t, err, "failed to write chunk: test write-chunk error")
		assert.Equal(t, int64(1), stats.counts["chunks.failed"])
		assert.NoError(t, writer.OnComplete(context.Background()))
		assert.Equal(t, 0, destination.completed)
	}
	{
		// OnComplete error
		destination := &mockDestination{failOnDone: true}
		writer, err := New(destination, &config.Partition{Size: 2}, nil, false)
		assert.NoError(t, err)
		_, err = writer.Write(context.Background(), buildRecords(1))
		assert.NoError(t, err)
		assert.ErrorContains(t, writer.OnComplete(context.Background()), "failed running destination OnComplete: test on-complete error")
	}
}

func TestWriter_Metrics(t *testing.T) {
	stats := &mockStats{}
	writer, err := New(&mockDestination{}, &config.Partition{Size: 2}, stats, false)
	assert.NoError(t, err)

	_, err = writer.Write(context.Background(), buildRecords(5))
	assert.NoError(t, err)
	_, err = writer.Write(context.Background(), buildRecords(2))
	assert.NoError(t, err)
	assert.Equal(t, int64(4), stats.counts["chunks.written"])
	assert.Equal(t, int64(7), stats.counts["records.written"])
}
