package writers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/destinations"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/lib/iterator"
	"github.com/artie-labs/partitioner/lib/mtr"
	"github.com/artie-labs/partitioner/lib/partition"
)

type partitionFunc func(records []lib.Record, size int) ([][]lib.Record, error)

func toSlices[C partition.Container[lib.Record]](fn func([]lib.Record, int) ([]C, error)) partitionFunc {
	return func(records []lib.Record, size int) ([][]lib.Record, error) {
		containers, err := fn(records, size)
		if err != nil {
			return nil, err
		}

		chunks := make([][]lib.Record, len(containers))
		for i, container := range containers {
			chunks[i] = container.Items()
		}
		return chunks, nil
	}
}

func newPartitionFunc(container config.Container) (partitionFunc, error) {
	switch container {
	case config.ContainerSlice:
		return partition.Partition[lib.Record], nil
	case config.ContainerList:
		return toSlices(partition.With[lib.Record, *partition.List[lib.Record]](partition.NewList[lib.Record])), nil
	default:
		return nil, fmt.Errorf("unsupported container: %q", container)
	}
}

type Writer struct {
	destination   destinations.Destination
	partitionFunc partitionFunc
	size          int
	statsD        mtr.Client
	logProgress   bool

	chunksWritten int
}

func New(destination destinations.Destination, cfg *config.Partition, statsD mtr.Client, logProgress bool) (*Writer, error) {
	fn, err := newPartitionFunc(cfg.GetContainer())
	if err != nil {
		return nil, err
	}

	return &Writer{
		destination:   destination,
		partitionFunc: fn,
		size:          cfg.GetSize(),
		statsD:        statsD,
		logProgress:   logProgress,
	}, nil
}

func (w *Writer) count(name string, value int64, tags map[string]string) {
	if w.statsD != nil {
		w.statsD.Count(name, value, tags)
	}
}

// Write partitions records and writes each chunk to the destination, returning the number of records written.
// When there are fewer records than the partition size, they are written as a single chunk.
func (w *Writer) Write(ctx context.Context, records []lib.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	chunks, err := w.partitionFunc(records, min(w.size, len(records)))
	if err != nil {
		return 0, fmt.Errorf("failed to partition records: %w", err)
	}

	start := time.Now()
	var count int
	iter := iterator.ForChunks(chunks)
	for iter.HasNext() {
		chunkStart := time.Now()
		chunk, err := iter.Next()
		if err != nil {
			return count, fmt.Errorf("failed to iterate over chunks: %w", err)
		}

		if err = w.destination.WriteChunk(ctx, chunk); err != nil {
			w.count("chunks.failed", 1, nil)
			return count, fmt.Errorf("failed to write chunk: %w", err)
		}

		count += len(chunk)
		w.chunksWritten++
		w.count("chunks.written", 1, nil)
		w.count("records.written", int64(len(chunk)), nil)
		if w.logProgress {
			slog.Info("Write progress",
				slog.Int("totalSize", count),
				slog.Duration("totalDuration", time.Since(start)),
				slog.Int("chunkSize", len(chunk)),
				slog.Duration("chunkDuration", time.Since(chunkStart)),
			)
		}
	}

	return count, nil
}

// OnComplete runs the destination's [destinations.Destination.OnComplete] if any chunk was written.
func (w *Writer) OnComplete(ctx context.Context) error {
	if w.chunksWritten == 0 {
		return nil
	}

	if err := w.destination.OnComplete(ctx); err != nil {
		return fmt.Errorf("failed running destination OnComplete: %w", err)
	}

	return nil
}
