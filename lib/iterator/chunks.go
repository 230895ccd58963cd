package iterator

import (
	"fmt"

	"github.com/artie-labs/partitioner/lib/partition"
)

type chunkIterator[T any] struct {
	index  int
	chunks [][]T
}

// ForChunks returns an iterator that produces each of the given chunks in order.
func ForChunks[T any](chunks [][]T) Iterator[[]T] {
	return &chunkIterator[T]{chunks: chunks}
}

func (ci *chunkIterator[T]) HasNext() bool {
	return ci.index < len(ci.chunks)
}

func (ci *chunkIterator[T]) Next() ([]T, error) {
	if !ci.HasNext() {
		return nil, fmt.Errorf("iterator has finished")
	}
	result := ci.chunks[ci.index]
	ci.index++
	return result, nil
}

// Partitioned partitions items up front and returns an iterator over the resulting chunks.
func Partitioned[T any](items []T, size int) (Iterator[[]T], error) {
	chunks, err := partition.Partition(items, size)
	if err != nil {
		return nil, fmt.Errorf("failed to partition items: %w", err)
	}
	return ForChunks(chunks), nil
}
