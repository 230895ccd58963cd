package sources

import (
	"context"

	"github.com/artie-labs/partitioner/lib"
)

// RecordWriter partitions and writes records, it is implemented by [writers.Writer].
type RecordWriter interface {
	Write(ctx context.Context, records []lib.Record) (int, error)
}

type Source interface {
	Close() error
	Run(ctx context.Context, writer RecordWriter) error
}
