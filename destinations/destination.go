package destinations

import (
	"context"

	"github.com/artie-labs/partitioner/lib"
)

type Destination interface {
	WriteChunk(ctx context.Context, chunk []lib.Record) error
	OnComplete(ctx context.Context) error
}
