package file

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/lib/storage/persistedlist"
)

// Chunk is the line written for every chunk.
type Chunk struct {
	Index   int          `json:"index"`
	Records []lib.Record `json:"records"`
}

// Destination appends each chunk to a JSON lines file.
type Destination struct {
	path  string
	list  *persistedlist.PersistedList[Chunk]
	index int
}

func NewDestination(cfg config.FileDestination) *Destination {
	return &Destination{
		path: cfg.Path,
		list: persistedlist.NewPersistedList[Chunk](cfg.Path),
	}
}

func (d *Destination) WriteChunk(_ context.Context, chunk []lib.Record) error {
	if err := d.list.Push(Chunk{Index: d.index, Records: chunk}); err != nil {
		return fmt.Errorf("failed to write chunk %d: %w", d.index, err)
	}
	d.index++
	return nil
}

func (d *Destination) OnComplete(_ context.Context) error {
	slog.Info("Finished writing chunks", slog.String("path", d.path), slog.Int("chunks", d.index))
	return nil
}
