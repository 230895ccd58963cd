package file

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/lib/storage/persistedlist"
	"github.com/artie-labs/partitioner/sources"
)

// Source reads a JSON lines file where every line is a single object.
type Source struct {
	cfg  config.FileSource
	list *persistedlist.PersistedList[map[string]any]
}

func Load(cfg config.FileSource) *Source {
	return &Source{
		cfg:  cfg,
		list: persistedlist.NewPersistedList[map[string]any](cfg.Path),
	}
}

func (s *Source) Close() error {
	return nil
}

func (s *Source) Run(ctx context.Context, writer sources.RecordWriter) error {
	rows, err := s.list.GetData()
	if err != nil {
		return fmt.Errorf("failed to read %q: %w", s.cfg.Path, err)
	}

	records := make([]lib.Record, len(rows))
	for i, row := range rows {
		records[i] = lib.NewRecord(s.cfg.GetName(), lib.KeyFor(row, s.cfg.KeyColumns), row)
	}

	count, err := writer.Write(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to write records from %q: %w", s.cfg.Path, err)
	}

	slog.Info("Finished reading file", slog.String("path", s.cfg.Path), slog.Int("records", count))
	return nil
}
