package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/sources"
)

const (
	connectBaseMs   = 500
	connectMaxMs    = 5_000
	connectAttempts = 3
)

type Source struct {
	cfg  config.PostgreSQL
	conn *pgx.Conn
}

func Load(ctx context.Context, cfg config.PostgreSQL) (*Source, error) {
	conn, err := lib.WithJitteredRetries(ctx, connectBaseMs, connectMaxMs, connectAttempts, func(_ int) (*pgx.Conn, error) {
		return pgx.Connect(ctx, cfg.ToDSN())
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	return &Source{
		cfg:  cfg,
		conn: conn,
	}, nil
}

func (s *Source) Close() error {
	return s.conn.Close(context.Background())
}

func (s *Source) Run(ctx context.Context, writer sources.RecordWriter) error {
	for _, tableCfg := range s.cfg.Tables {
		logger := slog.With(slog.String("schema", tableCfg.Schema), slog.String("table", tableCfg.Name))
		start := time.Now()

		records, err := s.readTable(ctx, *tableCfg)
		if err != nil {
			return fmt.Errorf("failed to read table %s.%s: %w", tableCfg.Schema, tableCfg.Name, err)
		}

		count, err := writer.Write(ctx, records)
		if err != nil {
			return fmt.Errorf("failed to write table %s.%s: %w", tableCfg.Schema, tableCfg.Name, err)
		}

		logger.Info("Finished reading table", slog.Int("records", count), slog.Duration("duration", time.Since(start)))
	}
	return nil
}

func buildSelectQuery(table config.PostgreSQLTable) string {
	query := fmt.Sprintf("SELECT * FROM %s", pgx.Identifier{table.Schema, table.Name}.Sanitize())
	if len(table.PrimaryKeys) > 0 {
		keys := make([]string, len(table.PrimaryKeys))
		for i, key := range table.PrimaryKeys {
			keys[i] = pgx.Identifier{key}.Sanitize()
		}
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(keys, ","))
	}

	if table.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", table.Limit)
	}
	return query
}

func (s *Source) readTable(ctx context.Context, table config.PostgreSQLTable) ([]lib.Record, error) {
	rows, err := s.conn.Query(ctx, buildSelectQuery(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []lib.Record
	fields := rows.FieldDescriptions()
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}

		row := make(map[string]any, len(fields))
		for i, field := range fields {
			row[field.Name] = convertValue(values[i])
		}
		records = append(records, lib.NewRecord(table.Name, lib.KeyFor(row, table.PrimaryKeys), row))
	}

	return records, rows.Err()
}

func convertValue(value any) any {
	switch castedValue := value.(type) {
	case [16]byte:
		// pgx returns UUID columns as raw bytes.
		return uuid.UUID(castedValue).String()
	default:
		return value
	}
}
