package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/sources"
)

type Source struct {
	cfg config.MySQL
	db  *sql.DB
}

func Load(cfg config.MySQL) (*Source, error) {
	db, err := sql.Open("mysql", cfg.ToDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	return &Source{
		cfg: cfg,
		db:  db,
	}, nil
}

func (s *Source) Close() error {
	return s.db.Close()
}

func (s *Source) Run(ctx context.Context, writer sources.RecordWriter) error {
	for _, tableCfg := range s.cfg.Tables {
		start := time.Now()
		records, err := s.readTable(ctx, *tableCfg)
		if err != nil {
			return fmt.Errorf("failed to read table %s: %w", tableCfg.Name, err)
		}

		count, err := writer.Write(ctx, records)
		if err != nil {
			return fmt.Errorf("failed to write table %s: %w", tableCfg.Name, err)
		}

		slog.Info("Finished reading table",
			slog.String("table", tableCfg.Name),
			slog.Int("records", count),
			slog.Duration("duration", time.Since(start)),
		)
	}
	return nil
}

func QuoteIdentifier(s string) string {
	return fmt.Sprintf("`%s`", strings.ReplaceAll(s, "`", "``"))
}

func buildSelectQuery(table config.MySQLTable) string {
	query := fmt.Sprintf("SELECT * FROM %s", QuoteIdentifier(table.Name))
	if len(table.PrimaryKeys) > 0 {
		keys := make([]string, len(table.PrimaryKeys))
		for i, key := range table.PrimaryKeys {
			keys[i] = QuoteIdentifier(key)
		}
		query += fmt.Sprintf(" ORDER BY %s", strings.Join(keys, ","))
	}

	if table.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", table.Limit)
	}
	return query
}

func (s *Source) readTable(ctx context.Context, table config.MySQLTable) ([]lib.Record, error) {
	rows, err := s.db.QueryContext(ctx, buildSelectQuery(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var records []lib.Record
	for rows.Next() {
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err = rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = convertValue(values[i])
		}
		records = append(records, lib.NewRecord(table.Name, lib.KeyFor(row, table.PrimaryKeys), row))
	}

	return records, rows.Err()
}

func convertValue(value any) any {
	switch castedValue := value.(type) {
	case []byte:
		// The driver returns text columns as bytes.
		return string(castedValue)
	default:
		return value
	}
}
