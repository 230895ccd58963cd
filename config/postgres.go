package config

import (
	"fmt"
	"math"

	"github.com/artie-labs/partitioner/lib/stringutil"
)

type PostgreSQL struct {
	Host       string             `yaml:"host"`
	Port       int                `yaml:"port"`
	Username   string             `yaml:"username"`
	Password   string             `yaml:"password"`
	Database   string             `yaml:"database"`
	Tables     []*PostgreSQLTable `yaml:"tables"`
	DisableSSL bool               `yaml:"disableSSL"`
}

type PostgreSQLTable struct {
	Name        string   `yaml:"name"`
	Schema      string   `yaml:"schema"`
	PrimaryKeys []string `yaml:"primaryKeys,omitempty"`
	// Limit - zero means every row is read.
	Limit uint `yaml:"limit,omitempty"`
}

func (p *PostgreSQL) ToDSN() string {
	sslMode := "require"
	if p.DisableSSL {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", p.Username, p.Password, p.Host, p.Port, p.Database, sslMode)
}

func (p *PostgreSQL) Validate() error {
	if p == nil {
		return fmt.Errorf("the PostgreSQL config is nil")
	}

	if stringutil.Empty(p.Host, p.Username, p.Password, p.Database) {
		return fmt.Errorf("one of the PostgreSQL settings is empty: host, username, password, database")
	}

	if p.Port <= 0 {
		return fmt.Errorf("port is not set or <= 0")
	} else if p.Port > math.MaxUint16 {
		return fmt.Errorf("port is > %d", math.MaxUint16)
	}

	if len(p.Tables) == 0 {
		return fmt.Errorf("no tables passed in")
	}

	for _, table := range p.Tables {
		if table.Name == "" {
			return fmt.Errorf("table name must be passed in")
		}

		if table.Schema == "" {
			return fmt.Errorf("schema must be passed in")
		}
	}

	return nil
}
