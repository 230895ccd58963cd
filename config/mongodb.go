package config

import (
	"fmt"

	"github.com/artie-labs/partitioner/lib/stringutil"
)

type MongoDB struct {
	// Host - a mongodb:// or mongodb+srv:// connection string.
	Host        string       `yaml:"host"`
	Username    string       `yaml:"username"`
	Password    string       `yaml:"password"`
	Database    string       `yaml:"database"`
	DisableTLS  bool         `yaml:"disableTLS"`
	Collections []Collection `yaml:"collections"`
}

type Collection struct {
	Name string `yaml:"name"`
	// Limit - zero means every document is read.
	Limit int64 `yaml:"limit"`
}

func (m *MongoDB) Validate() error {
	if m == nil {
		return fmt.Errorf("mongodb config is nil")
	}

	if stringutil.Empty(m.Host, m.Database, m.Username, m.Password) {
		return fmt.Errorf("one of the mongodb settings is empty: host, username, password, database")
	}

	if len(m.Collections) == 0 {
		return fmt.Errorf("no collections passed in")
	}

	for _, collection := range m.Collections {
		if collection.Name == "" {
			return fmt.Errorf("collection name must be passed in")
		}
	}

	return nil
}
