package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/artie-labs/partitioner/constants"
)

type Source string

const (
	SourceFile       Source = "file"
	SourcePostgreSQL Source = "postgresql"
	SourceMySQL      Source = "mysql"
	SourceMongoDB    Source = "mongodb"
	SourceDynamo     Source = "dynamodb"
)

type Destination string

const (
	DestinationFile  Destination = "file"
	DestinationKafka Destination = "kafka"
	DestinationS3    Destination = "s3"
)

type Container string

const (
	ContainerSlice Container = "slice"
	ContainerList  Container = "list"
)

type Partition struct {
	Size int `yaml:"size"`
	// Container - which container type holds each chunk, defaults to slice.
	Container Container `yaml:"container"`
}

func (p *Partition) GetSize() int {
	if p == nil || p.Size == 0 {
		return constants.DefaultPartitionSize
	}
	return p.Size
}

func (p *Partition) GetContainer() Container {
	if p == nil || p.Container == "" {
		return ContainerSlice
	}
	return p.Container
}

func (p *Partition) Validate() error {
	if p == nil {
		return nil
	}

	if p.Size < 0 {
		return fmt.Errorf("partition size must be greater than 0, got: %d", p.Size)
	}

	switch p.GetContainer() {
	case ContainerSlice, ContainerList:
		return nil
	default:
		return fmt.Errorf("invalid container: '%s'", p.Container)
	}
}

type Reporting struct {
	Sentry *Sentry `yaml:"sentry"`
}

type Sentry struct {
	DSN string `yaml:"dsn"`
}

type Metrics struct {
	Namespace string   `yaml:"namespace"`
	Tags      []string `yaml:"tags"`
}

type Settings struct {
	Source      Source      `yaml:"source"`
	Destination Destination `yaml:"destination"`
	Partition   *Partition  `yaml:"partition"`
	Reporting   *Reporting  `yaml:"reporting"`
	Metrics     *Metrics    `yaml:"metrics"`

	// Sources
	File       *FileSource `yaml:"file"`
	PostgreSQL *PostgreSQL `yaml:"postgresql"`
	MySQL      *MySQL      `yaml:"mysql"`
	MongoDB    *MongoDB    `yaml:"mongodb"`
	DynamoDB   *DynamoDB   `yaml:"dynamodb"`

	// Destinations
	FileDestination *FileDestination `yaml:"fileDestination"`
	Kafka           *Kafka           `yaml:"kafka"`
	S3              *S3              `yaml:"s3"`
}

func (s *Settings) Validate() error {
	if s == nil {
		return fmt.Errorf("config is nil")
	}

	if err := s.validateSource(); err != nil {
		return err
	}

	if err := s.validateDestination(); err != nil {
		return err
	}

	if err := s.Partition.Validate(); err != nil {
		return fmt.Errorf("partition validation failed: %w", err)
	}

	return nil
}

func (s *Settings) validateSource() error {
	switch s.Source {
	case SourceFile:
		if err := s.File.Validate(); err != nil {
			return fmt.Errorf("file validation failed: %w", err)
		}
	case SourcePostgreSQL:
		if err := s.PostgreSQL.Validate(); err != nil {
			return fmt.Errorf("postgres validation failed: %w", err)
		}
	case SourceMySQL:
		if err := s.MySQL.Validate(); err != nil {
			return fmt.Errorf("mysql validation failed: %w", err)
		}
	case SourceMongoDB:
		if err := s.MongoDB.Validate(); err != nil {
			return fmt.Errorf("mongodb validation failed: %w", err)
		}
	case SourceDynamo:
		if err := s.DynamoDB.Validate(); err != nil {
			return fmt.Errorf("dynamodb validation failed: %w", err)
		}
	default:
		return fmt.Errorf("invalid source: '%s'", s.Source)
	}
	return nil
}

func (s *Settings) validateDestination() error {
	switch s.Destination {
	case DestinationFile:
		if err := s.FileDestination.Validate(); err != nil {
			return fmt.Errorf("file destination validation failed: %w", err)
		}
	case DestinationKafka:
		if err := s.Kafka.Validate(); err != nil {
			return fmt.Errorf("kafka validation failed: %w", err)
		}
	case DestinationS3:
		if err := s.S3.Validate(); err != nil {
			return fmt.Errorf("s3 validation failed: %w", err)
		}
	default:
		return fmt.Errorf("invalid destination: '%s'", s.Destination)
	}
	return nil
}

func ReadConfig(fp string) (*Settings, error) {
	bytes, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(bytes)
}

func ParseConfig(bytes []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal(bytes, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate config file: %w", err)
	}

	return &settings, nil
}
