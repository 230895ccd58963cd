package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/destinations"
	fileDestination "github.com/artie-labs/partitioner/destinations/file"
	s3Destination "github.com/artie-labs/partitioner/destinations/s3"
	"github.com/artie-labs/partitioner/lib/kafkalib"
	"github.com/artie-labs/partitioner/lib/logger"
	"github.com/artie-labs/partitioner/lib/mtr"
	"github.com/artie-labs/partitioner/sources"
	"github.com/artie-labs/partitioner/sources/dynamodb"
	"github.com/artie-labs/partitioner/sources/file"
	"github.com/artie-labs/partitioner/sources/mongo"
	"github.com/artie-labs/partitioner/sources/mysql"
	"github.com/artie-labs/partitioner/sources/postgres"
	"github.com/artie-labs/partitioner/writers"
)

func setUpMetrics(cfg *config.Metrics) (mtr.Client, error) {
	if cfg == nil {
		return nil, nil
	}

	slog.Info("Creating metrics client")
	return mtr.New(cfg.Namespace, cfg.Tags, 0.5)
}

func buildSource(ctx context.Context, cfg *config.Settings) (sources.Source, error) {
	switch cfg.Source {
	case config.SourceFile:
		return file.Load(*cfg.File), nil
	case config.SourcePostgreSQL:
		return postgres.Load(ctx, *cfg.PostgreSQL)
	case config.SourceMySQL:
		return mysql.Load(*cfg.MySQL)
	case config.SourceMongoDB:
		return mongo.Load(ctx, *cfg.MongoDB)
	case config.SourceDynamo:
		return dynamodb.Load(*cfg.DynamoDB)
	default:
		return nil, fmt.Errorf("unknown source: %s", cfg.Source)
	}
}

func buildDestination(ctx context.Context, cfg *config.Settings, statsD mtr.Client) (destinations.Destination, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Destination {
	case config.DestinationFile:
		return fileDestination.NewDestination(*cfg.FileDestination), noop, nil
	case config.DestinationKafka:
		slog.Info("Kafka config",
			slog.Bool("aws", cfg.Kafka.AwsEnabled),
			slog.String("kafkaBootstrapServer", cfg.Kafka.BootstrapServers),
			slog.Int("publishSize", cfg.Kafka.GetPublishSize()),
			slog.String("compression", string(cfg.Kafka.GetCompression())),
			slog.Uint64("maxRequestSize", cfg.Kafka.MaxRequestSize),
		)
		writer, err := kafkalib.NewBatchWriter(ctx, *cfg.Kafka, statsD)
		if err != nil {
			return nil, nil, err
		}
		return writer, writer.Close, nil
	case config.DestinationS3:
		destination, err := s3Destination.Load(ctx, *cfg.S3)
		if err != nil {
			return nil, nil, err
		}
		return destination, noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown destination: %s", cfg.Destination)
	}
}

func main() {
	var configFilePath string
	flag.StringVar(&configFilePath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.ReadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to read config file", slog.Any("err", err))
	}

	_logger, cleanUpHandlers := logger.NewLogger(cfg)
	slog.SetDefault(_logger)
	defer cleanUpHandlers()

	ctx := context.Background()

	statsD, err := setUpMetrics(cfg.Metrics)
	if err != nil {
		logger.Fatal("Failed to set up metrics", slog.Any("err", err))
	}
	if statsD != nil {
		defer statsD.Flush()
	}

	destination, closeDestination, err := buildDestination(ctx, cfg, statsD)
	if err != nil {
		logger.Fatal("Failed to set up destination", slog.Any("err", err), slog.String("destination", string(cfg.Destination)))
	}
	defer func() {
		if err := closeDestination(); err != nil {
			slog.Warn("Failed to close destination", slog.Any("err", err))
		}
	}()

	writer, err := writers.New(destination, cfg.Partition, statsD, true)
	if err != nil {
		logger.Fatal("Failed to set up writer", slog.Any("err", err))
	}

	source, err := buildSource(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to load source", slog.Any("err", err), slog.String("source", string(cfg.Source)))
	}
	defer source.Close()

	slog.Info("Partitioning records",
		slog.String("source", string(cfg.Source)),
		slog.String("destination", string(cfg.Destination)),
		slog.Int("partitionSize", cfg.Partition.GetSize()),
		slog.String("container", string(cfg.Partition.GetContainer())),
	)

	if err = source.Run(ctx, writer); err != nil {
		logger.Fatal("Failed to run source", slog.Any("err", err), slog.String("source", string(cfg.Source)))
	}

	if err = writer.OnComplete(ctx); err != nil {
		logger.Fatal("Failed to complete destination", slog.Any("err", err))
	}
}
