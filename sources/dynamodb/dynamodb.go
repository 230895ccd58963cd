package dynamodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/sources"
)

type scanAPI interface {
	ScanPagesWithContext(ctx aws.Context, input *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput, bool) bool, opts ...request.Option) error
}

type Source struct {
	cfg    config.DynamoDB
	client scanAPI
}

func Load(cfg config.DynamoDB) (*Source, error) {
	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.AwsRegion),
		Credentials: credentials.NewStaticCredentials(cfg.AwsAccessKeyID, cfg.AwsSecretAccessKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &Source{
		cfg:    cfg,
		client: dynamodb.New(sess),
	}, nil
}

func (s *Source) Close() error {
	return nil
}

func (s *Source) Run(ctx context.Context, writer sources.RecordWriter) error {
	start := time.Now()
	records, err := s.scan(ctx)
	if err != nil {
		return fmt.Errorf("failed to scan table %s: %w", s.cfg.TableName, err)
	}

	count, err := writer.Write(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to write table %s: %w", s.cfg.TableName, err)
	}

	slog.Info("Finished scanning table",
		slog.String("table", s.cfg.TableName),
		slog.Int("records", count),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *Source) scan(ctx context.Context) ([]lib.Record, error) {
	var records []lib.Record
	var unmarshalErr error
	err := s.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{TableName: aws.String(s.cfg.TableName)},
		func(page *dynamodb.ScanOutput, _ bool) bool {
			for _, item := range page.Items {
				var row map[string]any
				if unmarshalErr = dynamodbattribute.UnmarshalMap(item, &row); unmarshalErr != nil {
					return false
				}
				records = append(records, lib.NewRecord(s.cfg.TableName, lib.KeyFor(row, s.cfg.KeyColumns), row))
			}
			return true
		},
	)
	if err != nil {
		return nil, err
	}

	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", unmarshalErr)
	}

	return records, nil
}
