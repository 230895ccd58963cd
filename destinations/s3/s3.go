package s3

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/google/uuid"

	"github.com/artie-labs/partitioner/config"
	"github.com/artie-labs/partitioner/lib"
	"github.com/artie-labs/partitioner/lib/s3lib"
)

type uploader interface {
	PutJsonGzipFile(ctx context.Context, key string, lines [][]byte) error
}

// Destination uploads every chunk as its own object under <prefix>/<runID>/.
type Destination struct {
	client uploader
	prefix string
	runID  string
	index  int
}

func Load(ctx context.Context, cfg config.S3) (*Destination, error) {
	opts := []func(*awsCfg.LoadOptions) error{awsCfg.WithRegion(cfg.AwsRegion)}
	if cfg.AwsAccessKeyID != "" {
		opts = append(opts, awsCfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AwsAccessKeyID, cfg.AwsSecretAccessKey, ""),
		))
	}

	loadedCfg, err := awsCfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return newDestination(s3lib.NewClient(cfg.Bucket, loadedCfg), cfg.GetPrefix(), uuid.NewString()), nil
}

func newDestination(client uploader, prefix, runID string) *Destination {
	return &Destination{client: client, prefix: prefix, runID: runID}
}

func (d *Destination) objectKey(index int) string {
	return s3lib.JoinKey(d.prefix, d.runID, fmt.Sprintf("%06d.jsonl.gz", index))
}

func (d *Destination) WriteChunk(ctx context.Context, chunk []lib.Record) error {
	lines := make([][]byte, len(chunk))
	for i, record := range chunk {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		lines[i] = line
	}

	if err := d.client.PutJsonGzipFile(ctx, d.objectKey(d.index), lines); err != nil {
		return err
	}
	d.index++
	return nil
}

func (d *Destination) OnComplete(_ context.Context) error {
	slog.Info("Finished uploading chunks",
		slog.String("location", s3lib.JoinKey(d.prefix, d.runID)),
		slog.Int("objects", d.index),
	)
	return nil
}
