package s3lib

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Client struct {
	bucketName *string
	client     putObjectAPI
}

func NewClient(bucketName string, awsCfg aws.Config) *S3Client {
	return &S3Client{
		bucketName: &bucketName,
		client:     s3.NewFromConfig(awsCfg),
	}
}

// JoinKey joins key parts with "/", ignoring empty parts and stray slashes.
func JoinKey(parts ...string) string {
	var trimmed []string
	for _, part := range parts {
		if part = strings.Trim(part, "/"); part != "" {
			trimmed = append(trimmed, part)
		}
	}
	return strings.Join(trimmed, "/")
}

func gzipLines(lines [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	for _, line := range lines {
		if _, err := gz.Write(line); err != nil {
			return nil, err
		}
		if _, err := gz.Write([]byte{'\n'}); err != nil {
			return nil, err
		}
	}

	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PutJsonGzipFile uploads lines as a new line delimited, gzip compressed object.
func (s *S3Client) PutJsonGzipFile(ctx context.Context, key string, lines [][]byte) error {
	body, err := gzipLines(lines)
	if err != nil {
		return fmt.Errorf("failed to compress object: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:          s.bucketName,
		Key:             aws.String(key),
		Body:            bytes.NewReader(body),
		ContentType:     aws.String("application/x-ndjson"),
		ContentEncoding: aws.String("gzip"),
	})
	if err != nil {
		return fmt.Errorf("failed to put object %q to S3: %w", key, err)
	}

	return nil
}
