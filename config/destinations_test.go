package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/artie-labs/partitioner/constants"
)

func TestKafka(t *testing.T) {
	{
		var k *Kafka
		assert.ErrorContains(t, k.Validate(), "kafka config is nil")
	}
	{
		k := &Kafka{}
		assert.ErrorContains(t, k.Validate(), "bootstrap servers not passed in")
	}
	{
		k := &Kafka{BootstrapServers: "localhost:9092"}
		assert.ErrorContains(t, k.Validate(), "topic prefix not passed in")
	}
	{
		k := &Kafka{BootstrapServers: "localhost:9092", TopicPrefix: "prefix"}
		assert.NoError(t, k.Validate())
		assert.Equal(t, constants.DefaultPublishSize, k.GetPublishSize())
		assert.Equal(t, KafkaCompressionGzip, k.GetCompression())
		assert.Equal(t, constants.DefaultKafkaWriteTimeout, k.GetWriteTimeout())
		assert.Equal(t, []string{"localhost:9092"}, k.BootstrapAddresses())
	}
	{
		// Overrides
		k := &Kafka{BootstrapServers: "a:9092,b:9092", TopicPrefix: "prefix", PublishSize: 10, Compression: KafkaCompressionZstd, WriteTimeoutSeconds: 30}
		assert.NoError(t, k.Validate())
		assert.Equal(t, 10, k.GetPublishSize())
		assert.Equal(t, KafkaCompressionZstd, k.GetCompression())
		assert.Equal(t, 30*time.Second, k.GetWriteTimeout())
		assert.Equal(t, []string{"a:9092", "b:9092"}, k.BootstrapAddresses())
	}
	{
		// Negative publish size
		k := &Kafka{BootstrapServers: "localhost:9092", TopicPrefix: "prefix", PublishSize: -1}
		assert.ErrorContains(t, k.Validate(), "publish size must be greater than 0, got: -1")
	}
	{
		// Negative write timeout
		k := &Kafka{BootstrapServers: "localhost:9092", TopicPrefix: "prefix", WriteTimeoutSeconds: -5}
		assert.ErrorContains(t, k.Validate(), "write timeout must be greater than 0, got: -5")
	}
	{
		// Unknown compression
		k := &Kafka{BootstrapServers: "localhost:9092", TopicPrefix: "prefix", Compression: "brotli"}
		assert.ErrorContains(t, k.Validate(), "invalid compression: 'brotli'")
	}
}

func TestS3(t *testing.T) {
	{
		var s *S3
		assert.ErrorContains(t, s.Validate(), "s3 config is nil")
	}
	{
		s := &S3{}
		assert.ErrorContains(t, s.Validate(), "bucket is empty")
	}
	{
		s := &S3{Bucket: "bucket"}
		assert.ErrorContains(t, s.Validate(), "awsRegion is empty")
	}
	{
		s := &S3{Bucket: "bucket", AwsRegion: "us-east-1", AwsAccessKeyID: "id"}
		assert.ErrorContains(t, s.Validate(), "must be passed in together")
	}
	{
		s := &S3{Bucket: "bucket", AwsRegion: "us-east-1", Prefix: "/exports/"}
		assert.NoError(t, s.Validate())
		assert.Equal(t, "exports", s.GetPrefix())
	}
}

func TestFileDestination(t *testing.T) {
	{
		var f *FileDestination
		assert.ErrorContains(t, f.Validate(), "file destination config is nil")
	}
	{
		f := &FileDestination{}
		assert.ErrorContains(t, f.Validate(), "path is empty")
	}
	{
		f := &FileDestination{Path: "out.jsonl"}
		assert.NoError(t, f.Validate())
	}
}
