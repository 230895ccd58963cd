package constants

import "time"

const (
	DefaultPartitionSize = 5_000
	DefaultPublishSize   = 2_500

	DefaultKafkaWriteTimeout = 5 * time.Second
)
