package kafkalib

import (
	"errors"

	"github.com/segmentio/kafka-go"
)

// IsExceedMaxMessageBytesErr matches both the client side [kafka.MessageTooLargeError] returned when a message
// exceeds the writer's BatchBytes and the broker's MessageSizeTooLarge error code.
func IsExceedMaxMessageBytesErr(err error) bool {
	if err == nil {
		return false
	}

	var tooLargeErr kafka.MessageTooLargeError
	if errors.As(err, &tooLargeErr) {
		return true
	}

	return errors.Is(err, kafka.MessageSizeTooLarge)
}

// IsRetryableErr returns true if the error is retryable.
// If it's retryable, the Kafka writer needs to be reloaded.
func IsRetryableErr(err error) bool {
	return err != nil && errors.Is(err, kafka.TopicAuthorizationFailed)
}
