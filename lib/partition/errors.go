package partition

import (
	"errors"
	"fmt"
)

var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError is returned when [Partition] or a function built by [With] rejects its input.
type InvalidArgumentError struct {
	msg string
}

func newInvalidArgumentError(format string, args ...any) InvalidArgumentError {
	return InvalidArgumentError{msg: fmt.Sprintf(format, args...)}
}

func (e InvalidArgumentError) Error() string {
	return e.msg
}

func (e InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func IsInvalidArgumentErr(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
