package persistedlist

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const maxLineSize = 10 * 1024 * 1024

// PersistedList is an append-only list stored on disk as JSON lines.
type PersistedList[T any] struct {
	filePath string
}

func NewPersistedList[T any](filePath string) *PersistedList[T] {
	return &PersistedList[T]{
		filePath: filePath,
	}
}

func (p PersistedList[T]) Push(item T) error {
	// If the file doesn't exist, create it
	file, err := os.OpenFile(p.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}

	bytes, err := json.Marshal(item)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to marshal data: %w", err), file.Close())
	}

	bytes = append(bytes, '\n')
	if _, err = file.Write(bytes); err != nil {
		return errors.Join(fmt.Errorf("failed to write to file: %w", err), file.Close())
	}

	return file.Close()
}

// GetData reads every item back. A missing file is an empty list.
func (p PersistedList[T]) GetData() ([]T, error) {
	file, err := os.Open(p.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	defer file.Close()

	var data []T
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		if len(scanner.Bytes()) == 0 {
			continue
		}

		var t T
		if err = json.Unmarshal(scanner.Bytes(), &t); err != nil {
			return nil, fmt.Errorf("failed to unmarshal line %d: %w", lineNumber, err)
		}

		data = append(data, t)
	}

	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return data, nil
}
