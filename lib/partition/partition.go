package partition

// Partition splits items into consecutive chunks of size elements. Every chunk except possibly the last
// holds exactly size elements and each chunk is a copy, so later changes to items are not reflected.
func Partition[T any](items []T, size int) ([][]T, error) {
	chunks, err := With[T, *Slice[T]](NewSlice[T])(items, size)
	if err != nil {
		return nil, err
	}

	result := make([][]T, len(chunks))
	for i, chunk := range chunks {
		result[i] = chunk.Items()
	}
	return result, nil
}

// With returns a partition function that stores each chunk in a container built by factory.
//
//	chunks, err := partition.With[int, *partition.List[int]](partition.NewList[int])(items, 2)
func With[T any, C Container[T]](factory Factory[T, C]) func(items []T, size int) ([]C, error) {
	return func(items []T, size int) ([]C, error) {
		if err := validate(items, size); err != nil {
			return nil, err
		}

		n := len(items)
		// ceil(n / size)
		count := (n + size - 1) / size
		chunks := make([]C, 0, count)
		for i := range count {
			from := i * size
			to := min(from+size, n)
			chunks = append(chunks, copyInto(items[from:to], factory))
		}
		return chunks, nil
	}
}

func validate[T any](items []T, size int) error {
	if items == nil {
		return newInvalidArgumentError("list must be not null")
	}

	if size <= 0 {
		return newInvalidArgumentError("partitionSize [%d] must be greater than 0", size)
	}

	if len(items) < size {
		return newInvalidArgumentError("size of the list [%d] must be greater or equal to partitionSize [%d]", len(items), size)
	}

	return nil
}

func copyInto[T any, C Container[T]](items []T, factory Factory[T, C]) C {
	container := factory()
	container.Append(items...)
	return container
}
