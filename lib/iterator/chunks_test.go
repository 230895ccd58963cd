package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/artie-labs/partitioner/lib/partition"
)

func TestForChunks(t *testing.T) {
	{
		// No chunks
		iter := ForChunks([][]string{})
		assert.False(t, iter.HasNext())
		_, err := iter.Next()
		assert.ErrorContains(t, err, "iterator has finished")
	}
	{
		// Two chunks
		iter := ForChunks([][]string{{"a", "b"}, {"c"}})
		assert.True(t, iter.HasNext())
		{
			chunk, err := iter.Next()
			assert.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, chunk)
		}
		assert.True(t, iter.HasNext())
		{
			chunk, err := iter.Next()
			assert.NoError(t, err)
			assert.Equal(t, []string{"c"}, chunk)
		}
		assert.False(t, iter.HasNext())
		_, err := iter.Next()
		assert.ErrorContains(t, err, "iterator has finished")
	}
}

func TestPartitioned(t *testing.T) {
	{
		// Length is a multiple of size
		iter, err := Partitioned([]int{1, 2, 3, 4}, 2)
		assert.NoError(t, err)
		chunks, err := Collect(iter)
		assert.NoError(t, err)
		assert.Equal(t, [][]int{{1, 2}, {3, 4}}, chunks)
	}
	{
		// Length is not a multiple of size
		iter, err := Partitioned([]int{1, 2, 3, 4, 5}, 2)
		assert.NoError(t, err)
		chunks, err := Collect(iter)
		assert.NoError(t, err)
		assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunks)
	}
	{
		// Invalid size
		_, err := Partitioned([]int{1, 2}, 0)
		assert.ErrorContains(t, err, "failed to partition items: partitionSize [0] must be greater than 0")
		assert.True(t, partition.IsInvalidArgumentErr(err))
	}
	{
		// Size larger than the input
		_, err := Partitioned([]int{1, 2}, 3)
		assert.ErrorContains(t, err, "must be greater or equal to partitionSize")
	}
}
