package utils_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wine-backend/internal/core/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInPool(t *testing.T) {
	worker := func(_ context.Context, i int) (string, error) {
		time.Sleep(time.Duration(10-i) * time.Millisecond)
		return fmt.Sprintf("%d-%d", i, i), nil
	}

	inputs := make([]int, 10)
	for i := range inputs {
		inputs[i] = i
	}

	results, err := utils.RunInPool(context.Background(), inputs, worker, 5)
	require.NoError(t, err)
	require.Len(t, results, 10)
	for i, r := range results {
		assert.Equal(t, fmt.Sprintf("%d-%d", i, i), r)
	}
}

func TestRunInPoolError(t *testing.T) {
	worker := func(_ context.Context, i int) (int, error) {
		if i%4 == 3 {
			return 0, fmt.Errorf("error on %d", i)
		}
		return i * 2, nil
	}

	_, err := utils.RunInPool(context.Background(), []int{0, 1, 2, 3, 4}, worker, 2)
	assert.ErrorContains(t, err, "error on 3")
}

func TestRunInPoolCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	worker := func(_ context.Context, i int) (int, error) {
		calls++
		return i, nil
	}

	_, err := utils.RunInPool(ctx, []int{1, 2, 3}, worker, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, calls)
}

func TestRunInPoolEmpty(t *testing.T) {
	results, err := utils.RunInPool(context.Background(), []int{}, func(_ context.Context, i int) (int, error) { return i, nil }, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}
