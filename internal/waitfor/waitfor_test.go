package waitfor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntil_ImmediatelyTrue(t *testing.T) {
	calls := 0
	err := Until(context.Background(), time.Hour, func(context.Context) (bool, error) {
		calls++
		return true, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestUntil_TrueAfterSeveralPolls(t *testing.T) {
	calls := 0
	err := Until(context.Background(), time.Millisecond, func(context.Context) (bool, error) {
		calls++
		return calls >= 3, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestUntil_PredicateErrorAborts(t *testing.T) {
	boom := errors.New("boom")
	err := Until(context.Background(), time.Millisecond, func(context.Context) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestUntil_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := Until(ctx, time.Millisecond, func(context.Context) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestUntil_Cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := Until(ctx, time.Millisecond, func(context.Context) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
