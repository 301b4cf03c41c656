package quotes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitContext(t *testing.T) {
	t.Run("returns result", func(t *testing.T) {
		val, err := awaitContext(context.Background(), func() (int, error) { return 42, nil })
		require.NoError(t, err)
		assert.Equal(t, 42, val)
	})

	t.Run("returns error", func(t *testing.T) {
		_, err := awaitContext(context.Background(), func() (int, error) { return 0, errors.New("boom") })
		assert.EqualError(t, err, "boom")
	})

	t.Run("deadline beats slow call", func(t *testing.T) {
		release := make(chan struct{})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		start := time.Now()
		_, err := awaitContext(ctx, func() (int, error) {
			<-release
			return 1, nil
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})
}

func TestYahooProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewYahooProvider(zerolog.Nop())

	_, err := p.GetQuotes(ctx, []string{"AAPL"})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = p.GetHistory(ctx, []string{"AAPL"}, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestYahooProvider_HistoryDaysOutOfRange(t *testing.T) {
	p := NewYahooProvider(zerolog.Nop())

	_, err := p.GetHistory(context.Background(), []string{"AAPL"}, MaxHistoryDays+1)
	assert.ErrorIs(t, err, ErrHistoryRange)
}
