package historical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/stockfolio/internal/domain"
	testutil "github.com/aristath/stockfolio/internal/testing"
)

func TestSummarize_Empty(t *testing.T) {
	s := Summarize("A", nil)

	assert.Equal(t, "A", s.Symbol)
	assert.Zero(t, s.Points)
	assert.Nil(t, s.From)
	assert.Nil(t, s.SMA20)
	assert.Nil(t, s.MaxDrawdown)
}

func TestSummarize_RisingSeries(t *testing.T) {
	bars := testutil.NewHistoryFixtures(30, "A")[0].History

	s := Summarize("A", bars)

	assert.Equal(t, 30, s.Points)
	require.NotNil(t, s.From)
	require.NotNil(t, s.To)
	assert.Equal(t, time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC), *s.To)

	assert.Equal(t, 100.0, s.FirstClose)
	assert.Equal(t, 129.0, s.LastClose)
	assert.Equal(t, 29.0, s.Change)
	assert.InDelta(t, 29.0, s.ChangePct, 1e-9)
	assert.Equal(t, 130.0, s.High)
	assert.Equal(t, 99.0, s.Low)
	assert.InDelta(t, 114.5, s.MeanClose, 1e-9)
	assert.Greater(t, s.StdDevClose, 0.0)

	require.NotNil(t, s.MaxDrawdown)
	assert.Zero(t, *s.MaxDrawdown)

	// SMA of the last 20 closes: 110..129
	require.NotNil(t, s.SMA20)
	assert.InDelta(t, 119.5, *s.SMA20, 1e-9)

	require.NotNil(t, s.RSI14)
	assert.InDelta(t, 100.0, *s.RSI14, 1e-6)
}

func TestSummarize_ShortSeries(t *testing.T) {
	bars := testutil.NewHistoryFixtures(5, "A")[0].History

	s := Summarize("A", bars)

	assert.Equal(t, 5, s.Points)
	assert.Nil(t, s.SMA20)
	assert.Nil(t, s.RSI14)
	assert.NotNil(t, s.MaxDrawdown)
}

func TestSummarize_SingleBar(t *testing.T) {
	s := Summarize("A", []domain.HistoricalBar{{Close: 10, High: 11, Low: 9}})

	assert.Equal(t, 1, s.Points)
	assert.Equal(t, 10.0, s.MeanClose)
	assert.Zero(t, s.StdDevClose)
	assert.Zero(t, s.Change)
	assert.Nil(t, s.MaxDrawdown)
}

func TestMaxDrawdown(t *testing.T) {
	dd := MaxDrawdown([]float64{100, 120, 90, 110, 60, 80})
	require.NotNil(t, dd)
	assert.InDelta(t, 0.5, *dd, 1e-9)

	assert.Nil(t, MaxDrawdown([]float64{1}))
}
