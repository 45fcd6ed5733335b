package usecase

import (
	"testing"
	"time"

	"cups-server/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPeriodFilter_Window(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	date := func(y int, m time.Month, d int) *time.Time {
		v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &v
	}

	t.Run("empty filter leaves the window open", func(t *testing.T) {
		from, to, err := PeriodFilter{}.Window(now)
		require.NoError(t, err)
		assert.Nil(t, from)
		assert.Nil(t, to)
	})

	t.Run("today covers the full day", func(t *testing.T) {
		from, to, err := PeriodFilter{Period: "today"}.Window(now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), *from)
		assert.Equal(t, 15, to.Day())
		assert.Equal(t, 23, to.Hour())
	})

	t.Run("yesterday covers the previous day", func(t *testing.T) {
		from, to, err := PeriodFilter{Period: "yesterday"}.Window(now)
		require.NoError(t, err)
		assert.Equal(t, 14, from.Day())
		assert.Equal(t, 14, to.Day())
	})

	t.Run("week spans seven days around now", func(t *testing.T) {
		from, to, err := PeriodFilter{Period: "week"}.Window(now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), *from)
		assert.Equal(t, 22, to.Day())
		assert.Equal(t, 23, to.Hour())
	})

	t.Run("unknown period is rejected", func(t *testing.T) {
		_, _, err := PeriodFilter{Period: "month"}.Window(now)
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})

	t.Run("explicit range is normalized to day bounds", func(t *testing.T) {
		from, to, err := PeriodFilter{Start: date(2026, 3, 1), Finish: date(2026, 3, 10)}.Window(now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *from)
		assert.Equal(t, 10, to.Day())
		assert.Equal(t, 23, to.Hour())
	})

	t.Run("explicit range wins over a named period", func(t *testing.T) {
		from, _, err := PeriodFilter{Period: "today", Start: date(2026, 3, 1), Finish: date(2026, 3, 10)}.Window(now)
		require.NoError(t, err)
		assert.Equal(t, 1, from.Day())
	})

	t.Run("half-open explicit range is rejected", func(t *testing.T) {
		_, _, err := PeriodFilter{Start: date(2026, 3, 1)}.Window(now)
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})

	t.Run("inverted explicit range is rejected", func(t *testing.T) {
		_, _, err := PeriodFilter{Start: date(2026, 3, 10), Finish: date(2026, 3, 1)}.Window(now)
		assert.Equal(t, errors.ErrInvalidArgument, errors.CodeOf(err))
	})
}
