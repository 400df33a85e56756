package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTableSortsDates(t *testing.T) {
	tbl, err := NewTable([]Observation{
		{Date: day(2024, 1, 3), Instrument: "BBB", Open: 12},
		{Date: day(2024, 1, 1), Instrument: "AAA", Open: 10},
		{Date: day(2024, 1, 2), Instrument: "AAA", Open: 11},
	})
	require.NoError(t, err)

	dates := tbl.Dates()
	require.Len(t, dates, 3)
	assert.Equal(t, day(2024, 1, 1), dates[0])
	assert.Equal(t, day(2024, 1, 3), dates[2])

	// First-appearance order, not alphabetical.
	assert.Equal(t, []string{"BBB", "AAA"}, tbl.Instruments())
}

func TestNewTableRejectsDuplicates(t *testing.T) {
	_, err := NewTable([]Observation{
		{Date: day(2024, 1, 1), Instrument: "AAA", Open: 10},
		{Date: day(2024, 1, 1), Instrument: "AAA", Open: 11},
	})
	assert.ErrorIs(t, err, ErrInvalidMarketData)
}

func TestNewTableRejectsEmpty(t *testing.T) {
	_, err := NewTable(nil)
	assert.ErrorIs(t, err, ErrInvalidMarketData)

	_, err = NewTable([]Observation{{Date: day(2024, 1, 1), Open: 10}})
	assert.ErrorIs(t, err, ErrInvalidMarketData)
}

func TestOpen(t *testing.T) {
	tbl, err := NewTable([]Observation{
		{Date: day(2024, 1, 1), Instrument: "AAA", Open: 10},
	})
	require.NoError(t, err)

	px, ok := tbl.Open(day(2024, 1, 1), "AAA")
	assert.True(t, ok)
	assert.Equal(t, 10.0, px)

	_, ok = tbl.Open(day(2024, 1, 1), "BBB")
	assert.False(t, ok)

	_, ok = tbl.Open(day(2024, 1, 2), "AAA")
	assert.False(t, ok)
}

func TestSeriesThroughFillsMissingWithNaN(t *testing.T) {
	tbl, err := NewTable([]Observation{
		{Date: day(2024, 1, 1), Instrument: "AAA", Open: 10},
		{Date: day(2024, 1, 2), Instrument: "BBB", Open: 20},
		{Date: day(2024, 1, 3), Instrument: "AAA", Open: 12},
	})
	require.NoError(t, err)

	series := tbl.SeriesThrough("AAA", day(2024, 1, 3))
	require.Len(t, series, 3)
	assert.Equal(t, 10.0, series[0])
	assert.True(t, math.IsNaN(series[1]))
	assert.Equal(t, 12.0, series[2])

	// Truncated view.
	assert.Len(t, tbl.SeriesThrough("AAA", day(2024, 1, 1)), 1)

	// Unknown date.
	assert.Nil(t, tbl.SeriesThrough("AAA", day(2024, 2, 1)))
}

func TestParseDateLayouts(t *testing.T) {
	want := day(2023, 1, 2)
	for _, s := range []string{"2023-01-02", "20230102", "2023/01/02"} {
		got, err := ParseDate(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := ParseDate("Jan 2 2023")
	assert.Error(t, err)
}
