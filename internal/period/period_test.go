package period

import (
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/shopspring/decimal"

	apperrors "posfinance/internal/errors"
)

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestDerive(t *testing.T) {
	today := time.Date(2024, time.May, 15, 13, 45, 0, 0, time.UTC)

	tests := []struct {
		keyword Keyword
		start   time.Time
		end     time.Time
		label   string
	}{
		{Current, day(2024, time.May, 1), day(2024, time.May, 31), "May 2024"},
		{LastMonth, day(2024, time.April, 1), day(2024, time.April, 30), "April 2024"},
		{Quarter, day(2024, time.March, 1), day(2024, time.May, 31), "Mar 2024 - May 2024"},
		{Year, day(2024, time.January, 1), day(2024, time.December, 31), "2024"},
	}

	for _, tt := range tests {
		t.Run(string(tt.keyword), func(t *testing.T) {
			p, err := Derive(tt.keyword, today, nil, nil)
			assert.NoError(t, err)
			assert.Equal(t, tt.start, p.Start)
			assert.Equal(t, tt.end, p.End)
			assert.Equal(t, tt.label, p.Label)
		})
	}
}

func TestDeriveQuarterCrossesYear(t *testing.T) {
	p, err := Derive(Quarter, day(2024, time.February, 10), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, day(2023, time.December, 1), p.Start)
	assert.Equal(t, day(2024, time.February, 29), p.End)
}

func TestDeriveLastMonthInJanuary(t *testing.T) {
	p, err := Derive(LastMonth, day(2024, time.January, 31), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, day(2023, time.December, 1), p.Start)
	assert.Equal(t, day(2023, time.December, 31), p.End)
}

func TestDeriveCustom(t *testing.T) {
	today := day(2024, time.May, 15)
	start := day(2024, time.February, 3)
	end := day(2024, time.February, 20)

	t.Run("both dates", func(t *testing.T) {
		p, err := Derive(Custom, today, &start, &end)
		assert.NoError(t, err)
		assert.Equal(t, start, p.Start)
		assert.Equal(t, end, p.End)
		assert.Equal(t, "2024-02-03 - 2024-02-20", p.Label)
	})

	t.Run("missing end", func(t *testing.T) {
		_, err := Derive(Custom, today, &start, nil)
		assert.True(t, errors.Is(err, apperrors.ErrMissingRange))
	})

	t.Run("missing start", func(t *testing.T) {
		_, err := Derive(Custom, today, nil, &end)
		assert.True(t, errors.Is(err, apperrors.ErrMissingRange))
	})

	t.Run("reversed", func(t *testing.T) {
		_, err := Derive(Custom, today, &end, &start)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidRange))
	})
}

func TestDeriveUnknownKeyword(t *testing.T) {
	_, err := Derive("fortnight", day(2024, time.May, 15), nil, nil)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestPeriodContains(t *testing.T) {
	p, _ := Derive(Current, day(2024, time.May, 15), nil, nil)
	assert.True(t, p.Contains(time.Date(2024, time.May, 31, 23, 59, 0, 0, time.UTC)))
	assert.False(t, p.Contains(day(2024, time.June, 1)))
	assert.False(t, p.Contains(day(2024, time.April, 30)))
}

func TestPrevious(t *testing.T) {
	t.Run("month", func(t *testing.T) {
		p, _ := Derive(Current, day(2024, time.March, 15), nil, nil)
		prev := Previous(p)
		assert.Equal(t, day(2024, time.February, 1), prev.Start)
		assert.Equal(t, day(2024, time.February, 29), prev.End)
	})

	t.Run("quarter", func(t *testing.T) {
		p, _ := Derive(Quarter, day(2024, time.May, 15), nil, nil)
		prev := Previous(p)
		assert.Equal(t, day(2023, time.December, 1), prev.Start)
		assert.Equal(t, day(2024, time.February, 29), prev.End)
	})

	t.Run("year", func(t *testing.T) {
		p, _ := Derive(Year, day(2024, time.May, 15), nil, nil)
		prev := Previous(p)
		assert.Equal(t, day(2023, time.January, 1), prev.Start)
		assert.Equal(t, day(2023, time.December, 31), prev.End)
	})

	t.Run("arbitrary span", func(t *testing.T) {
		start, end := day(2024, time.May, 10), day(2024, time.May, 16)
		p, _ := Derive(Custom, day(2024, time.May, 20), &start, &end)
		prev := Previous(p)
		assert.Equal(t, day(2024, time.May, 3), prev.Start)
		assert.Equal(t, day(2024, time.May, 9), prev.End)
	})
}

func TestCompare(t *testing.T) {
	d := decimal.RequireFromString

	tests := []struct {
		name     string
		current  string
		previous string
		change   string
		pct      float64
	}{
		{"both zero", "0", "0", "0", 0},
		{"from zero", "40", "0", "40", 100},
		{"growth", "150", "100", "50", 50},
		{"decline", "75", "100", "-25", -25},
		{"negative current from zero", "-10", "0", "-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compare(d(tt.current), d(tt.previous))
			assert.True(t, c.Change.Equal(d(tt.change)))
			assert.Equal(t, tt.pct, c.Percentage)
		})
	}
}

func TestComparePeriods(t *testing.T) {
	cur, _ := Derive(Current, day(2024, time.May, 15), nil, nil)
	prev := Previous(cur)

	report := ComparePeriods(cur, prev,
		map[string]decimal.Decimal{"revenue": decimal.NewFromInt(40), "expenses": decimal.NewFromInt(10)},
		map[string]decimal.Decimal{"expenses": decimal.NewFromInt(20), "refunds": decimal.NewFromInt(5)},
	)

	assert.Equal(t, 3, len(report.Metrics))
	assert.Equal(t, 100.0, report.Metrics["revenue"].Percentage)
	assert.Equal(t, -50.0, report.Metrics["expenses"].Percentage)
	assert.True(t, report.Metrics["refunds"].Current.IsZero())
	assert.Equal(t, -100.0, report.Metrics["refunds"].Percentage)
	assert.Equal(t, prev, report.Previous)
}
