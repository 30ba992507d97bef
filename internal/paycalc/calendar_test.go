package paycalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeekBounds(t *testing.T) {
	// Wednesday 2024-06-12 falls in the Sun 09 — Sat 15 week.
	start, end := WeekBounds(date(2024, time.June, 12))

	assert.Equal(t, date(2024, time.June, 9), start)
	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, date(2024, time.June, 16).Add(-time.Millisecond), end)
	assert.Equal(t, time.Saturday, end.Weekday())
}

func TestWeekBoundsOnSunday(t *testing.T) {
	start, _ := WeekBounds(date(2024, time.June, 9))
	assert.Equal(t, date(2024, time.June, 9), start)
}

func TestWeekBoundsIgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2024, time.June, 12, 12, 34, 56, 0, time.UTC)
	start1, end1 := WeekBounds(noon)
	start2, end2 := WeekBounds(date(2024, time.June, 12))
	assert.Equal(t, start2, start1)
	assert.Equal(t, end2, end1)
}

func TestPayPeriodBounds(t *testing.T) {
	// 2024-06-15 is a Saturday that opens a period: Sat 15 — Fri 28.
	start, end := PayPeriodBounds(date(2024, time.June, 15))

	assert.Equal(t, date(2024, time.June, 15), start)
	assert.Equal(t, time.Saturday, start.Weekday())
	assert.Equal(t, date(2024, time.June, 29).Add(-time.Millisecond), end)
	assert.Equal(t, time.Friday, end.Weekday())
}

func TestPayPeriodBoundsMidPeriod(t *testing.T) {
	// Any day inside the window maps to the same period.
	for d := 15; d <= 28; d++ {
		start, end := PayPeriodBounds(date(2024, time.June, d))
		assert.Equal(t, date(2024, time.June, 15), start, "day %d", d)
		assert.Equal(t, date(2024, time.June, 29).Add(-time.Millisecond), end, "day %d", d)
	}
}

func TestPayPeriodBoundsAdjacentWindows(t *testing.T) {
	// Shifting the date by exactly 14 days shifts the window by exactly
	// one period: windows tile without gaps or overlap.
	d := date(2024, time.June, 15)
	start1, end1 := PayPeriodBounds(d)
	start2, end2 := PayPeriodBounds(d.AddDate(0, 0, 14))

	assert.Equal(t, start1.AddDate(0, 0, 14), start2)
	assert.Equal(t, end1.AddDate(0, 0, 14), end2)
	assert.Equal(t, start2, end1.Add(time.Millisecond))
}

func TestPayPeriodBoundsEpoch(t *testing.T) {
	start, _ := PayPeriodBounds(date(2000, time.January, 1))
	assert.Equal(t, date(2000, time.January, 1), start)
}

func TestPayDate(t *testing.T) {
	// Period ends Friday 2024-06-28, payday is the following Thursday.
	_, end := PayPeriodBounds(date(2024, time.June, 15))
	payday := PayDate(end)

	assert.Equal(t, date(2024, time.July, 4), payday)
	assert.Equal(t, time.Thursday, payday.Weekday())
}
