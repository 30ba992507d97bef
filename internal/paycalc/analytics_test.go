package paycalc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evn/shiftpay_backendl/internal/models"
)

func TestBestWorstWeeks(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	// Three weeks: 8h, 24h and 16h of work.
	shifts := []models.Shift{
		hourShift(3, 9, 17, ""),  // week of Jun 2: 8h
		hourShift(10, 0, 8, ""),  // week of Jun 9: 24h
		hourShift(11, 0, 8, ""),
		hourShift(12, 0, 8, ""),
		hourShift(17, 0, 8, ""), // week of Jun 16: 16h
		hourShift(18, 0, 8, ""),
	}

	best, worst := engine.BestWorstWeeks(context.Background(), 1, shifts)
	require.NotNil(t, best)
	require.NotNil(t, worst)

	assert.Equal(t, date(2024, time.June, 9), best.WeekStart)
	assert.Equal(t, 336.0, best.Pay.TotalPay)
	assert.Equal(t, date(2024, time.June, 2), worst.WeekStart)
	assert.Equal(t, 112.0, worst.Pay.TotalPay)
}

func TestBestWorstWeeksSingleWeek(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	best, worst := engine.BestWorstWeeks(context.Background(), 1, []models.Shift{
		hourShift(10, 9, 17, ""),
	})
	require.NotNil(t, best)
	assert.Equal(t, best, worst)
}

func TestBestWorstWeeksNoWorkedShifts(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	scheduled := models.Shift{
		Date:           date(2024, time.June, 10),
		ScheduledStart: tm(10, 9, 0),
		ScheduledEnd:   tm(10, 17, 0),
	}
	best, worst := engine.BestWorstWeeks(context.Background(), 1, []models.Shift{scheduled})
	assert.Nil(t, best)
	assert.Nil(t, worst)
}

func TestStreakDaysConsecutive(t *testing.T) {
	shifts := []models.Shift{
		hourShift(10, 9, 17, ""),
		hourShift(11, 9, 17, ""),
		hourShift(12, 9, 17, ""),
	}
	assert.Equal(t, 3, StreakDays(shifts, date(2024, time.June, 12)))
}

func TestStreakDaysAllowsYesterday(t *testing.T) {
	// The streak survives if the last worked day was yesterday.
	shifts := []models.Shift{
		hourShift(10, 9, 17, ""),
		hourShift(11, 9, 17, ""),
	}
	assert.Equal(t, 2, StreakDays(shifts, date(2024, time.June, 12)))
}

func TestStreakDaysBrokenByGap(t *testing.T) {
	shifts := []models.Shift{
		hourShift(10, 9, 17, ""),
		hourShift(11, 9, 17, ""),
	}
	assert.Equal(t, 0, StreakDays(shifts, date(2024, time.June, 14)))
}

func TestStreakDaysGapInHistory(t *testing.T) {
	// A hole in the middle ends the count there.
	shifts := []models.Shift{
		hourShift(8, 9, 17, ""),
		hourShift(11, 9, 17, ""),
		hourShift(12, 9, 17, ""),
	}
	assert.Equal(t, 2, StreakDays(shifts, date(2024, time.June, 12)))
}

func TestStreakDaysMultipleShiftsSameDay(t *testing.T) {
	shifts := []models.Shift{
		hourShift(11, 8, 12, ""),
		hourShift(11, 14, 18, ""),
		hourShift(12, 9, 17, ""),
	}
	assert.Equal(t, 2, StreakDays(shifts, date(2024, time.June, 12)))
}

func TestStreakDaysIgnoresDayOffAndUnworked(t *testing.T) {
	dayOff := hourShift(11, 9, 17, "")
	dayOff.Status = models.ShiftStatusDayOff

	scheduled := models.Shift{
		Date:           date(2024, time.June, 12),
		ScheduledStart: tm(12, 9, 0),
		ScheduledEnd:   tm(12, 17, 0),
	}

	shifts := []models.Shift{
		hourShift(10, 9, 17, ""),
		dayOff,
		scheduled,
	}
	// Only Jun 10 counts, which is older than yesterday.
	assert.Equal(t, 0, StreakDays(shifts, date(2024, time.June, 12)))
}

func TestStreakDaysEmpty(t *testing.T) {
	assert.Equal(t, 0, StreakDays(nil, date(2024, time.June, 12)))
}
