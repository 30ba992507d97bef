package paycalc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evn/shiftpay_backendl/internal/models"
)

func tm(day, hour, min int) *time.Time {
	t := time.Date(2024, time.June, day, hour, min, 0, 0, time.UTC)
	return &t
}

func workedShift(day, startH, startM, endH, endM int) models.Shift {
	return models.Shift{
		Date:        time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC),
		ActualStart: tm(day, startH, startM),
		ActualEnd:   tm(day, endH, endM),
		Status:      models.ShiftStatusAccepted,
	}
}

func TestActualHoursWithLunch(t *testing.T) {
	cfg := DefaultConfig()

	s := workedShift(10, 9, 0, 17, 0)
	s.LunchStart = tm(10, 12, 0)
	s.LunchEnd = tm(10, 12, 30)

	hours := cfg.ActualHours(s)
	assert.Equal(t, 8.0, hours.TotalHours)
	assert.Equal(t, 0.5, hours.LunchHours)
	assert.Equal(t, 7.5, hours.PaidHours)
}

func TestActualHoursNoLunch(t *testing.T) {
	cfg := DefaultConfig()

	// An eight hour shift without lunch stays eight hours: the default
	// lunch heuristic applies only to scheduled shifts.
	hours := cfg.ActualHours(workedShift(10, 9, 0, 17, 0))
	assert.Equal(t, 8.0, hours.TotalHours)
	assert.Equal(t, 0.0, hours.LunchHours)
	assert.Equal(t, 8.0, hours.PaidHours)
}

func TestActualHoursOvernight(t *testing.T) {
	cfg := DefaultConfig()

	// Clock-out "earlier" than clock-in means the shift crossed midnight.
	s := models.Shift{
		Date:        time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ActualStart: tm(10, 22, 0),
		ActualEnd:   tm(10, 6, 0),
	}
	hours := cfg.ActualHours(s)
	assert.Equal(t, 8.0, hours.TotalHours)
	assert.Equal(t, 8.0, hours.PaidHours)
}

func TestActualHoursMinuteTruncation(t *testing.T) {
	cfg := DefaultConfig()

	// Seconds are dropped: 7h59m59s is 7h59m.
	start := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 10, 16, 59, 59, 0, time.UTC)
	s := models.Shift{Date: start, ActualStart: &start, ActualEnd: &end}

	hours := cfg.ActualHours(s)
	assert.InDelta(t, 7.98, hours.TotalHours, 0.001) // 479/60 rounded to 2 places
}

func TestActualHoursLunchLongerThanShiftClampsToZero(t *testing.T) {
	cfg := DefaultConfig()

	s := workedShift(10, 9, 0, 10, 0)
	s.LunchStart = tm(10, 9, 0)
	s.LunchEnd = tm(10, 11, 0)

	hours := cfg.ActualHours(s)
	assert.Equal(t, 1.0, hours.TotalHours)
	assert.Equal(t, 2.0, hours.LunchHours)
	assert.Equal(t, 0.0, hours.PaidHours)
}

func TestActualHoursIncompleteShift(t *testing.T) {
	cfg := DefaultConfig()

	s := models.Shift{
		Date:        time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ActualStart: tm(10, 9, 0),
	}
	assert.Equal(t, ShiftHours{}, cfg.ActualHours(s))
}

func TestExpectedHoursDefaultLunch(t *testing.T) {
	cfg := DefaultConfig()

	// Scheduled 9:00-17:30 with no explicit lunch: 8.5h total, default
	// 30 minute lunch applies since the shift is at least 6 hours.
	s := models.Shift{
		Date:           time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ScheduledStart: tm(10, 9, 0),
		ScheduledEnd:   tm(10, 17, 30),
		Status:         models.ShiftStatusAccepted,
	}

	hours := cfg.ExpectedHours(s)
	assert.Equal(t, 8.5, hours.TotalHours)
	assert.Equal(t, 0.5, hours.LunchHours)
	assert.Equal(t, 8.0, hours.PaidHours)
}

func TestExpectedHoursShortShiftNoDefaultLunch(t *testing.T) {
	cfg := DefaultConfig()

	s := models.Shift{
		Date:           time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ScheduledStart: tm(10, 9, 0),
		ScheduledEnd:   tm(10, 13, 0),
	}

	hours := cfg.ExpectedHours(s)
	assert.Equal(t, 4.0, hours.TotalHours)
	assert.Equal(t, 0.0, hours.LunchHours)
	assert.Equal(t, 4.0, hours.PaidHours)
}

func TestExpectedHoursExplicitLunchWins(t *testing.T) {
	cfg := DefaultConfig()

	s := models.Shift{
		Date:           time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ScheduledStart: tm(10, 9, 0),
		ScheduledEnd:   tm(10, 17, 0),
		LunchStart:     tm(10, 12, 0),
		LunchEnd:       tm(10, 13, 0),
	}

	hours := cfg.ExpectedHours(s)
	assert.Equal(t, 1.0, hours.LunchHours)
	assert.Equal(t, 7.0, hours.PaidHours)
}

func TestExpectedHoursHeuristicDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultLunchMinutes = 0

	s := models.Shift{
		Date:           time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ScheduledStart: tm(10, 9, 0),
		ScheduledEnd:   tm(10, 17, 0),
	}

	hours := cfg.ExpectedHours(s)
	assert.Equal(t, 8.0, hours.PaidHours)
}

func TestHoursFallsBackToSchedule(t *testing.T) {
	cfg := DefaultConfig()

	// Hours uses actual marks when present, scheduled otherwise.
	s := models.Shift{
		Date:           time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC),
		ScheduledStart: tm(10, 9, 0),
		ScheduledEnd:   tm(10, 17, 0),
	}
	assert.Equal(t, 8.0, cfg.Hours(s).PaidHours)

	s.ActualStart = tm(10, 10, 0)
	s.ActualEnd = tm(10, 16, 0)
	assert.Equal(t, 6.0, cfg.Hours(s).PaidHours)
}
