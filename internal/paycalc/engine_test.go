package paycalc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/evn/shiftpay_backendl/internal/models"
)

// stubRates serves job rates from a fixed map; unknown jobs return an
// error, which the engine degrades to the default rate.
type stubRates struct {
	rates map[string]float64
	err   error
}

func (s *stubRates) PayRate(ctx context.Context, userID int, jobName string) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	rate, ok := s.rates[jobName]
	if !ok {
		return 0, errors.New("no rate for job")
	}
	return rate, nil
}

func hourShift(day, startH, endH int, job string) models.Shift {
	s := models.Shift{
		Date:        time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC),
		ActualStart: tm(day, startH, 0),
		ActualEnd:   tm(day, endH, 0),
		Job:         job,
		Status:      models.ShiftStatusAccepted,
	}
	return s
}

func TestWeekPayFlatRate45Hours(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	// Five nine-hour shifts: 45h at $14 is 40*14 + 5*14*1.5 = 665.
	var shifts []models.Shift
	for day := 9; day <= 13; day++ {
		shifts = append(shifts, hourShift(day, 8, 17, ""))
	}

	week := engine.WeekPay(context.Background(), 1, shifts)
	assert.Equal(t, 40.0, week.RegularHours)
	assert.Equal(t, 5.0, week.OTHours)
	assert.Equal(t, 45.0, week.TotalPaidHours)
	assert.Equal(t, 665.0, week.TotalPay)
}

func TestWeekPayUnderThreshold(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	week := engine.WeekPay(context.Background(), 1, []models.Shift{
		hourShift(10, 9, 17, ""),
	})
	assert.Equal(t, 8.0, week.RegularHours)
	assert.Equal(t, 0.0, week.OTHours)
	assert.Equal(t, 112.0, week.TotalPay)
}

func TestWeekPayOrderSensitive(t *testing.T) {
	rates := &stubRates{rates: map[string]float64{"stock": 10, "deli": 20}}
	engine := NewEngine(DefaultConfig(), rates, nil)

	// Six ten-hour shifts, 60h total. Which shifts land past the 40h
	// threshold depends on their order, so gross pay differs while the
	// hour summary stays the same.
	stockFirst := []models.Shift{
		hourShift(9, 0, 10, "stock"),
		hourShift(10, 0, 10, "stock"),
		hourShift(11, 0, 10, "stock"),
		hourShift(12, 0, 10, "stock"),
		hourShift(13, 0, 10, "deli"),
		hourShift(14, 0, 10, "deli"),
	}
	deliFirst := []models.Shift{
		stockFirst[4], stockFirst[5],
		stockFirst[0], stockFirst[1], stockFirst[2], stockFirst[3],
	}

	week1 := engine.WeekPay(context.Background(), 1, stockFirst)
	week2 := engine.WeekPay(context.Background(), 1, deliFirst)

	// stock first: 40h stock regular (400) + 20h deli overtime (600)
	assert.Equal(t, 1000.0, week1.TotalPay)
	// deli first: 20h deli + 20h stock regular (600) + 20h stock overtime (300)
	assert.Equal(t, 900.0, week2.TotalPay)

	for _, week := range []WeeklyPay{week1, week2} {
		assert.Equal(t, 40.0, week.RegularHours)
		assert.Equal(t, 20.0, week.OTHours)
		assert.Equal(t, 60.0, week.TotalPaidHours)
	}
}

func TestWeekPayHolidayCompoundsWithOvertime(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	// A 45h holiday stretch: holiday multiplies the effective rate, and
	// overtime applies on top of that. 40*21 + 5*21*1.5 = 997.5.
	shift := models.Shift{
		Date:        time.Date(2024, time.June, 9, 0, 0, 0, 0, time.UTC),
		ActualStart: tm(9, 0, 0),
		ActualEnd:   tm(10, 21, 0),
		IsHoliday:   true,
	}

	week := engine.WeekPay(context.Background(), 1, []models.Shift{shift})
	assert.Equal(t, 45.0, week.TotalPaidHours)
	assert.Equal(t, 997.5, week.TotalPay)
}

func TestWeekPayRateLookupFailureFallsBack(t *testing.T) {
	rates := &stubRates{err: errors.New("redis down")}
	engine := NewEngine(DefaultConfig(), rates, nil)

	// The rate source is unavailable; pay silently uses the configured
	// default instead of failing the request.
	week := engine.WeekPay(context.Background(), 1, []models.Shift{
		hourShift(10, 9, 17, "deli"),
	})
	assert.Equal(t, 112.0, week.TotalPay)
}

func TestWeekPayNonPositiveRateFallsBack(t *testing.T) {
	rates := &stubRates{rates: map[string]float64{"deli": 0, "": 0}}
	engine := NewEngine(DefaultConfig(), rates, nil)

	week := engine.WeekPay(context.Background(), 1, []models.Shift{
		hourShift(10, 9, 17, "deli"),
	})
	assert.Equal(t, 112.0, week.TotalPay)
}

func TestWeekPayProjection(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	scheduled := func(day int) models.Shift {
		return models.Shift{
			Date:           time.Date(2024, time.June, day, 0, 0, 0, 0, time.UTC),
			ScheduledStart: tm(day, 9, 0),
			ScheduledEnd:   tm(day, 17, 0),
			Status:         models.ShiftStatusAccepted,
		}
	}

	// 30h worked plus two scheduled 8h shifts (7.5h paid each after the
	// default lunch): 45h projected pushes the estimate into overtime.
	shifts := []models.Shift{
		hourShift(9, 0, 10, ""),
		hourShift(10, 0, 10, ""),
		hourShift(11, 0, 10, ""),
		scheduled(12),
		scheduled(13),
	}

	week := engine.WeekPay(context.Background(), 1, shifts)
	assert.Equal(t, 30.0, week.TotalPaidHours)
	assert.Equal(t, 15.0, week.ExpectedPaidHours)
	assert.Equal(t, 420.0, week.TotalPay)
	// 40*14 + 5*14*1.5
	assert.Equal(t, 665.0, week.ExpectedPay)
}

func TestPeriodPaySplitsWeeks(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	// Period Sat 2024-06-15 — Fri 2024-06-28; one shift in each half.
	shifts := []models.Shift{
		hourShift(17, 8, 18, ""), // week 1, 10h
		hourShift(24, 8, 18, ""), // week 2, 10h
	}

	period := engine.PeriodPay(context.Background(), 1, shifts)
	assert.Equal(t, 10.0, period.Week1.TotalPaidHours)
	assert.Equal(t, 10.0, period.Week2.TotalPaidHours)
	assert.Equal(t, 20.0, period.TotalPaidHours)
	assert.Equal(t, 280.0, period.TotalPay)
	assert.Equal(t, date(2024, time.July, 4), period.PayDate)
}

func TestPeriodPayOvertimeDoesNotCrossWeeks(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	// 30h in each week: 60h in the period but no overtime, because the
	// 40h threshold applies per week.
	shifts := []models.Shift{
		hourShift(17, 0, 10, ""),
		hourShift(18, 0, 10, ""),
		hourShift(19, 0, 10, ""),
		hourShift(24, 0, 10, ""),
		hourShift(25, 0, 10, ""),
		hourShift(26, 0, 10, ""),
	}

	period := engine.PeriodPay(context.Background(), 1, shifts)
	assert.Equal(t, 0.0, period.TotalOTHours)
	assert.Equal(t, 60.0, period.TotalRegularHours)
	assert.Equal(t, 840.0, period.TotalPay)
}

func TestPeriodPayEmpty(t *testing.T) {
	engine := NewEngine(DefaultConfig(), nil, nil)

	period := engine.PeriodPay(context.Background(), 1, nil)
	assert.Equal(t, 0.0, period.TotalPay)
	assert.Equal(t, 0.0, period.TotalPaidHours)
	assert.False(t, period.PayDate.IsZero())
}
