package paycalc

import (
	"math"
	"time"

	"github.com/evn/shiftpay_backendl/internal/models"
)

// ShiftHours — часы одной смены
type ShiftHours struct {
	TotalHours float64 `json:"total_hours"`
	LunchHours float64 `json:"lunch_hours"`
	PaidHours  float64 `json:"paid_hours"`
}

// Config — параметры расчёта зарплаты
type Config struct {
	DefaultRate        float64
	OvertimeThreshold  float64
	OvertimeMultiplier float64
	HolidayMultiplier  float64

	// Для запланированных смен без явного обеда: неоплачиваемый обед
	// DefaultLunchMinutes подставляется, если смена не короче
	// DefaultLunchMinHours. Нулевые значения отключают эвристику.
	DefaultLunchMinutes  int
	DefaultLunchMinHours float64
}

func DefaultConfig() Config {
	return Config{
		DefaultRate:          14.0,
		OvertimeThreshold:    40.0,
		OvertimeMultiplier:   1.5,
		HolidayMultiplier:    1.5,
		DefaultLunchMinutes:  30,
		DefaultLunchMinHours: 6,
	}
}

// Hours считает часы смены: по фактическим отметкам, а если их нет —
// по запланированным. Если нет полной пары отметок, возвращает нули.
func (c Config) Hours(s models.Shift) ShiftHours {
	start, end := s.ActualStart, s.ActualEnd
	if start == nil || end == nil {
		start, end = s.ScheduledStart, s.ScheduledEnd
	}
	if start == nil || end == nil {
		return ShiftHours{}
	}
	return c.span(*start, *end, s, false)
}

// ActualHours считает только фактически отработанные часы.
func (c Config) ActualHours(s models.Shift) ShiftHours {
	if !s.IsWorked() {
		return ShiftHours{}
	}
	return c.span(*s.ActualStart, *s.ActualEnd, s, false)
}

// ExpectedHours считает часы запланированной, но не начатой смены.
// Здесь действует эвристика обеда по умолчанию.
func (c Config) ExpectedHours(s models.Shift) ShiftHours {
	if !s.IsScheduled() {
		return ShiftHours{}
	}
	return c.span(*s.ScheduledStart, *s.ScheduledEnd, s, true)
}

func (c Config) span(start, end time.Time, s models.Shift, defaultLunch bool) ShiftHours {
	totalMinutes := minutesBetween(start, end)

	lunchMinutes := 0
	if s.LunchStart != nil && s.LunchEnd != nil {
		lunchMinutes = minutesBetween(*s.LunchStart, *s.LunchEnd)
	} else if defaultLunch && c.DefaultLunchMinutes > 0 &&
		float64(totalMinutes)/60 >= c.DefaultLunchMinHours {
		lunchMinutes = c.DefaultLunchMinutes
	}

	paidHours := float64(totalMinutes-lunchMinutes) / 60
	if paidHours < 0 {
		// обед длиннее смены — оплата не может быть отрицательной
		paidHours = 0
	}

	return ShiftHours{
		TotalHours: round2(float64(totalMinutes) / 60),
		LunchHours: round2(float64(lunchMinutes) / 60),
		PaidHours:  round2(paidHours),
	}
}

// minutesBetween — целое число минут между отметками. Если конец по часам
// раньше начала, считаем смену ночной и переносим конец на следующий день.
func minutesBetween(start, end time.Time) int {
	if end.Before(start) {
		end = end.Add(24 * time.Hour)
	}
	return int(end.Sub(start) / time.Minute)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
