package paycalc

import (
	"context"
	"sort"
	"time"

	"github.com/evn/shiftpay_backendl/internal/models"
)

// WeekSummary — одна неделя для сравнения лучшая/худшая
type WeekSummary struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
	Pay       WeeklyPay `json:"pay"`
}

// BestWorstWeeks группирует отработанные смены по неделям и возвращает
// неделю с наибольшей и наименьшей оплатой. Если отработанных смен нет —
// nil, nil.
func (e *Engine) BestWorstWeeks(ctx context.Context, userID int, shifts []models.Shift) (best, worst *WeekSummary) {
	groups := make(map[time.Time][]models.Shift)
	for _, s := range shifts {
		if !s.IsWorked() {
			continue
		}
		start, _ := WeekBounds(s.Date)
		groups[start] = append(groups[start], s)
	}
	if len(groups) == 0 {
		return nil, nil
	}

	summaries := make([]WeekSummary, 0, len(groups))
	for start, group := range groups {
		_, end := WeekBounds(start)
		summaries = append(summaries, WeekSummary{
			WeekStart: start,
			WeekEnd:   end,
			Pay:       e.WeekPay(ctx, userID, group),
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Pay.TotalPay == summaries[j].Pay.TotalPay {
			return summaries[i].WeekStart.Before(summaries[j].WeekStart)
		}
		return summaries[i].Pay.TotalPay > summaries[j].Pay.TotalPay
	})

	return &summaries[0], &summaries[len(summaries)-1]
}

// StreakDays считает текущую серию подряд отработанных дней. Смены
// day_off и неотработанные не учитываются. Если последняя отработанная
// смена была раньше, чем вчера, серия равна нулю. Несколько смен в один
// день считаются одним днём.
func StreakDays(shifts []models.Shift, today time.Time) int {
	var worked []models.Shift
	for _, s := range shifts {
		if s.IsWorked() && s.Status != models.ShiftStatusDayOff {
			worked = append(worked, s)
		}
	}
	if len(worked) == 0 {
		return 0
	}

	sort.Slice(worked, func(i, j int) bool {
		return worked[i].Date.After(worked[j].Date)
	})

	mostRecent := startOfDay(worked[0].Date)
	if daysBetween(mostRecent, startOfDay(today)) > 1 {
		return 0
	}

	streak := 1
	cursor := mostRecent
	for _, s := range worked[1:] {
		day := startOfDay(s.Date)
		gap := daysBetween(day, cursor)
		if gap == 1 {
			streak++
			cursor = day
		} else if gap > 1 {
			break
		}
		// gap == 0 — ещё одна смена в тот же день
	}
	return streak
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier) / (24 * time.Hour))
}
