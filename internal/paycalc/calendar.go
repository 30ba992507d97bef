package paycalc

import "time"

// payPeriodEpoch — суббота 1 января 2000 года. Все двухнедельные периоды
// отсчитываются от неё, поэтому их чётность не зависит от года.
var payPeriodEpoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// startOfDay нормализует момент времени до календарной даты (UTC).
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekBounds возвращает границы недели Вс 00:00 — Сб 23:59:59.999,
// содержащей дату.
func WeekBounds(t time.Time) (start, end time.Time) {
	day := startOfDay(t)
	start = day.AddDate(0, 0, -int(day.Weekday()))
	end = start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

// PayPeriodBounds возвращает границы двухнедельного платёжного периода
// Сб — Пт (14 дней), содержащего дату. Для дат, сдвинутых ровно на 14
// дней, границы сдвигаются ровно на один период: окна смежные и не
// пересекаются.
func PayPeriodBounds(t time.Time) (start, end time.Time) {
	day := startOfDay(t)

	// ближайшая суббота не позже даты
	daysSinceSaturday := (int(day.Weekday()) + 1) % 7
	lastSaturday := day.AddDate(0, 0, -daysSinceSaturday)

	weeksSinceEpoch := int(lastSaturday.Sub(payPeriodEpoch)/time.Hour) / (24 * 7)
	periodsElapsed := weeksSinceEpoch / 2

	start = payPeriodEpoch.AddDate(0, 0, periodsElapsed*14)
	end = start.AddDate(0, 0, 14).Add(-time.Millisecond)
	return start, end
}

// PayDate — день выплаты: период заканчивается в пятницу, выплата в
// следующий четверг, через 6 дней.
func PayDate(periodEnd time.Time) time.Time {
	return startOfDay(periodEnd).AddDate(0, 0, 6)
}
