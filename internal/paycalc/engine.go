package paycalc

import (
	"context"
	"time"

	"github.com/evn/shiftpay_backendl/internal/models"
	"github.com/evn/shiftpay_backendl/pkg/workerpool"
)

// RateSource возвращает почасовую ставку пользователя для указанной работы.
// Пустой jobName означает ставку по умолчанию.
type RateSource interface {
	PayRate(ctx context.Context, userID int, jobName string) (float64, error)
}

// WeeklyPay — итоги недели Вс—Сб
type WeeklyPay struct {
	RegularHours      float64 `json:"regular_hours"`
	OTHours           float64 `json:"ot_hours"`
	TotalPaidHours    float64 `json:"total_paid_hours"`
	ExpectedPaidHours float64 `json:"expected_paid_hours"`
	TotalPay          float64 `json:"total_pay"`
	ExpectedPay       float64 `json:"expected_pay"`
}

// PayPeriodPay — итоги двухнедельного платёжного периода
type PayPeriodPay struct {
	Week1             WeeklyPay `json:"week1"`
	Week2             WeeklyPay `json:"week2"`
	TotalRegularHours float64   `json:"total_regular_hours"`
	TotalOTHours      float64   `json:"total_ot_hours"`
	TotalPaidHours    float64   `json:"total_paid_hours"`
	ExpectedPaidHours float64   `json:"expected_paid_hours"`
	TotalPay          float64   `json:"total_pay"`
	ExpectedPay       float64   `json:"expected_pay"`
	PayDate           time.Time `json:"pay_date"`
}

// Engine агрегирует смены в недельные и двухпериодные итоги. Сам по себе
// не имеет состояния: все данные приходят от вызывающего, ставки — из
// RateSource.
type Engine struct {
	cfg   Config
	rates RateSource
	pool  *workerpool.Pool
}

func NewEngine(cfg Config, rates RateSource, pool *workerpool.Pool) *Engine {
	if pool == nil {
		pool = workerpool.New(8, 64)
	}
	return &Engine{cfg: cfg, rates: rates, pool: pool}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// WeekPay считает оплату за одну неделю. Порядок смен имеет значение:
// переработка сверх порога набирается по сменам в порядке их следования,
// поэтому смена, пересекающая порог, делится между обычной и
// сверхурочной ставкой так, как её расположил вызывающий.
func (e *Engine) WeekPay(ctx context.Context, userID int, shifts []models.Shift) WeeklyPay {
	var worked, expected []models.Shift
	for _, s := range shifts {
		switch {
		case s.IsWorked():
			worked = append(worked, s)
		case s.IsScheduled():
			expected = append(expected, s)
		}
	}

	var totalPaidHours float64
	for _, s := range worked {
		totalPaidHours += e.cfg.ActualHours(s).PaidHours
	}

	var expectedPaidHours float64
	for _, s := range expected {
		expectedPaidHours += e.cfg.ExpectedHours(s).PaidHours
	}

	defaultRate := e.defaultRate(ctx, userID)
	rates := e.lookupRates(ctx, userID, worked, defaultRate)

	// Накопительный проход по сменам: часть часов смены до порога идёт по
	// её ставке, часть сверх порога — по ставке с множителем переработки.
	threshold := e.cfg.OvertimeThreshold
	var accumulated, totalPay float64
	for i, s := range worked {
		hours := e.cfg.ActualHours(s).PaidHours
		rate := rates[i]
		if s.IsHoliday {
			rate *= e.cfg.HolidayMultiplier
		}

		regular := hours
		var overtime float64
		if accumulated+hours > threshold {
			regular = threshold - accumulated
			if regular < 0 {
				regular = 0
			}
			overtime = hours - regular
		}

		totalPay += regular*rate + overtime*rate*e.cfg.OvertimeMultiplier
		accumulated += hours
	}

	regularHours := totalPaidHours
	var otHours float64
	if totalPaidHours > threshold {
		regularHours = threshold
		otHours = totalPaidHours - threshold
	}

	// Прогноз строится по ставке по умолчанию, без раскладки по работам.
	projectedHours := totalPaidHours + expectedPaidHours
	projectedRegular := projectedHours
	var projectedOT float64
	if projectedHours > threshold {
		projectedRegular = threshold
		projectedOT = projectedHours - threshold
	}
	expectedPay := projectedRegular*defaultRate + projectedOT*defaultRate*e.cfg.OvertimeMultiplier

	return WeeklyPay{
		RegularHours:      round2(regularHours),
		OTHours:           round2(otHours),
		TotalPaidHours:    round2(totalPaidHours),
		ExpectedPaidHours: round2(expectedPaidHours),
		TotalPay:          round2(totalPay),
		ExpectedPay:       round2(expectedPay),
	}
}

// PeriodPay считает оплату за двухнедельный период. Все смены должны
// принадлежать одному периоду — границы берутся по дате первой смены.
func (e *Engine) PeriodPay(ctx context.Context, userID int, shifts []models.Shift) PayPeriodPay {
	if len(shifts) == 0 {
		_, end := PayPeriodBounds(time.Now())
		return PayPeriodPay{PayDate: PayDate(end)}
	}

	periodStart, periodEnd := PayPeriodBounds(shifts[0].Date)
	week1End := periodStart.AddDate(0, 0, 6)

	var week1Shifts, week2Shifts []models.Shift
	for _, s := range shifts {
		day := startOfDay(s.Date)
		if !day.Before(periodStart) && !day.After(week1End) {
			week1Shifts = append(week1Shifts, s)
		} else if day.After(week1End) {
			week2Shifts = append(week2Shifts, s)
		}
	}

	week1 := e.WeekPay(ctx, userID, week1Shifts)
	week2 := e.WeekPay(ctx, userID, week2Shifts)

	return PayPeriodPay{
		Week1:             week1,
		Week2:             week2,
		TotalRegularHours: round2(week1.RegularHours + week2.RegularHours),
		TotalOTHours:      round2(week1.OTHours + week2.OTHours),
		TotalPaidHours:    round2(week1.TotalPaidHours + week2.TotalPaidHours),
		ExpectedPaidHours: round2(week1.ExpectedPaidHours + week2.ExpectedPaidHours),
		TotalPay:          round2(week1.TotalPay + week2.TotalPay),
		ExpectedPay:       round2(week1.ExpectedPay + week2.ExpectedPay),
		PayDate:           PayDate(periodEnd),
	}
}

// defaultRate — базовая ставка пользователя. При недоступности источника
// ставок отдаём сконфигурированное значение, ошибок наружу не выносим.
func (e *Engine) defaultRate(ctx context.Context, userID int) float64 {
	if e.rates == nil {
		return e.cfg.DefaultRate
	}
	rate, err := e.rates.PayRate(ctx, userID, "")
	if err != nil || rate <= 0 {
		return e.cfg.DefaultRate
	}
	return rate
}

// lookupRates запрашивает ставки всех смен параллельно через пул и
// собирает результаты в исходном порядке. Ошибка поиска по конкретной
// смене деградирует до базовой ставки.
func (e *Engine) lookupRates(ctx context.Context, userID int, worked []models.Shift, defaultRate float64) []float64 {
	rates := make([]float64, len(worked))
	if e.rates == nil {
		for i := range rates {
			rates[i] = defaultRate
		}
		return rates
	}

	results := make([]<-chan workerpool.Result, len(worked))
	for i, s := range worked {
		jobName := s.Job
		results[i] = e.pool.Submit(func() (any, error) {
			return e.rates.PayRate(ctx, userID, jobName)
		})
	}

	for i, ch := range results {
		res := <-ch
		rate, ok := res.Value.(float64)
		if res.Err != nil || !ok || rate <= 0 {
			rates[i] = defaultRate
			continue
		}
		rates[i] = rate
	}
	return rates
}
