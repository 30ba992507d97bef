package pay

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	"github.com/evn/shiftpay_backendl/internal/paycalc"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
	"github.com/evn/shiftpay_backendl/internal/repositories"
)

// PayHandler отдаёт недельные и двухнедельные итоги с расчётом "на руки"
type PayHandler struct {
	repo     *repositories.ShiftRepository
	engine   *paycalc.Engine
	taxRates paycalc.TaxRates
}

func NewPayHandler(db *sql.DB, engine *paycalc.Engine, taxRates paycalc.TaxRates) *PayHandler {
	return &PayHandler{
		repo:     repositories.NewShiftRepository(db),
		engine:   engine,
		taxRates: taxRates,
	}
}

// WeekPayHandler — итоги недели, содержащей ?date= (по умолчанию сегодня)
func (h *PayHandler) WeekPayHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	date, err := parseDateParam(r)
	if err != nil {
		response.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, end := paycalc.WeekBounds(date)
	shifts, err := h.repo.GetByRange(r.Context(), userID, start, end)
	if err != nil {
		log.Printf("DB error fetching week shifts for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to query shifts")
		return
	}

	week := h.engine.WeekPay(r.Context(), userID, shifts)
	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"week_start": start.Format("2006-01-02"),
		"week_end":   end.Format("2006-01-02"),
		"pay":        week,
		"net_pay":    paycalc.NetPay(week.TotalPay, h.taxRates),
	})
}

// PeriodPayHandler — итоги платёжного периода, содержащего ?date=
func (h *PayHandler) PeriodPayHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	date, err := parseDateParam(r)
	if err != nil {
		response.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	start, end := paycalc.PayPeriodBounds(date)
	shifts, err := h.repo.GetByRange(r.Context(), userID, start, end)
	if err != nil {
		log.Printf("DB error fetching period shifts for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to query shifts")
		return
	}

	period := h.engine.PeriodPay(r.Context(), userID, shifts)
	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"period_start": start.Format("2006-01-02"),
		"period_end":   end.Format("2006-01-02"),
		"pay_date":     period.PayDate.Format("2006-01-02"),
		"pay":          period,
		"net_pay":      paycalc.NetPay(period.TotalPay, h.taxRates),
	})
}

// NetPayHandler — разбивка произвольной брутто-суммы: ?gross=1000
func (h *PayHandler) NetPayHandler(w http.ResponseWriter, r *http.Request) {
	grossStr := r.URL.Query().Get("gross")
	gross, err := strconv.ParseFloat(grossStr, 64)
	if err != nil || gross < 0 {
		response.RespondWithError(w, http.StatusBadRequest, "gross must be a non-negative number")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, paycalc.NetPay(gross, h.taxRates))
}

func parseDateParam(r *http.Request) (time.Time, error) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date (expected YYYY-MM-DD)")
	}
	return t, nil
}
