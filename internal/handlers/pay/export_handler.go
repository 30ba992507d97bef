package pay

import (
	"fmt"
	"log"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	"github.com/evn/shiftpay_backendl/internal/paycalc"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
)

// ExportPeriodHandler выгружает платёжный период в Excel: смены плюс
// итоги с удержаниями.
func (h *PayHandler) ExportPeriodHandler(w http.ResponseWriter, r *http.Request) {
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
	net := paycalc.NetPay(period.TotalPay, h.taxRates)
	cfg := h.engine.Config()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{"Date", "Start", "End", "Lunch (h)", "Paid (h)", "Job", "Holiday", "Status"}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	row := 2
	for _, s := range shifts {
		hours := cfg.Hours(s)
		startStr, endStr := "", ""
		if s.ActualStart != nil {
			startStr = s.ActualStart.Format("15:04")
		} else if s.ScheduledStart != nil {
			startStr = s.ScheduledStart.Format("15:04")
		}
		if s.ActualEnd != nil {
			endStr = s.ActualEnd.Format("15:04")
		} else if s.ScheduledEnd != nil {
			endStr = s.ScheduledEnd.Format("15:04")
		}

		values := []interface{}{
			s.Date.Format("2006-01-02"), startStr, endStr,
			hours.LunchHours, hours.PaidHours, s.Job, s.IsHoliday, s.Status,
		}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, row)
			f.SetCellValue(sheet, cell, v)
		}
		row++
	}

	row++ // пустая строка перед итогами
	totals := [][2]interface{}{
		{"Period", fmt.Sprintf("%s — %s", start.Format("2006-01-02"), end.Format("2006-01-02"))},
		{"Pay date", period.PayDate.Format("2006-01-02")},
		{"Regular hours", period.TotalRegularHours},
		{"Overtime hours", period.TotalOTHours},
		{"Gross pay", period.TotalPay},
		{"Federal", net.Federal},
		{"State", net.State},
		{"Social Security", net.SocialSecurity},
		{"Medicare", net.Medicare},
		{"Net pay", net.NetPay},
	}
	for _, pair := range totals {
		cellA, _ := excelize.CoordinatesToCellName(1, row)
		cellB, _ := excelize.CoordinatesToCellName(2, row)
		f.SetCellValue(sheet, cellA, pair[0])
		f.SetCellValue(sheet, cellB, pair[1])
		row++
	}

	filename := fmt.Sprintf("pay_period_%s.xlsx", start.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := f.Write(w); err != nil {
		log.Printf("Failed to write xlsx export for user %d: %v", userID, err)
	}
}
