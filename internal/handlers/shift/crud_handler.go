package shift

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	"github.com/evn/shiftpay_backendl/internal/models"
	"github.com/evn/shiftpay_backendl/internal/paycalc"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
)

// shiftPayload — тело ручного создания/редактирования смены. Времена в
// RFC3339, дата в формате YYYY-MM-DD.
type shiftPayload struct {
	Date           string `json:"date"`
	ScheduledStart string `json:"scheduled_start"`
	ScheduledEnd   string `json:"scheduled_end"`
	ActualStart    string `json:"actual_start"`
	ActualEnd      string `json:"actual_end"`
	LunchStart     string `json:"lunch_start"`
	LunchEnd       string `json:"lunch_end"`
	IsHoliday      bool   `json:"is_holiday"`
	Job            string `json:"job"`
	Status         string `json:"status"`
	Mood           string `json:"mood"`
	EnergyLevel    *int   `json:"energy_level"`
	BreaksTaken    int    `json:"breaks_taken"`
	Notes          string `json:"notes"`
}

func (p *shiftPayload) apply(s *models.Shift) error {
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return fmt.Errorf("invalid date (expected YYYY-MM-DD): %s", p.Date)
	}
	s.Date = date

	fields := []struct {
		value string
		dst   **time.Time
	}{
		{p.ScheduledStart, &s.ScheduledStart},
		{p.ScheduledEnd, &s.ScheduledEnd},
		{p.ActualStart, &s.ActualStart},
		{p.ActualEnd, &s.ActualEnd},
		{p.LunchStart, &s.LunchStart},
		{p.LunchEnd, &s.LunchEnd},
	}
	for _, f := range fields {
		if f.value == "" {
			*f.dst = nil
			continue
		}
		t, err := time.Parse(time.RFC3339, f.value)
		if err != nil {
			return fmt.Errorf("invalid timestamp: %s", f.value)
		}
		*f.dst = &t
	}

	// обед сохраняется только целиком
	if (s.LunchStart == nil) != (s.LunchEnd == nil) {
		return fmt.Errorf("lunch_start and lunch_end must be set together")
	}

	s.IsHoliday = p.IsHoliday
	s.Job = p.Job
	s.Status = p.Status
	if s.Status == "" {
		s.Status = models.ShiftStatusAccepted
	}
	switch s.Status {
	case models.ShiftStatusAccepted, models.ShiftStatusOffered, models.ShiftStatusDayOff:
	default:
		return fmt.Errorf("invalid status: %s", s.Status)
	}
	s.Mood = p.Mood
	s.EnergyLevel = p.EnergyLevel
	s.BreaksTaken = p.BreaksTaken
	s.Notes = p.Notes
	return nil
}

// ListShiftsHandler возвращает смены за диапазон дат вместе с часами.
// Без параметров отдаёт текущий платёжный период.
func (h *ShiftHandler) ListShiftsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	from, to, err := parseRange(r)
	if err != nil {
		response.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	shifts, err := h.repo.GetByRange(r.Context(), userID, from, to)
	if err != nil {
		log.Printf("DB error fetching shifts for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to query shifts")
		return
	}

	result := make([]map[string]interface{}, 0, len(shifts))
	for _, s := range shifts {
		hours := h.calc.Hours(s)
		result = append(result, map[string]interface{}{
			"shift":       s,
			"total_hours": hours.TotalHours,
			"lunch_hours": hours.LunchHours,
			"paid_hours":  hours.PaidHours,
		})
	}
	response.RespondWithJSON(w, http.StatusOK, result)
}

// CreateShiftHandler — ручное добавление смены (прошлой или будущей)
func (h *ShiftHandler) CreateShiftHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var payload shiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	shift := models.Shift{UserID: userID}
	if err := payload.apply(&shift); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Create(r.Context(), &shift); err != nil {
		log.Printf("DB error inserting shift for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.RespondWithJSON(w, http.StatusCreated, shift)
}

func (h *ShiftHandler) UpdateShiftHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	shiftID, err := strconv.Atoi(chi.URLParam(r, "shiftID"))
	if err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid shift ID")
		return
	}

	shift, err := h.repo.GetByID(r.Context(), shiftID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		response.RespondWithError(w, http.StatusNotFound, "Shift not found")
		return
	} else if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	var payload shiftPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if err := payload.apply(&shift); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.repo.Update(r.Context(), &shift); err != nil {
		log.Printf("DB error updating shift %d: %v", shiftID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, shift)
}

func (h *ShiftHandler) DeleteShiftHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	shiftID, err := strconv.Atoi(chi.URLParam(r, "shiftID"))
	if err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid shift ID")
		return
	}

	err = h.repo.Delete(r.Context(), shiftID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		response.RespondWithError(w, http.StatusNotFound, "Shift not found")
		return
	} else if err != nil {
		log.Printf("DB error deleting shift %d: %v", shiftID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Shift deleted"})
}

// parseRange разбирает ?from=YYYY-MM-DD&to=YYYY-MM-DD; по умолчанию —
// текущий платёжный период.
func parseRange(r *http.Request) (time.Time, time.Time, error) {
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" && toStr == "" {
		from, to := paycalc.PayPeriodBounds(time.Now())
		return from, to, nil
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid from date (expected YYYY-MM-DD)")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid to date (expected YYYY-MM-DD)")
	}
	return from, to, nil
}
