package shift

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	"github.com/evn/shiftpay_backendl/internal/models"
	"github.com/evn/shiftpay_backendl/internal/paycalc"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
	"github.com/evn/shiftpay_backendl/internal/repositories"
	"github.com/evn/shiftpay_backendl/internal/services/ws"
)

// ShiftHandler объединяет операции над сменами: часы, CRUD и импорт.
type ShiftHandler struct {
	repo    *repositories.ShiftRepository
	calc    paycalc.Config
	manager *ws.Manager
}

func NewShiftHandler(db *sql.DB, calc paycalc.Config, manager *ws.Manager) *ShiftHandler {
	return &ShiftHandler{
		repo:    repositories.NewShiftRepository(db),
		calc:    calc,
		manager: manager,
	}
}

// ClockInHandler открывает новую смену. Повторный clock-in при открытой
// смене запрещён.
func (h *ShiftHandler) ClockInHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if _, err := h.repo.GetActive(r.Context(), userID); err == nil {
		response.RespondWithError(w, http.StatusBadRequest, "Shift already active")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("DB error checking active shift for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req struct {
		Job       string `json:"job"`
		IsHoliday bool   `json:"is_holiday"`
		Notes     string `json:"notes"`
	}
	// тело необязательно: clock-in без параметров тоже валиден
	_ = json.NewDecoder(r.Body).Decode(&req)

	now := time.Now()
	shift := models.Shift{
		UserID:      userID,
		Date:        now,
		ActualStart: &now,
		IsHoliday:   req.IsHoliday,
		Job:         req.Job,
		Status:      models.ShiftStatusAccepted,
		Notes:       req.Notes,
	}

	if err := h.repo.Create(r.Context(), &shift); err != nil {
		log.Printf("DB error inserting shift for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.notify(userID, "clock_in", &shift)
	response.RespondWithJSON(w, http.StatusCreated, shift)
}

// ClockOutHandler закрывает открытую смену. Незакрытый обед закрывается
// тем же моментом, чтобы пара lunch_start/lunch_end осталась целой.
func (h *ShiftHandler) ClockOutHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	shift, err := h.repo.GetActive(r.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		response.RespondWithError(w, http.StatusBadRequest, "No active shift found")
		return
	} else if err != nil {
		log.Printf("DB error fetching active shift for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	now := time.Now()
	shift.ActualEnd = &now
	if shift.LunchStart != nil && shift.LunchEnd == nil {
		shift.LunchEnd = &now
	}

	if err := h.repo.Update(r.Context(), &shift); err != nil {
		log.Printf("DB error ending shift %d: %v", shift.ID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hours := h.calc.ActualHours(shift)
	h.notify(userID, "clock_out", &shift)

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Shift ended",
		"shift":       shift,
		"total_hours": hours.TotalHours,
		"lunch_hours": hours.LunchHours,
		"paid_hours":  hours.PaidHours,
		"worked_time": response.FormatHours(hours.PaidHours),
	})
}

// LunchStartHandler открывает обед у активной смены
func (h *ShiftHandler) LunchStartHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	shift, err := h.repo.GetActive(r.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		response.RespondWithError(w, http.StatusBadRequest, "No active shift found")
		return
	} else if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if shift.LunchStart != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Lunch already recorded for this shift")
		return
	}

	now := time.Now()
	shift.LunchStart = &now
	if err := h.repo.Update(r.Context(), &shift); err != nil {
		log.Printf("DB error starting lunch for shift %d: %v", shift.ID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.notify(userID, "lunch_start", &shift)
	response.RespondWithJSON(w, http.StatusOK, shift)
}

// LunchEndHandler закрывает открытый обед
func (h *ShiftHandler) LunchEndHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	shift, err := h.repo.GetActive(r.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		response.RespondWithError(w, http.StatusBadRequest, "No active shift found")
		return
	} else if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if shift.LunchStart == nil || shift.LunchEnd != nil {
		response.RespondWithError(w, http.StatusBadRequest, "No open lunch to end")
		return
	}

	now := time.Now()
	shift.LunchEnd = &now
	if err := h.repo.Update(r.Context(), &shift); err != nil {
		log.Printf("DB error ending lunch for shift %d: %v", shift.ID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	h.notify(userID, "lunch_end", &shift)
	response.RespondWithJSON(w, http.StatusOK, shift)
}

// GetActiveShiftHandler возвращает открытую смену или null
func (h *ShiftHandler) GetActiveShiftHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	shift, err := h.repo.GetActive(r.Context(), userID)
	if errors.Is(err, sql.ErrNoRows) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("null"))
		return
	} else if err != nil {
		log.Printf("DB error fetching active shift for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, shift)
}

// notify обновляет снимок в Redis и шлёт событие в websocket
func (h *ShiftHandler) notify(userID int, event string, shift *models.Shift) {
	if h.manager == nil {
		return
	}
	if h.manager.Store != nil {
		if shift.ActualEnd == nil && shift.ActualStart != nil {
			if err := h.manager.Store.SaveActiveShift(shift); err != nil {
				log.Printf("Failed to save active shift snapshot: %v", err)
			}
		} else {
			if err := h.manager.Store.ClearActiveShift(userID); err != nil {
				log.Printf("Failed to clear active shift snapshot: %v", err)
			}
		}
	}
	h.manager.NotifyUser(userID, event, shift)
}
