package pay

import (
	"log"
	"net/http"
	"time"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	"github.com/evn/shiftpay_backendl/internal/paycalc"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
)

// BestWorstWeeksHandler — лучшая и худшая недели за последний год
// (или за ?from/?to)
func (h *PayHandler) BestWorstWeeksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	from, to := statsRange(r)
	shifts, err := h.repo.GetByRange(r.Context(), userID, from, to)
	if err != nil {
		log.Printf("DB error fetching stats shifts for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to query shifts")
		return
	}

	best, worst := h.engine.BestWorstWeeks(r.Context(), userID, shifts)
	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"best_week":  best,
		"worst_week": worst,
	})
}

// StreakHandler — текущая серия подряд отработанных дней
func (h *PayHandler) StreakHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	from, to := statsRange(r)
	shifts, err := h.repo.GetByRange(r.Context(), userID, from, to)
	if err != nil {
		log.Printf("DB error fetching streak shifts for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to query shifts")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"streak_days": paycalc.StreakDays(shifts, time.Now()),
	})
}

func statsRange(r *http.Request) (time.Time, time.Time) {
	now := time.Now()
	from := now.AddDate(-1, 0, 0)
	to := now

	if s := r.URL.Query().Get("from"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			from = t
		}
	}
	if s := r.URL.Query().Get("to"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			to = t
		}
	}
	return from, to
}
