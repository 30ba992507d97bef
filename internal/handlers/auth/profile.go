package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/evn/shiftpay_backendl/internal/middleware"
	"github.com/evn/shiftpay_backendl/internal/pkg/response"
)

type ProfileHandler struct {
	db *sql.DB
}

func NewProfileHandler(db *sql.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var profile struct {
		ID             int     `json:"id"`
		Username       string  `json:"username"`
		FirstName      string  `json:"first_name"`
		Role           string  `json:"role"`
		DefaultPayRate float64 `json:"default_pay_rate"`
	}

	err := h.db.QueryRow(`
		SELECT id, username, first_name, role, default_pay_rate
		FROM users WHERE id = $1`, userID,
	).Scan(&profile.ID, &profile.Username, &profile.FirstName, &profile.Role, &profile.DefaultPayRate)

	if errors.Is(err, sql.ErrNoRows) {
		response.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	} else if err != nil {
		log.Printf("DB error fetching profile for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, profile)
}

// UpdatePayRate меняет базовую почасовую ставку пользователя
func (h *ProfileHandler) UpdatePayRate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req struct {
		PayRate float64 `json:"pay_rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.PayRate <= 0 {
		response.RespondWithError(w, http.StatusBadRequest, "pay_rate must be positive")
		return
	}

	_, err := h.db.Exec(
		"UPDATE users SET default_pay_rate = $1, updated_at = NOW() WHERE id = $2",
		req.PayRate, userID)
	if err != nil {
		log.Printf("DB error updating pay rate for user %d: %v", userID, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Pay rate updated",
		"pay_rate": req.PayRate,
	})
}
