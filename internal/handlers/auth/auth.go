package auth

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/evn/shiftpay_backendl/internal/pkg/response"
	services "github.com/evn/shiftpay_backendl/internal/services/auth"
)

type AuthHandler struct {
	db         *sql.DB
	jwtService *services.JWTService
	tgService  *services.TelegramAuthService
}

func NewAuthHandler(db *sql.DB, jwtService *services.JWTService, tgService *services.TelegramAuthService) *AuthHandler {
	return &AuthHandler{
		db:         db,
		jwtService: jwtService,
		tgService:  tgService,
	}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var regData struct {
		Username  string `json:"username"`
		FirstName string `json:"first_name"`
		Password  string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&regData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	if regData.Username == "" || regData.Password == "" {
		response.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = $1", regData.Username).Scan(&count)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if count > 0 {
		response.RespondWithError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	passwordHash, err := services.HashPassword(regData.Password)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO users (username, first_name, password_hash, role, status)
		VALUES ($1, $2, $3, 'user', 'active')`,
		regData.Username,
		regData.FirstName,
		passwordHash,
	)

	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	response.RespondWithJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully",
	})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var loginData struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&loginData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	var user struct {
		ID           int
		Username     string
		PasswordHash string
		Role         string
		Status       string
	}

	row := h.db.QueryRow(`
		SELECT id, username, password_hash, role, status
		FROM users
		WHERE LOWER(username) = LOWER($1)`,
		loginData.Username,
	)

	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			response.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		} else {
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !services.CheckPasswordHash(loginData.Password, user.PasswordHash) {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, refreshToken, err := h.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{
		"token":         token,
		"refresh_token": refreshToken,
		"role":          user.Role,
	})
}

func (h *AuthHandler) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		response.RespondWithError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	userID, err := h.jwtService.ExchangeRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	var username, role string
	err = h.db.QueryRow("SELECT username, role FROM users WHERE id = $1", userID).Scan(&username, &role)
	if err != nil {
		response.RespondWithError(w, http.StatusUnauthorized, "User not found")
		return
	}

	token, refreshToken, err := h.jwtService.GenerateToken(userID, username, role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{
		"token":         token,
		"refresh_token": refreshToken,
		"role":          role,
	})
}

// TelegramAuthHandler — вход через Telegram Login Widget
func (h *AuthHandler) TelegramAuthHandler(w http.ResponseWriter, r *http.Request) {
	var data map[string]string
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	validated, err := h.tgService.ValidateAndExtract(data)
	if err != nil {
		log.Printf("Telegram auth failed: %v", err)
		response.RespondWithError(w, http.StatusUnauthorized, "Telegram auth failed")
		return
	}

	telegramID, err := strconv.ParseInt(validated["id"], 10, 64)
	if err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid telegram id")
		return
	}

	var user struct {
		ID       int
		Username string
		Role     string
	}
	err = h.db.QueryRow(
		"SELECT id, username, role FROM users WHERE telegram_id = $1", telegramID,
	).Scan(&user.ID, &user.Username, &user.Role)

	if errors.Is(err, sql.ErrNoRows) {
		// первый вход — создаём аккаунт
		username := validated["username"]
		if username == "" {
			username = "tg_" + validated["id"]
		}
		err = h.db.QueryRow(`
			INSERT INTO users (username, first_name, password_hash, role, status, telegram_id)
			VALUES ($1, $2, '', 'user', 'active', $3)
			RETURNING id`,
			username, validated["first_name"], telegramID,
		).Scan(&user.ID)
		if err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}
		user.Username = username
		user.Role = "user"
	} else if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, refreshToken, err := h.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, map[string]string{
		"token":         token,
		"refresh_token": refreshToken,
		"role":          user.Role,
	})
}

func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	// тело может быть пустым — logout без refresh-токена тоже валиден
	_ = json.NewDecoder(r.Body).Decode(&req)
	h.jwtService.RevokeRefreshToken(r.Context(), req.RefreshToken)

	response.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
