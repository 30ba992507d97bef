// handlers/admin_users.go
package admin

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/evn/shiftpay_backendl/internal/pkg/response"
)

// ListUsersHandler возвращает список всех пользователей для админов
func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT id, username, first_name, role, status, default_pay_rate, created_at
			FROM users
			ORDER BY created_at DESC
		`)
		if err != nil {
			log.Printf("Database query error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		defer rows.Close()

		var users []map[string]interface{}
		for rows.Next() {
			var user struct {
				ID             int
				Username       string
				FirstName      sql.NullString
				Role           string
				Status         string
				DefaultPayRate float64
				CreatedAt      time.Time
			}

			err := rows.Scan(
				&user.ID,
				&user.Username,
				&user.FirstName,
				&user.Role,
				&user.Status,
				&user.DefaultPayRate,
				&user.CreatedAt,
			)
			if err != nil {
				log.Printf("Error scanning user row: %v", err)
				response.RespondWithError(w, http.StatusInternalServerError, "Failed to read user data")
				return
			}

			users = append(users, map[string]interface{}{
				"id":               user.ID,
				"username":         user.Username,
				"first_name":       user.FirstName.String,
				"role":             user.Role,
				"status":           user.Status,
				"default_pay_rate": user.DefaultPayRate,
				"created_at":       user.CreatedAt.Format(time.RFC3339),
			})
		}

		if err = rows.Err(); err != nil {
			log.Printf("Row iteration error: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Data read error")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, users)
	}
}

// UpdateUserRoleHandler меняет роль пользователя
func UpdateUserRoleHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req struct {
			Role string `json:"role"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
			return
		}

		switch req.Role {
		case "user", "admin", "superadmin":
		default:
			response.RespondWithError(w, http.StatusBadRequest, "Invalid role: "+req.Role)
			return
		}

		res, err := db.Exec("UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2", req.Role, userID)
		if err != nil {
			log.Printf("DB error updating role for user %d: %v", userID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to update role")
			return
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			response.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
			"user_id": userID,
			"role":    req.Role,
		})
	}
}

// DeleteUserHandler удаляет пользователя вместе со сменами (каскад)
func DeleteUserHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.Atoi(chi.URLParam(r, "userID"))
		if err != nil {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		res, err := db.Exec("DELETE FROM users WHERE id = $1", userID)
		if err != nil {
			log.Printf("DB error deleting user %d: %v", userID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to delete user")
			return
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			response.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}

		response.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
	}
}
