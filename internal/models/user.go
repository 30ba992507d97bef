package models

import "time"

type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	FirstName      string    `json:"first_name"`
	Role           string    `json:"role"`
	Status         string    `json:"status"`
	DefaultPayRate float64   `json:"default_pay_rate"`
	TelegramID     *int64    `json:"telegram_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
