package models

// Job — именованная работа пользователя со своей почасовой ставкой.
// Смена без job оплачивается по ставке пользователя по умолчанию.
type Job struct {
	ID      int     `json:"id"`
	UserID  int     `json:"user_id"`
	JobName string  `json:"job_name"`
	PayRate float64 `json:"pay_rate"`
}
