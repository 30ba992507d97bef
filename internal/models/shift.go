package models

import "time"

// Статусы смены
const (
	ShiftStatusAccepted = "accepted"
	ShiftStatusOffered  = "offered"
	ShiftStatusDayOff   = "day_off"
)

type Shift struct {
	ID             int        `json:"id"`
	UserID         int        `json:"user_id"`
	Date           time.Time  `json:"date"`
	ScheduledStart *time.Time `json:"scheduled_start"`
	ScheduledEnd   *time.Time `json:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start"`
	ActualEnd      *time.Time `json:"actual_end"`
	LunchStart     *time.Time `json:"lunch_start"`
	LunchEnd       *time.Time `json:"lunch_end"`
	IsHoliday      bool       `json:"is_holiday"`
	Job            string     `json:"job,omitempty"`
	Status         string     `json:"status"`
	Mood           string     `json:"mood,omitempty"`
	EnergyLevel    *int       `json:"energy_level,omitempty"`
	BreaksTaken    int        `json:"breaks_taken"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsWorked — смена отработана: проставлены оба фактических времени.
func (s *Shift) IsWorked() bool {
	return s.ActualStart != nil && s.ActualEnd != nil
}

// IsScheduled — смена запланирована, но ещё не начата.
func (s *Shift) IsScheduled() bool {
	return s.ActualStart == nil && s.ScheduledStart != nil && s.ScheduledEnd != nil
}
