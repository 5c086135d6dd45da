package models

import "time"

// ServiceWeekAssignment persists one (faculty, week, service) rota slot.
type ServiceWeekAssignment struct {
	ID          string    `db:"id" json:"id"`
	FacultyID   string    `db:"faculty_id" json:"faculty_id"`
	WeekID      string    `db:"week_id" json:"week_id"`
	ServiceType string    `db:"service_type" json:"service_type"`
	Imported    bool      `db:"imported" json:"imported"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
