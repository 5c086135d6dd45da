package models

import "time"

// Faculty represents a faculty member eligible for inpatient service rotations.
// The four week counts are annual targets per service; 0 means the faculty
// member never covers that service.
type Faculty struct {
	ID             string    `db:"id" json:"id"`
	Email          *string   `db:"email" json:"email,omitempty"`
	FullName       string    `db:"full_name" json:"full_name"`
	MICUWeeks      int       `db:"micu_weeks" json:"micu_weeks"`
	AppICUWeeks    int       `db:"app_icu_weeks" json:"app_icu_weeks"`
	ProcedureWeeks int       `db:"procedure_weeks" json:"procedure_weeks"`
	ConsultWeeks   int       `db:"consult_weeks" json:"consult_weeks"`
	Active         bool      `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// FacultyFilter captures filtering options for listing faculty.
type FacultyFilter struct {
	Search string
	Active *bool
}
