package dto

import (
	"github.com/noah-isme/faculty-rota-api/internal/scheduler"
)

// GenerateScheduleRequest is the payload for a schedule generation run.
type GenerateScheduleRequest struct {
	Year          int    `json:"year" validate:"required,min=2000,max=2100"`
	ClearExisting *bool  `json:"clearExisting"`
	Seed          *int64 `json:"seed"`
}

// GenerateScheduleResponse summarises one generation run.
type GenerateScheduleResponse struct {
	Year                int                       `json:"year"`
	TotalWeeks          int                       `json:"totalWeeks"`
	AssignmentsCreated  int                       `json:"assignmentsCreated"`
	ServiceTotals       map[scheduler.Service]int `json:"serviceTotals"`
	StaffingIssues      []scheduler.StaffingIssue `json:"staffingIssues"`
	CapacityIssues      []scheduler.CapacityIssue `json:"capacityIssues"`
	BackToBackPrevented int                       `json:"backToBackPrevented"`
}

// ScheduleViewResponse is the week-by-week rota grid.
type ScheduleViewResponse struct {
	Year          int                  `json:"year"`
	TotalWeeks    int                  `json:"totalWeeks"`
	CompleteWeeks int                  `json:"completeWeeks"`
	Weeks         []scheduler.WeekView `json:"weeks"`
}

// ValidateScheduleResponse reports stored-schedule constraint violations.
type ValidateScheduleResponse struct {
	Year       int                             `json:"year"`
	Valid      bool                            `json:"valid"`
	Violations []scheduler.BackToBackViolation `json:"violations"`
}
