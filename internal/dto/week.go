package dto

import "github.com/noah-isme/faculty-rota-api/internal/models"

// GenerateWeeksRequest is the payload for annual week generation.
// StartDate marks the Monday of week 1 in YYYY-MM-DD form. SpringBreakWeek
// optionally tags one week number as spring break.
type GenerateWeeksRequest struct {
	Year            int    `json:"year" validate:"required,min=2000,max=2100"`
	StartDate       string `json:"startDate" validate:"required,datetime=2006-01-02"`
	SpringBreakWeek int    `json:"springBreakWeek" validate:"omitempty,min=1,max=52"`
}

// GenerateWeeksResponse reports the generated week set.
type GenerateWeeksResponse struct {
	Year  int                  `json:"year"`
	Count int                  `json:"count"`
	Weeks []models.ServiceWeek `json:"weeks"`
}
