package models

import "time"

// Unavailability request statuses. Faculty marked "unavailable" are excluded
// from that week's eligible pool; "available" volunteers are accepted by the
// input model but not treated preferentially by the generator.
const (
	RequestStatusUnavailable = "unavailable"
	RequestStatusAvailable   = "available"
)

// UnavailabilityRequest records a faculty member's availability declaration
// for one service week.
type UnavailabilityRequest struct {
	ID           string    `db:"id" json:"id"`
	FacultyID    string    `db:"faculty_id" json:"faculty_id"`
	WeekID       string    `db:"week_id" json:"week_id"`
	Status       string    `db:"status" json:"status"`
	PointsSpent  int       `db:"points_spent" json:"points_spent"`
	PointsEarned int       `db:"points_earned" json:"points_earned"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
