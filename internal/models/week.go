package models

import "time"

// Week type tags assigned during annual generation. Informational to the
// scheduler; they drive point values for the availability marketplace.
const (
	WeekTypeRegular      = "regular"
	WeekTypeSummer       = "summer"
	WeekTypeSpringBreak  = "spring_break"
	WeekTypeThanksgiving = "thanksgiving"
	WeekTypeChristmas    = "christmas"
)

// ServiceWeek is one of the 52 scheduling weeks of an academic year.
// IDs follow the "W%02d-%d" convention, e.g. "W01-2026".
type ServiceWeek struct {
	ID               string    `db:"id" json:"id"`
	Year             int       `db:"year" json:"year"`
	WeekNumber       int       `db:"week_number" json:"week_number"`
	Label            string    `db:"label" json:"label"`
	StartDate        time.Time `db:"start_date" json:"start_date"`
	EndDate          time.Time `db:"end_date" json:"end_date"`
	WeekType         string    `db:"week_type" json:"week_type"`
	PointCostOff     int       `db:"point_cost_off" json:"point_cost_off"`
	PointRewardWork  int       `db:"point_reward_work" json:"point_reward_work"`
	MinStaffRequired int       `db:"min_staff_required" json:"min_staff_required"`
}
