package scheduler

import "fmt"

// Service is an inpatient duty category with a weekly headcount requirement.
type Service string

const (
	ServiceMICU       Service = "MICU"
	ServiceAppICU     Service = "APP-ICU"
	ServiceProcedures Service = "Procedures"
	ServiceConsults   Service = "Consults"
)

// serviceOrder is the fixed priority order in which slots are filled each week.
var serviceOrder = [...]Service{ServiceMICU, ServiceAppICU, ServiceProcedures, ServiceConsults}

// requiredCount returns the per-week headcount requirement for a service.
func requiredCount(svc Service) int {
	if svc == ServiceMICU {
		return 2
	}
	return 1
}

// Services returns the duty categories in fill order.
func Services() []Service {
	return serviceOrder[:]
}

// ParseService maps a persisted service string to its typed value.
func ParseService(raw string) (Service, error) {
	switch Service(raw) {
	case ServiceMICU, ServiceAppICU, ServiceProcedures, ServiceConsults:
		return Service(raw), nil
	}
	return "", fmt.Errorf("unknown service type %q", raw)
}

// WeekRef identifies a scheduling week by year and sequential number.
// Week numbers are contiguous starting at 1; their ordering carries the
// back-to-back adjacency semantics.
type WeekRef struct {
	Year   int
	Number int
}

// ID renders the persistence-boundary string form, e.g. "W01-2026".
func (w WeekRef) ID() string {
	return fmt.Sprintf("W%02d-%d", w.Number, w.Year)
}

// Week is the immutable week input to a generation run.
type Week struct {
	Ref              WeekRef
	Label            string
	Type             string
	MinStaffRequired int
}

// UnavailabilityIndex maps a week to the set of faculty unavailable that week.
type UnavailabilityIndex map[WeekRef]map[string]struct{}

// Add marks a faculty member unavailable for the given week.
func (u UnavailabilityIndex) Add(ref WeekRef, facultyID string) {
	set, ok := u[ref]
	if !ok {
		set = make(map[string]struct{})
		u[ref] = set
	}
	set[facultyID] = struct{}{}
}

// IsUnavailable reports whether the faculty member requested off this week.
func (u UnavailabilityIndex) IsUnavailable(ref WeekRef, facultyID string) bool {
	set, ok := u[ref]
	if !ok {
		return false
	}
	_, unavailable := set[facultyID]
	return unavailable
}
