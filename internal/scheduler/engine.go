package scheduler

import (
	"math/rand"
	"sort"
	"time"
)

// Assignment is one generated (faculty, week, service) rota slot.
type Assignment struct {
	FacultyID string
	Week      WeekRef
	Service   Service
}

// StaffingIssue reports a week/service slot that could not be filled to its
// required headcount.
type StaffingIssue struct {
	WeekNumber int     `json:"week"`
	WeekLabel  string  `json:"week_label"`
	Service    Service `json:"service"`
	Required   int     `json:"required"`
	Assigned   int     `json:"assigned"`
}

// CapacityIssue reports a faculty/service pair whose final assigned count
// deviates from target by more than the permitted ±1.
type CapacityIssue struct {
	FacultyID   string  `json:"faculty_id"`
	FacultyName string  `json:"faculty_name"`
	Service     Service `json:"service"`
	Target      int     `json:"target"`
	Assigned    int     `json:"assigned"`
	Variance    int     `json:"variance"`
}

// Result is the complete outcome of one generation run. Infeasibility is
// never an error: whatever could be assigned is returned alongside the
// diagnostic lists.
type Result struct {
	Assignments         []Assignment
	StaffingIssues      []StaffingIssue
	CapacityIssues      []CapacityIssue
	ServiceTotals       map[Service]int
	BackToBackPrevented int
	TotalWeeks          int
}

// Options tunes a generation run.
type Options struct {
	// Rand supplies the tie-break source. Inject a seeded source for
	// reproducible output; when nil a time-seeded source is used.
	Rand *rand.Rand
}

// Generate produces a week-by-service rota for the given roster, weeks and
// unavailability index. Weeks are processed in week-number order and services
// in the fixed order MICU, APP-ICU, Procedures, Consults. Eligible candidates
// are ranked by priority score with a randomized tie-break, and each slot is
// filled up to its required headcount. Shortfalls and end-of-run capacity
// variances are collected as diagnostics; generation never aborts for them.
func Generate(roster []FacultyProfile, weeks []Week, unavailable UnavailabilityIndex, opts Options) Result {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	ordered := make([]Week, len(weeks))
	copy(ordered, weeks)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Ref.Number < ordered[j].Ref.Number
	})

	// Roster order is preserved so a seeded source yields identical runs.
	states := make([]*facultyState, 0, len(roster))
	for _, profile := range roster {
		states = append(states, newFacultyState(profile))
	}

	result := Result{
		ServiceTotals: make(map[Service]int, len(serviceOrder)),
		TotalWeeks:    len(ordered),
	}

	for _, week := range ordered {
		weekNumber := week.Ref.Number
		takenThisWeek := make(map[string]struct{})

		for _, svc := range serviceOrder {
			required := requiredCount(svc)

			pool := make([]candidate, 0, len(states))
			for _, state := range states {
				if unavailable.IsUnavailable(week.Ref, state.profile.ID) {
					continue
				}
				if _, taken := takenThisWeek[state.profile.ID]; taken {
					continue
				}
				if !state.canWorkWeek(weekNumber) {
					result.BackToBackPrevented++
					continue
				}
				if !state.canWorkService(svc) {
					continue
				}
				pool = append(pool, candidate{
					state: state,
					score: state.priorityScore(svc),
					tie:   rng.Float64(),
				})
			}

			sort.Slice(pool, func(i, j int) bool {
				if pool[i].score != pool[j].score {
					return pool[i].score > pool[j].score
				}
				return pool[i].tie > pool[j].tie
			})

			assigned := 0
			for _, cand := range pool {
				if assigned >= required {
					break
				}
				result.Assignments = append(result.Assignments, Assignment{
					FacultyID: cand.state.profile.ID,
					Week:      week.Ref,
					Service:   svc,
				})
				takenThisWeek[cand.state.profile.ID] = struct{}{}
				cand.state.assign(svc, weekNumber)
				result.ServiceTotals[svc]++
				assigned++
			}

			if assigned < required {
				result.StaffingIssues = append(result.StaffingIssues, StaffingIssue{
					WeekNumber: weekNumber,
					WeekLabel:  week.Label,
					Service:    svc,
					Required:   required,
					Assigned:   assigned,
				})
			}
		}
	}

	for _, state := range states {
		for _, svc := range serviceOrder {
			target := state.profile.Target(svc)
			if target == 0 {
				continue
			}
			if diff := state.variance(svc); diff > 1 || diff < -1 {
				result.CapacityIssues = append(result.CapacityIssues, CapacityIssue{
					FacultyID:   state.profile.ID,
					FacultyName: state.profile.Name,
					Service:     svc,
					Target:      target,
					Assigned:    state.assigned[svc],
					Variance:    diff,
				})
			}
		}
	}

	return result
}

type candidate struct {
	state *facultyState
	score float64
	tie   float64
}
