package scheduler

import "sort"

// FacultyRef is a display reference to an assigned faculty member.
type FacultyRef struct {
	FacultyID   string `json:"faculty_id"`
	FacultyName string `json:"faculty_name"`
}

// WeekView is one week of the rendered schedule grid.
type WeekView struct {
	Ref         WeekRef                  `json:"-"`
	WeekID      string                   `json:"week_id"`
	WeekNumber  int                      `json:"week_number"`
	Label       string                   `json:"label"`
	WeekType    string                   `json:"week_type"`
	Assignments map[Service][]FacultyRef `json:"assignments"`
	IsComplete  bool                     `json:"is_complete"`
}

// BuildView groups assignments by week and service, in week-number order.
// A week is complete only when every service meets its exact required
// headcount; the ±1 capacity flexibility does not soften this check.
func BuildView(weeks []Week, assignments []Assignment, names map[string]string) []WeekView {
	byWeek := make(map[WeekRef]map[Service][]FacultyRef, len(weeks))
	for _, a := range assignments {
		services, ok := byWeek[a.Week]
		if !ok {
			services = make(map[Service][]FacultyRef, len(serviceOrder))
			byWeek[a.Week] = services
		}
		name, ok := names[a.FacultyID]
		if !ok {
			name = a.FacultyID
		}
		services[a.Service] = append(services[a.Service], FacultyRef{
			FacultyID:   a.FacultyID,
			FacultyName: name,
		})
	}

	ordered := make([]Week, len(weeks))
	copy(ordered, weeks)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Ref.Number < ordered[j].Ref.Number
	})

	views := make([]WeekView, 0, len(ordered))
	for _, week := range ordered {
		services := byWeek[week.Ref]
		grid := make(map[Service][]FacultyRef, len(serviceOrder))
		complete := true
		for _, svc := range serviceOrder {
			refs := services[svc]
			if refs == nil {
				refs = []FacultyRef{}
			}
			grid[svc] = refs
			if len(refs) != requiredCount(svc) {
				complete = false
			}
		}
		views = append(views, WeekView{
			Ref:         week.Ref,
			WeekID:      week.Ref.ID(),
			WeekNumber:  week.Ref.Number,
			Label:       week.Label,
			WeekType:    week.Type,
			Assignments: grid,
			IsComplete:  complete,
		})
	}

	return views
}

// CompleteWeeks counts fully staffed weeks in a rendered view.
func CompleteWeeks(views []WeekView) int {
	count := 0
	for _, view := range views {
		if view.IsComplete {
			count++
		}
	}
	return count
}
