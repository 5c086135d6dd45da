package scheduler

import "sort"

// BackToBackViolation records two consecutive-week assignments for one
// faculty member, in any combination of services.
type BackToBackViolation struct {
	FacultyID  string `json:"faculty_id"`
	FirstWeek  int    `json:"week1"`
	SecondWeek int    `json:"week2"`
}

// Validate scans persisted assignments for back-to-back violations. The
// generator never produces any by construction; this catches violations
// introduced afterwards, e.g. by manual edits. The output is deterministic
// for a given input, so repeated validation yields identical lists.
func Validate(assignments []Assignment) []BackToBackViolation {
	weeksByFaculty := make(map[string]map[int]struct{})
	for _, a := range assignments {
		set, ok := weeksByFaculty[a.FacultyID]
		if !ok {
			set = make(map[int]struct{})
			weeksByFaculty[a.FacultyID] = set
		}
		set[a.Week.Number] = struct{}{}
	}

	facultyIDs := make([]string, 0, len(weeksByFaculty))
	for id := range weeksByFaculty {
		facultyIDs = append(facultyIDs, id)
	}
	sort.Strings(facultyIDs)

	var violations []BackToBackViolation
	for _, id := range facultyIDs {
		weeks := make([]int, 0, len(weeksByFaculty[id]))
		for number := range weeksByFaculty[id] {
			weeks = append(weeks, number)
		}
		sort.Ints(weeks)
		for i := 0; i+1 < len(weeks); i++ {
			if weeks[i+1]-weeks[i] == 1 {
				violations = append(violations, BackToBackViolation{
					FacultyID:  id,
					FirstWeek:  weeks[i],
					SecondWeek: weeks[i+1],
				})
			}
		}
	}

	return violations
}
