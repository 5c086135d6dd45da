package scheduler

// FacultyProfile is the immutable roster entry for one faculty member.
// A target of 0 permanently excludes the member from that service.
type FacultyProfile struct {
	ID               string
	Name             string
	MICUTarget       int
	AppICUTarget     int
	ProceduresTarget int
	ConsultsTarget   int
}

// Target returns the annual week target for a service.
func (p FacultyProfile) Target(svc Service) int {
	switch svc {
	case ServiceMICU:
		return p.MICUTarget
	case ServiceAppICU:
		return p.AppICUTarget
	case ServiceProcedures:
		return p.ProceduresTarget
	case ServiceConsults:
		return p.ConsultsTarget
	}
	return 0
}

// facultyState tracks one faculty member's capacity over a single run.
// The assigned-week set is shared across all services: the no-back-to-back
// rule applies to any two inpatient assignments, not just within one service.
type facultyState struct {
	profile       FacultyProfile
	assigned      map[Service]int
	assignedWeeks map[int]struct{}
}

func newFacultyState(profile FacultyProfile) *facultyState {
	return &facultyState{
		profile:       profile,
		assigned:      make(map[Service]int, len(serviceOrder)),
		assignedWeeks: make(map[int]struct{}),
	}
}

// canWorkService reports whether capacity remains for the service, allowing
// one week above target (+1 flexibility).
func (s *facultyState) canWorkService(svc Service) bool {
	target := s.profile.Target(svc)
	return target > 0 && s.assigned[svc] < target+1
}

// canWorkWeek reports whether the week keeps at least a one-week gap from
// every existing assignment. Edge weeks are unconstrained on the missing side.
func (s *facultyState) canWorkWeek(weekNumber int) bool {
	if _, taken := s.assignedWeeks[weekNumber]; taken {
		return false
	}
	if _, prev := s.assignedWeeks[weekNumber-1]; prev {
		return false
	}
	if _, next := s.assignedWeeks[weekNumber+1]; next {
		return false
	}
	return true
}

// priorityScore ranks how urgently this member needs an assignment for the
// service. Higher is more urgent; members with a zero target sort below any
// eligible candidate.
func (s *facultyState) priorityScore(svc Service) float64 {
	target := s.profile.Target(svc)
	if target == 0 {
		return -1000
	}
	return float64(target-s.assigned[svc]) / float64(max(1, target))
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// assign records one week of the service. Not idempotent.
func (s *facultyState) assign(svc Service, weekNumber int) {
	s.assigned[svc]++
	s.assignedWeeks[weekNumber] = struct{}{}
}

// variance is assigned minus target; |variance| > 1 is reported as a
// capacity issue after the run.
func (s *facultyState) variance(svc Service) int {
	return s.assigned[svc] - s.profile.Target(svc)
}
