package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanWorkServiceRespectsTargets(t *testing.T) {
	state := newFacultyState(FacultyProfile{ID: "f1", MICUTarget: 2})

	assert.True(t, state.canWorkService(ServiceMICU))
	assert.False(t, state.canWorkService(ServiceConsults), "zero target excludes the service entirely")

	state.assign(ServiceMICU, 1)
	state.assign(ServiceMICU, 3)
	assert.True(t, state.canWorkService(ServiceMICU), "one week above target is allowed")

	state.assign(ServiceMICU, 5)
	assert.False(t, state.canWorkService(ServiceMICU), "target+1 is the ceiling")
}

func TestCanWorkWeekEnforcesGap(t *testing.T) {
	state := newFacultyState(FacultyProfile{ID: "f1", MICUTarget: 10})
	state.assign(ServiceMICU, 5)

	assert.False(t, state.canWorkWeek(4), "previous week adjacency")
	assert.False(t, state.canWorkWeek(5), "already assigned this week")
	assert.False(t, state.canWorkWeek(6), "next week adjacency")
	assert.True(t, state.canWorkWeek(3))
	assert.True(t, state.canWorkWeek(7))
}

func TestCanWorkWeekCrossesServices(t *testing.T) {
	state := newFacultyState(FacultyProfile{ID: "f1", MICUTarget: 5, ConsultsTarget: 5})
	state.assign(ServiceMICU, 3)

	// A MICU week blocks a Consults assignment the week after.
	assert.False(t, state.canWorkWeek(4))
}

func TestCanWorkWeekEdgeWeeks(t *testing.T) {
	state := newFacultyState(FacultyProfile{ID: "f1", MICUTarget: 5})

	assert.True(t, state.canWorkWeek(1), "week 1 has no predecessor")

	state.assign(ServiceMICU, 1)
	assert.True(t, state.canWorkWeek(52), "final week has no successor")
}

func TestPriorityScore(t *testing.T) {
	state := newFacultyState(FacultyProfile{ID: "f1", MICUTarget: 4})

	assert.InDelta(t, 1.0, state.priorityScore(ServiceMICU), 1e-9)
	assert.Equal(t, float64(-1000), state.priorityScore(ServiceConsults))

	state.assign(ServiceMICU, 1)
	state.assign(ServiceMICU, 3)
	assert.InDelta(t, 0.5, state.priorityScore(ServiceMICU), 1e-9)

	state.assign(ServiceMICU, 5)
	state.assign(ServiceMICU, 7)
	assert.InDelta(t, 0.0, state.priorityScore(ServiceMICU), 1e-9)

	state.assign(ServiceMICU, 9)
	assert.Less(t, state.priorityScore(ServiceMICU), 0.0, "score keeps falling past target")
}

func TestVariance(t *testing.T) {
	state := newFacultyState(FacultyProfile{ID: "f1", ProceduresTarget: 3})
	state.assign(ServiceProcedures, 1)

	assert.Equal(t, -2, state.variance(ServiceProcedures))
}
