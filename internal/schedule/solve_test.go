package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rota-solver/api"
)

// weekStart used throughout: 2024-01-01 is a Monday, so day 0 = Jan 1.
const monday = "2024-01-01"

func slot(day int, period string, required int) api.Slot {
	return api.Slot{LocationID: "L1", RoleID: "R1", DayOfWeek: day, Period: period, Required: required}
}

func employee(id string) api.Employee {
	return api.Employee{ID: id, RoleIDs: []string{"R1"}}
}

func solve(t *testing.T, req *api.SolveRequest) *api.SolveResponse {
	t.Helper()
	resp, _ := Solve(context.Background(), req)
	require.NotNil(t, resp)
	return resp
}

func TestSolveSingleSlotTwoEmployees(t *testing.T) {
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{employee("E1"), employee("E2")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 1)

	sh := resp.Shifts[0]
	assert.Equal(t, "L1", sh.LocationID)
	assert.Equal(t, "R1", sh.RoleID)
	assert.Equal(t, 0, sh.DayOfWeek)
	assert.Equal(t, "morning", sh.Period)
	assert.Contains(t, []string{"E1", "E2"}, sh.EmployeeID)
}

func TestSolveInfeasibleWhenUnderstaffed(t *testing.T) {
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 2)},
		Employees: []api.Employee{employee("E1")},
	})

	require.Equal(t, api.StatusInfeasible, resp.Status)
	assert.NotEmpty(t, resp.InfeasibleReason)
	assert.Empty(t, resp.Shifts)
}

func TestSolveEmptyInput(t *testing.T) {
	cases := []struct {
		name string
		req  *api.SolveRequest
	}{
		{"no slots", &api.SolveRequest{WeekStart: monday, Employees: []api.Employee{employee("E1")}}},
		{"no employees", &api.SolveRequest{WeekStart: monday, Slots: []api.Slot{slot(0, "morning", 1)}}},
		{"all slots zero demand", &api.SolveRequest{
			WeekStart: monday,
			Slots:     []api.Slot{slot(0, "morning", 0)},
			Employees: []api.Employee{employee("E1")},
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := solve(t, c.req)
			require.Equal(t, api.StatusError, resp.Status)
			assert.NotEmpty(t, resp.Error)
			assert.Empty(t, resp.Shifts)
		})
	}
}

func TestSolveCoverageIsExact(t *testing.T) {
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots: []api.Slot{
			slot(0, "morning", 2),
			slot(1, "evening", 1),
		},
		Employees: []api.Employee{employee("E1"), employee("E2"), employee("E3")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 3)

	perSlot := map[[2]any]int{}
	for _, sh := range resp.Shifts {
		perSlot[[2]any{sh.DayOfWeek, sh.Period}]++
	}
	assert.Equal(t, 2, perSlot[[2]any{0, "morning"}])
	assert.Equal(t, 1, perSlot[[2]any{1, "evening"}])
}

func TestSolveHourCapInfeasible(t *testing.T) {
	// Two six-hour morning slots, one employee capped at six hours.
	e := employee("E1")
	e.MaxHours = 6

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots: []api.Slot{
			slot(0, "morning", 1),
			slot(1, "morning", 1),
		},
		Employees: []api.Employee{e},
	})

	require.Equal(t, api.StatusInfeasible, resp.Status)
}

func TestSolveHourCapRespected(t *testing.T) {
	e1 := employee("E1")
	e1.MaxHours = 6

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots: []api.Slot{
			slot(0, "morning", 1),
			slot(1, "morning", 1),
		},
		Employees: []api.Employee{e1, employee("E2")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)

	minutes := map[string]int{}
	for _, sh := range resp.Shifts {
		minutes[sh.EmployeeID] += 360
	}
	assert.LessOrEqual(t, minutes["E1"], 6*60)
	assert.LessOrEqual(t, minutes["E2"], 40*60)
}

func TestSolveOnePerDayInfeasible(t *testing.T) {
	// One employee cannot cover two slots on the same day, even in
	// different periods.
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots: []api.Slot{
			slot(0, "morning", 1),
			slot(0, "evening", 1),
		},
		Employees: []api.Employee{employee("E1")},
	})

	require.Equal(t, api.StatusInfeasible, resp.Status)
}

func TestSolveOnePerDayHolds(t *testing.T) {
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots: []api.Slot{
			slot(0, "morning", 1),
			slot(0, "evening", 1),
		},
		Employees: []api.Employee{employee("E1"), employee("E2")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 2)

	days := map[string]map[int]int{}
	for _, sh := range resp.Shifts {
		if days[sh.EmployeeID] == nil {
			days[sh.EmployeeID] = map[int]int{}
		}
		days[sh.EmployeeID][sh.DayOfWeek]++
	}
	for id, perDay := range days {
		for day, n := range perDay {
			assert.LessOrEqual(t, n, 1, "employee %s works %d slots on day %d", id, n, day)
		}
	}
}

func TestSolveIncompatibleEmployeesNeverShareSlot(t *testing.T) {
	e1 := employee("E1")
	e1.IncompatibleWith = []string{"E2"} // declared from one side only

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 2)},
		Employees: []api.Employee{e1, employee("E2"), employee("E3")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 2)

	assigned := map[string]bool{}
	for _, sh := range resp.Shifts {
		assigned[sh.EmployeeID] = true
	}
	assert.True(t, assigned["E3"])
	assert.False(t, assigned["E1"] && assigned["E2"])
}

func TestSolveIncompatiblePairAloneIsInfeasible(t *testing.T) {
	e1 := employee("E1")
	e1.IncompatibleWith = []string{"E2"}

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 2)},
		Employees: []api.Employee{e1, employee("E2")},
	})

	require.Equal(t, api.StatusInfeasible, resp.Status)
}

func TestSolveFixedAssignmentHonored(t *testing.T) {
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{employee("E1"), employee("E2")},
		FixedAssignments: []api.FixedAssignment{
			{EmployeeID: "E2", LocationID: "L1", RoleID: "R1", DayOfWeek: 0, Period: "morning"},
		},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 1)
	assert.Equal(t, "E2", resp.Shifts[0].EmployeeID)
}

func TestSolveDanglingFixedAssignmentIgnored(t *testing.T) {
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{employee("E1")},
		FixedAssignments: []api.FixedAssignment{
			{EmployeeID: "nobody", LocationID: "L1", RoleID: "R1", DayOfWeek: 0, Period: "morning"},
			{EmployeeID: "E1", LocationID: "L9", RoleID: "R1", DayOfWeek: 0, Period: "morning"},
		},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 1)
	assert.Equal(t, "E1", resp.Shifts[0].EmployeeID)
}

func TestSolvePreferredPeriodWins(t *testing.T) {
	e1 := employee("E1")
	e1.PeriodPreference = "evening"

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots: []api.Slot{
			slot(0, "morning", 1),
			slot(1, "evening", 1),
		},
		Employees: []api.Employee{e1, employee("E2")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 2)

	for _, sh := range resp.Shifts {
		if sh.EmployeeID == "E1" {
			assert.Equal(t, "evening", sh.Period)
		}
	}
}

func TestSolveRoleMismatchExcluded(t *testing.T) {
	e := api.Employee{ID: "E1", RoleIDs: []string{"R2"}}

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{e},
	})

	require.Equal(t, api.StatusInfeasible, resp.Status)
}

func TestSolveTimeOffExcludesDate(t *testing.T) {
	e1 := employee("E1")
	e1.TimeOffDates = []string{"2024-01-01"}

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{e1, employee("E2")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 1)
	assert.Equal(t, "E2", resp.Shifts[0].EmployeeID)
}

func TestSolveExceptionDateExcludes(t *testing.T) {
	e1 := employee("E1")
	e1.ExceptionDates = []string{"2024-01-01"}

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{e1},
	})

	require.Equal(t, api.StatusInfeasible, resp.Status)
}

func TestSolveUnavailableStatusExcludes(t *testing.T) {
	e1 := employee("E1")
	e1.Availability = []api.AvailabilityRecord{
		{DayOfWeek: 0, Period: "morning", Status: "unavailable"},
	}

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{e1, employee("E2")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 1)
	assert.Equal(t, "E2", resp.Shifts[0].EmployeeID)
}

func TestSolveAvoidStatusStillWorkable(t *testing.T) {
	e1 := employee("E1")
	e1.Availability = []api.AvailabilityRecord{
		{DayOfWeek: 0, Period: "morning", Status: "avoid"},
	}

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{e1},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 1)
	assert.Equal(t, "E1", resp.Shifts[0].EmployeeID)
}

func TestSolveAvailabilityOtherDayDoesNotBlock(t *testing.T) {
	e1 := employee("E1")
	e1.Availability = []api.AvailabilityRecord{
		{DayOfWeek: 3, Period: "morning", Status: "unavailable"},
	}

	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(0, "morning", 1)},
		Employees: []api.Employee{e1},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
}

func TestSolveInvalidDayOfWeekIsInfeasible(t *testing.T) {
	// A slot outside the week has no eligible employees at all.
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots:     []api.Slot{slot(7, "morning", 1)},
		Employees: []api.Employee{employee("E1")},
	})

	require.Equal(t, api.StatusInfeasible, resp.Status)
}

func TestSolveShiftsAreSorted(t *testing.T) {
	resp := solve(t, &api.SolveRequest{
		WeekStart: monday,
		Slots: []api.Slot{
			slot(2, "morning", 1),
			slot(0, "evening", 1),
			slot(0, "morning", 1),
		},
		Employees: []api.Employee{employee("E1"), employee("E2"), employee("E3")},
	})

	require.Equal(t, api.StatusOptimal, resp.Status)
	require.Len(t, resp.Shifts, 3)

	assert.Equal(t, 0, resp.Shifts[0].DayOfWeek)
	assert.Equal(t, "evening", resp.Shifts[0].Period)
	assert.Equal(t, 0, resp.Shifts[1].DayOfWeek)
	assert.Equal(t, "morning", resp.Shifts[1].Period)
	assert.Equal(t, 2, resp.Shifts[2].DayOfWeek)
}
