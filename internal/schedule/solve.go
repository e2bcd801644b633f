// Package schedule builds a weekly rota by encoding slot demand, employee
// availability and workload rules as a boolean constraint model and handing
// it to the cp optimizer. Solve is the single entry point used by every
// transport adapter.
package schedule

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"time"

	"rota-solver/api"
	"rota-solver/internal/cp"
)

// DefaultTimeout bounds a solve when the caller's context carries no deadline.
const DefaultTimeout = 30 * time.Second

const infeasibleReason = "no assignment satisfies all constraints; check required counts, availability and workload limits"

const defaultMaxHours = 40

type pair struct {
	emp  int
	slot int
}

type slotKey struct {
	locationID string
	roleID     string
	dayOfWeek  int
	period     string
}

// Solve builds the model for one week, runs a single bounded solve and maps
// the outcome to a response. It never fails: malformed or unmeetable input
// comes back as a status inside the response.
func Solve(ctx context.Context, req *api.SolveRequest) (*api.SolveResponse, cp.Stats) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	times := req.PeriodTimes
	if len(times) == 0 {
		times = DefaultPeriodTimes()
	}

	slots := make([]api.Slot, 0, len(req.Slots))
	for _, s := range req.Slots {
		if s.Required > 0 {
			slots = append(slots, s)
		}
	}
	emps := req.Employees
	dates := weekDates(req.WeekStart)

	if len(slots) == 0 || len(emps) == 0 {
		return &api.SolveResponse{
			Status: api.StatusError,
			Error:  "no slots with positive demand or no employees",
		}, cp.Stats{}
	}

	model := cp.NewModel()

	// One variable per a-priori eligible (employee, slot) pair; the map stays
	// sparse on purpose, ineligible pairs simply do not exist.
	vars := make(map[pair]cp.Var)
	for e := range emps {
		for s := range slots {
			if canWork(&emps[e], &slots[s], &dates) {
				vars[pair{emp: e, slot: s}] = model.NewBoolVar()
			}
		}
	}

	addCoverage(model, vars, slots, len(emps))
	addHourCaps(model, vars, slots, emps, times)
	addOnePerDay(model, vars, slots, len(emps))
	addIncompatibilities(model, vars, slots, emps)
	addFixedAssignments(model, vars, slots, emps, req.FixedAssignments)
	model.Minimize(objective(vars, slots, emps))

	res := model.Solve(ctx)

	switch res.Status {
	case cp.Optimal, cp.Feasible:
		status := api.StatusOptimal
		if res.Status == cp.Feasible {
			status = api.StatusFeasible
		}
		return &api.SolveResponse{
			Status: status,
			Shifts: extractShifts(res.Values, vars, slots, emps),
		}, res.Stats
	case cp.Infeasible:
		return &api.SolveResponse{
			Status:           api.StatusInfeasible,
			InfeasibleReason: infeasibleReason,
		}, res.Stats
	default:
		return &api.SolveResponse{
			Status: api.StatusError,
			Error:  fmt.Sprintf("no solution found (status=%s)", res.Status),
		}, res.Stats
	}
}

// addCoverage demands exactly required assignees per slot. A slot with fewer
// eligible employees than required yields an unsatisfiable equality, which is
// the intended way to surface understaffing as infeasibility.
func addCoverage(model *cp.Model, vars map[pair]cp.Var, slots []api.Slot, nEmp int) {
	for s := range slots {
		var vs []cp.Var
		for e := 0; e < nEmp; e++ {
			if v, ok := vars[pair{emp: e, slot: s}]; ok {
				vs = append(vs, v)
			}
		}
		model.AddSumEq(vs, slots[s].Required)
	}
}

func addHourCaps(model *cp.Model, vars map[pair]cp.Var, slots []api.Slot, emps []api.Employee, times map[string]api.PeriodTime) {
	for e := range emps {
		maxHours := emps[e].MaxHours
		if maxHours == 0 {
			maxHours = defaultMaxHours
		}
		var vs []cp.Var
		var ws []int
		for s := range slots {
			if v, ok := vars[pair{emp: e, slot: s}]; ok {
				vs = append(vs, v)
				ws = append(ws, periodMinutes(slots[s].Period, times))
			}
		}
		if len(vs) > 0 {
			model.AddWeightedSumAtMost(vs, ws, maxHours*minutesPerHour)
		}
	}
}

func addOnePerDay(model *cp.Model, vars map[pair]cp.Var, slots []api.Slot, nEmp int) {
	for e := 0; e < nEmp; e++ {
		for day := 0; day < daysPerWeek; day++ {
			var vs []cp.Var
			for s := range slots {
				if slots[s].DayOfWeek != day {
					continue
				}
				if v, ok := vars[pair{emp: e, slot: s}]; ok {
					vs = append(vs, v)
				}
			}
			if len(vs) > 1 {
				model.AddSumAtMost(vs, 1)
			}
		}
	}
}

// addIncompatibilities keeps declared-incompatible employees out of the same
// slot. The declaration is one-sided: listing the other employee from either
// side is enough.
func addIncompatibilities(model *cp.Model, vars map[pair]cp.Var, slots []api.Slot, emps []api.Employee) {
	incompatible := make([]map[string]bool, len(emps))
	for e := range emps {
		if len(emps[e].IncompatibleWith) == 0 {
			continue
		}
		incompatible[e] = make(map[string]bool, len(emps[e].IncompatibleWith))
		for _, id := range emps[e].IncompatibleWith {
			incompatible[e][id] = true
		}
	}
	for s := range slots {
		for e1 := range emps {
			if incompatible[e1] == nil {
				continue
			}
			v1, ok := vars[pair{emp: e1, slot: s}]
			if !ok {
				continue
			}
			for e2 := range emps {
				if e1 == e2 || !incompatible[e1][emps[e2].ID] {
					continue
				}
				if v2, ok := vars[pair{emp: e2, slot: s}]; ok {
					model.AddSumAtMost([]cp.Var{v1, v2}, 1)
				}
			}
		}
	}
}

// addFixedAssignments pins pre-decided pairings to true. A pairing that does
// not resolve to an existing variable is dropped without comment; the caller
// asked for something the model cannot express.
func addFixedAssignments(model *cp.Model, vars map[pair]cp.Var, slots []api.Slot, emps []api.Employee, fixed []api.FixedAssignment) {
	empIdx := make(map[string]int, len(emps))
	for e := range emps {
		empIdx[emps[e].ID] = e
	}
	slotIdx := make(map[slotKey]int, len(slots))
	for s := range slots {
		slotIdx[slotKey{
			locationID: slots[s].LocationID,
			roleID:     slots[s].RoleID,
			dayOfWeek:  slots[s].DayOfWeek,
			period:     slots[s].Period,
		}] = s
	}
	for _, fa := range fixed {
		e, okE := empIdx[fa.EmployeeID]
		s, okS := slotIdx[slotKey{
			locationID: fa.LocationID,
			roleID:     fa.RoleID,
			dayOfWeek:  fa.DayOfWeek,
			period:     fa.Period,
		}]
		if !okE || !okS {
			continue
		}
		if v, ok := vars[pair{emp: e, slot: s}]; ok {
			model.FixTrue(v)
		}
	}
}

// objective rewards giving an employee a slot of their preferred period and
// penalizes a mismatching period. Employees without a preference contribute
// nothing; the result may be empty.
func objective(vars map[pair]cp.Var, slots []api.Slot, emps []api.Employee) []cp.Term {
	var terms []cp.Term
	for e := range emps {
		pref := emps[e].PeriodPreference
		if pref == "" {
			continue
		}
		for s := range slots {
			v, ok := vars[pair{emp: e, slot: s}]
			if !ok {
				continue
			}
			switch period := slots[s].Period; {
			case period == pref:
				terms = append(terms, cp.Term{Var: v, Coeff: -1})
			case period != "":
				terms = append(terms, cp.Term{Var: v, Coeff: 1})
			}
		}
	}
	return terms
}

func extractShifts(values []bool, vars map[pair]cp.Var, slots []api.Slot, emps []api.Employee) []api.Shift {
	shifts := make([]api.Shift, 0, len(vars))
	for p, v := range vars {
		if !values[v] {
			continue
		}
		slot := slots[p.slot]
		shifts = append(shifts, api.Shift{
			EmployeeID: emps[p.emp].ID,
			LocationID: slot.LocationID,
			RoleID:     slot.RoleID,
			DayOfWeek:  slot.DayOfWeek,
			Period:     slot.Period,
		})
	}
	// Map order is random; keep the output stable for callers and tests.
	slices.SortFunc(shifts, func(a, b api.Shift) int {
		return cmp.Or(
			cmp.Compare(a.DayOfWeek, b.DayOfWeek),
			cmp.Compare(a.Period, b.Period),
			cmp.Compare(a.LocationID, b.LocationID),
			cmp.Compare(a.RoleID, b.RoleID),
			cmp.Compare(a.EmployeeID, b.EmployeeID),
		)
	})
	return shifts
}
