package schedule

import (
	"slices"

	"rota-solver/api"
	"rota-solver/internal/models"
)

// canWork reports whether emp may legally take slot, independent of any other
// assignment. Pairs rejected here never get a decision variable, so the solver
// cannot place them no matter what the constraints say.
func canWork(emp *api.Employee, slot *api.Slot, dates *[daysPerWeek]string) bool {
	if slot.DayOfWeek < 0 || slot.DayOfWeek >= daysPerWeek {
		return false
	}
	if !slices.Contains(emp.RoleIDs, slot.RoleID) {
		return false
	}
	date := dates[slot.DayOfWeek]
	if slices.Contains(emp.TimeOffDates, date) {
		return false
	}
	if slices.Contains(emp.ExceptionDates, date) {
		return false
	}
	if len(emp.Availability) == 0 {
		return true // no records means open availability
	}
	for _, a := range emp.Availability {
		if a.DayOfWeek != slot.DayOfWeek || a.Period != slot.Period {
			continue
		}
		switch models.AvailabilityStatus(a.Status) {
		case models.Unavailable:
			return false
		case models.Available, models.Preferred:
			return true
		case models.Avoid:
			// Counts as workable; no soft penalty is attached today.
			return true
		}
	}
	return true
}
