package api

// SolveStatus is the outcome tag of a solve request.
type SolveStatus string

const (
	StatusOptimal    SolveStatus = "optimal"
	StatusFeasible   SolveStatus = "feasible"
	StatusInfeasible SolveStatus = "infeasible"
	StatusError      SolveStatus = "error"
)

// PeriodTime is a named time-of-day window, "HH:MM" bounds.
type PeriodTime struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Slot is one unit of required staffing for a (location, role, day, period).
type Slot struct {
	LocationID string `json:"locationId"`
	RoleID     string `json:"roleId"`
	DayOfWeek  int    `json:"dayOfWeek"`
	Period     string `json:"period"`
	Required   int    `json:"required"`
}

type AvailabilityRecord struct {
	DayOfWeek int    `json:"dayOfWeek"`
	Period    string `json:"period"`
	Status    string `json:"status"`
}

type Employee struct {
	ID               string               `json:"id"`
	RoleIDs          []string             `json:"roleIds"`
	MaxHours         int                  `json:"maxHours,omitempty"`
	TimeOffDates     []string             `json:"timeOffDates,omitempty"`
	ExceptionDates   []string             `json:"exceptionDates,omitempty"`
	Availability     []AvailabilityRecord `json:"availability,omitempty"`
	IncompatibleWith []string             `json:"incompatibleWith,omitempty"`
	PeriodPreference string               `json:"periodPreference,omitempty"`
}

// FixedAssignment pins an employee to a slot key before solving.
type FixedAssignment struct {
	EmployeeID string `json:"employeeId"`
	LocationID string `json:"locationId"`
	RoleID     string `json:"roleId"`
	DayOfWeek  int    `json:"dayOfWeek"`
	Period     string `json:"period"`
}

type Shift struct {
	EmployeeID string `json:"employeeId"`
	LocationID string `json:"locationId"`
	RoleID     string `json:"roleId"`
	DayOfWeek  int    `json:"dayOfWeek"`
	Period     string `json:"period"`
}

type SolveRequest struct {
	WeekStart        string                `json:"weekStart"`
	PeriodTimes      map[string]PeriodTime `json:"periodTimes,omitempty"`
	Slots            []Slot                `json:"slots"`
	Employees        []Employee            `json:"employees"`
	FixedAssignments []FixedAssignment     `json:"fixedAssignments,omitempty"`
}

type SolveResponse struct {
	Status           SolveStatus `json:"status"`
	Shifts           []Shift     `json:"shifts,omitempty"`
	InfeasibleReason string      `json:"infeasibleReason,omitempty"`
	Error            string      `json:"error,omitempty"`
}
