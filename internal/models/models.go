package models

import "time"

// AvailabilityStatus scopes how an employee relates to one (day, period) pair.
type AvailabilityStatus string

const (
	Available   AvailabilityStatus = "available"
	Preferred   AvailabilityStatus = "preferred"
	Avoid       AvailabilityStatus = "avoid"
	Unavailable AvailabilityStatus = "unavailable"
)

// SolveRecord is one row of the optional solve-history table.
type SolveRecord struct {
	RunID     string        `db:"run_id"`
	Status    string        `db:"status"`
	Slots     int           `db:"slots"`
	Employees int           `db:"employees"`
	Shifts    int           `db:"shifts"`
	SolveTime time.Duration `db:"solve_ms"`
	CreatedAt time.Time     `db:"created_at"`
}
