package schedule

import (
	"strconv"
	"strings"
	"time"

	"rota-solver/api"
)

const (
	dateLayout  = "2006-01-02"
	daysPerWeek = 7

	minutesPerHour = 60
	minutesPerDay  = 24 * minutesPerHour
)

// DefaultPeriodTimes covers requests that carry no period table.
func DefaultPeriodTimes() map[string]api.PeriodTime {
	return map[string]api.PeriodTime{
		"morning": {Start: "08:00", End: "14:00"},
		"evening": {Start: "14:00", End: "23:00"},
	}
}

// weekDates resolves weekStart into the seven calendar dates of the week,
// formatted like the blackout dates they are compared against. An unparsable
// weekStart falls back to the current date; callers are never told. This
// mirrors upstream behavior and is deliberate, see DESIGN.md.
func weekDates(weekStart string) [daysPerWeek]string {
	start, err := time.Parse(dateLayout, weekStart)
	if err != nil {
		start = time.Now()
	}
	var dates [daysPerWeek]string
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(dateLayout)
	}
	return dates
}

// parseTimeMinutes converts "HH:MM" to minutes from midnight. A missing or
// malformed component counts as zero; a bare "8" means 08:00.
func parseTimeMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	h, _ := strconv.Atoi(parts[0])
	m := 0
	if len(parts) > 1 {
		m, _ = strconv.Atoi(parts[1])
	}
	return h*minutesPerHour + m
}

// periodMinutes is the duration of one slot of the named period. Unknown
// periods get the 08:00-14:00 default window; an end at or before the start
// wraps past midnight.
func periodMinutes(period string, times map[string]api.PeriodTime) int {
	pt := times[period]
	if pt.Start == "" {
		pt.Start = "08:00"
	}
	if pt.End == "" {
		pt.End = "14:00"
	}
	start := parseTimeMinutes(pt.Start)
	end := parseTimeMinutes(pt.End)
	if end <= start {
		end += minutesPerDay
	}
	return end - start
}
