package workplan

import (
	"math"

	skerrors "github.com/strtupify/simkit/pkg/errors"
)

// Business window per simulated day, in absolute hours from day 0 hour 0.
// Time outside [StartHour, EndHour) never consumes task duration.
const (
	StartHour   = 10.0
	EndHour     = 20.0
	dayHours    = 24.0
	workdaySpan = EndHour - StartHour
)

// Schedule is the derived completion timeline for a work item list. It is a
// pure function of the items; recompute it whenever the list changes.
type Schedule struct {
	// Finish maps every item ID to its absolute finish hour.
	Finish map[int]float64
	// Horizon is the finish hour of the last-completing item.
	Horizon float64
}

// ComputeSchedule runs greedy list scheduling over the items in creation
// order, which is a valid topological order because blockers only reference
// earlier items. Each employee works one task at a time inside the business
// window; a task starts no earlier than all its blockers' finishes and its
// assignee's free cursor.
func ComputeSchedule(items []WorkItem) (Schedule, error) {
	if len(items) == 0 {
		return Schedule{}, skerrors.ErrNoWorkItems
	}

	finish := make(map[int]float64, len(items))
	employeeFree := make(map[string]float64)

	for _, item := range items {
		start := employeeFree[item.Assignee]
		for _, b := range item.Blockers {
			if f, ok := finish[b]; ok && f > start {
				start = f
			}
		}
		end := consumeHours(snapToWindow(start), item.EstimatedHours)
		finish[item.ID] = end
		employeeFree[item.Assignee] = end
	}

	horizon := 0.0
	for _, f := range finish {
		if f > horizon {
			horizon = f
		}
	}
	return Schedule{Finish: finish, Horizon: horizon}, nil
}

// snapToWindow moves an instant forward to the next in-window instant:
// before the day's opening it snaps to opening, at or past closing it snaps
// to the next day's opening.
func snapToWindow(t float64) float64 {
	day := math.Floor(t / dayHours)
	timeOfDay := t - day*dayHours
	switch {
	case timeOfDay < StartHour:
		return day*dayHours + StartHour
	case timeOfDay >= EndHour:
		return (day+1)*dayHours + StartHour
	default:
		return t
	}
}

// consumeHours burns working time from an in-window start, rolling past the
// day's closing into the next day's opening as often as needed.
func consumeHours(start, hours float64) float64 {
	for hours > 0 {
		day := math.Floor(start / dayHours)
		available := day*dayHours + EndHour - start
		if hours <= available {
			return start + hours
		}
		hours -= available
		start = (day+1)*dayHours + StartHour
	}
	return start
}
