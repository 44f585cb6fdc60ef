package planner

import (
	"fmt"
	"math"
)

// TotalCost sums activity and extra costs. Negative, NaN and infinite costs
// contribute zero, so the total is always a finite non-negative number.
func TotalCost(days []Day, extras []Extra) float64 {
	total := 0.0
	for _, d := range days {
		for _, a := range d.Activities {
			total += sanitizeCost(a.Cost)
		}
	}
	for _, e := range extras {
		total += sanitizeCost(e.Cost)
	}
	return total
}

func sanitizeCost(c float64) float64 {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return 0
	}
	return c
}

// DayCost is the subtotal for one day's activities.
func DayCost(d Day) float64 {
	total := 0.0
	for _, a := range d.Activities {
		total += sanitizeCost(a.Cost)
	}
	return total
}

// RemoveDay drops the day numbered dayIndex and renumbers the rest
// contiguously from 1, leaving activities untouched.
func RemoveDay(days []Day, dayIndex int) []Day {
	out := make([]Day, 0, len(days))
	for _, d := range days {
		if d.DayIndex == dayIndex {
			continue
		}
		out = append(out, d)
	}
	for i := range out {
		out[i].DayIndex = i + 1
	}
	return out
}

// MoveActivity relocates one activity between (or within) days. Day arguments
// are day numbers, activity arguments are positions; toIdx is clamped to the
// target day's length.
func MoveActivity(days []Day, fromDay, fromIdx, toDay, toIdx int) ([]Day, error) {
	from, to := -1, -1
	for i, d := range days {
		if d.DayIndex == fromDay {
			from = i
		}
		if d.DayIndex == toDay {
			to = i
		}
	}
	if from < 0 || to < 0 {
		return nil, fmt.Errorf("day %d or %d not found", fromDay, toDay)
	}
	if fromIdx < 0 || fromIdx >= len(days[from].Activities) {
		return nil, fmt.Errorf("activity index %d out of range for day %d", fromIdx, fromDay)
	}

	out := make([]Day, len(days))
	copy(out, days)
	for i := range out {
		acts := make([]Activity, len(days[i].Activities))
		copy(acts, days[i].Activities)
		out[i].Activities = acts
	}

	moved := out[from].Activities[fromIdx]
	out[from].Activities = append(out[from].Activities[:fromIdx], out[from].Activities[fromIdx+1:]...)

	target := out[to].Activities
	if toIdx < 0 {
		toIdx = 0
	}
	if toIdx > len(target) {
		toIdx = len(target)
	}
	target = append(target, Activity{})
	copy(target[toIdx+1:], target[toIdx:])
	target[toIdx] = moved
	out[to].Activities = target

	return out, nil
}
