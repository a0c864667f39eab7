// Package schedule runs a critical-path computation over the fixed six-activity
// construction network:
//
//	Excavation -> Foundation -> Structure -> Brickwork -> Finishing
//	                                     \-> Roofing   -/
package schedule

import (
	"math"
	"slices"
)

// Activity names in network declaration order.
const (
	Excavation = "Excavation"
	Foundation = "Foundation"
	Structure  = "Structure"
	Brickwork  = "Brickwork"
	Roofing    = "Roofing"
	Finishing  = "Finishing"
)

// floatTolerance absorbs rounding in the backward pass so that activities on
// the critical path report exactly zero float.
const floatTolerance = 1e-9

// Timeline holds the duration of each network activity in days.
type Timeline struct {
	Excavation float64 `json:"excavation"`
	Foundation float64 `json:"foundation"`
	Structure  float64 `json:"structure"`
	Brickwork  float64 `json:"brickwork"`
	Roofing    float64 `json:"roofing"`
	Finishing  float64 `json:"finishing"`
}

// Entry is one activity duration.
type Entry struct {
	Name string  `json:"name"`
	Days float64 `json:"days"`
}

// Entries returns the durations in declaration order.
func (t Timeline) Entries() []Entry {
	return []Entry{
		{Excavation, t.Excavation},
		{Foundation, t.Foundation},
		{Structure, t.Structure},
		{Brickwork, t.Brickwork},
		{Roofing, t.Roofing},
		{Finishing, t.Finishing},
	}
}

// Total returns the sum of all activity durations.
func (t Timeline) Total() float64 {
	return t.Excavation + t.Foundation + t.Structure + t.Brickwork + t.Roofing + t.Finishing
}

var network = []struct {
	name         string
	predecessors []string
}{
	{Excavation, nil},
	{Foundation, []string{Excavation}},
	{Structure, []string{Foundation}},
	{Brickwork, []string{Structure}},
	{Roofing, []string{Structure}},
	{Finishing, []string{Brickwork, Roofing}},
}

// Activity is a scheduled network node. Times are in days from project start.
type Activity struct {
	Name         string   `json:"name"`
	Duration     float64  `json:"duration"`
	Predecessors []string `json:"predecessors"`
	EarlyStart   float64  `json:"early_start"`
	EarlyFinish  float64  `json:"early_finish"`
	LateStart    float64  `json:"late_start"`
	LateFinish   float64  `json:"late_finish"`
	TotalFloat   float64  `json:"total_float"`
}

// Critical reports whether the activity has no float.
func (a Activity) Critical() bool {
	return a.TotalFloat == 0
}

// Schedule is the result of a CPM pass.
type Schedule struct {
	Activities      []Activity `json:"activities"`
	ProjectDuration float64    `json:"project_duration"` // days
	CriticalPath    []string   `json:"critical_path"`
}

// Activity returns the named activity.
func (s Schedule) Activity(name string) (Activity, bool) {
	for _, a := range s.Activities {
		if a.Name == name {
			return a, true
		}
	}
	return Activity{}, false
}

// Compute schedules the network with the durations in t.
//
// Late finish of an activity is the earliest early start among its
// successors, or the project duration when it has none. The critical path
// lists zero-float activities in declaration order.
func Compute(t Timeline) Schedule {
	durations := t.Entries()
	activities := make([]Activity, len(network))
	index := make(map[string]int, len(network))

	for i, node := range network {
		index[node.name] = i
		activities[i] = Activity{
			Name:         node.name,
			Duration:     durations[i].Days,
			Predecessors: slices.Clone(node.predecessors),
		}
	}

	// Forward pass. Declaration order is topological.
	var projectDuration float64
	for i := range activities {
		a := &activities[i]
		for _, p := range a.Predecessors {
			a.EarlyStart = math.Max(a.EarlyStart, activities[index[p]].EarlyFinish)
		}
		a.EarlyFinish = a.EarlyStart + a.Duration
		projectDuration = math.Max(projectDuration, a.EarlyFinish)
	}

	// Backward pass.
	for i := len(activities) - 1; i >= 0; i-- {
		a := &activities[i]
		a.LateFinish = projectDuration
		hasSuccessor := false
		for _, s := range activities {
			if !contains(s.Predecessors, a.Name) {
				continue
			}
			if !hasSuccessor || s.EarlyStart < a.LateFinish {
				a.LateFinish = s.EarlyStart
			}
			hasSuccessor = true
		}
		a.LateStart = a.LateFinish - a.Duration
		a.TotalFloat = a.LateStart - a.EarlyStart
		if math.Abs(a.TotalFloat) < floatTolerance {
			a.TotalFloat = 0
		}
	}

	s := Schedule{
		Activities:      activities,
		ProjectDuration: projectDuration,
		CriticalPath:    []string{},
	}
	for _, a := range activities {
		if a.Critical() {
			s.CriticalPath = append(s.CriticalPath, a.Name)
		}
	}
	return s
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
