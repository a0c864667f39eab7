package schedule

import (
	"math"
	"reflect"
	"testing"
)

func TestCompute_RoofingLongerThanBrickwork(t *testing.T) {
	s := Compute(Timeline{
		Excavation: 2,
		Foundation: 3,
		Structure:  10,
		Brickwork:  4,
		Roofing:    6,
		Finishing:  5,
	})

	if s.ProjectDuration != 26 {
		t.Errorf("project duration = %v, want 26", s.ProjectDuration)
	}

	want := []string{Excavation, Foundation, Structure, Roofing, Finishing}
	if !reflect.DeepEqual(s.CriticalPath, want) {
		t.Errorf("critical path = %v, want %v", s.CriticalPath, want)
	}

	brick, _ := s.Activity(Brickwork)
	if brick.EarlyStart != 15 || brick.EarlyFinish != 19 {
		t.Errorf("brickwork ES/EF = %v/%v, want 15/19", brick.EarlyStart, brick.EarlyFinish)
	}
	if brick.LateFinish != 21 || brick.LateStart != 17 {
		t.Errorf("brickwork LS/LF = %v/%v, want 17/21", brick.LateStart, brick.LateFinish)
	}
	if brick.TotalFloat != 2 {
		t.Errorf("brickwork float = %v, want 2", brick.TotalFloat)
	}
}

func TestCompute_Consistency(t *testing.T) {
	timelines := []Timeline{
		{Excavation: 2.16, Foundation: 1.296, Structure: 6.912, Brickwork: 56.16, Roofing: 41.6, Finishing: 122.72},
		{Excavation: 0.1, Foundation: 0.2, Structure: 0.3, Brickwork: 0.7, Roofing: 0.7, Finishing: 0.1},
		{},
	}

	for _, tl := range timelines {
		s := Compute(tl)

		finishing, ok := s.Activity(Finishing)
		if !ok {
			t.Fatal("finishing activity missing")
		}
		if finishing.EarlyFinish != s.ProjectDuration {
			t.Errorf("finishing EF %v != project duration %v", finishing.EarlyFinish, s.ProjectDuration)
		}

		for _, a := range s.Activities {
			if a.EarlyFinish != a.EarlyStart+a.Duration {
				t.Errorf("%s: EF != ES + duration", a.Name)
			}
			if math.Abs(a.TotalFloat-(a.LateStart-a.EarlyStart)) > floatTolerance {
				t.Errorf("%s: float %v != LS - ES %v", a.Name, a.TotalFloat, a.LateStart-a.EarlyStart)
			}
		}

		for _, name := range []string{Excavation, Foundation, Structure, Finishing} {
			if !contains(s.CriticalPath, name) {
				t.Errorf("critical path %v missing %s", s.CriticalPath, name)
			}
		}

		brick, _ := s.Activity(Brickwork)
		roof, _ := s.Activity(Roofing)
		diff := math.Abs(brick.Duration - roof.Duration)
		if math.Abs(brick.TotalFloat+roof.TotalFloat-diff) > 1e-9 {
			t.Errorf("brickwork+roofing float = %v, want %v", brick.TotalFloat+roof.TotalFloat, diff)
		}
	}
}

func TestCompute_EqualBranchesBothCritical(t *testing.T) {
	s := Compute(Timeline{Excavation: 1, Foundation: 1, Structure: 1, Brickwork: 3, Roofing: 3, Finishing: 1})
	want := []string{Excavation, Foundation, Structure, Brickwork, Roofing, Finishing}
	if !reflect.DeepEqual(s.CriticalPath, want) {
		t.Errorf("critical path = %v, want %v", s.CriticalPath, want)
	}
}

func TestTimeline_Entries(t *testing.T) {
	tl := Timeline{Excavation: 1, Foundation: 2, Structure: 3, Brickwork: 4, Roofing: 5, Finishing: 6}
	entries := tl.Entries()
	if entries[0].Name != Excavation || entries[5].Name != Finishing || entries[5].Days != 6 {
		t.Errorf("unexpected entries: %v", entries)
	}
	if tl.Total() != 21 {
		t.Errorf("Total() = %v, want 21", tl.Total())
	}
}

func TestCompute_PredecessorsAreCopies(t *testing.T) {
	tl := Timeline{Excavation: 2, Foundation: 3, Structure: 10, Brickwork: 4, Roofing: 6, Finishing: 5}

	first := Compute(tl)
	for i := range first.Activities {
		for j := range first.Activities[i].Predecessors {
			first.Activities[i].Predecessors[j] = "changed"
		}
	}

	second := Compute(tl)
	finishing, _ := second.Activity(Finishing)
	if !reflect.DeepEqual(finishing.Predecessors, []string{Brickwork, Roofing}) {
		t.Errorf("finishing predecessors = %v, want [%s %s]", finishing.Predecessors, Brickwork, Roofing)
	}
	if second.ProjectDuration != 26 {
		t.Errorf("project duration = %v, want 26", second.ProjectDuration)
	}
}
