package models

import (
	"encoding/json"
	"testing"
	"time"

	"gopkg.in/inf.v0"
)

func dec(v int64) *inf.Dec { return inf.NewDec(v, 0) }

func TestScoreMetrics_ScenarioLowUtilization(t *testing.T) {
	primary, scores := ScoreMetrics(dec(20), dec(30), dec(40))

	expected := StrategyScores{LiftAndShift: 4, Hybrid: 1}
	if scores != expected {
		t.Errorf("Expected %+v, got %+v", expected, scores)
	}
	if primary != StrategyLiftAndShift {
		t.Errorf("Expected lift_and_shift, got %s", primary)
	}
}

func TestScoreMetrics_Brackets(t *testing.T) {
	tests := []struct {
		name            string
		cpu, mem, net   int64
		expected        StrategyScores
		expectedPrimary Strategy
	}{
		{"cpu 30 is refactor bucket", 30, 0, 0, StrategyScores{LiftAndShift: 2, Refactor: 2, Hybrid: 1}, StrategyLiftAndShift},
		{"cpu 70 is rebuild bucket", 70, 0, 0, StrategyScores{LiftAndShift: 2, Rebuild: 2, Hybrid: 1}, StrategyLiftAndShift},
		{"memory 40 is refactor bucket", 0, 40, 0, StrategyScores{LiftAndShift: 3, Refactor: 1, Hybrid: 2}, StrategyLiftAndShift},
		{"memory 80 is rebuild bucket", 0, 80, 0, StrategyScores{LiftAndShift: 3, Rebuild: 1, Hybrid: 1}, StrategyLiftAndShift},
		{"network 50 is hybrid bucket", 0, 0, 50, StrategyScores{LiftAndShift: 3, Hybrid: 2}, StrategyLiftAndShift},
		{"network 80 is refactor bucket", 0, 0, 80, StrategyScores{LiftAndShift: 3, Refactor: 1, Hybrid: 1}, StrategyLiftAndShift},
		{"high everything", 90, 90, 90, StrategyScores{Rebuild: 3, Refactor: 1, Hybrid: 1}, StrategyRebuild},
		{"mid everything", 50, 50, 60, StrategyScores{Refactor: 3, Hybrid: 3}, StrategyRefactor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, scores := ScoreMetrics(dec(tt.cpu), dec(tt.mem), dec(tt.net))
			if scores != tt.expected {
				t.Errorf("Expected scores %+v, got %+v", tt.expected, scores)
			}
			if primary != tt.expectedPrimary {
				t.Errorf("Expected primary %s, got %s", tt.expectedPrimary, primary)
			}
		})
	}
}

func TestScoreMetrics_FractionalBoundary(t *testing.T) {
	below, _ := new(inf.Dec).SetString("29.99")
	_, scores := ScoreMetrics(below, dec(50), dec(60))
	if scores.LiftAndShift != 2 || scores.Refactor != 1 {
		t.Errorf("Expected cpu 29.99 in lift bucket, got %+v", scores)
	}
}

func TestScoreMetrics_TieBreaksInEnumerationOrder(t *testing.T) {
	tests := []struct {
		name          string
		cpu, mem, net int64
		tied          []Strategy
		expected      Strategy
	}{
		// lift 2, refactor 2, hybrid 2
		{"three-way tie picks lift_and_shift", 10, 50, 90, []Strategy{StrategyLiftAndShift, StrategyRefactor, StrategyHybrid}, StrategyLiftAndShift},
		// lift 2, rebuild 1, hybrid 2
		{"lift ties hybrid", 10, 90, 60, []Strategy{StrategyLiftAndShift, StrategyHybrid}, StrategyLiftAndShift},
		// refactor 3, hybrid 3
		{"refactor ties hybrid", 50, 50, 60, []Strategy{StrategyRefactor, StrategyHybrid}, StrategyRefactor},
		// rebuild 2, hybrid 2, lift 1
		{"rebuild ties hybrid", 80, 10, 60, []Strategy{StrategyRebuild, StrategyHybrid}, StrategyRebuild},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, scores := ScoreMetrics(dec(tt.cpu), dec(tt.mem), dec(tt.net))
			top := scores.Get(tt.tied[0])
			for _, s := range tt.tied {
				if scores.Get(s) != top {
					t.Fatalf("Expected tie among %v, got %+v", tt.tied, scores)
				}
			}
			if primary != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, primary)
			}
		})
	}
}

func TestScoreMetrics_TotalPoints(t *testing.T) {
	// every input yields 3 cpu points, 1-2 memory points, 1 network point
	for cpu := int64(0); cpu <= 100; cpu += 10 {
		for mem := int64(0); mem <= 100; mem += 10 {
			for net := int64(0); net <= 100; net += 10 {
				_, s := ScoreMetrics(dec(cpu), dec(mem), dec(net))
				total := s.LiftAndShift + s.Refactor + s.Rebuild + s.Hybrid
				if total < 5 || total > 6 {
					t.Fatalf("cpu=%d mem=%d net=%d: unexpected total %d", cpu, mem, net, total)
				}
			}
		}
	}
}

func TestScore_UsesAliases(t *testing.T) {
	r := NewServerRecord(map[string]interface{}{
		"cpu_utilization":     json.Number("75"),
		"memory":              "85",
		"network_utilization": 10,
	})

	primary, scores := Score(r)
	if primary != StrategyRebuild {
		t.Errorf("Expected rebuild, got %s", primary)
	}
	if scores.Rebuild != 3 {
		t.Errorf("Expected rebuild score 3, got %d", scores.Rebuild)
	}
}

func TestStrategy_Title(t *testing.T) {
	tests := map[Strategy]string{
		StrategyLiftAndShift: "Lift_And_Shift",
		StrategyRefactor:     "Refactor",
		StrategyRebuild:      "Rebuild",
		StrategyHybrid:       "Hybrid",
	}
	for s, expected := range tests {
		if got := s.Title(); got != expected {
			t.Errorf("Expected %s, got %s", expected, got)
		}
	}
}

func TestStrategyScores_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(StrategyScores{LiftAndShift: 4, Hybrid: 1})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := `{"lift_and_shift":4,"refactor":0,"rebuild":0,"hybrid":1}`
	if string(b) != expected {
		t.Errorf("Expected %s, got %s", expected, b)
	}
}

func TestStrategyScores_UnmarshalJSON(t *testing.T) {
	var s StrategyScores
	if err := json.Unmarshal([]byte(`{"refactor":3,"hybrid":1}`), &s); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if s != (StrategyScores{Refactor: 3, Hybrid: 1}) {
		t.Errorf("Unexpected scores %+v", s)
	}

	if err := json.Unmarshal([]byte(`{"migrate":1}`), &s); err == nil {
		t.Error("Expected error for unknown strategy")
	}
	if err := json.Unmarshal([]byte(`{"rebuild":-1}`), &s); err == nil {
		t.Error("Expected error for negative score")
	}
}

func TestScore_OutOfRangeExponentUsesDefault(t *testing.T) {
	done := make(chan Strategy, 1)
	go func() {
		r, err := DecodeServerRecord([]byte(`{"cpu": 1e100000000, "memory": "1e4294967296"}`))
		if err != nil {
			t.Error(err)
		}
		primary, _ := Score(r)
		done <- primary
	}()

	select {
	case primary := <-done:
		if primary != StrategyLiftAndShift {
			t.Errorf("Expected out-of-range metrics to default to zero (lift_and_shift), got %s", primary)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Scoring an out-of-range exponent did not finish")
	}
}
