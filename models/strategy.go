// ABOUTME: Migration strategy scoring from CPU, memory, and network utilization
// ABOUTME: Three additive bracket rules produce a score vector and a primary strategy

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/inf.v0"
)

// Strategy is one of the four migration approaches scored per server.
type Strategy string

const (
	StrategyLiftAndShift Strategy = "lift_and_shift"
	StrategyRefactor     Strategy = "refactor"
	StrategyRebuild      Strategy = "rebuild"
	StrategyHybrid       Strategy = "hybrid"
)

// Strategies lists every strategy in enumeration order. Ties for the top
// score go to whichever strategy appears first here.
var Strategies = []Strategy{
	StrategyLiftAndShift,
	StrategyRefactor,
	StrategyRebuild,
	StrategyHybrid,
}

// Title returns the display form stored with an assessment,
// e.g. "Lift_And_Shift".
func (s Strategy) Title() string {
	b := []byte(s)
	upper := true
	for i, c := range b {
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		switch {
		case isLetter && upper:
			if c >= 'a' && c <= 'z' {
				b[i] = c - 'a' + 'A'
			}
			upper = false
		case isLetter:
			if c >= 'A' && c <= 'Z' {
				b[i] = c - 'A' + 'a'
			}
		default:
			upper = true
		}
	}
	return string(b)
}

// StrategyScores is the four-strategy point tally. The zero value holds all
// four strategies at zero.
type StrategyScores struct {
	LiftAndShift int
	Refactor     int
	Rebuild      int
	Hybrid       int
}

// Get returns the score for s. Unknown strategies score zero.
func (sc StrategyScores) Get(s Strategy) int {
	switch s {
	case StrategyLiftAndShift:
		return sc.LiftAndShift
	case StrategyRefactor:
		return sc.Refactor
	case StrategyRebuild:
		return sc.Rebuild
	case StrategyHybrid:
		return sc.Hybrid
	}
	return 0
}

func (sc *StrategyScores) add(s Strategy, points int) {
	switch s {
	case StrategyLiftAndShift:
		sc.LiftAndShift += points
	case StrategyRefactor:
		sc.Refactor += points
	case StrategyRebuild:
		sc.Rebuild += points
	case StrategyHybrid:
		sc.Hybrid += points
	}
}

// Primary returns the highest scoring strategy, first in enumeration order on ties.
func (sc StrategyScores) Primary() Strategy {
	best := Strategies[0]
	for _, s := range Strategies[1:] {
		if sc.Get(s) > sc.Get(best) {
			best = s
		}
	}
	return best
}

// MarshalJSON writes all four keys in enumeration order.
func (sc StrategyScores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range Strategies {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(s)))
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(sc.Get(s)))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a name-to-score object. Missing keys stay zero.
func (sc *StrategyScores) UnmarshalJSON(data []byte) error {
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*sc = StrategyScores{}
	for name, points := range m {
		s := Strategy(name)
		switch s {
		case StrategyLiftAndShift, StrategyRefactor, StrategyRebuild, StrategyHybrid:
			if points < 0 {
				return fmt.Errorf("negative score %d for %s", points, name)
			}
			sc.add(s, points)
		default:
			return fmt.Errorf("unknown strategy %q", name)
		}
	}
	return nil
}

type award struct {
	strategy Strategy
	points   int
}

// bracketRule awards points for a metric that falls into one of three
// brackets: below low, in [low, high), or at/above high.
type bracketRule struct {
	low, high *inf.Dec
	below     []award
	within    []award
	above     []award
}

func (r bracketRule) apply(value *inf.Dec, scores *StrategyScores) {
	awards := r.above
	switch {
	case value.Cmp(r.low) < 0:
		awards = r.below
	case value.Cmp(r.high) < 0:
		awards = r.within
	}
	for _, a := range awards {
		scores.add(a.strategy, a.points)
	}
}

var (
	cpuRule = bracketRule{
		low:    inf.NewDec(30, 0),
		high:   inf.NewDec(70, 0),
		below:  []award{{StrategyLiftAndShift, 2}, {StrategyHybrid, 1}},
		within: []award{{StrategyRefactor, 2}, {StrategyHybrid, 1}},
		above:  []award{{StrategyRebuild, 2}, {StrategyHybrid, 1}},
	}
	memoryRule = bracketRule{
		low:    inf.NewDec(40, 0),
		high:   inf.NewDec(80, 0),
		below:  []award{{StrategyLiftAndShift, 1}},
		within: []award{{StrategyRefactor, 1}, {StrategyHybrid, 1}},
		above:  []award{{StrategyRebuild, 1}},
	}
	networkRule = bracketRule{
		low:    inf.NewDec(50, 0),
		high:   inf.NewDec(80, 0),
		below:  []award{{StrategyLiftAndShift, 1}},
		within: []award{{StrategyHybrid, 1}},
		above:  []award{{StrategyRefactor, 1}},
	}
)

// ScoreMetrics scores coerced utilization percentages.
func ScoreMetrics(cpu, memory, network *inf.Dec) (Strategy, StrategyScores) {
	var scores StrategyScores
	cpuRule.apply(cpu, &scores)
	memoryRule.apply(memory, &scores)
	networkRule.apply(network, &scores)
	return scores.Primary(), scores
}

// Score resolves the record's metrics and scores them.
func Score(r ServerRecord) (Strategy, StrategyScores) {
	return ScoreMetrics(r.CPU(), r.Memory(), r.Network())
}
