// ABOUTME: Blended migration cost estimate derived from strategy scores
// ABOUTME: Averages per-strategy costs in exact decimal and rounds half-up to cents

package models

import "gopkg.in/inf.v0"

// BaseMigrationCost is the per-strategy cost before score weighting.
var BaseMigrationCost = inf.NewDec(500, 0)

// strategyRates weights each strategy's score; rates are scale-1 decimals.
var strategyRates = []struct {
	strategy Strategy
	rate     *inf.Dec
}{
	{StrategyLiftAndShift, inf.NewDec(2, 1)},
	{StrategyRefactor, inf.NewDec(3, 1)},
	{StrategyRebuild, inf.NewDec(5, 1)},
	{StrategyHybrid, inf.NewDec(4, 1)},
}

// StrategyCost returns base * (1 + rate*score) for a single strategy.
func StrategyCost(rate *inf.Dec, score int) *inf.Dec {
	weight := new(inf.Dec).Mul(rate, inf.NewDec(int64(score), 0))
	weight.Add(weight, inf.NewDec(1, 0))
	return new(inf.Dec).Mul(BaseMigrationCost, weight)
}

// EstimateCost averages the four strategy costs and rounds to two decimal
// places, half-up.
func EstimateCost(scores StrategyScores) *inf.Dec {
	total := new(inf.Dec)
	for _, sr := range strategyRates {
		total.Add(total, StrategyCost(sr.rate, scores.Get(sr.strategy)))
	}
	count := inf.NewDec(int64(len(strategyRates)), 0)
	return new(inf.Dec).QuoRound(total, count, 2, inf.RoundHalfUp)
}
