package main

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/hoofbeat/lineage/config"
	"github.com/hoofbeat/lineage/genetics"
	"github.com/hoofbeat/lineage/telemetry"
)

// FitnessEvaluator scores a candidate std_dev vector by sampling rating
// cohorts and comparing each attribute's realized spread against the target.
// Clamping at the rating bounds makes the realized spread narrower than the
// configured std_dev, which is exactly the gap calibration closes.
type FitnessEvaluator struct {
	params    *ParamVector
	base      *config.BreedConfig
	tun       config.TuningConfig
	targetStd float64
	targetP90 float64
	samples   int
	seeds     []int64

	lastSpread float64
}

// NewFitnessEvaluator builds an evaluator over fixed seeds so every
// candidate sees identical noise.
func NewFitnessEvaluator(params *ParamVector, base *config.BreedConfig, tun config.TuningConfig,
	targetStd, targetP90 float64, samples int, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:    params,
		base:      base,
		tun:       tun,
		targetStd: targetStd,
		targetP90: targetP90,
		samples:   samples,
		seeds:     seeds,
	}
}

// Evaluate returns the mean squared spread error across attributes and
// seeds. Lower is better.
func (e *FitnessEvaluator) Evaluate(raw []float64) float64 {
	candidate := cloneBreed(e.base)
	if err := e.params.ApplyToBreed(candidate, e.params.Clamp(raw)); err != nil {
		return 1e9
	}

	var total float64
	var count int
	var spreadSum float64

	for _, seed := range e.seeds {
		rng := rand.New(rand.NewSource(seed))
		scores := make(map[genetics.Attribute][]float64, e.params.Dim())

		for i := 0; i < e.samples; i++ {
			ratings := genetics.StoreRatings(rng, candidate, e.tun)
			for attr, score := range ratings.Conformation {
				scores[attr] = append(scores[attr], float64(score))
			}
			for attr, score := range ratings.Gaits {
				scores[attr] = append(scores[attr], float64(score))
			}
			if ratings.Gaiting != nil {
				scores[genetics.Gaiting] = append(scores[genetics.Gaiting], float64(*ratings.Gaiting))
			}
		}

		for _, values := range scores {
			std := stat.StdDev(values, nil)
			sort.Float64s(values)
			p90 := telemetry.Percentile(values, 0.9)
			p10 := telemetry.Percentile(values, 0.1)

			dStd := std - e.targetStd
			total += dStd * dStd
			if e.targetP90 > 0 {
				dSpread := (p90 - p10) - e.targetP90
				total += 0.1 * dSpread * dSpread
			}
			spreadSum += std
			count++
		}
	}

	if count == 0 {
		return 1e9
	}
	e.lastSpread = spreadSum / float64(count)
	return total / float64(count)
}

// LastSpread reports the mean realized std of the most recent evaluation.
func (e *FitnessEvaluator) LastSpread() float64 {
	return e.lastSpread
}

// cloneBreed deep-copies the profile maps so candidates never touch the base.
func cloneBreed(b *config.BreedConfig) *config.BreedConfig {
	out := *b
	out.Conformation = make(map[string]config.AttributeProfile, len(b.Conformation))
	for k, v := range b.Conformation {
		out.Conformation[k] = v
	}
	out.Gaits = make(map[string]config.AttributeProfile, len(b.Gaits))
	for k, v := range b.Gaits {
		out.Gaits[k] = v
	}
	return &out
}
