package traits

import (
	"sort"

	"github.com/hoofbeat/lineage/config"
)

// DevelopmentState is the snapshot of a young animal's upbringing that
// discovery conditions are evaluated against.
type DevelopmentState struct {
	BondScore  int
	Stress     int
	Enrichment map[string]int // activity name -> times performed
	Day        int            // development day counter
}

// Revealed records one trait moved out of hiding: which condition fired and
// where the trait landed.
type Revealed struct {
	Condition string
	Trait     Trait
	Category  Category
}

// discoveryCondition pairs a predicate with the traits it may reveal. A
// condition with revealAll set ignores its trait list and flushes every
// remaining hidden trait, used for end-of-development completion.
type discoveryCondition struct {
	name      string
	met       func(DevelopmentState, config.TuningConfig) bool
	progress  func(DevelopmentState, config.TuningConfig) float64
	reveals   []Trait
	revealAll bool
}

// ratio returns cur/target as a capped 0-100 percentage.
func ratio(cur, target int) float64 {
	if target <= 0 {
		return 100
	}
	p := float64(cur) / float64(target) * 100
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}

// discoveryConditions is the fixed table of named discovery conditions.
var discoveryConditions = []discoveryCondition{
	{
		name: "high_bonding",
		met: func(s DevelopmentState, tun config.TuningConfig) bool {
			return s.BondScore >= tun.HighBondingThreshold
		},
		progress: func(s DevelopmentState, tun config.TuningConfig) float64 {
			return ratio(s.BondScore, tun.HighBondingThreshold)
		},
		reveals: []Trait{PeopleOriented, QuickLearner},
	},
	{
		name: "low_stress",
		met: func(s DevelopmentState, tun config.TuningConfig) bool {
			return s.Stress <= tun.LowStressThreshold
		},
		progress: func(s DevelopmentState, tun config.TuningConfig) float64 {
			return ratio(100-s.Stress, 100-tun.LowStressThreshold)
		},
		reveals: []Trait{SteadyNerves, EasyKeeper},
	},
	{
		name: "high_stress",
		met: func(s DevelopmentState, tun config.TuningConfig) bool {
			return s.Stress >= tun.HighStressThreshold
		},
		progress: func(s DevelopmentState, tun config.TuningConfig) float64 {
			return ratio(s.Stress, tun.HighStressThreshold)
		},
		reveals: []Trait{Spooky, Bolter, HardKeeper},
	},
	{
		name: "enrichment_variety",
		met: func(s DevelopmentState, tun config.TuningConfig) bool {
			return len(s.Enrichment) >= tun.EnrichmentVariety
		},
		progress: func(s DevelopmentState, tun config.TuningConfig) float64 {
			return ratio(len(s.Enrichment), tun.EnrichmentVariety)
		},
		reveals: []Trait{CuriousMind, Brave},
	},
	{
		name: "development_complete",
		met: func(s DevelopmentState, tun config.TuningConfig) bool {
			return s.Day >= tun.DevelopmentDays
		},
		progress: func(s DevelopmentState, tun config.TuningConfig) float64 {
			return ratio(s.Day, tun.DevelopmentDays)
		},
		revealAll: true,
	},
}

// Discover evaluates every discovery condition against the development state
// and moves the revealable hidden traits of each satisfied condition to their
// catalog category. The input set is not mutated. When nothing qualifies the
// returned set equals the input and the event list is empty; that outcome is
// not an error.
func Discover(state DevelopmentState, set Set, tun config.TuningConfig) (Set, []Revealed) {
	out := set.Clone()
	var events []Revealed

	for _, cond := range discoveryConditions {
		if len(out.Hidden) == 0 {
			break
		}
		if !cond.met(state, tun) {
			continue
		}

		candidates := cond.reveals
		if cond.revealAll {
			candidates = append([]Trait(nil), out.Hidden...)
			sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })
		}

		for _, t := range candidates {
			if !out.IsHidden(t) {
				continue
			}
			out = out.Reveal(t)
			cat, _ := CategoryOf(t)
			events = append(events, Revealed{Condition: cond.name, Trait: t, Category: cat})
		}
	}

	return out, events
}

// Progress reports the 0-100% completion estimate of every discovery
// condition for the given state.
func Progress(state DevelopmentState, tun config.TuningConfig) map[string]float64 {
	out := make(map[string]float64, len(discoveryConditions))
	for _, cond := range discoveryConditions {
		out[cond.name] = cond.progress(state, tun)
	}
	return out
}
