package traits

import (
	"log/slog"

	"github.com/agnivade/levenshtein"
)

// EffectBundle is the gameplay modifier payload of one trait: flat percentage
// deltas, boolean flags, and nested per-discipline / per-stat percentage
// maps. Bundles are static configuration, never per-animal state.
type EffectBundle struct {
	TrainingSpeedPct float64 `json:"training_speed_pct,omitempty"`
	StressRatePct    float64 `json:"stress_rate_pct,omitempty"`
	EnergyDrainPct   float64 `json:"energy_drain_pct,omitempty"`
	BondingRatePct   float64 `json:"bonding_rate_pct,omitempty"`
	InjuryRiskPct    float64 `json:"injury_risk_pct,omitempty"`

	WeatherTolerant bool `json:"weather_tolerant,omitempty"`
	ShowNerves      bool `json:"show_nerves,omitempty"`

	Disciplines map[string]float64 `json:"disciplines,omitempty"`
	Stats       map[string]float64 `json:"stats,omitempty"`
}

// effectTable fixes each trait's modifier bundle.
var effectTable = map[Trait]EffectBundle{
	QuickLearner: {
		TrainingSpeedPct: 15,
		Disciplines:      map[string]float64{"dressage": 5},
	},
	Brave: {
		StressRatePct:   -10,
		WeatherTolerant: true,
		Disciplines:     map[string]float64{"cross_country": 10, "trail": 5},
	},
	EasyKeeper: {
		EnergyDrainPct: -20,
	},
	SureFooted: {
		InjuryRiskPct: -15,
		Disciplines:   map[string]float64{"trail": 10},
		Stats:         map[string]float64{"hooves": 5, "legs": 5},
	},
	PeopleOriented: {
		BondingRatePct:   25,
		TrainingSpeedPct: 5,
	},
	SteadyNerves: {
		StressRatePct: -20,
		Disciplines:   map[string]float64{"dressage": 10},
	},
	CuriousMind: {
		TrainingSpeedPct: 10,
		BondingRatePct:   5,
	},
	SmoothGaits: {
		Disciplines: map[string]float64{"dressage": 5, "trail": 10},
		Stats:       map[string]float64{"gaiting": 10},
	},
	CompetitiveLineage: {
		TrainingSpeedPct: 5,
		Disciplines:      map[string]float64{"racing": 10},
	},

	Spooky: {
		StressRatePct: 25,
		ShowNerves:    true,
	},
	Stubborn: {
		TrainingSpeedPct: -20,
	},
	HardKeeper: {
		EnergyDrainPct: 25,
	},
	BarnSour: {
		Disciplines: map[string]float64{"trail": -15, "cross_country": -10},
	},
	Cribbing: {
		EnergyDrainPct: 10,
		InjuryRiskPct:  5,
	},
	Bolter: {
		StressRatePct: 10,
		ShowNerves:    true,
		Disciplines:   map[string]float64{"racing": 5, "trail": -10},
	},
	FragileConstitution: {
		InjuryRiskPct:  20,
		EnergyDrainPct: 10,
	},
}

// maxSuggestionDistance bounds how far a misspelled identifier may be from a
// known one before the warning drops the suggestion.
const maxSuggestionDistance = 3

// Effects returns a copy of the trait's modifier bundle, or nil for unknown
// identifiers. Unknown traits log a warning with a nearest-known suggestion
// when a close match exists; they never fail the caller.
func Effects(t Trait) *EffectBundle {
	bundle, ok := effectTable[t]
	if !ok {
		if suggestion, found := nearestTrait(t); found {
			slog.Warn("trait_unknown", "trait", t, "did_you_mean", suggestion)
		} else {
			slog.Warn("trait_unknown", "trait", t)
		}
		return nil
	}
	out := bundle
	out.Disciplines = copyMap(bundle.Disciplines)
	out.Stats = copyMap(bundle.Stats)
	return &out
}

// nearestTrait finds the known identifier closest to the given one by edit
// distance.
func nearestTrait(t Trait) (Trait, bool) {
	best := Trait("")
	bestDist := maxSuggestionDistance + 1
	for known := range effectTable {
		d := levenshtein.ComputeDistance(string(t), string(known))
		if d < bestDist {
			best, bestDist = known, d
		}
	}
	return best, bestDist <= maxSuggestionDistance
}

// Combined folds the bundles of every listed trait into one. The merge is an
// explicit reducer over the closed set of field kinds — numeric fields sum,
// booleans OR, nested maps sum matching keys — so the result is the same
// regardless of list order. Unknown traits contribute nothing.
func Combined(names []Trait) EffectBundle {
	var out EffectBundle
	for _, name := range names {
		bundle := Effects(name)
		if bundle == nil {
			continue
		}
		out.TrainingSpeedPct += bundle.TrainingSpeedPct
		out.StressRatePct += bundle.StressRatePct
		out.EnergyDrainPct += bundle.EnergyDrainPct
		out.BondingRatePct += bundle.BondingRatePct
		out.InjuryRiskPct += bundle.InjuryRiskPct

		out.WeatherTolerant = out.WeatherTolerant || bundle.WeatherTolerant
		out.ShowNerves = out.ShowNerves || bundle.ShowNerves

		out.Disciplines = mergeMap(out.Disciplines, bundle.Disciplines)
		out.Stats = mergeMap(out.Stats, bundle.Stats)
	}
	return out
}

func copyMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// mergeMap sums matching keys and copies unmatched ones.
func mergeMap(dst, src map[string]float64) map[string]float64 {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]float64, len(src))
	}
	for k, v := range src {
		dst[k] += v
	}
	return dst
}
