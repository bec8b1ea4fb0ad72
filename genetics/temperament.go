package genetics

import (
	"log/slog"
	"sort"

	"github.com/hoofbeat/lineage/config"
)

// pickWeighted selects a label with probability proportional to its weight
// using a single cumulative scan over one uniform draw. Keys are visited in
// sorted order so that a seeded source reproduces the same pick. An empty map
// yields the fallback; a zero total weight falls back to the first key.
func pickWeighted(rng Rand, weights map[string]float64, fallback string) string {
	if len(weights) == 0 {
		return fallback
	}

	labels := make([]string, 0, len(weights))
	var total float64
	for label, w := range weights {
		if w > 0 {
			total += w
		}
		labels = append(labels, label)
	}
	sort.Strings(labels)

	if total <= 0 {
		return labels[0]
	}

	r := rng.Float64() * total
	var cum float64
	for _, label := range labels {
		w := weights[label]
		if w <= 0 {
			continue
		}
		cum += w
		if r < cum {
			return label
		}
	}
	return labels[len(labels)-1]
}

// StoreTemperament picks a temperament for a store-bought animal from the
// breed's base weight table.
func StoreTemperament(rng Rand, breed *config.BreedConfig, tun config.TuningConfig) string {
	if breed == nil || len(breed.Temperaments) == 0 {
		slog.Warn("temperament_weights_missing", "fallback", tun.DefaultTemperament)
		return tun.DefaultTemperament
	}
	return pickWeighted(rng, breed.Temperaments, tun.DefaultTemperament)
}

// FoalTemperament biases the breed's weight table toward each parent's
// temperament before selecting. A parent temperament that is not a recognized
// breed option contributes nothing beyond a warning; the bias never
// guarantees inheritance.
func FoalTemperament(rng Rand, sireTemperament, damTemperament string, breed *config.BreedConfig, tun config.TuningConfig) string {
	if breed == nil || len(breed.Temperaments) == 0 {
		slog.Warn("temperament_weights_missing", "fallback", tun.DefaultTemperament)
		return tun.DefaultTemperament
	}

	adjusted := make(map[string]float64, len(breed.Temperaments))
	for label, w := range breed.Temperaments {
		if w < 0 {
			w = 0
		}
		adjusted[label] = w
	}

	for _, parent := range []string{sireTemperament, damTemperament} {
		if parent == "" {
			continue
		}
		if _, ok := adjusted[parent]; ok {
			adjusted[parent] += tun.ParentTemperamentBonus
		} else {
			slog.Warn("parent_temperament_unrecognized", "temperament", parent, "breed", breed.Name)
		}
	}

	return pickWeighted(rng, adjusted, tun.DefaultTemperament)
}
