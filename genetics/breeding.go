package genetics

import (
	"fmt"
	"log/slog"

	"github.com/hoofbeat/lineage/config"
	"github.com/hoofbeat/lineage/traits"
)

// Parent is the slice of an existing animal record that breeding reads.
type Parent struct {
	ID          string
	Genotype    Genotype
	Ratings     *AttributeRatings
	Temperament string
}

// Foal is a fully materialized offspring record, ready for persistence by
// the caller.
type Foal struct {
	SireID      string
	DamID       string
	Genotype    Genotype
	Phenotype   Phenotype
	Ratings     AttributeRatings
	Temperament string
	Traits      traits.Set
}

// BreedFoal materializes a new offspring from two parent records: genotype,
// then phenotype, ratings, temperament, and the at-birth trait evaluation,
// in that order. Only missing parent genotype data aborts the attempt; a
// failure in the birth-trait engine is logged and the foal proceeds with an
// empty trait set.
func BreedFoal(rng Rand, sire, dam Parent, breed *config.BreedConfig, tun config.TuningConfig,
	birth traits.BirthConditions, ancestry traits.AncestryLookup) (*Foal, error) {

	genotype, err := InheritGenotype(rng, sire.Genotype, dam.Genotype, breed)
	if err != nil {
		return nil, fmt.Errorf("breeding %s x %s: %w", sire.ID, dam.ID, err)
	}

	foal := &Foal{
		SireID:      sire.ID,
		DamID:       dam.ID,
		Genotype:    genotype,
		Phenotype:   ResolvePhenotype(genotype, breed),
		Ratings:     FoalRatings(rng, sire.Ratings, dam.Ratings, breed, tun),
		Temperament: FoalTemperament(rng, sire.Temperament, dam.Temperament, breed, tun),
	}

	set, err := traits.BirthTraits(sire.ID, dam.ID, birth, ancestry, tun, traits.NewSet())
	if err != nil {
		slog.Error("birth_traits_failed", "sire", sire.ID, "dam", dam.ID, "error", err)
		set = traits.NewSet()
	}
	foal.Traits = set

	return foal, nil
}
