package genetics

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/hoofbeat/lineage/config"
	"github.com/hoofbeat/lineage/traits"
)

func breedingBreed() *config.BreedConfig {
	b := testBreed(false)
	b.Loci = map[string]config.LocusConfig{
		LocusExtension: {Alleles: []string{"E", "e"}, Default: "E/e"},
		LocusAgouti:    {Alleles: []string{"A", "a"}, Default: "A/a"},
	}
	return b
}

func breedingParent(rng Rand, id string, breed *config.BreedConfig, tun config.TuningConfig) Parent {
	ratings := StoreRatings(rng, breed, tun)
	return Parent{
		ID:          id,
		Genotype:    StoreGenotype(rng, breed),
		Ratings:     &ratings,
		Temperament: StoreTemperament(rng, breed, tun),
	}
}

func TestBreedFoal(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	tun := testTuning()
	tun.InbreedingGenerations = 3
	breed := breedingBreed()

	sire := breedingParent(rng, "sire-1", breed, tun)
	dam := breedingParent(rng, "dam-1", breed, tun)

	ancestry := func(id string, generations int) ([]traits.Ancestor, error) {
		return nil, nil
	}

	foal, err := BreedFoal(rng, sire, dam, breed, tun, traits.BirthConditions{}, ancestry)
	if err != nil {
		t.Fatalf("BreedFoal failed: %v", err)
	}

	if foal.SireID != "sire-1" || foal.DamID != "dam-1" {
		t.Errorf("parent ids = %s/%s", foal.SireID, foal.DamID)
	}
	if len(foal.Genotype) != len(breed.Loci) {
		t.Errorf("genotype has %d loci, want %d", len(foal.Genotype), len(breed.Loci))
	}
	if foal.Phenotype.Color == "" {
		t.Error("phenotype color empty")
	}
	if foal.Temperament != "Calm" && foal.Temperament != "Spirited" {
		t.Errorf("temperament %q outside breed vocabulary", foal.Temperament)
	}
	for attr, score := range foal.Ratings.Conformation {
		if score < MinScore || score > MaxScore {
			t.Errorf("conformation %s out of range: %d", attr, score)
		}
	}
}

func TestBreedFoalMissingGenotypeAborts(t *testing.T) {
	rng := rand.New(rand.NewSource(22))
	tun := testTuning()
	breed := breedingBreed()

	sire := breedingParent(rng, "sire-1", breed, tun)
	sire.Genotype = nil
	dam := breedingParent(rng, "dam-1", breed, tun)

	_, err := BreedFoal(rng, sire, dam, breed, tun, traits.BirthConditions{}, nil)
	if !errors.Is(err, ErrMissingParentGenotype) {
		t.Errorf("err = %v, want ErrMissingParentGenotype", err)
	}
}

func TestBreedFoalSurvivesBirthTraitFailure(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	tun := testTuning()
	tun.InbreedingGenerations = 3
	breed := breedingBreed()

	sire := breedingParent(rng, "sire-1", breed, tun)
	dam := breedingParent(rng, "dam-1", breed, tun)

	ancestry := func(id string, generations int) ([]traits.Ancestor, error) {
		return nil, errors.New("lineage table offline")
	}

	foal, err := BreedFoal(rng, sire, dam, breed, tun, traits.BirthConditions{}, ancestry)
	if err != nil {
		t.Fatalf("birth-trait failure must not abort creation: %v", err)
	}
	if len(foal.Traits.Positive)+len(foal.Traits.Negative)+len(foal.Traits.Hidden) != 0 {
		t.Errorf("expected empty trait set after engine failure, got %+v", foal.Traits)
	}
}
