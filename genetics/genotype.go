package genetics

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hoofbeat/lineage/config"
)

// ErrMissingParentGenotype is returned when a breeding attempt has no usable
// genotype for one or both parents. A foal cannot be materialized without
// them, so the creation attempt aborts.
var ErrMissingParentGenotype = errors.New("parent genotype missing")

// AllelePair holds the two alleles an animal carries at one locus, most
// dominant first.
type AllelePair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// String renders the pair in "A/b" notation.
func (p AllelePair) String() string {
	return p.A + "/" + p.B
}

// Has reports whether either slot carries the given allele.
func (p AllelePair) Has(allele string) bool {
	return p.A == allele || p.B == allele
}

// Count returns how many copies of the allele the pair carries (0, 1 or 2).
func (p AllelePair) Count(allele string) int {
	n := 0
	if p.A == allele {
		n++
	}
	if p.B == allele {
		n++
	}
	return n
}

// Genotype maps locus names to the allele pair carried there. Produced once
// at creation and immutable afterward.
type Genotype map[string]AllelePair

// parsePair reads "E/e" notation from breed locus defaults.
func parsePair(s string) (AllelePair, bool) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return AllelePair{}, false
	}
	return AllelePair{A: parts[0], B: parts[1]}, true
}

// orderByDominance arranges two alleles so the more dominant (earlier in the
// locus config's allele list) comes first. Unknown alleles rank last.
func orderByDominance(a, b string, locus config.LocusConfig) AllelePair {
	rank := func(allele string) int {
		for i, known := range locus.Alleles {
			if known == allele {
				return i
			}
		}
		return len(locus.Alleles)
	}
	if rank(b) < rank(a) {
		a, b = b, a
	}
	return AllelePair{A: a, B: b}
}

// drawAllele picks one allele at random from a parent's pair at the given
// locus, falling back to the breed's default pair when the parent lacks the
// locus entirely.
func drawAllele(rng Rand, parent Genotype, locusName string, locus config.LocusConfig) string {
	pair, ok := parent[locusName]
	if !ok {
		pair, ok = parsePair(locus.Default)
		if !ok {
			slog.Warn("locus_default_malformed", "locus", locusName, "default", locus.Default)
			if len(locus.Alleles) == 0 {
				return ""
			}
			last := locus.Alleles[len(locus.Alleles)-1]
			pair = AllelePair{A: last, B: last}
		}
	}
	if rng.Intn(2) == 0 {
		return pair.A
	}
	return pair.B
}

// InheritGenotype combines two parent genotypes into a foal genotype, one
// allele drawn from each parent per locus defined in the foal's breed
// profile. Loci absent from a parent fall back to breed defaults; a parent
// with no genotype at all is fatal to the breeding attempt.
func InheritGenotype(rng Rand, sire, dam Genotype, breed *config.BreedConfig) (Genotype, error) {
	if len(sire) == 0 {
		return nil, fmt.Errorf("sire: %w", ErrMissingParentGenotype)
	}
	if len(dam) == 0 {
		return nil, fmt.Errorf("dam: %w", ErrMissingParentGenotype)
	}

	genotype := make(Genotype)
	if breed == nil || len(breed.Loci) == 0 {
		slog.Error("breed_loci_missing", "genotype", "empty")
		return genotype, nil
	}

	for name, locus := range breed.Loci {
		fromSire := drawAllele(rng, sire, name, locus)
		fromDam := drawAllele(rng, dam, name, locus)
		if fromSire == "" || fromDam == "" {
			continue
		}
		genotype[name] = orderByDominance(fromSire, fromDam, locus)
	}
	return genotype, nil
}

// StoreGenotype rolls a fresh genotype for a store-bought animal. Each slot
// is drawn from the breed's default pair most of the time, with a small
// chance of any allele from the locus pool so store stock carries some
// genetic variety into the breeding population.
func StoreGenotype(rng Rand, breed *config.BreedConfig) Genotype {
	genotype := make(Genotype)
	if breed == nil || len(breed.Loci) == 0 {
		slog.Warn("breed_loci_missing", "genotype", "empty")
		return genotype
	}

	const poolChance = 4 // one in four slots draws from the full pool

	for name, locus := range breed.Loci {
		pair, ok := parsePair(locus.Default)
		if !ok {
			slog.Warn("locus_default_malformed", "locus", name, "default", locus.Default)
			continue
		}
		draw := func() string {
			if len(locus.Alleles) > 0 && rng.Intn(poolChance) == 0 {
				return locus.Alleles[rng.Intn(len(locus.Alleles))]
			}
			if rng.Intn(2) == 0 {
				return pair.A
			}
			return pair.B
		}
		genotype[name] = orderByDominance(draw(), draw(), locus)
	}
	return genotype
}
