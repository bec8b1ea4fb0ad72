// Package telemetry provides audit records and cohort statistics for the
// genetics engine, with CSV output for offline analysis.
package telemetry

import (
	"strings"

	"github.com/hoofbeat/lineage/genetics"
	"github.com/hoofbeat/lineage/traits"
)

// DiscoveryEvent is the persisted audit record of one trait discovery: which
// condition fired on which day and what it revealed.
type DiscoveryEvent struct {
	AnimalID  string `csv:"animal_id"`
	Day       int    `csv:"day"`
	Condition string `csv:"condition"`
	Trait     string `csv:"trait"`
	Category  string `csv:"category"`
}

// NewDiscoveryEvents expands the reveal list of one discovery invocation
// into audit records.
func NewDiscoveryEvents(animalID string, day int, revealed []traits.Revealed) []DiscoveryEvent {
	events := make([]DiscoveryEvent, 0, len(revealed))
	for _, r := range revealed {
		events = append(events, DiscoveryEvent{
			AnimalID:  animalID,
			Day:       day,
			Condition: r.Condition,
			Trait:     string(r.Trait),
			Category:  r.Category.String(),
		})
	}
	return events
}

// FoalRecord is the flat CSV row written per materialized foal.
type FoalRecord struct {
	ID          string `csv:"id"`
	Breed       string `csv:"breed"`
	SireID      string `csv:"sire_id"`
	DamID       string `csv:"dam_id"`
	Color       string `csv:"color"`
	Shade       string `csv:"shade"`
	Markings    string `csv:"markings"`
	Temperament string `csv:"temperament"`

	Head         int `csv:"head"`
	Neck         int `csv:"neck"`
	Shoulders    int `csv:"shoulders"`
	Back         int `csv:"back"`
	Hindquarters int `csv:"hindquarters"`
	Legs         int `csv:"legs"`
	Hooves       int `csv:"hooves"`

	Walk    int `csv:"walk"`
	Trot    int `csv:"trot"`
	Canter  int `csv:"canter"`
	Gallop  int `csv:"gallop"`
	Gaiting int `csv:"gaiting"` // 0 when the breed is not gaited

	PositiveTraits int `csv:"positive_traits"`
	NegativeTraits int `csv:"negative_traits"`
	HiddenTraits   int `csv:"hidden_traits"`
}

// NewFoalRecord flattens a materialized foal for CSV output.
func NewFoalRecord(id, breedName string, foal *genetics.Foal) FoalRecord {
	rec := FoalRecord{
		ID:          id,
		Breed:       breedName,
		SireID:      foal.SireID,
		DamID:       foal.DamID,
		Color:       foal.Phenotype.Color,
		Shade:       foal.Phenotype.Shade,
		Markings:    strings.Join(foal.Phenotype.Markings, "|"),
		Temperament: foal.Temperament,

		Head:         foal.Ratings.Conformation[genetics.Head],
		Neck:         foal.Ratings.Conformation[genetics.Neck],
		Shoulders:    foal.Ratings.Conformation[genetics.Shoulders],
		Back:         foal.Ratings.Conformation[genetics.Back],
		Hindquarters: foal.Ratings.Conformation[genetics.Hindquarters],
		Legs:         foal.Ratings.Conformation[genetics.Legs],
		Hooves:       foal.Ratings.Conformation[genetics.Hooves],

		Walk:   foal.Ratings.Gaits[genetics.Walk],
		Trot:   foal.Ratings.Gaits[genetics.Trot],
		Canter: foal.Ratings.Gaits[genetics.Canter],
		Gallop: foal.Ratings.Gaits[genetics.Gallop],

		PositiveTraits: len(foal.Traits.Positive),
		NegativeTraits: len(foal.Traits.Negative),
		HiddenTraits:   len(foal.Traits.Hidden),
	}
	if foal.Ratings.Gaiting != nil {
		rec.Gaiting = *foal.Ratings.Gaiting
	}
	return rec
}
