// Package genetics implements the creation-time resolvers for bred and
// store-bought animals: attribute ratings, temperament, genotype inheritance,
// and phenotype resolution.
package genetics

import (
	"log/slog"
	"math"

	"github.com/hoofbeat/lineage/config"
)

// Attribute names one rated conformation or gait attribute.
type Attribute string

// Conformation attributes.
const (
	Head         Attribute = "head"
	Neck         Attribute = "neck"
	Shoulders    Attribute = "shoulders"
	Back         Attribute = "back"
	Hindquarters Attribute = "hindquarters"
	Legs         Attribute = "legs"
	Hooves       Attribute = "hooves"
)

// Gait attributes. Gaiting is rated only for gaited breeds.
const (
	Walk    Attribute = "walk"
	Trot    Attribute = "trot"
	Canter  Attribute = "canter"
	Gallop  Attribute = "gallop"
	Gaiting Attribute = "gaiting"
)

// ConformationAttributes lists every conformation attribute the rating
// generator scores, in display order.
var ConformationAttributes = []Attribute{Head, Neck, Shoulders, Back, Hindquarters, Legs, Hooves}

// GaitAttributes lists the gaits every breed is scored on. Gaiting is
// handled separately via the breed's gaited flag.
var GaitAttributes = []Attribute{Walk, Trot, Canter, Gallop}

// Rating bounds.
const (
	MinScore = 1
	MaxScore = 100
)

// AttributeRatings holds the scored attributes for one animal. Gaiting is nil
// for animals of non-gaited breeds.
type AttributeRatings struct {
	Conformation map[Attribute]int `json:"conformation"`
	Gaits        map[Attribute]int `json:"gaits"`
	Gaiting      *int              `json:"gaiting"`
}

// clampScore clamps a rating to the valid range.
func clampScore(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}

// Score samples one attribute rating from a {mean, std_dev} profile. A
// missing or degenerate profile yields the configured default score with a
// warning; the scorer never fails.
func Score(rng Rand, profile *config.AttributeProfile, tun config.TuningConfig) int {
	if profile == nil || profile.Mean <= 0 || profile.StdDev < 0 {
		slog.Warn("attribute_profile_missing", "fallback", tun.DefaultScore)
		return tun.DefaultScore
	}
	raw := profile.Mean + uniform(rng)*profile.StdDev
	return clampScore(int(math.Round(raw)))
}

// StoreRatings generates ratings for a store-bought animal straight from its
// breed profile. An absent breed profile is a data integrity problem: every
// attribute degrades to the default score (gaiting nil) and the event is
// logged at error level, but the caller still gets a usable record.
func StoreRatings(rng Rand, breed *config.BreedConfig, tun config.TuningConfig) AttributeRatings {
	ratings := AttributeRatings{
		Conformation: make(map[Attribute]int, len(ConformationAttributes)),
		Gaits:        make(map[Attribute]int, len(GaitAttributes)),
	}

	if breed == nil {
		slog.Error("breed_profile_missing", "fallback", tun.DefaultScore)
		for _, attr := range ConformationAttributes {
			ratings.Conformation[attr] = tun.DefaultScore
		}
		for _, attr := range GaitAttributes {
			ratings.Gaits[attr] = tun.DefaultScore
		}
		return ratings
	}

	for _, attr := range ConformationAttributes {
		ratings.Conformation[attr] = Score(rng, attributeProfile(breed.Conformation, attr), tun)
	}
	for _, attr := range GaitAttributes {
		ratings.Gaits[attr] = Score(rng, attributeProfile(breed.Gaits, attr), tun)
	}

	if breed.Gaited {
		if profile := attributeProfile(breed.Gaits, Gaiting); profile != nil {
			g := Score(rng, profile, tun)
			ratings.Gaiting = &g
		} else {
			slog.Warn("gaited_breed_missing_gaiting_profile", "breed", breed.Name)
		}
	}

	return ratings
}

// FoalRatings computes a foal's ratings from its parents' scores plus the
// foal breed's own variance. A parent score missing for an attribute is
// treated as the default score. Gaiting follows the foal's own breed flag,
// not either parent's.
func FoalRatings(rng Rand, sire, dam *AttributeRatings, breed *config.BreedConfig, tun config.TuningConfig) AttributeRatings {
	ratings := AttributeRatings{
		Conformation: make(map[Attribute]int, len(ConformationAttributes)),
		Gaits:        make(map[Attribute]int, len(GaitAttributes)),
	}

	var confProfiles, gaitProfiles map[string]config.AttributeProfile
	if breed != nil {
		confProfiles = breed.Conformation
		gaitProfiles = breed.Gaits
	} else {
		slog.Error("foal_breed_profile_missing", "fallback_std_dev", tun.DefaultStdDev)
	}

	for _, attr := range ConformationAttributes {
		ratings.Conformation[attr] = foalScore(rng,
			parentScore(sire, attr, false, tun), parentScore(dam, attr, false, tun),
			attributeProfile(confProfiles, attr), tun)
	}
	for _, attr := range GaitAttributes {
		ratings.Gaits[attr] = foalScore(rng,
			parentScore(sire, attr, true, tun), parentScore(dam, attr, true, tun),
			attributeProfile(gaitProfiles, attr), tun)
	}

	if breed != nil && breed.Gaited {
		sg, dg := tun.DefaultScore, tun.DefaultScore
		if sire != nil && sire.Gaiting != nil {
			sg = *sire.Gaiting
		}
		if dam != nil && dam.Gaiting != nil {
			dg = *dam.Gaiting
		}
		g := foalScore(rng, sg, dg, attributeProfile(gaitProfiles, Gaiting), tun)
		ratings.Gaiting = &g
	}

	return ratings
}

// foalScore blends two parent scores with the foal breed's variance plus a
// small symmetric integer tweak, clamped to the rating range.
func foalScore(rng Rand, sireScore, damScore int, profile *config.AttributeProfile, tun config.TuningConfig) int {
	parentAvg := float64(sireScore+damScore) / 2

	stdDev := tun.DefaultStdDev
	if profile != nil && profile.StdDev > 0 {
		stdDev = profile.StdDev
	}

	tweak := 0
	if tun.FoalTweak > 0 {
		tweak = rng.Intn(2*tun.FoalTweak+1) - tun.FoalTweak
	}

	raw := parentAvg + uniform(rng)*stdDev + float64(tweak)
	return clampScore(int(math.Round(raw)))
}

// parentScore reads one attribute from a parent's ratings, falling back to
// the default score when the parent record lacks it.
func parentScore(r *AttributeRatings, attr Attribute, gait bool, tun config.TuningConfig) int {
	if r == nil {
		return tun.DefaultScore
	}
	group := r.Conformation
	if gait {
		group = r.Gaits
	}
	if score, ok := group[attr]; ok {
		return score
	}
	return tun.DefaultScore
}

// attributeProfile looks up an attribute's profile, returning nil when the
// breed has no entry for it.
func attributeProfile(profiles map[string]config.AttributeProfile, attr Attribute) *config.AttributeProfile {
	if profiles == nil {
		return nil
	}
	p, ok := profiles[string(attr)]
	if !ok {
		return nil
	}
	return &p
}
