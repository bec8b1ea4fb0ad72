package traits

import (
	"fmt"
	"log/slog"

	"github.com/hoofbeat/lineage/config"
)

// Ancestor is one entry of a lineage scan: who the ancestor is and which
// discipline its record is specialized in (empty when unspecialized).
type Ancestor struct {
	ID         string
	Discipline string
}

// AncestryLookup fetches an animal's ancestors up to the given number of
// generations back. Supplied by the record store; the engine never queries
// storage itself.
type AncestryLookup func(animalID string, generations int) ([]Ancestor, error)

// BirthConditions carries the optional birth-time environment inputs. Nil
// fields fall back to the configured defaults.
type BirthConditions struct {
	MareStress  *int
	FeedQuality *int
}

// BirthTraits evaluates the at-birth epigenetic conditions for a newborn with
// both parents known and merges the resulting traits into any trait data the
// record already carries. The error return covers lineage lookup failures
// only; the creation flow is expected to catch it, log, and proceed with the
// existing set untouched.
func BirthTraits(sireID, damID string, cond BirthConditions, lookup AncestryLookup, tun config.TuningConfig, existing Set) (Set, error) {
	if sireID == "" || damID == "" {
		// Not a bred animal; nothing to evaluate.
		return existing, nil
	}

	var assigned Set

	if lookup != nil {
		sireLine, err := lookup(sireID, tun.InbreedingGenerations)
		if err != nil {
			return existing, fmt.Errorf("sire lineage: %w", err)
		}
		damLine, err := lookup(damID, tun.InbreedingGenerations)
		if err != nil {
			return existing, fmt.Errorf("dam lineage: %w", err)
		}

		if specialized(sireLine, damLine, tun.LineageSpecialization) {
			assigned = assigned.Hide(CompetitiveLineage)
		}
		if inbred(sireID, damID, sireLine, damLine) {
			assigned = assigned.Hide(FragileConstitution)
			assigned = assigned.Hide(Spooky)
		}
	}

	stress := tun.MareStressDefault
	if cond.MareStress != nil {
		stress = *cond.MareStress
	}
	feed := tun.FeedQualityDefault
	if cond.FeedQuality != nil {
		feed = *cond.FeedQuality
	}

	if stress >= tun.MareStressHigh {
		assigned = assigned.Hide(Spooky)
		assigned = assigned.Hide(HardKeeper)
	}
	if stress <= tun.PerfectCareStress && feed >= tun.PerfectCareFeed {
		assigned = assigned.Hide(EasyKeeper)
		assigned = assigned.Add(SteadyNerves, Positive, false)
	}

	merged := existing.Merge(assigned)
	slog.Info("birth_traits_assigned",
		"sire", sireID,
		"dam", damID,
		"hidden", len(merged.Hidden),
		"positive", len(merged.Positive),
		"negative", len(merged.Negative),
	)
	return merged, nil
}

// specialized reports whether the combined ancestry concentrates in a single
// discipline at or beyond the configured fraction.
func specialized(sireLine, damLine []Ancestor, fraction float64) bool {
	counts := make(map[string]int)
	total := 0
	for _, a := range append(append([]Ancestor(nil), sireLine...), damLine...) {
		if a.Discipline == "" {
			continue
		}
		counts[a.Discipline]++
		total++
	}
	if total == 0 {
		return false
	}
	for _, n := range counts {
		if float64(n)/float64(total) >= fraction {
			return true
		}
	}
	return false
}

// inbred reports a shared ancestor between the two lines within the scanned
// generations, or one parent appearing in the other's line.
func inbred(sireID, damID string, sireLine, damLine []Ancestor) bool {
	seen := make(map[string]bool, len(sireLine)+1)
	seen[sireID] = true
	for _, a := range sireLine {
		seen[a.ID] = true
	}
	if seen[damID] {
		return true
	}
	for _, a := range damLine {
		if seen[a.ID] {
			return true
		}
	}
	return false
}
