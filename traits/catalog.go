package traits

// Positive traits.
const (
	QuickLearner       Trait = "quick_learner"
	Brave              Trait = "brave"
	EasyKeeper         Trait = "easy_keeper"
	SureFooted         Trait = "sure_footed"
	PeopleOriented     Trait = "people_oriented"
	SteadyNerves       Trait = "steady_nerves"
	CuriousMind        Trait = "curious_mind"
	SmoothGaits        Trait = "smooth_gaits"
	CompetitiveLineage Trait = "competitive_lineage"
)

// Negative traits.
const (
	Spooky              Trait = "spooky"
	Stubborn            Trait = "stubborn"
	HardKeeper          Trait = "hard_keeper"
	BarnSour            Trait = "barn_sour"
	Cribbing            Trait = "cribbing"
	Bolter              Trait = "bolter"
	FragileConstitution Trait = "fragile_constitution"
)

// catalog fixes each trait's visible category. Discovery and merge routing
// consult this table; it is built once and never mutated at runtime.
var catalog = map[Trait]Category{
	QuickLearner:       Positive,
	Brave:              Positive,
	EasyKeeper:         Positive,
	SureFooted:         Positive,
	PeopleOriented:     Positive,
	SteadyNerves:       Positive,
	CuriousMind:        Positive,
	SmoothGaits:        Positive,
	CompetitiveLineage: Positive,

	Spooky:              Negative,
	Stubborn:            Negative,
	HardKeeper:          Negative,
	BarnSour:            Negative,
	Cribbing:            Negative,
	Bolter:              Negative,
	FragileConstitution: Negative,
}

// CategoryOf returns the fixed category of a known trait.
func CategoryOf(t Trait) (Category, bool) {
	cat, ok := catalog[t]
	return cat, ok
}

// Known reports whether the trait exists in the catalog.
func Known(t Trait) bool {
	_, ok := catalog[t]
	return ok
}

// Catalog returns every known trait identifier. The order is unspecified.
func Catalog() []Trait {
	out := make([]Trait, 0, len(catalog))
	for t := range catalog {
		out = append(out, t)
	}
	return out
}
