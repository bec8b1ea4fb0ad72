package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hoofbeat/lineage/config"
	"github.com/hoofbeat/lineage/genetics"
	"github.com/hoofbeat/lineage/telemetry"
	"github.com/hoofbeat/lineage/traits"
)

func testTuning() config.TuningConfig {
	return config.TuningConfig{
		InbreedingGenerations: 3,
		LineageSpecialization: 0.6,
		MareStressDefault:     50,
		FeedQualityDefault:    50,
		MareStressHigh:        75,
		PerfectCareStress:     25,
		PerfectCareFeed:       75,
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(filepath.Join(t.TempDir(), "lineage.db"))
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetAnimal(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	gaiting := 82
	a := Animal{
		ID:     "a-1",
		Name:   "Ember",
		Breed:  "Rocky Mountain",
		SireID: "sire-1",
		DamID:  "dam-1",
		Genotype: genetics.Genotype{
			genetics.LocusExtension: {A: "E", B: "e"},
		},
		Phenotype: genetics.Phenotype{Color: "Bay", Shade: "Dark"},
		Ratings: genetics.AttributeRatings{
			Conformation: map[genetics.Attribute]int{genetics.Head: 70},
			Gaits:        map[genetics.Attribute]int{genetics.Walk: 72},
			Gaiting:      &gaiting,
		},
		Temperament: "Calm",
		Traits:      traits.NewSet().Hide(traits.Spooky),
		Counters:    traits.Counters{traits.Brave: 2},
	}

	if err := s.SaveAnimal(ctx, a); err != nil {
		t.Fatalf("SaveAnimal failed: %v", err)
	}

	got, found, err := s.GetAnimal(ctx, "a-1")
	if err != nil || !found {
		t.Fatalf("GetAnimal = %v found=%v", err, found)
	}
	if got.Name != "Ember" || got.Breed != "Rocky Mountain" {
		t.Errorf("record fields lost: %+v", got)
	}
	if got.Ratings.Gaiting == nil || *got.Ratings.Gaiting != 82 {
		t.Error("gaiting rating lost in round trip")
	}
	if !got.Traits.IsHidden(traits.Spooky) {
		t.Error("trait set lost in round trip")
	}
	if got.Counters[traits.Brave] != 2 {
		t.Error("counters lost in round trip")
	}

	// Upsert overwrites.
	a.AgeDays = 30
	if err := s.SaveAnimal(ctx, a); err != nil {
		t.Fatalf("SaveAnimal update failed: %v", err)
	}
	got, _, _ = s.GetAnimal(ctx, "a-1")
	if got.AgeDays != 30 {
		t.Errorf("AgeDays = %d, want 30", got.AgeDays)
	}
}

func TestGetAnimalMissing(t *testing.T) {
	s := newTestStore(t)
	_, found, err := s.GetAnimal(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("found a record that was never saved")
	}
}

func TestAncestorsWalksGenerations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// foal -> (sire, dam); sire -> (gs1, gs2); dam -> (gd1, gs1)  [shared gs1]
	records := []Animal{
		{ID: "foal", Breed: "Testbred", SireID: "sire", DamID: "dam"},
		{ID: "sire", Breed: "Testbred", SireID: "gs1", DamID: "gs2", Discipline: "racing"},
		{ID: "dam", Breed: "Testbred", SireID: "gd1", DamID: "gs1", Discipline: "racing"},
		{ID: "gs1", Breed: "Testbred", Discipline: "racing"},
		{ID: "gs2", Breed: "Testbred"},
		{ID: "gd1", Breed: "Testbred", Discipline: "dressage"},
	}
	for _, a := range records {
		if err := s.SaveAnimal(ctx, a); err != nil {
			t.Fatalf("SaveAnimal(%s) failed: %v", a.ID, err)
		}
	}

	one, err := s.Ancestors(ctx, "foal", 1)
	if err != nil {
		t.Fatalf("Ancestors failed: %v", err)
	}
	if len(one) != 2 {
		t.Errorf("1 generation = %d ancestors, want 2", len(one))
	}

	two, err := s.Ancestors(ctx, "foal", 2)
	if err != nil {
		t.Fatalf("Ancestors failed: %v", err)
	}
	// gs1 is shared and must appear once: sire, dam, gs1, gs2, gd1.
	if len(two) != 5 {
		t.Errorf("2 generations = %d ancestors, want 5", len(two))
	}
	disciplines := map[string]string{}
	for _, a := range two {
		disciplines[a.ID] = a.Discipline
	}
	if disciplines["gs1"] != "racing" || disciplines["gd1"] != "dressage" {
		t.Errorf("disciplines not carried: %v", disciplines)
	}
}

func TestDiscoveryEventsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	events := []telemetry.DiscoveryEvent{
		{AnimalID: "a-1", Day: 30, Condition: "high_bonding", Trait: "people_oriented", Category: "positive"},
		{AnimalID: "a-1", Day: 90, Condition: "high_stress", Trait: "spooky", Category: "negative"},
		{AnimalID: "a-2", Day: 10, Condition: "low_stress", Trait: "steady_nerves", Category: "positive"},
	}
	if err := s.SaveDiscoveryEvents(ctx, events); err != nil {
		t.Fatalf("SaveDiscoveryEvents failed: %v", err)
	}

	got, err := s.DiscoveryEvents(ctx, "a-1")
	if err != nil {
		t.Fatalf("DiscoveryEvents failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Condition != "high_bonding" || got[1].Trait != "spooky" {
		t.Errorf("event order or fields wrong: %+v", got)
	}
}

func TestStoreServesAncestryLookup(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, a := range []Animal{
		{ID: "sire", Breed: "Testbred", SireID: "shared", DamID: "x"},
		{ID: "dam", Breed: "Testbred", SireID: "shared", DamID: "y"},
		{ID: "shared", Breed: "Testbred"},
		{ID: "x", Breed: "Testbred"},
		{ID: "y", Breed: "Testbred"},
	} {
		if err := s.SaveAnimal(ctx, a); err != nil {
			t.Fatalf("SaveAnimal failed: %v", err)
		}
	}

	tun := testTuning()
	set, err := traits.BirthTraits("sire", "dam", traits.BirthConditions{}, s.AncestryLookup(ctx), tun, traits.NewSet())
	if err != nil {
		t.Fatalf("BirthTraits over store lookup failed: %v", err)
	}
	if !set.IsHidden(traits.FragileConstitution) {
		t.Errorf("shared grandsire should flag inbreeding: %+v", set)
	}
}
