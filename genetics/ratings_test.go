package genetics

import (
	"math/rand"
	"testing"

	"github.com/hoofbeat/lineage/config"
)

// stubRand forces the uniform draw to a fixed value for boundary tests.
type stubRand struct {
	f float64
	n int
}

func (s stubRand) Float64() float64 { return s.f }
func (s stubRand) Intn(n int) int   { return s.n % n }

func testTuning() config.TuningConfig {
	return config.TuningConfig{
		DefaultScore:           50,
		DefaultStdDev:          3,
		DefaultTemperament:     "Calm",
		ParentTemperamentBonus: 15,
		FoalTweak:              5,
	}
}

func testBreed(gaited bool) *config.BreedConfig {
	conformation := make(map[string]config.AttributeProfile, len(ConformationAttributes))
	for _, attr := range ConformationAttributes {
		conformation[string(attr)] = config.AttributeProfile{Mean: 70, StdDev: 10}
	}
	gaits := make(map[string]config.AttributeProfile, len(GaitAttributes)+1)
	for _, attr := range GaitAttributes {
		gaits[string(attr)] = config.AttributeProfile{Mean: 65, StdDev: 12}
	}
	if gaited {
		gaits[string(Gaiting)] = config.AttributeProfile{Mean: 80, StdDev: 8}
	}
	return &config.BreedConfig{
		Name:         "Testbred",
		Gaited:       gaited,
		Conformation: conformation,
		Gaits:        gaits,
		Temperaments: map[string]float64{"Calm": 20, "Spirited": 15},
	}
}

func TestScoreRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tun := testTuning()
	profile := &config.AttributeProfile{Mean: 50, StdDev: 60}

	for i := 0; i < 5000; i++ {
		got := Score(rng, profile, tun)
		if got < MinScore || got > MaxScore {
			t.Fatalf("Score out of range: %d", got)
		}
	}
}

func TestScoreExtremes(t *testing.T) {
	tun := testTuning()
	profile := &config.AttributeProfile{Mean: 50, StdDev: 80}

	// Draw forced to the bottom of U(-1,1): 50 - 80 clamps to exactly 1.
	if got := Score(stubRand{f: 0}, profile, tun); got != MinScore {
		t.Errorf("low extreme = %d, want %d", got, MinScore)
	}
	// Draw forced to the top: 50 + ~80 clamps to exactly 100.
	if got := Score(stubRand{f: 0.999999}, profile, tun); got != MaxScore {
		t.Errorf("high extreme = %d, want %d", got, MaxScore)
	}
}

func TestScoreMissingProfile(t *testing.T) {
	tun := testTuning()

	tests := []struct {
		name    string
		profile *config.AttributeProfile
	}{
		{"nil profile", nil},
		{"zero mean", &config.AttributeProfile{Mean: 0, StdDev: 5}},
		{"negative std dev", &config.AttributeProfile{Mean: 60, StdDev: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(stubRand{}, tt.profile, tun); got != tun.DefaultScore {
				t.Errorf("Score = %d, want default %d", got, tun.DefaultScore)
			}
		})
	}
}

func TestStoreRatingsGaiting(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tun := testTuning()

	plain := StoreRatings(rng, testBreed(false), tun)
	if plain.Gaiting != nil {
		t.Errorf("non-gaited breed gaiting = %d, want nil", *plain.Gaiting)
	}

	gaited := StoreRatings(rng, testBreed(true), tun)
	if gaited.Gaiting == nil {
		t.Fatal("gaited breed gaiting = nil, want score")
	}
	if *gaited.Gaiting < MinScore || *gaited.Gaiting > MaxScore {
		t.Errorf("gaiting out of range: %d", *gaited.Gaiting)
	}
}

func TestStoreRatingsNilBreed(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tun := testTuning()

	ratings := StoreRatings(rng, nil, tun)
	for _, attr := range ConformationAttributes {
		if ratings.Conformation[attr] != tun.DefaultScore {
			t.Errorf("%s = %d, want default %d", attr, ratings.Conformation[attr], tun.DefaultScore)
		}
	}
	for _, attr := range GaitAttributes {
		if ratings.Gaits[attr] != tun.DefaultScore {
			t.Errorf("%s = %d, want default %d", attr, ratings.Gaits[attr], tun.DefaultScore)
		}
	}
	if ratings.Gaiting != nil {
		t.Error("nil breed gaiting should be nil")
	}
}

func TestFoalRatingsRange(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	tun := testTuning()
	breed := testBreed(true)

	sire := StoreRatings(rng, breed, tun)
	dam := StoreRatings(rng, breed, tun)

	// One parent missing an attribute entirely: treated as the default score.
	delete(sire.Conformation, Hooves)
	delete(dam.Gaits, Trot)

	for i := 0; i < 1000; i++ {
		foal := FoalRatings(rng, &sire, &dam, breed, tun)
		for attr, score := range foal.Conformation {
			if score < MinScore || score > MaxScore {
				t.Fatalf("conformation %s out of range: %d", attr, score)
			}
		}
		for attr, score := range foal.Gaits {
			if score < MinScore || score > MaxScore {
				t.Fatalf("gait %s out of range: %d", attr, score)
			}
		}
		if foal.Gaiting == nil {
			t.Fatal("gaited foal breed should have a gaiting score")
		}
		if *foal.Gaiting < MinScore || *foal.Gaiting > MaxScore {
			t.Fatalf("gaiting out of range: %d", *foal.Gaiting)
		}
	}
}

func TestFoalRatingsGaitingFollowsFoalBreed(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tun := testTuning()

	// Both parents gaited, foal's breed is not: gaiting must be nil.
	gaitedBreed := testBreed(true)
	sire := StoreRatings(rng, gaitedBreed, tun)
	dam := StoreRatings(rng, gaitedBreed, tun)

	foal := FoalRatings(rng, &sire, &dam, testBreed(false), tun)
	if foal.Gaiting != nil {
		t.Errorf("foal of non-gaited breed has gaiting %d, want nil", *foal.Gaiting)
	}
}

func TestFoalRatingsNilParents(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	tun := testTuning()

	foal := FoalRatings(rng, nil, nil, testBreed(false), tun)
	for attr, score := range foal.Conformation {
		if score < MinScore || score > MaxScore {
			t.Fatalf("conformation %s out of range: %d", attr, score)
		}
	}
}
