package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/hoofbeat/lineage/config"
	"github.com/hoofbeat/lineage/genetics"
	"github.com/hoofbeat/lineage/store"
	"github.com/hoofbeat/lineage/telemetry"
	"github.com/hoofbeat/lineage/traits"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	dbPath := flag.String("db", "lineage.db", "Path to the sqlite record store")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	breedName := flag.String("breed", "Thoroughbred", "Breed to simulate")
	founders := flag.Int("founders", 8, "Number of store-bought founder animals")
	foals := flag.Int("foals", 20, "Number of foals to breed")
	days := flag.Int("days", 365, "Development days to simulate per foal")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	tun := cfg.Tuning

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	breed := cfg.Breed(*breedName)
	if breed == nil {
		slog.Error("unknown breed", "breed", *breedName)
		os.Exit(1)
	}

	ctx := context.Background()
	st := store.New(*dbPath)
	if err := st.Init(ctx); err != nil {
		slog.Error("failed to open record store", "path", *dbPath, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to snapshot config", "error", err)
	}

	slog.Info("starting breeding simulation",
		"seed", rngSeed,
		"breed", breed.Name,
		"founders", *founders,
		"foals", *foals,
		"days", *days,
	)

	herd := seedFounders(ctx, rng, st, breed, tun, *founders)
	if len(herd) < 2 {
		slog.Error("not enough founders to breed", "count", len(herd))
		os.Exit(1)
	}

	records := make([]telemetry.FoalRecord, 0, *foals)
	var discoveries []telemetry.DiscoveryEvent
	scores := map[genetics.Attribute][]int{}

	for i := 0; i < *foals; i++ {
		sire := herd[rng.Intn(len(herd))]
		dam := herd[rng.Intn(len(herd))]
		for dam.ID == sire.ID {
			dam = herd[rng.Intn(len(herd))]
		}

		foal, err := breedOne(ctx, rng, st, sire, dam, breed, tun)
		if err != nil {
			slog.Error("breeding failed", "sire", sire.ID, "dam", dam.ID, "error", err)
			continue
		}

		discoveries = append(discoveries, raise(ctx, rng, st, foal, tun, *days)...)

		records = append(records, telemetry.NewFoalRecord(foal.ID, breed.Name, &genetics.Foal{
			SireID:      foal.SireID,
			DamID:       foal.DamID,
			Genotype:    foal.Genotype,
			Phenotype:   foal.Phenotype,
			Ratings:     foal.Ratings,
			Temperament: foal.Temperament,
			Traits:      foal.Traits,
		}))
		for attr, score := range foal.Ratings.Conformation {
			scores[attr] = append(scores[attr], score)
		}
		for attr, score := range foal.Ratings.Gaits {
			scores[attr] = append(scores[attr], score)
		}
	}

	var cohort []telemetry.CohortStats
	for attr, vals := range scores {
		s := telemetry.ComputeCohortStats(string(attr), vals)
		cohort = append(cohort, s)
		slog.Info("cohort", "stats", s)
	}

	if err := om.WriteFoals(records); err != nil {
		slog.Error("failed to write foal records", "error", err)
	}
	if err := om.WriteDiscoveries(discoveries); err != nil {
		slog.Error("failed to write discovery records", "error", err)
	}
	if err := om.WriteCohort(cohort); err != nil {
		slog.Error("failed to write cohort stats", "error", err)
	}

	total, err := st.CountAnimals(ctx)
	if err != nil {
		slog.Error("failed to count animals", "error", err)
	}
	slog.Info("simulation complete",
		"foals_bred", len(records),
		"discovery_events", len(discoveries),
		"animals_stored", total,
	)
}

// seedFounders materializes store-bought animals and persists them.
func seedFounders(ctx context.Context, rng *rand.Rand, st *store.Store, breed *config.BreedConfig, tun config.TuningConfig, n int) []store.Animal {
	herd := make([]store.Animal, 0, n)
	disciplines := []string{"racing", "dressage", "trail", ""}

	for i := 0; i < n; i++ {
		genotype := genetics.StoreGenotype(rng, breed)
		a := store.Animal{
			ID:          uuid.NewString(),
			Name:        fmt.Sprintf("Founder %d", i+1),
			Breed:       breed.Name,
			AgeDays:     tun.EpigeneticCutoffDays + rng.Intn(2000),
			Discipline:  disciplines[rng.Intn(len(disciplines))],
			Genotype:    genotype,
			Phenotype:   genetics.ResolvePhenotype(genotype, breed),
			Ratings:     genetics.StoreRatings(rng, breed, tun),
			Temperament: genetics.StoreTemperament(rng, breed, tun),
			Traits:      traits.NewSet(),
		}
		if err := st.SaveAnimal(ctx, a); err != nil {
			slog.Error("failed to persist founder", "id", a.ID, "error", err)
			continue
		}
		herd = append(herd, a)
	}
	return herd
}

// breedOne runs the full creation flow for one pairing and persists the foal.
func breedOne(ctx context.Context, rng *rand.Rand, st *store.Store, sire, dam store.Animal, breed *config.BreedConfig, tun config.TuningConfig) (*store.Animal, error) {
	stress := rng.Intn(101)
	feed := rng.Intn(101)
	birth := traits.BirthConditions{MareStress: &stress, FeedQuality: &feed}

	foal, err := genetics.BreedFoal(rng,
		genetics.Parent{ID: sire.ID, Genotype: sire.Genotype, Ratings: &sire.Ratings, Temperament: sire.Temperament},
		genetics.Parent{ID: dam.ID, Genotype: dam.Genotype, Ratings: &dam.Ratings, Temperament: dam.Temperament},
		breed, tun, birth, st.AncestryLookup(ctx))
	if err != nil {
		return nil, err
	}

	rec := store.Animal{
		ID:          uuid.NewString(),
		Name:        fmt.Sprintf("Foal of %s", sire.Name),
		Breed:       breed.Name,
		SireID:      foal.SireID,
		DamID:       foal.DamID,
		Genotype:    foal.Genotype,
		Phenotype:   foal.Phenotype,
		Ratings:     foal.Ratings,
		Temperament: foal.Temperament,
		Traits:      foal.Traits,
		Counters:    traits.Counters{},
	}
	if err := st.SaveAnimal(ctx, rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// raise simulates the development window for one foal: daily caregiving
// influence plus weekly discovery checks, persisting state and audit events
// as it goes.
func raise(ctx context.Context, rng *rand.Rand, st *store.Store, foal *store.Animal, tun config.TuningConfig, days int) []telemetry.DiscoveryEvent {
	tasks := []traits.Task{
		traits.TaskGrooming, traits.TaskGroundwork, traits.TaskDesensitization,
		traits.TaskTurnout, traits.TaskHandFeeding, traits.TaskLeadTraining,
	}
	enrichment := map[string]int{}
	bond, stress := 10, 50
	var events []telemetry.DiscoveryEvent

	for day := 1; day <= days; day++ {
		task := tasks[rng.Intn(len(tasks))]
		result := traits.ApplyTask(day, task, foal.Counters, foal.Traits, tun)
		foal.Counters, foal.Traits = result.Counters, result.Set

		enrichment[string(task)]++
		if bond < 100 {
			bond++
		}
		stress += rng.Intn(5) - 2
		if stress < 0 {
			stress = 0
		}
		if stress > 100 {
			stress = 100
		}

		// Weekly discovery check, plus a final pass on the last day.
		if day%7 != 0 && day != days {
			continue
		}
		state := traits.DevelopmentState{
			BondScore:  bond,
			Stress:     stress,
			Enrichment: enrichment,
			Day:        day,
		}
		set, revealed := traits.Discover(state, foal.Traits, tun)
		if len(revealed) == 0 {
			continue
		}
		foal.Traits = set
		dayEvents := telemetry.NewDiscoveryEvents(foal.ID, day, revealed)
		if err := st.SaveDiscoveryEvents(ctx, dayEvents); err != nil {
			slog.Error("failed to persist discovery events", "id", foal.ID, "error", err)
		}
		events = append(events, dayEvents...)
	}

	foal.AgeDays = days
	if err := st.SaveAnimal(ctx, *foal); err != nil {
		slog.Error("failed to persist raised foal", "id", foal.ID, "error", err)
	}
	return events
}
