package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Tuning.DefaultScore != 50 {
		t.Errorf("DefaultScore = %d, want 50", cfg.Tuning.DefaultScore)
	}
	if cfg.Tuning.DefaultTemperament != "Calm" {
		t.Errorf("DefaultTemperament = %q, want Calm", cfg.Tuning.DefaultTemperament)
	}
	if cfg.Tuning.PermanenceThreshold <= 0 {
		t.Errorf("PermanenceThreshold = %d, want > 0", cfg.Tuning.PermanenceThreshold)
	}
	if len(cfg.Breeds) < 2 {
		t.Fatalf("expected at least 2 default breeds, got %d", len(cfg.Breeds))
	}
}

func TestBreedLookup(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	tb := cfg.Breed("Thoroughbred")
	if tb == nil {
		t.Fatal("Breed(Thoroughbred) = nil")
	}
	if tb.Gaited {
		t.Error("Thoroughbred should not be gaited")
	}

	rm := cfg.Breed("Rocky Mountain")
	if rm == nil {
		t.Fatal("Breed(Rocky Mountain) = nil")
	}
	if !rm.Gaited {
		t.Error("Rocky Mountain should be gaited")
	}
	if _, ok := rm.Gaits["gaiting"]; !ok {
		t.Error("gaited breed missing gaiting profile")
	}

	if cfg.Breed("Unicorn") != nil {
		t.Error("Breed(Unicorn) should be nil")
	}
}

func TestLoadUserOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	override := []byte("tuning:\n  permanence_threshold: 9\n")
	if err := os.WriteFile(path, override, 0644); err != nil {
		t.Fatalf("writing override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", path, err)
	}

	if cfg.Tuning.PermanenceThreshold != 9 {
		t.Errorf("PermanenceThreshold = %d, want 9 (override)", cfg.Tuning.PermanenceThreshold)
	}
	// Fields absent from the override keep their defaults
	if cfg.Tuning.DefaultScore != 50 {
		t.Errorf("DefaultScore = %d, want 50 (default)", cfg.Tuning.DefaultScore)
	}
}

func TestBreedLociHaveDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	for _, b := range cfg.Breeds {
		for name, locus := range b.Loci {
			if len(locus.Alleles) == 0 {
				t.Errorf("breed %s locus %s has no alleles", b.Name, name)
			}
			if locus.Default == "" {
				t.Errorf("breed %s locus %s has no default pair", b.Name, name)
			}
		}
	}
}
