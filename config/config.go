// Package config provides configuration loading and access for the genetics engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Tuning TuningConfig  `yaml:"tuning"`
	Breeds []BreedConfig `yaml:"breeds"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// TuningConfig holds the product-tunable constants used across the engine.
// Fallback values are explicit here so tests can assert degradation behavior
// precisely instead of chasing magic literals.
type TuningConfig struct {
	DefaultScore           int     `yaml:"default_score"`            // Rating used when a profile entry is missing
	DefaultStdDev          float64 `yaml:"default_std_dev"`          // Variance term when a foal's breed lacks one
	DefaultTemperament     string  `yaml:"default_temperament"`      // Label used when breed weights are absent
	ParentTemperamentBonus float64 `yaml:"parent_temperament_bonus"` // Weight added per matching parent label
	FoalTweak              int     `yaml:"foal_tweak"`               // Symmetric integer jitter on foal ratings

	PermanenceThreshold  int `yaml:"permanence_threshold"`   // |counter| at which an influenced trait fixes
	EpigeneticCutoffDays int `yaml:"epigenetic_cutoff_days"` // Age below which fixed traits flag epigenetic
	DevelopmentDays      int `yaml:"development_days"`       // Length of the foal development window

	InbreedingGenerations int     `yaml:"inbreeding_generations"` // Ancestor depth scanned for shared lineage
	LineageSpecialization float64 `yaml:"lineage_specialization"` // Ancestry fraction in one discipline to count as specialized

	HighBondingThreshold int `yaml:"high_bonding_threshold"` // Bond score at which bonding discoveries fire
	LowStressThreshold   int `yaml:"low_stress_threshold"`   // Stress at or below this counts as low
	HighStressThreshold  int `yaml:"high_stress_threshold"`  // Stress at or above this counts as high
	EnrichmentVariety    int `yaml:"enrichment_variety"`     // Distinct enrichment activities for the variety condition

	MareStressDefault  int `yaml:"mare_stress_default"`  // Birth-condition default when unreported
	FeedQualityDefault int `yaml:"feed_quality_default"` // Birth-condition default when unreported
	MareStressHigh     int `yaml:"mare_stress_high"`     // At or above: stressed pregnancy
	PerfectCareStress  int `yaml:"perfect_care_stress"`  // At or below, combined with feed, counts as perfect care
	PerfectCareFeed    int `yaml:"perfect_care_feed"`    // At or above, combined with stress, counts as perfect care
}

// BreedConfig defines one breed's statistical and genetic profile.
type BreedConfig struct {
	Name         string                      `yaml:"name"`
	Gaited       bool                        `yaml:"gaited"`
	Conformation map[string]AttributeProfile `yaml:"conformation"`
	Gaits        map[string]AttributeProfile `yaml:"gaits"`
	Temperaments map[string]float64          `yaml:"temperaments"`
	Loci         map[string]LocusConfig      `yaml:"loci"`
}

// AttributeProfile holds the sampling parameters for one rated attribute.
type AttributeProfile struct {
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"std_dev"`
}

// LocusConfig defines the allele pool for one genetic locus.
type LocusConfig struct {
	// Alleles in dominance order, most dominant first.
	Alleles []string `yaml:"alleles"`
	// Default homozygous pair used when a parent lacks the locus.
	Default string `yaml:"default"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	BreedIndex map[string]int // breed name -> Breeds slice index
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.BreedIndex = make(map[string]int, len(c.Breeds))
	for i, b := range c.Breeds {
		c.Derived.BreedIndex[b.Name] = i
	}
}

// Breed returns the named breed profile, or nil when the breed is unknown.
func (c *Config) Breed(name string) *BreedConfig {
	i, ok := c.Derived.BreedIndex[name]
	if !ok {
		return nil
	}
	return &c.Breeds[i]
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
