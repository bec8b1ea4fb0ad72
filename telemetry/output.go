package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/hoofbeat/lineage/config"
)

// OutputManager handles structured simulation output with CSV logging.
type OutputManager struct {
	dir           string
	foalsFile     *os.File
	discoveryFile *os.File
	cohortFile    *os.File

	// Track if headers have been written
	foalsHeaderWritten     bool
	discoveryHeaderWritten bool
	cohortHeaderWritten    bool
}

// NewOutputManager creates a new output manager and initializes the output
// directory. Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "foals.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating foals.csv: %w", err)
	}
	om.foalsFile = f

	f, err = os.Create(filepath.Join(dir, "discoveries.csv"))
	if err != nil {
		om.foalsFile.Close()
		return nil, fmt.Errorf("creating discoveries.csv: %w", err)
	}
	om.discoveryFile = f

	f, err = os.Create(filepath.Join(dir, "cohort.csv"))
	if err != nil {
		om.foalsFile.Close()
		om.discoveryFile.Close()
		return nil, fmt.Errorf("creating cohort.csv: %w", err)
	}
	om.cohortFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML next to the CSVs so a
// run's outputs carry the exact tuning that produced them.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteFoals appends foal records to foals.csv.
func (om *OutputManager) WriteFoals(records []FoalRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	var err error
	if !om.foalsHeaderWritten {
		err = gocsv.MarshalFile(&records, om.foalsFile)
		om.foalsHeaderWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(&records, om.foalsFile)
	}
	if err != nil {
		return fmt.Errorf("writing foals.csv: %w", err)
	}
	return nil
}

// WriteDiscoveries appends discovery audit records to discoveries.csv.
func (om *OutputManager) WriteDiscoveries(events []DiscoveryEvent) error {
	if om == nil || len(events) == 0 {
		return nil
	}
	var err error
	if !om.discoveryHeaderWritten {
		err = gocsv.MarshalFile(&events, om.discoveryFile)
		om.discoveryHeaderWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(&events, om.discoveryFile)
	}
	if err != nil {
		return fmt.Errorf("writing discoveries.csv: %w", err)
	}
	return nil
}

// WriteCohort writes the per-attribute cohort summary to cohort.csv.
func (om *OutputManager) WriteCohort(stats []CohortStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}
	var err error
	if !om.cohortHeaderWritten {
		err = gocsv.MarshalFile(&stats, om.cohortFile)
		om.cohortHeaderWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(&stats, om.cohortFile)
	}
	if err != nil {
		return fmt.Errorf("writing cohort.csv: %w", err)
	}
	return nil
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, f := range []*os.File{om.foalsFile, om.discoveryFile, om.cohortFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
