package main

import (
	"fmt"

	"github.com/hoofbeat/lineage/config"
	"github.com/hoofbeat/lineage/genetics"
)

// ParamSpec describes one tunable parameter: an attribute's std_dev.
type ParamSpec struct {
	Name string
	Attr genetics.Attribute
	Gait bool
	Min  float64
	Max  float64
}

// ParamVector maps a breed's per-attribute std_dev values to a normalized
// optimization vector and back.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector builds the parameter set for one breed: every conformation
// and gait attribute the breed actually profiles.
func NewParamVector(breed *config.BreedConfig) *ParamVector {
	pv := &ParamVector{}
	for _, attr := range genetics.ConformationAttributes {
		if _, ok := breed.Conformation[string(attr)]; ok {
			pv.Specs = append(pv.Specs, ParamSpec{
				Name: "conformation." + string(attr), Attr: attr, Min: 0.5, Max: 30,
			})
		}
	}
	gaits := append([]genetics.Attribute{}, genetics.GaitAttributes...)
	if breed.Gaited {
		gaits = append(gaits, genetics.Gaiting)
	}
	for _, attr := range gaits {
		if _, ok := breed.Gaits[string(attr)]; ok {
			pv.Specs = append(pv.Specs, ParamSpec{
				Name: "gaits." + string(attr), Attr: attr, Gait: true, Min: 0.5, Max: 30,
			})
		}
	}
	return pv
}

// Dim returns the vector dimension.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector reads the breed's current std_dev values.
func (pv *ParamVector) DefaultVector(breed *config.BreedConfig) []float64 {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		group := breed.Conformation
		if spec.Gait {
			group = breed.Gaits
		}
		out[i] = group[string(spec.Attr)].StdDev
	}
	return out
}

// Normalize maps raw values into [0,1] per spec bounds.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, spec := range pv.Specs {
		out[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return out
}

// Denormalize maps [0,1] values back to raw parameter space.
func (pv *ParamVector) Denormalize(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, spec := range pv.Specs {
		out[i] = spec.Min + x[i]*(spec.Max-spec.Min)
	}
	return out
}

// Clamp bounds raw values to each spec's range.
func (pv *ParamVector) Clamp(raw []float64) []float64 {
	out := make([]float64, len(raw))
	for i, spec := range pv.Specs {
		v := raw[i]
		if v < spec.Min {
			v = spec.Min
		}
		if v > spec.Max {
			v = spec.Max
		}
		out[i] = v
	}
	return out
}

// ApplyToBreed writes raw std_dev values into a breed config copy.
func (pv *ParamVector) ApplyToBreed(breed *config.BreedConfig, raw []float64) error {
	if len(raw) != len(pv.Specs) {
		return fmt.Errorf("parameter count mismatch: %d != %d", len(raw), len(pv.Specs))
	}
	for i, spec := range pv.Specs {
		group := breed.Conformation
		if spec.Gait {
			group = breed.Gaits
		}
		profile := group[string(spec.Attr)]
		profile.StdDev = raw[i]
		group[string(spec.Attr)] = profile
	}
	return nil
}
