package genetics

import "github.com/hoofbeat/lineage/config"

// Phenotype is the derived display appearance of an animal. It is always
// recomputable from genotype plus breed profile and carries no authority of
// its own.
type Phenotype struct {
	Color    string   `json:"color"`
	Shade    string   `json:"shade"`
	Markings []string `json:"markings"`
}

// Locus names the phenotype resolver reads. They match the keys used in
// breed locus configuration.
const (
	LocusExtension = "extension"
	LocusAgouti    = "agouti"
	LocusCream     = "cream"
	LocusGray      = "gray"
	LocusTobiano   = "tobiano"
	LocusGait      = "gait"
)

// ResolvePhenotype maps a genotype to its display color, shade class, and
// markings. It is a pure function: all variation is already encoded in the
// genotype, so the same genotype always renders the same phenotype.
func ResolvePhenotype(genotype Genotype, breed *config.BreedConfig) Phenotype {
	base := baseColor(genotype)
	creams := genotype[LocusCream].Count("Cr")

	color := dilute(base, creams)

	// Gray progressively overrides any base color.
	if genotype[LocusGray].Has("G") {
		color = "Gray"
	}

	var markings []string
	if genotype[LocusTobiano].Has("TO") {
		markings = append(markings, "tobiano")
	}

	return Phenotype{
		Color:    color,
		Shade:    shadeClass(genotype),
		Markings: markings,
	}
}

// baseColor resolves the extension/agouti interaction: ee is always chestnut;
// E with agouti restricts black to the points, giving bay.
func baseColor(genotype Genotype) string {
	if !genotype[LocusExtension].Has("E") {
		return "Chestnut"
	}
	if genotype[LocusAgouti].Has("A") {
		return "Bay"
	}
	return "Black"
}

// dilute applies cream dilution to a base color. One copy lightens, two wash
// the coat out to a double dilute.
func dilute(base string, creams int) string {
	if creams == 0 {
		return base
	}
	single := map[string]string{
		"Chestnut": "Palomino",
		"Bay":      "Buckskin",
		"Black":    "Smoky Black",
	}
	double := map[string]string{
		"Chestnut": "Cremello",
		"Bay":      "Perlino",
		"Black":    "Smoky Cream",
	}
	if creams >= 2 {
		if c, ok := double[base]; ok {
			return c
		}
	}
	if c, ok := single[base]; ok {
		return c
	}
	return base
}

// shadeClass derives a stable shade from how many loci are heterozygous. The
// classification is cosmetic but must be deterministic per genotype.
func shadeClass(genotype Genotype) string {
	hetero := 0
	for _, pair := range genotype {
		if pair.A != pair.B {
			hetero++
		}
	}
	switch hetero % 3 {
	case 0:
		return "Dark"
	case 1:
		return "Medium"
	default:
		return "Light"
	}
}

// GaitCapable reports whether the genotype carries the gait-capability
// marker. Used by callers that gate gaiting behavior on genetics rather than
// the breed flag alone.
func GaitCapable(genotype Genotype) bool {
	return genotype[LocusGait].Has("GA")
}
