// Package traits implements trait state for animals: the positive, negative
// and hidden partitions, at-birth epigenetic assignment, post-birth
// discovery, gameplay effect resolution, and the caregiving influence
// accumulator.
package traits

// Trait identifies one heritable or acquired trait.
type Trait string

// Category is the visible bucket a trait belongs to once revealed.
type Category int8

const (
	Positive Category = iota
	Negative
)

// String returns the category name.
func (c Category) String() string {
	if c == Negative {
		return "negative"
	}
	return "positive"
}

// Set partitions an animal's traits into three disjoint sets plus the
// epigenetic markers. A trait lives in at most one of positive, negative or
// hidden at a time; moving it between sets removes it from the source set in
// the same operation.
type Set struct {
	Positive   []Trait `json:"positive"`
	Negative   []Trait `json:"negative"`
	Hidden     []Trait `json:"hidden"`
	Epigenetic []Trait `json:"epigenetic"`
}

// NewSet returns an empty trait set.
func NewSet() Set {
	return Set{}
}

// contains reports membership in one slice.
func contains(list []Trait, t Trait) bool {
	for _, x := range list {
		if x == t {
			return true
		}
	}
	return false
}

// remove returns the slice without the trait.
func remove(list []Trait, t Trait) []Trait {
	out := list[:0:0]
	for _, x := range list {
		if x != t {
			out = append(out, x)
		}
	}
	return out
}

// addUnique appends the trait if not already present.
func addUnique(list []Trait, t Trait) []Trait {
	if contains(list, t) {
		return list
	}
	return append(list, t)
}

// Has reports whether the trait is present in any of the three partitions.
func (s Set) Has(t Trait) bool {
	return contains(s.Positive, t) || contains(s.Negative, t) || contains(s.Hidden, t)
}

// Visible reports whether the trait is in the positive or negative set.
func (s Set) Visible(t Trait) bool {
	return contains(s.Positive, t) || contains(s.Negative, t)
}

// IsHidden reports whether the trait is in the hidden set.
func (s Set) IsHidden(t Trait) bool {
	return contains(s.Hidden, t)
}

// IsEpigenetic reports whether the trait carries the epigenetic marker.
func (s Set) IsEpigenetic(t Trait) bool {
	return contains(s.Epigenetic, t)
}

// Add places the trait in the given visible category, removing it from every
// other partition first so the disjointness invariant holds.
func (s Set) Add(t Trait, cat Category, epigenetic bool) Set {
	s.Positive = remove(s.Positive, t)
	s.Negative = remove(s.Negative, t)
	s.Hidden = remove(s.Hidden, t)
	if cat == Negative {
		s.Negative = append(s.Negative, t)
	} else {
		s.Positive = append(s.Positive, t)
	}
	if epigenetic {
		s.Epigenetic = addUnique(s.Epigenetic, t)
	}
	return s
}

// Hide places the trait in the hidden set unless it is already visible.
func (s Set) Hide(t Trait) Set {
	if s.Visible(t) {
		return s
	}
	s.Hidden = addUnique(s.Hidden, t)
	return s
}

// Reveal moves a hidden trait to its catalog category. Traits that are not
// hidden are left alone.
func (s Set) Reveal(t Trait) Set {
	if !contains(s.Hidden, t) {
		return s
	}
	cat, ok := CategoryOf(t)
	if !ok {
		cat = Positive
	}
	return s.Add(t, cat, false)
}

// Merge unions another set into this one without disturbing traits already
// placed: a trait visible here stays where it is even if the other set hides
// it, and duplicates are dropped.
func (s Set) Merge(other Set) Set {
	for _, t := range other.Positive {
		if !s.Has(t) {
			s.Positive = append(s.Positive, t)
		}
	}
	for _, t := range other.Negative {
		if !s.Has(t) {
			s.Negative = append(s.Negative, t)
		}
	}
	for _, t := range other.Hidden {
		if !s.Has(t) {
			s.Hidden = append(s.Hidden, t)
		}
	}
	for _, t := range other.Epigenetic {
		s.Epigenetic = addUnique(s.Epigenetic, t)
	}
	return s
}

// Clone returns a deep copy of the set.
func (s Set) Clone() Set {
	return Set{
		Positive:   append([]Trait(nil), s.Positive...),
		Negative:   append([]Trait(nil), s.Negative...),
		Hidden:     append([]Trait(nil), s.Hidden...),
		Epigenetic: append([]Trait(nil), s.Epigenetic...),
	}
}

// Visible traits of both categories, positives first.
func (s Set) All() []Trait {
	out := make([]Trait, 0, len(s.Positive)+len(s.Negative))
	out = append(out, s.Positive...)
	out = append(out, s.Negative...)
	return out
}
