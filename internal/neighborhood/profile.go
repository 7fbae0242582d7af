// Package neighborhood holds the static per-neighborhood economic reference
// table and the strategies that map a coordinate to a neighborhood name.
package neighborhood

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/localscope/localscope-cli/internal/textnorm"
)

// DefaultKey is the profile used when a neighborhood name cannot be resolved.
const DefaultKey = "_default"

// SocioeconomicTier is the predominant socioeconomic level of a neighborhood.
type SocioeconomicTier string

// Socioeconomic tiers, lowest first.
const (
	SocioLow        SocioeconomicTier = "low"
	SocioMedium     SocioeconomicTier = "medium"
	SocioMediumHigh SocioeconomicTier = "medium_high"
	SocioHigh       SocioeconomicTier = "high"
)

// Valid reports whether s is a known tier.
func (s SocioeconomicTier) Valid() bool {
	switch s {
	case SocioLow, SocioMedium, SocioMediumHigh, SocioHigh:
		return true
	}
	return false
}

// Label returns the tier with underscores replaced by spaces ("medium high").
func (s SocioeconomicTier) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// DensityTier is the estimated pedestrian/commercial density.
type DensityTier string

// Density tiers.
const (
	DensityLow    DensityTier = "low"
	DensityMedium DensityTier = "medium"
	DensityHigh   DensityTier = "high"
)

// Valid reports whether d is a known tier.
func (d DensityTier) Valid() bool {
	switch d {
	case DensityLow, DensityMedium, DensityHigh:
		return true
	}
	return false
}

// PriceCategory is the curated rent category. It is authored data and is
// never derived from RentPerArea.
type PriceCategory string

// Price categories.
const (
	PriceEconomic PriceCategory = "economic"
	PriceMedium   PriceCategory = "medium"
	PricePremium  PriceCategory = "premium"
)

// Valid reports whether p is a known category.
func (p PriceCategory) Valid() bool {
	switch p {
	case PriceEconomic, PriceMedium, PricePremium:
		return true
	}
	return false
}

// Profile is the economic profile of one neighborhood.
type Profile struct {
	RentPerArea   float64           `yaml:"rent_per_area" json:"rent_per_area"`
	Socioeconomic SocioeconomicTier `yaml:"socioeconomic_tier" json:"socioeconomic_tier"`
	Density       DensityTier       `yaml:"density_tier" json:"density_tier"`
	PriceCategory PriceCategory     `yaml:"price_category" json:"price_category"`
}

// Validate checks that every field holds a known value.
func (p Profile) Validate() error {
	var errs []string
	if p.RentPerArea <= 0 {
		errs = append(errs, "rent_per_area must be > 0")
	}
	if !p.Socioeconomic.Valid() {
		errs = append(errs, "unknown socioeconomic_tier "+string(p.Socioeconomic))
	}
	if !p.Density.Valid() {
		errs = append(errs, "unknown density_tier "+string(p.Density))
	}
	if !p.PriceCategory.Valid() {
		errs = append(errs, "unknown price_category "+string(p.PriceCategory))
	}
	if len(errs) > 0 {
		return eris.New(strings.Join(errs, "; "))
	}
	return nil
}

// Table is an immutable mapping from neighborhood name to Profile. Every
// lookup resolves: unknown names fall back to the DefaultKey entry.
type Table struct {
	city     string
	profiles map[string]Profile
	folded   map[string]string // folded name -> canonical key
}

// NewTable validates profiles and builds a Table. The map is copied, so
// later changes by the caller do not leak into the table.
func NewTable(city string, profiles map[string]Profile) (*Table, error) {
	if _, ok := profiles[DefaultKey]; !ok {
		return nil, eris.Errorf("neighborhood: table %q has no %s entry", city, DefaultKey)
	}

	t := &Table{
		city:     city,
		profiles: make(map[string]Profile, len(profiles)),
		folded:   make(map[string]string, len(profiles)),
	}
	for name, p := range profiles {
		if err := p.Validate(); err != nil {
			return nil, eris.Wrapf(err, "neighborhood: profile %q", name)
		}
		t.profiles[name] = p

		key := textnorm.Fold(name)
		if prev, dup := t.folded[key]; dup {
			return nil, eris.Errorf("neighborhood: %q and %q collide after normalization", prev, name)
		}
		t.folded[key] = name
	}
	return t, nil
}

// City returns the name of the city the table describes.
func (t *Table) City() string { return t.city }

// Len returns the number of named neighborhoods, excluding the default entry.
func (t *Table) Len() int { return len(t.profiles) - 1 }

// Resolve returns the canonical key for name. Exact matches win, then a
// case- and accent-insensitive match, then DefaultKey.
func (t *Table) Resolve(name string) string {
	if _, ok := t.profiles[name]; ok {
		return name
	}
	if key, ok := t.folded[textnorm.Fold(name)]; ok {
		return key
	}
	return DefaultKey
}

// Lookup returns the profile for name and whether name was found. When it
// was not, the default profile is returned.
func (t *Table) Lookup(name string) (Profile, bool) {
	key := t.Resolve(name)
	return t.profiles[key], key != DefaultKey || name == DefaultKey
}

// Names returns the named neighborhoods in sorted order, without DefaultKey.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.profiles))
	for name := range t.profiles {
		if name == DefaultKey {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profiles returns a copy of every entry, including DefaultKey.
func (t *Table) Profiles() map[string]Profile {
	out := make(map[string]Profile, len(t.profiles))
	for k, v := range t.profiles {
		out[k] = v
	}
	return out
}
