package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/killallgit/dialogue-qc/internal/analysis"
	"github.com/pelletier/go-toml/v2"
)

// profileOverrides holds the optional fields of one [profiles.<name>] table
type profileOverrides struct {
	MaxSpectralFlatness *float64 `toml:"max_spectral_flatness"`
	MaxZeroCrossingRate *float64 `toml:"max_zero_crossing_rate"`
	MinRMSEnergy        *float64 `toml:"min_rms_energy"`
	MaxDurationRatio    *float64 `toml:"max_duration_ratio"`
	MinDurationRatio    *float64 `toml:"min_duration_ratio"`
	ReviewDurationRatio *float64 `toml:"review_duration_ratio"`
}

type profilesFile struct {
	Profiles map[string]profileOverrides `toml:"profiles"`
}

// Profiles maps a voice or engine name to its classifier thresholds.
// Lookups for unknown names return the base thresholds.
type Profiles struct {
	base     analysis.Thresholds
	profiles map[string]analysis.Thresholds
}

// NewProfiles returns a set with no named profiles
func NewProfiles(base analysis.Thresholds) *Profiles {
	return &Profiles{base: base, profiles: map[string]analysis.Thresholds{}}
}

// LoadProfiles reads a TOML profiles document from path, overlaying each
// profile onto base. A missing file yields an empty set.
func LoadProfiles(path string, base analysis.Thresholds) (*Profiles, error) {
	if path == "" {
		return NewProfiles(base), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewProfiles(base), nil
		}
		return nil, fmt.Errorf("failed to read profiles file %s: %w", path, err)
	}
	return ParseProfiles(data, base)
}

// ParseProfiles parses a TOML profiles document
func ParseProfiles(data []byte, base analysis.Thresholds) (*Profiles, error) {
	var doc profilesFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	p := NewProfiles(base)
	for name, o := range doc.Profiles {
		t := o.apply(base)
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		p.profiles[name] = t
	}
	return p, nil
}

// Lookup returns the thresholds for name and whether a profile matched
func (p *Profiles) Lookup(name string) (analysis.Thresholds, bool) {
	if t, ok := p.profiles[name]; ok {
		return t, true
	}
	return p.base, false
}

// Thresholds returns the thresholds for name, falling back to the base set
func (p *Profiles) Thresholds(name string) analysis.Thresholds {
	t, _ := p.Lookup(name)
	return t
}

// Names lists the configured profile names in sorted order
func (p *Profiles) Names() []string {
	names := make([]string, 0, len(p.profiles))
	for name := range p.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (o profileOverrides) apply(base analysis.Thresholds) analysis.Thresholds {
	t := base
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&t.MaxSpectralFlatness, o.MaxSpectralFlatness)
	set(&t.MaxZeroCrossingRate, o.MaxZeroCrossingRate)
	set(&t.MinRMSEnergy, o.MinRMSEnergy)
	set(&t.MaxDurationRatio, o.MaxDurationRatio)
	set(&t.MinDurationRatio, o.MinDurationRatio)
	set(&t.ReviewDurationRatio, o.ReviewDurationRatio)
	return t
}
