// Package region resolves spec.md §9's open question about WBFM
// de-emphasis time constants: "the exposed configuration suggests 75us
// should be selectable per deployment region, but the controller does
// not thread it through automatically." This package loads a small
// table of named regional presets from an embedded YAML document (the
// same gopkg.in/yaml.v3-backed lookup-table idiom
// doismellburning-samoyed/src/deviceid.go uses for its device-alias
// table, minus its cgo/C-transliterated plumbing) so the controller can
// take a region preset at construction and thread the right time constant
// into every WBFM pipeline it builds.
package region

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
	"hz.tools/radio/dsp"
)

//go:embed presets.yaml
var presetsYAML []byte

// Preset is one named region's WBFM de-emphasis time constant and
// default tuner frequency-correction.
type Preset struct {
	// Deemphasis is the WBFM de-emphasis time constant in seconds, e.g.
	// dsp.DeemphasisUS or dsp.DeemphasisWorld.
	Deemphasis float64
	// DefaultPPM is a sane default tuner frequency-correction for this
	// region's typically pre-calibrated receivers.
	DefaultPPM int
}

type rawPreset struct {
	DeemphasisSeconds float64 `yaml:"deemphasis_seconds"`
	DefaultPPM        int     `yaml:"default_ppm"`
}

var presets map[string]Preset

func init() {
	var raw map[string]rawPreset
	if err := yaml.Unmarshal(presetsYAML, &raw); err != nil {
		panic(fmt.Sprintf("region: embedded presets.yaml is invalid: %v", err))
	}
	presets = make(map[string]Preset, len(raw))
	for name, r := range raw {
		presets[name] = Preset{Deemphasis: r.DeemphasisSeconds, DefaultPPM: r.DefaultPPM}
	}
}

// Default is the preset used when a caller doesn't specify a region:
// spec §4.8's documented default of 50us de-emphasis.
var Default = Preset{Deemphasis: dsp.DeemphasisWorld}

// Lookup returns the named region's preset. The second return is false
// if name is not a known region, in which case Default is returned.
func Lookup(name string) (Preset, bool) {
	p, ok := presets[name]
	if !ok {
		return Default, false
	}
	return p, true
}

// Names returns every known region name, for CLI help text and the like.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
