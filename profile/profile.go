// Package profile loads printer profiles: named presets that bind a
// protocol to its emission options (resolution, speed, density, tear-off,
// copies) so jobs can be addressed by printer instead of by raw flags.
//
// Profiles live in a TOML file:
//
//	[profile.dock-zebra]
//	protocol = "zpl"
//	dpi = 300
//	speed = 6
//	density = 10
//	tear-off = 16
//
//	[profile.backoffice]
//	protocol = "epl"
//	speed = 4
//	density = 8
//	copies = 2
package profile

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/printable/stencil/printer"
)

// Profile is one named printer preset.
type Profile struct {
	Protocol string  `toml:"protocol"`
	DPI      float64 `toml:"dpi"`
	Speed    int     `toml:"speed"`
	Density  int     `toml:"density"`
	TearOff  int     `toml:"tear-off"`
	Copies   int     `toml:"copies"`
}

// Options maps the preset onto the emission options the dispatcher takes.
func (p Profile) Options() printer.Options {
	return printer.Options{
		DPI:        p.DPI,
		PrintSpeed: p.Speed,
		Density:    p.Density,
		TearOff:    p.TearOff,
		Copies:     p.Copies,
	}
}

// File is the decoded shape of a profiles file.
type File struct {
	Profiles map[string]Profile `toml:"profile"`
}

// Load reads and decodes a profiles file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("profile: decode %s: %w", path, err)
	}
	return &f, nil
}

// Get looks up a named profile and validates its protocol key.
func (f *File) Get(name string) (Profile, error) {
	p, ok := f.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("profile: %q not defined (have: %v)", name, f.Names())
	}
	switch printer.Protocol(p.Protocol) {
	case printer.ProtocolZPL, printer.ProtocolEPL, printer.ProtocolSBPL:
		return p, nil
	default:
		return Profile{}, fmt.Errorf("profile: %q: unknown protocol %q", name, p.Protocol)
	}
}

// Names returns the defined profile names, sorted.
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
