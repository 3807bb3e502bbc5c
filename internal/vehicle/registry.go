package vehicle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/cxd309/laptime-engine/internal/laperr"
)

// Registry is an ordered list of uniquely named vehicles.
type Registry struct {
	Vehicles []Vehicle `json:"vehicles" toml:"vehicle"`
}

// NewRegistry validates each vehicle and rejects duplicate names.
func NewRegistry(vehicles ...Vehicle) (Registry, error) {
	seen := make(map[string]bool, len(vehicles))
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return Registry{}, err
		}
		if seen[v.Name] {
			return Registry{}, laperr.Invalid("duplicate vehicle %q", v.Name)
		}
		seen[v.Name] = true
	}
	return Registry{Vehicles: append([]Vehicle(nil), vehicles...)}, nil
}

// Defaults returns the two cars of the reference comparison.
func Defaults() Registry {
	return Registry{Vehicles: []Vehicle{
		{
			Name:        "Mazda RX-8",
			Mass:        1440,
			MaxLateralG: 0.92,
			MaxAccel:    4.0,
			MaxBrake:    9.0,
			TopSpeedKph: 230,
		},
		{
			Name:        "Lightweight Sports Car",
			Mass:        1200,
			MaxLateralG: 1.2,
			MaxAccel:    5.5,
			MaxBrake:    10.5,
			TopSpeedKph: 210,
		},
	}}
}

// Lookup returns the vehicle with the given name.
func (r Registry) Lookup(name string) (Vehicle, bool) {
	for _, v := range r.Vehicles {
		if v.Name == name {
			return v, true
		}
	}
	return Vehicle{}, false
}

// Names lists vehicle names in registry order.
func (r Registry) Names() []string {
	names := make([]string, len(r.Vehicles))
	for i, v := range r.Vehicles {
		names[i] = v.Name
	}
	return names
}

// ParseTOML decodes a registry of [[vehicle]] tables.
func ParseTOML(data []byte) (Registry, error) {
	var r Registry
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Registry{}, fmt.Errorf("parsing vehicle registry: %w", err)
	}
	return NewRegistry(r.Vehicles...)
}

// ParseJSON decodes a registry of the form {"vehicles": [...]}.
func ParseJSON(data []byte) (Registry, error) {
	var r Registry
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return Registry{}, fmt.Errorf("parsing vehicle registry: %w", err)
	}
	return NewRegistry(r.Vehicles...)
}

// LoadRegistry reads a registry file; the format follows the extension
// (.toml or .json).
func LoadRegistry(file string) (Registry, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Registry{}, err
	}
	var r Registry
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".toml":
		r, err = ParseTOML(data)
	case ".json":
		r, err = ParseJSON(data)
	default:
		return Registry{}, fmt.Errorf("vehicle registry %s: unsupported extension %q", file, ext)
	}
	if err != nil {
		return Registry{}, fmt.Errorf("%s: %w", file, err)
	}
	return r, nil
}

// EncodeTOML encodes the registry as [[vehicle]] tables.
func (r Registry) EncodeTOML() ([]byte, error) {
	return toml.Marshal(r)
}
