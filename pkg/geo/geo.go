// Package geo holds the ward geography domain: GeoJSON boundary documents,
// the ward zone mapping, and name resolution with a fallback for unmapped
// identifiers.
package geo

import (
	"encoding/json"
	"regexp"
	"strings"
)

// FeatureCollection is the GeoJSON document served at /geo/divisions.
// Geometry is passed through untouched; only feature properties are inspected.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

type Feature struct {
	Type       string          `json:"type"`
	Properties Properties      `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// Properties carries the ward identifier under "Name", matching the source
// boundary data.
type Properties struct {
	Name string `json:"Name"`
}

// WardZones maps ward identifiers to display names. Static reference data,
// read-only at runtime.
type WardZones map[string]string

// UnknownWard is returned for any identifier the zone mapping cannot resolve.
const UnknownWard = "Unknown Ward"

var whitespaceRun = regexp.MustCompile(`\s+`)

// Resolver maps raw ward identifiers to display names. A nil or empty mapping
// resolves everything to UnknownWard rather than failing.
type Resolver struct {
	zones WardZones
}

func NewResolver(zones WardZones) *Resolver {
	return &Resolver{zones: zones}
}

// Name returns the display name for a ward identifier, tolerating surrounding
// whitespace. Unknown identifiers resolve to UnknownWard.
func (r *Resolver) Name(id string) string {
	if r == nil || len(r.zones) == 0 {
		return UnknownWard
	}

	name, ok := r.zones[strings.TrimSpace(id)]
	if !ok || name == "" {
		return UnknownWard
	}
	return name
}

// Slug derives a URL-safe slug from a display name: lowercased, with runs of
// whitespace collapsed to single hyphens.
func Slug(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}
