package geo

import (
	"encoding/json"
	"fmt"
	"os"
)

// Repository holds the ward boundary collection and zone mapping, loaded once
// at startup and served read-only.
type Repository struct {
	divisions *FeatureCollection
	zones     WardZones
	resolver  *Resolver
}

// Load reads the ward zone mapping and division boundaries from JSON files.
func Load(zonesPath, divisionsPath string) (*Repository, error) {
	zonesData, err := os.ReadFile(zonesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ward zones: %w", err)
	}

	var zones WardZones
	if err := json.Unmarshal(zonesData, &zones); err != nil {
		return nil, fmt.Errorf("failed to parse ward zones: %w", err)
	}

	divisionsData, err := os.ReadFile(divisionsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read divisions: %w", err)
	}

	var divisions FeatureCollection
	if err := json.Unmarshal(divisionsData, &divisions); err != nil {
		return nil, fmt.Errorf("failed to parse divisions: %w", err)
	}

	return &Repository{
		divisions: &divisions,
		zones:     zones,
		resolver:  NewResolver(zones),
	}, nil
}

func (r *Repository) Divisions() *FeatureCollection {
	return r.divisions
}

func (r *Repository) Zones() WardZones {
	return r.zones
}

func (r *Repository) Resolver() *Resolver {
	return r.resolver
}

// SlugKnown reports whether a ward slug corresponds to any mapped ward name.
func (r *Repository) SlugKnown(slug string) bool {
	for _, name := range r.zones {
		if Slug(name) == slug {
			return true
		}
	}
	return false
}
