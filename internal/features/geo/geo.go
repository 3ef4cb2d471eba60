package geo

import (
	pubgeo "github.com/xyz-asif/civiclens/pkg/geo"
)

// The domain types live in pkg/geo so importers outside the module can name
// them; the feature package forwards them for its own code.
type (
	FeatureCollection = pubgeo.FeatureCollection
	Feature           = pubgeo.Feature
	Properties        = pubgeo.Properties
	WardZones         = pubgeo.WardZones
	Resolver          = pubgeo.Resolver
)

const UnknownWard = pubgeo.UnknownWard

func NewResolver(zones WardZones) *Resolver {
	return pubgeo.NewResolver(zones)
}

func Slug(name string) string {
	return pubgeo.Slug(name)
}
