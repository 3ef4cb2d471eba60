// Package mapview assembles everything a city map needs in one pass: ward
// boundary overlays, the ward name mapping, and status-colored issue
// markers.
package mapview

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/xyz-asif/civiclens/pkg/client"
	"github.com/xyz-asif/civiclens/pkg/geo"
)

// MarkerLimit caps how many issues are pinned on the map at once.
const MarkerLimit = 100

// API is the slice of the client the map needs.
type API interface {
	Divisions(ctx context.Context) (json.RawMessage, error)
	WardZones(ctx context.Context) (map[string]string, error)
	ListIssues(ctx context.Context, p client.ListParams) ([]client.Issue, error)
}

// Data is one consistent snapshot of map inputs.
type Data struct {
	Divisions geo.FeatureCollection
	Resolver  *geo.Resolver
	Issues    []client.Issue
}

// Style is a minimal polygon style for a ward overlay.
type Style struct {
	Color       string  `json:"color"`
	Weight      int     `json:"weight"`
	FillColor   string  `json:"fillColor"`
	FillOpacity float64 `json:"fillOpacity"`
}

// Overlay is one ward polygon ready for rendering.
type Overlay struct {
	WardID    string
	Name      string
	Slug      string
	Popup     string
	Geometry  json.RawMessage
	Default   Style
	Highlight Style
}

// Marker is one issue pin.
type Marker struct {
	IssueID string
	Lat     float64
	Lng     float64
	Color   string
	Popup   string
}

// Load fetches boundaries, ward names, and recent issues concurrently. Any
// single failure fails the whole load; a map with partial data is worse
// than an error the caller can retry.
func Load(ctx context.Context, api API) (*Data, error) {
	var (
		rawDivisions json.RawMessage
		zones        map[string]string
		issues       []client.Issue
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawDivisions, err = api.Divisions(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		zones, err = api.WardZones(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		issues, err = api.ListIssues(gctx, client.ListParams{Limit: MarkerLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var divisions geo.FeatureCollection
	if err := json.Unmarshal(rawDivisions, &divisions); err != nil {
		return nil, fmt.Errorf("decode divisions: %w", err)
	}

	return &Data{
		Divisions: divisions,
		Resolver:  geo.NewResolver(zones),
		Issues:    issues,
	}, nil
}

// Overlays builds one polygon per ward boundary feature.
func (d *Data) Overlays() []Overlay {
	out := make([]Overlay, 0, len(d.Divisions.Features))
	for _, feature := range d.Divisions.Features {
		id := feature.Properties.Name
		name := d.Resolver.Name(id)
		out = append(out, Overlay{
			WardID:   id,
			Name:     name,
			Slug:     geo.Slug(name),
			Popup:    name,
			Geometry: feature.Geometry,
			Default: Style{
				Color:       "#2563eb",
				Weight:      1,
				FillColor:   "transparent",
				FillOpacity: 0,
			},
			Highlight: Style{
				Color:       "#2563eb",
				Weight:      2,
				FillColor:   "#2563eb",
				FillOpacity: 0.2,
			},
		})
	}
	return out
}

// Markers builds a pin per issue that carries both coordinates. Issues
// missing either one are skipped rather than pinned at a default location.
func (d *Data) Markers() []Marker {
	out := make([]Marker, 0, len(d.Issues))
	for _, issue := range d.Issues {
		if issue.Lat == nil || issue.Lng == nil {
			continue
		}
		out = append(out, Marker{
			IssueID: issue.ID,
			Lat:     *issue.Lat,
			Lng:     *issue.Lng,
			Color:   StatusColor(issue.Status),
			Popup:   fmt.Sprintf("%s (%s, %s)", issue.Title, issue.Status, issue.Priority),
		})
	}
	return out
}

// StatusColor maps an issue status to its marker color. Unknown statuses
// render like open ones.
func StatusColor(status string) string {
	switch status {
	case "assigned":
		return "blue"
	case "in_progress":
		return "yellow"
	case "resolved":
		return "green"
	default:
		return "red"
	}
}
