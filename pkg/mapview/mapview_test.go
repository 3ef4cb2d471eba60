package mapview

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xyz-asif/civiclens/pkg/client"
)

type fakeAPI struct {
	divisions    json.RawMessage
	zones        map[string]string
	issues       []client.Issue
	divisionsErr error
	lastList     client.ListParams
}

func (f *fakeAPI) Divisions(ctx context.Context) (json.RawMessage, error) {
	return f.divisions, f.divisionsErr
}

func (f *fakeAPI) WardZones(ctx context.Context) (map[string]string, error) {
	return f.zones, nil
}

func (f *fakeAPI) ListIssues(ctx context.Context, p client.ListParams) ([]client.Issue, error) {
	f.lastList = p
	return f.issues, nil
}

func ptr(v float64) *float64 { return &v }

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		divisions: json.RawMessage(`{
			"type": "FeatureCollection",
			"features": [
				{"type":"Feature","properties":{"Name":"ward-1"},"geometry":{"type":"Polygon","coordinates":[]}},
				{"type":"Feature","properties":{"Name":"ward-9"},"geometry":{"type":"Polygon","coordinates":[]}}
			]
		}`),
		zones: map[string]string{"ward-1": "Shivaji Nagar"},
		issues: []client.Issue{
			{ID: "a", Title: "Pothole", Status: "open", Priority: "high", Lat: ptr(18.52), Lng: ptr(73.85)},
			{ID: "b", Title: "Streetlight out", Status: "resolved", Priority: "low", Lat: ptr(18.53), Lng: ptr(73.86)},
			{ID: "c", Title: "No location", Status: "open", Priority: "medium"},
			{ID: "d", Title: "Half location", Status: "open", Priority: "medium", Lat: ptr(18.5)},
		},
	}
}

func TestLoadFetchesAllSources(t *testing.T) {
	api := newFakeAPI()

	data, err := Load(context.Background(), api)
	require.NoError(t, err)

	assert.Len(t, data.Divisions.Features, 2)
	assert.Equal(t, "Shivaji Nagar", data.Resolver.Name("ward-1"))
	assert.Len(t, data.Issues, 4)
	assert.Equal(t, MarkerLimit, api.lastList.Limit)
}

func TestLoadFailsWhenAnySourceFails(t *testing.T) {
	api := newFakeAPI()
	api.divisionsErr = errors.New("boundaries unavailable")

	_, err := Load(context.Background(), api)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boundaries unavailable")
}

func TestOverlaysResolveNames(t *testing.T) {
	api := newFakeAPI()
	data, err := Load(context.Background(), api)
	require.NoError(t, err)

	overlays := data.Overlays()
	require.Len(t, overlays, 2)

	assert.Equal(t, "ward-1", overlays[0].WardID)
	assert.Equal(t, "Shivaji Nagar", overlays[0].Name)
	assert.Equal(t, "shivaji-nagar", overlays[0].Slug)
	assert.Equal(t, "Shivaji Nagar", overlays[0].Popup)
	assert.Equal(t, "transparent", overlays[0].Default.FillColor)
	assert.Greater(t, overlays[0].Highlight.FillOpacity, overlays[0].Default.FillOpacity)

	// Unmapped ward ids fall back rather than disappearing from the map.
	assert.Equal(t, "Unknown Ward", overlays[1].Name)
	assert.Equal(t, "unknown-ward", overlays[1].Slug)
}

func TestMarkersSkipIssuesWithoutCoordinates(t *testing.T) {
	api := newFakeAPI()
	data, err := Load(context.Background(), api)
	require.NoError(t, err)

	markers := data.Markers()
	require.Len(t, markers, 2, "issues missing lat or lng are skipped")

	assert.Equal(t, "a", markers[0].IssueID)
	assert.Equal(t, "red", markers[0].Color)
	assert.Contains(t, markers[0].Popup, "Pothole")
	assert.Contains(t, markers[0].Popup, "high")

	assert.Equal(t, "b", markers[1].IssueID)
	assert.Equal(t, "green", markers[1].Color)
}

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"open", "red"},
		{"assigned", "blue"},
		{"in_progress", "yellow"},
		{"resolved", "green"},
		{"closed", "red"},
		{"", "red"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusColor(tt.status), "status %q", tt.status)
	}
}
