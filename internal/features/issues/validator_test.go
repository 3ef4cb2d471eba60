package issues

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validRequest() CreateIssueRequest {
	lat := 13.0827
	lng := 80.2707
	return CreateIssueRequest{
		Title:       "Overflowing Garbage Bin",
		Description: "Garbage bin at 4th street is overflowing for 2 days.",
		Category:    "garbage",
		Lat:         &lat,
		Lng:         &lng,
	}
}

func TestValidateCreateIssue_Valid(t *testing.T) {
	req := validRequest()
	require.Empty(t, ValidateCreateIssue(&req))

	// Coordinates and photo are optional.
	req = validRequest()
	req.Lat = nil
	req.Lng = nil
	require.Empty(t, ValidateCreateIssue(&req))

	req = validRequest()
	req.PhotoURL = "https://example.com/photo.jpg"
	require.Empty(t, ValidateCreateIssue(&req))
}

func TestValidateCreateIssue_SingleBoundViolations(t *testing.T) {
	longStr := func(n int) string {
		b := make([]byte, n)
		for i := range b {
			b[i] = 'x'
		}
		return string(b)
	}

	tests := []struct {
		name      string
		mutate    func(*CreateIssueRequest)
		wantField string
	}{
		{"title too short", func(r *CreateIssueRequest) { r.Title = "ab" }, "title"},
		{"title too long", func(r *CreateIssueRequest) { r.Title = longStr(101) }, "title"},
		{"title missing", func(r *CreateIssueRequest) { r.Title = "" }, "title"},
		{"description too short", func(r *CreateIssueRequest) { r.Description = "abcd" }, "description"},
		{"description too long", func(r *CreateIssueRequest) { r.Description = longStr(1001) }, "description"},
		{"category too short", func(r *CreateIssueRequest) { r.Category = "x" }, "category"},
		{"category too long", func(r *CreateIssueRequest) { r.Category = longStr(51) }, "category"},
		{"lat above range", func(r *CreateIssueRequest) { v := 91.0; r.Lat = &v }, "lat"},
		{"lat below range", func(r *CreateIssueRequest) { v := -90.5; r.Lat = &v }, "lat"},
		{"lng above range", func(r *CreateIssueRequest) { v := 180.5; r.Lng = &v }, "lng"},
		{"lng below range", func(r *CreateIssueRequest) { v := -181.0; r.Lng = &v }, "lng"},
		{"malformed photo url", func(r *CreateIssueRequest) { r.PhotoURL = "not a url" }, "photoUrl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			violations := ValidateCreateIssue(&req)
			require.Len(t, violations, 1)
			require.Equal(t, tt.wantField, violations[0].Field)
			require.NotEmpty(t, violations[0].Message)
		})
	}
}

func TestValidateCreateIssue_MultipleViolations(t *testing.T) {
	req := validRequest()
	req.Title = "ab"
	lat := 95.0
	req.Lat = &lat

	violations := ValidateCreateIssue(&req)
	require.Len(t, violations, 2)

	fields := []string{violations[0].Field, violations[1].Field}
	require.Contains(t, fields, "title")
	require.Contains(t, fields, "lat")
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{"open", "assigned", "in_progress", "resolved", "closed"} {
		require.True(t, ValidStatus(s), s)
	}
	require.False(t, ValidStatus("all"))
	require.False(t, ValidStatus("pending"))
}
