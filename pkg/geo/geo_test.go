package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolverName(t *testing.T) {
	resolver := NewResolver(WardZones{
		"57":  "Anna Nagar",
		"104": "Mylapore",
	})

	tests := []struct {
		name string
		id   string
		want string
	}{
		{"known id", "57", "Anna Nagar"},
		{"leading and trailing whitespace", "  104  ", "Mylapore"},
		{"unknown id", "999", UnknownWard},
		{"empty id", "", UnknownWard},
		{"whitespace only", "   ", UnknownWard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, resolver.Name(tt.id))
		})
	}
}

func TestResolverName_UnloadedMapping(t *testing.T) {
	// An empty or never-loaded mapping resolves everything to the fallback.
	require.Equal(t, UnknownWard, NewResolver(nil).Name("57"))
	require.Equal(t, UnknownWard, NewResolver(WardZones{}).Name("57"))

	var resolver *Resolver
	require.Equal(t, UnknownWard, resolver.Name("57"))
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "Mylapore", "mylapore"},
		{"two words", "Anna Nagar", "anna-nagar"},
		{"whitespace run", "Anna   Nagar", "anna-nagar"},
		{"surrounding whitespace", "  Anna Nagar ", "anna-nagar"},
		{"fallback name", UnknownWard, "unknown-ward"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Slug(tt.in))
		})
	}
}
