package tetraquery

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		label string
		want  Name
	}{
		{
			label: "#cube .red .box",
			want:  Name{ID: "cube", Classes: []string{"red", "box"}},
		},
		{
			label: ".a.b",
			want:  Name{Classes: []string{"a", "b"}},
		},
		{
			label: "#first #second",
			want:  Name{ID: "first"},
		},
		{
			label: ".dup .dup",
			want:  Name{Classes: []string{"dup", "dup"}},
		},
		{
			label: "plain name",
			want:  Name{},
		},
		{
			label: "",
			want:  Name{},
		},
	}

	for _, test := range tests {
		t.Run(test.label, func(t *testing.T) {
			require.Equal(t, test.want, ParseName(test.label))
		})
	}
}

func TestValidToken(t *testing.T) {
	for _, token := range []string{"#hero", ".red", ".red.box", "#hero.box", ".box#hero"} {
		require.True(t, ValidToken(token), token)
	}
	for _, token := range []string{"", "hero", "#", ".", "*", "#hero.", "a.red", ".red-box", "#hero .box"} {
		require.False(t, ValidToken(token), token)
	}
}

func TestNameIsEmpty(t *testing.T) {
	// Blender-style duplicate suffixes read as classes.
	require.Equal(t, []string{"001"}, ParseName("Cube.001").Classes)
	require.True(t, ParseName("no tags here").IsEmpty())
	require.False(t, ParseName("#id").IsEmpty())
}
