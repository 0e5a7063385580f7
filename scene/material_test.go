package scene

import (
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestMaterialSet(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		check func(t *testing.T, m *Material)
	}{
		{
			name:  "color name",
			key:   MaterialColor,
			value: "red",
			check: func(t *testing.T, m *Material) {
				require.Equal(t, NewColor(1, 0, 0, 1), m.Color)
			},
		},
		{
			name:  "color hex int",
			key:   MaterialColor,
			value: 0x00ff00,
			check: func(t *testing.T, m *Material) {
				require.Equal(t, NewColor(0, 1, 0, 1), m.Color)
			},
		},
		{
			name:  "opacity from json number",
			key:   MaterialOpacity,
			value: 0.25,
			check: func(t *testing.T, m *Material) {
				require.Equal(t, float32(0.25), m.Opacity)
			},
		},
		{
			name:  "wireframe",
			key:   MaterialWireframe,
			value: true,
			check: func(t *testing.T, m *Material) {
				require.True(t, m.Wireframe)
			},
		},
		{
			name:  "name",
			key:   MaterialName,
			value: "shiny",
			check: func(t *testing.T, m *Material) {
				require.Equal(t, "shiny", m.Name)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			m := NewMaterial("m")
			require.NoError(t, m.Set(test.key, test.value))
			test.check(t, m)

			v, ok := m.Get(test.key)
			require.True(t, ok)
			require.NotNil(t, v)
		})
	}
}

func TestMaterialSetUnknownKey(t *testing.T) {
	m := NewMaterial("m")
	err := m.Set("shininess", 3)
	require.Error(t, err)
	require.Equal(t, ErrTypeUnknownMaterialProperty, errors.Type(err))
	require.False(t, m.Has("shininess"))

	_, ok := m.Get("shininess")
	require.False(t, ok)
}

func TestMaterialSetInvalidValue(t *testing.T) {
	m := NewMaterial("m")
	err := m.Set(MaterialTransparent, "yes")
	require.Error(t, err)
	require.Equal(t, ErrTypeInvalidMaterialValue, errors.Type(err))
	require.False(t, m.Transparent)
}

func TestMaterialClone(t *testing.T) {
	m := NewMaterial("m")
	m.Properties.Set("k", "v")
	clone := m.Clone()
	clone.Properties.Set("k", "w")
	clone.Opacity = 0.5

	require.Equal(t, "v", m.Properties.Get("k"))
	require.Equal(t, float32(1), m.Opacity)
}

func TestMaterialKeys(t *testing.T) {
	keys := MaterialKeys()
	require.Contains(t, keys, MaterialColor)
	require.Contains(t, keys, MaterialEnableLighting)
	require.Len(t, keys, 8)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in       string
		expected uint32
		alpha    float32
	}{
		{in: "white", expected: 0xffffff, alpha: 1},
		{in: "CornflowerBlue", expected: 0x6495ed, alpha: 1},
		{in: "#f00", expected: 0xff0000, alpha: 1},
		{in: "#336699", expected: 0x336699, alpha: 1},
		{in: "0x336699", expected: 0x336699, alpha: 1},
		{in: "#33669900", expected: 0x336699, alpha: 0},
	}

	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			c, err := ParseColor(test.in)
			require.NoError(t, err)
			require.Equal(t, test.expected, c.Hex())
			require.Equal(t, test.alpha, c.A)
		})
	}

	_, err := ParseColor("not a color")
	require.Equal(t, ErrTypeInvalidColor, errors.Type(err))

	_, err = ParseColor("#zzzzzz")
	require.Equal(t, ErrTypeInvalidColor, errors.Type(err))
}
