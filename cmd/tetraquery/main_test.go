package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/solarlune/tetraquery"
	"github.com/stretchr/testify/require"
)

const testGLTF = `{
	"asset": {"version": "2.0"},
	"scenes": [{"name": "Garden", "nodes": [0, 2]}],
	"nodes": [
		{"name": "Tree", "children": [1], "translation": [1, 0, 0], "extras": {"label": "#oak .tree"}},
		{"name": "Apple", "translation": [0, 2, 0], "extras": {"label": ".fruit .red", "ripe": true}},
		{"name": "Rock", "extras": {"tag": ".stone"}}
	]
}`

func writeTestFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "garden.gltf")
	require.NoError(t, os.WriteFile(path, []byte(testGLTF), 0o644))
	return path
}

func TestValidateConfig(t *testing.T) {
	err := validateConfig(config{Format: "json"})
	require.True(t, errors.IsType(err, tetraquery.ErrTypeConfiguration))

	err = validateConfig(config{File: "a.gltf", Format: "yaml"})
	require.True(t, errors.IsType(err, tetraquery.ErrTypeConfiguration))

	require.NoError(t, validateConfig(config{File: "a.gltf", Format: "tree"}))
}

func TestRunJSON(t *testing.T) {
	var b strings.Builder
	err := run(context.Background(), config{
		File:          writeTestFile(t),
		Selector:      "#oak .red",
		Format:        "json",
		LabelProperty: "label",
	}, &b)
	require.NoError(t, err)

	var out []nodeOutput
	require.NoError(t, json.Unmarshal([]byte(b.String()), &out))
	require.Len(t, out, 1)

	apple := out[0]
	require.Equal(t, "Apple", apple.Name)
	require.Equal(t, []string{"fruit", "red"}, apple.Classes)
	require.Equal(t, [3]float64{1, 2, 0}, apple.Position)
	require.Equal(t, true, apple.Props["ripe"])
}

func TestRunTree(t *testing.T) {
	var b strings.Builder
	err := run(context.Background(), config{
		File:          writeTestFile(t),
		Selector:      ".stone",
		Format:        "tree",
		LabelProperty: "tag",
	}, &b)
	require.NoError(t, err)
	require.Contains(t, b.String(), "Rock {.stone}")
}

func TestRunInvalidSelector(t *testing.T) {
	err := run(context.Background(), config{
		File:          writeTestFile(t),
		Selector:      ".a,",
		Format:        "json",
		LabelProperty: "label",
	}, &strings.Builder{})
	require.True(t, errors.IsType(err, tetraquery.ErrTypeInvalidSelector))
}

func TestRunMissingFile(t *testing.T) {
	err := run(context.Background(), config{
		File:     filepath.Join(t.TempDir(), "missing.gltf"),
		Selector: "*",
		Format:   "json",
	}, &strings.Builder{})
	require.True(t, errors.IsType(err, tetraquery.ErrTypeLoadFailed))
}
