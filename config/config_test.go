package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	path := writeFile(t, dir, "glgen.toml", `
registry = "registry/gl.xml"
include-overviews = false
jobs = 4
`)
	c, err := Load(path)
	require.NoError(err)
	require.Equal("registry/gl.xml", c.Registry)
	require.Equal(4, c.Jobs)
	require.False(c.Overviews())
	require.Equal([]string{"gl"}, c.APIs)
	require.Equal(".py", c.FileExtension)
	require.Equal("__init__.py", c.PackageMarker)
	require.Equal("http://www.opengl.org/registry/specs/", c.Spec.RootURL)
}

func TestLoadImports(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	writeFile(t, dir, "base.toml", `
apis = ["gles2"]
output-root = "base-out"

[spec]
fetch = true
exceptions = { "ARB/foo" = "http://example.com/foo.txt" }
`)
	path := writeFile(t, dir, "glgen.toml", `
imports = ["base.toml"]
apis = ["gl"]

[spec]
exceptions = { "EXT/bar" = "http://example.com/bar.txt" }
`)
	c, err := Load(path)
	require.NoError(err)
	require.Equal([]string{"gl", "gles2"}, c.APIs)
	require.Equal("base-out", c.OutputRoot)
	require.True(c.Spec.Fetch)
	require.Equal(map[string]string{
		"ARB/foo": "http://example.com/foo.txt",
		"EXT/bar": "http://example.com/bar.txt",
	}, c.Spec.Exceptions)
	require.True(c.Overviews())
}

func TestLoadUnknownField(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	path := writeFile(t, dir, "glgen.toml", `no-such-key = 1`)
	_, err := Load(path)
	require.Error(err)

	var cErr *Error
	require.ErrorAs(err, &cErr)
	require.Contains(cErr.Error(), "glgen.toml")
	require.Contains(cErr.String(), "Error in file")
}

func TestLoadImportErrorNamesImportedFile(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	writeFile(t, dir, "broken.toml", `jobs = "many"`)
	path := writeFile(t, dir, "glgen.toml", `imports = ["broken.toml"]`)
	_, err := Load(path)
	require.Error(err)
	require.Contains(err.Error(), "broken.toml")
}

func TestSaveLoadDefault(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "glgen.toml")

	require.NoError(Default().Save(path))
	c, err := Load(path)
	require.NoError(err)
	d := Default()
	require.Equal(d.APIs, c.APIs)
	require.Equal(d.OutputRoot, c.OutputRoot)
	require.Equal(d.RawOutputRoot, c.RawOutputRoot)
	require.Equal(d.PackageMarkerContent, c.PackageMarkerContent)
	require.Equal(d.Spec.RootURL, c.Spec.RootURL)
	require.True(c.Overviews())
}

func TestModuleList(t *testing.T) {
	require := require.New(t)
	path := filepath.Join(t.TempDir(), "modules.txt")

	ml, err := LoadModuleListFromFile(path)
	require.NoError(err)
	require.True(ml.IsEnabled("GL_ARB_anything"))

	ml.Enabled["GL_SGIX_old"] = false
	require.NoError(ml.SaveToFile(path, map[string]string{
		"GL_ARB_vertex_array_object": "2 constants, 4 functions",
		"GL_SGIX_old":                "",
	}))

	data, err := os.ReadFile(path)
	require.NoError(err)
	require.Contains(string(data), "[enabled]\nGL_ARB_vertex_array_object # 2 constants, 4 functions\n")
	require.Contains(string(data), "[disabled]\nGL_SGIX_old\n")

	ml, err = LoadModuleListFromFile(path)
	require.NoError(err)
	require.True(ml.IsEnabled("GL_ARB_vertex_array_object"))
	require.False(ml.IsEnabled("GL_SGIX_old"))
}

func TestModuleListErrors(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	_, err := LoadModuleListFromFile(writeFile(t, dir, "a.txt", "GL_ARB_foo\n"))
	require.ErrorContains(err, "line 1")

	_, err = LoadModuleListFromFile(writeFile(t, dir, "b.txt", "[enabled]\nGL_ARB_foo\n[disabled]\nGL_ARB_foo\n"))
	require.ErrorContains(err, "both [enabled] and [disabled]")

	_, err = LoadModuleListFromFile(writeFile(t, dir, "c.txt", "[export]\n"))
	require.ErrorContains(err, "invalid section name")
}
