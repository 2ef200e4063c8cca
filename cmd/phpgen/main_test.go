package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const manifest = `
classes:
  - name: A
    properties:
      - name: id
  - name: B
`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "manifest.yaml", manifest)

	out, err := execute(t, "-i", input, "--newline", "lf")
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\nclass A {\n\n\tprotected $id;\n}\n\nclass B {}\n", out)
}

func TestRunOverrides(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "manifest.yaml", manifest)

	out, err := execute(t, "-i", input, "--newline", "crlf", "--indent", "  ", "-T", "A", "--accessors")
	require.NoError(t, err)

	want := "<?php\r\n" +
		"\r\n" +
		"class A {\r\n" +
		"\r\n" +
		"  protected $id;\r\n" +
		"\r\n" +
		"  public function getId() {\r\n" +
		"\r\n" +
		"    return $this->id;\r\n" +
		"  }\r\n" +
		"\r\n" +
		"  public function setId($id) {\r\n" +
		"\r\n" +
		"    $this->id = $id;\r\n" +
		"    return $this;\r\n" +
		"  }\r\n" +
		"}\r\n"
	assert.Equal(t, want, out)
}

func TestRunConfigFileAndOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "manifest.yaml", manifest)
	cfg := writeFile(t, dir, "phpgen.toml", `
[format]
newline = "lf"
indent = "    "

[options]
excludeTypes = ["A"]
`)
	output := filepath.Join(dir, "Out.php")

	out, err := execute(t, "-i", input, "-c", cfg, "-o", output)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\nclass B {}\n", string(data))
}

func TestRunKeepsOutputOnRenderError(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "manifest.yaml", "classes:\n  - name: Broken\n    abstract: true\n    final: true\n")
	output := writeFile(t, dir, "Out.php", "<?php\n// previous output\n")

	_, err := execute(t, "-i", input, "-o", output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "<?php\n// previous output\n", string(data))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input")

	_, err = execute(t, "-i", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing input")

	input := writeFile(t, dir, "manifest.yaml", manifest)
	_, err = execute(t, "-i", input, "-c", filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")

	mixed := writeFile(t, dir, "mixed.yaml", "namespaces:\n  - name: a\nclasses:\n  - name: B\n")
	_, err = execute(t, "-i", mixed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rendering")
}

func TestParseCommaSeparated(t *testing.T) {
	assert.Equal(t, []string{"User", "Order", "Product"}, parseCommaSeparated("User, Order,,Product "))
	assert.Empty(t, parseCommaSeparated(""))
}
