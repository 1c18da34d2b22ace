package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/yamltree"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(append([]string{"--color", "off"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCheck_ReportsEachFile(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.yaml", "a: 1\nb: [x, y]\n")
	bad := writeFile(t, dir, "bad.yaml", "a: 1\na: 2\n")

	stdout, _, err := run(t, "check", "--jobs", "2", good, bad)
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 of 2 files failed")
	require.Contains(t, stdout, good+": ok")
	require.Contains(t, stdout, bad+":2:1: error[duplicate_key]:")
	require.Contains(t, stdout, "first defined at a (line 1, column 1)")
	require.Contains(t, stdout, "   2 | a: 2\n")
	require.Contains(t, stdout, "     | ^\n")
}

func TestCheck_AllGood(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.yaml", "x: &v 1\ny: *v\n")
	b := writeFile(t, dir, "b.json", `{"k": [1, 2]}`)

	stdout, _, err := run(t, "check", a, b)
	require.NoError(t, err)
	require.Equal(t, a+": ok\n"+b+": ok\n", stdout)
}

func TestCheck_MissingFileAborts(t *testing.T) {
	_, _, err := run(t, "check", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "nope.yaml")
}

func TestDump_Formats(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "d.yaml", "name: demo\nport: 8080\ntags: [a, b]\nnothing: ~\n")

	stdout, _, err := run(t, "dump", p)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		`map{4} (1:1)`,
		`  name: scalar "demo" (1:7)`,
		`  port: scalar "8080" (2:7)`,
		`  tags: list[2] (3:7)`,
		`    [0] scalar "a" (3:8)`,
		`    [1] scalar "b" (3:11)`,
		`  nothing: null (4:10)`,
		``,
	}, "\n"), stdout)

	stdout, _, err = run(t, "dump", "--format", "json", p)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, gojson.Unmarshal([]byte(stdout), &got))
	require.Equal(t, map[string]any{
		"name":    "demo",
		"port":    float64(8080),
		"tags":    []any{"a", "b"},
		"nothing": nil,
	}, got)

	stdout, _, err = run(t, "dump", "--format", "paths", p)
	require.NoError(t, err)
	require.Contains(t, stdout, "tags[1]\tline 3, column 11\t'b'\n")
	require.Contains(t, stdout, "nothing\tline 4, column 10\tnull\n")
}

func TestDump_InvalidDocumentGoesToStderr(t *testing.T) {
	p := writeFile(t, t.TempDir(), "bad.yaml", "a: *missing\n")
	stdout, stderr, err := run(t, "dump", p)
	require.Error(t, err)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "error[unknown_anchor]")
}

func TestFmt_DiffAndWrite(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "f.yaml", "base: &b {x: 1}\nuse:\n  <<: *b\n  y: 2\n")

	stdout, _, err := run(t, "fmt", "--diff", p)
	require.NoError(t, err)
	require.Contains(t, stdout, "--- "+p)
	require.Contains(t, stdout, "-  <<: *b\n")
	require.Contains(t, stdout, "+  \"x\": \"1\"\n")

	_, _, err = run(t, "fmt", "--write", p)
	require.NoError(t, err)
	b, err := os.ReadFile(p)
	require.NoError(t, err)

	n, err := yamltree.Default().ParseBytesToNode(b)
	require.NoError(t, err)
	want, err := yamltree.Default().ParseToNode("base: {x: 1}\nuse: {x: 1, y: 2}\n")
	require.NoError(t, err)
	require.True(t, n.EquivalentContentTo(want), "got %s", n.ContentString())

	// A second pass is a no-op.
	stdout, _, err = run(t, "fmt", "--diff", p)
	require.NoError(t, err)
	require.Empty(t, stdout)
}

func TestFmt_RejectsConflictingFlags(t *testing.T) {
	p := writeFile(t, t.TempDir(), "f.yaml", "a: 1\n")
	_, _, err := run(t, "fmt", "--diff", "--write", p)
	require.EqualError(t, err, "--diff and --write cannot be used together")
}

func TestConvert_MsgpackAndJSON(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "c.yaml", "name: demo\ntags: [a, b]\nenabled: true\n")
	out := filepath.Join(dir, "c.msgpack")

	_, _, err := run(t, "convert", "--to", "msgpack", "-o", out, p)
	require.NoError(t, err)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	var decoded struct {
		Name    string   `msgpack:"name"`
		Tags    []string `msgpack:"tags"`
		Enabled bool     `msgpack:"enabled"`
	}
	require.NoError(t, msgpack.Unmarshal(b, &decoded))
	require.Equal(t, "demo", decoded.Name)
	require.Equal(t, []string{"a", "b"}, decoded.Tags)
	require.True(t, decoded.Enabled)

	stdout, _, err := run(t, "convert", p)
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"demo","tags":["a","b"],"enabled":true}`, stdout)

	_, _, err = run(t, "convert", "--to", "xml", p)
	require.ErrorContains(t, err, `unknown target format "xml"`)
}

func TestConvert_JSONInputToYAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "in.txt", `{"a": "b"}`)
	stdout, _, err := run(t, "--input-format", "json", "convert", "--to", "yaml", p)
	require.NoError(t, err)
	require.Equal(t, "\"a\": \"b\"\n", stdout)
}

func TestGlobalFlags_Validated(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.yaml", "a: 1\n")
	_, _, err := run(t, "--input-format", "toml", "check", p)
	require.ErrorContains(t, err, `unknown input format "toml"`)

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"--color", "sometimes", "check", p})
	require.ErrorContains(t, root.Execute(), `unknown color mode "sometimes"`)
}
