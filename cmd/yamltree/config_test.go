package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/yamltree"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "yamltree.toml", `
extension_definition_prefix = ".x-"
max_alias_count = 5
max_values = 1000
unknown_policy = "strip"

[output]
sequence_style = "flow"
indent_size = 4
single_line_string_style = "plain-except-ambiguous"
ambiguous_quote_style = "single"
naming_strategy = "snake_case"
`)
	cfg, err := loadConfigFile(p)
	require.NoError(t, err)
	require.Equal(t, ".x-", cfg.ExtensionDefinitionPrefix)
	require.Equal(t, 5, cfg.MaxAliasCount)
	require.Equal(t, 1000, cfg.MaxValues)
	require.Equal(t, yamltree.UnknownStrip, cfg.UnknownPolicy)
	require.Equal(t, yamltree.SequenceFlow, cfg.SequenceStyle)
	require.Equal(t, 4, cfg.IndentSize)
	require.Equal(t, yamltree.SingleLinePlainExceptAmbiguous, cfg.SingleLineStringStyle)
	require.Equal(t, yamltree.AmbiguousSingleQuoted, cfg.AmbiguousQuoteStyle)
	require.NotNil(t, cfg.NamingStrategy)
	require.Equal(t, "max_depth", cfg.NamingStrategy("maxDepth"))

	// Untouched options keep their defaults.
	def := yamltree.DefaultConfig()
	require.True(t, cfg.AllowAnchorsAndAliases)
	require.Equal(t, def.BreakWidth, cfg.BreakWidth)
	require.Equal(t, def.MultiLineStringStyle, cfg.MultiLineStringStyle)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown key", "colour = true\n", "unknown keys: colour"},
		{"bad enum", "[output]\nsequence_style = \"diagonal\"\n", "diagonal"},
		{"bad naming", "[output]\nnaming_strategy = \"SCREAMING\"\n", `unknown naming strategy "SCREAMING"`},
		{"invalid value", "[output]\nindent_size = 0\n", "indent size must be between 2 and 9"},
		{"unsupported break width", "[output]\nbreak_width = 40\n", "break width 40 is not supported"},
		{"sequence indent", "[output]\nsequence_block_indent = 4\n", "sequence block indent must be 0 or the indent size (2)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, dir, filepath.Base(t.Name())+".toml", tt.content)
			_, err := loadConfigFile(p)
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestConfigFlag_AppliesToOutput(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "c.toml", "[output]\nsingle_line_string_style = \"plain-except-ambiguous\"\nsequence_style = \"flow\"\n")
	in := writeFile(t, dir, "in.yaml", "name: demo\nport: '8080'\nids: [a, b]\n")

	stdout, _, err := run(t, "--config", cfg, "fmt", in)
	require.NoError(t, err)
	require.Equal(t, "name: demo\nport: \"8080\"\nids: [a, b]\n", stdout)
}

func TestCaretPad(t *testing.T) {
	require.Equal(t, "", caretPad("abc", 1))
	require.Equal(t, "  ", caretPad("abc", 3))
	require.Equal(t, "\t ", caretPad("\tab", 3))
	// Wide characters occupy two cells.
	require.Equal(t, "     ", caretPad("名前: x", 4))
	require.Equal(t, "     ", caretPad("ab", 6))
}
