package main

import (
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/reoring/yamltree"
)

// fileConfig mirrors yamltree.Config for TOML files. Style options are
// spelled the way their String methods print them, e.g.
//
//	[output]
//	sequence_style = "flow"
//	naming_strategy = "snake_case"
type fileConfig struct {
	ExtensionDefinitionPrefix string                 `toml:"extension_definition_prefix"`
	AllowAnchorsAndAliases    bool                   `toml:"allow_anchors_and_aliases"`
	MaxAliasCount             int                    `toml:"max_alias_count"`
	MaxDepth                  int                    `toml:"max_depth"`
	MaxValues                 int                    `toml:"max_values"`
	UnknownPolicy             yamltree.UnknownPolicy `toml:"unknown_policy"`
	Output                    outputConfig           `toml:"output"`
}

type outputConfig struct {
	EncodeDefaults           bool                           `toml:"encode_defaults"`
	SequenceStyle            yamltree.SequenceStyle         `toml:"sequence_style"`
	IndentSize               int                            `toml:"indent_size"`
	SequenceBlockIndent      int                            `toml:"sequence_block_indent"`
	BreakWidth               int                            `toml:"break_width"`
	SingleLineStringStyle    yamltree.SingleLineStringStyle `toml:"single_line_string_style"`
	MultiLineStringStyle     yamltree.MultiLineStringStyle  `toml:"multi_line_string_style"`
	AmbiguousQuoteStyle      yamltree.AmbiguousQuoteStyle   `toml:"ambiguous_quote_style"`
	PolymorphismStyle        yamltree.PolymorphismStyle     `toml:"polymorphism_style"`
	PolymorphismPropertyName string                         `toml:"polymorphism_property_name"`
	NamingStrategy           string                         `toml:"naming_strategy"`
}

func fileConfigFrom(c yamltree.Config) fileConfig {
	return fileConfig{
		ExtensionDefinitionPrefix: c.ExtensionDefinitionPrefix,
		AllowAnchorsAndAliases:    c.AllowAnchorsAndAliases,
		MaxAliasCount:             c.MaxAliasCount,
		MaxDepth:                  c.MaxDepth,
		MaxValues:                 c.MaxValues,
		UnknownPolicy:             c.UnknownPolicy,
		Output: outputConfig{
			EncodeDefaults:           c.EncodeDefaults,
			SequenceStyle:            c.SequenceStyle,
			IndentSize:               c.IndentSize,
			SequenceBlockIndent:      c.SequenceBlockIndent,
			BreakWidth:               c.BreakWidth,
			SingleLineStringStyle:    c.SingleLineStringStyle,
			MultiLineStringStyle:     c.MultiLineStringStyle,
			AmbiguousQuoteStyle:      c.AmbiguousQuoteStyle,
			PolymorphismStyle:        c.PolymorphismStyle,
			PolymorphismPropertyName: c.PolymorphismPropertyName,
		},
	}
}

func (f fileConfig) apply(c yamltree.Config) (yamltree.Config, error) {
	c.ExtensionDefinitionPrefix = f.ExtensionDefinitionPrefix
	c.AllowAnchorsAndAliases = f.AllowAnchorsAndAliases
	c.MaxAliasCount = f.MaxAliasCount
	c.MaxDepth = f.MaxDepth
	c.MaxValues = f.MaxValues
	c.UnknownPolicy = f.UnknownPolicy

	o := f.Output
	c.EncodeDefaults = o.EncodeDefaults
	c.SequenceStyle = o.SequenceStyle
	c.IndentSize = o.IndentSize
	c.SequenceBlockIndent = o.SequenceBlockIndent
	c.BreakWidth = o.BreakWidth
	c.SingleLineStringStyle = o.SingleLineStringStyle
	c.MultiLineStringStyle = o.MultiLineStringStyle
	c.AmbiguousQuoteStyle = o.AmbiguousQuoteStyle
	c.PolymorphismStyle = o.PolymorphismStyle
	c.PolymorphismPropertyName = o.PolymorphismPropertyName

	ns, err := yamltree.LookupNamingStrategy(o.NamingStrategy)
	if err != nil {
		return c, err
	}
	c.NamingStrategy = ns
	return c, c.Validate()
}

// loadConfigFile decodes a TOML settings file on top of the defaults. Keys
// the file sets that no option understands are rejected.
func loadConfigFile(path string) (yamltree.Config, error) {
	base := yamltree.DefaultConfig()
	fc := fileConfigFrom(base)
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return base, errors.Wrapf(err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return base, errors.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg, err := fc.apply(base)
	if err != nil {
		return base, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}
