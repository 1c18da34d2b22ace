package yamltree

import (
	"fmt"
	"strings"

	"github.com/reoring/yamltree/codec"
)

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                       // Drop unknown keys.
)

// SequenceStyle selects how lists are written.
type SequenceStyle int

const (
	SequenceBlock SequenceStyle = iota
	SequenceFlow
)

// SingleLineStringStyle selects the quoting of strings without newlines.
type SingleLineStringStyle int

const (
	SingleLineDoubleQuoted SingleLineStringStyle = iota
	SingleLineSingleQuoted
	SingleLinePlain
	// SingleLinePlainExceptAmbiguous writes plain scalars unless the text
	// would read back as something other than a string.
	SingleLinePlainExceptAmbiguous
)

// MultiLineStringStyle selects the quoting of strings containing a newline.
type MultiLineStringStyle int

const (
	MultiLineLiteral MultiLineStringStyle = iota
	MultiLineDoubleQuoted
	MultiLineSingleQuoted
	MultiLinePlain
)

// AmbiguousQuoteStyle selects the quotes used for ambiguous strings under
// SingleLinePlainExceptAmbiguous.
type AmbiguousQuoteStyle int

const (
	AmbiguousDoubleQuoted AmbiguousQuoteStyle = iota
	AmbiguousSingleQuoted
)

// PolymorphismStyle selects how the concrete type of a polymorphic value is
// recorded.
type PolymorphismStyle int

const (
	PolymorphismTag      PolymorphismStyle = iota // !name on the mapping
	PolymorphismProperty                          // leading "type: name" entry
)

var (
	unknownPolicyNames  = []string{"strict", "strip"}
	sequenceStyleNames  = []string{"block", "flow"}
	singleLineNames     = []string{"double-quoted", "single-quoted", "plain", "plain-except-ambiguous"}
	multiLineNames      = []string{"literal", "double-quoted", "single-quoted", "plain"}
	ambiguousQuoteNames = []string{"double", "single"}
	polymorphismNames   = []string{"tag", "property"}
)

func enumString[T ~int](v T, names []string) string {
	if int(v) >= 0 && int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%d", int(v))
}

func enumParse[T ~int](text []byte, names []string, what string) (T, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range names {
		if n == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (expected one of %s)", what, s, strings.Join(names, ", "))
}

func (v UnknownPolicy) String() string { return enumString(v, unknownPolicyNames) }
func (v UnknownPolicy) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *UnknownPolicy) UnmarshalText(b []byte) (err error) {
	*v, err = enumParse[UnknownPolicy](b, unknownPolicyNames, "unknown-property policy")
	return err
}

func (v SequenceStyle) String() string { return enumString(v, sequenceStyleNames) }
func (v SequenceStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *SequenceStyle) UnmarshalText(b []byte) (err error) {
	*v, err = enumParse[SequenceStyle](b, sequenceStyleNames, "sequence style")
	return err
}

func (v SingleLineStringStyle) String() string { return enumString(v, singleLineNames) }
func (v SingleLineStringStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *SingleLineStringStyle) UnmarshalText(b []byte) (err error) {
	*v, err = enumParse[SingleLineStringStyle](b, singleLineNames, "single-line string style")
	return err
}

func (v MultiLineStringStyle) String() string { return enumString(v, multiLineNames) }
func (v MultiLineStringStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *MultiLineStringStyle) UnmarshalText(b []byte) (err error) {
	*v, err = enumParse[MultiLineStringStyle](b, multiLineNames, "multi-line string style")
	return err
}

func (v AmbiguousQuoteStyle) String() string { return enumString(v, ambiguousQuoteNames) }
func (v AmbiguousQuoteStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *AmbiguousQuoteStyle) UnmarshalText(b []byte) (err error) {
	*v, err = enumParse[AmbiguousQuoteStyle](b, ambiguousQuoteNames, "ambiguous quote style")
	return err
}

func (v PolymorphismStyle) String() string { return enumString(v, polymorphismNames) }
func (v PolymorphismStyle) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
func (v *PolymorphismStyle) UnmarshalText(b []byte) (err error) {
	*v, err = enumParse[PolymorphismStyle](b, polymorphismNames, "polymorphism style")
	return err
}

// Config bundles reading and writing options. A Config is copied into Yaml
// and never mutated afterwards, so one Yaml can serve concurrent calls.
type Config struct {
	// ExtensionDefinitionPrefix, when non-empty, marks root-level keys that
	// only define anchors and are dropped from the resulting map.
	ExtensionDefinitionPrefix string
	AllowAnchorsAndAliases    bool
	// MaxAliasCount bounds how many aliases to lists and maps a document may
	// resolve; 0 means unlimited. Scalar aliases are not counted.
	MaxAliasCount int
	// MaxDepth bounds collection nesting; 0 means unlimited.
	MaxDepth int
	// MaxValues bounds the number of scalars, aliases and collections in a
	// document; 0 means unlimited.
	MaxValues     int
	UnknownPolicy UnknownPolicy

	EncodeDefaults bool
	SequenceStyle  SequenceStyle
	// IndentSize is the indentation per nesting level, between 2 and 9.
	IndentSize int
	// SequenceBlockIndent is the indentation of block sequence entries under
	// a map key: 0 puts the "- " at the key's column, otherwise it must equal
	// IndentSize.
	SequenceBlockIndent int
	// BreakWidth is the column at which long scalars are folded. Only 0,
	// meaning never fold, is supported by the yaml.v3 emitter.
	BreakWidth               int
	SingleLineStringStyle    SingleLineStringStyle
	MultiLineStringStyle     MultiLineStringStyle
	AmbiguousQuoteStyle      AmbiguousQuoteStyle
	PolymorphismStyle        PolymorphismStyle
	PolymorphismPropertyName string
	// NamingStrategy, when set, rewrites the text of every emitted scalar.
	NamingStrategy NamingStrategy

	// Types resolves polymorphic interface values; nil disables polymorphism.
	Types *TypeRegistry
	// Codecs converts scalar text for types without a natural scalar form.
	Codecs *codec.Registry
}

// DefaultConfig returns the configuration used by Default.
func DefaultConfig() Config {
	return Config{
		AllowAnchorsAndAliases:   true,
		MaxAliasCount:            100,
		UnknownPolicy:            UnknownStrict,
		EncodeDefaults:           true,
		SequenceStyle:            SequenceBlock,
		IndentSize:               2,
		SequenceBlockIndent:      0,
		BreakWidth:               0,
		SingleLineStringStyle:    SingleLineDoubleQuoted,
		MultiLineStringStyle:     MultiLineLiteral,
		AmbiguousQuoteStyle:      AmbiguousDoubleQuoted,
		PolymorphismStyle:        PolymorphismTag,
		PolymorphismPropertyName: "type",
		Codecs:                   codec.Default(),
	}
}

// Validate reports the first out-of-range option as an invalid_config error.
func (c Config) Validate() error {
	switch {
	case c.IndentSize < 2 || c.IndentSize > 9:
		return errInvalidConfig("indent size must be between 2 and 9, got %d", c.IndentSize)
	case c.SequenceBlockIndent != 0 && c.SequenceBlockIndent != c.IndentSize:
		return errInvalidConfig("sequence block indent must be 0 or the indent size (%d), got %d", c.IndentSize, c.SequenceBlockIndent)
	case c.BreakWidth != 0:
		return errInvalidConfig("break width %d is not supported: scalars are never folded, use 0", c.BreakWidth)
	case c.MaxValues < 0:
		return errInvalidConfig("max values must not be negative, got %d", c.MaxValues)
	case c.MaxAliasCount < 0:
		return errInvalidConfig("max alias count must not be negative, got %d", c.MaxAliasCount)
	case c.MaxDepth < 0:
		return errInvalidConfig("max depth must not be negative, got %d", c.MaxDepth)
	case c.PolymorphismStyle == PolymorphismProperty && c.PolymorphismPropertyName == "":
		return errInvalidConfig("polymorphism property name must not be empty")
	}
	return nil
}
