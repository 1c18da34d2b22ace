package yamltree

import (
	"strings"

	"github.com/reoring/yamltree/event"
)

var singleLineStyles = map[SingleLineStringStyle]event.ScalarStyle{
	SingleLineDoubleQuoted:         event.StyleDoubleQuoted,
	SingleLineSingleQuoted:         event.StyleSingleQuoted,
	SingleLinePlain:                event.StylePlain,
	SingleLinePlainExceptAmbiguous: event.StylePlain,
}

var multiLineStyles = map[MultiLineStringStyle]event.ScalarStyle{
	MultiLineLiteral:      event.StyleLiteral,
	MultiLineDoubleQuoted: event.StyleDoubleQuoted,
	MultiLineSingleQuoted: event.StyleSingleQuoted,
	MultiLinePlain:        event.StylePlain,
}

var ambiguousStyles = map[AmbiguousQuoteStyle]event.ScalarStyle{
	AmbiguousDoubleQuoted: event.StyleDoubleQuoted,
	AmbiguousSingleQuoted: event.StyleSingleQuoted,
}

var sequenceStyles = map[SequenceStyle]event.CollectionStyle{
	SequenceBlock: event.Block,
	SequenceFlow:  event.Flow,
}

// Plain words that read back as something other than a string.
var reservedWords = map[string]struct{}{
	"null": {}, "~": {},
	"true": {}, "false": {},
	"yes": {}, "no": {}, "y": {}, "n": {}, "on": {}, "off": {},
	".inf": {}, "-.inf": {}, "+.inf": {}, ".nan": {},
}

// IsAmbiguous reports whether s, written as a plain scalar, could be read
// back as a null, boolean, number or comment instead of the string s.
func IsAmbiguous(s string) bool {
	if s == "" || strings.HasPrefix(s, "#") {
		return true
	}
	if intRe.MatchString(s) || floatRe.MatchString(s) {
		return true
	}
	_, reserved := reservedWords[strings.ToLower(s)]
	return reserved
}

// stringStyle selects the style of a string value.
func (c *Config) stringStyle(s string) event.ScalarStyle {
	switch {
	case strings.HasPrefix(s, "\n") || strings.HasPrefix(s, "\r"):
		// yaml.v3 drops a leading line break from block and folded output.
		return event.StyleDoubleQuoted
	case strings.Contains(s, "\n"):
		return multiLineStyles[c.MultiLineStringStyle]
	case c.SingleLineStringStyle == SingleLinePlainExceptAmbiguous && IsAmbiguous(s):
		return ambiguousStyles[c.AmbiguousQuoteStyle]
	}
	return singleLineStyles[c.SingleLineStringStyle]
}

// quotedStyle is the style of values that are always quoted (characters,
// enum names, type names). Plain single-line styles fall back to the
// ambiguous quote style.
func (c *Config) quotedStyle() event.ScalarStyle {
	if st := singleLineStyles[c.SingleLineStringStyle]; st != event.StylePlain {
		return st
	}
	return ambiguousStyles[c.AmbiguousQuoteStyle]
}
