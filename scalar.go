package yamltree

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	intRe   = regexp.MustCompile(`^-?(?:0x[0-9a-fA-F]+|0o[0-7]+|[0-9]+)$`)
	floatRe = regexp.MustCompile(`^[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?$`)
)

// splitInt validates text against the integer grammar and returns its sign,
// digits and base.
func splitInt(text string) (neg bool, digits string, base int, ok bool) {
	if !intRe.MatchString(text) {
		return false, "", 0, false
	}
	if strings.HasPrefix(text, "-") {
		neg, text = true, text[1:]
	}
	switch {
	case strings.HasPrefix(text, "0x"):
		return neg, text[2:], 16, true
	case strings.HasPrefix(text, "0o"):
		return neg, text[2:], 8, true
	}
	return neg, text, 10, true
}

// ParseInt parses text with the integer grammar: decimal, 0x hexadecimal or
// 0o octal, each with an optional leading '-'.
func ParseInt(text string, bitSize int) (int64, bool) {
	neg, digits, base, ok := splitInt(text)
	if !ok {
		return 0, false
	}
	if neg {
		digits = "-" + digits
	}
	v, err := strconv.ParseInt(digits, base, bitSize)
	return v, err == nil
}

// ParseUint is ParseInt for unsigned targets; negative values are rejected.
func ParseUint(text string, bitSize int) (uint64, bool) {
	neg, digits, base, ok := splitInt(text)
	if !ok || neg {
		return 0, false
	}
	v, err := strconv.ParseUint(digits, base, bitSize)
	return v, err == nil
}

// ParseFloat parses text with the float grammar, including the .inf and .nan
// literals in lower, title and upper case.
func ParseFloat(text string, bitSize int) (float64, bool) {
	switch text {
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return math.Inf(1), true
	case "-.inf", "-.Inf", "-.INF":
		return math.Inf(-1), true
	case ".nan", ".NaN", ".NAN":
		return math.NaN(), true
	}
	if !floatRe.MatchString(text) {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, bitSize)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseBool accepts true and false in lower, title and upper case.
func ParseBool(text string) (bool, bool) {
	switch text {
	case "true", "True", "TRUE":
		return true, true
	case "false", "False", "FALSE":
		return false, true
	}
	return false, false
}

func (s *Scalar) ToInt64() (int64, error) { return s.toInt("integer", 64) }

func (s *Scalar) ToInt32() (int32, error) {
	v, err := s.toInt("integer", 32)
	return int32(v), err
}

func (s *Scalar) toInt(typ string, bits int) (int64, error) {
	v, ok := ParseInt(s.content, bits)
	if !ok {
		return 0, errInvalidScalar(s, typ)
	}
	return v, nil
}

func (s *Scalar) ToUint64() (uint64, error) {
	v, ok := ParseUint(s.content, 64)
	if !ok {
		return 0, errInvalidScalar(s, "unsigned integer")
	}
	return v, nil
}

func (s *Scalar) ToFloat64() (float64, error) {
	v, ok := ParseFloat(s.content, 64)
	if !ok {
		return 0, errInvalidScalar(s, "floating point")
	}
	return v, nil
}

func (s *Scalar) ToBool() (bool, error) {
	v, ok := ParseBool(s.content)
	if !ok {
		return false, errInvalidScalar(s, "boolean")
	}
	return v, nil
}

// ToChar requires the content to be exactly one character.
func (s *Scalar) ToChar() (rune, error) {
	r, size := utf8.DecodeRuneInString(s.content)
	if size == 0 || size != len(s.content) || r == utf8.RuneError {
		return 0, errInvalidScalar(s, "character")
	}
	return r, nil
}

// RequireScalar returns n as a scalar or an incorrect_type error.
func RequireScalar(n Node) (*Scalar, error) {
	if s, ok := n.(*Scalar); ok {
		return s, nil
	}
	return nil, errIncorrectType(n, "a scalar value")
}

// RequireList returns n as a list or an incorrect_type error.
func RequireList(n Node) (*List, error) {
	if l, ok := n.(*List); ok {
		return l, nil
	}
	return nil, errIncorrectType(n, "a list")
}

// RequireMap returns n as a map or an incorrect_type error.
func RequireMap(n Node) (*Map, error) {
	if m, ok := n.(*Map); ok {
		return m, nil
	}
	return nil, errIncorrectType(n, "an object")
}
