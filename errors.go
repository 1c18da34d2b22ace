package yamltree

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/reoring/yamltree/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeEmptyDocument             = "empty_document"
	CodeMalformed                 = "malformed_yaml"
	CodeUnknownAnchor             = "unknown_anchor"
	CodeDuplicateKey              = "duplicate_key"
	CodeUnsupportedMerge          = "unsupported_merge"
	CodeMissingAnchorForExtension = "missing_anchor_for_extension"
	CodeIncorrectType             = "incorrect_type"
	CodeInvalidScalar             = "invalid_scalar"
	CodeUnknownProperty           = "unknown_property"
	CodeMissingProperty           = "missing_property"
	// Reader limits
	CodeForbiddenAnchorOrAlias = "forbidden_anchor_or_alias"
	CodeAliasLimit             = "alias_limit"
	// Reflection driver
	CodeInvalidPropertyValue   = "invalid_property_value"
	CodeUnexpectedNull         = "unexpected_null"
	CodeUnknownPolymorphicType = "unknown_polymorphic_type"
	CodeMissingTypeProperty    = "missing_type_property"
	CodeEncode                 = "encode_error"
	CodeInvalidConfig          = "invalid_config"
)

// Error is the single error type returned by reading, decoding and encoding.
// Every error carries the structural path at which it was detected; Line and
// Column are derived from the path's last located segment.
type Error struct {
	Code    string
	Message string
	Path    Path
	Hint    string // Optional: remediation hint, already part of Message.
	Cause   error  // Optional: underlying error.
	// Params carries the structured values used to render Message.
	Params map[string]string
	// Original is set for duplicate_key and points at the first occurrence.
	Original *Path
}

func (e *Error) Error() string {
	return fmt.Sprintf("Error at %s on %s: %s", e.Path, e.Location(), e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Location is the 1-based position the error refers to.
func (e *Error) Location() Location { return e.Path.EndLocation() }

func (e *Error) Line() int   { return e.Location().Line }
func (e *Error) Column() int { return e.Location().Column }

func newError(code string, path Path, params map[string]string) *Error {
	return &Error{Code: code, Message: i18n.T(code, params), Path: path, Params: params}
}

// AsError extracts *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code string) bool {
	e, ok := AsError(err)
	return ok && e.Code == code
}

func errEmptyDocument() *Error { return newError(CodeEmptyDocument, RootPath(), nil) }

func errMalformed(path Path, msg string) *Error {
	return newError(CodeMalformed, path, map[string]string{"message": msg})
}

func errUnknownAnchor(path Path, anchor string) *Error {
	return newError(CodeUnknownAnchor, path, map[string]string{"anchor": anchor})
}

func errDuplicateKey(dup, original *Scalar) *Error {
	loc := original.Location()
	e := newError(CodeDuplicateKey, dup.Path(), map[string]string{
		"key":    dup.Content(),
		"line":   strconv.Itoa(loc.Line),
		"column": strconv.Itoa(loc.Column),
	})
	op := original.Path()
	e.Original = &op
	return e
}

func errUnsupportedMerge(source Node) *Error {
	return newError(CodeUnsupportedMerge, source.Path(), map[string]string{"kind": KindOf(source)})
}

func errMissingAnchorForExtension(path Path, key, prefix string) *Error {
	return newError(CodeMissingAnchorForExtension, path, map[string]string{"key": key, "prefix": prefix})
}

func errIncorrectType(n Node, expected string) *Error {
	return newError(CodeIncorrectType, n.Path(), map[string]string{"expected": expected, "actual": describeKind(n)})
}

// describeKind names the variant of n with an article, for messages.
func describeKind(n Node) string {
	switch n.(type) {
	case *Scalar:
		return "a scalar value"
	case *Null:
		return "null"
	case *List:
		return "a list"
	case *Map:
		return "a map"
	case *Tagged:
		return "a tagged value"
	}
	return KindOf(n)
}

func errInvalidScalar(s *Scalar, typ string) *Error {
	return newError(CodeInvalidScalar, s.Path(), map[string]string{"value": s.Content(), "type": typ})
}

func errForbiddenAnchorOrAlias(path Path) *Error {
	return newError(CodeForbiddenAnchorOrAlias, path, nil)
}

func errAliasLimit(path Path, max int) *Error {
	return newError(CodeAliasLimit, path, map[string]string{"max": strconv.Itoa(max)})
}

func errEncode(format string, args ...any) *Error {
	return newError(CodeEncode, RootPath(), map[string]string{"message": fmt.Sprintf(format, args...)})
}

func errInvalidConfig(format string, args ...any) *Error {
	return newError(CodeInvalidConfig, RootPath(), map[string]string{"message": fmt.Sprintf(format, args...)})
}
