package event

import "fmt"

// SyntaxError is returned by sources when the input is not well-formed YAML.
//
// Context and ContextMark are optional: HasContext reports whether the
// underlying parser supplied them. ContextSnippet, when non-empty, is a
// rendering of the input around ContextMark.
type SyntaxError struct {
	Context        string
	ContextMark    Mark
	HasContext     bool
	ContextSnippet string
	Problem        string
	ProblemMark    Mark
}

func (e *SyntaxError) Error() string {
	if e.HasContext {
		return fmt.Sprintf("%s at %s: %s at %s", e.Context, e.ContextMark, e.Problem, e.ProblemMark)
	}
	return fmt.Sprintf("%s at %s", e.Problem, e.ProblemMark)
}

// UnknownAnchorError is returned by sources whose underlying parser resolves
// aliases itself and rejects references to undefined anchors.
type UnknownAnchorError struct {
	Anchor string
	Mark   Mark
}

func (e *UnknownAnchorError) Error() string {
	return fmt.Sprintf("unknown anchor '%s' referenced at %s", e.Anchor, e.Mark)
}
