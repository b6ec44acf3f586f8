package sigil

import "fmt"

// UnsupportedValueError is raised at encode time for values the classifier
// cannot place: callables, weak collections, and any host type outside the
// supported kinds. Encoding aborts; no partial document is returned.
type UnsupportedValueError struct {
	// Category names what was rejected, e.g. "function" or a Go type name.
	Category string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("sigil: unsupported value: %s", e.Category)
}

// RefResolutionError is raised at decode time when a back-reference points
// at an id that was never registered. It signals a corrupted or foreign
// document.
type RefResolutionError struct {
	RefID string
}

func (e *RefResolutionError) Error() string {
	return fmt.Sprintf("sigil: unresolved reference id %q", e.RefID)
}

// MalformedDocumentError is raised at decode time when a kind tag is
// unrecognized or a payload's shape does not match its declared kind.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return "sigil: malformed document: " + e.Reason
}

// DepthExceededError is raised in either direction when recursion passes
// the configured depth limit. Cycles never trip it (each object is visited
// once); only pathologically deep non-cyclic graphs do.
type DepthExceededError struct {
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("sigil: depth limit exceeded (%d)", e.Limit)
}

func malformed(format string, args ...any) *MalformedDocumentError {
	return &MalformedDocumentError{Reason: fmt.Sprintf(format, args...)}
}
