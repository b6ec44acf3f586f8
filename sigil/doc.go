// Package sigil implements a structured-clone codec: it converts an
// in-memory value graph, possibly containing shared references, cycles,
// and values a plain JSON tree cannot represent, into a JSON-compatible
// tagged document, and reconstructs an equivalent graph from that
// document later, in another process or at another time.
//
// # Data Model
//
// Values are *Value nodes sharing by pointer identity:
//
//	Markers:    undefined, null, nan, ±infinity
//	Scalars:    string, finite number, boolean (pass through untagged)
//	Leaves:     bigint, symbol, date, regexp, boxed string/number/boolean
//	Containers: array, object, set, map
//	Buffers:    9 fixed-width numeric variants (uint8 .. float64)
//
// # Identity and Cycles
//
// Every object-identity value visited more than once during an encode is
// written in full exactly once and referred to by a back-reference
// envelope afterwards, so [a, a] decodes to two elements that are the same
// object, and a value containing itself round-trips. Plain scalars are
// copied by value and never shared. Symbols are the documented exception:
// they decode to fresh tokens carrying the same label.
//
// # Wire Format
//
// The document is ordinary JSON. Scalars appear as bare literals; every
// other value is an envelope object with a type tag, a reference id on
// object-identity kinds, and a kind-specific payload:
//
//	{"$sigil": "date", "$ref": "1", "value": "2020-06-01T12:00:00Z"}
//	{"$sigil": "ref", "$ref": "1"}
//
// The reserved key names are configurable (see Options and wire.Syntax)
// but must be constant per deployment.
//
// # Errors
//
// Encoding and decoding are deterministic pure transforms: a failure is a
// property of the input and recurs identically on retry, so nothing is
// retried and no partial result is ever returned. See UnsupportedValueError,
// RefResolutionError, MalformedDocumentError and DepthExceededError.
//
// Callable values and weak collections are rejected, never approximated.
// Reconstructing functions from source text embedded in a document would
// mean evaluating untrusted input and is deliberately not part of this
// package.
package sigil
