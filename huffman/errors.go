// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyAlphabet is returned when a tree is requested for a frequency table with no symbols.
	ErrEmptyAlphabet = errors.New("huffman: empty alphabet")
	// ErrEmptyCodeTable is returned when a serialized code table yields no valid entries.
	ErrEmptyCodeTable = errors.New("huffman: no valid entries in code table")

	ErrCodeTableInconsistent = errors.New("huffman: inconsistent code table")
	ErrCodeEmpty             = errors.New("huffman: empty code specified")

	// ErrInvalidBit is returned when a bit sequence contains a character other than '0' or '1'.
	ErrInvalidBit = errors.New("huffman: invalid bit character")
	// ErrInvalidPadding is returned when the padding byte of a packed bitstream is greater than 7.
	ErrInvalidPadding = errors.New("huffman: padding count out of range")
	// ErrPaddingOverflow is returned when the padding count exceeds the payload bit length.
	ErrPaddingOverflow = errors.New("huffman: padding exceeds payload")
)

// WarningKind says which data-quality anomaly a Warning describes.
type WarningKind int

const (
	WarningUnknown WarningKind = iota
	MalformedCodeTableLine
	DuplicateCodeTableEntry
	InconsistentCodeTable
	MissingCodeForSymbol
	ResidualBits
)

func (kind WarningKind) String() string {
	switch kind {
	case MalformedCodeTableLine:
		return "malformed code table line"
	case DuplicateCodeTableEntry:
		return "duplicate code table entry"
	case InconsistentCodeTable:
		return "inconsistent code table"
	case MissingCodeForSymbol:
		return "missing code for symbol"
	case ResidualBits:
		return "residual bits"
	default:
		return "???"
	}
}

// Warning describes a recoverable anomaly.  Line is the 1-based line of the code table it refers to, or 0
// when it does not refer to a line.
type Warning struct {
	Kind   WarningKind
	Line   int
	Detail string
}

func (w *Warning) Error() string {
	str := "huffman: " + w.Kind.String()
	if w.Line > 0 {
		str += fmt.Sprintf(" at line %d", w.Line)
	}
	if w.Detail != "" {
		str += ": " + w.Detail
	}
	return str
}

func warn(kind WarningKind, line int, detailFmt string, detailArgs ...interface{}) *Warning {
	w := &Warning{
		Kind:   kind,
		Line:   line,
		Detail: fmt.Sprintf(detailFmt, detailArgs...),
	}
	log.Warningf("%v", w)
	return w
}
