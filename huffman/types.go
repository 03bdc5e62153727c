// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

/*
Package huffman implements plain (non-canonical) Huffman coding of text, one code point per symbol.

Compression runs CountFrequencies, BuildTree and GenerateCodes to obtain a CodeTable, then Encode and Pack to
produce the packed bitstream; WriteTable serializes the table next to it.  Decompression runs ReadTable,
Unpack and Decode.  A CodeTable is an immutable value threaded through these calls; nothing is kept between
runs.

Structural failures are returned as errors.  Data-quality anomalies (malformed table lines, residual bits,
symbols without a code) are returned as Warnings, logged, and do not stop the operation.
*/
package huffman

import (
	"strings"
	"unicode/utf8"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("huffman")

// LogModules lists the logging modules used by this package.
var LogModules = []string{
	"huffman",
}

// Symbol is one unit of the input alphabet: a single code point.
type Symbol rune

func (s Symbol) String() string {
	return string(rune(s))
}

// Symbols splits text into its code points.
func Symbols(text string) []Symbol {
	symbols := make([]Symbol, 0, utf8.RuneCountInString(text))
	for _, r := range text {
		symbols = append(symbols, Symbol(r))
	}
	return symbols
}

// Text joins symbols back into a string.
func Text(symbols []Symbol) string {
	var sb strings.Builder
	sb.Grow(len(symbols))
	for _, s := range symbols {
		sb.WriteRune(rune(s))
	}
	return sb.String()
}

// Bits is a bit sequence written as the characters '0' and '1', first bit first.
type Bits string

// Code is the codeword assigned to one symbol.
//
// Invariants for a code inside a CodeTable:
//   - len(code) > 0
//   - every character is '0' or '1'
type Code = Bits

// Len returns the number of bits.
func (bs Bits) Len() int {
	return len(bs)
}

// valid reports whether bs consists only of '0' and '1' characters.
func (bs Bits) valid() bool {
	for i := 0; i < len(bs); i++ {
		if bs[i] != '0' && bs[i] != '1' {
			return false
		}
	}
	return true
}

// hasPrefix reports whether prefix is a prefix of bs.
func (bs Bits) hasPrefix(prefix Bits) bool {
	return strings.HasPrefix(string(bs), string(prefix))
}

// Binary renders bs in octets separated by spaces, the way test logs and debug output show packed data.
func (bs Bits) Binary() string {
	var parts []string
	for i := 0; i < len(bs); i += 8 {
		end := i + 8
		if end > len(bs) {
			end = len(bs)
		}
		parts = append(parts, string(bs[i:end]))
	}
	return strings.Join(parts, " ")
}
