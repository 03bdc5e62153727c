// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

// maxPadding is the largest padding count a packed bitstream can carry.
const maxPadding = 7

// Encode concatenates the codewords of symbols.  A symbol with no codeword contributes no bits; one
// MissingCodeForSymbol warning is returned per distinct such symbol.
func Encode(symbols []Symbol, codes *CodeTable) (Bits, []*Warning) {
	var sb strings.Builder
	var warnings []*Warning
	var missing map[Symbol]bool

	for _, s := range symbols {
		code, ok := codes.Code(s)
		if !ok {
			if !missing[s] {
				if missing == nil {
					missing = make(map[Symbol]bool)
				}
				missing[s] = true
				warnings = append(warnings, warn(MissingCodeForSymbol, 0, "symbol %q skipped", rune(s)))
			}
			continue
		}
		sb.WriteString(string(code))
	}
	return Bits(sb.String()), warnings
}

// Padding returns the number of zero bits needed to bring n bits to an octet boundary.
func Padding(n int) int {
	return (8 - n%8) % 8
}

// Pack converts bits into a packed bitstream: one octet holding the padding count P, then the bits most
// significant first, with P zero bits appended to fill the last octet.
func Pack(bits Bits) ([]byte, error) {
	padding := Padding(bits.Len())

	var out bytes.Buffer
	out.Grow(1 + (bits.Len()+padding)/8)
	out.WriteByte(byte(padding))

	bwr := bitio.NewWriter(&out)
	for i := 0; i < len(bits); i++ {
		var bit bool
		switch bits[i] {
		case '0':
		case '1':
			bit = true
		default:
			return nil, fmt.Errorf("%w: %q at offset %d", ErrInvalidBit, bits[i], i)
		}
		if err := bwr.WriteBool(bit); err != nil {
			return nil, err
		}
	}

	// Close writes the final partial octet, zero-filled.
	if err := bwr.Close(); err != nil {
		return nil, err
	}

	log.Debugf("packed %d bits into %d octets, padding %d", bits.Len(), out.Len()-1, padding)
	return out.Bytes(), nil
}
