// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/icza/bitio"
)

// Unpack reverses Pack: it expands the octets after the padding count into bits, most significant first, and
// drops the trailing padding.  An empty bitstream, or one holding only a zero padding octet, yields no bits;
// a padding count larger than the payload is ErrPaddingOverflow.
func Unpack(data []byte) (Bits, error) {
	if len(data) == 0 {
		return "", nil
	}

	padding := int(data[0])
	if padding > maxPadding {
		return "", fmt.Errorf("%w: %d", ErrInvalidPadding, padding)
	}

	payloadBits := 8 * (len(data) - 1)
	if padding > payloadBits {
		return "", fmt.Errorf("%w: %d padding bits, %d payload bits", ErrPaddingOverflow, padding, payloadBits)
	}

	want := payloadBits - padding
	out := make([]byte, want)
	brd := bitio.NewReader(bytes.NewReader(data[1:]))
	for i := 0; i < want; i++ {
		bit, err := brd.ReadBool()
		if err != nil {
			return "", err
		}
		if bit {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}

	log.Debugf("unpacked %d octets into %d bits, padding %d", len(data)-1, want, padding)
	return Bits(out), nil
}

// Decoder holds state for one decoding pass, matching bits against codewords as they arrive.  Because the
// codewords of a CodeTable are prefix-free, the first codeword matched is the only possible one.
type Decoder struct {
	codes     *CodeTable
	candidate strings.Builder
}

// NewDecoder constructs a decoder for the given code table.
func NewDecoder(codes *CodeTable) *Decoder {
	return &Decoder{codes: codes}
}

// Feed appends bits to the pending candidate codeword and returns the symbols completed along the way.  If a
// bit is neither '0' nor '1', the symbols completed before it are returned together with ErrInvalidBit.
func (dec *Decoder) Feed(bits Bits) ([]Symbol, error) {
	var out []Symbol
	for i := 0; i < len(bits); i++ {
		bit := bits[i]
		if bit != '0' && bit != '1' {
			return out, fmt.Errorf("%w: %q at offset %d", ErrInvalidBit, bit, i)
		}

		dec.candidate.WriteByte(bit)
		if s, ok := dec.codes.Symbol(Code(dec.candidate.String())); ok {
			out = append(out, s)
			dec.candidate.Reset()
		}
	}
	return out, nil
}

// Aligned returns true iff every bit fed so far has been consumed by a complete codeword.
func (dec *Decoder) Aligned() bool {
	return dec.candidate.Len() == 0
}

// Residual returns the bits fed since the last complete codeword.
func (dec *Decoder) Residual() Bits {
	return Bits(dec.candidate.String())
}

// Finish ends the pass.  It returns a ResidualBits warning if unmatched bits remain, and nil otherwise.
func (dec *Decoder) Finish() *Warning {
	if dec.Aligned() {
		return nil
	}
	residual := dec.Residual()
	dec.candidate.Reset()
	return warn(ResidualBits, 0, "%d unmatched bits %s", residual.Len(), residual)
}

// Decode recovers the symbols encoded in bits.  Trailing bits that match no codeword are reported as a
// ResidualBits warning; the symbols before them are still returned.  An empty table is ErrEmptyCodeTable.
func Decode(bits Bits, codes *CodeTable) ([]Symbol, []*Warning, error) {
	if codes.Len() == 0 {
		return nil, nil, ErrEmptyCodeTable
	}

	dec := NewDecoder(codes)
	symbols, err := dec.Feed(bits)
	if err != nil {
		return symbols, nil, err
	}

	var warnings []*Warning
	if w := dec.Finish(); w != nil {
		warnings = append(warnings, w)
	}
	return symbols, warnings, nil
}
