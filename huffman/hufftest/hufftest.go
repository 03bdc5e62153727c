// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../../LICENSE.md.

/*
Package hufftest contains property checks shared by the tests of the huffman package and the packages built
on it.
*/
package hufftest

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/DbtSpring/Huffman-text-compressor/huffman"
)

// CheckCodeTable fails t unless codes is bijective, has no empty codeword, and is prefix-free.
func CheckCodeTable(t testing.TB, codes *huffman.CodeTable) {
	t.Helper()

	entries := codes.Entries()
	if len(entries) != codes.Len() {
		t.Fatalf("table lists %d entries but has length %d", len(entries), codes.Len())
	}

	for _, entry := range entries {
		if entry.Code.Len() == 0 {
			t.Errorf("symbol %q has an empty code", rune(entry.Symbol))
		}
		if back, ok := codes.Symbol(entry.Code); !ok || back != entry.Symbol {
			t.Errorf("code %s maps back to %q (present %v), want %q", entry.Code, rune(back), ok, rune(entry.Symbol))
		}
		if code, ok := codes.Code(entry.Symbol); !ok || code != entry.Code {
			t.Errorf("symbol %q maps to %s (present %v), want %s", rune(entry.Symbol), code, ok, entry.Code)
		}
	}

	for i, a := range entries {
		for j, b := range entries {
			if i != j && strings.HasPrefix(string(b.Code), string(a.Code)) {
				t.Errorf("code %s (%q) is a prefix of %s (%q)", a.Code, rune(a.Symbol), b.Code, rune(b.Symbol))
			}
		}
	}

	if err := codes.Check(); err != nil {
		t.Errorf("Check: %v", err)
	}
}

// CheckPacked fails t unless packed carries a padding count in [0, 7] and a whole number of payload octets
// that can hold the padding.
func CheckPacked(t testing.TB, packed []byte, bitLen int) {
	t.Helper()

	if len(packed) == 0 {
		t.Fatalf("packed bitstream has no padding octet")
	}
	padding := int(packed[0])
	if padding > 7 {
		t.Errorf("padding %d out of range", padding)
	}
	payloadBits := 8 * (len(packed) - 1)
	if payloadBits != bitLen+padding {
		t.Errorf("payload holds %d bits, want %d + %d padding", payloadBits, bitLen, padding)
	}
}

// CheckRoundTrip runs text through the whole in-memory pipeline, table serialization included, and fails t
// unless the same text comes back without warnings.
func CheckRoundTrip(t testing.TB, text string) {
	t.Helper()

	symbols := huffman.Symbols(text)
	freq := huffman.CountFrequencies(symbols)
	if got := freq.Total(); got != len(symbols) {
		t.Errorf("frequencies sum to %d, want %d", got, len(symbols))
	}

	root, err := huffman.BuildTree(freq)
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}
	codes := huffman.GenerateCodes(root)
	CheckCodeTable(t, codes)

	bits, warnings := huffman.Encode(symbols, codes)
	if len(warnings) != 0 {
		t.Errorf("Encode warnings: %v", warnings)
	}
	if bits.Len() != codes.TotalBits(freq) {
		t.Errorf("encoded %d bits, table totals %d", bits.Len(), codes.TotalBits(freq))
	}

	packed, err := huffman.Pack(bits)
	if err != nil {
		t.Fatalf("Pack: %v", err)
	}
	CheckPacked(t, packed, bits.Len())

	table, err := huffman.FormatTable(freq, codes)
	if err != nil {
		t.Fatalf("FormatTable: %v", err)
	}
	readCodes, warnings, err := huffman.ReadTable(strings.NewReader(table))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("ReadTable warnings: %v", warnings)
	}
	if readCodes.Fingerprint() != codes.Fingerprint() {
		t.Errorf("table read back differs from table written:\n%s", table)
	}

	unpacked, err := huffman.Unpack(packed)
	if err != nil {
		t.Fatalf("Unpack: %v", err)
	}
	if unpacked != bits {
		t.Fatalf("unpacked %s, want %s", unpacked.Binary(), bits.Binary())
	}

	decoded, warnings, err := huffman.Decode(unpacked, readCodes)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("Decode warnings: %v", warnings)
	}
	if got := huffman.Text(decoded); got != text {
		t.Fatalf("round trip gave %q, want %q", got, text)
	}
}

// RandomText returns n code points drawn from alphabet with a skewed distribution, so that trees come out
// unbalanced.
func RandomText(rng *rand.Rand, n int, alphabet []rune) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		// Squaring a uniform variate favors the front of the alphabet.
		u := rng.Float64()
		sb.WriteRune(alphabet[int(u*u*float64(len(alphabet)))])
	}
	return sb.String()
}
