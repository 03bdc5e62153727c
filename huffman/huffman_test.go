// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman_test

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/DbtSpring/Huffman-text-compressor/huffman"
	"github.com/DbtSpring/Huffman-text-compressor/huffman/hufftest"
)

const (
	randSeed   = 0x5a025ca11825a5e7
	iterations = 25
)

func mustCodes(t *testing.T, text string) (huffman.FrequencyTable, *huffman.CodeTable) {
	t.Helper()
	freq := huffman.CountFrequencies(huffman.Symbols(text))
	root, err := huffman.BuildTree(freq)
	if err != nil {
		t.Fatalf("BuildTree(%q): %v", text, err)
	}
	return freq, huffman.GenerateCodes(root)
}

func TestCountFrequencies(t *testing.T) {
	freq := huffman.CountFrequencies(huffman.Symbols("abracadabra"))
	want := map[huffman.Symbol]int{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}
	if len(freq) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(freq), len(want))
	}
	for s, n := range want {
		if freq[s] != n {
			t.Errorf("freq[%q] = %d, want %d", rune(s), freq[s], n)
		}
	}
	if freq.Total() != 11 {
		t.Errorf("Total() = %d, want 11", freq.Total())
	}

	sorted := freq.Sorted()
	if sorted[0].Symbol != 'a' || sorted[1].Symbol != 'b' || sorted[2].Symbol != 'r' {
		t.Errorf("unexpected order %v", sorted)
	}

	if empty := huffman.CountFrequencies(nil); len(empty) != 0 || empty.Total() != 0 {
		t.Errorf("empty input gave %v", empty)
	}
}

func TestCountFrequenciesOrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	symbols := huffman.Symbols(hufftest.RandomText(rng, 500, []rune("abcdefg 中文")))
	freq := huffman.CountFrequencies(symbols)

	rng.Shuffle(len(symbols), func(i, j int) { symbols[i], symbols[j] = symbols[j], symbols[i] })
	shuffled := huffman.CountFrequencies(symbols)

	if len(freq) != len(shuffled) {
		t.Fatalf("shuffling changed the alphabet size")
	}
	for s, n := range freq {
		if shuffled[s] != n {
			t.Errorf("freq[%q]: %d before shuffle, %d after", rune(s), n, shuffled[s])
		}
	}
	if freq.Total() != len(symbols) {
		t.Errorf("Total() = %d, want %d", freq.Total(), len(symbols))
	}
}

func TestBuildTreeEmpty(t *testing.T) {
	root, err := huffman.BuildTree(huffman.FrequencyTable{})
	if !errors.Is(err, huffman.ErrEmptyAlphabet) {
		t.Fatalf("got %v, %v; want ErrEmptyAlphabet", root, err)
	}
}

func checkWeights(t *testing.T, node *huffman.Node) {
	if node.IsLeaf() {
		return
	}
	if node.Left() == nil || node.Right() == nil {
		t.Fatalf("internal node with weight %d lacks a child", node.Freq())
	}
	if sum := node.Left().Freq() + node.Right().Freq(); sum != node.Freq() {
		t.Errorf("node weight %d, children sum to %d", node.Freq(), sum)
	}
	checkWeights(t, node.Left())
	checkWeights(t, node.Right())
}

func TestBuildTreeWeights(t *testing.T) {
	freq, _ := mustCodes(t, "this is an example of a huffman tree")
	root, err := huffman.BuildTree(freq)
	if err != nil {
		t.Fatal(err)
	}
	if root.Freq() != freq.Total() {
		t.Errorf("root weight %d, want %d", root.Freq(), freq.Total())
	}
	checkWeights(t, root)
}

func TestBuildTreeTieBreak(t *testing.T) {
	// All weights equal: the two lowest symbols merge first, the lower one on the left.
	root, err := huffman.BuildTree(huffman.FrequencyTable{'c': 1, 'a': 1, 'b': 1})
	if err != nil {
		t.Fatal(err)
	}
	codes := huffman.GenerateCodes(root)
	want := map[huffman.Symbol]huffman.Code{'c': "0", 'a': "10", 'b': "11"}
	for s, code := range want {
		if got, _ := codes.Code(s); got != code {
			t.Errorf("code for %q = %s, want %s", rune(s), got, code)
		}
	}
}

func TestSingleSymbolAlphabet(t *testing.T) {
	freq, codes := mustCodes(t, "zzzzzzzzz")
	root, _ := huffman.BuildTree(freq)
	if !root.IsLeaf() || root.Symbol() != 'z' || root.Freq() != 9 {
		t.Fatalf("root is not the single leaf: %+v", root)
	}
	if code, ok := codes.Code('z'); !ok || code != "0" {
		t.Fatalf("single symbol got code %q, want \"0\"", code)
	}

	bits, _ := huffman.Encode(huffman.Symbols("zzzzzzzzz"), codes)
	packed, err := huffman.Pack(bits)
	if err != nil {
		t.Fatal(err)
	}
	if want := []byte{7, 0, 0}; !bytes.Equal(packed, want) {
		t.Errorf("packed %08b, want %08b", packed, want)
	}
	hufftest.CheckRoundTrip(t, "zzzzzzzzz")
	hufftest.CheckRoundTrip(t, "z")
}

func TestAab(t *testing.T) {
	freq, codes := mustCodes(t, "aab")
	if freq['a'] != 2 || freq['b'] != 1 {
		t.Fatalf("frequencies %v", freq)
	}
	hufftest.CheckCodeTable(t, codes)

	a, _ := codes.Code('a')
	b, _ := codes.Code('b')
	if a.Len() != 1 || b.Len() != 1 || a == b {
		t.Fatalf("two-symbol alphabet got codes %s and %s", a, b)
	}

	bits, warnings := huffman.Encode(huffman.Symbols("aab"), codes)
	if len(warnings) != 0 {
		t.Fatalf("warnings: %v", warnings)
	}
	if want := a + a + b; bits != want {
		t.Fatalf("encoded %s, want %s", bits, want)
	}

	packed, err := huffman.Pack(bits)
	if err != nil {
		t.Fatal(err)
	}
	var octet byte
	for i := 0; i < bits.Len(); i++ {
		if bits[i] == '1' {
			octet |= 0x80 >> uint(i)
		}
	}
	if want := []byte{5, octet}; !bytes.Equal(packed, want) {
		t.Errorf("packed %08b, want %08b", packed, want)
	}

	hufftest.CheckRoundTrip(t, "aab")
}

func TestDeterministicTable(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	freq, codes := mustCodes(t, text)
	first, err := huffman.FormatTable(freq, codes)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		freq, codes := mustCodes(t, text)
		again, err := huffman.FormatTable(freq, codes)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("run %d produced a different table:\n%s\nvs\n%s", i, again, first)
		}
	}
}

func TestRandomRoundTrips(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	alphabets := [][]rune{
		[]rune("ab"),
		[]rune("abcdefghijklmnopqrstuvwxyz"),
		[]rune(" \t\n\r\\总码长位：0123"),
		[]rune("哈夫曼编码压缩解压，。😀\u00a0\x00"),
	}

	for iteration := 0; iteration < iterations; iteration++ {
		alphabet := alphabets[iteration%len(alphabets)]
		text := hufftest.RandomText(rng, 1+rng.Intn(400), alphabet)
		t.Logf("iteration %d: %d symbols", iteration, len([]rune(text)))
		hufftest.CheckRoundTrip(t, text)
	}
}

func TestSkewedAlphabet(t *testing.T) {
	// Fibonacci weights give the deepest possible tree.
	freq := make(huffman.FrequencyTable)
	a, b := 1, 1
	for i := 0; i < 40; i++ {
		freq[huffman.Symbol('A'+i)] = a
		a, b = b, a+b
	}
	root, err := huffman.BuildTree(freq)
	if err != nil {
		t.Fatal(err)
	}
	codes := huffman.GenerateCodes(root)
	hufftest.CheckCodeTable(t, codes)

	longest := 0
	for _, entry := range codes.Entries() {
		if entry.Code.Len() > longest {
			longest = entry.Code.Len()
		}
	}
	if longest != len(freq)-1 {
		t.Errorf("longest code %d bits, want %d", longest, len(freq)-1)
	}
}

func TestRandomCodings(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))

	for iteration := 0; iteration < iterations; iteration++ {
		freq := make(huffman.FrequencyTable)
		for i, n := 0, 1+rng.Intn(300); i < n; i++ {
			freq[huffman.Symbol(0x20+rng.Intn(0x3000))] = 1 + rng.Intn(1000)
		}
		root, err := huffman.BuildTree(freq)
		if err != nil {
			t.Fatalf("coding #%d: %v", iteration, err)
		}
		codes := huffman.GenerateCodes(root)
		if codes.Len() != len(freq) {
			t.Fatalf("coding #%d has %d codes for %d symbols", iteration, codes.Len(), len(freq))
		}
		hufftest.CheckCodeTable(t, codes)

		rebuilt, err := huffman.NewCodeTable(tableMap(codes))
		if err != nil {
			t.Errorf("coding #%d rejected: %v", iteration, err)
			continue
		}
		if rebuilt.Fingerprint() != codes.Fingerprint() {
			t.Errorf("coding #%d changed fingerprint when rebuilt", iteration)
		}
	}
}

func tableMap(codes *huffman.CodeTable) map[huffman.Symbol]huffman.Code {
	m := make(map[huffman.Symbol]huffman.Code)
	for _, entry := range codes.Entries() {
		m[entry.Symbol] = entry.Code
	}
	return m
}

func TestNewCodeTableRejects(t *testing.T) {
	tests := []struct {
		name  string
		codes map[huffman.Symbol]huffman.Code
		want  error
	}{
		{"prefix", map[huffman.Symbol]huffman.Code{'a': "0", 'b': "01"}, huffman.ErrCodeTableInconsistent},
		{"duplicate", map[huffman.Symbol]huffman.Code{'a': "10", 'b': "10"}, huffman.ErrCodeTableInconsistent},
		{"empty", map[huffman.Symbol]huffman.Code{'a': ""}, huffman.ErrCodeEmpty},
		{"not binary", map[huffman.Symbol]huffman.Code{'a': "02"}, huffman.ErrInvalidBit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := huffman.NewCodeTable(tt.codes)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	_, codes := mustCodes(t, "fingerprint")
	_, same := mustCodes(t, "fingerprint")
	_, other := mustCodes(t, "fingerprints")

	fp := codes.Fingerprint()
	if len(fp) != 64 {
		t.Errorf("fingerprint %q is not 32 hex octets", fp)
	}
	if fp != same.Fingerprint() {
		t.Errorf("equal tables gave different fingerprints")
	}
	if fp == other.Fingerprint() {
		t.Errorf("different tables gave the same fingerprint")
	}
}

func TestEncodeMissingCode(t *testing.T) {
	codes, err := huffman.NewCodeTable(map[huffman.Symbol]huffman.Code{'a': "0", 'b': "1"})
	if err != nil {
		t.Fatal(err)
	}
	bits, warnings := huffman.Encode(huffman.Symbols("abxaxb"), codes)
	if bits != "0101" {
		t.Errorf("encoded %s, want 0101", bits)
	}
	if len(warnings) != 1 || warnings[0].Kind != huffman.MissingCodeForSymbol {
		t.Errorf("warnings %v, want one MissingCodeForSymbol", warnings)
	}
}

func TestWriteTable(t *testing.T) {
	freq, codes := mustCodes(t, "aab")
	table, err := huffman.FormatTable(freq, codes)
	if err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(table, "\n")
	if len(lines) != 3 {
		t.Fatalf("table has %d lines:\n%s", len(lines), table)
	}
	a, _ := codes.Code('a')
	b, _ := codes.Code('b')
	if want := "a\t2\t" + string(a); lines[0] != want {
		t.Errorf("line 1 = %q, want %q", lines[0], want)
	}
	if want := "b\t1\t" + string(b); lines[1] != want {
		t.Errorf("line 2 = %q, want %q", lines[1], want)
	}
	if want := "总码长：3位"; lines[2] != want {
		t.Errorf("summary = %q, want %q", lines[2], want)
	}
}

func TestWriteTableEscapes(t *testing.T) {
	freq, codes := mustCodes(t, "a b\tc\\\n\n")
	table, err := huffman.FormatTable(freq, codes)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"\\n\t2\t", "\\s\t1\t", "\\t\t1\t", "\\\\\t1\t"} {
		if !strings.Contains(table, want) {
			t.Errorf("table lacks %q:\n%s", want, table)
		}
	}
}

func TestReadTableMalformedLine(t *testing.T) {
	table := "a\t2\t0\nx\t\nb\t1\t1\n\n总码长：3位"
	codes, warnings, err := huffman.ReadTable(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	if codes.Len() != 2 {
		t.Errorf("got %d entries, want 2", codes.Len())
	}
	if len(warnings) != 1 || warnings[0].Kind != huffman.MalformedCodeTableLine || warnings[0].Line != 2 {
		t.Fatalf("warnings %v, want one MalformedCodeTableLine at line 2", warnings)
	}

	decoded, warnings, err := huffman.Decode("001", codes)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("Decode: %v %v", warnings, err)
	}
	if got := huffman.Text(decoded); got != "aab" {
		t.Errorf("decoded %q, want aab", got)
	}
}

func TestReadTableSkipsBadFields(t *testing.T) {
	table := strings.Join([]string{
		"ab 3 0",
		"c 3 01x",
		"d   4   10",
		"\\ 1 11",
		"total bit length: 10 bits",
	}, "\n")
	codes, warnings, err := huffman.ReadTable(strings.NewReader(table))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 2 {
		t.Errorf("warnings %v, want 2", warnings)
	}
	if code, _ := codes.Code('d'); code != "10" {
		t.Errorf("d = %q, want 10", code)
	}
	if code, _ := codes.Code('\\'); code != "11" {
		t.Errorf("lone backslash = %q, want 11", code)
	}
}

func TestReadTableEmpty(t *testing.T) {
	_, warnings, err := huffman.ReadTable(strings.NewReader("x\t\n\n总码长：0位\n"))
	if !errors.Is(err, huffman.ErrEmptyCodeTable) {
		t.Fatalf("got %v, want ErrEmptyCodeTable", err)
	}
	if len(warnings) != 1 {
		t.Errorf("warnings %v, want 1", warnings)
	}
}

func TestReadTableDuplicates(t *testing.T) {
	codes, warnings, err := huffman.ReadTable(strings.NewReader("a 1 0\nb 1 1\na 1 1\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings %v, want 2", warnings)
	}
	for _, w := range warnings {
		if w.Kind != huffman.DuplicateCodeTableEntry || w.Line != 3 {
			t.Errorf("unexpected warning %v", w)
		}
	}
	if codes.Len() != 1 {
		t.Errorf("got %d entries, want 1", codes.Len())
	}
	if s, _ := codes.Symbol("1"); s != 'a' {
		t.Errorf("code 1 decodes to %q, want a", rune(s))
	}
}

func TestReadTableInconsistent(t *testing.T) {
	codes, warnings, err := huffman.ReadTable(strings.NewReader("a 1 0\nb 1 01\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Kind != huffman.InconsistentCodeTable {
		t.Fatalf("warnings %v, want one InconsistentCodeTable", warnings)
	}
	if codes.Len() != 2 {
		t.Errorf("got %d entries, want 2", codes.Len())
	}
}

func TestPack(t *testing.T) {
	tests := []struct {
		bits huffman.Bits
		want []byte
	}{
		{"", []byte{0}},
		{"1", []byte{7, 0x80}},
		{"101", []byte{5, 0xa0}},
		{"11111111", []byte{0, 0xff}},
		{"000000011", []byte{7, 0x01, 0x80}},
	}
	for _, tt := range tests {
		packed, err := huffman.Pack(tt.bits)
		if err != nil {
			t.Errorf("Pack(%s): %v", tt.bits, err)
			continue
		}
		if !bytes.Equal(packed, tt.want) {
			t.Errorf("Pack(%s) = %08b, want %08b", tt.bits, packed, tt.want)
		}
		unpacked, err := huffman.Unpack(packed)
		if err != nil || unpacked != tt.bits {
			t.Errorf("Unpack(%08b) = %s, %v; want %s", packed, unpacked, err, tt.bits)
		}
	}
}

func TestPackPaddingBound(t *testing.T) {
	rng := rand.New(rand.NewSource(randSeed))
	for n := 0; n < 70; n++ {
		raw := make([]byte, n)
		for i := range raw {
			raw[i] = '0' + byte(rng.Intn(2))
		}
		bits := huffman.Bits(raw)
		packed, err := huffman.Pack(bits)
		if err != nil {
			t.Fatal(err)
		}
		hufftest.CheckPacked(t, packed, n)
		if int(packed[0]) != huffman.Padding(n) {
			t.Errorf("%d bits: padding %d, want %d", n, packed[0], huffman.Padding(n))
		}
	}
}

func TestPackInvalidBit(t *testing.T) {
	if _, err := huffman.Pack("0120"); !errors.Is(err, huffman.ErrInvalidBit) {
		t.Errorf("got %v, want ErrInvalidBit", err)
	}
}

func TestUnpackGuards(t *testing.T) {
	tests := []struct {
		data []byte
		want error
	}{
		{[]byte{8, 0xff}, huffman.ErrInvalidPadding},
		{[]byte{0xff}, huffman.ErrInvalidPadding},
		{[]byte{3}, huffman.ErrPaddingOverflow},
	}
	for _, tt := range tests {
		if _, err := huffman.Unpack(tt.data); !errors.Is(err, tt.want) {
			t.Errorf("Unpack(%v): got %v, want %v", tt.data, err, tt.want)
		}
	}

	for _, data := range [][]byte{nil, {0}} {
		bits, err := huffman.Unpack(data)
		if err != nil || bits != "" {
			t.Errorf("Unpack(%v) = %q, %v; want empty", data, bits, err)
		}
	}
}

func threeCodes(t *testing.T) *huffman.CodeTable {
	codes, err := huffman.NewCodeTable(map[huffman.Symbol]huffman.Code{'a': "0", 'b': "10", 'c': "11"})
	if err != nil {
		t.Fatal(err)
	}
	return codes
}

func TestDecodeResidual(t *testing.T) {
	decoded, warnings, err := huffman.Decode("01101", threeCodes(t))
	if err != nil {
		t.Fatal(err)
	}
	if got := huffman.Text(decoded); got != "aca" {
		t.Errorf("decoded %q, want aca", got)
	}
	if len(warnings) != 1 || warnings[0].Kind != huffman.ResidualBits {
		t.Fatalf("warnings %v, want one ResidualBits", warnings)
	}
	if !strings.Contains(warnings[0].Error(), "1 unmatched bits 1") {
		t.Errorf("warning text %q", warnings[0].Error())
	}
}

func TestDecodeInvalid(t *testing.T) {
	decoded, _, err := huffman.Decode("010x", threeCodes(t))
	if !errors.Is(err, huffman.ErrInvalidBit) {
		t.Fatalf("got %v, want ErrInvalidBit", err)
	}
	if got := huffman.Text(decoded); got != "ab" {
		t.Errorf("decoded %q before the bad bit, want ab", got)
	}

	empty, err := huffman.NewCodeTable(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := huffman.Decode("0", empty); !errors.Is(err, huffman.ErrEmptyCodeTable) {
		t.Errorf("got %v, want ErrEmptyCodeTable", err)
	}
}

func TestDecoderIncremental(t *testing.T) {
	dec := huffman.NewDecoder(threeCodes(t))
	var out []huffman.Symbol
	bits := huffman.Bits("10011101")
	for i := 0; i < bits.Len(); i++ {
		symbols, err := dec.Feed(bits[i : i+1])
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, symbols...)
	}
	if got := huffman.Text(out); got != "bacb" {
		t.Errorf("decoded %q, want bacb", got)
	}
	if dec.Aligned() {
		t.Errorf("decoder aligned with pending bit %s", dec.Residual())
	}
	if w := dec.Finish(); w == nil || w.Kind != huffman.ResidualBits {
		t.Errorf("Finish() = %v, want ResidualBits", w)
	}
	if !dec.Aligned() || dec.Finish() != nil {
		t.Errorf("decoder not reset by Finish")
	}
}
