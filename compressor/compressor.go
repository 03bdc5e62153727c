// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

/*
Package compressor ties the huffman coding engine to its two artifacts, the code table and the packed
bitstream, both in memory and on disk.

Compress produces both artifacts or neither.  CompressFile publishes the two files only after both have been
written in full, so a failed run never leaves a table without its bitstream or the reverse.
*/
package compressor

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/op/go-logging"

	"github.com/DbtSpring/Huffman-text-compressor/huffman"
)

var log = logging.MustGetLogger("compressor")

// LogModules lists the logging modules used by this package and the packages it drives.
var LogModules = append([]string{"compressor"}, huffman.LogModules...)

var (
	// ErrInvalidUTF8 indicates input text that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("compressor: input is not valid UTF-8")
)

// Compressor compresses and decompresses text.  It keeps no state between calls.
type Compressor struct {
	config Config
}

// New creates a Compressor with the given options.
func New(opts ...Option) *Compressor {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Compressor{config: cfg}
}

// Compressed holds the result of one compression.
type Compressed struct {
	Table  []byte // serialized code table
	Packed []byte // packed bitstream

	Symbols     int
	BitLength   int
	Frequencies huffman.FrequencyTable
	Codes       *huffman.CodeTable
	Warnings    []*huffman.Warning
}

// Decompressed holds the result of one decompression.
type Decompressed struct {
	Text      string
	BitLength int
	Codes     *huffman.CodeTable
	Warnings  []*huffman.Warning
}

// Compress encodes text.  Empty text fails with huffman.ErrEmptyAlphabet.
func (c *Compressor) Compress(text string) (*Compressed, error) {
	if !utf8.ValidString(text) {
		return nil, ErrInvalidUTF8
	}

	symbols := huffman.Symbols(text)
	log.Debugf("input: %d symbols", len(symbols))

	freq := huffman.CountFrequencies(symbols)
	log.Debugf("alphabet: %d distinct symbols", len(freq))

	root, err := huffman.BuildTree(freq)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	codes := huffman.GenerateCodes(root)

	var table bytes.Buffer
	if err := huffman.WriteTable(&table, freq, codes); err != nil {
		return nil, fmt.Errorf("compress: writing code table: %w", err)
	}

	bits, warnings := huffman.Encode(symbols, codes)
	packed, err := huffman.Pack(bits)
	if err != nil {
		return nil, fmt.Errorf("compress: packing: %w", err)
	}

	log.Infof("compressed %d symbols into %d bits (%d octets with padding octet), table %s",
		len(symbols), bits.Len(), len(packed), codes.Fingerprint())
	return &Compressed{
		Table:       table.Bytes(),
		Packed:      packed,
		Symbols:     len(symbols),
		BitLength:   bits.Len(),
		Frequencies: freq,
		Codes:       codes,
		Warnings:    warnings,
	}, nil
}

// Decompress decodes a packed bitstream with the code table it was produced with.  Anomalies in either
// artifact are returned as warnings; only a table with no valid entries or an unreadable bitstream fails.
func (c *Compressor) Decompress(table, packed []byte) (*Decompressed, error) {
	codes, warnings, err := huffman.ReadTable(bytes.NewReader(table))
	if err != nil {
		return nil, fmt.Errorf("decompress: reading code table: %w", err)
	}
	log.Debugf("code table: %d entries, fingerprint %s", codes.Len(), codes.Fingerprint())

	bits, err := huffman.Unpack(packed)
	if err != nil {
		return nil, fmt.Errorf("decompress: unpacking: %w", err)
	}
	log.Debugf("bitstream: %d bits", bits.Len())

	symbols, decodeWarnings, err := huffman.Decode(bits, codes)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	warnings = append(warnings, decodeWarnings...)

	log.Infof("decompressed %d bits into %d symbols", bits.Len(), len(symbols))
	return &Decompressed{
		Text:      huffman.Text(symbols),
		BitLength: bits.Len(),
		Codes:     codes,
		Warnings:  warnings,
	}, nil
}
