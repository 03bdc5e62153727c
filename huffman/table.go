// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Serialized code table format, one entry per line in descending frequency order:
//
//	<symbol> TAB <frequency> TAB <code>
//
// followed by a summary line "总码长：<N>位" giving the total encoded length in bits.  The summary line is
// informational; readers skip it, as well as lines beginning with "total bit length".
//
// Symbols that whitespace splitting would lose are escaped: \s space, \t tab, \n newline, \r carriage
// return, \\ backslash, and \uXXXX or \UXXXXXXXX for any other space or control code point.
const (
	summaryPrefix        = "总码长："
	summarySuffix        = "位"
	summaryMarker        = "总码长"
	summaryMarkerEnglish = "total bit length"
)

// WriteTable writes the code table for an input with the given frequencies.
func WriteTable(w io.Writer, freq FrequencyTable, codes *CodeTable) error {
	bw := bufio.NewWriter(w)

	total := 0
	for _, entry := range freq.Sorted() {
		code, ok := codes.Code(entry.Symbol)
		if !ok {
			return fmt.Errorf("%w: no code for symbol %q", ErrCodeTableInconsistent, rune(entry.Symbol))
		}
		total += entry.Count * code.Len()

		bw.WriteString(escapeSymbol(entry.Symbol))
		bw.WriteByte('\t')
		bw.WriteString(strconv.Itoa(entry.Count))
		bw.WriteByte('\t')
		bw.WriteString(string(code))
		bw.WriteByte('\n')
	}
	fmt.Fprintf(bw, "%s%d%s", summaryPrefix, total, summarySuffix)

	return bw.Flush()
}

// FormatTable returns the serialized code table as a string.
func FormatTable(freq FrequencyTable, codes *CodeTable) (string, error) {
	var sb strings.Builder
	if err := WriteTable(&sb, freq, codes); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// ReadTable parses a serialized code table.  Frequencies are ignored.  Lines that cannot be parsed are
// skipped with a MalformedCodeTableLine warning; a later line reusing a symbol or code replaces the earlier
// entry with a DuplicateCodeTableEntry warning.  If the result is not prefix-free an InconsistentCodeTable
// warning is returned alongside it.  ReadTable fails with ErrEmptyCodeTable only if no entry was valid.
func ReadTable(r io.Reader) (*CodeTable, []*Warning, error) {
	ct := newCodeTable(0)
	var warnings []*Warning

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || isSummaryLine(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 3 {
			warnings = append(warnings, warn(MalformedCodeTableLine, lineNo,
				"expected 3 fields, got %d in %q", len(fields), line))
			continue
		}

		s, ok := unescapeSymbol(fields[0])
		if !ok {
			warnings = append(warnings, warn(MalformedCodeTableLine, lineNo,
				"symbol field %q is not a single character", fields[0]))
			continue
		}

		code := Code(fields[2])
		if !code.valid() {
			warnings = append(warnings, warn(MalformedCodeTableLine, lineNo,
				"code %q is not a bit string", fields[2]))
			continue
		}

		if old, dup := ct.codes[s]; dup {
			warnings = append(warnings, warn(DuplicateCodeTableEntry, lineNo,
				"symbol %q redefined from %s to %s", rune(s), old, code))
			delete(ct.symbols, old)
		}
		if old, dup := ct.symbols[code]; dup && old != s {
			warnings = append(warnings, warn(DuplicateCodeTableEntry, lineNo,
				"code %s moved from symbol %q to %q", code, rune(old), rune(s)))
			delete(ct.codes, old)
		}
		ct.put(s, code)
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, err
	}

	if ct.Len() == 0 {
		return nil, warnings, ErrEmptyCodeTable
	}
	if err := ct.Check(); err != nil {
		warnings = append(warnings, warn(InconsistentCodeTable, 0, "%v", err))
	}

	log.Debugf("read %d code table entries", ct.Len())
	return ct, warnings, nil
}

func isSummaryLine(line string) bool {
	return strings.HasPrefix(line, summaryMarker) ||
		strings.HasPrefix(strings.ToLower(line), summaryMarkerEnglish)
}

func escapeSymbol(s Symbol) string {
	switch r := rune(s); {
	case r == ' ':
		return `\s`
	case r == '\t':
		return `\t`
	case r == '\n':
		return `\n`
	case r == '\r':
		return `\r`
	case r == '\\':
		return `\\`
	case unicode.IsSpace(r) || unicode.IsControl(r) || !utf8.ValidRune(r):
		if r > 0xffff {
			return fmt.Sprintf(`\U%08X`, r)
		}
		return fmt.Sprintf(`\u%04X`, r)
	default:
		return string(r)
	}
}

func unescapeSymbol(field string) (Symbol, bool) {
	if utf8.RuneCountInString(field) == 1 {
		r, _ := utf8.DecodeRuneInString(field)
		return Symbol(r), true
	}

	switch field {
	case `\s`:
		return ' ', true
	case `\t`:
		return '\t', true
	case `\n`:
		return '\n', true
	case `\r`:
		return '\r', true
	case `\\`:
		return '\\', true
	}

	var digits int
	switch {
	case strings.HasPrefix(field, `\u`):
		digits = 4
	case strings.HasPrefix(field, `\U`):
		digits = 8
	default:
		return 0, false
	}
	if len(field) != 2+digits {
		return 0, false
	}
	v, err := strconv.ParseUint(field[2:], 16, 32)
	if err != nil {
		return 0, false
	}
	return Symbol(v), true
}
