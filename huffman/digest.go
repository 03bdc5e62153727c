// Copyright © 2015 Drake Wilson.  Copying, distribution, and modification of this software is governed by
// the MIT-style license in the file ../LICENSE.md.

package huffman

import (
	"encoding/hex"
	"strconv"

	"github.com/dchest/skein"
)

const fingerprintSize = 32

// Fingerprint returns a hex Skein-256 digest of the table's symbol/codeword pairs taken in codeword order.
// Frequencies do not take part, so a table read back from its serialized form has the same fingerprint as
// the table it was written from.
func (ct *CodeTable) Fingerprint() string {
	h := skein.NewHash(fingerprintSize)
	var scratch []byte
	for _, entry := range ct.Entries() {
		scratch = strconv.AppendInt(scratch[:0], int64(entry.Symbol), 10)
		scratch = append(scratch, ':')
		scratch = append(scratch, string(entry.Code)...)
		scratch = append(scratch, '\n')
		h.Write(scratch)
	}
	return hex.EncodeToString(h.Sum(nil))
}
