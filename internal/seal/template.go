package seal

import (
	"bytes"
	"fmt"
	"strconv"
)

// xrefWindow is how far from the end the importer looks for startxref.
const xrefWindow = 1500

const pdfSpace = " \t\r\n\f\x00"

// CheckTemplate verifies the file structure the page importer depends on:
// a PDF header, a trailing %%EOF, and a startxref offset inside the file
// that points at a classic cross-reference table. The importer scans for
// startxref until it finds one, so a truncated file never returns from it.
func CheckTemplate(data []byte) error {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return fmt.Errorf("%w: missing PDF header", ErrInvalidTemplate)
	}
	if !bytes.HasSuffix(bytes.TrimRight(data, pdfSpace), []byte("%%EOF")) {
		return fmt.Errorf("%w: missing %%%%EOF marker", ErrInvalidTemplate)
	}

	tail := data[max(0, len(data)-xrefWindow):]
	i := startxrefIndex(tail)
	if i < 0 {
		return fmt.Errorf("%w: no startxref in trailer", ErrInvalidTemplate)
	}

	fields := bytes.Fields(tail[i+len("startxref"):])
	if len(fields) == 0 {
		return fmt.Errorf("%w: startxref without offset", ErrInvalidTemplate)
	}
	offset, err := strconv.Atoi(string(fields[0]))
	if err != nil || offset < 0 || offset >= len(data) {
		return fmt.Errorf("%w: startxref offset %q out of range", ErrInvalidTemplate, fields[0])
	}

	if !bytes.HasPrefix(bytes.TrimLeft(data[offset:], pdfSpace), []byte("xref")) {
		return fmt.Errorf("%w: startxref does not point at an xref table", ErrInvalidTemplate)
	}
	return nil
}

// startxrefIndex finds the first startxref keyword that stands on its own,
// the same one the importer's tokenizer would stop at.
func startxrefIndex(tail []byte) int {
	keyword := []byte("startxref")
	for from := 0; ; {
		i := bytes.Index(tail[from:], keyword)
		if i < 0 {
			return -1
		}
		i += from
		if i == 0 || bytes.IndexByte([]byte(pdfSpace), tail[i-1]) >= 0 {
			return i
		}
		from = i + len(keyword)
	}
}
