// Package desc implements the reader and writer for the %HEADER%/blank-line
// text format used by the desc, depends and files members of a repository
// index archive.
package desc

import (
	"bufio"
	"bytes"
	"fmt"

	"github.com/pkgrepose/repose/internal/pkgmeta"
)

type parserState int

const (
	stateExpectHeader parserState = iota
	stateInSection
)

// Parse reads a full desc-format text blob and returns the accumulated
// metadata, keyed by recognized Entry. Unknown headers are skipped: their
// value lines are discarded without error. A value line arriving before
// any header, or after a blank line and before the next header, is a parse
// error. A line that is not a well-formed header is read as a value line.
func Parse(data []byte) (map[pkgmeta.Entry]pkgmeta.Metadata, error) {
	values := make(map[pkgmeta.Entry][]string)

	state := stateExpectHeader
	var current pkgmeta.Entry
	var skipping bool

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			state = stateExpectHeader
			skipping = false
			continue
		}

		if isHeaderLine(line) {
			entry, ok := pkgmeta.EntryForHeader(line[1 : len(line)-1])
			if !ok {
				skipping = true
				state = stateInSection
				continue
			}
			current = entry
			skipping = false
			state = stateInSection
			continue
		}

		switch state {
		case stateExpectHeader:
			return nil, fmt.Errorf("desc: value line before any header: %q", line)
		case stateInSection:
			if skipping {
				continue
			}
			values[current] = append(values[current], line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("desc: %w", err)
	}

	out := make(map[pkgmeta.Entry]pkgmeta.Metadata, len(values))
	for entry, lines := range values {
		m, err := pkgmeta.FromValues(entry, lines)
		if err != nil {
			return nil, err
		}
		out[entry] = m
	}
	return out, nil
}

func isHeaderLine(line string) bool {
	if len(line) < 3 || line[0] != '%' || line[len(line)-1] != '%' {
		return false
	}
	for i := 1; i < len(line)-1; i++ {
		c := line[i]
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
