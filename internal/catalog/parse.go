// Package catalog reads railway catalogs from their line-based text format:
//
//	<target length>
//	<terminal>[,<terminal>...]
//	<start>,<end>,<length>,<price>
//	...
//
// Connectors are single printable characters; numbers are non-negative
// decimal integers that fit in 64 bits.
package catalog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-railway/internal/assemble"
)

// Line numbers of the fixed header lines.
const (
	lineTarget    = 1
	lineTerminals = 2
	firstSegment  = 3
)

// separator splits fields on every line.
const separator = ","

// segmentFields is the number of fields on a segment line.
const segmentFields = 4

// MaxLineBytes bounds a single catalog line.
const MaxLineBytes = 1 << 20

// Parse reads a catalog from r.
//
// Errors: ErrEmptyInput when r has no first line, *InvalidLineError
// (wrapping ErrInvalidInput) for the first malformed line, or the reader's
// own error.
func Parse(r io.Reader) (assemble.Catalog, error) {
	var cat assemble.Catalog

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
	lineNum := 0
	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNum++
		return strings.TrimSpace(scanner.Text()), true
	}
	readErr := func() error {
		err := scanner.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			return invalidLine(lineNum+1, "line longer than %d bytes", MaxLineBytes)
		}
		return fmt.Errorf("failed to read catalog: %w", err)
	}

	line, ok := next()
	if !ok {
		if scanner.Err() != nil {
			return cat, readErr()
		}
		return cat, ErrEmptyInput
	}
	target, err := parseNumber(line)
	if err != nil {
		return cat, invalidLine(lineTarget, "target length: %v", err)
	}
	cat.TargetLength = target

	line, ok = next()
	if !ok {
		if scanner.Err() != nil {
			return cat, readErr()
		}
		return cat, invalidLine(lineTerminals, "missing terminal connectors")
	}
	for _, field := range strings.Split(line, separator) {
		conn, err := parseConnector(field)
		if err != nil {
			return cat, invalidLine(lineTerminals, "terminal connector: %v", err)
		}
		cat.Terminals = append(cat.Terminals, conn)
	}

	for {
		line, ok = next()
		if !ok {
			break
		}
		if line == "" {
			continue
		}
		s, err := parseSegment(line)
		if err != nil {
			return cat, invalidLine(lineNum, "%v", err)
		}
		cat.Segments = append(cat.Segments, s)
	}
	if scanner.Err() != nil {
		return cat, readErr()
	}

	if len(cat.Segments) == 0 {
		return cat, invalidLine(firstSegment, "no segments")
	}

	return cat, nil
}

// parseSegment parses "start,end,length,price".
func parseSegment(line string) (assemble.Segment, error) {
	fields := strings.Split(line, separator)
	if len(fields) != segmentFields {
		return assemble.Segment{}, fmt.Errorf("want %d fields, got %d", segmentFields, len(fields))
	}

	start, err := parseConnector(fields[0])
	if err != nil {
		return assemble.Segment{}, fmt.Errorf("start connector: %w", err)
	}
	end, err := parseConnector(fields[1])
	if err != nil {
		return assemble.Segment{}, fmt.Errorf("end connector: %w", err)
	}
	length, err := parseNumber(fields[2])
	if err != nil {
		return assemble.Segment{}, fmt.Errorf("length: %w", err)
	}
	price, err := parseNumber(fields[3])
	if err != nil {
		return assemble.Segment{}, fmt.Errorf("price: %w", err)
	}

	return assemble.Segment{Start: start, End: end, Length: length, Price: price}, nil
}

// parseConnector accepts exactly one printable, non-space character.
func parseConnector(field string) (assemble.Connector, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return "", fmt.Errorf("empty")
	}
	r, size := utf8.DecodeRuneInString(field)
	if size != len(field) {
		return "", fmt.Errorf("%q is not a single character", field)
	}
	if r == utf8.RuneError || !unicode.IsPrint(r) || unicode.IsSpace(r) {
		return "", fmt.Errorf("%q is not printable", field)
	}
	return assemble.Connector(field), nil
}

// parseNumber accepts a non-empty run of ASCII digits fitting uint64.
func parseNumber(field string) (uint64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, fmt.Errorf("empty")
	}
	for _, r := range field {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a non-negative integer", field)
		}
	}
	n, err := strconv.ParseUint(field, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is out of range", field)
	}
	return n, nil
}
