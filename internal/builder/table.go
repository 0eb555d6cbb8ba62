package builder

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single physical line of a source table.
const maxLineSize = 4 * 1024 * 1024

// SplitLine tokenizes one comma-separated record. A double quote toggles
// quoting and is dropped; a doubled quote inside a quoted section is a
// literal quote; commas inside quotes do not separate fields.
func SplitLine(line string) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			field.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}
	return append(fields, field.String())
}

// ReadTable reads a source table, dropping a leading UTF-8 BOM and the
// header row. Records whose quoted fields span several lines are joined
// before tokenizing. Blank lines are ignored.
func ReadTable(r io.Reader) ([][]string, error) {
	scanner := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var (
		rows    [][]string
		pending strings.Builder
		quotes  int
		header  = true
	)

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(line)
		quotes += strings.Count(line, `"`)
		if quotes%2 != 0 {
			continue // record continues on the next line
		}

		record := pending.String()
		pending.Reset()
		quotes = 0

		if header {
			header = false
			continue
		}
		if strings.TrimSpace(record) == "" {
			continue
		}
		rows = append(rows, SplitLine(record))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}

	// An unterminated quote at EOF still yields its record.
	if pending.Len() > 0 && !header {
		rows = append(rows, SplitLine(pending.String()))
	}
	return rows, nil
}
