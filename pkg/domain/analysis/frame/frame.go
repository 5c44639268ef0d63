package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Kind of a column: how its cells are interpreted.
type Kind string

const (
	Numeric Kind = "numeric"
	Text    Kind = "text"
)

// Frame is a fully materialized table: named columns over rows.
//
// Cells of numeric columns are parsed into float64; cells which cannot
// be parsed (and recognized NA tokens) are held as NaN, meaning "missing".
// Frames are read-only once built.
type Frame struct {
	names   []string
	kinds   map[string]Kind
	raw     [][]string
	numeric map[string][]float64
}

// tokens regarded as "no value here", compared case-insensitively.
var naTokens = map[string]struct{}{
	"": {}, "na": {}, "n/a": {}, "nan": {}, "null": {}, "none": {},
}

func isNA(cell string) bool {
	_, ok := naTokens[strings.ToLower(strings.TrimSpace(cell))]
	return ok
}

func parseNumeric(cell string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// FromCSV reads a comma-separated table with a header line.
//
// Columns are typed by their content: when more than half of the non-NA
// cells parse as numbers, the column is Numeric and the cells failing to
// parse are coerced to missing. Otherwise the column is Text.
//
// # Args
//
// - r: CSV payload. The first record is the header.
//
// # Returns
//
// - *Frame: the table. It may have zero rows; callers decide whether
// that is acceptable for their purpose.
//
// - error: when the payload is not well-formed CSV (ragged records,
// broken quoting) or has no header at all.
func FromCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("csv: no header line")
		}
		return nil, fmt.Errorf("csv: %w", err)
	}

	names := make([]string, len(header))
	seen := map[string]int{}
	for i, name := range header {
		name = strings.TrimSpace(name)
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}

	raw := [][]string{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		raw = append(raw, record)
	}

	kinds := map[string]Kind{}
	numeric := map[string][]float64{}

	for c, name := range names {
		nonNA, parsed := 0, 0
		for _, row := range raw {
			if isNA(row[c]) {
				continue
			}
			nonNA += 1
			if _, ok := parseNumeric(row[c]); ok {
				parsed += 1
			}
		}

		if parsed == 0 || parsed*2 <= nonNA {
			kinds[name] = Text
			continue
		}

		kinds[name] = Numeric
		values := make([]float64, len(raw))
		for r, row := range raw {
			if v, ok := parseNumeric(row[c]); ok {
				values[r] = v
			} else {
				values[r] = math.NaN()
			}
		}
		numeric[name] = values
	}

	return &Frame{names: names, kinds: kinds, raw: raw, numeric: numeric}, nil
}

// Rows returns the number of data rows (the header does not count).
func (f *Frame) Rows() int {
	return len(f.raw)
}

// Width returns the number of columns.
func (f *Frame) Width() int {
	return len(f.names)
}

// Names returns column names in table order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.names))
	copy(names, f.names)
	return names
}

// Kinds maps each column name to its Kind.
func (f *Frame) Kinds() map[string]Kind {
	kinds := make(map[string]Kind, len(f.kinds))
	for name, kind := range f.kinds {
		kinds[name] = kind
	}
	return kinds
}

// NumericNames returns names of numeric columns, in table order.
func (f *Frame) NumericNames() []string {
	names := []string{}
	for _, name := range f.names {
		if f.kinds[name] == Numeric {
			names = append(names, name)
		}
	}
	return names
}

// Numeric returns the parsed values of a numeric column.
// Missing cells are NaN. The returned slice is shared; do not modify.
func (f *Frame) Numeric(name string) ([]float64, bool) {
	values, ok := f.numeric[name]
	return values, ok
}

// Head returns up to n leading rows as raw cell text.
func (f *Frame) Head(n int) [][]string {
	if n < 0 {
		n = 0
	}
	if len(f.raw) < n {
		n = len(f.raw)
	}
	head := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(f.raw[i]))
		copy(row, f.raw[i])
		head[i] = row
	}
	return head
}

// MissingCells counts missing cells per column.
//
// For numeric columns this includes cells coerced to missing
// because they did not parse.
func (f *Frame) MissingCells() map[string]int {
	missing := map[string]int{}
	for c, name := range f.names {
		count := 0
		if values, ok := f.numeric[name]; ok {
			for _, v := range values {
				if math.IsNaN(v) {
					count += 1
				}
			}
		} else {
			for _, row := range f.raw {
				if isNA(row[c]) {
					count += 1
				}
			}
		}
		missing[name] = count
	}
	return missing
}

// DuplicateRows counts rows which are exact copies of an earlier row.
func (f *Frame) DuplicateRows() int {
	seen := map[string]struct{}{}
	duplicated := 0
	for _, row := range f.raw {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			duplicated += 1
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicated
}
