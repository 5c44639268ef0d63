package frame

// QualityReport summarizes how trustworthy a table looks.
//
// The percentage metrics are in [0, 100]. An empty table scores 100
// everywhere; absence of rows is not evidence of problems.
type QualityReport struct {
	// Missing cells per column, as MissingCells reports them.
	Missing map[string]int

	// Rows which are exact copies of an earlier row.
	Duplicates int

	// Share of cells holding a value.
	Completeness float64

	// Share of rows which are not duplicates.
	Consistency float64

	// Share of cells readable under their column's kind. NA tokens
	// count as readable; they state "no value" rather than garbage.
	Validity float64

	// Mean of the three metrics above.
	Score float64
}

// InvalidCells counts cells which are neither a recognized NA token nor
// readable under their column's kind, per column. Text columns read
// anything, so only numeric columns can hold invalid cells.
func (f *Frame) InvalidCells() map[string]int {
	invalid := map[string]int{}
	for c, name := range f.names {
		count := 0
		if f.kinds[name] == Numeric {
			for _, row := range f.raw {
				if isNA(row[c]) {
					continue
				}
				if _, ok := parseNumeric(row[c]); !ok {
					count += 1
				}
			}
		}
		invalid[name] = count
	}
	return invalid
}

// Quality measures the table.
func (f *Frame) Quality() QualityReport {
	missing := f.MissingCells()
	duplicates := f.DuplicateRows()

	cells := f.Rows() * f.Width()

	completeness := 100.0
	if cells > 0 {
		totalMissing := 0
		for _, count := range missing {
			totalMissing += count
		}
		completeness = 100.0 * float64(cells-totalMissing) / float64(cells)
	}

	consistency := 100.0
	if f.Rows() > 0 {
		consistency = 100.0 * float64(f.Rows()-duplicates) / float64(f.Rows())
	}

	validity := 100.0
	if cells > 0 {
		totalInvalid := 0
		for _, count := range f.InvalidCells() {
			totalInvalid += count
		}
		validity = 100.0 * float64(cells-totalInvalid) / float64(cells)
	}

	return QualityReport{
		Missing:      missing,
		Duplicates:   duplicates,
		Completeness: completeness,
		Consistency:  consistency,
		Validity:     validity,
		Score:        (completeness + consistency + validity) / 3.0,
	}
}

// Summary counts the shape of the table.
type SummaryReport struct {
	Rows               int
	Columns            int
	NumericColumns     int
	CategoricalColumns int
}

func (f *Frame) Summary() SummaryReport {
	numeric := 0
	for _, kind := range f.kinds {
		if kind == Numeric {
			numeric += 1
		}
	}
	return SummaryReport{
		Rows:               f.Rows(),
		Columns:            f.Width(),
		NumericColumns:     numeric,
		CategoricalColumns: f.Width() - numeric,
	}
}
