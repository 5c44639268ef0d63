package correlation

import "math"

// Heatmap is the correlation matrix in a renderer-friendly layout:
// a dense row-major grid with a parallel column name list.
type Heatmap struct {
	Columns []string

	// Cells[i][j] is the correlation of Columns[i] and Columns[j].
	// Cells which cannot be computed are rendered as 0.
	Cells [][]float64

	// Min and Max are the extremes observed over the whole grid,
	// diagonal included. Both are 0 for an empty grid.
	Min float64
	Max float64
}

// HeatmapData lays the correlation matrix out for rendering.
func (a *Analyzer) HeatmapData() Heatmap {
	h := Heatmap{
		Columns: make([]string, len(a.active)),
		Cells:   make([][]float64, len(a.active)),
	}
	copy(h.Columns, a.active)

	first := true
	for i := range a.active {
		h.Cells[i] = make([]float64, len(a.active))
		for j := range a.active {
			r, ok := a.at(i, j)
			if !ok {
				r = 0
			}
			h.Cells[i][j] = r
			if first {
				h.Min, h.Max = r, r
				first = false
				continue
			}
			h.Min = math.Min(h.Min, r)
			h.Max = math.Max(h.Max, r)
		}
	}

	return h
}
