package sparse

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// Statistics summarizes the matrix of a solver.
type Statistics struct {
	Size         int
	Elements     int
	Fillins      int
	Largest      float64
	Smallest     float64 // smallest nonzero magnitude
	LargestDiag  float64
	SmallestDiag float64
	Density      float64 // percent of the size x size entries present
	Operations   int     // multiplications per Factor, known after partitioning
}

func (s *Solver) Statistics() Statistics {
	m := s.matrix
	stats := Statistics{
		Size:       s.Size(),
		Elements:   m.ElementCount(),
		Fillins:    m.FillinCount(),
		Smallest:   math.MaxFloat64,
		Operations: s.operations,
	}
	stats.SmallestDiag = math.MaxFloat64

	for col := 1; col <= m.Size(); col++ {
		for e := m.FirstInColumn(col); e != nil; e = m.Below(e) {
			magnitude := m.magnitude(e)
			stats.Largest = max(stats.Largest, magnitude)
			if magnitude != 0 {
				stats.Smallest = min(stats.Smallest, magnitude)
			}
			if e.row == e.col {
				stats.LargestDiag = max(stats.LargestDiag, magnitude)
				if magnitude != 0 {
					stats.SmallestDiag = min(stats.SmallestDiag, magnitude)
				}
			}
		}
	}

	if stats.Smallest == math.MaxFloat64 {
		stats.Smallest = 0
	}
	if stats.SmallestDiag == math.MaxFloat64 {
		stats.SmallestDiag = 0
	}
	if stats.Size > 0 {
		stats.Density = float64(stats.Elements) * 100 / float64(stats.Size*stats.Size)
	}
	return stats
}

// Print writes the matrix to w. reordered prints it in pivot order instead of
// equation order, data prints values instead of an x per element, header
// adds row and column labels and a summary.
func (s *Solver) Print(w io.Writer, reordered, data, header bool) error {
	var b strings.Builder
	size := s.Size()

	if header {
		b.WriteString("MATRIX SUMMARY\n\n")
		fmt.Fprintf(&b, "Size of matrix = %d x %d.\n", size, size)
		if s.matrix.complex {
			b.WriteString("Matrix is complex.\n")
		}
		if reordered && !s.needsReordering {
			b.WriteString("Matrix has been reordered.\n")
		}
		b.WriteString("\n")
		if s.factored {
			b.WriteString("Matrix after factorization:\n")
		} else {
			b.WriteString("Matrix before factorization:\n")
		}
	}

	rowAt := func(i int) int {
		if reordered {
			return i
		}
		return s.row.Internal(i)
	}
	colAt := func(j int) int {
		if reordered {
			return j
		}
		return s.column.Internal(j)
	}

	columns := s.config.PrinterWidth
	if columns <= 0 {
		columns = DefaultConfiguration().PrinterWidth
	}
	if header {
		columns -= 5
	}
	width := 10
	if s.matrix.complex {
		width = 20
	}
	if data {
		columns = (columns + 1) / width
	}
	columns = max(columns, 1)

	for start := 1; start <= size; start += columns {
		stop := min(start+columns-1, size)

		if header {
			if data {
				b.WriteString("    ")
				for j := start; j <= stop; j++ {
					fmt.Fprintf(&b, " %*d", width-1, s.column.External(colAt(j)))
				}
				b.WriteString("\n\n")
			} else {
				fmt.Fprintf(&b, "Columns %d to %d.\n", start, stop)
			}
		}

		for i := 1; i <= size; i++ {
			row := rowAt(i)
			if header {
				label := i
				if !reordered || data {
					label = s.row.External(row)
				}
				fmt.Fprintf(&b, "%4d", label)
				if !data {
					b.WriteString(" ")
				}
			}

			for j := start; j <= stop; j++ {
				e := s.matrix.find(row, colAt(j))
				switch {
				case e != nil && data && s.matrix.complex:
					fmt.Fprintf(&b, " %9.3g%+9.3gj", e.Value, e.Imag)
				case e != nil && data:
					fmt.Fprintf(&b, " %9.3g", e.Value)
				case e != nil:
					b.WriteString("x")
				case data:
					b.WriteString(strings.Repeat(" ", width-3) + "...")
				default:
					b.WriteString(".")
				}
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if header {
		stats := s.Statistics()
		fmt.Fprintf(&b, "\nLargest element in matrix = %-1.4g.\n", stats.Largest)
		fmt.Fprintf(&b, "Smallest element in matrix = %-1.4g.\n", stats.Smallest)
		if s.factored {
			fmt.Fprintf(&b, "\nLargest diagonal element = %-1.4g.\n", stats.LargestDiag)
			fmt.Fprintf(&b, "Smallest diagonal element = %-1.4g.\n", stats.SmallestDiag)
		} else {
			fmt.Fprintf(&b, "\nLargest pivot element = %-1.4g.\n", stats.LargestDiag)
			fmt.Fprintf(&b, "Smallest pivot element = %-1.4g.\n", stats.SmallestDiag)
		}
		fmt.Fprintf(&b, "\nDensity = %.2f%%.\n", stats.Density)
		if !s.needsReordering {
			fmt.Fprintf(&b, "Number of fill-ins = %d.\n", stats.Fillins)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// counts renders entries 1..size of a count array for step annotations.
func counts(values []int, size int) string {
	var b strings.Builder
	for i := 1; i <= size && i < len(values); i++ {
		fmt.Fprintf(&b, "%2d ", values[i])
	}
	return strings.TrimSpace(b.String())
}
