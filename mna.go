package sparse

import "math"

// PreorderMNA removes structural zeros from the diagonal of a modified nodal
// analysis matrix. Voltage sources and similar branches leave a zero diagonal
// with a symmetric pair of unit entries, the twins; swapping the two columns
// puts both twins on the diagonal. Columns with a single twin are handled
// first, then one column with several twins per pass.
func (s *Solver) PreorderMNA() error {
	return s.Precondition(preorderMNA)
}

func preorderMNA(sys System) error {
	limit := sys.Active()
	start := 1

	for {
		anotherPassNeeded := false
		swapped := false

		for j := start; j <= limit; j++ {
			if sys.Diagonal(j) != nil {
				continue
			}
			twins, col1, col2 := countTwins(sys, j, limit)
			if twins == 1 {
				if err := sys.SwapColumns(col1, col2); err != nil {
					return err
				}
				swapped = true
			} else if twins > 1 && !anotherPassNeeded {
				anotherPassNeeded = true
				start = j
			}
		}

		if !anotherPassNeeded {
			return nil
		}

		for j := start; !swapped && j <= limit; j++ {
			if sys.Diagonal(j) != nil {
				continue
			}
			if twins, col1, col2 := countTwins(sys, j, limit); twins > 0 {
				if err := sys.SwapColumns(col1, col2); err != nil {
					return err
				}
				swapped = true
			}
		}
		if !swapped {
			return nil
		}
	}
}

// countTwins counts, up to two, the unit entries (row, col) of column col
// mirrored by a unit entry (col, row). It returns the columns to swap for the
// first pair.
func countTwins(sys System, col, limit int) (twins, col1, col2 int) {
	for twin1 := sys.FirstInColumn(col); twin1 != nil; twin1 = sys.Below(twin1) {
		row := twin1.row
		if row > limit || math.Abs(twin1.Value) != 1 {
			continue
		}
		twin2 := sys.Find(col, row)
		if twin2 == nil || math.Abs(twin2.Value) != 1 {
			continue
		}

		twins++
		if twins >= 2 {
			return twins, col1, col2
		}
		col1, col2 = col, row
	}
	return twins, col1, col2
}
