package sparse

import "math"

// RookPivoting picks dense pivots by looking at the pivot row and column
// only.
type RookPivoting struct {
	RelativeThreshold float64
	AbsoluteThreshold float64
}

// FindPivot returns the largest entry of row step and column step within the
// active block. The diagonal wins ties, then the column is preferred over the
// row. A zero block yields PivotNone, a winner below the absolute threshold
// PivotBad.
func (r RookPivoting) FindPivot(sys DenseSystem, step, limit int) (row, col int, info PivotInfo) {
	row, col = step, step
	largest := math.Abs(sys.at(step, step))

	for i := step + 1; i <= limit; i++ {
		if magnitude := math.Abs(sys.at(i, step)); magnitude > largest {
			row, col, largest = i, step, magnitude
		}
	}
	for j := step + 1; j <= limit; j++ {
		if magnitude := math.Abs(sys.at(step, j)); magnitude > largest {
			row, col, largest = step, j, magnitude
		}
	}

	switch {
	case largest == 0:
		return 0, 0, PivotNone
	case largest <= r.AbsoluteThreshold:
		return row, col, PivotBad
	}
	return row, col, PivotGood
}

// MovePivot brings the entry at (row, col) onto the diagonal at step.
func (r RookPivoting) MovePivot(sys DenseSystem, row, col, step int) error {
	if err := sys.SwapRows(row, step); err != nil {
		return err
	}
	return sys.SwapColumns(col, step)
}

// IsValidPivot applies the threshold test to the current diagonal at step,
// comparing it with the rest of row and column step.
func (r RookPivoting) IsValidPivot(sys DenseSystem, step, limit int) bool {
	magnitude := math.Abs(sys.at(step, step))
	if magnitude <= r.AbsoluteThreshold {
		return false
	}

	largest := 0.0
	for i := step + 1; i <= limit; i++ {
		largest = max(largest, math.Abs(sys.at(i, step)))
	}
	for j := step + 1; j <= limit; j++ {
		largest = max(largest, math.Abs(sys.at(step, j)))
	}
	return magnitude > r.RelativeThreshold*largest
}
