package sparse

// Permutable is implemented by everything that follows the row and column
// order of a system: the matrix storage, a paired vector and the
// translations. Indices are internal and positive.
type Permutable interface {
	SwapRows(row1, row2 int)
	SwapColumns(col1, col2 int)
}

// permutation is the single place where a system swaps rows or columns.
// Every registered tracker sees each swap exactly once.
type permutation struct {
	trackers []Permutable
	swaps    int
}

func (p *permutation) track(t Permutable) {
	p.trackers = append(p.trackers, t)
}

func (p *permutation) swapRows(row1, row2 int) {
	if row1 == row2 {
		return
	}
	for _, t := range p.trackers {
		t.SwapRows(row1, row2)
	}
	p.swaps++
}

func (p *permutation) swapColumns(col1, col2 int) {
	if col1 == col2 {
		return
	}
	for _, t := range p.trackers {
		t.SwapColumns(col1, col2)
	}
	p.swaps++
}

// sign returns the determinant sign of the accumulated permutation.
func (p *permutation) sign() float64 {
	if p.swaps%2 == 1 {
		return -1
	}
	return 1
}

// matrixOrder and denseOrder hand swaps to the storage unchecked. Indices
// reaching the permutation are already validated.
type matrixOrder struct{ m *Matrix }

func (o matrixOrder) SwapRows(row1, row2 int) { o.m.swapRows(row1, row2) }
func (o matrixOrder) SwapColumns(col1, col2 int) { o.m.swapColumns(col1, col2) }

type denseOrder struct{ m *DenseMatrix }

func (o denseOrder) SwapRows(row1, row2 int) { o.m.swapRows(row1, row2) }
func (o denseOrder) SwapColumns(col1, col2 int) { o.m.swapColumns(col1, col2) }

type rowOrder struct{ *Translation }

func (r rowOrder) SwapRows(row1, row2 int) { r.Swap(row1, row2) }
func (rowOrder) SwapColumns(int, int) {}

type columnOrder struct{ *Translation }

func (columnOrder) SwapRows(int, int) {}
func (c columnOrder) SwapColumns(col1, col2 int) { c.Swap(col1, col2) }
