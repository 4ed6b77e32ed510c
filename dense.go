package sparse

// DenseMatrix is a square, 1-based, row-major dense matrix that grows on
// demand. Row and column 0 read as zero and discard writes.
type DenseMatrix struct {
	size   int
	stride int // allocated order + 1
	values []float64
}

func NewDenseMatrix() *DenseMatrix {
	m := &DenseMatrix{}
	m.grow(initialSize)
	return m
}

func (m *DenseMatrix) Size() int { return m.size }

func (m *DenseMatrix) grow(size int) {
	if size < m.stride {
		return
	}
	stride := max(size+1, int(float64(m.stride)*expansionFactor))
	values := make([]float64, stride*stride)
	for r := 1; r < m.stride; r++ {
		copy(values[r*stride:r*stride+m.stride], m.values[r*m.stride:(r+1)*m.stride])
	}
	m.stride = stride
	m.values = values
}

func (m *DenseMatrix) expand(size int) {
	if size <= m.size {
		return
	}
	m.grow(size)
	m.size = size
}

func (m *DenseMatrix) get(row, col int) float64 { return m.values[row*m.stride+col] }

func (m *DenseMatrix) set(row, col int, value float64) { m.values[row*m.stride+col] = value }

func (m *DenseMatrix) At(row, col int) (float64, error) {
	if row < 0 || col < 0 {
		return 0, invalidIndex(row, col)
	}
	if row == 0 || col == 0 || row > m.size || col > m.size {
		return 0, nil
	}
	return m.get(row, col), nil
}

func (m *DenseMatrix) Set(row, col int, value float64) error {
	if row < 0 || col < 0 {
		return invalidIndex(row, col)
	}
	if row == 0 || col == 0 {
		return nil
	}
	m.expand(max(row, col))
	m.set(row, col, value)
	return nil
}

func (m *DenseMatrix) Add(row, col int, value float64) error {
	if row < 0 || col < 0 {
		return invalidIndex(row, col)
	}
	if row == 0 || col == 0 {
		return nil
	}
	m.expand(max(row, col))
	m.values[row*m.stride+col] += value
	return nil
}

// SwapRows exchanges two rows. Row 0 cannot be swapped.
func (m *DenseMatrix) SwapRows(row1, row2 int) error {
	if row1 < 1 || row2 < 1 {
		return invalidIndex(row1, row2)
	}
	m.swapRows(row1, row2)
	return nil
}

func (m *DenseMatrix) SwapColumns(col1, col2 int) error {
	if col1 < 1 || col2 < 1 {
		return invalidIndex(col1, col2)
	}
	m.swapColumns(col1, col2)
	return nil
}

func (m *DenseMatrix) swapRows(row1, row2 int) {
	if row1 == row2 {
		return
	}
	m.expand(max(row1, row2))
	r1 := m.values[row1*m.stride : (row1+1)*m.stride]
	r2 := m.values[row2*m.stride : (row2+1)*m.stride]
	for c := range r1 {
		r1[c], r2[c] = r2[c], r1[c]
	}
}

func (m *DenseMatrix) swapColumns(col1, col2 int) {
	if col1 == col2 {
		return
	}
	m.expand(max(col1, col2))
	for r := 1; r < m.stride; r++ {
		base := r * m.stride
		m.values[base+col1], m.values[base+col2] = m.values[base+col2], m.values[base+col1]
	}
}

// Reset zeroes every value and keeps the size.
func (m *DenseMatrix) Reset() {
	clear(m.values)
}

// Clear shrinks the matrix to size 0.
func (m *DenseMatrix) Clear() {
	clear(m.values)
	m.size = 0
}

// denseVector is a right hand side kept in internal row order. It follows
// row swaps and ignores column swaps.
type denseVector struct {
	values []float64
}

func (v *denseVector) size() int { return max(len(v.values)-1, 0) }

func (v *denseVector) grow(index int) {
	v.values = extend(v.values, index+1)
}

func (v *denseVector) at(i int) float64 {
	if i <= 0 || i >= len(v.values) {
		return 0
	}
	return v.values[i]
}

func (v *denseVector) SwapRows(row1, row2 int) {
	if row1 == row2 {
		return
	}
	v.grow(max(row1, row2))
	v.values[row1], v.values[row2] = v.values[row2], v.values[row1]
}

func (*denseVector) SwapColumns(int, int) {}
