package sparse

// NewMatrix creates an empty matrix. It grows on demand as elements are
// requested.
func NewMatrix() *Matrix {
	m := &Matrix{arena: newArena()}
	m.grow(initialSize)
	return m
}

// NewComplexMatrix creates an empty matrix whose elements are complex.
func NewComplexMatrix() *Matrix {
	m := NewMatrix()
	m.complex = true
	return m
}

func (m *Matrix) Size() int { return m.size }

func (m *Matrix) IsComplex() bool { return m.complex }

// ElementCount returns the number of elements, fill-ins included.
func (m *Matrix) ElementCount() int { return m.arena.live() }

func (m *Matrix) FillinCount() int { return m.fillins }

func (m *Matrix) at(i int32) *Element { return m.arena.at(i) }

func (m *Matrix) ptr(i int32) *Element {
	if i == trash {
		return nil
	}
	return m.arena.at(i)
}

func (m *Matrix) grow(capacity int) {
	if capacity <= m.allocated {
		return
	}
	n := int(float64(m.allocated) * expansionFactor)
	if n < capacity {
		n = capacity
	}

	m.firstInRow = extend(m.firstInRow, n+1)
	m.lastInRow = extend(m.lastInRow, n+1)
	m.firstInCol = extend(m.firstInCol, n+1)
	m.lastInCol = extend(m.lastInCol, n+1)
	m.diags = extend(m.diags, n+1)
	m.allocated = n
}

func (m *Matrix) expand(size int) {
	if size <= m.size {
		return
	}
	m.grow(size)
	m.size = size
}

// GetElement returns the element at (row, col), creating it when it does not
// exist yet. Row or column 0 yields the trash element.
func (m *Matrix) GetElement(row, col int) (*Element, error) {
	if row < 0 || col < 0 {
		return nil, invalidIndex(row, col)
	}
	return m.element(row, col), nil
}

// FindElement returns the element at (row, col) or nil.
func (m *Matrix) FindElement(row, col int) (*Element, error) {
	if row < 0 || col < 0 {
		return nil, invalidIndex(row, col)
	}
	return m.find(row, col), nil
}

// At returns the value at (row, col). Absent entries read as zero.
func (m *Matrix) At(row, col int) (float64, error) {
	if row < 0 || col < 0 {
		return 0, invalidIndex(row, col)
	}
	if row == 0 || col == 0 {
		return 0, nil
	}
	if e := m.find(row, col); e != nil {
		return e.Value, nil
	}
	return 0, nil
}

// Set writes value at (row, col). Writing zero never creates an element.
func (m *Matrix) Set(row, col int, value float64) error {
	if row < 0 || col < 0 {
		return invalidIndex(row, col)
	}
	if row == 0 || col == 0 {
		return nil
	}
	if value == 0 {
		if e := m.find(row, col); e != nil {
			e.Value, e.Imag = 0, 0
		}
		return nil
	}
	e := m.element(row, col)
	e.Value, e.Imag = value, 0
	return nil
}

func (m *Matrix) element(row, col int) *Element {
	if row == 0 || col == 0 {
		return m.at(trash)
	}
	m.expand(max(row, col))

	if row == col && m.diags[row] != trash {
		return m.at(m.diags[row])
	}

	above := trash
	for i := m.firstInCol[col]; i != trash; {
		e := m.at(i)
		if e.row == row {
			return e
		}
		if e.row > row {
			break
		}
		above = i
		i = e.below
	}

	return m.insert(row, col, above, trash)
}

func (m *Matrix) find(row, col int) *Element {
	if row == 0 || col == 0 {
		return m.at(trash)
	}
	if row > m.size || col > m.size {
		return nil
	}
	if row == col {
		return m.ptr(m.diags[row])
	}
	return m.ptr(m.lookup(row, col))
}

// lookup walks column col for row without using the diagonal cache.
func (m *Matrix) lookup(row, col int) int32 {
	for i := m.firstInCol[col]; i != trash; {
		e := m.at(i)
		if e.row == row {
			return i
		}
		if e.row > row {
			break
		}
		i = e.below
	}
	return trash
}

// insert links a new element at (row, col). above and left are hints: an
// element known to precede the new one in its column and row, or trash to
// start from the head of the list.
func (m *Matrix) insert(row, col int, above, left int32) *Element {
	e := m.arena.alloc(row, col)
	i := e.index

	below := m.firstInCol[col]
	if above != trash {
		below = m.at(above).below
	}
	for below != trash && m.at(below).row < row {
		above = below
		below = m.at(below).below
	}
	e.above, e.below = above, below
	if above == trash {
		m.firstInCol[col] = i
	} else {
		m.at(above).below = i
	}
	if below == trash {
		m.lastInCol[col] = i
	} else {
		m.at(below).above = i
	}

	right := m.firstInRow[row]
	if left != trash {
		right = m.at(left).right
	}
	for right != trash && m.at(right).col < col {
		left = right
		right = m.at(right).right
	}
	e.left, e.right = left, right
	if left == trash {
		m.firstInRow[row] = i
	} else {
		m.at(left).right = i
	}
	if right == trash {
		m.lastInRow[row] = i
	} else {
		m.at(right).left = i
	}

	if row == col {
		m.diags[row] = i
	}
	return e
}

// RemoveElement unlinks and releases the element at (row, col). It reports
// whether an element was removed.
func (m *Matrix) RemoveElement(row, col int) (bool, error) {
	if row < 0 || col < 0 {
		return false, invalidIndex(row, col)
	}
	if row == 0 || col == 0 {
		return false, nil
	}
	e := m.find(row, col)
	if e == nil {
		return false, nil
	}

	if e.above == trash {
		m.firstInCol[e.col] = e.below
	} else {
		m.at(e.above).below = e.below
	}
	if e.below == trash {
		m.lastInCol[e.col] = e.above
	} else {
		m.at(e.below).above = e.above
	}
	if e.left == trash {
		m.firstInRow[e.row] = e.right
	} else {
		m.at(e.left).right = e.right
	}
	if e.right == trash {
		m.lastInRow[e.row] = e.left
	} else {
		m.at(e.right).left = e.left
	}
	if e.row == e.col {
		m.diags[e.row] = trash
	}

	m.arena.release(e)
	return true, nil
}

// Reset zeroes every value and keeps the structure.
func (m *Matrix) Reset() {
	for col := 1; col <= m.size; col++ {
		for i := m.firstInCol[col]; i != trash; {
			e := m.at(i)
			e.Value, e.Imag = 0, 0
			i = e.below
		}
	}
	sink := m.at(trash)
	sink.Value, sink.Imag = 0, 0
}

// Clear drops all elements and shrinks the matrix to size 0. Element
// handles obtained before are no longer valid.
func (m *Matrix) Clear() {
	m.arena.reset()
	clear(m.firstInRow)
	clear(m.lastInRow)
	clear(m.firstInCol)
	clear(m.lastInCol)
	clear(m.diags)
	m.size = 0
	m.fillins = 0
}

func (m *Matrix) Diagonal(i int) *Element {
	if i < 1 || i > m.size {
		return nil
	}
	return m.ptr(m.diags[i])
}

func (m *Matrix) FirstInRow(row int) *Element {
	if row < 1 || row > m.size {
		return nil
	}
	return m.ptr(m.firstInRow[row])
}

func (m *Matrix) LastInRow(row int) *Element {
	if row < 1 || row > m.size {
		return nil
	}
	return m.ptr(m.lastInRow[row])
}

func (m *Matrix) FirstInColumn(col int) *Element {
	if col < 1 || col > m.size {
		return nil
	}
	return m.ptr(m.firstInCol[col])
}

func (m *Matrix) LastInColumn(col int) *Element {
	if col < 1 || col > m.size {
		return nil
	}
	return m.ptr(m.lastInCol[col])
}

func (m *Matrix) Right(e *Element) *Element { return m.ptr(e.right) }

func (m *Matrix) Left(e *Element) *Element { return m.ptr(e.left) }

func (m *Matrix) Below(e *Element) *Element { return m.ptr(e.below) }

func (m *Matrix) Above(e *Element) *Element { return m.ptr(e.above) }
