package sparse

// SwapRows exchanges the membership of two rows. Elements keep their
// identity and values, only their row changes. Row 0 is the ground and
// cannot be swapped.
func (m *Matrix) SwapRows(row1, row2 int) error {
	if row1 < 1 || row2 < 1 {
		return invalidIndex(row1, row2)
	}
	m.swapRows(row1, row2)
	return nil
}

// SwapColumns exchanges the membership of two columns.
func (m *Matrix) SwapColumns(col1, col2 int) error {
	if col1 < 1 || col2 < 1 {
		return invalidIndex(col1, col2)
	}
	m.swapColumns(col1, col2)
	return nil
}

func (m *Matrix) swapRows(row1, row2 int) {
	if row1 == row2 {
		return
	}
	if row1 > row2 {
		row1, row2 = row2, row1
	}
	m.expand(row2)

	p1, p2 := m.firstInRow[row1], m.firstInRow[row2]
	for p1 != trash || p2 != trash {
		var e1, e2 int32

		switch {
		case p2 == trash:
			e1 = p1
			p1 = m.at(p1).right
		case p1 == trash:
			e2 = p2
			p2 = m.at(p2).right
		case m.at(p1).col < m.at(p2).col:
			e1 = p1
			p1 = m.at(p1).right
		case m.at(p1).col > m.at(p2).col:
			e2 = p2
			p2 = m.at(p2).right
		default:
			e1, e2 = p1, p2
			p1 = m.at(p1).right
			p2 = m.at(p2).right
		}

		m.exchangeColElements(row1, e1, row2, e2)
	}

	m.firstInRow[row1], m.firstInRow[row2] = m.firstInRow[row2], m.firstInRow[row1]
	m.lastInRow[row1], m.lastInRow[row2] = m.lastInRow[row2], m.lastInRow[row1]

	m.diags[row1] = m.lookup(row1, row1)
	m.diags[row2] = m.lookup(row2, row2)
}

func (m *Matrix) swapColumns(col1, col2 int) {
	if col1 == col2 {
		return
	}
	if col1 > col2 {
		col1, col2 = col2, col1
	}
	m.expand(col2)

	p1, p2 := m.firstInCol[col1], m.firstInCol[col2]
	for p1 != trash || p2 != trash {
		var e1, e2 int32

		switch {
		case p2 == trash:
			e1 = p1
			p1 = m.at(p1).below
		case p1 == trash:
			e2 = p2
			p2 = m.at(p2).below
		case m.at(p1).row < m.at(p2).row:
			e1 = p1
			p1 = m.at(p1).below
		case m.at(p1).row > m.at(p2).row:
			e2 = p2
			p2 = m.at(p2).below
		default:
			e1, e2 = p1, p2
			p1 = m.at(p1).below
			p2 = m.at(p2).below
		}

		m.exchangeRowElements(col1, e1, col2, e2)
	}

	m.firstInCol[col1], m.firstInCol[col2] = m.firstInCol[col2], m.firstInCol[col1]
	m.lastInCol[col1], m.lastInCol[col2] = m.lastInCol[col2], m.lastInCol[col1]

	m.diags[col1] = m.lookup(col1, col1)
	m.diags[col2] = m.lookup(col2, col2)
}

// exchangeColElements moves the elements of one column between row1 and
// row2 (row1 < row2). Either element may be trash.
func (m *Matrix) exchangeColElements(row1 int, e1 int32, row2 int, e2 int32) {
	switch {
	case e2 == trash:
		// row1 -> row2, skipping the elements in between
		el := m.at(e1)
		if next := el.below; next != trash && m.at(next).row < row2 {
			above := next
			for n := m.at(above).below; n != trash && m.at(n).row < row2; n = m.at(n).below {
				above = n
			}
			m.unlinkFromColumn(el)
			m.linkBelow(el, above)
		}
		el.row = row2

	case e1 == trash:
		// row2 -> row1
		el := m.at(e2)
		if prev := el.above; prev != trash && m.at(prev).row > row1 {
			below := prev
			for p := m.at(below).above; p != trash && m.at(p).row > row1; p = m.at(p).above {
				below = p
			}
			m.unlinkFromColumn(el)
			m.linkAbove(el, below)
		}
		el.row = row1

	default:
		a, b := m.at(e1), m.at(e2)
		col := a.col
		if a.below == b.index {
			above, below := a.above, b.below
			m.setBelow(col, above, b.index)
			m.setAbove(col, below, a.index)
			b.above, b.below = above, a.index
			a.above, a.below = b.index, below
		} else {
			aAbove, aBelow := a.above, a.below
			bAbove, bBelow := b.above, b.below
			m.setBelow(col, aAbove, b.index)
			m.at(aBelow).above = b.index
			m.at(bAbove).below = a.index
			m.setAbove(col, bBelow, a.index)
			b.above, b.below = aAbove, aBelow
			a.above, a.below = bAbove, bBelow
		}
		a.row, b.row = row2, row1
	}
}

// exchangeRowElements moves the elements of one row between col1 and col2
// (col1 < col2).
func (m *Matrix) exchangeRowElements(col1 int, e1 int32, col2 int, e2 int32) {
	switch {
	case e2 == trash:
		el := m.at(e1)
		if next := el.right; next != trash && m.at(next).col < col2 {
			left := next
			for n := m.at(left).right; n != trash && m.at(n).col < col2; n = m.at(n).right {
				left = n
			}
			m.unlinkFromRow(el)
			m.linkRight(el, left)
		}
		el.col = col2

	case e1 == trash:
		el := m.at(e2)
		if prev := el.left; prev != trash && m.at(prev).col > col1 {
			right := prev
			for p := m.at(right).left; p != trash && m.at(p).col > col1; p = m.at(p).left {
				right = p
			}
			m.unlinkFromRow(el)
			m.linkLeft(el, right)
		}
		el.col = col1

	default:
		a, b := m.at(e1), m.at(e2)
		row := a.row
		if a.right == b.index {
			left, right := a.left, b.right
			m.setRight(row, left, b.index)
			m.setLeft(row, right, a.index)
			b.left, b.right = left, a.index
			a.left, a.right = b.index, right
		} else {
			aLeft, aRight := a.left, a.right
			bLeft, bRight := b.left, b.right
			m.setRight(row, aLeft, b.index)
			m.at(aRight).left = b.index
			m.at(bLeft).right = a.index
			m.setLeft(row, bRight, a.index)
			b.left, b.right = aLeft, aRight
			a.left, a.right = bLeft, bRight
		}
		a.col, b.col = col2, col1
	}
}

// setBelow points the element above (or the column head) at i.
func (m *Matrix) setBelow(col int, above, i int32) {
	if above == trash {
		m.firstInCol[col] = i
	} else {
		m.at(above).below = i
	}
}

// setAbove points the element below (or the column tail) at i.
func (m *Matrix) setAbove(col int, below, i int32) {
	if below == trash {
		m.lastInCol[col] = i
	} else {
		m.at(below).above = i
	}
}

func (m *Matrix) setRight(row int, left, i int32) {
	if left == trash {
		m.firstInRow[row] = i
	} else {
		m.at(left).right = i
	}
}

func (m *Matrix) setLeft(row int, right, i int32) {
	if right == trash {
		m.lastInRow[row] = i
	} else {
		m.at(right).left = i
	}
}

func (m *Matrix) unlinkFromColumn(e *Element) {
	m.setBelow(e.col, e.above, e.below)
	m.setAbove(e.col, e.below, e.above)
	e.above, e.below = trash, trash
}

func (m *Matrix) unlinkFromRow(e *Element) {
	m.setRight(e.row, e.left, e.right)
	m.setLeft(e.row, e.right, e.left)
	e.left, e.right = trash, trash
}

// linkBelow inserts e right after above in its column.
func (m *Matrix) linkBelow(e *Element, above int32) {
	below := m.at(above).below
	e.above, e.below = above, below
	m.at(above).below = e.index
	m.setAbove(e.col, below, e.index)
}

// linkAbove inserts e right before below in its column.
func (m *Matrix) linkAbove(e *Element, below int32) {
	above := m.at(below).above
	e.above, e.below = above, below
	m.at(below).above = e.index
	m.setBelow(e.col, above, e.index)
}

func (m *Matrix) linkRight(e *Element, left int32) {
	right := m.at(left).right
	e.left, e.right = left, right
	m.at(left).right = e.index
	m.setLeft(e.row, right, e.index)
}

func (m *Matrix) linkLeft(e *Element, right int32) {
	left := m.at(right).left
	e.left, e.right = left, right
	m.at(right).left = e.index
	m.setRight(e.row, left, e.index)
}
