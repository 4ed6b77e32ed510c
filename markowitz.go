package sparse

// markowitz keeps the Markowitz counts of the uneliminated submatrix. Counts
// exclude the pivot candidate itself, row counts include a nonzero rhs entry.
type markowitz struct {
	rowCount []int // [1...size]
	colCount []int
	product  []int

	singletons int
	max        int // last index open to pivot search

	relThreshold     float64
	absThreshold     float64
	tiesMultiplier   int
	diagonalPivoting bool

	ties []*Element
}

func newMarkowitz(config Configuration) markowitz {
	return markowitz{
		relThreshold:     config.RelativePivotThreshold,
		absThreshold:     config.AbsolutePivotThreshold,
		tiesMultiplier:   config.TiesMultiplier,
		diagonalPivoting: config.DiagonalPivoting,
	}
}

// setup counts the submatrix starting at step from scratch. rhs reports
// whether the right hand side of an internal row is nonzero; it may be nil.
func (mk *markowitz) setup(m *Matrix, rhs func(row int) bool, step, limit int) {
	size := m.Size()
	mk.rowCount = extend(mk.rowCount[:0], size+1)
	mk.colCount = extend(mk.colCount[:0], size+1)
	mk.product = extend(mk.product[:0], size+1)
	mk.max = limit

	mk.countMarkowitz(m, rhs, step)
	mk.markowitzProducts(step)
}

func (mk *markowitz) countMarkowitz(m *Matrix, rhs func(row int) bool, step int) {
	for i := step; i <= m.Size(); i++ {
		count := -1
		e := m.FirstInRow(i)
		for e != nil && e.col < step {
			e = m.Right(e)
		}
		for ; e != nil; e = m.Right(e) {
			count++
		}
		if rhs != nil && rhs(i) {
			count++
		}
		mk.rowCount[i] = min(count, maxMarkowitzCount)
	}

	for i := step; i <= m.Size(); i++ {
		count := -1
		e := m.FirstInColumn(i)
		for e != nil && e.row < step {
			e = m.Below(e)
		}
		for ; e != nil; e = m.Below(e) {
			count++
		}
		mk.colCount[i] = min(count, maxMarkowitzCount)
	}
}

func (mk *markowitz) markowitzProducts(step int) {
	mk.singletons = 0
	for i := step; i < len(mk.product); i++ {
		mk.product[i] = markowitzProduct(mk.rowCount[i], mk.colCount[i])
		if i <= mk.max && mk.product[i] == 0 {
			mk.singletons++
		}
	}
}

// forget and recount bracket every change of the counts of index i so the
// singleton count stays exact for indices open to pivot search.
func (mk *markowitz) forget(i int) {
	if i <= mk.max && mk.product[i] == 0 {
		mk.singletons--
	}
}

func (mk *markowitz) recount(i int) {
	mk.product[i] = markowitzProduct(mk.rowCount[i], mk.colCount[i])
	if i <= mk.max && mk.product[i] == 0 {
		mk.singletons++
	}
}

// movePivot exchanges the counts of the pivot's row and column with those of
// step. It must run before the matrix swap. Index step leaves the search.
func (mk *markowitz) movePivot(row, col, step int) {
	mk.forget(step)
	if row != step {
		mk.forget(row)
	}
	if col != step && col != row {
		mk.forget(col)
	}

	mk.rowCount[row], mk.rowCount[step] = mk.rowCount[step], mk.rowCount[row]
	mk.colCount[col], mk.colCount[step] = mk.colCount[step], mk.colCount[col]

	if row != step {
		mk.recount(row)
	}
	if col != step && col != row {
		mk.recount(col)
	}
	mk.product[step] = markowitzProduct(mk.rowCount[step], mk.colCount[step])
}

// updateMarkowitzNumbers removes the pivot's row and column from the counts
// of every index sharing a nonzero with it. Only the pivot's own lists are
// walked.
func (mk *markowitz) updateMarkowitzNumbers(m *Matrix, pivot *Element) {
	for e := m.Below(pivot); e != nil && e.row <= mk.max; e = m.Below(e) {
		mk.forget(e.row)
		mk.rowCount[e.row]--
		mk.recount(e.row)
	}
	for e := m.Right(pivot); e != nil && e.col <= mk.max; e = m.Right(e) {
		mk.forget(e.col)
		mk.colCount[e.col]--
		mk.recount(e.col)
	}
}

// createFillin accounts for a fill-in created during elimination.
func (mk *markowitz) createFillin(e *Element) {
	mk.forget(e.row)
	mk.rowCount[e.row]++
	mk.recount(e.row)

	mk.forget(e.col)
	mk.colCount[e.col]++
	mk.recount(e.col)
}

// isValidPivot checks a diagonal kept from an earlier ordering against the
// elements below it.
func (mk *markowitz) isValidPivot(m *Matrix, pivot *Element, limit int) bool {
	if pivot.row > limit || pivot.col > limit {
		return false
	}
	magnitude := m.magnitude(pivot)
	if magnitude <= mk.absThreshold {
		return false
	}

	largest := 0.0
	for e := m.Below(pivot); e != nil && e.row <= limit; e = m.Below(e) {
		largest = max(largest, m.magnitude(e))
	}
	return largest*mk.relThreshold < magnitude
}
