package sparse

import "fmt"

// OrderAndFactor factors the matrix, choosing a new pivot order where the
// current one is no longer acceptable. While no reordering is pending the
// existing diagonals are tried first; the first one that fails the threshold
// test switches to a Markowitz search from that step on. It returns the
// number of unknowns factored, which is short of the order of the system
// when the matrix is singular.
func (s *Solver) OrderAndFactor() (int, error) {
	size, order, limit, err := s.bounds()
	if err != nil {
		return 0, err
	}
	s.matrix.expand(size)
	s.intermediate = extend(s.intermediate, size+1)
	if s.matrix.complex {
		s.cintermediate = extend(s.cintermediate, size+1)
	}
	s.factored = false

	step := 1
	if !s.needsReordering && s.factoredSize == size {
		for ; step <= order; step++ {
			pivot := s.matrix.Diagonal(step)
			if pivot == nil {
				break
			}
			if step <= limit && !s.markowitz.isValidPivot(s.matrix, pivot, limit) {
				break
			}
			if err := s.matrix.rowColElimination(pivot, nil); err != nil {
				break
			}
		}
		if step > order {
			s.finish(size)
			return order, nil
		}
		s.needsReordering = true
	}

	s.markowitz.setup(s.matrix, s.rhsNonzero, step, limit)
	for ; step <= order; step++ {
		pivot := Pivot{Element: s.matrix.Diagonal(step), Info: PivotGood, Method: SearchFixed}
		if step <= limit {
			pivot = s.markowitz.searchForPivot(s.matrix, step)
		}
		if pivot.Element == nil || pivot.Info == PivotNone {
			return step - 1, s.singular(step)
		}
		if pivot.Info == PivotBad {
			s.smallPivot(step, pivot.Element)
		}

		row, col := pivot.Element.row, pivot.Element.col
		if step <= limit {
			s.markowitz.movePivot(row, col, step)
		}
		s.perm.swapRows(row, step)
		s.perm.swapColumns(col, step)
		if step <= limit {
			s.markowitz.updateMarkowitzNumbers(s.matrix, pivot.Element)
		}

		if err := s.matrix.rowColElimination(pivot.Element, s.markowitz.createFillin); err != nil {
			return step - 1, s.singular(step)
		}
		s.annotate(step, pivot)
	}

	s.needsReordering = false
	s.partitioned = false
	s.finish(size)
	return order, nil
}

func (s *Solver) finish(size int) {
	s.factored = true
	s.factoredSize = size
}

func (s *Solver) annotate(step int, pivot Pivot) {
	if s.onStep != nil {
		s.onStep(step, pivot)
	}
	if s.config.Annotate < 2 {
		return
	}
	s.logger.Debug("pivot",
		"step", step,
		"row", s.row.External(step),
		"col", s.column.External(step),
		"method", pivot.Method,
		"info", pivot.Info,
		"product", s.markowitz.product[step],
		"singletons", s.markowitz.singletons,
		"rows", counts(s.markowitz.rowCount, s.matrix.Size()),
		"cols", counts(s.markowitz.colCount, s.matrix.Size()),
	)
}

// Factor factors the matrix with the existing pivot order. It falls back to
// OrderAndFactor when no order exists yet or the structure has changed since.
// A zero pivot fails with a *SingularError; reordering is up to the caller.
func (s *Solver) Factor() error {
	size, order, _, err := s.bounds()
	if err != nil {
		return err
	}
	if s.needsReordering || s.factoredSize != size {
		_, err := s.OrderAndFactor()
		return err
	}
	s.factored = false

	if s.config.Degeneracy > 0 {
		for step := 1; step <= order; step++ {
			pivot := s.matrix.Diagonal(step)
			if pivot == nil {
				return s.singular(step)
			}
			if err := s.matrix.rowColElimination(pivot, nil); err != nil {
				return s.singular(step)
			}
		}
		s.finish(size)
		return nil
	}

	if !s.partitioned {
		if err := s.Partition(PartitionDefault); err != nil {
			return err
		}
	}
	if err := s.factorColumns(size); err != nil {
		return err
	}
	s.finish(size)
	return nil
}

// factorColumns is a left-looking LU over the existing fill pattern. Each
// column is either gathered into the dense intermediate vector (direct) or
// updated through pointers to its elements (indirect).
func (s *Solver) factorColumns(size int) error {
	m := s.matrix
	if size == 0 {
		return nil
	}
	if m.complex {
		return s.factorComplexColumns(size)
	}
	diag := m.Diagonal(1)
	if diag == nil || diag.Value == 0 {
		return s.singular(1)
	}
	diag.Value = 1 / diag.Value

	s.dest = extend(s.dest, size+1)
	for step := 2; step <= size; step++ {
		diag := m.Diagonal(step)
		if diag == nil {
			return s.singular(step)
		}

		if s.direct[step] {
			for e := m.FirstInColumn(step); e != nil; e = m.Below(e) {
				s.intermediate[e.row] = e.Value
			}
			for column := m.FirstInColumn(step); column != nil && column.row < step; column = m.Below(column) {
				pivot := m.Diagonal(column.row)
				column.Value = s.intermediate[column.row] * pivot.Value
				for e := m.Below(pivot); e != nil; e = m.Below(e) {
					s.intermediate[e.row] -= column.Value * e.Value
				}
			}
			for e := m.Below(diag); e != nil; e = m.Below(e) {
				e.Value = s.intermediate[e.row]
			}
			diag.Value = s.intermediate[step]
		} else {
			for e := m.FirstInColumn(step); e != nil; e = m.Below(e) {
				s.dest[e.row] = e
			}
			for column := m.FirstInColumn(step); column != nil && column.row < step; column = m.Below(column) {
				pivot := m.Diagonal(column.row)
				column.Value *= pivot.Value
				for e := m.Below(pivot); e != nil; e = m.Below(e) {
					s.dest[e.row].Value -= column.Value * e.Value
				}
			}
		}

		if diag.Value == 0 {
			return s.singular(step)
		}
		diag.Value = 1 / diag.Value
	}
	return nil
}

// Partition decides per column whether Factor updates it through the dense
// intermediate vector or through element pointers. The automatic mode picks
// direct addressing where the column sees many updates compared to its
// length.
func (s *Solver) Partition(mode PartitionMode) error {
	if s.partitioned {
		return nil
	}
	if mode == PartitionDefault {
		mode = s.config.Partition
	}

	size := s.matrix.Size()
	s.direct = extend(s.direct[:0], size+1)

	switch mode {
	case PartitionDirect, PartitionIndirect:
		for step := 1; step <= size; step++ {
			s.direct[step] = mode == PartitionDirect
		}
		s.partitioned = true
		return nil
	case PartitionAuto:
	default:
		return fmt.Errorf("%w: partition mode %s", ErrInvalidConfiguration, mode)
	}

	s.operations = 0
	for step := 1; step <= size; step++ {
		nc, no, nm := 0, 0, 0
		for e := s.matrix.FirstInColumn(step); e != nil; e = s.matrix.Below(e) {
			nc++
		}
		for column := s.matrix.FirstInColumn(step); column != nil && column.row < step; column = s.matrix.Below(column) {
			nm++
			if diag := s.matrix.Diagonal(column.row); diag != nil {
				for e := s.matrix.Below(diag); e != nil; e = s.matrix.Below(e) {
					no++
				}
			}
		}
		s.direct[step] = nm+no > 3*nc-2*nm
		s.operations += no
	}
	s.partitioned = true
	return nil
}
