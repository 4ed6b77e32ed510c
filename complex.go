package sparse

import "math"

// Complex returns the value of the element as a complex number.
func (e *Element) Complex() complex128 { return complex(e.Value, e.Imag) }

func (e *Element) SetComplex(value complex128) { e.Value, e.Imag = real(value), imag(value) }

func (e *Element) AddComplex(value complex128) {
	e.Value += real(value)
	e.Imag += imag(value)
}

// magnitude is the size pivot searches compare: |re| + |im| on complex
// matrices.
func (m *Matrix) magnitude(e *Element) float64 {
	if m.complex {
		return math.Abs(e.Value) + math.Abs(e.Imag)
	}
	return math.Abs(e.Value)
}

// SetComplex writes value at external (row, col) of a complex solver. Zero
// never creates an element.
func (s *Solver) SetComplex(row, col int, value complex128) error {
	if !s.matrix.complex {
		return ErrComplexMismatch
	}
	if value == 0 {
		e, err := s.FindElement(row, col)
		if e != nil {
			e.Value, e.Imag = 0, 0
		}
		return err
	}
	e, err := s.GetElement(row, col)
	if err != nil {
		return err
	}
	e.SetComplex(value)
	return nil
}

func (s *Solver) AddComplex(row, col int, value complex128) error {
	if !s.matrix.complex {
		return ErrComplexMismatch
	}
	e, err := s.GetElement(row, col)
	if err != nil {
		return err
	}
	e.AddComplex(value)
	return nil
}

func (s *Solver) ComplexAt(row, col int) (complex128, error) {
	e, err := s.FindElement(row, col)
	if err != nil || e == nil || row == 0 || col == 0 {
		return 0, err
	}
	return e.Complex(), nil
}

func (s *Solver) SetComplexRHS(index int, value complex128) error {
	if !s.matrix.complex {
		return ErrComplexMismatch
	}
	if index < 0 {
		return invalidIndex(index, 0)
	}
	if index == 0 {
		return nil
	}
	s.growRHS(index)
	s.rhs[index], s.irhs[index] = real(value), imag(value)
	return nil
}

func (s *Solver) AddComplexRHS(index int, value complex128) error {
	if !s.matrix.complex {
		return ErrComplexMismatch
	}
	if index < 0 {
		return invalidIndex(index, 0)
	}
	if index == 0 {
		return nil
	}
	s.growRHS(index)
	s.rhs[index] += real(value)
	s.irhs[index] += imag(value)
	return nil
}

func (s *Solver) ComplexRHS(index int) complex128 {
	if index <= 0 || index >= len(s.rhs) {
		return 0
	}
	return complex(s.rhs[index], s.irhs[index])
}

// factorComplexColumns is factorColumns in complex arithmetic.
func (s *Solver) factorComplexColumns(size int) error {
	m := s.matrix
	diag := m.Diagonal(1)
	if diag == nil || m.magnitude(diag) == 0 {
		return s.singular(1)
	}
	diag.SetComplex(1 / diag.Complex())

	s.dest = extend(s.dest, size+1)
	work := s.cintermediate
	for step := 2; step <= size; step++ {
		diag := m.Diagonal(step)
		if diag == nil {
			return s.singular(step)
		}

		if s.direct[step] {
			for e := m.FirstInColumn(step); e != nil; e = m.Below(e) {
				work[e.row] = e.Complex()
			}
			for column := m.FirstInColumn(step); column != nil && column.row < step; column = m.Below(column) {
				pivot := m.Diagonal(column.row)
				mult := work[column.row] * pivot.Complex()
				column.SetComplex(mult)
				for e := m.Below(pivot); e != nil; e = m.Below(e) {
					work[e.row] -= mult * e.Complex()
				}
			}
			for e := m.Below(diag); e != nil; e = m.Below(e) {
				e.SetComplex(work[e.row])
			}
			diag.SetComplex(work[step])
		} else {
			for e := m.FirstInColumn(step); e != nil; e = m.Below(e) {
				s.dest[e.row] = e
			}
			for column := m.FirstInColumn(step); column != nil && column.row < step; column = m.Below(column) {
				pivot := m.Diagonal(column.row)
				mult := column.Complex() * pivot.Complex()
				column.SetComplex(mult)
				for e := m.Below(pivot); e != nil; e = m.Below(e) {
					dest := s.dest[e.row]
					dest.SetComplex(dest.Complex() - mult*e.Complex())
				}
			}
		}

		if m.magnitude(diag) == 0 {
			return s.singular(step)
		}
		diag.SetComplex(1 / diag.Complex())
	}
	return nil
}

// SolveComplex is Solve for complex systems.
func (s *Solver) SolveComplex(solution []complex128) error {
	size, order, err := s.checkSolve(len(solution), true)
	if err != nil {
		return err
	}

	m := s.matrix
	work := s.cintermediate
	for i := 1; i <= order; i++ {
		work[i] = s.ComplexRHS(s.row.External(i))
	}
	for i := order + 1; i <= size; i++ {
		work[i] = solution[s.column.External(i)]
	}

	// Lc = b
	for i := 1; i <= order; i++ {
		temp := work[i]
		if temp == 0 {
			continue
		}
		pivot := m.Diagonal(i)
		temp *= pivot.Complex()
		work[i] = temp
		for e := m.Below(pivot); e != nil && e.row <= order; e = m.Below(e) {
			work[e.row] -= temp * e.Complex()
		}
	}

	// Ux = c
	for i := order; i > 0; i-- {
		temp := work[i]
		for e := m.Right(m.Diagonal(i)); e != nil; e = m.Right(e) {
			temp -= e.Complex() * work[e.col]
		}
		work[i] = temp
	}

	solution[0] = 0
	for i := 1; i <= size; i++ {
		solution[s.column.External(i)] = work[i]
	}
	return nil
}

// SolveComplexTransposed solves A'x = b, the plain transpose without
// conjugation.
func (s *Solver) SolveComplexTransposed(solution []complex128) error {
	size, order, err := s.checkSolve(len(solution), true)
	if err != nil {
		return err
	}

	m := s.matrix
	work := s.cintermediate
	for i := 1; i <= order; i++ {
		work[i] = s.ComplexRHS(s.column.External(i))
	}
	for i := order + 1; i <= size; i++ {
		work[i] = solution[s.row.External(i)]
	}

	// U'c = b
	for i := 1; i <= order; i++ {
		temp := work[i]
		if temp == 0 {
			continue
		}
		for e := m.Right(m.Diagonal(i)); e != nil && e.col <= order; e = m.Right(e) {
			work[e.col] -= temp * e.Complex()
		}
	}

	// L'x = c
	for i := order; i > 0; i-- {
		pivot := m.Diagonal(i)
		temp := work[i]
		for e := m.Below(pivot); e != nil; e = m.Below(e) {
			temp -= e.Complex() * work[e.row]
		}
		work[i] = temp * pivot.Complex()
	}

	solution[0] = 0
	for i := 1; i <= size; i++ {
		solution[s.row.External(i)] = work[i]
	}
	return nil
}

func (s *Solver) ComplexDeterminant() (complex128, error) {
	if !s.matrix.complex {
		return 0, ErrComplexMismatch
	}
	if !s.factored {
		return 0, ErrNotFactored
	}
	_, order, _, err := s.bounds()
	if err != nil {
		return 0, err
	}
	det := complex(s.perm.sign(), 0)
	for i := 1; i <= order; i++ {
		det /= s.matrix.Diagonal(i).Complex()
	}
	return det, nil
}
