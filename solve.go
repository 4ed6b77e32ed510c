package sparse

// Solve computes the solution of the factored system for the current right
// hand side. solution is indexed by external unknown and must hold Size()+1
// entries, slot 0 being the ground. With a degeneracy d the last d unknowns
// are not solved for; their values are read from solution.
func (s *Solver) Solve(solution []float64) error {
	size, order, err := s.checkSolve(len(solution), false)
	if err != nil {
		return err
	}

	m := s.matrix
	work := s.intermediate
	for i := 1; i <= order; i++ {
		work[i] = s.RHS(s.row.External(i))
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
		temp *= pivot.Value
		work[i] = temp
		for e := m.Below(pivot); e != nil && e.row <= order; e = m.Below(e) {
			work[e.row] -= temp * e.Value
		}
	}

	// Ux = c
	for i := order; i > 0; i-- {
		temp := work[i]
		for e := m.Right(m.Diagonal(i)); e != nil; e = m.Right(e) {
			temp -= e.Value * work[e.col]
		}
		work[i] = temp
	}

	solution[0] = 0
	for i := 1; i <= size; i++ {
		solution[s.column.External(i)] = work[i]
	}
	return nil
}

// SolveTransposed solves the transposed system. The right hand side is
// indexed by column and solution by row.
func (s *Solver) SolveTransposed(solution []float64) error {
	size, order, err := s.checkSolve(len(solution), false)
	if err != nil {
		return err
	}

	m := s.matrix
	work := s.intermediate
	for i := 1; i <= order; i++ {
		work[i] = s.RHS(s.column.External(i))
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
			work[e.col] -= temp * e.Value
		}
	}

	// L'x = c
	for i := order; i > 0; i-- {
		pivot := m.Diagonal(i)
		temp := work[i]
		for e := m.Below(pivot); e != nil; e = m.Below(e) {
			temp -= e.Value * work[e.row]
		}
		work[i] = temp * pivot.Value
	}

	solution[0] = 0
	for i := 1; i <= size; i++ {
		solution[s.row.External(i)] = work[i]
	}
	return nil
}

func (s *Solver) checkSolve(length int, isComplex bool) (size, order int, err error) {
	if isComplex != s.matrix.complex {
		return 0, 0, ErrComplexMismatch
	}
	size, order, _, err = s.bounds()
	if err != nil {
		return 0, 0, err
	}
	if length != size+1 {
		return 0, 0, sizeMismatch(length, size+1)
	}
	if !s.factored || s.factoredSize != size {
		return 0, 0, ErrNotFactored
	}
	return size, order, nil
}
