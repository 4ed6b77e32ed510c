package sparse

import "fmt"

// System is the view a preconditioning pass gets of a sparse solver. All
// indices are internal. Swaps go through the solver so the translations and
// every tracker follow them.
type System struct {
	s *Solver
}

func (sys System) Size() int { return sys.s.Size() }

// Active returns the last index open to reordering.
func (sys System) Active() int {
	_, _, limit, err := sys.s.bounds()
	if err != nil {
		return 0
	}
	return limit
}

func (sys System) Diagonal(i int) *Element { return sys.s.matrix.Diagonal(i) }

func (sys System) Find(row, col int) *Element {
	if row <= 0 || col <= 0 {
		return nil
	}
	return sys.s.matrix.find(row, col)
}

func (sys System) FirstInRow(row int) *Element { return sys.s.matrix.FirstInRow(row) }

func (sys System) FirstInColumn(col int) *Element { return sys.s.matrix.FirstInColumn(col) }

func (sys System) Right(e *Element) *Element { return sys.s.matrix.Right(e) }

func (sys System) Below(e *Element) *Element { return sys.s.matrix.Below(e) }

// RHS returns the right hand side of internal row i.
func (sys System) RHS(row int) float64 { return sys.s.RHS(sys.s.row.External(row)) }

func (sys System) SwapRows(row1, row2 int) error {
	if err := sys.check(row1, row2); err != nil {
		return err
	}
	sys.s.perm.swapRows(row1, row2)
	return nil
}

func (sys System) SwapColumns(col1, col2 int) error {
	if err := sys.check(col1, col2); err != nil {
		return err
	}
	sys.s.perm.swapColumns(col1, col2)
	return nil
}

func (sys System) check(i, j int) error {
	if size := sys.Size(); i < 1 || j < 1 || i > size || j > size {
		return invalidIndex(i, j)
	}
	return nil
}

// Precondition runs fn over the system before factoring. Any previous
// factorization and pivot order are discarded.
func (s *Solver) Precondition(fn func(System) error) error {
	s.matrix.expand(s.Size())
	err := fn(System{s: s})
	s.structureChanged()
	return err
}

// PinTrailing moves the given external unknowns, with their equations, to
// the end of the ordering and keeps them out of the pivot search.
func (s *Solver) PinTrailing(external ...int) error {
	size, order, _, err := s.bounds()
	if err != nil {
		return err
	}
	if len(external) > order {
		return fmt.Errorf("%w: %d pinned unknowns exceed order %d", ErrInvalidConfiguration, len(external), order)
	}

	seen := make(map[int]bool, len(external))
	for _, index := range external {
		if index < 1 || index > size || seen[index] {
			return invalidIndex(index, index)
		}
		seen[index] = true
	}

	err = s.Precondition(func(sys System) error {
		first := order - len(external) + 1
		for j, index := range external {
			if err := sys.SwapRows(s.row.Internal(index), first+j); err != nil {
				return err
			}
			if err := sys.SwapColumns(s.column.Internal(index), first+j); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.config.SearchReduction = len(external)
	return nil
}
