package sparse

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Solver solves Ax = b for a sparse A addressed by external (equation)
// indices. The pivot order found by OrderAndFactor is kept and reused by
// later calls to Factor until the structure of the matrix changes.
type Solver struct {
	config Configuration
	logger *log.Logger
	warn   func(Warning)

	matrix *Matrix
	rhs    []float64 // external order, slot 0 is ground
	irhs   []float64 // imaginary parts, complex solvers only

	row, column *Translation
	perm        permutation
	markowitz   markowitz

	intermediate  []float64
	cintermediate []complex128
	dest         []*Element
	direct       []bool
	operations   int

	needsReordering bool
	partitioned     bool
	factored        bool
	factoredSize    int

	onStep func(step int, pivot Pivot)
}

// NewSolver creates a solver. A nil configuration selects the defaults.
func NewSolver(config *Configuration) (*Solver, error) {
	cfg := DefaultConfiguration()
	if config != nil {
		cfg = *config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	matrix := NewMatrix()
	if cfg.Complex {
		matrix = NewComplexMatrix()
	}

	s := &Solver{
		config:          cfg,
		logger:          log.New(io.Discard),
		matrix:          matrix,
		row:             NewTranslation(),
		column:          NewTranslation(),
		markowitz:       newMarkowitz(cfg),
		needsReordering: true,
	}
	s.perm.track(matrixOrder{s.matrix})
	s.perm.track(rowOrder{s.row})
	s.perm.track(columnOrder{s.column})
	return s, nil
}

// NewComplexSolver creates a solver for complex systems. It is NewSolver with
// Complex set in the configuration.
func NewComplexSolver(config *Configuration) (*Solver, error) {
	cfg := DefaultConfiguration()
	if config != nil {
		cfg = *config
	}
	cfg.Complex = true
	return NewSolver(&cfg)
}

func (s *Solver) Configuration() Configuration { return s.config }

func (s *Solver) IsComplex() bool { return s.matrix.complex }

// SetLogger attaches a logger for pivot diagnostics.
func (s *Solver) SetLogger(logger *log.Logger) { s.logger = logger }

// OnWarning registers a handler for recoverable diagnostics such as small
// pivots.
func (s *Solver) OnWarning(fn func(Warning)) { s.warn = fn }

// Track registers p to receive every row and column swap of the solver.
func (s *Solver) Track(p Permutable) { s.perm.track(p) }

// Size returns the order of the system.
func (s *Solver) Size() int {
	return max(s.matrix.Size(), len(s.rhs)-1)
}

// Matrix exposes the underlying storage in internal order, for inspection.
func (s *Solver) Matrix() *Matrix { return s.matrix }

// RowTranslation and ColumnTranslation expose the current ordering.
func (s *Solver) RowTranslation() *Translation { return s.row }

func (s *Solver) ColumnTranslation() *Translation { return s.column }

func (s *Solver) Factored() bool { return s.factored }

// GetElement returns the element at external (row, col), creating it when
// needed. A new element invalidates the current pivot order.
func (s *Solver) GetElement(row, col int) (*Element, error) {
	if row < 0 || col < 0 {
		return nil, invalidIndex(row, col)
	}
	r, c := s.row.Internal(row), s.column.Internal(col)
	if e := s.matrix.find(r, c); e != nil {
		return e, nil
	}
	e := s.matrix.element(r, c)
	s.structureChanged()
	return e, nil
}

// FindElement returns the element at external (row, col) or nil.
func (s *Solver) FindElement(row, col int) (*Element, error) {
	if row < 0 || col < 0 {
		return nil, invalidIndex(row, col)
	}
	if size := s.Size(); row > size || col > size {
		return nil, nil
	}
	return s.matrix.find(s.row.Internal(row), s.column.Internal(col)), nil
}

func (s *Solver) At(row, col int) (float64, error) {
	if row < 0 || col < 0 {
		return 0, invalidIndex(row, col)
	}
	if size := s.Size(); row > size || col > size {
		return 0, nil
	}
	return s.matrix.At(s.row.Internal(row), s.column.Internal(col))
}

// Set writes value at external (row, col). Zero never creates an element.
func (s *Solver) Set(row, col int, value float64) error {
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
	e.Value, e.Imag = value, 0
	return nil
}

// Add accumulates value at external (row, col).
func (s *Solver) Add(row, col int, value float64) error {
	e, err := s.GetElement(row, col)
	if err != nil {
		return err
	}
	e.Add(value)
	return nil
}

func (s *Solver) growRHS(index int) {
	s.rhs = extend(s.rhs, index+1)
	s.irhs = extend(s.irhs, index+1)
}

// SetRHS writes the right hand side of an external equation. Index 0 is the
// ground and is ignored.
func (s *Solver) SetRHS(index int, value float64) error {
	if index < 0 {
		return invalidIndex(index, 0)
	}
	if index == 0 {
		return nil
	}
	s.growRHS(index)
	s.rhs[index], s.irhs[index] = value, 0
	return nil
}

func (s *Solver) AddRHS(index int, value float64) error {
	if index < 0 {
		return invalidIndex(index, 0)
	}
	if index == 0 {
		return nil
	}
	s.growRHS(index)
	s.rhs[index] += value
	return nil
}

func (s *Solver) RHS(index int) float64 {
	if index <= 0 || index >= len(s.rhs) {
		return 0
	}
	return s.rhs[index]
}

// ForceReorder discards the pivot order. The next Factor or OrderAndFactor
// searches new pivots from the first step. Call it after Factor reports a
// singular matrix.
func (s *Solver) ForceReorder() { s.structureChanged() }

func (s *Solver) structureChanged() {
	s.needsReordering = true
	s.partitioned = false
	s.factored = false
}

func (s *Solver) rhsNonzero(row int) bool {
	return s.ComplexRHS(s.row.External(row)) != 0
}

// order is the number of unknowns taking part in the factorization; limit is
// the last index open to pivot search.
func (s *Solver) bounds() (size, order, limit int, err error) {
	size = s.Size()
	order = size - s.config.Degeneracy
	limit = order - s.config.SearchReduction
	if order < 0 || limit < 0 {
		return 0, 0, 0, fmt.Errorf("%w: degeneracy %d and search reduction %d exceed size %d",
			ErrInvalidConfiguration, s.config.Degeneracy, s.config.SearchReduction, size)
	}
	return size, order, limit, nil
}

func (s *Solver) singular(step int) error {
	return &SingularError{Step: step, Row: s.row.External(step), Col: s.column.External(step)}
}

func (s *Solver) smallPivot(step int, pivot *Element) {
	w := Warning{
		Kind:      SmallPivot,
		Step:      step,
		Row:       s.row.External(pivot.row),
		Col:       s.column.External(pivot.col),
		Magnitude: s.matrix.magnitude(pivot),
	}
	if s.config.Annotate >= 1 {
		s.logger.Warn(w.Kind.String(), "step", w.Step, "row", w.Row, "col", w.Col, "magnitude", w.Magnitude)
	}
	if s.warn != nil {
		s.warn(w)
	}
}

// Reset zeroes the matrix and the right hand side. Structure and pivot order
// are kept for the next Factor.
func (s *Solver) Reset() {
	s.matrix.Reset()
	clear(s.rhs)
	clear(s.irhs)
	s.factored = false
}

// Clear discards all elements, the right hand side and the pivot order.
// Element handles obtained before are no longer valid.
func (s *Solver) Clear() {
	s.matrix.Clear()
	s.rhs = s.rhs[:0]
	s.irhs = s.irhs[:0]
	s.row.Clear()
	s.column.Clear()
	s.perm.swaps = 0
	s.factoredSize = 0
	s.operations = 0
	s.structureChanged()
}

// Determinant returns the determinant of the factored matrix. Complex
// solvers use ComplexDeterminant.
func (s *Solver) Determinant() (float64, error) {
	if s.matrix.complex {
		return 0, ErrComplexMismatch
	}
	if !s.factored {
		return 0, ErrNotFactored
	}
	_, order, _, err := s.bounds()
	if err != nil {
		return 0, err
	}
	det := s.perm.sign()
	for i := 1; i <= order; i++ {
		det /= s.matrix.Diagonal(i).Value
	}
	return det, nil
}
