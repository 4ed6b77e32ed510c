package sparse

import (
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
)

// DenseSolver solves small or densely coupled systems with rook pivoting.
// It shares the lifecycle of Solver: stamp, OrderAndFactor or Factor, Solve.
type DenseSolver struct {
	config Configuration
	logger *log.Logger
	warn   func(Warning)

	matrix *DenseMatrix
	vector *denseVector

	row, column *Translation
	perm        permutation
	strategy    RookPivoting

	intermediate []float64

	needsReordering bool
	factored        bool
	factoredSize    int
}

func NewDenseSolver(config *Configuration) (*DenseSolver, error) {
	cfg := DefaultConfiguration()
	if config != nil {
		cfg = *config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Complex {
		return nil, fmt.Errorf("%w: the dense solver is real only", ErrInvalidConfiguration)
	}

	s := &DenseSolver{
		config: cfg,
		logger: log.New(io.Discard),
		matrix: NewDenseMatrix(),
		vector: &denseVector{},
		row:    NewTranslation(),
		column: NewTranslation(),
		strategy: RookPivoting{
			RelativeThreshold: cfg.RelativePivotThreshold,
			AbsoluteThreshold: cfg.AbsolutePivotThreshold,
		},
		needsReordering: true,
	}
	s.perm.track(denseOrder{s.matrix})
	s.perm.track(s.vector)
	s.perm.track(rowOrder{s.row})
	s.perm.track(columnOrder{s.column})
	return s, nil
}

func (s *DenseSolver) SetLogger(logger *log.Logger) { s.logger = logger }

func (s *DenseSolver) OnWarning(fn func(Warning)) { s.warn = fn }

func (s *DenseSolver) Track(p Permutable) { s.perm.track(p) }

func (s *DenseSolver) Size() int { return max(s.matrix.Size(), s.vector.size()) }

func (s *DenseSolver) RowTranslation() *Translation { return s.row }

func (s *DenseSolver) ColumnTranslation() *Translation { return s.column }

// At and Set address the matrix by external indices.
func (s *DenseSolver) At(row, col int) (float64, error) {
	if row < 0 || col < 0 {
		return 0, invalidIndex(row, col)
	}
	if size := s.Size(); row > size || col > size {
		return 0, nil
	}
	return s.matrix.At(s.row.Internal(row), s.column.Internal(col))
}

func (s *DenseSolver) Set(row, col int, value float64) error {
	if row < 0 || col < 0 {
		return invalidIndex(row, col)
	}
	s.grown(max(row, col))
	return s.matrix.Set(s.row.Internal(row), s.column.Internal(col), value)
}

func (s *DenseSolver) Add(row, col int, value float64) error {
	if row < 0 || col < 0 {
		return invalidIndex(row, col)
	}
	s.grown(max(row, col))
	return s.matrix.Add(s.row.Internal(row), s.column.Internal(col), value)
}

// ForceReorder discards the pivot order kept for the next Factor.
func (s *DenseSolver) ForceReorder() {
	s.needsReordering = true
	s.factored = false
}

func (s *DenseSolver) grown(index int) {
	if index > s.Size() {
		s.needsReordering = true
		s.factored = false
	}
}

func (s *DenseSolver) SetRHS(index int, value float64) error {
	if index < 0 {
		return invalidIndex(index, 0)
	}
	if index == 0 {
		return nil
	}
	s.grown(index)
	i := s.row.Internal(index)
	s.vector.grow(i)
	s.vector.values[i] = value
	return nil
}

func (s *DenseSolver) AddRHS(index int, value float64) error {
	if index < 0 {
		return invalidIndex(index, 0)
	}
	if index == 0 {
		return nil
	}
	s.grown(index)
	i := s.row.Internal(index)
	s.vector.grow(i)
	s.vector.values[i] += value
	return nil
}

func (s *DenseSolver) RHS(index int) float64 {
	if index <= 0 {
		return 0
	}
	return s.vector.at(s.row.Internal(index))
}

func (s *DenseSolver) bounds() (size, order, limit int, err error) {
	size = s.Size()
	order = size - s.config.Degeneracy
	limit = order - s.config.SearchReduction
	if order < 0 || limit < 0 {
		return 0, 0, 0, fmt.Errorf("%w: degeneracy %d and search reduction %d exceed size %d",
			ErrInvalidConfiguration, s.config.Degeneracy, s.config.SearchReduction, size)
	}
	return size, order, limit, nil
}

func (s *DenseSolver) system() DenseSystem { return DenseSystem{s: s} }

// OrderAndFactor factors the matrix, keeping diagonals that pass the
// threshold test while no reordering is pending and searching rook pivots
// from the first one that does not.
func (s *DenseSolver) OrderAndFactor() (int, error) {
	size, order, limit, err := s.bounds()
	if err != nil {
		return 0, err
	}
	s.matrix.expand(size)
	s.vector.grow(size)
	s.intermediate = extend(s.intermediate, size+1)
	s.factored = false
	sys := s.system()

	step := 1
	if !s.needsReordering && s.factoredSize == size {
		for ; step <= limit && s.strategy.IsValidPivot(sys, step, limit); step++ {
			s.eliminate(step, size)
		}
		s.needsReordering = true
	}

	for ; step <= order; step++ {
		if step <= limit {
			row, col, info := s.strategy.FindPivot(sys, step, limit)
			if info == PivotNone {
				return step - 1, s.singular(step)
			}
			if info == PivotBad {
				s.smallPivot(step, row, col)
			}
			if err := s.strategy.MovePivot(sys, row, col, step); err != nil {
				return step - 1, err
			}
		}
		if s.matrix.get(step, step) == 0 {
			return step - 1, s.singular(step)
		}
		s.eliminate(step, size)
	}

	s.needsReordering = false
	s.factored = true
	s.factoredSize = size
	return order, nil
}

// Factor refactors with the current order.
func (s *DenseSolver) Factor() error {
	size, order, _, err := s.bounds()
	if err != nil {
		return err
	}
	if s.needsReordering || s.factoredSize != size {
		_, err := s.OrderAndFactor()
		return err
	}

	s.factored = false
	for step := 1; step <= order; step++ {
		if s.matrix.get(step, step) == 0 {
			return s.singular(step)
		}
		s.eliminate(step, size)
	}
	s.factored = true
	return nil
}

// eliminate stores the reciprocal pivot on the diagonal and the multipliers
// below it, then updates the trailing block. Rows with a zero multiplier are
// skipped.
func (s *DenseSolver) eliminate(step, size int) {
	m := s.matrix
	inverse := 1 / m.get(step, step)
	m.set(step, step, inverse)

	for r := step + 1; r <= size; r++ {
		lead := m.get(r, step)
		if lead == 0 {
			continue
		}
		lead *= inverse
		m.set(r, step, lead)
		for c := step + 1; c <= size; c++ {
			m.set(r, c, m.get(r, c)-lead*m.get(step, c))
		}
	}
}

func (s *DenseSolver) singular(step int) error {
	return &SingularError{Step: step, Row: s.row.External(step), Col: s.column.External(step)}
}

func (s *DenseSolver) smallPivot(step, row, col int) {
	w := Warning{
		Kind:      SmallPivot,
		Step:      step,
		Row:       s.row.External(row),
		Col:       s.column.External(col),
		Magnitude: math.Abs(s.matrix.get(row, col)),
	}
	if s.config.Annotate >= 1 {
		s.logger.Warn(w.Kind.String(), "step", w.Step, "row", w.Row, "col", w.Col, "magnitude", w.Magnitude)
	}
	if s.warn != nil {
		s.warn(w)
	}
}

func (s *DenseSolver) checkSolve(solution []float64) (size, order int, err error) {
	size, order, _, err = s.bounds()
	if err != nil {
		return 0, 0, err
	}
	if len(solution) != size+1 {
		return 0, 0, sizeMismatch(len(solution), size+1)
	}
	if !s.factored || s.factoredSize != size {
		return 0, 0, ErrNotFactored
	}
	return size, order, nil
}

// Solve solves the factored system for the current right hand side; see
// Solver.Solve for the layout of solution.
func (s *DenseSolver) Solve(solution []float64) error {
	size, order, err := s.checkSolve(solution)
	if err != nil {
		return err
	}

	m := s.matrix
	work := s.intermediate
	for i := order + 1; i <= size; i++ {
		work[i] = solution[s.column.External(i)]
	}
	for i := 1; i <= order; i++ {
		temp := s.vector.at(i)
		for j := 1; j < i; j++ {
			temp -= m.get(i, j) * work[j]
		}
		work[i] = temp
	}
	for i := order; i > 0; i-- {
		temp := work[i]
		for j := i + 1; j <= size; j++ {
			temp -= m.get(i, j) * work[j]
		}
		work[i] = temp * m.get(i, i)
	}

	solution[0] = 0
	for i := 1; i <= size; i++ {
		solution[s.column.External(i)] = work[i]
	}
	return nil
}

// SolveTransposed solves the transposed factored system.
func (s *DenseSolver) SolveTransposed(solution []float64) error {
	size, order, err := s.checkSolve(solution)
	if err != nil {
		return err
	}

	m := s.matrix
	work := s.intermediate
	for i := order + 1; i <= size; i++ {
		work[i] = solution[s.row.External(i)]
	}

	// U'c = b
	for i := 1; i <= order; i++ {
		temp := s.vector.at(s.row.Internal(s.column.External(i)))
		for j := 1; j < i; j++ {
			temp -= m.get(j, i) * work[j]
		}
		work[i] = temp * m.get(i, i)
	}

	// L'x = c
	for i := order; i > 0; i-- {
		temp := work[i]
		for j := i + 1; j <= size; j++ {
			temp -= m.get(j, i) * work[j]
		}
		work[i] = temp
	}

	solution[0] = 0
	for i := 1; i <= size; i++ {
		solution[s.row.External(i)] = work[i]
	}
	return nil
}

// Precondition runs fn over the system. Swaps made by fn reach the matrix,
// the right hand side and both translations exactly once.
func (s *DenseSolver) Precondition(fn func(DenseSystem) error) error {
	size := s.Size()
	s.matrix.expand(size)
	s.vector.grow(size)
	err := fn(s.system())
	s.needsReordering = true
	s.factored = false
	return err
}

// Reset zeroes the matrix and right hand side and keeps the order.
func (s *DenseSolver) Reset() {
	s.matrix.Reset()
	clear(s.vector.values)
	s.factored = false
}

func (s *DenseSolver) Clear() {
	s.matrix.Clear()
	s.vector.values = s.vector.values[:0]
	s.row.Clear()
	s.column.Clear()
	s.perm.swaps = 0
	s.factoredSize = 0
	s.needsReordering = true
	s.factored = false
}

func (s *DenseSolver) Determinant() (float64, error) {
	if !s.factored {
		return 0, ErrNotFactored
	}
	_, order, _, err := s.bounds()
	if err != nil {
		return 0, err
	}
	det := s.perm.sign()
	for i := 1; i <= order; i++ {
		det /= s.matrix.get(i, i)
	}
	return det, nil
}

// DenseSystem is the view pivoting strategies and preconditioning passes get
// of a dense solver. Indices are internal.
type DenseSystem struct {
	s *DenseSolver
}

func (sys DenseSystem) Size() int { return sys.s.Size() }

func (sys DenseSystem) at(row, col int) float64 { return sys.s.matrix.get(row, col) }

func (sys DenseSystem) At(row, col int) (float64, error) { return sys.s.matrix.At(row, col) }

// RHS returns the right hand side of internal row i.
func (sys DenseSystem) RHS(row int) float64 { return sys.s.vector.at(row) }

func (sys DenseSystem) SwapRows(row1, row2 int) error {
	if err := sys.check(row1, row2); err != nil {
		return err
	}
	sys.s.perm.swapRows(row1, row2)
	return nil
}

func (sys DenseSystem) SwapColumns(col1, col2 int) error {
	if err := sys.check(col1, col2); err != nil {
		return err
	}
	sys.s.perm.swapColumns(col1, col2)
	return nil
}

func (sys DenseSystem) check(i, j int) error {
	if size := sys.Size(); i < 1 || j < 1 || i > size || j > size {
		return invalidIndex(i, j)
	}
	return nil
}
