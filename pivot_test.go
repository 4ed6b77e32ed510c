package sparse

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pivotRecord struct {
	step     int
	row, col int // external
	pivot    Pivot
}

func recordPivots(s *Solver) *[]pivotRecord {
	var records []pivotRecord
	s.onStep = func(step int, pivot Pivot) {
		records = append(records, pivotRecord{
			step:  step,
			row:   s.row.External(step),
			col:   s.column.External(step),
			pivot: pivot,
		})
	}
	return &records
}

func TestSingletonPivotFirst(t *testing.T) {
	s, err := NewSolver(nil)
	require.NoError(t, err)
	stampDense(t, s, [][]float64{
		{2, 1, 1},
		{0, 3, 1},
		{0, 1, 4},
	}, nil)
	records := recordPivots(s)

	_, err = s.OrderAndFactor()
	require.NoError(t, err)

	first := (*records)[0]
	assert.Equal(t, SearchSingleton, first.pivot.Method)
	assert.Equal(t, PivotGood, first.pivot.Info)
	assert.Equal(t, 1, first.row)
	assert.Equal(t, 1, first.col)
}

func TestOffDiagonalSingleton(t *testing.T) {
	s, err := NewSolver(nil)
	require.NoError(t, err)
	stampDense(t, s, [][]float64{
		{0, 1},
		{1, 0},
	}, nil)
	records := recordPivots(s)

	_, err = s.OrderAndFactor()
	require.NoError(t, err)

	first := (*records)[0]
	assert.Equal(t, SearchSingleton, first.pivot.Method)
	assert.Equal(t, 1, first.row)
	assert.Equal(t, 2, first.col)
}

func TestEntireMatrixSearch(t *testing.T) {
	s, err := NewSolver(nil)
	require.NoError(t, err)
	stampDense(t, s, [][]float64{
		{0, 1, 2},
		{3, 0, 4},
		{5, 6, 0},
	}, nil)
	records := recordPivots(s)

	_, err = s.OrderAndFactor()
	require.NoError(t, err)

	first := (*records)[0]
	assert.Equal(t, SearchEntireMatrix, first.pivot.Method)
	assert.Equal(t, PivotSuboptimal, first.pivot.Info)
	assert.NotEqual(t, first.row, first.col)
}

func TestDiagonalPivotingOff(t *testing.T) {
	config := DefaultConfiguration()
	config.DiagonalPivoting = false
	s, err := NewSolver(&config)
	require.NoError(t, err)
	stampDense(t, s, [][]float64{
		{4, 1, 1},
		{1, 4, 1},
		{1, 1, 4},
	}, nil)
	records := recordPivots(s)

	_, err = s.OrderAndFactor()
	require.NoError(t, err)
	for _, r := range *records {
		assert.Contains(t, []SearchMethod{SearchSingleton, SearchEntireMatrix}, r.pivot.Method)
	}
}

func TestQuickDiagonalPrefersSmallProduct(t *testing.T) {
	s, err := NewSolver(nil)
	require.NoError(t, err)
	// Row and column 3 are the sparsest; its diagonal has the smallest
	// product and is taken first.
	stampDense(t, s, [][]float64{
		{4, 1, 0, 1},
		{1, 4, 1, 1},
		{0, 1, 4, 0},
		{1, 1, 0, 4},
	}, nil)
	records := recordPivots(s)

	_, err = s.OrderAndFactor()
	require.NoError(t, err)

	first := (*records)[0]
	assert.Equal(t, SearchQuickDiagonal, first.pivot.Method)
	assert.Equal(t, 3, first.row)
	assert.Equal(t, 3, first.col)
}

func TestPivotsPassThresholds(t *testing.T) {
	rng := rand.New(rand.NewSource(17))

	for trial := 0; trial < 30; trial++ {
		n := 3 + rng.Intn(10)
		a, b := randomSystem(rng, n, 0.3)

		s, err := NewSolver(nil)
		require.NoError(t, err)
		stampDense(t, s, a, b)

		s.onStep = func(step int, pivot Pivot) {
			if pivot.Info == PivotBad || pivot.Method == SearchFixed {
				return
			}
			// The lower column keeps its values and the diagonal holds the
			// reciprocal after elimination.
			magnitude := math.Abs(1 / pivot.Element.Value)
			largest := 0.0
			for e := s.matrix.Below(pivot.Element); e != nil; e = s.matrix.Below(e) {
				largest = max(largest, math.Abs(e.Value))
			}
			require.Greater(t, magnitude, s.config.AbsolutePivotThreshold, "step %d", step)
			require.Greater(t, magnitude, s.config.RelativePivotThreshold*largest, "step %d", step)
		}

		_, err = s.OrderAndFactor()
		require.NoError(t, err)
	}
}

func TestSmallPivotWarning(t *testing.T) {
	s, err := NewSolver(nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(1, 1, 1e-20))
	require.NoError(t, s.SetRHS(1, 1e-20))

	var warnings []Warning
	s.OnWarning(func(w Warning) { warnings = append(warnings, w) })
	records := recordPivots(s)

	rank, err := s.OrderAndFactor()
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	require.Len(t, warnings, 1)
	assert.Equal(t, SmallPivot, warnings[0].Kind)
	assert.Equal(t, 1, warnings[0].Row)
	assert.Equal(t, 1, warnings[0].Col)
	assert.Equal(t, 1e-20, warnings[0].Magnitude)
	assert.Equal(t, PivotBad, (*records)[0].pivot.Info)

	solution := make([]float64, 2)
	require.NoError(t, s.Solve(solution))
	assert.InDelta(t, 1, solution[1], 1e-12)
}

func TestSmallPivotLogFollowsAnnotate(t *testing.T) {
	for _, annotate := range []int{0, 1} {
		for _, dense := range []bool{false, true} {
			config := DefaultConfiguration()
			config.Annotate = annotate

			var s interface {
				stamper
				SetLogger(*log.Logger)
				OnWarning(func(Warning))
				OrderAndFactor() (int, error)
			}
			var err error
			if dense {
				s, err = NewDenseSolver(&config)
			} else {
				s, err = NewSolver(&config)
			}
			require.NoError(t, err)

			var buf bytes.Buffer
			s.SetLogger(log.New(&buf))
			warnings := 0
			s.OnWarning(func(Warning) { warnings++ })

			require.NoError(t, s.Add(1, 1, 1e-20))
			_, err = s.OrderAndFactor()
			require.NoError(t, err)

			assert.Equal(t, 1, warnings, "annotate %d, dense %v", annotate, dense)
			if annotate == 0 {
				assert.Empty(t, buf.String(), "dense %v", dense)
			} else {
				assert.Contains(t, buf.String(), "small pivot", "dense %v", dense)
			}
		}
	}
}

func TestZeroSubmatrixHasNoPivot(t *testing.T) {
	s, err := NewSolver(nil)
	require.NoError(t, err)
	require.NoError(t, s.Add(1, 1, 0))
	require.NoError(t, s.Add(2, 2, 1))

	rank, err := s.OrderAndFactor()
	assert.Equal(t, 1, rank)
	require.ErrorIs(t, err, ErrSingular)

	var singular *SingularError
	require.ErrorAs(t, err, &singular)
	assert.Equal(t, 2, singular.Step)
	assert.Equal(t, 1, singular.Row)
	assert.Equal(t, 1, singular.Col)
}
