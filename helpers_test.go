package sparse

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// stamper is what the sparse and dense solvers share for loading a system.
type stamper interface {
	Add(row, col int, value float64) error
	SetRHS(index int, value float64) error
}

// stampDense loads a 0-based dense matrix and rhs into 1-based external
// indices, skipping zeros.
func stampDense(t *testing.T, s stamper, a [][]float64, b []float64) {
	t.Helper()
	for i, row := range a {
		for j, v := range row {
			if v != 0 {
				require.NoError(t, s.Add(i+1, j+1, v))
			}
		}
	}
	for i, v := range b {
		require.NoError(t, s.SetRHS(i+1, v))
	}
}

// randomSystem returns a nonsingular sparse system whose rows are shuffled,
// so several diagonals are structurally zero.
func randomSystem(rng *rand.Rand, n int, density float64) ([][]float64, []float64) {
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		sum := 0.0
		for j := range a[i] {
			if i != j && rng.Float64() < density {
				a[i][j] = rng.Float64()*2 - 1
				sum += abs(a[i][j])
			}
		}
		a[i][i] = sum + 1 + rng.Float64()
	}
	rng.Shuffle(n, func(i, j int) { a[i], a[j] = a[j], a[i] })

	b := make([]float64, n)
	for i := range b {
		if rng.Float64() < 0.7 {
			b[i] = rng.Float64()*10 - 5
		}
	}
	return a, b
}

// dominantSystem returns a system dominant by rows and by columns, in
// natural order, so every trailing diagonal stays usable as a fixed pivot.
func dominantSystem(rng *rand.Rand, n int, density float64) ([][]float64, []float64) {
	a := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		for j := range a[i] {
			if i != j && rng.Float64() < density {
				a[i][j] = rng.Float64()*2 - 1
			}
		}
	}
	for i := range a {
		sum := 1 + rng.Float64()
		for j := range a {
			if i != j {
				sum += abs(a[i][j]) + abs(a[j][i])
			}
		}
		a[i][i] = sum
	}

	b := make([]float64, n)
	for i := range b {
		b[i] = rng.Float64()*10 - 5
	}
	return a, b
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// referenceSolve solves a x = b, or a' x = b, with gonum and returns x
// 1-based with a zero ground slot.
func referenceSolve(t *testing.T, a [][]float64, b []float64, transpose bool) []float64 {
	t.Helper()
	n := len(a)
	data := make([]float64, 0, n*n)
	for _, row := range a {
		data = append(data, row...)
	}
	var m mat.Matrix = mat.NewDense(n, n, data)
	if transpose {
		m = m.T()
	}

	var x mat.VecDense
	require.NoError(t, x.SolveVec(m, mat.NewVecDense(n, append([]float64(nil), b...))))

	solution := make([]float64, n+1)
	for i := 0; i < n; i++ {
		solution[i+1] = x.AtVec(i)
	}
	return solution
}

// toDense snapshots a matrix in internal order, 0-based.
func toDense(m *Matrix) [][]float64 {
	a := make([][]float64, m.Size())
	for i := range a {
		a[i] = make([]float64, m.Size())
	}
	for col := 1; col <= m.Size(); col++ {
		for e := m.FirstInColumn(col); e != nil; e = m.Below(e) {
			a[e.row-1][e.col-1] = e.Value
		}
	}
	return a
}

// checkStructure verifies the row and column lists are sorted, doubly
// linked and agree with each other and with the diagonal cache.
func checkStructure(t *testing.T, m *Matrix) {
	t.Helper()
	inRows, inCols := 0, 0

	for row := 1; row <= m.Size(); row++ {
		var prev *Element
		for e := m.FirstInRow(row); e != nil; e = m.Right(e) {
			require.Equal(t, row, e.row, "row list of %d holds (%d, %d)", row, e.row, e.col)
			require.Same(t, prev, m.Left(e))
			if prev != nil {
				require.Less(t, prev.col, e.col, "row %d not sorted", row)
			}
			require.Same(t, e, m.find(e.row, e.col))
			prev = e
			inRows++
		}
		require.Same(t, prev, m.LastInRow(row))
	}

	for col := 1; col <= m.Size(); col++ {
		var prev *Element
		for e := m.FirstInColumn(col); e != nil; e = m.Below(e) {
			require.Equal(t, col, e.col, "column list of %d holds (%d, %d)", col, e.row, e.col)
			require.Same(t, prev, m.Above(e))
			if prev != nil {
				require.Less(t, prev.row, e.row, "column %d not sorted", col)
			}
			prev = e
			inCols++
		}
		require.Same(t, prev, m.LastInColumn(col))
	}

	require.Equal(t, inRows, inCols)
	require.Equal(t, m.ElementCount(), inRows)

	for i := 1; i <= m.Size(); i++ {
		require.Same(t, m.ptr(m.lookup(i, i)), m.Diagonal(i), "diagonal cache at %d", i)
	}
}

// requireSolution compares two 1-based solutions.
func requireSolution(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := 1; i < len(want); i++ {
		require.InDelta(t, want[i], got[i], 1e-9*(1+abs(want[i])), "unknown %d", i)
	}
}
