package sparse

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// orderTracker mirrors the row and column order of the system it tracks.
type orderTracker struct {
	rows, cols  *Translation
	rowSwaps    int
	columnSwaps int
}

func newOrderTracker() *orderTracker {
	return &orderTracker{rows: NewTranslation(), cols: NewTranslation()}
}

func (o *orderTracker) SwapRows(row1, row2 int) {
	o.rows.Swap(row1, row2)
	o.rowSwaps++
}

func (o *orderTracker) SwapColumns(col1, col2 int) {
	o.cols.Swap(col1, col2)
	o.columnSwaps++
}

func TestPermutationNotifiesOnce(t *testing.T) {
	var p permutation
	a, b := newOrderTracker(), newOrderTracker()
	p.track(a)
	p.track(b)

	p.swapRows(1, 2)
	p.swapColumns(3, 1)
	p.swapRows(2, 2)

	for _, o := range []*orderTracker{a, b} {
		assert.Equal(t, 1, o.rowSwaps)
		assert.Equal(t, 1, o.columnSwaps)
	}
	assert.Equal(t, 2, p.swaps)
	assert.Equal(t, 1.0, p.sign())
}

func TestSolverTrackersFollowPivoting(t *testing.T) {
	rng := rand.New(rand.NewSource(5))

	for trial := 0; trial < 20; trial++ {
		n := 3 + rng.Intn(6)
		a, b := randomSystem(rng, n, 0.3)

		s, err := NewSolver(nil)
		require.NoError(t, err)
		tracker := newOrderTracker()
		s.Track(tracker)
		stampDense(t, s, a, b)

		_, err = s.OrderAndFactor()
		require.NoError(t, err)

		assert.Equal(t, s.perm.swaps, tracker.rowSwaps+tracker.columnSwaps)
		for i := 1; i <= n; i++ {
			require.Equal(t, s.RowTranslation().External(i), tracker.rows.External(i))
			require.Equal(t, s.ColumnTranslation().External(i), tracker.cols.External(i))
		}
	}
}

func TestDenseTrackersFollowPivoting(t *testing.T) {
	rng := rand.New(rand.NewSource(6))

	for trial := 0; trial < 20; trial++ {
		n := 3 + rng.Intn(6)
		a, b := randomSystem(rng, n, 0.5)

		s, err := NewDenseSolver(nil)
		require.NoError(t, err)
		tracker := newOrderTracker()
		s.Track(tracker)
		stampDense(t, s, a, b)

		_, err = s.OrderAndFactor()
		require.NoError(t, err)

		assert.Equal(t, s.perm.swaps, tracker.rowSwaps+tracker.columnSwaps)
		for i := 1; i <= n; i++ {
			require.Equal(t, s.RowTranslation().External(i), tracker.rows.External(i))
			require.Equal(t, s.ColumnTranslation().External(i), tracker.cols.External(i))
		}
	}
}
