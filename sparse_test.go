package sparse

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetElementReturnsSameElement(t *testing.T) {
	m := NewMatrix()

	e1, err := m.GetElement(2, 3)
	require.NoError(t, err)
	e1.Value = 4

	e2, err := m.GetElement(2, 3)
	require.NoError(t, err)
	require.Same(t, e1, e2)
	assert.Equal(t, 1, m.ElementCount())
	assert.Equal(t, 3, m.Size())

	found, err := m.FindElement(2, 3)
	require.NoError(t, err)
	assert.Same(t, e1, found)
	checkStructure(t, m)
}

func TestGroundIsTrash(t *testing.T) {
	m := NewMatrix()

	e, err := m.GetElement(0, 3)
	require.NoError(t, err)
	e.Value = 7
	other, err := m.GetElement(2, 0)
	require.NoError(t, err)
	assert.Same(t, e, other)

	assert.Equal(t, 0, m.ElementCount())
	assert.Equal(t, 0, m.Size())

	v, err := m.At(0, 3)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestNegativeIndex(t *testing.T) {
	m := NewMatrix()

	_, err := m.GetElement(-1, 2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = m.FindElement(1, -2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	assert.ErrorIs(t, m.Set(-1, -1, 1), ErrInvalidIndex)
	_, err = m.RemoveElement(-3, 1)
	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestFindAndSetDoNotCreate(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.Set(2, 2, 1))

	e, err := m.FindElement(1, 2)
	require.NoError(t, err)
	assert.Nil(t, e)

	require.NoError(t, m.Set(1, 2, 0))
	assert.Equal(t, 1, m.ElementCount())

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestArenaGrowthKeepsElements(t *testing.T) {
	m := NewMatrix()
	const n = 40

	handles := make(map[[2]int]*Element)
	for row := n; row >= 1; row-- {
		for col := 1; col <= n; col++ {
			e, err := m.GetElement(row, col)
			require.NoError(t, err)
			e.Value = float64(row*1000 + col)
			handles[[2]int{row, col}] = e
		}
	}
	require.Equal(t, n*n, m.ElementCount())
	require.Greater(t, len(m.arena.chunks), 1)

	for key, e := range handles {
		found, err := m.FindElement(key[0], key[1])
		require.NoError(t, err)
		require.Same(t, e, found)
		require.Equal(t, float64(key[0]*1000+key[1]), e.Value)
	}
	checkStructure(t, m)
}

func TestRemoveElementReusesSlot(t *testing.T) {
	m := NewMatrix()
	for i := 1; i <= 3; i++ {
		for j := 1; j <= 3; j++ {
			require.NoError(t, m.Set(i, j, float64(i+j)))
		}
	}

	removed, err := m.RemoveElement(2, 2)
	require.NoError(t, err)
	require.True(t, removed)
	assert.Nil(t, m.Diagonal(2))
	assert.Equal(t, 8, m.ElementCount())
	checkStructure(t, m)

	removed, err = m.RemoveElement(2, 2)
	require.NoError(t, err)
	assert.False(t, removed)

	used := m.arena.used
	e, err := m.GetElement(2, 2)
	require.NoError(t, err)
	assert.Equal(t, used, m.arena.used)
	assert.Same(t, e, m.Diagonal(2))
	assert.Zero(t, e.Value)
	checkStructure(t, m)
}

func randomMatrix(rng *rand.Rand, n int, density float64) *Matrix {
	m := NewMatrix()
	for i := 1; i <= n; i++ {
		for j := 1; j <= n; j++ {
			if rng.Float64() < density {
				m.element(i, j).Value = float64(i*100 + j)
			}
		}
	}
	m.expand(n)
	return m
}

func TestSwapRows(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(9)
		m := randomMatrix(rng, n, 0.4)
		before := toDense(m)
		r1, r2 := 1+rng.Intn(n), 1+rng.Intn(n)

		handles := make(map[*Element]float64)
		for col := 1; col <= n; col++ {
			for e := m.FirstInColumn(col); e != nil; e = m.Below(e) {
				handles[e] = e.Value
			}
		}

		require.NoError(t, m.SwapRows(r1, r2))
		checkStructure(t, m)

		after := toDense(m)
		want := toDense(m)
		for j := 0; j < n; j++ {
			want[r1-1][j], want[r2-1][j] = before[r2-1][j], before[r1-1][j]
			for i := 0; i < n; i++ {
				if i != r1-1 && i != r2-1 {
					want[i][j] = before[i][j]
				}
			}
		}
		require.Equal(t, want, after, "swap rows %d and %d", r1, r2)

		for e, v := range handles {
			require.Same(t, e, m.find(e.row, e.col))
			require.Equal(t, v, e.Value)
		}

		require.NoError(t, m.SwapRows(r2, r1))
		checkStructure(t, m)
		require.Equal(t, before, toDense(m))
	}
}

func TestSwapColumns(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(9)
		m := randomMatrix(rng, n, 0.4)
		before := toDense(m)
		c1, c2 := 1+rng.Intn(n), 1+rng.Intn(n)

		require.NoError(t, m.SwapColumns(c1, c2))
		checkStructure(t, m)

		after := toDense(m)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				src := j
				switch j {
				case c1 - 1:
					src = c2 - 1
				case c2 - 1:
					src = c1 - 1
				}
				require.Equal(t, before[i][src], after[i][j], "swap columns %d and %d at (%d, %d)", c1, c2, i+1, j+1)
			}
		}

		require.NoError(t, m.SwapColumns(c2, c1))
		checkStructure(t, m)
		require.Equal(t, before, toDense(m))
	}
}

func TestSwapMovesDiagonal(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.Set(1, 3, 5))
	require.NoError(t, m.Set(3, 1, 6))
	require.NoError(t, m.Set(2, 2, 1))

	assert.Nil(t, m.Diagonal(1))
	assert.Nil(t, m.Diagonal(3))

	require.NoError(t, m.SwapColumns(1, 3))
	require.NotNil(t, m.Diagonal(1))
	require.NotNil(t, m.Diagonal(3))
	assert.Equal(t, 5.0, m.Diagonal(1).Value)
	assert.Equal(t, 6.0, m.Diagonal(3).Value)
	checkStructure(t, m)
}

func TestSwapRejectsGround(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.Set(2, 2, 7))
	require.NoError(t, m.Set(1, 2, 3))

	assert.ErrorIs(t, m.SwapRows(0, 2), ErrInvalidIndex)
	assert.ErrorIs(t, m.SwapColumns(2, 0), ErrInvalidIndex)
	assert.ErrorIs(t, m.SwapRows(-1, 2), ErrInvalidIndex)
	assert.ErrorIs(t, m.SwapColumns(1, -3), ErrInvalidIndex)

	v, err := m.At(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, v)
	assert.Equal(t, 2, m.ElementCount())

	e, err := m.GetElement(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 7.0, e.Value)
	assert.Equal(t, 2, m.ElementCount())
	checkStructure(t, m)
}

func TestResetAndClear(t *testing.T) {
	m := NewMatrix()
	require.NoError(t, m.Set(1, 1, 2))
	require.NoError(t, m.Set(2, 1, 3))

	m.Reset()
	assert.Equal(t, 2, m.ElementCount())
	v, err := m.At(2, 1)
	require.NoError(t, err)
	assert.Zero(t, v)
	checkStructure(t, m)

	m.Clear()
	assert.Equal(t, 0, m.ElementCount())
	assert.Equal(t, 0, m.Size())
	assert.Nil(t, m.Diagonal(1))

	require.NoError(t, m.Set(3, 3, 1))
	assert.Equal(t, 3, m.Size())
	checkStructure(t, m)
}
