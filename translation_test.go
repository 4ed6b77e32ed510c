package sparse

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationIdentity(t *testing.T) {
	tr := NewTranslation()
	for i := 0; i < 20; i++ {
		assert.Equal(t, i, tr.Internal(i))
		assert.Equal(t, i, tr.External(i))
	}
}

func TestTranslationLookupDoesNotGrow(t *testing.T) {
	tr := NewTranslation()
	n := len(tr.extToInt)

	assert.Equal(t, 1_000_000, tr.Internal(1_000_000))
	assert.Equal(t, 1_000_000, tr.External(1_000_000))
	assert.Len(t, tr.extToInt, n)
	assert.Len(t, tr.intToExt, n)

	tr.Swap(2, 9)
	assert.Equal(t, 9, tr.Internal(2))
	assert.Equal(t, 2, tr.External(9))
	assert.Equal(t, 10, tr.Internal(10))
}

func TestTranslationSwapStaysBijective(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tr := NewTranslation()
	const n = 12

	for k := 0; k < 100; k++ {
		tr.Swap(1+rng.Intn(n), 1+rng.Intn(n))
		seen := make(map[int]bool)
		for i := 1; i <= n; i++ {
			ext := tr.External(i)
			require.Equal(t, i, tr.Internal(ext))
			require.False(t, seen[ext])
			seen[ext] = true
		}
	}

	tr.Clear()
	for i := 1; i <= n; i++ {
		assert.Equal(t, i, tr.External(i))
	}
}

func TestUnscramble(t *testing.T) {
	tr := NewTranslation()
	tr.Swap(1, 3)

	external := make([]float64, 4)
	tr.Unscramble([]float64{0, 10, 20, 30}, external)
	assert.Equal(t, []float64{0, 30, 20, 10}, external)
}
