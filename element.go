package sparse

const (
	chunkBits = 10
	chunkSize = 1 << chunkBits
	chunkMask = chunkSize - 1

	// Slot 0 of the arena is the trash element. It is never linked into a
	// row or column, so a zero link also means "no element".
	trash int32 = 0
)

// Element is one structural nonzero of a sparse matrix. The pointer handed
// out by GetElement stays valid until the element is removed or the matrix
// is cleared.
type Element struct {
	Value float64
	Imag  float64 // imaginary part, used by complex matrices only

	row, col int
	index    int32

	left, right  int32 // row list
	above, below int32 // column list
}

// Row returns the internal row of the element.
func (e *Element) Row() int { return e.row }

// Col returns the internal column of the element.
func (e *Element) Col() int { return e.col }

func (e *Element) Add(value float64) { e.Value += value }

func (e *Element) Subtract(value float64) { e.Value -= value }

// arena hands out elements from fixed size chunks. Chunks are never moved,
// so growing the arena leaves earlier element addresses intact.
type arena struct {
	chunks [][]Element
	used   int32
	free   []int32
}

func newArena() *arena {
	a := &arena{}
	a.reset()
	return a
}

func (a *arena) reset() {
	a.chunks = [][]Element{make([]Element, chunkSize)}
	a.used = 1
	a.free = nil
}

func (a *arena) at(i int32) *Element {
	return &a.chunks[i>>chunkBits][i&chunkMask]
}

func (a *arena) alloc(row, col int) *Element {
	var i int32
	if n := len(a.free); n > 0 {
		i = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		if int(a.used>>chunkBits) >= len(a.chunks) {
			a.chunks = append(a.chunks, make([]Element, chunkSize))
		}
		i = a.used
		a.used++
	}

	e := a.at(i)
	*e = Element{row: row, col: col, index: i}
	return e
}

func (a *arena) release(e *Element) {
	i := e.index
	*e = Element{}
	a.free = append(a.free, i)
}

// live returns the number of slots in use, not counting the trash element.
func (a *arena) live() int {
	return int(a.used) - 1 - len(a.free)
}
