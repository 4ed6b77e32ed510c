package sparse

// Translation maps external (equation) indices to internal (pivot order)
// indices and back. Unused indices map onto themselves.
type Translation struct {
	intToExt []int
	extToInt []int
}

func NewTranslation() *Translation {
	t := &Translation{}
	t.grow(initialSize)
	return t
}

func (t *Translation) grow(index int) {
	n := len(t.intToExt)
	if index < n {
		return
	}
	capacity := int(float64(n) * expansionFactor)
	if capacity <= index {
		capacity = index + 1
	}
	for i := n; i < capacity; i++ {
		t.intToExt = append(t.intToExt, i)
		t.extToInt = append(t.extToInt, i)
	}
}

// Internal returns the internal index of an external one. Lookups never
// grow the tables; an index past them has never been swapped.
func (t *Translation) Internal(external int) int {
	if external < 0 || external >= len(t.extToInt) {
		return external
	}
	return t.extToInt[external]
}

// External returns the external index of an internal one.
func (t *Translation) External(internal int) int {
	if internal < 0 || internal >= len(t.intToExt) {
		return internal
	}
	return t.intToExt[internal]
}

// Swap exchanges two internal indices.
func (t *Translation) Swap(index1, index2 int) {
	if index1 == index2 {
		return
	}
	t.grow(max(index1, index2))

	ext1, ext2 := t.intToExt[index1], t.intToExt[index2]
	t.intToExt[index1], t.intToExt[index2] = ext2, ext1
	t.extToInt[ext1], t.extToInt[ext2] = index2, index1
}

// Clear restores the identity mapping.
func (t *Translation) Clear() {
	for i := range t.intToExt {
		t.intToExt[i] = i
		t.extToInt[i] = i
	}
}

// Unscramble copies an internally ordered vector into external order. Slot 0
// is left untouched.
func (t *Translation) Unscramble(internal, external []float64) {
	for i := 1; i < len(internal); i++ {
		external[t.External(i)] = internal[i]
	}
}
