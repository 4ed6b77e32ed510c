package sparse

// rowColElimination eliminates the pivot's column below it and scales its
// row to the right of it. The diagonal ends up holding the reciprocal of the
// pivot, the upper row holds the scaled U entries and the lower column keeps
// the L entries. onFillin, when set, sees every element created here.
func (m *Matrix) rowColElimination(pivot *Element, onFillin func(*Element)) error {
	if m.magnitude(pivot) == 0 {
		return ErrSingular
	}

	if m.complex {
		pivot.SetComplex(1 / pivot.Complex())
	} else {
		pivot.Value = 1 / pivot.Value
	}
	for upper := m.Right(pivot); upper != nil; upper = m.Right(upper) {
		if m.complex {
			upper.SetComplex(upper.Complex() * pivot.Complex())
		} else {
			upper.Value *= pivot.Value
		}

		above := upper.index
		sub := m.Below(upper)
		for lower := m.Below(pivot); lower != nil; lower = m.Below(lower) {
			row := lower.row
			for sub != nil && sub.row < row {
				above = sub.index
				sub = m.Below(sub)
			}

			if sub == nil || sub.row > row {
				sub = m.insert(row, upper.col, above, lower.index)
				m.fillins++
				if onFillin != nil {
					onFillin(sub)
				}
			}

			if m.complex {
				sub.SetComplex(sub.Complex() - upper.Complex()*lower.Complex())
			} else {
				sub.Value -= upper.Value * lower.Value
			}
			above = sub.index
			sub = m.Below(sub)
		}
	}
	return nil
}
