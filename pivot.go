package sparse

import (
	"math"
)

// searchForPivot tries the Markowitz strategies from cheapest to most
// thorough and returns the first acceptable pivot.
func (mk *markowitz) searchForPivot(m *Matrix, step int) Pivot {
	if mk.singletons > 0 {
		if pivot := mk.searchForSingleton(m, step); pivot != nil {
			return Pivot{Element: pivot, Info: PivotGood, Method: SearchSingleton}
		}
	}

	if mk.diagonalPivoting {
		if pivot, info := mk.quicklySearchDiagonal(m, step); pivot != nil {
			return Pivot{Element: pivot, Info: info, Method: SearchQuickDiagonal}
		}
		if pivot := mk.searchDiagonal(m, step); pivot != nil {
			return Pivot{Element: pivot, Info: PivotGood, Method: SearchDiagonal}
		}
	}

	pivot, info := mk.searchEntireMatrix(m, step)
	return Pivot{Element: pivot, Info: info, Method: SearchEntireMatrix}
}

// largestOtherInColumn returns the largest magnitude in e's column at or
// below step, e itself excluded.
func largestOtherInColumn(m *Matrix, e *Element, step int) float64 {
	largest := 0.0
	for other := m.FirstInColumn(e.col); other != nil; other = m.Below(other) {
		if other.row < step || other == e {
			continue
		}
		largest = max(largest, m.magnitude(other))
	}
	return largest
}

// largestInColumn returns the largest magnitude in column col at or below
// step.
func largestInColumn(m *Matrix, col, step int) float64 {
	largest := 0.0
	for e := m.FirstInColumn(col); e != nil; e = m.Below(e) {
		if e.row >= step {
			largest = max(largest, m.magnitude(e))
		}
	}
	return largest
}

func (mk *markowitz) acceptable(m *Matrix, pivot *Element, step int) bool {
	magnitude := m.magnitude(pivot)
	return magnitude > mk.absThreshold &&
		magnitude > mk.relThreshold*largestOtherInColumn(m, pivot, step)
}

func (mk *markowitz) searchForSingleton(m *Matrix, step int) *Element {
	for i := mk.max; i >= step; i-- {
		if mk.product[i] != 0 {
			continue
		}

		if diag := m.Diagonal(i); diag != nil {
			if mk.acceptable(m, diag, step) {
				return diag
			}
			continue
		}

		var candidate *Element
		if mk.colCount[i] == 0 {
			for e := m.FirstInColumn(i); e != nil; e = m.Below(e) {
				if e.row >= step {
					if e.row <= mk.max {
						candidate = e
					}
					break
				}
			}
		}
		if candidate == nil && mk.rowCount[i] == 0 {
			for e := m.FirstInRow(i); e != nil; e = m.Right(e) {
				if e.col >= step {
					if e.col <= mk.max {
						candidate = e
					}
					break
				}
			}
		}
		if candidate != nil && mk.acceptable(m, candidate, step) {
			return candidate
		}
	}
	return nil
}

// otherInRow returns the single element of diag's row, besides diag, that
// lies in the active submatrix.
func otherInRow(m *Matrix, diag *Element, step int) *Element {
	if e := m.Right(diag); e != nil {
		return e
	}
	if e := m.Left(diag); e != nil && e.col >= step {
		return e
	}
	return nil
}

func otherInColumn(m *Matrix, diag *Element, step int) *Element {
	if e := m.Below(diag); e != nil {
		return e
	}
	if e := m.Above(diag); e != nil && e.row >= step {
		return e
	}
	return nil
}

// quicklySearchDiagonal looks at the diagonals with the smallest Markowitz
// product only. A diagonal with product 1 whose two off-diagonal partners
// mirror each other is taken at once when it dominates them.
func (mk *markowitz) quicklySearchDiagonal(m *Matrix, step int) (*Element, PivotInfo) {
	minProduct := math.MaxInt
	mk.ties = mk.ties[:0]

	for i := step; i <= mk.max; i++ {
		if mk.product[i] > minProduct {
			continue
		}
		diag := m.Diagonal(i)
		if diag == nil {
			continue
		}
		magnitude := m.magnitude(diag)
		if magnitude <= mk.absThreshold {
			continue
		}

		if mk.product[i] == 1 {
			row, col := otherInRow(m, diag, step), otherInColumn(m, diag, step)
			if row != nil && col != nil && row.col == col.row &&
				magnitude >= max(m.magnitude(row), m.magnitude(col)) {
				return diag, PivotGood
			}
		}

		if mk.product[i] < minProduct {
			minProduct = mk.product[i]
			mk.ties = mk.ties[:0]
		}
		mk.ties = append(mk.ties, diag)
		if len(mk.ties) >= maxMarkowitzTies || len(mk.ties) > minProduct*mk.tiesMultiplier {
			break
		}
	}

	var chosen *Element
	bestRatio := 1 / mk.relThreshold
	for _, diag := range mk.ties {
		magnitude := m.magnitude(diag)
		ratio := largestOtherInColumn(m, diag, step) / magnitude
		if ratio < bestRatio {
			chosen = diag
			bestRatio = ratio
		}
	}
	if chosen == nil {
		return nil, PivotNone
	}
	return chosen, PivotSuboptimal
}

// searchDiagonal examines every diagonal of the active submatrix, preferring
// the smallest Markowitz product and breaking ties by the ratio of the
// largest off-diagonal column entry to the pivot.
func (mk *markowitz) searchDiagonal(m *Matrix, step int) *Element {
	var chosen *Element
	minProduct := math.MaxInt
	ties := 0
	var acceptedRatio float64

	for i := mk.max; i >= step; i-- {
		if mk.product[i] > minProduct {
			continue
		}
		diag := m.Diagonal(i)
		if diag == nil {
			continue
		}
		magnitude := m.magnitude(diag)
		if magnitude <= mk.absThreshold {
			continue
		}
		largest := largestOtherInColumn(m, diag, step)
		if magnitude <= mk.relThreshold*largest {
			continue
		}

		ratio := largest / magnitude
		if mk.product[i] < minProduct {
			chosen = diag
			minProduct = mk.product[i]
			acceptedRatio = ratio
			ties = 0
			continue
		}

		ties++
		if ratio < acceptedRatio {
			chosen = diag
			acceptedRatio = ratio
		}
		if ties >= minProduct*mk.tiesMultiplier {
			return chosen
		}
	}
	return chosen
}

// searchEntireMatrix scans every element of the active submatrix. When no
// element passes the thresholds the largest one is returned as a bad pivot;
// a zero submatrix yields no pivot at all.
func (mk *markowitz) searchEntireMatrix(m *Matrix, step int) (*Element, PivotInfo) {
	var chosen, largestElement *Element
	minProduct := math.MaxInt
	largestMag := 0.0
	ties := 0
	var acceptedRatio float64

	for col := step; col <= mk.max; col++ {
		largestInCol := largestInColumn(m, col, step)
		if largestInCol == 0 {
			continue
		}

		for e := m.FirstInColumn(col); e != nil && e.row <= mk.max; e = m.Below(e) {
			if e.row < step {
				continue
			}
			magnitude := m.magnitude(e)
			if magnitude > largestMag {
				largestMag = magnitude
				largestElement = e
			}

			product := markowitzProduct(mk.rowCount[e.row], mk.colCount[e.col])
			if product > minProduct || magnitude <= mk.relThreshold*largestInCol || magnitude <= mk.absThreshold {
				continue
			}

			ratio := largestInCol / magnitude
			if product < minProduct {
				chosen = e
				minProduct = product
				acceptedRatio = ratio
				ties = 0
				continue
			}

			ties++
			if ratio < acceptedRatio {
				chosen = e
				acceptedRatio = ratio
			}
			if ties >= minProduct*mk.tiesMultiplier {
				return chosen, PivotSuboptimal
			}
		}
	}

	if chosen != nil {
		return chosen, PivotSuboptimal
	}
	if largestMag == 0 {
		return nil, PivotNone
	}
	return largestElement, PivotBad
}
