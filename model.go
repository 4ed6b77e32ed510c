package sparse

import "fmt"

const (
	initialSize     = 4
	expansionFactor = 1.5

	maxMarkowitzCount = 46340
	maxMarkowitzTies  = 100
)

// Matrix is a square sparse matrix stored as sorted row and column lists of
// arena elements. Row and column 0 are the ground: writes there land in the
// trash element and reads return zero.
type Matrix struct {
	arena *arena

	size      int // current order
	allocated int // capacity of the header arrays

	firstInRow []int32 // [1...allocated]
	lastInRow  []int32
	firstInCol []int32
	lastInCol  []int32
	diags      []int32 // element at (i,i), or trash

	fillins int
	complex bool // elements carry Imag and pivot magnitudes are |re| + |im|
}

type PivotInfo int

const (
	PivotNone PivotInfo = iota
	PivotGood
	PivotSuboptimal
	PivotBad // accepted below the thresholds because nothing better exists
)

func (p PivotInfo) String() string {
	switch p {
	case PivotNone:
		return "none"
	case PivotGood:
		return "good"
	case PivotSuboptimal:
		return "suboptimal"
	case PivotBad:
		return "bad"
	}
	return fmt.Sprintf("PivotInfo(%d)", int(p))
}

// SearchMethod records which Markowitz search produced a pivot.
type SearchMethod byte

const (
	SearchSingleton     SearchMethod = 's'
	SearchQuickDiagonal SearchMethod = 'q'
	SearchDiagonal      SearchMethod = 'd'
	SearchEntireMatrix  SearchMethod = 'e'
	SearchFixed         SearchMethod = 'f' // pinned trailing index, diagonal taken as is
)

func (s SearchMethod) String() string {
	switch s {
	case SearchSingleton:
		return "SearchForSingleton"
	case SearchQuickDiagonal:
		return "QuicklySearchDiagonal"
	case SearchDiagonal:
		return "SearchDiagonal"
	case SearchEntireMatrix:
		return "SearchEntireMatrix"
	case SearchFixed:
		return "FixedDiagonal"
	}
	return "unknown"
}

// Pivot is the outcome of a pivot search.
type Pivot struct {
	Element *Element
	Info    PivotInfo
	Method  SearchMethod
}

var noPivot = Pivot{Info: PivotNone}

// Template groups the four elements touched by an admittance between two
// nodes.
type Template struct {
	Element1        *Element
	Element2        *Element
	Element3Negated *Element
	Element4Negated *Element
}
