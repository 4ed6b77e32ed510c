package sparse

import (
	"errors"
	"fmt"
)

var (
	// ErrSingular is returned when no acceptable pivot exists at some step.
	// Force a reorder and retry, or report the failure upward.
	ErrSingular = errors.New("sparse: singular matrix")

	// ErrSizeMismatch is returned before solving when the solution vector
	// does not match the order of the system.
	ErrSizeMismatch = errors.New("sparse: vector size mismatch")

	ErrInvalidIndex = errors.New("sparse: invalid index")

	ErrNotFactored = errors.New("sparse: matrix is not factored")

	ErrInvalidConfiguration = errors.New("sparse: invalid configuration")

	// ErrComplexMismatch is returned when a real operation reaches a complex
	// solver or the other way round.
	ErrComplexMismatch = errors.New("sparse: real and complex operands mixed")
)

// SingularError reports the elimination step at which factoring stopped,
// together with the external row and column found there.
type SingularError struct {
	Step int
	Row  int
	Col  int
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("sparse: singular matrix at step %d (row %d, column %d)", e.Step, e.Row, e.Col)
}

func (e *SingularError) Unwrap() error { return ErrSingular }

func invalidIndex(row, col int) error {
	return fmt.Errorf("%w: (%d, %d)", ErrInvalidIndex, row, col)
}

func sizeMismatch(got, want int) error {
	return fmt.Errorf("%w: vector has %d entries, system needs %d", ErrSizeMismatch, got, want)
}

type WarningKind int

const (
	// SmallPivot means a pivot below the thresholds was accepted because no
	// better candidate existed. Factoring continues with reduced accuracy.
	SmallPivot WarningKind = iota + 1
)

func (k WarningKind) String() string {
	if k == SmallPivot {
		return "small pivot"
	}
	return fmt.Sprintf("WarningKind(%d)", int(k))
}

// Warning is a recoverable diagnostic raised while factoring. Row and Col
// are external indices.
type Warning struct {
	Kind      WarningKind
	Step      int
	Row       int
	Col       int
	Magnitude float64
}

func (w Warning) String() string {
	return fmt.Sprintf("%s at step %d (row %d, column %d, magnitude %g)", w.Kind, w.Step, w.Row, w.Col, w.Magnitude)
}
