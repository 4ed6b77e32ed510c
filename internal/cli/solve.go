package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/edp1096/sparse/v2"
)

// errComplexDense rejects --dense for complex test files.
var errComplexDense = errors.New("the dense solver handles real matrices only")

// factorer is what the timed runs need from either solver.
type factorer interface {
	OrderAndFactor() (int, error)
	Factor() error
	Reset()
}

// linearSolver is the part of the real sparse and dense solvers the commands
// use.
type linearSolver interface {
	factorer
	Add(row, col int, value float64) error
	SetRHS(index int, value float64) error
	Solve(solution []float64) error
	SolveTransposed(solution []float64) error
	Size() int
	SetLogger(logger *log.Logger)
	OnWarning(fn func(sparse.Warning))
}

type solveOptions struct {
	solutionOnly bool
	relThreshold float64
	absThreshold float64
	printLimit   int
	iterations   int
	rhsColumn    int
	transpose    bool
	dense        bool
}

func (c *CLI) solveCommand() *cobra.Command {
	var opts solveOptions

	cmd := &cobra.Command{
		Use:   "solve [matrix-file]",
		Short: "Factor a test matrix and print the solution",
		Long: `Factor a test matrix and print the solution.

The file holds an optional "Starting" line, a description, the matrix size,
one "row column value" triplet per line terminated by "0 0 0" and optionally
the right hand side, one value per line. Complex files are marked by
"Starting complex matrix" or "size complex" and carry an imaginary part after
each value.

After the first OrderAndFactor the matrix is restamped and refactored
--iterations times with the pivot order found, which is what the reported
factor and solve times measure.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := c.configuration()
			flags := cmd.Flags()
			if flags.Changed("rel-threshold") {
				config.RelativePivotThreshold = opts.relThreshold
			}
			if flags.Changed("abs-threshold") {
				config.AbsolutePivotThreshold = opts.absThreshold
			}
			return c.runSolve(cmd.OutOrStdout(), args[0], config, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.solutionOnly, "solution-only", "s", false, "print only the solution")
	cmd.Flags().Float64VarP(&opts.relThreshold, "rel-threshold", "r", 0, "relative pivot threshold")
	cmd.Flags().Float64VarP(&opts.absThreshold, "abs-threshold", "a", 0, "absolute pivot threshold")
	cmd.Flags().IntVarP(&opts.printLimit, "print-limit", "n", 0, "print at most n solution entries")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "i", 1, "number of refactor and solve runs")
	cmd.Flags().IntVarP(&opts.rhsColumn, "rhs-column", "b", 0, "use column n of the matrix as right hand side")
	cmd.Flags().BoolVar(&opts.transpose, "transpose", false, "solve the transposed system")
	cmd.Flags().BoolVar(&opts.dense, "dense", false, "use the dense solver with rook pivoting")

	return cmd
}

func (c *CLI) newSolver(config sparse.Configuration, dense bool) (linearSolver, error) {
	var (
		solver linearSolver
		err    error
	)
	if dense {
		solver, err = sparse.NewDenseSolver(&config)
	} else {
		solver, err = sparse.NewSolver(&config)
	}
	if err != nil {
		return nil, err
	}
	solver.SetLogger(c.Logger)
	return solver, nil
}

func stamp(solver linearSolver, mf *matrixFile) error {
	for _, e := range mf.Entries {
		if err := solver.Add(e.row, e.col, e.value); err != nil {
			return err
		}
	}
	for i := 1; i <= mf.Size; i++ {
		if err := solver.SetRHS(i, mf.RHS[i]); err != nil {
			return err
		}
	}
	return nil
}

func stampComplex(solver *sparse.Solver, mf *matrixFile) error {
	for _, e := range mf.Entries {
		if err := solver.AddComplex(e.row, e.col, complex(e.value, e.imag)); err != nil {
			return err
		}
	}
	for i := 1; i <= mf.Size; i++ {
		if err := solver.SetComplexRHS(i, complex(mf.RHS[i], mf.IRHS[i])); err != nil {
			return err
		}
	}
	return nil
}

// timings holds the phase stopwatches of a solve command.
type timings struct {
	build, order, factor, substitute stopwatch
}

// run stamps, orders and solves once, then restamps, refactors and solves
// iterations more times with the order found.
func (t *timings) run(solver factorer, stamp, solve func() error, iterations int) error {
	if err := t.build.time(stamp); err != nil {
		return err
	}
	if err := t.order.time(func() error {
		_, err := solver.OrderAndFactor()
		return err
	}); err != nil {
		return fmt.Errorf("order and factor: %w", err)
	}
	if err := t.substitute.time(solve); err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	for i := 1; i <= iterations; i++ {
		solver.Reset()
		if err := t.build.time(stamp); err != nil {
			return err
		}
		if err := t.factor.time(solver.Factor); err != nil {
			return fmt.Errorf("factor: %w", err)
		}
		if err := t.substitute.time(solve); err != nil {
			return fmt.Errorf("solve: %w", err)
		}
	}
	return nil
}

func (c *CLI) runSolve(w io.Writer, path string, config sparse.Configuration, opts solveOptions) error {
	mf, err := readMatrixFile(path, opts.rhsColumn)
	if err != nil {
		return err
	}
	if mf.Complex && opts.dense {
		return errComplexDense
	}
	if !opts.solutionOnly {
		kind := "real"
		if mf.Complex {
			kind = "complex"
		}
		printTitle(w, mf.Description)
		fmt.Fprintf(w, "Matrix is %d x %d and %s.\n\n", mf.Size, mf.Size, kind)
	}

	var warnings []sparse.Warning
	onWarning := func(warning sparse.Warning) { warnings = append(warnings, warning) }

	var (
		t           timings
		stats       *sparse.Statistics
		relResidual float64
		printEntry  func(i int)
	)
	if mf.Complex {
		solver, err := sparse.NewComplexSolver(&config)
		if err != nil {
			return err
		}
		solver.SetLogger(c.Logger)
		solver.OnWarning(onWarning)

		solution := make([]complex128, mf.Size+1)
		solve := func() error { return solver.SolveComplex(solution) }
		if opts.transpose {
			solve = func() error { return solver.SolveComplexTransposed(solution) }
		}
		if err := t.run(solver, func() error { return stampComplex(solver, mf) }, solve, opts.iterations); err != nil {
			return err
		}

		s := solver.Statistics()
		stats = &s
		relResidual = complexResidual(mf, solution, opts.transpose)
		printEntry = func(i int) { fmt.Fprintf(w, "%-16.9g   %-.9g j\n", real(solution[i]), imag(solution[i])) }
	} else {
		solver, err := c.newSolver(config, opts.dense)
		if err != nil {
			return err
		}
		solver.OnWarning(onWarning)

		solution := make([]float64, mf.Size+1)
		solve := func() error { return solver.Solve(solution) }
		if opts.transpose {
			solve = func() error { return solver.SolveTransposed(solution) }
		}
		if err := t.run(solver, func() error { return stamp(solver, mf) }, solve, opts.iterations); err != nil {
			return err
		}

		if s, ok := solver.(*sparse.Solver); ok {
			st := s.Statistics()
			stats = &st
		}
		relResidual = residual(mf, solution, opts.transpose)
		printEntry = func(i int) { fmt.Fprintf(w, "%-16.9g\n", solution[i]) }
	}

	limit := mf.Size
	if !opts.solutionOnly && opts.printLimit > 0 {
		limit = min(limit, opts.printLimit)
	}
	if !opts.solutionOnly {
		if mf.Complex {
			printTitle(w, "Complex solution:")
		} else {
			printTitle(w, "Solution:")
		}
	}
	for i := 1; i <= limit; i++ {
		printEntry(i)
	}
	if opts.solutionOnly {
		return nil
	}

	fmt.Fprintln(w)
	for _, warning := range warnings {
		printWarning(w, "%s", warning)
	}
	if stats != nil {
		printKeyValue(w, "Elements", strconv.Itoa(stats.Elements))
		printKeyValue(w, "Fill-ins", strconv.Itoa(stats.Fillins))
		printKeyValue(w, "Density", fmt.Sprintf("%.2f%%", stats.Density))
		printKeyValue(w, "Largest element", fmt.Sprintf("%-1.4g", stats.Largest))
		printKeyValue(w, "Smallest element", fmt.Sprintf("%-1.4g", stats.Smallest))
	}
	printKeyValue(w, "Residual", fmt.Sprintf("%.3e", relResidual))
	printKeyValue(w, "Build time", t.build.average().String())
	printKeyValue(w, "Order time", t.order.average().String())
	printKeyValue(w, "Factor time", t.factor.average().String())
	printKeyValue(w, "Solve time", t.substitute.average().String())
	printDetail(w, "%d refactor runs", t.factor.runs)
	return nil
}

// residual returns the infinity norm of Ax - b relative to |A| |x| + |b|,
// computed densely.
func residual(mf *matrixFile, solution []float64, transpose bool) float64 {
	n := mf.Size
	if n == 0 {
		return 0
	}
	a := mat.NewDense(n, n, nil)
	for _, e := range mf.Entries {
		if e.row == 0 || e.col == 0 {
			continue
		}
		r, c := e.row-1, e.col-1
		if transpose {
			r, c = c, r
		}
		a.Set(r, c, a.At(r, c)+e.value)
	}
	x := mat.NewVecDense(n, append([]float64(nil), solution[1:n+1]...))
	b := mat.NewVecDense(n, append([]float64(nil), mf.RHS[1:n+1]...))
	return relativeResidual(a, x, b)
}

// complexResidual measures a complex solution on the equivalent real system
// [Re -Im; Im Re] [x; y] = [b; c].
func complexResidual(mf *matrixFile, solution []complex128, transpose bool) float64 {
	n := mf.Size
	if n == 0 {
		return 0
	}
	a := mat.NewDense(2*n, 2*n, nil)
	for _, e := range mf.Entries {
		if e.row == 0 || e.col == 0 {
			continue
		}
		r, c := e.row-1, e.col-1
		if transpose {
			r, c = c, r
		}
		a.Set(r, c, a.At(r, c)+e.value)
		a.Set(r+n, c+n, a.At(r+n, c+n)+e.value)
		a.Set(r, c+n, a.At(r, c+n)-e.imag)
		a.Set(r+n, c, a.At(r+n, c)+e.imag)
	}

	x := mat.NewVecDense(2*n, nil)
	b := mat.NewVecDense(2*n, nil)
	for i := 0; i < n; i++ {
		x.SetVec(i, real(solution[i+1]))
		x.SetVec(i+n, imag(solution[i+1]))
		b.SetVec(i, mf.RHS[i+1])
		b.SetVec(i+n, mf.IRHS[i+1])
	}
	return relativeResidual(a, x, b)
}

func relativeResidual(a *mat.Dense, x, b *mat.VecDense) float64 {
	var r mat.VecDense
	r.MulVec(a, x)
	r.SubVec(&r, b)

	scale := mat.Norm(a, math.Inf(1))*mat.Norm(x, math.Inf(1)) + mat.Norm(b, math.Inf(1))
	if scale == 0 {
		return 0
	}
	return mat.Norm(&r, math.Inf(1)) / scale
}
