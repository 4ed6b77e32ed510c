package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/edp1096/sparse/v2"
)

func (c *CLI) printCommand() *cobra.Command {
	var (
		pattern bool
		mna     bool
	)

	cmd := &cobra.Command{
		Use:   "print [matrix-file]",
		Short: "Print a test matrix before and after factorization",
		Long: `Print a test matrix before and after factorization.

The matrix is printed in equation order before factoring and in pivot order
afterwards, followed by element, fill-in and pivot statistics.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPrint(cmd.OutOrStdout(), args[0], !pattern, mna)
		},
	}

	cmd.Flags().BoolVarP(&pattern, "pattern", "p", false, "print the nonzero pattern instead of values")
	cmd.Flags().BoolVar(&mna, "mna", false, "preorder the matrix to move structural zeros off the diagonal")

	return cmd
}

func (c *CLI) runPrint(w io.Writer, path string, data, mna bool) error {
	mf, err := readMatrixFile(path, 0)
	if err != nil {
		return err
	}

	config := c.configuration()
	config.Complex = mf.Complex
	solver, err := sparse.NewSolver(&config)
	if err != nil {
		return err
	}
	solver.SetLogger(c.Logger)
	if mf.Complex {
		err = stampComplex(solver, mf)
	} else {
		err = stamp(solver, mf)
	}
	if err != nil {
		return err
	}

	printTitle(w, mf.Description)
	fmt.Fprintln(w)
	if err := solver.Print(w, false, data, true); err != nil {
		return err
	}

	if mna {
		if err := solver.PreorderMNA(); err != nil {
			return err
		}
	}
	rank, err := solver.OrderAndFactor()
	if err != nil {
		printWarning(w, "factored %d of %d steps: %v", rank, solver.Size(), err)
	}
	return solver.Print(w, true, data, true)
}
