package main

import (
	"fmt"
	"os"

	"github.com/edp1096/sparse/v2"
)

func main() {
	config := sparse.DefaultConfiguration()
	config.PrinterWidth = 140

	A, err := sparse.NewSolver(&config)
	if err != nil {
		panic(err)
	}

	values := [][]float64{
		{4, -2, 2, 1, 5},
		{2, 3, -1, 2, 3},
		{0, 1, 5, 7, 2},
		{1, 2, 0, 4, 1},
		{3, 1, 4, 2, 2},
	}
	for i, row := range values {
		for j, v := range row {
			if err := A.Set(i+1, j+1, v); err != nil {
				panic(err)
			}
		}
	}
	A.SetRHS(1, 5.0)

	A.Print(os.Stdout, false, true, true)

	if _, err := A.OrderAndFactor(); err != nil {
		panic(err)
	}

	A.Print(os.Stdout, true, true, true)

	fmt.Println("RHS b:")
	for i := 1; i <= A.Size(); i++ {
		fmt.Printf("b[%d] = %.4f\n", i, A.RHS(i))
	}

	x := make([]float64, A.Size()+1)
	if err := A.Solve(x); err != nil {
		panic(err)
	}

	fmt.Println("Solution x:")
	for i := 1; i <= A.Size(); i++ {
		fmt.Printf("x[%d] = %.4f\n", i, x[i])
	}

	det, err := A.Determinant()
	if err != nil {
		panic(err)
	}
	fmt.Printf("Determinant: %.4f\n", det)
}
