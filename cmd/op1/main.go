package main

import (
	"fmt"
	"log"
	"os"

	"github.com/edp1096/sparse/v2"
)

func main() {
	const (
		R1  = 1000.0
		R2  = 2000.0
		Vin = 5.0
	)

	config := sparse.DefaultConfiguration()
	config.PrinterWidth = 140

	A, err := sparse.NewSolver(&config)
	if err != nil {
		log.Fatalf("Failed to create solver: %v", err)
	}

	// Vin in series with R1 is stamped as its Norton equivalent at node 1
	r1, err := A.GetAdmittance(1, 0)
	if err != nil {
		log.Fatalf("Failed to stamp R1: %v", err)
	}
	r2, err := A.GetAdmittance(1, 0)
	if err != nil {
		log.Fatalf("Failed to stamp R2: %v", err)
	}
	r1.AddQuad(1 / R1)
	r2.AddQuad(1 / R2)
	A.AddRHS(1, Vin/R1)

	A.Print(os.Stdout, false, true, true)

	if err := A.Factor(); err != nil {
		log.Fatalf("Failed to factor matrix: %v", err)
	}

	A.Print(os.Stdout, true, true, true)

	x := make([]float64, A.Size()+1)
	if err := A.Solve(x); err != nil {
		log.Fatalf("Failed to solve matrix: %v", err)
	}

	fmt.Printf("Voltage at node 1 (V1, output): %.4f V\n", x[1])
	fmt.Printf("Division ratio (R2 / (R1 + R2)): %.4f\n", x[1]/Vin)
}
