package main

import (
	"fmt"
	"math"

	"github.com/edp1096/sparse/v2"
)

func main() {
	const (
		R1    = 1000.0 // First resistor: 1k
		R2    = 1000.0 // Second resistor: 1k
		Vpeak = 5.0    // Peak voltage: 5V
		freq  = 1000.0 // Frequency: 1kHz
	)

	// 3x3 MNA system: 2 nodes + 1 voltage source branch current
	A, err := sparse.NewSolver(nil)
	if err != nil {
		panic(fmt.Sprintf("Failed to create solver: %v", err))
	}

	r1, _ := A.GetAdmittance(1, 2)
	r2, _ := A.GetAdmittance(2, 0)
	kcl, _ := A.GetElement(1, 3)
	kvl, _ := A.GetElement(3, 1)

	// The source branch leaves a zero on diagonal 3
	kcl.Value, kvl.Value = 1.0, 1.0
	if err := A.PreorderMNA(); err != nil {
		panic(err)
	}

	startTime := 0.0
	endTime := 0.002    // 2ms
	timeStep := 0.00001 // 10us

	x := make([]float64, A.Size()+1)

	fmt.Println("Time (s) | Vin | V(1) | V(2) | I_source")
	fmt.Println("------------------------------------------")

	for t := startTime; t <= endTime; t += timeStep {
		A.Reset()

		r1.AddQuad(1 / R1)
		r2.AddQuad(1 / R2)
		kcl.Value = 1.0
		kvl.Value = 1.0

		vin := Vpeak * math.Sin(2.0*math.Pi*freq*t)
		A.SetRHS(3, vin)

		if err := A.Factor(); err != nil {
			fmt.Printf("Time %.6f: Factorization failed - %v\n", t, err)
			continue
		}
		if err := A.Solve(x); err != nil {
			fmt.Printf("Time %.6f: Solve failed - %v\n", t, err)
			continue
		}

		fmt.Printf("%.6f | %7.3f | %7.3f | %7.3f | %7.3f\n", t, vin, x[1], x[2], x[3])
	}

	stats := A.Statistics()
	fmt.Println("\nCircuit Parameters:")
	fmt.Printf("R1: %.0f Ohm\n", R1)
	fmt.Printf("R2: %.0f Ohm\n", R2)
	fmt.Printf("Vpeak: %.1f V\n", Vpeak)
	fmt.Printf("Frequency: %.0f Hz\n", freq)
	fmt.Printf("Expected voltage division ratio: %.3f\n", R2/(R1+R2))
	fmt.Printf("Elements: %d, fill-ins: %d\n", stats.Elements, stats.Fillins)
}
