package scaler_test

import (
	"fmt"

	"github.com/matzehuels/gaugekit/pkg/scaler"
)

func ExampleLinear_ComputeTicks() {
	s := scaler.New(scaler.WithRange(0, 20), scaler.WithMajorTickInterval(10))
	s.ComputeTicks()

	for _, t := range s.MajorTicks() {
		fmt.Printf("major %v at %.2f\n", t.Value, t.Position)
	}
	fmt.Println("minor ticks:", len(s.MinorTicks()))
	// Output:
	// major 0 at 0.00
	// major 10 at 0.50
	// major 20 at 1.00
	// minor ticks: 8
}

func ExampleLinear_ValueForPosition() {
	s := scaler.New(scaler.WithRange(0, 100), scaler.WithSnapInterval(5))

	fmt.Println(s.ValueForPosition(0.42))
	fmt.Println(s.PositionForValue(75))
	fmt.Println(s.PositionForValue(120))
	// Output:
	// 40
	// 0.75
	// 1
}
