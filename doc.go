/*
Package pips evaluates dice-roll expressions into exact probability
distributions.

It models each roll as a discrete distribution over outcomes and combines
them by convolution, so "2D6+1" is not a flat range but the true
triangular distribution of two dice and a constant. The engine is exact:
no sampling is involved until you ask for a roll.

# Concept

Pips separates the algebra (pkg/dist) from the notation (the expression
compiler) and the surfaces (CLI, HTTP, MCP). The root package is a thin
facade that parses an expression once and exposes the distribution's
moments, sampling, and chart rendering. This hexagonal layout allows the
engine to be embedded in any interface.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/pips"
	)

	func main() {
		attack, err := pips.New("1D20+5")
		if err != nil {
			log.Fatal(err)
		}

		ev, _ := attack.ExpectedValue()
		fmt.Printf("expected: %.2f\n", ev)

		// Probability the attack beats a flat DC of 15.
		dc, _ := pips.New("15")
		fmt.Printf("hit chance: %.2f\n", attack.ChanceBeats(dc))

		// Sample a single roll.
		result, _ := attack.Roll()
		fmt.Println("rolled:", result)
	}
*/
package pips
