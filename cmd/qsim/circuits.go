package main

import (
	"sort"

	"github.com/theapemachine/qsim"
)

// circuits build a gate list for a given register size.
var circuits = map[string]func(nQubits int) []qsim.Gate{
	"bell": func(int) []qsim.Gate {
		return []qsim.Gate{qsim.H(0), qsim.CNOT(0, 1)}
	},
	"ghz": func(nQubits int) []qsim.Gate {
		gates := []qsim.Gate{qsim.H(0)}
		for q := 1; q < nQubits; q++ {
			gates = append(gates, qsim.CNOT(q-1, q))
		}
		return gates
	},
	"flip": func(nQubits int) []qsim.Gate {
		gates := make([]qsim.Gate, 0, nQubits)
		for q := 0; q < nQubits; q++ {
			gates = append(gates, qsim.X(q))
		}
		return gates
	},
}

// minQubits is the smallest register each circuit makes sense on.
var minQubits = map[string]int{
	"bell": 2,
	"ghz":  2,
	"flip": 1,
}

func circuitNames() []string {
	names := make([]string, 0, len(circuits))
	for name := range circuits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
