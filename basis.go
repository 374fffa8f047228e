package qsim

/*
The computational basis is ordered lexicographically by integer index, and
qubit q is bit q of that index: qubit 0 is the rightmost (least significant)
bit. Every other file reads qubit values through qubitBit so the convention
lives here only.
*/

// qubitBit returns the value of qubit q in basis state index.
func qubitBit(index, qubit int) int {
	return (index >> qubit) & 1
}

// dimension returns 2^n.
func dimension(nQubits int) int {
	return 1 << nQubits
}

/*
AllBitstrings enumerates the 2^n basis patterns in order of their integer
index. Column 0 of each row is the most significant bit, which is the last
qubit; samples handed to callers are reversed so qubit 0 comes first.
*/
func AllBitstrings(nQubits int) [][]int {
	out := make([][]int, dimension(nQubits))
	for i := range out {
		row := make([]int, nQubits)
		for col := 0; col < nQubits; col++ {
			row[col] = qubitBit(i, nQubits-1-col)
		}
		out[i] = row
	}
	return out
}

// reversed returns a copy of a raw pattern with qubit 0 in column 0.
func reversed(pattern []int) []int {
	out := make([]int, len(pattern))
	for i, bit := range pattern {
		out[len(pattern)-1-i] = bit
	}
	return out
}
