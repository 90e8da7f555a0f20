package cpm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/P4UL-M/Graph-Schedulator/internal/graph"
)

func buildGraph(t *testing.T, text string) *graph.TaskGraph {
	t.Helper()
	g, err := graph.FromReader("Test", strings.NewReader(text))
	require.NoError(t, err)
	return g
}

const branchingInput = `A 3
B 2 A
C 4 A
D 1 B C
`

func TestRanks_Branching(t *testing.T) {
	g := buildGraph(t, branchingInput)

	want := map[string]int{"0": 0, "A": 1, "B": 2, "C": 2, "D": 3, "5": 4}
	require.Equal(t, want, Ranks(g))
}

func TestRanks_LongestPathWins(t *testing.T) {
	// C is reachable from start in 2 edges via A, but in 3 via A->B.
	// Rank must keep the maximum even when the short path is seen first.
	g := buildGraph(t, "A 1\nB 1 A\nC 1 A B\n")

	ranks := Ranks(g)
	require.Equal(t, 1, ranks["A"])
	require.Equal(t, 2, ranks["B"])
	require.Equal(t, 3, ranks["C"])
	require.Equal(t, 4, ranks["4"])
}

func TestRanks_Idempotent(t *testing.T) {
	g := buildGraph(t, branchingInput)
	require.Equal(t, Ranks(g), Ranks(g))
}
