package cpm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/P4UL-M/Graph-Schedulator/internal/graph"
)

func collectPaths(t *testing.T, c *Calendar) [][]string {
	t.Helper()
	it, err := c.AllCriticalPaths()
	require.NoError(t, err)
	var out [][]string
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		out = append(out, taskNames(p))
	}
	return out
}

func TestCriticalPath_LinearChain(t *testing.T) {
	c := NewCalendar(buildGraph(t, "A 3\nB 2 A\nC 5 B\n"))

	path, err := c.CriticalPath()
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "A", "B", "C", "4"}, taskNames(path))
	assert.Equal(t, 10, PathWeight(path))

	paths := collectPaths(t, c)
	require.Len(t, paths, 1, "a linear chain has exactly one critical path")
	assert.Equal(t, []string{"0", "A", "B", "C", "4"}, paths[0])
}

func TestCriticalPath_Branching(t *testing.T) {
	c := NewCalendar(buildGraph(t, branchingInput))

	path, err := c.CriticalPath()
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "A", "C", "D", "5"}, taskNames(path))
	assert.Equal(t, c.ProjectDuration(), PathWeight(path))

	paths := collectPaths(t, c)
	require.Len(t, paths, 1)
}

func TestAllCriticalPaths_TwoParallelChains(t *testing.T) {
	// A and B both take 3, so both chains are critical.
	c := NewCalendar(buildGraph(t, "A 3\nB 3\nC 1 A B\n"))

	paths := collectPaths(t, c)
	require.Len(t, paths, 2)
	assert.Equal(t, []string{"0", "A", "C", "4"}, paths[0])
	assert.Equal(t, []string{"0", "B", "C", "4"}, paths[1])
}

func TestAllCriticalPaths_Properties(t *testing.T) {
	inputs := []string{
		branchingInput,
		"A 3\nB 2 A\nC 5 B\n",
		"A 3\nB 3\nC 1 A B\n",
		"A 1\nB 1 A\nC 1 A B\n",
	}
	for _, input := range inputs {
		c := NewCalendar(buildGraph(t, input))
		float, err := c.Float()
		require.NoError(t, err)
		duration := c.ProjectDuration()

		paths := collectPaths(t, c)
		require.NotEmpty(t, paths)
		for _, p := range paths {
			weight := 0
			for _, name := range p {
				assert.Zerof(t, float[name], "task %s on a critical path must have zero float", name)
				task, ok := c.Graph().Lookup(name)
				require.True(t, ok)
				weight += task.Duration
			}
			assert.Equal(t, duration, weight, "critical path weight must equal the project duration")
		}
	}
}

func TestAllCriticalPaths_IteratorExhausts(t *testing.T) {
	c := NewCalendar(buildGraph(t, branchingInput))

	it, err := c.AllCriticalPaths()
	require.NoError(t, err)
	_, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	require.False(t, ok)
	_, ok = it.Next()
	assert.False(t, ok, "an exhausted iterator stays exhausted")
}

func TestCriticalPath_DegenerateProject(t *testing.T) {
	g, err := graph.FromTasks("Empty", nil)
	require.NoError(t, err)
	c := NewCalendar(g)

	paths := collectPaths(t, c)
	assert.Empty(t, paths, "the synthetic-only project has no critical path")

	_, err = c.CriticalPath()
	assert.ErrorIs(t, err, ErrNoCriticalPath)

	_, err = c.FastCriticalPath()
	assert.ErrorIs(t, err, ErrNoCriticalPath)
}

func TestFastCriticalPath_MatchesExactOnFixtures(t *testing.T) {
	inputs := []string{
		branchingInput,
		"A 3\nB 2 A\nC 5 B\n",
		"A 3\nB 3\nC 1 A B\n",
	}
	for _, input := range inputs {
		c := NewCalendar(buildGraph(t, input))

		exact, err := c.CriticalPath()
		require.NoError(t, err)
		fast, err := c.FastCriticalPath()
		require.NoError(t, err)
		assert.Equal(t, taskNames(exact), taskNames(fast))
	}
}

func TestWaves_Branching(t *testing.T) {
	c := NewCalendar(buildGraph(t, branchingInput))

	waves, err := c.Waves()
	require.NoError(t, err)
	// Earliest dates: 0 (start, A), 3 (B, C), 7 (D), 8 (end).
	require.Len(t, waves, 4)

	assert.Equal(t, 0, waves[0].Start)
	assert.ElementsMatch(t, []string{"0", "A"}, taskNames(waves[0].Tasks))
	assert.Equal(t, 3, waves[1].Start)
	// Critical C sorts before slack-carrying B.
	assert.Equal(t, []string{"C", "B"}, taskNames(waves[1].Tasks))
	assert.True(t, waves[1].Critical)
	assert.Equal(t, []string{"D"}, taskNames(waves[2].Tasks))
	assert.Equal(t, []string{"5"}, taskNames(waves[3].Tasks))
}
