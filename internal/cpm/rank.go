// Package cpm computes the critical-path-method schedule for a validated
// task graph: ranks, earliest and latest dates, float, and critical paths.
// Every query is a pure function of the graph; nothing here mutates it.
package cpm

import (
	"github.com/P4UL-M/Graph-Schedulator/internal/graph"
)

// Ranks returns each task's rank: the edge count of the longest path from
// the synthetic start task. It walks successor edges forward from start
// with an explicit work stack, re-queueing a task whenever a longer
// incoming path raises its rank. The graph is acyclic, so the relaxation
// terminates.
func Ranks(g *graph.TaskGraph) map[string]int {
	succ := g.SuccessorIndex()

	ranks := make(map[string]int, g.TaskCount())
	for _, t := range g.Tasks {
		ranks[t.Name] = 0
	}

	stack := []*graph.Task{g.Start()}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r := ranks[t.Name]
		for _, s := range succ[t.Name] {
			if r+1 > ranks[s.Name] {
				ranks[s.Name] = r + 1
				stack = append(stack, s)
			}
		}
	}
	return ranks
}
