package cpm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/P4UL-M/Graph-Schedulator/internal/graph"
)

// ErrInternal marks an invariant violation that cannot occur on a validated
// graph. It signals a defect in the date computation, never a user error.
var ErrInternal = errors.New("internal invariant violation")

// Calendar computes schedule dates for a validated task graph. It borrows
// the graph and caches the successor index, the rank map, and the
// rank-ascending task order; it holds no other state, so every query is
// idempotent and safe to call concurrently.
type Calendar struct {
	g     *graph.TaskGraph
	succ  map[string][]*graph.Task
	ranks map[string]int
	order []*graph.Task // ascending rank, ties in declaration order
}

// NewCalendar prepares a Calendar for the given validated graph.
func NewCalendar(g *graph.TaskGraph) *Calendar {
	c := &Calendar{
		g:     g,
		succ:  g.SuccessorIndex(),
		ranks: Ranks(g),
		order: make([]*graph.Task, len(g.Tasks)),
	}
	copy(c.order, g.Tasks)
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.ranks[c.order[i].Name] < c.ranks[c.order[j].Name]
	})
	return c
}

// Graph returns the underlying task graph.
func (c *Calendar) Graph() *graph.TaskGraph { return c.g }

// Ranks returns a copy of the rank map.
func (c *Calendar) Ranks() map[string]int {
	out := make(map[string]int, len(c.ranks))
	for name, r := range c.ranks {
		out[name] = r
	}
	return out
}

// Order returns the tasks in ascending rank order, ties broken by
// declaration order.
func (c *Calendar) Order() []*graph.Task {
	out := make([]*graph.Task, len(c.order))
	copy(out, c.order)
	return out
}

// Earliest runs the forward pass: processing tasks in ascending rank order,
// each task pushes earliest[task]+duration onto its successors. The start
// task stays at 0 and the end task's date is the project duration.
func (c *Calendar) Earliest() map[string]int {
	dates := make(map[string]int, len(c.order))
	for _, t := range c.order {
		dates[t.Name] = 0
	}
	for _, t := range c.order {
		finish := dates[t.Name] + t.Duration
		for _, s := range c.succ[t.Name] {
			if finish > dates[s.Name] {
				dates[s.Name] = finish
			}
		}
	}
	return dates
}

// Latest runs the backward pass: the end task is anchored at the project
// duration, then every task in descending rank order takes the minimum of
// its successors' latest dates minus its own duration. Every non-end task
// has at least one successor by construction.
func (c *Calendar) Latest() map[string]int {
	earliest := c.Earliest()
	end := c.g.End()

	dates := make(map[string]int, len(c.order))
	dates[end.Name] = earliest[end.Name]
	for i := len(c.order) - 1; i >= 0; i-- {
		t := c.order[i]
		if t == end {
			continue
		}
		min := 0
		for k, s := range c.succ[t.Name] {
			if k == 0 || dates[s.Name] < min {
				min = dates[s.Name]
			}
		}
		dates[t.Name] = min - t.Duration
	}
	return dates
}

// Float returns each task's total slack, latest minus earliest. A negative
// value on a validated graph is a defect and reported as ErrInternal.
func (c *Calendar) Float() (map[string]int, error) {
	earliest := c.Earliest()
	latest := c.Latest()
	out := make(map[string]int, len(c.order))
	for _, t := range c.order {
		f := latest[t.Name] - earliest[t.Name]
		if f < 0 {
			return nil, fmt.Errorf("%w: task %s has float %d", ErrInternal, t.Name, f)
		}
		out[t.Name] = f
	}
	return out, nil
}

// FreeFloat returns each task's slack relative to its successors' earliest
// dates, or 0 for the end task. Unlike total float it never borrows from a
// successor's own schedule.
func (c *Calendar) FreeFloat() map[string]int {
	earliest := c.Earliest()
	out := make(map[string]int, len(c.order))
	for _, t := range c.order {
		succs := c.succ[t.Name]
		if len(succs) == 0 {
			out[t.Name] = 0
			continue
		}
		finish := earliest[t.Name] + t.Duration
		min := 0
		for k, s := range succs {
			slack := earliest[s.Name] - finish
			if k == 0 || slack < min {
				min = slack
			}
		}
		out[t.Name] = min
	}
	return out
}

// ProjectDuration returns the earliest date of the end task.
func (c *Calendar) ProjectDuration() int {
	return c.Earliest()[c.g.End().Name]
}
