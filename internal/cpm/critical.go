package cpm

import (
	"errors"
	"fmt"
	"sort"

	"github.com/P4UL-M/Graph-Schedulator/internal/graph"
)

// ErrNoCriticalPath is returned for the degenerate project that contains
// only the two synthetic tasks.
var ErrNoCriticalPath = errors.New("no critical path")

// criticalSuccessors returns, for each task, its zero-float successors
// sorted by ascending rank (ties keep declaration order). Walking ranks in
// ascending order keeps the search from skipping over a shallower
// dependency.
func (c *Calendar) criticalSuccessors() (map[string][]*graph.Task, error) {
	float, err := c.Float()
	if err != nil {
		return nil, err
	}
	next := make(map[string][]*graph.Task, len(c.order))
	for _, t := range c.order {
		if float[t.Name] != 0 {
			continue
		}
		var out []*graph.Task
		for _, s := range c.succ[t.Name] {
			if float[s.Name] == 0 {
				out = append(out, s)
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return c.ranks[out[i].Name] < c.ranks[out[j].Name]
		})
		next[t.Name] = out
	}
	return next, nil
}

// CriticalPath returns one start-to-end chain of zero-float tasks whose
// total duration equals the project duration. Zero float alone does not
// guarantee a maximal-weight chain, so candidates failing the weight check
// are rejected and the search backtracks. A validated, non-degenerate graph
// always has such a path; finding none is an internal defect.
func (c *Calendar) CriticalPath() ([]*graph.Task, error) {
	it, err := c.AllCriticalPaths()
	if err != nil {
		return nil, err
	}
	path, ok := it.Next()
	if !ok {
		if c.g.TaskCount() == 2 {
			return nil, ErrNoCriticalPath
		}
		return nil, fmt.Errorf("%w: no zero-float chain matches the project duration %d",
			ErrInternal, c.ProjectDuration())
	}
	return path, nil
}

// AllCriticalPaths returns a one-shot iterator over every critical path in
// DFS order. Exhausted iterators stay exhausted; call again for a fresh
// enumeration.
func (c *Calendar) AllCriticalPaths() (*PathIter, error) {
	next, err := c.criticalSuccessors()
	if err != nil {
		return nil, err
	}
	it := &PathIter{
		next:     next,
		end:      c.g.End(),
		duration: c.ProjectDuration(),
	}
	// A project with only the two synthetic tasks has no critical path,
	// even though start connects straight to end.
	if c.g.TaskCount() == 2 {
		it.done = true
		return it, nil
	}
	start := c.g.Start()
	it.stack = []pathFrame{{task: start}}
	it.path = []*graph.Task{start}
	return it, nil
}

// PathIter enumerates critical paths with an explicit-stack depth-first
// search, suspending between results.
type PathIter struct {
	next     map[string][]*graph.Task
	end      *graph.Task
	duration int

	stack  []pathFrame
	path   []*graph.Task
	weight int
	done   bool
}

type pathFrame struct {
	task  *graph.Task
	child int
}

// Next returns the next critical path, or false once the search space is
// exhausted. The returned slice is owned by the caller.
func (it *PathIter) Next() ([]*graph.Task, bool) {
	for !it.done && len(it.stack) > 0 {
		f := &it.stack[len(it.stack)-1]

		if f.task == it.end && f.child == 0 {
			f.child = 1 // emit once, then backtrack through it
			if it.weight == it.duration {
				out := make([]*graph.Task, len(it.path))
				copy(out, it.path)
				return out, true
			}
			continue
		}

		children := it.next[f.task.Name]
		if f.child >= len(children) {
			// Backtrack.
			it.stack = it.stack[:len(it.stack)-1]
			it.path = it.path[:len(it.path)-1]
			it.weight -= f.task.Duration
			continue
		}

		child := children[f.child]
		f.child++
		it.stack = append(it.stack, pathFrame{task: child})
		it.path = append(it.path, child)
		it.weight += child.Duration
	}
	it.done = true
	return nil, false
}

// FastCriticalPath walks start to end always taking the lowest-rank
// zero-float successor, with no backtracking and no final weight check.
// It is a heuristic: on well-formed graphs it is expected to match
// CriticalPath, but that equivalence is unproven, so callers needing the
// guarantee must use CriticalPath. The bench command compares the two
// empirically.
func (c *Calendar) FastCriticalPath() ([]*graph.Task, error) {
	if c.g.TaskCount() == 2 {
		return nil, ErrNoCriticalPath
	}
	next, err := c.criticalSuccessors()
	if err != nil {
		return nil, err
	}
	end := c.g.End()
	cur := c.g.Start()
	path := []*graph.Task{cur}
	for cur != end {
		cands := next[cur.Name]
		if len(cands) == 0 {
			return nil, fmt.Errorf("%w: greedy walk dead-ends at task %s", ErrInternal, cur.Name)
		}
		cur = cands[0]
		path = append(path, cur)
	}
	return path, nil
}

// PathWeight sums the durations along a path.
func PathWeight(path []*graph.Task) int {
	total := 0
	for _, t := range path {
		total += t.Duration
	}
	return total
}

// Wave groups tasks sharing an earliest date. Waves order the Gantt view
// and show which tasks may run in parallel.
type Wave struct {
	Index    int
	Start    int // shared earliest date
	Tasks    []*graph.Task
	Critical bool // true if the wave holds a zero-float task
}

// Waves groups tasks by earliest date, ascending. Within a wave, critical
// tasks sort first and ties keep rank order.
func (c *Calendar) Waves() ([]Wave, error) {
	earliest := c.Earliest()
	float, err := c.Float()
	if err != nil {
		return nil, err
	}

	groups := make(map[int][]*graph.Task)
	for _, t := range c.order {
		groups[earliest[t.Name]] = append(groups[earliest[t.Name]], t)
	}

	starts := make([]int, 0, len(groups))
	for s := range groups {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	waves := make([]Wave, len(starts))
	for i, s := range starts {
		tasks := groups[s]
		sort.SliceStable(tasks, func(a, b int) bool {
			ac, bc := float[tasks[a].Name] == 0, float[tasks[b].Name] == 0
			if ac != bc {
				return ac
			}
			return false
		})
		critical := false
		for _, t := range tasks {
			if float[t.Name] == 0 {
				critical = true
				break
			}
		}
		waves[i] = Wave{Index: i, Start: s, Tasks: tasks, Critical: critical}
	}
	return waves, nil
}
