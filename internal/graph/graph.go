// Package graph builds and validates the precedence-constrained task graph
// that the CPM engine schedules. Construction injects a synthetic start and
// end task so every graph has a single source and a single sink, then
// validates durations, predecessor references, and acyclicity. A validated
// TaskGraph is never mutated.
package graph

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// StartName is the reserved name of the synthetic start task, matching the
// numeric naming of user task files (user tasks conventionally count from 1).
const StartName = "0"

// FromFile reads a task file and builds a validated graph. Files ending in
// .json are decoded as a JSON task array; anything else is parsed as the
// line format "name duration predecessor...". The graph name is derived
// from the file base name.
func FromFile(path string) (*TaskGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	name := graphName(path)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, fmt.Errorf("read task file: %w", err)
		}
		return FromJSON(name, data)
	}
	return FromReader(name, f)
}

// FromReader parses the line format from r and builds a validated graph.
func FromReader(name string, r io.Reader) (*TaskGraph, error) {
	var decls []Task
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		t, err := parseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		decls = append(decls, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read task lines: %w", err)
	}
	return FromTasks(name, decls)
}

// parseLine splits "name duration predecessor..." into a Task declaration.
func parseLine(line string) (Task, error) {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) < 2 {
		return Task{}, formatErrf(ErrBadFormat, "", "expected \"name duration predecessor...\", got %q", line)
	}
	dur, err := strconv.Atoi(fields[1])
	if err != nil {
		return Task{}, formatErrf(ErrBadFormat, fields[0], "duration %q is not an integer", fields[1])
	}
	return Task{Name: fields[0], Duration: dur, Predecessors: fields[2:]}, nil
}

// FromTasks runs the construction pipeline over raw task declarations:
// inject the synthetic start, point root tasks at it, compute sinks, append
// the synthetic end, then validate. Declaration order is preserved.
func FromTasks(name string, decls []Task) (*TaskGraph, error) {
	g := &TaskGraph{
		Name:      name,
		byName:    make(map[string]*Task, len(decls)+2),
		startName: StartName,
	}

	// The end sentinel is named one past the start-inclusive task count,
	// so N user tasks yield "0" and "N+1".
	g.endName = strconv.Itoa(len(decls) + 1)

	for i := range decls {
		d := decls[i]
		switch d.Name {
		case g.startName, g.endName:
			return nil, formatErrf(ErrBadFormat, d.Name, "name collides with the reserved synthetic task name")
		}
		if _, dup := g.byName[d.Name]; dup {
			return nil, formatErrf(ErrBadFormat, d.Name, "duplicate task name")
		}
		seen := make(map[string]bool, len(d.Predecessors))
		for _, p := range d.Predecessors {
			if seen[p] {
				return nil, formatErrf(ErrBadFormat, d.Name, "duplicate predecessor %s", p)
			}
			seen[p] = true
		}
		t := &Task{Name: d.Name, Duration: d.Duration, Predecessors: d.Predecessors}
		g.Tasks = append(g.Tasks, t)
		g.byName[t.Name] = t
	}

	// Phase 1: prepend the start task and make it the predecessor of every
	// declared root.
	start := &Task{Name: g.startName}
	g.Tasks = append([]*Task{start}, g.Tasks...)
	g.byName[start.Name] = start
	for _, t := range g.Tasks[1:] {
		if len(t.Predecessors) == 0 {
			t.Predecessors = []string{g.startName}
		}
	}

	// Phase 2: sinks are only known once the start edges exist; the end
	// task's predecessor list is exactly the current zero-successor set.
	hasSuccessor := make(map[string]bool, len(g.Tasks))
	for _, t := range g.Tasks {
		for _, p := range t.Predecessors {
			hasSuccessor[p] = true
		}
	}
	end := &Task{Name: g.endName}
	for _, t := range g.Tasks {
		if !hasSuccessor[t.Name] {
			end.Predecessors = append(end.Predecessors, t.Name)
		}
	}
	g.Tasks = append(g.Tasks, end)
	g.byName[end.Name] = end

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks, in order: no negative durations, every predecessor
// reference resolves, and the predecessor relation is acyclic.
func (g *TaskGraph) Validate() error {
	for _, t := range g.Tasks {
		if t.Duration < 0 {
			return formatErrf(ErrNegativeDuration, t.Name, "duration %d", t.Duration)
		}
	}
	for _, t := range g.Tasks {
		for _, p := range t.Predecessors {
			if _, ok := g.byName[p]; !ok {
				return formatErrf(ErrDanglingPredecessor, t.Name, "references %s", p)
			}
		}
	}
	return g.detectCycle()
}

// detectCycle walks successor edges from every task with an explicit-stack
// DFS and three-color marking: white (unvisited), gray (on the search
// path), black (finished). Reaching a gray task again exposes a cycle, and
// the error names that task.
func (g *TaskGraph) detectCycle() error {
	const (
		white = 0
		gray  = 1
		black = 2
	)

	succ := g.SuccessorIndex()
	color := make(map[string]int, len(g.Tasks))

	type frame struct {
		task     *Task
		expanded bool
	}
	var stack []frame

	for _, root := range g.Tasks {
		if color[root.Name] != white {
			continue
		}
		stack = append(stack[:0], frame{task: root})
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if f.expanded {
				color[f.task.Name] = black
				continue
			}
			if color[f.task.Name] == black {
				continue
			}
			color[f.task.Name] = gray
			stack = append(stack, frame{task: f.task, expanded: true})
			for _, s := range succ[f.task.Name] {
				switch color[s.Name] {
				case gray:
					return formatErrf(ErrCycle, s.Name, "reached again while still on the search path")
				case white:
					stack = append(stack, frame{task: s})
				}
			}
		}
	}
	return nil
}

// Successors returns every task whose predecessor list contains t's name,
// in declaration order. Each call scans the whole graph; callers doing
// repeated lookups should use SuccessorIndex.
func (g *TaskGraph) Successors(t *Task) []*Task {
	var out []*Task
	for _, cand := range g.Tasks {
		for _, p := range cand.Predecessors {
			if p == t.Name {
				out = append(out, cand)
				break
			}
		}
	}
	return out
}

// SuccessorIndex builds the name-to-successors index in one pass.
// Successor lists preserve declaration order.
func (g *TaskGraph) SuccessorIndex() map[string][]*Task {
	idx := make(map[string][]*Task, len(g.Tasks))
	for _, t := range g.Tasks {
		for _, p := range t.Predecessors {
			idx[p] = append(idx[p], t)
		}
	}
	return idx
}

// NoEdge is the incidence-matrix sentinel for "no edge".
const NoEdge = -1

// IncidenceMatrix returns the n-by-n matrix where cell (i, j) holds task
// i's duration if task i is a predecessor of task j, and NoEdge otherwise.
// Row and column order is g.Tasks order.
func (g *TaskGraph) IncidenceMatrix() [][]int {
	n := len(g.Tasks)
	m := make([][]int, n)
	for i, from := range g.Tasks {
		row := make([]int, n)
		for j, to := range g.Tasks {
			row[j] = NoEdge
			for _, p := range to.Predecessors {
				if p == from.Name {
					row[j] = from.Duration
					break
				}
			}
		}
		m[i] = row
	}
	return m
}

// graphName derives the graph name from a file path: base name without
// extension, first letter upper-cased.
func graphName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if base == "" {
		return base
	}
	r := []rune(base)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
