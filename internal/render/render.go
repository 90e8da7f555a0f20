// Package render turns the engine's query results into terminal tables,
// Gantt charts, Graphviz documents, and machine-readable JSON. It only
// reads from the graph and the Calendar; it never mutates engine state.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/P4UL-M/Graph-Schedulator/internal/cpm"
	"github.com/P4UL-M/Graph-Schedulator/internal/graph"
	"github.com/P4UL-M/Graph-Schedulator/internal/ui"
)

// TaskTable writes the task declarations: name, duration, predecessors,
// and predecessor count.
func TaskTable(w io.Writer, g *graph.TaskGraph) {
	headers := []cell{
		styled("Name", ui.BoldRed),
		styled("Duration", ui.BoldRed),
		styled("Predecessors", ui.BoldRed),
		styled("Nb predecessors", ui.BoldRed),
	}
	rows := make([][]cell, 0, g.TaskCount())
	for _, t := range g.Tasks {
		name := styled(t.Name, ui.TaskColor(t.Name))
		if g.IsSynthetic(t.Name) {
			name = styled(t.Name, ui.Dim)
		}
		rows = append(rows, []cell{
			name,
			plain(strconv.Itoa(t.Duration)),
			plain(strings.Join(t.Predecessors, ", ")),
			plain(strconv.Itoa(len(t.Predecessors))),
		})
	}
	fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("Tasks"), ui.Dim("("+g.Name+")"))
	writeTable(w, headers, rows)
}

// Matrix writes the incidence matrix: cell (i, j) holds task i's duration
// when i precedes j, and "*" where there is no edge.
func Matrix(w io.Writer, g *graph.TaskGraph) {
	m := g.IncidenceMatrix()

	headers := make([]cell, 0, g.TaskCount()+1)
	headers = append(headers, plain(""))
	for _, t := range g.Tasks {
		headers = append(headers, styled(t.Name, ui.BoldRed))
	}

	rows := make([][]cell, 0, g.TaskCount())
	for i, t := range g.Tasks {
		row := make([]cell, 0, g.TaskCount()+1)
		row = append(row, styled(t.Name, ui.BoldRed))
		for _, v := range m[i] {
			if v == graph.NoEdge {
				row = append(row, styled("*", ui.Dim))
			} else {
				row = append(row, styled(strconv.Itoa(v), ui.Cyan))
			}
		}
		rows = append(rows, row)
	}
	fmt.Fprintf(w, "%s\n", ui.BoldCyan("Incidence matrix"))
	writeTable(w, headers, rows)
}

// Schedule writes the rank-ordered schedule table: one column per task,
// one row per metric, the layout of the original schedule printout.
func Schedule(w io.Writer, c *cpm.Calendar) error {
	float, err := c.Float()
	if err != nil {
		return err
	}
	ranks := c.Ranks()
	earliest := c.Earliest()
	latest := c.Latest()
	freeFloat := c.FreeFloat()
	order := c.Order()

	row := func(label string, value func(t *graph.Task) cell) []cell {
		out := make([]cell, 0, len(order)+1)
		out = append(out, styled(label, ui.BoldRed))
		for _, t := range order {
			out = append(out, value(t))
		}
		return out
	}
	num := func(m map[string]int) func(t *graph.Task) cell {
		return func(t *graph.Task) cell { return plain(strconv.Itoa(m[t.Name])) }
	}

	rows := [][]cell{
		row("rank", num(ranks)),
		row("duration", func(t *graph.Task) cell { return plain(strconv.Itoa(t.Duration)) }),
		row("earliest date", num(earliest)),
		row("latest date", num(latest)),
		row("float", func(t *graph.Task) cell {
			if float[t.Name] == 0 {
				return styled("0", ui.BoldYellow)
			}
			return plain(strconv.Itoa(float[t.Name]))
		}),
		row("free float", num(freeFloat)),
	}
	headers := row("task", func(t *graph.Task) cell {
		if g := c.Graph(); g.IsSynthetic(t.Name) {
			return styled(t.Name, ui.Dim)
		}
		return styled(t.Name, ui.TaskColor(t.Name))
	})

	fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("Schedule"),
		ui.Dim(fmt.Sprintf("(project duration %d)", c.ProjectDuration())))
	writeTable(w, headers, rows)
	return nil
}

// Paths writes the critical path, its weight, and the full enumeration.
func Paths(w io.Writer, c *cpm.Calendar) error {
	path, err := c.CriticalPath()
	if errors.Is(err, cpm.ErrNoCriticalPath) {
		fmt.Fprintln(w, ui.Dim("No critical path: the project has no tasks."))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("Critical path:"), formatPath(path))
	fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("Critical path weight:"),
		ui.Bold(strconv.Itoa(cpm.PathWeight(path))))

	it, err := c.AllCriticalPaths()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s\n", ui.BoldRed("All critical paths:"))
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		fmt.Fprintf(w, "  - %s\n", formatPath(p))
	}
	return nil
}

func formatPath(path []*graph.Task) string {
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = ui.BoldYellow(t.Name)
	}
	return strings.Join(names, ui.Dim(" -> "))
}

// JSON returns the full analysis in machine-readable form.
func JSON(c *cpm.Calendar) ([]byte, error) {
	type taskOut struct {
		Name         string   `json:"name"`
		Duration     int      `json:"duration"`
		Predecessors []string `json:"predecessors"`
		Synthetic    bool     `json:"synthetic,omitempty"`
		Rank         int      `json:"rank"`
		Earliest     int      `json:"earliest"`
		Latest       int      `json:"latest"`
		Float        int      `json:"float"`
		FreeFloat    int      `json:"free_float"`
		Critical     bool     `json:"critical"`
	}
	type output struct {
		Graph         string     `json:"graph"`
		Duration      int        `json:"duration"`
		Tasks         []taskOut  `json:"tasks"`
		CriticalPath  []string   `json:"critical_path"`
		CriticalPaths [][]string `json:"critical_paths"`
	}

	float, err := c.Float()
	if err != nil {
		return nil, err
	}
	ranks := c.Ranks()
	earliest := c.Earliest()
	latest := c.Latest()
	freeFloat := c.FreeFloat()
	g := c.Graph()

	o := output{Graph: g.Name, Duration: c.ProjectDuration()}
	for _, t := range c.Order() {
		o.Tasks = append(o.Tasks, taskOut{
			Name:         t.Name,
			Duration:     t.Duration,
			Predecessors: t.Predecessors,
			Synthetic:    g.IsSynthetic(t.Name),
			Rank:         ranks[t.Name],
			Earliest:     earliest[t.Name],
			Latest:       latest[t.Name],
			Float:        float[t.Name],
			FreeFloat:    freeFloat[t.Name],
			Critical:     float[t.Name] == 0,
		})
	}

	path, err := c.CriticalPath()
	switch {
	case err == nil:
		o.CriticalPath = pathNames(path)
	case errors.Is(err, cpm.ErrNoCriticalPath):
		// leave empty
	default:
		return nil, err
	}

	it, err := c.AllCriticalPaths()
	if err != nil {
		return nil, err
	}
	o.CriticalPaths = [][]string{}
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		o.CriticalPaths = append(o.CriticalPaths, pathNames(p))
	}

	return json.MarshalIndent(o, "", "  ")
}

func pathNames(path []*graph.Task) []string {
	names := make([]string, len(path))
	for i, t := range path {
		names[i] = t.Name
	}
	return names
}
