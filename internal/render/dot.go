package render

import (
	"fmt"
	"io"

	"github.com/P4UL-M/Graph-Schedulator/internal/cpm"
	"github.com/P4UL-M/Graph-Schedulator/internal/graph"
)

// DOT writes a Graphviz document for the task graph. Critical tasks are
// drawn bold red; an edge is red only when it actually carries the
// critical schedule, i.e. both endpoints are critical and the successor's
// earliest date equals the predecessor's earliest finish.
func DOT(w io.Writer, c *cpm.Calendar) error {
	float, err := c.Float()
	if err != nil {
		return err
	}
	earliest := c.Earliest()
	g := c.Graph()

	fmt.Fprintf(w, "digraph %q {\n", g.Name)
	fmt.Fprintln(w, "  rankdir=LR;")
	fmt.Fprintln(w, "  node [shape=box, style=rounded];")
	fmt.Fprintln(w)

	for _, t := range g.Tasks {
		label := fmt.Sprintf("%s\\n%d", t.Name, t.Duration)
		attrs := fmt.Sprintf(`label="%s"`, label)
		switch {
		case float[t.Name] == 0 && g.IsSynthetic(t.Name):
			attrs += `, style="rounded,dashed,bold", color=red`
		case float[t.Name] == 0:
			attrs += `, style="rounded,bold", color=red`
		case g.IsSynthetic(t.Name):
			attrs += `, style="rounded,dashed"`
		}
		fmt.Fprintf(w, "  %q [%s];\n", t.Name, attrs)
	}

	fmt.Fprintln(w)

	onCritical := func(from, to *graph.Task) bool {
		return float[from.Name] == 0 && float[to.Name] == 0 &&
			earliest[to.Name] == earliest[from.Name]+from.Duration
	}
	succ := g.SuccessorIndex()
	for _, t := range g.Tasks {
		for _, s := range succ[t.Name] {
			style := ""
			if onCritical(t, s) {
				style = ` [color=red, penwidth=2]`
			}
			fmt.Fprintf(w, "  %q -> %q%s;\n", t.Name, s.Name, style)
		}
	}

	fmt.Fprintln(w, "}")
	return nil
}
