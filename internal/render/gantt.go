package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/P4UL-M/Graph-Schedulator/internal/cpm"
	"github.com/P4UL-M/Graph-Schedulator/internal/ui"
)

// Gantt writes an ASCII Gantt chart, one row per task grouped by wave
// (tasks sharing an earliest date). Solid bars span earliest date to
// earliest finish; non-critical tasks get a trailing slack bar up to their
// latest finish.
func Gantt(w io.Writer, c *cpm.Calendar) error {
	float, err := c.Float()
	if err != nil {
		return err
	}
	waves, err := c.Waves()
	if err != nil {
		return err
	}
	earliest := c.Earliest()
	latest := c.Latest()

	nameWidth := 0
	for _, t := range c.Order() {
		if len(t.Name) > nameWidth {
			nameWidth = len(t.Name)
		}
	}

	duration := c.ProjectDuration()
	fmt.Fprintf(w, "%s %s\n", ui.BoldCyan("Gantt"),
		ui.Dim(fmt.Sprintf("(1 column = 1 time unit, project duration %d)", duration)))
	scale := "0"
	if duration > 0 {
		scale += strings.Repeat(" ", maxInt(duration-1, 0)) + fmt.Sprint(duration)
	}
	fmt.Fprintf(w, "%*s  %s\n", nameWidth, "", ui.Dim(scale))

	for _, wave := range waves {
		marker := ""
		if wave.Critical {
			marker = " " + ui.BoldYellow("⚡")
		}
		fmt.Fprintf(w, "%s\n", ui.Dim(fmt.Sprintf("── wave %d (t=%d)%s", wave.Index+1, wave.Start, marker)))
		for _, t := range wave.Tasks {
			if c.Graph().IsSynthetic(t.Name) {
				continue
			}
			bar := ui.TaskColor(t.Name)(strings.Repeat("█", t.Duration))
			slack := ""
			if f := latest[t.Name] - earliest[t.Name]; f > 0 {
				slack = ui.Dim(strings.Repeat("░", f))
			}
			label := t.Name
			if float[t.Name] == 0 {
				label = ui.BoldYellow(t.Name)
			}
			fmt.Fprintf(w, "%s%s  %s%s%s\n",
				strings.Repeat(" ", nameWidth-len(t.Name)), label,
				strings.Repeat(" ", earliest[t.Name]), bar, slack)
		}
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
