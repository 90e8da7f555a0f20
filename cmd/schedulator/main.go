package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/P4UL-M/Graph-Schedulator/internal/cpm"
	"github.com/P4UL-M/Graph-Schedulator/internal/graph"
	"github.com/P4UL-M/Graph-Schedulator/internal/logging"
	"github.com/P4UL-M/Graph-Schedulator/internal/render"
	"github.com/P4UL-M/Graph-Schedulator/internal/ui"
)

var (
	flagNoColor  bool
	flagJSON     bool
	flagDebugLog string
	flagFormat   string
	flagRuns     int

	log = logging.Nop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "schedulator",
		Short: "Critical path scheduling for weighted task graphs",
		Long: `Schedulator reads a task file (one "name duration predecessor..." line per
task, or a JSON task array), builds the dependency graph with synthetic
start and end tasks, and computes ranks, earliest/latest dates, float, and
critical paths.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if flagNoColor {
				color.NoColor = true
			}
			var err error
			log, err = logging.New(flagDebugLog)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			log.Close()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&flagDebugLog, "debug-log", "", "Write a JSON debug log to this file")

	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(scheduleCmd())
	rootCmd.AddCommand(pathsCmd())
	rootCmd.AddCommand(ganttCmd())
	rootCmd.AddCommand(vizCmd())
	rootCmd.AddCommand(benchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadCalendar builds the validated graph and its Calendar from a task file.
func loadCalendar(path string) (*cpm.Calendar, error) {
	g, err := graph.FromFile(path)
	if err != nil {
		log.Error("graph construction failed", "file", path, "error", err.Error())
		return nil, err
	}
	c := cpm.NewCalendar(g)
	log.Info("graph built", "file", path, "graph", g.Name,
		"tasks", g.TaskCount(), "project_duration", c.ProjectDuration())
	return c, nil
}

// printJSON is the shared --json output for the analysis commands.
func printJSON(c *cpm.Calendar) error {
	data, err := render.JSON(c)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <taskfile>",
		Short: "Print the task table and incidence matrix",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCalendar(args[0])
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(c)
			}
			ui.PrintLogo()
			render.TaskTable(os.Stdout, c.Graph())
			fmt.Println()
			render.Matrix(os.Stdout, c.Graph())
			return nil
		},
	}
}

func scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <taskfile>",
		Short: "Print ranks, earliest/latest dates, float, and free float",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCalendar(args[0])
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(c)
			}
			return render.Schedule(os.Stdout, c)
		},
	}
}

func pathsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "paths <taskfile>",
		Short: "Print the critical path and enumerate all critical paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCalendar(args[0])
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(c)
			}
			return render.Paths(os.Stdout, c)
		},
	}
}

func ganttCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gantt <taskfile>",
		Short: "Print an ASCII Gantt chart grouped by waves",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCalendar(args[0])
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(c)
			}
			return render.Gantt(os.Stdout, c)
		},
	}
}

func vizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "viz <taskfile>",
		Short: "Print the dependency graph (ascii or Graphviz dot)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadCalendar(args[0])
			if err != nil {
				return err
			}
			if flagFormat == "dot" {
				return render.DOT(os.Stdout, c)
			}
			return printASCIIDAG(c)
		},
	}
	cmd.Flags().StringVar(&flagFormat, "format", "ascii", "Output format (ascii, dot)")
	return cmd
}

// printASCIIDAG lists each wave's tasks with their outgoing edges.
func printASCIIDAG(c *cpm.Calendar) error {
	float, err := c.Float()
	if err != nil {
		return err
	}
	waves, err := c.Waves()
	if err != nil {
		return err
	}
	succ := c.Graph().SuccessorIndex()

	fmt.Printf("%s\n", ui.BoldCyan("Task Dependency Graph"))
	fmt.Println(ui.Cyan("═════════════════════"))
	fmt.Println()
	for _, wave := range waves {
		fmt.Printf("%s wave %d (t=%d) %s\n", ui.Cyan("──"), wave.Index+1, wave.Start,
			ui.Cyan("──────────────────────────────"))
		for _, t := range wave.Tasks {
			crit := " "
			if float[t.Name] == 0 {
				crit = ui.BoldYellow("⚡")
			}
			fmt.Printf("  %s [%s] duration %d\n", crit, ui.TaskColor(t.Name)(t.Name), t.Duration)
			for _, s := range succ[t.Name] {
				fmt.Printf("      %s %s\n", ui.Dim("└──→"), ui.Magenta(s.Name))
			}
		}
		fmt.Println()
	}
	return nil
}

func benchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench <taskfile>...",
		Short: "Compare the exact and greedy critical path finders",
		Long: `Bench times CriticalPath against FastCriticalPath over the given task
files and reports whether the greedy heuristic matched the exact,
weight-validated result on each input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("%-24s %14s %14s %8s  %s\n",
				ui.BoldRed("File"), ui.BoldRed("exact"), ui.BoldRed("fast"),
				ui.BoldRed("ratio"), ui.BoldRed("match"))
			for _, path := range args {
				if err := benchFile(path); err != nil {
					fmt.Printf("%-24s %s\n", path, ui.Red(err.Error()))
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&flagRuns, "runs", 100, "Iterations per file")
	return cmd
}

func benchFile(path string) error {
	c, err := loadCalendar(path)
	if err != nil {
		return err
	}

	var exact, fast time.Duration
	var exactPath, fastPath []*graph.Task
	for i := 0; i < flagRuns; i++ {
		start := time.Now()
		exactPath, err = c.CriticalPath()
		exact += time.Since(start)
		if err != nil {
			return err
		}

		start = time.Now()
		fastPath, err = c.FastCriticalPath()
		fast += time.Since(start)
		if err != nil && !errors.Is(err, cpm.ErrInternal) {
			return err
		}
	}

	match := ui.Green("yes")
	if !samePath(exactPath, fastPath) {
		match = ui.BoldRed("NO")
	}
	avgExact := exact / time.Duration(flagRuns)
	avgFast := fast / time.Duration(flagRuns)
	ratio := "-"
	if avgFast > 0 {
		ratio = fmt.Sprintf("%+.1f%%", (float64(avgExact)/float64(avgFast)-1)*100)
	}
	fmt.Printf("%-24s %14s %14s %8s  %s\n", path, avgExact, avgFast, ratio, match)
	return nil
}

func samePath(a, b []*graph.Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name {
			return false
		}
	}
	return true
}
