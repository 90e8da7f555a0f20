package graph

// Task is a single task declaration. Tasks are immutable once constructed
// and identified by Name alone.
type Task struct {
	Name         string
	Duration     int
	Predecessors []string
}

// TaskGraph is a directed acyclic graph of tasks. Tasks holds declaration
// order with the synthetic start task first and the synthetic end task last.
// A TaskGraph is validated during construction and read-only afterwards.
type TaskGraph struct {
	Name  string
	Tasks []*Task

	byName    map[string]*Task
	startName string
	endName   string
}

// Start returns the synthetic start task.
func (g *TaskGraph) Start() *Task { return g.byName[g.startName] }

// End returns the synthetic end task.
func (g *TaskGraph) End() *Task { return g.byName[g.endName] }

// Lookup returns the task with the given name.
func (g *TaskGraph) Lookup(name string) (*Task, bool) {
	t, ok := g.byName[name]
	return t, ok
}

// IsSynthetic reports whether the named task is one of the two injected
// zero-duration sentinels.
func (g *TaskGraph) IsSynthetic(name string) bool {
	return name == g.startName || name == g.endName
}

// TaskCount returns the number of tasks, synthetic ones included.
func (g *TaskGraph) TaskCount() int { return len(g.Tasks) }
