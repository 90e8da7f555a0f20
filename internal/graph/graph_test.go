package graph

import (
	"errors"
	"strings"
	"testing"
)

func buildFromText(t *testing.T, text string) *TaskGraph {
	t.Helper()
	g, err := FromReader("Test", strings.NewReader(text))
	if err != nil {
		t.Fatalf("build graph: %v", err)
	}
	return g
}

const branchingInput = `A 3
B 2 A
C 4 A
D 1 B C
`

func TestFromReader_Branching(t *testing.T) {
	g := buildFromText(t, branchingInput)

	if g.TaskCount() != 6 {
		t.Fatalf("expected 6 tasks (4 declared + 2 synthetic), got %d", g.TaskCount())
	}

	// Declaration order with start first, end last.
	want := []string{"0", "A", "B", "C", "D", "5"}
	for i, name := range want {
		if g.Tasks[i].Name != name {
			t.Errorf("task %d: expected %s, got %s", i, name, g.Tasks[i].Name)
		}
	}

	if g.Start().Name != "0" || g.Start().Duration != 0 {
		t.Errorf("unexpected start task %+v", g.Start())
	}
	if g.End().Name != "5" || g.End().Duration != 0 {
		t.Errorf("unexpected end task %+v", g.End())
	}

	// A had no declared predecessors, so it hangs off start.
	a, _ := g.Lookup("A")
	if len(a.Predecessors) != 1 || a.Predecessors[0] != "0" {
		t.Errorf("expected A to depend on the start task, got %v", a.Predecessors)
	}

	// D is the only sink, so it is the end task's sole predecessor.
	if preds := g.End().Predecessors; len(preds) != 1 || preds[0] != "D" {
		t.Errorf("expected end predecessors [D], got %v", preds)
	}
}

func TestFromReader_EmptyProject(t *testing.T) {
	g, err := FromTasks("Empty", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.TaskCount() != 2 {
		t.Fatalf("expected only the two synthetic tasks, got %d", g.TaskCount())
	}
	// With no user tasks, start itself is the sink feeding end.
	if preds := g.End().Predecessors; len(preds) != 1 || preds[0] != "0" {
		t.Errorf("expected end predecessors [0], got %v", preds)
	}
}

func TestFromReader_CycleRejected(t *testing.T) {
	_, err := FromReader("Cycle", strings.NewReader("A 1 B\nB 1 A\n"))
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	if !errors.Is(err, ErrCycle) {
		t.Fatalf("expected ErrCycle, got %v", err)
	}
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected a FormatError, got %T", err)
	}
	if ferr.Task != "A" && ferr.Task != "B" {
		t.Errorf("cycle error should name A or B, named %q", ferr.Task)
	}
}

func TestFromReader_DanglingPredecessorRejected(t *testing.T) {
	_, err := FromReader("Dangling", strings.NewReader("A 1 Z\n"))
	if !errors.Is(err, ErrDanglingPredecessor) {
		t.Fatalf("expected ErrDanglingPredecessor, got %v", err)
	}
	var ferr *FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected a FormatError, got %T", err)
	}
	if ferr.Task != "A" || !strings.Contains(ferr.Msg, "Z") {
		t.Errorf("error should name task A and reference Z: %v", err)
	}
}

func TestFromReader_NegativeDurationRejected(t *testing.T) {
	_, err := FromReader("Negative", strings.NewReader("A -3\n"))
	if !errors.Is(err, ErrNegativeDuration) {
		t.Fatalf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestFromReader_MalformedLines(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"blank line", "A 1\n\nB 1\n"},
		{"missing duration", "A\n"},
		{"non-integer duration", "A x\n"},
		{"duplicate task name", "A 1\nA 2\n"},
		{"duplicate predecessor", "A 1\nB 1 A A\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromReader("Bad", strings.NewReader(tc.input))
			if !errors.Is(err, ErrBadFormat) {
				t.Fatalf("expected ErrBadFormat, got %v", err)
			}
		})
	}
}

func TestFromReader_ReservedNameCollision(t *testing.T) {
	_, err := FromReader("Collide", strings.NewReader("0 1\n"))
	if !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat for reserved start name, got %v", err)
	}

	// With two declared tasks, the end sentinel is named "3".
	_, err = FromReader("Collide", strings.NewReader("A 1\n3 1 A\n"))
	if !errors.Is(err, ErrBadFormat) {
		t.Fatalf("expected ErrBadFormat for reserved end name, got %v", err)
	}
}

func TestSuccessors(t *testing.T) {
	g := buildFromText(t, branchingInput)

	a, _ := g.Lookup("A")
	succs := g.Successors(a)
	if len(succs) != 2 || succs[0].Name != "B" || succs[1].Name != "C" {
		t.Errorf("expected successors of A to be [B C], got %v", names(succs))
	}

	if succs := g.Successors(g.End()); len(succs) != 0 {
		t.Errorf("expected the end task to have no successors, got %v", names(succs))
	}

	idx := g.SuccessorIndex()
	for _, task := range g.Tasks {
		direct := names(g.Successors(task))
		indexed := names(idx[task.Name])
		if strings.Join(direct, ",") != strings.Join(indexed, ",") {
			t.Errorf("task %s: index %v disagrees with Successors %v", task.Name, indexed, direct)
		}
	}
}

func TestIncidenceMatrix(t *testing.T) {
	g := buildFromText(t, "A 3\nB 2 A\n")
	// Order: 0, A, B, 3.
	m := g.IncidenceMatrix()

	if got := m[0][1]; got != 0 {
		t.Errorf("expected start->A cell to hold start's duration 0, got %d", got)
	}
	if got := m[1][2]; got != 3 {
		t.Errorf("expected A->B cell to hold A's duration 3, got %d", got)
	}
	if got := m[2][1]; got != NoEdge {
		t.Errorf("expected B->A cell to be NoEdge, got %d", got)
	}
	for i := range m {
		if m[i][0] != NoEdge {
			t.Errorf("nothing may precede the start task, got %d at row %d", m[i][0], i)
		}
	}
}

func TestFromFile_NameFromPath(t *testing.T) {
	g, err := FromFile("testdata/branching.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Name != "Branching" {
		t.Errorf("expected graph name Branching, got %q", g.Name)
	}
	if g.TaskCount() != 6 {
		t.Errorf("expected 6 tasks, got %d", g.TaskCount())
	}
}

func names(tasks []*Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}
