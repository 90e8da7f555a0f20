package graph

import (
	"github.com/tidwall/gjson"
)

// FromJSON decodes a JSON task array and builds a validated graph. The
// expected shape is:
//
//	[{"name": "A", "duration": 3, "predecessors": ["B", "C"]}, ...]
//
// Decoded declarations go through the same construction pipeline as the
// line format.
func FromJSON(name string, data []byte) (*TaskGraph, error) {
	if !gjson.ValidBytes(data) {
		return nil, formatErrf(ErrBadFormat, "", "invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, formatErrf(ErrBadFormat, "", "expected a JSON array of tasks, got %s", root.Type)
	}

	var (
		decls   []Task
		declErr error
	)
	root.ForEach(func(_, item gjson.Result) bool {
		if !item.IsObject() {
			declErr = formatErrf(ErrBadFormat, "", "expected a task object, got %s", item.Raw)
			return false
		}
		taskName := item.Get("name")
		if !taskName.Exists() || taskName.Type != gjson.String || taskName.String() == "" {
			declErr = formatErrf(ErrBadFormat, "", "task is missing a name: %s", item.Raw)
			return false
		}
		dur := item.Get("duration")
		if dur.Type != gjson.Number || dur.Num != float64(int64(dur.Num)) {
			declErr = formatErrf(ErrBadFormat, taskName.String(), "duration %q is not an integer", dur.Raw)
			return false
		}
		t := Task{Name: taskName.String(), Duration: int(dur.Int())}
		item.Get("predecessors").ForEach(func(_, p gjson.Result) bool {
			t.Predecessors = append(t.Predecessors, p.String())
			return true
		})
		decls = append(decls, t)
		return true
	})
	if declErr != nil {
		return nil, declErr
	}
	return FromTasks(name, decls)
}
