package engine

import (
	"testing"
	"time"

	"tick/internal/models"
)

func TestAddTaskDefaults(t *testing.T) {
	t.Parallel()
	e, _, clock := newTestEngine()

	id := e.AddTask("Buy milk", "", nil)
	if id == "" {
		t.Fatal("expected a task id")
	}

	task, ok := e.Task(id)
	if !ok {
		t.Fatal("task not stored")
	}
	if task.Completed {
		t.Error("new task should be incomplete")
	}
	if task.Priority != models.PriorityMedium {
		t.Errorf("expected default priority medium, got %s", task.Priority)
	}
	if !task.CreatedAt.Equal(clock.Now()) {
		t.Errorf("createdAt = %v, want %v", task.CreatedAt, clock.Now())
	}

	visible := e.FilteredTasks()
	if len(visible) != 1 || visible[0].ID != id {
		t.Errorf("task should appear in the default view, got %v", visible)
	}
}

func TestAddTaskEmptyTitle(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	id := e.AddTask("", "", nil)
	task, _ := e.Task(id)
	if task.Title != "New Task" {
		t.Errorf("empty title should default, got %q", task.Title)
	}
}

func TestAddSubtask(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	parent := e.AddTask("Plan trip", "", nil)
	child := e.AddTask("Book flight", parent, nil)

	p, _ := e.Task(parent)
	if len(p.SubtaskIDs) != 1 || p.SubtaskIDs[0] != child {
		t.Errorf("parent subtaskIds = %v, want [%s]", p.SubtaskIDs, child)
	}
	c, _ := e.Task(child)
	if c.ParentID != parent {
		t.Errorf("child parentId = %q, want %q", c.ParentID, parent)
	}
}

func TestAddTaskMissingParent(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	id := e.AddTask("Orphan", "no-such-task", nil)

	task, ok := e.Task(id)
	if !ok {
		t.Fatal("task should still be created when the parent is missing")
	}
	if task.ParentID != "no-such-task" {
		t.Errorf("parentId = %q", task.ParentID)
	}
	// The dangling parent reference keeps it out of every view.
	if len(e.FilteredTasks()) != 0 {
		t.Error("orphan should not appear as a top-level task")
	}
}

func TestAddTaskTodayScope(t *testing.T) {
	t.Parallel()
	e, _, clock := newTestEngine()

	e.SetScope(ScopeToday)
	id := e.AddTask("Standup", "", nil)
	task, _ := e.Task(id)
	if task.DueDate == nil || !task.DueDate.Equal(clock.Now()) {
		t.Errorf("task added in Today scope should be due now, got %v", task.DueDate)
	}

	// Sub-tasks do not inherit the Today default.
	child := e.AddTask("Notes", id, nil)
	ct, _ := e.Task(child)
	if ct.DueDate != nil {
		t.Errorf("subtask should have no due date, got %v", ct.DueDate)
	}
}

func TestAddTaskSelectedTag(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	tag := e.AddTag("errands")
	e.SelectTag(tag)

	id := e.AddTask("Post office", "", nil)
	task, _ := e.Task(id)
	if !task.HasTag(tag) {
		t.Errorf("task should carry the selected tag, has %v", task.Tags)
	}
}

func TestAddTaskSelectedProject(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	proj := e.AddProject("Website")
	e.SelectProject(proj)

	id := e.AddTask("Design review", "", nil)
	found := false
	for _, p := range e.Projects() {
		if p.ID == proj {
			for _, tid := range p.TaskIDs {
				if tid == id {
					found = true
				}
			}
		}
	}
	if !found {
		t.Error("task id should be appended to the selected project")
	}

	// Sub-tasks never join a project.
	child := e.AddTask("Collect notes", id, nil)
	for _, p := range e.Projects() {
		for _, tid := range p.TaskIDs {
			if tid == child {
				t.Error("subtask should not be added to the project")
			}
		}
	}
}

func TestToggleCascadesToDirectChildren(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	parent := e.AddTask("Release", "", nil)
	child := e.AddTask("Tag build", parent, nil)
	grandchild := e.AddTask("Bump version", child, nil)

	e.ToggleTask(parent)

	p, _ := e.Task(parent)
	c, _ := e.Task(child)
	g, _ := e.Task(grandchild)
	if !p.Completed || !c.Completed {
		t.Error("completing the parent should complete direct children")
	}
	if g.Completed {
		t.Error("grandchildren are unaffected by the cascade")
	}

	// Un-completing runs the same cascade path.
	e.ToggleTask(parent)
	p, _ = e.Task(parent)
	c, _ = e.Task(child)
	if p.Completed || c.Completed {
		t.Error("un-completing the parent should un-complete direct children")
	}
}

func TestToggleTaskFoldsRunningTimer(t *testing.T) {
	t.Parallel()
	e, _, clock := newTestEngine()

	id := e.AddTask("Deep work", "", nil)
	e.ToggleTimer(id)
	clock.Advance(7 * time.Second)
	e.ToggleTask(id)

	task, _ := e.Task(id)
	if !task.Completed {
		t.Error("task should be completed")
	}
	if task.TimeSpent != 7 {
		t.Errorf("timeSpent = %d, want 7", task.TimeSpent)
	}
	if task.Running() {
		t.Error("completing a task must stop its timer")
	}
}

func TestSingleActiveTimer(t *testing.T) {
	t.Parallel()
	e, _, clock := newTestEngine()

	x := e.AddTask("X", "", nil)
	y := e.AddTask("Y", "", nil)

	e.ToggleTimer(x)
	clock.Advance(5 * time.Second)
	e.ToggleTimer(y)

	tx, _ := e.Task(x)
	ty, _ := e.Task(y)
	if tx.TimeSpent != 5 {
		t.Errorf("x.timeSpent = %d, want 5", tx.TimeSpent)
	}
	if tx.Running() {
		t.Error("x's timer should have been stopped")
	}
	if !ty.Running() {
		t.Error("y's timer should be running")
	}
	if n := runningCount(e); n != 1 {
		t.Errorf("running timers = %d, want 1", n)
	}

	// Arbitrary toggle sequences keep the invariant.
	for i, id := range []string{x, y, x, x, y} {
		e.ToggleTimer(id)
		clock.Advance(time.Second)
		if n := runningCount(e); n > 1 {
			t.Fatalf("step %d: %d timers running", i, n)
		}
	}
}

func TestTimerAccrual(t *testing.T) {
	t.Parallel()
	e, _, clock := newTestEngine()

	id := e.AddTask("Focus", "", nil)
	e.ToggleTimer(id)
	clock.Advance(42 * time.Second)
	e.ToggleTimer(id)

	task, _ := e.Task(id)
	if task.TimeSpent != 42 {
		t.Errorf("timeSpent = %d, want 42", task.TimeSpent)
	}
	if task.Running() {
		t.Error("timer should be stopped")
	}

	// Accrual accumulates across sessions and floors sub-second remainders.
	e.ToggleTimer(id)
	clock.Advance(2500 * time.Millisecond)
	e.ToggleTimer(id)
	task, _ = e.Task(id)
	if task.TimeSpent != 44 {
		t.Errorf("timeSpent = %d, want 44", task.TimeSpent)
	}
}

func TestDeleteTaskCascade(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	proj := e.AddProject("Chores")
	e.SelectProject(proj)
	parent := e.AddTask("Spring cleaning", "", nil)
	a := e.AddTask("Windows", parent, nil)
	b := e.AddTask("Garage", parent, nil)
	grandchild := e.AddTask("Shelves", a, nil)

	e.DeleteTask(parent)

	for _, id := range []string{parent, a, b} {
		if _, ok := e.Task(id); ok {
			t.Errorf("task %s should be deleted", id)
		}
	}
	if _, ok := e.Task(grandchild); !ok {
		t.Error("grandchildren survive a one-level cascade")
	}
	for _, p := range e.Projects() {
		for _, tid := range p.TaskIDs {
			if tid == parent {
				t.Error("deleted id should be stripped from project taskIds")
			}
		}
	}
}

func TestDeleteChildStripsParentReference(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	parent := e.AddTask("Parent", "", nil)
	child := e.AddTask("Child", parent, nil)

	e.DeleteTask(child)

	p, _ := e.Task(parent)
	for _, sid := range p.SubtaskIDs {
		if sid == child {
			t.Error("deleted child id should be stripped from parent subtaskIds")
		}
	}
}

func TestUpdateTaskReplacesByID(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	id := e.AddTask("Draft", "", nil)
	task, _ := e.Task(id)
	task.Title = "Final"
	task.Priority = models.PriorityHigh
	e.UpdateTask(task)

	got, _ := e.Task(id)
	if got.Title != "Final" || got.Priority != models.PriorityHigh {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestReorderKeepsHiddenTasksInPlace(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	t1 := e.AddTask("one", "", nil)
	t2 := e.AddTask("two", "", nil)
	t3 := e.AddTask("three", "", nil)
	child := e.AddTask("sub", t2, nil)
	done := e.AddTask("done", "", nil)
	e.ToggleTask(done) // hidden from the default view

	e.Reorder([]string{t3, t1, t2})

	var order []string
	for _, task := range e.Tasks() {
		order = append(order, task.ID)
	}
	want := []string{t3, t1, t2, child, done}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
