package engine

import (
	"time"

	"tick/internal/models"
)

// TaskSeed carries optional attributes for AddTaskWith, used by template
// instantiation to pre-fill the generated task.
type TaskSeed struct {
	Description string
	Priority    models.Priority
	Tags        []string
}

// AddTask creates a task and returns its id. When parentID is set the new
// id is appended to that parent's subtask list; a parentID that resolves to
// no task still creates the task, just without a parent link.
func (e *Engine) AddTask(title, parentID string, due *time.Time) string {
	return e.AddTaskWith(title, parentID, due, nil)
}

// AddTaskWith is AddTask with seed attributes applied on top of the
// defaults.
func (e *Engine) AddTaskWith(title, parentID string, due *time.Time, seed *TaskSeed) string {
	id := e.newID()
	now := e.now()

	if title == "" {
		title = "New Task"
	}

	// A task added while the Today scope is active lands on today's list.
	if due == nil && e.view.Scope == ScopeToday && parentID == "" {
		d := now
		due = &d
	}

	tags := []string{}
	if e.view.TagID != "" && parentID == "" {
		tags = append(tags, e.view.TagID)
	}

	t := models.Task{
		ID:         id,
		Title:      title,
		Completed:  false,
		Priority:   e.settings.DefaultPriority,
		Tags:       tags,
		DueDate:    due,
		CreatedAt:  now,
		ParentID:   parentID,
		SubtaskIDs: []string{},
	}

	if seed != nil {
		t.Description = seed.Description
		if seed.Priority != "" {
			t.Priority = seed.Priority
		}
		if seed.Tags != nil {
			t.Tags = append([]string{}, seed.Tags...)
		}
	}

	e.tasks = append(e.tasks, t)

	if parentID != "" {
		if i := e.find(parentID); i >= 0 {
			e.tasks[i].SubtaskIDs = append(e.tasks[i].SubtaskIDs, id)
		}
	} else if e.view.ProjectID != "" {
		if i := e.findProject(e.view.ProjectID); i >= 0 {
			e.projects[i].TaskIDs = append(e.projects[i].TaskIDs, id)
		}
	}

	e.persist()
	return id
}

// UpdateTask replaces the stored task with the same id. The caller supplies
// the complete new value and is responsible for preserving invariants.
func (e *Engine) UpdateTask(t models.Task) {
	if i := e.find(t.ID); i >= 0 {
		e.tasks[i] = t
		e.persist()
	}
}

// ToggleTask flips the task's completed state and cascades the new state to
// every direct child. Completing a task with a running timer folds the
// elapsed time into TimeSpent.
func (e *Engine) ToggleTask(id string) {
	i := e.find(id)
	if i < 0 {
		return
	}

	t := &e.tasks[i]
	newState := !t.Completed
	if newState && t.TimerStartedAt != nil {
		e.stopTimer(t)
	}
	t.Completed = newState

	children := make(map[string]bool, len(t.SubtaskIDs))
	for _, cid := range t.SubtaskIDs {
		children[cid] = true
	}
	for j := range e.tasks {
		if children[e.tasks[j].ID] {
			e.tasks[j].Completed = newState
		}
	}

	e.persist()
}

// ToggleTimer starts or stops the task's timer. At most one task in the
// store has a running timer: starting one stops any other, folding that
// task's elapsed time in the same pass.
func (e *Engine) ToggleTimer(id string) {
	if e.find(id) < 0 {
		return
	}
	for i := range e.tasks {
		t := &e.tasks[i]
		if t.ID == id {
			if t.TimerStartedAt != nil {
				e.stopTimer(t)
			} else {
				started := e.now()
				t.TimerStartedAt = &started
			}
		} else if t.TimerStartedAt != nil {
			e.stopTimer(t)
		}
	}
	e.persist()
}

// stopTimer folds the elapsed wall-clock time into TimeSpent, floored to
// whole seconds, and clears the running marker.
func (e *Engine) stopTimer(t *models.Task) {
	t.TimeSpent += int64(e.now().Sub(*t.TimerStartedAt).Seconds())
	t.TimerStartedAt = nil
}

// DeleteTask removes the task and its direct children, strips the removed
// ids from every project and from any surviving parent's subtask list.
// Grandchildren are not removed; their parent reference dangles and is
// treated as absent on lookup.
func (e *Engine) DeleteTask(id string) {
	i := e.find(id)
	if i < 0 {
		return
	}

	doomed := map[string]bool{id: true}
	for _, cid := range e.tasks[i].SubtaskIDs {
		doomed[cid] = true
	}

	kept := e.tasks[:0]
	for _, t := range e.tasks {
		if !doomed[t.ID] {
			kept = append(kept, t)
		}
	}
	e.tasks = kept

	for j := range e.tasks {
		e.tasks[j].SubtaskIDs = dropIDs(e.tasks[j].SubtaskIDs, doomed)
	}
	for j := range e.projects {
		e.projects[j].TaskIDs = dropIDs(e.projects[j].TaskIDs, doomed)
	}

	e.persist()
}

func dropIDs(ids []string, doomed map[string]bool) []string {
	kept := ids[:0]
	for _, id := range ids {
		if !doomed[id] {
			kept = append(kept, id)
		}
	}
	return kept
}

// Reorder applies a new ordering of the currently visible top-level tasks,
// as produced by drag-and-drop. The reordered tasks come first; every task
// outside the visible set keeps its relative position after them.
func (e *Engine) Reorder(orderedIDs []string) {
	seen := make(map[string]bool, len(orderedIDs))
	next := make([]models.Task, 0, len(e.tasks))
	for _, id := range orderedIDs {
		if i := e.find(id); i >= 0 && !seen[id] {
			next = append(next, e.tasks[i])
			seen[id] = true
		}
	}
	for _, t := range e.tasks {
		if !seen[t.ID] {
			next = append(next, t)
		}
	}
	e.tasks = next
	e.persist()
}
