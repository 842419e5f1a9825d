package engine

import (
	"strings"
	"time"

	"tick/internal/models"
)

// Scope is the mutually exclusive view filter constraining completion
// status and due date.
type Scope int

const (
	ScopeInbox Scope = iota
	ScopeToday
	ScopeLogbook
)

func (s Scope) String() string {
	switch s {
	case ScopeToday:
		return "Today"
	case ScopeLogbook:
		return "Logbook"
	default:
		return "Inbox"
	}
}

// ViewContext is the immutable selection state a filtered view derives
// from. Empty TagID/ProjectID mean no selection.
type ViewContext struct {
	Scope     Scope
	Query     string
	TagID     string
	ProjectID string
}

// View returns the current selection state
func (e *Engine) View() ViewContext { return e.view }

// SetScope activates one of the inbox/today/logbook scopes and clears any
// tag or project selection.
func (e *Engine) SetScope(s Scope) {
	e.view.Scope = s
	e.view.TagID = ""
	e.view.ProjectID = ""
}

// SelectTag toggles the tag selection. Selecting a tag resets the scope and
// project selection.
func (e *Engine) SelectTag(id string) {
	if e.view.TagID == id {
		e.view.TagID = ""
		return
	}
	e.view = ViewContext{Scope: ScopeInbox, Query: e.view.Query, TagID: id}
}

// SelectProject selects a project, resetting scope and tag selection
func (e *Engine) SelectProject(id string) {
	e.view = ViewContext{Scope: ScopeInbox, Query: e.view.Query, ProjectID: id}
}

// SetQuery sets the search query string
func (e *Engine) SetQuery(q string) {
	e.view.Query = q
}

// FilteredTasks derives the task list for the current view
func (e *Engine) FilteredTasks() []models.Task {
	return FilterTasks(e.tasks, e.tags, e.projects, e.view, e.now())
}

// FilterTasks computes the visible top-level tasks for a view context.
// All filters compose with AND; store order is preserved. Pure: the same
// inputs always produce the same output.
func FilterTasks(tasks []models.Task, tags []models.Tag, projects []models.Project, ctx ViewContext, now time.Time) []models.Task {
	query := strings.ToLower(strings.TrimSpace(ctx.Query))

	tagNames := make(map[string]string, len(tags))
	for _, tg := range tags {
		tagNames[tg.ID] = strings.ToLower(tg.Name)
	}

	var member map[string]bool
	if ctx.ProjectID != "" {
		member = make(map[string]bool)
		for _, p := range projects {
			if p.ID == ctx.ProjectID {
				for _, id := range p.TaskIDs {
					member[id] = true
				}
			}
		}
	}

	var out []models.Task
	for _, t := range tasks {
		if t.ParentID != "" {
			continue
		}
		if member != nil && !member[t.ID] {
			continue
		}
		if query != "" && !matchesQuery(t, tagNames, query) {
			continue
		}
		if ctx.TagID != "" && !t.HasTag(ctx.TagID) {
			continue
		}
		switch ctx.Scope {
		case ScopeLogbook:
			if !t.Completed {
				continue
			}
		case ScopeToday:
			if t.Completed || t.DueDate == nil || !sameDay(*t.DueDate, now) {
				continue
			}
		default:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// matchesQuery reports whether the lowercased query is a substring of the
// title, description, or any assigned tag's name.
func matchesQuery(t models.Task, tagNames map[string]string, query string) bool {
	if strings.Contains(strings.ToLower(t.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), query) {
		return true
	}
	for _, id := range t.Tags {
		if name, ok := tagNames[id]; ok && strings.Contains(name, query) {
			return true
		}
	}
	return false
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// InboxCount counts top-level incomplete tasks
func InboxCount(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.ParentID == "" && !t.Completed {
			n++
		}
	}
	return n
}

// TodayCount counts top-level incomplete tasks due on the current day
func TodayCount(tasks []models.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.ParentID == "" && !t.Completed && t.DueDate != nil && sameDay(*t.DueDate, now) {
			n++
		}
	}
	return n
}

// LogbookCount counts top-level completed tasks
func LogbookCount(tasks []models.Task) int {
	n := 0
	for _, t := range tasks {
		if t.ParentID == "" && t.Completed {
			n++
		}
	}
	return n
}

// Progress returns the completion percentage for a task group, 0 when the
// group is empty.
func Progress(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// Counts returns the inbox/today/logbook counters in one pass-friendly call
func (e *Engine) Counts() (inbox, today, logbook int) {
	now := e.now()
	return InboxCount(e.tasks), TodayCount(e.tasks, now), LogbookCount(e.tasks)
}
