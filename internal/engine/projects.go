package engine

import "tick/internal/models"

// AddProject creates a project and returns its id
func (e *Engine) AddProject(name string) string {
	id := e.newID()
	e.projects = append(e.projects, models.Project{
		ID:      id,
		Name:    name,
		Color:   autoColor(id),
		TaskIDs: []string{},
	})
	e.persist()
	return id
}

// DeleteProject removes a project. Its tasks survive and fall back to the
// inbox. Deleting the selected project clears the selection.
func (e *Engine) DeleteProject(id string) {
	kept := e.projects[:0]
	for _, p := range e.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	e.projects = kept

	if e.view.ProjectID == id {
		e.view.ProjectID = ""
	}
	e.persist()
}

// ProjectIncompleteCount counts the project's tasks that are not yet
// completed. Ids that no longer resolve to a task count as incomplete the
// way a missing lookup does not mark them done.
func (e *Engine) ProjectIncompleteCount(projectID string) int {
	i := e.findProject(projectID)
	if i < 0 {
		return 0
	}
	n := 0
	for _, id := range e.projects[i].TaskIDs {
		if t, ok := e.Task(id); !ok || !t.Completed {
			n++
		}
	}
	return n
}
