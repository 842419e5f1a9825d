package engine

import "tick/internal/models"

// AddTemplate creates a template from the given blueprint, filling in
// defaults for missing fields, and returns its id.
func (e *Engine) AddTemplate(tpl models.TaskTemplate) string {
	tpl.ID = e.newID()
	if tpl.Name == "" {
		tpl.Name = "New Template"
	}
	if tpl.Title == "" {
		tpl.Title = "Task Title"
	}
	if tpl.Priority == "" {
		tpl.Priority = models.PriorityMedium
	}
	if tpl.Tags == nil {
		tpl.Tags = []string{}
	}
	if tpl.Subtasks == nil {
		tpl.Subtasks = []models.TemplateSubtask{}
	}
	for i := range tpl.Subtasks {
		if tpl.Subtasks[i].ID == "" {
			tpl.Subtasks[i].ID = e.newID()
		}
	}
	e.templates = append(e.templates, tpl)
	e.persist()
	return tpl.ID
}

// UpdateTemplate replaces the stored template with the same id
func (e *Engine) UpdateTemplate(tpl models.TaskTemplate) {
	for i := range e.templates {
		if e.templates[i].ID == tpl.ID {
			e.templates[i] = tpl
			e.persist()
			return
		}
	}
}

// DeleteTemplate removes a template
func (e *Engine) DeleteTemplate(id string) {
	kept := e.templates[:0]
	for _, t := range e.templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	e.templates = kept
	e.persist()
}

// UseTemplate expands a template into one parent task plus one sub-task per
// blueprint entry. An unknown id is a no-op. The template itself is never
// mutated.
func (e *Engine) UseTemplate(id string) {
	var tpl *models.TaskTemplate
	for i := range e.templates {
		if e.templates[i].ID == id {
			tpl = &e.templates[i]
			break
		}
	}
	if tpl == nil {
		return
	}

	parentID := e.AddTaskWith(tpl.Title, "", nil, &TaskSeed{
		Description: tpl.Description,
		Priority:    tpl.Priority,
		Tags:        tpl.Tags,
	})
	for _, sub := range tpl.Subtasks {
		e.AddTask(sub.Title, parentID, nil)
	}
}
