// Package engine owns the canonical in-memory task state: the task, tag,
// project and template collections, the derived filtered views, and every
// mutation the application can perform. State is hydrated once from a
// storage adapter at startup and written back as a full snapshot after
// every collection change.
package engine

import (
	"time"

	"github.com/google/uuid"

	"tick/internal/models"
)

// Store is the persistence surface the engine depends on. Reads and writes
// are best-effort; none of them may fail the engine.
type Store interface {
	Load(key string) []byte
	Save(key string, data []byte)
	Purge(key string)
}

// Engine holds all application state. It assumes a single active writer;
// every mutation runs synchronously to completion.
type Engine struct {
	store Store

	now   func() time.Time
	newID func() string

	loaded    bool
	tasks     []models.Task
	tags      []models.Tag
	projects  []models.Project
	templates []models.TaskTemplate
	settings  models.Settings

	view ViewContext
}

// New creates an empty engine backed by store. Call Load before mutating;
// no write-back happens until the initial load has completed.
func New(store Store) *Engine {
	return &Engine{
		store:    store,
		now:      time.Now,
		newID:    uuid.NewString,
		tags:     defaultTags(),
		settings: models.DefaultSettings(),
	}
}

// Loaded reports whether initial hydration has completed
func (e *Engine) Loaded() bool { return e.loaded }

func (e *Engine) Tasks() []models.Task             { return e.tasks }
func (e *Engine) Tags() []models.Tag               { return e.tags }
func (e *Engine) Projects() []models.Project       { return e.projects }
func (e *Engine) Templates() []models.TaskTemplate { return e.templates }
func (e *Engine) Settings() models.Settings        { return e.settings }

// SetSettings replaces the user settings
func (e *Engine) SetSettings(s models.Settings) {
	e.settings = s
	e.persist()
}

// Task returns the task with the given id. Dangling references resolve to
// (zero, false) and are treated as absent.
func (e *Engine) Task(id string) (models.Task, bool) {
	if i := e.find(id); i >= 0 {
		return e.tasks[i], true
	}
	return models.Task{}, false
}

func (e *Engine) find(id string) int {
	for i := range e.tasks {
		if e.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) findProject(id string) int {
	for i := range e.projects {
		if e.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func defaultTags() []models.Tag {
	ids := []string{"tag-work", "tag-personal", "tag-urgent", "tag-idea"}
	names := []string{"Work", "Personal", "Urgent", "Idea"}
	tags := make([]models.Tag, len(ids))
	for i := range ids {
		tags[i] = models.Tag{ID: ids[i], Name: names[i], Color: autoColor(ids[i])}
	}
	return tags
}
