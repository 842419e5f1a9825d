package engine

import (
	"encoding/json"
	"fmt"

	"tick/internal/models"
)

// Storage keys. The legacy keys predate the unified snapshot and are read
// once, as a fallback, when no snapshot exists.
const (
	snapshotKey        = "tick-backup"
	legacyTasksKey     = "tick-tasks-v4"
	legacyTemplatesKey = "tick-templates-v1"
)

// snapshot mirrors models.Backup for decoding. Slice fields stay nil when
// absent from the payload, which is how partial imports leave collections
// untouched; settings decode over the current value for the same reason.
type snapshot struct {
	Tasks     []models.Task         `json:"tasks"`
	Tags      []models.Tag          `json:"tags"`
	Projects  []models.Project      `json:"projects"`
	Templates []models.TaskTemplate `json:"templates"`
	Settings  json.RawMessage       `json:"settings"`
	Version   string                `json:"version"`
}

// Load hydrates the engine from the storage adapter. Unreadable or missing
// data falls through to the legacy keys and finally to empty defaults;
// hydration is never fatal. After Load returns, mutations persist.
func (e *Engine) Load() {
	defer func() { e.loaded = true }()

	if data := e.store.Load(snapshotKey); data != nil {
		var snap snapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			e.apply(snap)
			return
		}
	}

	// Legacy format: tasks and templates were stored under separate keys.
	if data := e.store.Load(legacyTasksKey); data != nil {
		var tasks []models.Task
		if err := json.Unmarshal(data, &tasks); err == nil {
			e.tasks = tasks
		}
	}
	if data := e.store.Load(legacyTemplatesKey); data != nil {
		var templates []models.TaskTemplate
		if err := json.Unmarshal(data, &templates); err == nil {
			e.templates = templates
		}
	}
}

func (e *Engine) apply(snap snapshot) {
	if snap.Tasks != nil {
		e.tasks = snap.Tasks
	}
	if snap.Tags != nil {
		e.tags = snap.Tags
	}
	if snap.Projects != nil {
		e.projects = snap.Projects
	}
	if snap.Templates != nil {
		e.templates = snap.Templates
	}
	if len(snap.Settings) > 0 && string(snap.Settings) != "null" {
		s := e.settings
		if err := json.Unmarshal(snap.Settings, &s); err == nil {
			e.settings = s
		}
	}
}

// Export produces the complete backup snapshot of the current state
func (e *Engine) Export() models.Backup {
	return models.Backup{
		Tasks:     append([]models.Task{}, e.tasks...),
		Tags:      append([]models.Tag{}, e.tags...),
		Projects:  append([]models.Project{}, e.projects...),
		Templates: append([]models.TaskTemplate{}, e.templates...),
		Settings:  e.settings,
		Version:   models.BackupVersion,
	}
}

// ExportJSON serializes the backup snapshot as indented JSON
func (e *Engine) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(e.Export(), "", "  ")
}

// ImportJSON replaces each collection present in the payload wholesale;
// absent fields are left untouched. A payload that fails to parse leaves
// the current state fully intact. Unknown extra fields are ignored.
func (e *Engine) ImportJSON(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	e.apply(snap)
	e.persist()
	return nil
}

// Reset clears all collections and settings back to defaults and purges
// persisted storage. The yes/no confirmation gate lives at the caller.
func (e *Engine) Reset() {
	e.tasks = nil
	e.projects = nil
	e.templates = nil
	e.tags = defaultTags()
	e.settings = models.DefaultSettings()
	e.view = ViewContext{}

	e.store.Purge(snapshotKey)
	e.store.Purge(legacyTasksKey)
	e.store.Purge(legacyTemplatesKey)
}

// persist writes the full snapshot through the adapter after a collection
// change. Writes are suppressed until initial hydration completes so an
// early mutation cannot clobber durable state with empty defaults.
func (e *Engine) persist() {
	if !e.loaded {
		return
	}
	data, err := json.MarshalIndent(e.Export(), "", "  ")
	if err != nil {
		return
	}
	e.store.Save(snapshotKey, data)
}
