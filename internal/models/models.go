package models

import "time"

// Priority is the task importance level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// BackupVersion is the schema version written into every snapshot.
// It is carried through import/export but not yet used for migrations.
const BackupVersion = "1.0.0"

// Task represents a single task. Sub-tasks reference their parent through
// ParentID and are listed in the parent's SubtaskIDs; both fields are kept
// consistent by the engine.
type Task struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Completed      bool       `json:"completed"`
	Priority       Priority   `json:"priority"`
	Tags           []string   `json:"tags"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	ParentID       string     `json:"parentId,omitempty"`
	SubtaskIDs     []string   `json:"subtaskIds"`
	TimeSpent      int64      `json:"timeSpent"` // accumulated seconds
	TimerStartedAt *time.Time `json:"timerStartedAt,omitempty"`
}

// Running reports whether the task's timer is currently running.
func (t Task) Running() bool {
	return t.TimerStartedAt != nil
}

// HasTag reports whether the tag id is assigned to the task.
func (t Task) HasTag(tagID string) bool {
	for _, id := range t.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// Elapsed returns the total tracked seconds including the live delta of a
// running timer. Display-only; it never mutates TimeSpent.
func (t Task) Elapsed(now time.Time) int64 {
	total := t.TimeSpent
	if t.TimerStartedAt != nil {
		total += int64(now.Sub(*t.TimerStartedAt).Seconds())
	}
	return total
}

// Tag represents a tag that can be applied to tasks
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Project groups top-level tasks. Membership is tracked only here, not on
// the task itself.
type Project struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	TaskIDs []string `json:"taskIds"`
}

// TemplateSubtask is a sub-task blueprint inside a template
type TemplateSubtask struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// TaskTemplate is a reusable blueprint that instantiates one parent task
// plus its sub-tasks. Using a template never mutates the template.
type TaskTemplate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Priority    Priority          `json:"priority"`
	Tags        []string          `json:"tags"`
	Subtasks    []TemplateSubtask `json:"subtasks"`
}

// Settings holds user preferences persisted with the snapshot
type Settings struct {
	UserName        string   `json:"userName"`
	DefaultPriority Priority `json:"defaultPriority"`
	EnableSounds    bool     `json:"enableSounds"`
	AutoArchive     bool     `json:"autoArchive"`
	Language        string   `json:"language"`
}

// DefaultSettings returns the settings used before any user data exists
func DefaultSettings() Settings {
	return Settings{
		UserName:        "User",
		DefaultPriority: PriorityMedium,
		EnableSounds:    true,
		AutoArchive:     false,
		Language:        "en",
	}
}

// Backup is the complete serialized state at one instant, the unit of
// persistence and import/export.
type Backup struct {
	Tasks     []Task         `json:"tasks"`
	Tags      []Tag          `json:"tags"`
	Projects  []Project      `json:"projects"`
	Templates []TaskTemplate `json:"templates"`
	Settings  Settings       `json:"settings"`
	Version   string         `json:"version"`
}
