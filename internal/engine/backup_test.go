package engine

import (
	"encoding/json"
	"reflect"
	"testing"

	"tick/internal/models"
)

func TestExportImportRoundTrip(t *testing.T) {
	t.Parallel()
	e, _, clock := newTestEngine()

	tag := e.AddTag("deep")
	proj := e.AddProject("Thesis")
	e.SelectProject(proj)
	parent := e.AddTask("Write chapter", "", nil)
	e.AddTask("Outline", parent, nil)
	due := clock.Now()
	e.AddTask("Submit draft", "", &due)
	e.SelectTag(tag)
	e.AddTask("Read papers", "", nil)
	e.AddTemplate(models.TaskTemplate{
		Name:     "Review",
		Title:    "Review a paper",
		Subtasks: []models.TemplateSubtask{{Title: "Read"}, {Title: "Summarize"}},
	})
	s := e.Settings()
	s.UserName = "Ada"
	e.SetSettings(s)

	data, err := e.ExportJSON()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	fresh, _, _ := newTestEngine()
	if err := fresh.ImportJSON(data); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	got := fresh.Export()
	want := e.Export()
	if !reflect.DeepEqual(got.Tasks, want.Tasks) {
		t.Errorf("tasks differ:\n got %+v\nwant %+v", got.Tasks, want.Tasks)
	}
	if !reflect.DeepEqual(got.Tags, want.Tags) {
		t.Errorf("tags differ: %+v vs %+v", got.Tags, want.Tags)
	}
	if !reflect.DeepEqual(got.Projects, want.Projects) {
		t.Errorf("projects differ: %+v vs %+v", got.Projects, want.Projects)
	}
	if !reflect.DeepEqual(got.Templates, want.Templates) {
		t.Errorf("templates differ: %+v vs %+v", got.Templates, want.Templates)
	}
	if got.Settings != want.Settings {
		t.Errorf("settings differ: %+v vs %+v", got.Settings, want.Settings)
	}
	if got.Version != models.BackupVersion {
		t.Errorf("version = %q", got.Version)
	}
}

func TestImportPartialPayload(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	e.AddTemplate(models.TaskTemplate{Name: "Keep me"})
	tagsBefore := len(e.Tags())

	payload := `{"tasks": [{"id": "x1", "title": "Imported", "completed": false, "priority": "low", "tags": [], "createdAt": "2026-01-02T15:04:05Z", "subtaskIds": [], "timeSpent": 0}]}`
	if err := e.ImportJSON([]byte(payload)); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	if len(e.Tasks()) != 1 || e.Tasks()[0].ID != "x1" {
		t.Errorf("tasks should be replaced wholesale: %+v", e.Tasks())
	}
	if len(e.Templates()) != 1 || e.Templates()[0].Name != "Keep me" {
		t.Error("absent template field must leave templates untouched")
	}
	if len(e.Tags()) != tagsBefore {
		t.Error("absent tags field must leave tags untouched")
	}
}

func TestImportMalformedLeavesStateIntact(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	id := e.AddTask("Survivor", "", nil)

	if err := e.ImportJSON([]byte(`{"tasks": [trailing`)); err == nil {
		t.Fatal("expected a parse error")
	}

	if _, ok := e.Task(id); !ok {
		t.Error("failed import must not change state")
	}
	if len(e.Tasks()) != 1 {
		t.Errorf("tasks = %+v", e.Tasks())
	}
}

func TestImportIgnoresUnknownFields(t *testing.T) {
	t.Parallel()
	e, _, _ := newTestEngine()

	payload := `{"tasks": [], "futureField": {"nested": true}, "version": "9.9.9"}`
	if err := e.ImportJSON([]byte(payload)); err != nil {
		t.Fatalf("unknown fields must not fail the import: %v", err)
	}
	if len(e.Tasks()) != 0 {
		t.Errorf("tasks = %+v", e.Tasks())
	}
}

func TestNoPersistBeforeLoad(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	e := New(store)
	e.now = newFakeClock().Now
	e.newID = func() string { return "only" }

	e.AddTask("Too early", "", nil)
	if store.saves != 0 {
		t.Fatal("mutations before Load must not write back")
	}

	e.Load()
	e.ToggleTask("only")
	if store.saves == 0 {
		t.Fatal("mutations after Load must write back")
	}
}

func TestPersistWritesFullSnapshot(t *testing.T) {
	t.Parallel()
	e, store, _ := newTestEngine()

	e.AddTask("Persisted", "", nil)

	data := store.data[snapshotKey]
	if data == nil {
		t.Fatal("no snapshot written")
	}
	var backup models.Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	if len(backup.Tasks) != 1 || backup.Tasks[0].Title != "Persisted" {
		t.Errorf("snapshot tasks = %+v", backup.Tasks)
	}
	if backup.Version != models.BackupVersion {
		t.Errorf("snapshot version = %q", backup.Version)
	}
}

func TestLoadFromSnapshot(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.data[snapshotKey] = []byte(`{
		"tasks": [{"id": "t1", "title": "Hydrated", "completed": false, "priority": "high", "tags": [], "createdAt": "2026-01-02T15:04:05Z", "subtaskIds": [], "timeSpent": 30}],
		"settings": {"userName": "Grace"}
	}`)

	e := New(store)
	e.Load()

	if !e.Loaded() {
		t.Fatal("engine should be loaded")
	}
	task, ok := e.Task("t1")
	if !ok || task.Title != "Hydrated" || task.TimeSpent != 30 {
		t.Errorf("task = %+v", task)
	}
	// Settings merge over defaults: absent fields keep their default.
	s := e.Settings()
	if s.UserName != "Grace" {
		t.Errorf("userName = %q", s.UserName)
	}
	if s.DefaultPriority != models.PriorityMedium {
		t.Errorf("defaultPriority = %q, want default", s.DefaultPriority)
	}
}

func TestLoadLegacyFallback(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.data[legacyTasksKey] = []byte(`[{"id": "old1", "title": "Legacy", "completed": true, "priority": "low", "tags": [], "createdAt": "2025-06-01T00:00:00Z", "subtaskIds": [], "timeSpent": 0}]`)
	store.data[legacyTemplatesKey] = []byte(`[{"id": "tp1", "name": "Old", "title": "Old task", "priority": "medium", "tags": [], "subtasks": []}]`)

	e := New(store)
	e.Load()

	if _, ok := e.Task("old1"); !ok {
		t.Error("legacy tasks should hydrate when no snapshot exists")
	}
	if len(e.Templates()) != 1 || e.Templates()[0].ID != "tp1" {
		t.Errorf("legacy templates = %+v", e.Templates())
	}
}

func TestLoadUnparseableFallsToDefaults(t *testing.T) {
	t.Parallel()
	store := newFakeStore()
	store.data[snapshotKey] = []byte(`not json at all`)

	e := New(store)
	e.Load()

	if !e.Loaded() {
		t.Fatal("hydration failure must not be fatal")
	}
	if len(e.Tasks()) != 0 {
		t.Errorf("tasks = %+v", e.Tasks())
	}
	if len(e.Tags()) == 0 {
		t.Error("starter tags should be present")
	}
}

func TestReset(t *testing.T) {
	t.Parallel()
	e, store, _ := newTestEngine()

	e.AddTask("Gone", "", nil)
	e.AddProject("Gone too")
	e.AddTemplate(models.TaskTemplate{Name: "And this"})
	s := e.Settings()
	s.UserName = "Somebody"
	e.SetSettings(s)

	e.Reset()

	if len(e.Tasks()) != 0 || len(e.Projects()) != 0 || len(e.Templates()) != 0 {
		t.Error("reset should clear all collections")
	}
	if e.Settings() != models.DefaultSettings() {
		t.Errorf("settings = %+v", e.Settings())
	}
	if store.data[snapshotKey] != nil {
		t.Error("reset should purge persisted storage")
	}
	if store.purges == 0 {
		t.Error("reset should purge every storage key")
	}
}
