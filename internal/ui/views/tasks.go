package views

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tick/internal/engine"
	"tick/internal/models"
	"tick/internal/ui/keys"
	"tick/internal/ui/styles"
)

// ShowTemplates signals the app to switch to the template list
type ShowTemplates struct{}

// tickMsg drives the running-timer display refresh. Polling is
// presentation-only; it never mutates the store.
type tickMsg time.Time

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// TaskListView shows the filtered task list for the active scope
type TaskListView struct {
	eng    *engine.Engine
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	cursor     int
	projectIdx int // -1 = no project selected
	tagIdx     int // -1 = no tag selected

	searching bool
	search    textinput.Model

	adding    bool
	addParent string // parent task id when adding a subtask
	input     textinput.Model

	confirmingDelete bool
	deleteTarget     models.Task
	confirmingReset  bool

	status string
}

// NewTaskListView creates the task list over the engine
func NewTaskListView(eng *engine.Engine, km keys.KeyMap) *TaskListView {
	s := styles.NewStyles()

	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	input := textinput.New()
	input.Placeholder = "Task title"
	input.CharLimit = 200

	return &TaskListView{
		eng:        eng,
		styles:     s,
		keys:       km,
		projectIdx: -1,
		tagIdx:     -1,
		search:     search,
		input:      input,
	}
}

func (v *TaskListView) Init() tea.Cmd {
	return tickEvery()
}

// visible derives the current filtered list and keeps the cursor in range
func (v *TaskListView) visible() []models.Task {
	tasks := v.eng.FilteredTasks()
	if v.cursor >= len(tasks) {
		v.cursor = max(0, len(tasks)-1)
	}
	return tasks
}

func (v *TaskListView) selected() (models.Task, bool) {
	tasks := v.visible()
	if len(tasks) == 0 {
		return models.Task{}, false
	}
	return tasks[v.cursor], true
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tickMsg:
		// Redraw so live timers advance on screen.
		return v, tickEvery()

	case tea.KeyMsg:
		if v.confirmingReset {
			return v.updateConfirmReset(msg)
		}
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.adding {
			return v.updateAdding(msg)
		}
		if v.searching {
			return v.updateSearching(msg)
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v *TaskListView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Down):
		if tasks := v.visible(); v.cursor < len(tasks)-1 {
			v.cursor++
		}

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(msg, v.keys.Add):
		v.adding = true
		v.addParent = ""
		v.input.Reset()
		v.input.Placeholder = "Task title"
		v.input.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.AddSub):
		if t, ok := v.selected(); ok {
			v.adding = true
			v.addParent = t.ID
			v.input.Reset()
			v.input.Placeholder = "Subtask of " + t.Title
			v.input.Focus()
			return v, textinput.Blink
		}

	case key.Matches(msg, v.keys.Toggle):
		if t, ok := v.selected(); ok {
			v.eng.ToggleTask(t.ID)
		}

	case key.Matches(msg, v.keys.Timer):
		if t, ok := v.selected(); ok {
			v.eng.ToggleTimer(t.ID)
			if t.Running() {
				v.status = "Timer stopped"
			} else {
				v.status = "Timer started"
			}
		}

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTarget = t
		}

	case key.Matches(msg, v.keys.MoveUp):
		v.move(-1)

	case key.Matches(msg, v.keys.MoveDown):
		v.move(1)

	case key.Matches(msg, v.keys.Search):
		v.searching = true
		v.search.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Inbox):
		v.setScope(engine.ScopeInbox)

	case key.Matches(msg, v.keys.Today):
		v.setScope(engine.ScopeToday)

	case key.Matches(msg, v.keys.Logbook):
		v.setScope(engine.ScopeLogbook)

	case key.Matches(msg, v.keys.Project):
		v.cycleProject()

	case key.Matches(msg, v.keys.Tag):
		v.cycleTag()

	case key.Matches(msg, v.keys.Templates):
		return v, func() tea.Msg { return ShowTemplates{} }

	case key.Matches(msg, v.keys.Export):
		v.exportBackup()

	case key.Matches(msg, v.keys.Import):
		v.importBackup()

	case key.Matches(msg, v.keys.Reset):
		v.confirmingReset = true
	}

	return v, nil
}

func (v *TaskListView) setScope(s engine.Scope) {
	v.eng.SetScope(s)
	v.projectIdx = -1
	v.tagIdx = -1
	v.cursor = 0
}

// cycleProject steps through the projects, then back to no selection
func (v *TaskListView) cycleProject() {
	projects := v.eng.Projects()
	if len(projects) == 0 {
		v.status = "No projects"
		return
	}
	v.projectIdx++
	if v.projectIdx >= len(projects) {
		v.projectIdx = -1
		v.eng.SetScope(engine.ScopeInbox)
	} else {
		v.eng.SelectProject(projects[v.projectIdx].ID)
		v.tagIdx = -1
	}
	v.cursor = 0
}

func (v *TaskListView) cycleTag() {
	tags := v.eng.Tags()
	if len(tags) == 0 {
		v.status = "No tags"
		return
	}
	v.tagIdx++
	if v.tagIdx >= len(tags) {
		v.tagIdx = -1
		v.eng.SetScope(engine.ScopeInbox)
	} else {
		v.eng.SelectTag(tags[v.tagIdx].ID)
		v.projectIdx = -1
	}
	v.cursor = 0
}

// move shifts the selected task within the visible list and hands the new
// ordering to the engine.
func (v *TaskListView) move(delta int) {
	tasks := v.visible()
	target := v.cursor + delta
	if len(tasks) < 2 || target < 0 || target >= len(tasks) {
		return
	}

	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	ids[v.cursor], ids[target] = ids[target], ids[v.cursor]

	v.eng.Reorder(ids)
	v.cursor = target
}

func (v *TaskListView) exportBackup() {
	data, err := v.eng.ExportJSON()
	if err != nil {
		v.status = fmt.Sprintf("export failed: %v", err)
		return
	}
	name := fmt.Sprintf("tick-backup-%s.json", time.Now().Format("2006-01-02"))
	if err := os.WriteFile(name, data, 0o644); err != nil {
		v.status = fmt.Sprintf("export failed: %v", err)
		return
	}
	v.status = "Exported " + name
}

// importBackup restores state from the most recent export in the working
// directory. The date in the file name sorts lexicographically.
func (v *TaskListView) importBackup() {
	matches, err := filepath.Glob("tick-backup-*.json")
	if err != nil || len(matches) == 0 {
		v.status = "No backup file found"
		return
	}
	sort.Strings(matches)
	name := matches[len(matches)-1]

	data, err := os.ReadFile(name)
	if err != nil {
		v.status = fmt.Sprintf("import failed: %v", err)
		return
	}
	if err := v.eng.ImportJSON(data); err != nil {
		v.status = fmt.Sprintf("import failed: %v", err)
		return
	}
	v.cursor = 0
	v.status = "Imported " + name
}

func (v *TaskListView) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Cancel):
		v.adding = false
		v.input.Blur()
		return v, nil

	case key.Matches(msg, v.keys.Confirm):
		title := strings.TrimSpace(v.input.Value())
		if title == "" {
			v.status = "Title cannot be empty"
			return v, nil
		}
		v.eng.AddTask(title, v.addParent, nil)
		v.adding = false
		v.input.Blur()
		if v.addParent == "" {
			tasks := v.visible()
			v.cursor = max(0, len(tasks)-1)
		}
		v.status = "Added task"
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *TaskListView) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Cancel):
		v.searching = false
		v.search.Reset()
		v.search.Blur()
		v.eng.SetQuery("")
		return v, nil

	case key.Matches(msg, v.keys.Confirm):
		v.searching = false
		v.search.Blur()
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.eng.SetQuery(v.search.Value())
	v.cursor = 0
	return v, cmd
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.eng.DeleteTask(v.deleteTarget.ID)
		v.confirmingDelete = false
		v.status = "Deleted task"
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *TaskListView) updateConfirmReset(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.eng.Reset()
		v.confirmingReset = false
		v.cursor = 0
		v.projectIdx = -1
		v.tagIdx = -1
		v.status = "All data reset"
	case "n", "N", "esc":
		v.confirmingReset = false
	}
	return v, nil
}

func (v *TaskListView) View() string {
	if !v.eng.Loaded() {
		return v.styles.TitleMuted.Render("Loading...")
	}

	if v.confirmingReset {
		return v.renderConfirm("Reset all data?", "This cannot be undone.")
	}
	if v.confirmingDelete {
		return v.renderConfirm(
			fmt.Sprintf("Delete %q?", v.deleteTarget.Title),
			fmt.Sprintf("%d subtasks will be deleted with it.", len(v.deleteTarget.SubtaskIDs)),
		)
	}

	var b strings.Builder
	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")

	tasks := v.visible()
	if len(tasks) == 0 {
		b.WriteString(v.styles.TitleMuted.Render("  Nothing here. Press 'a' to add a task."))
		b.WriteString("\n")
	}
	now := time.Now()
	for i, t := range tasks {
		b.WriteString(v.renderTask(t, i == v.cursor, now))
		for _, sid := range t.SubtaskIDs {
			if sub, ok := v.eng.Task(sid); ok {
				b.WriteString(v.renderSubtask(sub))
			}
		}
	}

	if v.adding {
		b.WriteString("\n")
		b.WriteString(v.styles.Input.Render(v.input.View()))
		b.WriteString("\n")
	}
	if v.searching || strings.TrimSpace(v.search.Value()) != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Input.Render(v.search.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Status.Render(v.status))
	b.WriteString("\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	view := v.eng.View()

	title := view.Scope.String()
	if view.ProjectID != "" {
		for _, p := range v.eng.Projects() {
			if p.ID == view.ProjectID {
				title = p.Name
			}
		}
	} else if view.TagID != "" {
		title = "#" + v.eng.TagName(view.TagID)
	}

	inbox, today, logbook := v.eng.Counts()
	counts := s.TitleMuted.Render(
		fmt.Sprintf("  inbox %d • today %d • logbook %d", inbox, today, logbook))

	tasks := v.eng.FilteredTasks()
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	progress := s.Progress.Render(
		fmt.Sprintf("  %.0f%%", engine.Progress(done, len(tasks))))

	return s.Title.Render(title) + counts + progress
}

func (v *TaskListView) renderTask(t models.Task, selected bool, now time.Time) string {
	s := v.styles

	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	dot := lipgloss.NewStyle().Foreground(styles.PriorityColor(t.Priority)).Render("●")

	line := fmt.Sprintf("%s %s %s", checkbox, dot, t.Title)

	var extras []string
	for _, id := range t.Tags {
		if name := v.eng.TagName(id); name != "" {
			extras = append(extras, s.Tag.Render("#"+name))
		}
	}
	if t.DueDate != nil {
		extras = append(extras, s.Due.Render(t.DueDate.Local().Format("Jan 2")))
	}
	if elapsed := t.Elapsed(now); elapsed > 0 || t.Running() {
		mark := ""
		if t.Running() {
			mark = "▶ "
		}
		extras = append(extras, s.Timer.Render(mark+fmtSeconds(elapsed)))
	}
	if len(extras) > 0 {
		line += "  " + strings.Join(extras, " ")
	}

	style := s.ListItem
	if t.Completed {
		style = s.ListDone
	}
	if selected {
		style = s.ListSelected
	}
	return style.Render(line) + "\n"
}

func (v *TaskListView) renderSubtask(t models.Task) string {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}
	return v.styles.Subtask.Render(fmt.Sprintf("%s %s", checkbox, t.Title)) + "\n"
}

func (v *TaskListView) renderConfirm(question, detail string) string {
	s := v.styles
	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		"  "+s.Danger.Render(question),
		"  "+s.TitleMuted.Render(detail),
		"",
		"  "+s.TitleMuted.Render("y: yes • n: no"),
	)
}

func (v *TaskListView) renderHelp() string {
	s := v.styles
	bindings := []key.Binding{
		v.keys.Add, v.keys.AddSub, v.keys.Toggle, v.keys.Timer, v.keys.Delete,
		v.keys.Inbox, v.keys.Today, v.keys.Logbook,
		v.keys.Project, v.keys.Tag, v.keys.Templates, v.keys.Quit,
	}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		parts[i] = s.HelpKey.Render(h.Key) + " " + h.Desc
	}
	return s.Help.Render(strings.Join(parts, " • "))
}

// fmtSeconds renders accumulated seconds as h:mm:ss or m:ss
func fmtSeconds(total int64) string {
	h := total / 3600
	m := (total % 3600) / 60
	sec := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
