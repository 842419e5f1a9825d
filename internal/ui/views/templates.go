package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tick/internal/engine"
	"tick/internal/models"
	"tick/internal/ui/keys"
	"tick/internal/ui/styles"
)

// BackToTasks signals the app to switch back to the task list
type BackToTasks struct{}

// template creation walks one input through these fields in order
var templateFields = []string{
	"template name",
	"task title",
	"description (optional)",
	"subtasks, comma separated (optional)",
}

type templateForm struct {
	name        string
	title       string
	description string
	subtasks    string
	index       int
}

func (f *templateForm) set(v string) {
	switch f.index {
	case 0:
		f.name = v
	case 1:
		f.title = v
	case 2:
		f.description = v
	case 3:
		f.subtasks = v
	}
}

// TemplateListView lists templates and instantiates them into tasks
type TemplateListView struct {
	eng    *engine.Engine
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	cursor int

	form  *templateForm
	input textinput.Model

	confirmingDelete bool
	deleteTarget     models.TaskTemplate

	status string
}

func NewTemplateListView(eng *engine.Engine, km keys.KeyMap) *TemplateListView {
	input := textinput.New()
	input.CharLimit = 200

	return &TemplateListView{
		eng:    eng,
		styles: styles.NewStyles(),
		keys:   km,
		input:  input,
	}
}

func (v *TemplateListView) Init() tea.Cmd {
	return nil
}

func (v *TemplateListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}
		if v.form != nil {
			return v.updateForm(msg)
		}
		return v.updateList(msg)
	}

	return v, nil
}

func (v *TemplateListView) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	templates := v.eng.Templates()
	if v.cursor >= len(templates) {
		v.cursor = max(0, len(templates)-1)
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Cancel), key.Matches(msg, v.keys.Templates):
		return v, func() tea.Msg { return BackToTasks{} }

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(templates)-1 {
			v.cursor++
		}

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(msg, v.keys.Add):
		v.form = &templateForm{}
		v.input.Reset()
		v.input.Placeholder = templateFields[0]
		v.input.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Confirm):
		if len(templates) > 0 {
			v.eng.UseTemplate(templates[v.cursor].ID)
			v.status = fmt.Sprintf("Created tasks from %q", templates[v.cursor].Name)
		}

	case key.Matches(msg, v.keys.Delete):
		if len(templates) > 0 {
			v.confirmingDelete = true
			v.deleteTarget = templates[v.cursor]
		}
	}

	return v, nil
}

func (v *TemplateListView) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Cancel):
		v.form = nil
		v.input.Blur()
		v.status = "Cancelled"
		return v, nil

	case key.Matches(msg, v.keys.Confirm):
		v.form.set(strings.TrimSpace(v.input.Value()))
		if v.form.index < len(templateFields)-1 {
			v.form.index++
			v.input.Reset()
			v.input.Placeholder = templateFields[v.form.index]
			return v, nil
		}
		return v.saveForm()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *TemplateListView) saveForm() (tea.Model, tea.Cmd) {
	f := v.form

	var subtasks []models.TemplateSubtask
	for _, part := range strings.Split(f.subtasks, ",") {
		if title := strings.TrimSpace(part); title != "" {
			subtasks = append(subtasks, models.TemplateSubtask{Title: title})
		}
	}

	v.eng.AddTemplate(models.TaskTemplate{
		Name:        f.name,
		Title:       f.title,
		Description: f.description,
		Subtasks:    subtasks,
	})

	v.form = nil
	v.input.Blur()
	v.status = "Template saved"
	return v, nil
}

func (v *TemplateListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.eng.DeleteTemplate(v.deleteTarget.ID)
		v.confirmingDelete = false
		v.status = "Deleted template"
	case "n", "N", "esc":
		v.confirmingDelete = false
	}
	return v, nil
}

func (v *TemplateListView) View() string {
	s := v.styles

	if v.confirmingDelete {
		return "\n  " + s.Danger.Render(fmt.Sprintf("Delete template %q?", v.deleteTarget.Name)) +
			"\n\n  " + s.TitleMuted.Render("y: yes • n: no")
	}

	var b strings.Builder
	b.WriteString(s.Title.Render("Templates"))
	b.WriteString("\n\n")

	templates := v.eng.Templates()
	if len(templates) == 0 && v.form == nil {
		b.WriteString(s.TitleMuted.Render("  No templates. Press 'a' to create one."))
		b.WriteString("\n")
	}
	for i, tpl := range templates {
		style := s.ListItem
		if i == v.cursor {
			style = s.ListSelected
		}
		line := fmt.Sprintf("%s · %s", tpl.Name, tpl.Title)
		if n := len(tpl.Subtasks); n > 0 {
			line += s.TitleMuted.Render(fmt.Sprintf(" (%d subtasks)", n))
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if v.form != nil {
		b.WriteString("\n")
		b.WriteString(s.TitleMuted.Render(
			fmt.Sprintf("  %s (%d/%d)", templateFields[v.form.index], v.form.index+1, len(templateFields))))
		b.WriteString("\n")
		b.WriteString(s.Input.Render(v.input.View()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.Status.Render(v.status))
	b.WriteString("\n")
	b.WriteString(s.Help.Render(
		fmt.Sprintf("%s use • %s new • %s delete • %s back • %s quit",
			s.HelpKey.Render("↵"), s.HelpKey.Render("a"),
			s.HelpKey.Render("d"), s.HelpKey.Render("esc"), s.HelpKey.Render("q"))))
	return b.String()
}
