package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"tick/internal/config"
	"tick/internal/engine"
	"tick/internal/ui/keys"
	"tick/internal/ui/styles"
	"tick/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewTemplates
)

type App struct {
	eng         *engine.Engine
	currentView View
	taskList    *views.TaskListView
	templates   *views.TemplateListView
	width       int
	height      int
}

// NewApp creates the root application model. The engine must already be
// hydrated; all engine access stays on the program loop goroutine.
func NewApp(eng *engine.Engine, cfg config.Config) *App {
	styles.Use(cfg.Theme)
	km := keys.FromConfig(cfg.Keys)

	if cfg.DefaultScope == "today" {
		eng.SetScope(engine.ScopeToday)
	} else if cfg.DefaultScope == "logbook" {
		eng.SetScope(engine.ScopeLogbook)
	}

	return &App{
		eng:       eng,
		taskList:  views.NewTaskListView(eng, km),
		templates: views.NewTemplateListView(eng, km),
	}
}

func (a *App) Init() tea.Cmd {
	return a.taskList.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.taskList.Update(msg)
		a.templates.Update(msg)
		return a, nil

	case views.ShowTemplates:
		a.currentView = ViewTemplates
		return a, a.templates.Init()

	case views.BackToTasks:
		a.currentView = ViewTasks
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewTemplates:
		_, cmd = a.templates.Update(msg)
	default:
		_, cmd = a.taskList.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	if a.currentView == ViewTemplates {
		return a.templates.View()
	}
	return a.taskList.View()
}
