package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui"
)

// Mode represents the current state of the settings page.
type Mode int

const (
	ModeView Mode = iota // Show current settings
	ModeForm             // Editing
)

// DateFormats offered by the form.
var DateFormats = []string{
	"Jan 02 15:04",
	"2006-01-02 15:04",
	"02/01/2006 15:04",
	"01/02/2006 3:04PM",
}

// Themes offered by the form.
var Themes = []string{"default", "dark", "light"}

// DoneMsg signals the settings page should close.
type DoneMsg struct{}

// SavedMsg signals the configuration was written.
type SavedMsg struct {
	Config *model.AppConfig
}

// savedInternalMsg is sent after the config file was written.
type savedInternalMsg struct {
	cfg *model.AppConfig
	err error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	theme             string
	dateFormat        string
	page              string
	mentions          bool
	deadlineReminders bool
	interval          string
	dueSoonHours      string
}

// Model is the settings page.
type Model struct {
	mode      Mode
	cfg       *model.AppConfig
	path      string
	form      *huh.Form
	fb        *formBindings
	statusMsg string
	keys      *keys.KeyMap
	width     int
	height    int
}

// New creates the settings page editing cfg, saved to path.
func New(cfg *model.AppConfig, path string, k *keys.KeyMap, width, height int) Model {
	return Model{
		mode:   ModeView,
		cfg:    cfg,
		path:   path,
		fb:     &formBindings{},
		keys:   k,
		width:  width,
		height: height,
	}
}

// Init returns the initial command for the settings page.
func (m Model) Init() tea.Cmd { return nil }

// Mode returns the current mode.
func (m Model) Mode() Mode { return m.mode }

// Config returns the configuration on display.
func (m Model) Config() *model.AppConfig { return m.cfg }

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedInternalMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("Error saving settings: %v", msg.err)
			return m, nil
		}
		m.cfg = msg.cfg
		m.statusMsg = "Settings saved to " + m.path
		return m, func() tea.Msg { return SavedMsg{Config: msg.cfg} }

	case tea.KeyMsg:
		if m.mode == ModeView {
			return m.handleViewKeys(msg)
		}
		if msg.String() == "esc" {
			m.mode = ModeView
			m.form = nil
			return m, nil
		}
	}

	if m.mode == ModeForm {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) handleViewKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.statusMsg = ""
		return m, func() tea.Msg { return DoneMsg{} }
	case key.Matches(msg, m.keys.Edit), key.Matches(msg, m.keys.Select):
		cmd := m.startEdit()
		return m, cmd
	}
	return m, nil
}

func (m *Model) startEdit() tea.Cmd {
	*m.fb = formBindings{
		theme:             m.cfg.Display.Theme,
		dateFormat:        m.cfg.Display.DateFormat,
		page:              m.cfg.Display.Page,
		mentions:          m.cfg.Notifications.Mentions,
		deadlineReminders: m.cfg.Notifications.DeadlineReminders,
		interval:          strconv.Itoa(m.cfg.Notifications.ReminderIntervalSec),
		dueSoonHours:      strconv.Itoa(m.cfg.Notifications.DueSoonHours),
	}
	m.form = m.buildForm()
	m.mode = ModeForm
	m.statusMsg = ""
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(withCurrent(Themes, m.fb.theme)...)...).
				Value(&m.fb.theme),
			huh.NewSelect[string]().
				Title("Date format").
				Options(huh.NewOptions(withCurrent(DateFormats, m.fb.dateFormat)...)...).
				Value(&m.fb.dateFormat),
			huh.NewSelect[string]().
				Title("Start page").
				Options(huh.NewOptions(model.Pages...)...).
				Value(&m.fb.page),
		).Title("Display"),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Mention notifications").
				Description("Notify me when someone @mentions me in chat").
				Value(&m.fb.mentions),
			huh.NewConfirm().
				Title("Deadline reminders").
				Description("Remind me of tasks that are due soon or overdue").
				Value(&m.fb.deadlineReminders),
			huh.NewInput().
				Title("Reminder interval (seconds)").
				Value(&m.fb.interval).
				Validate(validatePositive("Interval")),
			huh.NewInput().
				Title("Due soon window (hours)").
				Value(&m.fb.dueSoonHours).
				Validate(validatePositive("Window")),
		).Title("Notifications"),
	).WithWidth(ui.FormWidth(m.width))
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		m.mode = ModeView
		return m, m.save(apply(m.cfg, *m.fb))
	case huh.StateAborted:
		m.form = nil
		m.mode = ModeView
		return m, nil
	}
	return m, cmd
}

// apply copies cfg with the form values.
func apply(cfg *model.AppConfig, fb formBindings) *model.AppConfig {
	next := *cfg
	next.Categories = append([]string(nil), cfg.Categories...)
	next.Display.Theme = fb.theme
	next.Display.DateFormat = fb.dateFormat
	next.Display.Page = fb.page
	next.Notifications.Mentions = fb.mentions
	next.Notifications.DeadlineReminders = fb.deadlineReminders
	if n, err := strconv.Atoi(strings.TrimSpace(fb.interval)); err == nil {
		next.Notifications.ReminderIntervalSec = n
	}
	if n, err := strconv.Atoi(strings.TrimSpace(fb.dueSoonHours)); err == nil {
		next.Notifications.DueSoonHours = n
	}
	return &next
}

// save returns a command that validates and writes cfg.
func (m Model) save(cfg *model.AppConfig) tea.Cmd {
	path := m.path
	return func() tea.Msg {
		if err := cfg.Validate(); err != nil {
			return savedInternalMsg{err: err}
		}
		if err := model.SaveConfig(path, cfg); err != nil {
			return savedInternalMsg{err: err}
		}
		return savedInternalMsg{cfg: cfg}
	}
}

// --- View ---

// View renders the settings page based on the current mode.
func (m Model) View() string {
	if m.mode == ModeForm && m.form != nil {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Width(m.width).
			Render(m.form.View())
	}
	return m.viewSettings()
}

func (m Model) viewSettings() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(28)
	row := func(name, value string) {
		b.WriteString(label.Render(name) + value + "\n")
	}

	b.WriteString(theme.SectionStyle.Render("Display") + "\n")
	row("Theme", m.cfg.Display.Theme)
	row("Date format", m.cfg.Display.DateFormat)
	row("Start page", m.cfg.Display.Page)
	b.WriteString("\n")

	b.WriteString(theme.SectionStyle.Render("Notifications") + "\n")
	row("Mention notifications", onOff(m.cfg.Notifications.Mentions))
	row("Deadline reminders", onOff(m.cfg.Notifications.DeadlineReminders))
	row("Reminder interval", fmt.Sprintf("%ds", m.cfg.Notifications.ReminderIntervalSec))
	row("Due soon window", fmt.Sprintf("%dh", m.cfg.Notifications.DueSoonHours))
	b.WriteString("\n")

	b.WriteString(theme.SectionStyle.Render("Account") + "\n")
	row("Handle", "@"+m.cfg.User.Handle)
	row("Config file", m.path)
	b.WriteString("\n")

	if m.statusMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ColorYellow).Render(m.statusMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(theme.HelpStyle.Render("e edit | esc back"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(m.width).
		Render(b.String())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func onOff(v bool) string {
	if v {
		return lipgloss.NewStyle().Foreground(theme.ColorGreen).Render("on")
	}
	return lipgloss.NewStyle().Foreground(theme.ColorRed).Render("off")
}

// withCurrent makes sure the configured value is one of the options.
func withCurrent(options []string, current string) []string {
	for _, o := range options {
		if o == current {
			return options
		}
	}
	if current == "" {
		return options
	}
	return append(append([]string(nil), options...), current)
}

func validatePositive(fieldName string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number", fieldName)
		}
		return nil
	}
}
