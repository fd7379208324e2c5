package taskform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui"
)

// dateLayout is the due date format typed into the form.
const dateLayout = "2006-01-02"

// SubmittedMsg is dispatched when the form is completed. ID is empty for a
// new task.
type SubmittedMsg struct {
	ID    string
	Input planner.TaskInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	status      model.Status
	priority    model.Priority
	category    string
	dueDate     string
	progress    string
	assignees   []int
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form       *huh.Form
	fb         *formBindings
	editID     string
	members    []model.Person
	categories []string
	loc        *time.Location
	width      int
	height     int
}

// New creates a new task form model.
func New(members []model.Person, width, height int) Model {
	return Model{
		fb:      &formBindings{},
		members: members,
		loc:     time.Local,
		width:   width,
		height:  height,
	}
}

// SetCategories sets the options of the category selector.
func (m *Model) SetCategories(categories []string) {
	m.categories = categories
}

// SetLocation sets the zone due dates are interpreted in.
func (m *Model) SetLocation(loc *time.Location) {
	m.loc = loc
}

// Editing reports whether the form edits an existing task.
func (m Model) Editing() bool { return m.editID != "" }

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editID = ""
	*m.fb = formBindings{
		status:   model.StatusTodo,
		priority: model.PriorityMedium,
		category: planner.DefaultTaskCategory,
		progress: "0",
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(t model.Task) tea.Cmd {
	m.editID = t.ID
	*m.fb = formBindings{
		title:       t.Title,
		description: t.Description,
		status:      t.Status,
		priority:    t.Priority,
		category:    t.Category,
		dueDate:     t.DueDate.In(m.loc).Format(dateLayout),
		progress:    strconv.Itoa(t.Progress),
	}
	for _, a := range t.Assignees {
		m.fb.assignees = append(m.fb.assignees, a.ID)
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.form = nil
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.Editing() {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs to be done?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewSelect[model.Status]().
			Title("Status").
			Options(statusOptions()...).
			Value(&m.fb.status),
		huh.NewSelect[model.Priority]().
			Title("Priority").
			Options(
				huh.NewOption("High", model.PriorityHigh),
				huh.NewOption("Medium", model.PriorityMedium),
				huh.NewOption("Low", model.PriorityLow),
			).
			Value(&m.fb.priority),
		m.categoryField(),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (empty: in 7 days)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Progress").
			Placeholder("0-100").
			Value(&m.fb.progress).
			Validate(validateProgress),
	}
	if f := m.assigneeField(); f != nil {
		fields = append(fields, f)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(ui.FormWidth(m.width)).WithHeight(m.formHeight())
}

func (m *Model) categoryField() huh.Field {
	categories := m.categories
	if len(categories) == 0 {
		categories = model.DefaultCategories
	}
	opts := make([]huh.Option[string], 0, len(categories)+1)
	known := false
	for _, c := range categories {
		opts = append(opts, huh.NewOption(c, c))
		known = known || c == m.fb.category
	}
	if !known && m.fb.category != "" {
		opts = append(opts, huh.NewOption(m.fb.category, m.fb.category))
	}
	return huh.NewSelect[string]().
		Title("Category").
		Options(opts...).
		Value(&m.fb.category)
}

func (m *Model) assigneeField() huh.Field {
	if len(m.members) == 0 {
		return nil
	}
	opts := make([]huh.Option[int], len(m.members))
	for i, p := range m.members {
		opts[i] = huh.NewOption(fmt.Sprintf("%s (%s)", p.Name, p.Department), p.ID)
	}
	return huh.NewMultiSelect[int]().
		Title("Assignees").
		Options(opts...).
		Value(&m.fb.assignees)
}

func (m Model) handleSubmit() tea.Cmd {
	in := buildInput(*m.fb, m.members, m.loc)
	id := m.editID
	return func() tea.Msg { return SubmittedMsg{ID: id, Input: in} }
}

// buildInput converts the raw form values. The due date is the end of the
// chosen day in loc.
func buildInput(fb formBindings, members []model.Person, loc *time.Location) planner.TaskInput {
	in := planner.TaskInput{
		Title:       strings.TrimSpace(fb.title),
		Description: strings.TrimSpace(fb.description),
		Status:      fb.status,
		Priority:    fb.priority,
		Category:    fb.category,
	}

	if s := strings.TrimSpace(fb.dueDate); s != "" {
		if d, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
			in.DueDate = d.Add(24*time.Hour - time.Minute)
		}
	}
	if p, err := strconv.Atoi(strings.TrimSpace(fb.progress)); err == nil {
		in.Progress = p
	}

	for _, id := range fb.assignees {
		for _, p := range members {
			if p.ID == id {
				in.Assignees = append(in.Assignees, p)
				break
			}
		}
	}
	return in
}

func statusOptions() []huh.Option[model.Status] {
	opts := make([]huh.Option[model.Status], len(model.Statuses))
	for i, s := range model.Statuses {
		opts[i] = huh.NewOption(s.Label(), s)
	}
	return opts
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse(dateLayout, s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateProgress(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 0 || p > 100 {
		return fmt.Errorf("progress must be a number from 0 to 100")
	}
	return nil
}
