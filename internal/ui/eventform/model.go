package eventform

import (
	"fmt"
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

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// SubmittedMsg is dispatched when the form is completed.
type SubmittedMsg struct {
	Input planner.EventInput
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	kind        model.EventKind
	date        string
	start       string
	end         string
	virtual     bool
	room        int
	attendees   []int
}

// Model is the Bubble Tea model for the event form.
type Model struct {
	form    *huh.Form
	fb      *formBindings
	members []model.Person
	rooms   []model.Room
	now     func() time.Time
	width   int
	height  int
}

// New creates a new event form model.
func New(members []model.Person, now func() time.Time, width, height int) Model {
	return Model{
		fb:      &formBindings{},
		members: members,
		now:     now,
		width:   width,
		height:  height,
	}
}

// SetRooms sets the rooms offered for in-person events.
func (m *Model) SetRooms(rooms []model.Room) {
	m.rooms = rooms
}

// StartCreate initializes the form for a new event starting at the next
// full hour.
func (m *Model) StartCreate() tea.Cmd {
	start := m.now().Truncate(time.Hour).Add(time.Hour)
	*m.fb = formBindings{
		kind:    model.EventTeam,
		date:    start.Format(dateLayout),
		start:   start.Format(timeLayout),
		virtual: true,
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the event form.
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

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		in := buildInput(*m.fb, m.now().Location())
		return m, func() tea.Msg { return SubmittedMsg{Input: in} }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the event form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(titleStyle.Render("New Event") + "\n" + m.form.View())
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	kinds := make([]huh.Option[model.EventKind], len(model.EventKinds))
	for i, k := range model.EventKinds {
		kinds[i] = huh.NewOption(string(k), k)
	}

	details := huh.NewGroup(
		huh.NewInput().
			Title("Title").
			Placeholder("Meeting title").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Value(&m.fb.description),
		huh.NewSelect[model.EventKind]().
			Title("Kind").
			Options(kinds...).
			Value(&m.fb.kind),
		huh.NewInput().
			Title("Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.date).
			Validate(validateDate),
		huh.NewInput().
			Title("Starts").
			Placeholder("HH:MM").
			Value(&m.fb.start).
			Validate(validateTime(true)),
		huh.NewInput().
			Title("Ends").
			Placeholder("HH:MM (empty: one hour)").
			Value(&m.fb.end).
			Validate(validateTime(false)),
	)

	where := huh.NewGroup(
		huh.NewConfirm().
			Title("Virtual meeting?").
			Affirmative("Virtual").
			Negative("In person").
			Value(&m.fb.virtual),
	)

	groups := []*huh.Group{details, where}

	if len(m.rooms) > 0 {
		opts := make([]huh.Option[int], len(m.rooms))
		for i, r := range m.rooms {
			opts[i] = huh.NewOption(fmt.Sprintf("%s (%d seats)", r.Name, r.Capacity), r.ID)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[int]().
				Title("Room").
				Options(opts...).
				Value(&m.fb.room),
		).WithHideFunc(func() bool { return m.fb.virtual }))
	}

	if len(m.members) > 0 {
		opts := make([]huh.Option[int], len(m.members))
		for i, p := range m.members {
			opts[i] = huh.NewOption(p.Name, p.ID)
		}
		groups = append(groups, huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Attendees").
				Options(opts...).
				Value(&m.fb.attendees),
		))
	}

	return huh.NewForm(groups...).
		WithWidth(ui.FormWidth(m.width))
}

// buildInput converts the raw form values. Validation already ran, so parse
// failures only leave fields zero for the calendar to reject.
func buildInput(fb formBindings, loc *time.Location) planner.EventInput {
	in := planner.EventInput{
		Title:       strings.TrimSpace(fb.title),
		Description: strings.TrimSpace(fb.description),
		Kind:        fb.kind,
		Virtual:     fb.virtual,
		Attendees:   append([]int(nil), fb.attendees...),
	}

	date := strings.TrimSpace(fb.date)
	if start, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+strings.TrimSpace(fb.start), loc); err == nil {
		in.Start = start
	}
	if end := strings.TrimSpace(fb.end); end != "" {
		if t, err := time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+end, loc); err == nil {
			in.End = t
		}
	}
	if !fb.virtual && fb.room != 0 {
		room := fb.room
		in.Room = &room
	}
	return in
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateDate(s string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

func validateTime(required bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" && !required {
			return nil
		}
		if _, err := time.Parse(timeLayout, s); err != nil {
			return fmt.Errorf("invalid time, use HH:MM")
		}
		return nil
	}
}
