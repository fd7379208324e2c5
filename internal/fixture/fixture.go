// Package fixture loads the demo workspace the planner starts with. The
// data is YAML with times expressed as offsets from a reference instant.
package fixture

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/nhle/process-planner/internal/model"
)

//go:embed seed.yaml
var defaultSeed []byte

// Seed is a fully resolved workspace.
type Seed struct {
	Members       []model.Person
	Rooms         []model.Room
	Tasks         []model.Task
	Notifications []model.Notification
	Events        []model.CalendarEvent
	Messages      []model.Message
}

// Member returns the person with the given id.
func (s *Seed) Member(id int) (model.Person, bool) {
	for _, m := range s.Members {
		if m.ID == id {
			return m, true
		}
	}
	return model.Person{}, false
}

type seedFile struct {
	Members       []model.Person      `yaml:"members"`
	Rooms         []model.Room        `yaml:"rooms"`
	Tasks         []taskEntry         `yaml:"tasks"`
	Notifications []notificationEntry `yaml:"notifications"`
	Events        []eventEntry        `yaml:"events"`
	Messages      []messageEntry      `yaml:"messages"`
}

type taskEntry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Priority    string `yaml:"priority"`
	Category    string `yaml:"category"`
	Progress    int    `yaml:"progress"`
	DueIn       string `yaml:"due_in"`
	Assignees   []int  `yaml:"assignees"`
}

type notificationEntry struct {
	Type    string `yaml:"type"`
	Content string `yaml:"content"`
	Age     string `yaml:"age"`
	Read    bool   `yaml:"read"`
}

type eventEntry struct {
	Title       string `yaml:"title"`
	Kind        string `yaml:"kind"`
	StartsIn    string `yaml:"starts_in"`
	Duration    string `yaml:"duration"`
	Virtual     bool   `yaml:"virtual"`
	Room        *int   `yaml:"room"`
	Attendees   []int  `yaml:"attendees"`
	Description string `yaml:"description"`
}

type messageEntry struct {
	Author int    `yaml:"author"`
	Text   string `yaml:"text"`
	Age    string `yaml:"age"`
}

// Default resolves the embedded demo workspace against now.
func Default(now time.Time, newID func() string) (*Seed, error) {
	return Parse(defaultSeed, now, newID)
}

// Load reads a seed file from path, or the embedded one when path is empty.
func Load(path string, now time.Time, newID func() string) (*Seed, error) {
	if path == "" {
		return Default(now, newID)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", path, err)
	}
	seed, err := Parse(data, now, newID)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return seed, nil
}

// Parse decodes seed YAML and resolves offsets against now. newID assigns
// record IDs; nil means random UUIDs. Every record is validated.
func Parse(data []byte, now time.Time, newID func() string) (*Seed, error) {
	if newID == nil {
		newID = uuid.NewString
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}

	seed := &Seed{Members: f.Members, Rooms: f.Rooms}

	for i, e := range f.Tasks {
		due, err := ParseOffset(e.DueIn)
		if err != nil {
			return nil, fmt.Errorf("tasks[%d].due_in: %w", i, err)
		}
		task := model.Task{
			ID:          newID(),
			Title:       e.Title,
			Description: e.Description,
			Status:      model.Status(e.Status),
			Priority:    model.Priority(e.Priority),
			Category:    e.Category,
			Progress:    e.Progress,
			DueDate:     now.Add(due),
		}
		for _, id := range e.Assignees {
			p, ok := seed.Member(id)
			if !ok {
				return nil, fmt.Errorf("tasks[%d]: unknown assignee %d", i, id)
			}
			task.Assignees = append(task.Assignees, p)
		}
		task = model.NormalizeTask(task)
		if err := task.Validate(); err != nil {
			return nil, fmt.Errorf("tasks[%d]: %w", i, err)
		}
		seed.Tasks = append(seed.Tasks, task)
	}

	for i, e := range f.Notifications {
		age, err := ParseOffset(e.Age)
		if err != nil {
			return nil, fmt.Errorf("notifications[%d].age: %w", i, err)
		}
		n := model.Notification{
			ID:      newID(),
			Type:    model.NotificationType(e.Type),
			Content: e.Content,
			Time:    now.Add(-age),
			Read:    e.Read,
		}
		if err := n.Validate(); err != nil {
			return nil, fmt.Errorf("notifications[%d]: %w", i, err)
		}
		seed.Notifications = append(seed.Notifications, n)
	}

	for i, e := range f.Events {
		startsIn, err := ParseOffset(e.StartsIn)
		if err != nil {
			return nil, fmt.Errorf("events[%d].starts_in: %w", i, err)
		}
		dur, err := ParseOffset(e.Duration)
		if err != nil {
			return nil, fmt.Errorf("events[%d].duration: %w", i, err)
		}
		start := now.Add(startsIn)
		ev := model.NormalizeEvent(model.CalendarEvent{
			ID:          newID(),
			Title:       e.Title,
			Kind:        model.EventKind(e.Kind),
			Start:       start,
			End:         start.Add(dur),
			IsVirtual:   e.Virtual,
			Room:        e.Room,
			Attendees:   e.Attendees,
			Description: e.Description,
		})
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		seed.Events = append(seed.Events, ev)
	}

	for i, e := range f.Messages {
		age, err := ParseOffset(e.Age)
		if err != nil {
			return nil, fmt.Errorf("messages[%d].age: %w", i, err)
		}
		author, ok := seed.Member(e.Author)
		if !ok {
			return nil, fmt.Errorf("messages[%d]: unknown author %d", i, e.Author)
		}
		msg := model.Message{ID: newID(), Author: author, Text: e.Text, Sent: now.Add(-age)}
		if err := msg.Validate(); err != nil {
			return nil, fmt.Errorf("messages[%d]: %w", i, err)
		}
		seed.Messages = append(seed.Messages, msg)
	}

	return seed, nil
}

// ParseOffset parses a Go duration with an extra "d" unit for whole days,
// e.g. "90m", "-1d", "2d". An empty string is zero.
func ParseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil {
			return 0, fmt.Errorf("invalid offset %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return d, nil
}
