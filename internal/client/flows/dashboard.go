package flows

import (
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/client/session"
	"github.com/google/uuid"
)

// Note is one entry of the in-memory draft list.
type Note struct {
	ID          string
	Title       string
	Description string
	CreatedAt   time.Time
}

// Dashboard keeps the notes typed during this run. Nothing is sent to the
// server or written to disk.
type Dashboard struct {
	store *session.Store
	now   func() time.Time

	mu          sync.Mutex
	title       string
	description string
	notes       []Note
}

func NewDashboard(store *session.Store) *Dashboard {
	return &Dashboard{store: store, now: time.Now}
}

func (d *Dashboard) SetTitle(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = s
}

func (d *Dashboard) SetDescription(s string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.description = s
}

// Inputs returns the pending title and description.
func (d *Dashboard) Inputs() (title, description string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title, d.description
}

// Commit adds a note from the pending inputs.
func (d *Dashboard) Commit() bool {
	title, description := d.Inputs()
	return d.AddNote(title, description)
}

// AddNote appends a note unless the title or the description is blank after
// trimming. Values are stored as given and both inputs are cleared.
func (d *Dashboard) AddNote(title, description string) bool {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(description) == "" {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.notes = append(d.notes, Note{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		CreatedAt:   d.now(),
	})
	d.title, d.description = "", ""
	return true
}

// Notes returns the notes in insertion order.
func (d *Dashboard) Notes() []Note {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Note, len(d.notes))
	copy(out, d.notes)
	return out
}

// DisplayName is the session username, or "User" when there is none.
func (d *Dashboard) DisplayName() string {
	if rec, ok := d.store.Get(); ok && rec.Username != "" {
		return rec.Username
	}
	return "User"
}

// Greeting picks the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "Good Morning"
	case h >= 12 && h < 17:
		return "Good Afternoon"
	case h >= 17 && h < 21:
		return "Good Evening"
	default:
		return "Good Night"
	}
}

// Welcome is the dashboard headline, e.g. "Good Morning, bob!".
func (d *Dashboard) Welcome() string {
	return Greeting(d.now()) + ", " + d.DisplayName() + "!"
}
