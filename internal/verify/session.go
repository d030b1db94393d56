// Package verify holds the per-session state of one person's verification:
// which person is selected, the stored and working state of every item, and
// the outcome of the last save.
package verify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mmynk/gearcheck/internal/calculator"
	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/storage"
)

var (
	// ErrNoSelection is returned by operations that need a selected person.
	ErrNoSelection = errors.New("no person selected")

	// ErrUnknownItem is returned when an item is not a column of the table.
	ErrUnknownItem = errors.New("unknown item")
)

// State is the stage of a session.
type State int

const (
	NoSelection State = iota
	Editing
	Saved
	SaveFailed
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case Saved:
		return "saved"
	case SaveFailed:
		return "save_failed"
	default:
		return "no_selection"
	}
}

// Saver persists a table after a person's row was changed.
// storage.TableStore satisfies it.
type Saver interface {
	Save(ctx context.Context, t *models.Table, person string) (string, error)
}

// Outcome is the result of one save attempt.
type Outcome struct {
	Person      string
	Regressions []string
	Location    string
	Counts      models.StateCounts
	Notes       string
	VerifiedAt  time.Time
	Err         error
}

// Succeeded reports whether the table was written.
func (o *Outcome) Succeeded() bool {
	return o.Err == nil
}

// Record converts the outcome to a verification log entry.
func (o *Outcome) Record() *models.Verification {
	v := &models.Verification{
		Person:      o.Person,
		VerifiedAt:  o.VerifiedAt,
		Location:    o.Location,
		Counts:      o.Counts,
		Regressions: o.Regressions,
		Notes:       o.Notes,
	}
	if o.Err != nil {
		v.Error = o.Err.Error()
	}
	return v
}

// Session is one user's verification context. It is safe for concurrent use.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	schema   models.Schema
	person   models.Person
	items    []string
	stored   map[string]models.ItemState
	working  map[string]models.ItemState
	last     *Outcome
	lastUsed time.Time
	now      func() time.Time
}

// NewSession creates a session with nothing selected.
func NewSession(id string) *Session {
	return &Session{ID: id, now: time.Now}
}

// State returns the current stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Select starts editing name's row. Working states are reset to the stored
// ones, discarding unsaved edits. An unknown name leaves the session as is.
func (s *Session) Select(t *models.Table, schema models.Schema, name string) error {
	p, ok := schema.Person(t, name)
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrPersonNotFound, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.schema = schema
	s.person = *p
	s.items = schema.Items(t)
	s.stored = make(map[string]models.ItemState, len(s.items))
	s.working = make(map[string]models.ItemState, len(s.items))
	for _, item := range s.items {
		s.stored[item] = p.Items[item]
		s.working[item] = p.Items[item]
	}
	s.last = nil
	s.state = Editing
	return nil
}

// SetItem changes the working state of one item. Editing after a save
// returns the session to Editing.
func (s *Session) SetItem(item string, state models.ItemState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == NoSelection {
		return ErrNoSelection
	}
	if _, ok := s.working[item]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, item)
	}
	s.working[item] = state
	s.state = Editing
	return nil
}

// Regressions returns items that were held and are now marked absent.
func (s *Session) Regressions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return calculator.Regressions(s.items, s.stored, s.working)
}

// Save writes the working states and notes into the person's row of t and
// hands t to saver. The save is attempted even when there are regressions.
// The returned error is only set when there is nothing to save; persistence
// failures are reported in Outcome.Err and keep the working states.
//
// If the person's stored states in t no longer match the ones captured at
// Select, someone else saved this row in between and the save fails with
// storage.ErrConflict.
func (s *Session) Save(ctx context.Context, saver Saver, t *models.Table, notes string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == NoSelection {
		return nil, ErrNoSelection
	}

	out := &Outcome{
		Person:      s.person.Name,
		Regressions: calculator.Regressions(s.items, s.stored, s.working),
		Notes:       notes,
		VerifiedAt:  s.now(),
	}
	for _, item := range s.items {
		out.Counts.Add(s.working[item])
	}

	out.Location, out.Err = s.write(ctx, saver, t, notes)
	if out.Err != nil {
		s.state = SaveFailed
	} else {
		s.state = Saved
		for item, st := range s.working {
			s.stored[item] = st
		}
	}
	s.last = out
	return out, nil
}

func (s *Session) write(ctx context.Context, saver Saver, t *models.Table, notes string) (string, error) {
	row := t.FindRow(s.schema.NameColumn, s.person.Name)
	if row < 0 {
		return "", fmt.Errorf("%w: %s", storage.ErrPersonNotFound, s.person.Name)
	}

	current, _ := s.schema.Person(t, s.person.Name)
	for _, item := range s.items {
		if current.Items[item] != s.stored[item] {
			return "", fmt.Errorf("%w: %s was changed since it was selected", storage.ErrConflict, s.person.Name)
		}
	}

	for _, item := range s.items {
		if err := t.SetCell(row, item, s.schema.Codec.Encode(s.working[item])); err != nil {
			return "", err
		}
	}
	if notes != "" && s.schema.NotesColumn != "" {
		if err := t.SetCell(row, s.schema.NotesColumn, notes); err != nil {
			return "", err
		}
	}
	return saver.Save(ctx, t, s.person.Name)
}

// Reset clears the selection and all working state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = NoSelection
	s.person = models.Person{}
	s.items = nil
	s.stored = nil
	s.working = nil
	s.last = nil
}

// ItemView is one item row of the form.
type ItemView struct {
	Item    string
	Stored  models.ItemState
	Working models.ItemState
}

// View is a read-only snapshot of a session.
type View struct {
	ID          string
	State       State
	Person      string
	Team        string
	StorageCell string
	Items       []ItemView
	Regressions []string
	Counts      models.StateCounts
	Last        *Outcome
}

// View returns a snapshot of the session.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		ID:          s.ID,
		State:       s.state,
		Person:      s.person.Name,
		Team:        s.person.Team,
		StorageCell: s.person.StorageCell,
		Regressions: calculator.Regressions(s.items, s.stored, s.working),
		Last:        s.last,
	}
	for _, item := range s.items {
		v.Items = append(v.Items, ItemView{Item: item, Stored: s.stored[item], Working: s.working[item]})
		v.Counts.Add(s.working[item])
	}
	return v
}

func (s *Session) touch(at time.Time) {
	s.mu.Lock()
	s.lastUsed = at
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}
