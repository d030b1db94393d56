package models

import "time"

// Person is the typed view of one table row.
type Person struct {
	// Name is the display name; it identifies the person.
	Name string

	// Team is the team the person belongs to. May be empty.
	Team string

	// StorageCell is the id of the person's storage locker. May be empty.
	StorageCell string

	// Notes is the free text left with the last verification.
	Notes string

	// Items maps every item column to its decoded state.
	Items map[string]ItemState
}

// Counts tallies the person's items by state.
func (p *Person) Counts() StateCounts {
	var c StateCounts
	for _, s := range p.Items {
		c.Add(s)
	}
	return c
}

// StateCounts is a present/donated/absent tally.
type StateCounts struct {
	Present int
	Donated int
	Absent  int
}

// Add counts one state.
func (c *StateCounts) Add(s ItemState) {
	switch s {
	case Present:
		c.Present++
	case Donated:
		c.Donated++
	default:
		c.Absent++
	}
}

// Held is Present + Donated.
func (c StateCounts) Held() int {
	return c.Present + c.Donated
}

// Verification records one saved verification of a person's items.
type Verification struct {
	// ID is the unique identifier of the record (UUID format).
	ID string

	// Person is the display name that was verified.
	Person string

	// VerifiedAt is when the save was attempted.
	VerifiedAt time.Time

	// Location names where the table was written, e.g. the sheet or file.
	// Empty when the save failed.
	Location string

	// Counts tallies the saved states.
	Counts StateCounts

	// Regressions lists items that were held before and are now absent.
	Regressions []string

	// Notes is the free text saved with the verification.
	Notes string

	// Error holds the save failure, if any.
	Error string
}

// Succeeded reports whether the verification was persisted.
func (v *Verification) Succeeded() bool {
	return v.Error == ""
}
