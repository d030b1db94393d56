package api

import "time"

// Counts is a present/donated/absent tally.
type Counts struct {
	Present int `json:"present"`
	Donated int `json:"donated"`
	Absent  int `json:"absent"`
	Held    int `json:"held"`
}

// PersonSummary identifies a person in the picker.
type PersonSummary struct {
	Name        string `json:"name"`
	Team        string `json:"team,omitempty"`
	StorageCell string `json:"storage_cell,omitempty"`
}

// Item is one item row of the verification form. States are "absent",
// "present" or "donated".
type Item struct {
	Item    string `json:"item"`
	Stored  string `json:"stored"`
	Working string `json:"working"`
}

// SaveResult reports one save attempt.
type SaveResult struct {
	Success     bool      `json:"success"`
	Location    string    `json:"location,omitempty"`
	Error       string    `json:"error,omitempty"`
	Regressions []string  `json:"regressions"`
	Counts      Counts    `json:"counts"`
	VerifiedAt  time.Time `json:"verified_at"`
}

// Session is the client view of a verification session. State is one of
// "no_selection", "editing", "saved" or "save_failed".
type Session struct {
	ID          string      `json:"id"`
	State       string      `json:"state"`
	Person      string      `json:"person,omitempty"`
	Team        string      `json:"team,omitempty"`
	StorageCell string      `json:"storage_cell,omitempty"`
	Items       []Item      `json:"items"`
	Regressions []string    `json:"regressions"`
	Counts      Counts      `json:"counts"`
	LastSave    *SaveResult `json:"last_save,omitempty"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People   []PersonSummary `json:"people"`
	Items    []string        `json:"items"`
	Source   string          `json:"source"`
	Warnings []string        `json:"warnings,omitempty"`
}

type StartSessionRequest struct{}

type SelectPersonRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
}

type SetItemStateRequest struct {
	SessionID string `json:"session_id"`
	Item      string `json:"item"`
	State     string `json:"state"`
}

type SaveVerificationRequest struct {
	SessionID string `json:"session_id"`
	Notes     string `json:"notes,omitempty"`
}

type ResetSessionRequest struct {
	SessionID string `json:"session_id"`
}

// EndSessionRequest discards a session, e.g. when the form is closed.
type EndSessionRequest struct {
	SessionID string `json:"session_id"`
}

type EndSessionResponse struct{}

// SessionResponse is returned by every session operation.
type SessionResponse struct {
	Session Session `json:"session"`
}

type SaveVerificationResponse struct {
	Session Session    `json:"session"`
	Result  SaveResult `json:"result"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Tally is the counts and coverage of one item, person or team.
type Tally struct {
	Key      string  `json:"key"`
	Counts   Counts  `json:"counts"`
	Total    int     `json:"total"`
	Coverage float64 `json:"coverage"`
}

type GetSummaryRequest struct{}

type GetSummaryResponse struct {
	People   int      `json:"people"`
	Items    []string `json:"items"`
	Totals   Tally    `json:"totals"`
	ByItem   []Tally  `json:"by_item"`
	ByPerson []Tally  `json:"by_person"`
	ByTeam   []Tally  `json:"by_team"`
	Source   string   `json:"source"`
	Warnings []string `json:"warnings,omitempty"`
}

// Change is one item whose state differs from the backup. Kind is "gained",
// "lost" or "changed".
type Change struct {
	Person string `json:"person"`
	Item   string `json:"item"`
	Old    string `json:"old"`
	New    string `json:"new"`
	Kind   string `json:"kind"`
}

// PersonChanges counts one person's changes by kind.
type PersonChanges struct {
	Person  string `json:"person"`
	Gained  int    `json:"gained"`
	Lost    int    `json:"lost"`
	Changed int    `json:"changed"`
}

type GetBackupDiffRequest struct{}

// GetBackupDiffResponse is empty apart from HasBackup=false when no backup
// exists yet.
type GetBackupDiffResponse struct {
	HasBackup bool            `json:"has_backup"`
	Added     []string        `json:"added"`
	Removed   []string        `json:"removed"`
	Changes   []Change        `json:"changes"`
	ByKind    map[string]int  `json:"by_kind"`
	ByPerson  []PersonChanges `json:"by_person"`
}

type AddPersonRequest struct {
	Name        string `json:"name"`
	Team        string `json:"team,omitempty"`
	StorageCell string `json:"storage_cell,omitempty"`
}

type RemovePersonRequest struct {
	Name string `json:"name"`
}

type EditPersonRequest struct {
	Name        string `json:"name"`
	Team        string `json:"team,omitempty"`
	StorageCell string `json:"storage_cell,omitempty"`
}

// MutationResponse reports where a roster change was written.
type MutationResponse struct {
	Location string `json:"location"`
}

type ListVerificationsRequest struct {
	Person string `json:"person,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// Verification is one entry of the verification log.
type Verification struct {
	ID          string    `json:"id"`
	Person      string    `json:"person"`
	VerifiedAt  time.Time `json:"verified_at"`
	Location    string    `json:"location,omitempty"`
	Counts      Counts    `json:"counts"`
	Regressions []string  `json:"regressions"`
	Notes       string    `json:"notes,omitempty"`
	Error       string    `json:"error,omitempty"`
}

type ListVerificationsResponse struct {
	Verifications []Verification `json:"verifications"`
}
