package service

import (
	"github.com/mmynk/gearcheck/internal/admin"
	"github.com/mmynk/gearcheck/internal/api"
	"github.com/mmynk/gearcheck/internal/calculator"
	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/verify"
)

func toCounts(c models.StateCounts) api.Counts {
	return api.Counts{
		Present: c.Present,
		Donated: c.Donated,
		Absent:  c.Absent,
		Held:    c.Held(),
	}
}

func toSaveResult(o *verify.Outcome) api.SaveResult {
	r := api.SaveResult{
		Success:     o.Succeeded(),
		Location:    o.Location,
		Regressions: nonNil(o.Regressions),
		Counts:      toCounts(o.Counts),
		VerifiedAt:  o.VerifiedAt,
	}
	if o.Err != nil {
		r.Error = o.Err.Error()
	}
	return r
}

func toSession(v verify.View) api.Session {
	s := api.Session{
		ID:          v.ID,
		State:       v.State.String(),
		Person:      v.Person,
		Team:        v.Team,
		StorageCell: v.StorageCell,
		Items:       make([]api.Item, len(v.Items)),
		Regressions: nonNil(v.Regressions),
		Counts:      toCounts(v.Counts),
	}
	for i, item := range v.Items {
		s.Items[i] = api.Item{
			Item:    item.Item,
			Stored:  item.Stored.String(),
			Working: item.Working.String(),
		}
	}
	if v.Last != nil {
		r := toSaveResult(v.Last)
		s.LastSave = &r
	}
	return s
}

func toTally(t calculator.Tally) api.Tally {
	return api.Tally{
		Key:      t.Key,
		Counts:   toCounts(t.StateCounts),
		Total:    t.Total,
		Coverage: t.Coverage,
	}
}

func toTallies(ts []calculator.Tally) []api.Tally {
	out := make([]api.Tally, len(ts))
	for i, t := range ts {
		out[i] = toTally(t)
	}
	return out
}

func toDiff(d calculator.TableDiff) *api.GetBackupDiffResponse {
	resp := &api.GetBackupDiffResponse{
		HasBackup: true,
		Added:     nonNil(d.Added),
		Removed:   nonNil(d.Removed),
		Changes:   make([]api.Change, len(d.Changes)),
		ByKind:    make(map[string]int, len(d.ByKind)),
		ByPerson:  make([]api.PersonChanges, len(d.ByPerson)),
	}
	for i, c := range d.Changes {
		resp.Changes[i] = api.Change{
			Person: c.Person,
			Item:   c.Item,
			Old:    c.Old.String(),
			New:    c.New.String(),
			Kind:   string(c.Kind),
		}
	}
	for kind, n := range d.ByKind {
		resp.ByKind[string(kind)] = n
	}
	for i, p := range d.ByPerson {
		resp.ByPerson[i] = api.PersonChanges{
			Person:  p.Person,
			Gained:  p.Gained,
			Lost:    p.Lost,
			Changed: p.Changed,
		}
	}
	return resp
}

// SummaryResponse converts an admin summary to its wire form.
func SummaryResponse(sum *admin.SummaryResult) *api.GetSummaryResponse {
	return &api.GetSummaryResponse{
		People:   sum.People,
		Items:    nonNil(sum.Items),
		Totals:   toTally(sum.Totals),
		ByItem:   toTallies(sum.ByItem),
		ByPerson: toTallies(sum.ByPerson),
		ByTeam:   toTallies(sum.ByTeam),
		Source:   sum.Source,
		Warnings: sum.Warnings,
	}
}

// DiffResponse converts a backup diff to its wire form. Without a backup
// every list is empty and HasBackup is false.
func DiffResponse(res *admin.DiffResult) *api.GetBackupDiffResponse {
	if !res.HasBackup {
		return &api.GetBackupDiffResponse{
			Added:    []string{},
			Removed:  []string{},
			Changes:  []api.Change{},
			ByKind:   map[string]int{},
			ByPerson: []api.PersonChanges{},
		}
	}
	return toDiff(res.Diff)
}

// VerificationsResponse converts logged verifications to their wire form.
func VerificationsResponse(records []models.Verification) *api.ListVerificationsResponse {
	out := make([]api.Verification, len(records))
	for i, v := range records {
		out[i] = toVerification(v)
	}
	return &api.ListVerificationsResponse{Verifications: out}
}

func toVerification(v models.Verification) api.Verification {
	return api.Verification{
		ID:          v.ID,
		Person:      v.Person,
		VerifiedAt:  v.VerifiedAt,
		Location:    v.Location,
		Counts:      toCounts(v.Counts),
		Regressions: nonNil(v.Regressions),
		Notes:       v.Notes,
		Error:       v.Error,
	}
}

// nonNil keeps JSON arrays from encoding as null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
