package calculator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mmynk/gearcheck/internal/models"
)

func TestDiffTablesUnmodified(t *testing.T) {
	d := DiffTables(sampleTable(), sampleTable(), models.DefaultSchema())

	if !d.Empty() {
		t.Errorf("expected empty diff, got %+v", d)
	}
	if d.ByKind[Gained]+d.ByKind[Lost]+d.ByKind[Changed] != 0 {
		t.Errorf("expected zero counts, got %v", d.ByKind)
	}
}

func TestDiffTables(t *testing.T) {
	backup := sampleTable()
	current := models.NewTable(
		[]string{"שם", "צוות", "תא אחסון", "Helmet", "Vest", "Boots", "Radio", "הערות"},
		[][]string{
			{"Dana", "A", "12", "", "1", "", "1", "changed"},
			{"Noa", "A", "7", "1", "1", "1", "", ""},
			{"Yoav", "C", "", "1", "", "", "", ""},
		},
	)

	d := DiffTables(backup, current, models.DefaultSchema())

	if diff := cmp.Diff([]string{"Yoav"}, d.Added); diff != "" {
		t.Errorf("Added mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Eli"}, d.Removed); diff != "" {
		t.Errorf("Removed mismatch (-want +got):\n%s", diff)
	}

	// Radio is not in the backup, and notes are metadata.
	wantChanges := []Change{
		{Person: "Dana", Item: "Helmet", Old: models.Present, New: models.Absent, Kind: Lost},
		{Person: "Dana", Item: "Vest", Old: models.Donated, New: models.Present, Kind: Changed},
		{Person: "Noa", Item: "Helmet", Old: models.Absent, New: models.Present, Kind: Gained},
	}
	if diff := cmp.Diff(wantChanges, d.Changes); diff != "" {
		t.Errorf("Changes mismatch (-want +got):\n%s", diff)
	}

	wantKinds := map[ChangeKind]int{Gained: 1, Lost: 1, Changed: 1}
	if diff := cmp.Diff(wantKinds, d.ByKind); diff != "" {
		t.Errorf("ByKind mismatch (-want +got):\n%s", diff)
	}

	wantPeople := []PersonChanges{
		{Person: "Dana", Lost: 1, Changed: 1},
		{Person: "Noa", Gained: 1},
	}
	if diff := cmp.Diff(wantPeople, d.ByPerson); diff != "" {
		t.Errorf("ByPerson mismatch (-want +got):\n%s", diff)
	}
	if d.ByPerson[0].Total() != 2 {
		t.Errorf("Dana total = %d, want 2", d.ByPerson[0].Total())
	}
}
