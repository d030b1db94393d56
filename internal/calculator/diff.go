package calculator

import (
	"sort"

	"github.com/mmynk/gearcheck/internal/models"
)

// ChangeKind classifies one item change between backup and current table.
type ChangeKind string

const (
	// Gained means the item went from absent to held.
	Gained ChangeKind = "gained"
	// Lost means the item went from held to absent.
	Lost ChangeKind = "lost"
	// Changed means the item stayed held but switched between present and donated.
	Changed ChangeKind = "changed"
)

// Change is one (person, item) whose state differs from the backup.
type Change struct {
	Person string
	Item   string
	Old    models.ItemState
	New    models.ItemState
	Kind   ChangeKind
}

// PersonChanges counts one person's changes by kind.
type PersonChanges struct {
	Person  string
	Gained  int
	Lost    int
	Changed int
}

// Total is the number of changes for the person.
func (p PersonChanges) Total() int {
	return p.Gained + p.Lost + p.Changed
}

// TableDiff is the result of comparing the live table with its backup.
type TableDiff struct {
	// Added lists people in the current table but not in the backup, sorted.
	Added []string

	// Removed lists people in the backup but not in the current table, sorted.
	Removed []string

	// Changes lists item changes in current table order, then item order.
	Changes []Change

	// ByKind counts Changes per kind.
	ByKind map[ChangeKind]int

	// ByPerson counts Changes per person, sorted by name. People without
	// changes are left out.
	ByPerson []PersonChanges
}

// Empty reports whether the tables hold the same people and item states.
func (d TableDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changes) == 0
}

func classify(old, new models.ItemState) ChangeKind {
	switch {
	case old == models.Absent:
		return Gained
	case new == models.Absent:
		return Lost
	default:
		return Changed
	}
}

// DiffTables compares backup with current through a schema.
//
// Algorithm:
//   - People are matched by name; the first row with a name is used
//   - Added/Removed are the set differences of the name sets
//   - For people in both, every item column present in both tables is
//     compared by normalized state; differences become Changes
func DiffTables(backup, current *models.Table, schema models.Schema) TableDiff {
	d := TableDiff{ByKind: map[ChangeKind]int{Gained: 0, Lost: 0, Changed: 0}}

	before := make(map[string]models.Person)
	for _, p := range schema.People(backup) {
		if _, ok := before[p.Name]; !ok {
			before[p.Name] = p
		}
	}
	afterPeople := schema.People(current)
	after := make(map[string]bool, len(afterPeople))
	for _, p := range afterPeople {
		after[p.Name] = true
	}

	for name := range before {
		if !after[name] {
			d.Removed = append(d.Removed, name)
		}
	}
	sort.Strings(d.Removed)

	backupItems := make(map[string]bool)
	for _, item := range schema.Items(backup) {
		backupItems[item] = true
	}
	var common []string
	for _, item := range schema.Items(current) {
		if backupItems[item] {
			common = append(common, item)
		}
	}

	perPerson := make(map[string]*PersonChanges)
	seen := make(map[string]bool, len(afterPeople))
	for _, p := range afterPeople {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true

		old, ok := before[p.Name]
		if !ok {
			d.Added = append(d.Added, p.Name)
			continue
		}

		for _, item := range common {
			o, n := old.Items[item], p.Items[item]
			if o == n {
				continue
			}
			kind := classify(o, n)
			d.Changes = append(d.Changes, Change{Person: p.Name, Item: item, Old: o, New: n, Kind: kind})
			d.ByKind[kind]++

			pc, ok := perPerson[p.Name]
			if !ok {
				pc = &PersonChanges{Person: p.Name}
				perPerson[p.Name] = pc
			}
			switch kind {
			case Gained:
				pc.Gained++
			case Lost:
				pc.Lost++
			default:
				pc.Changed++
			}
		}
	}
	sort.Strings(d.Added)

	for _, pc := range perPerson {
		d.ByPerson = append(d.ByPerson, *pc)
	}
	sort.Slice(d.ByPerson, func(i, j int) bool { return d.ByPerson[i].Person < d.ByPerson[j].Person })
	return d
}
