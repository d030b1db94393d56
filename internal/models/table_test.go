package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return NewTable(
		[]string{"שם", "צוות", "Helmet", "Vest", ""},
		[][]string{
			{"Dana", "A", "1", ""},
			{"Eli", "B", "ת", "1", "x"},
			{"", "", "", "", ""},
		},
	)
}

func TestNewTable(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, []string{"שם", "צוות", "Helmet", "Vest", "Unnamed: 4"}, tbl.Header)
	require.Len(t, tbl.Rows, 2, "trailing blank row should be dropped")
	assert.Len(t, tbl.Rows[0], 5, "short rows are padded")
}

func TestNewTableKeepsCellsPastHeader(t *testing.T) {
	tbl := NewTable(
		[]string{"שם", "Helmet"},
		[][]string{
			{"Dana", "1", "credit-note"},
			{"Eli", "", "", "x"},
		},
	)

	assert.Equal(t, []string{"שם", "Helmet", "Unnamed: 2", "Unnamed: 3"}, tbl.Header)
	assert.Equal(t, []string{"Dana", "1", "credit-note", ""}, tbl.Rows[0])
	assert.Equal(t, []string{"Eli", "", "", "x"}, tbl.Rows[1])
	assert.Equal(t, "credit-note", tbl.Cell(0, "Unnamed: 2"))

	reloaded := NewTable(tbl.Values()[0], tbl.Values()[1:])
	assert.Equal(t, tbl.Fingerprint(), reloaded.Fingerprint(), "values round trip without loss")
}

func TestTableCellsAndColumns(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, 1, tbl.FindRow("שם", "Eli"))
	assert.Equal(t, -1, tbl.FindRow("שם", "Nobody"))
	assert.Equal(t, -1, tbl.FindRow("missing", "Eli"))
	assert.Equal(t, "ת", tbl.Cell(1, "Helmet"))
	assert.Equal(t, "", tbl.Cell(1, "missing"))

	require.NoError(t, tbl.SetCell(0, "הערות", "note"))
	assert.Equal(t, "note", tbl.Cell(0, "הערות"))
	assert.Equal(t, "", tbl.Cell(1, "הערות"))
	assert.Len(t, tbl.Rows[1], len(tbl.Header))

	assert.Error(t, tbl.SetCell(5, "Helmet", "1"))
}

func TestTableFirstMatchWins(t *testing.T) {
	tbl := NewTable([]string{"שם", "Helmet"}, [][]string{{"Dana", "1"}, {"Dana", ""}})
	p, ok := DefaultSchema().Person(tbl, "Dana")
	require.True(t, ok)
	assert.Equal(t, Present, p.Items["Helmet"])
}

func TestTableClone(t *testing.T) {
	tbl := sampleTable()
	c := tbl.Clone()
	c.Rows[0][2] = ""
	c.EnsureColumn("new")

	assert.Equal(t, "1", tbl.Rows[0][2])
	assert.False(t, tbl.HasColumn("new"))
}

func TestTableFingerprint(t *testing.T) {
	a := sampleTable()
	b := sampleTable()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	b.Rows[0][3] = "1"
	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())

	// Moving text between neighbouring cells must change the hash.
	x := NewTable([]string{"a", "b"}, [][]string{{"ab", ""}})
	y := NewTable([]string{"a", "b"}, [][]string{{"a", "b"}})
	assert.NotEqual(t, x.Fingerprint(), y.Fingerprint())
}

func TestSchemaItemsAndPeople(t *testing.T) {
	s := DefaultSchema()
	s.ExtraMetadata = append(s.ExtraMetadata, "Unnamed: 4")
	tbl := sampleTable()

	assert.Equal(t, []string{"Helmet", "Vest"}, s.Items(tbl))
	assert.Equal(t, []string{"Dana", "Eli"}, s.Names(tbl))

	people := s.People(tbl)
	require.Len(t, people, 2)
	assert.Equal(t, Donated, people[1].Items["Helmet"])
	assert.Equal(t, StateCounts{Present: 1, Donated: 1}, people[1].Counts())

	require.NoError(t, s.Validate(tbl))
	assert.Error(t, s.Validate(NewTable([]string{"Name"}, nil)))
}

func TestSchemaNotesColumnIsNotAnItem(t *testing.T) {
	s := DefaultSchema()
	tbl := sampleTable()
	tbl.EnsureColumn(s.NotesColumn)

	for _, item := range s.Items(tbl) {
		assert.NotEqual(t, s.NotesColumn, item)
	}
}
