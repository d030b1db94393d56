package admin

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/gearcheck/internal/calculator"
	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/roster"
	"github.com/mmynk/gearcheck/internal/storage"
	"github.com/mmynk/gearcheck/internal/storage/localfile"
	"github.com/mmynk/gearcheck/internal/storage/sqlite"
)

const seedCSV = "שם,צוות,תא אחסון,Helmet,Vest\nDana,A,12,1,\nEli,B,3,ת,1\n"

func setupManager(t *testing.T) (*Manager, *storage.TableStore, *sqlite.SQLiteStore) {
	t.Helper()
	dir := t.TempDir()

	path := filepath.Join(dir, "equipment.csv")
	require.NoError(t, os.WriteFile(path, []byte(seedCSV), 0o644))
	local, err := localfile.New(path, "")
	require.NoError(t, err)
	store := storage.NewTableStore(nil, local, models.DefaultSchema(), nil)

	log, err := sqlite.New(filepath.Join(dir, "log.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = log.Close() })

	return NewManager(store, log), store, log
}

func TestManagerSummary(t *testing.T) {
	m, _, _ := setupManager(t)

	res, err := m.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "file", res.Source)
	assert.Equal(t, 2, res.People)
	assert.Equal(t, []string{"Helmet", "Vest"}, res.Items)
	assert.Equal(t, 100.0, res.ByItem[0].Coverage)
	assert.Equal(t, 50.0, res.ByItem[1].Coverage)
}

func TestManagerDiff(t *testing.T) {
	m, _, _ := setupManager(t)
	ctx := context.Background()

	res, err := m.Diff(ctx)
	require.NoError(t, err)
	assert.False(t, res.HasBackup, "nothing to compare before the first write")

	require.NoError(t, m.EnsureBackup(ctx))
	res, err = m.Diff(ctx)
	require.NoError(t, err)
	assert.True(t, res.HasBackup)
	assert.True(t, res.Diff.Empty(), "unmodified table has no changes: %+v", res.Diff)

	_, err = m.AddUser(ctx, "Noa", roster.Identity{Team: "A"})
	require.NoError(t, err)
	_, err = m.RemoveUser(ctx, "Eli")
	require.NoError(t, err)

	res, err = m.Diff(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Noa"}, res.Diff.Added)
	assert.Equal(t, []string{"Eli"}, res.Diff.Removed)
	assert.Empty(t, res.Diff.Changes)
	assert.Equal(t, 0, res.Diff.ByKind[calculator.Lost])
}

func TestManagerUsers(t *testing.T) {
	m, store, _ := setupManager(t)
	ctx := context.Background()

	label, err := m.AddUser(ctx, "Noa", roster.Identity{Team: "C", StorageCell: "7"})
	require.NoError(t, err)
	assert.Equal(t, "equipment.csv", label)

	_, err = m.AddUser(ctx, "Noa", roster.Identity{})
	assert.ErrorIs(t, err, roster.ErrDuplicateName)
	_, err = m.AddUser(ctx, " ", roster.Identity{})
	assert.ErrorIs(t, err, roster.ErrInvalidName)

	_, err = m.EditUser(ctx, "Noa", roster.Identity{Team: "D", StorageCell: "8"})
	require.NoError(t, err)
	_, err = m.EditUser(ctx, "Nobody", roster.Identity{})
	assert.ErrorIs(t, err, storage.ErrPersonNotFound)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Table.Rows, 3)
	p, ok := store.Schema().Person(loaded.Table, "Noa")
	require.True(t, ok)
	assert.Equal(t, "D", p.Team)
	assert.Equal(t, "8", p.StorageCell)

	_, err = m.RemoveUser(ctx, "Noa")
	require.NoError(t, err)
	_, err = m.RemoveUser(ctx, "Noa")
	assert.ErrorIs(t, err, storage.ErrPersonNotFound)
}

func TestManagerListVerifications(t *testing.T) {
	m, _, log := setupManager(t)
	ctx := context.Background()

	require.NoError(t, log.RecordVerification(ctx, &models.Verification{
		Person:     "Dana",
		VerifiedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Location:   "equipment.csv",
	}))

	got, err := m.ListVerifications(ctx, "Dana", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "equipment.csv", got[0].Location)

	none, err := NewManager(nil, nil).ListVerifications(ctx, "", 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
