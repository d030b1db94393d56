package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/gearcheck/internal/models"
	"github.com/mmynk/gearcheck/internal/storage"
)

// Ensure Backend implements storage.Backend
var _ storage.Backend = (*Backend)(nil)

// DefaultBackupTitle names the backup worksheet.
const DefaultBackupTitle = "גיבוי_מקורי"

// MainSheetLabel is returned by Overwrite as the write location.
const MainSheetLabel = "main sheet"

// Backend is a storage.Backend over the first worksheet of a spreadsheet.
type Backend struct {
	client        *Client
	spreadsheetID string
	backupTitle   string
}

// NewBackend creates a Backend. backupTitle may be empty for the default.
func NewBackend(client *Client, spreadsheetID, backupTitle string) *Backend {
	if backupTitle == "" {
		backupTitle = DefaultBackupTitle
	}
	return &Backend{
		client:        client,
		spreadsheetID: spreadsheetID,
		backupTitle:   backupTitle,
	}
}

// Name implements storage.Backend.
func (b *Backend) Name() string {
	return "google-sheets"
}

func (b *Backend) firstSheet(ctx context.Context) (SheetProperties, []SheetProperties, error) {
	sheets, err := b.client.Worksheets(ctx, b.spreadsheetID)
	if err != nil {
		return SheetProperties{}, nil, fmt.Errorf("failed to list worksheets: %w", err)
	}
	if len(sheets) == 0 {
		return SheetProperties{}, nil, fmt.Errorf("spreadsheet %s has no worksheets", b.spreadsheetID)
	}
	first := sheets[0]
	for _, s := range sheets[1:] {
		if s.Index < first.Index {
			first = s
		}
	}
	return first, sheets, nil
}

func (b *Backend) loadSheet(ctx context.Context, title string) (*models.Table, error) {
	raw, err := b.client.GetValues(ctx, b.spreadsheetID, title)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", title, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("worksheet %q is empty", title)
	}

	values := make([][]string, len(raw))
	for i, row := range raw {
		values[i] = make([]string, len(row))
		for j, v := range row {
			values[i][j] = models.FormatCell(v)
		}
	}
	return models.NewTable(values[0], values[1:]), nil
}

// Load implements storage.Backend.
func (b *Backend) Load(ctx context.Context) (*models.Table, error) {
	first, _, err := b.firstSheet(ctx)
	if err != nil {
		return nil, err
	}
	return b.loadSheet(ctx, first.Title)
}

// Overwrite implements storage.Backend. The table is written from A1 over
// the first worksheet, then cells outside the new extent are cleared. A
// failed write leaves the previous contents in place.
func (b *Backend) Overwrite(ctx context.Context, t *models.Table) (string, error) {
	if err := b.EnsureBackup(ctx); err != nil {
		slog.Warn("Backup worksheet not created", "title", b.backupTitle, "error", err)
	}

	first, _, err := b.firstSheet(ctx)
	if err != nil {
		return "", err
	}
	current, err := b.client.GetValues(ctx, b.spreadsheetID, first.Title)
	if err != nil {
		return "", fmt.Errorf("failed to read worksheet %q: %w", first.Title, err)
	}

	values := toValues(t.Values())
	if err := b.client.UpdateValues(ctx, b.spreadsheetID, first.Title, values); err != nil {
		return "", fmt.Errorf("failed to write worksheet %q: %w", first.Title, err)
	}

	for _, rng := range staleRanges(first.Title, current, values) {
		if err := b.client.ClearValues(ctx, b.spreadsheetID, rng); err != nil {
			return "", fmt.Errorf("failed to clear %s: %w", rng, err)
		}
	}
	return MainSheetLabel, nil
}

// staleRanges lists the ranges holding old cells that the new values do not
// cover: rows below them and columns to their right.
func staleRanges(title string, prev, next [][]any) []string {
	oldRows, oldCols := extent(prev)
	newRows, newCols := extent(next)

	var ranges []string
	if oldRows > newRows && oldCols > 0 {
		ranges = append(ranges, boxRange(title, 1, newRows+1, oldCols, oldRows))
	}
	if oldCols > newCols && newRows > 0 {
		ranges = append(ranges, boxRange(title, newCols+1, 1, oldCols, min(oldRows, newRows)))
	}
	return ranges
}

func extent(values [][]any) (rows, cols int) {
	for _, row := range values {
		cols = max(cols, len(row))
	}
	return len(values), cols
}

// EnsureBackup implements storage.Backend. The backup worksheet is created
// with the size of the first worksheet and a copy of all of its values.
func (b *Backend) EnsureBackup(ctx context.Context) error {
	first, sheets, err := b.firstSheet(ctx)
	if err != nil {
		return err
	}
	for _, s := range sheets {
		if s.Title == b.backupTitle {
			return nil
		}
	}

	raw, err := b.client.GetValues(ctx, b.spreadsheetID, first.Title)
	if err != nil {
		return fmt.Errorf("failed to read worksheet %q: %w", first.Title, err)
	}
	if err := b.client.AddWorksheet(ctx, b.spreadsheetID, b.backupTitle, first.GridProperties); err != nil {
		return fmt.Errorf("failed to add backup worksheet: %w", err)
	}
	if len(raw) > 0 {
		if err := b.client.UpdateValues(ctx, b.spreadsheetID, b.backupTitle, raw); err != nil {
			return fmt.Errorf("failed to copy values to backup worksheet: %w", err)
		}
	}
	slog.Info("Backup worksheet created", "title", b.backupTitle, "rows", len(raw))
	return nil
}

// LoadBackup implements storage.Backend.
func (b *Backend) LoadBackup(ctx context.Context) (*models.Table, error) {
	_, sheets, err := b.firstSheet(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sheets {
		if s.Title == b.backupTitle {
			t, err := b.loadSheet(ctx, s.Title)
			if err != nil {
				return nil, err
			}
			return t, nil
		}
	}
	return nil, storage.ErrNoBackup
}

// toValues converts cell text into API values, keeping numbers numeric.
func toValues(rows [][]string) [][]any {
	out := make([][]any, len(rows))
	for i, row := range rows {
		out[i] = make([]any, len(row))
		for j, c := range row {
			v := models.CellValue(c)
			if v == nil {
				v = ""
			}
			out[i][j] = v
		}
	}
	return out
}
