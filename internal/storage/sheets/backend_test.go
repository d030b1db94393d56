package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/gearcheck/internal/storage"
)

const testSpreadsheetID = "sheet-123"

// fakeSheets is an in-memory stand-in for the parts of the Sheets API the
// backend uses.
type fakeSheets struct {
	mu     sync.Mutex
	order  []string
	values map[string][][]any
	calls  []string
	failOn string
}

func newFakeSheets(first string, values [][]any) *fakeSheets {
	return &fakeSheets{
		order:  []string{first},
		values: map[string][][]any{first: values},
	}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	call := r.Method + " " + r.URL.Path
	f.calls = append(f.calls, call)
	if f.failOn != "" && strings.Contains(call, f.failOn) {
		http.Error(w, `{"error":{"code":503,"message":"unavailable"}}`, http.StatusServiceUnavailable)
		return
	}

	prefix := "/spreadsheets/" + testSpreadsheetID
	path := strings.TrimPrefix(r.URL.Path, prefix)
	switch {
	case r.Method == http.MethodGet && path == "":
		type props struct {
			Properties SheetProperties `json:"properties"`
		}
		var resp struct {
			Sheets []props `json:"sheets"`
		}
		for i, title := range f.order {
			resp.Sheets = append(resp.Sheets, props{SheetProperties{
				SheetID:        int64(i),
				Title:          title,
				Index:          i,
				GridProperties: GridProperties{RowCount: 1000, ColumnCount: 26},
			}})
		}
		_ = json.NewEncoder(w).Encode(resp)

	case r.Method == http.MethodPost && path == ":batchUpdate":
		var body struct {
			Requests []struct {
				AddSheet struct {
					Properties SheetProperties `json:"properties"`
				} `json:"addSheet"`
			} `json:"requests"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, req := range body.Requests {
			title := req.AddSheet.Properties.Title
			f.order = append(f.order, title)
			f.values[title] = nil
		}
		_, _ = w.Write([]byte(`{}`))

	case strings.HasPrefix(path, "/values/"):
		rng := strings.TrimPrefix(path, "/values/")
		clear := strings.HasSuffix(rng, ":clear")
		rng = strings.TrimSuffix(rng, ":clear")
		quoted, box, _ := strings.Cut(rng, "!")
		title := strings.ReplaceAll(strings.Trim(quoted, "'"), "''", "'")
		if _, ok := f.values[title]; !ok {
			http.Error(w, `{"error":{"code":400,"message":"Unable to parse range"}}`, http.StatusBadRequest)
			return
		}

		switch {
		case clear && box == "":
			f.values[title] = nil
			_, _ = w.Write([]byte(`{}`))
		case clear:
			from, to, _ := strings.Cut(box, ":")
			c1, r1 := parseCell(from)
			c2, r2 := parseCell(to)
			clearBox(f.values[title], c1, r1, c2, r2)
			_, _ = w.Write([]byte(`{}`))
		case r.Method == http.MethodPut:
			var vr ValueRange
			_ = json.NewDecoder(r.Body).Decode(&vr)
			if r.URL.Query().Get("valueInputOption") != "RAW" || box != "A1" {
				http.Error(w, "expected RAW at A1", http.StatusBadRequest)
				return
			}
			f.values[title] = overlay(f.values[title], vr.Values)
			_, _ = w.Write([]byte(`{}`))
		default:
			_ = json.NewEncoder(w).Encode(ValueRange{Values: trimmed(f.values[title])})
		}

	default:
		http.NotFound(w, r)
	}
}

// sheet returns the values the API would report for a worksheet.
func (f *fakeSheets) sheet(title string) [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return trimmed(f.values[title])
}

// overlay writes src over dst starting at A1, like values.update.
func overlay(dst, src [][]any) [][]any {
	for i, row := range src {
		for len(dst) <= i {
			dst = append(dst, nil)
		}
		for j, v := range row {
			for len(dst[i]) <= j {
				dst[i] = append(dst[i], "")
			}
			dst[i][j] = v
		}
	}
	return dst
}

// trimmed drops trailing empty cells and rows, as the API does on read.
func trimmed(values [][]any) [][]any {
	var out [][]any
	for _, row := range values {
		n := len(row)
		for n > 0 && row[n-1] == "" {
			n--
		}
		out = append(out, append([]any(nil), row[:n]...))
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out
}

// clearBox blanks a 1-based inclusive box.
func clearBox(values [][]any, c1, r1, c2, r2 int) {
	for i := r1 - 1; i < r2 && i < len(values); i++ {
		for j := c1 - 1; j < c2 && j < len(values[i]); j++ {
			values[i][j] = ""
		}
	}
}

// parseCell splits an A1 cell reference into 1-based column and row.
func parseCell(ref string) (col, row int) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A'+1)
		i++
	}
	row, _ = strconv.Atoi(ref[i:])
	return col, row
}

func setupBackend(t *testing.T, fake *fakeSheets) *Backend {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return NewBackend(NewClient(server.Client(), server.URL), testSpreadsheetID, "")
}

func seedValues() [][]any {
	return [][]any{
		{"שם", "צוות", "Helmet", "Vest"},
		{"Dana", "03", 1.0, ""},
		{"Eli", 4.0, "ת", 1.0},
	}
}

func TestBackendLoad(t *testing.T) {
	b := setupBackend(t, newFakeSheets("Sheet1", seedValues()))

	tbl, err := b.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"שם", "צוות", "Helmet", "Vest"}, tbl.Header)
	assert.Equal(t, []string{"Dana", "03", "1", ""}, tbl.Rows[0])
	assert.Equal(t, []string{"Eli", "4", "ת", "1"}, tbl.Rows[1])
}

func TestBackendOverwriteCreatesBackupOnce(t *testing.T) {
	fake := newFakeSheets("Sheet1", seedValues())
	b := setupBackend(t, fake)
	ctx := context.Background()

	_, err := b.LoadBackup(ctx)
	assert.True(t, errors.Is(err, storage.ErrNoBackup), "expected ErrNoBackup, got %v", err)

	tbl, err := b.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, tbl.SetCell(0, "Helmet", ""))

	label, err := b.Overwrite(ctx, tbl)
	require.NoError(t, err)
	assert.Equal(t, MainSheetLabel, label)

	assert.Equal(t, trimmed(seedValues()), fake.sheet(DefaultBackupTitle))
	main := fake.sheet("Sheet1")
	assert.Equal(t, []any{"Dana", "03"}, main[1])
	assert.Equal(t, []any{"Eli", 4.0, "ת", 1.0}, main[2])

	require.NoError(t, tbl.SetCell(1, "Vest", ""))
	_, err = b.Overwrite(ctx, tbl)
	require.NoError(t, err)
	assert.Equal(t, trimmed(seedValues()), fake.sheet(DefaultBackupTitle), "backup must not be refreshed")

	backup, err := b.LoadBackup(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1", backup.Cell(0, "Helmet"))
}

func TestBackendOverwriteClearsOnlyStaleCells(t *testing.T) {
	fake := newFakeSheets("Sheet1", seedValues())
	b := setupBackend(t, fake)
	ctx := context.Background()

	tbl, err := b.Load(ctx)
	require.NoError(t, err)
	tbl.Rows = tbl.Rows[:1]

	_, err = b.Overwrite(ctx, tbl)
	require.NoError(t, err)

	assert.Equal(t, [][]any{
		{"שם", "צוות", "Helmet", "Vest"},
		{"Dana", "03", 1.0},
	}, fake.sheet("Sheet1"))

	put, cleared := -1, -1
	for i, c := range fake.calls {
		switch {
		case strings.HasSuffix(c, "/values/'Sheet1':clear"):
			t.Errorf("whole worksheet must not be cleared: %s", c)
		case strings.HasPrefix(c, "PUT ") && strings.Contains(c, "'Sheet1'!A1"):
			put = i
		case strings.Contains(c, "'Sheet1'!") && strings.HasSuffix(c, ":clear"):
			cleared = i
		}
	}
	require.NotEqual(t, -1, put)
	require.NotEqual(t, -1, cleared)
	assert.Less(t, put, cleared, "stale rows are cleared after the write")
}

func TestBackendOverwriteFailureKeepsSheet(t *testing.T) {
	fake := newFakeSheets("Sheet1", seedValues())
	b := setupBackend(t, fake)
	ctx := context.Background()

	tbl, err := b.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, tbl.SetCell(0, "Helmet", ""))

	fake.failOn = "PUT"
	_, err = b.Overwrite(ctx, tbl)
	require.Error(t, err)
	assert.Equal(t, trimmed(seedValues()), fake.sheet("Sheet1"), "a failed write must not empty the sheet")
}

func TestBackendKeepsCellsPastHeader(t *testing.T) {
	fake := newFakeSheets("Sheet1", [][]any{
		{"שם", "Helmet"},
		{"Dana", 1.0, "credit-note"},
	})
	b := setupBackend(t, fake)
	ctx := context.Background()

	tbl, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "credit-note", tbl.Cell(0, "Unnamed: 2"))

	require.NoError(t, tbl.SetCell(0, "Helmet", ""))
	_, err = b.Overwrite(ctx, tbl)
	require.NoError(t, err)

	main := fake.sheet("Sheet1")
	require.Len(t, main, 2)
	assert.Equal(t, []any{"Dana", "", "credit-note"}, main[1])
}

func TestStaleRanges(t *testing.T) {
	prev := [][]any{{"a", "b", "c"}, {"1", "2", "3"}, {"4"}}

	assert.Empty(t, staleRanges("S", prev, prev))
	assert.Equal(t, []string{"'S'!A3:C3"}, staleRanges("S", prev, prev[:2]))
	assert.Equal(t, []string{"'S'!C1:C2"}, staleRanges("S", prev[:2], [][]any{{"a", "b"}, {"1", "2"}}))
	assert.Equal(t, "AB", columnName(28))
}

func TestBackendEnsureBackupIdempotent(t *testing.T) {
	fake := newFakeSheets("Sheet1", seedValues())
	b := setupBackend(t, fake)
	ctx := context.Background()

	require.NoError(t, b.EnsureBackup(ctx))
	require.NoError(t, b.EnsureBackup(ctx))

	adds := 0
	for _, c := range fake.calls {
		if strings.HasSuffix(c, ":batchUpdate") {
			adds++
		}
	}
	assert.Equal(t, 1, adds)
	assert.Equal(t, []string{"Sheet1", DefaultBackupTitle}, fake.order)
}

func TestBackendOverwriteWithoutBackup(t *testing.T) {
	fake := newFakeSheets("Sheet1", seedValues())
	fake.failOn = ":batchUpdate"
	b := setupBackend(t, fake)
	ctx := context.Background()

	tbl, err := b.Load(ctx)
	require.NoError(t, err)

	// A failed backup is only a warning; the write still lands.
	_, err = b.Overwrite(ctx, tbl)
	require.NoError(t, err)

	_, err = b.LoadBackup(ctx)
	assert.ErrorIs(t, err, storage.ErrNoBackup)
}

func TestBackendAPIError(t *testing.T) {
	fake := newFakeSheets("Sheet1", seedValues())
	fake.failOn = "GET"
	b := setupBackend(t, fake)

	_, err := b.Load(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestLoadCredentials(t *testing.T) {
	data, err := LoadCredentials(`{"type":"service_account"}`, "/does/not/matter")
	require.NoError(t, err)
	assert.Contains(t, string(data), "service_account")

	data, err = LoadCredentials("", t.TempDir()+"/service_account.json")
	require.NoError(t, err)
	assert.Nil(t, data, "missing file means remote disabled")

	_, err = NewHTTPClient(context.Background(), []byte("not json"))
	assert.Error(t, err)
}
