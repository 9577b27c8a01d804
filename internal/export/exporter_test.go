package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var exportNow = time.Date(2024, time.March, 13, 14, 15, 16, 0, time.UTC)

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	e := NewExporter(&config.MediaConfig{
		StorageRoot: t.TempDir(),
		BaseURL:     "http://cdn.example.test",
		URLPath:     "/media/exports",
	})
	e.now = func() time.Time { return exportNow }
	return e
}

func TestWriteCSV_EmptyInput(t *testing.T) {
	e := newTestExporter(t)

	url, err := e.WriteCSV("http://api.example.test", nil, "tenants")
	require.NoError(t, err)
	assert.Empty(t, url)

	// No file may be produced for an empty record set
	entries, err := os.ReadDir(e.storageRoot)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteCSV_WritesQuotedFile(t *testing.T) {
	e := newTestExporter(t)

	rows := []map[string]any{
		{
			"name":  "acme",
			"owner": map[string]any{"email": "a@acme.test", "phone": "123"},
		},
		{
			"name":  "globex",
			"owner": map[string]any{"email": "b@globex.test", "phone": "456"},
		},
	}

	url, err := e.WriteCSV("http://api.example.test", rows, "tenants")
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.test/media/exports/tenants_20240313141516.csv", url)

	data, err := os.ReadFile(filepath.Join(e.storageRoot, "tenants_20240313141516.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"name","owner_email","owner_phone"`, lines[0])
	assert.Equal(t, `"acme","a@acme.test","123"`, lines[1])
	assert.Equal(t, `"globex","b@globex.test","456"`, lines[2])
}

func TestWriteCSV_HeadersFromFirstRecordOnly(t *testing.T) {
	e := newTestExporter(t)

	// The second record's extra key is dropped silently: columns come
	// from the first record alone.
	rows := []map[string]any{
		{"name": "acme"},
		{"name": "globex", "extra": "ignored"},
	}

	url, err := e.WriteCSV("http://api.example.test", rows, "tenants")
	require.NoError(t, err)
	require.NotEmpty(t, url)

	data, err := os.ReadFile(filepath.Join(e.storageRoot, "tenants_20240313141516.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"name"`, lines[0])
	assert.Equal(t, `"globex"`, lines[2])
}

func TestWriteCSV_QuotesAreEscaped(t *testing.T) {
	e := newTestExporter(t)

	rows := []map[string]any{{"note": `say "hi"`}}
	_, err := e.WriteCSV("http://api.example.test", rows, "notes")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(e.storageRoot, "notes_20240313141516.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"say ""hi"""`)
}

func TestWriteExcel(t *testing.T) {
	e := newTestExporter(t)

	columns := []Column{
		{Field: "tenant_id", Label: "Tenant ID"},
		{Field: "active", Label: "Active"},
		{Field: "settings", Label: "Settings"},
		{Field: "missing", Label: "Missing"},
	}
	rows := []map[string]any{
		{
			"tenant_id": "t-1",
			"active":    true,
			"settings":  map[string]any{"plan": "gold"},
		},
		{
			"tenant_id": "t-2",
			"active":    false,
		},
	}

	url, err := e.WriteExcel(rows, columns, "tenants")
	require.NoError(t, err)
	assert.Equal(t, "http://cdn.example.test/media/exports/tenants_20240313141516.xlsx", url)

	f, err := excelize.OpenFile(filepath.Join(e.storageRoot, "tenants_20240313141516.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)

	header, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Tenant ID", header)

	// Booleans in the known field set render as literal TRUE/FALSE
	active1, err := f.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "TRUE", active1)
	active2, err := f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "FALSE", active2)

	// Structured values are serialized as JSON text
	settings, err := f.GetCellValue(sheet, "C2")
	require.NoError(t, err)
	assert.Equal(t, `{"plan":"gold"}`, settings)

	// Absent values render as empty cells
	missing, err := f.GetCellValue(sheet, "D3")
	require.NoError(t, err)
	assert.Empty(t, missing)
}
