package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/NehaKoffeeKodes/fintech-core-backend-sub001/pkg/config"

	"github.com/xuri/excelize/v2"
)

// Column maps a record field to a spreadsheet header label
type Column struct {
	Field string
	Label string
}

// boolFields is the fixed set of fields rendered as literal TRUE/FALSE in
// spreadsheet exports.
var boolFields = map[string]bool{
	"active":     true,
	"is_deleted": true,
}

// Exporter writes spreadsheet and CSV files under a storage root and
// returns publicly resolvable URLs for them.
type Exporter struct {
	storageRoot string
	baseURL     string
	urlPath     string
	now         func() time.Time
}

// NewExporter creates an exporter from media configuration
func NewExporter(cfg *config.MediaConfig) *Exporter {
	return &Exporter{
		storageRoot: cfg.StorageRoot,
		baseURL:     cfg.BaseURL,
		urlPath:     cfg.URLPath,
		now:         time.Now,
	}
}

// WriteExcel writes one spreadsheet with a header row built from the
// column labels and one data row per record. Returns the download URL.
func (e *Exporter) WriteExcel(rows []map[string]any, columns []Column, prefix string) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create header style: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return "", fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col.Label); err != nil {
			return "", fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return "", fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, record := range rows {
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return "", fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, cellValue(record[col.Field], col.Field)); err != nil {
				return "", fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	name := e.fileName(prefix, "xlsx")
	path, err := e.ensurePath(name)
	if err != nil {
		return "", err
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to write spreadsheet %s: %w", path, err)
	}

	return e.baseURL + e.urlPath + "/" + name, nil
}

// WriteCSV flattens every record, derives headers from the first
// flattened record and writes all fields quoted. An empty record set
// produces no file and an empty URL. Columns are derived from the first
// record only; later records with extra keys lose them silently. The
// returned URL is absolute, built from the request host plus the
// configured media path.
func (e *Exporter) WriteCSV(host string, rows []map[string]any, prefix string) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}

	flat := make([]map[string]any, len(rows))
	for i, r := range rows {
		flat[i] = Flatten(r, "", DefaultDelimiter)
	}

	headers := make([]string, 0, len(flat[0]))
	for k := range flat[0] {
		headers = append(headers, k)
	}
	sort.Strings(headers)

	var b strings.Builder
	writeCSVRow(&b, headers)
	for _, record := range flat {
		fields := make([]string, len(headers))
		for i, h := range headers {
			fields[i] = textValue(record[h])
		}
		writeCSVRow(&b, fields)
	}

	name := e.fileName(prefix, "csv")
	path, err := e.ensurePath(name)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write csv %s: %w", path, err)
	}

	return host + e.urlPath + "/" + name, nil
}

func (e *Exporter) fileName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, e.now().Format("20060102150405"), ext)
}

func (e *Exporter) ensurePath(name string) (string, error) {
	if err := os.MkdirAll(e.storageRoot, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage root %s: %w", e.storageRoot, err)
	}
	return filepath.Join(e.storageRoot, name), nil
}

// writeCSVRow writes one row with every field quoted
func writeCSVRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString("\r\n")
}

// cellValue renders a record field for a spreadsheet cell
func cellValue(v any, field string) any {
	switch val := v.(type) {
	case nil:
		return ""
	case bool:
		if boolFields[field] {
			if val {
				return "TRUE"
			}
			return "FALSE"
		}
		return val
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return val
	}
}

// textValue coerces any flattened value to its CSV text form
func textValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	case map[string]any, []any:
		data, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
