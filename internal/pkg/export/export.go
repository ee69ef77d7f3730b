package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format is the requested download format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "excel"
)

// IsValid reports whether the format is one of csv/json/excel
func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatJSON || f == FormatExcel
}

// Row is a single uniform export row. Column order is carried
// separately since map iteration order is undefined.
type Row map[string]interface{}

// ToCSV renders rows as CSV text in the given column order.
// Zero rows produce an empty string with no header row; this matches
// the behavior downstream consumers already depend on.
func ToCSV(columns []string, rows []Row) string {
	if len(rows) == 0 {
		return ""
	}

	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(col))
	}
	b.WriteByte('\n')

	for _, row := range rows {
		for i, col := range columns {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(escapeCSV(FormatValue(row[col])))
		}
		b.WriteByte('\n')
	}

	return b.String()
}

// escapeCSV quotes a value when it contains a comma, quote or newline,
// doubling internal quotes.
func escapeCSV(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// FromCSV parses CSV text produced by ToCSV back into columns and rows.
// All values come back as strings.
func FromCSV(text string) ([]string, []Row, error) {
	if text == "" {
		return nil, nil, nil
	}

	reader := csv.NewReader(strings.NewReader(text))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	columns := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := Row{}
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

// ToJSON renders rows as pretty-printed JSON
func ToJSON(rows []Row) (string, error) {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatValue converts an export cell to its string form.
// Nil values become the empty string.
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case uint:
		return strconv.FormatUint(uint64(val), 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339)
	case *time.Time:
		if val == nil {
			return ""
		}
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Filename builds the download filename: "{type}_{ISO-date}.{ext}"
func Filename(downloadType string, format Format) string {
	return fmt.Sprintf("%s_%s.%s", downloadType, time.Now().Format("2006-01-02"), Extension(format))
}

// Extension returns the file extension for a format.
// The excel format keeps its historical .xls extension even though the
// body is JSON text, not a spreadsheet. Known inconsistency, preserved
// for client compatibility.
func Extension(format Format) string {
	switch format {
	case FormatCSV:
		return "csv"
	case FormatExcel:
		return "xls"
	default:
		return "json"
	}
}

// ContentType returns the MIME type for a format
func ContentType(format Format) string {
	switch format {
	case FormatCSV:
		return "text/csv"
	case FormatExcel:
		return "application/vnd.ms-excel"
	default:
		return "application/json"
	}
}

// Render produces the download body for the given format.
// csv renders CSV; json and excel both render JSON (see Extension).
func Render(columns []string, rows []Row, format Format) (string, error) {
	if format == FormatCSV {
		return ToCSV(columns, rows), nil
	}
	return ToJSON(rows)
}
