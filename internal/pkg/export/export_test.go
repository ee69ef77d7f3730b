package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCSVQuoting(t *testing.T) {
	columns := []string{"name", "note"}
	rows := []Row{
		{"name": "Wanjiku, Grace", "note": `said "hello"`},
		{"name": "plain", "note": "line1\nline2"},
	}

	got := ToCSV(columns, rows)

	assert.Contains(t, got, `"Wanjiku, Grace"`)
	assert.Contains(t, got, `"said ""hello"""`)
	assert.Contains(t, got, "\"line1\nline2\"")
	assert.True(t, strings.HasPrefix(got, "name,note\n"))
}

func TestToCSVEmptyInput(t *testing.T) {
	// Zero rows produce an empty string, with the header omitted too
	assert.Equal(t, "", ToCSV([]string{"a", "b"}, nil))
	assert.Equal(t, "", ToCSV([]string{"a", "b"}, []Row{}))
}

func TestToCSVNilValue(t *testing.T) {
	got := ToCSV([]string{"a", "b"}, []Row{{"a": "x", "b": nil}})
	assert.Equal(t, "a,b\nx,\n", got)
}

func TestCSVRoundTrip(t *testing.T) {
	columns := []string{"member_no", "amount", "status"}
	rows := []Row{
		{"member_no": "SACCO-0001", "amount": "1500.5", "status": "approved"},
		{"member_no": "SACCO-0002", "amount": "0", "status": "pending"},
	}

	gotColumns, gotRows, err := FromCSV(ToCSV(columns, rows))
	require.NoError(t, err)

	assert.Equal(t, columns, gotColumns)
	require.Len(t, gotRows, 2)
	for i, row := range rows {
		for _, col := range columns {
			assert.Equal(t, row[col], gotRows[i][col])
		}
	}
}

func TestFromCSVEmpty(t *testing.T) {
	columns, rows, err := FromCSV("")
	require.NoError(t, err)
	assert.Nil(t, columns)
	assert.Nil(t, rows)
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "", FormatValue((*time.Time)(nil)))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "42", FormatValue(42))
	assert.Equal(t, "1500.5", FormatValue(1500.5))
	assert.Equal(t, "2026-03-15T10:30:00Z", FormatValue(ts))
	assert.Equal(t, "2026-03-15T10:30:00Z", FormatValue(&ts))
}

func TestFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")

	assert.Equal(t, "loans_"+today+".csv", Filename("loans", FormatCSV))
	assert.Equal(t, "loans_"+today+".json", Filename("loans", FormatJSON))
	// The excel format keeps its .xls extension even though the body is JSON
	assert.Equal(t, "loans_"+today+".xls", Filename("loans", FormatExcel))
}

func TestExcelFormatQuirk(t *testing.T) {
	// "excel" downloads carry the spreadsheet MIME type but a JSON body
	assert.Equal(t, "application/vnd.ms-excel", ContentType(FormatExcel))

	body, err := Render([]string{"a"}, []Row{{"a": "1"}}, FormatExcel)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(strings.TrimSpace(body), "["))
}

func TestContentTypes(t *testing.T) {
	assert.Equal(t, "text/csv", ContentType(FormatCSV))
	assert.Equal(t, "application/json", ContentType(FormatJSON))
}

func TestFormatIsValid(t *testing.T) {
	assert.True(t, FormatCSV.IsValid())
	assert.True(t, FormatJSON.IsValid())
	assert.True(t, FormatExcel.IsValid())
	assert.False(t, Format("pdf").IsValid())
}
