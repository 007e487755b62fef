package statement

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	assert.Equal(t, KindCSV, DetectKind("statement.csv"))
	assert.Equal(t, KindCSV, DetectKind("STATEMENT.CSV"))
	assert.Equal(t, KindPDF, DetectKind("jan.pdf"))
	assert.Equal(t, KindExcel, DetectKind("book.xlsx"))
	assert.Equal(t, KindExcel, DetectKind("old.xls"))
	assert.Equal(t, KindUnknown, DetectKind("notes.txt"))
	assert.Equal(t, KindUnknown, DetectKind("noext"))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.pdf"), []byte("xx"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	byName := make(map[string]FileInfo)
	for _, f := range files {
		byName[f.Name] = f
	}
	assert.Equal(t, KindCSV, byName["a.csv"].Kind)
	assert.Equal(t, int64(2), byName["b.pdf"].Size)
	assert.Equal(t, filepath.Join(dir, "b.pdf"), byName["b.pdf"].Path)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestPreviewCSV(t *testing.T) {
	input := `date,description,amount
2025-01-05,SALARY CREDIT,90000.00
2025-01-07,GROCERY STORE,-1543.50
bad-date,SKIPPED,10
2025-01-09,RENT,-25000`

	rows, err := PreviewCSV(strings.NewReader(input), 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "SALARY CREDIT", rows[0].Description)
	assert.Equal(t, "90000", rows[0].Amount.String())
	assert.Equal(t, 2025, rows[0].Date.Year())
	assert.Equal(t, "-25000", rows[2].Amount.String())
}

func TestPreviewCSV_Limit(t *testing.T) {
	input := `date,description,amount
2025-01-01,A,1
2025-01-02,B,2
2025-01-03,C,3`

	rows, err := PreviewCSV(strings.NewReader(input), 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestPreviewCSV_HeaderOnly(t *testing.T) {
	rows, err := PreviewCSV(strings.NewReader("date,description,amount\n"), 5)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestPreviewCSV_RaggedRows(t *testing.T) {
	input := `date,description,amount
2025-01-01,only-two-fields
2025-01-02,OK,42.5`

	rows, err := PreviewCSV(strings.NewReader(input), 5)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "OK", rows[0].Description)
}
