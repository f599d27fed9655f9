package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestWriteProducesReadableWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Sheet{
		Name:    "Classes",
		Headers: []string{"id", "name", "code"},
		Rows: [][]any{
			{int64(1), "Algorithms", "CS101"},
			{int64(2), "Biology", "BIO"},
		},
	})
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue("Classes", "B1")
	if err != nil || header != "name" {
		t.Fatalf("expected header name, got %q (%v)", header, err)
	}
	code, err := f.GetCellValue("Classes", "C3")
	if err != nil || code != "BIO" {
		t.Fatalf("expected BIO, got %q (%v)", code, err)
	}
	if sheets := f.GetSheetList(); len(sheets) != 1 {
		t.Fatalf("expected one sheet, got %v", sheets)
	}
}
