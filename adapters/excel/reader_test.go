package excel

import (
	"strings"
	"testing"
)

func TestReadTable_CSV(t *testing.T) {
	csvData := "date,demand,region\n2024-01-01, 100 ,north\n2024-01-02,,south\n"

	reader := NewDataReader()
	table, err := reader.ReadTable(strings.NewReader(csvData), "demand.csv")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}

	if len(table.Columns) != 3 {
		t.Fatalf("Expected 3 columns, got %d", len(table.Columns))
	}
	if table.Rows() != 2 {
		t.Fatalf("Expected 2 records, got %d", table.Rows())
	}
	if table.Records[0]["demand"] != "100" {
		t.Errorf("Cells should be trimmed, got %q", table.Records[0]["demand"])
	}
	if table.Records[1]["demand"] != "" {
		t.Errorf("Missing cell should read as empty string, got %q", table.Records[1]["demand"])
	}
}

func TestReadTable_CSVShortRowsArePadded(t *testing.T) {
	csvData := "date,demand\n2024-01-01\n"

	table, err := NewDataReader().ReadTable(strings.NewReader(csvData), "u.csv")
	if err != nil {
		t.Fatalf("ReadTable failed: %v", err)
	}
	if table.Records[0]["demand"] != "" {
		t.Errorf("Short row should be padded with empty cells, got %q", table.Records[0]["demand"])
	}
}

func TestReadTable_HeaderOnlyRejected(t *testing.T) {
	if _, err := NewDataReader().ReadTable(strings.NewReader("date,demand\n"), "u.csv"); err == nil {
		t.Error("A header-only file should be rejected")
	}
}

func TestReadTable_UnsupportedExtension(t *testing.T) {
	if _, err := NewDataReader().ReadTable(strings.NewReader("x"), "notes.pdf"); err == nil {
		t.Error("Expected an unsupported format error")
	}
}
