package export

import (
	"bytes"
	"strings"
	"testing"

	"demandlens/domain/dataset"
	"demandlens/internal/profiling"

	"github.com/xuri/excelize/v2"
)

func TestProfileWorkbook_RoundTripsThroughExcelize(t *testing.T) {
	table := dataset.Table{
		Columns: []string{"date", "demand"},
		Records: []dataset.Record{
			{"date": "2024-01-01", "demand": "100"},
			{"date": "2024-01-02", "demand": ""},
			{"date": "2024-01-03", "demand": "120"},
		},
	}
	ds := dataset.NewDataset("demand.csv")
	p := profiling.NewProfiler(profiling.PermissivePolicy()).Profile(table)

	buf, err := ProfileWorkbook(ds, p)
	if err != nil {
		t.Fatalf("ProfileWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("Workbook not readable by excelize: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Overview" || sheets[1] != "Columns" {
		t.Errorf("Expected [Overview Columns] sheets, got %v", sheets)
	}

	rows, err := f.GetRows("Columns")
	if err != nil {
		t.Fatalf("Failed to read Columns sheet: %v", err)
	}
	// Header plus one row per column in the table.
	if len(rows) != 3 {
		t.Errorf("Expected 3 rows on Columns sheet, got %d", len(rows))
	}
	if rows[0][0] != "Column" {
		t.Errorf("Expected header row, got %v", rows[0])
	}
}

func TestBriefingMarkdown_CoversQualityAndReadiness(t *testing.T) {
	table := dataset.Table{
		Columns: []string{"date", "demand"},
		Records: []dataset.Record{
			{"date": "2024-01-01", "demand": "100"},
			{"date": "2024-01-02", "demand": ""},
			{"date": "2024-01-03", "demand": "120"},
		},
	}
	ds := dataset.NewDataset("weekly_demand.csv")
	p := profiling.NewProfiler(profiling.PermissivePolicy()).Profile(table)

	md := BriefingMarkdown(ds, p)

	for _, want := range []string{
		"# Dataset Briefing: weekly_demand.csv",
		"## Data Quality",
		"## Forecasting Readiness",
		"`demand`: 1 missing",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Briefing missing %q:\n%s", want, md)
		}
	}
}

func TestBriefingMarkdown_MissingColumnsKeepTableOrder(t *testing.T) {
	table := dataset.Table{
		Columns: []string{"date", "demand", "price", "region"},
		Records: []dataset.Record{
			{"date": "2024-01-01", "demand": "", "price": "9.5", "region": ""},
			{"date": "2024-01-02", "demand": "110", "price": "", "region": "west"},
		},
	}
	ds := dataset.NewDataset("demand.csv")
	p := profiling.NewProfiler(profiling.PermissivePolicy()).Profile(table)

	first := BriefingMarkdown(ds, p)
	for i := 0; i < 10; i++ {
		if again := BriefingMarkdown(ds, p); again != first {
			t.Fatal("Briefing output changed between renders of the same profile")
		}
	}

	demandIdx := strings.Index(first, "`demand`")
	priceIdx := strings.Index(first, "`price`")
	regionIdx := strings.Index(first, "`region`")
	if demandIdx < 0 || priceIdx < 0 || regionIdx < 0 {
		t.Fatalf("Expected all missing columns listed:\n%s", first)
	}
	if !(demandIdx < priceIdx && priceIdx < regionIdx) {
		t.Errorf("Missing columns should follow table order, got demand=%d price=%d region=%d",
			demandIdx, priceIdx, regionIdx)
	}
}

func TestBriefingHTML_RendersMarkdown(t *testing.T) {
	table := dataset.Table{
		Columns: []string{"demand"},
		Records: []dataset.Record{{"demand": "5"}},
	}
	ds := dataset.NewDataset("tiny.csv")
	p := profiling.NewProfiler(profiling.PermissivePolicy()).Profile(table)

	out := string(BriefingHTML(ds, p))
	if !strings.Contains(out, "<h1") {
		t.Errorf("Expected rendered heading in HTML output:\n%s", out)
	}
}
