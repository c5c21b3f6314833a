package profiling

import (
	"math"
	"testing"

	"demandlens/domain/dataset"
	"demandlens/domain/profile"
)

func TestDescribe_ConstantColumn(t *testing.T) {
	table := tableFrom(
		[]string{"qty"},
		dataset.Record{"qty": "7"},
		dataset.Record{"qty": "7"},
		dataset.Record{"qty": "7"},
	)
	cls := Classify(table)

	summary := Describe(table, cls)
	if len(summary) != 1 {
		t.Fatalf("Expected one summary entry, got %d", len(summary))
	}

	col := summary[0]
	if !col.HasStats {
		t.Fatal("Expected statistics for a populated numeric column")
	}
	if col.Count != 3 {
		t.Errorf("Expected count 3, got %d", col.Count)
	}
	if col.Mean != 7 || col.Min != 7 || col.Max != 7 {
		t.Errorf("Constant column should have mean=min=max=7, got mean=%v min=%v max=%v", col.Mean, col.Min, col.Max)
	}
	if col.StdDev != 0 {
		t.Errorf("Constant column should have zero std, got %v", col.StdDev)
	}
}

func TestDescribe_PopulationStandardDeviation(t *testing.T) {
	table := tableFrom(
		[]string{"qty"},
		dataset.Record{"qty": "2"},
		dataset.Record{"qty": "4"},
		dataset.Record{"qty": "4"},
		dataset.Record{"qty": "4"},
		dataset.Record{"qty": "5"},
		dataset.Record{"qty": "5"},
		dataset.Record{"qty": "7"},
		dataset.Record{"qty": "9"},
	)
	cls := Classify(table)

	col := Describe(table, cls)[0]
	// Classic example: population std of this set is exactly 2 (sample
	// std would be ~2.14, which would indicate the wrong divisor).
	if math.Abs(col.StdDev-2.0) > 1e-9 {
		t.Errorf("Expected population std 2.0, got %v", col.StdDev)
	}
	if math.Abs(col.Mean-5.0) > 1e-9 {
		t.Errorf("Expected mean 5.0, got %v", col.Mean)
	}
}

func TestDescribe_NonNumericColumnsGetCountOnly(t *testing.T) {
	table := tableFrom(
		[]string{"date", "region"},
		dataset.Record{"date": "2024-01-01", "region": "north"},
		dataset.Record{"date": "2024-01-02", "region": ""},
	)
	cls := Classify(table)

	summary := Describe(table, cls)
	for _, col := range summary {
		if col.HasStats {
			t.Errorf("Column %s is not numeric, should not carry stats", col.Name)
		}
	}
	if summary[0].Count != 2 {
		t.Errorf("Expected date count 2, got %d", summary[0].Count)
	}
	if summary[1].Count != 1 {
		t.Errorf("Expected region count 1 (one missing), got %d", summary[1].Count)
	}
}

func TestDescribe_PreservesColumnOrder(t *testing.T) {
	table := tableFrom(
		[]string{"c", "a", "b"},
		dataset.Record{"c": "1", "a": "2", "b": "3"},
	)
	cls := Classify(table)

	summary := Describe(table, cls)
	want := []string{"c", "a", "b"}
	for i, col := range summary {
		if col.Name != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], col.Name)
		}
	}
}

func TestDescribe_EmptyColumnDoesNotPanic(t *testing.T) {
	table := tableFrom(
		[]string{"qty"},
		dataset.Record{"qty": ""},
	)
	cls := Classify(table)

	col := Describe(table, cls)[0]
	if col.Count != 0 {
		t.Errorf("Expected count 0, got %d", col.Count)
	}
	if col.HasStats {
		t.Error("Empty column should not carry stats")
	}
	if col.Type != profile.TypeCategorical {
		t.Errorf("Empty column defaults to categorical, got %s", col.Type)
	}
}
