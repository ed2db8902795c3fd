package dataset

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeSnapshot(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "snapshot.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeSnapshot(t, [][]any{
		{"customer_id", "country_code", "timestamp", "first_order_ts", "last_order_ts", "total_orders", "voucher_amount"},
		{"123", "Peru", "2020-04-18 00:00:00", "2017-05-03 00:00:00", "2020-04-01 00:00:00", "15", "2640"},
		{"456", "Chile", "2020-04-19 00:00:00", "", "2020-02-11 00:00:00", "3", "4400"},
	})

	got, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
	if got[0].CustomerID != "123" || got[0].CountryCode != "Peru" || got[0].VoucherAmount != "2640" {
		t.Fatalf("unexpected first record: %+v", got[0])
	}
	if got[1].FirstOrderTS != "" {
		t.Fatalf("expected empty first_order_ts, got %q", got[1].FirstOrderTS)
	}
}

func TestLoad_SkipsEmptyRows(t *testing.T) {
	path := writeSnapshot(t, [][]any{
		{"customer_id", "country_code", "timestamp", "first_order_ts", "last_order_ts", "total_orders", "voucher_amount"},
		{"", "", "", "", "", "", ""},
		{"123", "Peru", "2020-04-18 00:00:00", "", "2020-04-01 00:00:00", "15", "2640"},
	})
	got, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeSnapshot(t, [][]any{
		{"customer_id", "country_code", "timestamp", "last_order_ts", "total_orders"},
		{"123", "Peru", "2020-04-18 00:00:00", "2020-04-01 00:00:00", "15"},
	})
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for missing column, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}
