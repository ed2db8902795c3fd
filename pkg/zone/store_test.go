package zone

import (
	"os"
	"path/filepath"
	"testing"

	"voucher-segments/pkg/models"
)

func TestWriteReadPartition(t *testing.T) {
	s := NewStore(t.TempDir())

	header := []string{"a", "b"}
	rows := [][]string{{"1", "x"}, {"2", "y"}}
	if err := s.WritePartition("demo", "20200501", header, rows); err != nil {
		t.Fatalf("write: %v", err)
	}

	gotHeader, gotRows, err := s.ReadPartition("demo", "20200501")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(gotHeader) != 2 || gotHeader[0] != "a" {
		t.Fatalf("unexpected header: %v", gotHeader)
	}
	if len(gotRows) != 2 || gotRows[1][1] != "y" {
		t.Fatalf("unexpected rows: %v", gotRows)
	}
}

func TestWritePartition_OverwriteReplacesWholesale(t *testing.T) {
	base := t.TempDir()
	s := NewStore(base)

	if err := s.WritePartition("demo", "p1", []string{"a"}, [][]string{{"old1"}, {"old2"}, {"old3"}}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := s.WritePartition("demo", "p1", []string{"a"}, [][]string{{"new"}}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	_, rows, err := s.ReadPartition("demo", "p1")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "new" {
		t.Fatalf("partition not replaced wholesale: %v", rows)
	}

	// No staging or retired leftovers next to the partition.
	entries, err := os.ReadDir(filepath.Join(base, "demo"))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "execution_date=p1" {
		t.Fatalf("unexpected dataset dir contents: %v", entries)
	}
}

func TestWritePartition_PartitionsAreIndependent(t *testing.T) {
	s := NewStore(t.TempDir())
	if err := s.WritePartition("demo", "p1", []string{"a"}, [][]string{{"one"}}); err != nil {
		t.Fatalf("write p1: %v", err)
	}
	if err := s.WritePartition("demo", "p2", []string{"a"}, [][]string{{"two"}}); err != nil {
		t.Fatalf("write p2: %v", err)
	}
	_, rows, err := s.ReadPartition("demo", "p1")
	if err != nil {
		t.Fatalf("read p1: %v", err)
	}
	if rows[0][0] != "one" {
		t.Fatalf("p1 clobbered: %v", rows)
	}
}

func TestReadPartition_Missing(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, _, err := s.ReadPartition("demo", "absent"); err == nil {
		t.Fatal("expected error for missing partition, got nil")
	}
}

func TestAggregateRoundTrip(t *testing.T) {
	in := []models.CohortAggregate{
		{ExecutionDate: "20200501", CountryCode: "Peru", SegmentValue: "5-13", VoucherAmount: 2640},
		{ExecutionDate: "20200501", CountryCode: "Chile", SegmentValue: "0-4", VoucherAmount: 1500},
	}
	header, rows := EncodeAggregates(in)
	out, err := DecodeAggregates(header, rows)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %v", out)
	}
}

func TestDecodeAggregates_BadHeader(t *testing.T) {
	if _, err := DecodeAggregates([]string{"x", "y"}, nil); err == nil {
		t.Fatal("expected error for bad header, got nil")
	}
}
