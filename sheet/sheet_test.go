package sheet

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestReadCommaDelimited(t *testing.T) {
	in := "sample_name,protocol,file\nfrog_1,WGBS,frog1.txt\nfrog_2,ATAC,frog2.txt\n"

	tbl, err := Read(strings.NewReader(in), 0)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(tbl.Columns(), []string{"sample_name", "protocol", "file"}) {
		t.Errorf("columns: %v", tbl.Columns())
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("rows: %d", tbl.NumRows())
	}
	if !reflect.DeepEqual(tbl.Row(0), []string{"frog_1", "WGBS", "frog1.txt"}) {
		t.Errorf("row 0: %v", tbl.Row(0))
	}
	if v, ok := tbl.Value(1, "protocol"); !ok || v != "ATAC" {
		t.Errorf("Value(1, protocol) = %q, %v", v, ok)
	}
}

func TestReadTabDelimited(t *testing.T) {
	in := "sample_name\tdata\nsample0\t0\nsample1\t1\n"

	tbl, err := Read(strings.NewReader(in), '\t')
	if err != nil {
		t.Fatal(err)
	}

	if tbl.NumRows() != 2 {
		t.Errorf("rows: %d", tbl.NumRows())
	}
	if i, ok := tbl.ColumnIndex("data"); !ok || i != 1 {
		t.Errorf("ColumnIndex(data) = %d, %v", i, ok)
	}
}

func TestReadZeroRows(t *testing.T) {
	tbl, err := Read(strings.NewReader("sample_name,protocol\n"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.NumRows() != 0 {
		t.Errorf("rows: %d", tbl.NumRows())
	}
	if len(tbl.Columns()) != 2 {
		t.Errorf("columns: %v", tbl.Columns())
	}
}

func TestReadEmptySource(t *testing.T) {
	tbl, err := Read(strings.NewReader(""), 0)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.NumRows() != 0 || len(tbl.Columns()) != 0 {
		t.Errorf("empty source should yield empty table: %v rows, %v cols", tbl.NumRows(), tbl.Columns())
	}
}

func TestReadDuplicateHeader(t *testing.T) {
	_, err := Read(strings.NewReader("sample_name,val,val\ns1,1,2\n"), 0)
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable for duplicate header, got %v", err)
	}
}

func TestReadRaggedRow(t *testing.T) {
	_, err := Read(strings.NewReader("a,b\n1,2,3\n"), 0)
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable for ragged row, got %v", err)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "no-such-sheet.csv"), 0)
	if !errors.Is(err, ErrUnreadable) {
		t.Errorf("expected ErrUnreadable, got %v", err)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	tbl := NewTable([]string{"sample_name", "protocol"})
	if err := tbl.Append([]string{"s1", "WGBS"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := tbl.Write(&buf, '\t'); err != nil {
		t.Fatal(err)
	}

	back, err := Read(&buf, '\t')
	if err != nil {
		t.Fatal(err)
	}
	if back.NumRows() != 1 || !reflect.DeepEqual(back.Row(0), []string{"s1", "WGBS"}) {
		t.Errorf("round trip mismatch: %v", back.Row(0))
	}
}

func TestAppendWrongWidth(t *testing.T) {
	tbl := NewTable([]string{"a", "b"})
	if err := tbl.Append([]string{"1"}); err == nil {
		t.Error("expected error appending short row")
	}
}
