package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
)

type row struct {
	ID   int64  `parquet:"id"`
	Name string `parquet:"name"`
}

func makeRows(n int) []row {
	rows := make([]row, n)
	for i := range rows {
		rows[i] = row{ID: int64(i), Name: fmt.Sprintf("row-%d", i)}
	}
	return rows
}

func testWriter(dir string) *Writer {
	return &Writer{
		Dir:       dir,
		ChunkSize: 100,
		Codec:     &parquet.Snappy,
		Retry:     Policy{MaxAttempts: 1},
	}
}

func TestWriteTableSingleFile(t *testing.T) {
	dir := t.TempDir()
	report, err := WriteTable(testWriter(dir), "events", FromSlice(makeRows(150)))
	if err != nil {
		t.Fatal(err)
	}
	if report.Rows != 150 || report.Artifacts != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	path := filepath.Join(dir, "events.parquet")
	rows, err := parquet.ReadFile[row](path)
	if err != nil {
		t.Fatalf("failed to read single artifact: %v", err)
	}
	if len(rows) != 150 {
		t.Fatalf("expected 150 rows, got %d", len(rows))
	}
}

func TestWriteTableChunks(t *testing.T) {
	dir := t.TempDir()
	report, err := WriteTable(testWriter(dir), "events", FromSlice(makeRows(450)))
	if err != nil {
		t.Fatal(err)
	}
	if report.Rows != 450 || report.Artifacts != 5 {
		t.Fatalf("unexpected report: %+v", report)
	}

	files, err := Artifacts(dir, "events")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 5 {
		t.Fatalf("expected 5 chunk files, got %d", len(files))
	}
	for i, file := range files {
		want := fmt.Sprintf("events_batch_%04d.parquet", i)
		if filepath.Base(file) != want {
			t.Fatalf("chunk %d named %s, expected %s", i, filepath.Base(file), want)
		}
	}

	// Last chunk holds the remainder.
	rows, err := parquet.ReadFile[row](files[4])
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 50 {
		t.Fatalf("final chunk has %d rows, expected 50", len(rows))
	}
}

func TestWriteTablePreservesRowOrder(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteTable(testWriter(dir), "events", FromSlice(makeRows(450))); err != nil {
		t.Fatal(err)
	}
	files, err := Artifacts(dir, "events")
	if err != nil {
		t.Fatal(err)
	}
	var next int64
	for _, file := range files {
		rows, err := parquet.ReadFile[row](file)
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range rows {
			if r.ID != next {
				t.Fatalf("expected row %d, got %d in %s", next, r.ID, filepath.Base(file))
			}
			next++
		}
	}
	if next != 450 {
		t.Fatalf("read %d rows total, expected 450", next)
	}
}

func TestWriteTableSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteTable(testWriter(dir), "events", FromSlice(makeRows(450))); err != nil {
		t.Fatal(err)
	}

	report, err := WriteTable(testWriter(dir), "events", FromSlice(makeRows(10)))
	if err != nil {
		t.Fatal(err)
	}
	if !report.Skipped {
		t.Fatal("expected second write to be skipped")
	}

	files, _ := Artifacts(dir, "events")
	if len(files) != 5 {
		t.Fatalf("existing artifacts were touched: %d files", len(files))
	}
}

func TestWriteTableOverwritePurges(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteTable(testWriter(dir), "events", FromSlice(makeRows(450))); err != nil {
		t.Fatal(err)
	}

	w := testWriter(dir)
	w.Overwrite = true
	report, err := WriteTable(w, "events", FromSlice(makeRows(150)))
	if err != nil {
		t.Fatal(err)
	}
	if report.Skipped {
		t.Fatal("overwrite run was skipped")
	}
	if report.Rows != 150 || report.Artifacts != 1 {
		t.Fatalf("unexpected report after overwrite: %+v", report)
	}

	// The old chunk directory is gone, only the new single artifact remains.
	if _, err := os.Stat(filepath.Join(dir, "events")); !os.IsNotExist(err) {
		t.Fatal("old chunk directory survived the purge")
	}
	files, err := Artifacts(dir, "events")
	if err != nil || len(files) != 1 {
		t.Fatalf("expected 1 artifact after overwrite, got %d (%v)", len(files), err)
	}
}

func TestWriteTableRecordsFailedBatches(t *testing.T) {
	dir := t.TempDir()

	// A directory squatting on a chunk path makes os.Create fail for that
	// chunk only; the write continues past it.
	blocker := filepath.Join(dir, "events", "events_batch_0001.parquet")
	if err := os.MkdirAll(blocker, 0755); err != nil {
		t.Fatal(err)
	}

	report, err := WriteTable(testWriter(dir), "events", FromSlice(makeRows(350)))
	if err != nil {
		t.Fatal(err)
	}
	if len(report.FailedBatches) != 1 || report.FailedBatches[0] != "events_batch_0001.parquet" {
		t.Fatalf("unexpected failed batches: %v", report.FailedBatches)
	}
	if report.Rows != 250 || report.Artifacts != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}

	// Sequence numbers are not reused for failed chunks.
	files, err := Artifacts(dir, "events")
	if err != nil {
		t.Fatal(err)
	}
	wantNames := []string{"events_batch_0000.parquet", "events_batch_0002.parquet", "events_batch_0003.parquet"}
	for i, file := range files {
		if filepath.Base(file) != wantNames[i] {
			t.Fatalf("artifact %d is %s, expected %s", i, filepath.Base(file), wantNames[i])
		}
	}
}

func TestWriteTableEmptyCursor(t *testing.T) {
	dir := t.TempDir()
	report, err := WriteTable(testWriter(dir), "events", FromSlice([]row(nil)))
	if err != nil {
		t.Fatal(err)
	}
	if report.Rows != 0 || report.Artifacts != 1 {
		t.Fatalf("unexpected report for empty table: %+v", report)
	}
	rows, err := parquet.ReadFile[row](filepath.Join(dir, "events.parquet"))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("empty table artifact has %d rows", len(rows))
	}
}

func TestCodecFor(t *testing.T) {
	for _, name := range []string{"", "snappy", "gzip", "zstd", "lz4", "none", "uncompressed"} {
		if _, err := CodecFor(name); err != nil {
			t.Fatalf("codec %q rejected: %v", name, err)
		}
	}
	if _, err := CodecFor("brotli"); err == nil {
		t.Fatal("expected error for unsupported codec")
	}
}

func TestArtifactsMissingTable(t *testing.T) {
	if _, err := Artifacts(t.TempDir(), "ghost"); err == nil {
		t.Fatal("expected error for table with no artifacts")
	}
}
