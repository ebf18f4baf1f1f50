package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress"
)

// CodecFor maps a configured compression name to a parquet codec.
func CodecFor(name string) (compress.Codec, error) {
	switch name {
	case "", "snappy":
		return &parquet.Snappy, nil
	case "gzip":
		return &parquet.Gzip, nil
	case "zstd":
		return &parquet.Zstd, nil
	case "lz4":
		return &parquet.Lz4Raw, nil
	case "none", "uncompressed":
		return &parquet.Uncompressed, nil
	default:
		return nil, fmt.Errorf("unsupported compression codec: %s", name)
	}
}

// TableReport is the per-table outcome of a write: rows persisted, artifact
// count, and the chunks that exhausted their retries. A non-empty
// FailedBatches list is a partial success, not a run failure.
type TableReport struct {
	Table         string
	Rows          int64
	Artifacts     int
	FailedBatches []string
	Skipped       bool
}

// Writer persists tables as sequences of fixed-size immutable parquet chunks
// under <Dir>/<table>/, or as a single <Dir>/<table>.parquet artifact for
// tables smaller than two chunks.
type Writer struct {
	Dir       string
	ChunkSize int
	Codec     compress.Codec
	Overwrite bool
	Retry     Policy
}

// WriteTable streams the cursor into chunk files. If artifacts for the table
// already exist the table is skipped entirely, unless the writer is set to
// overwrite, in which case the old artifacts are purged first — never mixed.
func WriteTable[T any](w *Writer, table string, cur *Cursor[T]) (TableReport, error) {
	report := TableReport{Table: table}
	tableDir := filepath.Join(w.Dir, table)
	singlePath := filepath.Join(w.Dir, table+".parquet")

	existing := countArtifacts(tableDir)
	if _, err := os.Stat(singlePath); err == nil {
		existing++
	}
	if existing > 0 {
		if !w.Overwrite {
			report.Skipped = true
			return report, nil
		}
		if err := os.RemoveAll(tableDir); err != nil {
			return report, fmt.Errorf("failed to purge %s: %w", tableDir, err)
		}
		if err := os.Remove(singlePath); err != nil && !os.IsNotExist(err) {
			return report, fmt.Errorf("failed to purge %s: %w", singlePath, err)
		}
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return report, fmt.Errorf("failed to create output directory: %w", err)
	}

	// Batches accumulate until two full chunks fit; anything smaller at end
	// of stream is written as one unpartitioned artifact instead.
	threshold := w.ChunkSize * 2
	var buffer []T
	batchMode := false
	seq := 0

	flushChunk := func(rows []T) {
		name := fmt.Sprintf("%s_batch_%04d.parquet", table, seq)
		seq++
		path := filepath.Join(tableDir, name)
		err := w.Retry.Do(func() error {
			return writeParquet(path, rows, w.Codec)
		})
		if err != nil {
			os.Remove(path)
			report.FailedBatches = append(report.FailedBatches, name)
			return
		}
		report.Rows += int64(len(rows))
		report.Artifacts++
	}

	cur.Reset()
	for {
		rows, ok := cur.Next()
		if !ok {
			break
		}
		buffer = append(buffer, rows...)
		for len(buffer) >= w.ChunkSize && (batchMode || len(buffer) >= threshold) {
			if !batchMode {
				if err := os.MkdirAll(tableDir, 0755); err != nil {
					return report, fmt.Errorf("failed to create table directory: %w", err)
				}
				batchMode = true
			}
			flushChunk(buffer[:w.ChunkSize])
			buffer = append([]T(nil), buffer[w.ChunkSize:]...)
		}
	}

	if !batchMode {
		err := w.Retry.Do(func() error {
			return writeParquet(singlePath, buffer, w.Codec)
		})
		if err != nil {
			os.Remove(singlePath)
			report.FailedBatches = append(report.FailedBatches, filepath.Base(singlePath))
			return report, nil
		}
		report.Rows = int64(len(buffer))
		report.Artifacts = 1
		return report, nil
	}

	for len(buffer) > 0 {
		n := w.ChunkSize
		if len(buffer) < n {
			n = len(buffer)
		}
		flushChunk(buffer[:n])
		buffer = buffer[n:]
	}
	return report, nil
}

func writeParquet[T any](path string, rows []T, codec compress.Codec) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	pw := parquet.NewGenericWriter[T](f, parquet.Compression(codec))
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			f.Close()
			return err
		}
	}
	if err := pw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Artifacts lists a table's parquet files in sequence order: either the
// single unpartitioned artifact or every chunk under the table directory.
func Artifacts(dir, table string) ([]string, error) {
	singlePath := filepath.Join(dir, table+".parquet")
	if _, err := os.Stat(singlePath); err == nil {
		return []string{singlePath}, nil
	}

	tableDir := filepath.Join(dir, table)
	entries, err := os.ReadDir(tableDir)
	if err != nil {
		return nil, fmt.Errorf("no artifacts found for table %s: %w", table, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".parquet") {
			continue
		}
		files = append(files, filepath.Join(tableDir, entry.Name()))
	}
	// Zero-padded sequence numbers sort lexicographically.
	sort.Strings(files)
	return files, nil
}

func countArtifacts(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".parquet") {
			count++
		}
	}
	return count
}
