package zone

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a partitioned dataset store on a local directory tree, standing
// in for the object-store zones of the platform. Layout:
//
//	<base>/<dataset>/execution_date=<partition>/part-00000.csv
//
// A partition is published by writing to a staging directory and renaming
// it into place, so readers see the complete old partition or the complete
// new one, never a mix.
type Store struct {
	base string
}

func NewStore(base string) *Store {
	return &Store{base: base}
}

func (s *Store) partitionDir(dataset, partitionKey string) string {
	return filepath.Join(s.base, dataset, "execution_date="+partitionKey)
}

// WritePartition replaces the partition wholesale with the given rows.
func (s *Store) WritePartition(dataset, partitionKey string, header []string, rows [][]string) error {
	datasetDir := filepath.Join(s.base, dataset)
	if err := os.MkdirAll(datasetDir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", datasetDir, err)
	}

	staging, err := os.MkdirTemp(datasetDir, ".staging-")
	if err != nil {
		return fmt.Errorf("staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	part := filepath.Join(staging, "part-00000.csv")
	f, err := os.Create(part)
	if err != nil {
		return fmt.Errorf("create %s: %w", part, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	// Swap the staged partition in. The prior partition stays intact until
	// the staged one is complete on disk.
	dest := s.partitionDir(dataset, partitionKey)
	retired := dest + ".retired"
	_ = os.RemoveAll(retired)
	if _, err := os.Stat(dest); err == nil {
		if err := os.Rename(dest, retired); err != nil {
			return fmt.Errorf("retire %s: %w", dest, err)
		}
	}
	if err := os.Rename(staging, dest); err != nil {
		// Put the prior partition back rather than leave nothing.
		_ = os.Rename(retired, dest)
		return fmt.Errorf("publish %s: %w", dest, err)
	}
	_ = os.RemoveAll(retired)
	return nil
}

// ReadPartition reads one partition back, returning its header and rows.
func (s *Store) ReadPartition(dataset, partitionKey string) ([]string, [][]string, error) {
	dir := s.partitionDir(dataset, partitionKey)
	parts, err := filepath.Glob(filepath.Join(dir, "part-*.csv"))
	if err != nil {
		return nil, nil, err
	}
	if len(parts) == 0 {
		return nil, nil, fmt.Errorf("partition %s: no part files", dir)
	}

	var header []string
	var rows [][]string
	for _, part := range parts {
		f, err := os.Open(part)
		if err != nil {
			return nil, nil, fmt.Errorf("open %s: %w", part, err)
		}
		all, err := csv.NewReader(f).ReadAll()
		f.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w", part, err)
		}
		if len(all) == 0 {
			continue
		}
		if header == nil {
			header = all[0]
		}
		rows = append(rows, all[1:]...)
	}
	if header == nil {
		return nil, nil, fmt.Errorf("partition %s: empty", dir)
	}
	return header, rows, nil
}
