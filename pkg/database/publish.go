package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"voucher-segments/pkg/models"
	"voucher-segments/pkg/segment"
)

// Published table names, one per axis.
const (
	RecencyTable  = "voucher_recency_most_used"
	FrequentTable = "voucher_frequent_most_used"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// TableFor maps a segment axis to its published table.
func TableFor(axis segment.Axis) (string, error) {
	switch axis {
	case segment.Recency:
		return RecencyTable, nil
	case segment.Frequency:
		return FrequentTable, nil
	}
	return "", fmt.Errorf("%w: no table for axis %q", segment.ErrInvalidInput, axis)
}

const insertBatchSize = 500

// Publish replaces the table wholesale with the given winner set. Rows are
// loaded into a staging table first, then swapped in with a single
// multi-table RENAME, which MySQL performs atomically: a reader sees the
// complete prior set or the complete new one. A failed run leaves the live
// table untouched.
func Publish(ctx context.Context, db *sql.DB, table string, aggs []models.CohortAggregate) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	staging := table + "_staging"
	retired := table + "_retired"

	if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s, %s", staging, retired)); err != nil {
		return fmt.Errorf("drop stale tables: %w", err)
	}
	createStmt := fmt.Sprintf(`CREATE TABLE %s (
		execution_date VARCHAR(32) NOT NULL,
		country_code VARCHAR(64) NOT NULL,
		segment_value VARCHAR(16) NOT NULL,
		voucher_amount BIGINT NOT NULL,
		PRIMARY KEY (country_code, segment_value)
	)`, staging)
	if _, err := db.ExecContext(ctx, createStmt); err != nil {
		return fmt.Errorf("create staging: %w", err)
	}

	for start := 0; start < len(aggs); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(aggs) {
			end = len(aggs)
		}
		batch := aggs[start:end]

		placeholders := make([]string, 0, len(batch))
		args := make([]any, 0, len(batch)*4)
		for _, a := range batch {
			placeholders = append(placeholders, "(?, ?, ?, ?)")
			args = append(args, a.ExecutionDate, a.CountryCode, a.SegmentValue, a.VoucherAmount)
		}
		stmt := fmt.Sprintf("INSERT INTO %s (execution_date, country_code, segment_value, voucher_amount) VALUES %s",
			staging, strings.Join(placeholders, ", "))
		if _, err := db.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("load staging: %w", err)
		}
	}

	// The live table must exist for the two-way rename.
	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s LIKE %s", table, staging)); err != nil {
		return fmt.Errorf("ensure live table: %w", err)
	}
	rename := fmt.Sprintf("RENAME TABLE %s TO %s, %s TO %s", table, retired, staging, table)
	if _, err := db.ExecContext(ctx, rename); err != nil {
		return fmt.Errorf("swap %s: %w", table, err)
	}
	if _, err := db.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", retired)); err != nil {
		return fmt.Errorf("drop retired: %w", err)
	}
	return nil
}
