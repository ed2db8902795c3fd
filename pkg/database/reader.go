package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"voucher-segments/pkg/segment"
)

// CohortStore serves point reads against the published cohort tables.
type CohortStore struct {
	db *sql.DB
}

func NewCohortStore(db *sql.DB) *CohortStore {
	return &CohortStore{db: db}
}

// MostUsed returns the published voucher amount for one cohort, with
// found=false when no winner exists for that (country, segment) pair.
// Key values are always bound as placeholders, never spliced into the query.
func (s *CohortStore) MostUsed(ctx context.Context, axis segment.Axis, countryCode, segmentValue string) (int64, bool, error) {
	table, err := TableFor(axis)
	if err != nil {
		return 0, false, err
	}
	query := fmt.Sprintf(
		"SELECT voucher_amount FROM %s WHERE country_code = ? AND segment_value = ? LIMIT 1", table)

	var amount int64
	err = s.db.QueryRowContext(ctx, query, countryCode, segmentValue).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read %s: %w", table, err)
	}
	return amount, true, nil
}
