package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"voucher-segments/pkg/models"
	"voucher-segments/pkg/segment"
)

// CohortReader is the point-read surface of the published cohort tables.
type CohortReader interface {
	MostUsed(ctx context.Context, axis segment.Axis, countryCode, segmentValue string) (int64, bool, error)
}

// Service resolves one customer's most-used voucher. It owns no state
// beyond the reader: each lookup re-derives the segment from the raw
// attributes and does one point read. Precomputed labels from callers are
// never accepted, so the online path cannot drift from the batch path.
type Service struct {
	store CohortReader
	now   func() time.Time
}

func NewService(store CohortReader) *Service {
	return &Service{store: store, now: time.Now}
}

// Lookup returns the cohort's voucher amount, with found=false when no
// winner was published for the customer's (country, segment). Absence is an
// expected outcome, not an error; there is no fallback amount.
func (s *Service) Lookup(ctx context.Context, q models.CustomerQuery) (int64, bool, error) {
	axis, err := segment.ParseAxis(q.SegmentName)
	if err != nil {
		return 0, false, err
	}
	if strings.TrimSpace(q.CountryCode) == "" {
		return 0, false, fmt.Errorf("%w: empty country_code", segment.ErrInvalidInput)
	}

	var segmentValue string
	switch axis {
	case segment.Recency:
		segmentValue, err = segment.ClassifyRecency(q.LastOrderTS, s.now())
	case segment.Frequency:
		segmentValue, err = segment.ClassifyFrequency(q.TotalOrders)
	}
	if err != nil {
		return 0, false, err
	}

	return s.store.MostUsed(ctx, axis, q.CountryCode, segmentValue)
}
