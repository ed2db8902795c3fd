package aggregator

import (
	"fmt"
	"sort"

	"voucher-segments/pkg/models"
	"voucher-segments/pkg/segment"
)

type cohortKey struct {
	country string
	segment string
}

type candidateKey struct {
	cohortKey
	voucher int64
}

// MostUsed collapses classified records into one CohortAggregate per
// (country, segment value) cohort on the given axis. Candidate vouchers are
// weighted by summed order volume; ties resolve to the smallest voucher
// amount so the winner never depends on input order. Cohorts with no
// records produce no row.
func MostUsed(axis segment.Axis, records []models.ClassifiedRecord, partitionKey string) ([]models.CohortAggregate, error) {
	volumes := make(map[candidateKey]int64)
	for _, rec := range records {
		seg, err := axisValue(axis, rec)
		if err != nil {
			return nil, err
		}
		k := candidateKey{cohortKey{rec.CountryCode, seg}, rec.VoucherAmount}
		volumes[k] += int64(rec.TotalOrders)
	}

	type winner struct {
		voucher int64
		volume  int64
	}
	winners := make(map[cohortKey]winner)
	for k, vol := range volumes {
		best, seen := winners[k.cohortKey]
		if !seen || vol > best.volume || (vol == best.volume && k.voucher < best.voucher) {
			winners[k.cohortKey] = winner{voucher: k.voucher, volume: vol}
		}
	}

	out := make([]models.CohortAggregate, 0, len(winners))
	for k, w := range winners {
		out = append(out, models.CohortAggregate{
			ExecutionDate: partitionKey,
			CountryCode:   k.country,
			SegmentValue:  k.segment,
			VoucherAmount: w.voucher,
		})
	}
	// Stable output order: identical inputs give byte-identical output sets.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CountryCode != out[j].CountryCode {
			return out[i].CountryCode < out[j].CountryCode
		}
		return out[i].SegmentValue < out[j].SegmentValue
	})
	return out, nil
}

func axisValue(axis segment.Axis, rec models.ClassifiedRecord) (string, error) {
	switch axis {
	case segment.Recency:
		return rec.RecencySegment, nil
	case segment.Frequency:
		return rec.FrequentSegment, nil
	}
	return "", fmt.Errorf("%w: unknown axis %q", segment.ErrInvalidInput, axis)
}
