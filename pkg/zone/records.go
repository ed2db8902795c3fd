package zone

import (
	"fmt"
	"strconv"

	"voucher-segments/pkg/models"
)

// Dataset names, matching the zone layout of the platform.
const (
	CuratedDataset          = "vouchers"
	RecencyMostUsedDataset  = "voucher_recency_most_used"
	FrequentMostUsedDataset = "voucher_frequent_most_used"
)

var curatedHeader = []string{
	"customer_id", "country_code", "timestamp", "first_order_ts",
	"last_order_ts", "total_orders", "voucher_amount",
	"frequent_segment", "recency_segment",
}

var aggregateHeader = []string{
	"execution_date", "country_code", "segment_value", "voucher_amount",
}

// EncodeCurated serializes the classified record set for the curated zone.
func EncodeCurated(records []models.ClassifiedRecord) ([]string, [][]string) {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		first := ""
		if !r.FirstOrderTS.IsZero() {
			first = r.FirstOrderTS.Format(models.TimestampLayout)
		}
		rows = append(rows, []string{
			r.CustomerID,
			r.CountryCode,
			r.Timestamp.Format(models.TimestampLayout),
			first,
			r.LastOrderTS.Format(models.TimestampLayout),
			strconv.Itoa(r.TotalOrders),
			strconv.FormatInt(r.VoucherAmount, 10),
			r.FrequentSegment,
			r.RecencySegment,
		})
	}
	return curatedHeader, rows
}

// EncodeAggregates serializes one axis' winner set for the provision zone.
func EncodeAggregates(aggs []models.CohortAggregate) ([]string, [][]string) {
	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, []string{
			a.ExecutionDate, a.CountryCode, a.SegmentValue,
			strconv.FormatInt(a.VoucherAmount, 10),
		})
	}
	return aggregateHeader, rows
}

// DecodeAggregates parses a provision partition back into aggregates, as
// read before the publish step.
func DecodeAggregates(header []string, rows [][]string) ([]models.CohortAggregate, error) {
	if len(header) != len(aggregateHeader) {
		return nil, fmt.Errorf("aggregate partition: %d columns, want %d", len(header), len(aggregateHeader))
	}
	for i, h := range aggregateHeader {
		if header[i] != h {
			return nil, fmt.Errorf("aggregate partition: column %d is %q, want %q", i, header[i], h)
		}
	}
	out := make([]models.CohortAggregate, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(aggregateHeader) {
			return nil, fmt.Errorf("aggregate partition: row %d has %d fields", i, len(row))
		}
		amount, err := strconv.ParseInt(row[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("aggregate partition: row %d voucher_amount: %w", i, err)
		}
		out = append(out, models.CohortAggregate{
			ExecutionDate: row[0],
			CountryCode:   row[1],
			SegmentValue:  row[2],
			VoucherAmount: amount,
		})
	}
	return out, nil
}
