package aggregator

import (
	"math"
	"strconv"
	"strings"
	"time"

	"voucher-segments/pkg/models"
)

// CleanStats counts what happened to the raw rows of one run.
type CleanStats struct {
	RowsRead     int // raw rows seen
	BeyondCutoff int // rows newer than the execution date, excluded from the snapshot
	Dropped      int // rows failing a cleaning invariant
	Kept         int // rows surviving into the curated set
}

// Clean applies the raw-zone invariants: required fields non-empty and
// parseable, snapshot bounded by the execution date. Offending rows are
// dropped, never patched with defaults.
func Clean(raw []models.RawOrderRecord, cutoff time.Time) ([]models.OrderHistoryRecord, CleanStats) {
	stats := CleanStats{RowsRead: len(raw)}
	out := make([]models.OrderHistoryRecord, 0, len(raw))

	for _, r := range raw {
		rec, ok := cleanOne(r)
		if !ok {
			stats.Dropped++
			continue
		}
		if rec.Timestamp.After(cutoff) {
			stats.BeyondCutoff++
			continue
		}
		// A last order after the cutoff cannot be bucketed for this run.
		if rec.LastOrderTS.After(cutoff) || rec.TotalOrders < 0 {
			stats.Dropped++
			continue
		}
		out = append(out, rec)
	}
	stats.Kept = len(out)
	return out, stats
}

func cleanOne(r models.RawOrderRecord) (models.OrderHistoryRecord, bool) {
	customerID := strings.TrimSpace(r.CustomerID)
	countryCode := strings.TrimSpace(r.CountryCode)
	if customerID == "" || countryCode == "" {
		return models.OrderHistoryRecord{}, false
	}

	ts, ok := parseTimestamp(r.Timestamp)
	if !ok {
		return models.OrderHistoryRecord{}, false
	}
	lastOrder, ok := parseTimestamp(r.LastOrderTS)
	if !ok {
		return models.OrderHistoryRecord{}, false
	}
	totalOrders, ok := parseCount(r.TotalOrders)
	if !ok {
		return models.OrderHistoryRecord{}, false
	}
	voucher, ok := parseAmount(r.VoucherAmount)
	if !ok {
		return models.OrderHistoryRecord{}, false
	}

	rec := models.OrderHistoryRecord{
		CustomerID:    customerID,
		CountryCode:   countryCode,
		Timestamp:     ts,
		LastOrderTS:   lastOrder,
		TotalOrders:   totalOrders,
		VoucherAmount: voucher,
	}
	// first_order_ts is carried but not required.
	if first, ok := parseTimestamp(r.FirstOrderTS); ok {
		rec.FirstOrderTS = first
	}
	return rec, true
}

func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(models.TimestampLayout, s, time.UTC); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseAmount accepts integer cells and float-formatted cells ("2640.0"),
// which snapshot exports produce for numeric columns. A non-zero fractional
// part is not a voucher denomination; the row is dropped, not rounded.
func parseAmount(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
