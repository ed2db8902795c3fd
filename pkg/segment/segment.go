package segment

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks caller-validation failures: unknown axis names,
// negative order counts, timestamps in the future. Never silently clamped.
var ErrInvalidInput = errors.New("invalid input")

// Axis is one of the two independent classification dimensions.
type Axis string

const (
	Recency   Axis = "recency_segment"
	Frequency Axis = "frequent_segment"
)

// ParseAxis validates a caller-supplied axis name.
func ParseAxis(name string) (Axis, error) {
	switch Axis(name) {
	case Recency, Frequency:
		return Axis(name), nil
	}
	return "", fmt.Errorf("%w: unknown segment_name %q", ErrInvalidInput, name)
}

// bucket is one row of a boundary table: values up to and including Upper
// fall in the bucket.
type bucket struct {
	upper int
	label string
}

// Boundary tables. This is the single source of truth for both axes; the
// bulk aggregation path and the per-request lookup path both classify
// through these tables, so the two can never drift apart.
var (
	recencyBuckets = []bucket{
		{30, "0-30"},
		{60, "30-60"},
		{90, "60-90"},
		{120, "90-120"},
		{180, "120-180"},
	}
	recencyTop = "180+"

	frequencyBuckets = []bucket{
		{4, "0-4"},
		{13, "5-13"},
		{37, "13-37"},
	}
	frequencyTop = "37+"
)

func classify(n int, table []bucket, top string) string {
	for _, b := range table {
		if n <= b.upper {
			return b.label
		}
	}
	return top
}

// ClassifyRecency maps a customer's last order date to a recency bucket,
// counting whole calendar days between lastOrder and asOf. A lastOrder
// after asOf is an input error, not a clamp to "0-30".
func ClassifyRecency(lastOrder, asOf time.Time) (string, error) {
	d := DaysBetween(lastOrder, asOf)
	if d < 0 {
		return "", fmt.Errorf("%w: last_order_ts %s is after %s",
			ErrInvalidInput, lastOrder.Format("2006-01-02"), asOf.Format("2006-01-02"))
	}
	return classify(d, recencyBuckets, recencyTop), nil
}

// ClassifyFrequency maps a total order count to a frequency bucket.
func ClassifyFrequency(totalOrders int) (string, error) {
	if totalOrders < 0 {
		return "", fmt.Errorf("%w: negative total_orders %d", ErrInvalidInput, totalOrders)
	}
	return classify(totalOrders, frequencyBuckets, frequencyTop), nil
}

// DaysBetween returns the number of whole calendar days from a to b,
// comparing dates in UTC. Same-day timestamps give 0.
func DaysBetween(a, b time.Time) int {
	au, bu := a.UTC(), b.UTC()
	ad := time.Date(au.Year(), au.Month(), au.Day(), 0, 0, 0, 0, time.UTC)
	bd := time.Date(bu.Year(), bu.Month(), bu.Day(), 0, 0, 0, 0, time.UTC)
	return int(bd.Sub(ad).Hours() / 24)
}
