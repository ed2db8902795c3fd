package segment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFrequency_Boundaries(t *testing.T) {
	cases := map[int]string{
		0:  "0-4",
		4:  "0-4",
		5:  "5-13",
		13: "5-13",
		14: "13-37",
		37: "13-37",
		38: "37+",
		99: "37+",
	}
	for n, want := range cases {
		got, err := ClassifyFrequency(n)
		require.NoError(t, err)
		assert.Equal(t, want, got, "total_orders=%d", n)
	}
}

func TestFrequency_Negative(t *testing.T) {
	_, err := ClassifyFrequency(-1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecency_Boundaries(t *testing.T) {
	asOf := day(2022, time.June, 30)
	cases := map[int]string{
		0:   "0-30",
		30:  "0-30",
		31:  "30-60",
		60:  "30-60",
		61:  "60-90",
		90:  "60-90",
		91:  "90-120",
		120: "90-120",
		121: "120-180",
		180: "120-180",
		181: "180+",
		400: "180+",
	}
	for d, want := range cases {
		got, err := ClassifyRecency(asOf.AddDate(0, 0, -d), asOf)
		require.NoError(t, err)
		assert.Equal(t, want, got, "days_since_last_order=%d", d)
	}
}

func TestRecency_FutureLastOrder(t *testing.T) {
	asOf := day(2022, time.June, 30)
	_, err := ClassifyRecency(asOf.AddDate(0, 0, 1), asOf)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestRecency_SameDayIgnoresClock(t *testing.T) {
	// An order later in the day than the cutoff clock time is still day 0.
	asOf := time.Date(2022, time.June, 30, 6, 0, 0, 0, time.UTC)
	lastOrder := time.Date(2022, time.June, 30, 18, 30, 0, 0, time.UTC)
	got, err := ClassifyRecency(lastOrder, asOf)
	require.NoError(t, err)
	assert.Equal(t, "0-30", got)
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(day(2022, time.March, 1), day(2022, time.March, 1)))
	assert.Equal(t, 31, DaysBetween(day(2022, time.March, 1), day(2022, time.April, 1)))
	assert.Equal(t, -1, DaysBetween(day(2022, time.March, 2), day(2022, time.March, 1)))
}

func TestAxisWireValues(t *testing.T) {
	// The axis names are the published wire values; the classifiers feed
	// the cohorts keyed by them.
	assert.Equal(t, Axis("recency_segment"), Recency)
	assert.Equal(t, Axis("frequent_segment"), Frequency)

	byAxis := map[Axis]string{}
	var err error
	byAxis[Recency], err = ClassifyRecency(day(2022, time.March, 1), day(2022, time.April, 15))
	require.NoError(t, err)
	byAxis[Frequency], err = ClassifyFrequency(15)
	require.NoError(t, err)
	assert.Equal(t, "30-60", byAxis[Recency])
	assert.Equal(t, "5-13", byAxis[Frequency])
}

func TestParseAxis(t *testing.T) {
	a, err := ParseAxis("recency_segment")
	require.NoError(t, err)
	assert.Equal(t, Recency, a)

	a, err = ParseAxis("frequent_segment")
	require.NoError(t, err)
	assert.Equal(t, Frequency, a)

	_, err = ParseAxis("loyalty_segment")
	require.ErrorIs(t, err, ErrInvalidInput)
}
