package models

import (
	"time"
)

// TimestampLayout is the wire format for every timestamp in the system:
// raw snapshot cells, the CLI execution date and the lookup API payload.
const TimestampLayout = "2006-01-02 15:04:05"

/*
LOAD → raw rows as they come out of the snapshot, before cleaning.
*/

// RawOrderRecord is one uncleaned snapshot row. Every field is a string
// because the raw zone carries no schema guarantees; the cleaning stage
// parses and drops what it cannot trust.
type RawOrderRecord struct {
	CustomerID    string
	CountryCode   string
	Timestamp     string
	FirstOrderTS  string
	LastOrderTS   string
	TotalOrders   string
	VoucherAmount string
}

// OrderHistoryRecord is a snapshot row that survived cleaning: required
// fields present, types assigned. FirstOrderTS may be zero; it is carried
// through but never required.
type OrderHistoryRecord struct {
	CustomerID    string
	CountryCode   string
	Timestamp     time.Time
	FirstOrderTS  time.Time
	LastOrderTS   time.Time
	TotalOrders   int
	VoucherAmount int64
}

/*
COMPUTE → records and aggregates produced by the pipeline.
*/

// ClassifiedRecord is an OrderHistoryRecord with both segment labels
// attached for a given execution date. Labels are computed once per run and
// never recomputed afterwards.
type ClassifiedRecord struct {
	OrderHistoryRecord
	RecencySegment  string
	FrequentSegment string
}

// CohortAggregate is one published row: the winning voucher amount for a
// (country, segment value) cohort on one axis, tagged with the partition
// key of the run that produced it.
type CohortAggregate struct {
	ExecutionDate string
	CountryCode   string
	SegmentValue  string
	VoucherAmount int64
}

/*
LOOKUP → input of the point-read service.
*/

// CustomerQuery carries one customer's raw attributes. The service derives
// the segment itself; callers never supply a precomputed label.
type CustomerQuery struct {
	CustomerID   string
	CountryCode  string
	SegmentName  string
	TotalOrders  int
	LastOrderTS  time.Time
	FirstOrderTS time.Time
}

/*
CONFIG → parameters of one batch run.
*/

// Config is the configuration passed to the aggregation run.
type Config struct {
	ExecutionDate time.Time // cutoff bounding the input read, UTC
	PartitionKey  string    // execution date with ":" stripped, tags all outputs
	Verbose       bool      // per-stage log detail
}
