package aggregator

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"voucher-segments/pkg/models"
	"voucher-segments/pkg/segment"
)

// Result holds everything one aggregation run produces: the curated record
// set and one winner set per axis.
type Result struct {
	Curated  []models.ClassifiedRecord
	Recency  []models.CohortAggregate
	Frequent []models.CohortAggregate
	Stats    CleanStats
}

// Run executes the full pipeline for one execution date: clean the raw
// snapshot, attach both segment labels to every surviving record, then
// collapse each axis into its most-used-voucher set. The run is a pure
// function of (cfg, raw); rerunning it on the same snapshot yields an
// identical Result.
func Run(cfg models.Config, raw []models.RawOrderRecord) (*Result, error) {
	if cfg.ExecutionDate.IsZero() {
		return nil, fmt.Errorf("%w: execution date not set", segment.ErrInvalidInput)
	}

	cleaned, stats := Clean(raw, cfg.ExecutionDate)
	if cfg.Verbose {
		logrus.WithFields(logrus.Fields{
			"rows_read":     stats.RowsRead,
			"beyond_cutoff": stats.BeyondCutoff,
			"dropped":       stats.Dropped,
			"kept":          stats.Kept,
		}).Info("cleaning done")
	}

	bar := progressbar.Default(int64(len(cleaned)))
	curated := make([]models.ClassifiedRecord, 0, len(cleaned))
	for _, rec := range cleaned {
		recency, err := segment.ClassifyRecency(rec.LastOrderTS, cfg.ExecutionDate)
		if err != nil {
			return nil, fmt.Errorf("classify customer %s: %w", rec.CustomerID, err)
		}
		frequent, err := segment.ClassifyFrequency(rec.TotalOrders)
		if err != nil {
			return nil, fmt.Errorf("classify customer %s: %w", rec.CustomerID, err)
		}
		curated = append(curated, models.ClassifiedRecord{
			OrderHistoryRecord: rec,
			RecencySegment:     recency,
			FrequentSegment:    frequent,
		})
		_ = bar.Add(1)
	}

	recency, err := MostUsed(segment.Recency, curated, cfg.PartitionKey)
	if err != nil {
		return nil, fmt.Errorf("aggregate recency: %w", err)
	}
	frequent, err := MostUsed(segment.Frequency, curated, cfg.PartitionKey)
	if err != nil {
		return nil, fmt.Errorf("aggregate frequency: %w", err)
	}
	if cfg.Verbose {
		logrus.WithFields(logrus.Fields{
			"recency_cohorts":  len(recency),
			"frequent_cohorts": len(frequent),
		}).Info("aggregation done")
	}

	return &Result{
		Curated:  curated,
		Recency:  recency,
		Frequent: frequent,
		Stats:    stats,
	}, nil
}
