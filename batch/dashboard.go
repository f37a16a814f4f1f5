package batch

import (
	"context"
	"time"

	"agrosense/models"
)

// Summary is the fleet-wide dashboard rollup.
type Summary struct {
	TotalBatches   int64 `json:"totalBatches"`
	ActiveBatches  int64 `json:"activeBatches"`
	TotalOrders    int64 `json:"totalOrders"`
	ExpiredBatches int64 `json:"expiredBatches"`
	ExpiringSoon   int64 `json:"expiringSoon"`
}

// Aggregator folds per-batch freshness into dashboard counts. It applies
// the same 2-day boundary as CheckExpiry plus the administrative rule: a
// batch counts as active only when it is both unexpired and its persisted
// status is ACTIVE.
type Aggregator struct {
	batches Store
	orders  OrderCounter
}

// NewAggregator wires the aggregator to its stores.
func NewAggregator(batches Store, orders OrderCounter) *Aggregator {
	return &Aggregator{batches: batches, orders: orders}
}

// Summarize computes the dashboard counts at now. Batches with a missing or
// unparsable startDate are skipped from expiry accounting but still count
// as active when their stored status says so.
func (a *Aggregator) Summarize(ctx context.Context, now time.Time) (*Summary, error) {
	total, err := a.batches.Count(ctx)
	if err != nil {
		return nil, err
	}
	orders, err := a.orders.Count(ctx)
	if err != nil {
		return nil, err
	}

	s := &Summary{TotalBatches: total, TotalOrders: orders}

	all, err := a.batches.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range all {
		start, err := parseDate(b.StartDate)
		if err != nil {
			// Conservative fallback for malformed records: trust the
			// stored status, skip expiry accounting.
			if b.Status == models.BatchStatusActive {
				s.ActiveBatches++
			}
			continue
		}

		expired, soon := expiryWindow(start, now)
		if expired {
			s.ExpiredBatches++
			continue
		}
		if soon {
			s.ExpiringSoon++
		}
		if b.Status == models.BatchStatusActive {
			s.ActiveBatches++
		}
	}
	return s, nil
}
