package batch

import "time"

// ShelfStatus classifies post-harvest perishability.
type ShelfStatus string

const (
	ShelfStatusSafe    ShelfStatus = "SAFE"
	ShelfStatusWarning ShelfStatus = "WARNING"
	ShelfStatusExpired ShelfStatus = "EXPIRED"
)

const (
	baseShelfDays     = 10
	hotPenaltyDays    = 3
	humidPenaltyDays  = 2
	minShelfDays      = 1
	hotThresholdDegC  = 30
	humidThresholdPct = 80
	warningShelfDays  = 2
)

// ShelfLife is the result of the temperature/humidity calculator. This is
// the environment-sensitive perishability estimate, deliberately separate
// from the static growth-cycle expiry stored on a batch.
type ShelfLife struct {
	RemainingDays int         `json:"remainingDays"`
	ExpiryDate    time.Time   `json:"expiryDate"`
	Status        ShelfStatus `json:"status"`
}

// ComputeShelfLife estimates remaining safe-storage time under the given
// conditions. Starts from a 10-day baseline, loses 3 days above 30 degC and
// 2 days above 80% humidity (penalties stack), floored at 1 day. Pure and
// total: now is supplied by the caller.
func ComputeShelfLife(temperature, humidity float64, now time.Time) ShelfLife {
	days := baseShelfDays
	if temperature > hotThresholdDegC {
		days -= hotPenaltyDays
	}
	if humidity > humidThresholdPct {
		days -= humidPenaltyDays
	}
	if days < minShelfDays {
		days = minShelfDays
	}

	status := ShelfStatusSafe
	if days <= warningShelfDays {
		status = ShelfStatusWarning
	}
	if days == minShelfDays {
		status = ShelfStatusExpired
	}

	return ShelfLife{
		RemainingDays: days,
		ExpiryDate:    now.AddDate(0, 0, days),
		Status:        status,
	}
}
