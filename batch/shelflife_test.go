package batch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shelfNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestComputeShelfLife_Baseline(t *testing.T) {
	res := ComputeShelfLife(25, 60, shelfNow)
	assert.Equal(t, 10, res.RemainingDays)
	assert.Equal(t, ShelfStatusSafe, res.Status)
	assert.Equal(t, shelfNow.AddDate(0, 0, 10), res.ExpiryDate)
}

func TestComputeShelfLife_HotPenalty(t *testing.T) {
	res := ComputeShelfLife(31, 50, shelfNow)
	assert.Equal(t, 7, res.RemainingDays)
	assert.Equal(t, ShelfStatusSafe, res.Status)
	assert.Equal(t, shelfNow.AddDate(0, 0, 7), res.ExpiryDate)
}

func TestComputeShelfLife_BothPenalties(t *testing.T) {
	res := ComputeShelfLife(35, 90, shelfNow)
	assert.Equal(t, 5, res.RemainingDays)
	assert.Equal(t, ShelfStatusSafe, res.Status)
}

func TestComputeShelfLife_ThresholdsAreExclusive(t *testing.T) {
	// Exactly at the thresholds no penalty applies.
	res := ComputeShelfLife(30, 80, shelfNow)
	assert.Equal(t, 10, res.RemainingDays)
	assert.Equal(t, ShelfStatusSafe, res.Status)
}

func TestComputeShelfLife_Bounds(t *testing.T) {
	temps := []float64{-40, 0, 29, 30, 31, 45, 100}
	hums := []float64{0, 50, 80, 81, 95, 100}
	for _, temp := range temps {
		for _, hum := range hums {
			res := ComputeShelfLife(temp, hum, shelfNow)
			require.GreaterOrEqual(t, res.RemainingDays, 1, "temp=%v hum=%v", temp, hum)
			require.LessOrEqual(t, res.RemainingDays, 10, "temp=%v hum=%v", temp, hum)

			switch {
			case res.RemainingDays == 1:
				assert.Equal(t, ShelfStatusExpired, res.Status)
			case res.RemainingDays == 2:
				assert.Equal(t, ShelfStatusWarning, res.Status)
			default:
				assert.Equal(t, ShelfStatusSafe, res.Status)
			}
		}
	}
}
