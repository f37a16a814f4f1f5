package batch

import (
	"fmt"
	"time"

	"agrosense/models"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

const (
	// shelfBufferDays is the fixed post-start window used by the expiry
	// scan and the dashboard. Both must use the same boundary or their
	// counts drift.
	shelfBufferDays = 2

	expiringSoonWindow = 36 * time.Hour
)

// Freshness is the real-time classification derived from the clock. It is
// never persisted; the stored status field is administrative.
type Freshness string

const (
	FreshnessActive       Freshness = "ACTIVE"
	FreshnessExpiringSoon Freshness = "EXPIRING_SOON"
	FreshnessExpired      Freshness = "EXPIRED"

	// FreshnessInactive covers batches that are temporally fine but whose
	// administrative status is not ACTIVE. The dashboard excludes them
	// from the active tally.
	FreshnessInactive Freshness = "INACTIVE"
)

// expiryWindow is the single shared boundary computation. expired means now
// is past startDate+buffer; soon means the boundary is within 36 hours and
// not yet passed.
func expiryWindow(start, now time.Time) (expired, soon bool) {
	boundary := start.AddDate(0, 0, shelfBufferDays)
	if now.After(boundary) {
		return true, false
	}
	return false, boundary.Sub(now) <= expiringSoonWindow
}

// parseDate parses a YYYY-MM-DD calendar date.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ComputeFreshness classifies b at now. Fails only when startDate is
// missing or not a calendar date.
func ComputeFreshness(b models.Batch, now time.Time) (Freshness, error) {
	start, err := parseDate(b.StartDate)
	if err != nil {
		return "", err
	}
	expired, soon := expiryWindow(start, now)
	switch {
	case expired:
		return FreshnessExpired, nil
	case soon:
		return FreshnessExpiringSoon, nil
	case b.Status == models.BatchStatusActive:
		return FreshnessActive, nil
	default:
		return FreshnessInactive, nil
	}
}
