package batch

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"agrosense/models"
)

// DefaultGrowthDays is the expected spawn-to-harvest duration when the
// caller does not supply one.
const DefaultGrowthDays = 90

// harvestBufferDays pads the persisted expiry past the expected harvest.
// This static growth-cycle estimate is intentionally distinct from the
// environment-sensitive ComputeShelfLife formula.
const harvestBufferDays = 2

// Engine implements the batch lifecycle: it derives expiry dates on write,
// validates stage values, appends audit entries, and classifies batches
// against the clock. All state lives behind the injected Store; the clock
// is injected so derivations are replayable.
type Engine struct {
	store Store
	now   func() time.Time
}

// NewEngine returns an engine over store. A nil clock defaults to time.Now.
func NewEngine(store Store, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{store: store, now: now}
}

// deriveExpiry computes harvestDate = start + growthDays and
// expiryDate = harvestDate + harvestBufferDays, both as wire-format dates.
func deriveExpiry(start time.Time, growthDays int) (harvestDate, expiryDate string) {
	h := start.AddDate(0, 0, growthDays)
	return h.Format(DateLayout), h.AddDate(0, 0, harvestBufferDays).Format(DateLayout)
}

// Create registers a new cultivation batch. batchID and startDate are
// required; growthDays nil means DefaultGrowthDays.
func (e *Engine) Create(ctx context.Context, batchID, startDate string, growthDays *int) (*models.Batch, error) {
	if batchID == "" {
		return nil, validationErrorf("batchId is required")
	}
	if startDate == "" {
		return nil, validationErrorf("startDate is required")
	}
	start, err := parseDate(startDate)
	if err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	days := DefaultGrowthDays
	if growthDays != nil {
		if *growthDays < 0 {
			return nil, validationErrorf("growthDays must be >= 0")
		}
		days = *growthDays
	}

	harvest, expiry := deriveExpiry(start, days)
	b := &models.Batch{
		BatchID:     batchID,
		StartDate:   startDate,
		GrowthDays:  days,
		HarvestDate: harvest,
		ExpiryDate:  expiry,
		Status:      models.BatchStatusActive,
		CreatedAt:   e.now(),
	}
	if err := e.store.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Get returns one batch by id.
func (e *Engine) Get(ctx context.Context, batchID string) (*models.Batch, error) {
	return e.store.FindByID(ctx, batchID)
}

// List returns all batches.
func (e *Engine) List(ctx context.Context) ([]models.Batch, error) {
	return e.store.FindAll(ctx)
}

// Update carries the recognized mutable fields of a batch. Nil means
// "leave unchanged". expiryDate is never settable: it is re-derived
// whenever startDate or growthDays moves.
type Update struct {
	BatchID    *string
	StartDate  *string
	Status     *models.BatchStatus
	Stage      *models.Stage
	GrowthDays *int
}

// Update applies a partial edit to an existing batch and returns the
// updated record.
func (e *Engine) Update(ctx context.Context, batchID string, upd Update) (*models.Batch, error) {
	existing, err := e.store.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.BatchID != nil && *upd.BatchID != "" {
		fields["batchId"] = *upd.BatchID
	}
	if upd.Status != nil {
		if !models.ValidBatchStatus(*upd.Status) {
			return nil, validationErrorf("invalid status %q", *upd.Status)
		}
		fields["status"] = *upd.Status
	}
	if upd.Stage != nil {
		if !models.ValidStage(*upd.Stage) {
			return nil, validationErrorf("invalid stage %q", *upd.Stage)
		}
		fields["stage"] = *upd.Stage
	}

	if upd.StartDate != nil || upd.GrowthDays != nil {
		// Re-resolve the untouched half of the formula from the stored
		// record, then re-derive harvest and expiry.
		startDate := existing.StartDate
		if upd.StartDate != nil {
			startDate = *upd.StartDate
		}
		days := existing.GrowthDays
		if upd.GrowthDays != nil {
			if *upd.GrowthDays < 0 {
				return nil, validationErrorf("growthDays must be >= 0")
			}
			days = *upd.GrowthDays
		}
		start, err := parseDate(startDate)
		if err != nil {
			return nil, &ValidationError{Msg: err.Error()}
		}
		harvest, expiry := deriveExpiry(start, days)
		fields["startDate"] = startDate
		fields["growthDays"] = days
		fields["harvestDate"] = harvest
		fields["expiryDate"] = expiry
	}

	if len(fields) == 0 {
		return nil, validationErrorf("nothing to update")
	}
	fields["lastUpdated"] = e.now()

	matched, err := e.store.UpdateFields(ctx, batchID, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	id := batchID
	if upd.BatchID != nil && *upd.BatchID != "" {
		id = *upd.BatchID
	}
	return e.store.FindByID(ctx, id)
}

// TransitionStage moves a batch to newStage and records the transition in
// the maintenance log. Any stage is reachable from any other; only
// membership in the five named values is checked.
func (e *Engine) TransitionStage(ctx context.Context, batchID string, newStage models.Stage, notes string) (*models.Batch, error) {
	if !models.ValidStage(newStage) {
		return nil, validationErrorf("invalid stage %q", newStage)
	}

	now := e.now()
	matched, err := e.store.UpdateFields(ctx, batchID, map[string]any{
		"stage":       newStage,
		"lastUpdated": now,
	})
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	entry := models.MaintenanceLog{
		Timestamp: now,
		Action:    fmt.Sprintf("Stage updated to %s", newStage),
		Type:      models.LogTypeStageUpdate,
		Value:     string(newStage),
		Notes:     notes,
	}
	if _, err := e.store.PushLog(ctx, batchID, entry); err != nil {
		return nil, err
	}
	return e.store.FindByID(ctx, batchID)
}

// LogMaintenance appends a maintenance entry (watering, misting, substrate
// change, ...) without touching stage or status.
func (e *Engine) LogMaintenance(ctx context.Context, batchID, action, value, notes string) (*models.Batch, error) {
	if action == "" {
		return nil, validationErrorf("maintenance type is required")
	}

	now := e.now()
	matched, err := e.store.UpdateFields(ctx, batchID, map[string]any{
		"lastUpdated": now,
	})
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	entry := models.MaintenanceLog{
		Timestamp: now,
		Action:    action,
		Type:      models.LogTypeMaintenance,
		Value:     value,
		Notes:     notes,
	}
	if _, err := e.store.PushLog(ctx, batchID, entry); err != nil {
		return nil, err
	}
	return e.store.FindByID(ctx, batchID)
}

// RecordHarvest completes a batch: stage becomes COMPLETED, the yield and
// quality score are stored once, and a harvest entry lands in the log.
// actualYield is mandatory; without it nothing is mutated.
func (e *Engine) RecordHarvest(ctx context.Context, batchID string, actualYield, qualityScore *float64, notes string) (*models.Batch, error) {
	if actualYield == nil {
		return nil, validationErrorf("actualYield is required")
	}

	now := e.now()
	fields := map[string]any{
		"stage":       models.StageCompleted,
		"actualYield": *actualYield,
		"lastUpdated": now,
	}
	if qualityScore != nil {
		fields["qualityScore"] = *qualityScore
	}
	matched, err := e.store.UpdateFields(ctx, batchID, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	entry := models.MaintenanceLog{
		Timestamp: now,
		Action:    "Harvest recorded",
		Type:      models.LogTypeHarvest,
		Value:     strconv.FormatFloat(*actualYield, 'f', -1, 64),
		Notes:     notes,
	}
	if _, err := e.store.PushLog(ctx, batchID, entry); err != nil {
		return nil, err
	}
	return e.store.FindByID(ctx, batchID)
}

// UpdateEnvironment overwrites the batch's last-known growing conditions.
// Snapshots are not historical events, so nothing is appended to the log.
func (e *Engine) UpdateEnvironment(ctx context.Context, batchID string, temperature, humidity float64, co2Level, lightLevel *float64) (*models.Batch, error) {
	snap := models.EnvironmentSnapshot{
		Temperature: temperature,
		Humidity:    humidity,
		CO2Level:    co2Level,
		LightLevel:  lightLevel,
		RecordedAt:  e.now(),
	}
	matched, err := e.store.UpdateFields(ctx, batchID, map[string]any{
		"currentEnvironment": snap,
		"lastUpdated":        snap.RecordedAt,
	})
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}
	return e.store.FindByID(ctx, batchID)
}

// Delete irreversibly removes a batch.
func (e *Engine) Delete(ctx context.Context, batchID string) error {
	deleted, err := e.store.Delete(ctx, batchID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpiryReport partitions the fleet by the fixed 2-day buffer.
type ExpiryReport struct {
	Expired      []models.Batch `json:"expired"`
	ExpiringSoon []models.Batch `json:"expiringSoon"`
}

// CheckExpiry scans every batch and buckets it as expired or expiring soon
// at now. Batches without a parsable startDate are left out of both lists.
func (e *Engine) CheckExpiry(ctx context.Context, now time.Time) (*ExpiryReport, error) {
	batches, err := e.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	report := &ExpiryReport{
		Expired:      []models.Batch{},
		ExpiringSoon: []models.Batch{},
	}
	for _, b := range batches {
		start, err := parseDate(b.StartDate)
		if err != nil {
			continue
		}
		expired, soon := expiryWindow(start, now)
		switch {
		case expired:
			report.Expired = append(report.Expired, b)
		case soon:
			report.ExpiringSoon = append(report.ExpiringSoon, b)
		}
	}
	return report, nil
}
