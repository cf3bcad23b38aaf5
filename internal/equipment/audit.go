package equipment

import (
	"context"
	"sync"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	"github.com/opsdeskhq/opsdesk-backend/pkg/logger"
	"github.com/opsdeskhq/opsdesk-backend/pkg/metrics"
)

// Audited field names as they appear in history rows.
const (
	FieldAssignedTo   = "assigned_to"
	FieldAvailability = "availability"
	FieldCondition    = "condition"
)

type historyWriter interface {
	Append(ctx context.Context, entry models.EquipmentHistory) error
}

// AuditRecorder appends history rows for tracked field changes. Writes are
// dispatched on goroutines after the update commits; a failed write is
// logged and counted, never surfaced to the caller and never retried.
type AuditRecorder struct {
	writer  historyWriter
	metrics *metrics.AuditTrailMetrics
	logg    *logger.Logger
	wg      sync.WaitGroup
}

// NewAuditRecorder builds a recorder. Metrics and logger may be nil.
func NewAuditRecorder(writer historyWriter, m *metrics.AuditTrailMetrics, logg *logger.Logger) *AuditRecorder {
	return &AuditRecorder{writer: writer, metrics: m, logg: logg}
}

// Dispatch fires one goroutine per entry. The write outlives the request
// context so a client disconnect cannot drop the audit row.
func (a *AuditRecorder) Dispatch(ctx context.Context, entries []models.EquipmentHistory) {
	if a == nil || a.writer == nil {
		return
	}
	detached := context.WithoutCancel(ctx)
	for _, entry := range entries {
		a.wg.Add(1)
		go func(entry models.EquipmentHistory) {
			defer a.wg.Done()
			if err := a.writer.Append(detached, entry); err != nil {
				a.metrics.IncFailure(entry.FieldChanged)
				if a.logg != nil {
					logCtx := a.logg.WithFields(detached, map[string]any{
						"equipment_id":  entry.EquipmentID.String(),
						"field_changed": entry.FieldChanged,
					})
					a.logg.Error(logCtx, "audit.write_failed", err)
				}
				return
			}
			a.metrics.IncWrite(entry.FieldChanged)
		}(entry)
	}
}

// Wait blocks until all dispatched writes settle. Used in tests and during
// shutdown drain.
func (a *AuditRecorder) Wait() {
	if a == nil {
		return
	}
	a.wg.Wait()
}

// ComputeAuditDiff compares the tracked fields of two equipment snapshots and
// returns one history entry per changed field. Only assigned_to,
// availability, and condition are tracked.
func ComputeAuditDiff(before, after *models.Equipment) []models.EquipmentHistory {
	if before == nil || after == nil {
		return nil
	}

	var entries []models.EquipmentHistory
	appendEntry := func(field string, oldVal, newVal *string) {
		entries = append(entries, models.EquipmentHistory{
			EquipmentID:  after.ID,
			UserID:       after.UserID,
			FieldChanged: field,
			OldValue:     oldVal,
			NewValue:     newVal,
		})
	}

	if !equalOptional(before.AssignedTo, after.AssignedTo) {
		appendEntry(FieldAssignedTo, copyOptional(before.AssignedTo), copyOptional(after.AssignedTo))
	}
	if before.Availability != after.Availability {
		appendEntry(FieldAvailability, stringPtr(string(before.Availability)), stringPtr(string(after.Availability)))
	}
	if !equalOptional(before.Condition, after.Condition) {
		appendEntry(FieldCondition, copyOptional(before.Condition), copyOptional(after.Condition))
	}

	return entries
}

func equalOptional(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyOptional(value *string) *string {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}

func stringPtr(value string) *string {
	return &value
}
