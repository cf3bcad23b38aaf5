package equipment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
)

func auditStrPtr(s string) *string { return &s }

func TestComputeAuditDiffTracksExactlyChangedFields(t *testing.T) {
	before := &models.Equipment{
		ID:           uuid.New(),
		UserID:       uuid.New(),
		AssignedTo:   auditStrPtr("Alice"),
		Condition:    auditStrPtr("good"),
		Availability: "assigned",
	}
	after := *before
	after.AssignedTo = auditStrPtr("Bob")
	after.Availability = "storage"

	entries := ComputeAuditDiff(before, &after)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	byField := map[string]models.EquipmentHistory{}
	for _, e := range entries {
		byField[e.FieldChanged] = e
	}

	assigned, ok := byField[FieldAssignedTo]
	if !ok {
		t.Fatal("expected assigned_to entry")
	}
	if assigned.OldValue == nil || *assigned.OldValue != "Alice" {
		t.Fatalf("unexpected old value %v", assigned.OldValue)
	}
	if assigned.NewValue == nil || *assigned.NewValue != "Bob" {
		t.Fatalf("unexpected new value %v", assigned.NewValue)
	}

	availability, ok := byField[FieldAvailability]
	if !ok {
		t.Fatal("expected availability entry")
	}
	if *availability.OldValue != "assigned" || *availability.NewValue != "storage" {
		t.Fatalf("unexpected availability transition %v -> %v", availability.OldValue, availability.NewValue)
	}

	if _, ok := byField[FieldCondition]; ok {
		t.Fatal("condition did not change, no entry expected")
	}
}

func TestComputeAuditDiffNoChangesYieldsNothing(t *testing.T) {
	before := &models.Equipment{
		ID:           uuid.New(),
		AssignedTo:   auditStrPtr("Alice"),
		Condition:    auditStrPtr("good"),
		Availability: "assigned",
	}
	after := *before

	if entries := ComputeAuditDiff(before, &after); len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestComputeAuditDiffIgnoresUntrackedFields(t *testing.T) {
	before := &models.Equipment{
		ID:           uuid.New(),
		ItemName:     "MacBook Pro",
		SerialNumber: auditStrPtr("C02XXXX"),
		Availability: "assigned",
	}
	after := *before
	after.ItemName = "MacBook Pro 16"
	after.SerialNumber = auditStrPtr("C02YYYY")
	after.Category = auditStrPtr("Laptops")

	if entries := ComputeAuditDiff(before, &after); len(entries) != 0 {
		t.Fatalf("untracked fields must not produce entries, got %d", len(entries))
	}
}

func TestComputeAuditDiffNilTransitions(t *testing.T) {
	before := &models.Equipment{ID: uuid.New(), Availability: "storage"}
	after := *before
	after.AssignedTo = auditStrPtr("Alice")

	entries := ComputeAuditDiff(before, &after)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].OldValue != nil {
		t.Fatalf("expected nil old value, got %v", *entries[0].OldValue)
	}
	if entries[0].NewValue == nil || *entries[0].NewValue != "Alice" {
		t.Fatalf("unexpected new value %v", entries[0].NewValue)
	}
}

type recordingHistoryWriter struct {
	mu      sync.Mutex
	entries []models.EquipmentHistory
	err     error
}

func (r *recordingHistoryWriter) Append(ctx context.Context, entry models.EquipmentHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, entry)
	return nil
}

func TestDispatchWritesAllEntries(t *testing.T) {
	writer := &recordingHistoryWriter{}
	recorder := NewAuditRecorder(writer, nil, nil)

	entries := []models.EquipmentHistory{
		{EquipmentID: uuid.New(), FieldChanged: FieldAssignedTo},
		{EquipmentID: uuid.New(), FieldChanged: FieldCondition},
	}
	recorder.Dispatch(context.Background(), entries)
	recorder.Wait()

	if len(writer.entries) != 2 {
		t.Fatalf("expected 2 writes, got %d", len(writer.entries))
	}
}

func TestDispatchSwallowsWriteErrors(t *testing.T) {
	writer := &recordingHistoryWriter{err: errors.New("db down")}
	recorder := NewAuditRecorder(writer, nil, nil)

	recorder.Dispatch(context.Background(), []models.EquipmentHistory{
		{EquipmentID: uuid.New(), FieldChanged: FieldAvailability},
	})
	// Wait must return even though every write failed; nothing panics and
	// nothing is retried.
	recorder.Wait()

	if len(writer.entries) != 0 {
		t.Fatalf("expected no successful writes, got %d", len(writer.entries))
	}
}

func TestDispatchSurvivesCancelledRequestContext(t *testing.T) {
	writer := &recordingHistoryWriter{}
	recorder := NewAuditRecorder(writer, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	recorder.Dispatch(ctx, []models.EquipmentHistory{
		{EquipmentID: uuid.New(), FieldChanged: FieldCondition},
	})
	recorder.Wait()

	if len(writer.entries) != 1 {
		t.Fatalf("expected write despite cancelled context, got %d", len(writer.entries))
	}
}
