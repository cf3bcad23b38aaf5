package history

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	pkgerrors "github.com/opsdeskhq/opsdesk-backend/pkg/errors"
)

type stubRepository struct {
	entries   []models.EquipmentHistory
	appendErr error
}

func (s *stubRepository) Append(ctx context.Context, entry models.EquipmentHistory) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubRepository) ListForEquipment(ctx context.Context, equipmentID uuid.UUID) ([]models.EquipmentHistory, error) {
	var out []models.EquipmentHistory
	for _, e := range s.entries {
		if e.EquipmentID == equipmentID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].ChangedAt.Equal(out[j].ChangedAt) {
			return out[i].ChangedAt.After(out[j].ChangedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out, nil
}

type stubEquipmentFinder struct {
	owned map[uuid.UUID]uuid.UUID // equipment id -> owner
}

func (s *stubEquipmentFinder) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Equipment, error) {
	owner, ok := s.owned[id]
	if !ok || owner != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Equipment{ID: id, UserID: owner}, nil
}

func TestLogAppendsOwnedEquipmentEntry(t *testing.T) {
	userID := uuid.New()
	equipmentID := uuid.New()
	repo := &stubRepository{}
	finder := &stubEquipmentFinder{owned: map[uuid.UUID]uuid.UUID{equipmentID: userID}}
	svc, err := NewService(repo, finder)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	old := "Alice"
	entry, err := svc.Log(context.Background(), userID, LogEntryRequest{
		EquipmentID:  equipmentID.String(),
		FieldChanged: "assigned_to",
		OldValue:     &old,
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if entry.EquipmentID != equipmentID || entry.UserID != userID {
		t.Fatalf("unexpected entry %+v", entry)
	}
	if entry.NewValue != nil {
		t.Fatal("expected nil new value preserved")
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 appended entry, got %d", len(repo.entries))
	}
}

func TestLogRejectsForeignEquipment(t *testing.T) {
	equipmentID := uuid.New()
	repo := &stubRepository{}
	finder := &stubEquipmentFinder{owned: map[uuid.UUID]uuid.UUID{equipmentID: uuid.New()}}
	svc, _ := NewService(repo, finder)

	_, err := svc.Log(context.Background(), uuid.New(), LogEntryRequest{
		EquipmentID:  equipmentID.String(),
		FieldChanged: "condition",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.entries) != 0 {
		t.Fatal("nothing should be appended for foreign equipment")
	}
}

func TestLogRejectsMalformedEquipmentID(t *testing.T) {
	svc, _ := NewService(&stubRepository{}, &stubEquipmentFinder{owned: map[uuid.UUID]uuid.UUID{}})

	_, err := svc.Log(context.Background(), uuid.New(), LogEntryRequest{
		EquipmentID:  "not-a-uuid",
		FieldChanged: "condition",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListForEquipmentNewestFirst(t *testing.T) {
	userID := uuid.New()
	equipmentID := uuid.New()
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubRepository{entries: []models.EquipmentHistory{
		{ID: uuid.New(), EquipmentID: equipmentID, FieldChanged: "condition", ChangedAt: base.Add(-time.Hour)},
		{ID: uuid.New(), EquipmentID: equipmentID, FieldChanged: "assigned_to", ChangedAt: base},
		{ID: uuid.New(), EquipmentID: uuid.New(), FieldChanged: "availability", ChangedAt: base},
	}}
	finder := &stubEquipmentFinder{owned: map[uuid.UUID]uuid.UUID{equipmentID: userID}}
	svc, _ := NewService(repo, finder)

	entries, err := svc.ListForEquipment(context.Background(), userID, equipmentID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].FieldChanged != "assigned_to" || entries[1].FieldChanged != "condition" {
		t.Fatalf("expected newest first, got %v", entries)
	}
}

func TestListForEquipmentScopedToOwner(t *testing.T) {
	equipmentID := uuid.New()
	repo := &stubRepository{}
	finder := &stubEquipmentFinder{owned: map[uuid.UUID]uuid.UUID{equipmentID: uuid.New()}}
	svc, _ := NewService(repo, finder)

	_, err := svc.ListForEquipment(context.Background(), uuid.New(), equipmentID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
