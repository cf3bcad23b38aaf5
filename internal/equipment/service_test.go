package equipment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	pkgerrors "github.com/opsdeskhq/opsdesk-backend/pkg/errors"
)

type stubRepository struct {
	byID map[uuid.UUID]*models.Equipment
}

func newStubRepository() *stubRepository {
	return &stubRepository{byID: map[uuid.UUID]*models.Equipment{}}
}

func (s *stubRepository) Create(ctx context.Context, dto CreateEquipmentDTO) (*models.Equipment, error) {
	item := dto.ToModel()
	item.ID = uuid.New()
	s.byID[item.ID] = item
	return item, nil
}

func (s *stubRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Equipment, error) {
	item, ok := s.byID[id]
	if !ok || item.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *stubRepository) FindByIDAnyOwner(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	item, ok := s.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *stubRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Equipment, error) {
	var out []models.Equipment
	for _, item := range s.byID {
		if item.UserID == userID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubRepository) Update(ctx context.Context, item *models.Equipment) error {
	s.byID[item.ID] = item
	return nil
}

func (s *stubRepository) Delete(ctx context.Context, userID, id uuid.UUID) (int64, error) {
	item, ok := s.byID[id]
	if !ok || item.UserID != userID {
		return 0, nil
	}
	delete(s.byID, id)
	return 1, nil
}

func validCreateRequest() CreateEquipmentRequest {
	return CreateEquipmentRequest{
		ItemName:     "MacBook Pro",
		Availability: "assigned",
	}
}

func TestCreateRejectsInvalidAvailability(t *testing.T) {
	repo := newStubRepository()
	svc, _ := NewService(repo, nil)

	req := validCreateRequest()
	req.Availability = "lost"
	_, err := svc.Create(context.Background(), uuid.New(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateRejectsNegativeValue(t *testing.T) {
	repo := newStubRepository()
	svc, _ := NewService(repo, nil)

	negative := "-100.00"
	req := validCreateRequest()
	req.Value = &negative
	_, err := svc.Create(context.Background(), uuid.New(), req)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateDispatchesOneEntryPerChangedTrackedField(t *testing.T) {
	repo := newStubRepository()
	writer := &recordingHistoryWriter{}
	recorder := NewAuditRecorder(writer, nil, nil)
	svc, _ := NewService(repo, recorder)

	userID := uuid.New()
	create := validCreateRequest()
	alice := "Alice"
	create.AssignedTo = &alice
	item, err := svc.Create(context.Background(), userID, create)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	bob := "Bob"
	worn := "worn"
	update := UpdateEquipmentRequest{
		ItemName:     item.ItemName,
		AssignedTo:   &bob,
		Condition:    &worn,
		Availability: "repair",
	}
	if _, err := svc.Update(context.Background(), userID, item.ID, update); err != nil {
		t.Fatalf("update: %v", err)
	}
	recorder.Wait()

	if len(writer.entries) != 3 {
		t.Fatalf("expected 3 history entries, got %d", len(writer.entries))
	}
	fields := map[string]bool{}
	for _, e := range writer.entries {
		fields[e.FieldChanged] = true
		if e.EquipmentID != item.ID {
			t.Fatalf("entry bound to wrong equipment %s", e.EquipmentID)
		}
		if e.UserID != userID {
			t.Fatalf("entry bound to wrong user %s", e.UserID)
		}
	}
	for _, want := range []string{FieldAssignedTo, FieldAvailability, FieldCondition} {
		if !fields[want] {
			t.Fatalf("missing entry for %s", want)
		}
	}
}

func TestUpdateWithoutTrackedChangesWritesNothing(t *testing.T) {
	repo := newStubRepository()
	writer := &recordingHistoryWriter{}
	recorder := NewAuditRecorder(writer, nil, nil)
	svc, _ := NewService(repo, recorder)

	userID := uuid.New()
	item, err := svc.Create(context.Background(), userID, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	update := UpdateEquipmentRequest{
		ItemName:     "MacBook Pro 16", // untracked change only
		Availability: string(item.Availability),
	}
	if _, err := svc.Update(context.Background(), userID, item.ID, update); err != nil {
		t.Fatalf("update: %v", err)
	}
	recorder.Wait()

	if len(writer.entries) != 0 {
		t.Fatalf("expected no history entries, got %d", len(writer.entries))
	}
}

func TestUpdateStrangerGetsNotFound(t *testing.T) {
	repo := newStubRepository()
	svc, _ := NewService(repo, nil)

	owner := uuid.New()
	item, err := svc.Create(context.Background(), owner, validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(context.Background(), uuid.New(), item.ID, UpdateEquipmentRequest{
		ItemName:     "X",
		Availability: "storage",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetPublicIgnoresOwner(t *testing.T) {
	repo := newStubRepository()
	svc, _ := NewService(repo, nil)

	item, err := svc.Create(context.Background(), uuid.New(), validCreateRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetPublic(context.Background(), item.ID)
	if err != nil {
		t.Fatalf("public get: %v", err)
	}
	if got.ID != item.ID {
		t.Fatalf("expected %s, got %s", item.ID, got.ID)
	}
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	repo := newStubRepository()
	svc, _ := NewService(repo, nil)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListAppliesFilter(t *testing.T) {
	repo := newStubRepository()
	svc, _ := NewService(repo, nil)

	userID := uuid.New()
	first := validCreateRequest()
	serial := "C02XXXX"
	first.SerialNumber = &serial
	if _, err := svc.Create(context.Background(), userID, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	second := validCreateRequest()
	second.ItemName = "Dell Monitor"
	second.Availability = "storage"
	if _, err := svc.Create(context.Background(), userID, second); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.List(context.Background(), userID, ListFilter{Query: "c02x"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ItemName != "MacBook Pro" {
		t.Fatalf("expected serial match only, got %v", got)
	}

	got, err = svc.List(context.Background(), userID, ListFilter{Availability: "storage"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ItemName != "Dell Monitor" {
		t.Fatalf("expected storage item only, got %v", got)
	}
}
