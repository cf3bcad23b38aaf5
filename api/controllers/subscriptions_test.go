package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/opsdeskhq/opsdesk-backend/api/middleware"
	"github.com/opsdeskhq/opsdesk-backend/internal/subscriptions"
	"github.com/opsdeskhq/opsdesk-backend/pkg/db/models"
	pkgerrors "github.com/opsdeskhq/opsdesk-backend/pkg/errors"
	"github.com/opsdeskhq/opsdesk-backend/pkg/logger"
)

type testSubscriptionService struct {
	listFn   func(ctx context.Context, userID uuid.UUID, filter subscriptions.ListFilter) ([]models.Subscription, error)
	getFn    func(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error)
	createFn func(ctx context.Context, userID uuid.UUID, req subscriptions.CreateSubscriptionRequest) (*models.Subscription, error)
	updateFn func(ctx context.Context, userID, id uuid.UUID, req subscriptions.UpdateSubscriptionRequest) (*models.Subscription, error)
	deleteFn func(ctx context.Context, userID, id uuid.UUID) error
}

func (s *testSubscriptionService) List(ctx context.Context, userID uuid.UUID, filter subscriptions.ListFilter) ([]models.Subscription, error) {
	if s.listFn != nil {
		return s.listFn(ctx, userID, filter)
	}
	return nil, nil
}

func (s *testSubscriptionService) Get(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error) {
	if s.getFn != nil {
		return s.getFn(ctx, userID, id)
	}
	return nil, nil
}

func (s *testSubscriptionService) Create(ctx context.Context, userID uuid.UUID, req subscriptions.CreateSubscriptionRequest) (*models.Subscription, error) {
	if s.createFn != nil {
		return s.createFn(ctx, userID, req)
	}
	return nil, nil
}

func (s *testSubscriptionService) Update(ctx context.Context, userID, id uuid.UUID, req subscriptions.UpdateSubscriptionRequest) (*models.Subscription, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, userID, id, req)
	}
	return nil, nil
}

func (s *testSubscriptionService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, userID, id)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func authedRequest(method, target string, body io.Reader, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, body)
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestSubscriptionListPassesFilters(t *testing.T) {
	userID := uuid.New()
	var captured subscriptions.ListFilter
	svc := &testSubscriptionService{
		listFn: func(ctx context.Context, uid uuid.UUID, filter subscriptions.ListFilter) ([]models.Subscription, error) {
			if uid != userID {
				t.Fatalf("unexpected user %s", uid)
			}
			captured = filter
			return []models.Subscription{}, nil
		},
	}

	req := authedRequest(http.MethodGet, "/api/v1/subscriptions?q=figma&status=active&billing_cycle=monthly&category=Design", nil, userID)
	resp := httptest.NewRecorder()
	SubscriptionList(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if captured.Query != "figma" || captured.Status != "active" || captured.BillingCycle != "monthly" || captured.Category != "Design" {
		t.Fatalf("filters not forwarded: %+v", captured)
	}
}

func TestSubscriptionListMissingUserContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/subscriptions", nil)
	resp := httptest.NewRecorder()
	SubscriptionList(&testSubscriptionService{}, testLogger())(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestSubscriptionGetNotFound(t *testing.T) {
	svc := &testSubscriptionService{
		getFn: func(ctx context.Context, userID, id uuid.UUID) (*models.Subscription, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		},
	}

	req := authedRequest(http.MethodGet, "/api/v1/subscriptions/"+uuid.NewString(), nil, uuid.New())
	req = addRouteParam(req, "subscriptionId", uuid.NewString())
	resp := httptest.NewRecorder()
	SubscriptionGet(svc, testLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestSubscriptionGetInvalidID(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/v1/subscriptions/nope", nil, uuid.New())
	req = addRouteParam(req, "subscriptionId", "nope")
	resp := httptest.NewRecorder()
	SubscriptionGet(&testSubscriptionService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSubscriptionCreateSuccess(t *testing.T) {
	userID := uuid.New()
	called := false
	svc := &testSubscriptionService{
		createFn: func(ctx context.Context, uid uuid.UUID, req subscriptions.CreateSubscriptionRequest) (*models.Subscription, error) {
			called = true
			if req.Name != "Figma" || req.Cost != "15.00" || req.BillingCycle != "monthly" {
				t.Fatalf("payload not decoded: %+v", req)
			}
			return &models.Subscription{ID: uuid.New(), UserID: uid, Name: req.Name}, nil
		},
	}

	body := `{"name":"Figma","cost":"15.00","billing_cycle":"monthly","renewal_date":"2026-10-01","status":"active"}`
	req := authedRequest(http.MethodPost, "/api/v1/subscriptions", strings.NewReader(body), userID)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	SubscriptionCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data models.Subscription `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.Name != "Figma" {
		t.Fatalf("unexpected payload %+v", envelope.Data)
	}
}

func TestSubscriptionCreateRejectsInvalidBody(t *testing.T) {
	body := `{"cost":"15.00"}`
	req := authedRequest(http.MethodPost, "/api/v1/subscriptions", strings.NewReader(body), uuid.New())
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	SubscriptionCreate(&testSubscriptionService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSubscriptionDeleteSuccess(t *testing.T) {
	id := uuid.New()
	called := false
	svc := &testSubscriptionService{
		deleteFn: func(ctx context.Context, userID, target uuid.UUID) error {
			called = true
			if target != id {
				t.Fatalf("unexpected id %s", target)
			}
			return nil
		},
	}

	req := authedRequest(http.MethodDelete, "/api/v1/subscriptions/"+id.String(), nil, uuid.New())
	req = addRouteParam(req, "subscriptionId", id.String())
	resp := httptest.NewRecorder()
	SubscriptionDelete(svc, testLogger())(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
}
