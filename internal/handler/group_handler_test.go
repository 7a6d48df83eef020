package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/tallyhq/tally-backend/internal/service"
	"github.com/tallyhq/tally-backend/internal/testutil"
)

func newGroupHandler() (*GroupHandler, *testutil.MockGroupRepository) {
	groupRepo := testutil.NewMockGroupRepository()
	return NewGroupHandler(service.NewGroupService(groupRepo)), groupRepo
}

func TestCreateGroup_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newGroupHandler()

	body := `{"name":"Flat 12","currency":"EUR","chargePerPeriod":"100.00"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateGroup(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rec.Code)
	}

	var resp GroupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Name != "Flat 12" {
		t.Errorf("Expected name 'Flat 12', got %s", resp.Name)
	}
	if resp.ChargePerPeriod == nil || *resp.ChargePerPeriod != "100.00" {
		t.Errorf("Expected chargePerPeriod '100.00', got %v", resp.ChargePerPeriod)
	}
}

func TestCreateGroup_DefaultCurrency(t *testing.T) {
	e := echo.New()
	handler, _ := newGroupHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups", strings.NewReader(`{"name":"Trip"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateGroup(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var resp GroupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Currency != "EUR" {
		t.Errorf("Expected default currency EUR, got %s", resp.Currency)
	}
}

func TestCreateGroup_MissingName(t *testing.T) {
	e := echo.New()
	handler, _ := newGroupHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups", strings.NewReader(`{"currency":"USD"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateGroup(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem details: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation error type, got %s", problem.Type)
	}
}

func TestCreateGroup_BadChargeAmount(t *testing.T) {
	e := echo.New()
	handler, _ := newGroupHandler()

	body := `{"name":"Flat","chargePerPeriod":"100.555"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.CreateGroup(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for sub-cent amount, got %d", rec.Code)
	}
}

func TestGetGroup_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newGroupHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	if err := handler.GetGroup(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}

func TestGetGroup_InvalidID(t *testing.T) {
	e := echo.New()
	handler, _ := newGroupHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	if err := handler.GetGroup(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
