package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/tallyhq/tally-backend/internal/domain"
	"github.com/tallyhq/tally-backend/internal/service"
	"github.com/tallyhq/tally-backend/internal/testutil"
)

func newExpenseHandlerFixture() (*ExpenseHandler, *domain.Group, []*domain.Participant) {
	groupRepo := testutil.NewMockGroupRepository()
	partRepo := testutil.NewMockParticipantRepository()
	categoryRepo := testutil.NewMockCategoryRepository()
	expenseRepo := testutil.NewMockExpenseRepository()

	group := groupRepo.AddGroup(&domain.Group{Name: "Flat 12", Currency: "EUR"})
	one := decimal.NewFromInt(1)
	participants := []*domain.Participant{
		partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Alice", Weight: one}),
		partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Bob", Weight: one}),
		partRepo.AddParticipant(&domain.Participant{GroupID: group.ID, DisplayName: "Carol", Weight: one}),
	}

	svc := service.NewExpenseService(expenseRepo, partRepo, categoryRepo, groupRepo)
	return NewExpenseHandler(svc), group, participants
}

func TestCreateExpense_EqualSplit(t *testing.T) {
	e := echo.New()
	handler, group, participants := newExpenseHandlerFixture()

	body := `{"description":"Groceries","amount":"1.00","payerId":"` + participants[0].ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups/"+group.ID.String()+"/expenses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(group.ID.String())

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp ExpenseResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Amount != "1.00" {
		t.Errorf("Expected amount '1.00', got %s", resp.Amount)
	}
	if len(resp.Shares) != 3 {
		t.Fatalf("Expected 3 shares, got %d", len(resp.Shares))
	}
	// 100 cents over three people: 34 + 33 + 33.
	if resp.Shares[0].Amount != "0.34" {
		t.Errorf("Expected first share '0.34', got %s", resp.Shares[0].Amount)
	}
	if resp.Shares[1].Amount != "0.33" || resp.Shares[2].Amount != "0.33" {
		t.Errorf("Expected remaining shares '0.33', got %s and %s", resp.Shares[1].Amount, resp.Shares[2].Amount)
	}
}

func TestCreateExpense_ManualSplitMismatch(t *testing.T) {
	e := echo.New()
	handler, group, participants := newExpenseHandlerFixture()

	body := `{
		"description": "Dinner",
		"amount": "50.00",
		"payerId": "` + participants[0].ID.String() + `",
		"splitType": "manual",
		"manualAmounts": {
			"` + participants[0].ID.String() + `": "20.00",
			"` + participants[1].ID.String() + `": "18.00",
			"` + participants[2].ID.String() + `": "11.00"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups/"+group.ID.String()+"/expenses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(group.ID.String())

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for share mismatch, got %d", rec.Code)
	}
}

func TestCreateExpense_SubCentAmount(t *testing.T) {
	e := echo.New()
	handler, group, participants := newExpenseHandlerFixture()

	body := `{"description":"Odd","amount":"1.001","payerId":"` + participants[0].ID.String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups/"+group.ID.String()+"/expenses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(group.ID.String())

	if err := handler.CreateExpense(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for sub-cent amount, got %d", rec.Code)
	}
}

func TestListExpenses_InvalidPage(t *testing.T) {
	e := echo.New()
	handler, group, _ := newExpenseHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups/"+group.ID.String()+"/expenses?page=0", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(group.ID.String())

	if err := handler.ListExpenses(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
