package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/liguoqinjim/china-bean-importers/internal/config"
	"github.com/liguoqinjim/china-bean-importers/internal/models"
)

func setupTestApp() *fiber.App {
	cfg := &config.Config{
		CardAccounts: []models.CardAccountGroup{
			{
				Prefix: "Assets",
				Banks:  []models.CardBank{{Name: "CMB", Numbers: []string{"1234"}}},
			},
		},
		DetailMappings: []models.ClassificationRule{
			{
				NarrationKeywords:  []string{"超市"},
				DestinationAccount: "Expenses:Groceries",
			},
		},
		UnknownExpenseAccount: "Expenses:Unknown",
		UnknownIncomeAccount:  "Income:Unknown",
	}
	return NewServer(cfg, zerolog.Nop()).App()
}

func postImport(t *testing.T, app *fiber.App, body ImportRequest) (int, ImportResponse) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest("POST", "/api/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var result ImportResponse
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, result
}

func TestHealthEndpoint(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var result map[string]string
	if err := json.Unmarshal(body, &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("expected status=ok, got %q", result["status"])
	}
	if result["engine"] != "fiber" {
		t.Errorf("expected engine=fiber, got %q", result["engine"])
	}
}

func TestImportEndpoint(t *testing.T) {
	app := setupTestApp()

	status, result := postImport(t, app, ImportRequest{
		Owner:      "张三",
		CardNumber: "6214832000001234",
		Rows: []models.Row{
			{Fields: []string{"2023-01-05", "人民币", "-100.00", "900.00", "超市消费", "家乐福"}, Line: 1},
		},
	})
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.CardAccount != "Assets:CMB:1234" {
		t.Errorf("got card account %q", result.CardAccount)
	}
	if result.Count != 1 || len(result.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got count=%d len=%d", result.Count, len(result.Transactions))
	}
	txn := result.Transactions[0]
	if txn.Postings[1].Account != "Expenses:Groceries" {
		t.Errorf("posting 2 account %q", txn.Postings[1].Account)
	}
}

func TestImportEndpointValidation(t *testing.T) {
	app := setupTestApp()

	row := models.Row{
		Fields: []string{"2023-01-05", "人民币", "-100.00", "900.00", "超市消费", "家乐福"},
		Line:   1,
	}
	tests := []struct {
		name   string
		req    ImportRequest
		status int
	}{
		{
			name:   "missing owner",
			req:    ImportRequest{CardNumber: "1234", Rows: []models.Row{row}},
			status: fiber.StatusBadRequest,
		},
		{
			name:   "missing card number",
			req:    ImportRequest{Owner: "张三", Rows: []models.Row{row}},
			status: fiber.StatusBadRequest,
		},
		{
			name:   "no rows",
			req:    ImportRequest{Owner: "张三", CardNumber: "1234"},
			status: fiber.StatusBadRequest,
		},
		{
			name:   "unsupported kind",
			req:    ImportRequest{Kind: "hsbc", Owner: "张三", CardNumber: "1234", Rows: []models.Row{row}},
			status: fiber.StatusBadRequest,
		},
		{
			name:   "unknown card",
			req:    ImportRequest{Owner: "张三", CardNumber: "9999", Rows: []models.Row{row}},
			status: fiber.StatusUnprocessableEntity,
		},
		{
			name: "bad row shape",
			req: ImportRequest{Owner: "张三", CardNumber: "1234", Rows: []models.Row{
				{Fields: []string{"2023-01-05"}, Line: 1},
			}},
			status: fiber.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, result := postImport(t, app, tt.req)
			if status != tt.status {
				t.Errorf("expected %d, got %d", tt.status, status)
			}
			if result.Success {
				t.Error("expected success=false")
			}
			if result.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestImportEndpointBadJSON(t *testing.T) {
	app := setupTestApp()

	req := httptest.NewRequest("POST", "/api/import", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}
