package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"posfinance/internal/actor"
	"posfinance/internal/config"
	"posfinance/internal/logger"
	"posfinance/internal/middleware"
	"posfinance/internal/models"
	"posfinance/internal/testutil"
)

const (
	flowSecret = "flow-secret"
	flowAPIKey = "flow-api-key"
	flowUserID = "0190f5c2-6d1e-7a3b-9c4d-5e6f7a8b9c0d"
)

// testApp holds the full application stack for flow tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

// setupApp creates the router over an isolated in-memory SQLite database.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	cfg := &config.Config{JWTSecret: flowSecret, PipelineAPIKey: flowAPIKey}
	return &testApp{DB: db, Router: NewRouter(db, cfg)}
}

// token issues an access token for the flow user with perms.
func token(t *testing.T, perms ...string) string {
	t.Helper()
	tok, err := middleware.GenerateAccessToken(actor.Actor{UserID: flowUserID, Permissions: perms}, flowSecret, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return tok
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	app := setupApp(t)

	rec := app.request("GET", "/api/health", "", "")
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}
	if parseJSON(t, rec)["status"] != "ok" {
		t.Error("expected status ok")
	}
}

func TestBudgetFlow_RentFullySpent(t *testing.T) {
	app := setupApp(t)
	admin := token(t, actor.PermAll)

	// Step 1: Create the Rent category
	rec := app.request("POST", "/api/v1/categories", `{"name":"Rent","color":"#336699"}`, admin)
	expectStatus(t, rec, http.StatusCreated)
	categoryID := parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)

	// Step 2: Create a January budget with a Rent line of 500
	rec = app.request("POST", "/api/v1/budgets", fmt.Sprintf(
		`{"name":"January","type":"monthly","start_date":"2024-01-01","end_date":"2024-01-31","total_amount":"500",
		  "items":[{"category_id":%q,"name":"Rent","budgeted_amount":"500"}]}`, categoryID), admin)
	expectStatus(t, rec, http.StatusCreated)
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := budget["id"].(string)
	items := budget["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	itemID := items[0].(map[string]interface{})["id"].(string)

	// Step 3: Spend the whole line
	rec = app.request("POST", "/api/v1/budgets/"+budgetID+"/transactions", fmt.Sprintf(
		`{"budget_item_id":%q,"amount":"500","transaction_date":"2024-01-15","description":"January rent"}`, itemID), admin)
	expectStatus(t, rec, http.StatusCreated)

	// Step 4: Budget shows no variance
	rec = app.request("GET", "/api/v1/budgets/"+budgetID, "", admin)
	expectStatus(t, rec, http.StatusOK)
	detail := parseJSON(t, rec)
	b := detail["budget"].(map[string]interface{})
	if b["total_actual_amount"] != "500" || b["total_budget_amount"] != "500" {
		t.Errorf("unexpected totals %v / %v", b["total_budget_amount"], b["total_actual_amount"])
	}
	variance := detail["variance"].(map[string]interface{})
	if variance["amount"] != "0" {
		t.Errorf("expected variance 0, got %v", variance["amount"])
	}
	if variance["percentage"].(float64) != 0 {
		t.Errorf("expected variance percentage 0, got %v", variance["percentage"])
	}

	// Step 5: The category is now in use and can only be deactivated
	rec = app.request("DELETE", "/api/v1/categories/"+categoryID, "", admin)
	expectStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["outcome"] != "soft_deactivated" {
		t.Errorf("expected soft deactivation of a used category")
	}

	// Step 6: Ledger lists the entry and reconciles
	rec = app.request("GET", "/api/v1/budgets/"+budgetID+"/transactions", "", admin)
	expectStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["total_items"].(float64) != 1 {
		t.Errorf("expected 1 transaction")
	}
	rec = app.request("GET", "/api/v1/budgets/"+budgetID+"/reconciliation", "", admin)
	expectStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["balanced"] != true {
		t.Errorf("expected a balanced budget")
	}

	// Every mutation is audited
	var audits int64
	app.DB.Model(&models.AuditLog{}).Where("user_id = ?", flowUserID).Count(&audits)
	if audits != 4 {
		t.Errorf("expected 4 audit entries, got %d", audits)
	}

	rec = app.request("GET", "/api/v1/budgets/"+budgetID+"/audit", "", admin)
	expectStatus(t, rec, http.StatusOK)
	trail, _ := parseJSON(t, rec)["entries"].([]interface{})
	if len(trail) != 1 || trail[0].(map[string]interface{})["action"] != "CREATE_BUDGET" {
		t.Errorf("unexpected budget audit trail %v", trail)
	}
}

func TestCategoryFlow_CycleRejected(t *testing.T) {
	app := setupApp(t)
	admin := token(t, actor.PermCategoriesWrite)

	create := func(body string) string {
		rec := app.request("POST", "/api/v1/categories", body, admin)
		expectStatus(t, rec, http.StatusCreated)
		return parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)
	}
	a := create(`{"name":"A"}`)
	b := create(fmt.Sprintf(`{"name":"B","parent_id":%q}`, a))
	c := create(fmt.Sprintf(`{"name":"C","parent_id":%q}`, b))

	rec := app.request("PUT", "/api/v1/categories/"+a, fmt.Sprintf(`{"parent_id":%q}`, c), admin)
	expectStatus(t, rec, http.StatusBadRequest)
	if parseJSON(t, rec)["error"].(map[string]interface{})["code"] != "CATEGORY_CYCLE" {
		t.Errorf("expected CATEGORY_CYCLE")
	}

	rec = app.request("GET", "/api/v1/categories/tree", "", admin)
	expectStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["count"].(float64) != 3 {
		t.Errorf("expected 3 categories in the tree")
	}
}

func TestAuthorization(t *testing.T) {
	app := setupApp(t)
	reader := token(t, actor.PermReportsRead)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		status int
	}{
		{"no token", "GET", "/api/v1/budgets", "", "", http.StatusUnauthorized},
		{"reader cannot create budgets", "POST", "/api/v1/budgets", `{}`, reader, http.StatusForbidden},
		{"reader cannot create categories", "POST", "/api/v1/categories", `{}`, reader, http.StatusForbidden},
		{"reader lists budgets", "GET", "/api/v1/budgets", "", reader, http.StatusOK},
		{"reader runs reports", "GET", "/api/v1/reports/cash_flow", "", reader, http.StatusOK},
		{"writer without report permission", "GET", "/api/v1/reports/tax", "", token(t, actor.PermBudgetsWrite), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := app.request(tt.method, tt.path, tt.body, tt.token)
			expectStatus(t, rec, tt.status)
		})
	}
}

func TestPipelineReports(t *testing.T) {
	app := setupApp(t)

	req := httptest.NewRequest("GET", "/api/v1/pipeline/reports/profit_loss?period=year", http.NoBody)
	req.Header.Set("X-API-Key", flowAPIKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusOK)
	if parseJSON(t, rec)["kind"] != "profit_loss" {
		t.Errorf("expected a profit_loss report")
	}

	req = httptest.NewRequest("GET", "/api/v1/pipeline/reports/comparative", http.NoBody)
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	expectStatus(t, rec, http.StatusUnauthorized)
}
