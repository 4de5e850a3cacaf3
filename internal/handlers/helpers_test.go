package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"posfinance/internal/actor"
	"posfinance/internal/middleware"
	"posfinance/internal/models"
	"posfinance/internal/validator"
)

const (
	testUserID     = "0190f5c2-6d1e-7a3b-9c4d-5e6f7a8b9c0d"
	testCategoryID = "0190f5c2-6d1e-7a3b-9c4d-000000000001"
	testBudgetID   = "0190f5c2-6d1e-7a3b-9c4d-000000000002"
	testItemID     = "0190f5c2-6d1e-7a3b-9c4d-000000000003"
)

// --- mock audit service ---

type auditCall struct {
	UserID     string
	Action     string
	ResourceID string
}

type mockAuditService struct {
	calls    []auditCall
	recentFn func(resourceType, resourceID string, limit int) ([]models.AuditLog, error)
}

func (m *mockAuditService) Log(userID, action, _, resourceID, _ string, _ map[string]interface{}) {
	m.calls = append(m.calls, auditCall{UserID: userID, Action: action, ResourceID: resourceID})
}

func (m *mockAuditService) Recent(resourceType, resourceID string, limit int) ([]models.AuditLog, error) {
	if m.recentFn == nil {
		return nil, nil
	}
	return m.recentFn(resourceType, resourceID, limit)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
}

func injectActor(perms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetActor(c, actor.Actor{UserID: testUserID, Permissions: perms})
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
