package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"posfinance/internal/actor"
)

const pipelineKey = "pipeline-key-0001"

func init() {
	gin.SetMode(gin.TestMode)
}

func parseBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse response body: %v", err)
	}
	return result
}

// pipelineRequest sends GET /reports through PipelineAuthMiddleware and
// echoes back the actor the handler saw.
func pipelineRequest(configured string, headers map[string]string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Use(PipelineAuthMiddleware(configured))
	r.GET("/reports", func(c *gin.Context) {
		a, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"actor_id":   a.UserID,
			"reports":    a.Can(actor.PermReportsRead),
			"budgets":    a.Can(actor.PermBudgetsWrite),
			"categories": a.Can(actor.PermCategoriesWrite),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/reports", http.NoBody)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPipelineAuthMiddleware(t *testing.T) {
	tests := map[string]struct {
		configured string
		headers    map[string]string
		status     int
		code       string
	}{
		"matching key":           {pipelineKey, map[string]string{"X-API-Key": pipelineKey}, http.StatusOK, ""},
		"wrong key":              {pipelineKey, map[string]string{"X-API-Key": "pipeline-key-0002"}, http.StatusUnauthorized, "INVALID_API_KEY"},
		"prefix of key":          {pipelineKey, map[string]string{"X-API-Key": "pipeline-key"}, http.StatusUnauthorized, "INVALID_API_KEY"},
		"no header":              {pipelineKey, nil, http.StatusUnauthorized, "INVALID_API_KEY"},
		"bearer is not a key":    {pipelineKey, map[string]string{"Authorization": "Bearer " + pipelineKey}, http.StatusUnauthorized, "INVALID_API_KEY"},
		"not configured":         {"", map[string]string{"X-API-Key": pipelineKey}, http.StatusServiceUnavailable, "PIPELINE_NOT_CONFIGURED"},
		"not configured, no key": {"", nil, http.StatusServiceUnavailable, "PIPELINE_NOT_CONFIGURED"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rec := pipelineRequest(tt.configured, tt.headers)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}

			body := parseBody(t, rec)
			if tt.code != "" {
				errObj, _ := body["error"].(map[string]interface{})
				if errObj["code"] != tt.code {
					t.Errorf("error code = %v, want %s", errObj["code"], tt.code)
				}
				return
			}

			if body["actor_id"] != PipelineActorID {
				t.Errorf("expected pipeline actor, got %v", body["actor_id"])
			}
			if body["reports"] != true || body["budgets"] != false || body["categories"] != false {
				t.Errorf("expected a read-only reporting actor, got %v", body)
			}
		})
	}
}
