package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS())
	ok := func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) }
	router.GET("/api/events", ok)
	router.PATCH("/api/tasks/:id/status", ok)
	router.GET("/api/projects", ok)
	return router
}

func preflight(router *gin.Engine, path, method, headers string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("OPTIONS", path, nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", method)
	if headers != "" {
		req.Header.Set("Access-Control-Request-Headers", headers)
	}
	router.ServeHTTP(w, req)
	return w
}

func containsFold(list, item string) bool {
	for _, v := range strings.Split(list, ",") {
		if strings.EqualFold(strings.TrimSpace(v), item) {
			return true
		}
	}
	return false
}

func TestCORS_Preflight(t *testing.T) {
	router := corsRouter()

	tests := []struct {
		name    string
		path    string
		method  string
		headers string
		header  string
		want    string
	}{
		{"event stream resume", "/api/events", "GET", "Authorization, Last-Event-ID", "Access-Control-Allow-Headers", "Last-Event-ID"},
		{"event stream auth", "/api/events", "GET", "Authorization, Last-Event-ID", "Access-Control-Allow-Headers", "Authorization"},
		{"task status move", "/api/tasks/t-1/status", "PATCH", "Content-Type, Authorization", "Access-Control-Allow-Methods", "PATCH"},
		{"task status body", "/api/tasks/t-1/status", "PATCH", "Content-Type, Authorization", "Access-Control-Allow-Headers", "Content-Type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := preflight(router, tt.path, tt.method, tt.headers)
			if w.Code != http.StatusNoContent {
				t.Errorf("status = %d, expected %d", w.Code, http.StatusNoContent)
			}
			if got := w.Header().Get(tt.header); !containsFold(got, tt.want) {
				t.Errorf("%s = %q, expected it to contain %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestCORS_PreflightIsCached(t *testing.T) {
	w := preflight(corsRouter(), "/api/events", "GET", "Last-Event-ID")
	if got := w.Header().Get("Access-Control-Max-Age"); got != "43200" {
		t.Errorf("Access-Control-Max-Age = %q, expected %q", got, "43200")
	}
}

func TestCORS_SimpleRequest(t *testing.T) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	corsRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusOK)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Error("Access-Control-Allow-Origin should be set")
	}
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Errorf("Access-Control-Allow-Credentials = %q, expected %q", got, "true")
	}
}
