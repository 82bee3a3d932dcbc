package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestIssueParseRoundTrip(t *testing.T) {
	t.Parallel()

	manager := NewManager("test-secret")
	token, err := manager.Issue("alice", "provider-tok")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	sess, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if sess.UserID != "alice" || sess.ProviderToken != "provider-tok" {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewManager("secret-a").Issue("alice", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewManager("secret-b").Parse(token); err == nil {
		t.Fatalf("expected signature verification failure")
	}
}

func TestMiddleware(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	manager := NewManager("test-secret")
	cache := NewTokenCache()

	router := gin.New()
	var seen Session
	router.GET("/ping", Middleware(manager, cache), func(c *gin.Context) {
		seen = FromContext(c)
		c.Status(http.StatusOK)
	})

	// Missing header.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	// Garbage token.
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	// Valid token: session lands in the context, provider token in the cache.
	token, err := manager.Issue("alice", "provider-tok")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen.UserID != "alice" || seen.ProviderToken != "provider-tok" {
		t.Fatalf("unexpected session: %+v", seen)
	}
	if cached, ok := cache.Get("alice"); !ok || cached != "provider-tok" {
		t.Fatalf("token cache not refreshed: %q %v", cached, ok)
	}
}
