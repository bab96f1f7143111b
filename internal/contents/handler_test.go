package contents

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"content-backend/internal/analysis"
)

func setupContentsRouter(t *testing.T, userID string) (*gin.Engine, *MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := NewMemoryRepo()
	svc := NewService(repo, newStubAnalyzer(analysis.Result{
		Summary:         "Summary.",
		Sentiment:       analysis.SentimentNeutral,
		SummarySource:   analysis.SourceFallback,
		SentimentSource: analysis.SourceFallback,
	}))

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router, repo
}

func TestCreateContentEndpoint(t *testing.T) {
	router, _ := setupContentsRouter(t, "user-1")

	body, _ := json.Marshal(map[string]string{"text": "Some text."})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contents", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created Content
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected content id in response")
	}
	if created.Summary != nil || created.Sentiment != nil {
		t.Fatalf("expected null analysis fields at create time, got %+v", created)
	}
}

func TestCreateContentEndpointRejectsEmptyText(t *testing.T) {
	router, _ := setupContentsRouter(t, "user-1")

	body, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contents", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resp.Code)
	}
}

func TestGetContentEndpoint(t *testing.T) {
	router, repo := setupContentsRouter(t, "user-1")
	seedContent(t, repo, Content{ID: "content-1", UserID: "user-1", Text: "t"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contents/content-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
}

func TestGetContentEndpointHidesOtherUsers(t *testing.T) {
	router, repo := setupContentsRouter(t, "user-1")
	seedContent(t, repo, Content{ID: "content-1", UserID: "user-2", Text: "t"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contents/content-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 for foreign content, got %d", resp.Code)
	}
}

func TestListContentsEndpoint(t *testing.T) {
	router, repo := setupContentsRouter(t, "user-1")
	seedContent(t, repo, Content{ID: "content-1", UserID: "user-1", Text: "t"})
	seedContent(t, repo, Content{ID: "content-2", UserID: "user-2", Text: "t"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/contents", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body struct {
		Contents []Content `json:"contents"`
		Total    int       `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Total != 1 || len(body.Contents) != 1 {
		t.Fatalf("expected only the caller's content, got total=%d len=%d", body.Total, len(body.Contents))
	}
}

func TestDeleteContentEndpoint(t *testing.T) {
	router, repo := setupContentsRouter(t, "user-1")
	seedContent(t, repo, Content{ID: "content-1", UserID: "user-1", Text: "t"})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/contents/content-1", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/contents/content-1", nil)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 on second delete, got %d", resp.Code)
	}
}

func seedContent(t *testing.T, repo *MemoryRepo, content Content) {
	t.Helper()
	if err := repo.Create(context.Background(), content); err != nil {
		t.Fatalf("seed content: %v", err)
	}
}
