package recommend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/catalog"
	"planner-backend/internal/planner"
	"planner-backend/internal/shared/server/middleware"
	"planner-backend/internal/students"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalogRepo := catalog.NewMemoryRepo(
		catalog.Course{Code: "CS 1301", Department: "CS"},
		catalog.Course{Code: "CS 1331", Department: "CS",
			Requirement: catalog.CourseReq{Code: "CS 1301"}},
		catalog.Course{Code: "CS 2340", Department: "CS",
			Requirement: catalog.CourseReq{Code: "CS 1331", MinGrade: catalog.GradeC}},
	)
	catalogSvc := catalog.NewService(catalogRepo, time.Hour)

	planSvc := &planner.Service{Repo: planner.NewMemoryRepo()}
	if _, err := planSvc.Add(context.Background(), "student-1", "CS 1301", planner.StatusCompleted, catalog.GradeA, mustSem(t, "fall-2025")); err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	studentSvc := &students.Service{
		Profiles: students.NewMemoryRepo(),
		Programs: &students.MemoryProgramsRepo{},
	}

	h := &Handler{
		Catalog:  catalogSvc,
		Plans:    planSvc,
		Students: studentSvc,
		Engine:   NewEngine(),
		Enhancer: &Enhancer{},
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity("production"))
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-User-Id", "student-1")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, resp.Body.String())
	}
	return resp, body
}

func TestRecommendationsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	resp, body := doGet(t, r, "/api/v1/recommendations?semester=fall-2026")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if body["semester"] != "fall-2026" {
		t.Fatalf("expected echoed semester, got %v", body["semester"])
	}
	recs, ok := body["recommendations"].([]any)
	if !ok || len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %v", body["recommendations"])
	}
	if body["enhanced"] != false {
		t.Fatalf("expected enhanced=false without enhance flag")
	}
}

func TestRecommendationsRequireSemester(t *testing.T) {
	r := newTestRouter(t)

	resp, body := doGet(t, r, "/api/v1/recommendations")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if _, ok := body["error"]; !ok {
		t.Fatalf("expected error envelope, got %v", body)
	}
}

func TestRecommendationsEnhanceFallsBackWithoutAdvisor(t *testing.T) {
	r := newTestRouter(t)

	resp, body := doGet(t, r, "/api/v1/recommendations?semester=fall-2026&enhance=true")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body["enhanced"] != false {
		t.Fatalf("expected fallback with unconfigured advisor, got %v", body["enhanced"])
	}
	if recs := body["recommendations"].([]any); len(recs) != 2 {
		t.Fatalf("expected base recommendations on fallback, got %d", len(recs))
	}
}

func TestRecommendationsCategoryView(t *testing.T) {
	r := newTestRouter(t)

	resp, body := doGet(t, r, "/api/v1/recommendations?semester=fall-2026&category=prerequisite-ready&limit=1")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body["category"] != "prerequisite-ready" {
		t.Fatalf("expected category echoed, got %v", body["category"])
	}
	view, ok := body["categoryRecommendations"].([]any)
	if !ok || len(view) != 1 {
		t.Fatalf("expected 1 category recommendation, got %v", body["categoryRecommendations"])
	}
}

func TestValidateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	resp, body := doGet(t, r, "/api/v1/plan/validate/CS%201331?semester=fall-2026")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	result, ok := body["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result object, got %v", body)
	}
	if result["canAdd"] != true {
		t.Fatalf("expected CS 1331 addable, got %v", result)
	}

	resp, body = doGet(t, r, "/api/v1/plan/validate/CS%202340?semester=fall-2026")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	result = body["result"].(map[string]any)
	if result["canAdd"] != false {
		t.Fatalf("expected CS 2340 blocked, got %v", result)
	}
}

func TestValidateEndpointUnknownCourse(t *testing.T) {
	r := newTestRouter(t)

	resp, _ := doGet(t, r, "/api/v1/plan/validate/CS%209999?semester=fall-2026")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
