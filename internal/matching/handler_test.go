package matching_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/bootstrap"
	"jobmatch-backend/internal/shared/config"
)

const testResume = `Backend engineer.

Skills:
Python (expert), PostgreSQL
`

const testPosting = `Backend Developer at Initech

Requirements:
- Python required
- Kafka is a plus
`

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, guestID string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var env envelope
	if resp.Body.Len() > 0 {
		if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode response %q: %v", resp.Body.String(), err)
		}
	}
	return resp, env
}

func createPair(t *testing.T, router http.Handler, guestID string) (profileID, jobID string) {
	t.Helper()

	resp, env := doJSON(t, router, http.MethodPost, "/api/v1/profiles", map[string]string{"resumeText": testResume}, guestID)
	if resp.Code != http.StatusCreated {
		t.Fatalf("create profile: status %d, body %s", resp.Code, resp.Body.String())
	}
	var profile struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}

	resp, env = doJSON(t, router, http.MethodPost, "/api/v1/jobs", map[string]any{"postingText": testPosting}, guestID)
	if resp.Code != http.StatusCreated {
		t.Fatalf("save job: status %d, body %s", resp.Code, resp.Body.String())
	}
	var job struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &job); err != nil {
		t.Fatalf("decode job: %v", err)
	}
	return profile.ID, job.ID
}

func TestCalculateMatchAndTrend(t *testing.T) {
	app := newTestApp(t)
	profileID, jobID := createPair(t, app.Router, "test-guest")

	body := map[string]string{"profileId": profileID, "jobId": jobID}
	resp, env := doJSON(t, app.Router, http.MethodPost, "/api/v1/matching/calculate", body, "test-guest")
	if resp.Code != http.StatusOK {
		t.Fatalf("calculate: status %d, body %s", resp.Code, resp.Body.String())
	}

	var result struct {
		OverallScore     float64            `json:"overallScore"`
		CategoryScores   map[string]float64 `json:"categoryScores"`
		MandatoryMissCnt int                `json:"mandatoryMissCount"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.OverallScore <= 0 || result.OverallScore > 1 {
		t.Errorf("overall score = %v, want in (0, 1]", result.OverallScore)
	}
	if result.MandatoryMissCnt != 0 {
		t.Errorf("mandatory miss count = %d, want 0", result.MandatoryMissCnt)
	}

	resp, env = doJSON(t, app.Router, http.MethodGet, "/api/v1/matching/trend?profileId="+profileID+"&jobId="+jobID, nil, "test-guest")
	if resp.Code != http.StatusOK {
		t.Fatalf("trend: status %d, body %s", resp.Code, resp.Body.String())
	}
	var trend []struct {
		ProfileVersion int `json:"profileVersion"`
		Result         struct {
			OverallScore float64 `json:"overallScore"`
		} `json:"result"`
	}
	if err := json.Unmarshal(env.Data, &trend); err != nil {
		t.Fatalf("decode trend: %v", err)
	}
	if len(trend) != 1 || trend[0].ProfileVersion != 1 {
		t.Errorf("trend = %+v, want one version-1 point", trend)
	}
}

func TestCalculateRejectsForeignProfile(t *testing.T) {
	app := newTestApp(t)
	profileID, jobID := createPair(t, app.Router, "owner-guest")

	body := map[string]string{"profileId": profileID, "jobId": jobID}
	resp, env := doJSON(t, app.Router, http.MethodPost, "/api/v1/matching/calculate", body, "other-guest")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", resp.Code, resp.Body.String())
	}
	if env.Error == nil || env.Error.Code != "FORBIDDEN" {
		t.Errorf("error = %+v, want FORBIDDEN", env.Error)
	}
}

func TestCalculateUnknownJob(t *testing.T) {
	app := newTestApp(t)
	profileID, _ := createPair(t, app.Router, "test-guest")

	body := map[string]string{"profileId": profileID, "jobId": "missing"}
	resp, env := doJSON(t, app.Router, http.MethodPost, "/api/v1/matching/calculate", body, "test-guest")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", resp.Code, resp.Body.String())
	}
	if env.Error == nil || env.Error.Code != "ENTITY_NOT_FOUND" {
		t.Errorf("error = %+v, want ENTITY_NOT_FOUND", env.Error)
	}
}

func TestTrendRequiresBothIDs(t *testing.T) {
	app := newTestApp(t)

	resp, env := doJSON(t, app.Router, http.MethodGet, "/api/v1/matching/trend?profileId=p1", nil, "test-guest")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
}
