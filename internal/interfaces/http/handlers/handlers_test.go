package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-spec-web/internal/application"
	"ui-spec-web/internal/domain/models"
	"ui-spec-web/internal/infrastructure/store"
	"ui-spec-web/pkg/config"
	"ui-spec-web/pkg/types"
)

const budgetDocument = "Project Name: Budget Buddy.\nTrack expenses, savings goals and bill reminders for families."

type stubGenerator struct {
	response string
	err      error
}

func (g stubGenerator) Generate(context.Context, models.PromptSpec) (string, error) {
	return g.response, g.err
}

type stubAccess bool

func (a stubAccess) HasRealAccess() bool { return bool(a) }

func newTestRouter(t *testing.T, gen application.Generator) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Default()
	cfg.Pipeline.SampleDocumentPath = filepath.Join(t.TempDir(), "missing.pdf")

	reports := store.NewMemoryStore(time.Hour)
	t.Cleanup(func() { _ = reports.Close() })

	reportService, err := application.NewReportService(gen, nil, reports, true)
	require.NoError(t, err)

	router := gin.New()
	RegisterRoutes(router,
		NewReportHandler(reportService, application.NewDocumentService(cfg.GetMaxUploadSize()), cfg),
		NewSystemHandler("test-model", stubAccess(false), cfg))
	return router
}

func uploadRequest(t *testing.T, path, filename, content string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func serve(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestUploadAndLatest(t *testing.T) {
	router := newTestRouter(t, stubGenerator{response: `{"project_name": "Generated UI", "screens": [{"name": "Home Screen"}], "styles": {}}`})

	req := uploadRequest(t, "/upload-and-report", "budget_buddy.txt", budgetDocument)
	req.Header.Set(sessionIDHeader, "session-1")
	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp types.UIReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "session-1", resp.SessionID)
	assert.Equal(t, "Budget Buddy", resp.Report.ProjectName)
	assert.NotEmpty(t, resp.PromptUsed)
	assert.Nil(t, resp.FigmaURL)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	latest := httptest.NewRequest(http.MethodGet, "/latest-report?session_id=session-1", nil)
	body := decodeBody(t, serve(router, latest))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Budget Buddy", body["report"].(map[string]any)["project_name"])

	prompt := httptest.NewRequest(http.MethodGet, "/latest-prompt", nil)
	prompt.Header.Set(sessionIDHeader, "session-1")
	body = decodeBody(t, serve(router, prompt))
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, resp.PromptUsed, body["prompt"])
}

func TestUploadAliasCreatesSession(t *testing.T) {
	router := newTestRouter(t, stubGenerator{response: "not json"})

	rec := serve(router, uploadRequest(t, "/upload", "notes.txt", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.UIReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, resp.SessionID, rec.Header().Get(sessionIDHeader))
	assert.NotEmpty(t, resp.Report.Screens)
	assert.Contains(t, resp.PromptUsed, UploadSeedText)
}

func TestUploadMissingFile(t *testing.T) {
	router := newTestRouter(t, stubGenerator{})

	rec := serve(router, httptest.NewRequest(http.MethodPost, "/upload-and-report", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadGenerationErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"rate limited", &models.GenerationError{Code: models.CodeRateLimited, Message: "limited", Attempts: 3}, http.StatusTooManyRequests, models.CodeRateLimited},
		{"unavailable", &models.GenerationError{Code: models.CodeUnavailable, Message: "down", Attempts: 3}, http.StatusServiceUnavailable, models.CodeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, stubGenerator{err: tt.err})

			rec := serve(router, uploadRequest(t, "/upload-and-report", "doc.txt", budgetDocument))
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeBody(t, rec)["code"])
		})
	}
}

func TestLatestWithoutData(t *testing.T) {
	router := newTestRouter(t, stubGenerator{})

	body := decodeBody(t, serve(router, httptest.NewRequest(http.MethodGet, "/latest-report", nil)))
	assert.Equal(t, map[string]any{"status": "no_data", "message": "No recent reports available"}, body)

	body = decodeBody(t, serve(router, httptest.NewRequest(http.MethodGet, "/latest-prompt?session_id=unknown", nil)))
	assert.Equal(t, map[string]any{"status": "no_data", "message": "No recent prompt available. Upload a PDF first."}, body)
}

func TestSampleReportUnreadable(t *testing.T) {
	router := newTestRouter(t, stubGenerator{})

	rec := serve(router, httptest.NewRequest(http.MethodPost, "/sample-report", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "Could not process sample document")
}

func TestSystemEndpoints(t *testing.T) {
	router := newTestRouter(t, stubGenerator{})

	var health types.HealthResponse
	require.NoError(t, json.Unmarshal(serve(router, httptest.NewRequest(http.MethodGet, "/health", nil)).Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "groq:test-model", health.LLMProvider)
	assert.False(t, health.HasFigmaAccess)
	require.NotNil(t, health.SampleDocumentLoaded)
	assert.False(t, *health.SampleDocumentLoaded)

	assert.Equal(t, map[string]any{"message": "Server is running"}, decodeBody(t, serve(router, httptest.NewRequest(http.MethodGet, "/", nil))))
	assert.Equal(t, map[string]any{"message": "No favicon"}, decodeBody(t, serve(router, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))))
	assert.Equal(t, map[string]any{}, decodeBody(t, serve(router, httptest.NewRequest(http.MethodGet, "/.well-known/appspecific/com.chrome.devtools.json", nil))))

	metrics := serve(router, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, metrics.Code)
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t, stubGenerator{})

	rec := serve(router, httptest.NewRequest(http.MethodOptions, "/latest-report", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}
