package figma

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ui-spec-web/internal/domain/models"
	"ui-spec-web/pkg/config"
)

var fixedNow = time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)

func newTestClient(apiURL, token, template, project string) *Client {
	cfg := config.Default()
	cfg.Figma.APIURL = apiURL
	cfg.Figma.AccessToken = token
	cfg.Figma.TemplateFileKey = template
	cfg.Figma.ProjectID = project

	c := NewClient(cfg)
	c.now = func() time.Time { return fixedNow }
	return c
}

func TestCreateFileCopiesTemplate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/files/TEMPLATE/copy", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-FIGMA-TOKEN"))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "My Project", body["name"])
		assert.Equal(t, float64(42), body["project_id"])

		_, _ = w.Write([]byte(`{"key":"newkey123"}`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "secret", "TEMPLATE", "42")
	require.True(t, c.HasRealAccess())

	link, err := c.CreateFile(context.Background(), "My Project")
	require.NoError(t, err)
	assert.Equal(t, "https://www.figma.com/design/newkey123/My-Project?node-id=0-1&t=1792413000", link)
}

func TestCreateFileFallbackLink(t *testing.T) {
	c := newTestClient("", "", "", "")
	require.False(t, c.HasRealAccess())

	link, err := c.CreateFile(context.Background(), "[FIN] Budget Buddy - 1019_1230 - abc123")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^https://www\.figma\.com/design/[0-9a-f]{12}/%5BFIN%5D-Budget-Buddy---1019_1230---abc123\?node-id=0-1&t=\d+$`), link)
}

func TestCreateFileErrors(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1", "secret", "TEMPLATE", "not-a-number").CreateFile(context.Background(), "x")
	assert.Error(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err = newTestClient(srv.URL, "secret", "TEMPLATE", "42").CreateFile(context.Background(), "x")
	assert.Error(t, err)

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer empty.Close()

	_, err = newTestClient(empty.URL, "secret", "TEMPLATE", "42").CreateFile(context.Background(), "x")
	assert.Error(t, err)
}

func TestBreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL, "secret", "TEMPLATE", "42")
	for i := 0; i < 5; i++ {
		_, err := c.CreateFile(context.Background(), "x")
		assert.Error(t, err)
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestUniqueFileName(t *testing.T) {
	assert.Equal(t, "[FIN] Budget Buddy - 1019_1230 - abcdef", UniqueFileName("Budget Buddy", models.DomainFintech, fixedNow, "abcdef123456"))
	assert.Equal(t, "[APP] Chat - 1019_1230 - ab", UniqueFileName("Chat", models.DomainChat, fixedNow, "ab"))
}
