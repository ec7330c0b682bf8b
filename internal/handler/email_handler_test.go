package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmail/internal/handler"
	"taskmail/internal/model"
	"taskmail/internal/repository/memory"
	"taskmail/internal/router"
	"taskmail/internal/security"
	"taskmail/internal/service"
	"taskmail/internal/strategy"
)

type apiFixture struct {
	e          *echo.Echo
	emailRepo  *memory.InMemoryEmailRepository
	taskRepo   *memory.InMemoryTaskRepository
	configRepo *memory.InMemoryWebhookConfigRepository
}

func newAPIFixture(t *testing.T, spamKeywords []string) *apiFixture {
	t.Helper()
	nop := zerolog.Nop()

	emailRepo := memory.NewInMemoryEmailRepository()
	taskRepo := memory.NewInMemoryTaskRepository()
	configRepo := memory.NewInMemoryWebhookConfigRepository()

	mapper := service.NewTaskMapper(
		service.NewSpamClassifier(spamKeywords),
		service.NewContextClassifier(nil, false, nop),
		service.NewSummarizer(nil, false, nop),
		service.NewActionSuggester(strategy.NewDefaultRegistry(), nil, false, nop),
		emailRepo,
		nop,
	)
	detector := service.NewDuplicateDetector(emailRepo, 0.9, nop)
	emailService := service.NewEmailService(emailRepo, taskRepo, detector, mapper, nop)
	taskService := service.NewTaskService(taskRepo, nop)

	tracker := security.NewFailureTracker(5, 10*time.Minute, nop)
	gate := security.NewGate(configRepo, tracker, "", false, nop)

	e := echo.New()
	router.SetupRoutes(e,
		handler.NewEmailHandler(emailService, gate, "default", nop),
		handler.NewTaskHandler(taskService, "default", nop),
		handler.NewAdminHandler(configRepo, nop),
	)

	return &apiFixture{e: e, emailRepo: emailRepo, taskRepo: taskRepo, configRepo: configRepo}
}

func (f *apiFixture) request(method, path, body string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestIngestEmailEndpoint(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.request(http.MethodPost, "/api/v1/email",
		`{"sender":"alice@example.com","subject":"Meeting request","body":"Can we schedule a call?"}`, nil)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["email_id"])
	assert.NotEmpty(t, resp["task_id"])
}

func TestIngestEmailEndpointDuplicate(t *testing.T) {
	f := newAPIFixture(t, nil)
	body := `{"sender":"alice@example.com","subject":"Invoice","body":"Please pay."}`

	rec := f.request(http.MethodPost, "/api/v1/email", body, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.request(http.MethodPost, "/api/v1/email", body, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestIngestEmailEndpointSpam(t *testing.T) {
	f := newAPIFixture(t, []string{"free money"})

	rec := f.request(http.MethodPost, "/api/v1/email",
		`{"sender":"spam@example.com","subject":"FREE MONEY","body":"click"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["spam"])
	assert.NotEmpty(t, resp["email_id"])
	assert.Nil(t, resp["task_id"])
}

func TestIngestEmailEndpointOwnerFromQuery(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.request(http.MethodPost, "/api/v1/email?user_id=alice",
		`{"sender":"bob@example.com","subject":"Hi Alice","body":"hello"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	tasks, err := f.taskRepo.FindByOwnerID(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestWebhookEndpointSecurity(t *testing.T) {
	f := newAPIFixture(t, nil)
	config := model.NewWebhookSecurityConfig("hook-key", []string{"10.0.0.9"})
	require.NoError(t, f.configRepo.Save(context.Background(), config))

	payload := `{"sender":"alice@example.com","subject":"Via webhook","body":"hi there"}`

	t.Run("missing api key", func(t *testing.T) {
		rec := f.request(http.MethodPost, "/api/v1/email/incoming", payload, func(req *http.Request) {
			req.RemoteAddr = "10.0.0.9:1234"
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Missing API key")
	})

	t.Run("invalid api key", func(t *testing.T) {
		rec := f.request(http.MethodPost, "/api/v1/email/incoming", payload, func(req *http.Request) {
			req.Header.Set("X-API-Key", "wrong")
			req.RemoteAddr = "10.0.0.9:1234"
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid API key")
	})

	t.Run("ip not allowed", func(t *testing.T) {
		rec := f.request(http.MethodPost, "/api/v1/email/incoming", payload, func(req *http.Request) {
			req.Header.Set("X-API-Key", "hook-key")
			req.RemoteAddr = "203.0.113.5:1234"
		})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "IP address not allowed")
	})

	t.Run("valid request", func(t *testing.T) {
		rec := f.request(http.MethodPost, "/api/v1/email/incoming", payload, func(req *http.Request) {
			req.Header.Set("X-API-Key", "hook-key")
			req.RemoteAddr = "10.0.0.9:1234"
		})
		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestSpamListAndNotSpamEndpoints(t *testing.T) {
	f := newAPIFixture(t, []string{"free money"})

	rec := f.request(http.MethodPost, "/api/v1/email",
		`{"sender":"spam@example.com","subject":"free money charity run","body":"join us"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var ingestResp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ingestResp))
	emailID := ingestResp["email_id"].(string)

	rec = f.request(http.MethodGet, "/api/v1/email/spam", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), emailID)

	rec = f.request(http.MethodPatch, "/api/v1/email/"+emailID+"/not-spam", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(http.MethodGet, "/api/v1/email/spam", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), emailID)
}

func TestArchiveEmailEndpoint(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.request(http.MethodPost, "/api/v1/email",
		`{"sender":"alice@example.com","subject":"Old","body":"done"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	rec = f.request(http.MethodPatch, "/api/v1/email/"+resp["email_id"]+"/archive", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.request(http.MethodPatch, "/api/v1/email/missing/archive", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTaskEndpoints(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.request(http.MethodPost, "/api/v1/email",
		`{"sender":"alice@example.com","subject":"Todo","body":"please handle"}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var ingestResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ingestResp))
	taskID := ingestResp["task_id"]

	rec = f.request(http.MethodGet, "/api/v1/tasks", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), taskID)

	rec = f.request(http.MethodPatch, "/api/v1/tasks/"+taskID,
		`{"status":"done","action_taken":"Reply"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"action_taken":"Reply"`)

	rec = f.request(http.MethodPatch, "/api/v1/tasks/"+taskID, `{"status":"sideways"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.request(http.MethodPatch, "/api/v1/tasks/missing", `{"status":"done"}`, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminWebhookSecurityEndpoints(t *testing.T) {
	f := newAPIFixture(t, nil)

	rec := f.request(http.MethodGet, "/api/v1/admin/webhook/security", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.request(http.MethodPost, "/api/v1/admin/webhook/security",
		`{"allowed_ips":["10.0.0.1"]}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	apiKey, _ := created["api_key"].(string)
	assert.NotEmpty(t, apiKey)

	rec = f.request(http.MethodGet, "/api/v1/admin/webhook/security", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	// The key is returned on creation only.
	assert.NotContains(t, rec.Body.String(), apiKey)

	rec = f.request(http.MethodPost, "/api/v1/admin/webhook/security", `{"allowed_ips":[]}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
