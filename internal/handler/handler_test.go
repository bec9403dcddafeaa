package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/williamanish-889/educlip-backend/internal/models"
	"github.com/williamanish-889/educlip-backend/internal/pipeline"
	"github.com/williamanish-889/educlip-backend/internal/repository"
	"github.com/williamanish-889/educlip-backend/internal/server"
	"github.com/williamanish-889/educlip-backend/internal/service"
	"github.com/williamanish-889/educlip-backend/internal/storage"
)

type testEnv struct {
	router *gin.Engine
	tokens service.TokenService
}

func newTestEnv(t *testing.T, stageDelay time.Duration) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	userRepo := repository.NewMemoryUserRepository()
	videoRepo := repository.NewMemoryVideoRepository()
	transcriptRepo := repository.NewMemoryTranscriptRepository()
	summaryRepo := repository.NewMemorySummaryRepository()
	clipRepo := repository.NewMemoryClipRepository()

	contentStore, err := storage.NewFSContentStore(t.TempDir())
	require.NoError(t, err)

	processor := pipeline.NewProcessor(videoRepo, transcriptRepo, summaryRepo, logger, stageDelay)

	tokens := service.NewTokenService("test-secret", time.Hour)
	authService := service.NewAuthService(userRepo, tokens, logger)
	videoService := service.NewVideoService(videoRepo, transcriptRepo, summaryRepo, clipRepo, contentStore, processor, logger)
	analyticsService := service.NewAnalyticsService(videoRepo, logger)

	srv := server.NewServer(authService, videoService, analyticsService, tokens, logger)
	return &testEnv{router: srv.Router(), tokens: tokens}
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var body envelope
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return w, body
}

func (e *testEnv) postJSON(t *testing.T, path string, payload interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.do(t, req)
}

func (e *testEnv) get(t *testing.T, path, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return e.do(t, req)
}

func (e *testEnv) register(t *testing.T, username, email, password string, role models.UserRole) (userID, token string) {
	t.Helper()
	w, body := e.postJSON(t, "/api/auth/register", gin.H{
		"username": username,
		"email":    email,
		"password": password,
		"role":     role,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, body.Message)
	return body.Data["user_id"].(string), body.Data["token"].(string)
}

func (e *testEnv) upload(t *testing.T, token, contentType string, data []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="lecture.mp4"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.WriteField("title", "Intro to Go"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/videos/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return e.do(t, req)
}

func TestRegisterAndLoginScenario(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	userID, token := env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleStudent)
	assert.NotEmpty(t, token)

	w, body := env.postJSON(t, "/api/auth/login", gin.H{
		"email":    "alice@example.com",
		"password": "secret1",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)

	claims, err := env.tokens.Verify(body.Data["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestRegisterValidationAndDuplicates(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	w, body := env.postJSON(t, "/api/auth/register", gin.H{
		"username": "ab", "email": "a@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)

	w, _ = env.postJSON(t, "/api/auth/register", gin.H{
		"username": "alicealice", "email": "a@example.com", "password": "12345",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleStudent)
	w, _ = env.postJSON(t, "/api/auth/register", gin.H{
		"username": "alicealice", "email": "fresh@example.com", "password": "secret1",
	}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleStudent)

	w, body := env.postJSON(t, "/api/auth/login", gin.H{
		"email": "alice@example.com", "password": "wrong1",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, body.Success)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	w, _ := env.get(t, "/api/videos", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = env.get(t, "/api/videos", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUploadRejectsNonVideoContentType(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	_, token := env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleStudent)

	w, body := env.upload(t, token, "text/plain", []byte("not a video"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, body.Success)
}

func TestUploadThroughPipelineToCompletion(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	_, token := env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleEducator)

	w, body := env.upload(t, token, "video/mp4", []byte("fake video bytes"))
	require.Equal(t, http.StatusOK, w.Code, body.Message)
	videoID := body.Data["video_id"].(string)

	// The initial state is written synchronously before the pipeline run
	// starts, so the first status query already sees a valid state.
	w, body = env.get(t, fmt.Sprintf("/api/videos/%s/status", videoID), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, []string{"processing", "transcribing", "analyzing", "generating_clips", "complete"}, body.Data["status"].(string))

	deadline := time.Now().Add(5 * time.Second)
	for {
		w, body = env.get(t, fmt.Sprintf("/api/videos/%s/status", videoID), token)
		require.Equal(t, http.StatusOK, w.Code)
		if body.Data["status"].(string) == "complete" {
			assert.Equal(t, float64(100), body.Data["progress"])
			break
		}
		require.True(t, time.Now().Before(deadline), "video never reached complete, last status %v", body.Data["status"])
		time.Sleep(time.Millisecond)
	}

	w, body = env.get(t, fmt.Sprintf("/api/videos/%s/transcript", videoID), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body.Data["full_text"])

	w, body = env.get(t, fmt.Sprintf("/api/videos/%s/summary", videoID), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, body.Data["executive_summary"])

	w, body = env.get(t, fmt.Sprintf("/api/videos/%s/clips", videoID), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body.Data["count"])

	w, body = env.get(t, "/api/videos", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body.Data["count"])
}

func TestTranscriptNotFoundBeforeProduced(t *testing.T) {
	// Stage delay far longer than the test, so transcription never finishes.
	env := newTestEnv(t, time.Minute)
	_, token := env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleStudent)

	w, body := env.upload(t, token, "video/mp4", []byte("fake video bytes"))
	require.Equal(t, http.StatusOK, w.Code)
	videoID := body.Data["video_id"].(string)

	w, body = env.get(t, fmt.Sprintf("/api/videos/%s/status", videoID), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "processing", body.Data["status"])
	assert.Equal(t, float64(0), body.Data["progress"])

	w, _ = env.get(t, fmt.Sprintf("/api/videos/%s/transcript", videoID), token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = env.get(t, fmt.Sprintf("/api/videos/%s/summary", videoID), token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusUnknownVideo(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	_, token := env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleStudent)

	w, _ := env.get(t, "/api/videos/00000000-0000-0000-0000-000000000000/status", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserAnalyticsPermissions(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)
	aliceID, aliceToken := env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleStudent)
	_, bobToken := env.register(t, "bobbybob", "bob@example.com", "secret2", models.RoleStudent)
	_, adminToken := env.register(t, "rootroot", "root@example.com", "secret3", models.RoleAdmin)

	// Bob may not read Alice's analytics.
	w, body := env.get(t, "/api/analytics/user/"+aliceID, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, body.Success)

	// Alice may read her own.
	w, body = env.get(t, "/api/analytics/user/"+aliceID, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, aliceID, body.Data["user_id"])

	// Admin may read anyone's.
	w, _ = env.get(t, "/api/analytics/user/"+aliceID, adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVideoAnalyticsPlaceholder(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	_, token := env.register(t, "alicealice", "alice@example.com", "secret1", models.RoleStudent)

	w, body := env.upload(t, token, "video/mp4", []byte("fake video bytes"))
	require.Equal(t, http.StatusOK, w.Code)
	videoID := body.Data["video_id"].(string)

	w, body = env.get(t, "/api/analytics/video/"+videoID, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body.Data["total_views"])

	w, _ = env.get(t, "/api/analytics/video/00000000-0000-0000-0000-000000000000", token)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
