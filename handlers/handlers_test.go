package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"mentorai/backend/internal/classes"
	"mentorai/backend/internal/db"
	"mentorai/backend/internal/worker"
	"mentorai/backend/models"
)

const testSecret = "handler-test-secret"

type fakeTranscriber struct {
	result    *models.TranscriptionResult
	err       error
	calls     int
	gotPath   string
	gotConfig models.TranscriptionConfig
	fileSeen  bool
	available bool
	model     string
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string, cfg models.TranscriptionConfig) (*models.TranscriptionResult, error) {
	f.calls++
	f.gotPath = path
	f.gotConfig = cfg
	_, err := os.Stat(path)
	f.fileSeen = err == nil
	return f.result, f.err
}

func (f *fakeTranscriber) CheckAvailability(ctx context.Context) bool { return f.available }

func (f *fakeTranscriber) ModelInfo(ctx context.Context, model string) models.ModelInfo {
	f.model = model
	return models.ModelInfo{Available: true, Info: "help for " + model}
}

func (f *fakeTranscriber) DebugInfo() models.DebugInfo {
	return models.DebugInfo{WhisperXPath: "/opt/whisperx", PythonPath: "python3", Environment: map[string]string{}}
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

type testEnv struct {
	app         *fiber.App
	transcriber *fakeTranscriber
	uploadDir   string
	token       string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	client := db.New(sqlDB, logger)
	if err := client.EnsureSchema(context.Background()); err != nil {
		t.Fatal(err)
	}

	transcriber := &fakeTranscriber{available: true}
	uploadDir := t.TempDir()
	h := NewApplicationHandler(classes.NewStore(client, logger), transcriber, fakePinger{}, logger, uploadDir)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(h), BodyLimit: MaxUploadSize + 1024*1024})
	SetupRoutes(app, h, testSecret)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "teacher-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	return &testEnv{app: app, transcriber: transcriber, uploadDir: uploadDir, token: token}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	if req.Header.Get("Authorization") == "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	resp, err := e.app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp.StatusCode, body
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, contentType string, content []byte, fields map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if content != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="audio"; filename="clase.WAV"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			t.Fatal(err)
		}
		part.Write(content)
	}
	w.Close()

	req := httptest.NewRequest("POST", "/api/whisperx/transcribe", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir has %d entries, want 0", len(entries))
	}
}

func TestRootAndNotFound(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, httptest.NewRequest("GET", "/", nil))
	if status != 200 || body["message"] != "MentorAI Backend API" || body["version"] != Version {
		t.Errorf("GET / = %d %v", status, body)
	}

	status, body = env.do(t, httptest.NewRequest("GET", "/api/nope?x=1", nil))
	if status != 404 || body["error"] != "Route not found" || body["path"] != "/api/nope?x=1" {
		t.Errorf("GET /api/nope = %d %v", status, body)
	}
}

func TestHealth(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"connected", nil, "connected"},
		{"disconnected", errors.New("refused"), "disconnected"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewApplicationHandler(nil, nil, fakePinger{err: tt.err}, logger, t.TempDir())
			app := fiber.New()
			app.Get("/api/health", h.Health)

			resp, err := app.Test(httptest.NewRequest("GET", "/api/health", nil))
			if err != nil {
				t.Fatal(err)
			}
			var body HealthResponse
			json.NewDecoder(resp.Body).Decode(&body)
			if resp.StatusCode != 200 || body.Status != "ok" || body.Database != tt.want {
				t.Errorf("health = %d %+v, want database %s", resp.StatusCode, body, tt.want)
			}
		})
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/classes", "/api/whisperx/debug"} {
		resp, err := env.app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusUnauthorized {
			t.Errorf("GET %s without token = %d, want 401", path, resp.StatusCode)
		}

		req := httptest.NewRequest("GET", path, nil)
		req.Header.Set("Authorization", "Bearer nonsense")
		resp, err = env.app.Test(req)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("GET %s with bad token = %d, want 403", path, resp.StatusCode)
		}
	}
}

func TestUnknownProtectedPathsAreNotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/classes/x/y/z", "/api/whisperx/nope"} {
		resp, err := env.app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != fiber.StatusNotFound {
			t.Errorf("GET %s without token = %d, want 404", path, resp.StatusCode)
		}

		status, body := env.do(t, httptest.NewRequest("GET", path, nil))
		if status != fiber.StatusNotFound || body["path"] != path {
			t.Errorf("GET %s with token = %d %v", path, status, body)
		}
	}
}

func TestClassLifecycle(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, jsonRequest("POST", "/api/classes", `{"name":"Algebra","teacher":"Ms. Smith","subject":"Math"}`))
	if status != 201 || body["success"] != true {
		t.Fatalf("create = %d %v", status, body)
	}
	data := body["data"].(map[string]any)
	id, _ := data["id"].(string)
	if id == "" || data["name"] != "Algebra" || data["subject"] != "Math" {
		t.Errorf("create data = %v", data)
	}

	status, body = env.do(t, httptest.NewRequest("GET", "/api/classes/"+id, nil))
	if status != 200 {
		t.Fatalf("get = %d %v", status, body)
	}
	class := body["data"].(map[string]any)
	if class["status"] != "active" || class["teacher"] != "Ms. Smith" {
		t.Errorf("get data = %v", class)
	}

	status, body = env.do(t, httptest.NewRequest("GET", "/api/classes", nil))
	if status != 200 || body["count"] != float64(1) {
		t.Errorf("list = %d %v", status, body)
	}

	status, body = env.do(t, jsonRequest("PUT", "/api/classes/"+id, `{"status":"inactive"}`))
	if status != 200 || body["message"] != "Class updated successfully" {
		t.Errorf("update = %d %v", status, body)
	}

	status, _ = env.do(t, jsonRequest("PUT", "/api/classes/"+id+"/recording", `{"recordingUrl":"https://cdn/x.webm"}`))
	if status != 200 {
		t.Errorf("recording = %d", status)
	}
	status, _ = env.do(t, jsonRequest("PUT", "/api/classes/"+id+"/analysis", `{"analysisData":{"score":3}}`))
	if status != 200 {
		t.Errorf("analysis = %d", status)
	}

	_, body = env.do(t, httptest.NewRequest("GET", "/api/classes/"+id, nil))
	class = body["data"].(map[string]any)
	if class["status"] != "inactive" || class["recording_url"] != "https://cdn/x.webm" {
		t.Errorf("after updates = %v", class)
	}
	if analysis, ok := class["analysis_data"].(map[string]any); !ok || analysis["score"] != float64(3) {
		t.Errorf("analysis_data = %v", class["analysis_data"])
	}

	status, _ = env.do(t, httptest.NewRequest("DELETE", "/api/classes/"+id, nil))
	if status != 200 {
		t.Errorf("delete = %d", status)
	}
	status, body = env.do(t, httptest.NewRequest("GET", "/api/classes/"+id, nil))
	if status != 404 || body["message"] != "Class not found" {
		t.Errorf("get after delete = %d %v", status, body)
	}
}

func TestCreateClassValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing teacher", `{"name":"Algebra"}`},
		{"blank name", `{"name":"  ","teacher":"Smith"}`},
		{"bad status", `{"name":"Algebra","teacher":"Smith","status":"archived"}`},
		{"negative duration", `{"name":"Algebra","teacher":"Smith","duration":-1}`},
		{"malformed json", `{"name":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, jsonRequest("POST", "/api/classes", tt.body))
			if status != 400 || body["success"] != false {
				t.Errorf("create = %d %v, want 400", status, body)
			}
		})
	}

	_, body := env.do(t, httptest.NewRequest("GET", "/api/classes", nil))
	if body["count"] != float64(0) {
		t.Errorf("rows written after invalid creates: %v", body["count"])
	}
}

func TestSearchClasses(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, jsonRequest("POST", "/api/classes", `{"name":"Physics","teacher":"John Smith"}`))
	env.do(t, jsonRequest("POST", "/api/classes", `{"name":"History","teacher":"Brown"}`))

	status, body := env.do(t, httptest.NewRequest("GET", "/api/classes/search?q=SMITH", nil))
	if status != 200 || body["count"] != float64(1) || body["searchTerm"] != "SMITH" {
		t.Errorf("search = %d %v", status, body)
	}

	status, body = env.do(t, httptest.NewRequest("GET", "/api/classes/search?q=", nil))
	if status != 400 || body["message"] != "Search term is required" {
		t.Errorf("blank search = %d %v", status, body)
	}
}

func TestWritesOnUnknownClass(t *testing.T) {
	env := newTestEnv(t)

	requests := []*http.Request{
		jsonRequest("PUT", "/api/classes/missing", `{"name":"X"}`),
		httptest.NewRequest("DELETE", "/api/classes/missing", nil),
		jsonRequest("PUT", "/api/classes/missing/recording", `{"recordingUrl":"u"}`),
		jsonRequest("PUT", "/api/classes/missing/transcript", `{"transcript":"t"}`),
		jsonRequest("PUT", "/api/classes/missing/analysis", `{"analysisData":[1]}`),
	}
	for _, req := range requests {
		if status, body := env.do(t, req); status != 404 {
			t.Errorf("%s %s = %d %v, want 404", req.Method, req.URL.Path, status, body)
		}
	}
}

func TestSingleFieldUpdatesRequireValue(t *testing.T) {
	env := newTestEnv(t)
	_, body := env.do(t, jsonRequest("POST", "/api/classes", `{"name":"Algebra","teacher":"Smith"}`))
	id := body["data"].(map[string]any)["id"].(string)

	requests := []*http.Request{
		jsonRequest("PUT", "/api/classes/"+id+"/recording", `{}`),
		jsonRequest("PUT", "/api/classes/"+id+"/transcript", `{"transcript":""}`),
		jsonRequest("PUT", "/api/classes/"+id+"/analysis", `{"analysisData":null}`),
	}
	for _, req := range requests {
		if status, body := env.do(t, req); status != 400 {
			t.Errorf("%s = %d %v, want 400", req.URL.Path, status, body)
		}
	}
}

func TestTranscribeRejectsNonAudio(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, multipartRequest(t, "text/plain", []byte("hello"), nil))
	if status != 400 || body["message"] != "Only audio files are allowed" {
		t.Errorf("status = %d %v", status, body)
	}
	if env.transcriber.calls != 0 {
		t.Errorf("transcriber called %d times, want 0", env.transcriber.calls)
	}
	assertDirEmpty(t, env.uploadDir)
}

func TestTranscribeRequiresFile(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, multipartRequest(t, "", nil, map[string]string{"model": "base"}))
	if status != 400 || body["message"] != "No audio file provided" {
		t.Errorf("status = %d %v", status, body)
	}
}

func TestTranscribeSpeakerBounds(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, "audio/wav", []byte("RIFF"), map[string]string{"min_speakers": "4", "max_speakers": "2"})
	if status, _ := env.do(t, req); status != 400 {
		t.Errorf("status = %d, want 400", status)
	}
	if env.transcriber.calls != 0 {
		t.Error("transcriber called for invalid options")
	}
}

func TestTranscribeSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.transcriber.result = &models.TranscriptionResult{
		Segments: []models.Segment{
			{Start: 0, End: 2, Text: "hola a todos", Speaker: "A"},
			{Start: 2, End: 3, Text: "hola", Speaker: "B"},
		},
		Language: "es",
		Duration: 3,
	}

	req := multipartRequest(t, "audio/wav; codecs=1", []byte("RIFF...."), map[string]string{
		"model":   "small",
		"diarize": "true",
	})
	status, body := env.do(t, req)
	if status != 200 {
		t.Fatalf("status = %d %v", status, body)
	}

	if !env.transcriber.fileSeen {
		t.Error("upload was not on disk while transcribing")
	}
	if !strings.HasSuffix(env.transcriber.gotPath, ".wav") || !strings.Contains(env.transcriber.gotPath, "audio-") {
		t.Errorf("upload path = %q", env.transcriber.gotPath)
	}
	if cfg := env.transcriber.gotConfig; cfg.Model != "small" || !cfg.Diarize {
		t.Errorf("config = %+v", cfg)
	}
	assertDirEmpty(t, env.uploadDir)

	data := body["data"].(map[string]any)
	if data["transcript"] != "[A] [00:00]: hola a todos\n\n[B] [00:02]: hola" {
		t.Errorf("transcript = %q", data["transcript"])
	}
	if data["language"] != "es" || data["duration"] != float64(3) {
		t.Errorf("language/duration = %v/%v", data["language"], data["duration"])
	}
	participation := data["participation"].(map[string]any)
	if participation["totalTime"] != float64(3) {
		t.Errorf("totalTime = %v", participation["totalTime"])
	}
	if speakers := data["speakers"].([]any); len(speakers) != 2 {
		t.Errorf("speakers = %v", speakers)
	}
}

func TestTranscribeDiarizeDefaultsOff(t *testing.T) {
	env := newTestEnv(t)
	env.transcriber.result = &models.TranscriptionResult{Segments: []models.Segment{}, Language: "es"}

	if status, body := env.do(t, multipartRequest(t, "audio/mpeg", []byte("ID3"), nil)); status != 200 {
		t.Fatalf("status = %d %v", status, body)
	}
	if env.transcriber.gotConfig.Diarize {
		t.Error("diarize enabled without being requested")
	}
}

func TestTranscribeFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"queue full", worker.ErrQueueFull, fiber.StatusServiceUnavailable},
		{"process failed", errors.New("whisperx process exited with code 1. Stderr: boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.transcriber.err = tt.err

			status, body := env.do(t, multipartRequest(t, "audio/ogg", []byte("OggS"), nil))
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body["error"] != tt.err.Error() {
				t.Errorf("error = %v, want %q", body["error"], tt.err.Error())
			}
			assertDirEmpty(t, env.uploadDir)
		})
	}
}

func TestWhisperXProbes(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, httptest.NewRequest("GET", "/api/whisperx/availability", nil))
	data := body["data"].(map[string]any)
	if status != 200 || data["available"] != true || data["timestamp"] == nil {
		t.Errorf("availability = %d %v", status, body)
	}

	status, body = env.do(t, httptest.NewRequest("GET", "/api/whisperx/models", nil))
	if status != 200 || env.transcriber.model != models.DefaultInfoModel {
		t.Errorf("models default = %d %v (model %q)", status, body, env.transcriber.model)
	}
	env.do(t, httptest.NewRequest("GET", "/api/whisperx/models/tiny", nil))
	if env.transcriber.model != "tiny" {
		t.Errorf("model = %q, want tiny", env.transcriber.model)
	}

	status, body = env.do(t, httptest.NewRequest("GET", "/api/whisperx/debug", nil))
	data = body["data"].(map[string]any)
	if status != 200 || data["whisperXPath"] != "/opt/whisperx" {
		t.Errorf("debug = %d %v", status, body)
	}
}
