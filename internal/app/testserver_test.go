package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"kalasangam_backend/internal/config"
	"kalasangam_backend/internal/logger"

	"github.com/stretchr/testify/require"
)

const testAnonKey = "anon-test-key"

// TestServer - приложение за httptest.Server
type TestServer struct {
	Server  *httptest.Server
	App     *App
	Config  *config.Config
	AnonKey string
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	logger.Init("test")

	cfg := config.Default()
	cfg.Server.Env = "test"
	cfg.Database.Driver = "sqlite"
	cfg.ConnectionFile = filepath.Join(t.TempDir(), "connection.yaml")
	cfg.Storage.BasePath = t.TempDir()
	cfg.Coach.DelayMS = 5
	cfg.RateLimit.AuthPerMinute = 600
	cfg.RateLimit.Burst = 100
	t.Setenv("ANON_KEY", "")
	return cfg
}

// NewTestServer поднимает приложение на in-memory sqlite с уже сохраненным подключением.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	cfg := testConfig(t)
	require.NoError(t, config.SaveConnection(cfg.ConnectionFile, config.Connection{
		URL:     "file::memory:",
		AnonKey: testAnonKey,
	}))
	return startTestServer(t, cfg)
}

// NewSetupTestServer - приложение без файла подключения (режим setup).
func NewSetupTestServer(t *testing.T) *TestServer {
	t.Helper()
	return startTestServer(t, testConfig(t))
}

func startTestServer(t *testing.T, cfg *config.Config) *TestServer {
	t.Helper()

	a, err := New(context.Background(), cfg)
	require.NoError(t, err, "Не удалось собрать приложение")

	ts := &TestServer{
		Server:  httptest.NewServer(a.Handler()),
		App:     a,
		Config:  cfg,
		AnonKey: testAnonKey,
	}
	t.Cleanup(ts.Close)
	return ts
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	ts.App.Close()
}

// SendRequest отправляет JSON запрос с apikey и (опционально) Bearer токеном.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "Ошибка кодирования JSON для запроса")
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, ts.Server.URL+path, reqBody)
	require.NoError(t, err, "Ошибка создания HTTP-запроса")

	if ts.AnonKey != "" {
		req.Header.Set("apikey", ts.AnonKey)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.do(t, req)
}

// SendMultipart отправляет файл в поле field плюс обычные поля формы.
func (ts *TestServer) SendMultipart(t *testing.T, path, token, field, filename string, content []byte, fields map[string]string) (*http.Response, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if field != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+path, &buf)
	require.NoError(t, err, "Ошибка создания multipart-запроса")
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("apikey", ts.AnonKey)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return ts.do(t, req)
}

func (ts *TestServer) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err, "Ошибка отправки HTTP-запроса")
	defer res.Body.Close()

	resBodyBytes, err := io.ReadAll(res.Body)
	require.NoError(t, err, "Ошибка чтения тела ответа")

	return res, string(resBodyBytes)
}

// SignUp регистрирует пользователя и возвращает токен сессии.
func (ts *TestServer) SignUp(t *testing.T, email string) string {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var session struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &session))
	require.NotEmpty(t, session.AccessToken)
	return session.AccessToken
}

// Onboard создает профиль для токена.
func (ts *TestServer) Onboard(t *testing.T, token, fullName, username string) {
	t.Helper()

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/profiles", token, map[string]string{
		"full_name": fullName,
		"username":  username,
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)
}

func decodeJSON(t *testing.T, body string, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(body), v), body)
}
