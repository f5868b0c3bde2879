package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/quiz-history-api/config"
	"github.com/oksasatya/quiz-history-api/internal/container"
	"github.com/oksasatya/quiz-history-api/internal/infrastructure/memory"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T, strict bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	helpers.PasswordCost = bcrypt.MinCost

	container.Reset()
	t.Cleanup(container.Reset)

	cfg := config.Load()
	cfg.StoreDriver = "memory"
	cfg.StrictOwnership = strict
	cfg.CORSAllowedOrigins = ""
	cfg.HTTPLogEnabled = false
	cfg.JWTSecret = "router-test"
	cfg.CookieDomain = ""

	store := memory.NewStore()
	container.SetConfig(cfg)
	container.SetLogger(helpers.NewDiscardLogger())
	container.SetJWT(helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL))
	container.SetMetrics(prometheus.NewRegistry())
	container.SetRepositories(container.Repositories{
		Users:      store.Users(),
		QuizSets:   store.QuizSets(),
		Recordings: store.Recordings(),
	})

	engine := NewEngine(cfg, container.GetLogger())
	reg := NewRegistry(engine)
	InitModules(reg)
	reg.RegisterAll()
	return &testServer{t: t, engine: engine}
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (s *testServer) signup(email string) (token, userID string) {
	s.t.Helper()
	w, env := s.do(http.MethodPost, "/api/signup", "", map[string]any{"email": email, "password": "password1"})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	var auth struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &auth))
	return auth.Token, auth.User.ID
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

type quizSetBody struct {
	ID      string `json:"id"`
	Results []struct {
		ID         string `json:"id"`
		QuizTaken  string `json:"quiz_taken"`
		QuizAnswer string `json:"quiz_answer"`
	} `json:"quiz_results"`
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.do(http.MethodPost, "/api/signup", "", map[string]any{"email": "ann@x.test", "password": "password1", "name": "Ann"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotEmpty(t, w.Result().Cookies(), "token cookie is set")
	signed := decode[struct {
		User struct{ ID string } `json:"user"`
	}](t, env.Data)

	w, env = s.do(http.MethodPost, "/api/signup", "", map[string]any{"email": "ann@x.test", "password": "password2"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_account", env.Error.Code)

	wUnknown, envUnknown := s.do(http.MethodPost, "/api/login", "", map[string]any{"email": "nobody@x.test", "password": "anything"})
	wWrong, envWrong := s.do(http.MethodPost, "/api/login", "", map[string]any{"email": "ann@x.test", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, wUnknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wWrong.Code)
	assert.Equal(t, envUnknown.Message, envWrong.Message)
	assert.Equal(t, "invalid_credentials", envWrong.Error.Code)

	w, env = s.do(http.MethodPost, "/api/login", "", map[string]any{"email": "ann@x.test", "password": "password1"})
	require.Equal(t, http.StatusOK, w.Code)
	logged := decode[struct {
		Token string
		User  struct{ ID string } `json:"user"`
	}](t, env.Data)
	assert.Equal(t, signed.User.ID, logged.User.ID)

	w, env = s.do(http.MethodGet, "/api/me", logged.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		ID       string        `json:"id"`
		Name     string        `json:"name"`
		QuizSets []quizSetBody `json:"quiz_sets"`
	}](t, env.Data)
	assert.Equal(t, signed.User.ID, me.ID)
	assert.Equal(t, "Ann", me.Name)
	assert.Empty(t, me.QuizSets)

	w, _ = s.do(http.MethodPost, "/api/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignup_Validation(t *testing.T) {
	s := newTestServer(t, false)

	w, env := s.do(http.MethodPost, "/api/signup", "", map[string]any{"email": "not-an-email", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be a valid email", env.Error.Details["email"])
	assert.Contains(t, env.Error.Details, "password")

	w, env = s.do(http.MethodPost, "/api/signup", "", map[string]any{"email": "a@x.test", "password": "password1", "role": "admin"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is not allowed", env.Error.Details["role"])
}

func TestGuardedRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t, false)
	const someID = "5f0c3a4e-8f7e-4c1e-9d61-1b2a3c4d5e6f"

	routes := []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/me", nil},
		{http.MethodPut, "/api/profile", map[string]any{"name": "x"}},
		{http.MethodPost, "/api/quiz-sets", nil},
		{http.MethodPost, "/api/quiz-sets/" + someID + "/results", map[string]any{"quiz_taken": "Q", "quiz_answer": "A"}},
		{http.MethodDelete, "/api/quiz-sets/" + someID, nil},
		{http.MethodPost, "/api/recordings", map[string]any{"audio": "a", "title": "t"}},
		{http.MethodDelete, "/api/recordings/" + someID, nil},
		{http.MethodGet, "/api/recordings/search?q=x", nil},
		{http.MethodPost, "/api/recordings/audio", nil},
	}
	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w, env := s.do(rt.method, rt.path, "", rt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "unauthenticated", env.Error.Code)
		})
		t.Run(rt.method+" "+rt.path+" bad token", func(t *testing.T) {
			w, _ := s.do(rt.method, rt.path, "garbage", rt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestQuizSetLifecycle(t *testing.T) {
	s := newTestServer(t, false)
	token, _ := s.signup("ann@x.test")

	w, env := s.do(http.MethodPost, "/api/quiz-sets", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	qs := decode[quizSetBody](t, env.Data)
	require.NotEmpty(t, qs.ID)

	for _, answer := range []string{"A1", "A2"} {
		w, _ = s.do(http.MethodPost, "/api/quiz-sets/"+qs.ID+"/results", token, map[string]any{"quiz_taken": "Q1", "quiz_answer": answer})
		require.Equal(t, http.StatusOK, w.Code)
	}

	// readable without a token
	w, env = s.do(http.MethodGet, "/api/quiz-sets/"+qs.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[quizSetBody](t, env.Data)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "A1", got.Results[0].QuizAnswer)
	assert.Equal(t, "A2", got.Results[1].QuizAnswer)
	assert.NotEqual(t, got.Results[0].ID, got.Results[1].ID)

	w, env = s.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[struct {
		QuizSetIDs []string      `json:"quiz_set_ids"`
		QuizSets   []quizSetBody `json:"quiz_sets"`
	}](t, env.Data)
	assert.Equal(t, []string{qs.ID}, me.QuizSetIDs)
	require.Len(t, me.QuizSets, 1)

	w, env = s.do(http.MethodDelete, "/api/quiz-sets/"+qs.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, qs.ID, decode[quizSetBody](t, env.Data).ID)

	w, env = s.do(http.MethodDelete, "/api/quiz-sets/"+qs.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data))

	w, env = s.do(http.MethodGet, "/api/quiz-sets/"+qs.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data))

	w, env = s.do(http.MethodPost, "/api/quiz-sets/"+qs.ID+"/results", token, map[string]any{"quiz_taken": "Q", "quiz_answer": "A"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data))

	w, env = s.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, string(env.Data), qs.ID)
}

func TestQuizSet_MalformedID(t *testing.T) {
	s := newTestServer(t, false)
	w, env := s.do(http.MethodGet, "/api/quiz-sets/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be a valid UUID", env.Error.Details["id"])
}

func TestQuizSet_StrictOwnership(t *testing.T) {
	s := newTestServer(t, true)
	ann, _ := s.signup("ann@x.test")
	bob, _ := s.signup("bob@x.test")

	_, env := s.do(http.MethodPost, "/api/quiz-sets", ann, nil)
	qs := decode[quizSetBody](t, env.Data)

	w, _ := s.do(http.MethodGet, "/api/quiz-sets/"+qs.ID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodPost, "/api/quiz-sets/"+qs.ID+"/results", bob, map[string]any{"quiz_taken": "Q", "quiz_answer": "A"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data))

	w, env = s.do(http.MethodGet, "/api/quiz-sets/"+qs.ID, ann, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[quizSetBody](t, env.Data).Results)
}

func TestRecordingLifecycle(t *testing.T) {
	s := newTestServer(t, false)
	token, _ := s.signup("ann@x.test")

	w, env := s.do(http.MethodPost, "/api/recordings", token, map[string]any{"audio": "data:audio/webm;base64,AAAA", "title": "Take 1"})
	require.Equal(t, http.StatusCreated, w.Code)
	rec := decode[struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}](t, env.Data)
	assert.Equal(t, "Take 1", rec.Title)

	w, env = s.do(http.MethodGet, "/api/recordings/"+rec.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), rec.ID)

	w, env = s.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), rec.ID)

	w, _ = s.do(http.MethodDelete, "/api/recordings/"+rec.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodDelete, "/api/recordings/"+rec.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", string(env.Data))

	// no index configured: search answers with an empty list
	w, env = s.do(http.MethodGet, "/api/recordings/search?q=take", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", string(env.Data))
}

func TestUploadAudio_WithoutStorage(t *testing.T) {
	s := newTestServer(t, false)
	token, _ := s.signup("ann@x.test")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "take.webm")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("webm"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/recordings/audio", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestUpdateProfile_Route(t *testing.T) {
	s := newTestServer(t, false)
	token, _ := s.signup("ann@x.test")
	s.signup("bob@x.test")

	w, env := s.do(http.MethodPut, "/api/profile", token, map[string]any{"name": "Ann", "password": "new-password"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ann", decode[struct {
		Name string `json:"name"`
	}](t, env.Data).Name)

	w, _ = s.do(http.MethodPost, "/api/login", "", map[string]any{"email": "ann@x.test", "password": "new-password"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodPut, "/api/profile", token, map[string]any{"email": "bob@x.test"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = s.do(http.MethodPut, "/api/profile", token, map[string]any{"id": "someone-else"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "is not allowed", env.Error.Details["id"])
}

func TestCookieAuthAndHealth(t *testing.T) {
	s := newTestServer(t, false)
	token, _ := s.signup("ann@x.test")

	req := httptest.NewRequest(http.MethodPost, "/api/quiz-sets", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: token})
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, env := s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","store":"memory"}`, string(env.Data))
}

func TestMetricsRoute(t *testing.T) {
	s := newTestServer(t, false)
	s.do(http.MethodGet, "/api/health", "", nil)

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `quiz_history_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}

func TestPasswordByteLimit(t *testing.T) {
	s := newTestServer(t, false)
	long := strings.Repeat("é", 40)

	w, env := s.do(http.MethodPost, "/api/signup", "", map[string]any{"email": "ann@x.test", "password": long})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be 8 to 72 bytes long", env.Error.Details["password"])

	token, _ := s.signup("ann@x.test")
	w, env = s.do(http.MethodPut, "/api/profile", token, map[string]any{"password": long})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "must be 8 to 72 bytes long", env.Error.Details["password"])

	w, _ = s.do(http.MethodPut, "/api/profile", token, map[string]any{"password": strings.Repeat("é", 36)})
	assert.Equal(t, http.StatusOK, w.Code, "72 bytes is accepted")
}
