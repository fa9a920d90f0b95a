package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"yatube/app/auth"
	"yatube/app/metrics"
	"yatube/app/repositories"

	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	store   *repositories.Store
	tokens  *auth.TokenIssuer
	metrics *metrics.Metrics
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := repositories.Open(repositories.Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewTokenIssuer([]byte("routes-test-key"), "yatube-test", time.Minute, time.Hour)
	m := metrics.New()

	return &testServer{
		handler: SetupRoutes(Deps{
			Store:   store,
			Tokens:  tokens,
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metrics: m,
		}),
		store:   store,
		tokens:  tokens,
		metrics: m,
	}
}

// token returns an access token for username.
func (s *testServer) token(t *testing.T, username string) string {
	t.Helper()
	pair, err := s.tokens.IssuePair(username)
	require.NoError(t, err)
	return pair.Access
}

// do sends a request; user "" is anonymous, body nil sends no body.
func (s *testServer) do(t *testing.T, method, path, user string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(t, user))
	}

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), v), rr.Body.String())
}

type postJSON struct {
	ID      int       `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Author  string    `json:"author"`
	Group   *int      `json:"group"`
}

type commentJSON struct {
	ID      int       `json:"id"`
	Author  string    `json:"author"`
	Post    int       `json:"post"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type errorJSON struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func (s *testServer) createPost(t *testing.T, user, text string) postJSON {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/api/v1/posts/", user, map[string]interface{}{"text": text})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var post postJSON
	decode(t, rr, &post)
	return post
}

func (s *testServer) createComment(t *testing.T, user string, postID int, text string) commentJSON {
	t.Helper()
	rr := s.do(t, http.MethodPost, postPath(postID)+"/comments/", user, map[string]interface{}{"text": text})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var comment commentJSON
	decode(t, rr, &comment)
	return comment
}

func postPath(id int) string {
	return "/api/v1/posts/" + itoa(id)
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}

func (s *testServer) doWithToken(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}
