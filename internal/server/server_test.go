package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btced/btced/internal/config"
	"github.com/btced/btced/internal/content"
	"github.com/btced/btced/internal/price"
	"github.com/btced/btced/internal/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	lib, err := content.Load()
	require.NoError(t, err)

	priceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"bitcoin":{"usd":100000}}`)
	}))
	t.Cleanup(priceSrv.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pc := price.NewClient(logger, price.WithBaseURL(priceSrv.URL))
	mgr := session.NewManager(lib, nil, nil, pc.USDPerBTC)

	cfg := config.Config{CORSOrigins: []string{"*"}}
	return New(cfg, logger, mgr, lib, pc)
}

// call performs a request against the router and decodes the JSON body.
func call(t *testing.T, srv *Server, method, path, sessionID string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if sessionID != "" {
		req.Header.Set(SessionHeader, sessionID)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec.Code, decoded
}

func newSessionID(t *testing.T, srv *Server) string {
	t.Helper()
	status, body := call(t, srv, http.MethodPost, "/api/v1/sessions", "", nil)
	require.Equal(t, http.StatusCreated, status)
	id, _ := body["session_id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)
	id := newSessionID(t, srv)

	status, body := call(t, srv, http.MethodGet, "/api/v1/session", id, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "es", body["language"])

	status, _ = call(t, srv, http.MethodDelete, "/api/v1/session", id, nil)
	require.Equal(t, http.StatusNoContent, status)

	status, _ = call(t, srv, http.MethodGet, "/api/v1/session", id, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestSessionHeaderRequired(t *testing.T) {
	srv := newTestServer(t)

	status, body := call(t, srv, http.MethodGet, "/api/v1/progress", "", nil)
	require.Equal(t, http.StatusBadRequest, status)
	require.Contains(t, body["error"], SessionHeader)

	status, _ = call(t, srv, http.MethodGet, "/api/v1/progress", "nope", nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestSetLanguage(t *testing.T) {
	srv := newTestServer(t)
	id := newSessionID(t, srv)

	status, _ := call(t, srv, http.MethodPut, "/api/v1/session/language", id,
		map[string]string{"language": "fr"})
	require.Equal(t, http.StatusBadRequest, status)

	status, body := call(t, srv, http.MethodPut, "/api/v1/session/language", id,
		map[string]string{"language": "en"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "en", body["language"])
}

func TestLessonCompletion(t *testing.T) {
	srv := newTestServer(t)
	id := newSessionID(t, srv)

	status, body := call(t, srv, http.MethodGet, "/api/v1/lessons", id, nil)
	require.Equal(t, http.StatusOK, status)
	lessons := body["lessons"].([]any)
	require.NotEmpty(t, lessons)
	first := lessons[0].(map[string]any)
	lessonID := first["id"].(string)

	status, body = call(t, srv, http.MethodPost, "/api/v1/lessons/"+lessonID+"/complete", id, nil)
	require.Equal(t, http.StatusOK, status)
	progress := body["progress"].(map[string]any)
	// Lesson XP plus the first-lesson achievement bonus.
	require.Equal(t, float64(50), progress["xp"])

	status, _ = call(t, srv, http.MethodPost, "/api/v1/lessons/missing/complete", id, nil)
	require.Equal(t, http.StatusNotFound, status)
}

func TestQuizFlow(t *testing.T) {
	srv := newTestServer(t)
	id := newSessionID(t, srv)

	status, body := call(t, srv, http.MethodGet, "/api/v1/quiz", id, nil)
	require.Equal(t, http.StatusOK, status)
	question := body["question"].(map[string]any)
	require.NotEmpty(t, question["question"])
	// The correct index never leaks before an answer.
	require.NotContains(t, question, "correct")

	status, body = call(t, srv, http.MethodPost, "/api/v1/quiz/answer", id,
		map[string]int{"choice": 0})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["correct"])
	require.NotEmpty(t, body["explanation"])

	// Double submit is rejected.
	status, _ = call(t, srv, http.MethodPost, "/api/v1/quiz/answer", id,
		map[string]int{"choice": 0})
	require.Equal(t, http.StatusConflict, status)

	status, body = call(t, srv, http.MethodPost, "/api/v1/quiz/next", id, nil)
	require.Equal(t, http.StatusOK, status)
	quizState := body["quiz"].(map[string]any)
	summary := quizState["summary"].(map[string]any)
	require.Equal(t, float64(1), summary["index"])
	require.Equal(t, float64(1), summary["score"])

	// Advancing without an answer is rejected.
	status, _ = call(t, srv, http.MethodPost, "/api/v1/quiz/next", id, nil)
	require.Equal(t, http.StatusConflict, status)

	status, body = call(t, srv, http.MethodPost, "/api/v1/quiz/restart", id, nil)
	require.Equal(t, http.StatusOK, status)
	summary = body["summary"].(map[string]any)
	require.Equal(t, float64(0), summary["index"])
	require.Equal(t, float64(0), summary["score"])
}

func TestStoryFlow(t *testing.T) {
	srv := newTestServer(t)
	id := newSessionID(t, srv)

	// Navigation before a selection is rejected.
	status, _ := call(t, srv, http.MethodPost, "/api/v1/story/next", id, nil)
	require.Equal(t, http.StatusConflict, status)

	status, body := call(t, srv, http.MethodGet, "/api/v1/stories", id, nil)
	require.Equal(t, http.StatusOK, status)
	stories := body["stories"].([]any)
	require.NotEmpty(t, stories)
	storyID := stories[0].(map[string]any)["id"].(string)

	status, _ = call(t, srv, http.MethodPost, "/api/v1/stories/missing/select", id, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, body = call(t, srv, http.MethodPost, "/api/v1/stories/"+storyID+"/select", id, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["at_start"])

	// Finishing mid-story is rejected.
	status, _ = call(t, srv, http.MethodPost, "/api/v1/story/finish", id, nil)
	require.Equal(t, http.StatusConflict, status)

	// Walk to the end and finish.
	for {
		status, body = call(t, srv, http.MethodPost, "/api/v1/story/next", id, nil)
		require.Equal(t, http.StatusOK, status)
		view := body["story"].(map[string]any)
		if view["at_end"].(bool) {
			break
		}
	}
	status, body = call(t, srv, http.MethodPost, "/api/v1/story/finish", id, nil)
	require.Equal(t, http.StatusOK, status)
	effects := body["effects"].([]any)
	require.NotEmpty(t, effects)
}

func TestWalletFlow(t *testing.T) {
	srv := newTestServer(t)
	id := newSessionID(t, srv)

	status, body := call(t, srv, http.MethodGet, "/api/v1/wallet", id, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1_000_000), body["balance_sats"])
	require.Equal(t, float64(1000), body["usd_value"])

	status, body = call(t, srv, http.MethodPost, "/api/v1/wallet/send", id,
		map[string]any{"amount_sats": 500_000, "tier": "lightning"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(499_999), body["balance_sats"])

	// Overdraft leaves the balance untouched.
	status, _ = call(t, srv, http.MethodPost, "/api/v1/wallet/send", id,
		map[string]any{"amount_sats": 10_000_000})
	require.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = call(t, srv, http.MethodPost, "/api/v1/wallet/receive", id,
		map[string]any{"from": "maria", "amount_sats": 200_000})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(699_999), body["balance_sats"])

	status, body = call(t, srv, http.MethodGet, "/api/v1/wallet/history", id, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["transactions"].([]any), 2)

	status, body = call(t, srv, http.MethodPost, "/api/v1/wallet/reset", id, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(1_000_000), body["balance_sats"])
}

func TestBudgetEvaluate(t *testing.T) {
	srv := newTestServer(t)
	id := newSessionID(t, srv)

	status, body := call(t, srv, http.MethodPost, "/api/v1/budget/evaluate", id,
		map[string]int{"needs": 50, "wants": 20, "savings": 20, "emergency": 10})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "good", body["verdict"])
	require.NotEmpty(t, body["message"])
	require.NotEmpty(t, body["effects"])

	status, body = call(t, srv, http.MethodPost, "/api/v1/budget/evaluate", id,
		map[string]int{"needs": 50, "wants": 30, "savings": 10, "emergency": 5})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "unbalanced", body["verdict"])
}

func TestTutorFallbackWithoutProvider(t *testing.T) {
	srv := newTestServer(t)
	id := newSessionID(t, srv)

	status, body := call(t, srv, http.MethodGet, "/api/v1/tutor/guide/intro", id, nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, body["configured"])
	require.NotEmpty(t, body["intro"])

	status, _ = call(t, srv, http.MethodGet, "/api/v1/tutor/wizard/intro", id, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, body = call(t, srv, http.MethodPost, "/api/v1/tutor/guide/chat", id,
		map[string]string{"message": "hola"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["fallback"])
	require.NotEmpty(t, body["text"])

	status, _ = call(t, srv, http.MethodPost, "/api/v1/tutor/guide/chat", id,
		map[string]string{"message": ""})
	require.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, srv, http.MethodPost, "/api/v1/tutor/guide/reset", id, nil)
	require.Equal(t, http.StatusNoContent, status)
}

func TestPriceAndHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := call(t, srv, http.MethodGet, "/api/v1/price", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, float64(100000), body["usd"])
	require.Equal(t, float64(1000), body["sats_per_dollar"])

	status, body = call(t, srv, http.MethodGet, "/api/v1/health", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "ok", body["status"])
}
