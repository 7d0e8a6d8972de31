package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/termle/internal/daily"
	"github.com/robalobadob/termle/internal/game"
	"github.com/robalobadob/termle/internal/store"
	"github.com/robalobadob/termle/internal/words"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type testServer struct {
	*Server
	now time.Time
}

func newTestServer(t *testing.T, answers ...string) *testServer {
	t.Helper()
	src, err := words.New(answers, []string{"TRACE", "ALLOY", "LOLLY", "ADIEU"})
	require.NoError(t, err)

	ts := &testServer{now: testNow}
	clock := func() time.Time { return ts.now }
	ts.Server = New(store.NewMemoryStore(store.WithClock(clock)), src, Options{
		Secret:    []byte("test-secret"),
		TokenTTL:  time.Hour,
		DailySalt: "salt",
		Now:       clock,
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.Router().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) newRound(t *testing.T, body string) newRoundRes {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/round/new", "", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res newRoundRes
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	require.NotEmpty(t, res.RoundID)
	return res
}

// roundBody mirrors roundRes with plain strings for decoding.
type roundBody struct {
	Marks    []string          `json:"marks"`
	State    string            `json:"state"`
	Attempts int               `json:"attempts"`
	Guesses  []string          `json:"guesses"`
	Keyboard map[string]string `json:"keyboard"`
	Answer   string            `json:"answer"`
}

func decodeRound(t *testing.T, rec *httptest.ResponseRecorder) roundBody {
	t.Helper()
	var b roundBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b), rec.Body.String())
	return b
}

func TestServer_Health(t *testing.T) {
	ts := newTestServer(t, "CRANE")
	rec := ts.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	rec = ts.do(t, http.MethodGet, "/debug/words", "", "")
	assert.JSONEq(t, `{"answers":1,"allowed":5}`, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"not_found","path":"/nope"}`, rec.Body.String())
}

func assertJSONError(t *testing.T, rec *httptest.ResponseRecorder, code int, msg string) {
	t.Helper()
	assert.Equal(t, code, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"`+msg+`"}`, rec.Body.String())
}

func TestServer_PlayRound(t *testing.T) {
	ts := newTestServer(t, "CRANE")
	tok := ts.newRound(t, "").Token

	rec := ts.do(t, http.MethodPost, "/round/guess", tok, `{"guess":"trace"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	b := decodeRound(t, rec)
	assert.Equal(t, []string{"absent", "correct", "correct", "present", "correct"}, b.Marks)
	assert.Equal(t, "correct", b.Keyboard["A"])
	assert.Equal(t, "playing", b.State)
	assert.Equal(t, 1, b.Attempts)
	assert.Equal(t, []string{"TRACE"}, b.Guesses)
	assert.Equal(t, "correct", b.Keyboard["R"])
	assert.Equal(t, "absent", b.Keyboard["T"])
	assert.Equal(t, "unused", b.Keyboard["Z"])
	assert.Empty(t, b.Answer)

	tests := []struct {
		name          string
		body          string
		expected      int
		expectedError string
	}{
		{name: "already guessed", body: `{"guess":"TRACE"}`, expected: http.StatusConflict, expectedError: "already_guessed"},
		{name: "not in list", body: `{"guess":"zzzzz"}`, expected: http.StatusUnprocessableEntity, expectedError: "invalid_word"},
		{name: "malformed", body: `{"guess":"ab"}`, expected: http.StatusUnprocessableEntity, expectedError: "invalid_word"},
		{name: "bad json", body: `{`, expected: http.StatusBadRequest, expectedError: "bad_json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/round/guess", tok, tt.body)
			assertJSONError(t, rec, tt.expected, tt.expectedError)
		})
	}

	rec = ts.do(t, http.MethodPost, "/round/guess", tok, `{"guess":"CRANE"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	b = decodeRound(t, rec)
	assert.Equal(t, "won", b.State)
	assert.Equal(t, 2, b.Attempts)
	assert.Equal(t, "CRANE", b.Answer)

	rec = ts.do(t, http.MethodPost, "/round/guess", tok, `{"guess":"ALLOY"}`)
	assertJSONError(t, rec, http.StatusGone, "round_finished")

	rec = ts.do(t, http.MethodGet, "/round", tok, "")
	require.Equal(t, http.StatusOK, rec.Code)
	b = decodeRound(t, rec)
	assert.Nil(t, b.Marks)
	assert.Equal(t, "won", b.State)
	assert.Equal(t, []string{"TRACE", "CRANE"}, b.Guesses)
}

func TestServer_Tokens(t *testing.T) {
	ts := newTestServer(t, "CRANE")
	tok := ts.newRound(t, "").Token

	other := New(store.NewMemoryStore(), ts.words, Options{Secret: []byte("other"), Now: ts.opts.Now})
	forged, _, err := other.signRoundToken("whatever", testNow)
	require.NoError(t, err)
	unknown, _, err := ts.signRoundToken("missing", testNow)
	require.NoError(t, err)

	tests := []struct {
		name          string
		token         string
		expected      int
		expectedError string
	}{
		{name: "missing token", token: "", expected: http.StatusUnauthorized, expectedError: "unauthorized"},
		{name: "garbage token", token: "abc.def.ghi", expected: http.StatusUnauthorized, expectedError: "invalid_token"},
		{name: "wrong secret", token: forged, expected: http.StatusUnauthorized, expectedError: "invalid_token"},
		{name: "unknown round", token: unknown, expected: http.StatusNotFound, expectedError: "not_found"},
		{name: "valid", token: tok, expected: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodGet, "/round", tt.token, "")
			if tt.expectedError != "" {
				assertJSONError(t, rec, tt.expected, tt.expectedError)
				return
			}
			assert.Equal(t, tt.expected, rec.Code, rec.Body.String())
		})
	}

	t.Run("expired", func(t *testing.T) {
		ts.now = testNow.Add(2 * time.Hour)
		defer func() { ts.now = testNow }()
		rec := ts.do(t, http.MethodGet, "/round", tok, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestServer_SweepsExpiredRounds(t *testing.T) {
	ts := newTestServer(t, "CRANE")
	res := ts.newRound(t, "")

	ts.now = testNow.Add(2 * time.Hour)
	ts.newRound(t, "")

	// The old token is still decodable with a matching clock, but its round is gone.
	ts.now = testNow
	rec := ts.do(t, http.MethodGet, "/round", res.Token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_DailyRound(t *testing.T) {
	answers := []string{"CRANE", "MANGO", "ALLOY", "TRACE"}
	ts := newTestServer(t, answers...)
	tok := ts.newRound(t, `{"daily":true}`).Token

	want := daily.Answer(testNow, "salt", ts.words)
	rec := ts.do(t, http.MethodPost, "/round/guess", tok, `{"guess":"`+want+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	b := decodeRound(t, rec)
	assert.Equal(t, "won", b.State)
	assert.Equal(t, want, b.Answer)
}

func TestServer_StandardScoring(t *testing.T) {
	src, err := words.New([]string{"ALLOY"}, []string{"LOLLY"})
	require.NoError(t, err)
	s := New(store.NewMemoryStore(), src, Options{
		Secret: []byte("k"),
		Scorer: game.EvaluateStandard,
		Now:    func() time.Time { return testNow },
	})
	ts := &testServer{Server: s, now: testNow}

	tok := ts.newRound(t, "").Token
	rec := ts.do(t, http.MethodPost, "/round/guess", tok, `{"guess":"LOLLY"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"present", "present", "correct", "absent", "correct"}, decodeRound(t, rec).Marks)
}

func TestServer_CORSPreflight(t *testing.T) {
	ts := newTestServer(t, "CRANE")
	rec := ts.do(t, http.MethodOptions, "/round/new", "", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
