package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestServerReadyAndMethodChecks(t *testing.T) {
	h := newTestApp(t).Handler()
	if rec := doJSON(t, h, http.MethodGet, "/__dev/ready", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected ready 200, got %d", rec.Code)
	}
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/__dev/ready"},
		{http.MethodPut, "/api/progress"},
		{http.MethodGet, "/api/progress/results"},
		{http.MethodGet, "/api/check"},
		{http.MethodPost, "/api/badges"},
	} {
		if rec := doJSON(t, h, tc.method, tc.path, ""); rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s %s: expected 405, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestServerRecordResultReturnsEmptyUnlockedList(t *testing.T) {
	h := newTestApp(t).Handler()
	rec := doJSON(t, h, http.MethodPost, "/api/progress/results", `{"itemId":"p1","deltaScore":3,"stars":3,"level":"4"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["unlockedBadges"]) != "[]" {
		t.Fatalf("expected empty array, got %s", raw["unlockedBadges"])
	}
	var out Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Progress.TotalScore != 3 || out.Progress.LevelPerfectStreaks["4"] != 1 {
		t.Fatalf("unexpected progress %+v", out.Progress)
	}
}

func TestServerLevelProgressAndReset(t *testing.T) {
	a := newTestApp(t)
	h := a.Handler()
	if rec := doJSON(t, h, http.MethodPost, "/api/progress/level", `{"level":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty level, got %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPost, "/api/progress/level", `{`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad json, got %d", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodPost, "/api/progress/level", `{"level":"all"}`); rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/progress", "")
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["lastLevel"] != "all" {
		t.Fatalf("expected lastLevel all, got %v", got["lastLevel"])
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/progress", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got["lastLevel"] != nil {
		t.Fatalf("expected lastLevel cleared, got %v", got["lastLevel"])
	}
}

func TestServerCheckAndBadges(t *testing.T) {
	h := newTestApp(t).Handler()
	body, err := json.Marshal(CheckRequest{PhraseID: "p1", Level: "3", Slots: perfectLevel3Slots()})
	if err != nil {
		t.Fatal(err)
	}
	rec := doJSON(t, h, http.MethodPost, "/api/check", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var out CheckOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if !out.Recorded || out.Result.Stars != 3 {
		t.Fatalf("unexpected check outcome %+v", out)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/badges", "")
	var badges struct {
		Badges []BadgeStatus `json:"badges"`
		Help   string        `json:"help"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &badges); err != nil {
		t.Fatal(err)
	}
	if len(badges.Badges) != 9 || badges.Help == "" {
		t.Fatalf("unexpected badges payload %+v", badges)
	}
}

func TestServerLevelsFilter(t *testing.T) {
	h := newTestApp(t).Handler()
	rec := doJSON(t, h, http.MethodGet, "/api/levels?subject=math", "")
	var got map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if _, ok := got["grammar"]; ok {
		t.Fatalf("math filter should drop grammar levels")
	}
	if !strings.Contains(string(got["math"]), "math-1") {
		t.Fatalf("expected math levels, got %s", got["math"])
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	a := newTestApp(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/api/resume"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("serve did not stop")
	}
}

func TestServerMathRoutes(t *testing.T) {
	h := newTestApp(t).Handler()
	body := `{"level":"math-1","question":{"id":"q1","question":"2 + 2 = ?","options":["3","4"],"answerIndex":1,"hint":"Double 2."},"answer":{"optionIndex":1}}`

	rec := doJSON(t, h, http.MethodPost, "/api/math/hint", body)
	var hint struct {
		Hint      string `json:"hint"`
		Available bool   `json:"available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &hint); err != nil {
		t.Fatal(err)
	}
	if !hint.Available || hint.Hint != "Double 2." {
		t.Fatalf("unexpected hint payload %+v", hint)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/math/check", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	var out MathOutcome
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if !out.Result.Correct || out.Score.Total != 1 {
		t.Fatalf("unexpected math outcome %+v", out)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/math/score", "")
	if !strings.Contains(rec.Body.String(), "1 réussite sur 1 exercice.") {
		t.Fatalf("unexpected score body %s", rec.Body.String())
	}

	if rec := doJSON(t, h, http.MethodPost, "/api/math/check", `{"level":"3"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a grammar level, got %d", rec.Code)
	}
}
