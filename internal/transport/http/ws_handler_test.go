package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ccse-study-service/internal/app"
	"ccse-study-service/internal/catalog"
	"ccse-study-service/internal/domain"
	"ccse-study-service/internal/identity"
	"ccse-study-service/internal/infra/memory"
	"ccse-study-service/internal/progress"
	"github.com/gorilla/websocket"
)

const testSecret = "test-secret"

type testEnv struct {
	server  *httptest.Server
	tracker *progress.Tracker
	remote  *memory.RemoteStore
	catalog *catalog.Catalog
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cat := catalog.Builtin()
	remote := memory.NewRemoteStore()
	tracker := progress.NewTracker(memory.NewLocalStore(), cat, progress.WithRemote(remote))
	tracker.Load(context.Background())
	service := app.NewStudyService(memory.NewSessionStore(), cat, tracker, nil, nil)
	ws := NewWSHandler(service, tracker, identity.NewVerifier(testSecret))

	server := httptest.NewServer(NewRouter(cat, tracker, ws, nil))
	t.Cleanup(func() {
		server.Close()
		tracker.Wait()
	})
	return &testEnv{server: server, tracker: tracker, remote: remote, catalog: cat}
}

func (e *testEnv) dial(t *testing.T, clientID string) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(e.server.URL, "http") + "/ws?clientId=" + clientID
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	readType(t, conn, "view")
	readType(t, conn, "progress")
	return conn
}

type rawMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func send(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	if err := conn.WriteJSON(map[string]any{"type": typ, "payload": payload}); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readType(t *testing.T, conn *websocket.Conn, expect string) json.RawMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	var msg rawMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read %s: %v", expect, err)
	}
	if msg.Type != expect {
		t.Fatalf("expected %s, got %s (%s)", expect, msg.Type, msg.Payload)
	}
	return msg.Payload
}

func TestWebSocketExamFlow(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "c1")

	send(t, conn, "selectTab", map[string]any{"tab": "exam"})
	var view app.View
	if err := json.Unmarshal(readType(t, conn, "view"), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Exam == nil || len(view.Cards) != 21 {
		t.Fatalf("expected a 21 question exam, got %+v", view.Exam)
	}

	first := view.Cards[0].QuestionID
	q, _ := env.catalog.Question(first)
	send(t, conn, "answer", map[string]any{"questionId": first, "letter": q.Answer})
	readType(t, conn, "view")
	readType(t, conn, "progress")

	send(t, conn, "submitExam", nil)
	var result domain.ExamResult
	if err := json.Unmarshal(readType(t, conn, "examResult"), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Score != 1 || result.Total != 21 || result.Passed {
		t.Fatalf("unexpected result %+v", result)
	}
	readType(t, conn, "view")
	var prog progressPayload
	if err := json.Unmarshal(readType(t, conn, "progress"), &prog); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if prog.State.Stats.ExamsTaken != 1 || prog.State.Stats.TotalCorrect != 1 {
		t.Fatalf("unexpected stats %+v", prog.State.Stats)
	}

	send(t, conn, "answer", map[string]any{"questionId": first, "letter": q.Answer})
	var errPayload errorPayload
	if err := json.Unmarshal(readType(t, conn, "error"), &errPayload); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !errPayload.Rejected {
		t.Fatalf("answering after submit should be a rejection, got %+v", errPayload)
	}
}

func TestWebSocketStudyAndFavorite(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "c1")

	send(t, conn, "search", map[string]any{"query": "1001"})
	var view app.View
	if err := json.Unmarshal(readType(t, conn, "view"), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Cards) != 1 || view.Cards[0].QuestionID != 1001 {
		t.Fatalf("expected only question 1001, got %d cards", len(view.Cards))
	}

	send(t, conn, "toggleFavorite", map[string]any{"questionId": 1001})
	if err := json.Unmarshal(readType(t, conn, "view"), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if !view.Cards[0].Favorite {
		t.Fatalf("expected 1001 to be a favorite")
	}
	readType(t, conn, "progress")
	if !env.tracker.IsFavorite(1001) {
		t.Fatalf("tracker should hold the favorite")
	}

	send(t, conn, "bogus", nil)
	readType(t, conn, "error")
}

func TestWebSocketSignIn(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t, "c1")

	send(t, conn, "signIn", map[string]any{"token": "not-a-jwt"})
	readType(t, conn, "error")

	token, err := identity.Issue(testSecret, "learner-7", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	send(t, conn, "signIn", map[string]any{"token": token})
	readType(t, conn, "view")
	var prog progressPayload
	if err := json.Unmarshal(readType(t, conn, "progress"), &prog); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if prog.Identity != "learner-7" {
		t.Fatalf("expected identity learner-7, got %q", prog.Identity)
	}
	if _, found, _ := env.remote.Pull(context.Background(), "learner-7"); !found {
		t.Fatalf("sign-in should seed the remote document")
	}

	send(t, conn, "signOut", nil)
	if err := json.Unmarshal(readType(t, conn, "progress"), &prog); err != nil {
		t.Fatalf("decode progress: %v", err)
	}
	if prog.Identity != "" {
		t.Fatalf("expected anonymous after sign-out")
	}
}

func TestWebSocketRequiresClientID(t *testing.T) {
	env := newTestEnv(t)
	resp, err := http.Get(env.server.URL + "/ws")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
