package http

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sunnet-n/quiz-game/internal/app"
	"github.com/sunnet-n/quiz-game/internal/domain"
	"github.com/sunnet-n/quiz-game/internal/infra/memory"
)

func TestWebSocketCommandFlow(t *testing.T) {
	bank, err := domain.NewQuestionBank(memory.SampleQuestions())
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	service := app.NewGameService(memory.NewStore(), bank)
	server := httptest.NewServer(NewRouter(RouterConfig{Service: service}))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	send(t, conn, "create", "r1", map[string]any{"hostNickname": "Alice"})
	created := readNext(t, conn, "create", "r1")
	code, _ := created["roomCode"].(string)
	hostID, _ := created["playerId"].(string)
	if code == "" || hostID == "" {
		t.Fatalf("expected roomCode and playerId, got %v", created)
	}

	send(t, conn, "start", "r2", map[string]any{"roomCode": code, "playerId": hostID})
	readNext(t, conn, "start", "r2")

	send(t, conn, "question", "r3", map[string]any{"roomCode": code})
	q := readNext(t, conn, "question", "r3")
	if _, ok := q["question"].(map[string]any)["correctAnswer"]; ok {
		t.Fatalf("question must not carry the answer key: %v", q)
	}

	send(t, conn, "answer", "r4", map[string]any{"roomCode": code, "playerId": hostID, "answer": 2, "timeSpent": 0})
	res := readNext(t, conn, "answer", "r4")
	if res["points"] != float64(1000) || res["isCorrect"] != true {
		t.Fatalf("expected 1000 points for instant correct answer, got %v", res)
	}

	send(t, conn, "leaderboard", "r5", map[string]any{"roomCode": code})
	lb := readNext(t, conn, "leaderboard", "r5")
	entries, _ := lb["leaderboard"].([]any)
	if len(entries) != 1 {
		t.Fatalf("expected one leaderboard entry, got %v", lb)
	}
}

func TestWebSocketErrors(t *testing.T) {
	bank, err := domain.NewQuestionBank(memory.SampleQuestions())
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	service := app.NewGameService(memory.NewStore(), bank)
	server := httptest.NewServer(NewRouter(RouterConfig{Service: service}))
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	send(t, conn, "teleport", "e1", nil)
	if p := readNext(t, conn, "error", "e1"); p["kind"] != "validation" {
		t.Fatalf("expected validation error for unknown command, got %v", p)
	}

	send(t, conn, "room", "e2", map[string]any{"roomCode": "NOPE00"})
	if p := readNext(t, conn, "error", "e2"); p["kind"] != "not_found" {
		t.Fatalf("expected not_found, got %v", p)
	}

	// The connection stays usable after errors.
	send(t, conn, "create", "e3", map[string]any{"hostNickname": "Alice"})
	readNext(t, conn, "create", "e3")
}

func send(t *testing.T, conn *websocket.Conn, typ, requestID string, payload any) {
	t.Helper()
	msg := map[string]any{"type": typ, "requestId": requestID}
	if payload != nil {
		msg["payload"] = payload
	}
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readNext(t *testing.T, conn *websocket.Conn, expectType, expectID string) map[string]any {
	t.Helper()
	var msg struct {
		Type      string         `json:"type"`
		RequestID string         `json:"requestId"`
		Payload   map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if msg.Type != expectType {
		t.Fatalf("expected type %s, got %s (%v)", expectType, msg.Type, msg.Payload)
	}
	if msg.RequestID != expectID {
		t.Fatalf("expected requestId %s, got %s", expectID, msg.RequestID)
	}
	return msg.Payload
}
