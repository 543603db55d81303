package gesture

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/input"
)

// recordingSink accepts everything and remembers what it saw.
type recordingSink struct {
	mu     sync.Mutex
	events []input.Classification
}

func (s *recordingSink) Submit(src input.Source, ev input.Event) (input.Command, bool) {
	c := ev.(input.Classification)
	s.mu.Lock()
	s.events = append(s.events, c)
	s.mu.Unlock()
	lane, _ := input.LaneForLabel(c.Label)
	return input.SetLane(lane), c.Confidence > 0.6
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	return conn
}

func TestFeedForwardsClassifications(t *testing.T) {
	sink := &recordingSink{}
	feed := NewFeed(DefaultConfig(), sink, quietLogger())
	srv := httptest.NewServer(feed.Handler())
	defer srv.Close()
	defer feed.Close()

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http")+"/gesture")
	defer conn.Close()

	if err := conn.WriteJSON(Message{Label: "Derecha", Confidence: 0.9}); err != nil {
		t.Fatal(err)
	}
	var ack Ack
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatal(err)
	}
	if !ack.Accepted || ack.Lane != "right" {
		t.Errorf("ack = %+v, want accepted right", ack)
	}

	conn.WriteJSON(Message{Label: "Left", Confidence: 0.3})
	conn.ReadJSON(&ack)
	if ack.Accepted {
		t.Errorf("low confidence ack = %+v, want rejected", ack)
	}

	sink.mu.Lock()
	n := len(sink.events)
	sink.mu.Unlock()
	if n != 2 {
		t.Errorf("sink saw %d events, want 2", n)
	}
}

func TestFeedRejectsUnknownLabel(t *testing.T) {
	sink := &recordingSink{}
	feed := NewFeed(DefaultConfig(), sink, quietLogger())
	srv := httptest.NewServer(feed.Handler())
	defer srv.Close()
	defer feed.Close()

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http")+"/gesture")
	defer conn.Close()

	conn.WriteJSON(Message{Label: "Jump", Confidence: 0.99})
	var ack Ack
	if err := conn.ReadJSON(&ack); err != nil {
		t.Fatal(err)
	}
	if ack.Accepted || ack.Error == "" {
		t.Errorf("ack = %+v, want error", ack)
	}
	if len(sink.events) != 0 {
		t.Error("unknown label reached the sink")
	}
}

func TestFeedIntoUnifier(t *testing.T) {
	u := input.NewUnifier(config.DefaultConfig().Input, nil)
	feed := NewFeed(DefaultConfig(), u, quietLogger())
	srv := httptest.NewServer(feed.Handler())
	defer srv.Close()
	defer feed.Close()

	conn := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http")+"/gesture")
	defer conn.Close()

	conn.WriteJSON(Message{Label: "Centro", Confidence: 0.8})
	var ack Ack
	conn.ReadJSON(&ack)

	cmds := u.Drain()
	if len(cmds) != 1 || cmds[0].Source != input.SourceGesture {
		t.Errorf("Drain() = %v, want one gesture command", cmds)
	}
}

func TestStartAndClose(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	feed := NewFeed(cfg, &recordingSink{}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := feed.Start(ctx); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	addr := feed.Addr()
	if addr == "" {
		t.Fatal("Addr() empty after Start")
	}
	if err := feed.Start(ctx); err == nil {
		t.Error("second Start() should fail")
	}

	conn := dial(t, "ws://"+addr+"/gesture")
	defer conn.Close()

	if err := feed.Close(); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	// The open connection is closed by the feed
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after Close")
	}
	if err := feed.Close(); err != nil {
		t.Errorf("second Close() failed: %v", err)
	}
}

func TestContextCancelCloses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Addr = "127.0.0.1:0"
	feed := NewFeed(cfg, &recordingSink{}, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	if err := feed.Start(ctx); err != nil {
		t.Fatal(err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		feed.mu.Lock()
		closed := feed.closed
		feed.mu.Unlock()
		if closed {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Error("feed not closed after context cancel")
}
