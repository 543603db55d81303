// Package gesture accepts hand-gesture classifications from an external
// vision model over a WebSocket and posts them into the input unifier.
package gesture

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/motorush/internal/input"
)

// Sink receives classifications. *input.Unifier satisfies it.
type Sink interface {
	Submit(src input.Source, ev input.Event) (input.Command, bool)
}

// Message is one classifier frame.
type Message struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Ack is the reply to every frame.
type Ack struct {
	Accepted bool   `json:"accepted"`
	Lane     string `json:"lane,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Config holds listener and connection settings.
type Config struct {
	Addr       string        // Listen address, e.g. "127.0.0.1:8765"
	Path       string        // WebSocket endpoint path
	ReadLimit  int64         // Max frame size in bytes
	PongWait   time.Duration // Read deadline extended on every pong
	PingPeriod time.Duration // Must be shorter than PongWait
	WriteWait  time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:       "127.0.0.1:8765",
		Path:       "/gesture",
		ReadLimit:  4096,
		PongWait:   60 * time.Second,
		PingPeriod: 25 * time.Second,
		WriteWait:  10 * time.Second,
	}
}

// Feed is the classifier endpoint. Close releases the listener and every
// open connection.
type Feed struct {
	cfg      Config
	sink     Sink
	log      *log.Logger
	upgrader websocket.Upgrader

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	conns  map[*websocket.Conn]struct{}
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewFeed creates a feed posting into sink.
func NewFeed(cfg Config, sink Sink, logger *log.Logger) *Feed {
	if cfg.Path == "" {
		cfg.Path = DefaultConfig().Path
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Feed{
		cfg:  cfg,
		sink: sink,
		log:  logger.WithPrefix("gesture"),
		upgrader: websocket.Upgrader{
			// The classifier runs locally in a browser tab or a script
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
		stop:  make(chan struct{}),
	}
}

// Handler returns the HTTP handler serving the endpoint.
func (f *Feed) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(f.cfg.Path, f.serveWS)
	return mux
}

// Start listens on the configured address and serves until Close or ctx is done.
func (f *Feed) Start(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("gesture: feed closed")
	}
	if f.srv != nil {
		return errors.New("gesture: feed already started")
	}

	ln, err := net.Listen("tcp", f.cfg.Addr)
	if err != nil {
		return fmt.Errorf("gesture: listen %s: %w", f.cfg.Addr, err)
	}
	f.ln = ln
	f.srv = &http.Server{
		Handler:           f.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := f.srv
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			f.log.Error("serve failed", "err", err)
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
			f.Close()
		case <-f.stop:
		}
	}()

	f.log.Info("listening", "addr", ln.Addr().String(), "path", f.cfg.Path)
	return nil
}

// Addr returns the bound address, or "" before Start.
func (f *Feed) Addr() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ln == nil {
		return ""
	}
	return f.ln.Addr().String()
}

// Close stops the listener, closes open connections and waits for their
// handlers to return. Safe to call multiple times.
func (f *Feed) Close() error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.closed = true
	close(f.stop)
	srv := f.srv
	for c := range f.conns {
		c.Close()
	}
	f.mu.Unlock()

	var err error
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = srv.Shutdown(ctx)
	}
	f.wg.Wait()
	f.log.Info("stopped")
	return err
}

func (f *Feed) track(c *websocket.Conn) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.conns[c] = struct{}{}
	f.wg.Add(1)
	return true
}

func (f *Feed) untrack(c *websocket.Conn) {
	f.mu.Lock()
	delete(f.conns, c)
	f.mu.Unlock()
	f.wg.Done()
}

func (f *Feed) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.log.Warn("upgrade failed", "err", err)
		return
	}
	if !f.track(conn) {
		conn.Close()
		return
	}
	defer f.untrack(conn)
	defer conn.Close()

	f.log.Info("classifier connected", "remote", r.RemoteAddr)

	// Basic timeouts + pong handling
	if f.cfg.ReadLimit > 0 {
		conn.SetReadLimit(f.cfg.ReadLimit)
	}
	f.extendRead(conn)
	conn.SetPongHandler(func(string) error {
		f.extendRead(conn)
		return nil
	})

	var writeMu sync.Mutex
	done := make(chan struct{})
	defer close(done)
	if f.cfg.PingPeriod > 0 {
		go f.pingLoop(conn, &writeMu, done)
	}

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				f.log.Warn("read failed", "err", err)
			}
			break
		}
		f.extendRead(conn)

		ack := f.handle(msg)
		writeMu.Lock()
		f.extendWrite(conn)
		err := conn.WriteJSON(ack)
		writeMu.Unlock()
		if err != nil {
			f.log.Warn("write failed", "err", err)
			break
		}
	}
	f.log.Info("classifier disconnected", "remote", r.RemoteAddr)
}

// handle posts one frame to the sink.
func (f *Feed) handle(msg Message) Ack {
	if _, ok := input.LaneForLabel(msg.Label); !ok {
		return Ack{Error: fmt.Sprintf("unknown label %q", msg.Label)}
	}
	cmd, ok := f.sink.Submit(input.SourceGesture, input.Classification{
		Label:      msg.Label,
		Confidence: msg.Confidence,
	})
	if !ok {
		return Ack{}
	}
	return Ack{Accepted: true, Lane: cmd.Lane.String()}
}

func (f *Feed) pingLoop(conn *websocket.Conn, writeMu *sync.Mutex, done <-chan struct{}) {
	ticker := time.NewTicker(f.cfg.PingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			writeMu.Lock()
			f.extendWrite(conn)
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (f *Feed) extendRead(conn *websocket.Conn) {
	if f.cfg.PongWait > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(f.cfg.PongWait))
	}
}

func (f *Feed) extendWrite(conn *websocket.Conn) {
	if f.cfg.WriteWait > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(f.cfg.WriteWait))
	}
}
