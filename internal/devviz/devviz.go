// Package devviz is the optional, loopback-only live graph viewer behind
// `zls graph --watch`: a websocket stream of the document store's
// handle/build-file reference graph, for interactively debugging the
// server itself. It is never reachable from a client-facing LSP method
// and never starts unless explicitly requested.
//
// Grounded on the teacher's internal/graph (older iteration):
// gorilla/websocket upgrade, a client-set-plus-mutex broadcast loop, and
// an init-then-incremental message shape, adapted from broadcasting a
// note graph to broadcasting depgraph.Snapshot. The teacher's
// embed.FS-served static bundle is dropped — SPEC_FULL.md carries no
// frontend framework to build a richer page against, so the page served
// here is a small inline HTML+JS string instead.
package devviz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"zls/internal/depgraph"
	"zls/internal/store"
)

// message is the envelope sent over the websocket: "init" for the first
// frame a client receives, "update" for every subsequent change.
type message struct {
	Op       string            `json:"op"`
	Snapshot *depgraph.Snapshot `json:"snapshot,omitempty"`
}

// Hub polls a store for graph changes and fans them out to connected
// websocket clients.
type Hub struct {
	store *store.Store
	log   *logrus.Entry

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	last    []byte
}

// NewHub builds a Hub over s. s is read, never mutated.
func NewHub(s *store.Store) *Hub {
	return &Hub{
		store:    s,
		log:      logrus.WithField("component", "devviz"),
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		clients:  make(map[*websocket.Conn]bool),
	}
}

// Serve starts the HTTP+WS server on a loopback address and returns the
// URL to view it at. addr must resolve to a loopback interface; a
// non-loopback address is rejected, since this endpoint has no
// authentication and streams the full document store's contents.
func (h *Hub) Serve(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return "", fmt.Errorf("devviz: invalid address %q: %w", addr, err)
	}
	if host == "" {
		host = "localhost"
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return "", fmt.Errorf("devviz: resolving %q: %w", host, err)
	}
	for _, ip := range ips {
		if !ip.IsLoopback() {
			return "", fmt.Errorf("devviz: refusing to bind non-loopback address %q", addr)
		}
	}

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("devviz: listen: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveIndex)
	mux.HandleFunc("/ws", h.serveWS)

	go func() {
		if err := http.Serve(l, mux); err != nil {
			h.log.WithError(err).Warn("devviz server stopped")
		}
	}()
	go h.pollLoop(500 * time.Millisecond)

	return "http://" + l.Addr().String() + "/", nil
}

// pollLoop recomputes the store's snapshot on interval and broadcasts it
// whenever it differs from the last one sent. The store has no mutation
// hooks to push from, so polling is the only signal source; the interval
// is short enough for interactive use and irrelevant to correctness
// since this package never drives store behavior.
func (h *Hub) pollLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		snap, err := depgraph.Build(h.store)
		if err != nil {
			h.log.WithError(err).Debug("devviz snapshot failed")
			continue
		}
		data, err := json.Marshal(message{Op: "update", Snapshot: &snap})
		if err != nil {
			continue
		}
		h.mu.Lock()
		changed := !bytes.Equal(data, h.last)
		if changed {
			h.last = data
		}
		clients := make([]*websocket.Conn, 0, len(h.clients))
		for c := range h.clients {
			clients = append(clients, c)
		}
		h.mu.Unlock()

		if !changed {
			continue
		}
		for _, c := range clients {
			h.send(c, data)
		}
	}
}

func (h *Hub) send(c *websocket.Conn, data []byte) {
	if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
		h.log.WithError(err).Debug("devviz client write failed")
		h.mu.Lock()
		delete(h.clients, c)
		h.mu.Unlock()
		c.Close()
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Debug("devviz websocket upgrade failed")
		return
	}
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	snap, err := depgraph.Build(h.store)
	if err == nil {
		if data, err := json.Marshal(message{Op: "init", Snapshot: &snap}); err == nil {
			_ = conn.WriteMessage(websocket.TextMessage, data)
		}
	}

	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
}

func (h *Hub) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

const indexPage = `<!doctype html>
<html><head><title>zls store graph</title></head>
<body>
<pre id="out">connecting...</pre>
<script>
  var ws = new WebSocket("ws://" + location.host + "/ws");
  ws.onmessage = function(ev) {
    document.getElementById("out").textContent = ev.data;
  };
</script>
</body></html>
`
