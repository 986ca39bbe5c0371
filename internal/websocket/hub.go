package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/rollcall/internal/model"
)

const sendBuffer = 32

// ReportRenderer renders the text report for a projection.
type ReportRenderer func(cfg model.ProjectionConfig) (string, int)

// Client is one connected view.
type Client struct {
	ID   string
	send chan []byte

	mu     sync.Mutex
	report *model.ProjectionConfig
	closed bool
}

// Send returns the outbound message queue.
func (c *Client) Send() <-chan []byte {
	return c.send
}

func (c *Client) watching() (model.ProjectionConfig, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.report == nil {
		return model.ProjectionConfig{}, false
	}
	return *c.report, true
}

// enqueue queues msg without blocking. It reports false when the
// client is gone or its buffer is full.
func (c *Client) enqueue(msg []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub fans roster changes out to every connected view. It satisfies
// service.ChangeNotifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	render  ReportRenderer
	log     zerolog.Logger
}

// NewHub creates an empty hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		log:     log.With().Str("component", "ws_hub").Logger(),
	}
}

// SetReportRenderer installs the renderer used for live report pushes.
func (h *Hub) SetReportRenderer(r ReportRenderer) {
	h.mu.Lock()
	h.render = r
	h.mu.Unlock()
}

// Register adds a new client to the hub.
func (h *Hub) Register() *Client {
	c := &Client{ID: uuid.New().String(), send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	h.log.Debug().Str("client_id", c.ID).Int("clients", n).Msg("View connected")
	return c
}

// Unregister removes c and closes its queue.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()

	if ok {
		c.close()
		h.log.Debug().Str("client_id", c.ID).Msg("View disconnected")
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendTo queues a typed payload for one client.
func (h *Hub) SendTo(c *Client, v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		h.log.Error().Err(err).Msg("Marshal ws payload")
		return
	}
	if !c.enqueue(msg) {
		h.drop(c)
	}
}

// WatchReport subscribes c to live reports for cfg and pushes one immediately.
func (h *Hub) WatchReport(c *Client, cfg model.ProjectionConfig) {
	c.mu.Lock()
	c.report = &cfg
	c.mu.Unlock()
	h.pushReport(c, cfg)
}

// UnwatchReport stops live reports for c.
func (h *Hub) UnwatchReport(c *Client) {
	c.mu.Lock()
	c.report = nil
	c.mu.Unlock()
}

// RosterLoaded broadcasts the replaced roster.
func (h *Hub) RosterLoaded(entries []model.MarkedEntry, summary model.Summary) {
	h.broadcast(RosterEvent{Event: EventRosterLoaded, Entries: entries, Summary: summary})
	h.pushReports()
}

// MarksChanged broadcasts changed entries and the new summary.
func (h *Hub) MarksChanged(changed []model.MarkedEntry, summary model.Summary) {
	h.broadcast(MarksChangedEvent{Event: EventMarksChanged, Changed: changed, Summary: summary})
	h.pushReports()
}

// ReportCopied broadcasts the clipboard acknowledgment.
func (h *Hub) ReportCopied(records int) {
	h.broadcast(ReportCopiedEvent{Event: EventReportCopied, Records: records})
}

// ClipboardUpdated broadcasts text that reached the shared clipboard.
func (h *Hub) ClipboardUpdated(text string) {
	h.broadcast(ClipboardEvent{Event: EventClipboard, Text: text})
}

func (h *Hub) broadcast(v interface{}) {
	msg, err := json.Marshal(v)
	if err != nil {
		h.log.Error().Err(err).Msg("Marshal ws broadcast")
		return
	}
	for _, c := range h.snapshot() {
		if !c.enqueue(msg) {
			h.drop(c)
		}
	}
}

func (h *Hub) pushReports() {
	for _, c := range h.snapshot() {
		if cfg, ok := c.watching(); ok {
			h.pushReport(c, cfg)
		}
	}
}

func (h *Hub) pushReport(c *Client, cfg model.ProjectionConfig) {
	h.mu.RLock()
	render := h.render
	h.mu.RUnlock()
	if render == nil {
		return
	}
	text, n := render(cfg)
	h.SendTo(c, ReportEvent{Event: EventReport, Text: text, Records: n})
}

func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		out = append(out, c)
	}
	return out
}

// drop disconnects a client that cannot keep up.
func (h *Hub) drop(c *Client) {
	h.log.Warn().Str("client_id", c.ID).Msg("Dropping slow view")
	h.Unregister(c)
}

// WritePump drains c's queue onto conn and keeps the connection alive
// with pings. It returns when the queue is closed or a write fails.
func WritePump(conn *websocket.Conn, c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
