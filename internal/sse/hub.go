package sse

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/FrameCraft_Go/internal/metrics"
)

// Event is one message on the stream.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	StoreID   string      `json:"store_id,omitempty"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is a connected stream consumer. A nil filter accepts every type
// and an empty StoreID accepts every store.
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool
	StoreID      string

	dropped atomic.Int64
}

// Dropped reports how many events this client missed because its buffer
// was full.
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

func (c *Client) wants(e Event) bool {
	if c.EventFilter != nil && !c.EventFilter[e.Type] {
		return false
	}
	// unscoped events reach everyone
	return c.StoreID == "" || e.StoreID == "" || c.StoreID == e.StoreID
}

// Hub fans events out to registered clients from a single loop goroutine.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client

	broadcast  chan Event
	register   chan *Client
	unregister chan string
	shutdown   chan struct{}

	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewHub creates a hub. Call Start before registering clients.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan Event, BroadcastBufferSize),
		register:   make(chan *Client, ClientChannelBuffer),
		unregister: make(chan string, ClientChannelBuffer),
		shutdown:   make(chan struct{}),
	}
}

// Start launches the broadcast loop.
func (h *Hub) Start() {
	h.wg.Add(1)
	go h.run()
}

// Stop ends the loop and closes every client channel. Safe to call twice.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.shutdown)
		h.wg.Wait()

		h.mu.Lock()
		for id, client := range h.clients {
			close(client.EventChannel)
			delete(h.clients, id)
		}
		metrics.StreamClients.Set(0)
		h.mu.Unlock()
	})
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			metrics.StreamClients.Set(float64(len(h.clients)))
			h.mu.Unlock()

		case id := <-h.unregister:
			h.remove(id)

		case e := <-h.broadcast:
			h.fanOut(e)

		case <-h.shutdown:
			return
		}
	}
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	client, ok := h.clients[id]
	if !ok {
		return
	}
	close(client.EventChannel)
	delete(h.clients, id)
	metrics.StreamClients.Set(float64(len(h.clients)))
}

// fanOut never blocks: a client whose buffer is full misses the event.
func (h *Hub) fanOut(e Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if !client.wants(e) {
			continue
		}
		select {
		case client.EventChannel <- e:
		default:
			client.dropped.Add(1)
			metrics.StreamEventsDropped.WithLabelValues(metrics.DropReasonClientSlow).Inc()
		}
	}
}

// Register adds a client limited to eventTypes (all when empty) and to
// storeID (all when blank).
func (h *Hub) Register(eventTypes []string, storeID string) *Client {
	client := &Client{
		ID:           uuid.NewString(),
		EventChannel: make(chan Event, ClientEventBuffer),
		StoreID:      storeID,
	}
	for _, t := range eventTypes {
		if t == "" {
			continue
		}
		if client.EventFilter == nil {
			client.EventFilter = make(map[string]bool, len(eventTypes))
		}
		client.EventFilter[t] = true
	}

	h.register <- client
	return client
}

// Unregister removes a client. It is a no-op once the hub has stopped.
func (h *Hub) Unregister(clientID string) {
	select {
	case h.unregister <- clientID:
	case <-h.shutdown:
	}
}

// Broadcast queues an event for every interested client. The event is
// dropped when the hub's own buffer is full.
func (h *Hub) Broadcast(eventType, storeID string, payload interface{}) {
	e := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		StoreID:   storeID,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}

	select {
	case h.broadcast <- e:
	default:
		metrics.StreamEventsDropped.WithLabelValues(metrics.DropReasonHubFull).Inc()
		slog.Default().Warn(LogMsgEventDropped, "event_type", eventType, "store_id", storeID)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// FormatSSEMessage renders e in text/event-stream framing. retry, when
// positive, tells the browser how long to wait before reconnecting.
func FormatSSEMessage(e Event, retry time.Duration) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if e.ID != "" {
		buf.WriteString("id: " + e.ID + "\n")
	}
	if retry > 0 {
		buf.WriteString("retry: " + strconv.FormatInt(retry.Milliseconds(), 10) + "\n")
	}
	buf.WriteString("event: " + e.Type + "\n")
	buf.WriteString("data: ")
	buf.Write(data)
	buf.WriteString("\n\n")
	return buf.Bytes(), nil
}
