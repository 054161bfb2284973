package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DeadLetterSchemaVersion is bumped whenever DeadLetterEntry changes shape.
const DeadLetterSchemaVersion = "1.1"

// DeadLetterWriter appends undeliverable events to a JSON lines file. It is
// safe for concurrent use.
type DeadLetterWriter struct {
	mu  sync.Mutex
	out *os.File
	enc *json.Encoder
}

// DeadLetterEntry is one line of the dead-letter file.
type DeadLetterEntry struct {
	SchemaVersion string    `json:"schema_version"`
	Timestamp     time.Time `json:"timestamp"`
	StoreID       string    `json:"store_id,omitempty"`
	Event         Event     `json:"event"`
	Attempts      int       `json:"attempts"`
	LastError     string    `json:"last_error,omitempty"`
}

// NewDeadLetterWriter opens path for appending, creating it if needed.
func NewDeadLetterWriter(path string) (*DeadLetterWriter, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DeadLetterFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("open dead-letter file: %w", err)
	}
	return &DeadLetterWriter{out: f, enc: json.NewEncoder(f)}, nil
}

// Write appends one entry. The store id is lifted out of the payload so
// an operator can grep a tenant's lost events.
func (w *DeadLetterWriter) Write(event Event, attempts int, lastError error) error {
	entry := DeadLetterEntry{
		SchemaVersion: DeadLetterSchemaVersion,
		Timestamp:     time.Now().UTC(),
		StoreID:       StoreIDOf(event),
		Event:         event,
		Attempts:      attempts,
	}
	if lastError != nil {
		entry.LastError = lastError.Error()
	}

	slog.Warn(LogMsgEventDeadLettered,
		"event_type", event.Type,
		"store_id", entry.StoreID,
		"attempts", attempts,
		"error", entry.LastError)

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enc.Encode(entry)
}

// Close closes the underlying file.
func (w *DeadLetterWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out.Close()
}

// ReadDeadLetters parses a dead-letter file. Payloads come back as generic
// JSON values; use DecodePayload to recover the typed struct.
func ReadDeadLetters(r io.Reader) ([]DeadLetterEntry, error) {
	var entries []DeadLetterEntry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), DeadLetterMaxLineBytes)
	for line := 1; sc.Scan(); line++ {
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e DeadLetterEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return entries, fmt.Errorf("dead letter line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
	return entries, sc.Err()
}
