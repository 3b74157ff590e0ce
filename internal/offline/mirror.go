// Package offline implements the client-side mirror: the last known-good
// listing per resource, served when connectivity is unavailable. The mirror
// is strictly overwritten by the latest successful fetch; there is no merge
// or conflict resolution.
package offline

import (
	"encoding/json" // Mirror entries are stored as raw JSON
	"errors"        // Sentinel error
	"os"            // File persistence
	"sync"          // Mirror may be shared between fetch callbacks
	"time"          // Entry timestamps

	"github.com/sirupsen/logrus" // Logging library
)

// ErrOffline is returned for every mutation attempted while offline.
// Mutations are never queued or retried.
var ErrOffline = errors.New("this action is unavailable while offline")

// Entry is one mirrored listing
type Entry struct {
	Data      json.RawMessage `json:"data"`      // Last successful listing payload
	Timestamp time.Time       `json:"timestamp"` // When it was mirrored
}

// Mirror holds the per-resource last-known-good listings. It is an explicit
// object owned by the application and injected where needed.
type Mirror struct {
	mu      sync.RWMutex     // Guards state below
	path    string           // Persistence file, empty disables persistence
	online  bool             // Connectivity state
	entries map[string]Entry // Listings keyed by resource name
}

// NewMirror creates a mirror, loading any previously persisted entries.
// The mirror starts in the Online state.
func NewMirror(path string) *Mirror {
	m := &Mirror{
		path:    path,                   // Persistence file
		online:  true,                   // Assume connectivity until told otherwise
		entries: make(map[string]Entry), // Mirrored listings
	}
	m.load() // Best-effort restore
	return m
}

// Online reports the current connectivity state
func (m *Mirror) Online() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.online
}

// SetOnline transitions the mirror between Online and Offline
func (m *Mirror) SetOnline(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online = online
}

// Store overwrites the mirrored listing for a resource and persists it
func (m *Mirror) Store(key string, data json.RawMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = Entry{Data: data, Timestamp: time.Now()} // Last write wins
	m.persist()                                               // Best-effort save
}

// Load returns the mirrored listing for a resource, or an empty list when
// nothing has been mirrored yet
func (m *Mirror) Load(key string) json.RawMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[key]; ok {
		return e.Data // Last known-good listing
	}
	return json.RawMessage("[]") // Nothing mirrored yet
}

// Timestamp returns when a resource was last mirrored
func (m *Mirror) Timestamp(key string) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e.Timestamp, ok
}

// Clear drops every mirrored listing and removes the persistence file
func (m *Mirror) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]Entry) // Drop all entries
	if m.path != "" {
		_ = os.Remove(m.path) // Remove the persisted copy
	}
}

// load restores entries from the persistence file, if any
func (m *Mirror) load() {
	if m.path == "" {
		return // Persistence disabled
	}
	b, err := os.ReadFile(m.path)
	if err != nil {
		return // No persisted mirror yet
	}
	if err := json.Unmarshal(b, &m.entries); err != nil {
		logrus.WithField("error", err.Error()).Warn("Discarding corrupt offline mirror")
		m.entries = make(map[string]Entry) // Corrupt file, start fresh
	}
}

// persist writes entries to the persistence file. Callers hold the lock.
func (m *Mirror) persist() {
	if m.path == "" {
		return // Persistence disabled
	}
	b, err := json.Marshal(m.entries)
	if err == nil {
		err = os.WriteFile(m.path, b, 0o600)
	}
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to persist offline mirror")
	}
}
