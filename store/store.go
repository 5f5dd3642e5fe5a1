// Package store holds the volatile keyed-append stores for memory notes,
// journal entries and uploaded media. Records live for the process
// lifetime only; durability is explicitly not a goal.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/DanDanTheMuffinMan/nova-memory-server/fault"
)

// MemoryEntry is a topic/value note owned by one user.
type MemoryEntry struct {
	Topic     string `json:"topic"`
	Value     string `json:"value"`
	CreatedAt string `json:"createdAt"`
}

// JournalEntry is a titled free-text record owned by one user.
type JournalEntry struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}

// MediaItem describes one uploaded blob. The bytes themselves are kept
// separately and never serialized into listings.
type MediaItem struct {
	MediaID     string `json:"mediaId"`
	ContentType string `json:"type"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// MemoryStore appends and lists memory entries per owner.
type MemoryStore struct {
	mu      sync.RWMutex
	byOwner map[string][]MemoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byOwner: make(map[string][]MemoryEntry)}
}

func (s *MemoryStore) Append(owner string, e MemoryEntry) {
	e.CreatedAt = now()
	s.mu.Lock()
	s.byOwner[owner] = append(s.byOwner[owner], e)
	s.mu.Unlock()
}

// List returns the owner's entries in append order. Unknown owners get an
// empty list, not an error.
func (s *MemoryStore) List(owner string) []MemoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.byOwner[owner]
	out := make([]MemoryEntry, len(entries))
	copy(out, entries)
	return out
}

// JournalStore appends and lists journal entries per owner.
type JournalStore struct {
	mu      sync.RWMutex
	byOwner map[string][]JournalEntry
}

func NewJournalStore() *JournalStore {
	return &JournalStore{byOwner: make(map[string][]JournalEntry)}
}

func (s *JournalStore) Append(owner string, e JournalEntry) {
	e.CreatedAt = now()
	s.mu.Lock()
	s.byOwner[owner] = append(s.byOwner[owner], e)
	s.mu.Unlock()
}

func (s *JournalStore) List(owner string) []JournalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.byOwner[owner]
	out := make([]JournalEntry, len(entries))
	copy(out, entries)
	return out
}

type mediaRecord struct {
	item MediaItem
	data []byte
}

// MediaStore keeps uploaded blobs plus their metadata per owner.
type MediaStore struct {
	mu      sync.RWMutex
	byOwner map[string][]mediaRecord
}

func NewMediaStore() *MediaStore {
	return &MediaStore{byOwner: make(map[string][]mediaRecord)}
}

// Append stores the blob and returns its generated media ID.
func (s *MediaStore) Append(owner string, item MediaItem, data []byte) string {
	item.MediaID = uuid.NewString()
	item.CreatedAt = now()
	blob := make([]byte, len(data))
	copy(blob, data)
	s.mu.Lock()
	s.byOwner[owner] = append(s.byOwner[owner], mediaRecord{item: item, data: blob})
	s.mu.Unlock()
	return item.MediaID
}

// List returns metadata only, in append order.
func (s *MediaStore) List(owner string) []MediaItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.byOwner[owner]
	out := make([]MediaItem, 0, len(records))
	for _, r := range records {
		out = append(out, r.item)
	}
	return out
}

// Get returns one item and its bytes, or NotFound.
func (s *MediaStore) Get(owner, mediaID string) (MediaItem, []byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.byOwner[owner] {
		if r.item.MediaID == mediaID {
			return r.item, r.data, nil
		}
	}
	return MediaItem{}, nil, fault.NotFound("media %s not found", mediaID)
}
