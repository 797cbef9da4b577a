package document

import (
	"sync"
	"time"
)

// Store is the registry the pipeline and API work against. The backing
// implementation is volatile; nothing survives the process.
type Store interface {
	Put(doc *Document)
	Get(id string) *Document
	Delete(id string)
	// Cleanup evicts idle documents and returns their IDs so callers can
	// drop associated state (progress records).
	Cleanup() []string
}

// MemStore is a thread-safe in-memory document registry with TTL eviction.
type MemStore struct {
	mu   sync.Mutex
	docs map[string]*Document
	ttl  time.Duration
}

func NewMemStore(ttl time.Duration) *MemStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemStore{
		docs: make(map[string]*Document),
		ttl:  ttl,
	}
}

func (s *MemStore) Put(doc *Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
}

func (s *MemStore) Get(id string) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[id]
}

func (s *MemStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, id)
}

// Cleanup removes documents idle past the TTL.
func (s *MemStore) Cleanup() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	var evicted []string
	for id, doc := range s.docs {
		doc.mu.Lock()
		idle := now.Sub(doc.updatedAt)
		doc.mu.Unlock()
		if idle > s.ttl {
			delete(s.docs, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
