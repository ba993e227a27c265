package dataType

import (
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

type sessionBucket struct {
	mu      sync.RWMutex
	blocked map[uint64]int64 // session hash -> marker expiration (unix seconds)
}

// SessionStore remembers which sessions were recently blocked so the denial
// page can tell them apart from a plain visit.
type SessionStore struct {
	buckets     []*sessionBucket
	bucketCount uint64
	ttl         int64
	now         func() time.Time
}

func NewSessionStore(bucketCount int, ttl time.Duration) *SessionStore {
	if bucketCount <= 0 {
		bucketCount = 1
	}
	s := &SessionStore{
		buckets:     make([]*sessionBucket, bucketCount),
		bucketCount: uint64(bucketCount),
		ttl:         int64(ttl / time.Second),
		now:         time.Now,
	}
	for i := 0; i < bucketCount; i++ {
		s.buckets[i] = &sessionBucket{blocked: make(map[uint64]int64)}
	}
	return s
}

func (s *SessionStore) getBucket(hashKey uint64) *sessionBucket {
	return s.buckets[hashKey%s.bucketCount]
}

// MarkBlocked sets the marker for sessionID, extending it if already set
func (s *SessionStore) MarkBlocked(sessionID string) {
	if sessionID == "" {
		return
	}
	hashKey := xxhash.Sum64String(sessionID)
	bucket := s.getBucket(hashKey)
	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	bucket.blocked[hashKey] = s.now().Unix() + s.ttl
}

// WasBlocked reports whether sessionID carries an unexpired marker
func (s *SessionStore) WasBlocked(sessionID string) bool {
	if sessionID == "" {
		return false
	}
	hashKey := xxhash.Sum64String(sessionID)
	bucket := s.getBucket(hashKey)
	bucket.mu.RLock()
	defer bucket.mu.RUnlock()
	expiration, exists := bucket.blocked[hashKey]
	if !exists {
		return false
	}
	return s.now().Unix() <= expiration
}

// Clear removes the marker for sessionID
func (s *SessionStore) Clear(sessionID string) {
	hashKey := xxhash.Sum64String(sessionID)
	bucket := s.getBucket(hashKey)
	bucket.mu.Lock()
	defer bucket.mu.Unlock()
	delete(bucket.blocked, hashKey)
}

// Len returns the number of stored markers, expired ones included until the next GC
func (s *SessionStore) Len() int {
	n := 0
	for _, bucket := range s.buckets {
		bucket.mu.RLock()
		n += len(bucket.blocked)
		bucket.mu.RUnlock()
	}
	return n
}

func (s *SessionStore) GC() {
	now := s.now().Unix()
	for _, bucket := range s.buckets {
		bucket.mu.Lock()
		for key, expiration := range bucket.blocked {
			if expiration < now {
				delete(bucket.blocked, key)
			}
		}
		bucket.mu.Unlock()
	}
}

// Marker binds the store to one session
func (s *SessionStore) Marker(sessionID string) *SessionMarker {
	return &SessionMarker{store: s, sessionID: sessionID}
}

// SessionMarker is the write side handed to the engine for a single request
type SessionMarker struct {
	store     *SessionStore
	sessionID string
}

func (m *SessionMarker) MarkBlocked() {
	m.store.MarkBlocked(m.sessionID)
}

func StartSessionGC(store *SessionStore, interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			store.GC()
		case <-stopCh:
			return
		}
	}
}
