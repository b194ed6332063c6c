// Package memory provides an in-memory implementation of run-record storage
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/chisyliu/trackingAlg-dbscan/internal/core/run"
	"github.com/chisyliu/trackingAlg-dbscan/pkg/serialization"
)

// InMemoryRunStore implements run.Store with thread-safe in-memory storage
// PRINCIPLES:
// - KISS: Simple map with proper concurrency
// - SRP: Single responsibility for in-memory run persistence
// - DIP: Implements run.Store interface
//
// Records are held serialized, with TTL expiry and LRU eviction once the
// configured capacity is reached.
type InMemoryRunStore struct {
	records    sync.Map // id -> *storedRun
	defaultTTL time.Duration
	maxRecords int

	accessOrder map[string]time.Time
	orderMutex  sync.Mutex

	serializer *serialization.Serializer

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
	cleanupOnce   sync.Once
}

// Config holds configuration for InMemoryRunStore
type Config struct {
	DefaultTTL      time.Duration             // TTL for stored records
	MaxRecords      int                       // Capacity before LRU eviction
	CleanupInterval time.Duration             // Sweep interval for expired records
	Serializer      *serialization.Serializer // Custom serializer (optional)
}

// storedRun holds a serialized record with bookkeeping
type storedRun struct {
	data      []byte
	expiresAt time.Time
}

// NewInMemoryRunStore creates an in-memory run store
func NewInMemoryRunStore(config Config) *InMemoryRunStore {
	if config.DefaultTTL == 0 {
		config.DefaultTTL = 24 * time.Hour
	}
	if config.MaxRecords == 0 {
		config.MaxRecords = 1024
	}
	if config.CleanupInterval == 0 {
		config.CleanupInterval = 5 * time.Minute
	}
	if config.Serializer == nil {
		config.Serializer = serialization.DefaultSerializer()
	}

	store := &InMemoryRunStore{
		defaultTTL:  config.DefaultTTL,
		maxRecords:  config.MaxRecords,
		serializer:  config.Serializer,
		accessOrder: make(map[string]time.Time),
		stopCleanup: make(chan struct{}),
	}
	store.startCleanup(config.CleanupInterval)
	return store
}

// DefaultInMemoryRunStore creates a store with default configuration
func DefaultInMemoryRunStore() *InMemoryRunStore {
	return NewInMemoryRunStore(Config{})
}

// Save stores a run record
func (s *InMemoryRunStore) Save(_ context.Context, record *run.Record) error {
	if record == nil {
		return run.ErrInvalidRunID
	}
	if err := record.Validate(); err != nil {
		return fmt.Errorf("run record validation failed: %w", err)
	}

	data, err := s.serializer.Serialize(record)
	if err != nil {
		return fmt.Errorf("run record serialization failed: %w", err)
	}

	s.evictIfFull()

	now := time.Now()
	s.records.Store(record.ID, &storedRun{
		data:      data,
		expiresAt: now.Add(s.defaultTTL),
	})

	s.orderMutex.Lock()
	s.accessOrder[record.ID] = now
	s.orderMutex.Unlock()

	return nil
}

// Load retrieves a run record by ID
func (s *InMemoryRunStore) Load(_ context.Context, id string) (*run.Record, error) {
	value, exists := s.records.Load(id)
	if !exists {
		return nil, run.ErrRunNotFound
	}

	entry := value.(*storedRun)
	if time.Now().After(entry.expiresAt) {
		s.delete(id)
		return nil, run.ErrRunNotFound
	}

	s.orderMutex.Lock()
	s.accessOrder[id] = time.Now()
	s.orderMutex.Unlock()

	var record run.Record
	if err := s.serializer.Deserialize(entry.data, &record); err != nil {
		return nil, fmt.Errorf("run record deserialization failed: %w", err)
	}
	return &record, nil
}

// List returns run records matching the filter, newest first
func (s *InMemoryRunStore) List(_ context.Context, filter run.Filter) ([]*run.Record, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter validation failed: %w", err)
	}

	var all []*run.Record
	now := time.Now()

	s.records.Range(func(key, value interface{}) bool {
		id := key.(string)
		entry := value.(*storedRun)
		if now.After(entry.expiresAt) {
			s.delete(id)
			return true
		}

		var record run.Record
		if err := s.serializer.Deserialize(entry.data, &record); err != nil {
			return true
		}

		if filter.DatasetID != "" && record.DatasetID != filter.DatasetID {
			return true
		}
		if filter.Since != nil && record.Timestamp.Before(*filter.Since) {
			return true
		}
		if filter.Before != nil && record.Timestamp.After(*filter.Before) {
			return true
		}

		all = append(all, &record)
		return true
	})

	sort.Slice(all, func(i, j int) bool {
		return all[i].Timestamp.After(all[j].Timestamp)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(all) {
			return nil, nil
		}
		all = all[filter.Offset:]
	}
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}

	return all, nil
}

// Delete removes a run record by ID
func (s *InMemoryRunStore) Delete(_ context.Context, id string) error {
	if _, exists := s.records.Load(id); !exists {
		return run.ErrRunNotFound
	}
	s.delete(id)
	return nil
}

// Close stops the cleanup goroutine
func (s *InMemoryRunStore) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
		if s.cleanupTicker != nil {
			s.cleanupTicker.Stop()
		}
	})
	return nil
}

// Count returns the number of currently stored records
func (s *InMemoryRunStore) Count() int {
	count := 0
	s.records.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	return count
}

func (s *InMemoryRunStore) startCleanup(interval time.Duration) {
	s.cleanupTicker = time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-s.cleanupTicker.C:
				s.cleanupExpired()
			case <-s.stopCleanup:
				return
			}
		}
	}()
}

func (s *InMemoryRunStore) cleanupExpired() {
	now := time.Now()
	var expired []string
	s.records.Range(func(key, value interface{}) bool {
		if now.After(value.(*storedRun).expiresAt) {
			expired = append(expired, key.(string))
		}
		return true
	})
	for _, id := range expired {
		s.delete(id)
	}
}

// evictIfFull drops the least recently used record when at capacity
func (s *InMemoryRunStore) evictIfFull() {
	if s.Count() < s.maxRecords {
		return
	}

	s.orderMutex.Lock()
	oldestID := ""
	var oldest time.Time
	for id, at := range s.accessOrder {
		if oldestID == "" || at.Before(oldest) {
			oldestID = id
			oldest = at
		}
	}
	s.orderMutex.Unlock()

	if oldestID != "" {
		s.delete(oldestID)
	}
}

func (s *InMemoryRunStore) delete(id string) {
	s.records.Delete(id)
	s.orderMutex.Lock()
	delete(s.accessOrder, id)
	s.orderMutex.Unlock()
}
