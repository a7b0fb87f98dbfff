package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryStateRepo keeps records for the lifetime of the process.
type MemoryStateRepo struct {
	mu      sync.RWMutex
	records map[string]*StateRecord
}

// NewMemoryStateRepo creates an empty MemoryStateRepo.
func NewMemoryStateRepo() *MemoryStateRepo {
	return &MemoryStateRepo{records: make(map[string]*StateRecord)}
}

func (r *MemoryStateRepo) Load(_ context.Context, key string) (*StateRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	if !ok {
		return nil, ErrStateNotFound
	}
	return cloneRecord(rec), nil
}

func (r *MemoryStateRepo) Save(_ context.Context, rec *StateRecord) error {
	c := cloneRecord(rec)
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.Key] = c
	return nil
}

func (r *MemoryStateRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, key)
	return nil
}

var (
	_ StateRepo = (*SQLiteStateRepo)(nil)
	_ StateRepo = (*RedisStateRepo)(nil)
	_ StateRepo = (*MemoryStateRepo)(nil)
)
