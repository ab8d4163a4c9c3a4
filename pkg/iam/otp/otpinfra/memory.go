package otpinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/iam/otp"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
)

// MemoryStore is a process-local otp.Store for development and tests. It is
// not shared between instances.
type MemoryStore struct {
	mu      sync.Mutex
	records map[kernel.Email]otp.Record
	grace   time.Duration
	now     func() time.Time
}

type MemoryOption func(*MemoryStore)

// WithStoreClock sets the time source used to evict records past their grace.
// It should match the clock the records were issued with.
func WithStoreClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(grace time.Duration, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		records: make(map[kernel.Email]otp.Record),
		grace:   grace,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Put(_ context.Context, identity kernel.Email, rec otp.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[identity] = rec
	return nil
}

// Get drops records whose retention grace has also passed
func (s *MemoryStore) Get(_ context.Context, identity kernel.Email) (*otp.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[identity]
	if !ok {
		return nil, nil
	}
	if s.now().After(rec.ExpiresAt.Add(s.grace)) {
		delete(s.records, identity)
		return nil, nil
	}
	return &rec, nil
}

func (s *MemoryStore) Delete(_ context.Context, identity kernel.Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, identity)
	return nil
}

func (s *MemoryStore) CompareAndDelete(_ context.Context, identity kernel.Email, rec otp.Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.records[identity]
	if !ok || current.CodeHash != rec.CodeHash {
		return false, nil
	}
	delete(s.records, identity)
	return true, nil
}
