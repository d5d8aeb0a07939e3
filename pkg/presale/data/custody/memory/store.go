package memory

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/plasma-fi/presale-server/pkg/presale/data/custody"
)

type store struct {
	mu      sync.Mutex
	records []*custody.Record
	last    uint64
}

// New returns a new in memory custody.Store
func New() custody.Store {
	return &store{}
}

// Put implements custody.Store.Put
func (s *store) Put(_ context.Context, data *custody.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(data); item != nil {
		return custody.ErrVaultAlreadyExists
	}

	s.last++
	if data.Id == 0 {
		data.Id = s.last
	}
	data.LastUpdatedAt = time.Now()

	c := data.Clone()
	s.records = append(s.records, c)

	return nil
}

// GetByAddress implements custody.Store.GetByAddress
func (s *store) GetByAddress(_ context.Context, address string) (*custody.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByAddress(address); item != nil {
		return item.Clone(), nil
	}
	return nil, custody.ErrVaultNotFound
}

// Credit implements custody.Store.Credit
func (s *store) Credit(_ context.Context, address string, amount uint64) (*custody.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByAddress(address)
	if item == nil {
		return nil, custody.ErrVaultNotFound
	}

	if amount > math.MaxUint64-item.Balance {
		return nil, custody.ErrBalanceOverflow
	}

	item.Balance += amount
	item.LastUpdatedAt = time.Now()

	return item.Clone(), nil
}

// Debit implements custody.Store.Debit
func (s *store) Debit(_ context.Context, address string, amount uint64) (*custody.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByAddress(address)
	if item == nil {
		return nil, custody.ErrVaultNotFound
	}

	if amount > item.Balance {
		return nil, custody.ErrInsufficientBalance
	}

	item.Balance -= amount
	item.LastUpdatedAt = time.Now()

	return item.Clone(), nil
}

func (s *store) find(data *custody.Record) *custody.Record {
	for _, item := range s.records {
		if item.Id == data.Id {
			return item
		}
		if data.Address == item.Address {
			return item
		}
	}
	return nil
}

func (s *store) findByAddress(address string) *custody.Record {
	for _, item := range s.records {
		if address == item.Address {
			return item
		}
	}
	return nil
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.last = 0
}
