package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/plasma-fi/presale-server/pkg/database/query"
	"github.com/plasma-fi/presale-server/pkg/presale/data/sale"
)

type store struct {
	mu      sync.Mutex
	records []*sale.Record
	last    uint64
}

type ById []*sale.Record

func (a ById) Len() int           { return len(a) }
func (a ById) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ById) Less(i, j int) bool { return a[i].Id < a[j].Id }

// New returns a new in memory sale.Store
func New() sale.Store {
	return &store{}
}

// Put implements sale.Store.Put
func (s *store) Put(_ context.Context, data *sale.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(data); item != nil {
		return sale.ErrSaleAlreadyExists
	}

	s.last++
	if data.Id == 0 {
		data.Id = s.last
	}
	data.Version = 0
	data.LastUpdatedAt = time.Now()

	c := data.Clone()
	s.records = append(s.records, c)

	return nil
}

// GetByAddress implements sale.Store.GetByAddress
func (s *store) GetByAddress(_ context.Context, address string) (*sale.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByAddress(address); item != nil {
		return item.Clone(), nil
	}
	return nil, sale.ErrSaleNotFound
}

// GetByMint implements sale.Store.GetByMint
func (s *store) GetByMint(_ context.Context, mint string) (*sale.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByMint(mint); item != nil {
		return item.Clone(), nil
	}
	return nil, sale.ErrSaleNotFound
}

// Update implements sale.Store.Update
func (s *store) Update(_ context.Context, data *sale.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByAddress(data.Address)
	if item == nil {
		return sale.ErrSaleNotFound
	}

	if item.Version != data.Version {
		return sale.ErrStaleSaleState
	}

	item.TokensSold = data.TokensSold
	item.IsActive = data.IsActive
	item.Version++
	item.LastUpdatedAt = time.Now()

	item.CopyTo(data)

	return nil
}

// GetAll implements sale.Store.GetAll
func (s *store) GetAll(_ context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*sale.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]*sale.Record, 0)
	for _, item := range s.records {
		all = append(all, item.Clone())
	}

	res := s.filter(all, cursor, limit, direction)
	if len(res) == 0 {
		return nil, sale.ErrSaleNotFound
	}
	return res, nil
}

func (s *store) find(data *sale.Record) *sale.Record {
	for _, item := range s.records {
		if item.Id == data.Id {
			return item
		}
		if data.Address == item.Address {
			return item
		}
		if data.Mint == item.Mint {
			return item
		}
	}
	return nil
}

func (s *store) findByAddress(address string) *sale.Record {
	for _, item := range s.records {
		if address == item.Address {
			return item
		}
	}
	return nil
}

func (s *store) findByMint(mint string) *sale.Record {
	for _, item := range s.records {
		if mint == item.Mint {
			return item
		}
	}
	return nil
}

func (s *store) filter(items []*sale.Record, cursor query.Cursor, limit uint64, direction query.Ordering) []*sale.Record {
	var start uint64

	start = 0
	if direction == query.Descending {
		start = s.last + 1
	}
	if len(cursor) > 0 {
		start = cursor.ToUint64()
	}

	var res []*sale.Record
	for _, item := range items {
		if item.Id > start && direction == query.Ascending {
			res = append(res, item)
		}
		if item.Id < start && direction == query.Descending {
			res = append(res, item)
		}
	}

	if direction == query.Descending {
		sort.Sort(sort.Reverse(ById(res)))
	}

	if len(res) >= int(limit) {
		return res[:limit]
	}

	return res
}

func (s *store) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	s.last = 0
}
