package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/plasma-fi/presale-server/pkg/database/query"
	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase"
)

type store struct {
	mu      sync.Mutex
	records []*purchase.Record
	last    uint64
}

type ById []*purchase.Record

func (a ById) Len() int           { return len(a) }
func (a ById) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a ById) Less(i, j int) bool { return a[i].Id < a[j].Id }

// New returns a new in memory purchase.Store
func New() purchase.Store {
	return &store{}
}

// Put implements purchase.Store.Put
func (s *store) Put(_ context.Context, data *purchase.Record) error {
	if err := data.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(data); item != nil {
		return purchase.ErrPurchaseAlreadyExists
	}

	s.last++
	if data.Id == 0 {
		data.Id = s.last
	}
	data.CreatedAt = time.Now()
	data.LastUpdatedAt = data.CreatedAt

	c := data.Clone()
	s.records = append(s.records, c)

	return nil
}

// GetByAddress implements purchase.Store.GetByAddress
func (s *store) GetByAddress(_ context.Context, address string) (*purchase.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByAddress(address); item != nil {
		return item.Clone(), nil
	}
	return nil, purchase.ErrPurchaseNotFound
}

// GetByBuyerAndMint implements purchase.Store.GetByBuyerAndMint
func (s *store) GetByBuyerAndMint(_ context.Context, buyer, mint string) (*purchase.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.findByBuyerAndMint(buyer, mint); item != nil {
		return item.Clone(), nil
	}
	return nil, purchase.ErrPurchaseNotFound
}

// MarkClaimed implements purchase.Store.MarkClaimed
func (s *store) MarkClaimed(_ context.Context, address string) (*purchase.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.findByAddress(address)
	if item == nil {
		return nil, purchase.ErrPurchaseNotFound
	}

	if item.Claimed {
		return nil, purchase.ErrPurchaseAlreadyClaimed
	}

	item.Claimed = true
	item.LastUpdatedAt = time.Now()

	return item.Clone(), nil
}

// GetBySale implements purchase.Store.GetBySale
func (s *store) GetBySale(_ context.Context, sale string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*purchase.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if items := s.findBySale(sale); len(items) > 0 {
		res := s.filter(items, cursor, limit, direction)

		if len(res) == 0 {
			return nil, purchase.ErrPurchaseNotFound
		}

		return res, nil
	}

	return nil, purchase.ErrPurchaseNotFound
}

// CountBySale implements purchase.Store.CountBySale
func (s *store) CountBySale(_ context.Context, sale string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.findBySale(sale)
	return uint64(len(items)), nil
}

func (s *store) find(data *purchase.Record) *purchase.Record {
	for _, item := range s.records {
		if item.Id == data.Id {
			return item
		}
		if data.Address == item.Address {
			return item
		}
		if data.Buyer == item.Buyer && data.Mint == item.Mint {
			return item
		}
	}
	return nil
}

func (s *store) findByAddress(address string) *purchase.Record {
	for _, item := range s.records {
		if address == item.Address {
			return item
		}
	}
	return nil
}

func (s *store) findByBuyerAndMint(buyer, mint string) *purchase.Record {
	for _, item := range s.records {
		if buyer == item.Buyer && mint == item.Mint {
			return item
		}
	}
	return nil
}

func (s *store) findBySale(sale string) []*purchase.Record {
	res := make([]*purchase.Record, 0)
	for _, item := range s.records {
		if item.Sale == sale {
			res = append(res, item.Clone())
		}
	}
	return res
}

func (s *store) filter(items []*purchase.Record, cursor query.Cursor, limit uint64, direction query.Ordering) []*purchase.Record {
	var start uint64

	start = 0
	if direction == query.Descending {
		start = s.last + 1
	}
	if len(cursor) > 0 {
		start = cursor.ToUint64()
	}

	var res []*purchase.Record
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
