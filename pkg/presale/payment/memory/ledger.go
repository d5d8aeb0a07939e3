package memory

import (
	"context"
	"math"
	"sync"

	"github.com/pkg/errors"

	"github.com/plasma-fi/presale-server/pkg/presale/common"
	"github.com/plasma-fi/presale-server/pkg/presale/payment"
)

// Ledger is an in memory payment.Rail for tests
type Ledger struct {
	mu       sync.Mutex
	balances map[string]uint64
}

func NewLedger() *Ledger {
	return &Ledger{
		balances: make(map[string]uint64),
	}
}

// Deposit seeds an account with lamports
func (l *Ledger) Deposit(account *common.Account, lamports uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[account.ToBase58()] += lamports
}

// BalanceOf returns an account's lamport balance
func (l *Ledger) BalanceOf(account *common.Account) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balances[account.ToBase58()]
}

// Transfer implements payment.Rail.Transfer
func (l *Ledger) Transfer(_ context.Context, source, destination *common.Account, lamports uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	sourceBalance := l.balances[source.ToBase58()]
	if lamports > sourceBalance {
		return payment.ErrInsufficientFunds
	}

	destinationBalance := l.balances[destination.ToBase58()]
	if lamports > math.MaxUint64-destinationBalance {
		return errors.New("destination balance would overflow")
	}

	l.balances[source.ToBase58()] = sourceBalance - lamports
	l.balances[destination.ToBase58()] = destinationBalance + lamports

	return nil
}
