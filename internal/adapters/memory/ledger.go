package memory

import (
	"sync"

	"auction-house-service/internal/domain/account"
	"auction-house-service/internal/domain/shared"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ledgerEntry pairs an account with its own lock. Transfers touching the
// same account serialize on the entry lock; transfers touching different
// accounts proceed in parallel.
type ledgerEntry struct {
	mu   sync.Mutex
	acct *account.Account
}

// Ledger is the in-memory account ledger. It is the only component allowed
// to mutate balances; all movement goes through AttemptTransfer. State is
// process memory only and is lost on restart.
type Ledger struct {
	mu              sync.RWMutex
	entries         map[string]*ledgerEntry
	startingBalance decimal.Decimal
	logger          zerolog.Logger
}

type LedgerParams struct {
	StartingBalance decimal.Decimal
	Logger          zerolog.Logger
}

// NewLedger creates an empty ledger. New accounts are seeded with the
// configured starting balance.
func NewLedger(params LedgerParams) *Ledger {
	return &Ledger{
		entries:         make(map[string]*ledgerEntry),
		startingBalance: params.StartingBalance,
		logger:          params.Logger.With().Str("component", "ledger").Logger(),
	}
}

// GetOrCreate registers an account on first contact and is an idempotent
// lookup afterwards. The display name of an existing account is not
// overwritten.
func (l *Ledger) GetOrCreate(accountID, displayName string) *account.Account {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, ok := l.entries[accountID]; ok {
		return entry.acct
	}

	acct := &account.Account{
		ID:          accountID,
		DisplayName: displayName,
		Balance:     l.startingBalance,
	}
	l.entries[accountID] = &ledgerEntry{acct: acct}

	l.logger.Info().
		Str("account_id", accountID).
		Str("display_name", displayName).
		Str("balance", l.startingBalance.String()).
		Msg("Account registered")

	return acct
}

// Get looks up a registered account.
func (l *Ledger) Get(accountID string) (*account.Account, error) {
	entry, err := l.lookup(accountID)
	if err != nil {
		return nil, err
	}
	return entry.acct, nil
}

// Balance reports the current balance of an account, read under the
// account's lock so a concurrent transfer is never observed half-applied.
func (l *Ledger) Balance(accountID string) (decimal.Decimal, error) {
	entry, err := l.lookup(accountID)
	if err != nil {
		return decimal.Zero, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.acct.Balance, nil
}

// AttemptTransfer applies one signed movement to an account. A debit that
// would take the balance below zero returns ErrInsufficientFunds without
// mutation; credits always succeed. No movement is applied unless the call
// returns nil.
func (l *Ledger) AttemptTransfer(accountID string, amount decimal.Decimal) error {
	entry, err := l.lookup(accountID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if amount.IsNegative() && entry.acct.Balance.Add(amount).IsNegative() {
		l.logger.Debug().
			Str("account_id", accountID).
			Str("amount", amount.String()).
			Str("balance", entry.acct.Balance.String()).
			Msg("Transfer rejected: insufficient funds")
		return shared.ErrInsufficientFunds
	}

	entry.acct.Balance = entry.acct.Balance.Add(amount)

	l.logger.Debug().
		Str("account_id", accountID).
		Str("amount", amount.String()).
		Str("balance", entry.acct.Balance.String()).
		Msg("Transfer applied")

	return nil
}

func (l *Ledger) lookup(accountID string) (*ledgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entry, ok := l.entries[accountID]
	if !ok {
		return nil, shared.ErrAccountNotFound
	}
	return entry, nil
}
