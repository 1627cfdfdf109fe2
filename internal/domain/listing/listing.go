package listing

import (
	"errors"
	"sync"
	"time"

	"auction-house-service/internal/domain/account"
	"auction-house-service/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MinBidMultiplier is the minimum fractional increase over the current
// price for a new bid to be considered: each bid must be at least 5% above
// the price it replaces.
var MinBidMultiplier = decimal.RequireFromString("1.05")

// Ledger is the subset of the account ledger a listing needs to move money
// during bid adjudication and closure.
type Ledger interface {
	// AttemptTransfer applies one signed movement to an account. A debit
	// that would take the balance below zero must be rejected without
	// mutation; credits always succeed.
	AttemptTransfer(accountID string, amount decimal.Decimal) error

	// Balance reports the current balance of an account.
	Balance(accountID string) (decimal.Decimal, error)
}

// Listing is one auctioned item with its price/bidder state and timer.
//
// Every mutation of price, highest bidder, active flag or history happens
// under the listing's own lock, so bids on the same listing are serialized
// while unrelated listings proceed fully in parallel. A listing is never
// deleted: once closed it stays readable for history and won-items queries.
type Listing struct {
	ID           uuid.UUID
	Name         string
	Description  string
	ImageRef     string
	InitialPrice decimal.Decimal
	CreatedAt    time.Time
	EndTime      time.Time

	mu            sync.RWMutex
	currentPrice  decimal.Decimal
	creator       *account.Account
	highestBidder *account.Account
	active        bool
	history       []Transaction
}

// Params holds the inputs for creating a listing.
type Params struct {
	Name         string
	Description  string
	ImageRef     string
	InitialPrice decimal.Decimal
	Creator      *account.Account
	Duration     time.Duration
}

// New creates an active listing. The highest bidder starts out as the
// creator, meaning no bids have been accepted yet.
func New(params Params) *Listing {
	now := time.Now()

	return &Listing{
		ID:            uuid.New(),
		Name:          params.Name,
		Description:   params.Description,
		ImageRef:      params.ImageRef,
		InitialPrice:  params.InitialPrice,
		CreatedAt:     now,
		EndTime:       now.Add(params.Duration),
		currentPrice:  params.InitialPrice,
		creator:       params.Creator,
		highestBidder: params.Creator,
		active:        true,
	}
}

// TryPlaceBid adjudicates one bid. The cheap rejections (closed listing,
// self-bid, balance pre-check) run without the listing lock; everything
// that moves money or mutates price, bidder and history runs under it, so
// concurrent bids on the same listing are applied strictly in lock order.
//
// The new bidder is debited before the previous highest bidder is
// refunded. If the debit loses a race against a concurrent spend on
// another listing, the bid is rejected with ErrDebitFailed and nothing has
// moved yet, so a rejected bid can never strand a refund.
func (l *Listing) TryPlaceBid(bidder *account.Account, amount decimal.Decimal, ledger Ledger) error {
	if !l.IsActive() {
		return shared.ErrAuctionClosed
	}

	if bidder.ID == l.creator.ID {
		return shared.ErrSelfBid
	}

	// Pre-check only: the debit below re-validates under the account lock.
	balance, err := ledger.Balance(bidder.ID)
	if err != nil {
		return err
	}
	if amount.GreaterThan(balance) {
		return shared.ErrInsufficientFunds
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Closure may have begun between the pre-check and the lock.
	if !l.active {
		return shared.ErrAuctionClosed
	}

	if amount.LessThan(l.currentPrice.Mul(MinBidMultiplier)) {
		return shared.ErrBidTooLow
	}

	previous := l.highestBidder
	previousPrice := l.currentPrice

	if err := ledger.AttemptTransfer(bidder.ID, amount.Neg()); err != nil {
		if errors.Is(err, shared.ErrInsufficientFunds) {
			return shared.ErrDebitFailed
		}
		return err
	}
	l.appendTransaction(bidder, amount.Neg(), TransactionBid)

	// Refund the outbid party in full. The creator standing as initial
	// highest bidder never paid anything, so they are never refunded. A
	// bidder raising their own bid is not refunded either.
	if previous.ID != bidder.ID && previous.ID != l.creator.ID {
		if err := ledger.AttemptTransfer(previous.ID, previousPrice); err == nil {
			l.appendTransaction(previous, previousPrice, TransactionRefund)
		}
	}

	l.currentPrice = amount
	l.highestBidder = bidder

	return nil
}

// EndAuction closes the listing and pays the final price to the creator.
// It takes the same lock as bidding, so closure cannot begin while a bid
// is mid-flight and no bid is accepted once it has run. Closing an already
// closed listing returns ErrAuctionClosed without touching the ledger.
func (l *Listing) EndAuction(ledger Ledger) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.active {
		return shared.ErrAuctionClosed
	}
	l.active = false

	if err := ledger.AttemptTransfer(l.creator.ID, l.currentPrice); err != nil {
		return err
	}
	l.appendTransaction(l.creator, l.currentPrice, TransactionPayout)

	return nil
}

// appendTransaction records a ledger movement in the listing history.
// Callers must hold l.mu.
func (l *Listing) appendTransaction(acct *account.Account, amount decimal.Decimal, kind TransactionKind) {
	l.history = append(l.history, Transaction{
		AccountID:   acct.ID,
		DisplayName: acct.DisplayName,
		Amount:      amount,
		Kind:        kind,
		Timestamp:   time.Now(),
	})
}

// IsActive reports whether the listing still accepts bids.
func (l *Listing) IsActive() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// IsExpired reports whether the listing's end time has passed. It says
// nothing about whether closure has already run.
func (l *Listing) IsExpired(now time.Time) bool {
	return now.After(l.EndTime)
}

// CurrentPrice returns the highest accepted bid, or the initial price if
// no bid has been accepted yet.
func (l *Listing) CurrentPrice() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.currentPrice
}

// CreatorID returns the account ID of the listing's creator.
func (l *Listing) CreatorID() string {
	return l.creator.ID
}

// HighestBidderID returns the account ID of the current highest bidder,
// which is the creator while no bid has been accepted.
func (l *Listing) HighestBidderID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.highestBidder.ID
}

// History returns a copy of the listing's transaction history in append
// order.
func (l *Listing) History() []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	history := make([]Transaction, len(l.history))
	copy(history, l.history)
	return history
}
