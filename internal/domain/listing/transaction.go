package listing

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind labels a ledger movement in a listing's history.
type TransactionKind string

const (
	TransactionBid    TransactionKind = "bid"
	TransactionRefund TransactionKind = "refund"
	TransactionPayout TransactionKind = "payout"
)

// Transaction is one ledger movement recorded against a listing: a bid
// debit, an outbid refund, or the closing payout to the creator. Negative
// amounts are debits, positive amounts are credits. Entries are append-only
// and immutable once recorded.
type Transaction struct {
	AccountID   string          `json:"account_id"`
	DisplayName string          `json:"display_name"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        TransactionKind `json:"kind"`
	Timestamp   time.Time       `json:"timestamp"`
}
