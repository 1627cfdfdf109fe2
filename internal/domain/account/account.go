package account

import "github.com/shopspring/decimal"

// Account represents a user of the auction house. The ID is an opaque
// identifier handed to the core by the transport layer; the core never
// interprets it.
//
// Balance is owned by the ledger: nothing outside the ledger may read or
// mutate it while the account is live. Accounts are created on first
// interaction and live for the lifetime of the process.
type Account struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"display_name"`
	Balance     decimal.Decimal `json:"balance"`
}
