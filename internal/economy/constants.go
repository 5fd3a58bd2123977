package economy

// Error context messages
const (
	ErrContextFailedToBeginTx  = "failed to begin transaction"
	ErrContextFailedToCommitTx = "failed to commit transaction"
)

// Log messages
const (
	LogMsgSellItemCalled = "SellItem called"
	LogMsgItemSold       = "Item sold"
)

// DefaultLedgerLimit caps transaction history pages when the caller does
// not ask for a specific size.
const DefaultLedgerLimit = 50

// MaxLedgerLimit is the hard ceiling on transaction history page size.
const MaxLedgerLimit = 500

// Price check jitter, in basis points. Quotes wander within this band of
// the item's recorded value.
const quoteJitterBasisPoints = 1000
