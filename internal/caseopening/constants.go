package caseopening

// Error context messages
const (
	ErrContextFailedToGetCase      = "failed to get case"
	ErrContextFailedToGetPurchase  = "failed to get purchased case"
	ErrContextFailedToBeginTx      = "failed to begin transaction"
	ErrContextFailedToCommitTx     = "failed to commit transaction"
	ErrContextFailedToCompileTable = "failed to compile drop table"
)

// Log messages
const (
	LogMsgCasePurchased = "Case purchased"
	LogMsgCaseOpened    = "Case opened"
)

// AcquiredFromCaseOpen tags inventory items produced by opening a case
const AcquiredFromCaseOpen = "case_open"

// compiledTableCacheSize bounds the LRU of compiled drop tables. The
// catalog is small, so this is generous.
const compiledTableCacheSize = 128
