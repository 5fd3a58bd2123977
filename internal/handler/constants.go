package handler

// Generic HTTP error messages for client responses.
// These intentionally do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidID         = "Invalid id"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
)

// Operation names used in logs and error responses
const (
	OpRegister         = "Register"
	OpLogin            = "Login"
	OpGetProfile       = "Get profile"
	OpListCases        = "List cases"
	OpGetCase          = "Get case"
	OpGetDropTable     = "Get drop table"
	OpBuyCase          = "Buy case"
	OpListPurchases    = "List purchases"
	OpOpenCase         = "Open case"
	OpGetInventory     = "Get inventory"
	OpSellItem         = "Sell item"
	OpPriceCheck       = "Price check"
	OpListTransactions = "List transactions"
)
