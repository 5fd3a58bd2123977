package sse

// DropPayload is the SSE payload for feed.drop and feed.rare_drop events.
// Values are in cents; FormattedValue is ready for display.
type DropPayload struct {
	Username       string  `json:"username"`
	CaseName       string  `json:"case_name"`
	SkinName       string  `json:"skin_name"`
	WeaponType     string  `json:"weapon_type"`
	Rarity         string  `json:"rarity"`
	Wear           string  `json:"wear"`
	Float          float64 `json:"float"`
	Value          int64   `json:"value"`
	FormattedValue string  `json:"formatted_value"`
}

// CasePurchasedPayload is the SSE payload for feed.case_purchased events
type CasePurchasedPayload struct {
	Username string `json:"username"`
	CaseName string `json:"case_name"`
	Price    int64  `json:"price"`
}

// SkinSoldPayload is the SSE payload for feed.skin_sold events
type SkinSoldPayload struct {
	Username string `json:"username"`
	SkinName string `json:"skin_name"`
	Value    int64  `json:"value"`
}

// Event is a single feed event as sent over the wire
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// Client is one connected SSE consumer
type Client struct {
	ID           string
	EventChannel chan Event
	EventFilter  map[string]bool // nil means all events
	done         chan struct{}
}
