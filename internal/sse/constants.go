package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the feed channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeCasePurchased is sent when a user buys a case
	EventTypeCasePurchased = "feed.case_purchased"

	// EventTypeDrop is sent for every case opened
	EventTypeDrop = "feed.drop"

	// EventTypeRareDrop is sent in addition to feed.drop when the unboxed
	// skin is Covert or Rare Special
	EventTypeRareDrop = "feed.rare_drop"

	// EventTypeSkinSold is sent when a user sells a skin back
	EventTypeSkinSold = "feed.skin_sold"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgDecodeError        = "Failed to decode event payload for SSE"
)
