package notify

// Embed colors
const (
	colorCovert      = 0xEB4B4B
	colorRareSpecial = 0xFFD700
)

// Log messages
const (
	LogMsgParseError        = "Failed to decode event payload for announcement"
	LogMsgNotificationError = "Failed to send Discord announcement"
	LogMsgNotificationSent  = "Rare drop announced"
)
