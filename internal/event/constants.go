package event

import "time"

// EventSchemaVersion is stamped on every published event so consumers can
// detect payload format changes (see the *PayloadV1 types in event.go).
const EventSchemaVersion = "1.0"

// RetryQueueBufferSize bounds the retry queue. A full queue means the bus
// has been failing for a while; further failures dead-letter immediately
// instead of blocking case openings and sales.
const RetryQueueBufferSize = 1000

// DeadLetterFilePermissions is the file mode for the dead-letter JSONL file.
const DeadLetterFilePermissions = 0644

// Log messages
const (
	LogMsgEventPublishFailed     = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull         = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed  = "Failed to write to dead letter"
	LogMsgEventRetryExhausted    = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed       = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded    = "Event retry succeeded"
	LogMsgEventDroppedShutdown   = "Event dropped during shutdown"
	LogMsgQueueDrainedShutdown   = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout        = "Resilient publisher shutdown timed out"
	LogMsgDeadLetterWriteFailedS = "Failed to write to dead letter shutdown"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay returns the backoff before retry number attempt,
// doubling from baseDelay: with the 2s default that is 2s, 4s, 8s, 16s, 32s.
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	return baseDelay * time.Duration(1<<(attempt-1))
}
