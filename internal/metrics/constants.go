package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Business metric names
const (
	MetricNameCasesPurchased = "cases_purchased_total"
	MetricNameCasesOpened    = "cases_opened_total"
	MetricNameDrops          = "drops_total"
	MetricNameSkinsSold      = "skins_sold_total"
	MetricNameMoneySpent     = "money_spent_cents_total"
	MetricNameMoneyEarned    = "money_earned_cents_total"
	MetricNameDropValue      = "drop_value_cents"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Business metric help text
const (
	HelpTextCasesPurchased = "Total number of cases purchased"
	HelpTextCasesOpened    = "Total number of cases opened"
	HelpTextDrops          = "Total number of skins dropped, by rarity and wear"
	HelpTextSkinsSold      = "Total number of skins sold back"
	HelpTextMoneySpent     = "Total cents spent on case purchases"
	HelpTextMoneyEarned    = "Total cents credited from skin sales"
	HelpTextDropValue      = "Distribution of drop values in cents"
)

// Common label names used across metrics
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelCase   = "case"
	LabelRarity = "rarity"
	LabelWear   = "wear"
)

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, ranging from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// DropValueBuckets covers drop values from pocket change to knife territory,
// in cents.
var DropValueBuckets = []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000, 100000, 250000}

// Log messages
const (
	LogMsgPayloadDecodeFailed = "Failed to decode event payload for metrics"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
