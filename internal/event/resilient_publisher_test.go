package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyBus is a Bus double whose failure pattern is scripted per attempt.
type flakyBus struct {
	mu           sync.Mutex
	calls        []Event
	shouldFail   func(attempt int) bool
	publishDelay time.Duration
}

func (b *flakyBus) Publish(ctx context.Context, evt Event) error {
	b.mu.Lock()
	b.calls = append(b.calls, evt)
	attempt := len(b.calls)
	b.mu.Unlock()

	if b.publishDelay > 0 {
		time.Sleep(b.publishDelay)
	}

	if b.shouldFail != nil && b.shouldFail(attempt) {
		return errors.New("bus unavailable")
	}
	return nil
}

func (b *flakyBus) Subscribe(eventType Type, handler Handler) {}

func (b *flakyBus) Calls() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Event{}, b.calls...)
}

func (b *flakyBus) CallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.calls)
}

func openedEvent(skinName string, value int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CaseOpened,
		Payload: CaseOpenedPayloadV1{
			UserID:    "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Username:  "player1",
			CaseName:  "Chroma Case",
			SkinName:  skinName,
			Rarity:    "Covert",
			Wear:      "Field-Tested",
			Float:     0.22,
			Value:     value,
			Timestamp: time.Now().Unix(),
		},
	}
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &flakyBus{}

	rp, err := NewResilientPublisher(bus, 3, 100*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), openedEvent("AK-47 | Redline", 1850))

	time.Sleep(50 * time.Millisecond)

	assert.Equal(t, 1, bus.CallCount(), "Event should be published once")
	assert.Equal(t, CaseOpened, bus.Calls()[0].Type)

	content, _ := os.ReadFile(tmpFile)
	assert.Empty(t, content, "No dead-letter entries expected")
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	// Bus fails on first attempt, succeeds on second
	bus := &flakyBus{
		shouldFail: func(attempt int) bool {
			return attempt == 1
		},
	}

	rp, err := NewResilientPublisher(bus, 3, 100*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), openedEvent("M4A4 | Asiimov", 3200))

	// First attempt + 100ms backoff + retry
	time.Sleep(300 * time.Millisecond)

	assert.Equal(t, 2, bus.CallCount(), "Should attempt twice: initial + retry")

	content, _ := os.ReadFile(tmpFile)
	assert.Empty(t, content, "No dead-letter entries for successful retry")
}

func TestResilientPublisher_RetryExhaustionDeadLetters(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	bus := &flakyBus{
		shouldFail: func(attempt int) bool { return true },
	}

	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), openedEvent("Karambit | Doppler", 125000))

	// Backoff chain is 50ms + 100ms + 200ms before exhaustion
	time.Sleep(500 * time.Millisecond)

	assert.GreaterOrEqual(t, bus.CallCount(), 4, "Should exhaust all retries")

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	require.NotEmpty(t, content, "Dead-letter file should have entry")

	var dlEntry struct {
		Timestamp string `json:"timestamp"`
		Event     struct {
			Type    string                 `json:"type"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"event"`
		Attempts  int    `json:"attempts"`
		LastError string `json:"last_error"`
	}
	err = json.Unmarshal(content, &dlEntry)
	require.NoError(t, err, "Dead-letter should be valid JSON")

	assert.Equal(t, string(CaseOpened), dlEntry.Event.Type)
	assert.Equal(t, "Karambit | Doppler", dlEntry.Event.Payload["skin_name"])
	assert.NotEmpty(t, dlEntry.LastError)
	assert.GreaterOrEqual(t, dlEntry.Attempts, 1)
}

func TestResilientPublisher_QueueOverflow(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	// Always failing and slow, so queued entries back up
	bus := &flakyBus{
		shouldFail:   func(attempt int) bool { return true },
		publishDelay: 50 * time.Millisecond,
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, 5),
		maxRetries: 3,
		retryDelay: 50 * time.Millisecond,
		shutdown:   make(chan struct{}),
	}
	dl, err := NewDeadLetterWriter(tmpFile)
	require.NoError(t, err)
	rp.deadLetter = dl

	rp.wg.Add(1)
	go rp.retryWorker()
	defer rp.Shutdown(context.Background())

	for i := 0; i < 10; i++ {
		rp.PublishWithRetry(context.Background(), openedEvent(fmt.Sprintf("Glock-18 | Fade #%d", i), 2600))
	}

	time.Sleep(200 * time.Millisecond)

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.NotEmpty(t, content, "Overflow should go straight to the dead-letter file")
}

func TestResilientPublisher_GracefulShutdownDrainsQueue(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	callCount := int32(0)
	bus := &flakyBus{
		shouldFail: func(attempt int) bool {
			return atomic.AddInt32(&callCount, 1) <= 2
		},
	}

	rp, err := NewResilientPublisher(bus, 5, 50*time.Millisecond, tmpFile)
	require.NoError(t, err)

	sold := Event{
		Version: EventSchemaVersion,
		Type:    SkinSold,
		Payload: SkinSoldPayloadV1{
			UserID:   "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			Username: "player1",
			SkinName: "AWP | Dragon Lore",
			Value:    950000,
		},
	}
	for i := 0; i < 3; i++ {
		rp.PublishWithRetry(context.Background(), sold)
	}

	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = rp.Shutdown(ctx)
	assert.NoError(t, err, "Shutdown should complete successfully")

	assert.GreaterOrEqual(t, bus.CallCount(), 3, "Should process queued events during shutdown")
}

func TestResilientPublisher_ExponentialBackoff(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	attempts := make([]time.Time, 0, 5)
	attemptMu := sync.Mutex{}

	bus := &flakyBus{
		shouldFail: func(attempt int) bool {
			attemptMu.Lock()
			attempts = append(attempts, time.Now())
			attemptMu.Unlock()
			return attempt < 4
		},
	}

	baseDelay := 100 * time.Millisecond
	rp, err := NewResilientPublisher(bus, 5, baseDelay, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), openedEvent("USP-S | Kill Confirmed", 4800))

	time.Sleep(1 * time.Second)

	attemptMu.Lock()
	defer attemptMu.Unlock()

	require.GreaterOrEqual(t, len(attempts), 3, "Should have at least 3 attempts")

	delay1 := attempts[1].Sub(attempts[0])
	delay2 := attempts[2].Sub(attempts[1])

	assert.InDelta(t, baseDelay.Milliseconds(), delay1.Milliseconds(), 50,
		"First retry delay should be ~100ms")
	assert.InDelta(t, (baseDelay * 2).Milliseconds(), delay2.Milliseconds(), 50,
		"Second retry delay should be ~200ms")
}

func TestResilientPublisher_ConcurrentPublishes(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"

	bus := &flakyBus{}
	rp, err := NewResilientPublisher(bus, 3, 50*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	// Openings and sales racing, the way handlers publish under load
	const numGoroutines = 10
	const eventsPerGoroutine = 5

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				if j%2 == 0 {
					rp.PublishWithRetry(context.Background(), openedEvent(fmt.Sprintf("P250 | Sand Dune #%d", id), 12))
				} else {
					rp.PublishWithRetry(context.Background(), Event{
						Version: EventSchemaVersion,
						Type:    SkinSold,
						Payload: SkinSoldPayloadV1{Username: fmt.Sprintf("player%d", id), Value: 12},
					})
				}
			}
		}(i)
	}

	wg.Wait()
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, numGoroutines*eventsPerGoroutine, bus.CallCount(),
		"All concurrent events should be published")
}
