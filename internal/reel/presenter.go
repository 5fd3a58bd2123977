package reel

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/casefall/casefall/internal/domain"
)

// Stage is the presenter's lifecycle state.
type Stage int

const (
	StageReady Stage = iota
	StageOpening
	StageRevealed
)

func (s Stage) String() string {
	switch s {
	case StageReady:
		return "ready"
	case StageOpening:
		return "opening"
	case StageRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

// OpenFunc performs the authoritative open. It is invoked at most once per
// presenter run, regardless of repeated confirms or dismissals.
type OpenFunc func(ctx context.Context) (*domain.OpenResult, error)

// Presenter drives the Ready -> Opening -> Revealed state machine around
// one case open. It owns the reveal timer: a dismissed presenter never
// fires its revealed callback and never re-invokes the open.
type Presenter struct {
	mu sync.Mutex

	open       OpenFunc
	onRevealed func(*domain.OpenResult)
	delay      time.Duration

	stage     Stage
	dismissed bool
	timer     *time.Timer
	result    *domain.OpenResult
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithRevealDelay overrides the reveal delay (tests use a short one).
func WithRevealDelay(d time.Duration) Option {
	return func(p *Presenter) { p.delay = d }
}

// WithRevealedCallback registers a callback fired when the presenter
// reaches Revealed. It is suppressed if the presenter was dismissed first.
func WithRevealedCallback(fn func(*domain.OpenResult)) Option {
	return func(p *Presenter) { p.onRevealed = fn }
}

// NewPresenter creates a presenter in Ready around one authoritative open.
func NewPresenter(open OpenFunc, opts ...Option) *Presenter {
	p := &Presenter{
		open:  open,
		delay: RevealDuration,
		stage: StageReady,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stage returns the current lifecycle state.
func (p *Presenter) Stage() Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stage
}

// Result returns the open result once Confirm has succeeded, nil before.
func (p *Presenter) Result() *domain.OpenResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result
}

// Confirm runs the open. It transitions Ready -> Opening, invokes the
// authoritative open exactly once, and on success arms the reveal timer.
// On failure the presenter returns to Ready with the error surfaced to the
// caller; nothing is retried automatically. A second Confirm while opening
// or after success is rejected without re-invoking the open.
func (p *Presenter) Confirm(ctx context.Context) (*domain.OpenResult, error) {
	p.mu.Lock()
	if p.dismissed {
		p.mu.Unlock()
		return nil, fmt.Errorf("presenter dismissed")
	}
	if p.stage != StageReady {
		p.mu.Unlock()
		return nil, fmt.Errorf("open already in progress (stage %s)", p.stage)
	}
	p.stage = StageOpening
	p.mu.Unlock()

	result, err := p.open(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		// Back to Ready; the error is displayed inline by the caller.
		p.stage = StageReady
		return nil, err
	}

	p.result = result
	if p.dismissed {
		// The draw is authoritative and already persisted server-side; the
		// viewer just walked away before the reel finished.
		return result, nil
	}

	p.timer = time.AfterFunc(p.delay, func() { p.reveal() })
	return result, nil
}

func (p *Presenter) reveal() {
	p.mu.Lock()
	if p.dismissed || p.stage != StageOpening {
		p.mu.Unlock()
		return
	}
	p.stage = StageRevealed
	result := p.result
	fn := p.onRevealed
	p.mu.Unlock()

	if fn != nil {
		fn(result)
	}
}

// Dismiss tears the presentation down. Safe to call repeatedly and at any
// stage; it stops a pending reveal timer so a stale transition can never
// fire after the presentation is gone, and it never re-invokes the open.
func (p *Presenter) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.dismissed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// Reset returns a revealed presenter to Ready for another run. Resetting
// mid-opening is rejected so an in-flight open cannot be restarted.
func (p *Presenter) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stage == StageOpening {
		return fmt.Errorf("cannot reset while opening")
	}
	p.stage = StageReady
	p.dismissed = false
	p.result = nil
	return nil
}
