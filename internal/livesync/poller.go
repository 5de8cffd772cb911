package livesync

import (
	"context"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/rapheephat/hiewhub-tui/internal/api"
)

// State represents the lifecycle state of a live view's poller.
type State int

const (
	// StateIdle means the view is not mounted and no poll is scheduled.
	StateIdle State = iota

	// StateActive means the view is mounted and visible; fetches run
	// on every tick.
	StateActive

	// StateSuspended means the view is mounted but not visible. Ticks
	// keep their cadence but the fetch is skipped, so resuming does not
	// reset the schedule.
	StateSuspended

	// StateDisposed is terminal: the ticker is cancelled and any
	// in-flight fetch result is discarded on arrival.
	StateDisposed
)

// FetchFunc loads a fresh snapshot from the backend and returns the
// tea.Msg that carries it to the owning view.
type FetchFunc func(ctx context.Context) (tea.Msg, error)

// ResultMsg is delivered to the Bubble Tea runtime for every accepted
// fetch completion. Payload is nil when Err is set.
type ResultMsg struct {
	// Name identifies the poller instance so the root model can route
	// the payload and re-subscribe on the right channel.
	Name string

	// Payload is the view-specific message produced by the FetchFunc.
	Payload tea.Msg

	// Err is set for surfaced failures: the eager initial fetch, or an
	// auth error from any fetch. Background failures never reach here.
	Err error

	// Silent marks results from background ticks, as opposed to the
	// eager initial fetch or an explicit user refresh.
	Silent bool

	// Gen is the generation the fetch was launched under.
	Gen uint64
}

// fetchTimeout bounds a single fetch operation.
const fetchTimeout = 30 * time.Second

// Poller drives one live view: a recurring timer re-fetches remote
// state while the view is visible and merges results in generation
// order. A response from an older fetch arriving after a newer fetch
// has been launched is discarded, so the displayed snapshot is always
// monotonically fresh.
type Poller struct {
	name     string
	interval time.Duration
	logger   *zap.Logger

	mu      gosync.Mutex
	fetch   FetchFunc
	state   State
	gen     uint64
	started bool

	resultCh  chan ResultMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
}

// New creates a poller in the Idle state. Nothing is scheduled until
// Start is called.
func New(name string, interval time.Duration, fetch FetchFunc, logger *zap.Logger) *Poller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Poller{
		name:      name,
		interval:  interval,
		logger:    logger,
		fetch:     fetch,
		state:     StateIdle,
		resultCh:  make(chan ResultMsg, 16),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Start transitions Idle -> Active, performs one eager fetch so the
// view is not stuck on a placeholder for a full period, and returns
// the subscription command that feeds results into the runtime.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.started || p.state == StateDisposed {
		p.mu.Unlock()
		return p.waitForResult()
	}
	p.started = true
	p.state = StateActive
	p.mu.Unlock()

	p.launchFetch(false)
	go p.loop()

	return p.waitForResult()
}

// loop runs the recurring schedule until the poller is disposed.
func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			if p.State() == StateActive {
				p.launchFetch(true)
			}
			// Suspended tick is a no-op: cadence preserved, no fetch.
		case <-p.triggerCh:
			if p.State() == StateActive {
				p.launchFetch(true)
			}
		}
	}
}

// launchFetch starts one fetch under a freshly bumped generation.
// Bumping on launch means a slower, earlier request can never
// overwrite the result of a faster, later one.
func (p *Poller) launchFetch(silent bool) {
	p.mu.Lock()
	if p.state == StateDisposed {
		p.mu.Unlock()
		return
	}
	p.gen++
	gen := p.gen
	fetch := p.fetch
	p.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		payload, err := fetch(ctx)

		p.mu.Lock()
		stale := p.state == StateDisposed || gen != p.gen
		p.mu.Unlock()
		if stale {
			return
		}

		if err != nil {
			// Background polling must never interrupt the user with
			// transient-error noise; only auth errors always surface.
			if silent && !api.IsAuthError(err) {
				p.logger.Debug("silent poll failed",
					zap.String("poller", p.name),
					zap.Error(err),
				)
				return
			}
			p.send(ResultMsg{Name: p.name, Err: err, Silent: silent, Gen: gen})
			return
		}

		p.send(ResultMsg{Name: p.name, Payload: payload, Silent: silent, Gen: gen})
	}()
}

// Suspend transitions Active -> Suspended. Ticks continue but fetches
// are skipped while suspended.
func (p *Poller) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateActive {
		p.state = StateSuspended
	}
}

// Resume transitions Suspended -> Active. No refetch is forced; the
// next natural tick suffices.
func (p *Poller) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateSuspended {
		p.state = StateActive
	}
}

// Dispose is terminal: the schedule stops and the generation is bumped
// so any straggling in-flight result is ignored on arrival. The
// underlying network request is not cancelled; fire-and-forget.
func (p *Poller) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateDisposed {
		return
	}
	p.state = StateDisposed
	p.gen++
	close(p.stopCh)
}

// Refresh requests an immediate out-of-cadence fetch. Used after a
// mutation so the affected view catches up without waiting a period.
func (p *Poller) Refresh() {
	select {
	case p.triggerCh <- struct{}{}:
	default:
		// A refresh is already queued; one fetch is enough.
	}
}

// SetFetch swaps the fetch function, e.g. when the chat widget moves
// between the room list and an open room. The generation is bumped so
// in-flight results for the old fetch are dropped.
func (p *Poller) SetFetch(fetch FetchFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fetch = fetch
	p.gen++
}

// State returns the current lifecycle state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Generation returns the current generation counter.
func (p *Poller) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// send delivers a result without blocking the fetch goroutine.
func (p *Poller) send(msg ResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking the poller.
	}
}

// waitForResult returns a tea.Cmd that waits for the next accepted
// result. The root model re-issues it after handling each ResultMsg.
// Dispose releases any blocked subscriber so the command goroutine does
// not outlive the poller.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		select {
		case result := <-p.resultCh:
			return result
		case <-p.stopCh:
			return nil
		}
	}
}

// WaitForNextResult re-subscribes after a ResultMsg has been processed.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}

// Results exposes the raw result channel for tests.
func (p *Poller) Results() <-chan ResultMsg {
	return p.resultCh
}
