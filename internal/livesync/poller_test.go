package livesync

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rapheephat/hiewhub-tui/internal/api"
)

type payloadMsg struct {
	n int
}

// waitResult reads the next accepted result with a test deadline.
func waitResult(t *testing.T, p *Poller) ResultMsg {
	t.Helper()
	select {
	case msg := <-p.Results():
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for poll result")
		return ResultMsg{}
	}
}

func TestStartFetchesEagerly(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (tea.Msg, error) {
		calls.Add(1)
		return payloadMsg{n: 1}, nil
	}

	p := New("test", time.Hour, fetch, nil)
	defer p.Dispose()
	p.Start()

	msg := waitResult(t, p)
	if msg.Silent {
		t.Error("eager first fetch must not be silent")
	}
	if got, ok := msg.Payload.(payloadMsg); !ok || got.n != 1 {
		t.Errorf("Payload = %#v", msg.Payload)
	}
	if calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1 (interval is one hour)", calls.Load())
	}
	if p.State() != StateActive {
		t.Errorf("State = %v, want Active", p.State())
	}
}

func TestTicksKeepFetchingWhileActive(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (tea.Msg, error) {
		return payloadMsg{n: int(calls.Add(1))}, nil
	}

	p := New("test", 20*time.Millisecond, fetch, nil)
	defer p.Dispose()
	p.Start()

	first := waitResult(t, p)
	second := waitResult(t, p)
	if first.Silent {
		t.Error("first result should be the eager fetch")
	}
	if !second.Silent {
		t.Error("tick results must be silent")
	}
	if second.Gen <= first.Gen {
		t.Errorf("generations not increasing: %d then %d", first.Gen, second.Gen)
	}
}

func TestSuspendSkipsFetches(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (tea.Msg, error) {
		calls.Add(1)
		return payloadMsg{}, nil
	}

	p := New("test", 15*time.Millisecond, fetch, nil)
	defer p.Dispose()
	p.Start()
	waitResult(t, p)

	p.Suspend()
	if p.State() != StateSuspended {
		t.Fatalf("State = %v, want Suspended", p.State())
	}
	before := calls.Load()
	time.Sleep(80 * time.Millisecond)
	if calls.Load() != before {
		t.Errorf("fetches ran while suspended: %d -> %d", before, calls.Load())
	}

	p.Resume()
	waitResult(t, p)
	if calls.Load() <= before {
		t.Error("no fetch after resume")
	}
}

func TestDisposeDiscardsInflightResult(t *testing.T) {
	release := make(chan struct{})
	fetch := func(ctx context.Context) (tea.Msg, error) {
		<-release
		return payloadMsg{n: 99}, nil
	}

	p := New("test", time.Hour, fetch, nil)
	p.Start()

	// The eager fetch is now blocked; dispose, then let it finish.
	p.Dispose()
	close(release)

	select {
	case msg := <-p.Results():
		t.Errorf("disposed poller delivered %#v", msg)
	case <-time.After(100 * time.Millisecond):
	}
	if p.State() != StateDisposed {
		t.Errorf("State = %v, want Disposed", p.State())
	}
}

func TestStaleGenerationIsDropped(t *testing.T) {
	var calls atomic.Int32
	eagerEntered := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (tea.Msg, error) {
		n := int(calls.Add(1))
		if n == 1 {
			// The launch that precedes the refresh sits in flight
			// until the newer one has completed.
			close(eagerEntered)
			<-release
		}
		return payloadMsg{n: n}, nil
	}

	p := New("test", time.Hour, fetch, nil)
	defer p.Dispose()
	p.Start()

	// Refresh only once the eager fetch is in flight, so the blocked
	// call is known to carry the older generation.
	select {
	case <-eagerEntered:
	case <-time.After(2 * time.Second):
		t.Fatal("eager fetch never started")
	}
	p.Refresh()

	// Wait for the second (fresh) fetch to land, then release the first.
	msg := waitResult(t, p)
	if got := msg.Payload.(payloadMsg); got.n != 2 {
		t.Fatalf("fresh result n = %d, want 2", got.n)
	}
	close(release)

	select {
	case stale := <-p.Results():
		t.Errorf("stale result delivered: %#v", stale.Payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSilentErrorsAreSwallowed(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (tea.Msg, error) {
		if calls.Add(1) == 1 {
			return payloadMsg{}, nil
		}
		return nil, errors.New("boom")
	}

	p := New("test", 15*time.Millisecond, fetch, nil)
	defer p.Dispose()
	p.Start()
	waitResult(t, p)

	// Every subsequent tick fails; none of it may surface.
	select {
	case msg := <-p.Results():
		t.Errorf("background failure surfaced: %#v", msg)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAuthErrorSurfacesEvenWhenSilent(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (tea.Msg, error) {
		if calls.Add(1) == 1 {
			return payloadMsg{}, nil
		}
		return nil, &api.AuthError{StatusCode: 401, Message: "expired"}
	}

	p := New("test", 15*time.Millisecond, fetch, nil)
	defer p.Dispose()
	p.Start()
	waitResult(t, p)

	msg := waitResult(t, p)
	if msg.Err == nil || !api.IsAuthError(msg.Err) {
		t.Fatalf("expected surfaced auth error, got %#v", msg)
	}
}

func TestEagerFetchErrorSurfaces(t *testing.T) {
	fetch := func(ctx context.Context) (tea.Msg, error) {
		return nil, errors.New("server down")
	}

	p := New("test", time.Hour, fetch, nil)
	defer p.Dispose()
	p.Start()

	msg := waitResult(t, p)
	if msg.Err == nil {
		t.Fatal("eager fetch failure must surface")
	}
	if msg.Silent {
		t.Error("eager fetch result marked silent")
	}
}

func TestSetFetchDropsInflightOldFetch(t *testing.T) {
	release := make(chan struct{})
	oldFetch := func(ctx context.Context) (tea.Msg, error) {
		<-release
		return payloadMsg{n: 1}, nil
	}
	newFetch := func(ctx context.Context) (tea.Msg, error) {
		return payloadMsg{n: 2}, nil
	}

	p := New("test", time.Hour, oldFetch, nil)
	defer p.Dispose()
	p.Start()

	p.SetFetch(newFetch)
	p.Refresh()

	msg := waitResult(t, p)
	if got := msg.Payload.(payloadMsg); got.n != 2 {
		t.Fatalf("got payload %d, want result of swapped fetch", got.n)
	}

	close(release)
	select {
	case stale := <-p.Results():
		t.Errorf("pre-swap result delivered: %#v", stale.Payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestRefreshTriggersImmediateFetch(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (tea.Msg, error) {
		return payloadMsg{n: int(calls.Add(1))}, nil
	}

	p := New("test", time.Hour, fetch, nil)
	defer p.Dispose()
	p.Start()
	waitResult(t, p)

	// With a one-hour interval, only an explicit refresh can fetch.
	p.Refresh()
	msg := waitResult(t, p)
	if got := msg.Payload.(payloadMsg); got.n != 2 {
		t.Errorf("refresh payload n = %d, want 2", got.n)
	}
	if !msg.Silent {
		t.Error("refresh results go through the silent path")
	}
}

func TestDisposeReleasesSubscribers(t *testing.T) {
	fetch := func(ctx context.Context) (tea.Msg, error) {
		return payloadMsg{}, nil
	}

	p := New("test", time.Hour, fetch, nil)
	p.Start()
	waitResult(t, p)

	// A subscriber blocked on the next result must return once the
	// poller is disposed instead of hanging forever.
	done := make(chan tea.Msg, 1)
	go func() { done <- p.WaitForNextResult()() }()
	p.Dispose()

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("disposed subscriber returned %#v, want nil", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber still blocked after dispose")
	}
}

func TestStartTwiceIsIdempotent(t *testing.T) {
	var calls atomic.Int32
	fetch := func(ctx context.Context) (tea.Msg, error) {
		calls.Add(1)
		return payloadMsg{}, nil
	}

	p := New("test", time.Hour, fetch, nil)
	defer p.Dispose()
	p.Start()
	p.Start()
	waitResult(t, p)

	time.Sleep(50 * time.Millisecond)
	if calls.Load() != 1 {
		t.Errorf("fetch calls = %d, want 1", calls.Load())
	}
}
