package poller_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/uvify/uv-monitor/internal/poller"
)

type countingRefresher struct {
	latest  atomic.Int64
	history atomic.Int64
}

func (c *countingRefresher) RefreshLatest(ctx context.Context) error {
	c.latest.Add(1)
	return nil
}

func (c *countingRefresher) RefreshHistory(ctx context.Context) error {
	c.history.Add(1)
	return nil
}

func TestPollerRunsBothJobs(t *testing.T) {
	r := &countingRefresher{}
	p := poller.New(r, 50*time.Millisecond, 80*time.Millisecond, time.Second)

	if err := p.Start(); err != nil {
		t.Fatalf("failed to start poller: %v", err)
	}
	defer p.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.latest.Load() >= 2 && r.history.Load() >= 2 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("jobs did not run: latest=%d history=%d", r.latest.Load(), r.history.Load())
}

func TestPollerStopCancelsJobs(t *testing.T) {
	r := &countingRefresher{}
	p := poller.New(r, 30*time.Millisecond, 30*time.Millisecond, time.Second)

	if err := p.Start(); err != nil {
		t.Fatalf("failed to start poller: %v", err)
	}

	// Let it tick at least once, then stop and drain in-flight jobs.
	time.Sleep(100 * time.Millisecond)
	p.Stop()
	time.Sleep(100 * time.Millisecond)

	latest := r.latest.Load()
	history := r.history.Load()

	time.Sleep(200 * time.Millisecond)

	if r.latest.Load() != latest || r.history.Load() != history {
		t.Fatalf("refreshes continued after Stop: latest %d->%d history %d->%d",
			latest, r.latest.Load(), history, r.history.Load())
	}
}
