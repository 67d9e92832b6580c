package poller

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Refresher is the part of the UV service the poller drives.
type Refresher interface {
	RefreshLatest(ctx context.Context) error
	RefreshHistory(ctx context.Context) error
}

// Poller runs the two periodic refresh jobs: a fast one for the most recent
// reading and a slower one for the full history snapshot. Ticks may overlap
// when the backend is slow; the store's sequence numbering keeps late
// responses from rolling data backwards, so no mutual exclusion is needed
// here.
type Poller struct {
	scheduler *gocron.Scheduler
	service   Refresher

	latestInterval  time.Duration
	historyInterval time.Duration
	fetchTimeout    time.Duration
}

// New creates a new Poller. fetchTimeout bounds each individual refresh.
func New(service Refresher, latestInterval, historyInterval, fetchTimeout time.Duration) *Poller {
	s := gocron.NewScheduler(time.UTC)
	return &Poller{
		scheduler:       s,
		service:         service,
		latestInterval:  latestInterval,
		historyInterval: historyInterval,
		fetchTimeout:    fetchTimeout,
	}
}

// Start schedules both jobs and starts the underlying scheduler. An initial
// history refresh runs immediately so consumers have data before the first
// slow tick.
func (p *Poller) Start() error {
	if _, err := p.scheduler.Every(p.latestInterval).Do(func() {
		p.runRefresh("latest", p.service.RefreshLatest)
	}); err != nil {
		return err
	}

	if _, err := p.scheduler.Every(p.historyInterval).Do(func() {
		p.runRefresh("history", p.service.RefreshHistory)
	}); err != nil {
		return err
	}

	p.scheduler.StartAsync()

	go p.runRefresh("history", p.service.RefreshHistory)
	return nil
}

func (p *Poller) runRefresh(name string, refresh func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.fetchTimeout)
	defer cancel()

	if err := refresh(ctx); err != nil {
		log.Printf("poller: %s refresh failed: %v", name, err)
	}
}

// Stop cancels all scheduled jobs. No refresh result is applied after Stop
// returns and the in-flight ticks drain.
func (p *Poller) Stop() {
	if p.scheduler != nil {
		p.scheduler.Stop()
	}
}
