package poller

import (
	"context"
	"log"
	"time"

	"github.com/eKidenge/QuickConnect-sub000/internal/repository"
	"github.com/eKidenge/QuickConnect-sub000/internal/ws"
)

// SessionLister is the slice of the session repository the poller needs.
type SessionLister interface {
	ListPending(ctx context.Context, limit int) ([]repository.Session, error)
}

// PendingPoller re-reads pending sessions on a fixed interval and pushes
// their current status over the websocket hub. The matcher and the
// repositories stay synchronous; this is the only component with a clock.
type PendingPoller struct {
	sessions SessionLister
	interval time.Duration
	limit    int
	logger   *log.Logger
}

func NewPendingPoller(sessions SessionLister, interval time.Duration, limit int, logger *log.Logger) *PendingPoller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if limit <= 0 {
		limit = 200
	}
	return &PendingPoller{sessions: sessions, interval: interval, limit: limit, logger: logger}
}

// Run blocks until ctx is cancelled. Each tick is independent; a failed
// fetch is logged and the next tick proceeds.
func (p *PendingPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *PendingPoller) tick(ctx context.Context) {
	tickCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	pending, err := p.sessions.ListPending(tickCtx, p.limit)
	if err != nil {
		if p.logger != nil {
			p.logger.Printf("poller tick failed | err=%v", err)
		}
		return
	}

	for _, s := range pending {
		ws.NotifySessionUpdated(s.ID, s.Status)
	}
}
