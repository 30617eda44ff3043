package notify

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophgarage/internal/logging"
	"github.com/dmitrijs2005/gophgarage/internal/models"
)

type sentKey struct {
	vehicle  models.ID
	category string
	due      int64
}

func keyOf(r models.Reminder) sentKey {
	return sentKey{vehicle: r.VehicleID, category: strings.ToLower(r.MaintenanceType), due: r.DueDate.Unix()}
}

// Scheduler delivers each due-soon reminder once.
type Scheduler struct {
	deliverer Deliverer
	window    int
	interval  time.Duration
	logger    logging.Logger
	now       func() time.Time

	mu   sync.Mutex
	sent map[sentKey]struct{}
}

func NewScheduler(d Deliverer, window int, interval time.Duration, logger logging.Logger) *Scheduler {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Scheduler{
		deliverer: d,
		window:    window,
		interval:  interval,
		logger:    logger,
		now:       time.Now,
		sent:      make(map[sentKey]struct{}),
	}
}

// Check delivers notifications for reminders not notified yet and returns
// how many were delivered.
func (s *Scheduler) Check(ctx context.Context, reminders []models.Reminder) int {
	now := s.now()
	delivered := 0
	for _, r := range DueSoon(reminders, now, s.window) {
		k := keyOf(r)

		s.mu.Lock()
		_, done := s.sent[k]
		s.mu.Unlock()
		if done {
			continue
		}

		if err := s.deliverer.Deliver(ctx, NewMessage(r, now)); err != nil {
			s.logger.Warn(ctx, "notification failed", "reminder", r.ID, "error", err)
			continue
		}

		s.mu.Lock()
		s.sent[k] = struct{}{}
		s.mu.Unlock()
		delivered++
	}
	return delivered
}

// Reset forgets what was delivered, e.g. when another user logs in.
func (s *Scheduler) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = make(map[sentKey]struct{})
}

// Run checks every snapshot received from reminders and re-checks the last
// one every interval so that reminders entering the window are noticed.
// It returns when ctx is done or reminders is closed.
func (s *Scheduler) Run(ctx context.Context, reminders <-chan []models.Reminder) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var latest []models.Reminder
	for {
		select {
		case rs, ok := <-reminders:
			if !ok {
				return
			}
			latest = rs
			s.Check(ctx, latest)
		case <-ticker.C:
			s.Check(ctx, latest)
		case <-ctx.Done():
			return
		}
	}
}
