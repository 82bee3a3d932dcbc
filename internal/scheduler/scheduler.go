// Package scheduler runs the periodic background work: reconciling pending
// calendar syncs and dispatching due-reminder notifications.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"remindchat/internal/apperr"
	"remindchat/internal/config"
	"remindchat/internal/model"
	"remindchat/internal/notify"
	"remindchat/internal/store"
	"remindchat/internal/workflow"
)

// Scheduler owns the cron loop.
type Scheduler struct {
	cfg      *config.Config
	store    *store.Store
	flow     *workflow.Orchestrator
	notifier *notify.Notifier
	cron     *cron.Cron
	logger   *log.Logger
}

// New creates a Scheduler; Start registers the jobs and begins the loop.
func New(cfg *config.Config, st *store.Store, flow *workflow.Orchestrator, notifier *notify.Notifier, logger *log.Logger) *Scheduler {
	return &Scheduler{
		cfg:      cfg,
		store:    st,
		flow:     flow,
		notifier: notifier,
		cron:     cron.New(cron.WithLocation(cfg.LocalTimezone)),
		logger:   logger,
	}
}

// Start registers cron jobs and starts the scheduler loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.cfg.SchedulerSpec, s.tick)
	if err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if n := s.flow.ResyncPending(ctx); n > 0 {
		s.logger.Printf("scheduler: reconciled %d pending calendar sync(s)", n)
	}
	s.dispatchNotifications(ctx)
}

// dispatchNotifications sends a WhatsApp message for every appointment whose
// lead window has been reached, then marks it dispatched. Failures are
// logged and retried on the next tick.
func (s *Scheduler) dispatchNotifications(ctx context.Context) {
	if !s.notifier.Enabled() {
		return
	}

	due, err := s.store.DueForNotification(ctx, time.Now())
	if err != nil {
		s.logger.Printf("scheduler: due notifications: %v", err)
		return
	}

	for i := range due {
		appt := &due[i]
		profile, err := s.store.Profile(ctx, appt.UserID)
		if err != nil {
			if !apperr.IsNotFound(err) {
				s.logger.Printf("scheduler: profile for %s: %v", appt.UserID, err)
			}
			continue
		}
		if profile.Phone == "" {
			continue
		}

		if err := s.notifier.Send(profile.Phone, notificationBody(appt, profile.Language)); err != nil {
			s.logger.Printf("scheduler: notify appointment %s: %v", appt.ID, err)
			continue
		}
		if err := s.store.MarkNotified(ctx, appt.ID); err != nil {
			s.logger.Printf("scheduler: mark notified %s: %v", appt.ID, err)
		}
	}
}

func notificationBody(appt *model.Appointment, language string) string {
	when := appt.DueAt.Format("Jan 02 15:04")
	if language == "th" {
		return fmt.Sprintf("แจ้งเตือน: %s เวลา %s", appt.Title, when)
	}
	return fmt.Sprintf("Reminder: %s at %s", appt.Title, when)
}
