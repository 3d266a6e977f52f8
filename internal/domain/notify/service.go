package notify

import (
	"context"
	"time"

	"patilog/internal/domain/records"
	"patilog/internal/domain/schedule"
	"patilog/internal/platform/logger"
	"patilog/internal/ports/mail"
)

// Service is the scheduled reminder pipeline: load, select, render, dispatch.
// Fully stateless; every run recomputes from the store. A record that stays
// in the window gets a fresh message every run — the stable identity keeps
// the calendar side idempotent, the inbox side repeats on purpose.
type Service struct {
	repo      records.Repository
	transport mail.Transport
	log       logger.Logger

	recipients    []string
	lookaheadDays int
	reminderHour  int

	now func() time.Time
}

type Options struct {
	Recipients    []string
	LookaheadDays int // <= 0 means the default window
	ReminderHour  int // local hour for the calendar event, e.g. 9
}

func NewService(repo records.Repository, transport mail.Transport, log logger.Logger, opts Options) *Service {
	lookahead := opts.LookaheadDays
	if lookahead <= 0 {
		lookahead = schedule.DefaultLookaheadDays
	}
	hour := opts.ReminderHour
	if hour <= 0 || hour > 23 {
		hour = 9
	}

	return &Service{
		repo:          repo,
		transport:     transport,
		log:           log,
		recipients:    opts.Recipients,
		lookaheadDays: lookahead,
		reminderHour:  hour,
		now:           time.Now,
	}
}

// Stats summarizes one run.
type Stats struct {
	Records  int
	Selected int
	Skipped  int
	Sent     int
	Failed   int
}

// Run executes one pass. There is no fatal path: an unreadable store reads as
// empty, a bad row is skipped, a failed send is logged and the remaining
// messages are still attempted.
func (s *Service) Run(ctx context.Context) Stats {
	today := s.now()
	s.log.Info("reminder run started", map[string]any{
		"today":     today.Format(schedule.ISODate),
		"lookahead": s.lookaheadDays,
	})

	recs, err := s.repo.LoadAll(ctx)
	if err != nil {
		// ambiguous with "no records yet"; accepted
		s.log.Warn("store read failed, treating as empty", map[string]any{"err": err.Error()})
		recs = nil
	}

	due, skipped := schedule.SelectDue(records.Entries(recs), today, s.lookaheadDays)
	for _, sk := range skipped {
		s.log.Warn("row skipped", map[string]any{"row": sk.Row, "reason": sk.Reason})
	}

	stats := Stats{Records: len(recs), Selected: len(due), Skipped: len(skipped)}

	for _, rem := range due {
		msg := Render(rem, s.recipients, s.reminderHour, today)

		if err := s.transport.Send(ctx, msg); err != nil {
			// no retry, no dead letter; the next run re-selects the record
			stats.Failed++
			s.log.Error("dispatch failed", map[string]any{
				"pet":      rem.PetName,
				"identity": rem.Identity,
				"err":      err.Error(),
			})
			continue
		}

		stats.Sent++
		s.log.Info("reminder sent", map[string]any{
			"pet":       rem.PetName,
			"treatment": rem.Treatment,
			"due":       rem.DueDate.Format(schedule.ISODate),
			"days_left": rem.DaysLeft,
		})
	}

	s.log.Info("reminder run finished", map[string]any{
		"records": stats.Records, "selected": stats.Selected,
		"skipped": stats.Skipped, "sent": stats.Sent, "failed": stats.Failed,
	})
	return stats
}
