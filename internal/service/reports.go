package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"saferail/internal/logger"
	"saferail/internal/report"
	"saferail/internal/repository"
)

// ReportService builds the weekly safety workbook and schedules it.
type ReportService struct {
	feedback repository.FeedbackRepo
	alerts   repository.AlertRepo
	dir      string
	log      *logger.Logger
}

func NewReportService(feedback repository.FeedbackRepo, alerts repository.AlertRepo, dir string, log *logger.Logger) *ReportService {
	if log == nil {
		log = logger.Nop()
	}
	return &ReportService{feedback: feedback, alerts: alerts, dir: dir, log: log.Named("reports")}
}

// data collects everything since Monday 00:00 of now's week.
func (s *ReportService) data(ctx context.Context, now time.Time) (report.Data, error) {
	from := report.WeekStart(now)
	fb, err := s.feedback.ListSince(ctx, from)
	if err != nil {
		return report.Data{}, fmt.Errorf("report feedback: %w", err)
	}
	al, err := s.alerts.ListSince(ctx, from)
	if err != nil {
		return report.Data{}, fmt.Errorf("report alerts: %w", err)
	}
	return report.Data{From: from, To: now, Feedback: fb, Alerts: al}, nil
}

// WriteWeekly renders the current week's report into w and returns its file name.
func (s *ReportService) WriteWeekly(ctx context.Context, w io.Writer, now time.Time) (string, error) {
	d, err := s.data(ctx, now)
	if err != nil {
		return "", err
	}
	if err := report.Write(w, d); err != nil {
		return "", err
	}
	return report.FileName(d.From), nil
}

// generate writes the report for the week containing at into the reports dir.
func (s *ReportService) generate(ctx context.Context, at time.Time) (string, error) {
	d, err := s.data(ctx, at)
	if err != nil {
		return "", err
	}
	return report.WriteFile(s.dir, d)
}

// Run ticks at the given interval until ctx is canceled and writes a report
// once the scheduled Sunday 23:59 has passed.
func (s *ReportService) Run(ctx context.Context, tick time.Duration) {
	s.run(ctx, tick, time.Now)
}

func (s *ReportService) run(ctx context.Context, tick time.Duration, clock func() time.Time) {
	t := time.NewTicker(tick)
	defer t.Stop()

	next := report.NextRun(clock())
	s.log.Infow("report_scheduled", "next_run", next)
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			now := clock()
			if now.Before(next) {
				continue
			}
			path, err := s.generate(ctx, next)
			if err != nil {
				s.log.Errorw("report_failed", "week_of", next, "err", err)
			} else {
				s.log.Infow("report_written", "path", path)
			}
			next = report.NextRun(now)
		}
	}
}
