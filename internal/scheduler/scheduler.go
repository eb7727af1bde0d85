package scheduler

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"PriceOutlook/internal/notifier"
	"PriceOutlook/internal/pipeline"
	"PriceOutlook/internal/recorder"
	"PriceOutlook/internal/report"
)

const sendRetries = 3

// ForecastRunner runs the pipeline for one symbol.
type ForecastRunner interface {
	Run(ctx context.Context, symbol string) (*pipeline.Outcome, error)
}

// Scheduler manages cron-driven forecast runs and chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   ForecastRunner
	Notifier notifier.Sender // nil disables delivery
	Recorder recorder.Recorder
	Symbols  []string
	Ctx      context.Context

	log *logrus.Entry
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner ForecastRunner, sender notifier.Sender, rec recorder.Recorder, symbols []string, log *logrus.Entry) *Scheduler {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Runner:   runner,
		Notifier: sender,
		Recorder: rec,
		Symbols:  symbols,
		Ctx:      ctx,
		log:      log,
	}
}

// Register adds the daily forecast job.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.log.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunNow executes the daily job immediately.
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	s.log.WithField("symbols", strings.Join(s.Symbols, ",")).Info("running daily forecast")
	for _, symbol := range s.Symbols {
		if s.Ctx.Err() != nil {
			return
		}
		out, err := s.Runner.Run(s.Ctx, symbol)
		if err != nil {
			s.trySend(fmt.Sprintf("❌ Forecast for %s failed: %s", html.EscapeString(symbol), html.EscapeString(err.Error())))
			continue
		}
		s.trySend(report.FormatTelegram(out.Summary))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText()
	}
	symbol := s.defaultSymbol()
	if len(fields) > 1 {
		symbol = strings.ToUpper(fields[1])
	}

	switch strings.ToLower(fields[0]) {
	case "/forecast":
		out, err := s.Runner.Run(ctx, symbol)
		if err != nil {
			return fmt.Sprintf("❌ Forecast for %s failed: %s", html.EscapeString(symbol), html.EscapeString(err.Error()))
		}
		return report.FormatTelegram(out.Summary)
	case "/optimal":
		out, err := s.Runner.Run(ctx, symbol)
		if err != nil {
			return fmt.Sprintf("❌ Forecast for %s failed: %s", html.EscapeString(symbol), html.EscapeString(err.Error()))
		}
		opt := out.Summary.Optimal
		if opt == nil {
			return fmt.Sprintf("No optimal exit available for %s", html.EscapeString(symbol))
		}
		return fmt.Sprintf("🎯 <b>%s</b> best exit: %s\nExpected %.2f (range %.2f - %.2f), in %d days",
			html.EscapeString(symbol), report.FormatDate(opt.Date), opt.Expected, opt.Pessimistic, opt.Optimistic, opt.DaysFromNow)
	case "/history":
		return s.history(symbol)
	default:
		return helpText()
	}
}

func (s *Scheduler) history(symbol string) string {
	runs, err := s.Recorder.RecentRuns(symbol, 5)
	if err != nil {
		s.log.WithError(err).Error("load run history")
		return "❌ Could not load run history"
	}
	if len(runs) == 0 {
		return fmt.Sprintf("No recorded runs for %s", html.EscapeString(symbol))
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s recent runs</b>\n", html.EscapeString(symbol)))
	for _, r := range runs {
		line := fmt.Sprintf("%s %s", r.RunAt.Format("2006-01-02 15:04"), r.Status)
		if r.OptimalPrice != nil && r.OptimalDate != nil {
			line += fmt.Sprintf(" | best %.2f on %s", *r.OptimalPrice, report.FormatDate(*r.OptimalDate))
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (s *Scheduler) defaultSymbol() string {
	if len(s.Symbols) > 0 {
		return s.Symbols[0]
	}
	return ""
}

func helpText() string {
	return "Available commands:\n" +
		"• /forecast [SYMBOL]\n" +
		"• /optimal [SYMBOL]\n" +
		"• /history [SYMBOL]\n" +
		"• /help"
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		s.log.WithError(err).Error("send notification")
	}
}
