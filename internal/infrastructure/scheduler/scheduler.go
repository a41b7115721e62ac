package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ReservationSweeper releases vehicle reservations whose hold has expired
type ReservationSweeper interface {
	ReleaseExpired(ctx context.Context, now time.Time) (int, error)
}

// InstallmentReminderSender notifies about overdue installments
type InstallmentReminderSender interface {
	SendOverdueReminders(ctx context.Context, asOf time.Time) (int, error)
}

// Config holds the periodic job configuration
type Config struct {
	// ReservationSweepInterval is how often expired reservations are released
	ReservationSweepInterval time.Duration

	// InstallmentReminderSchedule is a daily cron line ("MIN HOUR * * *")
	// giving the local time the reminder run fires
	InstallmentReminderSchedule string

	// CheckInterval is how often the reminder loop checks the clock
	CheckInterval time.Duration
}

// DefaultConfig returns the default scheduler configuration
func DefaultConfig() Config {
	return Config{
		ReservationSweepInterval:    time.Hour,
		InstallmentReminderSchedule: "0 8 * * *",
		CheckInterval:               time.Minute,
	}
}

// Scheduler runs the background jobs: the reservation expiry sweep and
// the daily installment reminder run
type Scheduler struct {
	config   Config
	sweeper  ReservationSweeper
	reminder InstallmentReminderSender
	logger   *zap.Logger

	reminderHour   int
	reminderMinute int

	cancel      context.CancelFunc
	wg          sync.WaitGroup
	mu          sync.Mutex
	isRunning   bool
	lastRunDate string
}

// NewScheduler creates a new scheduler. The reminder schedule must be a
// daily cron line; anything else fails here rather than at run time.
func NewScheduler(
	config Config,
	sweeper ReservationSweeper,
	reminder InstallmentReminderSender,
	logger *zap.Logger,
) (*Scheduler, error) {
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if config.ReservationSweepInterval <= 0 {
		config.ReservationSweepInterval = time.Hour
	}

	hour, minute, err := parseDailySchedule(config.InstallmentReminderSchedule)
	if err != nil {
		return nil, err
	}

	return &Scheduler{
		config:         config,
		sweeper:        sweeper,
		reminder:       reminder,
		logger:         logger,
		reminderHour:   hour,
		reminderMinute: minute,
	}, nil
}

// Start starts the background loops
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go s.sweepLoop(ctx)
	go s.reminderLoop(ctx)

	s.logger.Info("Scheduler started",
		zap.Duration("reservation_sweep_interval", s.config.ReservationSweepInterval),
		zap.Int("reminder_hour", s.reminderHour),
		zap.Int("reminder_minute", s.reminderMinute),
	)

	return nil
}

// Stop stops the background loops and waits for in-flight runs
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) sweepLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.ReservationSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

func (s *Scheduler) runSweep(ctx context.Context) {
	released, err := s.sweeper.ReleaseExpired(ctx, time.Now())
	if err != nil {
		s.logger.Error("Reservation sweep failed", zap.Error(err))
		return
	}
	if released > 0 {
		s.logger.Info("Expired reservations released", zap.Int("count", released))
	}
}

func (s *Scheduler) reminderLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndRemind(ctx)
		}
	}
}

// checkAndRemind fires the reminder run once per calendar day at the
// configured time
func (s *Scheduler) checkAndRemind(ctx context.Context) {
	now := time.Now()
	currentDate := now.Format("2006-01-02")

	s.mu.Lock()
	alreadyRan := s.lastRunDate == currentDate
	s.mu.Unlock()
	if alreadyRan {
		return
	}

	if now.Hour() != s.reminderHour || now.Minute() != s.reminderMinute {
		return
	}

	s.mu.Lock()
	s.lastRunDate = currentDate
	s.mu.Unlock()

	s.runReminders(ctx, now)
}

func (s *Scheduler) runReminders(ctx context.Context, asOf time.Time) {
	sent, err := s.reminder.SendOverdueReminders(ctx, asOf)
	if err != nil {
		s.logger.Error("Installment reminder run failed", zap.Error(err))
		return
	}
	s.logger.Info("Installment reminder run completed", zap.Int("reminders_sent", sent))
}

// TriggerSweep runs the reservation sweep immediately
func (s *Scheduler) TriggerSweep(ctx context.Context) {
	s.runSweep(ctx)
}

// TriggerReminders runs the installment reminder pass immediately
func (s *Scheduler) TriggerReminders(ctx context.Context) {
	s.runReminders(ctx, time.Now())
}

// parseDailySchedule extracts hour and minute from a daily cron line.
// Only "MIN HOUR * * *" forms are accepted.
func parseDailySchedule(schedule string) (hour, minute int, err error) {
	fields := strings.Fields(schedule)
	if len(fields) != 5 {
		return 0, 0, fmt.Errorf("invalid reminder schedule %q: expected 5 cron fields", schedule)
	}

	minute, err = strconv.Atoi(fields[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid reminder schedule %q: bad minute field", schedule)
	}
	hour, err = strconv.Atoi(fields[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid reminder schedule %q: bad hour field", schedule)
	}

	for _, f := range fields[2:] {
		if f != "*" {
			return 0, 0, fmt.Errorf("invalid reminder schedule %q: only daily schedules are supported", schedule)
		}
	}

	return hour, minute, nil
}
