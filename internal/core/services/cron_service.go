package services

import (
	"context"
	"log"

	"umoja-sacco/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs the daily background jobs: payment reminder
// dispatch and the backup/cleanup sweep.
type CronService struct {
	cron     *cron.Cron
	penalty  *PenaltyService
	settings *SettingsService
	tokens   repositories.RefreshTokenRepository
}

// NewCronService creates a new cron service
func NewCronService(penalty *PenaltyService, settings *SettingsService, tokens repositories.RefreshTokenRepository) *CronService {
	return &CronService{
		cron:     cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
		penalty:  penalty,
		settings: settings,
		tokens:   tokens,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() {
	// Dispatch due payment reminders at 08:30 daily
	if _, err := s.cron.AddFunc("30 8 * * *", s.runReminderDispatch); err != nil {
		log.Printf("⚠️ Failed to schedule reminder dispatch: %v", err)
	}

	// Record the daily backup and purge expired tokens at 02:00
	if _, err := s.cron.AddFunc("0 2 * * *", s.runNightlySweep); err != nil {
		log.Printf("⚠️ Failed to schedule nightly sweep: %v", err)
	}

	s.cron.Start()
	log.Println("⏰ Cron service started (reminders 08:30, nightly sweep 02:00)")
}

// Stop stops the scheduler, waiting for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("⏰ Cron service stopped")
}

func (s *CronService) runReminderDispatch() {
	count, err := s.penalty.DispatchDueReminders(context.Background())
	if err != nil {
		log.Printf("❌ Reminder dispatch failed: %v", err)
		return
	}
	if count > 0 {
		log.Printf("📨 Dispatched %d payment reminder(s)", count)
	}
}

func (s *CronService) runNightlySweep() {
	backup, err := s.settings.CreateBackup(context.Background(), "full")
	if err != nil {
		log.Printf("❌ Daily backup record failed: %v", err)
	} else {
		log.Printf("💾 Backup recorded: %s", backup.Location)
	}

	if err := s.tokens.DeleteExpired(context.Background()); err != nil {
		log.Printf("❌ Expired token cleanup failed: %v", err)
	}
}
