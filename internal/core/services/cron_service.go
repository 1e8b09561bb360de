package services

import (
	"context"
	"log"
	"time"

	"companyhub/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs periodic maintenance: purging consumed or expired
// password reset tokens and clearing elapsed account lockouts.
type CronService struct {
	userRepo  repositories.UserRepository
	resetRepo repositories.PasswordResetRepository
	cron      *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(userRepo repositories.UserRepository, resetRepo repositories.PasswordResetRepository) *CronService {
	return &CronService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		cron:      cron.New(),
	}
}

// Start registers and launches the maintenance jobs
func (s *CronService) Start() {
	s.cron.AddFunc("@hourly", s.purgeResetTokens)
	s.cron.AddFunc("@hourly", s.clearLockouts)
	s.cron.Start()
	log.Println("Cron service started")
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("Cron service stopped")
}

func (s *CronService) purgeResetTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.resetRepo.DeleteExpired(ctx); err != nil {
		log.Printf("Failed to purge reset tokens: %v", err)
	}
}

func (s *CronService) clearLockouts() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.userRepo.ClearExpiredLockouts(ctx); err != nil {
		log.Printf("Failed to clear lockouts: %v", err)
	}
}
