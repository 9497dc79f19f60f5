package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultRetrySchedule runs the outbox retry every five minutes
const DefaultRetrySchedule = "@every 5m"

// CronService runs periodic maintenance jobs
type CronService struct {
	cron          *cron.Cron
	notifications *NotificationService
	schedule      string
	log           *zap.Logger
}

// NewCronService creates a new cron service
func NewCronService(notifications *NotificationService, schedule string, log *zap.Logger) *CronService {
	if schedule == "" {
		schedule = DefaultRetrySchedule
	}
	return &CronService{
		cron:          cron.New(),
		notifications: notifications,
		schedule:      schedule,
		log:           log.Named("cron"),
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.retryNotifications); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("cron started", zap.String("mail_retry", s.schedule))
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info("cron stopped")
}

func (s *CronService) retryNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sent, err := s.notifications.RetryUnsent(ctx)
	if err != nil {
		s.log.Error("retry unsent notifications", zap.Error(err))
		return
	}
	if sent > 0 {
		s.log.Info("retried notifications", zap.Int("sent", sent))
	}
}
