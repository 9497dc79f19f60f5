package services

import (
	"context"
	"fmt"

	"petfind/internal/adapters/persistence/models"
	"petfind/internal/adapters/persistence/repositories"
	"petfind/internal/core/domain"
	"petfind/internal/pkg/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultMaxAttempts bounds outbox retries per message
	DefaultMaxAttempts = 5
	defaultRetryBatch  = 50
	defaultFanOut      = 8
)

// NotificationService stores every message in the outbox and delivers it
// through the configured sender. Delivery failures are logged and left in
// the outbox for RetryUnsent.
type NotificationService struct {
	sender      Sender
	emailRepo   repositories.EmailRepository
	log         *zap.Logger
	maxAttempts int
	fanOut      int
}

// NewNotificationService creates a new notification service.
// A nil sender keeps messages queued in the outbox.
func NewNotificationService(sender Sender, emailRepo repositories.EmailRepository, log *zap.Logger) *NotificationService {
	return &NotificationService{
		sender:      sender,
		emailRepo:   emailRepo,
		log:         log.Named("notifications"),
		maxAttempts: DefaultMaxAttempts,
		fanOut:      defaultFanOut,
	}
}

// IsEnabled checks if a transport is configured
func (s *NotificationService) IsEnabled() bool {
	return s.sender != nil
}

// Dispatch delivers msgs concurrently, one send per recipient, and waits
// for all of them. It ignores cancellation of ctx so that a committed
// transition still notifies after the request ends.
func (s *NotificationService) Dispatch(ctx context.Context, msgs ...domain.Message) {
	if len(msgs) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)

	var g errgroup.Group
	g.SetLimit(s.fanOut)
	for _, msg := range msgs {
		g.Go(func() error {
			s.deliver(ctx, msg)
			return nil
		})
	}
	_ = g.Wait()
}

// deliver records msg in the outbox and attempts one send
func (s *NotificationService) deliver(ctx context.Context, msg domain.Message) {
	row := &models.Email{
		UserID:   msg.UserID,
		Email:    msg.Email,
		Subject:  msg.Subject,
		Template: msg.Template,
		Context:  msg.Context,
	}
	if err := s.emailRepo.Create(ctx, row); err != nil {
		s.log.Error("store outbox message",
			zap.String("recipient", msg.Email),
			zap.String("template", msg.Template),
			zap.Error(err),
		)
		row = nil
	}

	if s.sender == nil {
		s.log.Debug("no mail transport, message queued",
			zap.String("recipient", msg.Email),
			zap.String("template", msg.Template),
		)
		return
	}

	err := s.send(ctx, msg)
	if row != nil {
		s.record(ctx, row, err)
	}
}

// send performs one attempt and records the outcome metric
func (s *NotificationService) send(ctx context.Context, msg domain.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sender panic: %v", r)
		}
		if err != nil {
			metrics.Notification(msg.Template, metrics.OutcomeFailed)
			s.log.Warn("notification delivery failed",
				zap.String("recipient", msg.Email),
				zap.String("template", msg.Template),
				zap.Error(err),
			)
			return
		}
		metrics.Notification(msg.Template, metrics.OutcomeSent)
	}()
	return s.sender.Send(ctx, msg)
}

// record marks the outbox row with the result of an attempt
func (s *NotificationService) record(ctx context.Context, row *models.Email, sendErr error) {
	row.Attempts++
	if sendErr != nil {
		row.LastError = sendErr.Error()
	} else {
		row.Sent = true
		row.LastError = ""
	}
	if err := s.emailRepo.Update(ctx, row); err != nil {
		s.log.Error("update outbox message", zap.Uint("email_id", row.ID), zap.Error(err))
	}
}

// RetryUnsent re-sends queued messages that have attempts left and
// returns how many were delivered
func (s *NotificationService) RetryUnsent(ctx context.Context) (int, error) {
	if s.sender == nil {
		return 0, nil
	}
	rows, err := s.emailRepo.ListUnsent(ctx, s.maxAttempts, defaultRetryBatch)
	if err != nil {
		return 0, fmt.Errorf("list unsent messages: %w", err)
	}

	sent := 0
	for _, row := range rows {
		if ctx.Err() != nil {
			break
		}
		err := s.send(ctx, row.ToMessage())
		s.record(ctx, row, err)
		if err == nil {
			sent++
		}
	}
	return sent, nil
}
