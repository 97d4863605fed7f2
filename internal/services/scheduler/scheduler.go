// Package services содержит фоновые задачи по подпискам: уведомление об окончании
// периода и перевод просроченных подписок в expired.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/rabbitmq"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// SubscriptionRepository выборки подписок всех клубов для фоновых задач.
type SubscriptionRepository interface {
	FindSubscriptionsExpiringOn(ctx context.Context, day time.Time) ([]*models.ExpiringSubscription, error)
	ExpireOverdueSubscriptions(ctx context.Context, now time.Time) (int, error)
}

// Publisher публикует уведомление по ключу маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Recorder метрики фоновых задач.
type Recorder interface {
	Notification(kind, status string)
	SubscriptionsExpired(n int)
}

// SchedulerService запускает периодические проверки подписок.
type SchedulerService struct {
	repo      SubscriptionRepository
	publisher Publisher
	metrics   Recorder
	log       *slog.Logger
	now       func() time.Time
}

// NewSchedulerService создает новый экземпляр SchedulerService. metrics может быть nil.
func NewSchedulerService(repo SubscriptionRepository, publisher Publisher, metrics Recorder, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

// NotifyExpiring публикует уведомления о подписках, которые заканчиваются завтра.
// Возвращает число опубликованных сообщений; ошибки публикации отдельных сообщений логируются.
func (s *SchedulerService) NotifyExpiring(ctx context.Context) (int, error) {
	const op = "services.scheduler.NotifyExpiring"
	log := s.log.With(slog.String("op", op))

	tomorrow := s.now().AddDate(0, 0, 1)
	subs, err := s.repo.FindSubscriptionsExpiringOn(ctx, tomorrow)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if len(subs) == 0 {
		log.Info("no expiring subscriptions found")
		return 0, nil
	}

	published := 0
	for _, sub := range subs {
		if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyExpiring, sub); err != nil {
			log.Error("failed to publish message", slog.String("subscription_id", sub.SubscriptionID), sl.Err(err))
			s.record(rabbitmq.RoutingKeyExpiring, "failed")
			continue
		}
		s.record(rabbitmq.RoutingKeyExpiring, "published")
		published++
	}
	log.Info("expiring subscriptions published", slog.Int("found", len(subs)), slog.Int("published", published))
	return published, nil
}

// ExpireOverdue переводит подписки с прошедшим периодом в expired.
func (s *SchedulerService) ExpireOverdue(ctx context.Context) (int, error) {
	const op = "services.scheduler.ExpireOverdue"
	n, err := s.repo.ExpireOverdueSubscriptions(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if s.metrics != nil {
		s.metrics.SubscriptionsExpired(n)
	}
	s.log.Info("overdue subscriptions expired", slog.String("op", op), slog.Int("count", n))
	return n, nil
}

func (s *SchedulerService) record(kind, status string) {
	if s.metrics != nil {
		s.metrics.Notification(kind, status)
	}
}

// RunExpiring выполняет NotifyExpiring сразу и затем раз в interval до отмены ctx.
func (s *SchedulerService) RunExpiring(ctx context.Context, interval time.Duration) {
	s.loop(ctx, interval, "notify expiring", func(ctx context.Context) error {
		_, err := s.NotifyExpiring(ctx)
		return err
	})
}

// RunOverdue выполняет ExpireOverdue сразу и затем раз в interval до отмены ctx.
func (s *SchedulerService) RunOverdue(ctx context.Context, interval time.Duration) {
	s.loop(ctx, interval, "expire overdue", func(ctx context.Context) error {
		_, err := s.ExpireOverdue(ctx)
		return err
	})
}

func (s *SchedulerService) loop(ctx context.Context, interval time.Duration, name string, task func(context.Context) error) {
	run := func() {
		if err := task(ctx); err != nil {
			s.log.Error("scheduled task failed", slog.String("task", name), sl.Err(err))
		}
	}
	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			run()
		case <-ctx.Done():
			s.log.Info("scheduled task stopped", slog.String("task", name))
			return
		}
	}
}
