// Package services реализует доступ к данным клуба с обязательным фильтром по арендатору,
// сводную аналитику для главной панели и отчёты.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

const analyticsTTL = time.Minute

// Repository методы хранилища, которые нужны сервису.
type Repository interface {
	ListMembers(ctx context.Context, gymID string) ([]*models.Member, error)
	ListTrainers(ctx context.Context, gymID string) ([]*models.Trainer, error)
	ListClasses(ctx context.Context, gymID string) ([]*models.Class, error)
	ListEnrollments(ctx context.Context, gymID string) ([]*models.ClassEnrollment, error)
	ListPayments(ctx context.Context, gymID string) ([]*models.Payment, error)
	ListCheckIns(ctx context.Context, gymID string, since time.Time) ([]*models.CheckIn, error)
	CreateMember(ctx context.Context, m models.Member) (*models.Member, error)
}

// Cache кэш сводной аналитики.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// GymDataService единственная точка, где проверяется выбранный клуб.
type GymDataService struct {
	repo  Repository
	cache Cache
	log   *slog.Logger
	now   func() time.Time
}

// NewGymDataService создаёт сервис. cache может быть nil, тогда аналитика не кэшируется.
func NewGymDataService(repo Repository, cache Cache, log *slog.Logger) *GymDataService {
	return &GymDataService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   time.Now,
	}
}

func analyticsKey(gymID string) string {
	return "analytics:" + gymID
}

// Members участники клуба.
func (s *GymDataService) Members(ctx context.Context, gymID string) ([]*models.Member, error) {
	const op = "services.gymdata.Members"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListMembers(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Trainers тренеры клуба.
func (s *GymDataService) Trainers(ctx context.Context, gymID string) ([]*models.Trainer, error) {
	const op = "services.gymdata.Trainers"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListTrainers(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Classes шаблоны занятий клуба.
func (s *GymDataService) Classes(ctx context.Context, gymID string) ([]*models.Class, error) {
	const op = "services.gymdata.Classes"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListClasses(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Enrollments записи на занятия клуба.
func (s *GymDataService) Enrollments(ctx context.Context, gymID string) ([]*models.ClassEnrollment, error) {
	const op = "services.gymdata.Enrollments"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListEnrollments(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// Payments платежи клуба.
func (s *GymDataService) Payments(ctx context.Context, gymID string) ([]*models.Payment, error) {
	const op = "services.gymdata.Payments"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListPayments(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// CheckIns посещения клуба начиная с since.
func (s *GymDataService) CheckIns(ctx context.Context, gymID string, since time.Time) ([]*models.CheckIn, error) {
	const op = "services.gymdata.CheckIns"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListCheckIns(ctx, gymID, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// CreateMember подставляет gym_id и сохраняет участника. Кэш аналитики сбрасывается.
func (s *GymDataService) CreateMember(ctx context.Context, gymID string, m models.Member) (*models.Member, error) {
	const op = "services.gymdata.CreateMember"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m.GymID = gymID
	res, err := s.repo.CreateMember(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.InvalidateAnalytics(ctx, gymID)
	return res, nil
}

// InvalidateAnalytics сбрасывает кэш сводки клуба после изменения участников или платежей.
// Ошибка кэша только логируется.
func (s *GymDataService) InvalidateAnalytics(ctx context.Context, gymID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, analyticsKey(gymID)); err != nil {
		s.log.Warn("failed to invalidate analytics cache", sl.Gym(gymID), sl.Err(err))
	}
}

// Analytics сводка по клубу. Списки загружаются параллельно, ошибка отдельного
// списка логируется и считается пустым списком. Результат кэшируется на минуту.
func (s *GymDataService) Analytics(ctx context.Context, gymID string) (*models.Analytics, error) {
	const op = "services.gymdata.Analytics"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log := s.log.With(slog.String("op", op), sl.Gym(gymID))

	key := analyticsKey(gymID)
	if s.cache != nil {
		var cached models.Analytics
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn("failed to read analytics from cache", sl.Err(err))
		}
		if found {
			return &cached, nil
		}
	}

	var (
		members     []*models.Member
		trainers    []*models.Trainer
		classes     []*models.Class
		enrollments []*models.ClassEnrollment
		payments    []*models.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.repo.ListMembers(gctx, gymID)
		if err != nil {
			log.Error("failed to load members", sl.Err(err))
			return nil
		}
		members = res
		return nil
	})
	g.Go(func() error {
		res, err := s.repo.ListTrainers(gctx, gymID)
		if err != nil {
			log.Error("failed to load trainers", sl.Err(err))
			return nil
		}
		trainers = res
		return nil
	})
	g.Go(func() error {
		res, err := s.repo.ListClasses(gctx, gymID)
		if err != nil {
			log.Error("failed to load classes", sl.Err(err))
			return nil
		}
		classes = res
		return nil
	})
	g.Go(func() error {
		res, err := s.repo.ListEnrollments(gctx, gymID)
		if err != nil {
			log.Error("failed to load enrollments", sl.Err(err))
			return nil
		}
		enrollments = res
		return nil
	})
	g.Go(func() error {
		res, err := s.repo.ListPayments(gctx, gymID)
		if err != nil {
			log.Error("failed to load payments", sl.Err(err))
			return nil
		}
		payments = res
		return nil
	})
	_ = g.Wait()

	a := &models.Analytics{
		TotalMembers:     len(members),
		TotalTrainers:    len(trainers),
		TotalClasses:     len(classes),
		TotalEnrollments: len(enrollments),
	}
	for _, m := range members {
		if m.IsActive {
			a.ActiveMembers++
		}
	}
	for _, t := range trainers {
		if t.IsActive {
			a.ActiveTrainers++
		}
	}
	monthStart := period.MonthStart(s.now())
	for _, p := range payments {
		if p.Status != models.PaymentCompleted {
			continue
		}
		a.TotalRevenue += p.Amount
		if !paidAt(p).Before(monthStart) {
			a.MonthlyRevenue += p.Amount
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, a, analyticsTTL); err != nil {
			log.Warn("failed to cache analytics", sl.Err(err))
		}
	}
	return a, nil
}

// paidAt момент оплаты, для старых записей без paid_at берётся время создания.
func paidAt(p *models.Payment) time.Time {
	if p.PaidAt != nil {
		return *p.PaidAt
	}
	return p.CreatedAt
}

// RevenueReport выручка по завершённым платежам за последние months календарных
// месяцев, включая текущий, от старого к новому.
func (s *GymDataService) RevenueReport(ctx context.Context, gymID string, months int) ([]models.RevenuePoint, error) {
	const op = "services.gymdata.RevenueReport"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if months <= 0 {
		return nil, fmt.Errorf("%s: %w: months must be positive", op, models.ErrInvalidInput)
	}
	payments, err := s.repo.ListPayments(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	first := period.MonthStart(s.now()).AddDate(0, -(months - 1), 0)
	points := make([]models.RevenuePoint, months)
	index := make(map[string]int, months)
	for i := range points {
		month := first.AddDate(0, i, 0).Format("2006-01")
		points[i].Month = month
		index[month] = i
	}
	for _, p := range payments {
		if p.Status != models.PaymentCompleted {
			continue
		}
		if i, ok := index[paidAt(p).In(first.Location()).Format("2006-01")]; ok {
			points[i].Revenue += p.Amount
		}
	}
	return points, nil
}

// CheckInReport количество посещений по дням за последние days дней, включая сегодня.
func (s *GymDataService) CheckInReport(ctx context.Context, gymID string, days int) ([]models.CheckInPoint, error) {
	const op = "services.gymdata.CheckInReport"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%s: %w: days must be positive", op, models.ErrInvalidInput)
	}
	first := period.DayStart(s.now()).AddDate(0, 0, -(days - 1))
	checkIns, err := s.repo.ListCheckIns(ctx, gymID, first)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	points := make([]models.CheckInPoint, days)
	index := make(map[string]int, days)
	for i := range points {
		day := first.AddDate(0, 0, i).Format("2006-01-02")
		points[i].Day = day
		index[day] = i
	}
	for _, c := range checkIns {
		if i, ok := index[c.CheckedInAt.In(first.Location()).Format("2006-01-02")]; ok {
			points[i].Count++
		}
	}
	return points, nil
}
