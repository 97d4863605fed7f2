// Package services содержит бизнес-логику отметок посещений клуба.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/qr"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// CheckInRepository методы хранилища для посещений.
type CheckInRepository interface {
	CreateCheckIn(ctx context.Context, c models.CheckIn) (*models.CheckIn, error)
	CheckOut(ctx context.Context, gymID, id string, at time.Time) (*models.CheckIn, error)
	ListCheckIns(ctx context.Context, gymID string, since time.Time) ([]*models.CheckIn, error)
}

// Recorder учитывает отметки в метриках.
type Recorder interface {
	CheckIn(method string)
}

// CheckInService реализует отметки прихода и ухода участников.
type CheckInService struct {
	repo    CheckInRepository
	metrics Recorder
	log     *slog.Logger
	now     func() time.Time
}

// NewCheckInService создает новый экземпляр CheckInService.
func NewCheckInService(repo CheckInRepository, metrics Recorder, log *slog.Logger) *CheckInService {
	return &CheckInService{
		repo:    repo,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// CheckIn отмечает приход участника. Без способа отметка считается ручной.
func (s *CheckInService) CheckIn(ctx context.Context, gymID string, req models.CheckInRequest) (*models.CheckIn, error) {
	const op = "services.checkin.CheckIn"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	method := req.Method
	if method == "" {
		method = models.CheckInManual
	}
	res, err := s.repo.CreateCheckIn(ctx, models.CheckIn{
		GymID:       gymID,
		MemberID:    req.MemberID,
		CheckedInAt: s.now(),
		Method:      method,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if s.metrics != nil {
		s.metrics.CheckIn(string(method))
	}
	s.log.Info("member checked in", sl.Gym(gymID), slog.String("member_id", res.MemberID),
		slog.String("method", string(method)))
	return res, nil
}

// CheckInByQR отмечает приход по содержимому QR-кода MEMBER:<id>:<имя>.
// Содержимое не подписано: любой текст в этом формате принимается.
func (s *CheckInService) CheckInByQR(ctx context.Context, gymID string, req models.QRCheckInRequest) (*models.CheckIn, error) {
	const op = "services.checkin.CheckInByQR"
	memberID := qr.MemberID(req.Payload)
	if memberID == "" {
		return nil, fmt.Errorf("%s: %w: empty member id in qr payload", op, models.ErrInvalidInput)
	}
	res, err := s.CheckIn(ctx, gymID, models.CheckInRequest{
		MemberID: memberID,
		Method:   models.CheckInQRScan,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// CheckOut закрывает посещение текущим временем.
func (s *CheckInService) CheckOut(ctx context.Context, gymID, id string) (*models.CheckIn, error) {
	const op = "services.checkin.CheckOut"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.CheckOut(ctx, gymID, id, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// List посещения клуба начиная с since, новые первыми.
func (s *CheckInService) List(ctx context.Context, gymID string, since time.Time) ([]*models.CheckIn, error) {
	const op = "services.checkin.List"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.repo.ListCheckIns(ctx, gymID, since)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res, nil
}

// weekStart понедельник текущей недели.
func weekStart(t time.Time) time.Time {
	day := period.DayStart(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Stats сводка посещений: за сегодня, в клубе сейчас (сегодняшние незакрытые)
// и с начала недели.
func (s *CheckInService) Stats(ctx context.Context, gymID string) (models.CheckInStats, error) {
	const op = "services.checkin.Stats"
	var stats models.CheckInStats
	if err := tenant.Require(gymID); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	now := s.now()
	today := period.DayStart(now)
	since := weekStart(now)
	checkIns, err := s.repo.ListCheckIns(ctx, gymID, since)
	if err != nil {
		s.log.Error("failed to load check-ins for stats", slog.String("op", op), sl.Gym(gymID), sl.Err(err))
		return stats, nil
	}
	for _, c := range checkIns {
		if c.CheckedInAt.Before(since) {
			continue
		}
		stats.ThisWeek++
		if !c.CheckedInAt.Before(today) {
			stats.Today++
			if c.CheckedOutAt == nil {
				stats.CurrentlyIn++
			}
		}
	}
	return stats, nil
}
