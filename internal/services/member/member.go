// Package services содержит бизнес-логику работы с участниками клуба.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/period"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/qr"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sanitize"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/search"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// MemberRepository методы хранилища для чтения и изменения участников.
type MemberRepository interface {
	GetMember(ctx context.Context, gymID, id string) (*models.Member, error)
	UpdateMember(ctx context.Context, m models.Member) error
	DeactivateMember(ctx context.Context, gymID, id string) error
	CountActiveMembers(ctx context.Context, gymID string) (int, error)
	GetGym(ctx context.Context, gymID string) (*models.Gym, error)
}

// GymData доступ к спискам клуба и вставка с подстановкой gym_id.
type GymData interface {
	Members(ctx context.Context, gymID string) ([]*models.Member, error)
	CreateMember(ctx context.Context, gymID string, m models.Member) (*models.Member, error)
	InvalidateAnalytics(ctx context.Context, gymID string)
}

// MemberService реализует операции над участниками.
type MemberService struct {
	repo MemberRepository
	data GymData
	log  *slog.Logger
	now  func() time.Time
}

// NewMemberService создает новый экземпляр MemberService.
func NewMemberService(repo MemberRepository, data GymData, log *slog.Logger) *MemberService {
	return &MemberService{
		repo: repo,
		data: data,
		log:  log,
		now:  time.Now,
	}
}

// List возвращает участников клуба, отфильтрованных по подстроке query
// в имени, фамилии, почте или телефоне, и страницу page из них.
func (s *MemberService) List(ctx context.Context, gymID, query string, page search.Page) (*models.MemberListResult, error) {
	const op = "services.member.List"
	members, err := s.data.Members(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	filtered := search.Filter(members, query, func(m *models.Member) []string {
		return []string{m.FirstName, m.LastName, m.Email, m.Phone}
	})
	return &models.MemberListResult{
		Items: search.Slice(filtered, page),
		Total: len(filtered),
	}, nil
}

// Get возвращает участника по ID.
func (s *MemberService) Get(ctx context.Context, gymID, id string) (*models.Member, error) {
	const op = "services.member.Get"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	m, err := s.repo.GetMember(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// EnsureCapacity возвращает ErrMemberLimitReached, если активных участников
// уже столько, сколько разрешает тариф клуба.
func (s *MemberService) EnsureCapacity(ctx context.Context, gymID string) error {
	const op = "services.member.EnsureCapacity"
	if err := tenant.Require(gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	gym, err := s.repo.GetGym(ctx, gymID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	limit := gym.Tier.MemberCap()
	if limit == models.Unlimited {
		return nil
	}
	active, err := s.repo.CountActiveMembers(ctx, gymID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if active >= limit {
		return fmt.Errorf("%s: %w", op, models.ErrMemberLimitReached)
	}
	return nil
}

// Create добавляет участника без учётной записи. Без абонемента membership_plan_id остаётся NULL.
func (s *MemberService) Create(ctx context.Context, gymID string, req models.CreateMemberRequest) (*models.Member, error) {
	const op = "services.member.Create"
	if err := s.EnsureCapacity(ctx, gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Notes = sanitize.Text(req.Notes)
	m, err := req.Member(gymID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res, err := s.data.CreateMember(ctx, gymID, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("member created", sl.Gym(gymID), slog.String("member_id", res.ID))
	return res, nil
}

// Update меняет только переданные поля участника.
func (s *MemberService) Update(ctx context.Context, gymID, id string, req models.UpdateMemberRequest) (*models.Member, error) {
	const op = "services.member.Update"
	m, err := s.Get(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if req.FirstName != nil {
		m.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		m.LastName = *req.LastName
	}
	if req.Email != nil {
		m.Email = *req.Email
	}
	if req.Phone != nil {
		m.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		if *req.DateOfBirth == "" {
			m.DateOfBirth = nil
		} else {
			dob, err := time.Parse(models.DateLayout, *req.DateOfBirth)
			if err != nil {
				return nil, fmt.Errorf("%s: %w: date_of_birth", op, models.ErrInvalidInput)
			}
			m.DateOfBirth = &dob
		}
	}
	if req.MembershipPlanID != nil {
		if *req.MembershipPlanID == "" {
			m.MembershipPlanID = nil
		} else {
			planID := *req.MembershipPlanID
			m.MembershipPlanID = &planID
		}
	}
	if req.EmergencyContact != nil {
		m.EmergencyContact = *req.EmergencyContact
	}
	if req.Notes != nil {
		m.Notes = sanitize.Text(*req.Notes)
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateMember(ctx, *m); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.data.InvalidateAnalytics(ctx, gymID)
	return m, nil
}

// Delete деактивирует участника. Повторный вызов не является ошибкой.
func (s *MemberService) Delete(ctx context.Context, gymID, id string) error {
	const op = "services.member.Delete"
	if err := tenant.Require(gymID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.DeactivateMember(ctx, gymID, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.data.InvalidateAnalytics(ctx, gymID)
	return nil
}

// Stats сводка по участникам. Ошибка загрузки логируется, возвращается нулевая сводка.
func (s *MemberService) Stats(ctx context.Context, gymID string) (models.MemberStats, error) {
	const op = "services.member.Stats"
	var stats models.MemberStats
	if err := tenant.Require(gymID); err != nil {
		return stats, fmt.Errorf("%s: %w", op, err)
	}
	members, err := s.data.Members(ctx, gymID)
	if err != nil {
		s.log.Error("failed to load members for stats", slog.String("op", op), sl.Gym(gymID), sl.Err(err))
		return stats, nil
	}
	monthStart := period.MonthStart(s.now())
	for _, m := range members {
		stats.Total++
		if m.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if !m.JoinedAt.Before(monthStart) {
			stats.NewThisMonth++
		}
	}
	return stats, nil
}

// QRCode рисует PNG с QR-кодом участника для входа в клуб.
func (s *MemberService) QRCode(ctx context.Context, gymID, id string, size int) ([]byte, error) {
	const op = "services.member.QRCode"
	m, err := s.Get(ctx, gymID, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	png, err := qr.PNG(qr.Payload(m.ID, m.FullName()), size)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return png, nil
}
