// Package services реализует создание участника или тренера вместе с учётной записью для входа.
//
// Создание состоит из шагов: учётная запись в сервисе идентификации, затем одна транзакция
// в базе (запись участника или тренера, роль, связь учётной записи). Если транзакция не прошла,
// учётная запись удаляется. Результат каждого шага возвращается в Outcome.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/rabbitmq"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sanitize"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
	"github.com/PoorDoomer/gym-saas-sub000/internal/tenant"
)

// Названия шагов создания аккаунта.
const (
	StepIdentity   = "identity"
	StepRecord     = "record"
	StepCompensate = "compensate"
	StepWelcome    = "welcome"
)

// StepStatus результат шага.
type StepStatus string

const (
	StatusDone        StepStatus = "done"
	StatusFailed      StepStatus = "failed"
	StatusCompensated StepStatus = "compensated"
	StatusSkipped     StepStatus = "skipped"
)

// Step запись о выполненном шаге.
type Step struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// Outcome итог создания аккаунта.
type Outcome struct {
	UserID  string          `json:"user_id,omitempty"`
	Member  *models.Member  `json:"member,omitempty"`
	Trainer *models.Trainer `json:"trainer,omitempty"`
	Steps   []Step          `json:"steps"`
}

func (o *Outcome) record(name string, status StepStatus, err error) {
	step := Step{Name: name, Status: status}
	if err != nil {
		step.Error = err.Error()
	}
	o.Steps = append(o.Steps, step)
}

// Step возвращает статус шага name или пустую строку, если шага не было.
func (o *Outcome) Step(name string) StepStatus {
	for i := len(o.Steps) - 1; i >= 0; i-- {
		if o.Steps[i].Name == name {
			return o.Steps[i].Status
		}
	}
	return ""
}

// IdentityProvider административные операции сервиса идентификации.
type IdentityProvider interface {
	AdminCreateUser(ctx context.Context, email, password string) (string, error)
	AdminDeleteUser(ctx context.Context, userID string) error
}

// AccountRepository транзакционная вставка записи, роли и связи учётной записи.
type AccountRepository interface {
	CreateMemberAccount(ctx context.Context, m models.Member, userID string) (*models.Member, error)
	CreateTrainerAccount(ctx context.Context, t models.Trainer, userID string) (*models.Trainer, error)
	GetGym(ctx context.Context, gymID string) (*models.Gym, error)
}

// CapacityChecker проверяет лимит участников тарифа.
type CapacityChecker interface {
	EnsureCapacity(ctx context.Context, gymID string) error
}

// Publisher публикует уведомление по ключу маршрутизации.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// Recorder считает исходы создания аккаунтов.
type Recorder interface {
	AccountProvisioned(role, outcome string)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string, any) error { return nil }

// AccountService создаёт участников и тренеров с учётными записями.
type AccountService struct {
	identity  IdentityProvider
	repo      AccountRepository
	capacity  CapacityChecker
	publisher Publisher
	metrics   Recorder
	log       *slog.Logger
	now       func() time.Time
}

// NewAccountService создаёт AccountService. publisher и metrics могут быть nil.
func NewAccountService(identity IdentityProvider, repo AccountRepository, capacity CapacityChecker,
	publisher Publisher, metrics Recorder, log *slog.Logger) *AccountService {
	if publisher == nil {
		publisher = noopPublisher{}
	}
	return &AccountService{
		identity:  identity,
		repo:      repo,
		capacity:  capacity,
		publisher: publisher,
		metrics:   metrics,
		log:       log,
		now:       time.Now,
	}
}

func (s *AccountService) observe(role models.Role, outcome string) {
	if s.metrics != nil {
		s.metrics.AccountProvisioned(string(role), outcome)
	}
}

// provision выполняет общие шаги: учётная запись, запись в базе, откат, приветствие.
func (s *AccountService) provision(ctx context.Context, op, gymID, email, password, firstName string,
	role models.Role, out *Outcome, insert func(userID string) error) error {
	log := s.log.With(slog.String("op", op), sl.Gym(gymID), slog.String("role", string(role)))

	userID, err := s.identity.AdminCreateUser(ctx, email, password)
	if err != nil {
		out.record(StepIdentity, StatusFailed, err)
		out.record(StepRecord, StatusSkipped, nil)
		s.observe(role, "identity_failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	out.UserID = userID
	out.record(StepIdentity, StatusDone, nil)

	if err := insert(userID); err != nil {
		out.record(StepRecord, StatusFailed, err)
		log.Error("failed to insert account records, deleting identity", sl.Err(err))
		// Удаление идёт в отдельном контексте: исходный запрос мог быть отменён.
		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if derr := s.identity.AdminDeleteUser(cctx, userID); derr != nil {
			out.record(StepCompensate, StatusFailed, derr)
			log.Error("failed to delete orphaned identity", slog.String("user_uid", userID), sl.Err(derr))
			s.observe(role, "compensation_failed")
			return fmt.Errorf("%s: %w (compensation failed: %v)", op, err, derr)
		}
		out.record(StepCompensate, StatusCompensated, nil)
		out.UserID = ""
		s.observe(role, "compensated")
		return fmt.Errorf("%s: %w", op, err)
	}
	out.record(StepRecord, StatusDone, nil)
	s.observe(role, "created")

	welcome := models.WelcomeNotification{Email: email, FirstName: firstName, Role: role}
	if gym, err := s.repo.GetGym(ctx, gymID); err == nil {
		welcome.GymName = gym.Name
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingKeyWelcome, welcome); err != nil {
		out.record(StepWelcome, StatusFailed, err)
		log.Warn("failed to publish welcome notification", sl.Err(err))
		return nil
	}
	out.record(StepWelcome, StatusDone, nil)
	log.Info("account created", slog.String("user_uid", userID))
	return nil
}

// CreateMemberWithAccount создаёт участника клуба gymID и учётную запись для него.
// Outcome возвращается и при ошибке, чтобы было видно, на каком шаге она произошла.
func (s *AccountService) CreateMemberWithAccount(ctx context.Context, gymID string, req models.CreateMemberAccountRequest) (*Outcome, error) {
	const op = "services.account.CreateMemberWithAccount"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	member, err := req.Member(gymID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	member.Notes = sanitize.Text(member.Notes)
	if s.capacity != nil {
		if err := s.capacity.EnsureCapacity(ctx, gymID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	out := &Outcome{}
	err = s.provision(ctx, op, gymID, req.Email, req.Password, req.FirstName, models.RoleMember, out,
		func(userID string) error {
			created, err := s.repo.CreateMemberAccount(ctx, member, userID)
			if err != nil {
				return err
			}
			out.Member = created
			return nil
		})
	return out, err
}

// CreateTrainer создаёт тренера клуба gymID вместе с учётной записью.
func (s *AccountService) CreateTrainer(ctx context.Context, gymID string, req models.CreateTrainerRequest) (*Outcome, error) {
	const op = "services.account.CreateTrainer"
	if err := tenant.Require(gymID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	trainer := req.Trainer(gymID)
	trainer.Bio = sanitize.Text(trainer.Bio)

	out := &Outcome{}
	err := s.provision(ctx, op, gymID, req.Email, req.Password, req.FirstName, models.RoleTrainer, out,
		func(userID string) error {
			created, err := s.repo.CreateTrainerAccount(ctx, trainer, userID)
			if err != nil {
				return err
			}
			out.Trainer = created
			return nil
		})
	return out, err
}
