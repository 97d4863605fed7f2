// Package services формирует и отправляет письма по сообщениям из очередей уведомлений.
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/smtp"
	"github.com/PoorDoomer/gym-saas-sub000/internal/lib/sl"
	"github.com/PoorDoomer/gym-saas-sub000/internal/models"
)

// ErrMalformedMessage тело сообщения не удалось разобрать; повторная доставка не поможет.
var ErrMalformedMessage = errors.New("malformed message")

// Recorder считает отправленные письма.
type Recorder interface {
	Notification(kind, status string)
}

// SenderService отправляет письма через SMTP транспорт.
type SenderService struct {
	transport smtp.TransportInterface
	metrics   Recorder
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService. metrics может быть nil.
func NewSenderService(transport smtp.TransportInterface, metrics Recorder, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		metrics:   metrics,
		log:       log,
	}
}

// SendExpiring письмо об окончании периода подписки завтра.
func (s *SenderService) SendExpiring(body []byte) error {
	const op = "services.sender.SendExpiring"
	var message models.ExpiringSubscription
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedMessage, err)
	}

	subject := fmt.Sprintf("%s: ваш абонемент заканчивается завтра", message.GymName)
	text := fmt.Sprintf("Здравствуйте, %s!\n\n"+
		"Ваш абонемент «%s» в клубе %s заканчивается %s.\n"+
		"Стоимость продления: %.2f.\n\n"+
		"Продлите его на ресепшене или в личном кабинете.",
		message.FirstName, message.PlanName, message.GymName,
		message.EndDate.Format(models.DateLayout), message.Price)

	return s.deliver(op, "expiring", message.Email, subject, text)
}

// SendWelcome приветственное письмо новому участнику или тренеру.
func (s *SenderService) SendWelcome(body []byte) error {
	const op = "services.sender.SendWelcome"
	var message models.WelcomeNotification
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", slog.String("op", op), sl.Err(err))
		return fmt.Errorf("%s: %w: %v", op, ErrMalformedMessage, err)
	}

	gym := message.GymName
	if gym == "" {
		gym = "клуб"
	}
	subject := fmt.Sprintf("Добро пожаловать в %s", gym)
	text := fmt.Sprintf("Здравствуйте, %s!\n\n"+
		"Для вас создана учётная запись (%s) с ролью %s.\n"+
		"Войдите, используя этот адрес почты и пароль, выданный администратором.",
		message.FirstName, message.Email, message.Role)

	return s.deliver(op, "welcome", message.Email, subject, text)
}

func (s *SenderService) deliver(op, kind, to, subject, text string) error {
	if to == "" {
		return fmt.Errorf("%s: %w: empty recipient", op, ErrMalformedMessage)
	}
	if err := s.sendEmail([]string{to}, subject, text); err != nil {
		s.record(kind, "failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	s.record(kind, "sent")
	return nil
}

func (s *SenderService) record(kind, status string) {
	if s.metrics != nil {
		s.metrics.Notification(kind, status)
	}
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + from,
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			s.log.Debug("failed to close SMTP client", sl.Err(err))
		}
	}()

	if err := client.Mail(from); err != nil {
		s.log.Error("failed to set MAIL FROM", slog.String("from", from), sl.Err(err))
		return err
	}
	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", slog.String("recipient", addr), sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get Data writer", sl.Err(err))
		return err
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}
	if err = wc.Close(); err != nil {
		s.log.Error("failed to close Data writer", sl.Err(err))
		return err
	}
	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
