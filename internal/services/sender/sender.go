// Package sender отправляет письма из очереди уведомлений через SMTP.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/avshapoval/shop-backend/internal/lib/sl"
	"github.com/avshapoval/shop-backend/internal/lib/smtp"
	"github.com/avshapoval/shop-backend/internal/models"
)

// Service читает сообщения о сбросе пароля и отправляет письма.
type Service struct {
	transport smtp.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, log *slog.Logger) *Service {
	return &Service{transport: transport, log: log}
}

// SendResetEmail разбирает сообщение очереди и отправляет письмо со
// ссылкой сброса пароля. Ошибка возвращается консьюмеру, который вернёт
// сообщение в очередь.
func (s *Service) SendResetEmail(body []byte) error {
	const op = "sender.SendResetEmail"

	var msg models.ResetEmail
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err := client.Quit(); err != nil {
			s.log.Error("failed to close smtp session", sl.Err(err))
		}
	}()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := client.Rcpt(msg.Email); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	letter := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Сброс пароля\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n"+
			"Вы запросили сброс пароля.\r\n\r\n"+
			"Перейдите по ссылке, чтобы задать новый пароль (действует один час):\r\n%s\r\n\r\n"+
			"Если вы не запрашивали сброс, просто проигнорируйте это письмо.\r\n",
		s.transport.GetSMTPUser(), msg.Email, msg.Link)
	if _, err := w.Write([]byte(letter)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("reset email sent", slog.String("email", msg.Email))
	return nil
}
