// Package notify публикует уведомления пользователям в очередь сообщений.
package notify

import (
	"context"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/avshapoval/shop-backend/internal/lib/rabbitmq"
	"github.com/avshapoval/shop-backend/internal/models"
	rabbit "github.com/avshapoval/shop-backend/internal/rabbitmq"
)

// ResetNotifier публикует письмо со ссылкой сброса пароля в очередь.
// Ссылка собирается здесь из адреса фронтенда и токена, отправкой
// занимается отдельный процесс-консьюмер.
type ResetNotifier struct {
	ch          *amqp.Channel
	frontendURL string
}

// NewResetNotifier создает новый экземпляр ResetNotifier.
func NewResetNotifier(ch *amqp.Channel, frontendURL string) *ResetNotifier {
	return &ResetNotifier{ch: ch, frontendURL: frontendURL}
}

// SendResetLink ставит в очередь письмо со ссылкой на страницу сброса.
func (n *ResetNotifier) SendResetLink(_ context.Context, email, token string) error {
	const op = "notify.SendResetLink"
	msg := models.ResetEmail{
		Email: email,
		Link:  fmt.Sprintf("%s/reset?resetToken=%s", n.frontendURL, token),
	}
	if err := rabbitmq.PublishMessage(n.ch,
		rabbit.NotificationsExchange, rabbit.PasswordResetKey, msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
