package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Имена exchange, очереди и ключа маршрутизации писем сброса пароля.
const (
	NotificationsExchange = "notifications"
	PasswordResetQueue    = "password_reset_queue"
	PasswordResetKey      = "password_reset"
)

// SetupChannel открывает канал и объявляет exchange с очередью
// писем сброса пароля.
func SetupChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}
	err = ch.ExchangeDeclare(
		NotificationsExchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	_, err = ch.QueueDeclare(
		PasswordResetQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	err = ch.QueueBind(PasswordResetQueue, PasswordResetKey, NotificationsExchange, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ch, nil
}
