package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Eursukkul/session-booking/internal/notifier"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const sendTimeout = 30 * time.Second

type NotificationConsumer struct {
	mailer notifier.Mailer
	log    *zap.Logger
}

func NewNotificationConsumer(mailer notifier.Mailer, log *zap.Logger) *NotificationConsumer {
	return &NotificationConsumer{mailer: mailer, log: log}
}

// Start sends an email for every booking event until msgs is closed.
func (nc *NotificationConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			nc.handleMessage(msg)
		}
		nc.log.Info("notification channel closed, stopping consumer")
	}()
	return done
}

func (nc *NotificationConsumer) handleMessage(msg amqp.Delivery) {
	var ev notifier.BookingEvent
	if err := json.Unmarshal(msg.Body, &ev); err != nil {
		nc.log.Error("failed to unmarshal booking event", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}

	mail, err := notifier.Compose(msg.RoutingKey, ev)
	if err != nil {
		nc.log.Warn("dropping booking event", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := nc.mailer.Send(ctx, mail); err != nil {
		nc.log.Error("failed to send booking email",
			zap.Uint("reservation_id", ev.ReservationID),
			zap.String("routing_key", msg.RoutingKey),
			zap.Error(err),
		)
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}

	nc.log.Info("booking email sent", zap.Uint("reservation_id", ev.ReservationID), zap.String("routing_key", msg.RoutingKey))
	_ = msg.Ack(false)
}
