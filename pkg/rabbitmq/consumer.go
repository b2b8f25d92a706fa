package rabbitmq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	QueueName  = "booking-service.notifications"
	BindingKey = "booking.*"

	prefetch = 8
)

type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// NewConsumer connects and declares the exchange, the notification queue and
// its binding. Any failure after dialing closes what was opened.
func NewConsumer(url string) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	c := &Consumer{conn: conn}

	c.channel, err = conn.Channel()
	if err != nil {
		return nil, c.abort("open channel", err)
	}
	if err := c.setup(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Consumer) setup() error {
	if err := c.channel.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		return c.abort("declare exchange "+ExchangeName, err)
	}
	q, err := c.channel.QueueDeclare(QueueName, true, false, false, false, nil)
	if err != nil {
		return c.abort("declare queue "+QueueName, err)
	}
	if err := c.channel.QueueBind(q.Name, BindingKey, ExchangeName, false, nil); err != nil {
		return c.abort("bind "+q.Name+" to "+BindingKey, err)
	}
	if err := c.channel.Qos(prefetch, 0, false); err != nil {
		return c.abort("set prefetch", err)
	}
	return nil
}

// abort releases the broker resources and wraps the step that failed.
func (c *Consumer) abort(step string, err error) error {
	c.Close()
	return fmt.Errorf("rabbitmq consumer: %s: %w", step, err)
}

func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	msgs, err := c.channel.Consume(
		QueueName, "", false, false, false, false, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq consume: %w", err)
	}
	return msgs, nil
}

// Close is safe on a partially set up consumer.
func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
