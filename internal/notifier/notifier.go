package notifier

import "context"

type Notifier interface {
	Notify(ctx context.Context, routingKey string, ev BookingEvent) error
}

// Direct sends the email in the caller's goroutine.
type Direct struct {
	mailer Mailer
}

func NewDirect(m Mailer) *Direct {
	return &Direct{mailer: m}
}

func (d *Direct) Notify(ctx context.Context, routingKey string, ev BookingEvent) error {
	msg, err := Compose(routingKey, ev)
	if err != nil {
		return err
	}
	return d.mailer.Send(ctx, msg)
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Queue hands the event to the broker; the notification consumer sends the
// email.
type Queue struct {
	pub Publisher
}

func NewQueue(p Publisher) *Queue {
	return &Queue{pub: p}
}

func (q *Queue) Notify(ctx context.Context, routingKey string, ev BookingEvent) error {
	return q.pub.Publish(ctx, routingKey, ev)
}
