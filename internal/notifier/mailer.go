package notifier

import (
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Compose renders the email for a booking event.
func Compose(routingKey string, ev BookingEvent) (Message, error) {
	msg := Message{To: ev.Email}
	switch routingKey {
	case RKBookingCreated:
		msg.Subject = fmt.Sprintf("Booking received: %s on %s at %s", ev.ServiceType, ev.Date, ev.TimeSlot)
		msg.Body = fmt.Sprintf(
			"Hi %s,\n\nThanks for booking a %s on %s at %s. Your request is pending and you will get another email once it is confirmed.\n",
			ev.Name, ev.ServiceType, ev.Date, ev.TimeSlot,
		)
	case RKBookingConfirmed:
		msg.Subject = fmt.Sprintf("Booking confirmed: %s on %s at %s", ev.ServiceType, ev.Date, ev.TimeSlot)
		msg.Body = fmt.Sprintf("Hi %s,\n\nYour %s on %s at %s is confirmed.\n", ev.Name, ev.ServiceType, ev.Date, ev.TimeSlot)
	case RKBookingCancelled:
		msg.Subject = fmt.Sprintf("Booking cancelled: %s on %s at %s", ev.ServiceType, ev.Date, ev.TimeSlot)
		msg.Body = fmt.Sprintf("Hi %s,\n\nYour %s on %s at %s has been cancelled.\n", ev.Name, ev.ServiceType, ev.Date, ev.TimeSlot)
		if ev.AdminNotes != "" {
			msg.Body += "\nNote: " + ev.AdminNotes + "\n"
		}
	default:
		return Message{}, fmt.Errorf("unknown booking event %q", routingKey)
	}
	if msg.To == "" {
		return Message{}, fmt.Errorf("booking event %q has no recipient", routingKey)
	}
	return msg, nil
}

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: host + ":" + strconv.Itoa(port),
		auth: auth,
		from: from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString("From: " + m.from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// LogMailer writes mails to the log. Used when no SMTP host is configured.
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("mail",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
	)
	return nil
}
