package notify

import (
	"context"
	"errors"
	"log/slog"

	"court-reservations/internal/pkg/errs"
	"court-reservations/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type ConsumerConfig struct {
	URL      string
	Exchange string
	Queue    string
	Prefetch int
}

// DeadLetterExchange receives deliveries rejected without requeue.
func (c ConsumerConfig) DeadLetterExchange() string { return c.Exchange + ".dlx" }
func (c ConsumerConfig) DeadLetterQueue() string    { return c.Queue + ".dlq" }

type Consumer struct {
	cfg     ConsumerConfig
	handler *Handler

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg ConsumerConfig, handler *Handler) *Consumer {
	if cfg.Prefetch <= 0 {
		cfg.Prefetch = 8
	}
	return &Consumer{cfg: cfg, handler: handler}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.URL)
	if err != nil {
		return errs.Wrap(err, "rabbit dial failed")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "open channel failed")
	}
	if err := c.declare(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}
	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) declare(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(c.cfg.DeadLetterExchange(), "topic", true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "declare dlx failed")
	}
	if _, err := ch.QueueDeclare(c.cfg.DeadLetterQueue(), true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "declare dlq failed")
	}
	if err := ch.QueueBind(c.cfg.DeadLetterQueue(), "#", c.cfg.DeadLetterExchange(), false, nil); err != nil {
		return errs.Wrap(err, "bind dlq failed")
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		return errs.Wrapf(err, "declare exchange %s failed", c.cfg.Exchange)
	}
	args := amqp.Table{"x-dead-letter-exchange": c.cfg.DeadLetterExchange()}
	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		return errs.Wrap(err, "declare queue failed")
	}
	for _, key := range RoutingKeys {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			return errs.Wrapf(err, "bind queue key=%s failed", key)
		}
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		return errs.Wrap(err, "set qos failed")
	}
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Run blocks until ctx ends or the delivery channel closes. Undecodable
// deliveries go to the dead-letter queue; mailer failures are requeued once.
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "notify-worker", false, false, false, false, nil)
	if err != nil {
		return errs.Wrap(err, "consume failed")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.dispatch(ctx, d)
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, d amqp.Delivery) {
	err := c.handler.Handle(ctx, d.RoutingKey, d.Body)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case IsPermanent(err) || d.Redelivered:
		slog.ErrorContext(ctx, "notification dropped to dead-letter queue", "key", d.RoutingKey, "error", err.Error())
		_ = d.Nack(false, false)
	default:
		slog.WarnContext(ctx, "notification failed, requeueing", "key", d.RoutingKey, "error", err.Error())
		_ = d.Nack(false, true)
	}
}

type permanentError struct{ err error }

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func IsPermanent(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}

// Handler turns an event delivery into a rendered message for the mailer.
type Handler struct {
	mailer Mailer
}

func NewHandler(mailer Mailer) *Handler {
	return &Handler{mailer: mailer}
}

func (h *Handler) Handle(ctx context.Context, key string, body []byte) error {
	msg, err := h.render(key, body)
	if err != nil {
		return permanentError{err: err}
	}
	if msg == nil {
		slog.InfoContext(ctx, "skip unknown routing key", "key", key)
		return nil
	}
	return h.mailer.Send(ctx, *msg)
}

func (h *Handler) render(key string, body []byte) (*Message, error) {
	var (
		msg Message
		err error
	)
	switch key {
	case RKReservationCreated, RKReservationCancelled:
		ev, decErr := decode[shared.ReservationEvent](body)
		if decErr != nil {
			return nil, decErr
		}
		subject := SubjectReservationCreated
		if key == RKReservationCancelled {
			subject = SubjectReservationCancelled
		}
		msg, err = RenderReservation(subject, ev)
	case RKCodeIssued, RKCodeResent:
		ev, decErr := decode[shared.CodeEvent](body)
		if decErr != nil {
			return nil, decErr
		}
		subject := SubjectCodeIssued
		if key == RKCodeResent {
			subject = SubjectCodeResent
		}
		msg, err = RenderCode(subject, ev)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}
