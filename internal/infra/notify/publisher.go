package notify

import (
	"context"
	"encoding/json"
	"time"

	"court-reservations/internal/pkg/errs"
	"court-reservations/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Publisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "declare exchange")
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
	})
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

type jsonPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// AMQPNotifier publishes booking and verification events for the notify worker.
type AMQPNotifier struct {
	pub jsonPublisher
}

func NewAMQPNotifier(pub jsonPublisher) *AMQPNotifier {
	return &AMQPNotifier{pub: pub}
}

func (n *AMQPNotifier) ReservationCreated(ctx context.Context, ev shared.ReservationEvent) error {
	return n.pub.PublishJSON(ctx, RKReservationCreated, ev)
}

func (n *AMQPNotifier) ReservationCancelled(ctx context.Context, ev shared.ReservationEvent) error {
	return n.pub.PublishJSON(ctx, RKReservationCancelled, ev)
}

func (n *AMQPNotifier) CodeIssued(ctx context.Context, ev shared.CodeEvent) error {
	return n.pub.PublishJSON(ctx, RKCodeIssued, ev)
}

func (n *AMQPNotifier) CodeResent(ctx context.Context, ev shared.CodeEvent) error {
	return n.pub.PublishJSON(ctx, RKCodeResent, ev)
}
