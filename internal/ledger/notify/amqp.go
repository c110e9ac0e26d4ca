package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/recouvro/recouvro/internal/ledger/domain"
	"github.com/recouvro/recouvro/pkg/moneyx"
)

// AMQPDispatcher publishes relance messages to a durable queue; a
// downstream worker owns the actual SMS/email delivery.
type AMQPDispatcher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// relanceMessage is the payload handed to the delivery worker.
type relanceMessage struct {
	ClientID     string `json:"client_id"`
	Nom          string `json:"nom"`
	Telephone    string `json:"telephone"`
	Email        string `json:"email"`
	MontantDu    string `json:"montant_du"`
	DateEcheance string `json:"date_echeance"`
	Message      string `json:"message"`
	SentAt       string `json:"sent_at"`
}

func NewAMQPDispatcher(url, exchangeName, queueName string) (*AMQPDispatcher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	d := &AMQPDispatcher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := d.setup(); err != nil {
		d.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return d, nil
}

func (d *AMQPDispatcher) setup() error {
	err := d.channel.ExchangeDeclare(
		d.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = d.channel.QueueDeclare(
		d.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = d.channel.QueueBind(
		d.queueName,    // queue name
		d.queueName,    // routing key (same as queue name for direct exchange)
		d.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Send publishes the reminder. Failures here surface to the caller as
// a dispatch error but never roll back the audit entry.
func (d *AMQPDispatcher) Send(ctx context.Context, client domain.Client, message string) error {
	msg := relanceMessage{
		ClientID:     client.ID,
		Nom:          client.Nom,
		Telephone:    client.Telephone,
		Email:        client.Email,
		MontantDu:    moneyx.FormatCentimes(client.MontantDu),
		DateEcheance: client.DateEcheance.Format(domain.DateFormat),
		Message:      message,
		SentAt:       time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = d.channel.PublishWithContext(ctx,
		d.exchangeName, // exchange
		d.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish relance: %w", err)
	}
	return nil
}

func (d *AMQPDispatcher) Close() error {
	if d.channel != nil {
		_ = d.channel.Close()
	}
	if d.conn != nil {
		return d.conn.Close()
	}
	return nil
}
