package notifsvc

import (
	"context"
	"encoding/json"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/pkg/errors"

	"github.com/campushub/support-service/core"
)

// amqpService publishes support events to a RabbitMQ topic exchange.
// Publishing waits for broker acknowledgment of the publish call only;
// consumer processing is never awaited.
type amqpService struct {
	conn       *amqp.Connection
	exchange   string
	routingKey string

	mu sync.Mutex
	ch *amqp.Channel
}

var _ core.NotificationService = (*amqpService)(nil)

func NewAMQPService(conf *core.Config) (*amqpService, error) {
	conn, err := amqp.Dial(conf.Broker.URL)
	if err != nil {
		return nil, errors.Wrap(err, "dialing broker")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "opening channel")
	}
	if err = ch.ExchangeDeclare(
		conf.Broker.Exchange,
		amqp.ExchangeTopic,
		true,  /* durable */
		false, /* autoDelete */
		false, /* internal */
		false, /* noWait */
		nil,
	); err != nil {
		return nil, errors.Wrap(err, "declaring exchange")
	}

	return &amqpService{
		conn:       conn,
		exchange:   conf.Broker.Exchange,
		routingKey: conf.Broker.RoutingKey,
		ch:         ch,
	}, nil
}

func (svc *amqpService) PublishSupportEvent(ctx context.Context, notif core.Notification) error {
	body, err := json.Marshal(notif)
	if err != nil {
		return errors.Wrap(err, "marshalling notification")
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	err = svc.ch.Publish(
		svc.exchange,
		svc.routingKey,
		false, /* mandatory */
		false, /* immediate */
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	return errors.Wrap(err, "publishing notification")
}

func (svc *amqpService) Close() error {
	return svc.conn.Close()
}
