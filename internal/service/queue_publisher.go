// Package queue_publisher publishes domain events to RabbitMQ.  Errors are
// logged and returned so callers can ignore failures without interrupting
// the main request flow: a booking must never fail because the broker is
// down.
package queue_publisher

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"
    "github.com/rs/zerolog/log"

    q "github.com/pochitasw/vetclinic/internal/queue"
)

// PublishAppointmentBooked publishes the event to the appointment.booked
// queue.  Messages are persistent and the queue declaration is idempotent.
func PublishAppointmentBooked(ctx context.Context, event q.AppointmentBookedEvent) error {
    body, err := json.Marshal(event)
    if err != nil {
        log.Error().Err(err).Msg("rabbitmq: marshal booked event failed")
        return err
    }
    return publish(ctx, q.AppointmentBookedQueue, body)
}

// PublishAppointmentCancelled publishes the event to the
// appointment.cancelled queue.
func PublishAppointmentCancelled(ctx context.Context, event q.AppointmentCancelledEvent) error {
    body, err := json.Marshal(event)
    if err != nil {
        log.Error().Err(err).Msg("rabbitmq: marshal cancelled event failed")
        return err
    }
    return publish(ctx, q.AppointmentCancelledQueue, body)
}

func publish(ctx context.Context, queueName string, body []byte) error {
    conn, err := amqp.Dial(q.BrokerURL())
    if err != nil {
        log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: dial failed")
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: channel open failed")
        return err
    }
    defer func() { _ = ch.Close() }()

    // Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
        log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: queue declare failed")
        return err
    }

    pub := amqp.Publishing{
        ContentType:  "application/json",
        DeliveryMode: amqp.Persistent,
        Timestamp:    time.Now().UTC(),
        Body:         body,
    }
    if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
        log.Warn().Err(err).Str("queue", queueName).Msg("rabbitmq: publish failed")
        return err
    }
    return nil
}
