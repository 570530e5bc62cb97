package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadNotifier delivers a captured lead to the sales team.
type LeadNotifier interface {
	NotifyLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error
}

// Consumer is the part of *amqp.Channel the worker needs.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

type Worker struct {
	Channel  Consumer
	Notifier LeadNotifier
}

func NewWorker(ch Consumer, notifier LeadNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

// Start consumes queueName until ctx is cancelled or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("📥 [WORKER] waiting on queue '%s'", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ [WORKER] stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload LeadCapturedPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Printf("❌ [WORKER] malformed message %s: %v", d.MessageId, err)
		d.Nack(false, false)
		return
	}

	if err := w.Notifier.NotifyLeadCaptured(ctx, payload); err != nil {
		log.Printf("❌ [WORKER] notify failed for lead %d: %v", payload.LeadID, err)
		// no requeue: the message goes to the dead-letter queue
		d.Nack(false, false)
		return
	}

	log.Printf("✅ [WORKER] lead %d relayed", payload.LeadID)
	d.Ack(false)
}
