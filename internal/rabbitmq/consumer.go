package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/vtv-streaming/internal/lib/sl"
	"github.com/magabrotheeeer/vtv-streaming/internal/models"
)

// ConsumerMessage читает сообщения из очереди и передаёт тело в handler.
// Успешно обработанные сообщения подтверждаются, остальные возвращаются в очередь.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, 10)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(delivery amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(delivery.Body); err != nil {
						if nackErr := delivery.Nack(false, true); nackErr != nil {
							log.Error("failed to nack message", sl.Err(nackErr))
						}
						return
					}
					if ackErr := delivery.Ack(false); ackErr != nil {
						log.Error("failed to ack message", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// AuditHandler возвращает обработчик, который пишет событие аккаунта в журнал.
// Нечитаемые сообщения логируются и подтверждаются, чтобы не зациклить очередь.
func AuditHandler(log *slog.Logger) func([]byte) error {
	return func(body []byte) error {
		var ev models.AccountEvent
		if err := json.Unmarshal(body, &ev); err != nil {
			log.Warn("dropping malformed account event", sl.Err(err))
			return nil
		}
		attrs := []any{
			slog.String("type", string(ev.Type)),
			sl.AccountID(ev.AccountID),
			slog.String("status", string(ev.Status)),
			slog.Time("occurred_at", ev.OccurredAt),
		}
		if ev.Plan != "" {
			attrs = append(attrs, slog.String("plan", string(ev.Plan)))
		}
		log.Info("account event", attrs...)
		return nil
	}
}
