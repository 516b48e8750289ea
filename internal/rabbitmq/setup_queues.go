package rabbitmq

import "github.com/magabrotheeeer/vtv-streaming/internal/models"

const (
	// DefaultExchange — exchange событий аккаунтов.
	DefaultExchange = "accounts"
	// AuditQueue получает все события аккаунтов.
	AuditQueue      = "accounts.audit"
	routingPrefix   = "account."
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// RoutingKey возвращает ключ маршрутизации для типа события, например "account.validated".
func RoutingKey(t models.EventType) string {
	return routingPrefix + string(t)
}

// AccountQueues — очереди, которые сервис объявляет при старте.
func AccountQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: AuditQueue, RoutingKey: routingPrefix + "#"},
	}
}
