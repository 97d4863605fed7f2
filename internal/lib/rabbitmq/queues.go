package rabbitmq

// QueueConfig очередь и ключ маршрутизации в обменнике уведомлений.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

const (
	// RoutingKeyExpiring абонементы, заканчивающиеся завтра.
	RoutingKeyExpiring = "expiring"
	// RoutingKeyWelcome приветствие после создания учётной записи.
	RoutingKeyWelcome = "welcome"

	QueueExpiring = "notifications.expiring"
	QueueWelcome  = "notifications.welcome"
)

// GetNotificationQueues возвращает очереди, которые обслуживает отправщик писем.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueExpiring, RoutingKey: RoutingKeyExpiring},
		{QueueName: QueueWelcome, RoutingKey: RoutingKeyWelcome},
	}
}
