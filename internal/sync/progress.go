package sync

// Status -- статус единицы массовой операции.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// Event -- уведомление о ходе массовой операции. Отправляется внешней
// поверхности после каждой единицы работы.
type Event struct {
	OperationID string
	ProductID   int
	AccountID   int
	Channel     string
	Operation   string
	Status      Status
	Message     string
	Percent     int
}

// Notifier -- внешняя поверхность уведомлений о прогрессе.
type Notifier interface {
	Notify(event Event)
}

// NopNotifier отбрасывает события. Для вызовов, которым прогресс не нужен.
type NopNotifier struct{}

func (NopNotifier) Notify(Event) {}
