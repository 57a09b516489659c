package sync

import "fmt"

// Стабильные ключи data-карты результата.
const (
	DataKeyRemoteProductID = "remote_product_id"
	DataKeyLinkedOffers    = "linked_offers"
	DataKeyCoveragePercent = "coverage_percent"
	DataKeyUnmatchedSKUs   = "unmatched_skus"
	DataKeyRecords         = "records"
)

// Result -- исход ровно одной операции против ровно одного аккаунта.
// Конструируется фабриками и после этого не меняется; success=true
// гарантирует пустой список ошибок.
type Result struct {
	Success  bool
	Message  string
	Data     map[string]interface{}
	Errors   []string
	Metadata map[string]string
}

// NewSuccess создаёт успешный результат. Карты копируются.
func NewSuccess(message string, data map[string]interface{}) Result {
	return Result{
		Success: true,
		Message: message,
		Data:    copyData(data),
	}
}

// NewFailure создаёт результат-отказ с упорядоченным списком ошибок.
func NewFailure(message string, errs ...string) Result {
	errors := make([]string, len(errs))
	copy(errors, errs)
	return Result{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// NewTransportFailure оборачивает транспортную ошибку в результат.
// Transport-исключения не покидают границу адаптера.
func NewTransportFailure(operation string, err error) Result {
	return NewFailure(
		fmt.Sprintf("%s failed", operation),
		err.Error(),
	)
}

// NewUnsupportedChannel -- ошибка конфигурации: имя канала вне известного набора.
func NewUnsupportedChannel(name string) Result {
	return NewFailure(fmt.Sprintf("unsupported channel %q", name), "channel is not in the known set")
}

// NewNotImplemented -- канал известен, но адаптер для него не подключен.
// Это штатный результат, а не авария.
func NewNotImplemented(channel string) Result {
	return NewFailure(fmt.Sprintf("channel %q is not implemented", channel), "no adapter wired for channel")
}

// WithMetadata возвращает копию результата с добавленным диагностическим полем.
func (r Result) WithMetadata(key, value string) Result {
	metadata := make(map[string]string, len(r.Metadata)+1)
	for k, v := range r.Metadata {
		metadata[k] = v
	}
	metadata[key] = value
	r.Metadata = metadata
	return r
}

// WithData возвращает копию результата с добавленным значением в data-карте.
func (r Result) WithData(key string, value interface{}) Result {
	data := copyData(r.Data)
	if data == nil {
		data = make(map[string]interface{}, 1)
	}
	data[key] = value
	r.Data = data
	return r
}

func copyData(data map[string]interface{}) map[string]interface{} {
	if data == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(data))
	for k, v := range data {
		copied[k] = v
	}
	return copied
}
