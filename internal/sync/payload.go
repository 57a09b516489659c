package sync

// Payload -- канальное представление товара, готовое к отправке.
// Metadata описывает происхождение трансформации (какие локальные поля
// попали в payload). Живёт от staging до push и дальше не используется.
type Payload struct {
	Data     map[string]interface{}
	Metadata map[string]string
}

func NewPayload(data map[string]interface{}, metadata map[string]string) Payload {
	return Payload{Data: data, Metadata: metadata}
}

func (p Payload) HasData() bool {
	return len(p.Data) > 0
}
