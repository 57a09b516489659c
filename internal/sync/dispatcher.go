package sync

import (
	"gomarketsync/internal/channels"
)

// Dispatcher выбирает адаптер по имени канала. Маршрутизация чистая:
// никакого I/O, только выбор уже сконструированного адаптера.
type Dispatcher struct {
	adapters map[channels.Channel]Adapter
}

func NewDispatcher(adapters ...Adapter) *Dispatcher {
	byChannel := make(map[channels.Channel]Adapter, len(adapters))
	for _, adapter := range adapters {
		byChannel[adapter.Channel()] = adapter
	}
	return &Dispatcher{adapters: byChannel}
}

// For возвращает построитель операций, привязанный к каналу и аккаунту.
// При сбое маршрутизации построитель nil, а вторым значением приходит
// структурный Result-отказ: имя вне известного набора -- ошибка
// конфигурации, канал без адаптера -- not-implemented. Каналозависимые
// вызовы всегда получают одинаковую форму исхода, паник здесь нет.
func (d *Dispatcher) For(channelName string, account *channels.Account) (*OperationBuilder, *Result) {
	channel, err := channels.ParseChannel(channelName)
	if err != nil {
		failure := NewUnsupportedChannel(channelName)
		return nil, &failure
	}

	adapter, ok := d.adapters[channel]
	if !ok {
		failure := NewNotImplemented(channelName)
		return nil, &failure
	}

	return NewOperationBuilder(adapter, account), nil
}

// Supports сообщает, подключен ли адаптер для канала.
func (d *Dispatcher) Supports(channel channels.Channel) bool {
	_, ok := d.adapters[channel]
	return ok
}
