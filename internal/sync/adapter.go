package sync

import (
	"context"

	"gomarketsync/internal/channels"
)

// Adapter инкапсулирует трансформацию и транспорт одного канала.
// Любой транспортный сбой (таймаут, не-2xx, битое тело ответа)
// перехватывается внутри реализации и возвращается как Result-отказ;
// через границу адаптера ошибки не пролетают.
type Adapter interface {
	// Channel возвращает канал, который обслуживает адаптер.
	Channel() channels.Channel

	// Execute выполняет staged-операцию против аккаунта.
	Execute(ctx context.Context, account *channels.Account, op Operation) Result

	// TestConnection делает лёгкий аутентифицированный вызов без побочных
	// эффектов для товаров. Используется identifier setup и health-проверками.
	TestConnection(ctx context.Context, account *channels.Account) Result
}
