package channels

import "context"

// AccountStore -- хранилище аккаунтов каналов. Идентификаторы пишутся
// только целой картой: ReplaceIdentifiers заменяет прежнее содержимое
// одним обновлением.
type AccountStore interface {
	GetAccount(ctx context.Context, channel Channel, name string) (*Account, error)
	ListActive(ctx context.Context) ([]*Account, error)
	ReplaceIdentifiers(ctx context.Context, accountID int, identifiers map[string]string) error
}
