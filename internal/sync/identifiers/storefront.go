package identifiers

import (
	"context"

	"gomarketsync/internal/channels"
)

// InfoClient -- канальный клиент, умеющий снимать метаданные аккаунта
// лёгким аутентифицированным вызовом (без побочных эффектов для товаров).
type InfoClient interface {
	AccountInfo(ctx context.Context, account *channels.Account) (map[string]string, error)
}

// StorefrontSetup снимает идентификаторы витринного канала (shop_id,
// домен магазина) и сохраняет их на аккаунт.
type StorefrontSetup struct {
	client InfoClient
	store  channels.AccountStore
}

func NewStorefrontSetup(client InfoClient, store channels.AccountStore) *StorefrontSetup {
	return &StorefrontSetup{client: client, store: store}
}

func (s *StorefrontSetup) Execute(ctx context.Context, account *channels.Account) Result {
	details, err := s.client.AccountInfo(ctx, account)
	if err != nil {
		return failure("failed to fetch storefront account info: %s", err)
	}
	if details["shop_id"] == "" {
		return failure("storefront account info is missing shop_id")
	}

	if err := s.store.ReplaceIdentifiers(ctx, account.ID, details); err != nil {
		return failure("failed to persist storefront identifiers: %s", err)
	}
	account.Identifiers = details

	return Result{
		Success:            true,
		MarketplaceDetails: details,
		Summary:            "storefront identifiers retrieved",
	}
}
