package identifiers

import (
	"context"

	"gomarketsync/internal/channels"
)

// AuctionSetup снимает идентификаторы аукционного канала (seller_id,
// рейтинг продавца) и сохраняет их на аккаунт.
type AuctionSetup struct {
	client InfoClient
	store  channels.AccountStore
}

func NewAuctionSetup(client InfoClient, store channels.AccountStore) *AuctionSetup {
	return &AuctionSetup{client: client, store: store}
}

func (s *AuctionSetup) Execute(ctx context.Context, account *channels.Account) Result {
	details, err := s.client.AccountInfo(ctx, account)
	if err != nil {
		return failure("failed to fetch auction account info: %s", err)
	}
	if details["seller_id"] == "" {
		return failure("auction account info is missing seller_id")
	}

	if err := s.store.ReplaceIdentifiers(ctx, account.ID, details); err != nil {
		return failure("failed to persist auction identifiers: %s", err)
	}
	account.Identifiers = details

	return Result{
		Success:            true,
		MarketplaceDetails: details,
		Summary:            "auction identifiers retrieved",
	}
}
