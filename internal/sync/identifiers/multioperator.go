package identifiers

import (
	"context"

	"gomarketsync/internal/channels"
)

// MultiOperatorSetup снимает идентификаторы мультиоператорного канала.
// Семейство операторских REST-вариантов использует этот же setup:
// различается только клиент, которым он сконструирован.
type MultiOperatorSetup struct {
	channel channels.Channel
	client  InfoClient
	store   channels.AccountStore
}

func NewMultiOperatorSetup(channel channels.Channel, client InfoClient, store channels.AccountStore) *MultiOperatorSetup {
	return &MultiOperatorSetup{channel: channel, client: client, store: store}
}

func (s *MultiOperatorSetup) Execute(ctx context.Context, account *channels.Account) Result {
	details, err := s.client.AccountInfo(ctx, account)
	if err != nil {
		return failure("failed to fetch %s account info: %s", s.channel, err)
	}
	if details["shop_id"] == "" {
		return failure("%s account info is missing shop_id", s.channel)
	}

	if err := s.store.ReplaceIdentifiers(ctx, account.ID, details); err != nil {
		return failure("failed to persist %s identifiers: %s", s.channel, err)
	}
	account.Identifiers = details

	return Result{
		Success:            true,
		MarketplaceDetails: details,
		Summary:            s.channel.String() + " identifiers retrieved",
	}
}
