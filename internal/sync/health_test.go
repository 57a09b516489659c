package sync

import (
	"context"
	"errors"
	"io"
	"testing"

	"gomarketsync/internal/channels"
	"gomarketsync/pkg/logger"
)

type fakeAccountStore struct {
	accounts []*channels.Account
	err      error
}

func (f *fakeAccountStore) GetAccount(ctx context.Context, channel channels.Channel, name string) (*channels.Account, error) {
	return nil, errors.New("not used")
}

func (f *fakeAccountStore) ListActive(ctx context.Context) ([]*channels.Account, error) {
	return f.accounts, f.err
}

func (f *fakeAccountStore) ReplaceIdentifiers(ctx context.Context, accountID int, identifiers map[string]string) error {
	return nil
}

func TestCheckAllReportsEveryAccount(t *testing.T) {
	adapter := &fakeAdapter{channel: channels.ChannelStorefront, result: NewSuccess("ok", nil)}
	store := &fakeAccountStore{accounts: []*channels.Account{
		{ID: 1, Name: "main", Channel: channels.ChannelStorefront, Active: true},
		{ID: 2, Name: "auction", Channel: channels.ChannelAuction, Active: true},
	}}

	service := NewHealthService(NewDispatcher(adapter), store, logger.NewLogger(io.Discard, "[test]"))

	checks, err := service.CheckAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(checks) != 2 {
		t.Fatalf("expected 2 checks, got %d", len(checks))
	}
	if !checks[0].Passed {
		t.Error("wired storefront account should pass")
	}
	// Аукционный адаптер не подключен: проверка провалена, но не авария.
	if checks[1].Passed {
		t.Error("unwired auction account should not pass")
	}
}

func TestCheckAllPropagatesStoreError(t *testing.T) {
	store := &fakeAccountStore{err: errors.New("db is down")}
	service := NewHealthService(NewDispatcher(), store, logger.NewLogger(io.Discard, "[test]"))

	if _, err := service.CheckAll(context.Background()); err == nil {
		t.Error("store failure should surface as an error")
	}
}
