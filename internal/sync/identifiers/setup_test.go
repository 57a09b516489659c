package identifiers

import (
	"context"
	"errors"
	"testing"

	"gomarketsync/internal/channels"
)

type fakeInfoClient struct {
	details map[string]string
	err     error
	calls   int
}

func (f *fakeInfoClient) AccountInfo(ctx context.Context, account *channels.Account) (map[string]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.details, nil
}

type fakeStore struct {
	replaced   map[string]string
	replaceErr error
	calls      int
}

func (f *fakeStore) GetAccount(ctx context.Context, channel channels.Channel, name string) (*channels.Account, error) {
	return nil, errors.New("not used")
}

func (f *fakeStore) ListActive(ctx context.Context) ([]*channels.Account, error) {
	return nil, nil
}

func (f *fakeStore) ReplaceIdentifiers(ctx context.Context, accountID int, identifiers map[string]string) error {
	f.calls++
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = identifiers
	return nil
}

func storefrontAccount() *channels.Account {
	return &channels.Account{
		ID:          1,
		Name:        "main",
		Channel:     channels.ChannelStorefront,
		Identifiers: map[string]string{"stale": "old"},
		Active:      true,
	}
}

func TestStorefrontSetupReplacesIdentifiers(t *testing.T) {
	client := &fakeInfoClient{details: map[string]string{
		"shop_id":     "42",
		"shop_name":   "Main shop",
		"shop_domain": "shop.example",
	}}
	store := &fakeStore{}
	account := storefrontAccount()

	result := NewStorefrontSetup(client, store).Execute(context.Background(), account)

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.MarketplaceDetails["shop_id"] != "42" {
		t.Errorf("expected shop_id 42, got %v", result.MarketplaceDetails)
	}
	if result.Summary != "storefront identifiers retrieved" {
		t.Errorf("unexpected summary %q", result.Summary)
	}
	if store.replaced["shop_id"] != "42" {
		t.Errorf("identifiers should be persisted as a whole map, got %v", store.replaced)
	}
	if _, ok := account.Identifiers["stale"]; ok {
		t.Error("setup replaces the identifier map, stale keys must not survive")
	}
}

func TestSetupFailureLeavesAccountUntouched(t *testing.T) {
	client := &fakeInfoClient{err: errors.New("timeout")}
	store := &fakeStore{}
	account := storefrontAccount()

	result := NewStorefrontSetup(client, store).Execute(context.Background(), account)

	if result.Success {
		t.Error("remote failure should fail the setup")
	}
	if store.calls != 0 {
		t.Error("failed setup must not write identifiers")
	}
	if account.Identifiers["stale"] != "old" {
		t.Error("failed setup must not mutate the account")
	}
}

func TestSetupRequiresShopID(t *testing.T) {
	client := &fakeInfoClient{details: map[string]string{"shop_name": "Main shop"}}
	store := &fakeStore{}

	result := NewStorefrontSetup(client, store).Execute(context.Background(), storefrontAccount())

	if result.Success {
		t.Error("account info without shop_id should fail the setup")
	}
	if store.calls != 0 {
		t.Error("incomplete account info must not be persisted")
	}
}

func TestSetupPersistenceFailureLeavesAccountUntouched(t *testing.T) {
	client := &fakeInfoClient{details: map[string]string{"shop_id": "42"}}
	store := &fakeStore{replaceErr: errors.New("db is down")}
	account := storefrontAccount()

	result := NewStorefrontSetup(client, store).Execute(context.Background(), account)

	if result.Success {
		t.Error("persistence failure should fail the setup")
	}
	if account.Identifiers["stale"] != "old" {
		t.Error("account must keep its previous identifiers when persistence fails")
	}
}

func TestCompositeSetupRoutesByChannel(t *testing.T) {
	client := &fakeInfoClient{details: map[string]string{"shop_id": "42"}}
	store := &fakeStore{}
	composite := NewCompositeSetup(map[channels.Channel]Setup{
		channels.ChannelStorefront: NewStorefrontSetup(client, store),
	})

	result := composite.Execute(context.Background(), storefrontAccount())

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if client.calls != 1 {
		t.Errorf("expected one account info call, got %d", client.calls)
	}
}

func TestCompositeSetupUnknownChannel(t *testing.T) {
	client := &fakeInfoClient{details: map[string]string{"shop_id": "42"}}
	composite := NewCompositeSetup(map[channels.Channel]Setup{
		channels.ChannelStorefront: NewStorefrontSetup(client, &fakeStore{}),
	})

	account := storefrontAccount()
	account.Channel = channels.Channel("ultra-market")

	result := composite.Execute(context.Background(), account)

	if result.Success {
		t.Error("unknown channel should fail the setup")
	}
	if client.calls != 0 {
		t.Error("unknown channel must not trigger network calls")
	}
}

func TestCompositeSetupUnwiredChannel(t *testing.T) {
	composite := NewCompositeSetup(nil)

	account := storefrontAccount()
	account.Channel = channels.ChannelAuction

	result := composite.Execute(context.Background(), account)

	if result.Success {
		t.Error("channel without a wired setup should fail")
	}
}

func TestMultiOperatorSetupNamesItsChannel(t *testing.T) {
	client := &fakeInfoClient{err: errors.New("timeout")}
	setup := NewMultiOperatorSetup(channels.ChannelOperatorREST, client, &fakeStore{})

	account := storefrontAccount()
	account.Channel = channels.ChannelOperatorREST

	result := setup.Execute(context.Background(), account)

	if result.Success {
		t.Error("remote failure should fail the setup")
	}
	if result.Error == "" {
		t.Error("failure should carry an error message")
	}
}
