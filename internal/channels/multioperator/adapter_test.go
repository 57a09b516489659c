package multioperator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"gomarketsync/config/values"
	"gomarketsync/internal/catalog"
	"gomarketsync/internal/channels"
	"gomarketsync/internal/sync"
	"gomarketsync/pkg/logger"
)

type fakeCatalog struct {
	product *catalog.Product
	err     error
}

func (f *fakeCatalog) GetProduct(ctx context.Context, productID int) (*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.product, nil
}

type fakeStore struct {
	replaced   map[string]string
	replaceErr error
}

func (f *fakeStore) GetAccount(ctx context.Context, channel channels.Channel, name string) (*channels.Account, error) {
	return nil, errors.New("not used")
}

func (f *fakeStore) ListActive(ctx context.Context) ([]*channels.Account, error) {
	return nil, nil
}

func (f *fakeStore) ReplaceIdentifiers(ctx context.Context, accountID int, identifiers map[string]string) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaced = identifiers
	return nil
}

func multiOperatorAccount() *channels.Account {
	return &channels.Account{
		ID:          1,
		Name:        "main",
		Channel:     channels.ChannelMultiOperator,
		Credentials: map[string]string{"api_key": "secret"},
		Identifiers: map[string]string{"shop_id": "900"},
		Active:      true,
	}
}

func linkedProduct() *catalog.Product {
	return &catalog.Product{
		ID:    7,
		Title: "Silk scarf",
		Variants: []catalog.Variant{
			{SKU: "A-1", Price: 1990, Stock: 5},
			{SKU: "A-2", Price: 2090, Stock: 2},
		},
	}
}

func offersBody(offers ...string) string {
	body := `{"total_count": ` + fmt.Sprint(len(offers)) + `, "offers": [`
	for i, offer := range offers {
		if i > 0 {
			body += ","
		}
		body += offer
	}
	return body + `]}`
}

func TestLinkPersistsOfferIdentifiers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/offers" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("shop_id") != "900" {
			t.Errorf("expected shop_id 900, got %q", r.URL.Query().Get("shop_id"))
		}
		w.Write([]byte(offersBody(
			`{"offer_id": "o1", "shop_sku": "A-1", "product_id": "r-100", "price": 1990, "quantity": 5, "active": true}`,
		)))
	}))
	defer server.Close()

	store := &fakeStore{}
	adapter := NewAdapter(
		NewClient(server.URL),
		nil,
		&fakeCatalog{product: linkedProduct()},
		store,
		values.ChannelDefaults{},
		logger.NewLogger(io.Discard, "[test]"),
	)
	account := multiOperatorAccount()

	result := adapter.Execute(context.Background(), account, sync.Operation{Kind: sync.OpLink, ProductID: 7})

	if !result.Success {
		t.Fatalf("expected success, got %q %v", result.Message, result.Errors)
	}
	if coverage := result.Data[sync.DataKeyCoveragePercent]; coverage != 50 {
		t.Errorf("expected coverage 50, got %v", coverage)
	}
	if store.replaced["offer_A-1"] != "r-100" {
		t.Errorf("matched offer should be persisted, got %v", store.replaced)
	}
	if store.replaced["shop_id"] != "900" {
		t.Error("existing identifiers must survive the linkage write")
	}
	if account.Identifier("offer_A-1") != "r-100" {
		t.Error("account should carry the new linkage")
	}
}

func TestLinkWithoutShopIDFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("link without shop_id must not reach the transport")
	}))
	defer server.Close()

	adapter := NewAdapter(
		NewClient(server.URL),
		nil,
		&fakeCatalog{product: linkedProduct()},
		&fakeStore{},
		values.ChannelDefaults{},
		logger.NewLogger(io.Discard, "[test]"),
	)
	account := multiOperatorAccount()
	account.Identifiers = map[string]string{}

	result := adapter.Execute(context.Background(), account, sync.Operation{Kind: sync.OpLink, ProductID: 7})

	if result.Success {
		t.Error("link without a known shop_id should fail")
	}
}

func TestFetchOffersFallsBackToFeed(t *testing.T) {
	// REST отдаёт 500, выгрузка работает.
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "offers api is down", http.StatusInternalServerError)
	}))
	defer api.Close()

	feedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("offer_id;shop_sku;product_id;price;quantity;active\n" +
			"o1;A-1;r-100;1990;5;1\n"))
	}))
	defer feedServer.Close()

	store := &fakeStore{}
	adapter := NewAdapter(
		NewClient(api.URL),
		NewFeedReader(feedServer.URL),
		&fakeCatalog{product: linkedProduct()},
		store,
		values.ChannelDefaults{},
		logger.NewLogger(io.Discard, "[test]"),
	)

	result := adapter.Execute(context.Background(), multiOperatorAccount(), sync.Operation{Kind: sync.OpLink, ProductID: 7})

	if !result.Success {
		t.Fatalf("feed fallback should succeed, got %q %v", result.Message, result.Errors)
	}
	if store.replaced["offer_A-1"] != "r-100" {
		t.Errorf("offer from the feed should be linked, got %v", store.replaced)
	}
}

func TestPullFiltersBySKULocally(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(offersBody(
			`{"offer_id": "o1", "shop_sku": "A-1", "product_id": "r-100", "price": 1990, "quantity": 5, "active": true}`,
			`{"offer_id": "o2", "shop_sku": "A-2", "product_id": "r-200", "price": 2090, "quantity": 2, "active": true}`,
		)))
	}))
	defer server.Close()

	adapter := NewAdapter(
		NewClient(server.URL),
		nil,
		&fakeCatalog{product: linkedProduct()},
		&fakeStore{},
		values.ChannelDefaults{},
		logger.NewLogger(io.Discard, "[test]"),
	)

	result := adapter.Execute(context.Background(), multiOperatorAccount(), sync.Operation{
		Kind:    sync.OpPull,
		Filters: map[string]string{"sku": "A-2"},
	})

	if !result.Success {
		t.Fatalf("expected success, got %q %v", result.Message, result.Errors)
	}
	records := result.Data[sync.DataKeyRecords].([]map[string]interface{})
	if len(records) != 1 || records[0]["shop_sku"] != "A-2" {
		t.Errorf("sku filter should narrow the records, got %v", records)
	}
}

func TestOperatorAdapterRoutesAsOperatorREST(t *testing.T) {
	adapter := NewOperatorAdapter(
		NewClient("http://127.0.0.1:0"),
		&fakeCatalog{product: linkedProduct()},
		&fakeStore{},
		values.ChannelDefaults{},
		logger.NewLogger(io.Discard, "[test]"),
	)

	if adapter.Channel() != channels.ChannelOperatorREST {
		t.Errorf("expected operator-rest channel, got %s", adapter.Channel())
	}
}
