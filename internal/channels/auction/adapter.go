package auction

import (
	"context"
	"fmt"
	"time"

	"gomarketsync/config/values"
	"gomarketsync/internal/catalog"
	"gomarketsync/internal/channels"
	"gomarketsync/internal/sync"
	"gomarketsync/metrics"
	"gomarketsync/pkg/logger"
)

// Adapter -- реализация sync.Adapter для аукционного канала.
type Adapter struct {
	client   *Client
	catalog  catalog.Provider
	store    channels.AccountStore
	defaults values.ChannelDefaults
	log      logger.Logger
}

func NewAdapter(
	client *Client,
	provider catalog.Provider,
	store channels.AccountStore,
	defaults values.ChannelDefaults,
	log logger.Logger,
) *Adapter {
	return &Adapter{
		client:   client,
		catalog:  provider,
		store:    store,
		defaults: defaults,
		log:      log,
	}
}

func (a *Adapter) Channel() channels.Channel {
	return channels.ChannelAuction
}

func (a *Adapter) Execute(ctx context.Context, account *channels.Account, op sync.Operation) sync.Result {
	start := time.Now()
	result := a.execute(ctx, account, op)
	metrics.RecordSyncOperation(a.Channel().String(), string(op.Kind), result.Success, time.Since(start))
	return result
}

func (a *Adapter) execute(ctx context.Context, account *channels.Account, op sync.Operation) sync.Result {
	switch op.Kind {
	case sync.OpCreate:
		return a.create(ctx, account, op.ProductID, false)
	case sync.OpUpdate:
		return a.update(ctx, account, op.ProductID, op.Fields)
	case sync.OpRecreate:
		return a.create(ctx, account, op.ProductID, true)
	case sync.OpPull:
		return a.pull(ctx, account, op.Filters)
	case sync.OpLink:
		return sync.NewFailure("link is not supported by the auction channel",
			"offer linking applies to the multi-operator channel family")
	default:
		return sync.NewFailure(fmt.Sprintf("unknown operation %q", op.Kind))
	}
}

// transformListing строит payload лота. У аукциона одна позиция на лот:
// цена берётся минимальная по вариантам, количество суммируется.
func (a *Adapter) transformListing(product *catalog.Product, settings channels.AccountSettings, fields sync.UpdateFields) sync.Payload {
	full := !fields.Any()
	data := make(map[string]interface{})

	if full || fields.Title {
		data["title"] = product.Title
		data["description"] = product.Description
	}
	if full || fields.Images {
		data["images"] = product.Images
	}
	if full || fields.Pricing {
		var startPrice float64
		quantity := 0
		for i, v := range product.Variants {
			if i == 0 || v.Price < startPrice {
				startPrice = v.Price
			}
			quantity += v.Stock
		}
		currency := settings.Currency
		if currency == "" {
			currency = a.defaults.Currency
		}
		data["startPrice"] = startPrice
		data["currency"] = currency
		data["quantity"] = quantity
	}
	if full && len(product.Variants) > 0 {
		data["sku"] = product.Variants[0].SKU
	}

	return sync.NewPayload(data, map[string]string{
		"source_product": fmt.Sprintf("%d", product.ID),
	})
}

func (a *Adapter) create(ctx context.Context, account *channels.Account, productID int, recreate bool) sync.Result {
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		return sync.NewFailure(fmt.Sprintf("product %d is not available", productID), err.Error())
	}

	identKey := listingIdentifierKey(productID)
	listingID := account.Identifier(identKey)

	if listingID != "" && recreate {
		if err := a.client.EndListing(ctx, account, listingID); err != nil {
			a.log.Log("recreate: failed to end stale listing %s, proceeding: %s", listingID, err)
		}
		identifiers := account.CloneIdentifiers()
		delete(identifiers, identKey)
		if err := a.store.ReplaceIdentifiers(ctx, account.ID, identifiers); err != nil {
			return sync.NewFailure("failed to clear stale linkage", err.Error())
		}
		account.Identifiers = identifiers
		listingID = ""
	}

	if listingID != "" {
		return a.update(ctx, account, productID, sync.UpdateFields{})
	}

	settings, warnings := channels.ParseSettings(account.Settings)
	a.logWarnings(account, warnings)

	payload := a.transformListing(product, settings, sync.UpdateFields{})
	if !payload.HasData() {
		return sync.NewFailure(fmt.Sprintf("transformation produced no data for product %d", productID))
	}

	createdID, err := a.client.CreateListing(ctx, account, payload.Data)
	if err != nil {
		return sync.NewTransportFailure("create", err)
	}

	identifiers := account.CloneIdentifiers()
	identifiers[identKey] = createdID
	if err := a.store.ReplaceIdentifiers(ctx, account.ID, identifiers); err != nil {
		return sync.NewFailure("listing created but linkage was not persisted", err.Error()).
			WithData(sync.DataKeyRemoteProductID, createdID)
	}
	account.Identifiers = identifiers

	return sync.NewSuccess(
		fmt.Sprintf("product %d listed on auction", productID),
		map[string]interface{}{sync.DataKeyRemoteProductID: createdID},
	)
}

func (a *Adapter) update(ctx context.Context, account *channels.Account, productID int, fields sync.UpdateFields) sync.Result {
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		return sync.NewFailure(fmt.Sprintf("product %d is not available", productID), err.Error())
	}

	listingID := account.Identifier(listingIdentifierKey(productID))
	if listingID == "" {
		return sync.NewFailure(
			fmt.Sprintf("product %d is not linked to an auction listing", productID),
			"run create before update",
		)
	}

	settings, warnings := channels.ParseSettings(account.Settings)
	a.logWarnings(account, warnings)

	payload := a.transformListing(product, settings, fields)
	if !payload.HasData() {
		return sync.NewFailure(fmt.Sprintf("transformation produced no data for product %d", productID))
	}

	if err := a.client.UpdateListing(ctx, account, listingID, payload.Data); err != nil {
		return sync.NewTransportFailure("update", err)
	}

	return sync.NewSuccess(
		fmt.Sprintf("listing of product %d updated", productID),
		map[string]interface{}{sync.DataKeyRemoteProductID: listingID},
	)
}

func (a *Adapter) pull(ctx context.Context, account *channels.Account, filters map[string]string) sync.Result {
	listings, err := a.client.Listings(ctx, account, filters)
	if err != nil {
		return sync.NewTransportFailure("pull", err)
	}

	records := make([]map[string]interface{}, 0, len(listings))
	for _, listing := range listings {
		records = append(records, map[string]interface{}{
			"id":    listing.ID.String(),
			"sku":   listing.SKU,
			"title": listing.Title,
			"state": listing.State,
			"price": listing.Price,
		})
	}

	return sync.NewSuccess(
		fmt.Sprintf("fetched %d auction listings", len(records)),
		map[string]interface{}{sync.DataKeyRecords: records},
	)
}

func (a *Adapter) TestConnection(ctx context.Context, account *channels.Account) sync.Result {
	details, err := a.client.AccountInfo(ctx, account)
	if err != nil {
		return sync.NewTransportFailure("test connection", err)
	}
	return sync.NewSuccess("auction connection ok", map[string]interface{}{
		"seller_id": details["seller_id"],
	})
}

func (a *Adapter) logWarnings(account *channels.Account, warnings []string) {
	for _, warning := range warnings {
		a.log.Log("account %s/%s: %s", account.Channel, account.Name, warning)
	}
}

func listingIdentifierKey(productID int) string {
	return fmt.Sprintf("listing_%d", productID)
}
