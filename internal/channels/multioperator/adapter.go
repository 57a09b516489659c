package multioperator

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

// Adapter -- реализация sync.Adapter для мультиоператорного семейства.
// Операторские REST-варианты используют ту же реализацию: отличается
// канал, клиент и базовый URL, с которыми адаптер сконструирован.
type Adapter struct {
	channel  channels.Channel
	client   *Client
	feed     *FeedReader
	catalog  catalog.Provider
	store    channels.AccountStore
	defaults values.ChannelDefaults
	log      logger.Logger
}

func NewAdapter(
	client *Client,
	feed *FeedReader,
	provider catalog.Provider,
	store channels.AccountStore,
	defaults values.ChannelDefaults,
	log logger.Logger,
) *Adapter {
	return &Adapter{
		channel:  channels.ChannelMultiOperator,
		client:   client,
		feed:     feed,
		catalog:  provider,
		store:    store,
		defaults: defaults,
		log:      log,
	}
}

// NewOperatorAdapter создаёт операторский REST-вариант семейства:
// тот же контракт, но свой endpoint и свой канал маршрутизации.
func NewOperatorAdapter(
	client *Client,
	provider catalog.Provider,
	store channels.AccountStore,
	defaults values.ChannelDefaults,
	log logger.Logger,
) *Adapter {
	return &Adapter{
		channel:  channels.ChannelOperatorREST,
		client:   client,
		catalog:  provider,
		store:    store,
		defaults: defaults,
		log:      log,
	}
}

func (a *Adapter) Channel() channels.Channel {
	return a.channel
}

func (a *Adapter) Execute(ctx context.Context, account *channels.Account, op sync.Operation) sync.Result {
	start := time.Now()
	result := a.execute(ctx, account, op)
	metrics.RecordSyncOperation(a.channel.String(), string(op.Kind), result.Success, time.Since(start))
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
		return a.link(ctx, account, op.ProductID)
	default:
		return sync.NewFailure(fmt.Sprintf("unknown operation %q", op.Kind))
	}
}

func (a *Adapter) transform(product *catalog.Product, settings channels.AccountSettings, fields sync.UpdateFields) sync.Payload {
	full := !fields.Any()
	data := make(map[string]interface{})

	if full || fields.Title {
		data["title"] = product.Title
		data["description"] = product.Description
		data["brand"] = product.Brand
	}
	if full || fields.Images {
		data["images"] = product.Images
	}
	if full || fields.Pricing {
		offers := make([]map[string]interface{}, 0, len(product.Variants))
		leadTime := settings.LeadTimeDays
		if leadTime == 0 {
			leadTime = a.defaults.LeadTimeDays
		}
		for _, v := range product.Variants {
			offers = append(offers, map[string]interface{}{
				"shop_sku":       v.SKU,
				"price":          v.Price,
				"quantity":       v.Stock,
				"lead_time_days": leadTime,
			})
		}
		data["offers"] = offers
	}
	if full {
		category := settings.CategoryCode
		if category == "" {
			category = a.defaults.CategoryCode
		}
		data["category"] = category
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

	identKey := catalogIdentifierKey(productID)
	remoteID := account.Identifier(identKey)

	if remoteID != "" && recreate {
		// У мультиоператорных площадок товар общего каталога не удаляется
		// продавцом; сбрасываем только локальную привязку.
		identifiers := account.CloneIdentifiers()
		delete(identifiers, identKey)
		if err := a.store.ReplaceIdentifiers(ctx, account.ID, identifiers); err != nil {
			return sync.NewFailure("failed to clear stale linkage", err.Error())
		}
		account.Identifiers = identifiers
		remoteID = ""
	}

	if remoteID != "" {
		return a.update(ctx, account, productID, sync.UpdateFields{})
	}

	settings, warnings := channels.ParseSettings(account.Settings)
	a.logWarnings(account, warnings)

	payload := a.transform(product, settings, sync.UpdateFields{})
	if !payload.HasData() {
		return sync.NewFailure(fmt.Sprintf("transformation produced no data for product %d", productID))
	}

	createdID, err := a.client.CreateProduct(ctx, account, payload.Data)
	if err != nil {
		return sync.NewTransportFailure("create", err)
	}

	identifiers := account.CloneIdentifiers()
	identifiers[identKey] = createdID
	if err := a.store.ReplaceIdentifiers(ctx, account.ID, identifiers); err != nil {
		return sync.NewFailure("product created but linkage was not persisted", err.Error()).
			WithData(sync.DataKeyRemoteProductID, createdID)
	}
	account.Identifiers = identifiers

	return sync.NewSuccess(
		fmt.Sprintf("product %d created on %s", productID, a.channel),
		map[string]interface{}{sync.DataKeyRemoteProductID: createdID},
	)
}

func (a *Adapter) update(ctx context.Context, account *channels.Account, productID int, fields sync.UpdateFields) sync.Result {
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		return sync.NewFailure(fmt.Sprintf("product %d is not available", productID), err.Error())
	}

	remoteID := account.Identifier(catalogIdentifierKey(productID))
	if remoteID == "" {
		return sync.NewFailure(
			fmt.Sprintf("product %d is not linked to %s", productID, a.channel),
			"run create before update",
		)
	}

	settings, warnings := channels.ParseSettings(account.Settings)
	a.logWarnings(account, warnings)

	payload := a.transform(product, settings, fields)
	if !payload.HasData() {
		return sync.NewFailure(fmt.Sprintf("transformation produced no data for product %d", productID))
	}

	if err := a.client.UpdateProduct(ctx, account, remoteID, payload.Data); err != nil {
		return sync.NewTransportFailure("update", err)
	}

	return sync.NewSuccess(
		fmt.Sprintf("product %d updated on %s", productID, a.channel),
		map[string]interface{}{sync.DataKeyRemoteProductID: remoteID},
	)
}

// pull выбирает офферы магазина. shop_id берётся из фильтра, настроек
// или сохранённых идентификаторов; прочие ключи фильтра игнорируются,
// кроме локально применяемого sku.
func (a *Adapter) pull(ctx context.Context, account *channels.Account, filters map[string]string) sync.Result {
	shopID := a.resolveShopID(account, filters)
	if shopID == "" {
		return sync.NewFailure("shop_id is not known for the account",
			"run identifier setup or pass a shop_id filter")
	}

	offers, err := a.fetchOffers(ctx, account, shopID)
	if err != nil {
		return sync.NewTransportFailure("pull", err)
	}

	skuFilter := filters["sku"]
	records := make([]map[string]interface{}, 0, len(offers))
	for _, offer := range offers {
		if skuFilter != "" && offer.ShopSKU != skuFilter {
			continue
		}
		records = append(records, map[string]interface{}{
			"offer_id":   offer.OfferID,
			"shop_sku":   offer.ShopSKU,
			"product_id": offer.ProductID,
			"price":      offer.Price,
			"quantity":   offer.Quantity,
			"active":     offer.Active,
		})
	}

	return sync.NewSuccess(
		fmt.Sprintf("fetched %d offers", len(records)),
		map[string]interface{}{sync.DataKeyRecords: records},
	)
}

func (a *Adapter) link(ctx context.Context, account *channels.Account, productID int) sync.Result {
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		return sync.NewFailure(fmt.Sprintf("product %d is not available", productID), err.Error())
	}

	shopID := a.resolveShopID(account, nil)
	if shopID == "" {
		return sync.NewFailure("shop_id is not known for the account",
			"run identifier setup before linking offers")
	}

	offers, err := a.fetchOffers(ctx, account, shopID)
	if err != nil {
		return sync.NewTransportFailure("link", err)
	}

	result := LinkOffers(product, offers)
	if !result.Success {
		return result
	}

	linked, ok := result.Data[sync.DataKeyLinkedOffers].(map[string]string)
	if ok && len(linked) > 0 {
		identifiers := account.CloneIdentifiers()
		for sku, remoteID := range linked {
			identifiers[offerIdentifierKey(sku)] = remoteID
		}
		if err := a.store.ReplaceIdentifiers(ctx, account.ID, identifiers); err != nil {
			return sync.NewFailure("offers linked but linkage was not persisted", err.Error())
		}
		account.Identifiers = identifiers
	}

	return result
}

// fetchOffers берёт офферы по REST; при транспортном сбое и настроенной
// CSV-выгрузке переходит на неё.
func (a *Adapter) fetchOffers(ctx context.Context, account *channels.Account, shopID string) ([]Offer, error) {
	offers, err := a.client.Offers(ctx, account, shopID)
	if err == nil {
		return offers, nil
	}
	if a.feed == nil {
		return nil, err
	}

	a.log.Log("offer listing failed (%s), falling back to the feed", err)
	return a.feed.Fetch(ctx)
}

func (a *Adapter) resolveShopID(account *channels.Account, filters map[string]string) string {
	if filters != nil && filters["shop_id"] != "" {
		return filters["shop_id"]
	}
	if shopID := account.Identifier("shop_id"); shopID != "" {
		return shopID
	}
	settings, _ := channels.ParseSettings(account.Settings)
	return settings.ShopID
}

func (a *Adapter) TestConnection(ctx context.Context, account *channels.Account) sync.Result {
	details, err := a.client.AccountInfo(ctx, account)
	if err != nil {
		return sync.NewTransportFailure("test connection", err)
	}
	return sync.NewSuccess(a.channel.String()+" connection ok", map[string]interface{}{
		"shop_id": details["shop_id"],
	})
}

func (a *Adapter) logWarnings(account *channels.Account, warnings []string) {
	for _, warning := range warnings {
		a.log.Log("account %s/%s: %s", account.Channel, account.Name, warning)
	}
}

func catalogIdentifierKey(productID int) string {
	return fmt.Sprintf("product_%d", productID)
}

func offerIdentifierKey(sku string) string {
	return "offer_" + sku
}
