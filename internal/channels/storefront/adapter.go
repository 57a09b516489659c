package storefront

import (
	"context"
	"fmt"
	"time"

	"gomarketsync/internal/catalog"
	"gomarketsync/internal/channels"
	"gomarketsync/internal/sync"
	"gomarketsync/metrics"
	"gomarketsync/pkg/logger"
)

// Adapter -- реализация sync.Adapter для витринного канала.
type Adapter struct {
	client      *Client
	transformer *Transformer
	catalog     catalog.Provider
	store       channels.AccountStore
	log         logger.Logger
}

func NewAdapter(
	client *Client,
	transformer *Transformer,
	provider catalog.Provider,
	store channels.AccountStore,
	log logger.Logger,
) *Adapter {
	return &Adapter{
		client:      client,
		transformer: transformer,
		catalog:     provider,
		store:       store,
		log:         log,
	}
}

func (a *Adapter) Channel() channels.Channel {
	return channels.ChannelStorefront
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
		return sync.NewFailure("link is not supported by the storefront channel",
			"offer linking applies to the multi-operator channel family")
	default:
		return sync.NewFailure(fmt.Sprintf("unknown operation %q", op.Kind))
	}
}

// create выполняет создание товара. При recreate устаревшая привязка
// сбрасывается; при обычном create существующая привязка переводит
// операцию в обновление, чтобы повторный push не плодил дубликаты.
func (a *Adapter) create(ctx context.Context, account *channels.Account, productID int, recreate bool) sync.Result {
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		return sync.NewFailure(fmt.Sprintf("product %d is not available", productID), err.Error())
	}

	identKey := productIdentifierKey(productID)
	remoteID := account.Identifier(identKey)

	if remoteID != "" && recreate {
		if err := a.client.DeleteProduct(ctx, account, remoteID); err != nil {
			a.log.Log("recreate: failed to remove stale product %s, proceeding: %s", remoteID, err)
		}
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

	payload := a.transformer.Full(product, settings)
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
		fmt.Sprintf("product %d created on storefront", productID),
		map[string]interface{}{sync.DataKeyRemoteProductID: createdID},
	).WithMetadata("mapped_fields", payload.Metadata["mapped_fields"])
}

func (a *Adapter) update(ctx context.Context, account *channels.Account, productID int, fields sync.UpdateFields) sync.Result {
	product, err := a.catalog.GetProduct(ctx, productID)
	if err != nil {
		return sync.NewFailure(fmt.Sprintf("product %d is not available", productID), err.Error())
	}

	remoteID := account.Identifier(productIdentifierKey(productID))
	if remoteID == "" {
		return sync.NewFailure(
			fmt.Sprintf("product %d is not linked to the storefront", productID),
			"run create before update",
		)
	}

	settings, warnings := channels.ParseSettings(account.Settings)
	a.logWarnings(account, warnings)

	payload := a.transformer.Partial(product, settings, fields)
	if !payload.HasData() {
		return sync.NewFailure(fmt.Sprintf("transformation produced no data for product %d", productID))
	}

	if err := a.client.UpdateProduct(ctx, account, remoteID, payload.Data); err != nil {
		return sync.NewTransportFailure("update", err)
	}

	return sync.NewSuccess(
		fmt.Sprintf("product %d updated on storefront", productID),
		map[string]interface{}{sync.DataKeyRemoteProductID: remoteID},
	).WithMetadata("mapped_fields", payload.Metadata["mapped_fields"])
}

func (a *Adapter) pull(ctx context.Context, account *channels.Account, filters map[string]string) sync.Result {
	records, err := a.client.ListProducts(ctx, account, filters)
	if err != nil {
		return sync.NewTransportFailure("pull", err)
	}

	return sync.NewSuccess(
		fmt.Sprintf("fetched %d storefront products", len(records)),
		map[string]interface{}{sync.DataKeyRecords: records},
	)
}

func (a *Adapter) TestConnection(ctx context.Context, account *channels.Account) sync.Result {
	details, err := a.client.AccountInfo(ctx, account)
	if err != nil {
		return sync.NewTransportFailure("test connection", err)
	}
	return sync.NewSuccess("storefront connection ok", map[string]interface{}{
		"shop_id": details["shop_id"],
	})
}

func (a *Adapter) logWarnings(account *channels.Account, warnings []string) {
	for _, warning := range warnings {
		a.log.Log("account %s/%s: %s", account.Channel, account.Name, warning)
	}
}

func productIdentifierKey(productID int) string {
	return fmt.Sprintf("product_%d", productID)
}
