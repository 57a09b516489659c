package multioperator

import (
	"fmt"
	"math"

	"gomarketsync/internal/catalog"
	"gomarketsync/internal/sync"
)

// LinkOffers сверяет локальные SKU товара со списком офферов и строит
// итог привязки. Достаточно одного совпадения, чтобы итог был успешным:
// неполное покрытие -- это состояние "привязан, но не целиком", перелом
// о допустимости которого остаётся за вызывающим.
func LinkOffers(product *catalog.Product, offers []Offer) sync.Result {
	totalSKUs := len(product.Variants)
	if totalSKUs == 0 {
		return sync.NewFailure(fmt.Sprintf("product %d has no variant SKUs to link", product.ID))
	}

	offersBySKU := make(map[string]string, len(offers))
	for _, offer := range offers {
		if offer.ShopSKU == "" || offer.ProductID == "" {
			continue
		}
		offersBySKU[offer.ShopSKU] = offer.ProductID
	}

	linked := make(map[string]string, totalSKUs)
	var unmatched []string
	for _, variant := range product.Variants {
		remoteID, ok := offersBySKU[variant.SKU]
		if !ok {
			unmatched = append(unmatched, variant.SKU)
			continue
		}
		linked[variant.SKU] = remoteID
	}

	coverage := int(math.Round(float64(len(linked)) / float64(totalSKUs) * 100))

	if len(linked) == 0 {
		return sync.NewFailure(
			fmt.Sprintf("no offers matched the %d SKUs of product %d", totalSKUs, product.ID),
			"remote offer list contains none of the local SKUs",
		).WithData(sync.DataKeyUnmatchedSKUs, unmatched).
			WithData(sync.DataKeyCoveragePercent, 0)
	}

	data := map[string]interface{}{
		sync.DataKeyLinkedOffers:    linked,
		sync.DataKeyCoveragePercent: coverage,
	}
	if len(unmatched) > 0 {
		data[sync.DataKeyUnmatchedSKUs] = unmatched
	}

	return sync.NewSuccess(
		fmt.Sprintf("linked %d of %d SKUs of product %d", len(linked), totalSKUs, product.ID),
		data,
	)
}
