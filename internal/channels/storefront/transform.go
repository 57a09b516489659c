package storefront

import (
	"fmt"

	"gomarketsync/config/values"
	"gomarketsync/internal/catalog"
	"gomarketsync/internal/channels"
	"gomarketsync/internal/sync"
)

// Transformer строит витринный payload из локального товара. Значения,
// которые товар не задаёт, берутся из канальных default-настроек.
type Transformer struct {
	defaults values.ChannelDefaults
}

func NewTransformer(defaults values.ChannelDefaults) *Transformer {
	return &Transformer{defaults: defaults}
}

// Full собирает полный payload создания/пересоздания.
func (t *Transformer) Full(product *catalog.Product, settings channels.AccountSettings) sync.Payload {
	variants := make([]map[string]interface{}, 0, len(product.Variants))
	for _, v := range product.Variants {
		variants = append(variants, map[string]interface{}{
			"sku":     v.SKU,
			"barcode": v.Barcode,
			"price":   v.Price,
			"stock":   v.Stock,
		})
	}

	currency := settings.Currency
	if currency == "" {
		currency = t.defaults.Currency
	}
	category := settings.CategoryCode
	if category == "" {
		category = t.defaults.CategoryCode
	}

	data := map[string]interface{}{
		"title":       product.Title,
		"description": product.Description,
		"brand":       product.Brand,
		"images":      product.Images,
		"variants":    variants,
		"currency":    currency,
		"category":    category,
	}

	return sync.NewPayload(data, map[string]string{
		"source_product": fmt.Sprintf("%d", product.ID),
		"mapped_fields":  "title,description,brand,images,variants,currency,category",
	})
}

// Partial собирает payload частичного обновления, суженный до выбранных полей.
// Пустой выбор означает полное обновление.
func (t *Transformer) Partial(product *catalog.Product, settings channels.AccountSettings, fields sync.UpdateFields) sync.Payload {
	if !fields.Any() {
		return t.Full(product, settings)
	}

	data := make(map[string]interface{})
	var mapped []byte

	if fields.Title {
		data["title"] = product.Title
		mapped = append(mapped, "title,"...)
	}
	if fields.Images {
		data["images"] = product.Images
		mapped = append(mapped, "images,"...)
	}
	if fields.Pricing {
		prices := make([]map[string]interface{}, 0, len(product.Variants))
		for _, v := range product.Variants {
			prices = append(prices, map[string]interface{}{
				"sku":   v.SKU,
				"price": v.Price,
			})
		}
		data["prices"] = prices
		mapped = append(mapped, "prices,"...)
	}

	fieldsList := string(mapped)
	if len(fieldsList) > 0 {
		fieldsList = fieldsList[:len(fieldsList)-1]
	}

	return sync.NewPayload(data, map[string]string{
		"source_product": fmt.Sprintf("%d", product.ID),
		"mapped_fields":  fieldsList,
	})
}
