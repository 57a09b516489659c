package multioperator

import (
	"testing"

	"gomarketsync/internal/catalog"
	"gomarketsync/internal/sync"
)

func productWithSKUs(skus ...string) *catalog.Product {
	variants := make([]catalog.Variant, 0, len(skus))
	for _, sku := range skus {
		variants = append(variants, catalog.Variant{SKU: sku, Price: 100, Stock: 1})
	}
	return &catalog.Product{ID: 7, Title: "Test product", Variants: variants}
}

func TestLinkOffersFullCoverage(t *testing.T) {
	product := productWithSKUs("A-1", "A-2")
	offers := []Offer{
		{OfferID: "o1", ShopSKU: "A-1", ProductID: "r-100"},
		{OfferID: "o2", ShopSKU: "A-2", ProductID: "r-200"},
	}

	result := LinkOffers(product, offers)

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Message)
	}
	if coverage := result.Data[sync.DataKeyCoveragePercent]; coverage != 100 {
		t.Errorf("expected coverage 100, got %v", coverage)
	}
	linked := result.Data[sync.DataKeyLinkedOffers].(map[string]string)
	if linked["A-1"] != "r-100" || linked["A-2"] != "r-200" {
		t.Errorf("unexpected linkage %v", linked)
	}
	if _, ok := result.Data[sync.DataKeyUnmatchedSKUs]; ok {
		t.Error("full coverage should not report unmatched SKUs")
	}
}

func TestLinkOffersPartialCoverage(t *testing.T) {
	product := productWithSKUs("A-1", "A-2")
	offers := []Offer{
		{OfferID: "o1", ShopSKU: "A-1", ProductID: "r-100"},
	}

	result := LinkOffers(product, offers)

	if !result.Success {
		t.Fatal("one matched SKU is enough for a successful linkage")
	}
	if coverage := result.Data[sync.DataKeyCoveragePercent]; coverage != 50 {
		t.Errorf("expected coverage 50, got %v", coverage)
	}
	unmatched := result.Data[sync.DataKeyUnmatchedSKUs].([]string)
	if len(unmatched) != 1 || unmatched[0] != "A-2" {
		t.Errorf("expected A-2 unmatched, got %v", unmatched)
	}
}

func TestLinkOffersCoverageRounding(t *testing.T) {
	product := productWithSKUs("A-1", "A-2", "A-3")
	offers := []Offer{
		{OfferID: "o1", ShopSKU: "A-1", ProductID: "r-100"},
	}

	result := LinkOffers(product, offers)

	// 1 из 3 -- 33.33%, округляется до 33.
	if coverage := result.Data[sync.DataKeyCoveragePercent]; coverage != 33 {
		t.Errorf("expected coverage 33, got %v", coverage)
	}
}

func TestLinkOffersNoMatches(t *testing.T) {
	product := productWithSKUs("A-1", "A-2")
	offers := []Offer{
		{OfferID: "o1", ShopSKU: "B-9", ProductID: "r-900"},
	}

	result := LinkOffers(product, offers)

	if result.Success {
		t.Error("zero matched SKUs should fail the linkage")
	}
	if coverage := result.Data[sync.DataKeyCoveragePercent]; coverage != 0 {
		t.Errorf("expected coverage 0, got %v", coverage)
	}
	unmatched := result.Data[sync.DataKeyUnmatchedSKUs].([]string)
	if len(unmatched) != 2 {
		t.Errorf("all SKUs should be reported unmatched, got %v", unmatched)
	}
}

func TestLinkOffersSkipsIncompleteOffers(t *testing.T) {
	product := productWithSKUs("A-1")
	offers := []Offer{
		{OfferID: "o1", ShopSKU: "", ProductID: "r-100"},
		{OfferID: "o2", ShopSKU: "A-1", ProductID: ""},
	}

	result := LinkOffers(product, offers)

	if result.Success {
		t.Error("offers without SKU or remote id should not produce a linkage")
	}
}

func TestLinkOffersProductWithoutVariants(t *testing.T) {
	result := LinkOffers(&catalog.Product{ID: 7}, nil)

	if result.Success {
		t.Error("product without variants cannot be linked")
	}
}
