package multioperator

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Часть операторов отдаёт офферы не через REST, а CSV-выгрузкой
// в windows-1251. FeedReader скачивает и разбирает такую выгрузку
// в тот же список Offer.

const feedRequestTimeout = 60 * time.Second

type FeedReader struct {
	feedURL string
	client  *http.Client
}

func NewFeedReader(feedURL string) *FeedReader {
	return &FeedReader{
		feedURL: feedURL,
		client:  &http.Client{Timeout: feedRequestTimeout},
	}
}

// Fetch скачивает и разбирает выгрузку офферов.
// Ожидаемые колонки: offer_id;shop_sku;product_id;price;quantity;active.
func (f *FeedReader) Fetch(ctx context.Context) ([]Offer, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return parseOfferFeed(resp.Body)
}

func parseOfferFeed(r io.Reader) ([]Offer, error) {
	decoded := transform.NewReader(r, charmap.Windows1251.NewDecoder())

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
	reader.FieldsPerRecord = 6

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read feed header: %w", err)
	}
	if header[0] != "offer_id" || header[1] != "shop_sku" || header[2] != "product_id" {
		return nil, fmt.Errorf("unexpected feed header: %v", header)
	}

	var offers []Offer
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read feed record: %w", err)
		}

		price, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q in feed: %w", record[3], err)
		}
		quantity, err := strconv.Atoi(record[4])
		if err != nil {
			return nil, fmt.Errorf("invalid quantity %q in feed: %w", record[4], err)
		}

		offers = append(offers, Offer{
			OfferID:   record[0],
			ShopSKU:   record[1],
			ProductID: record[2],
			Price:     price,
			Quantity:  quantity,
			Active:    record[5] == "1" || record[5] == "true",
		})
	}

	return offers, nil
}
