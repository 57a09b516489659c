package multioperator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gomarketsync/internal/channels"
)

const (
	accountPath  = "/api/account"
	productsPath = "/api/products"
	offersPath   = "/api/offers"

	offersPageSize = 100
)

// Offer -- оффер мультиоператорного маркетплейса: привязка продавца
// к товару общего каталога.
type Offer struct {
	OfferID   string  `json:"offer_id"`
	ShopSKU   string  `json:"shop_sku"`
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Active    bool    `json:"active"`
}

// Client -- REST-клиент мультиоператорного API. Ключ передаётся голым
// заголовком Authorization, без схемы Bearer.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

func (c *Client) do(ctx context.Context, account *channels.Account, method, path string, body interface{}, out interface{}) error {
	settings, _ := channels.ParseSettings(account.Settings)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	auth := channels.NewHeaderAuth("Authorization", account.Credential("api_key"))
	if auth == nil {
		return fmt.Errorf("missing api_key credential")
	}
	auth.SetApiKey(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// AccountInfo снимает метаданные магазина продавца.
func (c *Client) AccountInfo(ctx context.Context, account *channels.Account) (map[string]string, error) {
	var info struct {
		ShopID   json.Number `json:"shop_id"`
		ShopName string      `json:"shop_name"`
		Operator string      `json:"operator"`
	}
	if err := c.do(ctx, account, http.MethodGet, accountPath, nil, &info); err != nil {
		return nil, err
	}

	details := map[string]string{
		"shop_id": info.ShopID.String(),
	}
	if info.ShopName != "" {
		details["shop_name"] = info.ShopName
	}
	if info.Operator != "" {
		details["operator"] = info.Operator
	}
	return details, nil
}

// CreateProduct заводит товар в общем каталоге площадки.
func (c *Client) CreateProduct(ctx context.Context, account *channels.Account, payload map[string]interface{}) (string, error) {
	var created struct {
		ProductID json.Number `json:"product_id"`
	}
	if err := c.do(ctx, account, http.MethodPost, productsPath, payload, &created); err != nil {
		return "", err
	}
	if created.ProductID.String() == "" {
		return "", fmt.Errorf("create response is missing product_id")
	}
	return created.ProductID.String(), nil
}

// UpdateProduct обновляет товар общего каталога.
func (c *Client) UpdateProduct(ctx context.Context, account *channels.Account, productID string, payload map[string]interface{}) error {
	return c.do(ctx, account, http.MethodPut, productsPath+"/"+url.PathEscape(productID), payload, nil)
}

// Offers постранично выбирает офферы магазина. Пагинация скрыта от
// вызывающего: возвращается полный список.
func (c *Client) Offers(ctx context.Context, account *channels.Account, shopID string) ([]Offer, error) {
	var all []Offer
	offset := 0

	for {
		query := url.Values{}
		query.Set("shop_id", shopID)
		query.Set("offset", strconv.Itoa(offset))
		query.Set("max", strconv.Itoa(offersPageSize))

		var page struct {
			Offers     []Offer `json:"offers"`
			TotalCount int     `json:"total_count"`
		}
		if err := c.do(ctx, account, http.MethodGet, offersPath+"?"+query.Encode(), nil, &page); err != nil {
			return nil, err
		}

		all = append(all, page.Offers...)
		offset += len(page.Offers)
		if len(page.Offers) == 0 || offset >= page.TotalCount {
			break
		}
	}

	return all, nil
}
