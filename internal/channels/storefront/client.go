package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"gomarketsync/internal/channels"
)

const (
	shopInfoPath = "/api/v2/shop"
	productsPath = "/api/v2/products"
)

// pull-фильтры, которые понимает витринный API. Остальные ключи
// игнорируются, чтобы pull-вызовы оставались совместимыми между каналами.
var supportedPullFilters = map[string]string{
	"sku":           "sku",
	"updated_since": "updated_since",
	"limit":         "limit",
}

// Client -- REST-клиент витринного канала.
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

func (c *Client) auth(account *channels.Account) channels.AuthEngine {
	if bearer := channels.NewBearerAuth(account.Credential("api_key")); bearer != nil {
		return bearer
	}
	return nil
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

	auth := c.auth(account)
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

// AccountInfo делает лёгкий аутентифицированный вызов /shop.
func (c *Client) AccountInfo(ctx context.Context, account *channels.Account) (map[string]string, error) {
	var info struct {
		ID     json.Number `json:"id"`
		Name   string      `json:"name"`
		Domain string      `json:"domain"`
	}
	if err := c.do(ctx, account, http.MethodGet, shopInfoPath, nil, &info); err != nil {
		return nil, err
	}

	details := map[string]string{
		"shop_id": info.ID.String(),
	}
	if info.Name != "" {
		details["shop_name"] = info.Name
	}
	if info.Domain != "" {
		details["shop_domain"] = info.Domain
	}
	return details, nil
}

// CreateProduct создаёт товар и возвращает его удалённый идентификатор.
func (c *Client) CreateProduct(ctx context.Context, account *channels.Account, payload map[string]interface{}) (string, error) {
	var created struct {
		ID json.Number `json:"id"`
	}
	if err := c.do(ctx, account, http.MethodPost, productsPath, payload, &created); err != nil {
		return "", err
	}
	if created.ID.String() == "" {
		return "", fmt.Errorf("create response is missing product id")
	}
	return created.ID.String(), nil
}

// UpdateProduct частично обновляет существующий товар.
func (c *Client) UpdateProduct(ctx context.Context, account *channels.Account, remoteID string, payload map[string]interface{}) error {
	return c.do(ctx, account, http.MethodPatch, productsPath+"/"+url.PathEscape(remoteID), payload, nil)
}

// DeleteProduct снимает товар с витрины. Используется recreate для сброса
// испорченной привязки.
func (c *Client) DeleteProduct(ctx context.Context, account *channels.Account, remoteID string) error {
	return c.do(ctx, account, http.MethodDelete, productsPath+"/"+url.PathEscape(remoteID), nil, nil)
}

// ListProducts возвращает товары витрины по фильтрам.
func (c *Client) ListProducts(ctx context.Context, account *channels.Account, filters map[string]string) ([]map[string]interface{}, error) {
	query := url.Values{}
	for key, value := range filters {
		if param, ok := supportedPullFilters[key]; ok {
			query.Set(param, value)
		}
	}

	path := productsPath
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var listing struct {
		Products []map[string]interface{} `json:"products"`
	}
	if err := c.do(ctx, account, http.MethodGet, path, nil, &listing); err != nil {
		return nil, err
	}
	return listing.Products, nil
}
