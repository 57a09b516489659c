package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"gomarketsync/pkg/logger"
)

// ErrProductNotFound возвращается, когда каталог не знает товар.
var ErrProductNotFound = errors.New("product not found")

// ServiceClient -- HTTP-реализация Provider поверх внешнего сервиса каталога.
type ServiceClient struct {
	apiURL string
	log    logger.Logger
	client *http.Client
}

func NewServiceClient(apiURL string, writer io.Writer) *ServiceClient {
	return &ServiceClient{
		apiURL: apiURL,
		log:    logger.NewLogger(writer, "[CatalogClient]"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *ServiceClient) GetProduct(ctx context.Context, productID int) (*Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/products/%d", c.apiURL, productID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("request was cancelled: %w", ctx.Err())
		default:
			return nil, fmt.Errorf("failed to execute request: %w", err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Log("catalog responded with status %d for product %d", resp.StatusCode, productID)
		return nil, fmt.Errorf("non-OK status: %d", resp.StatusCode)
	}

	var product Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	return &product, nil
}
