package auction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"gomarketsync/internal/channels"
)

// Аукционный канал говорит на GraphQL: один endpoint, запросы и мутации
// в теле POST.

const (
	viewerQuery = `query { viewer { sellerId login rating } }`

	createListingMutation = `
	mutation CreateListing($input: ListingInput!) {
		createListing(input: $input) { id }
	}`

	updateListingMutation = `
	mutation UpdateListing($id: ID!, $input: ListingInput!) {
		updateListing(id: $id, input: $input) { id }
	}`

	endListingMutation = `
	mutation EndListing($id: ID!) {
		endListing(id: $id) { id }
	}`

	listingsQuery = `
	query Listings($sku: String, $state: String, $limit: Int) {
		listings(sku: $sku, state: $state, limit: $limit) {
			id sku title state price
		}
	}`
)

type graphqlError struct {
	Message string `json:"message"`
}

type Client struct {
	endpoint string
	client   *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{endpoint: endpoint, client: &http.Client{}}
}

func (c *Client) query(ctx context.Context, account *channels.Account, query string, variables map[string]interface{}, out interface{}) error {
	settings, _ := channels.ParseSettings(account.Settings)

	body, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, settings.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	auth := channels.NewBearerAuth(account.Credential("api_key"))
	if auth == nil {
		return fmt.Errorf("missing api_key credential")
	}
	auth.SetApiKey(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, gqlErr := range envelope.Errors {
			messages = append(messages, gqlErr.Message)
		}
		return fmt.Errorf("graphql errors: %s", strings.Join(messages, "; "))
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode graphql data: %w", err)
		}
	}
	return nil
}

// AccountInfo запрашивает данные продавца без побочных эффектов.
func (c *Client) AccountInfo(ctx context.Context, account *channels.Account) (map[string]string, error) {
	var data struct {
		Viewer struct {
			SellerID json.Number `json:"sellerId"`
			Login    string      `json:"login"`
			Rating   json.Number `json:"rating"`
		} `json:"viewer"`
	}
	if err := c.query(ctx, account, viewerQuery, nil, &data); err != nil {
		return nil, err
	}

	details := map[string]string{
		"seller_id": data.Viewer.SellerID.String(),
	}
	if data.Viewer.Login != "" {
		details["seller_login"] = data.Viewer.Login
	}
	if data.Viewer.Rating.String() != "" {
		details["seller_rating"] = data.Viewer.Rating.String()
	}
	return details, nil
}

// CreateListing создаёт лот и возвращает его идентификатор.
func (c *Client) CreateListing(ctx context.Context, account *channels.Account, input map[string]interface{}) (string, error) {
	var data struct {
		CreateListing struct {
			ID json.Number `json:"id"`
		} `json:"createListing"`
	}
	err := c.query(ctx, account, createListingMutation, map[string]interface{}{"input": input}, &data)
	if err != nil {
		return "", err
	}
	if data.CreateListing.ID.String() == "" {
		return "", fmt.Errorf("createListing returned no id")
	}
	return data.CreateListing.ID.String(), nil
}

// UpdateListing обновляет существующий лот.
func (c *Client) UpdateListing(ctx context.Context, account *channels.Account, listingID string, input map[string]interface{}) error {
	return c.query(ctx, account, updateListingMutation, map[string]interface{}{
		"id":    listingID,
		"input": input,
	}, nil)
}

// EndListing снимает лот с торгов.
func (c *Client) EndListing(ctx context.Context, account *channels.Account, listingID string) error {
	return c.query(ctx, account, endListingMutation, map[string]interface{}{"id": listingID}, nil)
}

// Listing -- запись лота из выборки.
type Listing struct {
	ID    json.Number `json:"id"`
	SKU   string      `json:"sku"`
	Title string      `json:"title"`
	State string      `json:"state"`
	Price float64     `json:"price"`
}

// Listings выбирает лоты по фильтрам. Поддерживаются sku, state и limit;
// прочие ключи фильтра игнорируются.
func (c *Client) Listings(ctx context.Context, account *channels.Account, filters map[string]string) ([]Listing, error) {
	variables := map[string]interface{}{}
	if sku, ok := filters["sku"]; ok {
		variables["sku"] = sku
	}
	if state, ok := filters["state"]; ok {
		variables["state"] = state
	}
	if limit, ok := filters["limit"]; ok {
		if n, err := strconv.Atoi(limit); err == nil {
			variables["limit"] = n
		}
	}

	var data struct {
		Listings []Listing `json:"listings"`
	}
	if err := c.query(ctx, account, listingsQuery, variables, &data); err != nil {
		return nil, err
	}
	return data.Listings, nil
}
