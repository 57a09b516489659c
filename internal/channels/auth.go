package channels

import "net/http"

// AuthEngine подставляет канальные учётные данные в исходящий запрос.
type AuthEngine interface {
	GetApiKey() string
	SetApiKey(request *http.Request)
}

// BearerAuth -- заголовок Authorization: Bearer <key>.
type BearerAuth struct {
	apiKey string
}

func NewBearerAuth(apiKey string) *BearerAuth {
	if apiKey == "" {
		return nil
	}
	return &BearerAuth{apiKey: apiKey}
}

func (b *BearerAuth) GetApiKey() string {
	return b.apiKey
}

func (b *BearerAuth) SetApiKey(request *http.Request) {
	request.Header.Set("Authorization", "Bearer "+b.apiKey)
}

// HeaderAuth -- ключ в произвольном заголовке, как того требуют
// мультиоператорные API.
type HeaderAuth struct {
	header string
	apiKey string
}

func NewHeaderAuth(header, apiKey string) *HeaderAuth {
	if apiKey == "" {
		return nil
	}
	return &HeaderAuth{header: header, apiKey: apiKey}
}

func (h *HeaderAuth) GetApiKey() string {
	return h.apiKey
}

func (h *HeaderAuth) SetApiKey(request *http.Request) {
	request.Header.Set(h.header, h.apiKey)
}
