package catalog

import "context"

// Provider -- порт к каталогу товаров. Каталог живёт вне этого сервиса,
// ядро работает с ним только на чтение.
type Provider interface {
	GetProduct(ctx context.Context, productID int) (*Product, error)
}
