package catalog

// Variant -- торговое предложение товара. SKU -- локальный идентификатор,
// по которому идёт сверка с офферами маркетплейсов.
type Variant struct {
	SKU     string  `json:"sku"`
	Barcode string  `json:"barcode"`
	Price   float64 `json:"price"`
	Stock   int     `json:"stock"`
}

// Product -- локальный товар каталога. Ядро синхронизации читает его
// для трансформации и никогда не изменяет.
type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Brand       string    `json:"brand"`
	Images      []string  `json:"images"`
	Variants    []Variant `json:"variants"`
}

// SKUs возвращает SKU всех вариантов товара.
func (p *Product) SKUs() []string {
	skus := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		skus = append(skus, v.SKU)
	}
	return skus
}
