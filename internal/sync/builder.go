package sync

import (
	"context"

	"gomarketsync/internal/channels"
)

// OperationBuilder -- fluent-построитель операций, привязанный к адаптеру
// и аккаунту. Staging-вызовы только меняют состояние построителя;
// сеть трогает исключительно Push.
//
// Повторный staging-вызов (Create/Update/Recreate/Pull/Link) полностью
// заменяет ранее staged-операцию: действует последний вызов.
type OperationBuilder struct {
	adapter Adapter
	account *channels.Account
	staged  *Operation
}

func NewOperationBuilder(adapter Adapter, account *channels.Account) *OperationBuilder {
	return &OperationBuilder{adapter: adapter, account: account}
}

// Create ставит в очередь полное создание товара.
func (b *OperationBuilder) Create(productID int) *OperationBuilder {
	b.staged = &Operation{Kind: OpCreate, ProductID: productID}
	return b
}

// Update ставит в очередь частичное обновление. Без последующих Title/Images/
// Pricing обновление считается полным.
func (b *OperationBuilder) Update(productID int) *OperationBuilder {
	b.staged = &Operation{Kind: OpUpdate, ProductID: productID}
	return b
}

// Recreate ставит в очередь сброс устаревшей привязки и повторное создание.
func (b *OperationBuilder) Recreate(productID int) *OperationBuilder {
	b.staged = &Operation{Kind: OpRecreate, ProductID: productID}
	return b
}

// Pull ставит в очередь выборку данных канала по фильтрам. Неподдерживаемые
// каналом ключи фильтра игнорируются на стороне адаптера.
func (b *OperationBuilder) Pull(filters map[string]string) *OperationBuilder {
	copied := make(map[string]string, len(filters))
	for k, v := range filters {
		copied[k] = v
	}
	b.staged = &Operation{Kind: OpPull, Filters: copied}
	return b
}

// Link ставит в очередь сверку локальных SKU с офферами канала.
func (b *OperationBuilder) Link(productID int) *OperationBuilder {
	b.staged = &Operation{Kind: OpLink, ProductID: productID}
	return b
}

// Title сужает staged-обновление до названия.
func (b *OperationBuilder) Title() *OperationBuilder {
	b.requireUpdate("Title")
	b.staged.Fields.Title = true
	return b
}

// Images сужает staged-обновление до изображений.
func (b *OperationBuilder) Images() *OperationBuilder {
	b.requireUpdate("Images")
	b.staged.Fields.Images = true
	return b
}

// Pricing сужает staged-обновление до цен.
func (b *OperationBuilder) Pricing() *OperationBuilder {
	b.requireUpdate("Pricing")
	b.staged.Fields.Pricing = true
	return b
}

// Push выполняет staged-операцию через транспорт адаптера.
// Вызов без предварительного staging -- ошибка программиста, а не
// восстановимое состояние: падаем сразу и громко.
func (b *OperationBuilder) Push(ctx context.Context) Result {
	if b.staged == nil {
		panic("sync: Push called without a staged operation")
	}
	op := *b.staged
	b.staged = nil
	return b.adapter.Execute(ctx, b.account, op)
}

// TestConnection пробрасывает проверку соединения адаптера.
func (b *OperationBuilder) TestConnection(ctx context.Context) Result {
	return b.adapter.TestConnection(ctx, b.account)
}

// Staged возвращает текущую staged-операцию (для инспекции в тестах и логах).
func (b *OperationBuilder) Staged() *Operation {
	return b.staged
}

func (b *OperationBuilder) requireUpdate(method string) {
	if b.staged == nil || b.staged.Kind != OpUpdate {
		panic("sync: " + method + " requires a staged Update operation")
	}
}
