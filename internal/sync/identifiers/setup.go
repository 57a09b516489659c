package identifiers

import (
	"context"
	"fmt"

	"gomarketsync/internal/channels"
)

// Result -- исход снятия идентификаторов аккаунта.
type Result struct {
	Success            bool              `json:"success"`
	MarketplaceDetails map[string]string `json:"marketplace_details,omitempty"`
	Summary            string            `json:"summary,omitempty"`
	Error              string            `json:"error,omitempty"`
}

// Setup снимает метаданные аккаунта у канала и сохраняет их в
// marketplace-идентификаторы. Применение атомарное: при сбое удалённого
// вызова аккаунт не меняется вовсе, при успехе карта пишется целиком
// одним обновлением.
type Setup interface {
	Execute(ctx context.Context, account *channels.Account) Result
}

func failure(format string, v ...interface{}) Result {
	return Result{Success: false, Error: fmt.Sprintf(format, v...)}
}

// CompositeSetup маршрутизирует аккаунт на канальную реализацию.
// Нераспознанный канал -- отказ без сетевого вызова; распознанный, но
// не подключенный -- отказ "not implemented", не авария.
type CompositeSetup struct {
	setups map[channels.Channel]Setup
}

func NewCompositeSetup(setups map[channels.Channel]Setup) *CompositeSetup {
	if setups == nil {
		setups = make(map[channels.Channel]Setup)
	}
	return &CompositeSetup{setups: setups}
}

func (c *CompositeSetup) Execute(ctx context.Context, account *channels.Account) Result {
	if !account.Channel.Known() {
		return failure("unsupported channel %q", account.Channel)
	}

	setup, ok := c.setups[account.Channel]
	if !ok {
		return failure("identifier setup for channel %q is not implemented", account.Channel)
	}

	return setup.Execute(ctx, account)
}
