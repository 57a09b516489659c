package sync

import (
	"context"

	"gomarketsync/internal/channels"
	"gomarketsync/pkg/logger"
)

// HealthCheck -- исход проверки соединения одного аккаунта.
type HealthCheck struct {
	AccountID int    `json:"account_id"`
	Account   string `json:"account"`
	Channel   string `json:"channel"`
	Passed    bool   `json:"passed"`
	Message   string `json:"message,omitempty"`
}

// HealthService прогоняет TestConnection по активным аккаунтам.
// Расписание живёт снаружи; сервис только выполняет проверку по запросу.
type HealthService struct {
	dispatcher *Dispatcher
	store      channels.AccountStore
	log        logger.Logger
}

func NewHealthService(dispatcher *Dispatcher, store channels.AccountStore, log logger.Logger) *HealthService {
	return &HealthService{dispatcher: dispatcher, store: store, log: log}
}

// CheckAll проверяет соединение каждого активного аккаунта.
// Сбой одного аккаунта фиксируется и не прерывает остальные проверки.
func (s *HealthService) CheckAll(ctx context.Context) ([]HealthCheck, error) {
	accounts, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	checks := make([]HealthCheck, 0, len(accounts))
	for _, account := range accounts {
		check := HealthCheck{
			AccountID: account.ID,
			Account:   account.Name,
			Channel:   account.Channel.String(),
		}

		builder, failure := s.dispatcher.For(account.Channel.String(), account)
		if failure != nil {
			check.Message = failure.Message
			checks = append(checks, check)
			continue
		}

		result := builder.TestConnection(ctx)
		check.Passed = result.Success
		check.Message = result.Message
		if !result.Success {
			s.log.Log("health check failed for %s/%s: %s", account.Channel, account.Name, result.Message)
		}
		checks = append(checks, check)
	}

	return checks, nil
}
