package sync

import (
	"context"
	"sync"

	"gomarketsync/internal/channels"
	"gomarketsync/metrics"
	"gomarketsync/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// BulkService раскладывает синхронизацию N товаров на M аккаунтов по
// воркерам: один воркер на аккаунт, товары внутри воркера идут
// последовательно. Так вызовы по одной паре (товар, аккаунт) никогда
// не гонятся за записью идентификаторов.
type BulkService struct {
	dispatcher  *Dispatcher
	notifier    Notifier
	rateLimiter *rate.Limiter
	log         logger.Logger
	metrics     *metrics.SyncMetrics
}

func NewBulkService(
	dispatcher *Dispatcher,
	notifier Notifier,
	rateLimiter *rate.Limiter,
	log logger.Logger,
) *BulkService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &BulkService{
		dispatcher:  dispatcher,
		notifier:    notifier,
		rateLimiter: rateLimiter,
		log:         log,
		metrics:     &metrics.SyncMetrics{},
	}
}

// Target -- один аккаунт в массовом прогоне.
type Target struct {
	ChannelName string
	Account     *channels.Account
}

// Run синхронизирует товары на все аккаунты. Каждая единица работы
// завершается обычным Result; сбой одной единицы не останавливает прогон.
func (s *BulkService) Run(ctx context.Context, kind OperationKind, productIDs []int, targets []Target) []Result {
	operationID := uuid.New().String()
	total := len(productIDs) * len(targets)
	if total == 0 {
		return nil
	}

	results := make([]Result, 0, total)
	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		completed int
	)

	for _, target := range targets {
		for _, productID := range productIDs {
			s.notifier.Notify(Event{
				OperationID: operationID,
				ProductID:   productID,
				AccountID:   target.Account.ID,
				Channel:     target.ChannelName,
				Operation:   string(kind),
				Status:      StatusQueued,
			})
		}
	}

	for _, target := range targets {
		wg.Add(1)
		go func(target Target) {
			defer wg.Done()
			for _, productID := range productIDs {
				result := s.runOne(ctx, operationID, kind, productID, target)

				mu.Lock()
				completed++
				percent := completed * 100 / total
				results = append(results, result)
				mu.Unlock()

				status := StatusSuccess
				if !result.Success {
					status = StatusFailed
				}
				s.notifier.Notify(Event{
					OperationID: operationID,
					ProductID:   productID,
					AccountID:   target.Account.ID,
					Channel:     target.ChannelName,
					Operation:   string(kind),
					Status:      status,
					Message:     result.Message,
					Percent:     percent,
				})
			}
		}(target)
	}

	wg.Wait()
	return results
}

func (s *BulkService) runOne(ctx context.Context, operationID string, kind OperationKind, productID int, target Target) Result {
	s.notifier.Notify(Event{
		OperationID: operationID,
		ProductID:   productID,
		AccountID:   target.Account.ID,
		Channel:     target.ChannelName,
		Operation:   string(kind),
		Status:      StatusProcessing,
	})

	if s.rateLimiter != nil {
		if err := s.rateLimiter.Wait(ctx); err != nil {
			s.metrics.ErroredCount.Add(1)
			return NewTransportFailure(string(kind), err)
		}
	}

	builder, failure := s.dispatcher.For(target.ChannelName, target.Account)
	if failure != nil {
		s.metrics.SkippedCount.Add(1)
		return *failure
	}

	switch kind {
	case OpCreate:
		builder.Create(productID)
	case OpUpdate:
		builder.Update(productID)
	case OpRecreate:
		builder.Recreate(productID)
	case OpLink:
		builder.Link(productID)
	default:
		s.metrics.SkippedCount.Add(1)
		return NewFailure("unsupported bulk operation " + string(kind))
	}

	result := builder.Push(ctx)

	s.metrics.ProcessedCount.Add(1)
	if result.Success {
		s.metrics.SyncedCount.Add(1)
	} else {
		s.metrics.ErroredCount.Add(1)
		s.log.Log("bulk %s of product %d to %s/%d failed: %s",
			kind, productID, target.ChannelName, target.Account.ID, result.Message)
	}
	return result
}

// Metrics возвращает счётчики текущего прогона.
func (s *BulkService) Metrics() *metrics.SyncMetrics {
	return s.metrics
}
