package app

import (
	"io"
	"log"
	"net/http"

	"golang.org/x/time/rate"

	"gomarketsync/config"
	"gomarketsync/internal/app/web"
	"gomarketsync/internal/app/web/handlers"
	"gomarketsync/internal/catalog"
	"gomarketsync/internal/channels"
	"gomarketsync/internal/channels/auction"
	"gomarketsync/internal/channels/multioperator"
	"gomarketsync/internal/channels/storage"
	"gomarketsync/internal/channels/storefront"
	"gomarketsync/internal/sync"
	"gomarketsync/internal/sync/identifiers"
	"gomarketsync/migrations/infrastructure"
	"gomarketsync/pkg/dbconnect"
	"gomarketsync/pkg/dbconnect/migration"
	"gomarketsync/pkg/logger"
)

// Частота исходящих запросов при массовых прогонах.
const bulkRequestsPerSecond = 5

type SyncServer struct {
	dbconnect.Database
	config *config.AppConfig
	log    logger.Logger
	writer io.Writer
}

func NewSyncServer(connector dbconnect.Database, cfg *config.AppConfig, writer io.Writer) *SyncServer {
	_log := logger.NewLogger(writer, "[SyncServer]")
	return &SyncServer{Database: connector, config: cfg, log: _log, writer: writer}
}

func (s *SyncServer) Run() {
	db, err := s.Connect()
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %s", err)
	}
	defer db.Close()

	migrationApply := []migration.MigrationInterface{
		&infrastructure.MigrationsSchema{},
		&infrastructure.SyncSchema{},
		&infrastructure.ChannelAccountsTable{},
	}

	for _, _migration := range migrationApply {
		if err := _migration.UpMigration(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}
	s.log.Log("Sync migrations applied successfully!")

	store := storage.NewAccountRepository(db)
	catalogClient := catalog.NewServiceClient(s.config.Catalog.BaseURL, s.writer)

	dispatcher := s.buildDispatcher(store, catalogClient)
	setup := s.buildIdentifierSetup(store)

	limiter := rate.NewLimiter(rate.Limit(bulkRequestsPerSecond), 1)
	bulk := sync.NewBulkService(dispatcher, sync.NopNotifier{}, limiter, logger.NewLogger(s.writer, "[BulkService]"))
	health := sync.NewHealthService(dispatcher, store, logger.NewLogger(s.writer, "[HealthService]"))

	routes := web.SetupRoutes(web.Handlers{
		Sync:        handlers.NewSyncHandler(dispatcher, bulk, store, logger.NewLogger(s.writer, "[SyncHandler]")),
		Pull:        handlers.NewPullHandler(dispatcher, store, logger.NewLogger(s.writer, "[PullHandler]")),
		Identifiers: handlers.NewIdentifiersHandler(setup, store, logger.NewLogger(s.writer, "[IdentifiersHandler]")),
		Health:      handlers.NewHealthHandler(health, logger.NewLogger(s.writer, "[HealthHandler]")),
	}, s.config.Server.JwtSecret)

	s.log.Log("Запущен сервис синхронизации %s", s.config.Server.Address)
	log.Fatal(http.ListenAndServe(s.config.Server.Address, routes))
}

// buildDispatcher подключает адаптер каждого сконфигурированного канала.
// Канал без конфигурации остаётся известным, но не подключенным: диспетчер
// вернёт на него "not implemented" без сетевого вызова.
func (s *SyncServer) buildDispatcher(store channels.AccountStore, catalogClient catalog.Provider) *sync.Dispatcher {
	cfg := s.config.Channels
	adapters := make([]sync.Adapter, 0, 3+len(cfg.MultiOperator.Operators))

	if cfg.Storefront.BaseURL != "" {
		adapters = append(adapters, storefront.NewAdapter(
			storefront.NewClient(cfg.Storefront.BaseURL),
			storefront.NewTransformer(cfg.Storefront.Defaults),
			catalogClient,
			store,
			logger.NewLogger(s.writer, "[StorefrontAdapter]"),
		))
	}

	if cfg.Auction.Endpoint != "" {
		adapters = append(adapters, auction.NewAdapter(
			auction.NewClient(cfg.Auction.Endpoint),
			catalogClient,
			store,
			cfg.Auction.Defaults,
			logger.NewLogger(s.writer, "[AuctionAdapter]"),
		))
	}

	if cfg.MultiOperator.BaseURL != "" {
		var feed *multioperator.FeedReader
		if cfg.MultiOperator.OfferFeedURL != "" {
			feed = multioperator.NewFeedReader(cfg.MultiOperator.OfferFeedURL)
		}
		adapters = append(adapters, multioperator.NewAdapter(
			multioperator.NewClient(cfg.MultiOperator.BaseURL),
			feed,
			catalogClient,
			store,
			cfg.MultiOperator.Defaults,
			logger.NewLogger(s.writer, "[MultiOperatorAdapter]"),
		))
	}

	// Операторские REST-варианты разделяют семейство мультиоператорного
	// канала; сейчас маршрут один, подключается первый сконфигурированный.
	if len(cfg.MultiOperator.Operators) > 0 {
		operator := cfg.MultiOperator.Operators[0]
		adapters = append(adapters, multioperator.NewOperatorAdapter(
			multioperator.NewClient(operator.BaseURL),
			catalogClient,
			store,
			cfg.MultiOperator.Defaults,
			logger.NewLogger(s.writer, "[OperatorAdapter]"),
		))
	}

	return sync.NewDispatcher(adapters...)
}

func (s *SyncServer) buildIdentifierSetup(store channels.AccountStore) *identifiers.CompositeSetup {
	cfg := s.config.Channels
	setups := make(map[channels.Channel]identifiers.Setup)

	if cfg.Storefront.BaseURL != "" {
		setups[channels.ChannelStorefront] = identifiers.NewStorefrontSetup(storefront.NewClient(cfg.Storefront.BaseURL), store)
	}
	if cfg.Auction.Endpoint != "" {
		setups[channels.ChannelAuction] = identifiers.NewAuctionSetup(auction.NewClient(cfg.Auction.Endpoint), store)
	}
	if cfg.MultiOperator.BaseURL != "" {
		setups[channels.ChannelMultiOperator] = identifiers.NewMultiOperatorSetup(
			channels.ChannelMultiOperator, multioperator.NewClient(cfg.MultiOperator.BaseURL), store)
	}
	if len(cfg.MultiOperator.Operators) > 0 {
		setups[channels.ChannelOperatorREST] = identifiers.NewMultiOperatorSetup(
			channels.ChannelOperatorREST, multioperator.NewClient(cfg.MultiOperator.Operators[0].BaseURL), store)
	}

	return identifiers.NewCompositeSetup(setups)
}
