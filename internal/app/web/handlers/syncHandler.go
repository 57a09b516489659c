package handlers

import (
	"net/http"

	"gomarketsync/internal/channels"
	"gomarketsync/internal/sync"
	"gomarketsync/pkg/logger"
)

type SyncHandler struct {
	dispatcher *sync.Dispatcher
	bulk       *sync.BulkService
	store      channels.AccountStore
	log        logger.Logger
}

func NewSyncHandler(dispatcher *sync.Dispatcher, bulk *sync.BulkService, store channels.AccountStore, log logger.Logger) *SyncHandler {
	return &SyncHandler{dispatcher: dispatcher, bulk: bulk, store: store, log: log}
}

type syncRequest struct {
	Channel    string `json:"channel"`
	Account    string `json:"account"`
	Operation  string `json:"operation"`
	ProductIDs []int  `json:"product_ids"`
	Fields     struct {
		Title   bool `json:"title"`
		Images  bool `json:"images"`
		Pricing bool `json:"pricing"`
	} `json:"fields"`
}

// SyncHandler принимает create/update/recreate/link по одному или
// нескольким товарам. Несколько товаров уходят в массовый прогон.
func (h *SyncHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req syncRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.handle(w, r, req)
}

func (h *SyncHandler) handle(w http.ResponseWriter, r *http.Request, req syncRequest) {
	if len(req.ProductIDs) == 0 {
		http.Error(w, "product_ids is required", http.StatusBadRequest)
		return
	}

	kind, ok := parseOperation(req.Operation)
	if !ok {
		respondJSON(w, http.StatusOK, sync.NewFailure("unsupported operation "+req.Operation))
		return
	}

	channel, err := channels.ParseChannel(req.Channel)
	if err != nil {
		respondJSON(w, http.StatusOK, sync.NewUnsupportedChannel(req.Channel))
		return
	}

	account, err := h.store.GetAccount(r.Context(), channel, req.Account)
	if err != nil {
		respondJSON(w, http.StatusOK, sync.NewFailure("account lookup failed", err.Error()))
		return
	}

	if len(req.ProductIDs) > 1 {
		results := h.bulk.Run(r.Context(), kind, req.ProductIDs, []sync.Target{
			{ChannelName: req.Channel, Account: account},
		})
		respondJSON(w, http.StatusOK, results)
		return
	}

	builder, failure := h.dispatcher.For(req.Channel, account)
	if failure != nil {
		respondJSON(w, http.StatusOK, failure)
		return
	}

	productID := req.ProductIDs[0]
	switch kind {
	case sync.OpCreate:
		builder.Create(productID)
	case sync.OpRecreate:
		builder.Recreate(productID)
	case sync.OpLink:
		builder.Link(productID)
	case sync.OpUpdate:
		builder.Update(productID)
		if req.Fields.Title {
			builder.Title()
		}
		if req.Fields.Images {
			builder.Images()
		}
		if req.Fields.Pricing {
			builder.Pricing()
		}
	}

	result := builder.Push(r.Context())
	respondJSON(w, http.StatusOK, result)
}

// HandleLink -- сверка офферов как отдельный маршрут: тело то же,
// операция зафиксирована.
func (h *SyncHandler) HandleLink(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req syncRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Operation = string(sync.OpLink)
	h.handle(w, r, req)
}

func parseOperation(name string) (sync.OperationKind, bool) {
	switch sync.OperationKind(name) {
	case sync.OpCreate, sync.OpUpdate, sync.OpRecreate, sync.OpLink:
		return sync.OperationKind(name), true
	default:
		return "", false
	}
}
