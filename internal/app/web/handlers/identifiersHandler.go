package handlers

import (
	"net/http"

	"gomarketsync/internal/channels"
	"gomarketsync/internal/sync/identifiers"
	"gomarketsync/pkg/logger"
)

type IdentifiersHandler struct {
	setup *identifiers.CompositeSetup
	store channels.AccountStore
	log   logger.Logger
}

func NewIdentifiersHandler(setup *identifiers.CompositeSetup, store channels.AccountStore, log logger.Logger) *IdentifiersHandler {
	return &IdentifiersHandler{setup: setup, store: store, log: log}
}

type identifiersRequest struct {
	Channel string `json:"channel"`
	Account string `json:"account"`
}

func (h *IdentifiersHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req identifiersRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	channel, err := channels.ParseChannel(req.Channel)
	if err != nil {
		respondJSON(w, http.StatusOK, identifiers.Result{
			Success: false,
			Error:   "unsupported channel " + req.Channel,
		})
		return
	}

	account, err := h.store.GetAccount(r.Context(), channel, req.Account)
	if err != nil {
		respondJSON(w, http.StatusOK, identifiers.Result{
			Success: false,
			Error:   "account lookup failed: " + err.Error(),
		})
		return
	}

	result := h.setup.Execute(r.Context(), account)
	if !result.Success {
		h.log.Log("identifier setup failed for %s/%s: %s", req.Channel, req.Account, result.Error)
	}
	respondJSON(w, http.StatusOK, result)
}
